package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"backend/models"
)

const checkRecordColumns = `id, activity_id, check_date, day_index, planned_qty, actual_qty,
	completed, cause_code, cause_description, checked_by, created_at, updated_at`

func scanCheckRecord(row interface{ Scan(...interface{}) error }) (*models.DailyCheckRecord, error) {
	var r models.DailyCheckRecord
	err := row.Scan(&r.ID, &r.ActivityID, &r.CheckDate, &r.DayIndex, &r.PlannedQty, &r.ActualQty,
		&r.Completed, &r.CauseCode, &r.CauseDescription, &r.CheckedBy, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// UpsertCheckRecord writes the day's check-in. One row per (activity, date):
// a second check-in for the same day overwrites actuals, completion and
// cause, but planned_qty keeps its first-write snapshot.
func UpsertCheckRecord(ctx context.Context, db *sql.DB, r *models.DailyCheckRecord) error {
	query := fmt.Sprintf(`INSERT INTO daily_check_record
		(activity_id, check_date, day_index, planned_qty, actual_qty, completed, cause_code, cause_description, checked_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		ON CONFLICT (activity_id, check_date) DO UPDATE SET
			actual_qty = EXCLUDED.actual_qty,
			completed = EXCLUDED.completed,
			cause_code = EXCLUDED.cause_code,
			cause_description = EXCLUDED.cause_description,
			checked_by = EXCLUDED.checked_by,
			updated_at = NOW()
		RETURNING %s`, checkRecordColumns)

	saved, err := scanCheckRecord(db.QueryRowContext(ctx, query,
		r.ActivityID, r.CheckDate, r.DayIndex, r.PlannedQty, r.ActualQty,
		r.Completed, r.CauseCode, r.CauseDescription, r.CheckedBy))
	if err != nil {
		return fmt.Errorf("failed to upsert check record: %v", err)
	}
	*r = *saved
	return nil
}

// GetCheckRecordByDay fetches an existing record for one activity and date,
// or nil when the day has no check-in yet.
func GetCheckRecordByDay(ctx context.Context, db *sql.DB, activityID int, checkDate time.Time) (*models.DailyCheckRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM daily_check_record
		WHERE activity_id = $1 AND check_date = $2`, checkRecordColumns)

	record, err := scanCheckRecord(db.QueryRowContext(ctx, query, activityID, checkDate))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query check record: %v", err)
	}
	return record, nil
}

// GetCheckRecordsByPlan returns every check-in of a plan's activities,
// ordered by date then activity.
func GetCheckRecordsByPlan(ctx context.Context, db *sql.DB, planID int) ([]models.DailyCheckRecord, error) {
	query := `SELECT r.id, r.activity_id, r.check_date, r.day_index, r.planned_qty, r.actual_qty,
			r.completed, r.cause_code, r.cause_description, r.checked_by, r.created_at, r.updated_at
		FROM daily_check_record r
		JOIN planned_activity a ON r.activity_id = a.id
		WHERE a.plan_id = $1
		ORDER BY r.check_date, r.activity_id`

	rows, err := db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to list check records: %v", err)
	}
	defer rows.Close()

	records := []models.DailyCheckRecord{}
	for rows.Next() {
		record, err := scanCheckRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}
