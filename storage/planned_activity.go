package storage

import (
	"context"
	"database/sql"
	"fmt"

	"backend/models"

	"github.com/lib/pq"
)

// ErrActivityNotFound is returned when a planned activity lookup misses.
var ErrActivityNotFound = fmt.Errorf("planned activity not found")

const plannedActivityColumns = `id, plan_id, activity_id, activity_name, activity_code, display_order,
	unit, planned, actual, has_constraint, constraint_id, ppc, completed, responsible, created_at, updated_at`

func scanPlannedActivity(row interface{ Scan(...interface{}) error }) (*models.PlannedActivity, error) {
	var a models.PlannedActivity
	err := row.Scan(&a.ID, &a.PlanID, &a.ActivityID, &a.ActivityName, &a.ActivityCode, &a.DisplayOrder,
		&a.Unit, &a.Planned, &a.Actual, &a.HasConstraint, &a.ConstraintID, &a.PPC, &a.Completed,
		&a.Responsible, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// InsertPlannedActivity commits one schedule activity into a plan. A unique
// index on (plan_id, activity_id) blocks duplicates; the handler maps the
// violation to a conflict response.
func InsertPlannedActivity(ctx context.Context, db *sql.DB, a *models.PlannedActivity) error {
	query := fmt.Sprintf(`INSERT INTO planned_activity
		(plan_id, activity_id, activity_name, activity_code, display_order, unit, planned, actual, has_constraint, constraint_id, responsible, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING %s`, plannedActivityColumns)

	inserted, err := scanPlannedActivity(db.QueryRowContext(ctx, query,
		a.PlanID, a.ActivityID, a.ActivityName, a.ActivityCode, a.DisplayOrder, a.Unit,
		a.Planned, a.Actual, a.HasConstraint, a.ConstraintID, a.Responsible))
	if err != nil {
		return err
	}
	*a = *inserted
	return nil
}

// GetPlannedActivity fetches one planned activity by id.
func GetPlannedActivity(ctx context.Context, db *sql.DB, id int) (*models.PlannedActivity, error) {
	query := fmt.Sprintf(`SELECT %s FROM planned_activity WHERE id = $1`, plannedActivityColumns)

	a, err := scanPlannedActivity(db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrActivityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query planned activity %d: %v", id, err)
	}
	return a, nil
}

// GetPlanActivities returns a plan's activities in display order. The id
// tiebreaker keeps rows with equal order stable.
func GetPlanActivities(ctx context.Context, db *sql.DB, planID int) ([]models.PlannedActivity, error) {
	query := fmt.Sprintf(`SELECT %s FROM planned_activity WHERE plan_id = $1 ORDER BY display_order, id`, plannedActivityColumns)

	rows, err := db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to list planned activities: %v", err)
	}
	defer rows.Close()

	activities := []models.PlannedActivity{}
	for rows.Next() {
		a, err := scanPlannedActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, *a)
	}
	return activities, rows.Err()
}

// NextDisplayOrder returns the display_order slot after the plan's current
// last activity.
func NextDisplayOrder(ctx context.Context, db *sql.DB, planID int) (int, error) {
	var next int
	err := db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(display_order), 0) + 1 FROM planned_activity WHERE plan_id = $1`, planID).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve display order: %v", err)
	}
	return next, nil
}

// UpdatePlannedSlots replaces the 7 planned slots of one activity. Only
// legal while the plan is structurally open; the handler enforces that.
func UpdatePlannedSlots(ctx context.Context, db *sql.DB, id int, planned pq.Float64Array) error {
	result, err := db.ExecContext(ctx,
		`UPDATE planned_activity SET planned = $1, updated_at = NOW() WHERE id = $2`, planned, id)
	if err != nil {
		return fmt.Errorf("failed to update planned slots: %v", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrActivityNotFound
	}
	return nil
}

// UpdateActualSlot mirrors a committed check-in into the activity's actual
// array at the given day index.
func UpdateActualSlot(ctx context.Context, db *sql.DB, id, dayIndex int, actualQty float64) error {
	// Postgres arrays are 1-based
	result, err := db.ExecContext(ctx,
		`UPDATE planned_activity SET actual[$1] = $2, updated_at = NOW() WHERE id = $3`,
		dayIndex+1, actualQty, id)
	if err != nil {
		return fmt.Errorf("failed to update actual slot: %v", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrActivityNotFound
	}
	return nil
}

// UpdateActivityMetrics persists a recomputed per-activity PPC and completion
// flag.
func UpdateActivityMetrics(ctx context.Context, db *sql.DB, m models.ActivityMetrics) error {
	_, err := db.ExecContext(ctx,
		`UPDATE planned_activity SET ppc = $1, completed = $2, updated_at = NOW() WHERE id = $3`,
		m.PPC, m.Completed, m.ActivityID)
	if err != nil {
		return fmt.Errorf("failed to update activity metrics: %v", err)
	}
	return nil
}

// DeletePlannedActivity removes one activity and its check records.
func DeletePlannedActivity(ctx context.Context, db *sql.DB, id int) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM daily_check_record WHERE activity_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete check records: %v", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM planned_activity WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete planned activity: %v", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrActivityNotFound
	}
	return tx.Commit()
}
