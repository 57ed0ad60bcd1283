package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"backend/models"

	"github.com/lib/pq"
)

func intArray(ids []int) pq.Int64Array {
	arr := make(pq.Int64Array, len(ids))
	for i, id := range ids {
		arr[i] = int64(id)
	}
	return arr
}

const scheduleActivityColumns = `id, project_id, name, code, activity_type, start_date, end_date,
	duration_days, progress, status, responsible, unit`

func scanScheduleActivity(row interface{ Scan(...interface{}) error }) (*models.ScheduleActivity, error) {
	var a models.ScheduleActivity
	err := row.Scan(&a.ID, &a.ProjectID, &a.Name, &a.Code, &a.ActivityType, &a.StartDate, &a.EndDate,
		&a.DurationDays, &a.Progress, &a.Status, &a.Responsible, &a.Unit)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetScheduleActivity fetches one master-schedule activity.
func GetScheduleActivity(ctx context.Context, db *sql.DB, id int) (*models.ScheduleActivity, error) {
	query := fmt.Sprintf(`SELECT %s FROM schedule_activity WHERE id = $1`, scheduleActivityColumns)

	a, err := scanScheduleActivity(db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("schedule activity %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule activity %d: %v", id, err)
	}
	return a, nil
}

// GetOverlappingActivities returns a project's schedule activities whose date
// range touches the week window, in schedule order. Type and progress
// filtering happens in the selector, not here.
func GetOverlappingActivities(ctx context.Context, db *sql.DB, projectID int, windowStart, windowEnd time.Time) ([]models.ScheduleActivity, error) {
	query := fmt.Sprintf(`SELECT %s FROM schedule_activity
		WHERE project_id = $1 AND start_date <= $2 AND end_date >= $3
		ORDER BY start_date, id`, scheduleActivityColumns)

	rows, err := db.QueryContext(ctx, query, projectID, windowEnd, windowStart)
	if err != nil {
		return nil, fmt.Errorf("failed to query overlapping activities: %v", err)
	}
	defer rows.Close()

	activities := []models.ScheduleActivity{}
	for rows.Next() {
		a, err := scanScheduleActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, *a)
	}
	return activities, rows.Err()
}

// GetProjectActivities returns every schedule activity of a project, in
// schedule order. Used to pull work forward from outside the current week.
func GetProjectActivities(ctx context.Context, db *sql.DB, projectID int) ([]models.ScheduleActivity, error) {
	query := fmt.Sprintf(`SELECT %s FROM schedule_activity
		WHERE project_id = $1
		ORDER BY start_date, id`, scheduleActivityColumns)

	rows, err := db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query project activities: %v", err)
	}
	defer rows.Close()

	activities := []models.ScheduleActivity{}
	for rows.Next() {
		a, err := scanScheduleActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, *a)
	}
	return activities, rows.Err()
}

// GetOpenConstraints loads the open or unresolved constraints for a set of
// activities, grouped by activity id, newest first within each group.
func GetOpenConstraints(ctx context.Context, db *sql.DB, activityIDs []int) (map[int][]models.ActivityConstraint, error) {
	result := map[int][]models.ActivityConstraint{}
	if len(activityIDs) == 0 {
		return result, nil
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, activity_id, description, status, COALESCE(origin, ''), created_at, resolved_at
		FROM activity_constraint
		WHERE activity_id = ANY($1) AND status IN ('open', 'unresolved')
		ORDER BY created_at DESC`, intArray(activityIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to query constraints: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.ActivityConstraint
		if err := rows.Scan(&c.ID, &c.ActivityID, &c.Description, &c.Status, &c.Origin, &c.CreatedAt, &c.ResolvedAt); err != nil {
			return nil, err
		}
		result[c.ActivityID] = append(result[c.ActivityID], c)
	}
	return result, rows.Err()
}

// GetQuantityLinks loads the measurable-item links for a set of activities,
// grouped by activity id.
func GetQuantityLinks(ctx context.Context, db *sql.DB, activityIDs []int) (map[int][]models.QuantityLink, error) {
	result := map[int][]models.QuantityLink{}
	if len(activityIDs) == 0 {
		return result, nil
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, activity_id, item_id, description, unit, total_qty, weight
		FROM quantity_link
		WHERE activity_id = ANY($1)
		ORDER BY id`, intArray(activityIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to query quantity links: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l models.QuantityLink
		if err := rows.Scan(&l.ID, &l.ActivityID, &l.ItemID, &l.Description, &l.Unit, &l.TotalQty, &l.Weight); err != nil {
			return nil, err
		}
		result[l.ActivityID] = append(result[l.ActivityID], l)
	}
	return result, rows.Err()
}

// GetPlannedActivityIDs returns the schedule activity ids already committed
// into a plan, so the selector can mark or exclude them.
func GetPlannedActivityIDs(ctx context.Context, db *sql.DB, planID int) (map[int]bool, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT activity_id FROM planned_activity WHERE plan_id = $1`, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to query planned activity ids: %v", err)
	}
	defer rows.Close()

	ids := map[int]bool{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = true
	}
	return ids, rows.Err()
}
