package storage

import (
	"context"
	"database/sql"
	"fmt"

	"backend/models"
)

// ErrPlanNotFound is returned when a plan lookup matches no row.
var ErrPlanNotFound = fmt.Errorf("weekly plan not found")

const weeklyPlanColumns = `id, company_id, project_id, iso_week, iso_year, start_date, end_date,
	status, weekly_ppc, total_activities, completed_activities, activities_with_constraint,
	responsible, created_at, updated_at`

func scanWeeklyPlan(row interface{ Scan(...interface{}) error }) (*models.WeeklyPlan, error) {
	var plan models.WeeklyPlan
	err := row.Scan(&plan.ID, &plan.CompanyID, &plan.ProjectID, &plan.ISOWeek, &plan.ISOYear,
		&plan.StartDate, &plan.EndDate, &plan.Status, &plan.WeeklyPPC, &plan.TotalActivities,
		&plan.CompletedActivities, &plan.ActivitiesWithConstraint, &plan.Responsible,
		&plan.CreatedAt, &plan.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// GetPlanByKey fetches the plan for one (company, project, week, year) key.
func GetPlanByKey(ctx context.Context, db *sql.DB, companyID, projectID, isoWeek, isoYear int) (*models.WeeklyPlan, error) {
	query := fmt.Sprintf(`SELECT %s FROM weekly_plan
		WHERE company_id = $1 AND project_id = $2 AND iso_week = $3 AND iso_year = $4`, weeklyPlanColumns)

	plan, err := scanWeeklyPlan(db.QueryRowContext(ctx, query, companyID, projectID, isoWeek, isoYear))
	if err == sql.ErrNoRows {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query weekly plan: %v", err)
	}
	return plan, nil
}

// InsertPlan creates a new plan in PLANNED. The unique index on
// (company_id, project_id, iso_week, iso_year) makes concurrent creates
// collapse to one row; callers re-read on a unique violation.
func InsertPlan(ctx context.Context, db *sql.DB, plan *models.WeeklyPlan) error {
	query := fmt.Sprintf(`INSERT INTO weekly_plan
		(company_id, project_id, iso_week, iso_year, start_date, end_date, status, responsible, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING %s`, weeklyPlanColumns)

	inserted, err := scanWeeklyPlan(db.QueryRowContext(ctx, query,
		plan.CompanyID, plan.ProjectID, plan.ISOWeek, plan.ISOYear,
		plan.StartDate, plan.EndDate, models.PlanStatusPlanned, plan.Responsible))
	if err != nil {
		return err
	}
	*plan = *inserted
	return nil
}

// GetPlanByID fetches one plan by primary key.
func GetPlanByID(ctx context.Context, db *sql.DB, planID int) (*models.WeeklyPlan, error) {
	query := fmt.Sprintf(`SELECT %s FROM weekly_plan WHERE id = $1`, weeklyPlanColumns)

	plan, err := scanWeeklyPlan(db.QueryRowContext(ctx, query, planID))
	if err == sql.ErrNoRows {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query weekly plan %d: %v", planID, err)
	}
	return plan, nil
}

// UpdatePlanStatus moves the cached status column. The acceptance event row
// must already be written; this is the derived side.
func UpdatePlanStatus(ctx context.Context, db *sql.DB, planID int, status string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE weekly_plan SET status = $1, updated_at = NOW() WHERE id = $2`, status, planID)
	if err != nil {
		return fmt.Errorf("failed to update plan status: %v", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPlanNotFound
	}
	return nil
}

// UpdatePlanRollups persists the recomputed metric rollups onto the plan row.
func UpdatePlanRollups(ctx context.Context, db *sql.DB, metrics models.PlanMetrics) error {
	_, err := db.ExecContext(ctx, `
		UPDATE weekly_plan
		SET weekly_ppc = $1,
		    total_activities = $2,
		    completed_activities = $3,
		    activities_with_constraint = $4,
		    updated_at = NOW()
		WHERE id = $5`,
		metrics.WeeklyPPC, metrics.TotalActivities, metrics.CompletedActivities,
		metrics.ActivitiesWithConstraint, metrics.PlanID)
	if err != nil {
		return fmt.Errorf("failed to update plan rollups: %v", err)
	}
	return nil
}

// ListPlansByProject returns a project's plans, newest week first.
func ListPlansByProject(ctx context.Context, db *sql.DB, companyID, projectID int) ([]models.WeeklyPlan, error) {
	query := fmt.Sprintf(`SELECT %s FROM weekly_plan
		WHERE company_id = $1 AND project_id = $2
		ORDER BY iso_year DESC, iso_week DESC`, weeklyPlanColumns)

	rows, err := db.QueryContext(ctx, query, companyID, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list weekly plans: %v", err)
	}
	defer rows.Close()

	plans := []models.WeeklyPlan{}
	for rows.Next() {
		plan, err := scanWeeklyPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *plan)
	}
	return plans, rows.Err()
}

// CountPlanActivities counts live planned_activity rows for a plan. Used as
// the execution-start guard instead of the cached rollup.
func CountPlanActivities(ctx context.Context, db *sql.DB, planID int) (int, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM planned_activity WHERE plan_id = $1`, planID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count plan activities: %v", err)
	}
	return count, nil
}

// ListActiveProjects returns (company_id, project_id) pairs of projects still
// running, for the weekly provisioning cron.
func ListActiveProjects(ctx context.Context, db *sql.DB) ([][2]int, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT company_id, id FROM projects WHERE status = 'active'`)
	if err != nil {
		return nil, fmt.Errorf("failed to list active projects: %v", err)
	}
	defer rows.Close()

	var pairs [][2]int
	for rows.Next() {
		var companyID, projectID int
		if err := rows.Scan(&companyID, &projectID); err != nil {
			return nil, err
		}
		pairs = append(pairs, [2]int{companyID, projectID})
	}
	return pairs, rows.Err()
}
