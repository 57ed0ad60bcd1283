package storage

import (
	"context"
	"database/sql"
	"fmt"

	"backend/models"
)

// ErrInterferenceNotFound is returned when an interference lookup misses.
var ErrInterferenceNotFound = fmt.Errorf("interference not found")

// ErrInterferenceNotOpen is returned when promoting an interference that is
// already resolved or converted.
var ErrInterferenceNotOpen = fmt.Errorf("interference is not open")

const interferenceColumns = `id, project_id, plan_id, activity_id, description, reported_by,
	company_involved, company_type, category, impact, occurred_at, status,
	converted_constraint_id, created_at, updated_at`

func scanInterference(row interface{ Scan(...interface{}) error }) (*models.FieldInterference, error) {
	var fi models.FieldInterference
	err := row.Scan(&fi.ID, &fi.ProjectID, &fi.PlanID, &fi.ActivityID, &fi.Description, &fi.ReportedBy,
		&fi.CompanyInvolved, &fi.CompanyType, &fi.Category, &fi.Impact, &fi.OccurredAt, &fi.Status,
		&fi.ConvertedConstraintID, &fi.CreatedAt, &fi.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &fi, nil
}

// InsertInterference records a new field report in OPEN.
func InsertInterference(ctx context.Context, db *sql.DB, fi *models.FieldInterference) error {
	query := fmt.Sprintf(`INSERT INTO field_interference
		(project_id, plan_id, activity_id, description, reported_by, company_involved,
		 company_type, category, impact, occurred_at, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING %s`, interferenceColumns)

	saved, err := scanInterference(db.QueryRowContext(ctx, query,
		fi.ProjectID, fi.PlanID, fi.ActivityID, fi.Description, fi.ReportedBy,
		fi.CompanyInvolved, fi.CompanyType, fi.Category, fi.Impact, fi.OccurredAt,
		models.InterferenceOpen))
	if err != nil {
		return fmt.Errorf("failed to insert interference: %v", err)
	}
	*fi = *saved
	return nil
}

// GetInterference fetches one interference by id.
func GetInterference(ctx context.Context, db *sql.DB, id int) (*models.FieldInterference, error) {
	query := fmt.Sprintf(`SELECT %s FROM field_interference WHERE id = $1`, interferenceColumns)

	fi, err := scanInterference(db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrInterferenceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query interference %d: %v", id, err)
	}
	return fi, nil
}

// ListInterferencesByPlan returns a plan's interferences, newest first.
func ListInterferencesByPlan(ctx context.Context, db *sql.DB, planID int) ([]models.FieldInterference, error) {
	query := fmt.Sprintf(`SELECT %s FROM field_interference
		WHERE plan_id = $1 ORDER BY created_at DESC`, interferenceColumns)

	rows, err := db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to list interferences: %v", err)
	}
	defer rows.Close()

	items := []models.FieldInterference{}
	for rows.Next() {
		fi, err := scanInterference(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *fi)
	}
	return items, rows.Err()
}

// classifyPromoteMiss maps a failed status-guarded lock to its sentinel: the
// follow-up lookup missing entirely means the interference was deleted, a row
// found in another status means it already left OPEN.
func classifyPromoteMiss(lookupErr error) error {
	if lookupErr == sql.ErrNoRows {
		return ErrInterferenceNotFound
	}
	if lookupErr != nil {
		return fmt.Errorf("failed to query interference status: %v", lookupErr)
	}
	return ErrInterferenceNotOpen
}

// PromoteInterference converts an OPEN interference into a schedule
// constraint in one transaction. The status guard makes a second promotion
// attempt fail with ErrInterferenceNotOpen instead of creating a duplicate
// constraint; an interference deleted under the caller surfaces as
// ErrInterferenceNotFound.
func PromoteInterference(ctx context.Context, db *sql.DB, interferenceID, scheduleActivityID int) (*models.FieldInterference, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	var description string
	err = tx.QueryRowContext(ctx,
		`SELECT description FROM field_interference WHERE id = $1 AND status = $2 FOR UPDATE`,
		interferenceID, models.InterferenceOpen).Scan(&description)
	if err == sql.ErrNoRows {
		// The row may be gone entirely, not just past OPEN.
		var status string
		lookupErr := tx.QueryRowContext(ctx,
			`SELECT status FROM field_interference WHERE id = $1`, interferenceID).Scan(&status)
		return nil, classifyPromoteMiss(lookupErr)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock interference %d: %v", interferenceID, err)
	}

	var constraintID int
	err = tx.QueryRowContext(ctx, `
		INSERT INTO activity_constraint (activity_id, description, status, origin, created_at)
		VALUES ($1, $2, 'open', 'interference', NOW())
		RETURNING id`, scheduleActivityID, description).Scan(&constraintID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert promoted constraint: %v", err)
	}

	query := fmt.Sprintf(`UPDATE field_interference
		SET status = $1, converted_constraint_id = $2, updated_at = NOW()
		WHERE id = $3 AND status = $4
		RETURNING %s`, interferenceColumns)

	fi, err := scanInterference(tx.QueryRowContext(ctx, query,
		models.InterferenceConverted, constraintID, interferenceID, models.InterferenceOpen))
	if err == sql.ErrNoRows {
		return nil, ErrInterferenceNotOpen
	}
	if err != nil {
		return nil, fmt.Errorf("failed to promote interference %d: %v", interferenceID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit promotion: %v", err)
	}
	return fi, nil
}
