package storage

import (
	"fmt"
	"time"

	"backend/models"

	"gorm.io/gorm"
)

// AppendAcceptanceEvent writes one event row. The log is append-only; there
// is no update or delete path.
func AppendAcceptanceEvent(gdb *gorm.DB, planID int, actor, sector, eventType, notes string) (*models.AcceptanceEvent, error) {
	row := models.AcceptanceEventGorm{
		PlanID:    planID,
		Actor:     actor,
		Sector:    sector,
		EventType: eventType,
		Notes:     notes,
		CreatedAt: time.Now(),
	}
	if err := gdb.Create(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to append acceptance event: %v", err)
	}
	return &models.AcceptanceEvent{
		ID:        int(row.ID),
		PlanID:    row.PlanID,
		Actor:     row.Actor,
		Sector:    row.Sector,
		EventType: row.EventType,
		Notes:     row.Notes,
		CreatedAt: row.CreatedAt,
	}, nil
}

// ListAcceptanceEvents returns a plan's event history, oldest first.
func ListAcceptanceEvents(gdb *gorm.DB, planID int) ([]models.AcceptanceEvent, error) {
	var rows []models.AcceptanceEventGorm
	if err := gdb.Where("plan_id = ?", planID).Order("created_at, id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list acceptance events: %v", err)
	}

	events := make([]models.AcceptanceEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, models.AcceptanceEvent{
			ID:        int(row.ID),
			PlanID:    row.PlanID,
			Actor:     row.Actor,
			Sector:    row.Sector,
			EventType: row.EventType,
			Notes:     row.Notes,
			CreatedAt: row.CreatedAt,
		})
	}
	return events, nil
}
