package handlers

import (
	"database/sql"
	"fmt"
	"log"

	"backend/models"
	"backend/services"
	"backend/storage"
)

var fcmService *services.FCMService

// SetFCMService installs the push client used for plan notifications. A nil
// service disables push without breaking the transition endpoints.
func SetFCMService(s *services.FCMService) {
	fcmService = s
}

// notifyPlanTransition fans out a push and an email to the plan's
// responsible after an acceptance transition. Delivery problems are logged
// only; the transition already committed.
func notifyPlanTransition(db *sql.DB, plan *models.WeeklyPlan, eventType, actor string) {
	if plan.Responsible == "" {
		return
	}

	title := "Weekly plan update"
	body := fmt.Sprintf("Plan W%02d/%d is now %s", plan.ISOWeek, plan.ISOYear, plan.Status)
	switch eventType {
	case models.EventSubmitToProduction:
		title = "Weekly plan submitted"
		body = fmt.Sprintf("Plan W%02d/%d was submitted to production by %s", plan.ISOWeek, plan.ISOYear, actor)
	case models.EventAccept:
		title = "Weekly plan accepted"
		body = fmt.Sprintf("Plan W%02d/%d was accepted by %s", plan.ISOWeek, plan.ISOYear, actor)
	case models.EventReject:
		title = "Weekly plan rejected"
		body = fmt.Sprintf("Plan W%02d/%d was rejected by %s and returned to planning", plan.ISOWeek, plan.ISOYear, actor)
	}

	if fcmService != nil {
		if userID, ok := storage.GetUserIDByEmail(db, plan.Responsible); ok {
			data := map[string]string{
				"plan_id":    fmt.Sprintf("%d", plan.ID),
				"event_type": eventType,
				"status":     plan.Status,
			}
			if err := fcmService.SendToUser(userID, title, body, data); err != nil {
				log.Printf("push notification failed for plan %d: %v", plan.ID, err)
			}
		}
	}

	html := fmt.Sprintf("<p>%s</p><p>Project %d, status: %s</p>", body, plan.ProjectID, plan.Status)
	if err := services.SendPlanEmail(plan.Responsible, title, html); err != nil {
		log.Printf("email notification failed for plan %d: %v", plan.ID, err)
	}
}
