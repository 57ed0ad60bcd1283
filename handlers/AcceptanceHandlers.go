package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"backend/models"
	"backend/services"
	"backend/storage"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// applyPlanTransition runs one acceptance event end to end: validate the
// transition, append the event row, then move the cached status. The event
// log is written first; the status column is derived from it.
func applyPlanTransition(db *sql.DB, gdb *gorm.DB, eventType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader("Authorization")
		session, userName, err := GetSessionDetails(db, sessionID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
			return
		}

		planID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan id"})
			return
		}

		var req models.AcceptanceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}

		ctx, cancel := utils.QueryContext(c.Request.Context(), utils.DefaultQueryTimeout)
		defer cancel()

		plan, err := storage.GetPlanByID(ctx, db, planID)
		if err == storage.ErrPlanNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Weekly plan not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load weekly plan", "details": err.Error()})
			return
		}

		// Execution start checks live activity rows, not the cached rollup.
		totalActivities := plan.TotalActivities
		if eventType == models.EventStartExecution {
			totalActivities, err = storage.CountPlanActivities(ctx, db, planID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count plan activities", "details": err.Error()})
				return
			}
		}

		nextStatus, err := services.NextPlanStatus(plan.Status, eventType, totalActivities)
		if errors.Is(err, services.ErrEmptyPlan) {
			c.JSON(http.StatusConflict, gin.H{"error": "Plan has no activities; execution cannot start"})
			return
		}
		if errors.Is(err, services.ErrIllegalTransition) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Transition failed", "details": err.Error()})
			return
		}

		if _, err := storage.AppendAcceptanceEvent(gdb, planID, req.Actor, req.Sector, eventType, req.Notes); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record event", "details": err.Error()})
			return
		}
		if err := storage.UpdatePlanStatus(ctx, db, planID, nextStatus); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update plan status", "details": err.Error()})
			return
		}
		plan.Status = nextStatus

		_ = SaveActivityLog(db, models.ActivityLog{
			CreatedAt:    time.Now(),
			UserName:     userName,
			HostName:     session.HostName,
			EventContext: "Acceptance",
			IPAddress:    session.IPAddress,
			Description:  eventType + " on plan " + strconv.Itoa(planID) + " by " + req.Actor,
			EventName:    eventType,
			ProjectID:    plan.ProjectID,
		})

		switch eventType {
		case models.EventSubmitToProduction, models.EventAccept, models.EventReject:
			go notifyPlanTransition(db, plan, eventType, req.Actor)
		}

		c.JSON(http.StatusOK, models.AcceptanceResponse{
			Success: true,
			Message: "Plan is now " + nextStatus,
			PlanID:  planID,
			Status:  nextStatus,
		})
	}
}

// SubmitPlanToProduction godoc
// @Summary      Submit a plan for production acceptance
// @Tags         acceptance
// @Accept       json
// @Produce      json
// @Param        Authorization  header  string  true  "Session ID"
// @Param        id    path      int  true  "Plan ID"
// @Param        body  body      models.AcceptanceRequest  true  "Actor"
// @Success      200   {object}  models.AcceptanceResponse
// @Failure      409   {object}  models.ErrorResponse
// @Router       /api/weekly-plans/{id}/submit [post]
func SubmitPlanToProduction(db *sql.DB, gdb *gorm.DB) gin.HandlerFunc {
	return applyPlanTransition(db, gdb, models.EventSubmitToProduction)
}

// AcceptPlan godoc
// @Summary      Accept a submitted plan
// @Tags         acceptance
// @Accept       json
// @Produce      json
// @Param        Authorization  header  string  true  "Session ID"
// @Param        id    path      int  true  "Plan ID"
// @Param        body  body      models.AcceptanceRequest  true  "Actor"
// @Success      200   {object}  models.AcceptanceResponse
// @Failure      409   {object}  models.ErrorResponse
// @Router       /api/weekly-plans/{id}/accept [post]
func AcceptPlan(db *sql.DB, gdb *gorm.DB) gin.HandlerFunc {
	return applyPlanTransition(db, gdb, models.EventAccept)
}

// RejectPlan godoc
// @Summary      Reject a submitted plan back to planning
// @Tags         acceptance
// @Accept       json
// @Produce      json
// @Param        Authorization  header  string  true  "Session ID"
// @Param        id    path      int  true  "Plan ID"
// @Param        body  body      models.AcceptanceRequest  true  "Actor"
// @Success      200   {object}  models.AcceptanceResponse
// @Failure      409   {object}  models.ErrorResponse
// @Router       /api/weekly-plans/{id}/reject [post]
func RejectPlan(db *sql.DB, gdb *gorm.DB) gin.HandlerFunc {
	return applyPlanTransition(db, gdb, models.EventReject)
}

// ReturnPlanToPlanning godoc
// @Summary      Withdraw a submitted plan back to planning
// @Tags         acceptance
// @Accept       json
// @Produce      json
// @Param        Authorization  header  string  true  "Session ID"
// @Param        id    path      int  true  "Plan ID"
// @Param        body  body      models.AcceptanceRequest  true  "Actor"
// @Success      200   {object}  models.AcceptanceResponse
// @Failure      409   {object}  models.ErrorResponse
// @Router       /api/weekly-plans/{id}/return [post]
func ReturnPlanToPlanning(db *sql.DB, gdb *gorm.DB) gin.HandlerFunc {
	return applyPlanTransition(db, gdb, models.EventReturnToPlanning)
}

// StartPlanExecution godoc
// @Summary      Start executing a plan
// @Description  Moves a PLANNED or ACCEPTED plan into IN_EXECUTION. Fails on a plan without activities.
// @Tags         acceptance
// @Accept       json
// @Produce      json
// @Param        Authorization  header  string  true  "Session ID"
// @Param        id    path      int  true  "Plan ID"
// @Param        body  body      models.AcceptanceRequest  true  "Actor"
// @Success      200   {object}  models.AcceptanceResponse
// @Failure      409   {object}  models.ErrorResponse
// @Router       /api/weekly-plans/{id}/start-execution [post]
func StartPlanExecution(db *sql.DB, gdb *gorm.DB) gin.HandlerFunc {
	return applyPlanTransition(db, gdb, models.EventStartExecution)
}

// CompletePlan godoc
// @Summary      Close out an executed plan
// @Tags         acceptance
// @Accept       json
// @Produce      json
// @Param        Authorization  header  string  true  "Session ID"
// @Param        id    path      int  true  "Plan ID"
// @Param        body  body      models.AcceptanceRequest  true  "Actor"
// @Success      200   {object}  models.AcceptanceResponse
// @Failure      409   {object}  models.ErrorResponse
// @Router       /api/weekly-plans/{id}/complete [post]
func CompletePlan(db *sql.DB, gdb *gorm.DB) gin.HandlerFunc {
	return applyPlanTransition(db, gdb, models.EventComplete)
}

// GetAcceptanceEvents godoc
// @Summary      List a plan's acceptance event history
// @Tags         acceptance
// @Produce      json
// @Param        Authorization  header  string  true  "Session ID"
// @Param        id   path      int  true  "Plan ID"
// @Success      200  {object}  models.AcceptanceEventListResponse
// @Router       /api/weekly-plans/{id}/events [get]
func GetAcceptanceEvents(db *sql.DB, gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader("Authorization")
		if _, _, err := GetSessionDetails(db, sessionID); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
			return
		}

		planID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan id"})
			return
		}

		events, err := storage.ListAcceptanceEvents(gdb, planID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list events", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, models.AcceptanceEventListResponse{Success: true, Data: events})
	}
}
