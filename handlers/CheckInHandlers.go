package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"backend/models"
	"backend/services"
	"backend/storage"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

// RecordCheckIn godoc
// @Summary      Record a daily check-in for a planned activity
// @Description  Records the actual quantity for one day of the plan week. An incomplete day with planned work must carry a cause of failure; without one the call returns 400 with cause_required and writes nothing. The same day may be checked in again; the planned snapshot is kept from the first write.
// @Tags         check-ins
// @Accept       json
// @Produce      json
// @Param        Authorization  header  string  true  "Session ID"
// @Param        id    path      int  true  "Planned activity ID"
// @Param        body  body      models.CheckInRequest  true  "Check-in"
// @Success      200   {object}  models.CheckInResponse
// @Failure      400   {object}  models.CheckInResponse
// @Failure      404   {object}  models.ErrorResponse
// @Failure      409   {object}  models.ErrorResponse
// @Router       /api/planned-activities/{id}/check-ins [post]
func RecordCheckIn(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader("Authorization")
		session, _, err := GetSessionDetails(db, sessionID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
			return
		}

		activityID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid activity id"})
			return
		}

		var req models.CheckInRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}

		checkDate, err := services.ParseWeekReference(req.CheckDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "check_date must be YYYY-MM-DD"})
			return
		}

		ctx, cancel := utils.QueryContext(c.Request.Context(), utils.DefaultQueryTimeout)
		defer cancel()

		activity, err := storage.GetPlannedActivity(ctx, db, activityID)
		if err == storage.ErrActivityNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Planned activity not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load planned activity", "details": err.Error()})
			return
		}

		plan, err := storage.GetPlanByID(ctx, db, activity.PlanID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load weekly plan", "details": err.Error()})
			return
		}

		dayIndex := services.DayIndexFor(plan.StartDate, checkDate)
		if dayIndex < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "check_date falls outside the plan week"})
			return
		}

		// The planned snapshot: an existing record for the day keeps its
		// first-write value, a fresh day takes the current planned slot.
		plannedQty := activity.PlannedSlots()[dayIndex]
		existing, err := storage.GetCheckRecordByDay(ctx, db, activityID, checkDate)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load check record", "details": err.Error()})
			return
		}
		if existing != nil {
			plannedQty = existing.PlannedQty
		}

		result, err := services.EvaluateCheckIn(plannedQty, req.ActualQty, req.CauseCode)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if result.CauseRequired {
			c.JSON(http.StatusBadRequest, models.CheckInResponse{
				Success:       false,
				Message:       "Incomplete day needs a cause of failure",
				CauseRequired: true,
			})
			return
		}

		record := &models.DailyCheckRecord{
			ActivityID: activityID,
			CheckDate:  checkDate,
			DayIndex:   dayIndex,
			PlannedQty: plannedQty,
			ActualQty:  req.ActualQty,
			Completed:  result.Completed,
			CheckedBy:  req.CheckedBy,
		}
		if record.CheckedBy == "" {
			record.CheckedBy = session.HostName
		}
		if req.CauseCode != "" {
			record.CauseCode = &req.CauseCode
		}
		if req.CauseDescription != "" {
			record.CauseDescription = &req.CauseDescription
		}

		if err := storage.UpsertCheckRecord(ctx, db, record); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save check record", "details": err.Error()})
			return
		}
		if err := storage.UpdateActualSlot(ctx, db, activityID, dayIndex, req.ActualQty); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update actual quantities", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, models.CheckInResponse{
			Success: true,
			Message: "Check-in recorded",
			Data:    record,
		})
	}
}

// GetCheckRecords godoc
// @Summary      List a plan's check-in records
// @Tags         check-ins
// @Produce      json
// @Param        Authorization  header  string  true  "Session ID"
// @Param        id   path      int  true  "Plan ID"
// @Success      200  {object}  models.CheckRecordListResponse
// @Router       /api/weekly-plans/{id}/check-ins [get]
func GetCheckRecords(db *sql.DB) gin.HandlerFunc {
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

		ctx, cancel := utils.QueryContext(c.Request.Context(), utils.DefaultQueryTimeout)
		defer cancel()

		records, err := storage.GetCheckRecordsByPlan(ctx, db, planID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list check records", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, models.CheckRecordListResponse{Success: true, Data: records})
	}
}
