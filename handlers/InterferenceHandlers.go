package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"backend/models"
	"backend/services"
	"backend/storage"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

// ReportInterference godoc
// @Summary      Report a field interference on a weekly plan
// @Description  Records an obstacle hit during execution, optionally tied to one planned activity. The report starts OPEN.
// @Tags         interferences
// @Accept       json
// @Produce      json
// @Param        Authorization  header  string  true  "Session ID"
// @Param        id    path      int  true  "Plan ID"
// @Param        body  body      models.ReportInterferenceRequest  true  "Interference"
// @Success      201   {object}  models.InterferenceResponse
// @Failure      400   {object}  models.ErrorResponse
// @Failure      404   {object}  models.ErrorResponse
// @Router       /api/weekly-plans/{id}/interferences [post]
func ReportInterference(db *sql.DB) gin.HandlerFunc {
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

		var req models.ReportInterferenceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}

		occurredAt := time.Now()
		if req.OccurredAt != "" {
			occurredAt, err = services.ParseWeekReference(req.OccurredAt)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "occurred_at must be YYYY-MM-DD"})
				return
			}
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

		if req.ActivityID != nil {
			activity, err := storage.GetPlannedActivity(ctx, db, *req.ActivityID)
			if err == storage.ErrActivityNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Planned activity not found"})
				return
			}
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load planned activity", "details": err.Error()})
				return
			}
			if activity.PlanID != planID {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Activity does not belong to this plan"})
				return
			}
		}

		reportedBy := req.ReportedBy
		if reportedBy == "" {
			reportedBy = session.HostName
		}

		fi := &models.FieldInterference{
			ProjectID:       plan.ProjectID,
			PlanID:          planID,
			ActivityID:      req.ActivityID,
			Description:     req.Description,
			ReportedBy:      reportedBy,
			CompanyInvolved: req.CompanyInvolved,
			CompanyType:     req.CompanyType,
			Category:        req.Category,
			Impact:          req.Impact,
			OccurredAt:      occurredAt,
		}
		if err := storage.InsertInterference(ctx, db, fi); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save interference", "details": err.Error()})
			return
		}

		_ = SaveActivityLog(db, models.ActivityLog{
			CreatedAt:    time.Now(),
			UserName:     userName,
			HostName:     session.HostName,
			EventContext: "Interference",
			IPAddress:    session.IPAddress,
			Description:  "Reported interference on plan " + strconv.Itoa(planID),
			EventName:    "Report",
			ProjectID:    plan.ProjectID,
		})

		c.JSON(http.StatusCreated, models.InterferenceResponse{Success: true, Data: *fi})
	}
}

// PromoteInterference godoc
// @Summary      Promote an open interference to a schedule constraint
// @Description  Converts the interference into an open constraint on the underlying schedule activity and marks it CONVERTED, which is terminal. A second promotion of the same interference returns 409.
// @Tags         interferences
// @Accept       json
// @Produce      json
// @Param        Authorization  header  string  true  "Session ID"
// @Param        id    path      int  true  "Interference ID"
// @Param        body  body      models.PromoteInterferenceRequest  false  "Promoter"
// @Success      200   {object}  models.InterferenceResponse
// @Failure      400   {object}  models.ErrorResponse
// @Failure      404   {object}  models.ErrorResponse
// @Failure      409   {object}  models.ErrorResponse
// @Router       /api/interferences/{id}/promote [post]
func PromoteInterference(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader("Authorization")
		session, userName, err := GetSessionDetails(db, sessionID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
			return
		}

		interferenceID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid interference id"})
			return
		}

		var req models.PromoteInterferenceRequest
		_ = c.ShouldBindJSON(&req)

		ctx, cancel := utils.QueryContext(c.Request.Context(), utils.DefaultQueryTimeout)
		defer cancel()

		fi, err := storage.GetInterference(ctx, db, interferenceID)
		if err == storage.ErrInterferenceNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Interference not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load interference", "details": err.Error()})
			return
		}
		if fi.ActivityID == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Interference has no activity; nothing to attach a constraint to"})
			return
		}

		// The constraint lands on the master-schedule activity behind the
		// planned one, so it blocks future weeks too.
		activity, err := storage.GetPlannedActivity(ctx, db, *fi.ActivityID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load planned activity", "details": err.Error()})
			return
		}

		promoted, err := storage.PromoteInterference(ctx, db, interferenceID, activity.ActivityID)
		if err == storage.ErrInterferenceNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Interference not found"})
			return
		}
		if err == storage.ErrInterferenceNotOpen {
			c.JSON(http.StatusConflict, gin.H{"error": "Interference is not open; already resolved or converted"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to promote interference", "details": err.Error()})
			return
		}

		_ = SaveActivityLog(db, models.ActivityLog{
			CreatedAt:    time.Now(),
			UserName:     userName,
			HostName:     session.HostName,
			EventContext: "Interference",
			IPAddress:    session.IPAddress,
			Description:  "Promoted interference " + strconv.Itoa(interferenceID) + " to constraint",
			EventName:    "Promote",
			ProjectID:    fi.ProjectID,
		})

		c.JSON(http.StatusOK, models.InterferenceResponse{
			Success: true,
			Message: "Interference promoted to constraint",
			Data:    *promoted,
		})
	}
}

// GetInterferences godoc
// @Summary      List a plan's interferences
// @Tags         interferences
// @Produce      json
// @Param        Authorization  header  string  true  "Session ID"
// @Param        id   path      int  true  "Plan ID"
// @Success      200  {object}  models.InterferenceListResponse
// @Router       /api/weekly-plans/{id}/interferences [get]
func GetInterferences(db *sql.DB) gin.HandlerFunc {
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

		items, err := storage.ListInterferencesByPlan(ctx, db, planID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list interferences", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, models.InterferenceListResponse{Success: true, Data: items})
	}
}
