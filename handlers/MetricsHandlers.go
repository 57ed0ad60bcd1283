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

// computePlanMetrics loads a plan's activities and check records and runs the
// calculator. Shared by the recompute endpoint and the read endpoint.
func computePlanMetrics(c *gin.Context, db *sql.DB, planID int) (*models.PlanMetrics, bool) {
	ctx, cancel := utils.QueryContext(c.Request.Context(), utils.MetricsQueryTimeout)
	defer cancel()

	if _, err := storage.GetPlanByID(ctx, db, planID); err != nil {
		if err == storage.ErrPlanNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Weekly plan not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load weekly plan", "details": err.Error()})
		}
		return nil, false
	}

	activities, err := storage.GetPlanActivities(ctx, db, planID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load plan activities", "details": err.Error()})
		return nil, false
	}
	records, err := storage.GetCheckRecordsByPlan(ctx, db, planID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load check records", "details": err.Error()})
		return nil, false
	}

	metrics := services.ComputePlanMetrics(planID, activities, records)
	return &metrics, true
}

// RecomputePlanMetrics godoc
// @Summary      Recompute and persist a plan's PPC metrics
// @Description  Recalculates per-day, per-activity and weekly PPC plus the cause-of-failure histogram, and writes the rollups back onto the plan and its activities.
// @Tags         metrics
// @Produce      json
// @Param        Authorization  header  string  true  "Session ID"
// @Param        id   path      int  true  "Plan ID"
// @Success      200  {object}  models.PlanMetricsResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/weekly-plans/{id}/metrics/recompute [post]
func RecomputePlanMetrics(db *sql.DB) gin.HandlerFunc {
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

		metrics, ok := computePlanMetrics(c, db, planID)
		if !ok {
			return
		}

		ctx, cancel := utils.QueryContext(c.Request.Context(), utils.MetricsQueryTimeout)
		defer cancel()

		if err := storage.UpdatePlanRollups(ctx, db, *metrics); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to persist plan rollups", "details": err.Error()})
			return
		}
		for _, am := range metrics.Activities {
			if err := storage.UpdateActivityMetrics(ctx, db, am); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to persist activity metrics", "details": err.Error()})
				return
			}
		}

		c.JSON(http.StatusOK, models.PlanMetricsResponse{
			Success: true,
			Message: "Metrics recomputed",
			Data:    *metrics,
		})
	}
}

// GetPlanMetrics godoc
// @Summary      Get a plan's PPC metrics
// @Description  Computes the metric set on the fly without persisting it.
// @Tags         metrics
// @Produce      json
// @Param        Authorization  header  string  true  "Session ID"
// @Param        id   path      int  true  "Plan ID"
// @Success      200  {object}  models.PlanMetricsResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/weekly-plans/{id}/metrics [get]
func GetPlanMetrics(db *sql.DB) gin.HandlerFunc {
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

		metrics, ok := computePlanMetrics(c, db, planID)
		if !ok {
			return
		}

		c.JSON(http.StatusOK, models.PlanMetricsResponse{Success: true, Data: *metrics})
	}
}
