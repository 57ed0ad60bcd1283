package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"backend/models"
	"backend/services"
	"backend/storage"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

// GetOrCreateWeeklyPlan godoc
// @Summary      Get or create the weekly plan for a reference date
// @Description  Resolves the week window containing reference_date and returns the existing plan, or creates an empty one. Idempotent per (company, project, iso week, iso year).
// @Tags         weekly-plans
// @Accept       json
// @Produce      json
// @Param        Authorization  header  string  true  "Session ID"
// @Param        body  body      models.GetOrCreatePlanRequest  true  "Plan key"
// @Success      200   {object}  models.WeeklyPlanResponse
// @Success      201   {object}  models.WeeklyPlanResponse
// @Failure      400   {object}  models.ErrorResponse
// @Failure      401   {object}  models.ErrorResponse
// @Router       /api/weekly-plans [post]
func GetOrCreateWeeklyPlan(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader("Authorization")
		session, userName, err := GetSessionDetails(db, sessionID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
			return
		}

		var req models.GetOrCreatePlanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}

		ref, err := services.ParseWeekReference(req.ReferenceDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "reference_date must be YYYY-MM-DD"})
			return
		}

		weekStart := services.ConfiguredWeekStart()
		if req.WeekStartDay != nil {
			if *req.WeekStartDay < 0 || *req.WeekStartDay > 6 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "week_start_day must be 0..6"})
				return
			}
			weekStart = time.Weekday(*req.WeekStartDay)
		}
		window := services.ComputeWeek(ref, weekStart)

		ctx, cancel := utils.QueryContext(c.Request.Context(), utils.DefaultQueryTimeout)
		defer cancel()

		// Fast path: the plan usually exists already.
		plan, err := storage.GetPlanByKey(ctx, db, req.CompanyID, req.ProjectID, window.ISOWeek, window.ISOYear)
		isNew := false
		if err == storage.ErrPlanNotFound {
			newPlan := &models.WeeklyPlan{
				CompanyID:   req.CompanyID,
				ProjectID:   req.ProjectID,
				ISOWeek:     window.ISOWeek,
				ISOYear:     window.ISOYear,
				StartDate:   window.Start,
				EndDate:     window.End,
				Responsible: req.Responsible,
			}
			insertErr := storage.InsertPlan(ctx, db, newPlan)
			switch {
			case insertErr == nil:
				plan, isNew = newPlan, true
				if err := PopulatePlanActivities(ctx, db, plan, window); err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to populate plan activities", "details": err.Error()})
					return
				}
			case storage.IsUniqueViolation(insertErr):
				// Lost the race to a concurrent create; the winner's row is ours.
				plan, err = storage.GetPlanByKey(ctx, db, req.CompanyID, req.ProjectID, window.ISOWeek, window.ISOYear)
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load weekly plan", "details": err.Error()})
					return
				}
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create weekly plan", "details": insertErr.Error()})
				return
			}
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load weekly plan", "details": err.Error()})
			return
		}

		activities, err := storage.GetPlanActivities(ctx, db, plan.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load plan activities", "details": err.Error()})
			return
		}

		status := http.StatusOK
		if isNew {
			status = http.StatusCreated
			_ = SaveActivityLog(db, models.ActivityLog{
				CreatedAt:    time.Now(),
				UserName:     userName,
				HostName:     session.HostName,
				EventContext: "WeeklyPlan",
				IPAddress:    session.IPAddress,
				Description:  "Created weekly plan W" + strconv.Itoa(plan.ISOWeek) + "/" + strconv.Itoa(plan.ISOYear),
				EventName:    "Create",
				ProjectID:    plan.ProjectID,
			})
		}

		c.JSON(status, models.WeeklyPlanResponse{
			Success: true,
			Data: models.WeeklyPlanData{
				Plan:       *plan,
				Activities: activities,
				IsNew:      isNew,
			},
		})
	}
}

// GetWeeklyPlan godoc
// @Summary      Get one weekly plan with its activities
// @Tags         weekly-plans
// @Produce      json
// @Param        Authorization  header  string  true  "Session ID"
// @Param        id   path      int  true  "Plan ID"
// @Success      200  {object}  models.WeeklyPlanResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/weekly-plans/{id} [get]
func GetWeeklyPlan(db *sql.DB) gin.HandlerFunc {
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

		plan, err := storage.GetPlanByID(ctx, db, planID)
		if err == storage.ErrPlanNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Weekly plan not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load weekly plan", "details": err.Error()})
			return
		}

		activities, err := storage.GetPlanActivities(ctx, db, plan.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load plan activities", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, models.WeeklyPlanResponse{
			Success: true,
			Data:    models.WeeklyPlanData{Plan: *plan, Activities: activities},
		})
	}
}

// GetWeeklyPlansByProject godoc
// @Summary      List a project's weekly plans
// @Tags         weekly-plans
// @Produce      json
// @Param        Authorization  header  string  true  "Session ID"
// @Param        company_id  query  int  true  "Company ID"
// @Param        project_id  query  int  true  "Project ID"
// @Success      200  {object}  models.WeeklyPlanListResponse
// @Router       /api/weekly-plans [get]
func GetWeeklyPlansByProject(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader("Authorization")
		if _, _, err := GetSessionDetails(db, sessionID); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
			return
		}

		companyID, err := strconv.Atoi(c.Query("company_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "company_id is required"})
			return
		}
		projectID, err := strconv.Atoi(c.Query("project_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "project_id is required"})
			return
		}

		ctx, cancel := utils.QueryContext(c.Request.Context(), utils.DefaultQueryTimeout)
		defer cancel()

		plans, err := storage.ListPlansByProject(ctx, db, companyID, projectID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list weekly plans", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, models.WeeklyPlanListResponse{Success: true, Data: plans})
	}
}

// GetAvailableActivities godoc
// @Summary      List schedule activities available to pull into a plan
// @Description  Returns selectable project activities not yet in the plan, with constraint flags and apportioned daily quantity targets. The week filter is deliberately absent so work can be pulled forward.
// @Tags         weekly-plans
// @Produce      json
// @Param        Authorization  header  string  true  "Session ID"
// @Param        id   path      int  true  "Plan ID"
// @Success      200  {object}  models.WeekCandidateListResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/weekly-plans/{id}/available-activities [get]
func GetAvailableActivities(db *sql.DB) gin.HandlerFunc {
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

		plan, err := storage.GetPlanByID(ctx, db, planID)
		if err == storage.ErrPlanNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Weekly plan not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load weekly plan", "details": err.Error()})
			return
		}

		projectActivities, err := storage.GetProjectActivities(ctx, db, plan.ProjectID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load schedule activities", "details": err.Error()})
			return
		}

		alreadyPlanned, err := storage.GetPlannedActivityIDs(ctx, db, plan.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load planned activity ids", "details": err.Error()})
			return
		}

		available := make([]models.ScheduleActivity, 0, len(projectActivities))
		ids := make([]int, 0, len(projectActivities))
		for _, a := range projectActivities {
			if alreadyPlanned[a.ID] {
				continue
			}
			available = append(available, a)
			ids = append(ids, a.ID)
		}

		constraints, err := storage.GetOpenConstraints(ctx, db, ids)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load constraints", "details": err.Error()})
			return
		}
		links, err := storage.GetQuantityLinks(ctx, db, ids)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load quantity links", "details": err.Error()})
			return
		}

		candidates := services.BuildCandidates(available, constraints, links)
		c.JSON(http.StatusOK, models.WeekCandidateListResponse{Success: true, Data: candidates})
	}
}

// AddActivityToPlan godoc
// @Summary      Commit a schedule activity into a weekly plan
// @Description  Adds one selectable activity to an open plan. Activities dated outside the plan week are accepted so work can be pulled forward.
// @Tags         weekly-plans
// @Accept       json
// @Produce      json
// @Param        Authorization  header  string  true  "Session ID"
// @Param        id    path      int  true  "Plan ID"
// @Param        body  body      models.AddPlanActivityRequest  true  "Activity"
// @Success      201   {object}  models.PlannedActivityResponse
// @Failure      400   {object}  models.ErrorResponse
// @Failure      409   {object}  models.ErrorResponse
// @Router       /api/weekly-plans/{id}/activities [post]
func AddActivityToPlan(db *sql.DB) gin.HandlerFunc {
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

		var req models.AddPlanActivityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}
		planned, ok := normalizeSlots(req.Planned)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "planned must hold 7 non-negative values"})
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
		if !services.AllowsStructuralEdits(plan.Status) {
			c.JSON(http.StatusConflict, gin.H{"error": "Plan is " + plan.Status + "; activities can only be edited while PLANNED"})
			return
		}

		scheduleActivity, err := storage.GetScheduleActivity(ctx, db, req.ActivityID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Schedule activity not found"})
			return
		}
		if !services.IsSelectable(*scheduleActivity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Activity is not selectable for weekly work"})
			return
		}
		// No window check here: the available list deliberately offers
		// out-of-week activities so work can be pulled forward.

		constraints, err := storage.GetOpenConstraints(ctx, db, []int{scheduleActivity.ID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load constraints", "details": err.Error()})
			return
		}
		candidate := services.BuildCandidate(*scheduleActivity, constraints[scheduleActivity.ID], nil)

		displayOrder, err := storage.NextDisplayOrder(ctx, db, plan.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve display order", "details": err.Error()})
			return
		}

		unit := req.Unit
		if unit == "" {
			unit = scheduleActivity.Unit
		}
		responsible := req.Responsible
		if responsible == "" {
			responsible = scheduleActivity.Responsible
		}

		activity := &models.PlannedActivity{
			PlanID:        plan.ID,
			ActivityID:    scheduleActivity.ID,
			ActivityName:  scheduleActivity.Name,
			ActivityCode:  scheduleActivity.Code,
			DisplayOrder:  displayOrder,
			Unit:          unit,
			Planned:       planned,
			Actual:        models.ZeroSlots(),
			HasConstraint: candidate.HasConstraint,
			ConstraintID:  candidate.ConstraintID,
			Responsible:   responsible,
		}
		if err := storage.InsertPlannedActivity(ctx, db, activity); err != nil {
			if storage.IsUniqueViolation(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "Activity is already in the plan"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add activity", "details": err.Error()})
			return
		}

		_ = SaveActivityLog(db, models.ActivityLog{
			CreatedAt:    time.Now(),
			UserName:     userName,
			HostName:     session.HostName,
			EventContext: "WeeklyPlan",
			IPAddress:    session.IPAddress,
			Description:  "Added activity " + scheduleActivity.Name + " to plan " + strconv.Itoa(plan.ID),
			EventName:    "AddActivity",
			ProjectID:    plan.ProjectID,
		})

		c.JSON(http.StatusCreated, models.PlannedActivityResponse{Success: true, Data: *activity})
	}
}

// UpdatePlannedQuantities godoc
// @Summary      Replace the planned daily quantities of a planned activity
// @Tags         weekly-plans
// @Accept       json
// @Produce      json
// @Param        Authorization  header  string  true  "Session ID"
// @Param        id    path      int  true  "Planned activity ID"
// @Param        body  body      models.UpdatePlannedQuantitiesRequest  true  "Planned slots"
// @Success      200   {object}  models.PlannedActivityResponse
// @Failure      400   {object}  models.ErrorResponse
// @Failure      409   {object}  models.ErrorResponse
// @Router       /api/planned-activities/{id} [put]
func UpdatePlannedQuantities(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader("Authorization")
		if _, _, err := GetSessionDetails(db, sessionID); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
			return
		}

		activityID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid activity id"})
			return
		}

		var req models.UpdatePlannedQuantitiesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
			return
		}
		planned, ok := normalizeSlots(req.Planned)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "planned must hold 7 non-negative values"})
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
		if !services.AllowsStructuralEdits(plan.Status) {
			c.JSON(http.StatusConflict, gin.H{"error": "Plan is " + plan.Status + "; planned quantities are frozen"})
			return
		}

		if err := storage.UpdatePlannedSlots(ctx, db, activityID, planned); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update planned slots", "details": err.Error()})
			return
		}

		activity.Planned = planned
		c.JSON(http.StatusOK, models.PlannedActivityResponse{Success: true, Data: *activity})
	}
}

// DeletePlannedActivity godoc
// @Summary      Remove an activity from a weekly plan
// @Tags         weekly-plans
// @Produce      json
// @Param        Authorization  header  string  true  "Session ID"
// @Param        id   path      int  true  "Planned activity ID"
// @Success      200  {object}  models.MessageResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Router       /api/planned-activities/{id} [delete]
func DeletePlannedActivity(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader("Authorization")
		session, userName, err := GetSessionDetails(db, sessionID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
			return
		}

		activityID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid activity id"})
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
		if !services.AllowsStructuralEdits(plan.Status) {
			c.JSON(http.StatusConflict, gin.H{"error": "Plan is " + plan.Status + "; activities can only be removed while PLANNED"})
			return
		}

		if err := storage.DeletePlannedActivity(ctx, db, activityID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete planned activity", "details": err.Error()})
			return
		}

		_ = SaveActivityLog(db, models.ActivityLog{
			CreatedAt:    time.Now(),
			UserName:     userName,
			HostName:     session.HostName,
			EventContext: "WeeklyPlan",
			IPAddress:    session.IPAddress,
			Description:  "Removed activity " + activity.ActivityName + " from plan " + strconv.Itoa(plan.ID),
			EventName:    "RemoveActivity",
			ProjectID:    plan.ProjectID,
		})

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Planned activity removed"})
	}
}

// PopulatePlanActivities seeds a freshly created plan with one planned
// activity per selector candidate, preserving selection order as display
// order. Both creation paths run it: the get-or-create endpoint and the
// provisioning cron. Inserts are best effort; duplicates from a racing
// populate are skipped and the caller's read-back reconciles the view.
func PopulatePlanActivities(ctx context.Context, db *sql.DB, plan *models.WeeklyPlan, window services.WeekWindow) error {
	overlapping, err := storage.GetOverlappingActivities(ctx, db, plan.ProjectID, window.Start, window.End)
	if err != nil {
		return err
	}

	ids := make([]int, 0, len(overlapping))
	for _, a := range overlapping {
		ids = append(ids, a.ID)
	}
	constraints, err := storage.GetOpenConstraints(ctx, db, ids)
	if err != nil {
		return err
	}
	links, err := storage.GetQuantityLinks(ctx, db, ids)
	if err != nil {
		return err
	}

	for i, candidate := range services.BuildCandidates(overlapping, constraints, links) {
		activity := services.SeedActivity(plan.ID, i+1, candidate)
		if err := storage.InsertPlannedActivity(ctx, db, &activity); err != nil && !storage.IsUniqueViolation(err) {
			return err
		}
	}
	return nil
}

// normalizeSlots validates a planned array: nil becomes all zeros, otherwise
// exactly 7 non-negative values are required.
func normalizeSlots(values []float64) (pq.Float64Array, bool) {
	if values == nil {
		return models.ZeroSlots(), true
	}
	if len(values) != models.DaysPerWeek {
		return nil, false
	}
	slots := make(pq.Float64Array, models.DaysPerWeek)
	for i, v := range values {
		if v < 0 {
			return nil, false
		}
		slots[i] = v
	}
	return slots, true
}
