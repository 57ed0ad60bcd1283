package models

// ActivityMetrics is the computed completion state of one planned activity.
type ActivityMetrics struct {
	ActivityID   int     `json:"activity_id" example:"31"`
	TotalPlanned float64 `json:"total_planned" example:"50"`
	TotalActual  float64 `json:"total_actual" example:"25"`
	Completed    bool    `json:"completed" example:"false"`
	PPC          float64 `json:"ppc" example:"50"`
}

// CauseCount is one bar of the cause-of-failure histogram.
type CauseCount struct {
	Code  string `json:"code" example:"MATERIAL"`
	Label string `json:"label" example:"Material"`
	Count int    `json:"count" example:"2"`
}

// PlanMetrics is the full recomputed metric set for one weekly plan.
type PlanMetrics struct {
	PlanID                   int                   `json:"plan_id" example:"7"`
	DailyPPC                 [DaysPerWeek]float64  `json:"daily_ppc"`
	WeeklyPPC                float64               `json:"weekly_ppc" example:"75"`
	TotalActivities          int                   `json:"total_activities" example:"5"`
	PlannedActivities        int                   `json:"planned_activities" example:"4"`
	CompletedActivities      int                   `json:"completed_activities" example:"3"`
	ActivitiesWithConstraint int                   `json:"activities_with_constraint" example:"1"`
	Activities               []ActivityMetrics     `json:"activities"`
	CauseHistogram           []CauseCount          `json:"cause_histogram"`
}

// PlanMetricsResponse wraps the metrics payload.
type PlanMetricsResponse struct {
	Success bool        `json:"success" example:"true"`
	Message string      `json:"message,omitempty"`
	Data    PlanMetrics `json:"data"`
}
