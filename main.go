// @title           WeeklyWorks API
// @version         1.0
// @description     Weekly work planning backend: plan provisioning, daily check-ins, PPC metrics, plan acceptance and field interferences.

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @schemes http https
package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"strconv"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	_ "backend/docs"
	"backend/handlers"
	"backend/models"
	"backend/services"
	"backend/storage"
	"backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func CORSConfig() cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{
		"http://localhost:9000",
		"http://localhost:8080",
		"http://localhost:3000",
	}
	if origin := os.Getenv("CORS_ORIGIN"); origin != "" {
		corsConfig.AllowOrigins = append(corsConfig.AllowOrigins, origin)
	}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{
		"Content-Type", "Content-Length", "Accept-Encoding",
		"Accept", "Origin", "X-Requested-With", "Authorization", "User-Agent",
		"Cache-Control", "Referer", "X-Session-Id",
		"Access-Control-Request-Method", "Access-Control-Request-Headers",
	}
	corsConfig.AllowMethods = []string{
		"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD", "PATCH",
	}
	corsConfig.ExposeHeaders = []string{
		"Content-Length", "Authorization", "Content-Type",
	}
	corsConfig.MaxAge = 12 * time.Hour
	return corsConfig
}

var cronRunning int32

func safeGo(
	ctx context.Context,
	wg *sync.WaitGroup,
	name string,
	fn func(context.Context) error,
	cronLogger *log.Logger,
) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Printf("PANIC in %s: %v\n%s", name, r, debug.Stack())
				if cronLogger != nil {
					cronLogger.Printf("PANIC in %s: %v\n%s", name, r, debug.Stack())
				}
			}
		}()

		if err := fn(ctx); err != nil {
			log.Printf("%s failed: %v", name, err)
			if cronLogger != nil {
				cronLogger.Printf("%s failed: %v", name, err)
			}
		} else {
			log.Printf("%s completed successfully", name)
		}
	}()
}

// provisionWeeklyPlans makes sure every active project has a seeded plan row
// for the upcoming week, so planners open a pre-filled plan instead of an
// empty one. Manual get-or-create stays idempotent against it through the
// unique key and both paths seed through PopulatePlanActivities.
func provisionWeeklyPlans(ctx context.Context, db *sql.DB) error {
	nextWeek := time.Now().AddDate(0, 0, models.DaysPerWeek)
	window := services.ComputeWeek(nextWeek, services.ConfiguredWeekStart())

	projects, err := storage.ListActiveProjects(ctx, db)
	if err != nil {
		return err
	}

	for _, pair := range projects {
		companyID, projectID := pair[0], pair[1]

		_, err := storage.GetPlanByKey(ctx, db, companyID, projectID, window.ISOWeek, window.ISOYear)
		if err == nil {
			continue
		}
		if err != storage.ErrPlanNotFound {
			return err
		}

		plan := &models.WeeklyPlan{
			CompanyID: companyID,
			ProjectID: projectID,
			ISOWeek:   window.ISOWeek,
			ISOYear:   window.ISOYear,
			StartDate: window.Start,
			EndDate:   window.End,
		}
		if err := storage.InsertPlan(ctx, db, plan); err != nil {
			if storage.IsUniqueViolation(err) {
				continue
			}
			return err
		}
		if err := handlers.PopulatePlanActivities(ctx, db, plan, window); err != nil {
			return err
		}
		log.Printf("provisioned weekly plan W%02d/%d for project %d", window.ISOWeek, window.ISOYear, projectID)
	}
	return nil
}

func main() {
	db := storage.InitDB()
	defer db.Close()

	gdb := storage.InitGormDB()

	// Push notifications are optional; without credentials the transition
	// endpoints still work, they just skip the push.
	if credentialsPath := os.Getenv("FCM_CREDENTIALS_PATH"); credentialsPath != "" {
		fcmService, err := services.NewFCMService(credentialsPath, db)
		if err != nil {
			log.Printf("FCM disabled: %v", err)
		} else {
			handlers.SetFCMService(fcmService)
		}
	}

	cronLogFile, err := os.OpenFile("cron_errors.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Failed to open cron error log file: %v", err)
	}
	cronLogger := log.New(cronLogFile, "CRON_ERROR: ", log.LstdFlags)

	c := cron.New(
		cron.WithLogger(cron.VerbosePrintfLogger(log.New(os.Stdout, "cron: ", log.LstdFlags))),
	)

	// Daily maintenance at 05:30: session cleanup plus seeded plan
	// provisioning for the upcoming week.
	_, err = c.AddFunc("30 5 * * *", func() {
		if !atomic.CompareAndSwapInt32(&cronRunning, 0, 1) {
			log.Println("Previous cron still running. Skipping this run.")
			return
		}
		defer atomic.StoreInt32(&cronRunning, 0)

		log.Println("Starting daily maintenance cron job")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		var wg sync.WaitGroup

		safeGo(ctx, &wg, "CleanupExpiredSessions", func(ctx context.Context) error {
			return storage.CleanupExpiredSessions(db)
		}, cronLogger)

		safeGo(ctx, &wg, "ProvisionWeeklyPlans", func(ctx context.Context) error {
			provisionCtx, provisionCancel := utils.QueryContext(ctx, utils.MetricsQueryTimeout)
			defer provisionCancel()
			return provisionWeeklyPlans(provisionCtx, db)
		}, cronLogger)

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			log.Println("All cron jobs finished")
		case <-ctx.Done():
			log.Println("Cron timeout reached, jobs cancelled")
			if cronLogger != nil {
				cronLogger.Println("Cron timeout reached, jobs cancelled")
			}
		}
	})
	if err != nil {
		log.Fatalf("Failed to schedule daily maintenance cron job: %v", err)
	}
	c.Start()

	r := gin.Default()
	r.Use(cors.New(CORSConfig()))

	// ==================== 1. AUTH & LOGIN ====================
	r.POST("/api/login", handlers.LoginHandler(db))
	r.POST("/api/refresh-token", handlers.RefreshTokenHandler(db))
	r.POST("/api/validate-session", handlers.ValidateSession(db))
	r.POST("/api/logout", handlers.LogoutHandler(db))

	// ==================== 2. WEEKLY PLANS ====================
	r.POST("/api/weekly-plans", handlers.GetOrCreateWeeklyPlan(db))
	r.GET("/api/weekly-plans", handlers.GetWeeklyPlansByProject(db))
	r.GET("/api/weekly-plans/:id", handlers.GetWeeklyPlan(db))
	r.GET("/api/weekly-plans/:id/available-activities", handlers.GetAvailableActivities(db))
	r.POST("/api/weekly-plans/:id/activities", handlers.AddActivityToPlan(db))
	r.PUT("/api/planned-activities/:id", handlers.UpdatePlannedQuantities(db))
	r.DELETE("/api/planned-activities/:id", handlers.DeletePlannedActivity(db))

	// ==================== 3. CHECK-INS ====================
	r.POST("/api/planned-activities/:id/check-ins", handlers.RecordCheckIn(db))
	r.GET("/api/weekly-plans/:id/check-ins", handlers.GetCheckRecords(db))

	// ==================== 4. METRICS ====================
	r.GET("/api/weekly-plans/:id/metrics", handlers.GetPlanMetrics(db))
	r.POST("/api/weekly-plans/:id/metrics/recompute", handlers.RecomputePlanMetrics(db))

	// ==================== 5. ACCEPTANCE ====================
	r.POST("/api/weekly-plans/:id/submit", handlers.SubmitPlanToProduction(db, gdb))
	r.POST("/api/weekly-plans/:id/accept", handlers.AcceptPlan(db, gdb))
	r.POST("/api/weekly-plans/:id/reject", handlers.RejectPlan(db, gdb))
	r.POST("/api/weekly-plans/:id/return", handlers.ReturnPlanToPlanning(db, gdb))
	r.POST("/api/weekly-plans/:id/start-execution", handlers.StartPlanExecution(db, gdb))
	r.POST("/api/weekly-plans/:id/complete", handlers.CompletePlan(db, gdb))
	r.GET("/api/weekly-plans/:id/events", handlers.GetAcceptanceEvents(db, gdb))

	// ==================== 6. INTERFERENCES ====================
	r.POST("/api/weekly-plans/:id/interferences", handlers.ReportInterference(db))
	r.GET("/api/weekly-plans/:id/interferences", handlers.GetInterferences(db))
	r.POST("/api/interferences/:id/promote", handlers.PromoteInterference(db))

	// ==================== 7. ACTIVITY LOGS ====================
	r.GET("/api/logs", handlers.GetActivityLogsHandler(db))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	port := os.Getenv("PORT")
	if port == "" {
		port = "9000"
	}
	portInt, err := strconv.Atoi(port)
	if err != nil || portInt < 0 || portInt > 65535 {
		log.Fatalf("Invalid PORT environment variable: %s", port)
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cronCtx := c.Stop()
	select {
	case <-cronCtx.Done():
	case <-time.After(10 * time.Second):
		log.Println("Cron jobs did not finish before shutdown timeout")
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exiting")
}
