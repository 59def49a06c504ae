package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geoattend/attendance-backend-go/internal/config"
	appHTTP "github.com/geoattend/attendance-backend-go/internal/handler/http"
	"github.com/geoattend/attendance-backend-go/internal/pkg/cron"
	"github.com/geoattend/attendance-backend-go/internal/pkg/database"
	"github.com/geoattend/attendance-backend-go/internal/pkg/jwt"
	"github.com/geoattend/attendance-backend-go/internal/pkg/keylock"
	"github.com/geoattend/attendance-backend-go/internal/pkg/sse"
	"github.com/geoattend/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/geoattend/attendance-backend-go/internal/service/attendance"
	doorService "github.com/geoattend/attendance-backend-go/internal/service/door"
	geofenceService "github.com/geoattend/attendance-backend-go/internal/service/geofence"
	leaveService "github.com/geoattend/attendance-backend-go/internal/service/leave"
	reportService "github.com/geoattend/attendance-backend-go/internal/service/report"
	scheduleService "github.com/geoattend/attendance-backend-go/internal/service/schedule"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)
	geofenceRepo := postgresql.NewGeofenceRepository(db)
	shortLeaveRepo := postgresql.NewShortLeaveRepository(db)
	doorEventRepo := postgresql.NewDoorEventRepository(db)
	deviceRepo := postgresql.NewDeviceRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)
	locks := keylock.New()
	hub := sse.NewHub()

	resolver := scheduleService.NewScheduleResolver(scheduleRepo)
	validator := geofenceService.NewGeofenceValidator(geofenceRepo)
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		resolver,
		validator,
		locks,
		cfg.Attendance.LockWaitTimeout,
		hub,
	)
	leaveTracker := leaveService.NewLeaveTracker(
		shortLeaveRepo,
		attendanceRepo,
		resolver,
		locks,
		cfg.Attendance.LockWaitTimeout,
	)
	aggregator := reportService.NewMonthlyAggregator(attendanceRepo, resolver, nil)
	doorSvc := doorService.NewDoorService(
		doorEventRepo,
		deviceRepo,
		attendanceRepo,
		attendanceSvc,
		resolver,
		hub,
		cfg.Attendance.ReplayTolerance,
		cfg.Attendance.CorrelationWindow,
	)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	reportHandler := appHTTP.NewReportHandler(aggregator)
	leaveHandler := appHTTP.NewLeaveHandler(leaveTracker)
	doorHandler := appHTTP.NewDoorHandler(doorSvc, JWTService, hub)
	settingsHandler := appHTTP.NewSettingsHandler(resolver, validator)

	router := appHTTP.NewRouter(
		JWTService,
		attendanceHandler,
		reportHandler,
		leaveHandler,
		doorHandler,
		settingsHandler,
	)

	doorJobs := cron.NewDoorJobs(doorSvc, postgresql.NewCompanyLister(db))
	scheduler := cron.NewScheduler()
	scheduler.AddJob("correlate-door-unlocks", cfg.Attendance.SweepInterval, doorJobs.CorrelateDoorUnlocks)
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
			shutdown <- syscall.SIGTERM
		}
	}()

	<-shutdown

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		fmt.Println("Shutdown error:", err)
	}
}
