package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/config"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/performance"
	appHTTP "github.com/cmlabs-hris/hris-mobile-gateway/internal/handler/http"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/backend"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/database"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/sse"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/storage"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hris-mobile-gateway/internal/service/attendance"
	dashboardService "github.com/cmlabs-hris/hris-mobile-gateway/internal/service/dashboard"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/service/file"
	leaveService "github.com/cmlabs-hris/hris-mobile-gateway/internal/service/leave"
	payslipService "github.com/cmlabs-hris/hris-mobile-gateway/internal/service/payslip"
	performanceService "github.com/cmlabs-hris/hris-mobile-gateway/internal/service/performance"
	profileService "github.com/cmlabs-hris/hris-mobile-gateway/internal/service/profile"
	projectService "github.com/cmlabs-hris/hris-mobile-gateway/internal/service/project"
	snapshotService "github.com/cmlabs-hris/hris-mobile-gateway/internal/service/snapshot"
	taskService "github.com/cmlabs-hris/hris-mobile-gateway/internal/service/task"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := appHTTP.NewLogger(cfg.App)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	location := cfg.Location()

	// Performance history is optional
	var historyRepo performance.HistoryRepository
	if cfg.Database.Enabled {
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			slog.Error("Error connecting to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		historyRepo = postgresql.NewPerformanceSnapshotRepository(db)
	} else {
		slog.Info("Performance history disabled")
	}

	backendClient := backend.NewClient(cfg.Backend)
	userRepo := backend.NewUserRepository(backendClient)
	actionRepo := backend.NewActionRepository(backendClient)

	JWTService := jwt.NewJWTService(cfg.Identity.Secret, cfg.Identity.SSETokenTTL)
	hub := sse.NewHub()

	var fileStorage *storage.LocalStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			slog.Error("Failed to initialize local storage", "error", err)
			os.Exit(1)
		}
	default:
		slog.Error("Unsupported storage type", "type", cfg.Storage.Type)
		os.Exit(1)
	}

	snapshots := snapshotService.NewSnapshotService(userRepo, historyRepo, hub, location, cfg.Refresh.Concurrency)

	// Without a history store the performance service reports "not enabled"
	performanceSvc := performanceService.NewPerformanceService(snapshots, historyRepo, location)
	profileSvc := profileService.NewProfileService(snapshots, location)
	dashboardSvc := dashboardService.NewDashboardService(snapshots, performanceSvc, location)
	attendanceSvc := attendanceService.NewAttendanceService(snapshots, actionRepo, cfg.Office, location)
	taskSvc := taskService.NewTaskService(snapshots, actionRepo, location)
	leaveSvc := leaveService.NewLeaveService(snapshots, actionRepo)
	projectSvc := projectService.NewProjectService(snapshots, actionRepo)
	payslipSvc := payslipService.NewPayslipService(snapshots, location)
	fileSvc := file.NewFileService(fileStorage)

	router := appHTTP.NewRouter(
		cfg.App,
		logger,
		JWTService,
		fileStorage.BasePath(),
		appHTTP.NewProfileHandler(profileSvc),
		appHTTP.NewDashboardHandler(dashboardSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewTaskHandler(taskSvc),
		appHTTP.NewLeaveHandler(leaveSvc),
		appHTTP.NewProjectHandler(projectSvc),
		appHTTP.NewPayslipHandler(payslipSvc),
		appHTTP.NewPerformanceHandler(performanceSvc),
		appHTTP.NewUploadHandler(fileSvc),
		appHTTP.NewEventHandler(JWTService, hub),
	)

	scheduler := cron.NewScheduler(ctx)
	cron.NewSnapshotJobs(snapshots, hub, historyRepo, cfg.Refresh.Interval, cfg.Refresh.SessionTTL, cfg.Database.RetentionDays).
		RegisterJobs(scheduler)
	// Scheduled runs wait one interval, so housekeeping also runs at boot
	if failed := scheduler.RunOnce(ctx); failed > 0 {
		slog.Warn("Startup jobs failed", "failed", failed)
	}
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
