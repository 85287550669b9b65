package http

import (
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/config"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// NewLogger builds the JSON logger shared by the request logger and the
// rest of the app.
func NewLogger(cfg config.AppConfig) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       parseLevel(cfg.LogLevel),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hris-mobile-gateway"),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func NewRouter(
	cfg config.AppConfig,
	logger *slog.Logger,
	JWTService jwt.Service,
	uploadsDir string,
	profileHandler ProfileHandler,
	dashboardHandler DashboardHandler,
	attendanceHandler AttendanceHandler,
	taskHandler TaskHandler,
	leaveHandler LeaveHandler,
	projectHandler ProjectHandler,
	payslipHandler PayslipHandler,
	performanceHandler PerformanceHandler,
	uploadHandler UploadHandler,
	eventHandler EventHandler,
) *chi.Mux {
	r := chi.NewRouter()

	allowedOrigins := cfg.CORS
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:8081", "http://localhost:19006"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if uploadsDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir))))
	}

	r.Route("/api/v1", func(r chi.Router) {
		// SSE authenticates with a query token
		r.Get("/events", eventHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verify(JWTService.JWTAuth(), jwtauth.TokenFromHeader))
			r.Use(middleware.AuthRequired)

			r.Post("/events/token", eventHandler.GetSSEToken)

			r.Route("/me", func(r chi.Router) {
				r.Get("/", profileHandler.Get)
				r.Post("/refresh", profileHandler.Refresh)
			})

			r.Get("/dashboard", dashboardHandler.Get)

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/today", attendanceHandler.Today)
				r.Get("/week", attendanceHandler.Week)
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", taskHandler.List)
				r.Patch("/subtasks/{id}", taskHandler.UpdateSubtaskStatus)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", taskHandler.Get)
					r.Patch("/status", taskHandler.UpdateStatus)
					r.Post("/time-entries/start", taskHandler.StartTimer)
					r.Post("/time-entries/stop", taskHandler.StopTimer)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Get("/", leaveHandler.List)
				r.Post("/", leaveHandler.Create)
				r.Get("/balance", leaveHandler.Balance)
			})

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", projectHandler.List)
				r.Delete("/notes/{id}", projectHandler.DeleteNote)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", projectHandler.Get)
					r.Post("/comments", projectHandler.AddComment)
					r.Post("/work-logs", projectHandler.AddWorkLog)
				})
			})

			r.Get("/payslips", payslipHandler.List)
			r.Get("/payslips/{id}/document", payslipHandler.Document)
			r.Get("/performance/history", performanceHandler.History)
			r.Post("/uploads", uploadHandler.Upload)
		})
	})
	return r
}
