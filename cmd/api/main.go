package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/clinicbook/clinicbook/internal/config"
	v1 "github.com/clinicbook/clinicbook/internal/handler/v1"
	"github.com/clinicbook/clinicbook/internal/middleware"
	"github.com/clinicbook/clinicbook/internal/repository"
	"github.com/clinicbook/clinicbook/internal/service"
	"github.com/clinicbook/clinicbook/pkg/auth"
	"github.com/clinicbook/clinicbook/pkg/database"
	"github.com/clinicbook/clinicbook/pkg/logger"
	"github.com/clinicbook/clinicbook/pkg/metrics"
	"github.com/clinicbook/clinicbook/pkg/tracer"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := tracer.Init(cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			zlog.Warn("tracer shutdown", zap.Error(err))
		}
	}()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}
	if err := database.Migrate(db, zlog); err != nil {
		return err
	}
	if cfg.App.SeedDemoData {
		if err := database.SeedDemo(db, zlog); err != nil {
			return err
		}
	}

	collector := metrics.NewCollector(cfg.App.Name, prometheus.DefaultRegisterer)
	jwtManager := auth.NewJWTManager(cfg.JWT)

	apptRepo := repository.NewAppointmentRepository(db)
	schedRepo := repository.NewScheduleRepository(db)
	doctorRepo := repository.NewDoctorRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	userRepo := repository.NewUserRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	auditSvc := service.NewAuditService(auditRepo, collector, zlog)
	defer auditSvc.Shutdown()

	authSvc := service.NewAuthService(userRepo, patientRepo, doctorRepo, jwtManager, auditSvc, zlog)
	scheduleSvc := service.NewScheduleService(schedRepo, auditSvc, zlog)
	availabilitySvc := service.NewAvailabilityService(schedRepo, apptRepo, zlog)
	bookingSvc := service.NewBookingService(apptRepo, schedRepo, doctorRepo, auditSvc, collector, zlog)
	apptSvc := service.NewAppointmentService(apptRepo, auditSvc, collector, zlog)
	directorySvc := service.NewDirectoryService(doctorRepo, zlog)
	adminSvc := service.NewAdminService(doctorRepo, patientRepo, apptRepo, userRepo, auditSvc,
		cfg.App.DoctorDefaultPassword, zlog)

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Metrics(collector))
	router.Use(middleware.RateLimit(cfg.RateLimit))
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowedOrigins,
		AllowMethods: cfg.CORS.AllowedMethods,
		AllowHeaders: cfg.CORS.AllowedHeaders,
		MaxAge:       cfg.CORS.MaxAge,
	}))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": cfg.App.Version})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1.RegisterRoutes(router, &v1.Handlers{
		Auth:        v1.NewAuthHandler(authSvc),
		Directory:   v1.NewDirectoryHandler(directorySvc),
		Booking:     v1.NewBookingHandler(availabilitySvc, bookingSvc, directorySvc),
		Appointment: v1.NewAppointmentHandler(apptSvc),
		Schedule:    v1.NewScheduleHandler(scheduleSvc),
		Admin:       v1.NewAdminHandler(adminSvc),
	}, jwtManager)

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("environment", cfg.App.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zlog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
