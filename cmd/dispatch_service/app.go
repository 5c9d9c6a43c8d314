package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"

	"relief-dispatch/internal/classifier"
	"relief-dispatch/internal/general/config"
	"relief-dispatch/internal/general/jwt"
	"relief-dispatch/internal/general/logger"
	"relief-dispatch/internal/general/postgres"
	"relief-dispatch/internal/general/rabbitmq"
	"relief-dispatch/internal/general/rediscache"
	"relief-dispatch/internal/general/websocket"
	v1 "relief-dispatch/internal/handler/http/v1"
	dispatchsvc "relief-dispatch/internal/software/dispatch/service"
	incidentsvc "relief-dispatch/internal/software/incident/service"
	respondersvc "relief-dispatch/internal/software/responder/service"
)

// run wires the dispatch service and blocks until ctx is cancelled.
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.LogLevel)
	log.Info("Dispatch service initializing")

	if err := runMigrations(cfg, log); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	pool, err := postgres.NewPool(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer pool.Close()

	redisClient, err := rediscache.NewClient(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	rmq, err := rabbitmq.Connect(cfg, log)
	if err != nil {
		return err
	}
	defer rmq.Close()
	pub := rabbitmq.NewPublisher(rmq)

	jwtManager := jwt.NewManager(cfg.JWTSecret, cfg.JWTAccessTTL)
	hub := websocket.NewHub(log, jwtManager)

	uow := postgres.NewUnitOfWork(pool)
	incidentRepo := postgres.NewIncidentRepository(pool)
	eventRepo := postgres.NewIncidentEventRepository(pool)
	responderRepo := postgres.NewResponderRepository(pool)
	assignmentRepo := postgres.NewAssignmentRepository(pool)
	incidentCache := rediscache.NewIncidentCache(redisClient, cfg.CacheTTL, log)

	incidentService := incidentsvc.New(
		uow, incidentRepo, eventRepo, incidentCache,
		classifier.NewRules(), pub, hub, cfg.Dispatch, log,
	)
	dispatchService := dispatchsvc.New(
		uow, incidentRepo, responderRepo, assignmentRepo,
		pub, hub, cfg.Dispatch, log,
	)
	responderService := respondersvc.New(uow, responderRepo, log)

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	handler := v1.NewHandler(incidentService, dispatchService, responderService, log)
	handler.RegisterRoutes(router.Group("/api/v1"), jwtManager, log)

	router.GET("/ws/ops", func(c *gin.Context) {
		hub.Connect(c.Writer, c.Request)
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.HTTPPort).Info("Dispatch service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down")
		shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shCtx); err != nil {
			log.WithError(err).Error("HTTP server shutdown failed")
		}
		return nil
	case err := <-errCh:
		return err
	}
}

func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New("file://migrations", migrationURL)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied")
	return nil
}
