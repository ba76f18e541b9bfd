package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/juegoya/juegoya/internal/auth"
	"github.com/juegoya/juegoya/internal/config"
	"github.com/juegoya/juegoya/internal/database"
	server "github.com/juegoya/juegoya/internal/http"
	"github.com/juegoya/juegoya/internal/match"
	"github.com/juegoya/juegoya/internal/metrics"
	"github.com/juegoya/juegoya/internal/notifier"
	"github.com/juegoya/juegoya/internal/notifier/slack"
	"github.com/juegoya/juegoya/internal/processor"
	"github.com/juegoya/juegoya/internal/profile"
	"github.com/juegoya/juegoya/internal/pubsub"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	matchStore := match.New(db)
	profileStore := profile.New(db)
	authenticator := auth.NewAuthenticator(cfg.Auth.JWTSecret)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()

	var announcer processor.Notifier = notifier.Noop{}
	if cfg.SlackEnabled() {
		announcer = slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, cfg.PublicBaseURL, metricsSvc)
	}
	proc := processor.New(announcer, metricsSvc)

	var events pubsub.PubSubClient
	if cfg.PubSubEnabled() {
		events, err = pubsub.New(context.Background(), cfg.PubSub.ProjectID, cfg.PubSub.Topic)
		if err != nil {
			log.Fatalf("Failed to initialize pubsub: %s", err)
		}
	} else {
		log.Info("Pub/Sub is not configured, roster events are processed in-process")
		events = pubsub.NewLocal(proc.Handle)
	}
	defer events.Close()

	s := server.NewServer(
		db,
		matchStore,
		profileStore,
		authenticator,
		metricsSvc,
		metricsHandler,
		cfg,
		proc,
		events,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
