// main.go - Entry point for the task management backend

package main // Declares the package name

import ( // Import required packages
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-task-backend/auth"       // Identity provider
	"go-task-backend/config"     // Project config management
	"go-task-backend/database"   // Database connection and setup
	"go-task-backend/events"     // Task event bus and WebSocket hub
	"go-task-backend/handlers"   // HTTP handlers for API endpoints
	"go-task-backend/kv"         // Key-value namespace
	"go-task-backend/logger"     // logrus setup
	"go-task-backend/middleware" // Request logging and recovery
	"go-task-backend/mqtt"       // MQTT event publisher
	"go-task-backend/store"      // User and task records

	"github.com/gin-contrib/cors" // CORS middleware
	"github.com/gin-gonic/gin"    // Gin web framework
)

const shutdownTimeout = 10 * time.Second

func main() { // Main function, program entry point
	// STEP 1: Load configuration and establish connections
	cfg := config.MustLoad()
	log := logger.Setup(cfg.Env, cfg.LogLevel)
	log.WithField("env", cfg.Env).Info("application start")

	if err := database.Connect(cfg.DBPath); err != nil { // Connect to the database
		log.WithError(err).Fatal("DB connection error")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bus := events.NewBus(cfg.EventBuffer, log)
	hub := events.NewHub(log)
	bus.Subscribe(hub)
	if cfg.MQTTBroker != "" {
		client, err := mqtt.Connect(cfg.MQTTBroker, cfg.MQTTClientID) // Connect to the MQTT broker
		if err != nil {
			log.WithError(err).Fatal("MQTT connection error")
		}
		defer client.Disconnect(250)
		bus.Subscribe(mqtt.NewPublisher(client, cfg.MQTTTopic))
	}
	go bus.Run(ctx)

	records := kv.New(database.DB)
	h := handlers.New(handlers.Deps{
		Log:        log,
		Auth:       auth.NewLocal(database.DB, cfg.JWTSecret, cfg.TokenTTL),
		Users:      store.NewUsers(records),
		Tasks:      store.NewTasks(records),
		Bus:        bus,
		Hub:        hub,
		AdminEmail: cfg.AdminEmail,
	})
	if cfg.AdminPass != "" {
		if err := h.EnsureAdmin(ctx, cfg.AdminPass, cfg.AdminName); err != nil {
			log.WithError(err).Fatal("admin bootstrap error")
		}
	}

	// STEP 2: Create Gin router and configure routes
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Recovery(log), middleware.RequestLogger(log))
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowHeaders:    []string{"*"},
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))
	h.EnrichRoutes(r)

	// STEP 3: Start the web server and wait for a signal
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("HTTP server error")
		}
	}()
	log.WithField("port", cfg.Port).Info("listening")

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
	log.Info("application stopped")
}
