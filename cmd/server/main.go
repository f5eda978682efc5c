// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/souqhub/souq-backend/internal/config"
	"github.com/souqhub/souq-backend/internal/database"
	"github.com/souqhub/souq-backend/internal/i18n"
	"github.com/souqhub/souq-backend/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}

	if cfg.Environment == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		gin.SetMode(gin.ReleaseMode)
	}

	// The database only exists in postgres mode; with the fixture provider
	// the whole storage layer lives in memory.
	var db *gorm.DB
	if !cfg.DataSource.UseMock() {
		db, err = database.Initialize(cfg.Database)
		if err != nil {
			logrus.WithError(err).Fatal("Failed to initialize database")
		}
		defer database.Close(db)

		if err := database.RunMigrations(db); err != nil {
			logrus.WithError(err).Fatal("Failed to run migrations")
		}
		if err := database.SeedInitialData(db); err != nil {
			logrus.WithError(err).Fatal("Failed to seed initial data")
		}
	} else {
		logrus.Info("Running with in-memory sample data")
	}

	if err := i18n.Initialize(cfg.I18n.LocalesPath); err != nil {
		logrus.WithError(err).Fatal("Failed to initialize i18n")
	}

	r := router.Initialize(db, cfg)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		logrus.WithFields(logrus.Fields{
			"port":        cfg.Server.Port,
			"data_source": cfg.DataSource.Mode,
		}).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Fatal("Server forced to shutdown")
	}

	logrus.Info("Server exited")
}
