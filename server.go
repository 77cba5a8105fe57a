package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mattilda/billing_backend/cache"
	"github.com/mattilda/billing_backend/config"
	"github.com/mattilda/billing_backend/handlers"
	"github.com/mattilda/billing_backend/middlewares"
	"github.com/mattilda/billing_backend/models"
	"github.com/mattilda/billing_backend/services"
)

const defaultPort = "8080"

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	logger := config.GetLogger()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()

	db := config.GetDB()
	sqlDB, _ := db.DB()
	defer func() {
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	}()

	// AutoMigrate can run DDL that locks tables; allow running migrations
	// as a separate job instead.
	if !strings.EqualFold(strings.TrimSpace(os.Getenv("SKIP_MIGRATIONS")), "true") {
		models.MigrateTable(db)
	} else {
		logger.WithFields(logrus.Fields{"field": "migrations"}).Warn("SKIP_MIGRATIONS=true; skipping AutoMigrate on startup")
	}

	cacheClient := cache.NewRedisClient(config.GetRedisDB(), logger)

	schoolService := services.NewSchoolService(db, cacheClient, logger)
	studentService := services.NewStudentService(db, cacheClient, logger)
	invoiceService := services.NewInvoiceService(db, cacheClient, logger)
	paymentService := services.NewPaymentService(db, cacheClient, config.GetRedisLock(), logger)
	statementService := services.NewStatementService(db, logger)

	handler := handlers.NewHandler(
		schoolService,
		studentService,
		invoiceService,
		paymentService,
		statementService,
		cacheClient,
		logger,
	)

	handlers.RegisterValidations()

	r := gin.New()
	r.Use(middlewares.LoggingMiddleware(logger))
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig()))
	handler.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- srv.ListenAndServe()
	}()
	logger.WithFields(logrus.Fields{"port": port}).Info("server started")

	select {
	case <-sigCtx.Done():
		// graceful shutdown below
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithFields(logrus.Fields{"field": "http"}).Error("server stopped unexpectedly: " + err.Error())
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithFields(logrus.Fields{"field": "http"}).Error("shutdown did not drain cleanly: " + err.Error())
	}
}

// Production requires an explicit allowlist via CORS_ALLOWED_ORIGINS
// (comma-separated); everywhere else allows all for developer convenience.
func corsConfig() cors.Config {
	c := cors.DefaultConfig()
	allowedOrigins := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if strings.EqualFold(strings.TrimSpace(os.Getenv("GO_ENV")), "production") {
		if allowedOrigins == "" {
			c.AllowOrigins = []string{}
		} else {
			c.AllowOrigins = splitAndTrim(allowedOrigins)
		}
	} else {
		c.AllowAllOrigins = true
	}
	c.AddAllowMethods("GET", "POST", "PUT", "DELETE", "OPTIONS")
	c.AddAllowHeaders("Origin", "Content-Type", "X-API-Key", "X-Correlation-Id")
	c.AddExposeHeaders("Content-Length")
	return c
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
