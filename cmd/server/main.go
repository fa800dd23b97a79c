package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ovofarm/backoffice/internal/auth"
	"github.com/ovofarm/backoffice/internal/handlers"
	"github.com/ovofarm/backoffice/internal/middleware"
	"github.com/ovofarm/backoffice/internal/service"
	"github.com/ovofarm/backoffice/internal/storage/sqlite"
	"github.com/ovofarm/backoffice/internal/validation"
	"github.com/ovofarm/backoffice/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	logging.Setup()

	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	dbPath := getEnv("DB_PATH", "./data/backoffice.db")
	port := getEnv("PORT", "8080")
	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	tokenTTL := 24 * time.Hour
	if hours := getEnv("TOKEN_TTL_HOURS", ""); hours != "" {
		h, err := strconv.Atoi(hours)
		if err != nil || h <= 0 {
			slog.Error("Invalid TOKEN_TTL_HOURS", "value", hours)
			os.Exit(1)
		}
		tokenTTL = time.Duration(h) * time.Hour
	}

	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", dbPath)

	orderSvc := service.NewOrderService(store)
	billingSvc := service.NewBillingService(store)
	paymentSvc := service.NewPaymentService(store)
	statsSvc := service.NewStatsService(store)
	userSvc := service.NewUserService(store)

	authenticator := auth.NewPasswordAuthenticator(store)
	jwtManager := auth.NewJWTManager(jwtSecret, tokenTTL)

	v := validation.New()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogging(), middleware.Metrics())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handlers.RegisterAuthRoutes(router, authenticator, jwtManager, v)

	authed := router.Group("/", middleware.RequireAuth(jwtManager))
	handlers.RegisterOrderRoutes(authed, orderSvc, v)
	handlers.RegisterBillRoutes(authed, billingSvc, v)
	handlers.RegisterPaymentRoutes(authed, paymentSvc, v)
	handlers.RegisterReportRoutes(authed, handlers.ReportServices{
		Orders:   orderSvc,
		Billing:  billingSvc,
		Payments: paymentSvc,
		Stats:    statsSvc,
	})

	admin := router.Group("/", middleware.RequireAdmin(jwtManager))
	handlers.RegisterUserRoutes(admin, userSvc)

	addr := fmt.Sprintf(":%s", port)
	slog.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
