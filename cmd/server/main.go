// Package main runs the fleet console HTTP API with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/drivesphere/backend/config"
	"github.com/drivesphere/backend/internal/auth"
	"github.com/drivesphere/backend/internal/companies"
	"github.com/drivesphere/backend/internal/dashboard"
	"github.com/drivesphere/backend/internal/drivers"
	"github.com/drivesphere/backend/internal/emaillogs"
	"github.com/drivesphere/backend/internal/invitations"
	"github.com/drivesphere/backend/internal/middleware"
	"github.com/drivesphere/backend/internal/models"
	"github.com/drivesphere/backend/internal/requests"
	"github.com/drivesphere/backend/internal/routes"
	"github.com/drivesphere/backend/internal/trailers"
	"github.com/drivesphere/backend/internal/trips"
	"github.com/drivesphere/backend/internal/trucks"
	"github.com/drivesphere/backend/pkg/database"
	"github.com/drivesphere/backend/pkg/queue"
	"github.com/drivesphere/backend/pkg/redis"
	"github.com/drivesphere/backend/pkg/response"
	"github.com/drivesphere/backend/pkg/storage"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	var s3Client *storage.S3
	if cfg.AWS.Region != "" {
		s3Cfg := storage.S3Config{
			Region:               cfg.AWS.Region,
			AccessKeyID:          cfg.AWS.AccessKeyID,
			SecretAccessKey:      cfg.AWS.SecretAccessKey,
			DocsBucket:           cfg.AWS.DocsBucket,
			PresignExpireMinutes: cfg.AWS.PresignExpireMinutes,
		}
		s3Client, err = storage.NewS3(ctx, s3Cfg, logger)
		if err != nil {
			logger.Warn("s3 disabled", zap.Error(err))
		}
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)
	jobQueue := queue.NewQueue(rdb.Client, logger)

	// Auth
	authRepo := auth.NewRepository(pool)
	authHandler := auth.NewHandler(authRepo, jwtService, logger)

	// Companies and self-serve signup
	companyRepo := companies.NewRepository(pool)
	companyHandler := companies.NewHandler(companyRepo, jwtService, logger)

	// Invitations (issue + redeem)
	inviteRepo := invitations.NewRepository(pool)
	inviteHandler := invitations.NewHandler(inviteRepo, jobQueue, jwtService, cfg.Invite.SignupBaseURL, logger)

	// Company requests
	requestRepo := requests.NewRepository(pool)
	requestHandler := requests.NewHandler(requestRepo, logger)

	// Fleet
	driverRepo := drivers.NewRepository(pool)
	driverHandler := drivers.NewHandler(driverRepo, s3Client, logger)
	truckRepo := trucks.NewRepository(pool)
	truckHandler := trucks.NewHandler(truckRepo, logger)
	trailerRepo := trailers.NewRepository(pool)
	trailerHandler := trailers.NewHandler(trailerRepo, logger)
	routeRepo := routes.NewRepository(pool)
	routeHandler := routes.NewHandler(routeRepo, logger)
	tripRepo := trips.NewRepository(pool)
	tripHandler := trips.NewHandler(tripRepo, driverRepo, s3Client, logger)

	// Dashboards
	dashboardHandler := dashboard.NewHandler(pool, logger)

	// Email logs + resend
	emailLogsRepo := emaillogs.NewRepository(pool)
	emailLogsHandler := emaillogs.NewHandler(emailLogsRepo, inviteRepo, jobQueue, cfg.Invite.SignupBaseURL, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Public, rate limited: login, signup, invitation loading and redemption.
	publicLimit := middleware.RateLimit(rdb.Client, 20, time.Minute)
	router.POST("/auth/login", publicLimit, authHandler.Login)
	router.POST("/signup/admin", publicLimit, companyHandler.SignupAdmin)
	router.POST("/company-requests", publicLimit, requestHandler.Create)
	router.GET("/invitations/:token", publicLimit, inviteHandler.Load)
	router.POST("/invitations/:token/redeem", publicLimit, inviteHandler.Redeem)

	superadmin := string(models.RoleSuperadmin)
	admin := string(models.RoleAdmin)
	driver := string(models.RoleDriver)

	// Protected API (JWT required)
	api := router.Group("")
	api.Use(middleware.JWT(jwtService))
	{
		api.GET("/auth/me", authHandler.Me)
		api.PATCH("/auth/me", authHandler.UpdateMe)

		// Invitation issuing
		api.POST("/invitations", middleware.RequireRole(superadmin), inviteHandler.IssueCompany)
		api.GET("/invitations", middleware.RequireRole(superadmin), inviteHandler.List)
		api.POST("/driver-invites", middleware.RequireRole(admin), inviteHandler.IssueDriver)
		api.POST("/superadmin-invites", middleware.RequireRole(superadmin), inviteHandler.IssueSuperadmin)

		// Company requests review pipeline
		api.GET("/company-requests", middleware.RequireRole(superadmin), requestHandler.List)
		api.PATCH("/company-requests/:id", middleware.RequireRole(superadmin), requestHandler.Update)
		api.POST("/company-requests/:id/advance", middleware.RequireRole(superadmin), requestHandler.Advance)

		// Companies
		api.GET("/companies", middleware.RequireRole(superadmin), companyHandler.List)
		api.GET("/companies/:id", companyHandler.Get)
		api.PATCH("/companies/:id", middleware.RequireRole(superadmin, admin), companyHandler.Update)

		// Platform dashboard and email logs
		api.GET("/dashboard", middleware.RequireRole(superadmin), dashboardHandler.GetPlatform)
		api.GET("/emails", middleware.RequireRole(superadmin), emailLogsHandler.ListAll)
		api.POST("/emails/resend", middleware.RequireRole(superadmin), emailLogsHandler.Resend)

		// Company-scoped resources: admins manage, drivers read their own.
		co := api.Group("/companies/:id")
		co.Use(middleware.CompanyScope())
		{
			co.GET("/dashboard", middleware.RequireRole(superadmin, admin), dashboardHandler.GetCompany)
			co.GET("/emails", middleware.RequireRole(superadmin, admin), emailLogsHandler.ListByCompany)

			co.POST("/drivers", middleware.RequireRole(superadmin, admin), driverHandler.Create)
			co.GET("/drivers", middleware.RequireRole(superadmin, admin), driverHandler.List)
			co.GET("/drivers/:driverId", driverHandler.Get)
			co.PUT("/drivers/:driverId", middleware.RequireRole(superadmin, admin), driverHandler.Update)
			co.DELETE("/drivers/:driverId", middleware.RequireRole(superadmin, admin), driverHandler.Delete)
			co.POST("/drivers/:driverId/documents/:kind", middleware.RequireRole(superadmin, admin), driverHandler.UploadDocument)
			co.GET("/drivers/:driverId/documents/:kind", driverHandler.DownloadDocument)

			co.POST("/trucks", middleware.RequireRole(superadmin, admin), truckHandler.Create)
			co.GET("/trucks", middleware.RequireRole(superadmin, admin, driver), truckHandler.List)
			co.GET("/trucks/:truckId", truckHandler.Get)
			co.PUT("/trucks/:truckId", middleware.RequireRole(superadmin, admin), truckHandler.Update)
			co.DELETE("/trucks/:truckId", middleware.RequireRole(superadmin, admin), truckHandler.Delete)

			co.POST("/trailers", middleware.RequireRole(superadmin, admin), trailerHandler.Create)
			co.GET("/trailers", middleware.RequireRole(superadmin, admin, driver), trailerHandler.List)
			co.GET("/trailers/:trailerId", trailerHandler.Get)
			co.PUT("/trailers/:trailerId", middleware.RequireRole(superadmin, admin), trailerHandler.Update)
			co.DELETE("/trailers/:trailerId", middleware.RequireRole(superadmin, admin), trailerHandler.Delete)

			co.POST("/routes", middleware.RequireRole(superadmin, admin), routeHandler.Create)
			co.GET("/routes", middleware.RequireRole(superadmin, admin, driver), routeHandler.List)
			co.GET("/routes/:routeId", routeHandler.Get)
			co.PUT("/routes/:routeId", middleware.RequireRole(superadmin, admin), routeHandler.Update)
			co.DELETE("/routes/:routeId", middleware.RequireRole(superadmin, admin), routeHandler.Delete)

			co.POST("/trips", middleware.RequireRole(superadmin, admin), tripHandler.Create)
			co.GET("/trips", tripHandler.List)
			co.GET("/trips/:tripId", tripHandler.Get)
			co.POST("/trips/:tripId/odometer", tripHandler.Odometer)
			co.POST("/trips/:tripId/rate-confirmation", middleware.RequireRole(superadmin, admin), tripHandler.UploadRateConfirmation)
			co.GET("/trips/:tripId/rate-confirmation", tripHandler.DownloadRateConfirmation)
			co.DELETE("/trips/:tripId", middleware.RequireRole(superadmin, admin), tripHandler.Delete)
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
