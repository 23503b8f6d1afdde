package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"devshowcase/showcase-backend/internal/analytics"
	"devshowcase/showcase-backend/internal/auth"
	"devshowcase/showcase-backend/internal/competitions"
	"devshowcase/showcase-backend/internal/config"
	"devshowcase/showcase-backend/internal/images"
	"devshowcase/showcase-backend/internal/notifications"
	"devshowcase/showcase-backend/internal/projects"
	"devshowcase/showcase-backend/internal/tags"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// ORM connection, used by all the CRUD repositories.
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to access database pool", zap.Error(err))
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	defer sqlDB.Close()

	if err := db.AutoMigrate(
		&auth.User{},
		&tags.Tag{},
		&projects.Project{},
		&images.ProjectImage{},
		&competitions.Competition{},
		&competitions.CompetitionReviewer{},
		&competitions.ProjectRanking{},
		&notifications.Notification{},
	); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Separate sqlx connection for the raw analytics queries.
	analyticsDB, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Fatal("Failed to connect analytics database", zap.Error(err))
	}
	defer analyticsDB.Close()

	storage, err := images.NewS3Storage(context.Background(), cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	// Auth
	authRepo := auth.NewRepository(db)
	authService := auth.NewService(authRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authHandler := auth.NewHandler(authService)

	// Tags
	tagRepo := tags.NewRepository(db)
	tagService := tags.NewService(tagRepo)
	tagHandler := tags.NewHandler(tagService)

	// Notifications
	hub := notifications.NewHub(logger)
	notificationRepo := notifications.NewRepository(db)
	notificationService := notifications.NewService(notificationRepo, hub, logger)
	notificationHandler := notifications.NewHandler(notificationService, hub)

	// Projects
	projectRepo := projects.NewRepository(db)
	projectService := projects.NewService(projectRepo, tagRepo, notificationService, logger)
	projectHandler := projects.NewHandler(projectService)

	// Images
	imageRepo := images.NewRepository(db)
	imageService := images.NewService(imageRepo, storage, projectService)
	imageHandler := images.NewHandler(imageService)

	// Competitions
	competitionRepo := competitions.NewRepository(db)
	competitionService := competitions.NewService(competitionRepo, projectRepo, imageService, logger)
	competitionHandler := competitions.NewHandler(competitionService)

	// Analytics
	analyticsRepo := analytics.NewRepository(analyticsDB)
	analyticsService := analytics.NewService(analyticsRepo, logger)
	analyticsHandler := analytics.NewHandler(analyticsService)

	scheduler := competitions.NewScheduler(competitionService, logger)
	if err := scheduler.Start(cfg.Review.CloseCron); err != nil {
		logger.Fatal("Failed to start review scheduler", zap.Error(err))
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	auth.RegisterRoutes(router, authHandler, authService)
	tagHandler.RegisterRoutes(router, authService)
	projectHandler.RegisterRoutes(router, authService)
	imageHandler.RegisterRoutes(router, authService)
	competitionHandler.RegisterRoutes(router, authService)
	analyticsHandler.RegisterRoutes(router, authService)
	notificationHandler.RegisterRoutes(router, authService)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
		})
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	logger.Info("Server started", zap.String("addr", cfg.Server.Addr()))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	scheduler.Stop()
	hub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
