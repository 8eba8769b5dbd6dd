package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"animehub/internal/anilist"
	"animehub/internal/api/handler"
	"animehub/internal/api/middleware"
	"animehub/internal/api/models"
	"animehub/internal/api/repository"
	"animehub/internal/api/service"
	"animehub/internal/catalog"
	"animehub/internal/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get database instance: %v", err)
	}
	defer sqlDB.Close()

	if err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Bookmark{},
		&models.Profile{},
		&models.AnimeList{},
		&models.ListItem{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Optional Redis response cache
	catalogOpts := []catalog.Option{}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer rdb.Close()
		catalogOpts = append(catalogOpts, catalog.WithRedis(rdb, cfg.CacheTTL))
	}

	anilistClient := anilist.NewClientWithURL(cfg.AniListAPIURL)
	catalogService := catalog.NewService(anilistClient, catalogOpts...)

	// Repositories and services
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	bookmarkRepo := repository.NewBookmarkRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	listRepo := repository.NewListRepository(db)

	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	bookmarkService := service.NewBookmarkService(bookmarkRepo)
	profileService := service.NewProfileService(profileRepo)
	listService := service.NewListService(listRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, cfg)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	bookmarkHandler := handler.NewBookmarkHandler(bookmarkService)
	profileHandler := handler.NewProfileHandler(profileService)
	listHandler := handler.NewListHandler(listService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	authHandler.RegisterRoutes(v1.Group("/auth"))
	catalogHandler.RegisterRoutes(v1.Group("/catalog"))

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	authHandler.RegisterSessionRoute(protected)
	bookmarkHandler.RegisterRoutes(protected.Group("/bookmarks"))
	profileHandler.RegisterRoutes(protected.Group("/profile"))
	listHandler.RegisterRoutes(protected.Group("/lists"))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: r,
	}

	go func() {
		log.Printf("API server running on port %d", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("shutdown signal received, stopping server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}
	log.Println("server stopped")
}
