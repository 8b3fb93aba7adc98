package main

import (
	"fmt"
	"log"

	"github.com/sourabhsalvis2-sketch/Fruit-Shop/internal/config"
	"github.com/sourabhsalvis2-sketch/Fruit-Shop/internal/database"
	"github.com/sourabhsalvis2-sketch/Fruit-Shop/internal/domain"
	"github.com/sourabhsalvis2-sketch/Fruit-Shop/internal/handler"
	"github.com/sourabhsalvis2-sketch/Fruit-Shop/internal/middleware"
	"github.com/sourabhsalvis2-sketch/Fruit-Shop/internal/render"
	"github.com/sourabhsalvis2-sketch/Fruit-Shop/internal/repository"
	"github.com/sourabhsalvis2-sketch/Fruit-Shop/internal/server"
	"github.com/sourabhsalvis2-sketch/Fruit-Shop/internal/service"
	"github.com/sourabhsalvis2-sketch/Fruit-Shop/internal/storage"
)

func main() {
	// Load configuration
	log.Println("Loading configuration...")
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to Postgres for user accounts
	log.Println("Connecting to database...")
	db, err := database.NewPostgresDB(cfg.PostgresDBURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	userRepo := repository.NewPostgresUserRepository(db.GetPool())

	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:             userRepo,
		JWTSecret:            cfg.JWTSecret,
		JWTAccessExpiration:  cfg.JWTAccessExpiration,
		JWTRefreshExpiration: cfg.JWTRefreshExpiration,
		RequireConfirmation:  cfg.RequireEmailConfirmation,
	})

	// Business identity printed on every bill
	business := domain.BusinessProfile{
		Name:    cfg.BusinessName,
		Address: cfg.BusinessAddress,
		Phone:   cfg.BusinessPhone,
	}

	// Renderers share one asset loader for the logo and signature images
	assets := render.NewAssetLoader(cfg.LogoPath, cfg.SignaturePath)
	vectorRenderer := render.NewVectorRenderer(assets, business)
	snapshotRenderer := render.NewSnapshotRenderer(assets, business)

	// Blob store for published bill PDFs
	log.Println("Initializing blob storage...")
	uploader, err := storage.NewS3Uploader(&storage.Config{
		Endpoint:        cfg.SupabaseS3Endpoint,
		AccessKeyID:     cfg.SupabaseAccessKeyID,
		AccessKeySecret: cfg.SupabaseAccessKeySecret,
		Bucket:          cfg.SupabaseBucket,
		Region:          cfg.SupabaseRegion,
	})
	if err != nil {
		log.Fatalf("Failed to initialize blob storage: %v", err)
	}

	billService := service.NewBillService(vectorRenderer, snapshotRenderer, uploader, business, cfg.MaxWorkers)

	// Create handlers
	authHandler := handler.NewAuthHandler(authService)
	billHandler := handler.NewBillHandler(billService)

	// Create and configure server
	log.Println("Configuring server...")
	appServer := server.NewServer(cfg)
	appServer.OnShutdown(db.Close)

	authMiddleware := middleware.AuthMiddleware(authService)
	authHandler.RegisterRoutes(appServer.GetRouter(), authMiddleware)
	billHandler.RegisterRoutes(appServer.GetRouter(), authMiddleware)

	// Start server (blocking call)
	log.Printf("Starting server on port %d...", cfg.Port)
	if err := appServer.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	fmt.Println("Server shutdown complete")
}
