package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stvhwngwrtr/shopify-ai-showcase/internal/capture"
	"github.com/stvhwngwrtr/shopify-ai-showcase/internal/config"
	"github.com/stvhwngwrtr/shopify-ai-showcase/internal/database"
	"github.com/stvhwngwrtr/shopify-ai-showcase/internal/handlers"
	"github.com/stvhwngwrtr/shopify-ai-showcase/internal/markup"
	"github.com/stvhwngwrtr/shopify-ai-showcase/internal/middleware"
	"github.com/stvhwngwrtr/shopify-ai-showcase/internal/pipeline"
	"github.com/stvhwngwrtr/shopify-ai-showcase/internal/publish"
	"github.com/stvhwngwrtr/shopify-ai-showcase/internal/recorder"
	"github.com/stvhwngwrtr/shopify-ai-showcase/internal/render"
	"github.com/stvhwngwrtr/shopify-ai-showcase/internal/supabase"
)

const captureTimeout = 60 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Remote capture tier (optional): absent credentials mean the local
	// raster tier serves every render.
	var captureClient *capture.Client
	if cfg.CaptureConfigured() {
		captureClient = capture.NewClient(cfg.ScreenshotAPIBaseURL, cfg.ScreenshotAPIKey, captureTimeout)
		log.Println("Screenshot capture service configured")
	} else {
		log.Println("Warning: screenshot capture not configured, renders will use local rasterization")
	}

	// Cloud storage tier (optional): absent credentials mean mockups are
	// published as inline data URIs.
	var uploader publish.CloudUploader
	var realtimeClient *supabase.RealtimeClient
	if cfg.StorageConfigured() {
		storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, cfg.SupabaseStorageBucket)
		if err != nil {
			log.Fatalf("Failed to initialize storage client: %v", err)
		}
		uploader = storageClient

		realtimeClient, err = supabase.NewRealtimeClient(cfg.SupabaseURL, cfg.SupabasePublishableKey)
		if err != nil {
			log.Fatalf("Failed to initialize Supabase realtime client: %v", err)
		}
	} else {
		log.Println("Warning: Supabase storage not configured, mockups will be published inline")
	}

	// Record store: Postgres when DATABASE_URL is set, in-memory otherwise.
	var store recorder.Store
	if cfg.DatabaseURL != "" {
		migrator, err := database.NewMigrator(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to initialize migrator: %v", err)
		}
		if err := migrator.Run(); err != nil {
			migrator.Close()
			log.Fatalf("Migration failed: %v", err)
		}
		migrator.Close()
		log.Println("Migrations completed successfully")

		postStore, err := database.NewPostStore(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to initialize post store: %v", err)
		}
		defer postStore.Close()
		store = postStore
	} else {
		log.Println("Warning: DATABASE_URL not set, records are kept in memory and lost on restart")
		store = recorder.NewMemoryStore()
	}

	// Assemble the pipeline
	rec := recorder.NewRecorder(store)
	pipe := pipeline.New(
		markup.NewBuilder(),
		render.NewRenderer(captureClient),
		publish.NewPublisher(uploader),
		rec,
	)

	mockupsHandler := handlers.NewMockupsHandler(pipe, rec, realtimeClient)

	// Setup router
	router := gin.Default()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Health and metrics (no auth)
	router.GET("/health", handlers.HealthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := router.Group("/api/v1")
	if cfg.SupabaseJWTSecret != "" {
		api.Use(middleware.AuthMiddleware(cfg))
	} else {
		log.Println("Warning: SUPABASE_JWT_SECRET not set, API routes are unauthenticated")
	}

	api.POST("/mockups", mockupsHandler.CreateMockup)
	api.GET("/mockups/:session_id", mockupsHandler.GetMockup)
	api.POST("/mockups/:session_id/displayed", mockupsHandler.MarkDisplayed)

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
