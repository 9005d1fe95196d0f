package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"eventplanner/internal/config"
	"eventplanner/internal/handler"
	"eventplanner/internal/places"
	"eventplanner/internal/repository"
	"eventplanner/internal/service"
	"eventplanner/internal/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	log.Printf("Event Planner")
	log.Printf("Version: %s", Version)
	log.Printf("Build Time: %s", BuildTime)
	log.Printf("Git Commit: %s", GitCommit)
	log.Println("")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	if cfg.Google.APIKey == "" {
		log.Println("⚠️  GOOGLEMAPS_API_KEY is not set - venue search will fail")
	}
	provider := places.NewGoogleClient(&cfg.Google)

	// Optional search-log database
	var repo *repository.PlannerRepository
	if cfg.Postgres.DSN != "" {
		repo, err = repository.NewPlannerRepository(
			cfg.Postgres.DSN,
			cfg.Postgres.MaxConnections,
			cfg.Postgres.MaxIdleConnections,
		)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer repo.Close()
		log.Println("✅ Connected to PostgreSQL database")
	} else {
		log.Println("⚠️  DATABASE_URL not set - search logging disabled")
	}

	// Session store: Redis when configured, in-memory otherwise
	var store session.Store
	if cfg.Redis.Addr != "" {
		redisStore, err := session.NewRedisStore(&cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisStore.Close()
		store = redisStore
		log.Printf("✅ Using Redis session store at %s", cfg.Redis.Addr)
	} else {
		store = session.NewMemoryStore()
		log.Println("✅ Using in-memory session store")
	}

	// Optional AI client for slot extraction and follow-up answers
	var aiClient *service.OpenAIClient
	if cfg.OpenAI.Enabled {
		aiClient = service.NewOpenAIClient(&cfg.OpenAI)
		log.Printf("✅ OpenAI client initialized")
		log.Printf("   - API Base: %s", cfg.OpenAI.APIBase)
		log.Printf("   - Chat model: %s", cfg.OpenAI.ChatModel)
	} else {
		log.Println("⚠️  OpenAI is disabled - falling back to rule-based slot extraction")
		log.Println("   Set OPENAI_API_KEY environment variable to enable AI extraction")
	}

	// Initialize services
	timeResolver := service.NewTimeResolver()
	extractor := service.NewSlotExtractor(aiClient)
	venueService := service.NewVenueService(provider, timeResolver, repo)
	flow := service.NewFlow(extractor, venueService, timeResolver, aiClient, &cfg.Search)

	log.Println("✅ Services initialized")

	// Initialize handlers
	chatHandler := handler.NewChatHandler(flow, store)
	feedbackHandler := handler.NewFeedbackHandler(repo)

	// Setup Gin router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "healthy",
			"service":    "event-planner",
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// API routes
	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/sessions", chatHandler.CreateSession)
		apiV1.GET("/sessions/:id", chatHandler.GetSession)
		apiV1.POST("/sessions/:id/messages", chatHandler.PostMessage)
		apiV1.DELETE("/sessions/:id", chatHandler.DeleteSession)

		apiV1.POST("/feedback", feedbackHandler.Submit)
	}

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("🚀 Starting server on %s", addr)
	log.Printf("📝 API: http://localhost:%d/api/v1", cfg.Server.Port)

	go func() {
		if err := router.Run(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	log.Println("✅ Server stopped")
}
