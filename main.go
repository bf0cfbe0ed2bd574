package main

import (
	"fmt"
	"log"
	"time"

	"vocab-service/internal/cache"
	"vocab-service/internal/config"
	"vocab-service/internal/db"
	"vocab-service/internal/dictstore"
	"vocab-service/internal/event"
	"vocab-service/internal/handlers"
	"vocab-service/internal/middleware"
	"vocab-service/internal/repository"
	"vocab-service/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
	cfg := config.Load()
	if cfg.MongoDB.URI == "" {
		log.Fatal("MONGO_URI is required")
	}
	if cfg.Auth.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	if err := db.InitMongo(&cfg.MongoDB); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.CloseMongo()

	// Redis is optional; without it the dictionary page cache and attempt
	// deduplication are skipped.
	redisClient := cache.NewClient(&cfg.Redis)

	// RabbitMQ event publisher
	var publisher *event.Publisher
	if cfg.RabbitMQ.URI != "" && cfg.RabbitMQ.Exchange != "" {
		var err error
		publisher, err = event.NewPublisher(cfg.RabbitMQ.URI, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, events will not be published")
	}

	// Dictionary catalog from JSON files
	dictStore := dictstore.NewStore(cfg.Dict, redisClient)
	if err := dictStore.LoadAll(); err != nil {
		log.Fatalf("Failed to load dictionaries: %v", err)
	}
	log.Printf("Loaded %d dictionaries from %s", len(dictStore.List()), cfg.Dict.Dir)

	database := db.Database

	// Users
	userRepo := repository.NewUserRepository(database)
	authService := service.NewAuthService(userRepo, cfg.Auth, publisher)
	authHandler := handlers.NewAuthHandler(authService)

	// Learning progress
	progressRepo := repository.NewProgressRepository(database)
	wrongWordRepo := repository.NewWrongWordRepository(database)
	progressService := service.NewProgressService(progressRepo, wrongWordRepo, dictStore, redisClient, publisher)
	progressHandler := handlers.NewProgressHandler(progressService)

	// Wrong-word review
	reviewService := service.NewReviewService(wrongWordRepo, progressRepo, publisher)
	reviewHandler := handlers.NewReviewHandler(reviewService)

	// Dictionary catalog
	dictService := service.NewDictionaryService(dictStore, publisher)
	dictHandler := handlers.NewDictionaryHandler(dictService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": cfg.Server.ServiceName})
	})

	// Public routes
	publicAuth := r.Group("/public/vocab/auth")
	{
		publicAuth.POST("/register", authHandler.Register)
		publicAuth.POST("/login", authHandler.Login)
	}

	publicDict := r.Group("/public/vocab/dict")
	{
		publicDict.GET("/", dictHandler.ListDictionaries)
		publicDict.GET("/:id", dictHandler.GetDictionary)
		publicDict.GET("/:id/words", dictHandler.GetWordPage)
	}

	// Protected routes
	protected := r.Group("/protected/vocab")
	protected.Use(middleware.AuthRequired(cfg.Auth.JWTSecret))
	{
		protected.GET("/auth/profile", authHandler.Profile)

		progress := protected.Group("/progress/:dictId")
		{
			progress.GET("/", progressHandler.ListProgress)
			progress.GET("/word", progressHandler.GetWordProgress)
			progress.GET("/due", progressHandler.ListDue)
			progress.GET("/practice", progressHandler.PracticeBatch)
			progress.POST("/attempt", progressHandler.SubmitAttempt)
			progress.POST("/reset", progressHandler.ResetProgress)
			progress.POST("/master", progressHandler.MarkMastered)
		}

		review := protected.Group("/review/:dictId")
		{
			review.GET("/queue", reviewHandler.GetQueue)
			review.GET("/resolved", reviewHandler.GetResolvedHistory)
			review.POST("/submit", reviewHandler.SubmitReview)
			review.POST("/resolve", reviewHandler.Resolve)
			review.POST("/unresolve", reviewHandler.Unresolve)
			review.PUT("/notes", reviewHandler.UpdateNotes)
		}

		admin := protected.Group("/admin")
		admin.Use(middleware.AdminRequired())
		{
			admin.POST("/dict/import", dictHandler.ImportDictionary)
		}
	}

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	log.Printf("%s listening on %s", cfg.Server.ServiceName, addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
