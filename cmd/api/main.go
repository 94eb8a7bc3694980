package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/smartchef/ai-service/config"
	"github.com/smartchef/ai-service/internal/api"
	"github.com/smartchef/ai-service/internal/database"
	"github.com/smartchef/ai-service/internal/router"
	"github.com/smartchef/ai-service/internal/server"
	"github.com/smartchef/ai-service/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Collaborating services
	embedder := service.NewEmbeddingService()
	recipeService := service.NewRecipeService(db, embedder)
	vectorIndex := service.NewVectorIndexService(db)
	retrieval := service.NewRetrievalService(embedder, vectorIndex, recipeService)

	detector, err := service.NewDetectionService()
	if err != nil {
		log.Fatalf("Failed to initialize detection service: %v", err)
	}

	sessions := service.NewSessionStore(redisClient)
	llmService, err := service.NewLLMService(sessions)
	if err != nil {
		log.Fatalf("Failed to initialize LLM service: %v", err)
	}

	var imageService *service.ImageService
	s3Config, err := config.NewS3Config(context.Background())
	if err != nil {
		log.Printf("Warning: S3 image archive disabled: %v", err)
	} else if s3Config != nil {
		imageService = service.NewImageService(s3Config)
	}

	chef := service.NewChefService(detector, retrieval, llmService, imageService)

	// HTTP layer
	chefHandler := api.NewChefHandler(chef)
	recipeHandler := api.NewRecipeHandler(recipeService, retrieval)
	engine := router.SetupRouter(chefHandler, recipeHandler, cfg.JWTSecret)

	srv := server.New(engine, cfg.ServerHost, cfg.ServerPort)

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s:%s", cfg.ServerHost, cfg.ServerPort)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
