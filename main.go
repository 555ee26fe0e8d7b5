package main

import (
	"context"
	"fmt"

	"github.com/aurahealth/aura-backend/config"
	"github.com/aurahealth/aura-backend/controllers"
	"github.com/aurahealth/aura-backend/database"
	"github.com/aurahealth/aura-backend/jobs"
	"github.com/aurahealth/aura-backend/libs"
	"github.com/aurahealth/aura-backend/logger"
	"github.com/aurahealth/aura-backend/routes"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if cfg.MongoURI == "" {
		log.Fatal("MONGODB_URI must be set")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	if err := database.Connect(cfg.MongoURI, cfg.DBName); err != nil {
		log.Fatalw("failed to connect to MongoDB", "error", err)
	}
	defer database.Disconnect(context.Background())
	log.Info("MongoDB connected")

	gen, err := libs.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	var generator libs.Generator = gen
	if err != nil {
		// The chat pipeline degrades to fallback replies without a key.
		log.Warnw("Gemini client unavailable, responses will use fallbacks", "error", err)
		generator = libs.Disabled()
	}

	worker := jobs.NewWorker(generator, log)
	worker.Start()
	defer worker.Stop()

	if cfg.AppEnv == "prod" || cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(cors.Default())

	routes.InitRoutes(r, routes.Handlers{
		Auth:     &controllers.AuthHandler{JWTSecret: cfg.JWTSecret, Log: log},
		Chat:     &controllers.ChatHandler{Gen: generator, Log: log, Worker: worker},
		Mood:     &controllers.MoodHandler{Log: log, Worker: worker},
		Activity: &controllers.ActivityHandler{Log: log},
	}, cfg.JWTSecret)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Infow("starting server", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalw("server failed to run", "error", err)
	}
}
