package main

import (
	"net/http"
	"os"
	"time"

	"campus-sos-be/config"
	"campus-sos-be/routes"
	"campus-sos-be/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func setupLogger() {
	zerolog.TimeFieldFormat = time.RFC3339
	if config.App.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"})
	}
	if level, err := zerolog.ParseLevel(config.App.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found")
	}

	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	setupLogger()

	config.ConnectDB()
	if err := config.EnsureIndexes(); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	if config.App.RedisAddress != "" {
		config.ConnectRedis()
	} else {
		log.Warn().Msg("REDIS_ADDRESS not set; issue rate limiting disabled")
	}

	if err := services.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize external services")
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.App.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.AuthRoutes(r)
	routes.IssueRoutes(r)
	routes.UserRoutes(r)
	routes.UploadRoutes(r)

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	log.Info().Str("port", config.App.Port).Msg("starting server")
	if err := r.Run(":" + config.App.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
