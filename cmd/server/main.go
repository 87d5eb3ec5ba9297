package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/lumen/internal/config"
	"github.com/Nixie-Tech-LLC/lumen/internal/db"
	"github.com/Nixie-Tech-LLC/lumen/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/lumen/internal/redis"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// initialize PostgreSQL
	if err := db.Init(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init failed")
	}

	// run pending migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate failed")
	}

	store := db.NewStore(db.DB)

	// resolution cache + pairing codes
	if cfg.RedisAddress != "" {
		redis.InitRedis(cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword)
	}

	// device refresh notifications; the server runs without them if the
	// broker is down, devices just wait for their next poll
	if cfg.MQTTBrokerURL != "" {
		middleware.SetBrokerURL(cfg.MQTTBrokerURL)
	}
	if _, err := middleware.CreateMQTTClient("lumen-server"); err != nil {
		log.Warn().Err(err).Msg("MQTT unavailable, device refresh notifications disabled")
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	RegisterRoutes(r, cfg, store)

	log.Info().Str("address", cfg.ServerAddress).Msg("listening")
	if err := r.Run(cfg.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
