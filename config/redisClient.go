package config

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var Ctx = context.Background()
var RedisClient *redis.Client

// ConnectRedis initializes the Redis client used by the issue rate limiter.
func ConnectRedis() {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     App.RedisAddress,
		Password: App.RedisPassword,
		DB:       0,
	})

	if _, err := RedisClient.Ping(Ctx).Result(); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}

	log.Info().Msg("connected to Redis")
}
