package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr string

	// Per-connection command budget.
	RateLimitPerSec int
	RateBurst       int

	// Countdown length used when create_room omits maxTime.
	DefaultMaxTime int

	// Rooms with no accepted command for this long are evicted.
	RoomTTL time.Duration
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func Load() Config {
	return Config{
		HTTPAddr:        getenv("HTTP_ADDR", ":3000"),
		RateLimitPerSec: getenvInt("RATE_LIMIT_PER_SEC", 8),
		RateBurst:       getenvInt("RATE_LIMIT_BURST", 16),
		DefaultMaxTime:  getenvInt("DEFAULT_MAX_TIME", 180),
		RoomTTL:         time.Duration(getenvInt("ROOM_TTL_SECONDS", 7200)) * time.Second,
	}
}
