package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/devlog/internal/flagx"
	"github.com/joho/godotenv"
)

// parseEnv overlays environment variables onto config. A .env file (from
// -env-file, or ./.env when present) is loaded first; godotenv never
// overrides variables that are already set in the process environment.
//
// Recognised variables:
//
//	PORT                 HTTP port (becomes ":PORT")
//	DATABASE_URL         PostgreSQL DSN
//	JWT_SECRET           token signing key
//	APP_ENV              development | production
//	LOG_LEVEL, LOG_FILE  logging
//	GEMINI_API_KEY       generative AI key (API_KEY is accepted as a fallback)
//	REDIS_ADDR, REDIS_PASSWORD, REDIS_DB
//	S3_ROOT_USER, S3_ROOT_PASSWORD, S3_BUCKET, S3_REGION, S3_BASE_ENDPOINT
//	STREAK_STRATEGY, DAY_NUMBER_POLICY, CHALLENGE_SWEEP_INTERVAL
func parseEnv(config *Config) {
	loadDotEnv(flagx.EnvFileFlags())

	if v, ok := os.LookupEnv("PORT"); ok && v != "" {
		config.HTTPAddr = ":" + v
	}
	envString(&config.DatabaseDSN, "DATABASE_URL")
	envString(&config.SecretKey, "JWT_SECRET")
	envString(&config.Environment, "APP_ENV")
	envString(&config.LogLevel, "LOG_LEVEL")
	envString(&config.LogFile, "LOG_FILE")
	envString(&config.GeminiAPIKey, "API_KEY")
	envString(&config.GeminiAPIKey, "GEMINI_API_KEY")
	envString(&config.RedisAddr, "REDIS_ADDR")
	envString(&config.RedisPassword, "REDIS_PASSWORD")
	if v, ok := os.LookupEnv("REDIS_DB"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			config.RedisDB = n
		}
	}
	envString(&config.S3RootUser, "S3_ROOT_USER")
	envString(&config.S3RootPassword, "S3_ROOT_PASSWORD")
	envString(&config.S3Bucket, "S3_BUCKET")
	envString(&config.S3Region, "S3_REGION")
	envString(&config.S3BaseEndpoint, "S3_BASE_ENDPOINT")
	envString(&config.StreakStrategy, "STREAK_STRATEGY")
	envString(&config.DayNumberPolicy, "DAY_NUMBER_POLICY")
	if v, ok := os.LookupEnv("CHALLENGE_SWEEP_INTERVAL"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.ChallengeSweepInterval = d
		}
	}
}

// loadDotEnv loads path into the process environment. With no path it tries
// ./.env and silently skips it when missing; an explicit path must exist.
func loadDotEnv(path string) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
		return
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}
}

func envString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
