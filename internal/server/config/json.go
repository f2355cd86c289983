package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/devlog/internal/flagx"
	"github.com/dmitrijs2005/devlog/internal/timex"
)

// JsonConfig mirrors Config for unmarshalling. Pointer fields distinguish
// "absent" from "zero" so a partial file only overrides what it names.
type JsonConfig struct {
	HTTPAddr               *string         `json:"http_addr"`
	DatabaseDSN            *string         `json:"database_dsn"`
	SecretKey              *string         `json:"secret_key"`
	TokenValidityDuration  *timex.Duration `json:"token_validity_duration"`
	Environment            *string         `json:"environment"`
	LogLevel               *string         `json:"log_level"`
	LogFile                *string         `json:"log_file"`
	GeminiAPIKey           *string         `json:"gemini_api_key"`
	GeminiModel            *string         `json:"gemini_model"`
	RedisAddr              *string         `json:"redis_addr"`
	RedisPassword          *string         `json:"redis_password"`
	RedisDB                *int            `json:"redis_db"`
	AICacheTTL             *timex.Duration `json:"ai_cache_ttl"`
	S3RootUser             *string         `json:"s3_root_user"`
	S3RootPassword         *string         `json:"s3_root_password"`
	S3Bucket               *string         `json:"s3_bucket"`
	S3Region               *string         `json:"s3_region"`
	S3BaseEndpoint         *string         `json:"s3_base_endpoint"`
	StreakStrategy         *string         `json:"streak_strategy"`
	DayNumberPolicy        *string         `json:"day_number_policy"`
	ChallengeSweepInterval *timex.Duration `json:"challenge_sweep_interval"`
}

// parseJson loads the file named by -c/-config, if any, and copies every
// field present in it into config. Unreadable or invalid files panic, since
// the server cannot start with a half-applied configuration.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	setString(&config.Environment, c.Environment)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.LogFile, c.LogFile)
	setString(&config.GeminiAPIKey, c.GeminiAPIKey)
	setString(&config.GeminiModel, c.GeminiModel)
	setString(&config.RedisAddr, c.RedisAddr)
	setString(&config.RedisPassword, c.RedisPassword)
	if c.RedisDB != nil {
		config.RedisDB = *c.RedisDB
	}
	if c.AICacheTTL != nil {
		config.AICacheTTL = c.AICacheTTL.Duration
	}
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.StreakStrategy, c.StreakStrategy)
	setString(&config.DayNumberPolicy, c.DayNumberPolicy)
	if c.ChallengeSweepInterval != nil {
		config.ChallengeSweepInterval = c.ChallengeSweepInterval.Duration
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
