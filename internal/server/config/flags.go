package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/devlog/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
//	-a string   HTTP bind address (e.g., ":5000")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      token validity, hours
//	-k string   Gemini API key
//	-r string   redis address for the AI cache
//	-u/-p/-b/-g/-e  S3 user, password, bucket, region, endpoint
//	-mode       development | production
//	-streak     placeholder | consecutive
//	-daynum     locking | legacy
//	-sweep      challenge sweep interval (Go duration)
//
// Args are filtered with flagx.FilterArgs first so -c/-env-file never trip
// this flag set.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-d", "-s", "-t", "-k", "-r", "-u", "-p", "-b", "-g", "-e",
		"-mode", "-streak", "-daynum", "-sweep",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Hours()), "token validity (in hours)")
	fs.StringVar(&config.GeminiAPIKey, "k", config.GeminiAPIKey, "Gemini API key")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address for AI cache")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	fs.StringVar(&config.Environment, "mode", config.Environment, "development or production")
	fs.StringVar(&config.StreakStrategy, "streak", config.StreakStrategy, "streak strategy: placeholder or consecutive")
	fs.StringVar(&config.DayNumberPolicy, "daynum", config.DayNumberPolicy, "day number policy: locking or legacy")
	fs.DurationVar(&config.ChallengeSweepInterval, "sweep", config.ChallengeSweepInterval, "challenge sweep interval, 0 disables")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Hour
}
