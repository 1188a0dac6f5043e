package config

import (
	"os"
	"strings"

	"github.com/dmitrijs2005/voltdrive/internal/flagx"
	"github.com/joho/godotenv"
)

// parseEnv loads an optional dotenv file (-env flag, else ./.env if present)
// and overlays the recognised environment variables:
//
//	PORT          listen port, becomes ":PORT"
//	DATABASE_DSN  PostgreSQL DSN
//	JWT_SECRET    token signing secret
//	APP_MODE      development | production
//	S3_ROOT_USER, S3_ROOT_PASSWORD, S3_BUCKET, S3_REGION, S3_BASE_ENDPOINT
//
// Variables already present in the process environment win over the file.
func parseEnv(config *Config) {
	if file := flagx.EnvFileFlags(); file != "" {
		if err := godotenv.Load(file); err != nil {
			panic(err)
		}
	} else {
		// a missing ./.env is fine
		_ = godotenv.Load()
	}

	if v, ok := os.LookupEnv("PORT"); ok && v != "" {
		if strings.Contains(v, ":") {
			config.EndpointAddrHTTP = v
		} else {
			config.EndpointAddrHTTP = ":" + v
		}
	}

	setFromEnv(&config.DatabaseDSN, "DATABASE_DSN")
	setFromEnv(&config.SecretKey, "JWT_SECRET")
	setFromEnv(&config.Mode, "APP_MODE")
	setFromEnv(&config.S3RootUser, "S3_ROOT_USER")
	setFromEnv(&config.S3RootPassword, "S3_ROOT_PASSWORD")
	setFromEnv(&config.S3Bucket, "S3_BUCKET")
	setFromEnv(&config.S3Region, "S3_REGION")
	setFromEnv(&config.S3BaseEndpoint, "S3_BASE_ENDPOINT")
}

func setFromEnv(dst *string, name string) {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		*dst = v
	}
}
