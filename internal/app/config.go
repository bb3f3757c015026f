package app

import (
	"github.com/yungbote/docgraph-backend/internal/platform/envutil"
)

type Config struct {
	Port        string
	DBPath      string
	ServiceName string
	Environment string
	LogMode     string
}

func LoadConfig() Config {
	return Config{
		Port:        envutil.Str("PORT", "8080"),
		DBPath:      envutil.Str("KUZU_DB_PATH", "./var/docgraph.kuzu"),
		ServiceName: envutil.Str("SERVICE_NAME", "docgraph-backend"),
		Environment: envutil.Str("ENVIRONMENT", "development"),
		LogMode:     envutil.Str("LOG_MODE", "development"),
	}
}
