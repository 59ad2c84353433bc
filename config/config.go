package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// AppConfig holds environment driven configuration values.
// Sensitive data should never have defaults inside code and must be provided
// via the config file or the environment.
type AppConfig struct {
	AppPort     string
	GinMode     string
	JWTSecret   string
	DatabaseURI string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	// Token lifetimes
	AccessTokenExpireMinutes int
	RefreshTokenExpireDays   int
	// CORS
	AllowedOrigins []string
	// Rate limiting for the auth endpoints
	RateLimitPerMinute int
	// Redis for response caching and token revocation
	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string
	// Logging configuration
	LogLevel      string
	LogPath       string
	GinLogPath    string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
}

var cfg AppConfig
var loaded bool

// Load loads the application configuration. It should be called once during
// boot. Precedence: config/config.json -> defaults -> environment overrides.
func Load() AppConfig {
	if loaded {
		return cfg
	}

	_ = loadJSONConfig(filepath.Join("config", "config.json"), &cfg)
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set in environment variables")
	}

	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

// Loaded reports whether Load has run. Optional subsystems like Redis use it
// to avoid forcing a config load outside the server boot path.
func Loaded() bool {
	return loaded
}

func applyDefaults(out *AppConfig) {
	if out.AppPort == "" {
		out.AppPort = "8080"
	}
	if out.GinMode == "" {
		out.GinMode = "release"
	}
	if out.DBHost == "" {
		out.DBHost = "127.0.0.1"
	}
	if out.DBPort == "" {
		out.DBPort = "3306"
	}
	if out.DBUser == "" {
		out.DBUser = "b4uspend"
	}
	if out.DBName == "" {
		out.DBName = "b4uspend"
	}
	if out.AccessTokenExpireMinutes == 0 {
		out.AccessTokenExpireMinutes = 15
	}
	if out.RefreshTokenExpireDays == 0 {
		out.RefreshTokenExpireDays = 30
	}
	if len(out.AllowedOrigins) == 0 {
		out.AllowedOrigins = []string{"http://localhost:5173"}
	}
	if out.RateLimitPerMinute == 0 {
		out.RateLimitPerMinute = 30
	}
	if out.RedisHost == "" {
		out.RedisHost = "127.0.0.1"
	}
	if out.RedisPort == 0 {
		out.RedisPort = 6379
	}
	if out.LogLevel == "" {
		out.LogLevel = "info"
	}
	if out.LogPath == "" {
		out.LogPath = "logs/app.log"
	}
	if out.GinLogPath == "" {
		out.GinLogPath = "logs/gin.log"
	}
}

// loadJSONConfig reads a JSON file into cfg if present. Returns error only for
// invalid JSON.
func loadJSONConfig(path string, out *AppConfig) error {
	f, err := os.Open(path)
	if err != nil {
		return nil // silently ignore missing file
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	return dec.Decode(out)
}

func applyEnvOverrides(out *AppConfig) {
	setStr := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(dst *int, key string) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	setStr(&out.AppPort, "APP_PORT")
	setStr(&out.GinMode, "GIN_MODE")
	setStr(&out.JWTSecret, "JWT_SECRET")
	setStr(&out.DatabaseURI, "DATABASE_URI")
	setStr(&out.DBHost, "DB_HOST")
	setStr(&out.DBPort, "DB_PORT")
	setStr(&out.DBUser, "DB_USER")
	setStr(&out.DBPassword, "DB_PASSWORD")
	setStr(&out.DBName, "DB_NAME")
	setInt(&out.AccessTokenExpireMinutes, "ACCESS_TOKEN_EXPIRE_MINUTES")
	setInt(&out.RefreshTokenExpireDays, "REFRESH_TOKEN_EXPIRE_DAYS")
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		parts := strings.Split(v, ",")
		origins := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				origins = append(origins, p)
			}
		}
		if len(origins) > 0 {
			out.AllowedOrigins = origins
		}
	}
	setInt(&out.RateLimitPerMinute, "RATE_LIMIT_PER_MINUTE")
	setStr(&out.RedisHost, "REDIS_HOST")
	setInt(&out.RedisPort, "REDIS_PORT")
	setInt(&out.RedisDB, "REDIS_DB")
	setStr(&out.RedisPassword, "REDIS_PASSWORD")
	setStr(&out.LogLevel, "LOG_LEVEL")
	setStr(&out.LogPath, "LOG_PATH")
	setStr(&out.GinLogPath, "GIN_LOG_PATH")
	setInt(&out.LogMaxSizeMB, "LOG_MAX_SIZE_MB")
	setInt(&out.LogMaxBackups, "LOG_MAX_BACKUPS")
	setInt(&out.LogMaxAgeDays, "LOG_MAX_AGE_DAYS")
	if v := os.Getenv("LOG_COMPRESS"); v != "" {
		out.LogCompress = v == "1" || strings.EqualFold(v, "true")
	}
}
