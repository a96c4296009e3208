package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BruksfildServices01/realestate-manager/internal/timezone"
)

type Config struct {
	ServerPort string
	GinMode    string

	// Database
	DBType         string // mysql, postgres, sqlite
	DBUrl          string // full DSN, overrides the discrete fields below
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBMaxOpenConns int
	DBMaxIdleConns int
	DBDebug        bool
	AutoMigrate    bool

	// Session
	SessionSecret string
	SessionTTL    time.Duration
	CookieSecure  bool
	CSRFEnabled   bool
	RedisURL      string

	CORSOrigins    []string
	MetricsEnabled bool

	Timezone            string
	ValidateEmailDomain bool

	AdminEmail    string
	AdminPassword string
}

func Load() (*Config, error) {
	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		GinMode:    getEnv("GIN_MODE", "release"),

		DBType:         strings.ToLower(getEnv("DB_TYPE", "mysql")),
		DBUrl:          getEnv("DATABASE_URL", ""),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", ""),
		DBUser:         getEnv("DB_USER", "root"),
		DBPassword:     getEnv("DB_PASSWORD", ""),
		DBName:         getEnv("DB_NAME", "real_estate_db"),
		DBMaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		DBDebug:        getEnvAsBool("DB_DEBUG", false),
		AutoMigrate:    getEnvAsBool("AUTO_MIGRATE", true),

		SessionSecret: getEnv("SESSION_SECRET", ""),
		SessionTTL:    time.Duration(getEnvAsInt("SESSION_TTL_HOURS", 24)) * time.Hour,
		CookieSecure:  getEnvAsBool("COOKIE_SECURE", false),
		CSRFEnabled:   getEnvAsBool("CSRF_ENABLED", true),
		RedisURL:      getEnv("REDIS_URL", ""),

		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "")),
		MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),

		Timezone:            getEnv("APP_TIMEZONE", "UTC"),
		ValidateEmailDomain: getEnvAsBool("VALIDATE_EMAIL_DOMAIN", false),

		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@test.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin"),
	}

	if cfg.DBPort == "" {
		cfg.DBPort = defaultPort(cfg.DBType)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBType {
	case "mysql", "mariadb", "postgres", "postgresql", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_TYPE: %s", c.DBType)
	}
	if c.DBType == "sqlite" && c.DBUrl == "" && c.DBName == "" {
		return fmt.Errorf("DB_NAME (sqlite file path) is required")
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("invalid GIN_MODE: %s", c.GinMode)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL_HOURS must be positive")
	}
	if !timezone.IsValid(c.Timezone) {
		return fmt.Errorf("invalid APP_TIMEZONE: %s", c.Timezone)
	}
	for _, o := range c.CORSOrigins {
		if !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return fmt.Errorf("invalid CORS origin %q: scheme required", o)
		}
	}
	if c.AdminEmail == "" || c.AdminPassword == "" {
		return fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD must not be empty")
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

func defaultPort(dbType string) string {
	switch dbType {
	case "postgres", "postgresql":
		return "5432"
	case "sqlite":
		return ""
	}
	return "3306"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvAsInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvAsBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
