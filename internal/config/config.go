package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the service configuration. Values come from the environment,
// optionally seeded from a .env file.
type Config struct {
	AppEnv  string
	AppName string
	AppLang string
	AppHost string
	AppPort string

	DB struct {
		Host     string
		Port     string
		User     string
		Password string
		Database string
		SSLMode  string
	}

	Redis struct {
		Enabled  bool
		Host     string
		Port     string
		Password string
		DB       int
	}

	JWTSecret        string
	JWTAccessExpired time.Duration

	OTPExpired  time.Duration
	OTPHashCost int

	SMS struct {
		Enabled   bool
		BaseURL   string
		APIKey    string
		APISecret string
		From      string
	}

	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
	TrustProxy     bool

	SessionPruneInterval time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "streamhouse")
	v.SetDefault("APP_LANG", "en")
	v.SetDefault("APP_HOST", "0.0.0.0")
	v.SetDefault("APP_PORT", "8080")

	v.SetDefault("PG_HOST", "localhost")
	v.SetDefault("PG_PORT", "5432")
	v.SetDefault("PG_USER", "postgres")
	v.SetDefault("PG_PASSWORD", "postgres")
	v.SetDefault("PG_DB", "streamhouse")
	v.SetDefault("PG_SSLMODE", "disable")

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET_ACCESS_TOKEN", "")
	v.SetDefault("JWT_ACCESS_TOKEN_EXPIRED", "24h")

	v.SetDefault("OTP_EXPIRED", "5m")
	v.SetDefault("OTP_HASH_COST", 7)

	v.SetDefault("SMS_ENABLED", false)
	v.SetDefault("VONAGE_BASE_URL", "https://rest.nexmo.com")
	v.SetDefault("VONAGE_API_KEY", "")
	v.SetDefault("VONAGE_API_SECRET", "")

	v.SetDefault("CORS_ORIGINS", "https://*,http://localhost:3000")
	v.SetDefault("RATE_LIMIT_RPS", 1.0)
	v.SetDefault("RATE_LIMIT_BURST", 5)
	v.SetDefault("TRUST_PROXY", false)

	v.SetDefault("SESSION_PRUNE_INTERVAL", "1h")
}

// Load reads configuration from the environment (.env if present).
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppEnv:         v.GetString("APP_ENV"),
		AppName:        v.GetString("APP_NAME"),
		AppLang:        v.GetString("APP_LANG"),
		AppHost:        v.GetString("APP_HOST"),
		AppPort:        v.GetString("APP_PORT"),
		JWTSecret:      v.GetString("JWT_SECRET_ACCESS_TOKEN"),
		OTPHashCost:    v.GetInt("OTP_HASH_COST"),
		RateLimitRPS:   v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst: v.GetInt("RATE_LIMIT_BURST"),
		TrustProxy:     v.GetBool("TRUST_PROXY"),
	}

	cfg.DB.Host = v.GetString("PG_HOST")
	cfg.DB.Port = v.GetString("PG_PORT")
	cfg.DB.User = v.GetString("PG_USER")
	cfg.DB.Password = v.GetString("PG_PASSWORD")
	cfg.DB.Database = v.GetString("PG_DB")
	cfg.DB.SSLMode = v.GetString("PG_SSLMODE")

	cfg.Redis.Enabled = v.GetBool("REDIS_ENABLED")
	cfg.Redis.Host = v.GetString("REDIS_HOST")
	cfg.Redis.Port = v.GetString("REDIS_PORT")
	cfg.Redis.Password = v.GetString("REDIS_PASSWORD")
	cfg.Redis.DB = v.GetInt("REDIS_DB")

	cfg.SMS.Enabled = v.GetBool("SMS_ENABLED")
	cfg.SMS.BaseURL = v.GetString("VONAGE_BASE_URL")
	cfg.SMS.APIKey = v.GetString("VONAGE_API_KEY")
	cfg.SMS.APISecret = v.GetString("VONAGE_API_SECRET")
	cfg.SMS.From = cfg.AppName

	for _, origin := range strings.Split(v.GetString("CORS_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}

	var err error
	if cfg.JWTAccessExpired, err = ParseExpiry(v.GetString("JWT_ACCESS_TOKEN_EXPIRED")); err != nil {
		return nil, fmt.Errorf("config: JWT_ACCESS_TOKEN_EXPIRED: %w", err)
	}
	if cfg.OTPExpired, err = ParseExpiry(v.GetString("OTP_EXPIRED")); err != nil {
		return nil, fmt.Errorf("config: OTP_EXPIRED: %w", err)
	}
	if cfg.SessionPruneInterval, err = ParseExpiry(v.GetString("SESSION_PRUNE_INTERVAL")); err != nil {
		return nil, fmt.Errorf("config: SESSION_PRUNE_INTERVAL: %w", err)
	}

	return cfg, nil
}

// ParseExpiry accepts Go durations ("90m", "24h") and day suffixes ("7d").
func ParseExpiry(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty duration")
	}
	if strings.HasSuffix(s, "d") {
		d, err := time.ParseDuration(strings.TrimSuffix(s, "d") + "h")
		if err != nil {
			return 0, err
		}
		return d * 24, nil
	}
	return time.ParseDuration(s)
}

// Validate checks required fields and production safety.
func (c *Config) Validate() error {
	if c.DB.Host == "" {
		return errors.New("config: PG_HOST is required")
	}
	if c.DB.User == "" {
		return errors.New("config: PG_USER is required")
	}
	if c.DB.Database == "" {
		return errors.New("config: PG_DB is required")
	}
	if c.JWTSecret == "" {
		if c.IsProduction() {
			return errors.New("config: in production JWT_SECRET_ACCESS_TOKEN is required")
		}
		c.JWTSecret = "streamhouse-dev-secret"
	}
	if c.SMS.Enabled && (c.SMS.APIKey == "" || c.SMS.APISecret == "") {
		return errors.New("config: SMS_ENABLED requires VONAGE_API_KEY and VONAGE_API_SECRET")
	}
	if c.OTPHashCost < 4 || c.OTPHashCost > 31 {
		return fmt.Errorf("config: OTP_HASH_COST out of range: %d", c.OTPHashCost)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// DSN returns PostgreSQL connection string for GORM and sqlx.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host, c.DB.Port, c.DB.User, c.DB.Password, c.DB.Database, c.DB.SSLMode)
}

// DatabaseURL returns the postgres URL used by golang-migrate.
func (c *Config) DatabaseURL() string {
	pass := url.QueryEscape(c.DB.Password)
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DB.User, pass, c.DB.Host, c.DB.Port, c.DB.Database, c.DB.SSLMode)
}

// RedisAddr returns host:port for the Redis client.
func (c *Config) RedisAddr() string {
	return c.Redis.Host + ":" + c.Redis.Port
}

// Addr returns listen address for HTTP server.
func (c *Config) Addr() string {
	return c.AppHost + ":" + c.AppPort
}
