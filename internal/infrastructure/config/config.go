package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Log      LogConfig
	HTTP     HTTPConfig
	Storage  StorageConfig
	Chat     ChatConfig
	Voting   VotingConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// JWTConfig holds JWT settings
type JWTConfig struct {
	Secret                 string
	RefreshSecret          string
	AccessTokenExpiration  time.Duration
	RefreshTokenExpiration time.Duration
	Issuer                 string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int
	MaxBodySize       int64
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration
	CORSAllowOrigins  []string
	CORSAllowMethods  []string
	CORSAllowHeaders  []string
	TrustedProxies    []string
}

// StorageConfig holds S3-compatible object storage settings for poll
// attachments (AWS S3, MinIO, etc.)
type StorageConfig struct {
	Enabled           bool
	Endpoint          string
	Region            string
	Bucket            string
	AccessKey         string
	SecretKey         string
	UseSSL            bool
	UsePathStyle      bool
	PresignExpiration time.Duration
}

// ChatConfig holds the upstream chat completion endpoint settings
type ChatConfig struct {
	UpstreamURL string
	APIKey      string
	Timeout     time.Duration
}

// VotingConfig holds voting policy settings
type VotingConfig struct {
	// AllowVoteAfterClose permits vote submission on polls whose end
	// timestamp has passed. Off by default; the UI hides the voting form
	// either way, this controls the submission layer.
	AllowVoteAfterClose bool
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with POLLS_ prefix (e.g., POLLS_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("POLLS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// no config.toml is fine, defaults and env vars carry the load
	}

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			Secret:                 v.GetString("jwt.secret"),
			RefreshSecret:          v.GetString("jwt.refresh_secret"),
			AccessTokenExpiration:  v.GetDuration("jwt.access_token_expiration"),
			RefreshTokenExpiration: v.GetDuration("jwt.refresh_token_expiration"),
			Issuer:                 v.GetString("jwt.issuer"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:       v.GetDuration("http.read_timeout"),
			WriteTimeout:      v.GetDuration("http.write_timeout"),
			IdleTimeout:       v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:    v.GetInt("http.max_header_bytes"),
			MaxBodySize:       v.GetInt64("http.max_body_size"),
			RateLimitEnabled:  v.GetBool("http.rate_limit_enabled"),
			RateLimitRequests: v.GetInt("http.rate_limit_requests"),
			RateLimitWindow:   v.GetDuration("http.rate_limit_window"),
			CORSAllowOrigins:  v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods:  v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders:  v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:    v.GetStringSlice("http.trusted_proxies"),
		},
		Storage: StorageConfig{
			Enabled:           v.GetBool("storage.enabled"),
			Endpoint:          v.GetString("storage.endpoint"),
			Region:            v.GetString("storage.region"),
			Bucket:            v.GetString("storage.bucket"),
			AccessKey:         v.GetString("storage.access_key"),
			SecretKey:         v.GetString("storage.secret_key"),
			UseSSL:            v.GetBool("storage.use_ssl"),
			UsePathStyle:      v.GetBool("storage.use_path_style"),
			PresignExpiration: v.GetDuration("storage.presign_expiration"),
		},
		Chat: ChatConfig{
			UpstreamURL: v.GetString("chat.upstream_url"),
			APIKey:      v.GetString("chat.api_key"),
			Timeout:     v.GetDuration("chat.timeout"),
		},
		Voting: VotingConfig{
			AllowVoteAfterClose: v.GetBool("voting.allow_vote_after_close"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultStr(field *string, def string) {
	if *field == "" {
		*field = def
	}
}

func defaultInt(field *int, def int) {
	if *field == 0 {
		*field = def
	}
}

func defaultDur(field *time.Duration, def time.Duration) {
	if *field == 0 {
		*field = def
	}
}

// applyDefaults fills in every field that was left empty or zero. A zero
// value from the environment is indistinguishable from "not set" and gets
// the default too.
func applyDefaults(cfg *Config) {
	defaultStr(&cfg.App.Name, "pollwise-backend")
	defaultStr(&cfg.App.Env, "development")
	defaultStr(&cfg.App.Port, "8080")

	defaultStr(&cfg.Database.Host, "localhost")
	defaultInt(&cfg.Database.Port, 5432)
	defaultStr(&cfg.Database.User, "postgres")
	defaultStr(&cfg.Database.DBName, "pollwise")
	defaultStr(&cfg.Database.SSLMode, "disable")
	defaultInt(&cfg.Database.MaxOpenConns, 25)
	defaultInt(&cfg.Database.MaxIdleConns, 5)
	defaultInt(&cfg.Database.ConnMaxLifetime, 60)
	defaultInt(&cfg.Database.ConnMaxIdleTime, 30)

	defaultStr(&cfg.Redis.Host, "localhost")
	defaultInt(&cfg.Redis.Port, 6379)

	defaultDur(&cfg.JWT.AccessTokenExpiration, 15*time.Minute)
	defaultDur(&cfg.JWT.RefreshTokenExpiration, 168*time.Hour)
	defaultStr(&cfg.JWT.Issuer, "pollwise-backend")

	defaultStr(&cfg.Log.Level, "info")
	defaultStr(&cfg.Log.Format, "console")
	defaultStr(&cfg.Log.Output, "stdout")

	defaultDur(&cfg.HTTP.ReadTimeout, 15*time.Second)
	defaultDur(&cfg.HTTP.WriteTimeout, 15*time.Second)
	defaultDur(&cfg.HTTP.IdleTimeout, 60*time.Second)
	defaultInt(&cfg.HTTP.MaxHeaderBytes, 1<<20)
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 5 << 20
	}
	defaultInt(&cfg.HTTP.RateLimitRequests, 100)
	defaultDur(&cfg.HTTP.RateLimitWindow, time.Minute)
	// CORS origins have no fallback. An empty list means no cross-origin
	// requests until the deployment configures its frontend origin.
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "Authorization", "X-Request-ID", "X-Voter-Session"}
	}

	defaultStr(&cfg.Storage.Region, "us-east-1")
	defaultStr(&cfg.Storage.Bucket, "pollwise-attachments")
	defaultDur(&cfg.Storage.PresignExpiration, 15*time.Minute)

	defaultDur(&cfg.Chat.Timeout, 30*time.Second)
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}

	if c.App.Env == "production" {
		if c.JWT.Secret == "" {
			return fmt.Errorf("jwt.secret is required in production")
		}
		if len(c.JWT.Secret) < 32 {
			return fmt.Errorf("jwt.secret must be at least 32 characters in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
		if c.Storage.Enabled {
			if c.Storage.AccessKey == "" || c.Storage.SecretKey == "" {
				return fmt.Errorf("storage.access_key and storage.secret_key are required when storage is enabled in production")
			}
		}
	}

	return nil
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// Addr returns the Redis address in host:port form
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// IsDevelopment reports whether the app runs in development mode
func (a *AppConfig) IsDevelopment() bool {
	return a.Env == "development"
}
