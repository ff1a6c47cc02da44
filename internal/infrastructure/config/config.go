package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Log       LogConfig
	HTTP      HTTPConfig
	Sync      SyncConfig
	TikTok    TikTokConfig
	Instagram InstagramConfig
	Actor     ActorConfig
	Alerts    AlertsConfig
	Cache     CacheConfig
	LLM       LLMConfig
	Telemetry TelemetryConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
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

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	MaxHeaderBytes   int
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
	TrustedProxies   []string
	RateLimitEnabled bool
	RateLimitReqs    int           // requests allowed per window
	RateLimitWindow  time.Duration // sliding window size
}

// SyncConfig holds data collection cycle settings
type SyncConfig struct {
	Enabled      bool
	Interval     time.Duration // cycle interval, 8h by default
	RunOnStart   bool          // fire an immediate cycle on startup
	StopGrace    time.Duration // how long Stop waits for an in-flight cycle
	SearchQuery  string        // product search term sent to the scrape actors
	MaxResults   int           // per-run result cap sent to the scrape actors
}

// TikTokConfig holds the unofficial TikTok web API settings
type TikTokConfig struct {
	Enabled bool
	BaseURL string
	Timeout time.Duration
}

// InstagramConfig holds the Instagram Graph API settings
type InstagramConfig struct {
	Enabled     bool
	BaseURL     string
	AccessToken string
	Timeout     time.Duration
}

// ActorConfig holds the hosted scraper (actor) platform settings
type ActorConfig struct {
	APIKey         string
	BaseURL        string
	TikTokActorID  string
	InstaActorID   string
	PollInterval   time.Duration // run status poll cadence
	WaitBudget     time.Duration // total wait per run before giving up
	RequestTimeout time.Duration
}

// AlertsConfig holds alerting thresholds and delivery settings
type AlertsConfig struct {
	Enabled          bool
	TopProductRank   int // a product entering this rank fires an alert
	SellerMilestones []int64
	EmailEndpoint    string
	EmailFrom        string
	DefaultUserID    string // recipient of system-generated alerts
}

// CacheConfig holds ranking cache settings
type CacheConfig struct {
	Backend string // redis, memory
	TTL     time.Duration
}

// LLMConfig holds the text-generation API settings used for insights
type LLMConfig struct {
	Enabled bool
	APIKey  string
	BaseURL string // OpenAI-compatible chat completions endpoint
	Model   string
	Timeout time.Duration
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled            bool
	CollectorEndpoint  string        // OTEL collector gRPC endpoint, e.g. "localhost:4317"
	SamplingRatio      float64       // 0.0-1.0
	ServiceName        string
	Insecure           bool          // non-TLS connection, development only
	DBTraceEnabled     bool          // enable otelgorm query tracing
	SlowQueryThreshold time.Duration // queries slower than this get flagged on their span
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with TRENDLENS_ prefix (e.g., TRENDLENS_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("TRENDLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

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
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:   v.GetInt("http.max_header_bytes"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods: v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders: v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
			RateLimitEnabled: v.GetBool("http.rate_limit_enabled"),
			RateLimitReqs:    v.GetInt("http.rate_limit_requests"),
			RateLimitWindow:  v.GetDuration("http.rate_limit_window"),
		},
		Sync: SyncConfig{
			Enabled:     v.GetBool("sync.enabled"),
			Interval:    v.GetDuration("sync.interval"),
			RunOnStart:  v.GetBool("sync.run_on_start"),
			StopGrace:   v.GetDuration("sync.stop_grace"),
			SearchQuery: v.GetString("sync.search_query"),
			MaxResults:  v.GetInt("sync.max_results"),
		},
		TikTok: TikTokConfig{
			Enabled: v.GetBool("tiktok.enabled"),
			BaseURL: v.GetString("tiktok.base_url"),
			Timeout: v.GetDuration("tiktok.timeout"),
		},
		Instagram: InstagramConfig{
			Enabled:     v.GetBool("instagram.enabled"),
			BaseURL:     v.GetString("instagram.base_url"),
			AccessToken: v.GetString("instagram.access_token"),
			Timeout:     v.GetDuration("instagram.timeout"),
		},
		Actor: ActorConfig{
			APIKey:         v.GetString("actor.api_key"),
			BaseURL:        v.GetString("actor.base_url"),
			TikTokActorID:  v.GetString("actor.tiktok_actor_id"),
			InstaActorID:   v.GetString("actor.instagram_actor_id"),
			PollInterval:   v.GetDuration("actor.poll_interval"),
			WaitBudget:     v.GetDuration("actor.wait_budget"),
			RequestTimeout: v.GetDuration("actor.request_timeout"),
		},
		Alerts: AlertsConfig{
			Enabled:        v.GetBool("alerts.enabled"),
			TopProductRank: v.GetInt("alerts.top_product_rank"),
			EmailEndpoint:  v.GetString("alerts.email_endpoint"),
			EmailFrom:      v.GetString("alerts.email_from"),
			DefaultUserID:  v.GetString("alerts.default_user_id"),
		},
		Cache: CacheConfig{
			Backend: v.GetString("cache.backend"),
			TTL:     v.GetDuration("cache.ttl"),
		},
		LLM: LLMConfig{
			Enabled: v.GetBool("llm.enabled"),
			APIKey:  v.GetString("llm.api_key"),
			BaseURL: v.GetString("llm.base_url"),
			Model:   v.GetString("llm.model"),
			Timeout: v.GetDuration("llm.timeout"),
		},
		Telemetry: TelemetryConfig{
			Enabled:            v.GetBool("telemetry.enabled"),
			CollectorEndpoint:  v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:      v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:        v.GetString("telemetry.service_name"),
			Insecure:           v.GetBool("telemetry.insecure"),
			DBTraceEnabled:     v.GetBool("telemetry.db_trace_enabled"),
			SlowQueryThreshold: v.GetDuration("telemetry.slow_query_threshold"),
		},
	}

	for _, m := range v.GetIntSlice("alerts.seller_milestones") {
		cfg.Alerts.SellerMilestones = append(cfg.Alerts.SellerMilestones, int64(m))
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "trendlens-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "trendlens"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
	}
	if cfg.HTTP.RateLimitReqs == 0 {
		cfg.HTTP.RateLimitReqs = 100
	}
	if cfg.HTTP.RateLimitWindow == 0 {
		cfg.HTTP.RateLimitWindow = time.Minute
	}
	if cfg.Telemetry.SlowQueryThreshold == 0 {
		cfg.Telemetry.SlowQueryThreshold = 200 * time.Millisecond
	}
	if cfg.Sync.Interval == 0 {
		cfg.Sync.Interval = 8 * time.Hour
	}
	if cfg.Sync.StopGrace == 0 {
		cfg.Sync.StopGrace = 30 * time.Second
	}
	if cfg.Sync.SearchQuery == "" {
		cfg.Sync.SearchQuery = "trending products"
	}
	if cfg.Sync.MaxResults == 0 {
		cfg.Sync.MaxResults = 50
	}
	if cfg.TikTok.BaseURL == "" {
		cfg.TikTok.BaseURL = "https://www.tiktok.com/api"
	}
	if cfg.TikTok.Timeout == 0 {
		cfg.TikTok.Timeout = 30 * time.Second
	}
	if cfg.Instagram.BaseURL == "" {
		cfg.Instagram.BaseURL = "https://graph.instagram.com"
	}
	if cfg.Instagram.Timeout == 0 {
		cfg.Instagram.Timeout = 30 * time.Second
	}
	if cfg.Actor.BaseURL == "" {
		cfg.Actor.BaseURL = "https://api.apify.com/v2"
	}
	if cfg.Actor.TikTokActorID == "" {
		cfg.Actor.TikTokActorID = "excavator~tiktok-shop-product"
	}
	if cfg.Actor.InstaActorID == "" {
		cfg.Actor.InstaActorID = "apify~instagram-scraper"
	}
	if cfg.Actor.PollInterval == 0 {
		cfg.Actor.PollInterval = 5 * time.Second
	}
	if cfg.Actor.WaitBudget == 0 {
		cfg.Actor.WaitBudget = 5 * time.Minute
	}
	if cfg.Actor.RequestTimeout == 0 {
		cfg.Actor.RequestTimeout = 30 * time.Second
	}
	if cfg.Alerts.TopProductRank == 0 {
		cfg.Alerts.TopProductRank = 10
	}
	if len(cfg.Alerts.SellerMilestones) == 0 {
		cfg.Alerts.SellerMilestones = []int64{10000, 100000, 1000000}
	}
	if cfg.Alerts.DefaultUserID == "" {
		cfg.Alerts.DefaultUserID = "system"
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "memory"
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 5 * time.Minute
	}
	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gpt-4o-mini"
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 60 * time.Second
	}
	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317"
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = "trendlens-backend"
	}
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

	if c.Sync.MaxResults < 0 {
		return fmt.Errorf("sync.max_results cannot be negative")
	}
	if c.Actor.PollInterval <= 0 {
		return fmt.Errorf("actor.poll_interval must be positive")
	}
	if c.Actor.WaitBudget < c.Actor.PollInterval {
		return fmt.Errorf("actor.wait_budget (%s) cannot be shorter than actor.poll_interval (%s)",
			c.Actor.WaitBudget, c.Actor.PollInterval)
	}

	switch c.Cache.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("cache.backend must be \"memory\" or \"redis\", got %q", c.Cache.Backend)
	}

	// Production-specific validations
	if c.App.Env == "production" {
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
	}

	if c.Telemetry.SamplingRatio < 0.0 || c.Telemetry.SamplingRatio > 1.0 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)
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

// Addr returns the host:port address for the Redis client
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
