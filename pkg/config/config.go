package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultBodyLimit 是單一請求主體的上限（50 MB）
const DefaultBodyLimit int64 = 50 << 20

// UpstreamGroups 列出可以透過 UPSTREAM_<GROUP>_URL 轉發的路由群組
var UpstreamGroups = []string{
	"auth", "users", "announcements", "team", "events", "admin",
	"upload", "resources", "code", "aptitude", "concept", "contact",
}

type Config struct {
	Env       string            `mapstructure:"env"`
	Server    ServerConfig      `mapstructure:"server"`
	DB        DBConfig          `mapstructure:"db"`
	CORS      CORSConfig        `mapstructure:"cors"`
	Uploads   UploadsConfig     `mapstructure:"uploads"`
	Auth      AuthConfig        `mapstructure:"auth"`
	RateLimit RateLimitConfig   `mapstructure:"ratelimit"`
	Stats     StatsConfig       `mapstructure:"stats"`
	Upstreams map[string]string `mapstructure:"upstreams"`
}

type ServerConfig struct {
	Port      int    `mapstructure:"port"`
	Mode      string `mapstructure:"mode"`
	BodyLimit int64  `mapstructure:"body_limit"`
}

// Address 回傳 HTTP 伺服器的監聽位址
func (s ServerConfig) Address() string {
	return fmt.Sprintf(":%d", s.Port)
}

type DBConfig struct {
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	Port            int           `mapstructure:"port"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	AcquireTimeout  time.Duration `mapstructure:"acquire_timeout"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// CORSConfig 對應跨來源白名單的環境設定
type CORSConfig struct {
	FrontendURL       string   `mapstructure:"frontend_url"`
	FrontendDomain    string   `mapstructure:"frontend_domain"`
	DeploymentURL     string   `mapstructure:"deployment_url"`
	DeploymentID      string   `mapstructure:"deployment_id"`
	DevBypass         bool     `mapstructure:"dev_bypass"`
	TrustedSubstrings []string `mapstructure:"trusted_substrings"`
}

type UploadsConfig struct {
	Dir string `mapstructure:"dir"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type RateLimitConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	RPS        float64       `mapstructure:"rps"`
	Burst      int           `mapstructure:"burst"`
	RetryAfter time.Duration `mapstructure:"retry_after"`
}

type StatsConfig struct {
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	Prefix        string        `mapstructure:"prefix"`
	TTL           time.Duration `mapstructure:"ttl"`
}

// Enabled 表示是否設定了 Redis 統計
func (s StatsConfig) Enabled() bool {
	return strings.TrimSpace(s.RedisAddr) != ""
}

// envBindings 將設定鍵對應到環境變數名稱
var envBindings = map[string]string{
	"env":                     "NODE_ENV",
	"server.port":             "PORT",
	"server.mode":             "GIN_MODE",
	"server.body_limit":       "BODY_LIMIT_BYTES",
	"db.driver":               "DB_DRIVER",
	"db.host":                 "DB_HOST",
	"db.user":                 "DB_USER",
	"db.password":             "DB_PASSWORD",
	"db.name":                 "DB_NAME",
	"db.port":                 "DB_PORT",
	"db.max_open_conns":       "DB_MAX_OPEN_CONNS",
	"db.acquire_timeout":      "DB_ACQUIRE_TIMEOUT",
	"db.conn_max_lifetime":    "DB_CONN_MAX_LIFETIME",
	"db.auto_migrate":         "DB_AUTO_MIGRATE",
	"cors.frontend_url":       "FRONTEND_URL",
	"cors.frontend_domain":    "FRONTEND_DOMAIN",
	"cors.deployment_url":     "VERCEL_URL",
	"cors.deployment_id":      "VERCEL",
	"cors.dev_bypass":         "CORS_DEV_BYPASS",
	"cors.trusted_substrings": "CORS_TRUSTED_SUBSTRINGS",
	"uploads.dir":             "UPLOADS_DIR",
	"auth.jwt_secret":         "JWT_SECRET",
	"auth.token_ttl":          "JWT_TTL",
	"ratelimit.enabled":       "RATE_LIMIT_ENABLED",
	"ratelimit.rps":           "RATE_LIMIT_RPS",
	"ratelimit.burst":         "RATE_LIMIT_BURST",
	"ratelimit.retry_after":   "RATE_LIMIT_RETRY_AFTER",
	"stats.redis_addr":        "STATS_REDIS_ADDR",
	"stats.redis_password":    "STATS_REDIS_PASSWORD",
	"stats.redis_db":          "STATS_REDIS_DB",
	"stats.prefix":            "STATS_PREFIX",
	"stats.ttl":               "STATS_TTL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "production")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.body_limit", DefaultBodyLimit)
	v.SetDefault("db.driver", "mysql")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.name", "codevimarsh")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("cors.trusted_substrings", []string{"vercel.app", "vercel.dev"})
	v.SetDefault("uploads.dir", "uploads")
	v.SetDefault("auth.token_ttl", 240*time.Hour)
	v.SetDefault("ratelimit.rps", 10.0)
	v.SetDefault("ratelimit.burst", 20)
	v.SetDefault("ratelimit.retry_after", time.Second)
	v.SetDefault("stats.prefix", "codevimarsh:stats")
	v.SetDefault("stats.ttl", 24*time.Hour)
}

// Load 讀取 .env、可選的 config.yaml 與環境變數，組成一份不可變的設定
func Load() (*Config, error) {
	// .env 不存在時直接略過
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./pkg/config")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}
	for _, group := range UpstreamGroups {
		if err := v.BindEnv("upstreams."+group, "UPSTREAM_"+strings.ToUpper(group)+"_URL"); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// 未明確設定時，開發模式的放行旗標才由 NODE_ENV 推導
	if !v.IsSet("cors.dev_bypass") {
		cfg.CORS.DevBypass = cfg.Env == "development"
	}
	if cfg.Upstreams == nil {
		cfg.Upstreams = map[string]string{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 檢查設定值是否合理
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	if c.DB.MaxOpenConns <= 0 {
		return errors.New("DB_MAX_OPEN_CONNS must be > 0")
	}
	if c.DB.AcquireTimeout < 0 {
		return errors.New("DB_ACQUIRE_TIMEOUT must be >= 0")
	}
	if c.Server.BodyLimit <= 0 {
		return errors.New("BODY_LIMIT_BYTES must be > 0")
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be > 0 when rate limiting is enabled")
	}
	return nil
}
