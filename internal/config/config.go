package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	RAG      RAGConfig
	WS       WSConfig
	Log      LogConfig
	Match    MatchConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

func (d DatabaseConfig) Enabled() bool {
	return d.DBHost != "" && d.DBName != ""
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

type RAGConfig struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64
	Burst     int
	TopK      int
}

func (r RAGConfig) Enabled() bool {
	return r.BaseURL != ""
}

type WSConfig struct {
	Port string
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

type MatchConfig struct {
	PoolSize int
	MinScore int
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

// New returns a viper instance reading environment variables, optionally
// layered over a config file.
func New(file string) (*viper.Viper, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	setDefaults(v)

	if strings.TrimSpace(file) != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}
	return v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db_ssl_mode", "disable")
	v.SetDefault("db_max_conns", 10)
	v.SetDefault("db_min_conns", 1)
	v.SetDefault("db_max_conn_lifetime", time.Hour)
	v.SetDefault("db_max_conn_idle_time", 30*time.Minute)

	v.SetDefault("redis_host", "localhost")
	v.SetDefault("redis_port", "6379")
	v.SetDefault("redis_ttl", 600*time.Second)

	v.SetDefault("jwt_access_expiry", 15*time.Minute)
	v.SetDefault("jwt_refresh_expiry", 7*24*time.Hour)

	v.SetDefault("rag_timeout", 10*time.Second)
	v.SetDefault("rag_rate_limit", 5.0)
	v.SetDefault("rag_burst", 10)
	v.SetDefault("rag_top_k", 50)

	v.SetDefault("match_pool_size", 500)
	v.SetDefault("match_min_score", 0)
}

func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		var err error
		if v, err = New(""); err != nil {
			return Config{}, err
		}
	}

	cfg := Config{}

	var missing []string
	req := func(key string) string {
		s := strings.TrimSpace(v.GetString(key))
		if s == "" {
			missing = append(missing, strings.ToUpper(key))
		}
		return s
	}
	opt := func(key string) string {
		return strings.TrimSpace(v.GetString(key))
	}

	cfg.App = AppConfig{
		AppName:     req("app_name"),
		Environment: req("app_env"),
		HTTPPort:    req("http_port"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:          opt("db_host"),
		DBPort:          opt("db_port"),
		DBName:          opt("db_name"),
		DBUser:          opt("db_user"),
		DBPassword:      opt("db_password"),
		DBSSLMode:       opt("db_ssl_mode"),
		MaxConns:        v.GetInt32("db_max_conns"),
		MinConns:        v.GetInt32("db_min_conns"),
		MaxConnLifetime: v.GetDuration("db_max_conn_lifetime"),
		MaxConnIdleTime: v.GetDuration("db_max_conn_idle_time"),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("redis_host"),
		Port:     opt("redis_port"),
		Password: opt("redis_password"),
		TTL:      seconds(v, "redis_ttl"),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:  opt("jwt_access_secret"),
		RefreshSecret: opt("jwt_refresh_secret"),
		AccessTTL:     v.GetDuration("jwt_access_expiry"),
		RefreshTTL:    v.GetDuration("jwt_refresh_expiry"),
	}

	cfg.RAG = RAGConfig{
		BaseURL:   strings.TrimRight(opt("rag_base_url"), "/"),
		Timeout:   v.GetDuration("rag_timeout"),
		RateLimit: v.GetFloat64("rag_rate_limit"),
		Burst:     v.GetInt("rag_burst"),
		TopK:      v.GetInt("rag_top_k"),
	}

	cfg.WS = WSConfig{Port: opt("ws_port")}

	cfg.Log = LogConfig{
		JSON:  v.GetBool("log_json"),
		Debug: v.GetBool("log_debug"),
	}

	cfg.Match = MatchConfig{
		PoolSize: v.GetInt("match_pool_size"),
		MinScore: v.GetInt("match_min_score"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

// seconds accepts either a duration string ("10m") or a plain number of
// seconds, which is how REDIS_TTL has always been set.
func seconds(v *viper.Viper, key string) time.Duration {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return 0
	}
	if n := v.GetInt(key); n > 0 && !strings.ContainsAny(raw, "hms") {
		return time.Duration(n) * time.Second
	}
	return v.GetDuration(key)
}
