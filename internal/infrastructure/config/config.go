package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Data      DataConfig      `mapstructure:"data"`
	Store     StoreConfig     `mapstructure:"store"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Matching  MatchingConfig  `mapstructure:"matching"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Fallback  FallbackConfig  `mapstructure:"fallback"`
	Chat      ChatConfig      `mapstructure:"chat"`
	LogLevel  string          `mapstructure:"log_level"`
	LogDir    string          `mapstructure:"log_dir"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
}

// AuthConfig 驗證設定
type AuthConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// DataConfig 參考資料檔案位置
type DataConfig struct {
	NutrientsPath   string `mapstructure:"nutrients_path"`
	RecipesPath     string `mapstructure:"recipes_path"`
	AliasesPath     string `mapstructure:"aliases_path"`
	UserRecipesPath string `mapstructure:"user_recipes_path"`
}

// StoreConfig 使用者食譜儲存後端：file、redis 或 memory
type StoreConfig struct {
	Backend string `mapstructure:"backend"`
}

// RedisConfig Redis 連線設定
type RedisConfig struct {
	Addr        string        `mapstructure:"addr"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	KeyPrefix   string        `mapstructure:"key_prefix"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
}

// MatchingConfig 模糊比對與份量判斷參數
type MatchingConfig struct {
	FuzzyThreshold float64 `mapstructure:"fuzzy_threshold"`
	PieceThreshold float64 `mapstructure:"piece_threshold"`
}

// CacheConfig 模糊查詢快取配置
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	MaxSize int           `mapstructure:"max_size"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// FallbackConfig 外部營養資料來源（OpenFoodFacts）
type FallbackConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ChatConfig 聊天記憶設定
type ChatConfig struct {
	MemorySize int `mapstructure:"memory_size"`
}

// LoadConfig 載入設定：預設值 → .env → 環境變數
func LoadConfig() (*Config, error) {
	// .env 不存在時不視為錯誤
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 綁定環境變量
	v.BindEnv("auth.api_key", "AI_KEY")
	v.BindEnv("server.port", "PORT")
	v.BindEnv("data.nutrients_path", "NUTRIENTS_PATH")
	v.BindEnv("data.recipes_path", "RECIPES_PATH")
	v.BindEnv("data.aliases_path", "ALIASES_PATH")
	v.BindEnv("data.user_recipes_path", "USER_RECIPES_PATH")
	v.BindEnv("store.backend", "STORE_BACKEND")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("matching.fuzzy_threshold", "FUZZY_THRESHOLD")
	v.BindEnv("cache.enabled", "CACHE_ENABLED")
	v.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	v.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	v.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	v.BindEnv("fallback.enabled", "FALLBACK_ENABLED")
	v.BindEnv("log_level", "LOG_LEVEL")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// setDefaults 設定預設值
func setDefaults(v *viper.Viper) {
	// 應用程式設定
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", true)
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.name", "gofoody-ai")

	// 伺服器設定
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.request_timeout", "30s")
	v.SetDefault("server.max_body_bytes", 1<<20) // 1MB

	// 參考資料
	v.SetDefault("data.nutrients_path", "data/FoodData_Central.json")
	v.SetDefault("data.recipes_path", "data/italian_recipes.json")
	v.SetDefault("data.aliases_path", "data/aliases.json")
	v.SetDefault("data.user_recipes_path", "data/user_recipes.json")

	// 儲存後端
	v.SetDefault("store.backend", "file")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.key_prefix", "gofoody:")
	v.SetDefault("redis.dial_timeout", "5s")

	// 比對參數
	v.SetDefault("matching.fuzzy_threshold", 0.75)
	v.SetDefault("matching.piece_threshold", 5)

	// 快取設定
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.max_size", 1000)
	v.SetDefault("cache.ttl", "24h")

	// 限流設定
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 100)
	v.SetDefault("rate_limit.window", "1m")

	// 外部資料來源
	v.SetDefault("fallback.enabled", false)
	v.SetDefault("fallback.base_url", "https://world.openfoodfacts.org")
	v.SetDefault("fallback.timeout", "10s")

	v.SetDefault("chat.memory_size", 10)

	v.SetDefault("log_level", "info")
	v.SetDefault("log_dir", "logs")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	if config.Auth.APIKey == "" {
		return fmt.Errorf("auth api key is required (AI_KEY)")
	}

	if config.Data.NutrientsPath == "" {
		return fmt.Errorf("nutrients path is required")
	}

	switch config.Store.Backend {
	case "file":
		if config.Data.UserRecipesPath == "" {
			return fmt.Errorf("user recipes path is required for the file backend")
		}
	case "redis":
		if config.Redis.Addr == "" {
			return fmt.Errorf("redis addr is required for the redis backend")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown store backend %q", config.Store.Backend)
	}

	if config.Matching.FuzzyThreshold <= 0 || config.Matching.FuzzyThreshold > 1 {
		return fmt.Errorf("invalid fuzzy threshold")
	}
	if config.Matching.PieceThreshold <= 0 {
		return fmt.Errorf("invalid piece threshold")
	}

	if config.Cache.Enabled {
		if config.Cache.MaxSize <= 0 {
			return fmt.Errorf("invalid cache max size")
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
	}

	if config.RateLimit.Enabled {
		if config.RateLimit.Requests <= 0 {
			return fmt.Errorf("invalid rate limit requests")
		}
		if config.RateLimit.Window <= 0 {
			return fmt.Errorf("invalid rate limit window")
		}
	}

	if config.Fallback.Enabled && config.Fallback.BaseURL == "" {
		return fmt.Errorf("fallback base url is required")
	}

	if config.Chat.MemorySize <= 0 {
		return fmt.Errorf("invalid chat memory size")
	}

	return nil
}
