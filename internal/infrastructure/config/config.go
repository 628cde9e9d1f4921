package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App          AppConfig          `mapstructure:"app"`
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	CocktailDB   CocktailDBConfig   `mapstructure:"cocktaildb"`
	OpenFoodFact OpenFoodFactConfig `mapstructure:"openfoodfacts"`
	Cache        CacheConfig        `mapstructure:"cache"`
	RateLimit    RateLimitConfig    `mapstructure:"rate_limit"`
	Synonyms     SynonymConfig      `mapstructure:"synonyms"`
	Macros       MacroConfig        `mapstructure:"macros"`
	Suggestion   SuggestionConfig   `mapstructure:"suggestion"`
	DedupWindow  time.Duration      `mapstructure:"dedup_window"`
	LogLevel     string             `mapstructure:"log_level"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env      string `mapstructure:"env"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	Version  string `mapstructure:"version"`
	Name     string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// DatabaseConfig 資料庫配置（sqlite）
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// CocktailDBConfig 外部酒譜資料庫 API 配置
type CocktailDBConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// OpenFoodFactConfig 條碼商品查詢 API 配置
type OpenFoodFactConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CacheConfig 條碼快取配置
type CacheConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	RedisAddr string        `mapstructure:"redis_addr"`
	MaxSize   int           `mapstructure:"max_size"`
	TTL       time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// SynonymConfig 別名表檔案路徑
type SynonymConfig struct {
	IngredientFile string `mapstructure:"ingredient_file"`
	UnitFile       string `mapstructure:"unit_file"`
}

// MacroConfig 風味關鍵字配置
type MacroConfig struct {
	LexiconFile string `mapstructure:"lexicon_file"`
}

// SuggestionConfig 酒譜推薦設定
type SuggestionConfig struct {
	DefaultLimit int `mapstructure:"default_limit"`
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// 加載 .env 文件，沒有 .env 時直接用環境變數與預設值
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	// 設定預設值
	setDefaults()

	// 設定環境變數前綴
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 綁定環境變量
	viper.BindEnv("database.path", "DATABASE_PATH")
	viper.BindEnv("cocktaildb.base_url", "COCKTAILDB_BASE_URL")
	viper.BindEnv("openfoodfacts.base_url", "OPENFOODFACTS_BASE_URL")
	viper.BindEnv("cache.enabled", "CACHE_ENABLED")
	viper.BindEnv("cache.redis_addr", "CACHE_REDIS_ADDR")
	viper.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	viper.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	viper.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	viper.BindEnv("synonyms.ingredient_file", "SYNONYM_INGREDIENT_FILE")
	viper.BindEnv("synonyms.unit_file", "SYNONYM_UNIT_FILE")
	viper.BindEnv("macros.lexicon_file", "MACRO_LEXICON_FILE")
	viper.BindEnv("dedup_window", "DEDUP_WINDOW")
	viper.BindEnv("log_level", "LOG_LEVEL")

	// 設定設定檔名稱和路徑
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// 讀取設定檔
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 解析設定
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// setDefaults 設定預設值
func setDefaults() {
	// 應用程式設定
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "bar-manager")

	// 伺服器設定
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	// 資料庫設定
	viper.SetDefault("database.path", "data/bar.db")

	// 外部 API 設定
	viper.SetDefault("cocktaildb.base_url", "https://www.thecocktaildb.com/api/json/v1/1")
	viper.SetDefault("cocktaildb.timeout", "10s")
	viper.SetDefault("openfoodfacts.base_url", "https://world.openfoodfacts.org/api/v0/product")
	viper.SetDefault("openfoodfacts.timeout", "10s")

	// 快取設定
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.redis_addr", "")
	viper.SetDefault("cache.max_size", 1000)
	viper.SetDefault("cache.ttl", "24h")

	// 限流設定
	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests", 100)
	viper.SetDefault("rate_limit.window", "1m")

	// 別名表設定
	viper.SetDefault("synonyms.ingredient_file", "data/synonyms.json")
	viper.SetDefault("synonyms.unit_file", "data/unit_synonyms.json")

	// 風味關鍵字設定
	viper.SetDefault("macros.lexicon_file", "configs/macros.yaml")

	// 推薦設定
	viper.SetDefault("suggestion.default_limit", 3)

	// 去重設定
	viper.SetDefault("dedup_window", "1s")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	// 驗證伺服器設定
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	// 驗證資料庫設定
	if config.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}

	// 驗證快取設定
	if config.Cache.Enabled {
		if config.Cache.MaxSize <= 0 {
			return fmt.Errorf("invalid cache max size")
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
	}

	// 驗證別名表設定
	if config.Synonyms.IngredientFile == "" || config.Synonyms.UnitFile == "" {
		return fmt.Errorf("synonym file paths are required")
	}

	// 驗證推薦設定
	if config.Suggestion.DefaultLimit <= 0 {
		return fmt.Errorf("invalid suggestion default limit")
	}

	return nil
}
