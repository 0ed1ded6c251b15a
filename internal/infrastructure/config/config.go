package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"recipe-recommender/internal/core/adapter"
	"recipe-recommender/internal/core/nutrition"
	"recipe-recommender/internal/core/ranking"
	"recipe-recommender/internal/core/safety"
)

// Config 應用配置
type Config struct {
	App         AppConfig              `mapstructure:"app"`
	Server      ServerConfig           `mapstructure:"server"`
	OpenRouter  OpenRouterConfig       `mapstructure:"openrouter"`
	Database    DatabaseConfig         `mapstructure:"database"`
	Cache       CacheConfig            `mapstructure:"cache"`
	Events      EventsConfig           `mapstructure:"events"`
	RateLimit   RateLimitConfig        `mapstructure:"rate_limit"`
	Pipeline    PipelineConfig         `mapstructure:"pipeline"`
	Adapter     adapter.Config         `mapstructure:"adapter"`
	Safety      safety.Config          `mapstructure:"safety"`
	SafetyRules []safety.ConditionRule `mapstructure:"safety_rules"`
	Nutrition   nutrition.Config       `mapstructure:"nutrition"`
	Ranking     ranking.Config         `mapstructure:"ranking"`
	DedupWindow time.Duration          `mapstructure:"dedup_window"`
	LogLevel    string                 `mapstructure:"log_level"`
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
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
}

// OpenRouterConfig OpenRouter 配置（推薦理由文字）
type OpenRouterConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	APIKey    string        `mapstructure:"api_key"`
	BaseURL   string        `mapstructure:"base_url"`
	Model     string        `mapstructure:"model"`
	MaxTokens int           `mapstructure:"max_tokens"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// DatabaseConfig 資料庫設定
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"`
	DSN          string `mapstructure:"dsn"`
	AutoMigrate  bool   `mapstructure:"auto_migrate"`
	Seed         bool   `mapstructure:"seed"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

// CacheConfig 候選食譜快取設定
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Backend         string        `mapstructure:"backend"`
	RedisAddr       string        `mapstructure:"redis_addr"`
	RedisPassword   string        `mapstructure:"redis_password"`
	RedisDB         int           `mapstructure:"redis_db"`
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// EventsConfig 互動事件寫入設定
type EventsConfig struct {
	Backend     string `mapstructure:"backend"`
	JournalPath string `mapstructure:"journal_path"`
	Workers     int    `mapstructure:"workers"`
	QueueSize   int    `mapstructure:"queue_size"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
	Burst    int           `mapstructure:"burst"`
}

// PipelineConfig 推薦流程設定
type PipelineConfig struct {
	TopN             int           `mapstructure:"top_n"`
	MinViable        int           `mapstructure:"min_viable"`
	CandidateLimit   int           `mapstructure:"candidate_limit"`
	FetchTimeout     time.Duration `mapstructure:"fetch_timeout"`
	EventTimeout     time.Duration `mapstructure:"event_timeout"`
	RationaleTimeout time.Duration `mapstructure:"rationale_timeout"`
	MaxSteps         int           `mapstructure:"max_steps"`
	CalorieBandMin   float64       `mapstructure:"calorie_band_min"`
	CalorieBandMax   float64       `mapstructure:"calorie_band_max"`

	DefaultDailyCalories int `mapstructure:"default_daily_calories"`
}

// 支援的後端
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	CacheMemory = "memory"
	CacheRedis  = "redis"

	EventsDatabase = "database"
	EventsJournal  = "journal"
)

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// 加載 .env 文件；不存在時僅使用環境變數與預設值
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()

	// 設定預設值
	setDefaults(v)

	// 設定環境變數前綴
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 綁定環境變量
	v.BindEnv("app.env", "APP_ENV")
	v.BindEnv("server.port", "PORT")
	v.BindEnv("openrouter.enabled", "OPENROUTER_ENABLED")
	v.BindEnv("openrouter.api_key", "OPENROUTER_API_KEY")
	v.BindEnv("openrouter.model", "OPENROUTER_MODEL")
	v.BindEnv("openrouter.max_tokens", "MODEL_MAX_TOKENS")
	v.BindEnv("database.driver", "DATABASE_DRIVER")
	v.BindEnv("database.dsn", "DATABASE_DSN", "DATABASE_URL")
	v.BindEnv("cache.enabled", "CACHE_ENABLED")
	v.BindEnv("cache.backend", "CACHE_BACKEND")
	v.BindEnv("cache.redis_addr", "REDIS_ADDR")
	v.BindEnv("cache.redis_password", "REDIS_PASSWORD")
	v.BindEnv("events.backend", "EVENTS_BACKEND")
	v.BindEnv("events.journal_path", "EVENTS_JOURNAL_PATH")
	v.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	v.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	v.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	v.BindEnv("dedup_window", "DEDUP_WINDOW")
	v.BindEnv("log_level", "LOG_LEVEL")

	// 額外的 YAML 設定檔（例如自訂病症規則）
	if path := os.Getenv("APP_CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 示範資料只在開發環境預設寫入
	v.SetDefault("database.seed", v.GetString("app.env") == "development")

	// 添加調試日誌（logger 尚未初始化，改用 fmt.Println）
	fmt.Println("Loading configuration", "openrouter_api_key:", maskAPIKey(v.GetString("openrouter.api_key")),
		"database_driver:", v.GetString("database.driver"), "cache_backend:", v.GetString("cache.backend"))

	// 解析設定
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if len(config.SafetyRules) == 0 {
		config.SafetyRules = safety.DefaultRules()
	}

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// maskAPIKey 遮罩 API Key，只顯示前後各 4 個字符
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// setDefaults 設定預設值
func setDefaults(v *viper.Viper) {
	// 應用程式設定
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", true)
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.name", "recipe-recommender")

	// 伺服器設定
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.request_timeout", "20s")
	v.SetDefault("server.max_body_bytes", 1<<20) // 1MB
	v.SetDefault("server.allowed_origins", []string{"*"})

	// OpenRouter 設定
	v.SetDefault("openrouter.enabled", false)
	v.SetDefault("openrouter.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("openrouter.model", "qwen/qwen2.5-72b-instruct:free")
	v.SetDefault("openrouter.max_tokens", 120)
	v.SetDefault("openrouter.timeout", "10s")

	// 資料庫設定
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.dsn", "file::memory:?cache=shared")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)

	// 快取設定
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.backend", CacheMemory)
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cache.redis_db", 0)
	v.SetDefault("cache.max_size", 1000)
	v.SetDefault("cache.ttl", "10m")
	v.SetDefault("cache.cleanup_interval", "1m")

	// 事件設定
	v.SetDefault("events.backend", EventsDatabase)
	v.SetDefault("events.journal_path", "data/events.db")
	v.SetDefault("events.workers", 2)
	v.SetDefault("events.queue_size", 256)

	// 限流設定
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 100)
	v.SetDefault("rate_limit.window", "1m")
	v.SetDefault("rate_limit.burst", 20)

	// 推薦流程設定
	v.SetDefault("pipeline.top_n", 5)
	v.SetDefault("pipeline.min_viable", 5)
	v.SetDefault("pipeline.candidate_limit", 50)
	v.SetDefault("pipeline.fetch_timeout", "5s")
	v.SetDefault("pipeline.event_timeout", "3s")
	v.SetDefault("pipeline.rationale_timeout", "4s")
	v.SetDefault("pipeline.max_steps", 10)
	v.SetDefault("pipeline.calorie_band_min", 0.25)
	v.SetDefault("pipeline.calorie_band_max", 2.0)
	v.SetDefault("pipeline.default_daily_calories", 2000)

	ad := adapter.DefaultConfig()
	v.SetDefault("adapter.portion_threshold", ad.PortionThreshold)
	v.SetDefault("adapter.meals_per_day", ad.MealsPerDay)

	sc := safety.DefaultConfig()
	v.SetDefault("safety.condition_penalty", sc.ConditionPenalty)
	v.SetDefault("safety.calorie_penalty", sc.CaloriePenalty)
	v.SetDefault("safety.safe_threshold", sc.SafeThreshold)
	v.SetDefault("safety.modification_threshold", sc.ModificationThreshold)
	v.SetDefault("safety.calorie_overage_ratio", sc.CalorieOverageRatio)
	v.SetDefault("safety.meals_per_day", sc.MealsPerDay)

	nc := nutrition.DefaultConfig()
	v.SetDefault("nutrition.plausibility_floor_kcal", nc.PlausibilityFloorKcal)
	v.SetDefault("nutrition.max_plausible_kcal", nc.MaxPlausibleKcal)

	rc := ranking.DefaultConfig()
	v.SetDefault("ranking.top_n", rc.TopN)
	v.SetDefault("ranking.meals_per_day", rc.MealsPerDay)
	v.SetDefault("ranking.close_calorie_bonus", rc.CloseCalorieBonus)
	v.SetDefault("ranking.near_calorie_bonus", rc.NearCalorieBonus)
	v.SetDefault("ranking.close_calorie_delta", rc.CloseCalorieDelta)
	v.SetDefault("ranking.near_calorie_delta", rc.NearCalorieDelta)
	v.SetDefault("ranking.goal_bonus", rc.GoalBonus)
	v.SetDefault("ranking.weight_loss_ratio", rc.WeightLossRatio)
	v.SetDefault("ranking.muscle_gain_protein_g", rc.MuscleGainProteinG)

	v.SetDefault("dedup_window", "1s")
	v.SetDefault("log_level", "info")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	// 驗證伺服器設定
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	// 驗證資料庫設定
	switch config.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q", config.Database.Driver)
	}
	if config.Database.DSN == "" {
		return fmt.Errorf("database dsn is required")
	}

	// 驗證快取設定
	if config.Cache.Enabled {
		if config.Cache.Backend != CacheMemory && config.Cache.Backend != CacheRedis {
			return fmt.Errorf("unsupported cache backend %q", config.Cache.Backend)
		}
		if config.Cache.MaxSize <= 0 {
			return fmt.Errorf("invalid cache max size")
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
		if config.Cache.CleanupInterval <= 0 {
			return fmt.Errorf("invalid cache cleanup interval")
		}
	}

	// 驗證事件設定
	if config.Events.Backend != EventsDatabase && config.Events.Backend != EventsJournal {
		return fmt.Errorf("unsupported events backend %q", config.Events.Backend)
	}
	if config.Events.Workers <= 0 {
		return fmt.Errorf("invalid events workers")
	}
	if config.Events.QueueSize <= 0 {
		return fmt.Errorf("invalid events queue size")
	}

	// 驗證推薦流程設定
	if config.Pipeline.TopN <= 0 {
		return fmt.Errorf("invalid pipeline top_n")
	}
	if config.Pipeline.MinViable < 0 {
		return fmt.Errorf("invalid pipeline min_viable")
	}
	if config.Pipeline.CandidateLimit < config.Pipeline.TopN {
		return fmt.Errorf("pipeline candidate_limit must be at least top_n")
	}
	if config.Pipeline.FetchTimeout <= 0 || config.Pipeline.EventTimeout <= 0 {
		return fmt.Errorf("pipeline timeouts must be positive")
	}
	if config.Pipeline.CalorieBandMax > 0 && config.Pipeline.CalorieBandMax < config.Pipeline.CalorieBandMin {
		return fmt.Errorf("pipeline calorie band is inverted")
	}

	return nil
}
