package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port    string
	AppEnv  string
	Gemini  GeminiConfig
	DB      DatabaseConfig
	Redis   RedisConfig
	JWT     string
	Origins []string
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Configured reports whether AI generation is available. Without a key the
// service answers from its fallback content.
func (g GeminiConfig) Configured() bool { return g.APIKey != "" }

type DatabaseConfig struct {
	Driver string
	DSN    string
}

type RedisConfig struct {
	// Addr empty means the in-process cache is used.
	Addr     string
	CacheTTL time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash-lite")
	v.SetDefault("AI_TIMEOUT", "20s")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "blueprint.db")
	v.SetDefault("SUGGESTION_CACHE_TTL", "6h")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")
}

// Load reads .env files (if present) and the process environment.
func Load(envFiles ...string) (Config, error) {
	// .env is optional
	_ = godotenv.Load(envFiles...)

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	timeout, err := duration(v, "AI_TIMEOUT")
	if err != nil {
		return Config{}, err
	}
	ttl, err := duration(v, "SUGGESTION_CACHE_TTL")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:   v.GetString("PORT"),
		AppEnv: strings.ToLower(v.GetString("APP_ENV")),
		Gemini: GeminiConfig{
			APIKey:  v.GetString("GEMINI_API_KEY"),
			Model:   v.GetString("GEMINI_MODEL"),
			Timeout: timeout,
		},
		DB: DatabaseConfig{
			Driver: v.GetString("DATABASE_DRIVER"),
			DSN:    v.GetString("DATABASE_DSN"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			CacheTTL: ttl,
		},
		JWT:     v.GetString("JWT_SECRET"),
		Origins: splitList(v.GetString("CORS_ORIGINS")),
	}
	if cfg.JWT == "" {
		if cfg.Production() {
			return Config{}, fmt.Errorf("JWT_SECRET is required in production")
		}
		cfg.JWT = "dev-secret"
	}
	return cfg, nil
}

func (c Config) Production() bool {
	return c.AppEnv == "prod" || c.AppEnv == "production"
}

func duration(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, raw)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
