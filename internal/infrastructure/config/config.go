package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port       string        `env:"PORT,        default=8080"`
	Env        string        `env:"APP_ENV,     default=production"`
	LogLevel   string        `env:"LOG_LEVEL,   default=info"`
	JWTSecret  string        `env:"JWT_SECRET,  required"`
	JWTTTL     time.Duration `env:"JWT_TTL,     default=1h"`
	BcryptCost int           `env:"BCRYPT_COST, default=10"`

	Mongo     MongoConfig
	Redis     RedisConfig
	OpenAI    OpenAIConfig
	RateLimit RateLimitConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=lesson_platform"`
}

// RedisConfig.Addr empty disables Redis; rate limits then stay in process.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type OpenAIConfig struct {
	APIKey    string `env:"OPENAI_API_KEY,    required"`
	Model     string `env:"OPENAI_MODEL,      default=gpt-4o-mini"`
	MaxTokens int    `env:"OPENAI_MAX_TOKENS, default=500"`
	BaseURL   string `env:"OPENAI_BASE_URL"`
}

type RateLimitConfig struct {
	Max         int           `env:"RATE_LIMIT_MAX,     default=100"`
	Window      time.Duration `env:"RATE_LIMIT_WINDOW,  default=15m"`
	LoginMax    int           `env:"LOGIN_LIMIT_MAX,    default=5"`
	LoginWindow time.Duration `env:"LOGIN_LIMIT_WINDOW, default=5m"`
}

func (c *Config) IsDevelopment() bool { return c.Env == "development" }

// Load reads an optional .env file, then configuration from environment
// variables using go-envconfig. Variables already set in the environment
// win over the file.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.RateLimit.Max < 1 || cfg.RateLimit.LoginMax < 1 {
		return nil, errors.New("config: rate limits must be positive")
	}
	return &cfg, nil
}
