package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"golang.org/x/text/currency"
)

type Config struct {
	Port    string `env:"PORT" env-default:"8080"`
	Env     string `env:"ENV" env-default:"local"`
	Log     LogConfig
	Remote  RemoteConfig
	Journal JournalConfig
	Web     WebConfig
	Display DisplayConfig
	Client  ClientConfig
}

type LogConfig struct {
	Level string `env:"LOG_LEVEL" env-default:"info"`
}

type RemoteConfig struct {
	URL         string        `env:"REMOTE_API_URL" env-default:"https://dev.gondwana-collection.com/Web-Store/Rates/Rates.php"`
	UnitTypeID  int           `env:"REMOTE_UNIT_TYPE_ID" env-default:"-2147483637"`
	TestUnitIDs []int         `env:"REMOTE_TEST_UNIT_IDS" env-separator:"," env-default:"-2147483637,-2147483456"`
	Timeout     time.Duration `env:"REMOTE_TIMEOUT" env-default:"30s"`
}

type JournalConfig struct {
	Enabled      bool   `env:"JOURNAL_ENABLED" env-default:"true"`
	Path         string `env:"JOURNAL_PATH" env-default:"logs/api.log"`
	RedisURI     string `env:"JOURNAL_REDIS_URI"`
	Stream       string `env:"JOURNAL_STREAM" env-default:"rates:journal"`
	StreamMaxLen int64  `env:"JOURNAL_STREAM_MAXLEN" env-default:"10000"`
}

type WebConfig struct {
	FrontDoorPath      string   `env:"FRONT_DOOR_PATH" env-default:"./web/index.html"`
	RateLimitPerMinute int      `env:"RATE_LIMIT_PER_MINUTE" env-default:"120"`
	CorsAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"*"`
	Pprof              bool     `env:"PPROF_ENABLED" env-default:"false"`
}

type DisplayConfig struct {
	Currency string `env:"DISPLAY_CURRENCY" env-default:"NAD"`
}

// ClientConfig is read by the quote command line client.
type ClientConfig struct {
	ProxyURL string        `env:"QUOTE_PROXY_URL" env-default:"http://localhost:8080/api/rates"`
	Timeout  time.Duration `env:"QUOTE_TIMEOUT" env-default:"35s"`
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) Address(host string) string {
	return fmt.Sprintf("%s:%s", host, c.Port)
}

// Load reads an optional .env file and then the environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) > 0 {
		_ = godotenv.Load(envFiles...)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Remote.URL == "" {
		return fmt.Errorf("REMOTE_API_URL is empty")
	}

	if c.Remote.Timeout <= 0 {
		return fmt.Errorf("REMOTE_TIMEOUT must be positive, got %s", c.Remote.Timeout)
	}

	if len(c.Remote.TestUnitIDs) > 0 && !slices.Contains(c.Remote.TestUnitIDs, c.Remote.UnitTypeID) {
		return fmt.Errorf("REMOTE_UNIT_TYPE_ID %d is not one of REMOTE_TEST_UNIT_IDS %v", c.Remote.UnitTypeID, c.Remote.TestUnitIDs)
	}

	if _, err := currency.ParseISO(c.Display.Currency); err != nil {
		return fmt.Errorf("DISPLAY_CURRENCY %q: %w", c.Display.Currency, err)
	}

	if c.Web.RateLimitPerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative")
	}

	return nil
}
