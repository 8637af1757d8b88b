// Package settings holds the service's own runtime settings, read from an
// optional YAML file and the environment.
package settings

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Settings is the complete service configuration
type Settings struct {
	Server  Server  `yaml:"server"`
	Logging Logging `yaml:"logging"`
	Sources Sources `yaml:"sources"`
}

// Server configures the HTTP API
type Server struct {
	Port              int           `yaml:"port" env:"PORT" env-default:"8080" env-description:"HTTP listen port"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"10s" env-description:"graceful shutdown timeout"`
	EnableCORS        bool          `yaml:"enable_cors" env:"ENABLE_CORS" env-default:"true" env-description:"enable CORS middleware"`
	AllowedOrigins    []string      `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"http://localhost:3000" env-description:"comma separated CORS origins"`
	MaxBodySize       string        `yaml:"max_body_size" env:"MAX_BODY_SIZE" env-default:"4M" env-description:"maximum request body size"`
	RequestTimeout    time.Duration `yaml:"request_timeout" env:"REQUEST_TIMEOUT" env-default:"30s" env-description:"per-request timeout"`
	RateLimitRequests int           `yaml:"rate_limit_requests" env:"RATE_LIMIT_REQUESTS" env-default:"100" env-description:"requests allowed per client per window"`
	RateLimitDuration time.Duration `yaml:"rate_limit_duration" env:"RATE_LIMIT_DURATION" env-default:"1m" env-description:"rate limit window"`
	AdminToken        string        `yaml:"admin_token" env:"ADMIN_TOKEN" env-description:"shared token required by admin routes; empty disables them"`
}

// Logging configures zerolog
type Logging struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info" env-description:"trace, debug, info, warn or error"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json" env-description:"json or console"`
}

// Sources points at the dashboard configuration files
type Sources struct {
	ConfigurationPath string        `yaml:"configuration_path" env:"CONFIGURATION_PATH" env-description:"deployment configuration file; empty uses defaults"`
	CloudConfigsPath  string        `yaml:"cloud_configs_path" env:"CLOUD_CONFIGS_PATH" env-default:"cloud_configs.yaml" env-description:"cloud configuration file"`
	Watch             bool          `yaml:"watch" env:"WATCH_CONFIG" env-default:"false" env-description:"reload when configuration files change"`
	WatchDebounce     time.Duration `yaml:"watch_debounce" env:"WATCH_DEBOUNCE" env-default:"500ms" env-description:"delay before reloading after a change"`
}

// NewSettings reads settings from the given file, if any, then from the
// environment. Environment values take precedence.
func NewSettings(configFile string) (*Settings, error) {
	var s Settings

	if configFile != "" {
		if _, err := os.Stat(configFile); err != nil {
			return nil, fmt.Errorf("no settings file %s: %w", configFile, err)
		}
		if err := cleanenv.ReadConfig(configFile, &s); err != nil {
			return nil, fmt.Errorf("read settings from %s: %w", configFile, err)
		}
	} else if err := cleanenv.ReadEnv(&s); err != nil {
		return nil, fmt.Errorf("read settings from environment: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

// Validate checks value ranges cleanenv cannot express
func (s *Settings) Validate() error {
	if s.Server.Port <= 0 || s.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", s.Server.Port)
	}
	if s.Server.RateLimitRequests < 0 {
		return fmt.Errorf("rate limit requests must be >= 0, got %d", s.Server.RateLimitRequests)
	}
	if s.Sources.CloudConfigsPath == "" {
		return fmt.Errorf("cloud configs path is required")
	}

	switch strings.ToLower(s.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("unknown log format %q", s.Logging.Format)
	}

	return nil
}

// Usage returns a description of every environment variable
func Usage() string {
	var s Settings
	text, err := cleanenv.GetDescription(&s, nil)
	if err != nil {
		return err.Error()
	}
	return text
}
