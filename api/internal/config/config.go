package config

import (
	"fmt"
	"os"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config is read once at startup and passed down; nothing else reads the
// environment.
type Config struct {
	Port int `env:"PORT,default=8080" validate:"min=1,max=65535"`

	GeminiAPIKey string        `env:"GEMINI_API_KEY"`
	GeminiModel  string        `env:"GEMINI_MODEL,default=gemini-1.5-pro" validate:"required"`
	ModelTimeout time.Duration `env:"MODEL_TIMEOUT,default=60s" validate:"gt=0"`

	BehaviorLibraryPath string `env:"BEHAVIOR_LIBRARY_PATH,default=data/behavior_library.json" validate:"required"`
	DatabaseURL         string `env:"DATABASE_URL"`

	LogLevel          string        `env:"LOG_LEVEL,default=info" validate:"oneof=debug info warn error"`
	TrustProxyHeaders bool          `env:"TRUST_PROXY_HEADERS,default=false"`
	MaxBodyBytes      int           `env:"MAX_BODY_BYTES,default=1048576" validate:"gt=0"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s" validate:"gt=0"`

	EncryptionKey string `env:"ENCRYPTION_KEY"`
	AppSecretKey  string `env:"APP_SECRET_KEY"`
}

var validate = validator.New()

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnviron(os.Environ())
}

func FromEnviron(environ []string) (*Config, error) {
	es, err := env.EnvironToEnvSet(environ)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	var cfg Config
	if err := env.Unmarshal(es, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }

// Fields is the loggable view of the config. Secrets are reported as set/unset.
func (c *Config) Fields() []zap.Field {
	return []zap.Field{
		zap.Int("port", c.Port),
		zap.String("gemini_model", c.GeminiModel),
		zap.Bool("gemini_key_set", c.GeminiAPIKey != ""),
		zap.Duration("model_timeout", c.ModelTimeout),
		zap.String("behavior_library", c.BehaviorLibraryPath),
		zap.Bool("audit_enabled", c.DatabaseURL != ""),
		zap.String("log_level", c.LogLevel),
		zap.Bool("trust_proxy_headers", c.TrustProxyHeaders),
		zap.Int("max_body_bytes", c.MaxBodyBytes),
		zap.Bool("encryption_key_set", c.EncryptionKey != ""),
		zap.Bool("app_secret_set", c.AppSecretKey != ""),
	}
}
