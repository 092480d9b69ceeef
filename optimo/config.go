package optimo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL = "https://api.optimoroute.com"
	DefaultVersion = "v1"
	DefaultTimeout = 10 * time.Second
)

// Environment variables read by LoadConfig.
const (
	EnvBaseURL   = "OPTIMO_URL"
	EnvAccessKey = "OPTIMO_ACCESS_KEY"
	EnvVersion   = "OPTIMO_API_VERSION"
	EnvTimeout   = "OPTIMO_TIMEOUT"
)

// Config holds everything a Client needs to reach the service.
type Config struct {
	BaseURL   string        `yaml:"base_url" validate:"required,url"`
	Version   string        `yaml:"version" validate:"required,apiversion"`
	AccessKey string        `yaml:"access_key" validate:"required"`
	Timeout   time.Duration `yaml:"timeout" validate:"gte=0"`
}

func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Version: DefaultVersion,
		Timeout: DefaultTimeout,
	}
}

// LoadConfig builds a Config from the environment. The given dotenv files are
// loaded first; with none, an optional ./.env is used. Variables already set
// in the environment win over dotenv values.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return Config{}, fmt.Errorf("load env files: %w", err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		BaseURL:   getEnv(EnvBaseURL, DefaultBaseURL),
		Version:   getEnv(EnvVersion, DefaultVersion),
		AccessKey: os.Getenv(EnvAccessKey),
		Timeout:   DefaultTimeout,
	}

	if raw := os.Getenv(EnvTimeout); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvTimeout, raw, err)
		}
		cfg.Timeout = d
	}

	return cfg, nil
}

// LoadConfigFile reads a YAML config. Fields missing from the file keep their defaults.
func LoadConfigFile(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var (
	apiVersionRe    = regexp.MustCompile(`^v\d+$`)
	configValidator = newConfigValidator()
)

func newConfigValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("apiversion", func(fl validator.FieldLevel) bool {
		return apiVersionRe.MatchString(fl.Field().String())
	})
	return v
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.BaseURL == "" {
		c.BaseURL = d.BaseURL
	}
	if c.Version == "" {
		c.Version = d.Version
	}
	if c.Timeout == 0 {
		c.Timeout = d.Timeout
	}
	return c
}

func (c Config) validate() error {
	err := configValidator.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("%w: %s failed %q (value %q)", ErrInvalidConfig, fe.Field(), fe.Tag(), fmt.Sprint(fe.Value()))
	}
	return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
}
