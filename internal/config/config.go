// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all settings for the dashboard API server. Values come from
// the environment (optionally seeded from a .env file); every key has a
// working local-development default.
type Config struct {
	APIPort       string `mapstructure:"API_PORT"`
	LocalStackURL string `mapstructure:"LOCALSTACK_URL"`

	LogLevel       string `mapstructure:"LOG_LEVEL"`
	GinMode        string `mapstructure:"GIN_MODE"`
	TrustedProxies string `mapstructure:"TRUSTED_PROXIES"`

	TLSEnable   bool   `mapstructure:"TLS_ENABLE"`
	TLSCertFile string `mapstructure:"TLS_CERT_FILE"`
	TLSKeyFile  string `mapstructure:"TLS_KEY_FILE"`

	// Comma-separated container names tried in order when resolving the
	// LocalStack log source.
	LogContainers   string        `mapstructure:"LOG_CONTAINERS"`
	LogTailLines    int           `mapstructure:"LOG_TAIL_LINES"`
	LogFetchTimeout time.Duration `mapstructure:"LOG_FETCH_TIMEOUT"`
	ListTimeout     time.Duration `mapstructure:"LIST_TIMEOUT"`

	// Empty means auto-detect (docker, then podman).
	ContainerRuntime string `mapstructure:"CONTAINER_RUNTIME"`

	ProxyTimeout time.Duration `mapstructure:"PROXY_TIMEOUT"`

	SeedCommand string        `mapstructure:"SEED_COMMAND"`
	SeedTimeout time.Duration `mapstructure:"SEED_TIMEOUT"`
}

// AppConfig is the loaded global configuration.
var AppConfig Config

// LogSourceCandidates returns the ordered container names to try when
// resolving the LocalStack log source.
func (c *Config) LogSourceCandidates() []string {
	parts := strings.Split(c.LogContainers, ",")
	candidates := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			candidates = append(candidates, p)
		}
	}
	return candidates
}

// LoadConfig populates AppConfig from the given .env file (if any) and the
// process environment. Passing an empty path skips file loading and relies
// on environment variables and defaults only.
func LoadConfig(envFile string) error {
	v := viper.New()

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("config file '%s': %w", envFile, err)
			}
			return fmt.Errorf("failed to load config file '%s': %w", envFile, err)
		}
	}

	setDefaults(v)
	v.AutomaticEnv()

	// AutomaticEnv alone does not surface env vars through Unmarshal, so
	// bind each known key explicitly.
	for _, key := range v.AllKeys() {
		if err := v.BindEnv(strings.ToUpper(key)); err != nil {
			return fmt.Errorf("failed to bind env var '%s': %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	AppConfig = cfg
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_PORT", "9999")
	v.SetDefault("LOCALSTACK_URL", "http://localhost:4566")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("TRUSTED_PROXIES", "")

	v.SetDefault("TLS_ENABLE", false)
	v.SetDefault("TLS_CERT_FILE", "")
	v.SetDefault("TLS_KEY_FILE", "")

	v.SetDefault("LOG_CONTAINERS", "localstack-main,localstack-demo-localstack-1,localstack_main,localstack")
	v.SetDefault("LOG_TAIL_LINES", 100)
	v.SetDefault("LOG_FETCH_TIMEOUT", 30*time.Second)
	v.SetDefault("LIST_TIMEOUT", 10*time.Second)

	v.SetDefault("CONTAINER_RUNTIME", "")

	v.SetDefault("PROXY_TIMEOUT", 10*time.Second)

	v.SetDefault("SEED_COMMAND", "python3 demo.py")
	v.SetDefault("SEED_TIMEOUT", 60*time.Second)
}
