package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/samvad-hq/gunbroker/pkg/gunbroker"
)

const envPrefix = "GUNBROKER"

// Config holds the application configuration loaded from files, environment
// variables and command-line flags.
type Config struct {
	AppName        string        `mapstructure:"app_name"`
	LogLevel       string        `mapstructure:"log_level"`
	DevKey         string        `mapstructure:"dev_key"`
	AccessToken    string        `mapstructure:"access_token"`
	Sandbox        bool          `mapstructure:"sandbox"`
	TimeoutSeconds int64         `mapstructure:"timeout_seconds"`
	RootURL        string        `mapstructure:"root_url"`
	SandboxRootURL string        `mapstructure:"sandbox_root_url"`
	Timeout        time.Duration `mapstructure:"-"`
}

// RegisterFlags declares the flags Load understands on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("log-level", "", "log level (debug, info, warn, error)")
	fs.String("dev-key", "", "GunBroker developer key")
	fs.String("access-token", "", "default access token")
	fs.Bool("sandbox", false, "use the sandbox API root")
	fs.Int64("timeout-seconds", 0, "request timeout in seconds")
	fs.String("root-url", "", "override the production API root")
	fs.String("sandbox-root-url", "", "override the sandbox API root")
}

// Load reads configuration from configs/.env, GUNBROKER_* environment
// variables and, when flags is non-nil, flags registered with RegisterFlags.
// Flags that were set explicitly take precedence.
func Load(flags *pflag.FlagSet) (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "gunbroker")
	v.SetDefault("log_level", "info")
	v.SetDefault("dev_key", "")
	v.SetDefault("access_token", "")
	v.SetDefault("sandbox", false)
	v.SetDefault("timeout_seconds", int64(gunbroker.DefaultTimeout/time.Second))
	v.SetDefault("root_url", "")
	v.SetDefault("sandbox_root_url", "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for _, key := range []string{"log_level", "dev_key", "access_token", "sandbox", "timeout_seconds", "root_url", "sandbox_root_url"} {
			f := flags.Lookup(strings.ReplaceAll(key, "_", "-"))
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", f.Name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.DevKey = strings.TrimSpace(cfg.DevKey)
	cfg.AccessToken = strings.TrimSpace(cfg.AccessToken)
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.RootURL = strings.TrimSpace(cfg.RootURL)
	cfg.SandboxRootURL = strings.TrimSpace(cfg.SandboxRootURL)

	if cfg.TimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid timeout_seconds (must be positive seconds)")
	}
	cfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second

	return &cfg, nil
}

// GunBroker returns the client configuration.
func (c *Config) GunBroker() gunbroker.Config {
	return gunbroker.Config{
		DevKey:      c.DevKey,
		AccessToken: c.AccessToken,
		Timeout:     c.Timeout,
		Sandbox:     c.Sandbox,
	}
}
