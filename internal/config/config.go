package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is read once at startup from, in increasing precedence:
// defaults, the config file, ITEMS_* environment variables, and flags.
type Config struct {
	APIURL   string `mapstructure:"api_url"`
	Token    string `mapstructure:"api_token"`
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`
	Theme    string `mapstructure:"theme"`

	Serve ServeConfig `mapstructure:"serve"`
}

// ServeConfig tunes `items serve`.
type ServeConfig struct {
	Addr           string `mapstructure:"addr"`
	RateLimitRPS   int    `mapstructure:"rate_limit_rps"`
	RateLimitBurst int    `mapstructure:"rate_limit_burst"`
}

const envPrefix = "ITEMS"

// flagKeys maps persistent flag names to config keys.
var flagKeys = map[string]string{
	"api-url":   "api_url",
	"token":     "api_token",
	"log-level": "log_level",
	"log-file":  "log_file",
	"theme":     "theme",
	"addr":      "serve.addr",
}

var envKeys = []string{
	"api_url", "api_token", "log_level", "log_file", "theme",
	"serve.addr", "serve.rate_limit_rps", "serve.rate_limit_burst",
}

// Dir is where the default config file and the TUI log live.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".items"), nil
}

// Load reads configuration. configFile may be empty, in which case
// ~/.items/config.{yaml,toml,json} is used when present. fs may be nil.
func Load(configFile string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("log_level", "info")
	v.SetDefault("theme", "classic")
	v.SetDefault("serve.addr", "127.0.0.1:8787")
	v.SetDefault("serve.rate_limit_rps", 100)
	v.SetDefault("serve.rate_limit_burst", 10)

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType(strings.TrimLeft(filepath.Ext(configFile), "."))
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("v.ReadInConfig: %w", err)
		}
	} else if dir, err := Dir(); err == nil {
		v.SetConfigName("config")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("v.ReadInConfig: %w", err)
			}
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Unmarshal only sees keys viper already knows about.
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("v.Unmarshal: %w", err)
	}
	cfg.APIURL = strings.TrimSpace(cfg.APIURL)
	cfg.Token = stripBearer(strings.TrimSpace(cfg.Token))
	if cfg.Token == "" {
		tok, err := fileToken()
		if err != nil {
			return nil, err
		}
		cfg.Token = tok
	}
	return cfg, nil
}

// RequireAPI reports which of the settings needed to reach the items API
// are missing.
func (c *Config) RequireAPI() error {
	var missing []string
	if c.APIURL == "" {
		missing = append(missing, envPrefix+"_API_URL")
	}
	if c.Token == "" {
		missing = append(missing, envPrefix+"_API_TOKEN")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required settings: %v", missing)
	}
	return nil
}

func stripBearer(s string) string {
	if strings.HasPrefix(strings.ToLower(s), "bearer ") {
		return strings.TrimSpace(s[7:])
	}
	return s
}
