package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. REPOSTATS_TOKEN.
const EnvPrefix = "REPOSTATS"

// Load builds a Config from defaults, an optional repostats.yaml and
// REPOSTATS_* environment variables, in increasing precedence. Extra
// directories are searched for the config file before the defaults
// (current directory, then $HOME/.config/repostats).
func Load(paths ...string) (*Config, error) {
	def := New()
	v := viper.New()

	v.SetDefault("auth.login", def.Auth.Login)
	v.SetDefault("auth.password", def.Auth.Password)
	v.SetDefault("auth.token", def.Auth.Token)
	v.SetDefault("target.repo", def.Target.Repo)
	v.SetDefault("target.api_url", def.Target.APIURL)
	v.SetDefault("output.format", def.Output.Format)
	v.SetDefault("runtime.timeout", def.Runtime.Timeout)
	v.SetDefault("runtime.verbose", def.Runtime.Verbose)

	v.SetConfigName("repostats")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "repostats"))
	}

	// Environment variables use flat names: REPOSTATS_LOGIN, REPOSTATS_REPO, ...
	for key, env := range map[string]string{
		"auth.login":      "LOGIN",
		"auth.password":   "PASSWORD",
		"auth.token":      "TOKEN",
		"target.repo":     "REPO",
		"target.api_url":  "API_URL",
		"output.format":   "FORMAT",
		"runtime.timeout": "TIMEOUT",
		"runtime.verbose": "VERBOSE",
	} {
		if err := v.BindEnv(key, EnvPrefix+"_"+env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}
