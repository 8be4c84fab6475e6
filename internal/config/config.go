package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

type Config struct {
	// MAINTAINER NOTE: If you add/change/remove config fields, keep these in sync:
	// - CLI flags in internal/cli/report.go
	// - viper keys and env bindings in load.go
	Auth    Auth    `mapstructure:"auth"`
	Target  Target  `mapstructure:"target"`
	Output  Output  `mapstructure:"output"`
	Runtime Runtime `mapstructure:"runtime"`
}

type Auth struct {
	// Login is the GitHub login used for HTTP Basic auth (see --login).
	Login string `mapstructure:"login"`

	// Password is the password or personal access token paired with Login (see --password).
	Password string `mapstructure:"password"`

	// Token is a bearer token used when no Login/Password pair is set (see --token).
	// If empty, GITHUB_TOKEN, GH_TOKEN and `gh auth token` are tried in order.
	Token string `mapstructure:"token"`
}

type Target struct {
	// Repo is the repository to report on as OWNER/NAME or a GitHub URL (see --repo).
	Repo string `mapstructure:"repo"`

	// APIURL is the REST API base URL (see --api-url). Set it for GitHub Enterprise Server.
	APIURL string `mapstructure:"api_url"`
}

type Output struct {
	// Format selects how the report is written to stdout (see --format).
	// Allowed values: json, text.
	Format string `mapstructure:"format"`
}

type Runtime struct {
	// Timeout bounds the whole run (see --timeout). Must be > 0.
	Timeout time.Duration `mapstructure:"timeout"`

	// Verbose logs every API request and cache hit to stderr.
	Verbose bool `mapstructure:"verbose"`
}

func New() *Config {
	return &Config{
		Target: Target{
			APIURL: "https://api.github.com/",
		},
		Output: Output{
			Format: "json",
		},
		Runtime: Runtime{
			Timeout: 5 * time.Minute,
		},
	}
}

// HasBasicAuth reports whether both halves of the Basic credentials are set.
func (c *Config) HasBasicAuth() bool {
	return c.Auth.Login != "" && c.Auth.Password != ""
}

// Validate checks everything the report command needs.
func (c *Config) Validate() error {
	if err := c.ValidateConnection(); err != nil {
		return err
	}

	repo, err := NormalizeRepoSelector(c.Target.Repo)
	if err != nil {
		return fmt.Errorf("invalid --repo value: %w", err)
	}
	if repo == "" {
		return errors.New("--repo must be provided")
	}
	c.Target.Repo = repo

	c.Output.Format = normalizeEnumValue(c.Output.Format)
	if c.Output.Format == "" {
		return errors.New("--format must be one of: json, text")
	}
	if c.Output.Format != "json" && c.Output.Format != "text" {
		return fmt.Errorf("unsupported --format: %s (must be one of: json, text)", c.Output.Format)
	}

	if c.Runtime.Timeout <= 0 {
		return errors.New("--timeout must be > 0")
	}
	return nil
}

// ValidateConnection checks the auth and API settings only. Commands that
// are not repository-scoped use it instead of Validate.
func (c *Config) ValidateConnection() error {
	c.Auth.Login = strings.TrimSpace(c.Auth.Login)
	c.Auth.Token = strings.TrimSpace(c.Auth.Token)
	if (c.Auth.Login == "") != (c.Auth.Password == "") {
		return errors.New("--login and --password must be provided together")
	}

	c.Target.APIURL = strings.TrimSpace(c.Target.APIURL)
	if c.Target.APIURL == "" {
		c.Target.APIURL = "https://api.github.com/"
	}
	u, err := url.Parse(c.Target.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid --api-url value: %q", c.Target.APIURL)
	}
	return nil
}

func normalizeEnumValue(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// NormalizeRepoSelector accepts OWNER/NAME or a GitHub URL like:
//
//	https://github.com/<owner>/<name>
//	https://github.com/<owner>/<name>.git
//	github.com/<owner>/<name>
//
// and returns OWNER/NAME. An empty input yields an empty result.
func NormalizeRepoSelector(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}

	if strings.HasPrefix(raw, "github.com/") || strings.HasPrefix(raw, "www.github.com/") {
		raw = "https://" + raw
	}
	path := raw
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		u, err := url.Parse(raw)
		if err != nil {
			return "", fmt.Errorf("%q", raw)
		}
		host := strings.ToLower(u.Hostname())
		if host == "www.github.com" {
			host = "github.com"
		}
		if host != "github.com" {
			return "", fmt.Errorf("%q", raw)
		}
		path = u.Path
	}

	parts := strings.FieldsFunc(strings.Trim(path, "/"), func(r rune) bool { return r == '/' })
	if len(parts) != 2 {
		return "", fmt.Errorf("%q", raw)
	}
	owner := parts[0]
	name := strings.TrimSuffix(parts[1], ".git")
	if owner == "" || name == "" {
		return "", fmt.Errorf("%q", raw)
	}
	return owner + "/" + name, nil
}
