package cli

import (
	"context"
	"fmt"
	"io"
	"repostats/internal/config"
	"repostats/internal/flags"
	gh "repostats/internal/github"

	"github.com/spf13/cobra"
)

// flagOverrides copies a flag value from the flag-bound config into the
// loaded one. Only flags the user actually set are applied.
var flagOverrides = map[string]func(dst, src *config.Config){
	flags.FlagLogin:    func(dst, src *config.Config) { dst.Auth.Login = src.Auth.Login },
	flags.FlagPassword: func(dst, src *config.Config) { dst.Auth.Password = src.Auth.Password },
	flags.FlagToken:    func(dst, src *config.Config) { dst.Auth.Token = src.Auth.Token },
	flags.FlagRepo:     func(dst, src *config.Config) { dst.Target.Repo = src.Target.Repo },
	flags.FlagAPIURL:   func(dst, src *config.Config) { dst.Target.APIURL = src.Target.APIURL },
	flags.FlagFormat:   func(dst, src *config.Config) { dst.Output.Format = src.Output.Format },
	flags.FlagTimeout:  func(dst, src *config.Config) { dst.Runtime.Timeout = src.Runtime.Timeout },
	flags.FlagVerbose:  func(dst, src *config.Config) { dst.Runtime.Verbose = src.Runtime.Verbose },
}

func applyFlagOverrides(cmd *cobra.Command, dst, src *config.Config) {
	for name, apply := range flagOverrides {
		if cmd.Flags().Lookup(name) != nil && cmd.Flags().Changed(name) {
			apply(dst, src)
		}
	}
}

// resolveConfig layers flags over repostats.yaml and REPOSTATS_* values.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	loaded, err := config.Load()
	if err != nil {
		return nil, &usageError{err: err}
	}
	applyFlagOverrides(cmd, loaded, cfg)
	return loaded, nil
}

// newAPIClient builds the GitHub client for c. Basic credentials win;
// otherwise a token is resolved from --token, the environment or gh.
func newAPIClient(ctx context.Context, c *config.Config, stderr io.Writer) (*gh.Client, error) {
	opts := []gh.Option{
		gh.WithVerbose(c.Runtime.Verbose, stderr),
		gh.WithBaseURL(c.Target.APIURL),
	}

	if c.HasBasicAuth() {
		opts = append(opts, gh.WithBasicAuth(gh.Credentials{Login: c.Auth.Login, Password: c.Auth.Password}))
	} else {
		token, source, err := gh.ResolveAuthToken(ctx, c.Auth.Token, c.Target.APIURL)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve GitHub auth token: %w", err)
		}
		if token != "" {
			opts = append(opts, gh.WithToken(token))
		}
		if c.Runtime.Verbose {
			if token == "" {
				fmt.Fprintln(stderr, "[verbose] auth: none (unauthenticated requests)")
			} else {
				fmt.Fprintf(stderr, "[verbose] auth: token from %s\n", source)
			}
		}
	}

	client, err := gh.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}
	return client, nil
}

func addAuthFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&cfg.Auth.Login, flags.FlagLogin, "l", "", "GitHub login for HTTP Basic auth (env: REPOSTATS_LOGIN)")
	cmd.Flags().StringVarP(&cfg.Auth.Password, flags.FlagPassword, "p", "", "Password or personal access token for --login (env: REPOSTATS_PASSWORD)")
	cmd.Flags().StringVar(&cfg.Auth.Token, flags.FlagToken, "", "Bearer token used when --login is not set (env: REPOSTATS_TOKEN, GITHUB_TOKEN, GH_TOKEN, or gh auth token)")
	cmd.Flags().StringVar(&cfg.Target.APIURL, flags.FlagAPIURL, cfg.Target.APIURL, "GitHub REST API base URL (env: REPOSTATS_API_URL)")
}
