package cli

import (
	"context"
	"encoding/json"
	"io"
	"repostats/internal/config"
	"repostats/internal/fetcher"

	"github.com/spf13/cobra"
)

var rateLimitCmd = &cobra.Command{
	Use:   "rate-limit",
	Short: "Print the API quota for the configured credentials",
	Long: `Print the GitHub API quota (GET /rate_limit) as JSON.

The call itself does not count against the quota. Authentication works as
for the report command.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		if err := c.ValidateConnection(); err != nil {
			return &usageError{err: err}
		}
		return runRateLimit(cmd.Context(), c, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.AddCommand(rateLimitCmd)
	addAuthFlags(rateLimitCmd)
}

func runRateLimit(ctx context.Context, c *config.Config, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	client, err := newAPIClient(ctx, c, stderr)
	if err != nil {
		return err
	}

	limits, err := fetcher.NewFetcher(client, nil).RateLimit(ctx)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(limits)
}
