package cli

import (
	"context"
	"fmt"
	"io"
	"repostats/internal/config"
	"repostats/internal/fetcher"
	"repostats/internal/flags"
	gh "repostats/internal/github"
	"repostats/internal/output"
	"repostats/internal/report"
	"strings"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the statistics report for one repository",
	Long: `Print the statistics report for one repository.

The report is a single JSON object with keys in lexicographic order. It
combines repository metadata (stargazers_count is reported as stars_count),
counts of issues, pull requests, commits and contributors, the creation time
of the oldest open issue and pull request, and the placeholder fields
changelog, good, license and readme.

Authentication:
	--login/--password use HTTP Basic auth. Without them a token is used from
	--token, GITHUB_TOKEN, GH_TOKEN or 'gh auth token'; with no token the run
	is anonymous. When stdin is a terminal, a missing repository and missing
	credentials are prompted for.

Configuration:
	Values are read from repostats.yaml (current directory or
	$HOME/.config/repostats) and REPOSTATS_* environment variables. Flags win.

Exit codes:
	0 = report written
	1 = API or transport failure
	2 = invalid input

Examples:
	repostats report --repo octocat/Hello-World
	repostats report --repo https://github.com/octocat/Hello-World.git -l octocat -p "$PAT"
	repostats report --repo octocat/Hello-World --format text --verbose
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := resolveConfig(cmd)
		if err != nil {
			return err
		}

		var p *prompter
		if stdinIsTerminal() {
			p = newTerminalPrompter()
			if err := p.Repo(c); err != nil {
				return err
			}
		}
		if err := c.Validate(); err != nil {
			return &usageError{err: err}
		}
		if p != nil && !c.HasBasicAuth() && !tokenAvailable(cmd.Context(), c) {
			if err := p.Credentials(c); err != nil {
				return err
			}
			if err := c.ValidateConnection(); err != nil {
				return &usageError{err: err}
			}
		}

		return runReport(cmd.Context(), c, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	// MAINTAINER NOTE: every flag here needs an entry in flagOverrides
	// (settings.go), otherwise it is silently ignored.
	addAuthFlags(reportCmd)
	reportCmd.Flags().StringVar(&cfg.Target.Repo, flags.FlagRepo, "", "Repository as OWNER/NAME or GitHub URL (env: REPOSTATS_REPO)")
	reportCmd.Flags().StringVar(&cfg.Output.Format, flags.FlagFormat, cfg.Output.Format, "Output format: json|text")
	reportCmd.Flags().DurationVar(&cfg.Runtime.Timeout, flags.FlagTimeout, cfg.Runtime.Timeout, "Timeout for the whole run")
}

func tokenAvailable(ctx context.Context, c *config.Config) bool {
	token, _, err := gh.ResolveAuthToken(ctx, c.Auth.Token, c.Target.APIURL)
	return err == nil && strings.TrimSpace(token) != ""
}

// runReport builds the report for a validated config and writes it to stdout.
func runReport(ctx context.Context, c *config.Config, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, c.Runtime.Timeout)
	defer cancel()

	sink, err := output.NewSink(stdout, c.Output.Format)
	if err != nil {
		return &usageError{err: err}
	}

	client, err := newAPIClient(ctx, c, stderr)
	if err != nil {
		return err
	}
	f := fetcher.NewFetcher(client, nil)
	f.SetRepository(c.Target.Repo)

	r, err := report.Build(ctx, f)
	if err != nil {
		return fmt.Errorf("build report for %s: %w", c.Target.Repo, err)
	}
	client.Logf("%d API requests", f.Budget().Requests())

	return sink.WriteReport(r)
}
