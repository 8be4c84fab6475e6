package cli

import (
	"errors"
	"fmt"
	"os"
	"repostats/internal/config"
	"repostats/internal/flags"

	"github.com/spf13/cobra"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

// cfg holds flag values. Flags that were not set fall back to the layered
// config from config.Load.
var cfg = config.New()

var rootCmd = &cobra.Command{
	Use:   "repostats",
	Short: "Collect statistics about a GitHub repository as a JSON report",
	Long: `repostats reads a GitHub repository through the REST API and prints a
report of its metadata and activity counts (issues, pull requests, commits,
contributors) to stdout.

Counts are computed from pagination headers, so each count costs at most two
requests regardless of repository size.

Examples:
	# Report on a public repository
	repostats report --repo octocat/Hello-World

	# Human-readable output
	repostats report --repo octocat/Hello-World --format text

	# Show the remaining API quota
	repostats rate-limit

	# Print build info
	repostats version`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&cfg.Runtime.Verbose, flags.FlagVerbose, "v", false, "Enable verbose logging (prints every GitHub API call, cache hit and rate limit to stderr)")
}

// usageError marks invalid input. It exits with code 2 instead of 1.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ue *usageError
	if errors.As(err, &ue) {
		return 2
	}
	return 1
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}
