package flags

// Package flags defines canonical CLI flag names shared by the cobra
// commands and the config layer.
// IMPORTANT: These are flag *names* without leading dashes.
// Example usage:
//
//	cmd.Flags().StringVar(&cfg.Target.Repo, flags.FlagRepo, "", "...")
//	arg := "--" + flags.FlagRepo
const (
	// Auth
	FlagLogin    = "login"
	FlagPassword = "password"
	FlagToken    = "token"

	// Target
	FlagRepo   = "repo"
	FlagAPIURL = "api-url"

	// Output
	FlagFormat = "format"

	// Runtime
	FlagTimeout = "timeout"
	FlagVerbose = "verbose"
)
