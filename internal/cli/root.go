// Package cli implements vendorctl, a terminal client for the vendorly API.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Server    string
	TokenFile string
	Format    string // "json" | "text"
	Timeout   time.Duration
	Verbose   bool
}

var ValidFormats = []string{"text", "json"}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "vendorctl",
		Short: "vendorctl - browse, review and moderate vendors",
		Long: `A terminal client for the vendorly API.

Log in once with "vendorctl login"; the session token is kept in
--token-file and reused by later commands until it expires.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			if opts.Format == "json" || !isTerminal(cmd) {
				pterm.DisableStyling()
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Server, "server", envOr("VENDORLY_SERVER", "http://localhost:8080"), "API server root URL")
	cmd.PersistentFlags().StringVar(&opts.TokenFile, "token-file", defaultTokenFile(), "where the session token is stored")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", 30*time.Second, "per-request timeout")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewLoginCommand(opts))
	cmd.AddCommand(NewSignupCommand(opts))
	cmd.AddCommand(NewLogoutCommand(opts))
	cmd.AddCommand(NewWhoamiCommand(opts))
	cmd.AddCommand(NewVendorsCommand(opts))
	cmd.AddCommand(NewReviewsCommand(opts))
	cmd.AddCommand(NewModerateCommand(opts))

	return cmd
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".vendorctl-token"
	}
	return filepath.Join(home, ".vendorctl", "token")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func isTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
