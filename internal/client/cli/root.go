// Package cli is the terminal front end of the community client.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pr-poehali-dev/news-chat-app/internal/client/config"
	"github.com/pr-poehali-dev/news-chat-app/internal/client/notify"
	"github.com/pr-poehali-dev/news-chat-app/internal/client/shell"
	"github.com/pr-poehali-dev/news-chat-app/internal/infrastructure/logger"
)

// RootOptions holds global flags for all commands
type RootOptions struct {
	ConfigPath   string
	ServerURL    string
	IdentityPath string
	Verbose      bool
	Format       string
}

// ValidFormats defines the allowed output formats
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "drevlegrad",
		Short: "Древлеград community client",
		Long:  "Terminal client for the Древлеград chat, news feed and profiles.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default ./drevlegrad.yaml)")
	cmd.PersistentFlags().StringVar(&opts.ServerURL, "server", "", "service base URL")
	cmd.PersistentFlags().StringVar(&opts.IdentityPath, "identity", "", "local user id file")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewChatCommand(opts))
	cmd.AddCommand(NewNewsCommand(opts))
	cmd.AddCommand(NewProfileCommand(opts))
	cmd.AddCommand(NewWhoamiCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// openShell loads configuration, applies flag overrides and builds the shell.
// Logs and notifications go to stderr so stdout stays machine readable.
func openShell(opts *RootOptions, cmd *cobra.Command) (*shell.Shell, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.ServerURL != "" {
		cfg.Server.URL = opts.ServerURL
	}
	if opts.IdentityPath != "" {
		cfg.Identity.Path = opts.IdentityPath
	}

	level := cfg.Log.Level
	if opts.Verbose {
		level = "debug"
	}
	log := logger.NewWithWriter(level, cmd.ErrOrStderr())

	return shell.New(cfg, notify.NewWriter(cmd.ErrOrStderr()), log)
}
