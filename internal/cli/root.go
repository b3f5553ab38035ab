// Package cli implements the rickdex command-line client of the JSON API.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/me/rickdex/internal/logging"
)

// EnvServer overrides the default server URL.
const EnvServer = "RICKDEX_SERVER"

var (
	flagServer    string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	logger *slog.Logger
	client *Client
)

// defaultServer returns the default server URL, checking RICKDEX_SERVER env var first.
func defaultServer() string {
	if s := os.Getenv(EnvServer); s != "" {
		return s
	}
	return "http://localhost:8080"
}

// NewRootCmd creates the root cobra command for the rickdex CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rickdex",
		Short: "rickdex: browse the Rick and Morty character catalog",
		Long:  "rickdex lists characters, shows character details and shares list pages through a rickdex server.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagDebug {
				flagLogLevel = "debug"
			}
			logger = logging.NewLoggerWithWriter(logging.ParseLevel(flagLogLevel), flagLogFormat, cmd.ErrOrStderr())
			client = NewClient(flagServer, logger)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagServer, "server", defaultServer(), "rickdex server URL (or "+EnvServer+" env)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newListCmd(),
		newShowCmd(),
		newShareCmd(),
	)

	return root
}
