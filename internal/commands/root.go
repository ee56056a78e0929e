package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/yukikurage/company-task-api/internal/config"
	"github.com/yukikurage/company-task-api/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "company-task-api",
	Short: "Multi-tenant task management API",
	Long: `Companies own users and users own tasks. Usage:

	company-task-api serve
	company-task-api migrate
	company-task-api create-admin --username root --password ... --email root@example.com --company Acme
`,
	SilenceUsage: true,
}

// Execute runs the command named on the command line.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the environment and installs the process logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logging.New(cfg.LogLevel))
	return cfg, nil
}
