package commands

import (
	"github.com/spf13/cobra"

	"github.com/cofrinho-app/cofrinho/internal/buildinfo"
	"github.com/cofrinho-app/cofrinho/internal/logger"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var logLevel, logFormat string

	rootCmd := &cobra.Command{
		Use:     "cofrinho",
		Short:   "Personal finance tracking from free text and bank statements",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			log, err := logger.New(cmd.ErrOrStderr(), logLevel, logFormat)
			if err != nil {
				return err
			}
			cmd.SetContext(logger.WithContext(cmd.Context(), log))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log verbosity (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", logger.FormatConsole, "log format (console, json)")

	rootCmd.AddCommand(
		newInitCommand(),
		newImportCommand(),
		newAddCommand(),
		newListCommand(),
		newCleanCommand(),
		newCategoriesCommand(),
		newInsightCommand(),
	)

	return rootCmd
}
