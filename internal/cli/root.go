// Package cli is the terminal front of the client: thin cobra commands
// that trigger store actions and render cached data through the derived
// metrics and formatting helpers.
package cli

import (
	"github.com/finsight/finsight/internal/app"
	"github.com/finsight/finsight/internal/config"
	"github.com/spf13/cobra"
)

type shell struct {
	configPath string
	deps       *app.Dependencies
}

func (s *shell) init(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(s.configPath)
	if err != nil {
		return err
	}
	s.deps = app.BuildDependencies(cfg)
	return nil
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	s := &shell{}

	rootCmd := &cobra.Command{
		Use:   "finsight",
		Short: "Terminal dashboard for your financial data",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:      true,
		PersistentPreRunE: s.init,
	}
	rootCmd.PersistentFlags().StringVar(&s.configPath, "config", "./config/finsight.yaml", "path to the config file")

	rootCmd.AddCommand(newOverviewCommand(s))
	rootCmd.AddCommand(newTransactionsCommand(s))
	rootCmd.AddCommand(newBudgetsCommand(s))
	rootCmd.AddCommand(newGoalsCommand(s))
	rootCmd.AddCommand(newAlertsCommand(s))
	rootCmd.AddCommand(newAdviceCommand(s))
	rootCmd.AddCommand(newBehaviorsCommand(s))
	rootCmd.AddCommand(newSeedCommand(s))
	rootCmd.AddCommand(newDemoServerCommand())

	return rootCmd
}

func Execute() error {
	return NewRootCommand().Execute()
}
