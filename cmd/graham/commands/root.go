package commands

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "graham",
	Short: "Benjamin Graham stock analyzer",
	Long: `Graham - value investing checklists from 'The Intelligent Investor'

Fetches company financials and scores them against the fixed
Defensive, Enterprising and Buffett Quality checklists, with an
optional analyst narration of the verdict.

Examples:
  graham analyze AAPL
  graham analyze AAPL,MSFT,KO --strategy enterprising
  graham scan dow30 --workers 5
  graham api
  graham watch --tickers AAPL,KO --cron "0 0 9 * * 1-5"`,
	SilenceUsage: true,
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}
