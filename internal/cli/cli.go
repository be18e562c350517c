// Package cli implements the dfscrape command line.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fortuna/dfscrape/internal/config"
	"github.com/fortuna/dfscrape/internal/logger"
)

const serviceName = "dfscrape"

var (
	flagLogLevel  string
	flagLogFormat string

	cfg *config.Config
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   serviceName,
		Short: "Scrape NBA daily fantasy inputs into Postgres",
		Long: `dfscrape collects projected lineups and salaries, injury reports, player news
and betting lines for today's NBA slate, canonicalizes player and team names,
and stores the results in Postgres and on Redis streams.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.New()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if flagLogLevel != "" {
				c.Log.Level = flagLogLevel
			}
			if flagLogFormat != "" {
				c.Log.Format = flagLogFormat
			}
			logger.Init(logger.Options{
				Level:   c.Log.Level,
				Format:  c.Log.Format,
				Service: serviceName,
				Writer:  cmd.ErrOrStderr(),
			})
			cfg = c
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level override: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format override: console or json")

	cmd.AddCommand(
		newServeCmd(),
		newScrapeCmd(),
		newMigrateCmd(),
		newTeamsCmd(),
		newAliasCmd(),
	)
	return cmd
}
