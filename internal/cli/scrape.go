package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fortuna/dfscrape/internal/store"
)

var (
	flagFormat string
	flagDryRun bool
)

func newScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "scrape <source>",
		Short:     "Scrape one source now",
		Long:      "Scrape one source (" + strings.Join(store.Sources, ", ") + ") and print the run report.",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: store.Sources,
		RunE:      runScrape,
	}
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print records instead of storing and publishing them")
	return cmd
}

func runScrape(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}
	ctx := cmd.Context()
	name := args[0]

	a, err := newApp(ctx, cfg, appOptions{database: !flagDryRun})
	if err != nil {
		return err
	}
	defer a.Close()

	if flagDryRun {
		src, err := a.source(name)
		if err != nil {
			return err
		}
		runner := a.runner(nil)
		sess, err := runner.NewSession(ctx)
		if err != nil {
			return err
		}
		res, err := src.Scrape(ctx, sess)
		if err != nil {
			return fmt.Errorf("scraping %s: %w", name, err)
		}
		return WriteDryRun(cmd.OutOrStdout(), name, res, sess, format)
	}

	report, runErr := a.runner(nil).Run(ctx, name)
	if report != nil {
		if err := WriteReport(cmd.OutOrStdout(), report, format); err != nil {
			return err
		}
	}
	return runErr
}
