package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fortuna/dfscrape/internal/normalize"
	"github.com/fortuna/dfscrape/internal/store"
	"github.com/fortuna/dfscrape/internal/store/repository"
)

func newAliasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "alias <spelling> <canonical>",
		Short: "Map a source's spelling of a player to the canonical name",
		Long: `Store a player alias. It applies to every run that starts afterwards.
The alias is rejected if it would conflict with the built-in table.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			spelling, canonical := args[0], args[1]

			db, err := store.NewDatabase(cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("connecting to database: %w", err)
			}
			defer db.Close()

			repo := repository.NewAliasRepository(db)
			extra, err := repo.Map(cmd.Context())
			if err != nil {
				return err
			}
			extra[spelling] = canonical
			if _, err := normalize.DefaultNameTable(extra); err != nil {
				return fmt.Errorf("alias rejected: %w", err)
			}

			if err := repo.Upsert(cmd.Context(), &store.PlayerAlias{Alias: spelling, Canonical: canonical}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", spelling, canonical)
			return nil
		},
	}
}
