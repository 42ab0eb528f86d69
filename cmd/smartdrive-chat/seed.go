package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"smartdrive/internal/infra"
	"smartdrive/internal/modules/catalog"
	"smartdrive/internal/observability"
)

// newSeedCmd loads a listings file into Postgres for the API's repository path.
func newSeedCmd() *cobra.Command {
	var dsn, carsFile string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the listings of a JSON file into Postgres",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			listings, err := catalog.LoadFile(carsFile, observability.Logger())
			if err != nil {
				return err
			}
			pool, err := infra.NewDB(ctx, dsn)
			if err != nil {
				return err
			}
			defer pool.Close()

			store := catalog.NewStore(pool)
			for _, l := range listings.All() {
				if _, err := store.Insert(ctx, l); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "inserted %d listings\n", listings.Len())
			return nil
		},
	}
	cmd.Flags().StringVar(&dsn, "dsn", "", "Postgres DSN")
	cmd.Flags().StringVar(&carsFile, "cars", "data/cars.json", "listings JSON file")
	_ = cmd.MarkFlagRequired("dsn")
	return cmd
}
