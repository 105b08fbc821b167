// Package cmd wires the process entrypoint, grounded on
// gallery-so-go-gallery's indexer/cmd/root.go: a cobra root command with no
// flags, which loads configuration, initializes logging, connects to
// Postgres, and runs the single named indexer's cycle loop to completion.
package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/stryukovsky/go-evm-indexer/env"
	"github.com/stryukovsky/go-evm-indexer/indexer"
	"github.com/stryukovsky/go-evm-indexer/persist/postgres"
	"github.com/stryukovsky/go-evm-indexer/service/logger"
)

func init() {
	env.RegisterRequired("INDEXER_NAME")
	env.RegisterRequired("POSTGRES_DB")
	env.RegisterRequired("POSTGRES_USER")
	env.RegisterRequired("POSTGRES_PASSWORD")
	env.RegisterRequired("POSTGRES_HOST")
}

var rootCmd = &cobra.Command{
	Use:   "evm-indexer",
	Short: "Index EVM token transfers into a relational database",
	Long: `An EVM-compatible token transfer indexer: it pulls blocks from a
JSON-RPC endpoint, decodes erc20/erc721/erc1155 transfer events for a
watched token set, and persists normalized transfer rows while advancing a
per-indexer cursor.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Init(false)

		if err := env.Validate(); err != nil {
			logger.For(nil).Warn(err.Error())
			return err
		}

		db, err := postgres.Connect(postgres.ConnectionParams{
			User:     env.GetString("POSTGRES_USER", ""),
			Password: env.GetString("POSTGRES_PASSWORD", ""),
			DBName:   env.GetString("POSTGRES_DB", ""),
			Host:     env.GetString("POSTGRES_HOST", ""),
			Port:     env.GetInt("POSTGRES_PORT", 5432),
		})
		if err != nil {
			logger.For(nil).Warn(err.Error())
			return err
		}
		defer db.Close()

		deps := indexer.Deps{
			Indexers:  postgres.NewIndexerRepository(db),
			Networks:  postgres.NewNetworkRepository(db),
			Tokens:    postgres.NewTokenRepository(db),
			Transfers: postgres.NewTransferRepository(db),
			Dial:      indexer.DialRPC,
			Sleep:     time.Sleep,
		}

		indexerName := env.GetString("INDEXER_NAME", "")
		if err := indexer.Run(context.Background(), deps, indexerName); err != nil {
			logger.For(nil).Warn(err.Error())
			return err
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
