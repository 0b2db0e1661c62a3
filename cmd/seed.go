package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"catalog/core/config"
	"catalog/core/logger"
	"catalog/feature/items"
	"catalog/feature/items/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// seedCmd appends items from a JSON file to the configured store.
var seedCmd = &cobra.Command{
	Use:   "seed <file.json>",
	Short: "Load items into the store",
	Long:  `Validates every object of a JSON array file and appends it to the configured item store.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logg.Sync()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read seed file: %w", err)
		}

		var payloads []map[string]any
		if err := json.Unmarshal(data, &payloads); err != nil {
			return fmt.Errorf("seed file must be a JSON array of objects: %w", err)
		}

		itemStore, err := store.New(cfg.Store, cfg.Database, cfg.Storage)
		if err != nil {
			return err
		}
		svc := items.NewService(itemStore, logg)

		created := 0
		for i, payload := range payloads {
			item, err := svc.Create(cmd.Context(), payload)
			if err != nil {
				logg.Warn("Skipping seed entry", zap.Int("index", i), zap.Error(err))
				continue
			}
			logg.Debug("Seeded item", zap.Int64("id", item.ID), zap.String("name", item.Name))
			created++
		}

		logg.Info("Seed finished", zap.Int("created", created), zap.Int("skipped", len(payloads)-created))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(seedCmd)
}
