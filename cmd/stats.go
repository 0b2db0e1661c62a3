package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"catalog/core/config"
	"catalog/core/logger"
	"catalog/feature/items/store"
	"catalog/feature/stats"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var statsJSON bool

// statsCmd computes the statistics once against the configured store.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print catalog statistics",
	Long:  `Reads the configured item store once, aggregates it and prints the result.`,
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

		itemStore, err := store.New(cfg.Store, cfg.Database, cfg.Storage)
		if err != nil {
			return err
		}

		feature := stats.NewFeature(itemStore, logg, cfg.Stats, nil)
		res, err := feature.Coordinator().Serve(cmd.Context())
		if err != nil {
			return err
		}
		snap := res.Snapshot

		if statsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(snap)
		}

		logg.Debug("Stats computed", zap.Float64("duration_ms", snap.CalculationDurationMs))
		fmt.Printf("Total items:    %d\n", snap.Total)
		fmt.Printf("Priced items:   %d\n", snap.ValidItemCount)
		fmt.Printf("Total value:    %.2f\n", snap.TotalValue)
		fmt.Printf("Average price:  %.2f\n", snap.AveragePrice)
		fmt.Printf("Price range:    %.2f - %.2f\n", snap.PriceRange.Min, snap.PriceRange.Max)

		names := make([]string, 0, len(snap.Categories))
		for name := range snap.Categories {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Println("Categories:")
		for _, name := range names {
			fmt.Printf("  %-20s %d\n", name, snap.Categories[name])
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print the snapshot as JSON")
	RootCmd.AddCommand(statsCmd)
}
