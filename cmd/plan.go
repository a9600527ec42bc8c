package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/config"
	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/engine"
	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/generator"
	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/models"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan the work-item list and print its shape without creating anything",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		applyFlagOverrides(cfg)

		items := planItems(cfg)
		batches := engine.SplitBatches(items, cfg.BatchSize)

		perTag := make(map[string]int)
		var clutter int
		for _, it := range items {
			perTag[it.Tag]++
			if it.Kind == models.KindClutter {
				clutter++
			}
		}

		fmt.Printf("planned %d items (%d clutter) in %d batches of up to %d\n",
			len(items), clutter, len(batches), cfg.BatchSize)
		fmt.Printf("total allocation: %.1f MB sparse\n",
			float64(generator.TotalSizeKB(items))/1024)
		for _, dept := range cfg.Generator.Departments {
			fmt.Printf("  %-14s %6d items\n", dept, perTag[dept])
		}
		return nil
	},
}

func init() {
	planCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output root (overrides config)")
	planCmd.Flags().Int64Var(&flagSeed, "seed", 0, "generator seed (overrides config)")
	rootCmd.AddCommand(planCmd)
}
