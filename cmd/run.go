package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/builder"
	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/config"
	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/core"
	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/generator"
	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/logger"
	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/models"
	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/reporter"
)

var (
	flagOutput  string
	flagSeed    int64
	flagCap     int64
	flagWorkers int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Plan and create the demo file share",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		applyFlagOverrides(cfg)

		app, err := core.NewWithConfig(cfg)
		if err != nil {
			return err
		}
		defer app.Close()

		items := planItems(cfg)
		summary, err := executeRun(app, items)
		if err != nil {
			return err
		}
		printSummary(summary, len(items))
		return nil
	},
}

func init() {
	runCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output root (overrides config)")
	runCmd.Flags().Int64Var(&flagSeed, "seed", 0, "generator seed (overrides config)")
	runCmd.Flags().Int64Var(&flagCap, "cap", 0, "stop submitting work after this many created items")
	runCmd.Flags().IntVarP(&flagWorkers, "workers", "w", 0, "max concurrent workers (overrides config)")
	rootCmd.AddCommand(runCmd)
}

func applyFlagOverrides(cfg *config.Config) {
	if flagOutput != "" {
		cfg.Output.Path = flagOutput
	}
	if flagSeed != 0 {
		cfg.Generator.Seed = flagSeed
	}
	if flagCap > 0 {
		capValue := flagCap
		cfg.Cap = &capValue
	}
	if flagWorkers > 0 {
		cfg.MaxWorkers = flagWorkers
	}
}

func planItems(cfg *config.Config) []models.WorkItem {
	return generator.New(generator.Options{
		Root:           cfg.Output.Path,
		Departments:    cfg.Generator.Departments,
		FilesPerFolder: cfg.Generator.FilesPerFolder,
		FolderDepth:    cfg.Generator.FolderDepth,
		ClutterPercent: cfg.Generator.ClutterPercent,
		Seed:           cfg.Generator.Seed,
	}).Plan()
}

// executeRun drives the engine for a planned item list with the reporting
// loop attached. Shared by `run` and `serve`.
func executeRun(app *core.App, items []models.WorkItem) (models.Summary, error) {
	b := builder.New(builder.NewAferoFS(afero.NewOsFs()), builder.DefaultStubs{})
	runner := core.NewRunner(app, b, nil)

	go app.Hub.Run()
	rep := reporter.New(app.RunID, int64(len(items)), app.Progress, app.Hub, app.Cache)
	rep.Start(app.Config.ReportInterval)
	defer rep.Stop()

	return runner.Run(items)
}

func printSummary(summary models.Summary, planned int) {
	logger.Get().Info().
		Int("planned", planned).
		Int64("created", summary.TotalCreated).
		Int64("errors", summary.TotalErrors).
		Dur("duration", summary.Duration).
		Msg("summary")
	fmt.Printf("created %d of %d planned items (%d errors) in %s\n",
		summary.TotalCreated, planned, summary.TotalErrors,
		summary.Duration.Round(time.Millisecond))
}
