package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mushishi06/nhentai-archivist/internal/archive"
	"github.com/mushishi06/nhentai-archivist/internal/config"
	"github.com/mushishi06/nhentai-archivist/internal/gallery"
)

func newConvertCmd(opts *rootOptions) *cobra.Command {
	var datasetPath string
	var outputDir string
	var reportPath string
	var concurrency int
	var sampleSize int
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Write ComicInfo.xml for every gallery in a dataset",
		Long: `Reads scraped gallery metadata (JSON, JSONL or Parquet) and writes
<output>/<gallery id>/ComicInfo.xml for each gallery.

A gallery that cannot be mapped is reported and skipped; the rest of the batch
continues. A YAML report of the run is written to --report.`,
		Example: `  # Convert a JSONL dump into a Komga library folder
  archivist convert --dataset galleries.jsonl --output /srv/komga/nhentai

  # Check the first 10 galleries of a Parquet dataset without writing anything
  archivist convert --dataset galleries.parquet --sample 10 --dry-run --verbose`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd, map[string]func(*config.Config){
				"dataset":     func(c *config.Config) { c.Dataset = datasetPath },
				"output":      func(c *config.Config) { c.Output = outputDir },
				"report":      func(c *config.Config) { c.Report = reportPath },
				"concurrency": func(c *config.Config) { c.Concurrency = concurrency },
			})
			if err != nil {
				return err
			}

			if _, err := os.Stat(cfg.Dataset); os.IsNotExist(err) {
				return fmt.Errorf("dataset file not found: %s", cfg.Dataset)
			}

			return executeConvert(cmd, cfg, sampleSize, dryRun)
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", config.DefaultDataset, "Path to gallery dataset (.json, .jsonl or .parquet)")
	cmd.Flags().StringVar(&outputDir, "output", config.DefaultOutput, "Library directory receiving <id>/ComicInfo.xml")
	cmd.Flags().StringVar(&reportPath, "report", config.DefaultReport, "Path to YAML run report (empty to disable)")
	cmd.Flags().IntVar(&concurrency, "concurrency", config.DefaultConcurrency, "Number of galleries converted in parallel")
	cmd.Flags().IntVar(&sampleSize, "sample", -1, "Number of galleries to convert (-1 for all)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Map galleries without writing any file")

	return cmd
}

func executeConvert(cmd *cobra.Command, cfg *config.Config, sampleSize int, dryRun bool) error {
	slog.Info("Loading dataset", "dataset", cfg.Dataset, "sample_size", sampleSize)

	galleries, err := gallery.NewLoader(cfg.Dataset).LoadSample(sampleSize)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	slog.Info("Dataset loaded", "galleries", len(galleries))

	converter := archive.NewConverter(cfg.Output, cfg.Concurrency)
	converter.DryRun = dryRun

	report := converter.Run(cmd.Context(), galleries)
	report.PrintSummary(cmd.OutOrStdout())

	if cfg.Report != "" && !dryRun {
		if err := report.SaveToYAML(cfg.Report); err != nil {
			return err
		}
		slog.Info("Report saved", "path", cfg.Report)
	}

	if report.Failed > 0 {
		return fmt.Errorf("%d of %d galleries failed", report.Failed, report.Total)
	}
	return nil
}
