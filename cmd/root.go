package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mushishi06/nhentai-archivist/internal/config"
)

type rootOptions struct {
	configPath string
	verbose    bool
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "archivist",
		Short: "Generate ComicInfo.xml metadata for downloaded nhentai galleries",
		Long: `Archivist turns scraped nhentai gallery metadata into ComicInfo.xml documents
that Komga and other comic library servers can import.

Tags are projected onto the fixed ComicInfo fields (Writer, Publisher, Genre,
Characters, Tags) and the gallery language is resolved to an ISO code.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			logLevel := slog.LevelInfo
			if opts.verbose {
				logLevel = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
			slog.SetDefault(logger)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to YAML config file (default "+config.DefaultConfigFile+")")
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Verbose logging")

	cmd.AddCommand(newConvertCmd(opts))
	cmd.AddCommand(newInspectCmd(opts))
	cmd.AddCommand(newServeCmd(opts))

	return cmd
}

// loadConfig reads the config file and lets explicitly set flags override it.
func (o *rootOptions) loadConfig(cmd *cobra.Command, overrides map[string]func(*config.Config)) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	for name, apply := range overrides {
		if cmd.Flags().Changed(name) {
			apply(cfg)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
