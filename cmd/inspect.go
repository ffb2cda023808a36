package cmd

import (
	"fmt"
	"strconv"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/mushishi06/nhentai-archivist/internal/comicinfo"
	"github.com/mushishi06/nhentai-archivist/internal/config"
	"github.com/mushishi06/nhentai-archivist/internal/gallery"
)

func newInspectCmd(opts *rootOptions) *cobra.Command {
	var datasetPath string
	var dump bool

	cmd := &cobra.Command{
		Use:   "inspect <gallery id>",
		Short: "Print the ComicInfo.xml generated for one gallery",
		Example: `  archivist inspect 177013 --dataset galleries.jsonl

  # Show the source gallery and the mapped record as Go values
  archivist inspect 177013 --dump`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid gallery id %q: %w", args[0], err)
			}

			cfg, err := opts.loadConfig(cmd, map[string]func(*config.Config){
				"dataset": func(c *config.Config) { c.Dataset = datasetPath },
			})
			if err != nil {
				return err
			}

			g, err := gallery.NewLoader(cfg.Dataset).Find(id)
			if err != nil {
				return err
			}

			ci, err := comicinfo.SafeFromGallery(g)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if dump {
				sc := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
				sc.Fdump(out, g, ci)
				return nil
			}

			data, err := comicinfo.Marshal(ci)
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", config.DefaultDataset, "Path to gallery dataset (.json, .jsonl or .parquet)")
	cmd.Flags().BoolVar(&dump, "dump", false, "Dump the gallery and ComicInfo values instead of XML")

	return cmd
}
