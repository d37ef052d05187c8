package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/af-corp/model-catalog/internal/scrape"
)

func newScrapeCommand(root *rootOptions) *cobra.Command {
	var (
		catalogURL string
		batchURL   string
		dataDir    string
	)

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Fetch the Bedrock model pages and write the attribute CSVs",
		Long: `Scrape fetches the supported-models and batch-inference pages and writes
the deployment, modality and latency attribute sources into the data
directory. When the batch page cannot be fetched the latency source is
left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.serviceConfig()
			if err != nil {
				return err
			}
			if catalogURL != "" {
				cfg.Scrape.CatalogURL = catalogURL
			}
			if batchURL != "" {
				cfg.Scrape.BatchURL = batchURL
			}
			if dataDir != "" {
				cfg.Catalog.DataDir = dataDir
			}

			res, err := scrape.Run(cmd.Context(), scrape.NewFetcher(cfg.Scrape), cfg.Scrape, cfg.Catalog)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Scraped %d catalog rows, %d batch rows\n", res.CatalogRows, res.BatchRows)
			for _, f := range res.Files {
				fmt.Fprintf(out, "  wrote %s\n", f)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogURL, "catalog-url", "", "Override the supported-models page URL")
	cmd.Flags().StringVar(&batchURL, "batch-url", "", "Override the batch-inference page URL")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Override the directory the CSVs are written to")

	return cmd
}
