package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/artpar/marquee/internal/crawl"
	"github.com/spf13/cobra"
)

// CrawlOptions holds options for the crawl command.
type CrawlOptions struct {
	Pages       int
	Seeds       int
	Concurrency int
	Format      string
	Output      string
}

// NewCrawlCommand creates the crawl command.
func NewCrawlCommand(g *GlobalOptions) *cobra.Command {
	opts := &CrawlOptions{}

	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Collect the movie ids to pre-render",
		Long:  "Crawl now-playing listings and their recommendations and print the deduplicated movie ids, always including the curated allowlist.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCrawl(cmd, g, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Pages, "pages", 0, "Listing pages to fetch (default from config)")
	cmd.Flags().IntVar(&opts.Seeds, "seeds", 0, "Ids to expand with recommendations (default from config)")
	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", 0, "Concurrent requests (default from config)")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "text", "Output format (text, json, yaml)")
	cmd.Flags().StringVarP(&opts.Output, "out", "o", "", "Write to file instead of stdout")

	return cmd
}

func runCrawl(cmd *cobra.Command, g *GlobalOptions, opts *CrawlOptions) error {
	switch opts.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unsupported output format: %s", opts.Format)
	}

	application, err := openApp(cmd.Context(), g)
	if err != nil {
		return err
	}
	defer application.Close()

	var overrides []crawl.Option
	if cmd.Flags().Changed("pages") {
		overrides = append(overrides, crawl.WithPages(opts.Pages))
	}
	if cmd.Flags().Changed("seeds") {
		overrides = append(overrides, crawl.WithSeeds(opts.Seeds))
	}
	if cmd.Flags().Changed("concurrency") {
		overrides = append(overrides, crawl.WithConcurrency(opts.Concurrency))
	}

	result := application.Crawler(overrides...).Run(cmd.Context())

	var out io.Writer = cmd.OutOrStdout()
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := crawl.Write(out, result.IDs, opts.Format); err != nil {
		return err
	}
	if opts.Output != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d ids to %s\n", len(result.IDs), opts.Output)
	}
	return nil
}
