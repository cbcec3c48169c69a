package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/pensionfacts/internal/cache"
	"github.com/ppiankov/pensionfacts/internal/model"
	"github.com/ppiankov/pensionfacts/internal/pipeline"
	"github.com/ppiankov/pensionfacts/internal/source"
)

var noCache bool

var documentCmd = &cobra.Command{
	Use:   "document [file.jsonl|-]",
	Short: "Process documents one at a time and print full reports",
	Long: `Document reads JSON Lines documents (NAID, title, ocrText,
transcriptionText, allowancePhrase) and prints the full report for each.
With --verbose a short summary of every report goes to stderr.

Example:
  pensionfacts document doc.jsonl --pretty
  echo '{"NAID": 1, "title": "File S. 1, John Doe"}' | pensionfacts document`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDocument,
}

func init() {
	documentCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable report memoization")
	documentCmd.Flags().Bool("cleaned-text", false, "include the cleaned document text in each report")
	_ = viper.BindPFlag("cleaning.include_text", documentCmd.Flags().Lookup("cleaned-text"))
	rootCmd.AddCommand(documentCmd)
}

// newPipeline builds the pipeline with the configured cache
func newPipeline(cfg *model.Config) *pipeline.Pipeline {
	var c cache.Cache = cache.Nop{}
	if !noCache {
		c = cache.New(cfg.Cache.Enabled, cfg.Cache.Directory, cfg.Cache.MemoryTTL, cfg.Cache.DiskTTL)
	}
	return pipeline.NewPipeline(cfg, c)
}

func runDocument(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := ""
	if len(args) == 1 {
		path = args[0]
	}

	in, err := openInput(path)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	p := newPipeline(cfg)
	renderer := pipeline.NewRenderer(cfg.Output.Pretty)
	reader := source.NewReader(in)
	ctx := cmd.Context()

	for {
		doc, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read document: %w", err)
		}

		report, err := p.Process(ctx, doc)
		if err != nil {
			return fmt.Errorf("process %s: %w", doc.NAID, err)
		}
		if cfg.Output.Verbose {
			renderer.RenderSummary(report)
		}
		if err := printJSON(report); err != nil {
			return err
		}
	}
}
