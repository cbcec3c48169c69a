package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ppiankov/pensionfacts/internal/model"
	"github.com/ppiankov/pensionfacts/internal/pipeline"
	"github.com/ppiankov/pensionfacts/internal/source"
	"github.com/ppiankov/pensionfacts/internal/store"
	"github.com/ppiankov/pensionfacts/internal/worker"
)

var (
	batchOutput  string
	batchWorkers int
	batchRate    float64
	batchStore   string
	batchTimeout time.Duration
	noProgress   bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <input.jsonl|->",
	Short: "Process a JSON Lines file of documents in parallel",
	Long: `Batch processes many documents concurrently:
- Read documents from a JSON Lines file (or stdin with "-")
- Process them with a pool of workers, optionally rate limited
- Write one report per line, in input order
- Optionally save every report to SQLite under a run ID

A row whose text fields are not strings or null stops the batch.

Example:
  pensionfacts batch docs.jsonl --output reports.jsonl
  pensionfacts batch docs.jsonl --workers 8 --rate 200 --store reports.db`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "-", "output JSON Lines path (- for stdout)")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "number of concurrent workers (default from config)")
	batchCmd.Flags().Float64Var(&batchRate, "rate", -1, "max documents per second, 0 for unlimited (default from config)")
	batchCmd.Flags().StringVar(&batchStore, "store", "", "SQLite database to save reports in (default from config)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 0, "total timeout for the batch (0 for none)")
	batchCmd.Flags().BoolVar(&noProgress, "no-progress", false, "hide the progress bar")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable report memoization")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if batchWorkers > 0 {
		cfg.Concurrency.Workers = batchWorkers
	}
	if batchRate >= 0 {
		cfg.RateLimiting.RowsPerSecond = batchRate
	}
	if batchStore != "" {
		cfg.Store.Path = batchStore
	}

	ctx := cmd.Context()
	if batchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, batchTimeout)
		defer cancel()
	}

	runID := uuid.New().String()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Pensionfacts Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Run ID:       %s\n", runID)
	fmt.Fprintf(os.Stderr, "  Input:        %s\n", args[0])
	fmt.Fprintf(os.Stderr, "  Output:       %s\n", batchOutput)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	if cfg.RateLimiting.RowsPerSecond > 0 {
		fmt.Fprintf(os.Stderr, "  Rate:         %.1f docs/s\n", cfg.RateLimiting.RowsPerSecond)
	}
	if cfg.Store.Path != "" {
		fmt.Fprintf(os.Stderr, "  Store:        %s\n", cfg.Store.Path)
	}
	fmt.Fprintf(os.Stderr, "\n")

	in, err := openInput(args[0])
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := createOutput(batchOutput)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	var db *store.Store
	if cfg.Store.Path != "" {
		db, err = store.Open(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
	}

	bar := newProgressBar()
	writer := pipeline.NewJSONLWriter(out)
	reader := source.NewReader(in)
	processor := worker.NewBatchProcessor(newPipeline(cfg), cfg.Concurrency.Workers,
		cfg.RateLimiting.RowsPerSecond, cfg.RateLimiting.BurstSize)

	var succeeded, failed int
	streamErr := processor.Stream(ctx, reader.Next, func(r *worker.DocumentResult) error {
		if bar != nil {
			_ = bar.Add(1)
		}
		if r.Error != nil {
			failed++
			slog.Warn("document failed", "index", r.Index, "naid", r.NAID, "error", r.Error)
			return nil
		}
		report := *r.Report
		report.RunID = runID
		if db != nil {
			if _, err := db.Save(ctx, &report); err != nil {
				return err
			}
		}
		if err := writer.Write(&report); err != nil {
			return err
		}
		succeeded++
		return nil
	})
	if bar != nil {
		_ = bar.Finish()
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d documents\n", succeeded+failed)
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", succeeded)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failed)
	fmt.Fprintf(os.Stderr, "\n")

	if streamErr != nil {
		var fieldErr *source.FieldTypeError
		if errors.As(streamErr, &fieldErr) {
			fmt.Fprintf(os.Stderr, "✗ Input rejected at line %d: field %q is a %s\n", fieldErr.Line, fieldErr.Field, fieldErr.Kind)
		}
		return streamErr
	}
	return nil
}

// newProgressBar shows a spinner with a running count; the total is not known up front
func newProgressBar() *progressbar.ProgressBar {
	if noProgress {
		return nil
	}
	return progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Processing documents"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
	)
}

// batchReports reads a batch output file back into reports
func batchReports(path string) ([]*model.DocumentReport, error) {
	in, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = in.Close() }()
	return pipeline.ReadReports(in)
}
