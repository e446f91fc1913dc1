package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/ppiankov/verdict/internal/model"
	"github.com/ppiankov/verdict/internal/worker"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var outputDir string

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>...",
	Short: "Classify several article files in parallel",
	Long: `Batch classifies many articles concurrently:
- Each file (or "-" for stdin) is one article
- Articles are classified in parallel with a configurable worker count
- Outbound gateway calls can be paced with a client-side token bucket
- Every article is an independent call; nothing is cached or deduplicated

Results are printed to stdout as a JSON array in input order. With
--output-dir each result is also written to <name>.json.

Example:
  verdict batch articles/*.txt
  verdict batch a.txt b.txt --concurrency 4 --rps 2
  verdict batch articles/*.txt --output-dir ./verdicts --timeout 5m`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	d := model.DefaultConfig().Batch
	batchCmd.Flags().Int("concurrency", d.Concurrency, "number of concurrent workers")
	batchCmd.Flags().Float64("rps", d.RPS, "max gateway calls per second (0 = unpaced)")
	batchCmd.Flags().Int("burst", d.Burst, "token bucket burst size")
	batchCmd.Flags().Duration("timeout", d.Timeout, "total timeout for batch processing")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "", "also write one JSON file per article to this directory")
	batchCmd.Flags().BoolVar(&compactJSON, "compact", false, "print compact JSON")

	_ = viper.BindPFlag("batch.concurrency", batchCmd.Flags().Lookup("concurrency"))
	_ = viper.BindPFlag("batch.rps", batchCmd.Flags().Lookup("rps"))
	_ = viper.BindPFlag("batch.burst", batchCmd.Flags().Lookup("burst"))
	_ = viper.BindPFlag("batch.timeout", batchCmd.Flags().Lookup("timeout"))
}

// batchEntry is one line of batch output
type batchEntry struct {
	Name   string                      `json:"name"`
	Result *model.ClassificationResult `json:"result,omitempty"`
	Error  string                      `json:"error,omitempty"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := currentConfig()
	if err != nil {
		return err
	}

	docs, err := worker.ReadDocuments(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	logger, p, err := newPipeline(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.Batch.Timeout)
	defer cancel()

	stderr := cmd.ErrOrStderr()
	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "  Verdict Batch Classification\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "  Articles:     %d\n", len(docs))
	fmt.Fprintf(stderr, "  Workers:      %d\n", cfg.Batch.Concurrency)
	if cfg.Batch.RPS > 0 {
		fmt.Fprintf(stderr, "  Pacing:       %.2f req/s (burst %d)\n", cfg.Batch.RPS, cfg.Batch.Burst)
	}
	fmt.Fprintf(stderr, "  Timeout:      %v\n", cfg.Batch.Timeout)
	fmt.Fprintf(stderr, "\n")

	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	limiter := worker.NewLimiter(cfg.Batch.RPS, cfg.Batch.Burst)
	processor := worker.NewBatchProcessor(p, cfg.Batch.Concurrency, limiter)
	results := processor.ProcessDocuments(ctx, docs)

	entries := make([]batchEntry, 0, len(results))
	failureCount := 0
	for _, res := range results {
		entry := batchEntry{Name: res.Name, Result: res.Result}
		if res.Error != nil {
			failureCount++
			entry.Error = res.Error.Kind.Message()
			fmt.Fprintf(stderr, "✗ %s: %s\n", res.Name, entry.Error)
		} else {
			fmt.Fprintf(stderr, "✓ %s: %s (%.2f)\n", res.Name, res.Result.Verdict, res.Result.Confidence)
		}
		entries = append(entries, entry)

		if outputDir != "" {
			if err := writeEntry(res.Index(), entry); err != nil {
				fmt.Fprintf(stderr, "✗ %s: %v\n", res.Name, err)
			}
		}
	}

	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "  Total:     %d\n", len(results))
	fmt.Fprintf(stderr, "  Success:   %d\n", len(results)-failureCount)
	fmt.Fprintf(stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(stderr, "\n")

	if err := writeJSON(cmd.OutOrStdout(), entries, compactJSON); err != nil {
		return err
	}
	if failureCount > 0 {
		return fmt.Errorf("%d of %d articles failed", failureCount, len(results))
	}
	return nil
}

func writeEntry(index int, entry batchEntry) (err error) {
	name := fmt.Sprintf("%03d-%s.json", index+1, sanitizeFilename(entry.Name))
	f, err := os.Create(filepath.Join(outputDir, name))
	if err != nil {
		return fmt.Errorf("create result file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close result file: %w", closeErr)
		}
	}()
	return writeJSON(f, entry, false)
}

// sanitizeFilename sanitizes a string for use as a filename
func sanitizeFilename(s string) string {
	s = strings.TrimSuffix(filepath.Base(s), filepath.Ext(s))

	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "-",
	)
	s = replacer.Replace(s)

	// Limit length
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" || s == "." {
		s = "article"
	}

	return s
}
