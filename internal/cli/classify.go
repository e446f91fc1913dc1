package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/ppiankov/verdict/internal/pipeline"
	"github.com/spf13/cobra"
)

var compactJSON bool

// classifyCmd represents the classify command
var classifyCmd = &cobra.Command{
	Use:   "classify [file|-]",
	Short: "Classify a single article and print the result as JSON",
	Long: `Classify reads one article from a file (or stdin when the argument is
omitted or "-") and runs it through the same pipeline as the HTTP service.

On success the classification is printed to stdout. On failure the same
{"error": "..."} body the service would return is printed and the command
exits non-zero.

Example:
  verdict classify article.txt
  cat article.txt | verdict classify
  VERDICT_GATEWAY_MODEL=google/gemini-2.5-flash verdict classify article.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().BoolVar(&compactJSON, "compact", false, "print compact JSON")
}

func runClassify(cmd *cobra.Command, args []string) error {
	path := "-"
	if len(args) == 1 {
		path = args[0]
	}

	text, err := readArticle(path, cmd.InOrStdin())
	if err != nil {
		return err
	}

	cfg, err := currentConfig()
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

	result, err := p.Analyze(ctx, text)
	if err != nil {
		perr := pipeline.AsPipelineError(err)
		if werr := writeJSON(cmd.OutOrStdout(), perr.Body(), compactJSON); werr != nil {
			return werr
		}
		return perr
	}

	return writeJSON(cmd.OutOrStdout(), result, compactJSON)
}

// readArticle reads the whole article from path, or from stdin for "-"
func readArticle(path string, stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read article %s: %w", path, err)
	}
	return string(data), nil
}

func writeJSON(w io.Writer, v interface{}, compact bool) error {
	enc := json.NewEncoder(w)
	if !compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
