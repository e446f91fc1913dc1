package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ppiankov/verdict/internal/llm"
	"github.com/ppiankov/verdict/internal/logging"
	"github.com/ppiankov/verdict/internal/model"
	"github.com/ppiankov/verdict/internal/pipeline"
	"github.com/ppiankov/verdict/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the news analysis HTTP service",
	Long: `Serve exposes POST /analyze-news (with CORS preflight) and GET /healthz.

The gateway API key is read from VERDICT_GATEWAY_API_KEY or LOVABLE_API_KEY.
The service starts without one; requests then fail with a configuration error.

Example:
  verdict serve
  verdict serve --addr :9090
  VERDICT_GATEWAY_MODE=fixture VERDICT_GATEWAY_FIXTURE_PATH=reply.json verdict serve`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", model.DefaultConfig().Server.Addr, "listen address")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := currentConfig()
	if err != nil {
		return err
	}

	logger, p, err := newPipeline(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Gateway.APIKey == "" && p.ClassifierName() == llm.ModeGateway {
		logger.Warn("gateway api key is not set; analysis requests will fail until it is configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg.Server, p, logger)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// newPipeline builds the logger, classifier and pipeline shared by every
// command that classifies text
func newPipeline(cfg *model.Config) (*zap.Logger, *pipeline.Pipeline, error) {
	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, nil, err
	}

	classifier, err := llm.NewClassifier(llm.ConfigFromModel(cfg.Gateway), logger)
	if err != nil {
		return nil, nil, fmt.Errorf("create classifier: %w", err)
	}

	logger.Debug("classifier ready",
		zap.String("mode", classifier.Name()),
		zap.String("model", cfg.Gateway.Model),
		zap.String("base_url", cfg.Gateway.BaseURL))

	return logger, pipeline.NewPipeline(classifier, logger), nil
}
