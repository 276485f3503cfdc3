package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"text-decoder/api/internal/admission"
	"text-decoder/api/internal/behavior"
	"text-decoder/api/internal/config"
	"text-decoder/api/internal/envelope"
	"text-decoder/api/internal/handle"
	"text-decoder/api/internal/httpserver"
	"text-decoder/api/internal/llm"
	"text-decoder/api/internal/llm/gemini"
	"text-decoder/api/internal/logger"
	"text-decoder/api/internal/store"
)

var rootCmd = &cobra.Command{
	Use:           "text-decoder",
	Short:         "Conversation analysis gateway in front of a generative model",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the service version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", handle.ServiceName, handle.Version)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	log.Info("config loaded", cfg.Fields()...)

	lib, err := behavior.Load(cfg.BehaviorLibraryPath, time.Now())
	if err != nil {
		return err
	}
	log.Info("behavior library loaded", zap.Int("behaviors", lib.Count()), zap.Int("categories", len(lib.Categories())))

	eng, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return err
	}
	defer func() { _ = eng.Close() }()
	if cfg.GeminiAPIKey == "" {
		log.Warn("GEMINI_API_KEY is empty, analysis routes will fail")
	}

	var rec store.Recorder = store.Nop{}
	if cfg.DatabaseURL != "" {
		db, err := store.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		repo := store.NewAuditRepo(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("audit schema: %w", err)
		}
		log.Info("db connected", zap.String("dsn", store.SafeDSNSummary(cfg.DatabaseURL)))
		rec = repo
	}

	lim := admission.NewLimiter(admission.DefaultLimits(), time.Now)
	defer lim.Stop()

	h := handle.New(handle.Deps{
		Invoker:      llm.NewInvoker(eng, cfg.ModelTimeout),
		Library:      lib,
		Recorder:     rec,
		Log:          log,
		MaxBodyBytes: int64(cfg.MaxBodyBytes),
	})
	router := httpserver.NewRouter(h, admission.NewAdmitter(lim, envelope.Reject), log,
		httpserver.RouterConfig{TrustProxyHeaders: cfg.TrustProxyHeaders})

	return httpserver.Run(ctx, cfg.Addr(), router, cfg.ShutdownTimeout, log)
}
