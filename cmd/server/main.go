package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/network/netpoll"
	"github.com/spf13/cobra"

	"github.com/rtoki/japan-national-admin-procedures/internal/config"
	"github.com/rtoki/japan-national-admin-procedures/internal/dataset"
	"github.com/rtoki/japan-national-admin-procedures/internal/handler"
	"github.com/rtoki/japan-national-admin-procedures/internal/router"
	"github.com/rtoki/japan-national-admin-procedures/internal/usecase"
	"github.com/rtoki/japan-national-admin-procedures/pkg/logger"
)

var (
	cfgFile string
	version = "0.1.0"
)

var rootCmd = &cobra.Command{
	Use:   "procsurvey-server",
	Short: "API server for the national administrative procedures survey",
	Long: `procsurvey-server is an HTTP API server built with the Hertz framework.
It loads the government procedures survey dataset (about 75,000 rows) into
memory once and serves filtering, aggregation and export queries over it.`,
	Version: version,
	Run:     runServer,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "configs/config.yaml", "path to config file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func runServer(cmd *cobra.Command, args []string) {
	// Load configuration
	cfg, err := config.Load(cfgFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Setup(cfg.Log); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	slog.Info("config loaded successfully", "config_file", cfgFile)
	slog.Info("procedures survey server starting...",
		"version", version,
		"config", cfgFile,
	)

	// Setup Hertz to use slog
	hertzLogger := logger.NewHertzSlogAdapter(slog.Default())
	hlog.SetLogger(hertzLogger)
	hlog.SetLevel(hlog.LevelDebug)

	// Load the survey table before accepting traffic; readiness reports
	// not_ready until this returns.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	repo := dataset.NewRepository(cfg.Dataset.CSVPath, cfg.Dataset.SnapshotPath, slog.Default())
	table, err := repo.Load(ctx)
	if err != nil {
		slog.Error("failed to load dataset", "error", err)
		os.Exit(1)
	}

	query := usecase.NewQueryUsecase(table, slog.Default())

	slog.Info("dataset ready", "rows", table.Len())

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(query)
	datasetHandler := handler.NewDatasetHandler(query)
	queryHandler := handler.NewQueryHandler(query)
	procedureHandler := handler.NewProcedureHandler(query, cfg.Export.MaxRows)

	// Create Hertz server with performance optimization
	h := server.Default(
		server.WithHostPorts(cfg.GetServerAddr()),
		server.WithReadTimeout(cfg.GetReadTimeout()),
		server.WithWriteTimeout(cfg.GetWriteTimeout()),
		server.WithMaxRequestBodySize(cfg.Server.MaxRequestBodySize*1024*1024),
		server.WithTransport(netpoll.NewTransporter),
	)

	// Setup routes
	router.Setup(h, healthHandler, datasetHandler, queryHandler, procedureHandler)

	slog.Info("server started successfully",
		"address", cfg.GetServerAddr(),
		"mode", cfg.Server.Mode,
	)

	// Graceful shutdown
	go func() {
		if err := h.Run(); err != nil {
			slog.Error("server run failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := h.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
