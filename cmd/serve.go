package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/akashkanabur/AIAgentEvaluation/internal/admission"
	"github.com/akashkanabur/AIAgentEvaluation/internal/config"
	"github.com/akashkanabur/AIAgentEvaluation/internal/guard"
	"github.com/akashkanabur/AIAgentEvaluation/internal/policy"
	store "github.com/akashkanabur/AIAgentEvaluation/internal/repository"
	"github.com/akashkanabur/AIAgentEvaluation/internal/service"
	transport "github.com/akashkanabur/AIAgentEvaluation/internal/transport/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the evaluation ingestion HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logrus.New()
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	log.SetLevel(level)

	log.Infof("Starting evaluation service on port %d", cfg.HTTPPort)
	log.Infof("Database: %s", cfg.DatabaseURL)

	// Initialize store
	db, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	// Initialize policy store
	policies, err := policy.NewStore(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to initialize policy store: %w", err)
	}

	// Initialize ingest guard
	guardPolicy := guard.DefaultPolicy
	if cfg.GuardPolicyPath != "" {
		data, err := os.ReadFile(cfg.GuardPolicyPath)
		if err != nil {
			return fmt.Errorf("failed to read guard policy: %w", err)
		}
		guardPolicy = string(data)
	}
	guardEngine, err := guard.NewEngine(ctx, guardPolicy)
	if err != nil {
		return fmt.Errorf("failed to initialize guard engine: %w", err)
	}

	// Initialize admission gate
	quota := admission.NewQuotaCounter(func(ctx context.Context, dayStart time.Time) (int, error) {
		return db.CountEvaluationsSince(ctx, dayStart)
	})
	gate := admission.NewGate(db, quota, guardEngine,
		admission.NewLockedSource(time.Now().UnixNano()),
		admission.WithStoreTimeout(cfg.StoreTimeout))

	// Initialize service and server
	svc := service.New(db, policies, gate, log)
	if cfg.AllowAnonymous {
		log.Warn("Anonymous access is enabled; requests without an API key run as the anonymous principal")
	}
	server := transport.NewServer(svc, cfg.APIKeys, cfg.AllowAnonymous)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Infof("API started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down evaluation service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Failed to shutdown server gracefully: %v", err)
	}

	log.Info("Evaluation service stopped")
	return nil
}
