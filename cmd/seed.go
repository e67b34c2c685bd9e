package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/akashkanabur/AIAgentEvaluation/internal/config"
	"github.com/akashkanabur/AIAgentEvaluation/internal/policy"
	store "github.com/akashkanabur/AIAgentEvaluation/internal/repository"
	"github.com/akashkanabur/AIAgentEvaluation/internal/service"
)

var (
	seedCount int
	seedOwner string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo evaluation data for local development",
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().IntVar(&seedCount, "count", 150, "number of evaluations to insert")
	seedCmd.Flags().StringVar(&seedOwner, "owner", "demo", "owner principal for seeded records")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	policies, err := policy.NewStore(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to initialize policy store: %w", err)
	}

	svc := service.New(db, policies, nil, logrus.New())
	n, err := svc.SeedEvaluations(ctx, seedCount, seedOwner)
	if err != nil {
		return err
	}

	fmt.Printf("Seeded %d evaluations into %s\n", n, cfg.DatabaseURL)
	return nil
}
