package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/example/tallum/internal/config"
	"github.com/example/tallum/internal/database"
	"github.com/example/tallum/internal/drill"
	"github.com/example/tallum/internal/scoring"
	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "tallum",
	Short: "A vocabulary drilling service",
	Long: `Tallum serves flashcards, checks answers and keeps a score per word
(optionally per user) so the weakest words come up most often.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
}

// app bundles what every command needs; Close releases the store
type app struct {
	Config *config.Config
	Store  *database.Store
	Drill  *drill.Service
}

func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}

	store, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	engine := scoring.NewEngine(scoring.WithWindow(cfg.SelectionWindow))
	service := drill.NewService(store.Words, store.Scores, store.Statistics, engine, cfg.PerUserScores)

	return &app{Config: cfg, Store: store, Drill: service}, nil
}

func (a *app) Close() error {
	return a.Store.Close()
}
