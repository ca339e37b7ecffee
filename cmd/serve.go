package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/tallum/internal/importer"
	"github.com/example/tallum/internal/scheduler"
	"github.com/example/tallum/internal/server"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the JSON API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := importer.New(a.Store.Words).SeedDefaults(ctx); err != nil {
			return err
		}

		if a.Config.EnableScheduler {
			s := scheduler.New(a.Drill, scheduler.LogReporter{}, a.Config.StatsInterval)
			if err := s.Start(); err != nil {
				return err
			}
			defer s.Stop()
		}

		httpCfg := a.Config.HTTP
		if serveAddr != "" {
			httpCfg.Addr = serveAddr
		}
		if err := server.New(a.Drill, httpCfg).Run(ctx); err != nil {
			return err
		}
		log.Println("Server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (overrides HTTP_ADDR)")
}
