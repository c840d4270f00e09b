package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/arden-renewables/sitescope/internal/analysis"
	"github.com/arden-renewables/sitescope/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		runner := analysis.NewRunner(st, cat, runnerConfig())
		srv := server.New(st, cat, runner, int64(cfg.Server.MaxUploadBytes))

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}
		return srv.Run(ctx, port)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
