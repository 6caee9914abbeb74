package cmd

import (
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/Santosestevialima/telemarketing/internal/server"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the browser dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagAddr != "" {
			cfg.ListenAddr = flagAddr
		}
		srv, err := server.New(cfg)
		if err != nil {
			return fmt.Errorf("build server: %w", err)
		}
		log.Printf("telemarketing dashboard listening on %s", cfg.ListenAddr)
		return http.ListenAndServe(cfg.ListenAddr, srv.Router())
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
