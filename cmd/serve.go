package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/KaramelBytes/actionboard-cli/internal/server"
	"github.com/spf13/cobra"
)

const defaultListenAddr = "127.0.0.1:8080"

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web dashboard and its JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := settings()
		addr := serveAddr
		if addr == "" {
			addr = c.ListenAddr
		}
		if addr == "" {
			addr = defaultListenAddr
		}
		srv, err := server.New(newLoader(), server.Config{Source: c.Source, TopReasons: c.TopReasons})
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Dashboard at http://%s (Ctrl+C to stop)\n", addr)
		if c.Source == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "  No default source configured; serving sample data unless ?source= is given")
		}
		return srv.ListenAndServe(ctx, addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, 127.0.0.1:8080)")
}
