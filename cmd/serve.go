package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fixdesk/fixdesk/internal/chat"
	"github.com/fixdesk/fixdesk/internal/complaints"
	"github.com/fixdesk/fixdesk/internal/config"
	"github.com/fixdesk/fixdesk/internal/retrieval"
	"github.com/fixdesk/fixdesk/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the FixDesk HTTP server",
	Long:  `Starts the FixDesk server with the chat, complaint and retrieval APIs over REST and WebSocket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if servePort != 0 {
			cfg.Server.Port = servePort
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		app, err := buildApplication(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer app.Close()

		srv := server.New(cfg.Server)

		r := srv.Router()
		complaints.RegisterRoutes(r, app.store)
		retrieval.RegisterRoutes(r, app.retriever, app.store)
		chat.RegisterRoutes(r, app.engine)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "fixdesk v%s starting on %s:%d\n", Version, cfg.Server.Host, cfg.Server.Port)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", cfg.Database.Path)
		fmt.Fprintf(os.Stderr, "  Embedder: %s\n", cfg.Embedding.Provider)

		return srv.Start()
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "override the configured server port")
	rootCmd.AddCommand(serveCmd)
}
