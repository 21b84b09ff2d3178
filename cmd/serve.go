package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/initializ/websearch/agent"
	"github.com/initializ/websearch/config"
	"github.com/initializ/websearch/logging"
	"github.com/initializ/websearch/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search page and JSON API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", config.DefaultPort, "port to listen on")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd != nil && cmd.Flags().Changed("port") {
		cfg.Server.Port = servePort
	}
	logger := newLogger(cfg, os.Stderr)
	if err := checkConfig(cfg, logger); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nShutting down...")
		cancel()
	}()

	return serve(ctx, cfg, logger)
}

// serve runs the front end for cfg until ctx is cancelled.
func serve(ctx context.Context, cfg *config.Config, logger logging.Logger) error {
	searcher, err := newSearcher(cfg, logger)
	if err != nil {
		return err
	}
	sessions := agent.NewSessions(cfg.Server.MaxSessions, func() *agent.Agent {
		return agent.New(searcher, logger)
	})

	srv := server.NewServer(server.ServerConfig{
		Addr:                 cfg.Addr(),
		ProxyBasePath:        cfg.Server.ProxyBasePath,
		BaseHref:             cfg.Server.BaseHref,
		TrustForwardedPrefix: cfg.Server.TrustForwardedPrefix,
		MaskErrors:           cfg.Server.MaskErrors,
		Logger:               logger,
	}, searcher, sessions)

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("serving: %w", err)
	}
	return nil
}
