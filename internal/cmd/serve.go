package cmd

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Iron-Ham/heistboard/internal/config"
	"github.com/Iron-Ham/heistboard/internal/feed"
	"github.com/Iron-Ham/heistboard/internal/logging"
	"github.com/Iron-Ham/heistboard/internal/serve"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve [feed]",
	Short: "Share the board with spectators over SSH",
	Long: `Run an SSH server that shows the board to every spectator who
connects. The feed is a snapshot file, "-" for stdin, a ws:// URL, or
"demo" (the default).

Spectators connect with:
  ssh -p 23234 localhost

Non-interactive sessions can run the "snapshot" command to print the
board once:
  ssh -p 23234 localhost snapshot`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("host", "", "listen host (default from serve.host)")
	serveCmd.Flags().Int("port", 0, "listen port (default from serve.port)")
	_ = viper.BindPFlag("serve.host", serveCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("serve.port", serveCmd.Flags().Lookup("port"))
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, logToStderr)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	arg := "demo"
	if len(args) > 0 {
		arg = args[0]
	}
	src := resolveSource(arg, cfg, logger)

	hub := feed.NewHub()
	srv, err := serve.New(serve.Config{
		Host:        cfg.Serve.Host,
		Port:        cfg.Serve.Port,
		HostKeyPath: cfg.Serve.HostKeyPath,
		Theme:       cfg.TUI.Theme,
		Glyphs:      glyphsFor(cfg),
		Anim:        animOptions(cfg),
		IdleTimeout: cfg.Serve.IdleTimeout(),
	}, hub, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Serving the %s board on %s\n", src.Name(), srv.Addr())
	return runServer(ctx, srv, nil, hub, src, logger, serve.DefaultShutdownTimeout)
}

// runServer runs the feed into hub and serves it on l (or the configured
// address when l is nil) until ctx is done or either side fails. A feed
// that ends cleanly leaves its last snapshot on show.
func runServer(ctx context.Context, srv *serve.Server, l net.Listener, hub *feed.Hub, src feed.Source, logger *logging.Logger, grace time.Duration) error {
	p := pool.New().WithErrors().WithContext(ctx).WithCancelOnError()

	p.Go(func(ctx context.Context) error {
		return hub.Run(ctx, logger, src)
	})

	p.Go(func(ctx context.Context) error {
		errc := make(chan error, 1)
		go func() {
			if l != nil {
				errc <- srv.Serve(l)
				return
			}
			errc <- srv.ListenAndServe()
		}()

		select {
		case err := <-errc:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown timed out, closing sessions", "error", err)
			_ = srv.Close()
		}
		return <-errc
	})

	return p.Wait()
}
