package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bubbles/internal/platform/feed"
	"github.com/vovakirdan/tui-bubbles/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagFeedAddr    string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the bubbles SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with the mode menu. Scores and
progress are stored per server, so all users share one leaderboard.

With --feed every run is also streamed as JSON frames over a WebSocket
at /feed, for spectators and bots.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.bubbles/host_key

Examples:
  bubbles serve                          # Listen on :23234
  bubbles serve --ssh :2222              # Listen on port 2222
  bubbles serve --feed :8080             # Also stream frames on ws://host:8080/feed

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default :23234)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagFeedAddr, "feed", "", "Spectator WebSocket address, empty disables it")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	a, err := setup(os.Stderr)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := signalContext()
	defer cancel()

	launcher := a.launcher(false)

	var feedServer *http.Server
	if addr := pick(flagFeedAddr, a.env.FeedAddr); addr != "" {
		hub := feed.NewHub(a.logger.WithPrefix("bubbles-feed"))
		go hub.Run(ctx)
		launcher.Watchers = append(launcher.Watchers, hub)

		mux := http.NewServeMux()
		mux.Handle("/feed", hub)
		feedServer = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
		go func() {
			if err := feedServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("feed server failed", "err", err)
				cancel()
			}
		}()
		a.logger.Info("spectator feed listening", "addr", addr)
	}

	cfg := tui.SSHServerConfig{
		Address:     pick(flagSSHAddr, a.env.SSHAddr, ":23234"),
		HostKeyPath: pick(flagHostKey, a.env.HostKey),
		DBPath:      a.dbPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Launcher:    launcher,
		Logger:      a.logger.WithPrefix("bubbles-ssh"),
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	fmt.Printf("Starting bubbles SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	err = server.ListenAndServe(ctx)

	if feedServer != nil {
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		feedServer.Shutdown(shutdownCtx)
	}
	return err
}
