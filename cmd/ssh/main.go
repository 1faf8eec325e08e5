package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/muesli/termenv"

	"github.com/tomz197/spacedodge/internal/config"
	"github.com/tomz197/spacedodge/internal/draw"
	"github.com/tomz197/spacedodge/internal/loop"
	gameconfig "github.com/tomz197/spacedodge/internal/loop/config"
	"github.com/tomz197/spacedodge/internal/session"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Warn("Failed to load .env", "err", err)
	}
	if lvl, err := log.ParseLevel(config.GetEnv("LOG_LEVEL", "info")); err == nil {
		log.SetLevel(lvl)
	}

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	log.Info("SSH config", "host", host, "port", port, "hostKeyPath", hostKeyPath)

	settings, err := gameconfig.FromEnv()
	if err != nil {
		log.Warn("Ignoring invalid settings", "err", err)
	}

	h := &handler{
		settings: settings,
		store:    session.NewMemoryStore(log.Default()),
	}
	h.ctx, h.cancel = context.WithCancel(context.Background())

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			h.middleware,
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// TCP_NODELAY keeps key presses from being batched
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		log.Fatal("Failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Info("Starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatal("Server error", "err", err)
		}
	}()

	<-done
	log.Info("Shutting down server...")

	// Sessions show the shutdown notice for a while before they close.
	grace := time.Duration(gameconfig.ShutdownDisplaySeconds*float64(time.Second)) + 5*time.Second
	h.shutdown(grace)
	for _, e := range h.store.Top(5) {
		log.Info("Leaderboard", "user", e.Key, "high_score", e.HighScore, "games", e.GamesPlayed)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		log.Fatal("Shutdown error", "err", err)
	}
}

// handler runs one independent game per SSH session. Only the stats store is shared.
type handler struct {
	settings gameconfig.Settings
	store    *session.MemoryStore

	ctx    context.Context // Cancelled on server shutdown
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func (h *handler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		h.wg.Add(1)
		defer h.wg.Done()

		user := sess.User()
		log.Info("New game session", "user", user, "term", pty.Term,
			"width", pty.Window.Width, "height", pty.Window.Height)

		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		game := loop.New(loop.Options{
			Settings:   h.settings,
			OnGameOver: func(score int) { h.store.Record(user, score) },
			Stats:      func() session.Stats { return h.store.Get(user) },
		})
		c := loop.NewClient(game, bufio.NewReader(sess), sess, loop.ClientOptions{
			TermSizeFunc:       sizeTracker.getSize,
			Profile:            termenv.ANSI256,
			DisconnectInactive: true,
			ShutdownNotice:     true,
		})

		// A dropped connection ends the input stream; h.ctx only signals shutdown.
		if err := c.Run(h.ctx); err != nil {
			log.Error("Game error", "user", user, "err", err)
		}

		log.Info("Session ended", "user", user, "score", game.Score())
		next(sess)
	}
}

// shutdown cancels every session and waits up to timeout for them to finish.
func (h *handler) shutdown(timeout time.Duration) {
	h.cancel()
	finished := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(finished)
	}()
	select {
	case <-finished:
		log.Info("All sessions closed")
	case <-time.After(timeout):
		log.Warn("Timed out waiting for sessions", "timeout", timeout)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
