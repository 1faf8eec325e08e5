package main

import (
	"bufio"
	"context"
	"os"
	"os/signal"
	"os/user"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/tomz197/spacedodge/internal/config"
	"github.com/tomz197/spacedodge/internal/loop"
	gameconfig "github.com/tomz197/spacedodge/internal/loop/config"
	"github.com/tomz197/spacedodge/internal/session"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Warn("Failed to load .env", "err", err)
	}
	if lvl, err := log.ParseLevel(config.GetEnv("LOG_LEVEL", "warn")); err == nil {
		log.SetLevel(lvl)
	}

	settings, err := gameconfig.FromEnv()
	if err != nil {
		log.Warn("Ignoring invalid settings", "err", err)
	}

	player := "local"
	if u, err := user.Current(); err == nil {
		player = u.Username
	}
	store := session.NewMemoryStore(log.Default())

	game := loop.New(loop.Options{
		Settings:   settings,
		OnGameOver: func(score int) { store.Record(player, score) },
		Stats:      func() session.Stats { return store.Get(player) },
	})

	profile := termenv.NewOutput(os.Stdout).EnvColorProfile()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		log.Fatal("Failed to enable raw mode", "err", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := loop.NewClient(game, bufio.NewReader(os.Stdin), os.Stdout, loop.ClientOptions{
		Profile: profile,
	})
	if err := client.Run(ctx); err != nil {
		_ = term.Restore(fd, oldState)
		log.Error("Game error", "err", err)
		os.Exit(1)
	}
}
