package main

import (
	"os/user"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/spacedodge/internal/config"
	"github.com/tomz197/spacedodge/internal/loop"
	gameconfig "github.com/tomz197/spacedodge/internal/loop/config"
	"github.com/tomz197/spacedodge/internal/session"
	"github.com/tomz197/spacedodge/internal/window"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Warn("Failed to load .env", "err", err)
	}
	if lvl, err := log.ParseLevel(config.GetEnv("LOG_LEVEL", "info")); err == nil {
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

	ebiten.SetWindowSize(int(settings.Width), int(settings.Height))
	ebiten.SetWindowTitle("Space Dodge")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(gameconfig.ClientTargetFPS)

	if err := ebiten.RunGame(window.New(game)); err != nil {
		log.Fatal("Game error", "err", err)
	}
	log.Info("Session ended", "high_score", store.Get(player).HighScore)
}
