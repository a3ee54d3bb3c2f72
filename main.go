package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/ironkeep/prefabs"
	"github.com/rs/zerolog"
)

func main() {
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	level := flag.Int("level", 0, "level index to start on")
	weapons := flag.String("weapons", "sword", "comma separated starting weapons")
	watch := flag.Bool("watch", false, "reload prefabs from disk when they change")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	seed := flag.Int64("seed", 0, "random seed, 0 for time based")
	flag.Parse()

	lvl, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("ironkeep")

	game, err := NewGame(GameOptions{
		Level:   *level,
		Weapons: splitList(*weapons),
		Seed:    *seed,
		Logger:  logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("start game")
	}

	if *watch {
		w, err := prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
		if err != nil {
			logger.Warn().Err(err).Msg("prefab watcher disabled")
		} else {
			defer w.Close()
			game.Watch(w)
			logger.Info().Str("dir", prefabs.Dir).Msg("watching prefabs")
		}
	}

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		logger.Fatal().Err(err).Msg("game exited")
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
