package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/ironkeep/ecs"
	"github.com/milk9111/ironkeep/prefabs"
	"github.com/milk9111/ironkeep/session"
	"github.com/rs/zerolog"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	dialogueTicks = 240
	bannerTicks   = 150
)

type GameOptions struct {
	Level   int
	Weapons []string
	Seed    int64
	Logger  zerolog.Logger
}

type Game struct {
	opts GameOptions

	session  *session.Session
	input    *Input
	renderer *Renderer
	sounds   *SoundBank
	help     *ebitenui.UI
	watcher  *prefabs.Watcher
	logger   zerolog.Logger

	closeHelp bool

	dialogue      ecs.Dialogue
	dialogueTimer int
	banner        string
	bannerTimer   int

	finished bool
	won      bool
}

func NewGame(opts GameOptions) (*Game, error) {
	g := &Game{
		opts:     opts,
		input:    NewInput(),
		renderer: NewRenderer(),
		sounds:   NewSoundBank(opts.Logger),
		logger:   opts.Logger,
	}
	if err := g.start(); err != nil {
		return nil, err
	}
	g.help = NewHelpUI(g)
	return g, nil
}

func (g *Game) start() error {
	s, err := session.New(session.Options{
		GameType: session.GameCampaign,
		Level:    g.opts.Level,
		Weapons:  g.opts.Weapons,
		Seed:     g.opts.Seed,
		Logger:   &g.logger,
		Sound:    g.sounds,
		OnComplete: func(won bool) {
			g.finished = true
			g.won = won
		},
	})
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	g.session = s
	g.finished = false
	g.dialogueTimer = 0
	g.bannerTimer = 0
	return nil
}

// Watch forwards prefab edits to the session. They apply on the next level
// load or respawn.
func (g *Game) Watch(w *prefabs.Watcher) {
	g.watcher = w
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.logger.Info().Str("path", change.Path).Msg("prefab changed")
			g.session.ReloadPrefabs()
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.logger.Warn().Err(err).Msg("prefab watcher error")
			}
		default:
			return
		}
	}
}

func (g *Game) Update() error {
	g.pollWatcher()

	if g.finished {
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			return ebiten.Termination
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.opts.Level = 0
			return g.start()
		}
		return nil
	}

	in := g.input.Poll()
	if g.closeHelp {
		g.closeHelp = false
		in.Help = g.session.HelpVisible()
	}
	for _, evt := range g.session.Update(in) {
		g.present(evt)
	}
	if g.session.HelpVisible() {
		g.help.Update()
	}

	if g.dialogueTimer > 0 {
		g.dialogueTimer--
	}
	if g.bannerTimer > 0 {
		g.bannerTimer--
	}
	return nil
}

// present turns simulation events into on-screen messages.
func (g *Game) present(evt ecs.Event) {
	switch evt.Type {
	case ecs.EventDialogue:
		if d, ok := evt.Data.(ecs.Dialogue); ok {
			g.dialogue = d
			g.dialogueTimer = dialogueTicks
		}
	case ecs.EventWaveStarted:
		g.showBanner(fmt.Sprintf("Wave %v", evt.Data))
	case ecs.EventWavesComplete:
		g.showBanner("The ward holds!")
	case ecs.EventBossPhase:
		g.showBanner(fmt.Sprintf("Phase %v", evt.Data))
	case ecs.EventPuzzleSolved:
		g.showBanner("A gate grinds open")
	case ecs.EventPlayerDied:
		g.showBanner("You have fallen")
	}
}

func (g *Game) showBanner(s string) {
	g.banner = s
	g.bannerTimer = bannerTicks
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	g.renderer.Draw(screen, g.session)

	if g.dialogueTimer > 0 {
		g.renderer.drawDialogue(screen, g.dialogue)
	}
	if g.bannerTimer > 0 {
		g.renderer.label(screen, g.banner, baseWidth/2-float64(len(g.banner)*7)/2, 96, colorText)
	}
	if g.session.HelpVisible() && !g.finished {
		g.help.Draw(screen)
	}
	if g.finished {
		vector.DrawFilledRect(screen, 0, 0, baseWidth, baseHeight, colorDialogueBG, false)
		msg := "The keep has fallen to you. Victory!"
		if !g.won {
			msg = "Defeat."
		}
		g.renderer.label(screen, msg, baseWidth/2-float64(len(msg)*7)/2, baseHeight/2-20, colorText)
		g.renderer.label(screen, "Enter to play again, Esc to quit", baseWidth/2-112, baseHeight/2+4, colorDim)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
