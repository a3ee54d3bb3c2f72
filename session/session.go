package session

import (
	"fmt"

	"github.com/milk9111/ironkeep/common"
	"github.com/milk9111/ironkeep/ecs"
	"github.com/milk9111/ironkeep/ecs/component"
	"github.com/milk9111/ironkeep/ecs/entity"
	"github.com/milk9111/ironkeep/ecs/system"
	"github.com/milk9111/ironkeep/levels"
	"github.com/milk9111/ironkeep/wave"
	"github.com/rs/zerolog"
)

// GameCampaign plays the levels in order from Options.Level. It is the only
// game type; an empty GameType selects it.
const GameCampaign = "campaign"

type Options struct {
	GameType string
	Level    int
	// Weapons are the starting weapon names, e.g. "sword", "bow".
	Weapons []string
	// Seed makes a session replayable. Zero seeds from the clock.
	Seed   int64
	Logger *zerolog.Logger
	Sound  ecs.SoundSink
	// OnComplete is called exactly once, when the session is won or lost.
	OnComplete func(won bool)
}

// Session owns the current level's world and drives it one tick at a time.
type Session struct {
	opts      Options
	logger    zerolog.Logger
	rng       *common.RNG
	prefabs   entity.Prefabs
	stale     bool
	owned     map[component.Weapon]bool
	level     int
	lvl       *levels.Level
	world     *ecs.World
	scheduler *ecs.Scheduler
	player    ecs.Entity
	help      bool
	done      bool
	won       bool
}

// New starts a session at opts.Level. An unknown game type ends the session
// immediately as a loss.
func New(opts Options) (*Session, error) {
	s := &Session{
		opts:   opts,
		logger: zerolog.Nop(),
		rng:    common.NewRNG(opts.Seed),
		stale:  true,
		owned:  map[component.Weapon]bool{},
	}
	if opts.Logger != nil {
		s.logger = *opts.Logger
	}
	s.owned = s.parseWeapons(opts.Weapons)

	if opts.GameType != "" && opts.GameType != GameCampaign {
		s.logger.Warn().Str("game_type", opts.GameType).Msg("unknown game type")
		s.finish(false)
		return s, nil
	}
	if err := s.LoadLevel(opts.Level); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) parseWeapons(names []string) map[component.Weapon]bool {
	owned := map[component.Weapon]bool{}
	for _, name := range names {
		wpn, ok := component.ParseWeapon(name)
		if !ok {
			s.logger.Warn().Str("weapon", name).Msg("unknown starting weapon ignored")
			continue
		}
		owned[wpn] = true
	}
	return owned
}

// ReloadPrefabs marks the prefab data stale. The next level load, including a
// respawn, re-reads it.
func (s *Session) ReloadPrefabs() {
	s.stale = true
}

// LoadLevel replaces the world with a fresh build of level n. Out of range
// indices fall back to the first level.
func (s *Session) LoadLevel(n int) error {
	if n < 0 || n >= levels.Count() {
		s.logger.Warn().Int("level", n).Msg("unknown level, loading level 0")
		n = 0
	}
	lvl, err := levels.Load(n)
	if err != nil {
		return fmt.Errorf("session: load level %d: %w", n, err)
	}
	if s.stale {
		pf, errs := entity.LoadPrefabs()
		for _, err := range errs {
			s.logger.Warn().Err(err).Msg("prefab load failed, using defaults")
		}
		s.prefabs = pf
		s.stale = false
	}

	w := ecs.NewWorld()
	w.SetLogger(s.logger.With().Int("level", n).Logger())
	w.SetRNG(s.rng)
	if s.opts.Sound != nil {
		w.SetSoundSink(s.opts.Sound)
	}
	player, err := entity.LoadLevelToWorld(w, lvl, s.prefabs, s.owned)
	if err != nil {
		return fmt.Errorf("session: load level %d: %w", n, err)
	}

	s.level = n
	s.lvl = lvl
	s.world = w
	s.player = player
	s.scheduler = system.NewGameScheduler()
	s.help = false
	return nil
}

// Update applies one tick of intents and returns the events the world raised.
// While the help overlay is up the simulation is paused.
func (s *Session) Update(in component.Input) []ecs.Event {
	if s.done || s.world == nil {
		return nil
	}
	if in.Help {
		s.help = !s.help
	}
	if s.help {
		return nil
	}
	if input, ok := ecs.Get(s.world, s.player, component.InputComponent.Kind()); ok {
		*input = in
		input.Help = false
	}

	s.scheduler.Update(s.world)
	events := s.world.Events().Drain()

	var exited, defeated, respawn bool
	for _, evt := range events {
		switch evt.Type {
		case ecs.EventLevelExit:
			exited = true
		case ecs.EventBossDefeated:
			defeated = true
		case ecs.EventRespawn:
			respawn = true
		}
	}

	switch {
	case defeated:
		s.finish(true)
	case exited:
		s.advance()
	case respawn:
		s.respawn()
	}
	return events
}

func (s *Session) advance() {
	s.syncOwned()
	next := s.level + 1
	if next >= levels.Count() {
		s.finish(true)
		return
	}
	if err := s.LoadLevel(next); err != nil {
		s.logger.Error().Err(err).Int("level", next).Msg("level transition failed")
		s.finish(false)
	}
}

// respawn rebuilds the current level around a fresh player that keeps the
// weapons the fallen one owned. A wave fight resumes at the wave it was on.
func (s *Session) respawn() {
	s.syncOwned()
	resumeAt, complete := s.waveProgress()
	if err := s.LoadLevel(s.level); err != nil {
		s.logger.Error().Err(err).Int("level", s.level).Msg("respawn failed")
		s.finish(false)
		return
	}
	s.resumeWaves(resumeAt, complete)
	s.logger.Info().Int("level", s.level).Int("wave", resumeAt).Msg("player respawned")
}

func (s *Session) syncOwned() {
	p, ok := ecs.Get(s.world, s.player, component.PlayerComponent.Kind())
	if !ok {
		return
	}
	owned := make(map[component.Weapon]bool, len(p.Owned))
	for wpn, has := range p.Owned {
		if has {
			owned[wpn] = true
		}
	}
	s.owned = owned
}

func (s *Session) director() (*component.WaveDirector, bool) {
	e, ok := ecs.First(s.world, component.WaveDirectorComponent.Kind())
	if !ok {
		return nil, false
	}
	d, ok := ecs.Get(s.world, e, component.WaveDirectorComponent.Kind())
	return d, ok && d.Orchestrator != nil
}

// waveProgress reports the wave a respawn should resume at, or whether the
// whole defense was already won.
func (s *Session) waveProgress() (int, bool) {
	d, ok := s.director()
	if !ok {
		return 0, false
	}
	switch d.Orchestrator.State() {
	case wave.Idle:
		return 0, false
	case wave.Complete:
		return 0, true
	}
	return d.Orchestrator.CurrentWave(), false
}

func (s *Session) resumeWaves(n int, complete bool) {
	d, ok := s.director()
	if !ok {
		return
	}
	if complete {
		d.TriggerR = 0
		d.Rewarded = true
		system.OpenGate(s.world, d.PuzzleGate)
		system.OpenGate(s.world, d.ExitGate)
		return
	}
	if n <= 0 || !d.Orchestrator.ResumeAt(n) {
		return
	}
	if after := s.prefabs.Waves.PuzzleAfter; after > 0 && n > after {
		system.OpenGate(s.world, d.PuzzleGate)
	}
}

// SetStartingWeapons replaces the owned weapon set, including the current
// player's. Unknown names are ignored.
func (s *Session) SetStartingWeapons(weapons map[string]bool) {
	names := make([]string, 0, len(weapons))
	for name, on := range weapons {
		if on {
			names = append(names, name)
		}
	}
	s.owned = s.parseWeapons(names)
	p, ok := ecs.Get(s.world, s.player, component.PlayerComponent.Kind())
	if !ok {
		return
	}
	p.Owned = map[component.Weapon]bool{}
	for wpn := range s.owned {
		p.Owned[wpn] = true
	}
	if !p.Owned[p.Weapon] {
		p.Weapon = ""
		for _, wpn := range component.WeaponOrder {
			if p.Owned[wpn] {
				p.Weapon = wpn
				break
			}
		}
	}
	if p.Weapon == "" {
		system.GrantWeapon(p, component.WeaponSword)
	}
}

// Forfeit ends the session as a loss.
func (s *Session) Forfeit() {
	s.finish(false)
}

func (s *Session) finish(won bool) {
	if s.done {
		return
	}
	s.done = true
	s.won = won
	s.logger.Info().Bool("won", won).Int("level", s.level).Msg("session complete")
	if s.opts.OnComplete != nil {
		s.opts.OnComplete(won)
	}
}

func (s *Session) HelpVisible() bool { return s.help }

// Done reports whether the session has ended and, if so, whether it was won.
func (s *Session) Done() (done, won bool) { return s.done, s.won }

func (s *Session) World() *ecs.World { return s.world }

func (s *Session) Player() ecs.Entity { return s.player }

// Level is the index of the level being played.
func (s *Session) Level() int { return s.level }

func (s *Session) LevelData() *levels.Level { return s.lvl }
