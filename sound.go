package main

import (
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/ironkeep/assets"
	"github.com/rs/zerolog"
)

// SoundBank plays named cues from the simulation. Players are created on
// first use and reused; a cue already playing is not restarted.
type SoundBank struct {
	players map[string]*audio.Player
	volume  float64
	logger  zerolog.Logger
}

func NewSoundBank(logger zerolog.Logger) *SoundBank {
	return &SoundBank{
		players: make(map[string]*audio.Player),
		volume:  0.6,
		logger:  logger,
	}
}

func (b *SoundBank) Play(name string) {
	player, ok := b.players[name]
	if !ok {
		var err error
		player, err = assets.LoadAudioPlayer(name)
		if err != nil {
			b.logger.Warn().Err(err).Str("cue", name).Msg("sound unavailable")
		}
		b.players[name] = player
	}
	if player == nil || player.IsPlaying() {
		return
	}
	player.SetVolume(b.volume)
	if err := player.Rewind(); err != nil {
		return
	}
	player.Play()
}
