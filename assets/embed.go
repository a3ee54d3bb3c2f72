package assets

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

const sampleRate = 44100

var audioContext = audio.NewContext(sampleRate)

// SoundDir is searched for <cue>.wav before falling back to a generated tone.
var SoundDir = filepath.Join("assets", "sounds")

type toneSpec struct {
	freq   float64
	slide  float64
	millis int
	volume float64
}

var cueTones = map[string]toneSpec{
	"swing":        {freq: 520, slide: -200, millis: 60, volume: 0.25},
	"hit":          {freq: 220, slide: -80, millis: 70, volume: 0.35},
	"block":        {freq: 880, millis: 50, volume: 0.3},
	"immune":       {freq: 990, millis: 40, volume: 0.25},
	"hurt":         {freq: 160, slide: -60, millis: 120, volume: 0.4},
	"enemydeath":   {freq: 300, slide: -240, millis: 180, volume: 0.35},
	"playerdeath":  {freq: 200, slide: -160, millis: 500, volume: 0.45},
	"pickup":       {freq: 660, slide: 330, millis: 90, volume: 0.3},
	"switch":       {freq: 440, millis: 30, volume: 0.2},
	"shoot":        {freq: 700, slide: -300, millis: 50, volume: 0.2},
	"charge":       {freq: 180, slide: 240, millis: 200, volume: 0.3},
	"cleave":       {freq: 260, slide: -180, millis: 140, volume: 0.35},
	"fireball":     {freq: 150, slide: 90, millis: 220, volume: 0.3},
	"pound":        {freq: 70, slide: -20, millis: 260, volume: 0.45},
	"summon":       {freq: 250, slide: 250, millis: 300, volume: 0.3},
	"teleport":     {freq: 900, slide: -700, millis: 120, volume: 0.25},
	"talk":         {freq: 500, millis: 25, volume: 0.15},
	"spikes":       {freq: 400, slide: -200, millis: 80, volume: 0.3},
	"firevent":     {freq: 120, slide: 60, millis: 160, volume: 0.3},
	"gate":         {freq: 110, slide: 110, millis: 400, volume: 0.4},
	"rotate":       {freq: 600, millis: 30, volume: 0.2},
	"puzzle":       {freq: 523, slide: 261, millis: 350, volume: 0.35},
	"rune":         {freq: 784, millis: 80, volume: 0.3},
	"runewrong":    {freq: 140, millis: 160, volume: 0.35},
	"horn":         {freq: 196, millis: 600, volume: 0.35},
	"wavestart":    {freq: 262, slide: 130, millis: 250, volume: 0.3},
	"wavecleared":  {freq: 392, slide: 196, millis: 300, volume: 0.3},
	"fanfare":      {freq: 523, slide: 523, millis: 700, volume: 0.35},
	"exit":         {freq: 330, slide: 330, millis: 300, volume: 0.3},
	"bossroar":     {freq: 90, slide: -30, millis: 700, volume: 0.5},
	"bossphase":    {freq: 120, slide: 60, millis: 400, volume: 0.45},
	"bossrage":     {freq: 100, slide: 80, millis: 500, volume: 0.45},
	"bosshit":      {freq: 180, slide: -60, millis: 80, volume: 0.35},
	"bossdeath":    {freq: 80, slide: -50, millis: 900, volume: 0.5},
	"barrierhit":   {freq: 1100, slide: -300, millis: 60, volume: 0.3},
	"barrierbreak": {freq: 1400, slide: -1100, millis: 260, volume: 0.4},
	"slamwindup":   {freq: 90, slide: 60, millis: 300, volume: 0.35},
	"slam":         {freq: 60, slide: -30, millis: 300, volume: 0.5},
	"powercharge":  {freq: 200, slide: 600, millis: 500, volume: 0.35},
	"powerblast":   {freq: 90, slide: -60, millis: 400, volume: 0.5},
	"meteorcall":   {freq: 300, slide: -150, millis: 400, volume: 0.35},
	"meteor":       {freq: 80, slide: -40, millis: 450, volume: 0.5},
	"orb":          {freq: 660, slide: -220, millis: 180, volume: 0.3},
	"crack":        {freq: 1200, slide: -900, millis: 200, volume: 0.35},
	"eruption":     {freq: 70, slide: 40, millis: 800, volume: 0.5},
	"explosion":    {freq: 60, slide: -40, millis: 900, volume: 0.55},
	"afterglow":    {freq: 330, slide: 110, millis: 900, volume: 0.25},
	"victory":      {freq: 523, slide: 784, millis: 1200, volume: 0.35},
	"defaultsound": {freq: 440, millis: 60, volume: 0.2},
}

// LoadAudioPlayer returns a player for a named sound cue. A wav file in
// SoundDir wins; otherwise a short tone is generated for the cue.
func LoadAudioPlayer(cue string) (*audio.Player, error) {
	path := filepath.Join(SoundDir, cue+".wav")
	if b, err := os.ReadFile(path); err == nil {
		stream, err := wav.DecodeWithSampleRate(audioContext.SampleRate(), bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("decode wav %q: %w", path, err)
		}
		return audioContext.NewPlayer(stream)
	}

	spec, ok := cueTones[cue]
	if !ok {
		spec = cueTones["defaultsound"]
	}
	return audioContext.NewPlayerFromBytes(tone(spec)), nil
}

// tone renders a decaying square-ish wave as 16-bit little-endian stereo PCM.
func tone(spec toneSpec) []byte {
	n := sampleRate * spec.millis / 1000
	buf := make([]byte, n*4)
	phase := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n)
		freq := spec.freq + spec.slide*t
		phase += 2 * math.Pi * freq / sampleRate
		v := math.Sin(phase) + 0.3*math.Sin(3*phase)
		v *= spec.volume * (1 - t) * (1 - t)
		s := int16(math.Max(-1, math.Min(1, v)) * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(s))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(s))
	}
	return buf
}
