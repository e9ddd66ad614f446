package terminal

import (
	"time"

	"gridwalk/internal/config"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

// Audio plays short sine tones for movement feedback.
type Audio struct {
	enabled    bool
	sampleRate beep.SampleRate
	cfg        config.AudioConfig
}

// NewAudio initializes the speaker. On failure it returns a muted Audio
// alongside the error, so callers can keep running without sound.
func NewAudio(cfg config.AudioConfig) (*Audio, error) {
	a := &Audio{sampleRate: beep.SampleRate(cfg.SampleRate), cfg: cfg}
	if !cfg.Enabled {
		return a, nil
	}
	if err := speaker.Init(a.sampleRate, a.sampleRate.N(time.Second/10)); err != nil {
		return a, err
	}
	a.enabled = true
	return a, nil
}

// Muted returns an Audio that never plays anything.
func Muted() *Audio {
	return &Audio{}
}

func (a *Audio) Enabled() bool {
	return a.enabled
}

// PlayStep plays the tick for a completed move.
func (a *Audio) PlayStep() {
	a.playTone(a.cfg.StepFrequency)
}

// PlayBump plays the low tone for a blocked move.
func (a *Audio) PlayBump() {
	a.playTone(a.cfg.BumpFrequency)
}

func (a *Audio) playTone(freq float64) {
	if !a.enabled {
		return
	}
	sine, err := generators.SineTone(a.sampleRate, freq)
	if err != nil {
		return
	}
	duration := a.sampleRate.N(time.Duration(a.cfg.ToneMs) * time.Millisecond)
	speaker.Play(beep.Take(duration, sine))
}

func (a *Audio) Close() {
	if a.enabled {
		speaker.Close()
		a.enabled = false
	}
}
