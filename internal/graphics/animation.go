package graphics

import (
	"fmt"
	"time"
)

// Animation keys for the four walk cycles on the tileset sheet.
const (
	WalkUp    = "walk_up"
	WalkRight = "walk_right"
	WalkDown  = "walk_down"
	WalkLeft  = "walk_left"
)

// RepeatForever makes an animation loop until stopped.
const RepeatForever = -1

const walkFrameRate = 7

// AnimationDef describes a run of consecutive sheet frames.
// Repeat is the number of extra plays after the first, or RepeatForever.
type AnimationDef struct {
	Key       string
	Start     int
	End       int
	FrameRate float64
	Repeat    int
}

func (d AnimationDef) frameCount() int {
	return d.End - d.Start + 1
}

// AnimationSet is a registry of animations by key.
type AnimationSet struct {
	defs map[string]AnimationDef
}

func NewAnimationSet() *AnimationSet {
	return &AnimationSet{defs: make(map[string]AnimationDef)}
}

// Create registers def under def.Key.
func (s *AnimationSet) Create(def AnimationDef) error {
	if def.Key == "" {
		return fmt.Errorf("animation needs a key")
	}
	if def.Start < 0 || def.End < def.Start {
		return fmt.Errorf("animation %q: invalid frame range %d-%d", def.Key, def.Start, def.End)
	}
	if def.FrameRate <= 0 {
		return fmt.Errorf("animation %q: frame rate must be positive", def.Key)
	}
	if def.Repeat < RepeatForever {
		return fmt.Errorf("animation %q: invalid repeat %d", def.Key, def.Repeat)
	}
	if _, exists := s.defs[def.Key]; exists {
		return fmt.Errorf("animation %q already registered", def.Key)
	}
	s.defs[def.Key] = def
	return nil
}

func (s *AnimationSet) Get(key string) (AnimationDef, bool) {
	def, ok := s.defs[key]
	return def, ok
}

// RegisterWalkAnimations adds the four looping walk cycles of the tileset sheet.
func RegisterWalkAnimations(s *AnimationSet) error {
	walks := []AnimationDef{
		{Key: WalkUp, Start: 4, End: 7},
		{Key: WalkRight, Start: 8, End: 11},
		{Key: WalkDown, Start: 12, End: 15},
		{Key: WalkLeft, Start: 16, End: 19},
	}
	for _, def := range walks {
		def.FrameRate = walkFrameRate
		def.Repeat = RepeatForever
		if err := s.Create(def); err != nil {
			return err
		}
	}
	return nil
}

// AnimationPlayer steps one animation at a time for a single sprite.
type AnimationPlayer struct {
	set     *AnimationSet
	current AnimationDef
	elapsed time.Duration
	playing bool
	frame   int
}

func NewAnimationPlayer(set *AnimationSet, initialFrame int) *AnimationPlayer {
	return &AnimationPlayer{set: set, frame: initialFrame}
}

// Play starts the animation called key. Playing the animation that is
// already running keeps its position in the cycle.
func (p *AnimationPlayer) Play(key string) bool {
	if p.playing && p.current.Key == key {
		return true
	}
	def, ok := p.set.Get(key)
	if !ok {
		return false
	}
	p.current = def
	p.elapsed = 0
	p.playing = true
	p.frame = def.Start
	return true
}

// Stop halts playback on the current frame.
func (p *AnimationPlayer) Stop() {
	p.playing = false
}

// SetFrame stops playback and shows frame.
func (p *AnimationPlayer) SetFrame(frame int) {
	p.playing = false
	p.frame = frame
}

// Update advances playback by dt.
func (p *AnimationPlayer) Update(dt time.Duration) {
	if !p.playing || dt <= 0 {
		return
	}
	p.elapsed += dt

	count := p.current.frameCount()
	step := int(p.elapsed.Seconds() * p.current.FrameRate)
	if p.current.Repeat != RepeatForever && step >= count*(p.current.Repeat+1) {
		p.frame = p.current.End
		p.playing = false
		return
	}
	p.frame = p.current.Start + step%count
}

func (p *AnimationPlayer) Frame() int {
	return p.frame
}

func (p *AnimationPlayer) IsPlaying() bool {
	return p.playing
}

// Current returns the key of the running animation, or "" when stopped.
func (p *AnimationPlayer) Current() string {
	if !p.playing {
		return ""
	}
	return p.current.Key
}
