package graphics

import (
	"image"
	"testing"
	"time"
)

func walkSet(t *testing.T) *AnimationSet {
	t.Helper()
	set := NewAnimationSet()
	if err := RegisterWalkAnimations(set); err != nil {
		t.Fatalf("register walk animations: %v", err)
	}
	return set
}

func TestRegisterWalkAnimations(t *testing.T) {
	set := walkSet(t)

	want := map[string][2]int{
		WalkUp:    {4, 7},
		WalkRight: {8, 11},
		WalkDown:  {12, 15},
		WalkLeft:  {16, 19},
	}
	for key, frames := range want {
		def, ok := set.Get(key)
		if !ok {
			t.Fatalf("%s not registered", key)
		}
		if def.Start != frames[0] || def.End != frames[1] {
			t.Errorf("%s: expected frames %v, got %d-%d", key, frames, def.Start, def.End)
		}
		if def.FrameRate != 7 || def.Repeat != RepeatForever {
			t.Errorf("%s: expected 7fps looping, got %v fps repeat %d", key, def.FrameRate, def.Repeat)
		}
	}

	if err := RegisterWalkAnimations(set); err == nil {
		t.Errorf("expected duplicate registration to fail")
	}
}

func TestAnimationSetValidation(t *testing.T) {
	bad := []AnimationDef{
		{Key: "", Start: 0, End: 1, FrameRate: 1},
		{Key: "range", Start: 3, End: 1, FrameRate: 1},
		{Key: "rate", Start: 0, End: 1},
		{Key: "repeat", Start: 0, End: 1, FrameRate: 1, Repeat: -2},
	}
	for _, def := range bad {
		if err := NewAnimationSet().Create(def); err == nil {
			t.Errorf("expected %+v to be rejected", def)
		}
	}
}

func TestAnimationPlayerLoops(t *testing.T) {
	p := NewAnimationPlayer(walkSet(t), 12)

	if !p.Play(WalkUp) {
		t.Fatalf("Play(walk_up) failed")
	}
	if p.Frame() != 4 {
		t.Fatalf("expected first frame 4, got %d", p.Frame())
	}

	// 7 fps: one frame every ~142.9ms
	frameTime := time.Second / 7
	expected := []int{5, 6, 7, 4, 5}
	for i, want := range expected {
		p.Update(frameTime + time.Millisecond)
		if p.Frame() != want {
			t.Fatalf("step %d: expected frame %d, got %d", i, want, p.Frame())
		}
	}

	// Replaying the same key keeps the cycle position
	p.Play(WalkUp)
	if p.Frame() != 5 {
		t.Errorf("expected replay to keep frame 5, got %d", p.Frame())
	}

	p.SetFrame(4)
	if p.IsPlaying() || p.Current() != "" || p.Frame() != 4 {
		t.Errorf("SetFrame should stop on frame 4, got playing=%v frame=%d", p.IsPlaying(), p.Frame())
	}
	p.Update(time.Second)
	if p.Frame() != 4 {
		t.Errorf("stopped animation must not advance")
	}
}

func TestAnimationPlayerFiniteRepeat(t *testing.T) {
	set := NewAnimationSet()
	if err := set.Create(AnimationDef{Key: "blink", Start: 0, End: 1, FrameRate: 10, Repeat: 1}); err != nil {
		t.Fatal(err)
	}
	p := NewAnimationPlayer(set, 0)
	p.Play("blink")
	p.Update(250 * time.Millisecond)
	if !p.IsPlaying() || p.Frame() != 0 {
		t.Fatalf("expected second pass at frame 0, got playing=%v frame=%d", p.IsPlaying(), p.Frame())
	}
	p.Update(200 * time.Millisecond)
	if p.IsPlaying() || p.Frame() != 1 {
		t.Errorf("expected to stop on last frame, got playing=%v frame=%d", p.IsPlaying(), p.Frame())
	}
	if p.Play("unknown") {
		t.Errorf("unknown animation should not play")
	}
}

func TestFrameRect(t *testing.T) {
	sheet := image.Rect(0, 0, 64, 48) // 4 columns x 3 rows of 16px
	tests := []struct {
		frame int
		want  image.Rectangle
		ok    bool
	}{
		{0, image.Rect(0, 0, 16, 16), true},
		{3, image.Rect(48, 0, 64, 16), true},
		{5, image.Rect(16, 16, 32, 32), true},
		{11, image.Rect(48, 32, 64, 48), true},
		{12, image.Rectangle{}, false},
		{-1, image.Rectangle{}, false},
	}
	for _, tt := range tests {
		got, ok := FrameRect(tt.frame, sheet, 16, 16)
		if ok != tt.ok || got != tt.want {
			t.Errorf("frame %d: expected %v/%v, got %v/%v", tt.frame, tt.want, tt.ok, got, ok)
		}
	}
}
