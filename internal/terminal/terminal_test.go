package terminal

import (
	"testing"
	"time"

	"gridwalk/internal/config"
	"gridwalk/internal/gridphysics"
	"gridwalk/internal/world"

	"github.com/gdamore/tcell/v2"
)

func testMap(t *testing.T) *world.LayeredMap {
	t.Helper()
	tm := world.NewTileManager()
	err := tm.LoadTileData(map[string]config.TileData{
		"grass": {Letter: "g", Color: [3]int{70, 150, 60}},
		"rock":  {Letter: "R", Collides: true},
	})
	if err != nil {
		t.Fatalf("load tiles: %v", err)
	}
	m := world.NewLayeredMap(5, 5, 32)
	m.StartX, m.StartY = 2, 2
	if _, err := m.AddLayer("ground"); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if err := m.SetTile(x, y, "ground", tm.GetTile("grass")); err != nil {
				t.Fatal(err)
			}
		}
	}
	if err := m.SetTile(2, 1, "ground", tm.GetTile("rock")); err != nil {
		t.Fatal(err)
	}
	return m
}

func TestKeyDirection(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want gridphysics.Direction
	}{
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), gridphysics.Up},
		{tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), gridphysics.Down},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), gridphysics.Left},
		{tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), gridphysics.Right},
		{tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), gridphysics.Up},
		{tcell.NewEventKey(tcell.KeyRune, 'D', tcell.ModNone), gridphysics.Right},
		{tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), gridphysics.None},
	}
	for _, tt := range tests {
		if got := keyDirection(tt.ev); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.ev.Name(), tt.want, got)
		}
	}

	if !isQuitKey(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Errorf("expected q to quit")
	}
	if !isQuitKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Errorf("expected Escape to quit")
	}
	if isQuitKey(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone)) {
		t.Errorf("w must not quit")
	}
}

func TestHandleEventDrivesPhysics(t *testing.T) {
	g, err := NewGame(nil, config.DefaultConfig(), testMap(t), nil)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}

	// Rock above the start tile blocks the move
	if !g.handleEvent(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone)) {
		t.Fatalf("up must not quit")
	}
	if g.physics.IsMoving() {
		t.Errorf("expected move into the rock to be blocked")
	}

	g.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone))
	if g.physics.MovementDirection() != gridphysics.Left {
		t.Fatalf("expected to walk left")
	}

	// Real-time ticks of uneven length
	for _, dt := range []time.Duration{17, 15, 40, 16, 90, 33, 16, 120} {
		g.tick(dt * time.Millisecond)
	}
	if x, y := g.player.GetPosition(); x != 32 || y != 64 {
		t.Errorf("expected (32,64) after landing, got (%v,%v)", x, y)
	}
	if g.player.IsWalking() {
		t.Errorf("expected player standing after landing")
	}
	if cx, cy := g.playerCell(); cx != 1 || cy != 2 {
		t.Errorf("expected player cell (1,2), got (%d,%d)", cx, cy)
	}

	if g.handleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)) {
		t.Errorf("expected Ctrl-C to quit")
	}
}

func TestViewOrigin(t *testing.T) {
	m := world.NewLayeredMap(40, 20, 32)

	if x, y := viewOrigin(2, 2, 20, 10, m); x != 0 || y != 0 {
		t.Errorf("expected (0,0), got (%d,%d)", x, y)
	}
	if x, y := viewOrigin(20, 10, 20, 10, m); x != 10 || y != 5 {
		t.Errorf("expected (10,5), got (%d,%d)", x, y)
	}
	if x, y := viewOrigin(39, 19, 20, 10, m); x != 20 || y != 10 {
		t.Errorf("expected (20,10), got (%d,%d)", x, y)
	}
	if x, _ := viewOrigin(5, 5, 60, 10, m); x != -10 {
		t.Errorf("expected narrow map centered at -10, got %d", x)
	}
}

func TestTileCell(t *testing.T) {
	if r, _ := tileCell(nil); r != ' ' {
		t.Errorf("expected blank for void, got %q", r)
	}
	rock := &world.Tile{Letter: 'R', Properties: world.TileProperties{Collides: true}}
	if r, _ := tileCell(rock); r != 'R' {
		t.Errorf("expected colliding tiles to show their letter, got %q", r)
	}
	if r, _ := tileCell(&world.Tile{Letter: 'g'}); r != ' ' {
		t.Errorf("expected walkable tiles to be blank, got %q", r)
	}
}

func TestMutedAudio(t *testing.T) {
	a, err := NewAudio(config.AudioConfig{Enabled: false, SampleRate: 44100})
	if err != nil {
		t.Fatalf("NewAudio: %v", err)
	}
	if a.Enabled() {
		t.Errorf("expected disabled audio")
	}
	a.PlayStep()
	a.PlayBump()
	a.Close()
}
