package test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"gridwalk/internal/character"
	"gridwalk/internal/config"
	"gridwalk/internal/graphics"
	"gridwalk/internal/gridphysics"
	"gridwalk/internal/world"
)

const frame = time.Second / 60

type session struct {
	m       *world.LayeredMap
	player  *character.Player
	physics *gridphysics.GridPhysics
	blocked int
}

// newSession wires config, tiles, map, player and physics the way the binaries do.
func newSession(t *testing.T, mapKey string) *session {
	t.Helper()
	cfg := config.GlobalConfig
	if cfg == nil {
		t.Fatal("GlobalConfig not loaded")
	}

	tm := world.NewTileManager()
	if err := tm.LoadTileConfig(filepath.Join("..", cfg.World.TilesFile)); err != nil {
		t.Fatalf("failed to load tiles: %v", err)
	}
	m, err := world.NewMapLoader(tm).LoadMap(filepath.Join("..", cfg.World.MapsFile), mapKey)
	if err != nil {
		t.Fatalf("failed to load map %q: %v", mapKey, err)
	}

	anims := graphics.NewAnimationSet()
	if err := graphics.RegisterWalkAnimations(anims); err != nil {
		t.Fatal(err)
	}
	s := &session{m: m}
	s.player = character.NewPlayer(m.StartX, m.StartY, m.TileSize, anims)
	s.physics = gridphysics.NewGridPhysicsWithSpeed(s.player, m, m.TileSize, cfg.GetTilesPerSecond())
	s.player.Follow(s.physics)
	s.physics.OnBlocked(func(gridphysics.Direction) { s.blocked++ })
	return s
}

// hold presses dir every frame for d, as a held key would.
func (s *session) hold(dir gridphysics.Direction, d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += frame {
		s.physics.MovePlayer(dir)
		s.physics.Update(frame)
		s.player.Tick(frame)
	}
}

// walk presses dir once and lets the move finish.
func (s *session) walk(dir gridphysics.Direction) {
	s.physics.MovePlayer(dir)
	for i := 0; i < 120 && s.physics.IsMoving(); i++ {
		s.physics.Update(frame)
		s.player.Tick(frame)
	}
}

func TestTownWalkthrough(t *testing.T) {
	s := newSession(t, "town")

	if tx, ty := s.player.GetTilePos(); tx != 2 || ty != 2 {
		t.Fatalf("expected start tile (2,2), got (%d,%d)", tx, ty)
	}
	if got := s.physics.SpeedPixelsPerSecond(); got != 96 {
		t.Fatalf("expected 96px/s from config, got %d", got)
	}

	t.Run("walk right along the path", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			s.walk(gridphysics.Right)
		}
		if tx, ty := s.player.GetTilePos(); tx != 5 || ty != 2 {
			t.Errorf("expected (5,2), got (%d,%d)", tx, ty)
		}
		if x, y := s.player.GetPosition(); x != 160 || y != 64 {
			t.Errorf("expected exact tile alignment at (160,64), got (%v,%v)", x, y)
		}
	})

	t.Run("water on the ground layer blocks", func(t *testing.T) {
		s.walk(gridphysics.Down)
		if tx, ty := s.player.GetTilePos(); tx != 5 || ty != 3 {
			t.Fatalf("expected (5,3), got (%d,%d)", tx, ty)
		}
		before := s.blocked
		s.walk(gridphysics.Down)
		if tx, ty := s.player.GetTilePos(); tx != 5 || ty != 3 {
			t.Errorf("expected water at (5,4) to block, got (%d,%d)", tx, ty)
		}
		if s.blocked != before+1 {
			t.Errorf("expected one blocked request, got %d", s.blocked-before)
		}
	})

	t.Run("holding a key stops at the border wall", func(t *testing.T) {
		s.hold(gridphysics.Up, 3*time.Second)
		if tx, ty := s.player.GetTilePos(); tx != 5 || ty != 1 {
			t.Errorf("expected to stop below the wall at (5,1), got (%d,%d)", tx, ty)
		}
		if s.physics.IsMoving() || s.physics.TileSizePixelsWalked() != 0 {
			t.Errorf("expected idle with no progress against the wall")
		}
		if s.player.IsWalking() || s.player.Facing() != gridphysics.Up {
			t.Errorf("expected player standing and facing up")
		}
	})
}

func TestMeadowRoundTrip(t *testing.T) {
	s := newSession(t, "meadow")
	startX, startY := s.player.GetTilePos()

	// The tiles around the start are open, the bridge above included
	trips := [][2]gridphysics.Direction{
		{gridphysics.Up, gridphysics.Down},
		{gridphysics.Down, gridphysics.Up},
		{gridphysics.Left, gridphysics.Right},
		{gridphysics.Right, gridphysics.Left},
	}
	for _, trip := range trips {
		s.walk(trip[0])
		s.walk(trip[1])
	}
	if tx, ty := s.player.GetTilePos(); tx != startX || ty != startY {
		t.Errorf("expected to return to (%d,%d), got (%d,%d)", startX, startY, tx, ty)
	}
}

func TestUnknownMapKey(t *testing.T) {
	cfg := config.GlobalConfig
	tm := world.NewTileManager()
	if err := tm.LoadTileConfig(filepath.Join("..", cfg.World.TilesFile)); err != nil {
		t.Fatalf("failed to load tiles: %v", err)
	}
	_, err := world.NewMapLoader(tm).LoadMap(filepath.Join("..", cfg.World.MapsFile), "nowhere")
	if !errors.Is(err, world.ErrUnknownMap) {
		t.Errorf("expected ErrUnknownMap, got %v", err)
	}
}
