package game

import (
	"fmt"
	"log"
	"time"

	"gridwalk/internal/character"
	"gridwalk/internal/config"
	"gridwalk/internal/graphics"
	"gridwalk/internal/gridphysics"
	"gridwalk/internal/monitoring"
	"gridwalk/internal/world"
)

// Game is the ebiten frontend: one player walking a layered tile map.
type Game struct {
	config  *config.Config
	world   *world.LayeredMap
	tiles   *world.TileManager
	player  *character.Player
	physics *gridphysics.GridPhysics
	sprites *graphics.SpriteManager
	input   *InputHandler
	camera  *Camera
	monitor *monitoring.FrameMonitor

	// UI state
	showDebug bool
	blocked   int // blocked move requests, shown in the debug overlay
	perf      perfWatch
}

// NewGame wires a player and its grid physics onto m. tiles is the manager
// m was loaded with; the debug overlay edits its definitions.
func NewGame(cfg *config.Config, m *world.LayeredMap, tiles *world.TileManager) (*Game, error) {
	input, err := NewInputHandler(cfg.GetKeyBindings())
	if err != nil {
		return nil, fmt.Errorf("failed to set up input: %w", err)
	}

	anims := graphics.NewAnimationSet()
	if err := graphics.RegisterWalkAnimations(anims); err != nil {
		return nil, err
	}

	player := character.NewPlayer(m.StartX, m.StartY, m.TileSize, anims)
	physics := gridphysics.NewGridPhysicsWithSpeed(player, m, m.TileSize, cfg.GetTilesPerSecond())
	player.Follow(physics)

	g := &Game{
		config:  cfg,
		world:   m,
		tiles:   tiles,
		player:  player,
		physics: physics,
		sprites: graphics.NewSpriteManager(),
		input:   input,
		camera:  &Camera{},
		monitor: monitoring.NewFrameMonitor(),
	}
	physics.OnBlocked(func(gridphysics.Direction) { g.blocked++ })
	if !g.sprites.HasSprite(cfg.Graphics.Tileset) {
		log.Printf("Warning: tileset %q not found, drawing flat colors", cfg.Graphics.Tileset)
	}
	g.followPlayer()
	return g, nil
}

// step runs one frame of game logic for the requested direction.
func (g *Game) step(dir gridphysics.Direction, dt time.Duration) {
	g.physics.MovePlayer(dir)
	g.physics.Update(dt)
	g.player.Tick(dt)
	g.followPlayer()
}

func (g *Game) followPlayer() {
	x, y := g.player.GetPosition()
	half := float64(g.world.TileSize) / 2
	g.camera.CenterOn(x+half, y+half, g.world, g.config.GetScreenWidth(), g.config.GetScreenHeight())
}

// toggleCollisionAhead flips the collides flag of the top tile in front of
// the player. The change applies to every cell using that tile definition.
func (g *Game) toggleCollisionAhead() bool {
	tx, ty := g.player.GetTilePos()
	dx, dy := g.player.Facing().Vector()
	tile := g.world.TopTileAt(tx+dx, ty+dy)
	if tile == nil {
		return false
	}
	collides := !g.tiles.IsColliding(tile.Key)
	if err := g.tiles.SetTileProperty(tile.Key, "collides", collides); err != nil {
		log.Printf("Warning: failed to toggle collision: %v", err)
		return false
	}
	log.Printf("Debug: tile %q collides=%v", tile.Key, collides)
	return true
}

func (g *Game) Player() *character.Player {
	return g.player
}

func (g *Game) Physics() *gridphysics.GridPhysics {
	return g.physics
}
