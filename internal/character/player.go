package character

import (
	"math"
	"time"

	"gridwalk/internal/graphics"
	"gridwalk/internal/gridphysics"
)

// StandingFrameDown is the sheet frame shown before the player first moves.
const StandingFrameDown = 12

var walkAnimationKeys = map[gridphysics.Direction]string{
	gridphysics.Up:    graphics.WalkUp,
	gridphysics.Right: graphics.WalkRight,
	gridphysics.Down:  graphics.WalkDown,
	gridphysics.Left:  graphics.WalkLeft,
}

// Standing frames are the first frame of each walk cycle.
var standingFrames = map[gridphysics.Direction]int{
	gridphysics.Up:    4,
	gridphysics.Right: 8,
	gridphysics.Down:  StandingFrameDown,
	gridphysics.Left:  16,
}

// Player is the sprite moved around the grid. Its position is the pixel
// coordinate of the sprite's top-left corner.
type Player struct {
	x, y     float64
	tileSize int

	facing  gridphysics.Direction
	walking bool
	anim    *graphics.AnimationPlayer
}

// NewPlayer places a player on the given start tile, facing down.
func NewPlayer(startTileX, startTileY, tileSize int, anims *graphics.AnimationSet) *Player {
	if anims == nil {
		anims = graphics.NewAnimationSet()
	}
	return &Player{
		x:        float64(startTileX * tileSize),
		y:        float64(startTileY * tileSize),
		tileSize: tileSize,
		facing:   gridphysics.Down,
		anim:     graphics.NewAnimationPlayer(anims, StandingFrameDown),
	}
}

// GetTilePos returns the grid cell holding the sprite's top-left corner.
func (p *Player) GetTilePos() (int, int) {
	ts := float64(p.tileSize)
	return int(math.Floor(p.x / ts)), int(math.Floor(p.y / ts))
}

func (p *Player) GetPosition() (float64, float64) {
	return p.x, p.y
}

func (p *Player) SetPosition(x, y float64) {
	p.x, p.y = x, y
}

func (p *Player) Facing() gridphysics.Direction {
	return p.facing
}

func (p *Player) IsWalking() bool {
	return p.walking
}

// StartWalking turns towards dir and plays its walk cycle.
func (p *Player) StartWalking(dir gridphysics.Direction) {
	if dir == gridphysics.None {
		return
	}
	p.facing = dir
	p.walking = true
	p.anim.Play(walkAnimationKeys[dir])
}

// StopWalking shows the standing frame for dir.
func (p *Player) StopWalking(dir gridphysics.Direction) {
	p.walking = false
	if frame, ok := standingFrames[dir]; ok {
		p.facing = dir
		p.anim.SetFrame(frame)
		return
	}
	p.anim.Stop()
}

// Tick advances the walk animation.
func (p *Player) Tick(dt time.Duration) {
	p.anim.Update(dt)
}

// Frame returns the sheet frame to draw.
func (p *Player) Frame() int {
	return p.anim.Frame()
}

// Follow keeps the walk animation in step with gp's moves.
func (p *Player) Follow(gp *gridphysics.GridPhysics) {
	gp.OnMovementStarted(p.StartWalking)
	gp.OnMovementStopped(p.StopWalking)
}
