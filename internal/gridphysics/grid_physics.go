package gridphysics

import (
	"math"
	"time"
)

const (
	// DefaultTileSize is the edge length of one grid cell in pixels.
	DefaultTileSize = 32
	// DefaultTilesPerSecond is the walking speed measured in tiles.
	DefaultTilesPerSecond = 3.0
	// MaxTilesPerSecond caps configured speeds.
	MaxTilesPerSecond = 1000.0
)

// subPixelUnits is the number of carry units per pixel. Carry is kept in
// pixel*nanoseconds/second so that speed * delta stays integral.
const subPixelUnits = int64(time.Second)

// GridPhysics moves a single entity from tile to tile, one step at a time.
// It is not safe for concurrent use; the owner ticks it from its frame loop.
type GridPhysics struct {
	entity  Entity
	tileMap TileMap

	tileSize             int
	speedPixelsPerSecond int64

	movementDirection    Direction
	tileSizePixelsWalked int
	decimalPlacesLeft    int64 // sub-pixel carry in subPixelUnits, within [-0.5px, 0.5px)

	onMovementStarted func(Direction)
	onMovementStopped func(Direction)
	onBlocked         func(Direction)
}

// NewGridPhysics creates grid physics for entity walking DefaultTilesPerSecond.
func NewGridPhysics(entity Entity, tileMap TileMap, tileSize int) *GridPhysics {
	return NewGridPhysicsWithSpeed(entity, tileMap, tileSize, DefaultTilesPerSecond)
}

// NewGridPhysicsWithSpeed creates grid physics with a custom walking speed.
// Non-positive values fall back to the defaults; speeds above
// MaxTilesPerSecond are capped.
func NewGridPhysicsWithSpeed(entity Entity, tileMap TileMap, tileSize int, tilesPerSecond float64) *GridPhysics {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	if math.IsNaN(tilesPerSecond) || tilesPerSecond <= 0 {
		tilesPerSecond = DefaultTilesPerSecond
	}
	if tilesPerSecond > MaxTilesPerSecond {
		tilesPerSecond = MaxTilesPerSecond
	}
	speed := int64(math.Round(tilesPerSecond * float64(tileSize)))
	if speed < 1 {
		speed = 1
	}
	return &GridPhysics{
		entity:               entity,
		tileMap:              tileMap,
		tileSize:             tileSize,
		speedPixelsPerSecond: speed,
		movementDirection:    None,
	}
}

// OnMovementStarted registers a callback fired when a move begins.
func (gp *GridPhysics) OnMovementStarted(fn func(Direction)) {
	gp.onMovementStarted = fn
}

// OnMovementStopped registers a callback fired when the entity lands on the next tile.
func (gp *GridPhysics) OnMovementStopped(fn func(Direction)) {
	gp.onMovementStopped = fn
}

// OnBlocked registers a callback fired when an idle move request hits a blocked cell.
// What to show for a blocked move is left to the caller; physics state never changes.
func (gp *GridPhysics) OnBlocked(fn func(Direction)) {
	gp.onBlocked = fn
}

// MovePlayer starts a move one tile in direction. Requests made while a move
// is in flight are dropped, as are requests towards a blocked cell.
func (gp *GridPhysics) MovePlayer(direction Direction) {
	if gp.IsMoving() || direction == None {
		return
	}
	if gp.IsBlockingDirection(direction) {
		if gp.onBlocked != nil {
			gp.onBlocked(direction)
		}
		return
	}
	gp.startMoving(direction)
}

// Update advances the entity by the distance covered in delta.
// It does nothing while idle.
func (gp *GridPhysics) Update(delta time.Duration) {
	if gp.IsMoving() {
		gp.updatePlayerPosition(delta)
	}
}

// IsMoving reports whether a move is in flight.
func (gp *GridPhysics) IsMoving() bool {
	return gp.movementDirection != None
}

// MovementDirection returns the current travel direction, None when idle.
func (gp *GridPhysics) MovementDirection() Direction {
	return gp.movementDirection
}

// TileSizePixelsWalked returns how far into the current tile the entity has moved.
func (gp *GridPhysics) TileSizePixelsWalked() int {
	return gp.tileSizePixelsWalked
}

// DecimalPlacesLeft returns the fractional pixel carried into the next frame.
func (gp *GridPhysics) DecimalPlacesLeft() float64 {
	return float64(gp.decimalPlacesLeft) / float64(subPixelUnits)
}

func (gp *GridPhysics) TileSize() int {
	return gp.tileSize
}

func (gp *GridPhysics) SpeedPixelsPerSecond() int {
	return int(gp.speedPixelsPerSecond)
}

// IsBlockingDirection reports whether the cell next to the entity in direction blocks movement.
func (gp *GridPhysics) IsBlockingDirection(direction Direction) bool {
	x, y := gp.tilePosInDirection(direction)
	return gp.hasBlockingTile(x, y)
}

func (gp *GridPhysics) tilePosInDirection(direction Direction) (int, int) {
	x, y := gp.entity.GetTilePos()
	dx, dy := direction.Vector()
	return x + dx, y + dy
}

// hasNoTile reports whether no layer has a tile at (x, y).
func (gp *GridPhysics) hasNoTile(x, y int) bool {
	for _, layer := range gp.tileMap.LayerNames() {
		if gp.tileMap.HasTileAt(x, y, layer) {
			return false
		}
	}
	return true
}

// hasBlockingTile is true for empty cells and for cells where any layer's tile collides.
func (gp *GridPhysics) hasBlockingTile(x, y int) bool {
	if gp.hasNoTile(x, y) {
		return true
	}
	for _, layer := range gp.tileMap.LayerNames() {
		if tile := gp.tileMap.GetTileAt(x, y, layer); tile != nil && tile.Properties.Collides {
			return true
		}
	}
	return false
}

// pixelsToWalk converts delta into whole pixels, rounding to nearest and
// carrying the remainder so that frame size never changes the total distance.
// delta is capped at the time needed to finish the tile, which keeps the
// product in range; a crossing frame discards its overshoot anyway.
func (gp *GridPhysics) pixelsToWalk(delta time.Duration) int {
	if delta < 0 {
		delta = 0
	}
	if limit := gp.timeToFinishTile(); delta > limit {
		delta = limit
	}
	total := gp.decimalPlacesLeft + gp.speedPixelsPerSecond*int64(delta)
	pixels := (total + subPixelUnits/2) / subPixelUnits
	gp.decimalPlacesLeft = total - pixels*subPixelUnits
	return int(pixels)
}

// timeToFinishTile returns the shortest delta whose step reaches the tile border.
func (gp *GridPhysics) timeToFinishTile() time.Duration {
	remaining := int64(gp.tileSize-gp.tileSizePixelsWalked)*subPixelUnits - gp.decimalPlacesLeft
	return time.Duration((remaining + gp.speedPixelsPerSecond - 1) / gp.speedPixelsPerSecond)
}

func (gp *GridPhysics) willCrossTileBorderThisUpdate(pixelsToWalkThisUpdate int) bool {
	return gp.tileSizePixelsWalked+pixelsToWalkThisUpdate >= gp.tileSize
}

func (gp *GridPhysics) updatePlayerPosition(delta time.Duration) {
	pixelsToWalkThisUpdate := gp.pixelsToWalk(delta)

	if gp.willCrossTileBorderThisUpdate(pixelsToWalkThisUpdate) {
		gp.movePlayerSpriteRestOfTile()
	} else {
		gp.movePlayerSprite(pixelsToWalkThisUpdate)
	}
}

func (gp *GridPhysics) movePlayerSprite(pixels int) {
	if pixels == 0 {
		return
	}
	dx, dy := gp.movementDirection.Vector()
	x, y := gp.entity.GetPosition()
	gp.entity.SetPosition(x+float64(dx*pixels), y+float64(dy*pixels))
	gp.tileSizePixelsWalked = (gp.tileSizePixelsWalked + pixels) % gp.tileSize
}

func (gp *GridPhysics) movePlayerSpriteRestOfTile() {
	gp.movePlayerSprite(gp.tileSize - gp.tileSizePixelsWalked)
	gp.stopMoving()
}

func (gp *GridPhysics) startMoving(direction Direction) {
	gp.movementDirection = direction
	if gp.onMovementStarted != nil {
		gp.onMovementStarted(direction)
	}
}

// stopMoving returns to idle. The carry is dropped because the landing
// already discarded the overshoot of this frame.
func (gp *GridPhysics) stopMoving() {
	direction := gp.movementDirection
	gp.movementDirection = None
	gp.tileSizePixelsWalked = 0
	gp.decimalPlacesLeft = 0
	if gp.onMovementStopped != nil {
		gp.onMovementStopped(direction)
	}
}
