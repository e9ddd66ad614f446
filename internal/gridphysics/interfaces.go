package gridphysics

import "gridwalk/internal/world"

// TileMap is the read-only tile query surface used for collision checks.
// Coordinates are grid cells; layers are identified by name.
type TileMap interface {
	LayerNames() []string
	HasTileAt(x, y int, layer string) bool
	// GetTileAt returns nil when the layer has no tile at (x, y).
	GetTileAt(x, y int, layer string) *world.Tile
}

// Entity is the moving object whose position GridPhysics drives.
type Entity interface {
	GetTilePos() (int, int)
	GetPosition() (float64, float64)
	SetPosition(x, y float64)
}
