package world

// TileProperties are the gameplay flags of a tile definition.
type TileProperties struct {
	Collides bool
	Custom   map[string]interface{}
}

// Tile is a tile definition placed in map cells. Cells share the pointer,
// so property changes apply to every cell using the definition.
type Tile struct {
	Key        string
	Name       string
	Letter     rune
	Color      [3]int
	Frame      int
	Properties TileProperties
}
