package world

import "fmt"

// Layer is one named grid of tiles. A nil cell holds no tile.
type Layer struct {
	Name  string
	tiles [][]*Tile
}

// Get returns the tile at (x, y), or nil when empty or out of bounds.
func (l *Layer) Get(x, y int) *Tile {
	if y < 0 || y >= len(l.tiles) || x < 0 || x >= len(l.tiles[y]) {
		return nil
	}
	return l.tiles[y][x]
}

// LayeredMap is a stack of equally sized tile layers, bottom layer first.
type LayeredMap struct {
	Name     string
	Width    int
	Height   int
	TileSize int
	StartX   int
	StartY   int

	layers []*Layer
}

// NewLayeredMap creates an empty map with no layers.
func NewLayeredMap(width, height, tileSize int) *LayeredMap {
	return &LayeredMap{
		Width:    width,
		Height:   height,
		TileSize: tileSize,
	}
}

// AddLayer appends an empty layer on top of the existing ones.
func (m *LayeredMap) AddLayer(name string) (*Layer, error) {
	if m.Layer(name) != nil {
		return nil, fmt.Errorf("duplicate layer %q", name)
	}
	tiles := make([][]*Tile, m.Height)
	for y := range tiles {
		tiles[y] = make([]*Tile, m.Width)
	}
	layer := &Layer{Name: name, tiles: tiles}
	m.layers = append(m.layers, layer)
	return layer, nil
}

// Layer returns the layer called name, or nil.
func (m *LayeredMap) Layer(name string) *Layer {
	for _, l := range m.layers {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// Layers returns the layers bottom first.
func (m *LayeredMap) Layers() []*Layer {
	return m.layers
}

// LayerNames returns layer names bottom first.
func (m *LayeredMap) LayerNames() []string {
	names := make([]string, len(m.layers))
	for i, l := range m.layers {
		names[i] = l.Name
	}
	return names
}

func (m *LayeredMap) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// SetTile places tile (nil clears the cell) on the named layer.
func (m *LayeredMap) SetTile(x, y int, layerName string, tile *Tile) error {
	layer := m.Layer(layerName)
	if layer == nil {
		return fmt.Errorf("unknown layer %q", layerName)
	}
	if !m.InBounds(x, y) {
		return fmt.Errorf("cell (%d,%d) outside %dx%d map", x, y, m.Width, m.Height)
	}
	layer.tiles[y][x] = tile
	return nil
}

// HasTileAt reports whether the named layer has a tile at (x, y).
func (m *LayeredMap) HasTileAt(x, y int, layerName string) bool {
	return m.GetTileAt(x, y, layerName) != nil
}

// GetTileAt returns the tile on the named layer at (x, y), or nil.
func (m *LayeredMap) GetTileAt(x, y int, layerName string) *Tile {
	layer := m.Layer(layerName)
	if layer == nil {
		return nil
	}
	return layer.Get(x, y)
}

// TopTileAt returns the tile of the highest layer that has one at (x, y).
func (m *LayeredMap) TopTileAt(x, y int) *Tile {
	for i := len(m.layers) - 1; i >= 0; i-- {
		if t := m.layers[i].Get(x, y); t != nil {
			return t
		}
	}
	return nil
}

// PixelSize returns the map extent in pixels.
func (m *LayeredMap) PixelSize() (int, int) {
	return m.Width * m.TileSize, m.Height * m.TileSize
}
