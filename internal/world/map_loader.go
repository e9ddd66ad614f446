package world

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gridwalk/internal/config"

	"gopkg.in/yaml.v3"
)

const (
	emptyCell   = '.'
	blankCell   = ' '
	startMarker = '+'
)

var (
	// ErrUnknownMap is returned when a manifest has no map with the requested key.
	ErrUnknownMap = errors.New("unknown map")
	// ErrNoStart is returned when no layer marks the start tile with '+'.
	ErrNoStart = errors.New("map has no start marker")
)

// MapLoader handles loading layered maps from a manifest and per-layer files
type MapLoader struct {
	tileManager *TileManager
}

// layerGrid is one parsed layer file before it is bound to a map.
type layerGrid struct {
	rows   [][]*Tile
	width  int
	starts [][2]int
}

// NewMapLoader creates a new map loader resolving letters through tm
func NewMapLoader(tm *TileManager) *MapLoader {
	return &MapLoader{tileManager: tm}
}

// LoadManifest reads a maps.yaml manifest
func LoadManifest(manifestPath string) (*config.MapConfigs, error) {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read map manifest: %w", err)
	}
	var manifest config.MapConfigs
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse map manifest: %w", err)
	}
	return &manifest, nil
}

// MapKeys returns the manifest's map keys in sorted order
func MapKeys(manifest *config.MapConfigs) []string {
	keys := make([]string, 0, len(manifest.Maps))
	for key := range manifest.Maps {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// LoadMap loads the map called key from the manifest at manifestPath.
// Layer files are resolved relative to the manifest's directory.
func (ml *MapLoader) LoadMap(manifestPath, key string) (*LayeredMap, error) {
	manifest, err := LoadManifest(manifestPath)
	if err != nil {
		return nil, err
	}
	mapConfig, ok := manifest.Maps[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMap, key)
	}
	m, err := ml.LoadMapConfig(filepath.Dir(manifestPath), mapConfig)
	if err != nil {
		return nil, fmt.Errorf("map %q: %w", key, err)
	}
	if m.Name == "" {
		m.Name = key
	}
	return m, nil
}

// LoadMapConfig builds a map from an already parsed map entry
func (ml *MapLoader) LoadMapConfig(baseDir string, mc config.MapConfig) (*LayeredMap, error) {
	if len(mc.Layers) == 0 {
		return nil, fmt.Errorf("map declares no layers")
	}

	grids := make([]*layerGrid, len(mc.Layers))
	for i, lc := range mc.Layers {
		path := lc.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		grid, err := ml.loadLayerFile(path)
		if err != nil {
			return nil, fmt.Errorf("layer %q: %w", lc.Name, err)
		}
		grids[i] = grid
	}

	width, height := grids[0].width, len(grids[0].rows)
	var starts [][2]int
	for i, grid := range grids {
		if grid.width != width || len(grid.rows) != height {
			return nil, fmt.Errorf("layer %q is %dx%d, expected %dx%d",
				mc.Layers[i].Name, grid.width, len(grid.rows), width, height)
		}
		starts = append(starts, grid.starts...)
	}
	if len(starts) == 0 {
		return nil, ErrNoStart
	}
	if len(starts) > 1 {
		return nil, fmt.Errorf("map has %d start markers, expected one", len(starts))
	}

	tileSize := mc.TileSize
	if tileSize <= 0 && config.GlobalConfig != nil {
		tileSize = config.GlobalConfig.GetTileSize()
	}
	if tileSize <= 0 {
		tileSize = 32
	}

	m := NewLayeredMap(width, height, tileSize)
	m.Name = mc.Name
	m.StartX, m.StartY = starts[0][0], starts[0][1]
	for i, grid := range grids {
		layer, err := m.AddLayer(mc.Layers[i].Name)
		if err != nil {
			return nil, err
		}
		layer.tiles = grid.rows
	}
	return m, nil
}

// loadLayerFile parses one text layer: '#' comments and blank lines are
// skipped, '.' and ' ' leave the cell empty, '+' marks the start tile.
func (ml *MapLoader) loadLayerFile(path string) (*layerGrid, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open map file %s: %w", path, err)
	}
	defer file.Close()

	grid := &layerGrid{width: -1}
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		cells := []rune(line)
		if grid.width == -1 {
			grid.width = len(cells)
		} else if len(cells) != grid.width {
			return nil, fmt.Errorf("line %d has inconsistent width: expected %d, got %d", lineNo, grid.width, len(cells))
		}

		y := len(grid.rows)
		row := make([]*Tile, len(cells))
		for x, r := range cells {
			switch r {
			case emptyCell, blankCell:
			case startMarker:
				grid.starts = append(grid.starts, [2]int{x, y})
			default:
				tile, ok := ml.tileManager.GetTileByLetter(r)
				if !ok {
					return nil, fmt.Errorf("line %d: unknown tile letter %q at column %d", lineNo, r, x+1)
				}
				row[x] = tile
			}
		}
		grid.rows = append(grid.rows, row)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading map file: %w", err)
	}
	if len(grid.rows) == 0 {
		return nil, fmt.Errorf("map file %s contains no valid map data", path)
	}
	return grid, nil
}
