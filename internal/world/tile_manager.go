package world

import (
	"fmt"
	"os"
	"sort"
	"unicode/utf8"

	"gridwalk/internal/config"

	"gopkg.in/yaml.v3"
)

// TileManager handles tile configuration and properties
type TileManager struct {
	tiles       map[string]*Tile
	letterToKey map[rune]string
}

// NewTileManager creates a new tile manager
func NewTileManager() *TileManager {
	return &TileManager{
		tiles:       make(map[string]*Tile),
		letterToKey: make(map[rune]string),
	}
}

// LoadTileConfig loads tile configuration from a YAML file
func (tm *TileManager) LoadTileConfig(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read tile config file: %w", err)
	}

	var tileConfig config.TileConfig
	err = yaml.Unmarshal(data, &tileConfig)
	if err != nil {
		return fmt.Errorf("failed to parse tile config: %w", err)
	}

	return tm.LoadTileData(tileConfig.TileData)
}

// LoadTileData replaces the known tiles with the given definitions.
// Letters must be a single rune and unique across definitions.
func (tm *TileManager) LoadTileData(defs map[string]config.TileData) error {
	tiles := make(map[string]*Tile, len(defs))
	letters := make(map[rune]string, len(defs))

	for key, def := range defs {
		tile := &Tile{
			Key:   key,
			Name:  def.Name,
			Color: def.Color,
			Frame: def.Frame,
			Properties: TileProperties{
				Collides: def.Collides || truthy(def.Properties["collides"]),
				Custom:   copyProperties(def.Properties),
			},
		}

		if def.Letter != "" {
			if utf8.RuneCountInString(def.Letter) != 1 {
				return fmt.Errorf("tile %q: letter %q must be a single character", key, def.Letter)
			}
			r, _ := utf8.DecodeRuneInString(def.Letter)
			if isReservedLetter(r) {
				return fmt.Errorf("tile %q: letter %q is reserved by the map format", key, def.Letter)
			}
			if other, dup := letters[r]; dup {
				return fmt.Errorf("tiles %q and %q share letter %q", other, key, def.Letter)
			}
			letters[r] = key
			tile.Letter = r
		}
		tiles[key] = tile
	}

	tm.tiles = tiles
	tm.letterToKey = letters
	return nil
}

// GetTile returns the tile definition for key, or nil if unknown
func (tm *TileManager) GetTile(key string) *Tile {
	return tm.tiles[key]
}

// GetTileByLetter returns the tile definition a map letter stands for
func (tm *TileManager) GetTileByLetter(letter rune) (*Tile, bool) {
	key, ok := tm.letterToKey[letter]
	if !ok {
		return nil, false
	}
	return tm.tiles[key], true
}

// IsColliding returns whether a tile blocks movement. Unknown tiles do not.
func (tm *TileManager) IsColliding(key string) bool {
	tile := tm.tiles[key]
	if tile == nil {
		return false
	}
	return tile.Properties.Collides
}

// GetAllTileKeys returns all tile keys in sorted order
func (tm *TileManager) GetAllTileKeys() []string {
	keys := make([]string, 0, len(tm.tiles))
	for key := range tm.tiles {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ListTiles returns copies of all tile definitions
func (tm *TileManager) ListTiles() map[string]Tile {
	result := make(map[string]Tile, len(tm.tiles))
	for key, tile := range tm.tiles {
		tileCopy := *tile
		tileCopy.Properties.Custom = copyProperties(tile.Properties.Custom)
		result[key] = tileCopy
	}
	return result
}

// SetTileProperty allows dynamic modification of tile properties at runtime
func (tm *TileManager) SetTileProperty(key string, property string, value interface{}) error {
	tile, ok := tm.tiles[key]
	if !ok {
		return fmt.Errorf("unknown tile: %s", key)
	}

	switch property {
	case "collides":
		if val, ok := value.(bool); ok {
			tile.Properties.Collides = val
		} else {
			return fmt.Errorf("collides property requires boolean value")
		}
	case "name":
		if val, ok := value.(string); ok {
			tile.Name = val
		} else {
			return fmt.Errorf("name property requires string value")
		}
	case "frame":
		if val, ok := value.(int); ok {
			tile.Frame = val
		} else {
			return fmt.Errorf("frame property requires int value")
		}
	default:
		return fmt.Errorf("unknown property: %s", property)
	}

	return nil
}

func isReservedLetter(r rune) bool {
	return r == emptyCell || r == blankCell || r == startMarker
}

func truthy(v interface{}) bool {
	switch val := v.(type) {
	case bool:
		return val
	case int:
		return val != 0
	case float64:
		return val != 0
	case string:
		return val == "true" || val == "yes" || val == "1"
	}
	return false
}

func copyProperties(props map[string]interface{}) map[string]interface{} {
	if props == nil {
		return nil
	}
	out := make(map[string]interface{}, len(props))
	for k, v := range props {
		out[k] = v
	}
	return out
}
