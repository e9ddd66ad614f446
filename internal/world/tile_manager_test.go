package world

import (
	"os"
	"path/filepath"
	"testing"

	"gridwalk/internal/config"
)

func TestTileManager(t *testing.T) {
	// Create a temporary tiles.yaml for testing
	testConfig := `tiles:
  test_wall:
    name: "Test Wall"
    letter: "W"
    collides: true
    color: [110, 110, 120]
    frame: 3
  test_grass:
    name: "Test Grass"
    letter: "g"
    color: [70, 150, 60]
  test_rock:
    name: "Test Rock"
    letter: "R"
    properties:
      collides: true
      height: 2
`

	// Write test config to temporary file
	tmpFile, err := os.CreateTemp("", "test_tiles_*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.WriteString(testConfig); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	tmpFile.Close()

	tm := NewTileManager()
	if err := tm.LoadTileConfig(tmpFile.Name()); err != nil {
		t.Fatalf("Failed to load tile config: %v", err)
	}

	wall := tm.GetTile("test_wall")
	if wall == nil {
		t.Fatalf("Expected test_wall data to be loaded")
	}
	if !wall.Properties.Collides {
		t.Errorf("Expected test_wall to collide")
	}
	if wall.Frame != 3 {
		t.Errorf("Expected test_wall frame 3, got %d", wall.Frame)
	}

	if tm.IsColliding("test_grass") {
		t.Errorf("Expected test_grass to be walkable")
	}
	if !tm.IsColliding("test_rock") {
		t.Errorf("Expected collides in properties to be honoured for test_rock")
	}
	if tm.IsColliding("missing") {
		t.Errorf("Expected unknown tiles not to collide")
	}

	grass, ok := tm.GetTileByLetter('g')
	if !ok || grass.Key != "test_grass" {
		t.Errorf("Expected letter g to resolve to test_grass, got %v", grass)
	}
	if _, ok := tm.GetTileByLetter('z'); ok {
		t.Errorf("Expected unknown letter lookup to fail")
	}

	expectedColor := [3]int{70, 150, 60}
	if grass.Color != expectedColor {
		t.Errorf("Expected color %v, got %v", expectedColor, grass.Color)
	}

	keys := tm.GetAllTileKeys()
	if len(keys) != 3 || keys[0] != "test_grass" {
		t.Errorf("Expected 3 sorted keys, got %v", keys)
	}
}

func TestTileManagerRejectsBadLetters(t *testing.T) {
	tests := []struct {
		name string
		defs map[string]config.TileData
	}{
		{"duplicate", map[string]config.TileData{
			"a": {Letter: "x"},
			"b": {Letter: "x"},
		}},
		{"multi rune", map[string]config.TileData{"a": {Letter: "xy"}}},
		{"reserved start", map[string]config.TileData{"a": {Letter: "+"}}},
		{"reserved empty", map[string]config.TileData{"a": {Letter: "."}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := NewTileManager().LoadTileData(tt.defs); err == nil {
				t.Errorf("expected error")
			}
		})
	}
}

func TestTileManagerProperties(t *testing.T) {
	tm := NewTileManager()
	err := tm.LoadTileData(map[string]config.TileData{
		"tree":   {Name: "Tree", Letter: "T", Collides: true},
		"bridge": {Name: "Bridge", Letter: "b"},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	// Cells share the definition pointer, so overrides apply everywhere
	tree := tm.GetTile("tree")
	if err := tm.SetTileProperty("tree", "collides", false); err != nil {
		t.Errorf("Failed to set tile property: %v", err)
	}
	if tree.Properties.Collides {
		t.Errorf("Expected tree to stop colliding after override")
	}

	if err := tm.SetTileProperty("tree", "collides", "yes"); err == nil {
		t.Errorf("Expected error for non-boolean collides")
	}
	if err := tm.SetTileProperty("tree", "invalid_property", true); err == nil {
		t.Errorf("Expected error when setting invalid property")
	}
	if err := tm.SetTileProperty("missing", "collides", true); err == nil {
		t.Errorf("Expected error for unknown tile")
	}

	listed := tm.ListTiles()
	listed["bridge"] = Tile{Name: "changed"}
	if tm.GetTile("bridge").Name != "Bridge" {
		t.Errorf("ListTiles must return copies")
	}
}

func TestShippedTileConfig(t *testing.T) {
	tm := NewTileManager()
	if err := tm.LoadTileConfig(filepath.Join("..", "..", "assets", "tiles.yaml")); err != nil {
		t.Fatalf("load tiles: %v", err)
	}
	for _, key := range []string{"water", "wall", "tree", "rock"} {
		if !tm.IsColliding(key) {
			t.Errorf("expected %s to collide", key)
		}
	}
	for _, key := range []string{"grass", "path", "flowers", "bridge"} {
		if tm.IsColliding(key) {
			t.Errorf("expected %s to be walkable", key)
		}
	}
}
