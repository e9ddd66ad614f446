package main

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gridwalk/internal/config"
	"gridwalk/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	windowWidth  = 1000
	windowHeight = 640
	sidebarWidth = 280
)

type mapInfo struct {
	Key string
	Map *world.LayeredMap
	Err error
}

type viewer struct {
	maps        []mapInfo
	mapIndex    int
	layerIndex  int // -1 shows every layer
	legendLines []string
	showLegend  bool
	lastErr     string
}

func main() {
	ensureRuntimeCWD()

	cfg := config.MustLoadConfig("config.yaml")

	tm := world.NewTileManager()
	if err := tm.LoadTileConfig(cfg.World.TilesFile); err != nil {
		log.Printf("Warning: Failed to load tile config: %v", err)
	}

	maps, err := loadMaps(cfg.World.MapsFile, tm)
	if err != nil {
		log.Printf("Warning: %v", err)
	}

	v := &viewer{
		maps:        maps,
		layerIndex:  -1,
		legendLines: buildLegendLines(tm),
	}
	if len(maps) == 0 {
		v.lastErr = "no maps loaded"
	}

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("Gridwalk Map Viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		v.showLegend = !v.showLegend
	}
	if len(v.maps) == 0 {
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyRight) || inpututil.IsKeyJustPressed(ebiten.KeyD) {
		v.mapIndex = (v.mapIndex + 1) % len(v.maps)
		v.layerIndex = -1
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) || inpututil.IsKeyJustPressed(ebiten.KeyA) {
		v.mapIndex = (v.mapIndex - 1 + len(v.maps)) % len(v.maps)
		v.layerIndex = -1
	}

	// L cycles all layers -> layer 0 -> layer 1 -> ... -> all layers
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		if m := v.maps[v.mapIndex].Map; m != nil {
			v.layerIndex++
			if v.layerIndex >= len(m.Layers()) {
				v.layerIndex = -1
			}
		}
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{15, 15, 22, 255})

	if len(v.maps) == 0 {
		ebitenutil.DebugPrintAt(screen, v.lastErr, 16, 16)
		return
	}

	m := v.maps[v.mapIndex]
	if m.Err != nil {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("map %s failed to load: %v", m.Key, m.Err), 16, 16)
		return
	}

	screenW, screenH := screen.Bounds().Dx(), screen.Bounds().Dy()
	padding := 16
	mapAreaW := screenW - sidebarWidth - padding*3
	mapAreaH := screenH - padding*2
	sidebarX := padding + mapAreaW + padding

	drawMapPanel(screen, m, v.layerIndex, padding, padding, mapAreaW, mapAreaH)
	if v.showLegend {
		drawLines(screen, sidebarX, padding, sidebarWidth, mapAreaH, v.legendLines)
	} else {
		drawLines(screen, sidebarX, padding, sidebarWidth, mapAreaH, infoLines(m, v.layerIndex))
	}
}

func (v *viewer) Layout(_, _ int) (int, int) {
	return windowWidth, windowHeight
}

func drawMapPanel(screen *ebiten.Image, m mapInfo, layerIndex, x, y, w, h int) {
	drawFilledRect(screen, x, y, w, h, color.RGBA{20, 20, 35, 255})
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})

	lm := m.Map
	headerH := 40
	tileSize := w / lm.Width
	if alt := (h - headerH) / lm.Height; alt < tileSize {
		tileSize = alt
	}
	if tileSize < 2 {
		tileSize = 2
	}
	originX := x + (w-lm.Width*tileSize)/2
	originY := y + headerH + (h-headerH-lm.Height*tileSize)/2

	layers := lm.Layers()
	if layerIndex >= 0 && layerIndex < len(layers) {
		layers = layers[layerIndex : layerIndex+1]
	}
	for _, layer := range layers {
		for ty := 0; ty < lm.Height; ty++ {
			for tx := 0; tx < lm.Width; tx++ {
				tile := layer.Get(tx, ty)
				if tile == nil {
					continue
				}
				drawX := originX + tx*tileSize
				drawY := originY + ty*tileSize
				vector.DrawFilledRect(screen, float32(drawX), float32(drawY), float32(tileSize), float32(tileSize), colorFromRGB(tile.Color, 255), false)
				if tile.Properties.Collides && tileSize >= 8 {
					ebitenutil.DebugPrintAt(screen, string(tile.Letter), drawX+2, drawY+1)
				}
			}
		}
	}

	drawStartMarker(screen, originX, originY, tileSize, lm.StartX, lm.StartY)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s (%s)", lm.Name, m.Key), x+12, y+8)
	ebitenutil.DebugPrintAt(screen, "Left/Right: map  L: layer  Tab: legend  Esc: quit", x+12, y+22)
}

func infoLines(m mapInfo, layerIndex int) []string {
	lm := m.Map
	shown := "all"
	if layerIndex >= 0 {
		shown = lm.LayerNames()[layerIndex]
	}
	lines := []string{
		fmt.Sprintf("Tiles: %dx%d @ %dpx", lm.Width, lm.Height, lm.TileSize),
		fmt.Sprintf("Start: (%d,%d)", lm.StartX, lm.StartY),
		fmt.Sprintf("Layers: %s", strings.Join(lm.LayerNames(), ", ")),
		fmt.Sprintf("Showing: %s", shown),
		"",
	}

	blocked := 0
	for ty := 0; ty < lm.Height; ty++ {
		for tx := 0; tx < lm.Width; tx++ {
			for _, layer := range lm.Layers() {
				if t := layer.Get(tx, ty); t != nil && t.Properties.Collides {
					blocked++
					break
				}
			}
		}
	}
	lines = append(lines, fmt.Sprintf("Blocked tiles: %d/%d", blocked, lm.Width*lm.Height))
	lines = append(lines, "", "Cyan circle: start tile", "Letters: colliding tiles")
	return lines
}

func drawLines(screen *ebiten.Image, x, y, w, h int, lines []string) {
	drawFilledRect(screen, x, y, w, h, color.RGBA{18, 18, 26, 255})
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})
	lineHeight := 14
	for i, line := range lines {
		drawY := y + 12 + i*lineHeight
		if drawY > y+h-lineHeight {
			break
		}
		ebitenutil.DebugPrintAt(screen, line, x+10, drawY)
	}
}

func drawStartMarker(screen *ebiten.Image, originX, originY, tileSize, tx, ty int) {
	centerX := float32(originX + tx*tileSize + tileSize/2)
	centerY := float32(originY + ty*tileSize + tileSize/2)
	radius := float32(tileSize) * 0.35
	vector.DrawFilledCircle(screen, centerX, centerY, radius, color.RGBA{50, 200, 255, 255}, true)
	vector.StrokeCircle(screen, centerX, centerY, radius, 1, color.RGBA{255, 255, 255, 255}, true)
}

func loadMaps(manifestPath string, tm *world.TileManager) ([]mapInfo, error) {
	manifest, err := world.LoadManifest(manifestPath)
	if err != nil {
		return nil, err
	}

	loader := world.NewMapLoader(tm)
	var maps []mapInfo
	for _, key := range world.MapKeys(manifest) {
		m, err := loader.LoadMapConfig(filepath.Dir(manifestPath), manifest.Maps[key])
		if err == nil && m.Name == "" {
			m.Name = key
		}
		maps = append(maps, mapInfo{Key: key, Map: m, Err: err})
	}
	return maps, nil
}

func buildLegendLines(tm *world.TileManager) []string {
	lines := []string{
		"Tiles (letter -> key/name)",
		"--------------------------",
	}
	tiles := tm.ListTiles()
	for _, key := range tm.GetAllTileKeys() {
		t := tiles[key]
		entry := fmt.Sprintf("%c -> %s (%s)", t.Letter, key, t.Name)
		if t.Properties.Collides {
			entry += " [blocks]"
		}
		lines = append(lines, entry)
	}
	lines = append(lines,
		"",
		"Notes",
		"-----",
		"+ = start position",
		". or space = no tile on this layer",
	)
	return lines
}

func colorFromRGB(rgb [3]int, a uint8) color.RGBA {
	return color.RGBA{uint8(rgb[0]), uint8(rgb[1]), uint8(rgb[2]), a}
}

func drawFilledRect(screen *ebiten.Image, x, y, w, h int, clr color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func drawRectBorder(screen *ebiten.Image, x, y, w, h, thickness int, clr color.RGBA) {
	t := float32(thickness)
	fx, fy, fw, fh := float32(x), float32(y), float32(w), float32(h)
	vector.DrawFilledRect(screen, fx, fy, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy+fh-t, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy, t, fh, clr, false)
	vector.DrawFilledRect(screen, fx+fw-t, fy, t, fh, clr, false)
}

// ensureRuntimeCWD switches to the executable's directory when started
// somewhere without a config.yaml.
func ensureRuntimeCWD() {
	if _, err := os.Stat("config.yaml"); err == nil {
		return
	}
	exe, err := os.Executable()
	if err != nil {
		return
	}
	_ = os.Chdir(filepath.Dir(exe))
}
