package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	ebitext "github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	hudTextColor   = color.RGBA{240, 240, 240, 255}
	hudPanelColor  = color.RGBA{0, 0, 0, 160}
	gridLineColor  = color.RGBA{0, 0, 0, 60}
	debugTextColor = color.RGBA{255, 230, 120, 255}
)

func rgb(c [3]int) color.RGBA {
	return color.RGBA{uint8(c[0]), uint8(c[1]), uint8(c[2]), 255}
}

func (g *Game) drawBackground(screen *ebiten.Image) {
	screen.Fill(rgb(g.config.Graphics.BackgroundColor))
}

// visibleTiles returns the inclusive tile range covered by the camera.
func (g *Game) visibleTiles() (minX, minY, maxX, maxY int) {
	ts := float64(g.world.TileSize)
	camX, camY := g.camera.GetPosition()
	minX = int(math.Floor(camX / ts))
	minY = int(math.Floor(camY / ts))
	maxX = int(math.Floor((camX + float64(g.config.GetScreenWidth())) / ts))
	maxY = int(math.Floor((camY + float64(g.config.GetScreenHeight())) / ts))
	return
}

// drawTiles renders every layer bottom first. Tiles use their tileset frame
// when the sheet is available and their flat color otherwise.
func (g *Game) drawTiles(screen *ebiten.Image) {
	gfx := g.config.Graphics
	ts := float32(g.world.TileSize)
	minX, minY, maxX, maxY := g.visibleTiles()

	for _, layer := range g.world.Layers() {
		for y := minY; y <= maxY; y++ {
			for x := minX; x <= maxX; x++ {
				tile := layer.Get(x, y)
				if tile == nil {
					continue
				}
				sx, sy := g.camera.ToScreen(float64(x)*float64(ts), float64(y)*float64(ts))

				if frame := g.sprites.GetFrame(gfx.Tileset, tile.Frame, gfx.FrameWidth, gfx.FrameHeight); frame != nil {
					g.drawScaled(screen, frame, sx, sy)
					continue
				}
				vector.DrawFilledRect(screen, float32(sx), float32(sy), ts, ts, rgb(tile.Color), false)
			}
		}
	}
}

func (g *Game) drawGrid(screen *ebiten.Image) {
	ts := float64(g.world.TileSize)
	minX, minY, maxX, maxY := g.visibleTiles()
	for x := minX; x <= maxX+1; x++ {
		sx, _ := g.camera.ToScreen(float64(x)*ts, 0)
		vector.StrokeLine(screen, float32(sx), 0, float32(sx), float32(g.config.GetScreenHeight()), 1, gridLineColor, false)
	}
	for y := minY; y <= maxY+1; y++ {
		_, sy := g.camera.ToScreen(0, float64(y)*ts)
		vector.StrokeLine(screen, 0, float32(sy), float32(g.config.GetScreenWidth()), float32(sy), 1, gridLineColor, false)
	}
}

func (g *Game) drawPlayer(screen *ebiten.Image) {
	gfx := g.config.Graphics
	px, py := g.player.GetPosition()
	sx, sy := g.camera.ToScreen(px, py)

	if frame := g.sprites.GetFrame(gfx.Tileset, g.player.Frame(), gfx.FrameWidth, gfx.FrameHeight); frame != nil {
		g.drawScaled(screen, frame, sx, sy)
		return
	}

	// Placeholder: a colored block with a notch on the facing side
	ts := float32(g.world.TileSize)
	inset := ts / 8
	vector.DrawFilledRect(screen, float32(sx)+inset, float32(sy)+inset, ts-2*inset, ts-2*inset, rgb(gfx.PlayerColor), false)

	dx, dy := g.player.Facing().Vector()
	cx := float32(sx) + ts/2 + float32(dx)*ts/4
	cy := float32(sy) + ts/2 + float32(dy)*ts/4
	vector.DrawFilledCircle(screen, cx, cy, ts/8, hudTextColor, true)
}

// drawScaled draws a sheet frame stretched over one map tile.
func (g *Game) drawScaled(screen, img *ebiten.Image, sx, sy float64) {
	b := img.Bounds()
	ts := float64(g.world.TileSize)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(ts/float64(b.Dx()), ts/float64(b.Dy()))
	op.GeoM.Translate(sx, sy)
	screen.DrawImage(img, op)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	tx, ty := g.player.GetTilePos()
	lines := []string{
		fmt.Sprintf("%s  tile (%d,%d)", g.world.Name, tx, ty),
		fmt.Sprintf("moving: %s  walked: %dpx", g.physics.MovementDirection(), g.physics.TileSizePixelsWalked()),
	}
	g.drawTextPanel(screen, lines, 8, 8, hudTextColor)
}

func (g *Game) drawDebug(screen *ebiten.Image) {
	stats := g.monitor.Stats()
	lines := []string{
		fmt.Sprintf("TPS: %.1f  FPS: %.1f", ebiten.ActualTPS(), ebiten.ActualFPS()),
		fmt.Sprintf("frame delta: %v (avg %v, peak %v)", stats.LastDelta, stats.AvgDelta, stats.PeakDelta),
		fmt.Sprintf("update work: %v", stats.LastWork),
		fmt.Sprintf("carry: %+.3fpx  speed: %dpx/s", g.physics.DecimalPlacesLeft(), g.physics.SpeedPixelsPerSecond()),
		fmt.Sprintf("blocked requests: %d", g.blocked),
		"C: toggle collision of the tile ahead",
	}
	g.drawTextPanel(screen, lines, 8, g.config.GetScreenHeight()-8-len(lines)*16, debugTextColor)
}

func (g *Game) drawTextPanel(screen *ebiten.Image, lines []string, x, y int, c color.Color) {
	face := basicfont.Face7x13
	width := 0
	for _, line := range lines {
		if w := len(line) * 7; w > width {
			width = w
		}
	}
	vector.DrawFilledRect(screen, float32(x-4), float32(y-4), float32(width+8), float32(len(lines)*16+4), hudPanelColor, false)
	for i, line := range lines {
		ebitext.Draw(screen, line, face, x, y+12+i*16, c)
	}
}
