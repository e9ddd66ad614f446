package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Update handles all game logic updates for one frame
func (g *Game) Update() error {
	frameTimer := g.monitor.StartFrame()
	defer frameTimer.EndFrame()
	measured := g.monitor.Tick(time.Now())

	if err := g.handleUIInput(); err != nil {
		return err
	}

	g.step(g.input.Direction(), tickDelta(ebiten.TPS(), measured))
	g.maybeLogPerfDrop()
	return nil
}

// tickDelta returns the physics delta for one Update call. ebiten runs
// Update at a fixed tick rate and catches up after slow frames with extra
// calls, so one tick is the exact simulated time and the measured wall-clock
// delta only feeds the debug overlay. Under ebiten.SyncWithFPS there is no
// fixed rate and the measured delta is used instead.
func tickDelta(tps int, measured time.Duration) time.Duration {
	if tps <= 0 {
		return measured
	}
	return time.Second / time.Duration(tps)
}

// Draw handles all rendering for one frame
func (g *Game) Draw(screen *ebiten.Image) {
	g.drawBackground(screen)
	g.drawTiles(screen)
	if g.config.Graphics.ShowGrid {
		g.drawGrid(screen)
	}
	g.drawPlayer(screen)
	g.drawHUD(screen)
	if g.showDebug {
		g.drawDebug(screen)
	}
}

// Layout returns the screen dimensions
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.config.GetScreenWidth(), g.config.GetScreenHeight()
}
