package terminal

import (
	"fmt"
	"math"
	"time"

	"gridwalk/internal/character"
	"gridwalk/internal/config"
	"gridwalk/internal/graphics"
	"gridwalk/internal/gridphysics"
	"gridwalk/internal/monitoring"
	"gridwalk/internal/world"

	"github.com/gdamore/tcell/v2"
)

const tickInterval = 16 * time.Millisecond // ~60 FPS

var (
	playerStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkRed).Bold(true)
	voidStyle   = tcell.StyleDefault.Background(tcell.ColorBlack)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
)

// Game drives the grid walker inside a terminal, one cell per tile.
type Game struct {
	screen  tcell.Screen
	world   *world.LayeredMap
	player  *character.Player
	physics *gridphysics.GridPhysics
	monitor *monitoring.FrameMonitor
	audio   *Audio
}

// NewGame sets up a player on m's start tile. screen must already be initialized.
func NewGame(screen tcell.Screen, cfg *config.Config, m *world.LayeredMap, audio *Audio) (*Game, error) {
	if audio == nil {
		audio = Muted()
	}
	anims := graphics.NewAnimationSet()
	if err := graphics.RegisterWalkAnimations(anims); err != nil {
		return nil, err
	}

	player := character.NewPlayer(m.StartX, m.StartY, m.TileSize, anims)
	physics := gridphysics.NewGridPhysicsWithSpeed(player, m, m.TileSize, cfg.GetTilesPerSecond())
	player.Follow(physics)

	g := &Game{
		screen:  screen,
		world:   m,
		player:  player,
		physics: physics,
		monitor: monitoring.NewFrameMonitor(),
		audio:   audio,
	}
	physics.OnMovementStopped(func(dir gridphysics.Direction) {
		player.StopWalking(dir)
		audio.PlayStep()
	})
	physics.OnBlocked(func(gridphysics.Direction) { audio.PlayBump() })
	return g, nil
}

// Run polls input and ticks the physics with the real elapsed time between
// frames until the player quits.
func (g *Game) Run() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	g.monitor.Tick(time.Now())
	g.draw()
	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !g.handleEvent(ev) {
				return
			}

		case now := <-ticker.C:
			g.tick(g.monitor.Tick(now))
			g.draw()
		}
	}
}

func (g *Game) tick(dt time.Duration) {
	frameTimer := g.monitor.StartFrame()
	defer frameTimer.EndFrame()

	g.physics.Update(dt)
	g.player.Tick(dt)
}

// handleEvent returns false when the game should exit.
func (g *Game) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if isQuitKey(ev) {
			return false
		}
		if dir := keyDirection(ev); dir != gridphysics.None {
			g.physics.MovePlayer(dir)
		}
	case *tcell.EventResize:
		g.screen.Sync()
	}
	return true
}

func isQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

// keyDirection maps arrow keys and WASD to a direction.
func keyDirection(ev *tcell.EventKey) gridphysics.Direction {
	switch ev.Key() {
	case tcell.KeyUp:
		return gridphysics.Up
	case tcell.KeyDown:
		return gridphysics.Down
	case tcell.KeyLeft:
		return gridphysics.Left
	case tcell.KeyRight:
		return gridphysics.Right
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return gridphysics.Up
		case 's', 'S':
			return gridphysics.Down
		case 'a', 'A':
			return gridphysics.Left
		case 'd', 'D':
			return gridphysics.Right
		}
	}
	return gridphysics.None
}

// playerCell returns the tile the sprite mostly covers.
func (g *Game) playerCell() (int, int) {
	x, y := g.player.GetPosition()
	ts := float64(g.world.TileSize)
	return int(math.Round(x / ts)), int(math.Round(y / ts))
}

// viewOrigin returns the map cell drawn at the top-left of a w x h view
// centered on (cx, cy) and clamped to the map.
func viewOrigin(cx, cy, w, h int, m *world.LayeredMap) (int, int) {
	return clampOrigin(cx-w/2, m.Width, w), clampOrigin(cy-h/2, m.Height, h)
}

func clampOrigin(pos, mapLen, viewLen int) int {
	if mapLen <= viewLen {
		return -(viewLen - mapLen) / 2
	}
	if pos < 0 {
		return 0
	}
	if pos > mapLen-viewLen {
		return mapLen - viewLen
	}
	return pos
}

// tileCell returns the rune and style used to draw tile.
func tileCell(tile *world.Tile) (rune, tcell.Style) {
	if tile == nil {
		return ' ', voidStyle
	}
	c := tile.Color
	bg := tcell.NewRGBColor(int32(c[0]), int32(c[1]), int32(c[2]))
	style := tcell.StyleDefault.Background(bg).Foreground(tcell.ColorBlack)
	if tile.Properties.Collides {
		return tile.Letter, style.Bold(true)
	}
	return ' ', style
}

func (g *Game) draw() {
	g.screen.Clear()
	w, h := g.screen.Size()
	viewH := h - 1 // last row is the status line
	if viewH < 1 || w < 1 {
		g.screen.Show()
		return
	}

	pcx, pcy := g.playerCell()
	ox, oy := viewOrigin(pcx, pcy, w, viewH, g.world)
	for sy := 0; sy < viewH; sy++ {
		for sx := 0; sx < w; sx++ {
			r, style := tileCell(g.world.TopTileAt(ox+sx, oy+sy))
			g.screen.SetContent(sx, sy, r, nil, style)
		}
	}
	g.screen.SetContent(pcx-ox, pcy-oy, '@', nil, playerStyle)

	px, py := g.player.GetPosition()
	stats := g.monitor.Stats()
	status := fmt.Sprintf(" %s  px (%.0f,%.0f)  moving: %-5s  dt: %v  [arrows/wasd move, q quit]",
		g.world.Name, px, py, g.physics.MovementDirection(), stats.LastDelta.Round(time.Millisecond))
	for sx := 0; sx < w; sx++ {
		r := ' '
		if sx < len(status) {
			r = rune(status[sx])
		}
		g.screen.SetContent(sx, h-1, r, nil, statusStyle)
	}
	g.screen.Show()
}
