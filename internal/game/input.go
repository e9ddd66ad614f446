package game

import (
	"fmt"

	"gridwalk/internal/gridphysics"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputHandler maps held keys to a movement direction.
type InputHandler struct {
	bindings map[gridphysics.Direction][]ebiten.Key
	pressed  func(ebiten.Key) bool
}

// NewInputHandler parses key names per direction name ("up", "left", ...)
// into ebiten keys.
func NewInputHandler(keyBindings map[string][]string) (*InputHandler, error) {
	bindings := make(map[gridphysics.Direction][]ebiten.Key, len(keyBindings))
	for dirName, keyNames := range keyBindings {
		dir, err := gridphysics.ParseDirection(dirName)
		if err != nil {
			return nil, err
		}
		if dir == gridphysics.None {
			return nil, fmt.Errorf("keys bound to %q, expected a movement direction", dirName)
		}
		for _, name := range keyNames {
			var key ebiten.Key
			if err := key.UnmarshalText([]byte(name)); err != nil {
				return nil, fmt.Errorf("%s binding: unknown key %q", dir, name)
			}
			bindings[dir] = append(bindings[dir], key)
		}
	}

	return &InputHandler{bindings: bindings, pressed: ebiten.IsKeyPressed}, nil
}

// Direction returns the direction of the first held binding, checked in
// up, down, left, right order, or None when no movement key is held.
func (ih *InputHandler) Direction() gridphysics.Direction {
	for _, dir := range gridphysics.Directions {
		for _, key := range ih.bindings[dir] {
			if ih.pressed(key) {
				return dir
			}
		}
	}
	return gridphysics.None
}

// handleUIInput processes the non-movement keys
func (g *Game) handleUIInput() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.showDebug = !g.showDebug
		if g.showDebug {
			g.monitor.Reset()
		}
	}
	if g.showDebug && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.toggleCollisionAhead()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.config.Graphics.ShowGrid = !g.config.Graphics.ShowGrid
	}
	return nil
}
