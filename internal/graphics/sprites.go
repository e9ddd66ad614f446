package graphics

import (
	"image"
	"image/color"
	_ "image/png"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

type SpriteManager struct {
	sprites  map[string]*ebiten.Image
	missing  map[string]bool // names already searched for without success
	frames   map[frameKey]*ebiten.Image
	searchIn []string
}

type frameKey struct {
	name          string
	frame         int
	width, height int
}

func NewSpriteManager() *SpriteManager {
	return &SpriteManager{
		sprites: make(map[string]*ebiten.Image),
		missing: make(map[string]bool),
		frames:  make(map[frameKey]*ebiten.Image),
		searchIn: []string{
			"assets/sprites/",            // From project root
			"../../assets/sprites/",      // From package tests
			"assets/sprites/characters/", // Character sheets
		},
	}
}

// HasSprite reports whether name could be loaded from disk.
func (sm *SpriteManager) HasSprite(name string) bool {
	if _, exists := sm.sprites[name]; exists {
		return true
	}
	sm.loadSpriteIfExists(name)
	_, exists := sm.sprites[name]
	return exists
}

// GetSprite returns the named image, or a gray placeholder when it is not on disk
func (sm *SpriteManager) GetSprite(name string) *ebiten.Image {
	if sprite, exists := sm.sprites[name]; exists {
		return sprite
	}

	// Try to dynamically load the sprite if it's not already loaded
	sm.loadSpriteIfExists(name)

	if sprite, exists := sm.sprites[name]; exists {
		return sprite
	}
	return sm.createPlaceholder(16, 16, color.RGBA{128, 128, 128, 255})
}

// GetFrame returns frame number frame of the sheet name, cut into
// frameW x frameH cells in row-major order. Returns nil if the sheet is
// missing or the frame lies outside it.
func (sm *SpriteManager) GetFrame(name string, frame, frameW, frameH int) *ebiten.Image {
	key := frameKey{name: name, frame: frame, width: frameW, height: frameH}
	if img, ok := sm.frames[key]; ok {
		return img
	}
	if !sm.HasSprite(name) {
		return nil
	}

	sheet := sm.sprites[name]
	rect, ok := FrameRect(frame, sheet.Bounds(), frameW, frameH)
	if !ok {
		return nil
	}
	img := sheet.SubImage(rect).(*ebiten.Image)
	sm.frames[key] = img
	return img
}

// FrameRect locates frame in a sheet with the given bounds.
func FrameRect(frame int, sheet image.Rectangle, frameW, frameH int) (image.Rectangle, bool) {
	if frame < 0 || frameW <= 0 || frameH <= 0 {
		return image.Rectangle{}, false
	}
	cols := sheet.Dx() / frameW
	rows := sheet.Dy() / frameH
	if cols == 0 || frame >= cols*rows {
		return image.Rectangle{}, false
	}
	x := sheet.Min.X + (frame%cols)*frameW
	y := sheet.Min.Y + (frame/cols)*frameH
	return image.Rect(x, y, x+frameW, y+frameH), true
}

func (sm *SpriteManager) createPlaceholder(w, h int, c color.Color) *ebiten.Image {
	img := ebiten.NewImage(w, h)
	img.Fill(c)
	return img
}

// loadSpriteIfExists attempts to load a sprite from common locations
func (sm *SpriteManager) loadSpriteIfExists(name string) {
	if sm.missing[name] {
		return
	}

	for _, dir := range sm.searchIn {
		img, err := decodePNG(dir + name + ".png")
		if err == nil {
			sm.sprites[name] = ebiten.NewImageFromImage(img)
			return
		}
	}

	// Cache the miss to avoid future file checks
	sm.missing[name] = true
}

func decodePNG(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	return img, err
}
