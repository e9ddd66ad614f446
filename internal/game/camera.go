package game

import "gridwalk/internal/world"

// Camera is the top-left corner of the visible area in map pixels.
type Camera struct {
	X, Y float64
}

// CenterOn centers the view on (cx, cy), clamped so the view never leaves
// the map. Maps smaller than the view are centered instead.
func (c *Camera) CenterOn(cx, cy float64, m *world.LayeredMap, viewW, viewH int) {
	mapW, mapH := m.PixelSize()
	c.X = clampAxis(cx-float64(viewW)/2, float64(mapW), float64(viewW))
	c.Y = clampAxis(cy-float64(viewH)/2, float64(mapH), float64(viewH))
}

func clampAxis(pos, mapLen, viewLen float64) float64 {
	if mapLen <= viewLen {
		return (mapLen - viewLen) / 2
	}
	if pos < 0 {
		return 0
	}
	if pos > mapLen-viewLen {
		return mapLen - viewLen
	}
	return pos
}

// GetPosition returns the camera's current position
func (c *Camera) GetPosition() (float64, float64) {
	return c.X, c.Y
}

// ToScreen converts map pixels to screen pixels
func (c *Camera) ToScreen(x, y float64) (float64, float64) {
	return x - c.X, y - c.Y
}
