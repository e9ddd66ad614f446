package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all game configuration values
type Config struct {
	Display  DisplayConfig  `yaml:"display"`
	World    WorldConfig    `yaml:"world"`
	Movement MovementConfig `yaml:"movement"`
	Input    InputConfig    `yaml:"input"`
	Graphics GraphicsConfig `yaml:"graphics"`
	Audio    AudioConfig    `yaml:"audio"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
	TPS          int    `yaml:"tps"`
	PerfLog      bool   `yaml:"perf_log"` // log sustained frame rate drops
}

type WorldConfig struct {
	TileSize   int    `yaml:"tile_size"`
	TilesFile  string `yaml:"tiles_file"`
	MapsFile   string `yaml:"maps_file"`
	DefaultMap string `yaml:"default_map"`
}

type MovementConfig struct {
	TilesPerSecond float64 `yaml:"tiles_per_second"`
}

// InputConfig binds key names (ebiten key names, e.g. "ArrowUp", "W") to directions.
type InputConfig struct {
	Up    []string `yaml:"up"`
	Down  []string `yaml:"down"`
	Left  []string `yaml:"left"`
	Right []string `yaml:"right"`
}

type GraphicsConfig struct {
	Tileset         string `yaml:"tileset"`
	FrameWidth      int    `yaml:"frame_width"`
	FrameHeight     int    `yaml:"frame_height"`
	BackgroundColor [3]int `yaml:"background_color"`
	PlayerColor     [3]int `yaml:"player_color"`
	ShowGrid        bool   `yaml:"show_grid"`
}

type AudioConfig struct {
	Enabled       bool    `yaml:"enabled"`
	SampleRate    int     `yaml:"sample_rate"`
	StepFrequency float64 `yaml:"step_frequency"`
	BumpFrequency float64 `yaml:"bump_frequency"`
	ToneMs        int     `yaml:"tone_ms"`
}

// TileConfig is the root of tiles.yaml.
type TileConfig struct {
	TileData map[string]TileData `yaml:"tiles"`
}

type TileData struct {
	Name       string                 `yaml:"name"`
	Letter     string                 `yaml:"letter"`
	Collides   bool                   `yaml:"collides"`
	Color      [3]int                 `yaml:"color"`
	Frame      int                    `yaml:"frame"`
	Properties map[string]interface{} `yaml:"properties,omitempty"`
}

// MapConfig describes one map: its layers, bottom first.
type MapConfig struct {
	Name     string           `yaml:"name"`
	TileSize int              `yaml:"tile_size"`
	Layers   []MapLayerConfig `yaml:"layers"`
}

type MapLayerConfig struct {
	Name string `yaml:"name"`
	File string `yaml:"file"`
}

// MapConfigs is the root of maps.yaml.
type MapConfigs struct {
	Maps map[string]MapConfig `yaml:"maps"`
}

var GlobalConfig *Config

// LoadConfig loads the configuration from config.yaml
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}
	config.ApplyDefaults()

	// Set global config for easy access
	GlobalConfig = &config

	return &config, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

// DefaultConfig returns the configuration used when no file sets a value.
func DefaultConfig() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills zero values with working defaults.
func (c *Config) ApplyDefaults() {
	if c.Display.ScreenWidth <= 0 {
		c.Display.ScreenWidth = 640
	}
	if c.Display.ScreenHeight <= 0 {
		c.Display.ScreenHeight = 480
	}
	if c.Display.WindowTitle == "" {
		c.Display.WindowTitle = "gridwalk"
	}
	if c.Display.TPS <= 0 {
		c.Display.TPS = 60
	}
	if c.World.TileSize <= 0 {
		c.World.TileSize = 32
	}
	if c.World.TilesFile == "" {
		c.World.TilesFile = "assets/tiles.yaml"
	}
	if c.World.MapsFile == "" {
		c.World.MapsFile = "assets/maps.yaml"
	}
	if c.World.DefaultMap == "" {
		c.World.DefaultMap = "town"
	}
	if c.Movement.TilesPerSecond <= 0 {
		c.Movement.TilesPerSecond = 3
	}
	if len(c.Input.Up) == 0 {
		c.Input.Up = []string{"ArrowUp", "W"}
	}
	if len(c.Input.Down) == 0 {
		c.Input.Down = []string{"ArrowDown", "S"}
	}
	if len(c.Input.Left) == 0 {
		c.Input.Left = []string{"ArrowLeft", "A"}
	}
	if len(c.Input.Right) == 0 {
		c.Input.Right = []string{"ArrowRight", "D"}
	}
	if c.Graphics.FrameWidth <= 0 {
		c.Graphics.FrameWidth = 16
	}
	if c.Graphics.FrameHeight <= 0 {
		c.Graphics.FrameHeight = 16
	}
	if c.Graphics.PlayerColor == [3]int{} {
		c.Graphics.PlayerColor = [3]int{220, 60, 60}
	}
	if c.Audio.SampleRate <= 0 {
		c.Audio.SampleRate = 44100
	}
	if c.Audio.StepFrequency <= 0 {
		c.Audio.StepFrequency = 660
	}
	if c.Audio.BumpFrequency <= 0 {
		c.Audio.BumpFrequency = 110
	}
	if c.Audio.ToneMs <= 0 {
		c.Audio.ToneMs = 40
	}
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

func (c *Config) GetTPS() int {
	return c.Display.TPS
}

func (c *Config) GetTileSize() int {
	return c.World.TileSize
}

func (c *Config) GetTilesPerSecond() float64 {
	return c.Movement.TilesPerSecond
}

// GetKeyBindings returns the key names bound to each direction name.
func (c *Config) GetKeyBindings() map[string][]string {
	return map[string][]string{
		"up":    c.Input.Up,
		"down":  c.Input.Down,
		"left":  c.Input.Left,
		"right": c.Input.Right,
	}
}
