package main

import (
	"flag"
	"log"

	"gridwalk/internal/config"
	"gridwalk/internal/game"
	"gridwalk/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	mapKey := flag.String("map", "", "map key from the maps manifest (defaults to world.default_map)")
	flag.Parse()

	// Load configuration
	cfg := config.MustLoadConfig(*configPath)

	// Load tiles and the requested map
	tiles := world.NewTileManager()
	if err := tiles.LoadTileConfig(cfg.World.TilesFile); err != nil {
		log.Fatalf("Failed to load tile config: %v", err)
	}
	key := *mapKey
	if key == "" {
		key = cfg.World.DefaultMap
	}
	m, err := world.NewMapLoader(tiles).LoadMap(cfg.World.MapsFile, key)
	if err != nil {
		log.Fatalf("Failed to load map: %v", err)
	}

	// Set window properties from config
	ebiten.SetWindowSize(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(cfg.GetTPS())

	g, err := game.NewGame(cfg, m, tiles)
	if err != nil {
		log.Fatal(err)
	}
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
