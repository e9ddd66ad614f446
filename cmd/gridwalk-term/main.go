package main

import (
	"flag"
	"log"

	"gridwalk/internal/config"
	"gridwalk/internal/terminal"
	"gridwalk/internal/world"

	"github.com/gdamore/tcell/v2"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	mapKey := flag.String("map", "", "map key from the maps manifest (defaults to world.default_map)")
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()

	cfg := config.MustLoadConfig(*configPath)

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

	audioCfg := cfg.Audio
	if *mute {
		audioCfg.Enabled = false
	}
	audio, err := terminal.NewAudio(audioCfg)
	if err != nil {
		log.Printf("Warning: Failed to init audio, continuing muted: %v", err)
	}
	defer audio.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to init screen: %v", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	g, err := terminal.NewGame(screen, cfg, m, audio)
	if err != nil {
		screen.Fini()
		log.Fatal(err)
	}
	g.Run()
}
