package main

import (
	"fmt"
	"log"
	"net/http"

	"gridfall/config"
	"gridfall/game"
	"gridfall/network"
	"gridfall/room"
)

func main() {
	cfg := config.Load()

	catalog := game.DefaultCatalog()
	if cfg.CatalogPath != "" {
		loaded, err := game.LoadCatalog(cfg.CatalogPath)
		if err != nil {
			log.Fatalf("catalog: %v", err)
		}
		catalog = loaded
	}

	settings := game.Settings{
		Width:           cfg.MapWidth,
		Height:          cfg.MapHeight,
		Cooldown:        cfg.Cooldown(),
		StartingEnergy:  cfg.StartingEnergy,
		StartingIncome:  cfg.StartingEnergyPS,
		BaseTileDefense: cfg.BaseTileDefense,
		HomeTileDefense: cfg.HomeTileDefense,
		SpawnAttempts:   cfg.SpawnAttempts,
	}

	manager := room.NewManager(settings, catalog, cfg.EconomyTick(), cfg.BotThrottle(), cfg.BotCount)
	srv := network.NewServer(manager)

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("listening on %s (ws endpoint: /ws, grid %dx%d)", addr, cfg.MapWidth, cfg.MapHeight)
	log.Fatal(http.ListenAndServe(addr, srv.Routes()))
}
