package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime knob the server reads at startup.
// All values come from the environment with defaults, so a bare
// `go run` works without a .env file.
type Config struct {
	MapWidth  int
	MapHeight int

	CooldownMs       int
	StartingEnergy   int
	StartingEnergyPS int
	BaseTileDefense  int
	HomeTileDefense  int
	EconomyTickMs    int
	BotThrottleMs    int
	BotCount         int
	SpawnAttempts    int

	CatalogPath string
	Port        int
}

func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Println("loaded environment from .env")
	}

	return Config{
		MapWidth:         envInt("MAP_WIDTH", 20),
		MapHeight:        envInt("MAP_HEIGHT", 20),
		CooldownMs:       envInt("COOLDOWN_MS", 3000),
		StartingEnergy:   envInt("STARTING_ENERGY", 10),
		StartingEnergyPS: envInt("STARTING_ENERGY_PER_SEC", 0),
		BaseTileDefense:  envInt("BASE_TILE_DEFENSE", 10),
		HomeTileDefense:  envInt("HOME_TILE_DEFENSE", 100),
		EconomyTickMs:    envInt("ECONOMY_TICK_MS", 1000),
		BotThrottleMs:    envInt("BOT_THROTTLE_MS", 2000),
		BotCount:         envInt("BOT_COUNT", 0),
		SpawnAttempts:    envInt("SPAWN_ATTEMPTS", 50),
		CatalogPath:      os.Getenv("CATALOG_PATH"),
		Port:             envInt("PORT", 3000),
	}
}

func (c Config) Cooldown() time.Duration {
	return time.Duration(c.CooldownMs) * time.Millisecond
}

func (c Config) EconomyTick() time.Duration {
	return time.Duration(c.EconomyTickMs) * time.Millisecond
}

func (c Config) BotThrottle() time.Duration {
	return time.Duration(c.BotThrottleMs) * time.Millisecond
}

func envInt(name string, def int) int {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: %s=%q is not an integer, using default %d", name, v, def)
		return def
	}
	return n
}
