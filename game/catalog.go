package game

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Unit classes. Production units raise income, military units raise a
// tile's defense capacity.
const (
	UnitProd = "prod"
	UnitMil  = "mil"
)

// UnitType is one entry of the static build catalog. Read-only at runtime.
type UnitType struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Type        string `yaml:"type"` // prod | mil
	Cost        int    `yaml:"cost"`
	Val         int    `yaml:"val"` // energy/sec for prod, defense bonus for mil
	Symbol      string `yaml:"symbol"`
	Upgrade     string `yaml:"upgrade"` // successor key, "" = max tier
}

// Catalog maps unit keys to their definitions.
type Catalog map[string]UnitType

// DefaultCatalog is the built-in shop used when no catalog file is given.
func DefaultCatalog() Catalog {
	return Catalog{
		"solar_siphon": {
			Name:        "Solar Siphon",
			Description: "Harnesses stellar radiation to generate energy. A modest foundation for any colony.",
			Type:        UnitProd,
			Cost:        20,
			Val:         1,
			Symbol:      "⚡",
			Upgrade:     "flux_reactor",
		},
		"flux_reactor": {
			Name:        "Flux Reactor",
			Description: "A sophisticated reactor core that channels exotic matter for potent energy production.",
			Type:        UnitProd,
			Cost:        150,
			Val:         5,
			Symbol:      "💠",
			Upgrade:     "void_harvester",
		},
		"void_harvester": {
			Name:        "Void Harvester",
			Description: "Taps directly into the void itself, extracting energy from the fundamental fabric of reality.",
			Type:        UnitProd,
			Cost:        600,
			Val:         25,
			Symbol:      "🌌",
			Upgrade:     "",
		},
		"orbital_wall": {
			Name:        "Orbital Wall",
			Description: "A defensive barrier that hardens your territory.",
			Type:        UnitMil,
			Cost:        50,
			Val:         50,
			Symbol:      "🛡️",
			Upgrade:     "laser_battery",
		},
		"laser_battery": {
			Name:        "Laser Battery",
			Description: "Advanced directed energy weapon. Devastates opposing forces with precision firepower.",
			Type:        UnitMil,
			Cost:        300,
			Val:         150,
			Symbol:      "🔭",
			Upgrade:     "",
		},
	}
}

// LoadCatalog reads a YAML catalog file of key -> UnitType.
func LoadCatalog(path string) (Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

func (c Catalog) validate() error {
	if len(c) == 0 {
		return fmt.Errorf("no unit types defined")
	}
	for key, u := range c {
		if u.Type != UnitProd && u.Type != UnitMil {
			return fmt.Errorf("unit %q: bad type %q", key, u.Type)
		}
		if u.Cost <= 0 || u.Val <= 0 {
			return fmt.Errorf("unit %q: cost and val must be positive", key)
		}
		if u.Upgrade != "" {
			if _, ok := c[u.Upgrade]; !ok {
				return fmt.Errorf("unit %q: unknown upgrade %q", key, u.Upgrade)
			}
		}
	}
	return nil
}

// KeysByCost returns the keys of the given class, costliest first.
// Order is deterministic for equal costs.
func (c Catalog) KeysByCost(class string) []string {
	keys := make([]string, 0, len(c))
	for k, u := range c {
		if u.Type == class {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if c[keys[i]].Cost != c[keys[j]].Cost {
			return c[keys[i]].Cost > c[keys[j]].Cost
		}
		return keys[i] < keys[j]
	})
	return keys
}
