package itemstore

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/verdant-games/gardensim/internal/catalog"
)

// StoreDef is the config-side definition of one store.
type StoreDef struct {
	Name               string  `yaml:"name"`
	BuyMultiplier      float64 `yaml:"buy_multiplier"`
	SellMultiplier     float64 `yaml:"sell_multiplier"`
	UpgradeMultiplier  float64 `yaml:"upgrade_multiplier"`
	RestockIntervalSec int     `yaml:"restock_interval"`
	Stocklist          string  `yaml:"stocklist"`
}

type stocklistFile struct {
	Stocklists []Stocklist `yaml:"stocklists"`
}

type storeFile struct {
	Stores []StoreDef `yaml:"stores"`
}

// LoadStocklists reads the stocklist definitions from a YAML file, keyed by
// name.
func LoadStocklists(path string) (map[string]Stocklist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stocklist file: %w", err)
	}
	var file stocklistFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse stocklist file: %w", err)
	}
	lists := make(map[string]Stocklist, len(file.Stocklists))
	for _, list := range file.Stocklists {
		if list.Name == "" {
			return nil, fmt.Errorf("stocklist file %s: unnamed stocklist", path)
		}
		if _, dup := lists[list.Name]; dup {
			return nil, fmt.Errorf("stocklist file %s: duplicate stocklist %q", path, list.Name)
		}
		lists[list.Name] = list
	}
	return lists, nil
}

// LoadStoreDefs reads the store definitions from a YAML file.
func LoadStoreDefs(path string) ([]StoreDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}
	var file storeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse store file: %w", err)
	}
	return file.Stores, nil
}

// BuildStores turns store definitions into live stores, resolving each
// definition's stocklist by name.
func BuildStores(reg *catalog.Registry, defs []StoreDef, lists map[string]Stocklist, now time.Time) (map[string]*Store, error) {
	stores := make(map[string]*Store, len(defs))
	for _, def := range defs {
		if def.Name == "" {
			return nil, fmt.Errorf("store definition without a name")
		}
		list, ok := lists[def.Stocklist]
		if !ok {
			return nil, fmt.Errorf("store %s: unknown stocklist %q", def.Name, def.Stocklist)
		}
		if _, dup := stores[def.Name]; dup {
			return nil, fmt.Errorf("duplicate store %q", def.Name)
		}
		interval := time.Duration(def.RestockIntervalSec) * time.Second
		store := NewStore(reg, def.Name, def.BuyMultiplier, def.SellMultiplier, interval, list, now)
		if def.UpgradeMultiplier > 0 {
			store.UpgradeMultiplier = def.UpgradeMultiplier
		}
		stores[def.Name] = store
	}
	return stores, nil
}
