// Package service wires the game together: it loads and saves player state
// through the repository and runs every player-facing operation as an
// all-or-nothing change against the in-memory state.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/verdant-games/gardensim/internal/catalog"
	"github.com/verdant-games/gardensim/internal/garden"
	"github.com/verdant-games/gardensim/internal/itemstore"
	"github.com/verdant-games/gardensim/internal/persist"
	"github.com/verdant-games/gardensim/internal/user"
)

// Settings are the game-balance knobs the service needs.
type Settings struct {
	GrowthRate        float64
	StartingGold      int
	StartingRows      int
	StartingCols      int
	UpgradeMultiplier float64
	InstantHarvestKey string
}

// Player is one player's full loaded state.
type Player struct {
	User      *user.User
	Inventory *itemstore.Inventory
	Garden    *garden.Garden
}

// Service runs the game. Player state is loaded on demand and cached;
// operations mutate the cached state and persist it afterwards.
type Service struct {
	reg      *catalog.Registry
	repo     persist.Repository
	stores   map[string]*itemstore.Store
	settings Settings
	now      func() time.Time

	mu      sync.RWMutex
	players map[string]*Player
}

// New creates a service. The stores map may be nil when the game runs
// without shops.
func New(reg *catalog.Registry, repo persist.Repository, stores map[string]*itemstore.Store, settings Settings) *Service {
	if settings.GrowthRate <= 0 {
		settings.GrowthRate = 1
	}
	if settings.StartingRows < garden.MinDimension {
		settings.StartingRows = garden.MinDimension
	}
	if settings.StartingCols < garden.MinDimension {
		settings.StartingCols = garden.MinDimension
	}
	if settings.UpgradeMultiplier <= 0 {
		settings.UpgradeMultiplier = 1
	}
	if stores == nil {
		stores = make(map[string]*itemstore.Store)
	}
	return &Service{
		reg:      reg,
		repo:     repo,
		stores:   stores,
		settings: settings,
		now:      time.Now,
		players:  make(map[string]*Player),
	}
}

// SetClock replaces the time source, used by tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// CreatePlayer makes a fresh player with the starting gold and garden and
// persists it. An existing username is refused.
func (s *Service) CreatePlayer(ctx context.Context, username, icon string) (*Player, error) {
	if username == "" || username == user.ErrorUsername {
		return nil, fmt.Errorf("invalid username %q", username)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, loaded := s.players[username]; loaded {
		return nil, fmt.Errorf("player %s already exists", username)
	}
	if _, err := s.repo.Load(ctx, persist.KindUser, username); err == nil {
		return nil, fmt.Errorf("player %s already exists", username)
	} else if !errors.Is(err, persist.ErrNotFound) {
		return nil, err
	}
	p := &Player{
		User:      user.New(username, icon, s.settings.GrowthRate),
		Inventory: itemstore.NewInventory(s.reg, s.settings.StartingGold),
		Garden:    garden.New(s.reg, s.settings.StartingRows, s.settings.StartingCols, s.settings.UpgradeMultiplier, s.now()),
	}
	if err := s.savePlayerLocked(ctx, p); err != nil {
		return nil, err
	}
	s.players[username] = p
	log.Printf("created player %s with %d gold and a %dx%d garden",
		username, s.settings.StartingGold, s.settings.StartingRows, s.settings.StartingCols)
	return p, nil
}

// Player returns the loaded state for a username, loading from the
// repository on first access. Malformed stored records degrade to their
// sentinels instead of failing the load.
func (s *Service) Player(ctx context.Context, username string) (*Player, error) {
	s.mu.RLock()
	p, ok := s.players[username]
	s.mu.RUnlock()
	if ok {
		return p, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.players[username]; ok {
		return p, nil
	}

	var userData user.Data
	if err := persist.LoadJSON(ctx, s.repo, persist.KindUser, username, &userData); err != nil {
		return nil, err
	}
	loaded := user.FromData(userData)
	if loaded.IsError() {
		log.Printf("stored profile for %s is malformed, serving sentinel", username)
	}

	p = &Player{User: loaded}

	var invData itemstore.InventoryData
	switch err := persist.LoadJSON(ctx, s.repo, persist.KindInventory, username, &invData); {
	case err == nil:
		p.Inventory = itemstore.InventoryFromData(invData, s.reg)
	case errors.Is(err, persist.ErrNotFound):
		p.Inventory = itemstore.NewInventory(s.reg, s.settings.StartingGold)
	default:
		return nil, err
	}

	var gardenData garden.GardenData
	switch err := persist.LoadJSON(ctx, s.repo, persist.KindGarden, username, &gardenData); {
	case err == nil:
		p.Garden = garden.FromData(gardenData, s.reg, s.now())
	case errors.Is(err, persist.ErrNotFound):
		p.Garden = garden.New(s.reg, s.settings.StartingRows, s.settings.StartingCols, s.settings.UpgradeMultiplier, s.now())
	default:
		return nil, err
	}

	s.players[username] = p
	return p, nil
}

// SavePlayer persists a player's current state.
func (s *Service) SavePlayer(ctx context.Context, username string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.players[username]
	if !ok {
		return fmt.Errorf("player %s is not loaded", username)
	}
	return s.savePlayerLocked(ctx, p)
}

func (s *Service) savePlayerLocked(ctx context.Context, p *Player) error {
	name := p.User.Username
	if err := persist.SaveJSON(ctx, s.repo, persist.KindUser, name, p.User.ToData()); err != nil {
		return err
	}
	if err := persist.SaveJSON(ctx, s.repo, persist.KindInventory, name, p.Inventory.ToData()); err != nil {
		return err
	}
	return persist.SaveJSON(ctx, s.repo, persist.KindGarden, name, p.Garden.ToData())
}

// SaveAll persists every loaded player and every store.
func (s *Service) SaveAll(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.players {
		if err := s.savePlayerLocked(ctx, p); err != nil {
			return err
		}
	}
	for name, store := range s.stores {
		if err := persist.SaveJSON(ctx, s.repo, persist.KindStore, name, store.ToData()); err != nil {
			return err
		}
	}
	return nil
}

// RestoreStores applies any persisted store state over the configured
// stores. Missing records keep the fresh defaults.
func (s *Service) RestoreStores(ctx context.Context) error {
	now := s.now()
	for name, store := range s.stores {
		var data itemstore.StoreData
		err := persist.LoadJSON(ctx, s.repo, persist.KindStore, name, &data)
		if errors.Is(err, persist.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		store.ApplyData(data, now)
	}
	return nil
}

// Store resolves a configured store by name.
func (s *Service) Store(name string) (*itemstore.Store, error) {
	store, ok := s.stores[name]
	if !ok {
		return nil, fmt.Errorf("no store named %s", name)
	}
	return store, nil
}

// instant reports whether the supplied key unlocks instant harvesting. An
// empty configured key disables the feature.
func (s *Service) instant(key string) bool {
	return s.settings.InstantHarvestKey != "" && key == s.settings.InstantHarvestKey
}
