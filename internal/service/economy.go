package service

import (
	"log"

	"github.com/verdant-games/gardensim/internal/item"
	"github.com/verdant-games/gardensim/internal/itemstore"
	"github.com/verdant-games/gardensim/internal/persist"
	"github.com/verdant-games/gardensim/internal/result"
)

// BuyFromStore purchases qty of an item from a named store into the
// player's inventory. Items above the player's level stay on the shelf.
func (s *Service) BuyFromStore(p *Player, storeName string, key itemstore.Key, qty int) result.Result[*item.InventoryItem] {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, err := s.Store(storeName)
	if err != nil {
		return result.Failf[*item.InventoryItem]("%v", err)
	}
	if stack := store.Stock.Get(key); stack != nil && stack.Template.Level > p.User.Level() {
		return result.Failf[*item.InventoryItem]("%s needs level %d", stack.Template.Name, stack.Template.Level)
	}
	return store.BuyItemFromStore(p.Inventory, key, qty)
}

// SellToStore sells qty of an inventory item to a named store.
func (s *Service) SellToStore(p *Player, storeName string, key itemstore.Key, qty int) result.Result[int] {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, err := s.Store(storeName)
	if err != nil {
		return result.Failf[int]("%v", err)
	}
	return store.SellItemToStore(p.Inventory, key, qty)
}

// TrashItem discards qty of an inventory item without compensation.
func (s *Service) TrashItem(p *Player, key itemstore.Key, qty int) result.Result[int] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return p.Inventory.TrashItem(key, qty)
}

// RestockStores runs the restock check on every store, refilling those that
// are due.
func (s *Service) RestockStores() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for name, store := range s.stores {
		if store.NeedsRestock(now) {
			store.RestockStore(now)
			log.Printf("restocked %s", name)
		}
	}
}

// ExpandGardenRow buys one more garden row through the named store. The
// gold and the grid change together or not at all.
func (s *Service) ExpandGardenRow(p *Player, storeName string) result.Result[int] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expandLocked(p, storeName, p.Garden.RowCost(), func() result.Result[struct{}] {
		return p.Garden.AddRow(p.User.Level(), s.now())
	})
}

// ExpandGardenColumn buys one more garden column through the named store.
func (s *Service) ExpandGardenColumn(p *Player, storeName string) result.Result[int] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expandLocked(p, storeName, p.Garden.ColumnCost(), func() result.Result[struct{}] {
		return p.Garden.AddColumn(p.User.Level(), s.now())
	})
}

func (s *Service) expandLocked(p *Player, storeName string, cost int, grow func() result.Result[struct{}]) result.Result[int] {
	store, err := s.Store(storeName)
	if err != nil {
		return result.Failf[int]("%v", err)
	}
	charged := store.UpgradePrice(cost)
	tx := persist.RunTransaction(
		persist.Step{
			Name: "pay for upgrade",
			Apply: func() result.Result[struct{}] {
				res := store.BuyUpgrade(p.Inventory, cost)
				if !res.Successful() {
					return result.FailMessages[struct{}](res.Messages)
				}
				return result.Ok(struct{}{})
			},
			Rollback: func() { p.Inventory.AddGold(charged) },
		},
		persist.Step{
			Name:  "grow garden",
			Apply: grow,
		},
	)
	if !tx.Successful() {
		return result.FailMessages[int](tx.Messages)
	}
	return result.Ok(p.Inventory.Gold)
}

// ShrinkGardenRow removes the last garden row. Whatever stood on it is
// discarded, and nothing is refunded.
func (s *Service) ShrinkGardenRow(p *Player) result.Result[struct{}] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return p.Garden.RemoveRow()
}

// ShrinkGardenColumn removes the last garden column.
func (s *Service) ShrinkGardenColumn(p *Player) result.Result[struct{}] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return p.Garden.RemoveColumn()
}
