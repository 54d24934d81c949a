package itemstore

import (
	"math"
	"time"

	"github.com/verdant-games/gardensim/internal/catalog"
	"github.com/verdant-games/gardensim/internal/item"
	"github.com/verdant-games/gardensim/internal/result"
)

// StockEntry caps how many of one item a store carries after a restock.
type StockEntry struct {
	TemplateID string `yaml:"template_id" json:"templateId"`
	Quantity   int    `yaml:"quantity" json:"quantity"`
}

// Stocklist is the full restock target of a store.
type Stocklist struct {
	Name    string       `yaml:"name" json:"name"`
	Entries []StockEntry `yaml:"entries" json:"entries"`
}

// Store sells items to players at a markup and buys them back at a discount.
// Stock refills on a fixed schedule: RestockTime is the next scheduled
// restock instant, and each restock tops every stocked item back up to its
// stocklist cap.
type Store struct {
	Name              string
	BuyMultiplier     float64
	SellMultiplier    float64
	UpgradeMultiplier float64
	RestockInterval   time.Duration
	RestockTime       time.Time
	Stocklist         Stocklist
	Stock             *ItemList

	reg *catalog.Registry
}

// NewStore creates a store with full stock and its first restock scheduled
// one interval from now.
func NewStore(reg *catalog.Registry, name string, buyMult, sellMult float64, interval time.Duration, list Stocklist, now time.Time) *Store {
	if interval <= 0 {
		interval = time.Hour
	}
	s := &Store{
		Name:              name,
		BuyMultiplier:     buyMult,
		SellMultiplier:    sellMult,
		UpgradeMultiplier: 1,
		RestockInterval:   interval,
		RestockTime:       now.Add(interval),
		Stocklist:         list,
		Stock:             NewItemList(reg),
		reg:               reg,
	}
	s.fillStock()
	return s
}

func (s *Store) fillStock() {
	for _, entry := range s.Stocklist.Entries {
		tpl := s.reg.ByID(entry.TemplateID)
		if tpl.IsError() || entry.Quantity <= 0 {
			continue
		}
		have := s.Stock.Quantity(tpl)
		if have < entry.Quantity {
			s.Stock.AddItem(tpl, entry.Quantity-have)
		}
	}
}

// BuyPrice is the per-unit price a player pays here.
func (s *Store) BuyPrice(tpl *catalog.Template) int {
	return tpl.Price(s.BuyMultiplier)
}

// SellPrice is the per-unit price a player receives here.
func (s *Store) SellPrice(tpl *catalog.Template) int {
	return tpl.Price(s.SellMultiplier)
}

// BuyItemFromStore moves qty of an item from store stock into the inventory
// in exchange for gold. Stock and gold are both checked before anything
// moves.
func (s *Store) BuyItemFromStore(inv *Inventory, key Key, qty int) result.Result[*item.InventoryItem] {
	if qty <= 0 {
		return result.Failf[*item.InventoryItem]("quantity must be positive")
	}
	stack := s.Stock.Get(key)
	if stack == nil || stack.Quantity < qty {
		return result.Failf[*item.InventoryItem]("store is out of stock")
	}
	tpl := stack.Template
	bought := inv.BuyItem(tpl, qty, s.BuyPrice(tpl))
	if !bought.Successful() {
		return bought
	}
	s.Stock.UpdateQuantity(tpl, -qty)
	return bought
}

// SellItemToStore moves qty of an item from the inventory into store stock
// in exchange for gold at the sell price.
func (s *Store) SellItemToStore(inv *Inventory, key Key, qty int) result.Result[int] {
	if qty <= 0 {
		return result.Failf[int]("quantity must be positive")
	}
	stack := inv.Items.Get(key)
	if stack == nil || stack.Quantity < qty {
		return result.Failf[int]("not enough items to sell")
	}
	tpl := stack.Template
	sold := inv.SellItem(tpl, qty, s.SellPrice(tpl))
	if !sold.Successful() {
		return sold
	}
	s.Stock.AddItem(tpl, qty)
	return sold
}

// BuyUpgrade charges a gold cost through the store, used for purchases that
// are not items, like garden expansions. The store's upgrade multiplier
// scales the base cost, floored.
func (s *Store) BuyUpgrade(inv *Inventory, baseCost int) result.Result[int] {
	return inv.SpendGold(s.UpgradePrice(baseCost))
}

// UpgradePrice is the gold this store charges for an upgrade with the given
// base cost.
func (s *Store) UpgradePrice(baseCost int) int {
	return int(math.Floor(float64(baseCost) * s.UpgradeMultiplier))
}

// NeedsRestock reports whether the next scheduled restock has been reached.
func (s *Store) NeedsRestock(now time.Time) bool {
	return !now.Before(s.RestockTime)
}

// RestockStore tops every stocked item back up to its cap and advances the
// schedule past now. Calling before the restock is due succeeds without
// changing anything.
func (s *Store) RestockStore(now time.Time) result.Result[struct{}] {
	if !s.NeedsRestock(now) {
		return result.Ok(struct{}{})
	}
	s.fillStock()
	for !s.RestockTime.After(now) {
		s.RestockTime = s.RestockTime.Add(s.RestockInterval)
	}
	return result.Ok(struct{}{})
}

// StoreData is the storage shape of a store's mutable state. The catalog-side
// definition (multipliers, stocklist) lives in config, not in saves.
type StoreData struct {
	Name        string                   `json:"name"`
	RestockTime int64                    `json:"restockTime"`
	Stock       []item.InventoryItemData `json:"stock"`
}

// ToData flattens the store's mutable state for storage.
func (s *Store) ToData() StoreData {
	return StoreData{Name: s.Name, RestockTime: s.RestockTime.Unix(), Stock: s.Stock.ToData()}
}

// ApplyData restores a store's mutable state from storage. A zero restock
// time reschedules from now.
func (s *Store) ApplyData(d StoreData, now time.Time) {
	s.Stock = ItemListFromData(d.Stock, s.reg)
	if d.RestockTime > 0 {
		s.RestockTime = time.Unix(d.RestockTime, 0)
	} else {
		s.RestockTime = now.Add(s.RestockInterval)
	}
}
