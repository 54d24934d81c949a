package itemstore

import (
	"github.com/verdant-games/gardensim/internal/catalog"
	"github.com/verdant-games/gardensim/internal/item"
	"github.com/verdant-games/gardensim/internal/result"
)

// Inventory is a player's item container plus their gold balance. Every
// mutation either fully applies or leaves the inventory untouched.
type Inventory struct {
	Items *ItemList
	Gold  int
}

// NewInventory returns an empty inventory with the given starting gold.
func NewInventory(reg *catalog.Registry, gold int) *Inventory {
	return &Inventory{Items: NewItemList(reg), Gold: gold}
}

// GainItem adds qty of an item without any gold movement.
func (inv *Inventory) GainItem(key Key, qty int) result.Result[*item.InventoryItem] {
	return inv.Items.AddItem(key, qty)
}

// TrashItem discards qty of an item without compensation.
func (inv *Inventory) TrashItem(key Key, qty int) result.Result[int] {
	if qty <= 0 {
		return result.Failf[int]("quantity must be positive")
	}
	return inv.Items.UpdateQuantity(key, -qty)
}

// AddGold credits the balance. Negative amounts are rejected; use SpendGold
// for debits.
func (inv *Inventory) AddGold(amount int) result.Result[int] {
	if amount < 0 {
		return result.Failf[int]("amount must not be negative")
	}
	inv.Gold += amount
	return result.Ok(inv.Gold)
}

// SpendGold debits the balance, failing without change when it would go
// negative.
func (inv *Inventory) SpendGold(amount int) result.Result[int] {
	if amount < 0 {
		return result.Failf[int]("amount must not be negative")
	}
	if inv.Gold < amount {
		return result.Failf[int]("not enough gold")
	}
	inv.Gold -= amount
	return result.Ok(inv.Gold)
}

// BuyItem pays unitPrice per item and adds qty to the container. Gold is
// checked before anything moves.
func (inv *Inventory) BuyItem(key Key, qty, unitPrice int) result.Result[*item.InventoryItem] {
	if qty <= 0 {
		return result.Failf[*item.InventoryItem]("quantity must be positive")
	}
	cost := unitPrice * qty
	if inv.Gold < cost {
		return result.Failf[*item.InventoryItem]("not enough gold")
	}
	res := inv.Items.AddItem(key, qty)
	if !res.Successful() {
		return res
	}
	inv.Gold -= cost
	return res
}

// SellItem removes qty from the container and credits unitPrice per item.
func (inv *Inventory) SellItem(key Key, qty, unitPrice int) result.Result[int] {
	if qty <= 0 {
		return result.Failf[int]("quantity must be positive")
	}
	if !inv.Items.ContainsAmount(key, qty) {
		return result.Failf[int]("not enough items to sell")
	}
	if res := inv.Items.UpdateQuantity(key, -qty); !res.Successful() {
		return res
	}
	inv.Gold += unitPrice * qty
	return result.Ok(inv.Gold)
}

// UseItem consumes one of the item and returns the placed-side template it
// becomes. Nothing is consumed if the item cannot be used.
func (inv *Inventory) UseItem(key Key) result.Result[*catalog.Template] {
	stack := inv.Items.Get(key)
	if stack == nil {
		return result.Failf[*catalog.Template]("item not in inventory")
	}
	used := stack.Use(inv.Items.reg)
	if !used.Successful() {
		return used
	}
	if res := inv.Items.UpdateQuantity(stack.Template, -1); !res.Successful() {
		return result.FailMessages[*catalog.Template](res.Messages)
	}
	return used
}

// InventoryData is the storage shape of an inventory.
type InventoryData struct {
	Gold  int                      `json:"gold"`
	Items []item.InventoryItemData `json:"items"`
}

// ToData flattens the inventory for storage.
func (inv *Inventory) ToData() InventoryData {
	return InventoryData{Gold: inv.Gold, Items: inv.Items.ToData()}
}

// InventoryFromData rebuilds an inventory from storage. Negative gold clamps
// to zero.
func InventoryFromData(d InventoryData, reg *catalog.Registry) *Inventory {
	gold := d.Gold
	if gold < 0 {
		gold = 0
	}
	return &Inventory{Items: ItemListFromData(d.Items, reg), Gold: gold}
}
