// Package itemstore implements the containers that hold inventory stacks and
// the gold economy built on top of them: the player inventory and the shop
// with its stock list, price multipliers, and restock schedule.
package itemstore

import (
	"sort"

	"github.com/verdant-games/gardensim/internal/catalog"
	"github.com/verdant-games/gardensim/internal/item"
	"github.com/verdant-games/gardensim/internal/result"
)

// Key identifies a stack inside a container. A template display name, a
// *catalog.Template, or an *item.InventoryItem all work.
type Key any

// ItemList holds at most one stack per template. Quantities never go
// negative and a stack at quantity zero is removed outright.
type ItemList struct {
	reg   *catalog.Registry
	items map[string]*item.InventoryItem
}

// NewItemList returns an empty container resolving against the registry.
func NewItemList(reg *catalog.Registry) *ItemList {
	return &ItemList{reg: reg, items: make(map[string]*item.InventoryItem)}
}

// resolve turns any supported key into its template. Unsupported key types
// and unknown names resolve to the error sentinel.
func (l *ItemList) resolve(key Key) *catalog.Template {
	switch k := key.(type) {
	case string:
		return l.reg.ByName(k)
	case *catalog.Template:
		return k
	case *item.InventoryItem:
		return k.Template
	default:
		return catalog.ErrorTemplate()
	}
}

// Get returns the stack for the key, or nil when the container has none.
func (l *ItemList) Get(key Key) *item.InventoryItem {
	tpl := l.resolve(key)
	if tpl.IsError() {
		return nil
	}
	return l.items[tpl.ID]
}

// Contains reports whether the container holds any amount of the item.
func (l *ItemList) Contains(key Key) bool {
	return l.Get(key) != nil
}

// ContainsAmount reports whether the container holds at least qty of the
// item.
func (l *ItemList) ContainsAmount(key Key, qty int) bool {
	stack := l.Get(key)
	return stack != nil && stack.Quantity >= qty
}

// Quantity returns how many of the item the container holds.
func (l *ItemList) Quantity(key Key) int {
	if stack := l.Get(key); stack != nil {
		return stack.Quantity
	}
	return 0
}

// AddItem adds qty of the item, creating the stack if needed, and returns the
// resulting stack.
func (l *ItemList) AddItem(key Key, qty int) result.Result[*item.InventoryItem] {
	tpl := l.resolve(key)
	if tpl.IsError() {
		return result.Failf[*item.InventoryItem]("unknown item")
	}
	if tpl.Kind != catalog.KindInventory {
		return result.Failf[*item.InventoryItem]("%s cannot be carried", tpl.Name)
	}
	if qty <= 0 {
		return result.Failf[*item.InventoryItem]("quantity must be positive")
	}
	stack, ok := l.items[tpl.ID]
	if !ok {
		stack = item.NewInventoryItem(tpl, 0)
		l.items[tpl.ID] = stack
	}
	stack.Quantity += qty
	return result.Ok(stack)
}

// UpdateQuantity applies a signed delta to an existing stack. The delta must
// not take the stack negative; at exactly zero the stack is removed. The
// remaining quantity is returned. New stacks are created through AddItem, not
// here.
func (l *ItemList) UpdateQuantity(key Key, delta int) result.Result[int] {
	tpl := l.resolve(key)
	if tpl.IsError() {
		return result.Failf[int]("unknown item")
	}
	stack, ok := l.items[tpl.ID]
	if !ok {
		return result.Failf[int]("no %s in this container", tpl.Name)
	}
	next := stack.Quantity + delta
	if next < 0 {
		return result.Failf[int]("not enough %s", tpl.Name)
	}
	if next == 0 {
		delete(l.items, tpl.ID)
		return result.Ok(0)
	}
	stack.Quantity = next
	return result.Ok(next)
}

// DeleteItem removes the whole stack regardless of quantity.
func (l *ItemList) DeleteItem(key Key) result.Result[struct{}] {
	tpl := l.resolve(key)
	if tpl.IsError() {
		return result.Failf[struct{}]("unknown item")
	}
	if _, ok := l.items[tpl.ID]; !ok {
		return result.Failf[struct{}]("no %s to delete", tpl.Name)
	}
	delete(l.items, tpl.ID)
	return result.Ok(struct{}{})
}

// Items returns the stacks sorted by template name.
func (l *ItemList) Items() []*item.InventoryItem {
	out := make([]*item.InventoryItem, 0, len(l.items))
	for _, stack := range l.items {
		out = append(out, stack)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Template.Name < out[j].Template.Name })
	return out
}

// Len returns the number of distinct stacks.
func (l *ItemList) Len() int {
	return len(l.items)
}

// ToData flattens the container for storage.
func (l *ItemList) ToData() []item.InventoryItemData {
	stacks := l.Items()
	out := make([]item.InventoryItemData, 0, len(stacks))
	for _, stack := range stacks {
		out = append(out, stack.ToData())
	}
	return out
}

// ItemListFromData rebuilds a container from storage. Stacks whose template
// no longer resolves, or whose quantity is not positive, are dropped.
func ItemListFromData(data []item.InventoryItemData, reg *catalog.Registry) *ItemList {
	l := NewItemList(reg)
	for _, d := range data {
		stack := item.InventoryItemFromData(d, reg)
		if stack.Template.IsError() || stack.Quantity <= 0 {
			continue
		}
		l.items[stack.Template.ID] = stack
	}
	return l
}
