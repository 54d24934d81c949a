// Package item implements the two item instance types that reference catalog
// templates: stackable inventory items and single placed items occupying a
// garden plot. Using an item follows its template's transform link across the
// inventory/placed boundary.
package item

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/verdant-games/gardensim/internal/catalog"
	"github.com/verdant-games/gardensim/internal/result"
)

// InventoryItem is a stack of identical items held in a container. Quantity
// is managed by the owning container; the instance itself only knows its
// template.
type InventoryItem struct {
	ID       string
	Template *catalog.Template
	Quantity int
}

// PlacedItem occupies one garden plot. Status carries subtype-specific state
// as an opaque string (eggs store their details there as JSON).
type PlacedItem struct {
	ID       string
	Template *catalog.Template
	Status   string
}

// NewInventoryItem creates a fresh stack with a generated instance id.
func NewInventoryItem(tpl *catalog.Template, quantity int) *InventoryItem {
	return &InventoryItem{ID: uuid.NewString(), Template: tpl, Quantity: quantity}
}

// NewPlacedItem creates a placed instance with a generated id.
func NewPlacedItem(tpl *catalog.Template) *PlacedItem {
	return &PlacedItem{ID: uuid.NewString(), Template: tpl}
}

// Name returns the template display name.
func (it *InventoryItem) Name() string { return it.Template.Name }

// Name returns the template display name.
func (p *PlacedItem) Name() string { return p.Template.Name }

// Use consumes one unit conceptually and yields the placed-side template this
// stack turns into. Seeds become plants, blueprints become decorations, and
// inventory eggs become placed eggs. Harvested items are terminal.
func (it *InventoryItem) Use(reg *catalog.Registry) result.Result[*catalog.Template] {
	switch it.Template.Subtype {
	case catalog.SubtypeSeed, catalog.SubtypeBlueprint, catalog.SubtypeEgg:
		target := reg.TransformOf(it.Template)
		if target.IsError() {
			return result.Failf[*catalog.Template]("%s has no placeable form", it.Template.Name)
		}
		return result.Ok(target)
	default:
		return result.Failf[*catalog.Template]("cannot use this item type")
	}
}

// Use yields the inventory-side template this placed item turns back into.
// Plants yield their harvested item, decorations fold back into their
// blueprint, and placed eggs become inventory eggs again. Ground is terminal.
func (p *PlacedItem) Use(reg *catalog.Registry) result.Result[*catalog.Template] {
	switch p.Template.Subtype {
	case catalog.SubtypePlant, catalog.SubtypeDecoration, catalog.SubtypeEgg:
		target := reg.TransformOf(p.Template)
		if target.IsError() {
			return result.Failf[*catalog.Template]("%s has no inventory form", p.Template.Name)
		}
		return result.Ok(target)
	default:
		return result.Failf[*catalog.Template]("cannot use this item type")
	}
}

// InventoryItemData is the storage shape of an inventory stack.
type InventoryItemData struct {
	ID         string `json:"id"`
	TemplateID string `json:"templateId"`
	Quantity   int    `json:"quantity"`
}

// PlacedItemData is the storage shape of a placed item.
type PlacedItemData struct {
	ID         string `json:"id"`
	TemplateID string `json:"templateId"`
	Status     string `json:"status,omitempty"`
}

// ToData flattens the stack for storage.
func (it *InventoryItem) ToData() InventoryItemData {
	return InventoryItemData{ID: it.ID, TemplateID: it.Template.ID, Quantity: it.Quantity}
}

// ToData flattens the placed item for storage.
func (p *PlacedItem) ToData() PlacedItemData {
	return PlacedItemData{ID: p.ID, TemplateID: p.Template.ID, Status: p.Status}
}

// InventoryItemFromData rebuilds a stack from storage. An unknown template id
// resolves to the error sentinel rather than failing, so a stale save still
// loads.
func InventoryItemFromData(d InventoryItemData, reg *catalog.Registry) *InventoryItem {
	id := d.ID
	if id == "" {
		id = uuid.NewString()
	}
	qty := d.Quantity
	if qty < 0 {
		qty = 0
	}
	return &InventoryItem{ID: id, Template: reg.ByID(d.TemplateID), Quantity: qty}
}

// PlacedItemFromData rebuilds a placed item from storage.
func PlacedItemFromData(d PlacedItemData, reg *catalog.Registry) *PlacedItem {
	id := d.ID
	if id == "" {
		id = uuid.NewString()
	}
	return &PlacedItem{ID: id, Template: reg.ByID(d.TemplateID), Status: d.Status}
}

// String implements fmt.Stringer for log lines.
func (it *InventoryItem) String() string {
	return fmt.Sprintf("%s x%d", it.Template.Name, it.Quantity)
}

func (p *PlacedItem) String() string {
	return p.Template.Name
}
