package itemstore

import (
	"testing"

	"github.com/verdant-games/gardensim/internal/catalog"
	"github.com/verdant-games/gardensim/internal/item"
)

func TestAddItemMergesStacks(t *testing.T) {
	reg := catalog.SampleRegistry()
	list := NewItemList(reg)
	if res := list.AddItem("apple seed", 3); !res.Successful() {
		t.Fatalf("AddItem: %v", res.Messages)
	}
	if res := list.AddItem(reg.ByName("apple seed"), 2); !res.Successful() {
		t.Fatalf("AddItem by template: %v", res.Messages)
	}
	if list.Len() != 1 {
		t.Fatalf("stacks of the same template must merge, got %d stacks", list.Len())
	}
	if got := list.Quantity("apple seed"); got != 5 {
		t.Fatalf("expected quantity 5, got %d", got)
	}
}

func TestAddItemRejectsPlacedTemplates(t *testing.T) {
	reg := catalog.SampleRegistry()
	list := NewItemList(reg)
	if res := list.AddItem("apple tree", 1); res.Successful() {
		t.Fatalf("placed templates must not be carried in a container")
	}
}

func TestAddItemUnknownName(t *testing.T) {
	reg := catalog.SampleRegistry()
	list := NewItemList(reg)
	if res := list.AddItem("moon rock", 1); res.Successful() {
		t.Fatalf("unknown item name should fail")
	}
}

func TestUpdateQuantityRemovesAtZero(t *testing.T) {
	reg := catalog.SampleRegistry()
	list := NewItemList(reg)
	list.AddItem("apple seed", 2)
	res := list.UpdateQuantity("apple seed", -2)
	if !res.Successful() || res.Payload != 0 {
		t.Fatalf("expected remaining 0, got %+v", res)
	}
	if list.Contains("apple seed") {
		t.Fatalf("stack at quantity zero must be removed")
	}
}

func TestUpdateQuantityRejectsNegativeBalance(t *testing.T) {
	reg := catalog.SampleRegistry()
	list := NewItemList(reg)
	list.AddItem("apple seed", 1)
	if res := list.UpdateQuantity("apple seed", -2); res.Successful() {
		t.Fatalf("quantity must never go negative")
	}
	if got := list.Quantity("apple seed"); got != 1 {
		t.Fatalf("failed update must not change the stack, got %d", got)
	}
}

func TestUpdateQuantityMissingStack(t *testing.T) {
	reg := catalog.SampleRegistry()
	list := NewItemList(reg)
	if res := list.UpdateQuantity("apple seed", 3); res.Successful() {
		t.Fatalf("a positive delta must not conjure a stack out of nothing")
	}
	if res := list.UpdateQuantity("apple seed", -1); res.Successful() {
		t.Fatalf("a negative delta on a missing stack must fail")
	}
	if list.Len() != 0 {
		t.Fatalf("failed updates must leave the container empty, got %d stacks", list.Len())
	}
}

func TestKeyByItemInstance(t *testing.T) {
	reg := catalog.SampleRegistry()
	list := NewItemList(reg)
	list.AddItem("banana seed", 4)
	stack := list.Get("banana seed")
	if stack == nil {
		t.Fatalf("expected a stack")
	}
	other := item.NewInventoryItem(reg.ByName("banana seed"), 1)
	if !list.ContainsAmount(other, 4) {
		t.Fatalf("an item instance should key into the same stack")
	}
}

func TestItemListRoundTripDropsMalformed(t *testing.T) {
	reg := catalog.SampleRegistry()
	list := NewItemList(reg)
	list.AddItem("apple seed", 3)
	list.AddItem("apple", 9)
	data := list.ToData()
	data = append(data, item.InventoryItemData{ID: "x", TemplateID: "vanished", Quantity: 5})
	back := ItemListFromData(data, reg)
	if back.Len() != 2 {
		t.Fatalf("unresolvable stacks must be dropped, got %d stacks", back.Len())
	}
	if got := back.Quantity("apple"); got != 9 {
		t.Fatalf("expected 9 apples, got %d", got)
	}
}
