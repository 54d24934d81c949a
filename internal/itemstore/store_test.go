package itemstore

import (
	"testing"
	"time"

	"github.com/verdant-games/gardensim/internal/catalog"
)

func testStocklist() Stocklist {
	return Stocklist{
		Name: "general",
		Entries: []StockEntry{
			{TemplateID: "seed-apple", Quantity: 10},
			{TemplateID: "seed-banana", Quantity: 5},
		},
	}
}

func TestNewStoreStartsFullyStocked(t *testing.T) {
	reg := catalog.SampleRegistry()
	now := time.Unix(1_700_000_000, 0)
	store := NewStore(reg, "general store", 1.2, 0.8, time.Hour, testStocklist(), now)
	if got := store.Stock.Quantity("apple seed"); got != 10 {
		t.Fatalf("expected 10 apple seeds in stock, got %d", got)
	}
	if store.NeedsRestock(now) {
		t.Fatalf("a fresh store must not need restocking")
	}
}

func TestBuyItemFromStore(t *testing.T) {
	reg := catalog.SampleRegistry()
	now := time.Unix(1_700_000_000, 0)
	store := NewStore(reg, "general store", 1.2, 0.8, time.Hour, testStocklist(), now)
	inv := NewInventory(reg, 100)

	// Apple seed base price 10, buy multiplier 1.2 -> 12 each.
	res := store.BuyItemFromStore(inv, "apple seed", 3)
	if !res.Successful() {
		t.Fatalf("BuyItemFromStore: %v", res.Messages)
	}
	if inv.Gold != 64 {
		t.Fatalf("expected 64 gold after paying 36, got %d", inv.Gold)
	}
	if inv.Items.Quantity("apple seed") != 3 || store.Stock.Quantity("apple seed") != 7 {
		t.Fatalf("stock did not move: inv %d, store %d", inv.Items.Quantity("apple seed"), store.Stock.Quantity("apple seed"))
	}
}

func TestBuyItemFromStoreOutOfStock(t *testing.T) {
	reg := catalog.SampleRegistry()
	now := time.Unix(1_700_000_000, 0)
	store := NewStore(reg, "general store", 1.2, 0.8, time.Hour, testStocklist(), now)
	inv := NewInventory(reg, 10_000)
	if res := store.BuyItemFromStore(inv, "apple seed", 11); res.Successful() {
		t.Fatalf("buying more than stocked must fail")
	}
	if inv.Gold != 10_000 || store.Stock.Quantity("apple seed") != 10 {
		t.Fatalf("failed buy must move nothing")
	}
}

func TestBuyItemFromStoreInsufficientGold(t *testing.T) {
	reg := catalog.SampleRegistry()
	now := time.Unix(1_700_000_000, 0)
	store := NewStore(reg, "general store", 1.2, 0.8, time.Hour, testStocklist(), now)
	inv := NewInventory(reg, 11)
	if res := store.BuyItemFromStore(inv, "apple seed", 1); res.Successful() {
		t.Fatalf("11 gold cannot cover a 12 gold seed")
	}
	if store.Stock.Quantity("apple seed") != 10 {
		t.Fatalf("failed buy must leave store stock untouched")
	}
}

func TestSellItemToStore(t *testing.T) {
	reg := catalog.SampleRegistry()
	now := time.Unix(1_700_000_000, 0)
	store := NewStore(reg, "general store", 1.2, 0.8, time.Hour, testStocklist(), now)
	inv := NewInventory(reg, 0)
	inv.GainItem("apple", 4)

	// Apple base price 15, sell multiplier 0.8 -> 12 each.
	res := store.SellItemToStore(inv, "apple", 4)
	if !res.Successful() {
		t.Fatalf("SellItemToStore: %v", res.Messages)
	}
	if inv.Gold != 48 {
		t.Fatalf("expected 48 gold, got %d", inv.Gold)
	}
	if store.Stock.Quantity("apple") != 4 {
		t.Fatalf("sold items should land in store stock, got %d", store.Stock.Quantity("apple"))
	}
}

func TestRestockTopsUpAndAdvancesSchedule(t *testing.T) {
	reg := catalog.SampleRegistry()
	now := time.Unix(1_700_000_000, 0)
	store := NewStore(reg, "general store", 1.2, 0.8, time.Hour, testStocklist(), now)
	inv := NewInventory(reg, 10_000)
	store.BuyItemFromStore(inv, "apple seed", 6)

	// Not due yet: a no-op that still succeeds.
	res := store.RestockStore(now.Add(30 * time.Minute))
	if !res.Successful() {
		t.Fatalf("early restock should be a successful no-op")
	}
	if store.Stock.Quantity("apple seed") != 4 {
		t.Fatalf("early restock must not refill stock")
	}

	due := now.Add(90 * time.Minute)
	if !store.NeedsRestock(due) {
		t.Fatalf("store should need restocking after the scheduled instant")
	}
	if res := store.RestockStore(due); !res.Successful() {
		t.Fatalf("RestockStore: %v", res.Messages)
	}
	if store.Stock.Quantity("apple seed") != 10 {
		t.Fatalf("restock should top stock back up to the cap, got %d", store.Stock.Quantity("apple seed"))
	}
	if !store.RestockTime.Equal(now.Add(2 * time.Hour)) {
		t.Fatalf("restock should advance the schedule to the next interval, got %v", store.RestockTime)
	}
}

func TestRestockKeepsSurplus(t *testing.T) {
	reg := catalog.SampleRegistry()
	now := time.Unix(1_700_000_000, 0)
	store := NewStore(reg, "general store", 1.2, 0.8, time.Hour, testStocklist(), now)
	inv := NewInventory(reg, 0)
	inv.GainItem("apple seed", 5)
	store.SellItemToStore(inv, "apple seed", 5)

	store.RestockStore(now.Add(2 * time.Hour))
	if got := store.Stock.Quantity("apple seed"); got != 15 {
		t.Fatalf("restock must not trim stock above the cap, got %d", got)
	}
}

func TestBuyUpgradeScalesCost(t *testing.T) {
	reg := catalog.SampleRegistry()
	now := time.Unix(1_700_000_000, 0)
	store := NewStore(reg, "general store", 1.2, 0.8, time.Hour, testStocklist(), now)
	store.UpgradeMultiplier = 1.5
	inv := NewInventory(reg, 160)

	if got := store.UpgradePrice(101); got != 151 {
		t.Fatalf("upgrade price should floor 151.5 to 151, got %d", got)
	}
	res := store.BuyUpgrade(inv, 100)
	if !res.Successful() {
		t.Fatalf("BuyUpgrade: %v", res.Messages)
	}
	if inv.Gold != 10 {
		t.Fatalf("expected 10 gold after a 150 charge, got %d", inv.Gold)
	}
	if res := store.BuyUpgrade(inv, 100); res.Successful() {
		t.Fatalf("an unaffordable upgrade must fail")
	}
}

func TestStoreRoundTrip(t *testing.T) {
	reg := catalog.SampleRegistry()
	now := time.Unix(1_700_000_000, 0)
	store := NewStore(reg, "general store", 1.2, 0.8, time.Hour, testStocklist(), now)
	inv := NewInventory(reg, 10_000)
	store.BuyItemFromStore(inv, "banana seed", 2)
	data := store.ToData()

	fresh := NewStore(reg, "general store", 1.2, 0.8, time.Hour, testStocklist(), now.Add(5*time.Hour))
	fresh.ApplyData(data, now.Add(5*time.Hour))
	if fresh.Stock.Quantity("banana seed") != 3 {
		t.Fatalf("expected restored stock of 3, got %d", fresh.Stock.Quantity("banana seed"))
	}
	if !fresh.RestockTime.Equal(store.RestockTime) {
		t.Fatalf("restock time should restore, got %v want %v", fresh.RestockTime, store.RestockTime)
	}
}
