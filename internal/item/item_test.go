package item

import (
	"testing"
	"time"

	"github.com/verdant-games/gardensim/internal/catalog"
)

func TestUseSeedYieldsPlant(t *testing.T) {
	reg := catalog.SampleRegistry()
	seed := NewInventoryItem(reg.ByName("apple seed"), 3)
	res := seed.Use(reg)
	if !res.Successful() {
		t.Fatalf("using a seed should succeed: %v", res.Messages)
	}
	if res.Payload.Subtype != catalog.SubtypePlant || res.Payload.Name != "apple tree" {
		t.Fatalf("seed should yield the apple tree template, got %+v", res.Payload)
	}
}

func TestUseHarvestedItemFails(t *testing.T) {
	reg := catalog.SampleRegistry()
	apple := NewInventoryItem(reg.ByName("apple"), 1)
	res := apple.Use(reg)
	if res.Successful() {
		t.Fatalf("harvested items must not be usable")
	}
	if res.Message() != "cannot use this item type" {
		t.Fatalf("unexpected failure message %q", res.Message())
	}
}

func TestUsePlacedDecorationYieldsBlueprint(t *testing.T) {
	reg := catalog.SampleRegistry()
	bench := NewPlacedItem(reg.ByName("bench"))
	res := bench.Use(reg)
	if !res.Successful() {
		t.Fatalf("using a decoration should succeed: %v", res.Messages)
	}
	if res.Payload.Subtype != catalog.SubtypeBlueprint {
		t.Fatalf("decoration should yield its blueprint, got %+v", res.Payload)
	}
}

func TestUseGroundFails(t *testing.T) {
	reg := catalog.SampleRegistry()
	ground := NewPlacedItem(reg.ByName("ground"))
	if res := ground.Use(reg); res.Successful() {
		t.Fatalf("ground must not be usable")
	}
}

func TestInventoryItemRoundTrip(t *testing.T) {
	reg := catalog.SampleRegistry()
	orig := NewInventoryItem(reg.ByName("banana seed"), 7)
	back := InventoryItemFromData(orig.ToData(), reg)
	if back.ID != orig.ID || back.Template != orig.Template || back.Quantity != 7 {
		t.Fatalf("round trip mismatch: %+v vs %+v", back, orig)
	}
}

func TestInventoryItemFromMalformedData(t *testing.T) {
	reg := catalog.SampleRegistry()
	back := InventoryItemFromData(InventoryItemData{TemplateID: "gone", Quantity: -4}, reg)
	if !back.Template.IsError() {
		t.Fatalf("unknown template should resolve to the error sentinel")
	}
	if back.Quantity != 0 {
		t.Fatalf("negative quantity should clamp to 0, got %d", back.Quantity)
	}
	if back.ID == "" {
		t.Fatalf("missing id should be regenerated")
	}
}

func TestPlacedItemRoundTrip(t *testing.T) {
	reg := catalog.SampleRegistry()
	orig := NewPlacedItem(reg.ByName("apple tree"))
	orig.Status = "thriving"
	back := PlacedItemFromData(orig.ToData(), reg)
	if back.ID != orig.ID || back.Template != orig.Template || back.Status != "thriving" {
		t.Fatalf("round trip mismatch: %+v vs %+v", back, orig)
	}
}

func TestEggDetailsRoundTrip(t *testing.T) {
	reg := catalog.SampleRegistry()
	now := time.Unix(1_700_000_000, 0)
	egg, err := LayEgg(reg.ByName("nesting goose egg"), "gertie", "bruce", now)
	if err != nil {
		t.Fatalf("LayEgg: %v", err)
	}
	details, err := egg.EggDetailsOf()
	if err != nil {
		t.Fatalf("EggDetailsOf: %v", err)
	}
	if details.Parent1 != "gertie" || details.Parent2 != "bruce" || !details.Fertilized {
		t.Fatalf("unexpected details: %+v", details)
	}
	if details.HatchAt != now.Add(24*time.Hour).Unix() {
		t.Fatalf("hatch time should be laid time plus incubation, got %d", details.HatchAt)
	}
	if details.ReadyToHatch(now) {
		t.Fatalf("egg must not hatch before incubation elapses")
	}
	if !details.ReadyToHatch(now.Add(24 * time.Hour)) {
		t.Fatalf("egg should hatch once incubation elapses")
	}
}

func TestEggDetailsOnNonEgg(t *testing.T) {
	reg := catalog.SampleRegistry()
	bench := NewPlacedItem(reg.ByName("bench"))
	if err := bench.SetEggDetails(EggDetails{}); err == nil {
		t.Fatalf("setting egg details on a decoration should fail")
	}
	if _, err := bench.EggDetailsOf(); err == nil {
		t.Fatalf("reading egg details off a decoration should fail")
	}
}
