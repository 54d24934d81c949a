package garden

import (
	"testing"
	"time"

	"github.com/verdant-games/gardensim/internal/catalog"
	"github.com/verdant-games/gardensim/internal/item"
)

var epoch = time.Unix(1_700_000_000, 0)

func TestPlaceOnEmptyPlot(t *testing.T) {
	reg := catalog.SampleRegistry()
	p := NewPlot(reg, epoch)
	res := p.Place(reg.ByName("apple tree"), epoch)
	if !res.Successful() {
		t.Fatalf("Place: %v", res.Messages)
	}
	if p.UsesRemaining != 3 {
		t.Fatalf("a fresh apple tree should carry 3 harvests, got %d", p.UsesRemaining)
	}
	if res := p.Place(reg.ByName("bench"), epoch); res.Successful() {
		t.Fatalf("placing onto an occupied plot must fail")
	}
}

func TestPlaceRejectsGroundAndHarvested(t *testing.T) {
	reg := catalog.SampleRegistry()
	p := NewPlot(reg, epoch)
	if res := p.Place(reg.ByName("ground"), epoch); res.Successful() {
		t.Fatalf("ground cannot be placed")
	}
}

func TestGrowthClockFirstThenRepeat(t *testing.T) {
	reg := catalog.SampleRegistry()
	p := NewPlot(reg, epoch)
	p.Place(reg.ByName("apple tree"), epoch)

	// First harvest uses the full 600s grow time.
	if p.CanHarvest(epoch.Add(599*time.Second), false) {
		t.Fatalf("plant should not be ready before grow time elapses")
	}
	if !p.CanHarvest(epoch.Add(600*time.Second), false) {
		t.Fatalf("plant should be ready once grow time elapses")
	}

	now := epoch.Add(600 * time.Second)
	res := p.Harvest(reg, 1, now, false)
	if !res.Successful() {
		t.Fatalf("Harvest: %v", res.Messages)
	}
	if res.Payload.Template.Name != "apple" || res.Payload.Quantity != 1 || res.Payload.Exp != 10 {
		t.Fatalf("unexpected yield %+v", res.Payload)
	}

	// Repeat harvests use the shorter 300s repeat time.
	if p.CanHarvest(now.Add(299*time.Second), false) {
		t.Fatalf("plant should not be ready before repeat time elapses")
	}
	if !p.CanHarvest(now.Add(300*time.Second), false) {
		t.Fatalf("plant should be ready once repeat time elapses")
	}
}

func TestInstantHarvestBypassesClockOnly(t *testing.T) {
	reg := catalog.SampleRegistry()
	p := NewPlot(reg, epoch)
	p.Place(reg.ByName("apple tree"), epoch)
	if !p.CanHarvest(epoch, true) {
		t.Fatalf("instant mode should bypass the growth clock")
	}
	empty := NewPlot(reg, epoch)
	if empty.CanHarvest(epoch, true) {
		t.Fatalf("instant mode must not make ground harvestable")
	}
}

func TestHarvestClampsToRemainingUses(t *testing.T) {
	reg := catalog.SampleRegistry()
	p := NewPlot(reg, epoch)
	p.Place(reg.ByName("apple tree"), epoch)
	now := epoch.Add(time.Hour)
	res := p.Harvest(reg, 10, now, false)
	if !res.Successful() {
		t.Fatalf("Harvest: %v", res.Messages)
	}
	if res.Payload.Quantity != 3 || res.Payload.Exp != 30 {
		t.Fatalf("harvest should clamp to the 3 remaining uses, got %+v", res.Payload)
	}
	if !p.IsEmpty() {
		t.Fatalf("a fully harvested plant should revert to ground")
	}
}

func TestHarvestResetsClock(t *testing.T) {
	reg := catalog.SampleRegistry()
	p := NewPlot(reg, epoch)
	p.Place(reg.ByName("apple tree"), epoch)
	now := epoch.Add(time.Hour)
	p.Harvest(reg, 1, now, false)
	if !p.PlantTime.Equal(now) {
		t.Fatalf("harvest should restart the growth clock at harvest time")
	}
	if p.UsesRemaining != 2 {
		t.Fatalf("expected 2 uses left, got %d", p.UsesRemaining)
	}
}

func TestHarvestNotReady(t *testing.T) {
	reg := catalog.SampleRegistry()
	p := NewPlot(reg, epoch)
	p.Place(reg.ByName("apple tree"), epoch)
	if res := p.Harvest(reg, 1, epoch.Add(time.Second), false); res.Successful() {
		t.Fatalf("harvesting an unripe plant must fail")
	}
	if p.UsesRemaining != 3 {
		t.Fatalf("failed harvest must not consume uses")
	}
}

func TestPickupDecorationOnly(t *testing.T) {
	reg := catalog.SampleRegistry()
	p := NewPlot(reg, epoch)
	p.Place(reg.ByName("bench"), epoch)
	res := p.Pickup(reg)
	if !res.Successful() {
		t.Fatalf("Pickup: %v", res.Messages)
	}
	if res.Payload.Name != "bench blueprint" {
		t.Fatalf("picking up a bench should yield its blueprint, got %s", res.Payload.Name)
	}
	if !p.IsEmpty() {
		t.Fatalf("pickup should clear the plot")
	}

	planted := NewPlot(reg, epoch)
	planted.Place(reg.ByName("apple tree"), epoch)
	if res := planted.Pickup(reg); res.Successful() {
		t.Fatalf("plants must not be picked up")
	}
}

func TestDestroyClearsWithoutCompensation(t *testing.T) {
	reg := catalog.SampleRegistry()
	p := NewPlot(reg, epoch)
	p.Place(reg.ByName("apple tree"), epoch)
	if res := p.Destroy(reg); !res.Successful() {
		t.Fatalf("Destroy: %v", res.Messages)
	}
	if !p.IsEmpty() {
		t.Fatalf("destroy should leave ground")
	}
	if res := p.Destroy(reg); res.Successful() {
		t.Fatalf("destroying an empty plot must fail")
	}
}

func TestNextRandomStream(t *testing.T) {
	reg := catalog.SampleRegistry()
	p := newPlotSeeded(reg, 1)
	if got := p.NextRandom(); got != 48272 {
		t.Fatalf("expected 48272, got %d", got)
	}
	if got := p.NextRandom(); got != (48271*48272+1)%2147483647 {
		t.Fatalf("stream did not advance correctly, got %d", got)
	}
}

func TestPlotRoundTrip(t *testing.T) {
	reg := catalog.SampleRegistry()
	p := NewPlot(reg, epoch)
	p.Place(reg.ByName("apple tree"), epoch)
	p.Harvest(reg, 1, epoch.Add(time.Hour), false)

	back := PlotFromData(p.ToData(), reg, epoch)
	if back.ID != p.ID || back.UsesRemaining != 2 || back.RandomSeed != p.RandomSeed {
		t.Fatalf("round trip mismatch: %+v vs %+v", back.ToData(), p.ToData())
	}
	if !back.PlantTime.Equal(p.PlantTime) {
		t.Fatalf("plant time should survive the round trip")
	}
	if back.Item.Template.Name != "apple tree" {
		t.Fatalf("plot item should survive the round trip")
	}
}

func TestPlotFromMalformedDataYieldsGround(t *testing.T) {
	reg := catalog.SampleRegistry()
	d := PlotData{ID: "keep-me", Item: item.PlacedItemData{TemplateID: "gone"}, UsesRemaining: 5}
	back := PlotFromData(d, reg, epoch)
	if !back.IsEmpty() {
		t.Fatalf("unresolvable plot item should come back as ground")
	}
	if back.ID != "keep-me" {
		t.Fatalf("plot id should survive even when the item does not")
	}
	if back.UsesRemaining != 0 {
		t.Fatalf("ground has no uses, got %d", back.UsesRemaining)
	}
}
