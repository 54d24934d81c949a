// Package garden implements the plot grid a player farms: placing seeds and
// decorations, the growth clock, harvesting, and paid grid expansion.
package garden

import (
	"time"

	"github.com/google/uuid"

	"github.com/verdant-games/gardensim/internal/catalog"
	"github.com/verdant-games/gardensim/internal/item"
	"github.com/verdant-games/gardensim/internal/result"
)

const (
	lcgMultiplier = 48271
	lcgIncrement  = 1
	lcgModulus    = 2147483647
)

// Plot is one tile of the garden. An empty plot holds the ground item;
// anything else tracks when it was planted, how many harvests remain, and a
// per-plot random stream.
type Plot struct {
	ID            string
	Item          *item.PlacedItem
	PlantTime     time.Time
	UsesRemaining int
	RandomSeed    int64
}

// NewPlot returns an empty ground plot seeded from the clock.
func NewPlot(reg *catalog.Registry, now time.Time) *Plot {
	return newPlotSeeded(reg, now.UnixNano()%lcgModulus)
}

func newPlotSeeded(reg *catalog.Registry, seed int64) *Plot {
	if seed <= 0 {
		seed = 1
	}
	return &Plot{
		ID:         uuid.NewString(),
		Item:       item.NewPlacedItem(groundTemplate(reg)),
		RandomSeed: seed,
	}
}

func groundTemplate(reg *catalog.Registry) *catalog.Template {
	for _, tpl := range reg.BySubtype(catalog.SubtypeEmpty) {
		return tpl
	}
	return catalog.ErrorTemplate()
}

// NextRandom advances the plot's random stream and returns a value in
// [0, 2147483647).
func (p *Plot) NextRandom() int64 {
	p.RandomSeed = (lcgMultiplier*p.RandomSeed + lcgIncrement) % lcgModulus
	return p.RandomSeed
}

// IsEmpty reports whether the plot holds only ground.
func (p *Plot) IsEmpty() bool {
	return p.Item.Template.Subtype == catalog.SubtypeEmpty
}

// growDuration is the wait before the next harvest: the full grow time for a
// freshly planted item, the shorter repeat time once it has been harvested.
func (p *Plot) growDuration() time.Duration {
	if p.UsesRemaining == p.Item.Template.NumHarvests {
		return p.Item.Template.GrowTime()
	}
	return p.Item.Template.RepeatGrowTime()
}

// CanHarvest reports whether the plot's plant has something ready. With
// instant set the clock is bypassed, but a plot still needs a plant with
// harvests remaining.
func (p *Plot) CanHarvest(now time.Time, instant bool) bool {
	if p.Item.Template.Subtype != catalog.SubtypePlant || p.UsesRemaining <= 0 {
		return false
	}
	if instant {
		return true
	}
	return !now.Before(p.PlantTime.Add(p.growDuration()))
}

// ReadyIn reports how long until the plot's occupant is ready, zero when it
// already is. The second return is false when nothing on the plot ripens.
func (p *Plot) ReadyIn(now time.Time) (time.Duration, bool) {
	switch p.Item.Template.Subtype {
	case catalog.SubtypePlant:
		if p.UsesRemaining <= 0 {
			return 0, false
		}
		left := p.PlantTime.Add(p.growDuration()).Sub(now)
		if left < 0 {
			left = 0
		}
		return left, true
	case catalog.SubtypeEgg:
		details, err := p.Item.EggDetailsOf()
		if err != nil {
			return 0, false
		}
		left := time.Unix(details.HatchAt, 0).Sub(now)
		if left < 0 {
			left = 0
		}
		return left, true
	}
	return 0, false
}

// Yield is what one harvest produced.
type Yield struct {
	Template *catalog.Template
	Quantity int
	Exp      int
}

// Harvest collects up to requested harvests from the plot's plant, clamped
// to what remains. Experience is the plant's base exp per harvest taken. The
// growth clock restarts, and a fully spent plant reverts to ground.
func (p *Plot) Harvest(reg *catalog.Registry, requested int, now time.Time, instant bool) result.Result[Yield] {
	if p.Item.Template.Subtype != catalog.SubtypePlant {
		return result.Failf[Yield]("nothing to harvest here")
	}
	if requested <= 0 {
		return result.Failf[Yield]("harvest count must be positive")
	}
	if !p.CanHarvest(now, instant) {
		return result.Failf[Yield]("%s is not ready to harvest", p.Item.Template.Name)
	}
	harvested := reg.TransformOf(p.Item.Template)
	if harvested.IsError() {
		return result.Failf[Yield]("%s yields nothing", p.Item.Template.Name)
	}
	possible := requested
	if possible > p.UsesRemaining {
		possible = p.UsesRemaining
	}
	p.UsesRemaining -= possible
	p.PlantTime = now
	yield := Yield{
		Template: harvested,
		Quantity: possible,
		Exp:      possible * p.Item.Template.BaseExp,
	}
	if p.UsesRemaining == 0 {
		p.clear(reg)
	}
	return result.Ok(yield)
}

// Place puts a placed-side template onto an empty plot. Plants start with
// their full harvest count; decorations and eggs occupy a single use.
func (p *Plot) Place(tpl *catalog.Template, now time.Time) result.Result[*item.PlacedItem] {
	if !p.IsEmpty() {
		return result.Failf[*item.PlacedItem]("plot is already occupied")
	}
	switch tpl.Subtype {
	case catalog.SubtypePlant:
		p.Item = item.NewPlacedItem(tpl)
		p.UsesRemaining = tpl.NumHarvests
	case catalog.SubtypeDecoration, catalog.SubtypeEgg:
		p.Item = item.NewPlacedItem(tpl)
		p.UsesRemaining = 1
	default:
		return result.Failf[*item.PlacedItem]("%s cannot be placed", tpl.Name)
	}
	p.PlantTime = now
	return result.Ok(p.Item)
}

// Pickup returns a decoration to its inventory form and clears the plot.
// Plants and eggs cannot be picked up.
func (p *Plot) Pickup(reg *catalog.Registry) result.Result[*catalog.Template] {
	if p.Item.Template.Subtype != catalog.SubtypeDecoration {
		return result.Failf[*catalog.Template]("only decorations can be picked up")
	}
	back := reg.TransformOf(p.Item.Template)
	if back.IsError() {
		return result.Failf[*catalog.Template]("%s has no inventory form", p.Item.Template.Name)
	}
	p.clear(reg)
	return result.Ok(back)
}

// Destroy clears whatever occupies the plot without compensation.
func (p *Plot) Destroy(reg *catalog.Registry) result.Result[struct{}] {
	if p.IsEmpty() {
		return result.Failf[struct{}]("plot is already empty")
	}
	p.clear(reg)
	return result.Ok(struct{}{})
}

func (p *Plot) clear(reg *catalog.Registry) {
	p.Item = item.NewPlacedItem(groundTemplate(reg))
	p.UsesRemaining = 0
	p.PlantTime = time.Time{}
}

// PlotData is the storage shape of a plot.
type PlotData struct {
	ID            string              `json:"id"`
	Item          item.PlacedItemData `json:"item"`
	PlantTime     int64               `json:"plantTime"`
	UsesRemaining int                 `json:"usesRemaining"`
	RandomSeed    int64               `json:"randomSeed"`
}

// ToData flattens the plot for storage.
func (p *Plot) ToData() PlotData {
	var planted int64
	if !p.PlantTime.IsZero() {
		planted = p.PlantTime.Unix()
	}
	return PlotData{
		ID:            p.ID,
		Item:          p.Item.ToData(),
		PlantTime:     planted,
		UsesRemaining: p.UsesRemaining,
		RandomSeed:    p.RandomSeed,
	}
}

// PlotFromData rebuilds a plot from storage. A plot whose item no longer
// resolves comes back as plain ground rather than failing the whole garden.
func PlotFromData(d PlotData, reg *catalog.Registry, now time.Time) *Plot {
	placed := item.PlacedItemFromData(d.Item, reg)
	if placed.Template.IsError() {
		p := NewPlot(reg, now)
		if d.ID != "" {
			p.ID = d.ID
		}
		return p
	}
	p := &Plot{
		ID:            d.ID,
		Item:          placed,
		UsesRemaining: d.UsesRemaining,
		RandomSeed:    d.RandomSeed,
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.RandomSeed <= 0 {
		p.RandomSeed = now.UnixNano() % lcgModulus
	}
	if d.PlantTime > 0 {
		p.PlantTime = time.Unix(d.PlantTime, 0)
	}
	if p.UsesRemaining < 0 {
		p.UsesRemaining = 0
	}
	return p
}
