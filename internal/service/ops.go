package service

import (
	"github.com/verdant-games/gardensim/internal/catalog"
	"github.com/verdant-games/gardensim/internal/garden"
	"github.com/verdant-games/gardensim/internal/item"
	"github.com/verdant-games/gardensim/internal/itemstore"
	"github.com/verdant-games/gardensim/internal/persist"
	"github.com/verdant-games/gardensim/internal/result"
)

// PlaceItem consumes one of an inventory item and puts its placed form onto
// an empty plot. Seeds become plants, blueprints become decorations, and
// eggs start incubating. The item and the plot change together or not at
// all.
func (s *Service) PlaceItem(p *Player, plotID string, key itemstore.Key) result.Result[*item.PlacedItem] {
	s.mu.Lock()
	defer s.mu.Unlock()

	plotRes := p.Garden.PlotByID(plotID)
	if !plotRes.Successful() {
		return result.FailMessages[*item.PlacedItem](plotRes.Messages)
	}
	plot := plotRes.Payload

	stack := p.Inventory.Items.Get(key)
	if stack == nil {
		return result.Failf[*item.PlacedItem]("item not in inventory")
	}
	if stack.Template.Level > p.User.Level() {
		return result.Failf[*item.PlacedItem]("%s needs level %d", stack.Template.Name, stack.Template.Level)
	}
	tpl := stack.Template
	now := s.now()

	var placedTpl *catalog.Template
	var placed *item.PlacedItem
	tx := persist.RunTransaction(
		persist.Step{
			Name: "consume item",
			Apply: func() result.Result[struct{}] {
				used := p.Inventory.UseItem(tpl)
				if !used.Successful() {
					return result.FailMessages[struct{}](used.Messages)
				}
				placedTpl = used.Payload
				return result.Ok(struct{}{})
			},
			Rollback: func() { p.Inventory.GainItem(tpl, 1) },
		},
		persist.Step{
			Name: "occupy plot",
			Apply: func() result.Result[struct{}] {
				res := plot.Place(placedTpl, now)
				if !res.Successful() {
					return result.FailMessages[struct{}](res.Messages)
				}
				placed = res.Payload
				return result.Ok(struct{}{})
			},
		},
	)
	if !tx.Successful() {
		return result.FailMessages[*item.PlacedItem](tx.Messages)
	}

	if placed.Template.Subtype == catalog.SubtypeEgg {
		details := item.EggDetails{
			LaidAt:     now.Unix(),
			HatchAt:    now.Add(placed.Template.IncubationTime()).Unix(),
			Fertilized: true,
		}
		if err := placed.SetEggDetails(details); err != nil {
			return result.Failf[*item.PlacedItem]("failed to start incubation: %v", err)
		}
	}
	return result.Ok(placed)
}

// HarvestReport is the outcome of one or more harvests.
type HarvestReport struct {
	Yields       []garden.Yield
	TotalExp     int
	LevelsGained int
}

// HarvestPlot collects up to requested harvests from one plot, adds the
// yield to the inventory, and feeds the experience into the player's
// levels. key unlocks instant harvesting when it matches the configured
// secret.
func (s *Service) HarvestPlot(p *Player, plotID string, requested int, key string) result.Result[HarvestReport] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.harvestLocked(p, plotID, requested, key)
}

func (s *Service) harvestLocked(p *Player, plotID string, requested int, key string) result.Result[HarvestReport] {
	plotRes := p.Garden.PlotByID(plotID)
	if !plotRes.Successful() {
		return result.FailMessages[HarvestReport](plotRes.Messages)
	}
	harvested := plotRes.Payload.Harvest(s.reg, requested, s.now(), s.instant(key))
	if !harvested.Successful() {
		return result.FailMessages[HarvestReport](harvested.Messages)
	}
	yield := harvested.Payload
	if res := p.Inventory.GainItem(yield.Template, yield.Quantity); !res.Successful() {
		return result.FailMessages[HarvestReport](res.Messages)
	}
	gained := p.User.AddExperience(yield.Exp)
	return result.Ok(HarvestReport{
		Yields:       []garden.Yield{yield},
		TotalExp:     yield.Exp,
		LevelsGained: gained,
	})
}

// HarvestAll collects one harvest from every plot that is ready. An empty
// garden is a successful no-op.
func (s *Service) HarvestAll(p *Player, key string) result.Result[HarvestReport] {
	s.mu.Lock()
	defer s.mu.Unlock()

	report := HarvestReport{}
	for _, plot := range p.Garden.Harvestable(s.now(), s.instant(key)) {
		res := s.harvestLocked(p, plot.ID, 1, key)
		if !res.Successful() {
			return result.FailMessages[HarvestReport](res.Messages)
		}
		report.Yields = append(report.Yields, res.Payload.Yields...)
		report.TotalExp += res.Payload.TotalExp
		report.LevelsGained += res.Payload.LevelsGained
	}
	return result.Ok(report)
}

// PickupDecoration folds a placed decoration back into its blueprint and
// returns it to the inventory.
func (s *Service) PickupDecoration(p *Player, plotID string) result.Result[*item.InventoryItem] {
	s.mu.Lock()
	defer s.mu.Unlock()

	plotRes := p.Garden.PlotByID(plotID)
	if !plotRes.Successful() {
		return result.FailMessages[*item.InventoryItem](plotRes.Messages)
	}
	picked := plotRes.Payload.Pickup(s.reg)
	if !picked.Successful() {
		return result.FailMessages[*item.InventoryItem](picked.Messages)
	}
	return p.Inventory.GainItem(picked.Payload, 1)
}

// CollectEgg takes a hatched egg off its plot and returns its inventory
// form. Eggs still incubating stay put.
func (s *Service) CollectEgg(p *Player, plotID string) result.Result[*item.InventoryItem] {
	s.mu.Lock()
	defer s.mu.Unlock()

	plotRes := p.Garden.PlotByID(plotID)
	if !plotRes.Successful() {
		return result.FailMessages[*item.InventoryItem](plotRes.Messages)
	}
	plot := plotRes.Payload
	if plot.Item.Template.Subtype != catalog.SubtypeEgg {
		return result.Failf[*item.InventoryItem]("no egg on this plot")
	}
	details, err := plot.Item.EggDetailsOf()
	if err != nil {
		return result.Failf[*item.InventoryItem]("egg state is unreadable")
	}
	if !details.ReadyToHatch(s.now()) {
		return result.Failf[*item.InventoryItem]("%s is still incubating", plot.Item.Template.Name)
	}
	back := plot.Item.Use(s.reg)
	if !back.Successful() {
		return result.FailMessages[*item.InventoryItem](back.Messages)
	}
	if res := plot.Destroy(s.reg); !res.Successful() {
		return result.FailMessages[*item.InventoryItem](res.Messages)
	}
	return p.Inventory.GainItem(back.Payload, 1)
}

// DestroyPlotItem clears a plot without compensation.
func (s *Service) DestroyPlotItem(p *Player, plotID string) result.Result[struct{}] {
	s.mu.Lock()
	defer s.mu.Unlock()

	plotRes := p.Garden.PlotByID(plotID)
	if !plotRes.Successful() {
		return result.FailMessages[struct{}](plotRes.Messages)
	}
	return plotRes.Payload.Destroy(s.reg)
}
