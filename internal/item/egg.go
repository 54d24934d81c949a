package item

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/verdant-games/gardensim/internal/catalog"
)

// EggDetails is the breeding state carried in a placed egg's status field.
// Times are unix seconds so the JSON stays portable across saves.
type EggDetails struct {
	Parent1    string `json:"parent1"`
	Parent2    string `json:"parent2"`
	LaidAt     int64  `json:"laidAt"`
	HatchAt    int64  `json:"hatchAt"`
	Fertilized bool   `json:"fertilized"`
}

// ReadyToHatch reports whether the egg's incubation has elapsed.
func (e EggDetails) ReadyToHatch(now time.Time) bool {
	return e.Fertilized && now.Unix() >= e.HatchAt
}

// SetEggDetails serializes details into the placed item's status. Only valid
// on egg items.
func (p *PlacedItem) SetEggDetails(d EggDetails) error {
	if p.Template.Subtype != catalog.SubtypeEgg {
		return fmt.Errorf("%s is not an egg", p.Template.Name)
	}
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode egg details: %w", err)
	}
	p.Status = string(data)
	return nil
}

// EggDetailsOf parses the egg details out of a placed item's status. A
// missing or malformed status yields zero-value details and an error.
func (p *PlacedItem) EggDetailsOf() (EggDetails, error) {
	var d EggDetails
	if p.Template.Subtype != catalog.SubtypeEgg {
		return d, fmt.Errorf("%s is not an egg", p.Template.Name)
	}
	if p.Status == "" {
		return d, fmt.Errorf("egg %s has no details", p.ID)
	}
	if err := json.Unmarshal([]byte(p.Status), &d); err != nil {
		return d, fmt.Errorf("failed to decode egg details: %w", err)
	}
	return d, nil
}

// LayEgg creates a placed egg for the given template with incubation starting
// now.
func LayEgg(tpl *catalog.Template, parent1, parent2 string, now time.Time) (*PlacedItem, error) {
	if tpl.Subtype != catalog.SubtypeEgg || tpl.Kind != catalog.KindPlaced {
		return nil, fmt.Errorf("%s is not a placeable egg", tpl.Name)
	}
	egg := NewPlacedItem(tpl)
	details := EggDetails{
		Parent1:    parent1,
		Parent2:    parent2,
		LaidAt:     now.Unix(),
		HatchAt:    now.Add(tpl.IncubationTime()).Unix(),
		Fertilized: true,
	}
	if err := egg.SetEggDetails(details); err != nil {
		return nil, err
	}
	return egg, nil
}
