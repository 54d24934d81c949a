// Package catalog holds the immutable item-template definitions the rest of
// the game resolves against. Templates are loaded once at startup and never
// mutated; every inventory item and placed item references exactly one
// template by pointer.
package catalog

import (
	"math"
	"time"
)

// Kind separates the two sides of the item world: things held in an
// inventory and things occupying a garden plot.
type Kind string

const (
	KindInventory Kind = "InventoryItem"
	KindPlaced    Kind = "PlacedItem"
)

// Subtype identifies the behavior of a template within its kind. Egg appears
// on both sides; the Kind disambiguates.
type Subtype string

const (
	// Inventory-side subtypes.
	SubtypeSeed      Subtype = "Seed"
	SubtypeBlueprint Subtype = "Blueprint"
	SubtypeHarvested Subtype = "HarvestedItem"

	// Placed-side subtypes.
	SubtypePlant      Subtype = "Plant"
	SubtypeDecoration Subtype = "Decoration"
	SubtypeEmpty      Subtype = "EmptyItem"

	// Both sides.
	SubtypeEgg Subtype = "Egg"
)

// Template is one immutable catalog entry. Plant and egg fields are zero for
// other subtypes. Durations are stored in seconds to keep the YAML catalog
// plain.
type Template struct {
	ID          string  `yaml:"id" json:"id"`
	Name        string  `yaml:"name" json:"name"`
	Icon        string  `yaml:"icon" json:"icon"`
	Kind        Kind    `yaml:"type" json:"type"`
	Subtype     Subtype `yaml:"subtype" json:"subtype"`
	Category    string  `yaml:"category,omitempty" json:"category,omitempty"`
	Description string  `yaml:"description,omitempty" json:"description,omitempty"`
	BasePrice   int     `yaml:"base_price" json:"basePrice"`
	Level       int     `yaml:"level" json:"level"`

	// TransformID points at the paired template on the opposite side
	// (seed -> plant, plant -> harvested item, blueprint <-> decoration,
	// inventory egg <-> placed egg). Empty for transform terminals.
	TransformID string `yaml:"transform_id,omitempty" json:"transformId,omitempty"`

	// Plant-only growth parameters.
	BaseExp       int `yaml:"base_exp,omitempty" json:"baseExp,omitempty"`
	GrowTimeSec   int `yaml:"grow_time,omitempty" json:"growTime,omitempty"`
	RepeatGrowSec int `yaml:"repeated_grow_time,omitempty" json:"repeatedGrowTime,omitempty"`
	NumHarvests   int `yaml:"num_harvests,omitempty" json:"numHarvests,omitempty"`

	// Egg-only incubation time.
	IncubationSec int `yaml:"incubation_time,omitempty" json:"incubationTime,omitempty"`
}

// ErrorTemplateName marks the lookup-failure sentinel. A template with this
// name renders safely but is never a valid transform source or target.
const ErrorTemplateName = "error"

var errorTemplate = Template{
	ID:       ErrorTemplateName,
	Name:     ErrorTemplateName,
	Icon:     "❌",
	Category: "Error",
}

// ErrorTemplate returns the shared lookup-failure sentinel.
func ErrorTemplate() *Template {
	return &errorTemplate
}

// IsError reports whether t is the lookup-failure sentinel.
func (t *Template) IsError() bool {
	return t == nil || t.Name == ErrorTemplateName
}

// IsTerminal reports whether t ends the transform chain. Empty ground and
// harvested items have no counterpart template.
func (t *Template) IsTerminal() bool {
	return t.Subtype == SubtypeEmpty || t.Subtype == SubtypeHarvested
}

// Price returns the gold value of one unit under a store multiplier,
// rounded half up and floored at 1.
func (t *Template) Price(multiplier float64) int {
	price := int(math.Floor(float64(t.BasePrice)*multiplier + 0.5))
	if price < 1 {
		return 1
	}
	return price
}

// GrowTime is the wait before a plant's first harvest.
func (t *Template) GrowTime() time.Duration {
	return time.Duration(t.GrowTimeSec) * time.Second
}

// RepeatGrowTime is the wait between repeated harvests of the same plant.
func (t *Template) RepeatGrowTime() time.Duration {
	return time.Duration(t.RepeatGrowSec) * time.Second
}

// IncubationTime is the wait before a placed egg can hatch.
func (t *Template) IncubationTime() time.Duration {
	return time.Duration(t.IncubationSec) * time.Second
}
