package catalog

// SampleRegistry returns the starter catalog used by tests and by the server
// when no catalog file is configured: three seed/plant/fruit chains, one
// blueprint/decoration pair, one egg pair, and the empty ground tile.
func SampleRegistry() *Registry {
	reg, err := NewRegistry(
		Template{ID: "ground", Name: "ground", Icon: "🟫", Kind: KindPlaced, Subtype: SubtypeEmpty, Category: "Ground", Level: 1},

		Template{ID: "seed-apple", Name: "apple seed", Icon: "🌰", Kind: KindInventory, Subtype: SubtypeSeed, Category: "Seeds", BasePrice: 10, Level: 1, TransformID: "plant-apple"},
		Template{ID: "plant-apple", Name: "apple tree", Icon: "🍎", Kind: KindPlaced, Subtype: SubtypePlant, Category: "Plants", BasePrice: 20, Level: 1, TransformID: "harvested-apple", BaseExp: 10, GrowTimeSec: 600, RepeatGrowSec: 300, NumHarvests: 3},
		Template{ID: "harvested-apple", Name: "apple", Icon: "🍎", Kind: KindInventory, Subtype: SubtypeHarvested, Category: "Harvested", BasePrice: 15, Level: 1},

		Template{ID: "seed-banana", Name: "banana seed", Icon: "🌰", Kind: KindInventory, Subtype: SubtypeSeed, Category: "Seeds", BasePrice: 25, Level: 3, TransformID: "plant-banana"},
		Template{ID: "plant-banana", Name: "banana tree", Icon: "🍌", Kind: KindPlaced, Subtype: SubtypePlant, Category: "Plants", BasePrice: 50, Level: 3, TransformID: "harvested-banana", BaseExp: 25, GrowTimeSec: 1800, RepeatGrowSec: 900, NumHarvests: 2},
		Template{ID: "harvested-banana", Name: "banana", Icon: "🍌", Kind: KindInventory, Subtype: SubtypeHarvested, Category: "Harvested", BasePrice: 35, Level: 3},

		Template{ID: "seed-coconut", Name: "coconut seed", Icon: "🌰", Kind: KindInventory, Subtype: SubtypeSeed, Category: "Seeds", BasePrice: 50, Level: 5, TransformID: "plant-coconut"},
		Template{ID: "plant-coconut", Name: "coconut palm", Icon: "🥥", Kind: KindPlaced, Subtype: SubtypePlant, Category: "Plants", BasePrice: 100, Level: 5, TransformID: "harvested-coconut", BaseExp: 60, GrowTimeSec: 3600, RepeatGrowSec: 1800, NumHarvests: 1},
		Template{ID: "harvested-coconut", Name: "coconut", Icon: "🥥", Kind: KindInventory, Subtype: SubtypeHarvested, Category: "Harvested", BasePrice: 75, Level: 5},

		Template{ID: "blueprint-bench", Name: "bench blueprint", Icon: "📘", Kind: KindInventory, Subtype: SubtypeBlueprint, Category: "Blueprints", BasePrice: 100, Level: 2, TransformID: "deco-bench"},
		Template{ID: "deco-bench", Name: "bench", Icon: "🪑", Kind: KindPlaced, Subtype: SubtypeDecoration, Category: "Decorations", BasePrice: 100, Level: 2, TransformID: "blueprint-bench"},

		Template{ID: "egg-goose-inv", Name: "goose egg", Icon: "🥚", Kind: KindInventory, Subtype: SubtypeEgg, Category: "Eggs", BasePrice: 150, Level: 4, TransformID: "egg-goose"},
		Template{ID: "egg-goose", Name: "nesting goose egg", Icon: "🪺", Kind: KindPlaced, Subtype: SubtypeEgg, Category: "Eggs", BasePrice: 150, Level: 4, TransformID: "egg-goose-inv", IncubationSec: 86400},
	)
	if err != nil {
		// The sample data is fixed at compile time; a failure here is a
		// programming error, not a runtime condition.
		panic(err)
	}
	return reg
}
