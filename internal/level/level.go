// Package level implements the experience curve shared by users and anything
// else that levels. The curve is linear in the next level: reaching level
// n+1 from level n costs floor(100*(n+1)/growthRate) experience.
package level

import "math"

// LevelSystem tracks a level, the experience accumulated toward the next
// one, and the growth rate that scales the curve. Higher growth rates make
// levels cheaper.
type LevelSystem struct {
	Level      int
	CurrentExp int
	GrowthRate float64
}

const (
	defaultLevel      = 1
	defaultGrowthRate = 1.0
)

// New returns a fresh system at level 1 with the given growth rate. Rates at
// or below zero fall back to the default.
func New(growthRate float64) *LevelSystem {
	if growthRate <= 0 {
		growthRate = defaultGrowthRate
	}
	return &LevelSystem{Level: defaultLevel, GrowthRate: growthRate}
}

// ExpToLevelUp is the experience still needed in total for the current
// level, not reduced by CurrentExp.
func (ls *LevelSystem) ExpToLevelUp() int {
	return expForLevel(ls.Level, ls.GrowthRate)
}

func expForLevel(level int, growthRate float64) int {
	return int(math.Floor(100 * float64(level+1) / growthRate))
}

// AddExperience adds exp, carrying any overflow into as many level-ups as it
// covers. It returns the number of levels gained. Negative amounts are
// ignored.
func (ls *LevelSystem) AddExperience(exp int) int {
	if exp <= 0 {
		return 0
	}
	ls.CurrentExp += exp
	gained := 0
	for ls.CurrentExp >= ls.ExpToLevelUp() {
		ls.CurrentExp -= ls.ExpToLevelUp()
		ls.Level++
		gained++
	}
	return gained
}

// TotalExpForLevel is the cumulative experience spent to stand at the given
// level with zero progress, i.e. the sum of every earlier level's cost.
func TotalExpForLevel(level int, growthRate float64) int {
	if growthRate <= 0 {
		growthRate = defaultGrowthRate
	}
	total := 0
	for l := 1; l < level; l++ {
		total += expForLevel(l, growthRate)
	}
	return total
}

// TotalExp is the cumulative experience this system has absorbed.
func (ls *LevelSystem) TotalExp() int {
	return TotalExpForLevel(ls.Level, ls.GrowthRate) + ls.CurrentExp
}

// Data is the storage shape of a level system.
type Data struct {
	Level      int     `json:"level"`
	CurrentExp int     `json:"currentExp"`
	GrowthRate float64 `json:"growthRate"`
}

// ToData flattens the system for storage.
func (ls *LevelSystem) ToData() Data {
	return Data{Level: ls.Level, CurrentExp: ls.CurrentExp, GrowthRate: ls.GrowthRate}
}

// FromData rebuilds a system from storage. Out-of-range fields fall back to
// defaults so a corrupted save still produces a usable system.
func FromData(d Data) *LevelSystem {
	ls := &LevelSystem{Level: d.Level, CurrentExp: d.CurrentExp, GrowthRate: d.GrowthRate}
	if ls.Level < 1 {
		ls.Level = defaultLevel
	}
	if ls.CurrentExp < 0 {
		ls.CurrentExp = 0
	}
	if ls.GrowthRate <= 0 {
		ls.GrowthRate = defaultGrowthRate
	}
	return ls
}
