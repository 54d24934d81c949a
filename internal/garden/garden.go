package garden

import (
	"math"
	"time"

	"github.com/verdant-games/gardensim/internal/catalog"
	"github.com/verdant-games/gardensim/internal/result"
)

const (
	// MinDimension is the smallest allowed garden side. Shrinking below a
	// 2x2 grid is refused.
	MinDimension = 2

	baseDimensionCap = 5
	levelsPerStep    = 5
	costPerTile      = 25
)

// Garden is the rectangular plot grid. Rows and columns grow one line at a
// time, gated by player level and paid for in gold.
type Garden struct {
	Plots             [][]*Plot
	UpgradeMultiplier float64

	reg *catalog.Registry
}

// New creates a garden of empty plots. Dimensions below the minimum are
// raised to it, and a non-positive upgrade multiplier falls back to 1.
func New(reg *catalog.Registry, rows, cols int, upgradeMultiplier float64, now time.Time) *Garden {
	if rows < MinDimension {
		rows = MinDimension
	}
	if cols < MinDimension {
		cols = MinDimension
	}
	if upgradeMultiplier <= 0 {
		upgradeMultiplier = 1
	}
	g := &Garden{UpgradeMultiplier: upgradeMultiplier, reg: reg}
	g.Plots = make([][]*Plot, rows)
	for r := range g.Plots {
		g.Plots[r] = make([]*Plot, cols)
		for c := range g.Plots[r] {
			g.Plots[r][c] = NewPlot(reg, now)
		}
	}
	return g
}

// Rows returns the current row count.
func (g *Garden) Rows() int { return len(g.Plots) }

// Cols returns the current column count.
func (g *Garden) Cols() int {
	if len(g.Plots) == 0 {
		return 0
	}
	return len(g.Plots[0])
}

// Size is the total plot count.
func (g *Garden) Size() int { return g.Rows() * g.Cols() }

// PlotAt returns the plot at the coordinates, failing for out-of-range
// indices.
func (g *Garden) PlotAt(row, col int) result.Result[*Plot] {
	if row < 0 || row >= g.Rows() || col < 0 || col >= g.Cols() {
		return result.Failf[*Plot]("no plot at row %d, column %d", row, col)
	}
	return result.Ok(g.Plots[row][col])
}

// PlotByID finds a plot anywhere in the grid by its id.
func (g *Garden) PlotByID(id string) result.Result[*Plot] {
	for _, row := range g.Plots {
		for _, p := range row {
			if p.ID == id {
				return result.Ok(p)
			}
		}
	}
	return result.Failf[*Plot]("no plot with id %s", id)
}

// lineCost prices adding one line of n plots: each new plot costs 25 gold
// per existing plot, counting the new line's earlier plots as they land.
func (g *Garden) lineCost(n int) int {
	size := g.Size()
	total := 0
	for i := 0; i < n; i++ {
		total += costPerTile * (size + i)
	}
	return int(math.Floor(float64(total) * g.UpgradeMultiplier))
}

// RowCost is the gold price of the next row.
func (g *Garden) RowCost() int { return g.lineCost(g.Cols()) }

// ColumnCost is the gold price of the next column.
func (g *Garden) ColumnCost() int { return g.lineCost(g.Rows()) }

// maxDimension is the largest side length a player of the given level may
// have: five plots plus one more for every five levels.
func maxDimension(level int) int {
	return baseDimensionCap + level/levelsPerStep
}

// AddRow appends a row of empty plots, gated by the player's level.
func (g *Garden) AddRow(level int, now time.Time) result.Result[struct{}] {
	if g.Rows()+1 > maxDimension(level) {
		return result.Failf[struct{}]("garden cannot grow past %d rows at level %d", maxDimension(level), level)
	}
	row := make([]*Plot, g.Cols())
	for c := range row {
		row[c] = NewPlot(g.reg, now)
	}
	g.Plots = append(g.Plots, row)
	return result.Ok(struct{}{})
}

// AddColumn appends a column of empty plots, gated by the player's level.
func (g *Garden) AddColumn(level int, now time.Time) result.Result[struct{}] {
	if g.Cols()+1 > maxDimension(level) {
		return result.Failf[struct{}]("garden cannot grow past %d columns at level %d", maxDimension(level), level)
	}
	for r := range g.Plots {
		g.Plots[r] = append(g.Plots[r], NewPlot(g.reg, now))
	}
	return result.Ok(struct{}{})
}

// RemoveRow drops the last row. Anything on its plots is discarded.
func (g *Garden) RemoveRow() result.Result[struct{}] {
	if g.Rows() <= MinDimension {
		return result.Failf[struct{}]("garden cannot shrink below %d rows", MinDimension)
	}
	g.Plots = g.Plots[:g.Rows()-1]
	return result.Ok(struct{}{})
}

// RemoveColumn drops the last column. Anything on its plots is discarded.
func (g *Garden) RemoveColumn() result.Result[struct{}] {
	if g.Cols() <= MinDimension {
		return result.Failf[struct{}]("garden cannot shrink below %d columns", MinDimension)
	}
	for r := range g.Plots {
		g.Plots[r] = g.Plots[r][:len(g.Plots[r])-1]
	}
	return result.Ok(struct{}{})
}

// Harvestable lists every plot with a harvest ready.
func (g *Garden) Harvestable(now time.Time, instant bool) []*Plot {
	var ready []*Plot
	for _, row := range g.Plots {
		for _, p := range row {
			if p.CanHarvest(now, instant) {
				ready = append(ready, p)
			}
		}
	}
	return ready
}

// GardenData is the storage shape of a garden.
type GardenData struct {
	UpgradeMultiplier float64      `json:"upgradeMultiplier"`
	Plots             [][]PlotData `json:"plots"`
}

// ToData flattens the garden for storage.
func (g *Garden) ToData() GardenData {
	data := GardenData{UpgradeMultiplier: g.UpgradeMultiplier}
	data.Plots = make([][]PlotData, g.Rows())
	for r, row := range g.Plots {
		data.Plots[r] = make([]PlotData, len(row))
		for c, p := range row {
			data.Plots[r][c] = p.ToData()
		}
	}
	return data
}

// FromData rebuilds a garden from storage. A grid smaller than the minimum
// or with ragged rows is rebuilt as a fresh minimum garden.
func FromData(d GardenData, reg *catalog.Registry, now time.Time) *Garden {
	rows := len(d.Plots)
	if rows < MinDimension {
		return New(reg, MinDimension, MinDimension, d.UpgradeMultiplier, now)
	}
	cols := len(d.Plots[0])
	if cols < MinDimension {
		return New(reg, MinDimension, MinDimension, d.UpgradeMultiplier, now)
	}
	for _, row := range d.Plots {
		if len(row) != cols {
			return New(reg, MinDimension, MinDimension, d.UpgradeMultiplier, now)
		}
	}
	mult := d.UpgradeMultiplier
	if mult <= 0 {
		mult = 1
	}
	g := &Garden{UpgradeMultiplier: mult, reg: reg}
	g.Plots = make([][]*Plot, rows)
	for r := range g.Plots {
		g.Plots[r] = make([]*Plot, cols)
		for c := range g.Plots[r] {
			g.Plots[r][c] = PlotFromData(d.Plots[r][c], reg, now)
		}
	}
	return g
}
