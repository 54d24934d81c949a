package service

import "time"

// ItemSnapshot is one inventory stack in a point-in-time view.
type ItemSnapshot struct {
	Name     string
	Icon     string
	Subtype  string
	Quantity int
}

// PlotSnapshot is one garden plot in a point-in-time view. ReadySeconds is
// zero when the plot is ready and -1 when nothing on it ripens.
type PlotSnapshot struct {
	PlotID        string
	Name          string
	Icon          string
	Subtype       string
	UsesRemaining int
	ReadySeconds  int64
}

// PlayerSnapshot is a consistent copy of everything a client renders.
type PlayerSnapshot struct {
	Username string
	Icon     string
	Level    int
	Exp      int
	NextExp  int
	Gold     int
	Items    []ItemSnapshot
	Garden   [][]PlotSnapshot
}

// Snapshot copies a player's state under the read lock, so an operation
// running on another session cannot tear the view mid-read.
func (s *Service) Snapshot(p *Player) PlayerSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	snap := PlayerSnapshot{
		Username: p.User.Username,
		Icon:     p.User.Icon,
		Level:    p.User.Level(),
		Exp:      p.User.Levels.CurrentExp,
		NextExp:  p.User.Levels.ExpToLevelUp(),
		Gold:     p.Inventory.Gold,
	}

	for _, stack := range p.Inventory.Items.Items() {
		snap.Items = append(snap.Items, ItemSnapshot{
			Name:     stack.Template.Name,
			Icon:     stack.Template.Icon,
			Subtype:  string(stack.Template.Subtype),
			Quantity: stack.Quantity,
		})
	}

	snap.Garden = make([][]PlotSnapshot, p.Garden.Rows())
	for r, row := range p.Garden.Plots {
		snap.Garden[r] = make([]PlotSnapshot, len(row))
		for c, plot := range row {
			view := PlotSnapshot{
				PlotID:        plot.ID,
				Name:          plot.Item.Template.Name,
				Icon:          plot.Item.Template.Icon,
				Subtype:       string(plot.Item.Template.Subtype),
				UsesRemaining: plot.UsesRemaining,
				ReadySeconds:  -1,
			}
			if left, grows := plot.ReadyIn(now); grows {
				view.ReadySeconds = int64(left / time.Second)
			}
			snap.Garden[r][c] = view
		}
	}
	return snap
}
