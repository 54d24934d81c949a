package server

import (
	"github.com/verdant-games/gardensim/internal/network"
	"github.com/verdant-games/gardensim/internal/service"
)

// snapshot converts the service's locked state view into the wire shape
func (s *Server) snapshot(p *service.Player) network.StatePayload {
	snap := s.game.Snapshot(p)

	state := network.StatePayload{
		Username: snap.Username,
		Icon:     snap.Icon,
		Level:    snap.Level,
		Exp:      snap.Exp,
		NextExp:  snap.NextExp,
		Gold:     snap.Gold,
	}

	for _, it := range snap.Items {
		state.Items = append(state.Items, network.StateItem{
			Name:     it.Name,
			Icon:     it.Icon,
			Subtype:  it.Subtype,
			Quantity: it.Quantity,
		})
	}

	state.Garden = make([][]network.StatePlot, len(snap.Garden))
	for r, row := range snap.Garden {
		state.Garden[r] = make([]network.StatePlot, len(row))
		for c, plot := range row {
			state.Garden[r][c] = network.StatePlot{
				PlotID:        plot.PlotID,
				Name:          plot.Name,
				Icon:          plot.Icon,
				Subtype:       plot.Subtype,
				UsesRemaining: plot.UsesRemaining,
				ReadySeconds:  plot.ReadySeconds,
			}
		}
	}
	return state
}
