package draft

import "slices"

// BuildOrder expands the league configuration into the flat pick sequence.
// Odd rounds walk the teams in declared order, even rounds in reverse, so the
// average pick position evens out over the draft. A team's skip pick for a
// round, if declared, rides along on that slot.
func BuildOrder(cfg LeagueConfig) []Slot {
	order := make([]Slot, 0, cfg.Rounds*len(cfg.Teams))
	for round := 1; round <= cfg.Rounds; round++ {
		teams := cfg.Teams
		if round%2 == 0 {
			teams = slices.Clone(cfg.Teams)
			slices.Reverse(teams)
		}
		for _, t := range teams {
			slot := Slot{Team: t.Name, Round: round}
			for _, sp := range t.SkipPicks {
				if sp.Round == round {
					skip := sp
					slot.Skip = &skip
					break
				}
			}
			order = append(order, slot)
		}
	}
	return order
}
