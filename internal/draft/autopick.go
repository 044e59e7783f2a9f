package draft

import "slices"

// autoPick resolves the current slot without a human decision. Skip slots
// resolve with their keeper. Otherwise the slot only advances when the acting
// team is (or just became) inactive: an operator poking autopick on an active
// team's turn merely resets the timer.
func autoPick(s *State, expired bool) ([]Event, error) {
	if !s.Started {
		return nil, ErrNotStarted
	}
	if s.Complete() {
		return nil, ErrDraftComplete
	}

	slot := s.Order[s.CurrentPick]

	if slot.Skip != nil {
		rec := PickRecord{
			Team:   slot.Team,
			Player: Player{Name: slot.Skip.Name, Position: slot.Skip.Position},
			Round:  slot.Round,
		}
		events := s.record(rec, slot.Skip.Position)
		return append(events, Event{Type: EvtTimerReset}), nil
	}

	var events []Event
	if expired && !s.Inactive[slot.Team] {
		s.Inactive[slot.Team] = true
		events = append(events, Event{Type: EvtInactiveMarked, Team: slot.Team})
	}

	if s.Inactive[slot.Team] {
		if p, ok := selectCandidate(s, slot); ok {
			id := p.ID
			rec := PickRecord{PlayerID: &id, Team: slot.Team, Player: p, Round: slot.Round}
			events = append(events, s.record(rec, p.Position)...)
		} else {
			// No eligible bowler left for this team: the slot still
			// advances and the team goes without a pick this round.
			events = append(events, Event{Type: EvtAutoPickPassed, Team: slot.Team})
			events = append(events, s.advance()...)
		}
	}

	return append(events, Event{Type: EvtTimerReset}), nil
}

// selectCandidate returns the best-available eligible free agent: highest
// prior-year average, ties broken by smaller player id so the choice is
// deterministic.
func selectCandidate(s *State, slot Slot) (Player, bool) {
	var best Player
	found := false
	for _, p := range s.Pool {
		if !eligible(s, slot, p) {
			continue
		}
		if !found || p.LYAverage > best.LYAverage ||
			(p.LYAverage == best.LYAverage && p.ID < best.ID) {
			best = p
			found = true
		}
	}
	return best, found
}

func eligible(s *State, slot Slot, p Player) bool {
	if p.ID == "" || s.hasPlayer(p.ID) {
		return false
	}
	if p.TeamID != "" {
		return false
	}
	if !slices.Contains(s.League.FantasyLeagues, p.League) {
		return false
	}
	if p.Position == PositionFlex {
		return false
	}
	if p.LYGames < s.League.MinGamesLastYear || p.Games < s.League.MinGamesThisYear {
		return false
	}
	if s.positionUsed(slot.Team, slot.Round, p.Position) {
		return false
	}
	if slices.Contains(s.League.AutoPickExcluded, p.Name) {
		return false
	}
	return true
}
