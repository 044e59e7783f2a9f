package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoTeamLeague() LeagueConfig {
	return LeagueConfig{
		Rounds: 2,
		Teams: []TeamConfig{
			{Name: "Alley Cats"},
			{Name: "Pin Pals"},
		},
		FantasyLeagues:   []string{"Sunday AM"},
		MinGamesLastYear: 45,
		MinGamesThisYear: 3,
	}
}

func poolPlayer(id, name, position string, avg float64) Player {
	return Player{
		ID:        id,
		Name:      name,
		League:    "Sunday AM",
		Position:  position,
		LYAverage: avg,
		LYGames:   60,
		Games:     10,
	}
}

func hasEvent(events []Event, et EventType) bool {
	for _, ev := range events {
		if ev.Type == et {
			return true
		}
	}
	return false
}

func TestApply_PickRecordsAndAdvances(t *testing.T) {
	s := NewState(twoTeamLeague())

	p := poolPlayer("p1", "Ann Miller", "2", 210)
	events, err := Apply(s, Command{Type: CmdPickPlayer, Team: "Alley Cats", PlayerID: "p1", Player: p})
	require.NoError(t, err)

	assert.True(t, hasEvent(events, EvtPlayerPicked))
	assert.True(t, hasEvent(events, EvtTurnAdvanced))
	assert.True(t, hasEvent(events, EvtTimerReset))
	assert.False(t, hasEvent(events, EvtDraftCompleted))

	require.Len(t, s.Picks, 1)
	require.NotNil(t, s.Picks[0].PlayerID)
	assert.Equal(t, "p1", *s.Picks[0].PlayerID)
	assert.Equal(t, TeamName("Alley Cats"), s.Picks[0].Team)
	assert.Equal(t, 1, s.Picks[0].Round)
	assert.Equal(t, 1, s.CurrentPick)
	assert.True(t, s.positionUsed("Alley Cats", 1, "2"))
}

func TestApply_WrongTurnRejected(t *testing.T) {
	s := NewState(twoTeamLeague())

	_, err := Apply(s, Command{Type: CmdPickPlayer, Team: "Pin Pals", PlayerID: "p1",
		Player: poolPlayer("p1", "Ann Miller", "2", 210)})
	assert.ErrorIs(t, err, ErrWrongTurn)
	assert.Empty(t, s.Picks)
	assert.Equal(t, 0, s.CurrentPick)
}

func TestApply_DuplicatePlayerRejected(t *testing.T) {
	s := NewState(twoTeamLeague())
	p := poolPlayer("p1", "Ann Miller", "2", 210)

	_, err := Apply(s, Command{Type: CmdPickPlayer, Team: "Alley Cats", PlayerID: "p1", Player: p})
	require.NoError(t, err)

	// Next team tries to take the same player.
	_, err = Apply(s, Command{Type: CmdPickPlayer, Team: "Pin Pals", PlayerID: "p1", Player: p})
	assert.ErrorIs(t, err, ErrPlayerTaken)
	assert.Len(t, s.Picks, 1)
	assert.Equal(t, 1, s.CurrentPick)
}

func TestApply_SameCommandTwiceRecordsOnce(t *testing.T) {
	s := NewState(twoTeamLeague())
	cmd := Command{Type: CmdPickPlayer, Team: "Alley Cats", PlayerID: "p1",
		Player: poolPlayer("p1", "Ann Miller", "2", 210)}

	_, err := Apply(s, cmd)
	require.NoError(t, err)
	_, err = Apply(s, cmd)
	require.Error(t, err)

	assert.Len(t, s.Picks, 1)
	assert.Equal(t, 1, s.CurrentPick)
}

func TestApply_SkipSlotRejectsManualPick(t *testing.T) {
	cfg := twoTeamLeague()
	cfg.Teams[0].SkipPicks = []SkipPick{{Round: 1, Position: "3", Name: "Roy Hart"}}
	s := NewState(cfg)

	_, err := Apply(s, Command{Type: CmdPickPlayer, Team: "Alley Cats", PlayerID: "p1",
		Player: poolPlayer("p1", "Ann Miller", "2", 210)})
	assert.ErrorIs(t, err, ErrSkipSlot)
	assert.Empty(t, s.Picks)
}

func TestApply_CompleteDraftRejectsPicks(t *testing.T) {
	cfg := twoTeamLeague()
	cfg.Rounds = 1
	s := NewState(cfg)

	_, err := Apply(s, Command{Type: CmdPickPlayer, Team: "Alley Cats", PlayerID: "p1",
		Player: poolPlayer("p1", "Ann Miller", "1", 200)})
	require.NoError(t, err)
	events, err := Apply(s, Command{Type: CmdPickPlayer, Team: "Pin Pals", PlayerID: "p2",
		Player: poolPlayer("p2", "Bo Lane", "2", 195)})
	require.NoError(t, err)
	assert.True(t, hasEvent(events, EvtDraftCompleted))
	assert.True(t, s.Complete())

	_, err = Apply(s, Command{Type: CmdPickPlayer, Team: "Alley Cats", PlayerID: "p3",
		Player: poolPlayer("p3", "Cy Webb", "3", 190)})
	assert.ErrorIs(t, err, ErrDraftComplete)
	assert.Len(t, s.Picks, 2)
}

func TestApply_StartDraftResetsProgressKeepsPoolAndInactivity(t *testing.T) {
	cfg := twoTeamLeague()
	cfg.Teams[1].SkipPicks = []SkipPick{{Round: 2, Position: "4", Name: "Roy Hart"}}
	s := NewState(cfg)

	pool := []Player{poolPlayer("p1", "Ann Miller", "2", 210)}
	_, err := Apply(s, Command{Type: CmdSetPlayers, Players: pool})
	require.NoError(t, err)
	_, err = Apply(s, Command{Type: CmdMarkInactive, Team: "Pin Pals"})
	require.NoError(t, err)
	_, err = Apply(s, Command{Type: CmdPickPlayer, Team: "Alley Cats", PlayerID: "p1",
		Player: pool[0]})
	require.NoError(t, err)

	events, err := Apply(s, Command{Type: CmdStartDraft})
	require.NoError(t, err)
	assert.True(t, hasEvent(events, EvtDraftStarted))
	assert.True(t, hasEvent(events, EvtTimerReset))

	assert.True(t, s.Started)
	assert.Equal(t, 0, s.CurrentPick)
	assert.Empty(t, s.Picks)
	assert.Equal(t, pool, s.Pool, "pool survives a restart")
	assert.True(t, s.Inactive["Pin Pals"], "inactivity flags survive a restart")
	assert.False(t, s.positionUsed("Alley Cats", 1, "2"), "manual cycle marks are cleared")
	assert.True(t, s.positionUsed("Pin Pals", 2, "4"), "skip pick positions are re-seeded")
}

func TestApply_ClearInactiveResetsTimer(t *testing.T) {
	s := NewState(twoTeamLeague())
	_, err := Apply(s, Command{Type: CmdMarkInactive, Team: "Alley Cats"})
	require.NoError(t, err)

	events, err := Apply(s, Command{Type: CmdClearInactive, Team: "Alley Cats"})
	require.NoError(t, err)
	assert.False(t, s.Inactive["Alley Cats"])
	assert.True(t, hasEvent(events, EvtInactiveCleared))
	assert.True(t, hasEvent(events, EvtTimerReset))
}

func TestApply_UnsupportedCommand(t *testing.T) {
	s := NewState(twoTeamLeague())
	_, err := Apply(s, Command{Type: "Dance"})
	assert.ErrorIs(t, err, ErrUnsupportedCommand)
}

func TestCyclePositions_BoundaryAtFiveRounds(t *testing.T) {
	cfg := twoTeamLeague()
	cfg.Rounds = 10
	s := NewState(cfg)

	s.markPosition("Alley Cats", 3, "2")
	assert.True(t, s.positionUsed("Alley Cats", 1, "2"))
	assert.True(t, s.positionUsed("Alley Cats", 5, "2"))
	assert.False(t, s.positionUsed("Alley Cats", 6, "2"), "round 6 starts a new cycle")
}
