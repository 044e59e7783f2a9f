package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmarek/bowldraft/internal/draft"
	"github.com/jmarek/bowldraft/internal/room"
	"github.com/jmarek/bowldraft/internal/types"
)

func TestTranslate_PickPlayer(t *testing.T) {
	msg, ok := translate("c1", types.ClientMessage{
		Type:     "pickPlayer",
		TeamName: "Alley Cats",
		PlayerID: "p1",
		PlayerData: &draft.Player{
			ID: "p1", Name: "Ann Miller", Position: "2",
		},
	})
	require.True(t, ok)

	fc, ok := msg.(room.FromClient)
	require.True(t, ok)
	assert.Equal(t, "c1", fc.ClientID)
	assert.Equal(t, draft.CmdPickPlayer, fc.Cmd.Type)
	assert.Equal(t, draft.TeamName("Alley Cats"), fc.Cmd.Team)
	assert.Equal(t, "p1", fc.Cmd.PlayerID)
	assert.Equal(t, "Ann Miller", fc.Cmd.Player.Name)
}

func TestTranslate_SetAllPlayersFallsBackToAverage(t *testing.T) {
	msg, ok := translate("c1", types.ClientMessage{
		Type: "setAllPlayers",
		Players: []types.PlayerPayload{
			{ID: "p1", Name: "Ann Miller", Average: 205},
			{ID: "p2", Name: "Bo Lane", LYAverage: 214, Average: 190},
		},
	})
	require.True(t, ok)

	rp, ok := msg.(room.ReplacePool)
	require.True(t, ok)
	require.Len(t, rp.Players, 2)
	assert.Equal(t, 205.0, rp.Players[0].LYAverage)
	assert.Equal(t, 214.0, rp.Players[1].LYAverage, "lyAverage wins when both are present")
}

func TestTranslate_ControlMessages(t *testing.T) {
	cases := []struct {
		wire string
		cmd  draft.CommandType
	}{
		{"requestAutoPick", draft.CmdAutoPick},
		{"removeInactivity", draft.CmdClearInactive},
		{"markInactive", draft.CmdMarkInactive},
		{"startDraft", draft.CmdStartDraft},
	}
	for _, tc := range cases {
		msg, ok := translate("c1", types.ClientMessage{Type: tc.wire, TeamName: "Pin Pals"})
		require.True(t, ok, tc.wire)
		fc, ok := msg.(room.FromClient)
		require.True(t, ok, tc.wire)
		assert.Equal(t, tc.cmd, fc.Cmd.Type)
	}

	msg, ok := translate("c1", types.ClientMessage{Type: "registerTeam", TeamName: "Pin Pals"})
	require.True(t, ok)
	rt, ok := msg.(room.RegisterTeam)
	require.True(t, ok)
	assert.Equal(t, draft.TeamName("Pin Pals"), rt.Team)

	msg, ok = translate("c1", types.ClientMessage{Type: "assignDraftedPlayersToTeams"})
	require.True(t, ok)
	_, ok = msg.(room.AssignPicks)
	require.True(t, ok)

	_, ok = translate("c1", types.ClientMessage{Type: "doTheDishes"})
	assert.False(t, ok)
}
