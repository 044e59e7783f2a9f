package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fourTeamLeague() LeagueConfig {
	return LeagueConfig{
		Rounds: 6,
		Teams: []TeamConfig{
			{Name: "Alley Cats"},
			{Name: "Pin Pals"},
			{Name: "Split Happens"},
			{Name: "Turkey Time"},
		},
		FantasyLeagues:   []string{"Sunday AM"},
		MinGamesLastYear: 45,
		MinGamesThisYear: 3,
	}
}

func TestBuildOrder_LengthAndSnake(t *testing.T) {
	cfg := fourTeamLeague()
	order := BuildOrder(cfg)

	require.Len(t, order, cfg.Rounds*len(cfg.Teams))

	teamsOfRound := func(round int) []TeamName {
		var teams []TeamName
		for _, slot := range order {
			if slot.Round == round {
				teams = append(teams, slot.Team)
			}
		}
		return teams
	}

	for round := 1; round < cfg.Rounds; round++ {
		cur := teamsOfRound(round)
		next := teamsOfRound(round + 1)
		require.Len(t, next, len(cur))
		for i := range cur {
			assert.Equal(t, cur[i], next[len(next)-1-i],
				"round %d should be the reverse of round %d", round+1, round)
		}
	}
}

func TestBuildOrder_FirstRoundMatchesDeclaredOrder(t *testing.T) {
	cfg := fourTeamLeague()
	order := BuildOrder(cfg)

	for i, tc := range cfg.Teams {
		assert.Equal(t, tc.Name, order[i].Team)
		assert.Equal(t, 1, order[i].Round)
	}
}

func TestBuildOrder_AttachesSkipPicks(t *testing.T) {
	cfg := fourTeamLeague()
	cfg.Teams[1].SkipPicks = []SkipPick{
		{Round: 2, Position: "5", Name: "Marge Olson"},
		{Round: 4, Position: "3", Name: "Marge Olson"},
	}

	order := BuildOrder(cfg)

	var attached int
	for _, slot := range order {
		if slot.Skip == nil {
			continue
		}
		attached++
		assert.Equal(t, TeamName("Pin Pals"), slot.Team)
		assert.Contains(t, []int{2, 4}, slot.Round)
		assert.Equal(t, slot.Round, slot.Skip.Round)
		assert.Equal(t, "Marge Olson", slot.Skip.Name)
	}
	assert.Equal(t, 2, attached)
}
