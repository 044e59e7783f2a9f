package types

import "github.com/jmarek/bowldraft/internal/draft"

// ClientMessage is anything a participant sends over the socket.
type ClientMessage struct {
	Type       string          `json:"type"`
	TeamName   string          `json:"teamName,omitempty"`
	PlayerID   string          `json:"playerId,omitempty"`
	PlayerData *draft.Player   `json:"playerData,omitempty"`
	Players    []PlayerPayload `json:"players,omitempty"`
}

// PlayerPayload tolerates the two average field names pool exports have used.
type PlayerPayload struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	League    string  `json:"league"`
	Position  string  `json:"position"`
	LYAverage float64 `json:"lyAverage"`
	Average   float64 `json:"average"`
	LYGames   int     `json:"lyGames"`
	Games     int     `json:"games"`
	TeamID    string  `json:"teamId"`
}

func (p PlayerPayload) ToPlayer() draft.Player {
	avg := p.LYAverage
	if avg == 0 {
		avg = p.Average
	}
	return draft.Player{
		ID:        p.ID,
		Name:      p.Name,
		League:    p.League,
		Position:  p.Position,
		LYAverage: avg,
		LYGames:   p.LYGames,
		Games:     p.Games,
		TeamID:    p.TeamID,
	}
}

// DraftUpdate is the full-state broadcast sent after every mutation and to
// every client on connect.
type DraftUpdate struct {
	CurrentPickIndex int                     `json:"currentPickIndex"`
	DraftedPlayers   []draft.PickRecord      `json:"draftedPlayers"`
	InactiveTeams    []string                `json:"inactiveTeams"`
	Timer            int                     `json:"timer"`
	AllPlayers       []draft.Player          `json:"allPlayers"`
	TeamStatus       map[draft.TeamName]bool `json:"teamStatus"`
}

// Ack answers a setAllPlayers push.
type Ack struct {
	OK    bool `json:"ok"`
	Count int  `json:"count"`
}

// ServerMessage is the envelope for every outbound socket event.
// Type is one of: draftUpdate, timerUpdate, teamStatusUpdate, draftStarted,
// draftComplete, draftAssigned, setAllPlayersAck, error.
type ServerMessage struct {
	Type       string                  `json:"type"`
	Version    int                     `json:"version,omitempty"`
	State      *DraftUpdate            `json:"state,omitempty"`
	Timer      *int                    `json:"timer,omitempty"`
	TeamStatus map[draft.TeamName]bool `json:"teamStatus,omitempty"`
	Message    string                  `json:"message,omitempty"`
	Ack        *Ack                    `json:"ack,omitempty"`
	Error      string                  `json:"error,omitempty"`
}
