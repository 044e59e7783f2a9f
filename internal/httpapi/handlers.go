package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/jmarek/bowldraft/internal/draft"
	"github.com/jmarek/bowldraft/internal/room"
)

type pickRequest struct {
	PlayerID   string       `json:"playerId"`
	TeamName   string       `json:"teamName"`
	PlayerData draft.Player `json:"playerData"`
}

type draftResponse struct {
	CurrentPickIndex int                `json:"currentPickIndex"`
	DraftedPlayers   []draft.PickRecord `json:"draftedPlayers"`
	InactiveTeams    []string           `json:"inactiveTeams"`
	Timer            int                `json:"timer"`
	DraftOrder       []draft.Slot       `json:"draftOrder"`
}

// GetDraft serves the non-realtime read of the full draft state.
func GetDraft(rm *room.Room) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reply := make(chan room.View, 1)
		rm.Inbox() <- room.GetState{Reply: reply}
		v := <-reply

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(draftResponse{
			CurrentPickIndex: v.Update.CurrentPickIndex,
			DraftedPlayers:   v.Update.DraftedPlayers,
			InactiveTeams:    v.Update.InactiveTeams,
			Timer:            v.Timer,
			DraftOrder:       v.Order,
		})
	}
}

// PostPick submits a manual pick. Turn violations and duplicates come back as
// 400s with the rejection reason; state is untouched on rejection.
func PostPick(rm *room.Room) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req pickRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}

		reply := make(chan error, 1)
		rm.Inbox() <- room.SubmitPick{
			Cmd: draft.Command{
				Type:     draft.CmdPickPlayer,
				Team:     draft.TeamName(req.TeamName),
				PlayerID: req.PlayerID,
				Player:   req.PlayerData,
			},
			Reply: reply,
		}
		if err := <-reply; err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(struct {
			Success bool `json:"success"`
		}{Success: true})
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(struct {
		Error string `json:"error"`
	}{Error: msg})
}
