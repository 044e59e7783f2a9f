package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jmarek/bowldraft/internal/draft"
	"github.com/jmarek/bowldraft/internal/room"
	"github.com/jmarek/bowldraft/internal/types"
)

// Handler upgrades a participant connection and bridges it to the room: one
// writer goroutine drains the outbox, the read loop translates client
// messages into room messages.
func Handler(rm *room.Room, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		clientID := uuid.NewString()
		out := make(chan types.ServerMessage, 16)

		rm.Inbox() <- room.Join{ClientID: clientID, Outbox: out}
		defer func() { rm.Inbox() <- room.Leave{ClientID: clientID} }()

		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for msg := range out {
				payload, err := json.Marshal(msg)
				if err != nil {
					log.Error("marshal server message", zap.Error(err))
					continue
				}
				ctx, cancel := context.WithTimeout(writeCtx, 3*time.Second)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
		}()

		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				_ = conn.Write(r.Context(), websocket.MessageText,
					[]byte(`{"type":"error","error":"bad json"}`))
				continue
			}

			msg, ok := translate(clientID, cm)
			if !ok {
				_ = conn.Write(r.Context(), websocket.MessageText,
					[]byte(`{"type":"error","error":"unknown type"}`))
				continue
			}
			rm.Inbox() <- msg
		}
	}
}

// translate maps a wire message onto a room message. setAllPlayers gets its
// ack delivered through the regular outbox so the write path stays single.
func translate(clientID string, m types.ClientMessage) (room.Msg, bool) {
	switch m.Type {
	case "registerTeam":
		return room.RegisterTeam{ClientID: clientID, Team: draft.TeamName(m.TeamName)}, true

	case "pickPlayer":
		cmd := draft.Command{
			Type:     draft.CmdPickPlayer,
			Team:     draft.TeamName(m.TeamName),
			PlayerID: m.PlayerID,
		}
		if m.PlayerData != nil {
			cmd.Player = *m.PlayerData
		}
		return room.FromClient{ClientID: clientID, Cmd: cmd}, true

	case "requestAutoPick":
		return room.FromClient{ClientID: clientID, Cmd: draft.Command{Type: draft.CmdAutoPick}}, true

	case "removeInactivity":
		return room.FromClient{ClientID: clientID, Cmd: draft.Command{
			Type: draft.CmdClearInactive,
			Team: draft.TeamName(m.TeamName),
		}}, true

	case "markInactive":
		return room.FromClient{ClientID: clientID, Cmd: draft.Command{
			Type: draft.CmdMarkInactive,
			Team: draft.TeamName(m.TeamName),
		}}, true

	case "setAllPlayers":
		players := make([]draft.Player, 0, len(m.Players))
		for _, p := range m.Players {
			players = append(players, p.ToPlayer())
		}
		return room.ReplacePool{ClientID: clientID, Players: players}, true

	case "startDraft":
		return room.FromClient{ClientID: clientID, Cmd: draft.Command{Type: draft.CmdStartDraft}}, true

	case "assignDraftedPlayersToTeams":
		return room.AssignPicks{ClientID: clientID}, true

	default:
		return nil, false
	}
}
