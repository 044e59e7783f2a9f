package room

import (
	"github.com/jmarek/bowldraft/internal/draft"
	"github.com/jmarek/bowldraft/internal/types"
)

type Msg interface{ isRoomMsg() }

// Join registers a participant connection. The room immediately pushes the
// current state and countdown to the outbox.
type Join struct {
	ClientID string
	Outbox   chan types.ServerMessage
}

func (Join) isRoomMsg() {}

type Leave struct{ ClientID string }

func (Leave) isRoomMsg() {}

// RegisterTeam ties a connection to a team name for presence tracking only;
// it never gates pick legality.
type RegisterTeam struct {
	ClientID string
	Team     draft.TeamName
}

func (RegisterTeam) isRoomMsg() {}

// FromClient carries a draft command from a socket participant. Rejections go
// back to that client only, as an error message.
type FromClient struct {
	ClientID string
	Cmd      draft.Command
}

func (FromClient) isRoomMsg() {}

// SubmitPick is the synchronous pick path used by the REST surface.
type SubmitPick struct {
	Cmd   draft.Command
	Reply chan error
}

func (SubmitPick) isRoomMsg() {}

// ReplacePool swaps the whole eligible-player snapshot. The pushing client
// gets a setAllPlayersAck with the accepted count on its outbox.
type ReplacePool struct {
	ClientID string
	Players  []draft.Player
}

func (ReplacePool) isRoomMsg() {}

// AssignPicks triggers the one-shot finalize: write every drafted player's
// team assignment through the external repositories.
type AssignPicks struct{ ClientID string }

func (AssignPicks) isRoomMsg() {}

// GetState reflects internal state without data races; used by the REST
// surface and tests.
type GetState struct{ Reply chan View }

func (GetState) isRoomMsg() {}

type Shutdown struct{}

func (Shutdown) isRoomMsg() {}

type View struct {
	Version    int
	NumClients int
	Started    bool
	Timer      int
	Update     types.DraftUpdate
	Order      []draft.Slot
}
