package draft

import "errors"

var ErrDraftComplete = errors.New("draft complete")
var ErrNotStarted = errors.New("draft not started")
var ErrWrongTurn = errors.New("not your turn")
var ErrSkipSlot = errors.New("this team skips this round")
var ErrPlayerTaken = errors.New("player already drafted")
var ErrUnsupportedCommand = errors.New("unsupported command")

// TeamName identifies a league team. Teams carry no numeric id inside the
// draft; the name is the identity everywhere in this package.
type TeamName string

// SkipPick pre-assigns a named bowler to a (team, round) slot. The bowler is
// outside the draftable pool, so the slot resolves without a player id.
type SkipPick struct {
	Round    int    `yaml:"round" json:"round"`
	Position string `yaml:"position" json:"position"`
	Name     string `yaml:"name" json:"name"`
}

// Slot is one entry in the precomputed draft order.
type Slot struct {
	Team  TeamName  `json:"teamName"`
	Round int       `json:"round"`
	Skip  *SkipPick `json:"skipPick,omitempty"`
}

// Player is one entry of the eligible-pool snapshot pushed by the operator.
type Player struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	League    string  `json:"league"`
	Position  string  `json:"position"`
	LYAverage float64 `json:"lyAverage"`
	LYGames   int     `json:"lyGames"`
	Games     int     `json:"games"`
	TeamID    string  `json:"teamId"` // empty means free agent
}

// PositionFlex is the sentinel position that is never autopicked.
const PositionFlex = "flex"

// PickRecord is a completed pick. PlayerID is nil for skip picks, which have
// no pool entry behind them. Records are append-only.
type PickRecord struct {
	PlayerID *string  `json:"playerId"`
	Team     TeamName `json:"teamName"`
	Player   Player   `json:"playerData"`
	Round    int      `json:"round"`
}

// Rounds per position cycle: a team may not autopick the same position twice
// within one cycle.
const cycleRounds = 5

func cycleOf(round int) int { return (round - 1) / cycleRounds }

// State is the mutable draft aggregate. It is owned by a single room loop;
// nothing in this package synchronizes access.
type State struct {
	League         LeagueConfig
	Order          []Slot
	CurrentPick    int
	Picks          []PickRecord
	Inactive       map[TeamName]bool
	Pool           []Player
	CyclePositions map[TeamName]map[int]map[string]bool
	TeamStatus     map[TeamName]bool
	Started        bool
}

func NewState(cfg LeagueConfig) *State {
	s := &State{
		League:         cfg,
		Order:          BuildOrder(cfg),
		Inactive:       make(map[TeamName]bool),
		CyclePositions: make(map[TeamName]map[int]map[string]bool),
		TeamStatus:     make(map[TeamName]bool),
	}
	s.seedCyclePositions()
	return s
}

// seedCyclePositions pre-marks every skip pick's position so autopick never
// doubles up on a position a keeper already fills.
func (s *State) seedCyclePositions() {
	for _, slot := range s.Order {
		if slot.Skip != nil {
			s.markPosition(slot.Team, slot.Round, slot.Skip.Position)
		}
	}
}

func (s *State) Complete() bool { return s.CurrentPick >= len(s.Order) }

func (s *State) CurrentSlot() (Slot, bool) {
	if s.Complete() {
		return Slot{}, false
	}
	return s.Order[s.CurrentPick], true
}

func (s *State) hasPlayer(id string) bool {
	for _, p := range s.Picks {
		if p.PlayerID != nil && *p.PlayerID == id {
			return true
		}
	}
	return false
}

func (s *State) markPosition(team TeamName, round int, position string) {
	cycle := cycleOf(round)
	if s.CyclePositions[team] == nil {
		s.CyclePositions[team] = make(map[int]map[string]bool)
	}
	if s.CyclePositions[team][cycle] == nil {
		s.CyclePositions[team][cycle] = make(map[string]bool)
	}
	s.CyclePositions[team][cycle][position] = true
}

func (s *State) positionUsed(team TeamName, round int, position string) bool {
	return s.CyclePositions[team][cycleOf(round)][position]
}

type CommandType string

const (
	CmdStartDraft    CommandType = "StartDraft"
	CmdPickPlayer    CommandType = "PickPlayer"
	CmdAutoPick      CommandType = "AutoPick"
	CmdSetPlayers    CommandType = "SetPlayers"
	CmdMarkInactive  CommandType = "MarkInactive"
	CmdClearInactive CommandType = "ClearInactive"
)

type Command struct {
	Type     CommandType
	Team     TeamName
	PlayerID string
	Player   Player
	Players  []Player
	// Expired is set only by the timer path: it flags the acting team
	// inactive before selecting, where an operator-requested autopick
	// does not.
	Expired bool
}

type EventType string

const (
	EvtDraftStarted    EventType = "DraftStarted"
	EvtPlayerPicked    EventType = "PlayerPicked"
	EvtTurnAdvanced    EventType = "TurnAdvanced"
	EvtDraftCompleted  EventType = "DraftCompleted"
	EvtPoolReplaced    EventType = "PoolReplaced"
	EvtInactiveMarked  EventType = "InactiveMarked"
	EvtInactiveCleared EventType = "InactiveCleared"
	EvtAutoPickPassed  EventType = "AutoPickPassed"
	EvtTimerReset      EventType = "TimerReset"
)

type Event struct {
	Type  EventType
	Team  TeamName
	Pick  *PickRecord
	Count int
}

// Apply runs one command against the state. On error the state is untouched;
// on success the returned events describe everything that happened, in order.
// Callers must serialize all Apply calls through a single owner.
func Apply(s *State, cmd Command) ([]Event, error) {
	switch cmd.Type {
	case CmdStartDraft:
		// Restarting resets progress but keeps the pool, inactivity
		// flags and connection status the operator already set up.
		s.CurrentPick = 0
		s.Picks = nil
		s.CyclePositions = make(map[TeamName]map[int]map[string]bool)
		s.seedCyclePositions()
		s.Started = true
		return []Event{{Type: EvtDraftStarted}, {Type: EvtTimerReset}}, nil

	case CmdPickPlayer:
		if s.Complete() {
			return nil, ErrDraftComplete
		}
		slot := s.Order[s.CurrentPick]
		if slot.Team != cmd.Team {
			return nil, ErrWrongTurn
		}
		if slot.Skip != nil {
			return nil, ErrSkipSlot
		}
		if s.hasPlayer(cmd.PlayerID) {
			return nil, ErrPlayerTaken
		}
		id := cmd.PlayerID
		rec := PickRecord{PlayerID: &id, Team: cmd.Team, Player: cmd.Player, Round: slot.Round}
		events := s.record(rec, cmd.Player.Position)
		return append(events, Event{Type: EvtTimerReset}), nil

	case CmdAutoPick:
		return autoPick(s, cmd.Expired)

	case CmdSetPlayers:
		s.Pool = cmd.Players
		return []Event{{Type: EvtPoolReplaced, Count: len(cmd.Players)}}, nil

	case CmdMarkInactive:
		s.Inactive[cmd.Team] = true
		return []Event{{Type: EvtInactiveMarked, Team: cmd.Team}}, nil

	case CmdClearInactive:
		delete(s.Inactive, cmd.Team)
		return []Event{{Type: EvtInactiveCleared, Team: cmd.Team}, {Type: EvtTimerReset}}, nil

	default:
		return nil, ErrUnsupportedCommand
	}
}

// record appends the pick, marks its position used for the team's cycle, and
// advances the cursor.
func (s *State) record(rec PickRecord, position string) []Event {
	s.Picks = append(s.Picks, rec)
	s.markPosition(rec.Team, rec.Round, position)
	picked := Event{Type: EvtPlayerPicked, Team: rec.Team, Pick: &s.Picks[len(s.Picks)-1]}
	return s.advance(picked)
}

// advance moves the cursor by exactly one slot. EvtDraftCompleted fires on
// the transition that exhausts the order, so it is emitted at most once.
func (s *State) advance(lead ...Event) []Event {
	s.CurrentPick++
	events := append(lead, Event{Type: EvtTurnAdvanced})
	if s.CurrentPick == len(s.Order) {
		events = append(events, Event{Type: EvtDraftCompleted})
	}
	return events
}
