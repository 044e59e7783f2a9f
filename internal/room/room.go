package room

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/jmarek/bowldraft/internal/draft"
	"github.com/jmarek/bowldraft/internal/types"
)

// TeamRepo resolves a draft team name to its persistent id.
type TeamRepo interface {
	FindIDByName(ctx context.Context, name draft.TeamName) (string, error)
}

// PlayerRepo writes a drafted player's team assignment through to storage.
type PlayerRepo interface {
	AssignTeam(ctx context.Context, playerID, teamID string) error
}

// Timers holds the per-category countdown durations. Skip slots always run on
// skipTimer: they need no human decision.
type Timers struct {
	Default  time.Duration
	Inactive time.Duration
}

const skipTimer = time.Second

// Room owns the draft state. Every mutation, whether a client command or a
// timer expiry, goes through the single loop goroutine; nothing else touches
// the state.
type Room struct {
	inbox    chan Msg
	state    *draft.State
	deadline time.Time
	timerSec int
	version  int
	clients  map[string]chan types.ServerMessage
	teams    map[string]draft.TeamName
	clock    clockwork.Clock
	log      *zap.Logger
	timers   Timers
	teamRepo TeamRepo
	players  PlayerRepo
	ctx      context.Context
	cancel   context.CancelFunc
}

type Options struct {
	Clock   clockwork.Clock
	Log     *zap.Logger
	Timers  Timers
	Teams   TeamRepo
	Players PlayerRepo
}

func New(parent context.Context, state *draft.State, opts Options) *Room {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Timers.Default == 0 {
		opts.Timers.Default = 5 * time.Second
	}
	if opts.Timers.Inactive == 0 {
		opts.Timers.Inactive = 2 * time.Second
	}

	ctx, cancel := context.WithCancel(parent)
	r := &Room{
		inbox:    make(chan Msg, 64),
		state:    state,
		clients:  make(map[string]chan types.ServerMessage),
		teams:    make(map[string]draft.TeamName),
		clock:    opts.Clock,
		log:      opts.Log,
		timers:   opts.Timers,
		teamRepo: opts.Teams,
		players:  opts.Players,
		ctx:      ctx,
		cancel:   cancel,
	}

	// Arm the countdown for the first slot; it only counts down once the
	// draft is started.
	d := r.timerFor()
	r.timerSec = int(d / time.Second)
	r.deadline = r.clock.Now().Add(d)

	go r.loop()
	return r
}

func (r *Room) Inbox() chan<- Msg { return r.inbox }

func (r *Room) loop() {
	ticker := r.clock.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			r.shutdown()
			return

		case <-ticker.Chan():
			r.tick()

		case m := <-r.inbox:
			switch msg := m.(type) {
			case Join:
				r.clients[msg.ClientID] = msg.Outbox
				msg.Outbox <- types.ServerMessage{Type: "draftUpdate", Version: r.version, State: r.snapshot()}
				remaining := r.remaining()
				msg.Outbox <- types.ServerMessage{Type: "timerUpdate", Timer: &remaining}

			case Leave:
				if team, ok := r.teams[msg.ClientID]; ok {
					r.state.TeamStatus[team] = false
					delete(r.teams, msg.ClientID)
					r.broadcast(types.ServerMessage{Type: "teamStatusUpdate", TeamStatus: r.teamStatus()})
				}
				delete(r.clients, msg.ClientID)

			case RegisterTeam:
				r.teams[msg.ClientID] = msg.Team
				r.state.TeamStatus[msg.Team] = true
				r.broadcast(types.ServerMessage{Type: "teamStatusUpdate", TeamStatus: r.teamStatus()})

			case FromClient:
				events, err := draft.Apply(r.state, msg.Cmd)
				if err != nil {
					r.sendTo(msg.ClientID, types.ServerMessage{Type: "error", Error: err.Error()})
					break
				}
				r.process(events)

			case SubmitPick:
				events, err := draft.Apply(r.state, msg.Cmd)
				msg.Reply <- err
				if err == nil {
					r.process(events)
				}

			case ReplacePool:
				events, err := draft.Apply(r.state, draft.Command{Type: draft.CmdSetPlayers, Players: msg.Players})
				if err != nil {
					r.sendTo(msg.ClientID, types.ServerMessage{Type: "setAllPlayersAck", Ack: &types.Ack{}})
					break
				}
				r.sendTo(msg.ClientID, types.ServerMessage{
					Type: "setAllPlayersAck",
					Ack:  &types.Ack{OK: true, Count: len(msg.Players)},
				})
				r.process(events)

			case AssignPicks:
				r.finalize(msg.ClientID)

			case GetState:
				msg.Reply <- View{
					Version:    r.version,
					NumClients: len(r.clients),
					Started:    r.state.Started,
					Timer:      r.remaining(),
					Update:     *r.snapshot(),
					Order:      r.state.Order,
				}

			case Shutdown:
				r.shutdown()
				return
			}
		}
	}
}

// tick runs once per wall-clock second. While time remains it only pushes the
// countdown; at zero it hands the slot to autopick.
func (r *Room) tick() {
	if !r.state.Started || r.state.Complete() {
		return
	}
	remaining := r.remaining()
	if remaining > 0 {
		r.broadcast(types.ServerMessage{Type: "timerUpdate", Timer: &remaining})
		return
	}
	events, err := draft.Apply(r.state, draft.Command{Type: draft.CmdAutoPick, Expired: true})
	if err != nil {
		r.log.Warn("timer autopick rejected", zap.Error(err))
		return
	}
	r.process(events)
}

// process reacts to the events of one successful Apply: reset and announce
// the timer where the state machine says so, announce completion and start,
// then broadcast the new state once.
func (r *Room) process(events []draft.Event) {
	stateChanged := false
	for _, ev := range events {
		switch ev.Type {
		case draft.EvtTimerReset:
			r.resetTimer()
		case draft.EvtDraftCompleted:
			stateChanged = true
			r.log.Info("draft complete", zap.Int("picks", len(r.state.Picks)))
			r.broadcast(types.ServerMessage{Type: "draftComplete", Message: "Draft finished."})
		case draft.EvtDraftStarted:
			stateChanged = true
			r.log.Info("draft started", zap.Int("slots", len(r.state.Order)))
		case draft.EvtPlayerPicked:
			stateChanged = true
			r.log.Info("pick recorded",
				zap.String("team", string(ev.Team)),
				zap.String("player", ev.Pick.Player.Name),
				zap.Int("round", ev.Pick.Round))
		case draft.EvtAutoPickPassed:
			stateChanged = true
			r.log.Info("no eligible autopick, slot passed", zap.String("team", string(ev.Team)))
		case draft.EvtPoolReplaced:
			r.log.Info("player pool replaced", zap.Int("count", ev.Count))
		default:
			stateChanged = true
		}
	}
	if stateChanged {
		r.version++
		r.broadcast(types.ServerMessage{Type: "draftUpdate", Version: r.version, State: r.snapshot()})
	}
	for _, ev := range events {
		if ev.Type == draft.EvtDraftStarted {
			r.broadcast(types.ServerMessage{Type: "draftStarted", Version: r.version, State: r.snapshot()})
		}
	}
}

// timerFor returns the countdown duration for the current slot's category.
func (r *Room) timerFor() time.Duration {
	slot, ok := r.state.CurrentSlot()
	switch {
	case !ok:
		return r.timers.Default
	case slot.Skip != nil:
		return skipTimer
	case r.state.Inactive[slot.Team]:
		return r.timers.Inactive
	default:
		return r.timers.Default
	}
}

func (r *Room) resetTimer() {
	if r.state.Complete() {
		return
	}
	d := r.timerFor()
	r.timerSec = int(d / time.Second)
	r.deadline = r.clock.Now().Add(d)
	sec := r.timerSec
	r.broadcast(types.ServerMessage{Type: "timerUpdate", Timer: &sec})
}

// remaining is the display countdown, derived from the deadline rather than
// counted down itself.
func (r *Room) remaining() int {
	secs := int(math.Round(r.deadline.Sub(r.clock.Now()).Seconds()))
	return max(0, secs)
}

// finalize writes every real pick's team assignment through the external
// repositories. Failures are logged per item and do not stop the iteration;
// re-running the command repairs any gaps.
func (r *Room) finalize(clientID string) {
	if r.teamRepo == nil || r.players == nil {
		r.sendTo(clientID, types.ServerMessage{Type: "error", Error: "player assignment is not configured"})
		return
	}
	assigned, failed := 0, 0
	for _, pick := range r.state.Picks {
		if pick.PlayerID == nil {
			continue
		}
		teamID, err := r.teamRepo.FindIDByName(r.ctx, pick.Team)
		if err != nil {
			r.log.Warn("finalize: resolve team failed",
				zap.String("team", string(pick.Team)), zap.Error(err))
			failed++
			continue
		}
		if err := r.players.AssignTeam(r.ctx, *pick.PlayerID, teamID); err != nil {
			r.log.Warn("finalize: assign player failed",
				zap.String("player", *pick.PlayerID),
				zap.String("team", string(pick.Team)), zap.Error(err))
			failed++
			continue
		}
		assigned++
	}
	r.log.Info("finalize done", zap.Int("assigned", assigned), zap.Int("failed", failed))
	if failed > 0 {
		r.sendTo(clientID, types.ServerMessage{
			Type:  "error",
			Error: fmt.Sprintf("assigned %d picks, %d failed; re-run to retry", assigned, failed),
		})
		return
	}
	r.broadcast(types.ServerMessage{Type: "draftAssigned", Message: "All drafted players assigned to their teams."})
}

func (r *Room) snapshot() *types.DraftUpdate {
	inactive := make([]string, 0, len(r.state.Inactive))
	for t := range r.state.Inactive {
		inactive = append(inactive, string(t))
	}
	sort.Strings(inactive)

	picks := make([]draft.PickRecord, len(r.state.Picks))
	copy(picks, r.state.Picks)

	return &types.DraftUpdate{
		CurrentPickIndex: r.state.CurrentPick,
		DraftedPlayers:   picks,
		InactiveTeams:    inactive,
		Timer:            r.remaining(),
		AllPlayers:       r.state.Pool,
		TeamStatus:       r.teamStatus(),
	}
}

func (r *Room) teamStatus() map[draft.TeamName]bool {
	status := make(map[draft.TeamName]bool, len(r.state.TeamStatus))
	for t, connected := range r.state.TeamStatus {
		status[t] = connected
	}
	return status
}

func (r *Room) broadcast(msg types.ServerMessage) {
	for id, ch := range r.clients {
		select {
		case ch <- msg:
		default:
			// Client is slow or full: drop it. A reconnect re-fetches
			// the full state.
			close(ch)
			delete(r.clients, id)
			delete(r.teams, id)
		}
	}
}

func (r *Room) sendTo(clientID string, msg types.ServerMessage) {
	ch, ok := r.clients[clientID]
	if !ok {
		return
	}
	select {
	case ch <- msg:
	default:
		close(ch)
		delete(r.clients, clientID)
		delete(r.teams, clientID)
	}
}

func (r *Room) shutdown() {
	for id, ch := range r.clients {
		close(ch)
		delete(r.clients, id)
	}
	r.cancel()
}
