package simulation

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/agentopoly/monopoly-engine/internal/game"
	"github.com/agentopoly/monopoly-engine/internal/game/rules"
	"github.com/agentopoly/monopoly-engine/internal/game/watchers"
	"go.uber.org/zap"
)

// ErrStalled is returned when the current player has no valid action.
var ErrStalled = errors.New("no valid actions")

// actionsPerTurn bounds the actions a single turn may take.
const actionsPerTurn = 64

// Standing is one player's final position in a game.
type Standing struct {
	Name     string
	Agent    string
	Cash     int
	NetWorth int
	Bankrupt bool
	Stats    watchers.PlayerStats
}

// Outcome summarises one simulated game.
type Outcome struct {
	GameID    string
	Seed      int64
	Turns     int
	Actions   int
	Finished  bool
	Winner    string
	Standings []Standing
}

// Runner plays agent-driven games to completion.
type Runner struct {
	logger   *zap.Logger
	settings game.Settings
	maxTurns int
	recorder *game.ReplayRecorder
}

// NewRunner creates a runner that abandons games after maxTurns turns.
func NewRunner(logger *zap.Logger, settings game.Settings, maxTurns int) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger, settings: settings, maxTurns: maxTurns}
}

// SetReplayRecorder saves a replay of every game the runner plays.
func (r *Runner) SetReplayRecorder(recorder *game.ReplayRecorder) {
	r.recorder = recorder
}

// Play runs one game. Seats follow the order of agents.
func (r *Runner) Play(ctx context.Context, agents []Agent, seed int64) (Outcome, error) {
	seats := make([]game.Seat, len(agents))
	for i, a := range agents {
		seats[i] = game.Seat{Name: fmt.Sprintf("%s-%d", a.Name(), i+1), Agent: a.Name()}
	}
	state, err := game.NewGameState(seats, r.settings, rand.New(rand.NewSource(seed)))
	if err != nil {
		return Outcome{}, err
	}
	if err := state.Start(); err != nil {
		return Outcome{}, err
	}

	agentFor := make(map[string]Agent, len(agents))
	ids := make([]string, len(state.Players))
	for i, p := range state.Players {
		agentFor[p.ID.String()] = agents[i]
		ids[i] = p.ID.String()
	}

	bus := rules.NewEventBus()
	tracker := watchers.NewTracker(ids)
	defer bus.Unsubscribe(tracker.Attach(bus))

	mgr := game.NewManager(state, rules.NewRandomDice(seed), r.logger)
	mgr.SetEventBus(bus)

	gameID := state.Game.ID.String()
	if r.recorder != nil {
		r.recorder.StartRecording(state)
		defer r.recorder.ClearReplay(gameID)
	}

	out := Outcome{GameID: gameID, Seed: seed}
	limit := r.maxTurns * actionsPerTurn
	for state.Game.Status == game.StatusInProgress && state.Game.TurnNumber <= r.maxTurns {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		if out.Actions >= limit {
			break
		}
		player, err := state.CurrentPlayer()
		if err != nil {
			return out, err
		}
		actions := mgr.ValidActions()
		if len(actions) == 0 {
			return out, fmt.Errorf("game %s turn %d: %w for %s in %s",
				gameID, state.Game.TurnNumber, ErrStalled, player.Name, state.Game.TurnPhase)
		}

		action := agentFor[player.ID.String()].Choose(Turn{State: state, Player: player, Actions: actions})
		result, err := mgr.ExecuteAction(action)
		if err != nil {
			return out, err
		}
		out.Actions++
		if !result.Success {
			r.logger.Debug("agent chose an illegal action",
				zap.String("game_id", gameID),
				zap.String("player", player.Name),
				zap.String("action", string(action.Type)),
				zap.String("message", result.Message),
			)
			continue
		}
		if r.recorder != nil {
			r.recorder.RecordState(state, action.String())
		}
	}

	out.Turns = state.Game.TurnNumber
	out.Finished = state.Game.Status == game.StatusCompleted
	if state.Game.WinnerID != nil {
		if w, ok := state.Player(*state.Game.WinnerID); ok {
			out.Winner = w.Name
		}
	}
	out.Standings = standings(state, tracker)

	if r.recorder != nil && out.Finished {
		if err := r.recorder.SaveReplay(gameID); err != nil {
			r.logger.Warn("failed to save replay", zap.String("game_id", gameID), zap.Error(err))
		}
	}

	r.logger.Debug("game simulated",
		zap.String("game_id", gameID),
		zap.Int64("seed", seed),
		zap.Int("turns", out.Turns),
		zap.Bool("finished", out.Finished),
		zap.String("winner", out.Winner),
	)
	return out, nil
}

// standings orders players by solvency, then net worth.
func standings(state *game.GameState, tracker *watchers.Tracker) []Standing {
	out := make([]Standing, 0, len(state.Players))
	for _, p := range state.Players {
		out = append(out, Standing{
			Name:     p.Name,
			Agent:    p.Agent,
			Cash:     p.Cash,
			NetWorth: state.NetWorth(p.ID),
			Bankrupt: p.Bankrupt,
			Stats:    tracker.Stats(p.ID.String()),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Bankrupt != out[j].Bankrupt {
			return !out[i].Bankrupt
		}
		return out[i].NetWorth > out[j].NetWorth
	})
	return out
}
