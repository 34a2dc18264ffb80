package integration

import (
	"context"
	"testing"

	"github.com/agentopoly/monopoly-engine/internal/game"
	"github.com/agentopoly/monopoly-engine/internal/simulation"
	"go.uber.org/zap"
)

func TestReplayIntegration_SimulatedGameRoundTrip(t *testing.T) {
	dir := t.TempDir()
	logger := zap.NewNop()
	recorder := game.NewReplayRecorder(logger, dir)

	runner := simulation.NewRunner(logger, game.DefaultSettings(), 2000)
	runner.SetReplayRecorder(recorder)

	var outcome simulation.Outcome
	for seed := int64(1); seed <= 20; seed++ {
		out, err := runner.Play(context.Background(),
			[]simulation.Agent{simulation.NewGreedyAgent(0), simulation.NewRandomAgent(seed)}, seed)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if out.Finished {
			outcome = out
			break
		}
	}
	if !outcome.Finished {
		t.Skip("no simulated game finished within the turn limit")
	}

	replay, err := recorder.LoadReplay(outcome.GameID)
	if err != nil {
		t.Fatalf("Failed to load replay: %v", err)
	}
	if replay.Len() < 2 {
		t.Fatalf("expected several frames, got %d", replay.Len())
	}
	if len(replay.Turn(2)) == 0 {
		t.Fatal("expected frames recorded for turn 2")
	}

	last := replay.Final()
	state, err := last.Restore()
	if err != nil {
		t.Fatalf("Failed to restore final snapshot: %v", err)
	}
	if state.Game.Status != game.StatusCompleted {
		t.Fatalf("expected completed game, got %s", state.Game.Status)
	}
	if state.Game.WinnerID == nil {
		t.Fatal("expected a winner in the final snapshot")
	}
	restored, err := game.NewSnapshot(state, "restored").ComputeChecksum()
	if err != nil {
		t.Fatalf("Failed to checksum restored state: %v", err)
	}
	if restored.Hash != replay.Frames[replay.Len()-1].Checksum {
		t.Fatal("restored final state does not match the recorded checksum")
	}

	first := replay.At(0)
	for _, p := range first.Players {
		if p.Cash != game.DefaultStartingCash {
			t.Fatalf("expected starting cash in first snapshot, got %d", p.Cash)
		}
	}
}
