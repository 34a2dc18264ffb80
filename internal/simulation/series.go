package simulation

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SeriesState represents the state of a series
type SeriesState int

const (
	SeriesStateWaiting SeriesState = iota
	SeriesStateInProgress
	SeriesStateFinished
	SeriesStateFailed
)

func (s SeriesState) String() string {
	switch s {
	case SeriesStateWaiting:
		return "WAITING"
	case SeriesStateInProgress:
		return "IN_PROGRESS"
	case SeriesStateFinished:
		return "FINISHED"
	case SeriesStateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// AgentRecord is the running tally for one agent kind across a series.
type AgentRecord struct {
	Agent        string
	Seats        int
	Wins         int
	Bankruptcies int
	TotalWorth   int
}

// AverageWorth is the mean final net worth per seat.
func (r AgentRecord) AverageWorth() float64 {
	if r.Seats == 0 {
		return 0
	}
	return float64(r.TotalWorth) / float64(r.Seats)
}

// SeriesSnapshot captures a consistent view of a series.
type SeriesSnapshot struct {
	ID        string
	State     SeriesState
	Games     int
	Played    int
	Finished  int
	Standings []AgentRecord
	StartTime *time.Time
	EndTime   *time.Time
	Error     string
}

// SeriesConfig describes a batch of games.
type SeriesConfig struct {
	Games       int
	Agents      []string
	Seed        int64
	Parallelism int
}

// Series plays many seeded games concurrently and tallies results per agent.
type Series struct {
	ID     string
	config SeriesConfig
	runner *Runner
	logger *zap.Logger

	mu        sync.RWMutex
	state     SeriesState
	outcomes  []Outcome
	records   map[string]*AgentRecord
	startTime *time.Time
	endTime   *time.Time
	err       error
}

// NewSeries creates a series. Seat i of every game is played by Agents[i].
func NewSeries(cfg SeriesConfig, runner *Runner, logger *zap.Logger) (*Series, error) {
	if cfg.Games < 1 {
		return nil, fmt.Errorf("series needs at least one game, got %d", cfg.Games)
	}
	if len(cfg.Agents) == 0 {
		return nil, fmt.Errorf("series needs agents")
	}
	for _, kind := range cfg.Agents {
		if _, err := NewAgent(kind, 0); err != nil {
			return nil, err
		}
	}
	if cfg.Parallelism < 1 {
		cfg.Parallelism = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Series{
		ID:      uuid.New().String(),
		config:  cfg,
		runner:  runner,
		logger:  logger,
		state:   SeriesStateWaiting,
		records: make(map[string]*AgentRecord),
	}, nil
}

// Run plays every game. Game i uses seed Seed+i, so a series is reproducible
// regardless of parallelism.
func (s *Series) Run(ctx context.Context) (SeriesSnapshot, error) {
	s.mu.Lock()
	if s.state != SeriesStateWaiting {
		s.mu.Unlock()
		return s.Snapshot(), fmt.Errorf("series %s already %s", s.ID, s.state)
	}
	now := time.Now()
	s.state = SeriesStateInProgress
	s.startTime = &now
	s.outcomes = make([]Outcome, s.config.Games)
	s.mu.Unlock()

	s.logger.Info("series started",
		zap.String("series_id", s.ID),
		zap.Int("games", s.config.Games),
		zap.Strings("agents", s.config.Agents),
		zap.Int("parallelism", s.config.Parallelism),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Parallelism)
	for i := 0; i < s.config.Games; i++ {
		i := i
		g.Go(func() error {
			seed := s.config.Seed + int64(i)
			agents := make([]Agent, len(s.config.Agents))
			for j, kind := range s.config.Agents {
				agent, err := NewAgent(kind, seed*31+int64(j))
				if err != nil {
					return err
				}
				agents[j] = agent
			}
			outcome, err := s.runner.Play(gctx, agents, seed)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i, seed, err)
			}
			s.record(i, outcome)
			return nil
		})
	}
	err := g.Wait()

	s.mu.Lock()
	end := time.Now()
	s.endTime = &end
	if err != nil {
		s.state = SeriesStateFailed
		s.err = err
	} else {
		s.state = SeriesStateFinished
	}
	s.mu.Unlock()

	snap := s.Snapshot()
	s.logger.Info("series finished",
		zap.String("series_id", s.ID),
		zap.String("state", snap.State.String()),
		zap.Int("played", snap.Played),
		zap.Int("finished", snap.Finished),
		zap.Duration("elapsed", end.Sub(now)),
	)
	return snap, err
}

func (s *Series) record(index int, outcome Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outcomes[index] = outcome
	for _, st := range outcome.Standings {
		rec, ok := s.records[st.Agent]
		if !ok {
			rec = &AgentRecord{Agent: st.Agent}
			s.records[st.Agent] = rec
		}
		rec.Seats++
		rec.TotalWorth += st.NetWorth
		if st.Bankrupt {
			rec.Bankruptcies++
		}
		if outcome.Winner != "" && st.Name == outcome.Winner {
			rec.Wins++
		}
	}
}

// Outcomes returns the per-game results in seed order.
func (s *Series) Outcomes() []Outcome {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Outcome(nil), s.outcomes...)
}

// Snapshot returns a consistent view with standings sorted by wins.
func (s *Series) Snapshot() SeriesSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := SeriesSnapshot{
		ID:        s.ID,
		State:     s.state,
		Games:     s.config.Games,
		StartTime: cloneTime(s.startTime),
		EndTime:   cloneTime(s.endTime),
	}
	if s.err != nil {
		snap.Error = s.err.Error()
	}
	for _, o := range s.outcomes {
		if o.GameID == "" {
			continue
		}
		snap.Played++
		if o.Finished {
			snap.Finished++
		}
	}
	for _, rec := range s.records {
		snap.Standings = append(snap.Standings, *rec)
	}
	sort.Slice(snap.Standings, func(i, j int) bool {
		a, b := snap.Standings[i], snap.Standings[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.AverageWorth() != b.AverageWorth() {
			return a.AverageWorth() > b.AverageWorth()
		}
		return a.Agent < b.Agent
	})
	return snap
}

func cloneTime(src *time.Time) *time.Time {
	if src == nil {
		return nil
	}
	t := *src
	return &t
}
