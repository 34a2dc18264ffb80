package game

import (
	"compress/gzip"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

const replayVersion = 2

// ErrReplayCorrupt is returned when a stored frame fails its checksum.
var ErrReplayCorrupt = errors.New("replay corrupt")

// Frame is the game as it stood after one committed action.
type Frame struct {
	Turn     int
	Label    string
	Checksum string
	Snapshot *Snapshot
}

// Replay is the frame-by-frame history of one game with a playback cursor.
type Replay struct {
	GameID  string
	Players []string
	Frames  []Frame

	mu     sync.RWMutex
	cursor int
}

// NewReplay creates an empty replay.
func NewReplay(gameID string) *Replay {
	return &Replay{GameID: gameID}
}

// Record appends snapshot as a new frame, stamping it with its checksum.
func (r *Replay) Record(snapshot *Snapshot) error {
	sum, err := snapshot.ComputeChecksum()
	if err != nil {
		return fmt.Errorf("record frame: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Players) == 0 {
		for _, p := range snapshot.Players {
			r.Players = append(r.Players, p.Name)
		}
	}
	r.Frames = append(r.Frames, Frame{
		Turn:     snapshot.Game.TurnNumber,
		Label:    snapshot.Label,
		Checksum: sum.Hash,
		Snapshot: snapshot,
	})
	return nil
}

func (r *Replay) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.Frames)
}

// At returns the snapshot of frame i, or nil when out of range.
func (r *Replay) At(i int) *Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i < 0 || i >= len(r.Frames) {
		return nil
	}
	return r.Frames[i].Snapshot
}

// Final returns the last recorded snapshot.
func (r *Replay) Final() *Snapshot {
	return r.At(r.Len() - 1)
}

// Turn returns the frames recorded while turn was being played.
func (r *Replay) Turn(turn int) []Frame {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Frame
	for _, f := range r.Frames {
		if f.Turn == turn {
			out = append(out, f)
		}
	}
	return out
}

// Labels lists what produced each frame, in order.
func (r *Replay) Labels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.Frames))
	for i, f := range r.Frames {
		out[i] = f.Label
	}
	return out
}

// Rewind puts the cursor before the first frame.
func (r *Replay) Rewind() {
	r.mu.Lock()
	r.cursor = 0
	r.mu.Unlock()
}

// Step returns the frame under the cursor and moves past it.
func (r *Replay) Step() *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cursor >= len(r.Frames) {
		return nil
	}
	r.cursor++
	return r.Frames[r.cursor-1].Snapshot
}

// Back moves the cursor one frame back and returns that frame.
func (r *Replay) Back() *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cursor == 0 {
		return nil
	}
	r.cursor--
	return r.Frames[r.cursor].Snapshot
}

// SeekTurn moves the cursor to the first frame of turn.
func (r *Replay) SeekTurn(turn int) *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, f := range r.Frames {
		if f.Turn >= turn {
			r.cursor = i
			return f.Snapshot
		}
	}
	return nil
}

type replayHeader struct {
	GameID  string
	Players []string
	SavedAt time.Time
	Version int
	Frames  int
}

type frameRecord struct {
	Turn     int
	Label    string
	Checksum string
	Data     []byte
}

func replayPath(directory, gameID string) string {
	return filepath.Join(directory, gameID+".replay")
}

// SaveToFile writes <directory>/<game id>.replay as gzip-compressed gob.
func (r *Replay) SaveToFile(directory string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := os.MkdirAll(directory, 0755); err != nil {
		return fmt.Errorf("create replay directory: %w", err)
	}
	file, err := os.Create(replayPath(directory, r.GameID))
	if err != nil {
		return fmt.Errorf("create replay file: %w", err)
	}
	defer file.Close()

	zw := gzip.NewWriter(file)
	enc := gob.NewEncoder(zw)
	header := replayHeader{
		GameID:  r.GameID,
		Players: r.Players,
		SavedAt: time.Now(),
		Version: replayVersion,
		Frames:  len(r.Frames),
	}
	if err := enc.Encode(&header); err != nil {
		return fmt.Errorf("encode replay header: %w", err)
	}
	for i, f := range r.Frames {
		data, err := f.Snapshot.SerializeToBytes()
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		rec := frameRecord{Turn: f.Turn, Label: f.Label, Checksum: f.Checksum, Data: data}
		if err := enc.Encode(&rec); err != nil {
			return fmt.Errorf("encode frame %d: %w", i, err)
		}
	}
	return zw.Close()
}

// LoadReplayFromFile reads a replay written by SaveToFile and verifies every
// frame against its stored checksum.
func LoadReplayFromFile(directory, gameID string) (*Replay, error) {
	file, err := os.Open(replayPath(directory, gameID))
	if err != nil {
		return nil, fmt.Errorf("open replay: %w", err)
	}
	defer file.Close()

	zr, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("open replay: %w", err)
	}
	defer zr.Close()
	dec := gob.NewDecoder(zr)

	var header replayHeader
	if err := dec.Decode(&header); err != nil {
		return nil, fmt.Errorf("decode replay header: %w", err)
	}
	if header.Version != replayVersion {
		return nil, fmt.Errorf("unsupported replay version: %d", header.Version)
	}

	replay := &Replay{GameID: header.GameID, Players: header.Players, Frames: make([]Frame, 0, header.Frames)}
	for i := 0; i < header.Frames; i++ {
		var rec frameRecord
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("decode frame %d: %w", i, err)
		}
		snapshot, err := DeserializeFromBytes(rec.Data)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		ok, err := snapshot.VerifyChecksum(&SerializationChecksum{Hash: rec.Checksum})
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: frame %d (turn %d, %s) does not match its checksum", ErrReplayCorrupt, i, rec.Turn, rec.Label)
		}
		replay.Frames = append(replay.Frames, Frame{Turn: rec.Turn, Label: rec.Label, Checksum: rec.Checksum, Snapshot: snapshot})
	}
	return replay, nil
}

// ReplayRecorder keeps in-memory replays for games in progress.
type ReplayRecorder struct {
	logger  *zap.Logger
	saveDir string

	mu      sync.RWMutex
	replays map[string]*Replay
}

// NewReplayRecorder creates a recorder that saves under saveDir.
func NewReplayRecorder(logger *zap.Logger, saveDir string) *ReplayRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReplayRecorder{
		logger:  logger,
		saveDir: saveDir,
		replays: make(map[string]*Replay),
	}
}

// StartRecording begins a replay for state's game with a "start" frame.
func (rr *ReplayRecorder) StartRecording(state *GameState) {
	gameID := state.Game.ID.String()
	replay := NewReplay(gameID)
	if err := replay.Record(NewSnapshot(state, "start")); err != nil {
		rr.logger.Warn("failed to record start frame", zap.String("game_id", gameID), zap.Error(err))
		return
	}
	rr.mu.Lock()
	rr.replays[gameID] = replay
	rr.mu.Unlock()
	rr.logger.Debug("started replay recording", zap.String("game_id", gameID))
}

// RecordState adds a frame if state's game is being recorded.
func (rr *ReplayRecorder) RecordState(state *GameState, label string) {
	gameID := state.Game.ID.String()
	rr.mu.RLock()
	replay := rr.replays[gameID]
	rr.mu.RUnlock()
	if replay == nil {
		return
	}
	if err := replay.Record(NewSnapshot(state, label)); err != nil {
		rr.logger.Warn("failed to record frame", zap.String("game_id", gameID), zap.String("label", label), zap.Error(err))
	}
}

func (rr *ReplayRecorder) GetReplay(gameID string) (*Replay, bool) {
	rr.mu.RLock()
	defer rr.mu.RUnlock()
	replay, ok := rr.replays[gameID]
	return replay, ok
}

// SaveReplay writes the replay to disk and stops recording it.
func (rr *ReplayRecorder) SaveReplay(gameID string) error {
	rr.mu.Lock()
	replay, ok := rr.replays[gameID]
	delete(rr.replays, gameID)
	rr.mu.Unlock()
	if !ok {
		return fmt.Errorf("no replay recorded for game %s", gameID)
	}

	if err := replay.SaveToFile(rr.saveDir); err != nil {
		return fmt.Errorf("save replay %s: %w", gameID, err)
	}
	rr.logger.Info("saved replay",
		zap.String("game_id", gameID),
		zap.Int("frames", replay.Len()),
		zap.String("directory", rr.saveDir),
	)
	return nil
}

// LoadReplay reads a saved replay from the recorder's directory.
func (rr *ReplayRecorder) LoadReplay(gameID string) (*Replay, error) {
	return LoadReplayFromFile(rr.saveDir, gameID)
}

// ClearReplay drops a replay without saving.
func (rr *ReplayRecorder) ClearReplay(gameID string) {
	rr.mu.Lock()
	delete(rr.replays, gameID)
	rr.mu.Unlock()
}

func (rr *ReplayRecorder) IsRecording(gameID string) bool {
	rr.mu.RLock()
	defer rr.mu.RUnlock()
	_, ok := rr.replays[gameID]
	return ok
}
