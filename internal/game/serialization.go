package game

import (
	"bytes"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/agentopoly/monopoly-engine/internal/game/board"
	"github.com/agentopoly/monopoly-engine/internal/game/cards"
	"golang.org/x/crypto/blake2b"
)

// SerializationChecksum is a digest of a snapshot's deterministic fields.
type SerializationChecksum struct {
	Hash      string // BLAKE2b-256 of the canonical representation
	Timestamp string
	Version   int
}

// DeckSnapshot is the persisted form of a card deck.
type DeckSnapshot struct {
	Type  board.DeckType
	Order []int
	Index int
}

// Snapshot is a self-contained, gob-encodable copy of a GameState.
// Properties are kept in board order.
type Snapshot struct {
	Game       Game
	Players    []Player
	Properties []PropertyState
	Decks      []DeckSnapshot
	Label      string
	Timestamp  time.Time
}

// NewSnapshot copies state. label describes what produced it, e.g. the action.
func NewSnapshot(state *GameState, label string) *Snapshot {
	clone := state.Clone()
	snap := &Snapshot{
		Game:      clone.Game,
		Players:   make([]Player, len(clone.Players)),
		Label:     label,
		Timestamp: time.Now(),
	}
	for i, p := range clone.Players {
		snap.Players[i] = *p
	}
	for _, id := range board.PropertyIDs() {
		if ps, ok := clone.Properties[id]; ok {
			snap.Properties = append(snap.Properties, *ps)
		}
	}
	for _, t := range []board.DeckType{board.DeckChance, board.DeckCommunityChest} {
		if d, ok := clone.Decks[t]; ok {
			snap.Decks = append(snap.Decks, DeckSnapshot{Type: d.Type, Order: d.Order, Index: d.Index})
		}
	}
	return snap
}

// Restore rebuilds a GameState from the snapshot.
func (snapshot *Snapshot) Restore() (*GameState, error) {
	state := &GameState{
		Game:       snapshot.Game,
		Players:    make([]*Player, len(snapshot.Players)),
		Properties: make(map[string]*PropertyState, len(snapshot.Properties)),
		Decks:      make(map[board.DeckType]*cards.Deck, len(snapshot.Decks)),
	}
	for i := range snapshot.Players {
		p := snapshot.Players[i]
		state.Players[i] = &p
	}
	for i := range snapshot.Properties {
		ps := snapshot.Properties[i]
		if _, ok := board.LookupProperty(ps.PropertyID); !ok {
			return nil, fmt.Errorf("restore snapshot: %w: %q", ErrUnknownProperty, ps.PropertyID)
		}
		state.Properties[ps.PropertyID] = &ps
	}
	for _, ds := range snapshot.Decks {
		d, err := cards.NewDeck(ds.Type, ds.Order, ds.Index)
		if err != nil {
			return nil, fmt.Errorf("restore snapshot: %w", err)
		}
		state.Decks[ds.Type] = d
	}
	return state.Clone(), nil
}

// ComputeChecksum generates a deterministic checksum of the snapshot.
// Timestamps and the label are excluded.
func (snapshot *Snapshot) ComputeChecksum() (*SerializationChecksum, error) {
	hash, err := blake2b.New256(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create hash: %w", err)
	}
	if _, err := hash.Write([]byte(snapshot.buildDeterministicRepresentation())); err != nil {
		return nil, fmt.Errorf("failed to compute hash: %w", err)
	}
	return &SerializationChecksum{
		Hash:      hex.EncodeToString(hash.Sum(nil)),
		Timestamp: snapshot.Timestamp.Format("2006-01-02T15:04:05.000Z"),
		Version:   1,
	}, nil
}

func (snapshot *Snapshot) buildDeterministicRepresentation() string {
	var buf bytes.Buffer
	g := snapshot.Game

	roll := "-"
	if g.LastDiceRoll != nil {
		roll = g.LastDiceRoll.String()
	}
	winner := "-"
	if g.WinnerID != nil {
		winner = g.WinnerID.String()
	}
	buf.WriteString(fmt.Sprintf("GAME:%s|%s|%d|%d|%s|%d|%s|%s\n",
		g.ID, g.Status, g.CurrentPlayerIndex, g.TurnNumber, g.TurnPhase, g.DoublesCount, roll, winner))

	// Seat order is significant.
	for _, p := range snapshot.Players {
		buf.WriteString(fmt.Sprintf("PLAYER:%s|%s|%d|%d|%d|%t|%d|%d|%t\n",
			p.ID, p.Name, p.Order, p.Position, p.Cash, p.InJail, p.JailTurns, p.JailFreeCards, p.Bankrupt))
	}

	for _, ps := range snapshot.Properties {
		owner := "-"
		if ps.OwnerID != nil {
			owner = ps.OwnerID.String()
		}
		buf.WriteString(fmt.Sprintf("PROPERTY:%s|%s|%d\n", ps.PropertyID, owner, ps.Houses))
	}

	for _, d := range snapshot.Decks {
		order := make([]string, len(d.Order))
		for i, id := range d.Order {
			order[i] = fmt.Sprint(id)
		}
		buf.WriteString(fmt.Sprintf("DECK:%s|%d|%s\n", d.Type, d.Index, strings.Join(order, ",")))
	}

	return buf.String()
}

// VerifyChecksum reports whether expected matches the snapshot's checksum.
func (snapshot *Snapshot) VerifyChecksum(expected *SerializationChecksum) (bool, error) {
	computed, err := snapshot.ComputeChecksum()
	if err != nil {
		return false, fmt.Errorf("failed to compute checksum: %w", err)
	}
	return computed.Hash == expected.Hash, nil
}

// SerializeToBytes encodes the snapshot with gob.
func (snapshot *Snapshot) SerializeToBytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snapshot); err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// DeserializeFromBytes decodes a gob-encoded snapshot.
func DeserializeFromBytes(data []byte) (*Snapshot, error) {
	var snapshot Snapshot
	if err := gob.NewDecoder(bytes.NewBuffer(data)).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snapshot, nil
}
