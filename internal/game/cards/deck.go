package cards

import (
	"fmt"
	"math/rand"

	"github.com/agentopoly/monopoly-engine/internal/game/board"
)

// Deck is a pre-shuffled card order with a draw cursor. Draws cycle
// through Order and wrap without reshuffling.
type Deck struct {
	Type  board.DeckType
	Order []int
	Index int
}

// NewShuffledDeck builds a deck of card ids 1..16 shuffled with rng.
func NewShuffledDeck(deckType board.DeckType, rng *rand.Rand) *Deck {
	order := make([]int, board.DeckSize)
	for i := range order {
		order[i] = i + 1
	}
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	return &Deck{Type: deckType, Order: order}
}

// NewDeck builds a deck with an explicit order, used when restoring state.
func NewDeck(deckType board.DeckType, order []int, index int) (*Deck, error) {
	if len(order) == 0 {
		return nil, fmt.Errorf("deck %s has no cards", deckType)
	}
	for _, id := range order {
		if _, ok := board.LookupCard(deckType, id); !ok {
			return nil, fmt.Errorf("deck %s: unknown card %d", deckType, id)
		}
	}
	if index < 0 || index >= len(order) {
		return nil, fmt.Errorf("deck %s: index %d out of range", deckType, index)
	}
	return &Deck{Type: deckType, Order: append([]int(nil), order...), Index: index}, nil
}

// Draw returns the card under the cursor and advances it.
func (d *Deck) Draw() (board.Card, error) {
	if len(d.Order) == 0 {
		return board.Card{}, fmt.Errorf("deck %s is empty", d.Type)
	}
	id := d.Order[d.Index]
	card, ok := board.LookupCard(d.Type, id)
	if !ok {
		return board.Card{}, fmt.Errorf("deck %s: unknown card %d", d.Type, id)
	}
	d.Index = (d.Index + 1) % len(d.Order)
	return card, nil
}

// Peek returns the next card id without drawing.
func (d *Deck) Peek() int {
	if len(d.Order) == 0 {
		return 0
	}
	return d.Order[d.Index]
}

// Clone returns an independent copy.
func (d *Deck) Clone() *Deck {
	if d == nil {
		return nil
	}
	return &Deck{Type: d.Type, Order: append([]int(nil), d.Order...), Index: d.Index}
}
