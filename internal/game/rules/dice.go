package rules

import (
	"fmt"
	"math/rand"
	"sync"
)

// DiceRoll is the outcome of throwing two six-sided dice.
type DiceRoll struct {
	Die1 int
	Die2 int
}

func (r DiceRoll) Total() int { return r.Die1 + r.Die2 }

func (r DiceRoll) IsDoubles() bool { return r.Die1 == r.Die2 }

func (r DiceRoll) String() string {
	return fmt.Sprintf("%d+%d", r.Die1, r.Die2)
}

// Dice produces rolls. Implementations are injected so games can be replayed.
type Dice interface {
	Roll() DiceRoll
}

// RandomDice rolls with a private seeded source. Safe for concurrent use.
type RandomDice struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomDice creates dice seeded with seed.
func NewRandomDice(seed int64) *RandomDice {
	return &RandomDice{rng: rand.New(rand.NewSource(seed))}
}

func (d *RandomDice) Roll() DiceRoll {
	d.mu.Lock()
	defer d.mu.Unlock()
	return DiceRoll{Die1: d.rng.Intn(6) + 1, Die2: d.rng.Intn(6) + 1}
}

// SequenceDice replays a fixed list of rolls and then repeats the last one.
type SequenceDice struct {
	mu    sync.Mutex
	rolls []DiceRoll
	next  int
}

// NewSequenceDice builds dice from (die1, die2) pairs.
func NewSequenceDice(pairs ...[2]int) *SequenceDice {
	rolls := make([]DiceRoll, len(pairs))
	for i, p := range pairs {
		rolls[i] = DiceRoll{Die1: p[0], Die2: p[1]}
	}
	return &SequenceDice{rolls: rolls}
}

func (d *SequenceDice) Roll() DiceRoll {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.rolls) == 0 {
		return DiceRoll{Die1: 1, Die2: 2}
	}
	idx := d.next
	if idx >= len(d.rolls) {
		idx = len(d.rolls) - 1
	} else {
		d.next++
	}
	return d.rolls[idx]
}

// Remaining reports how many scripted rolls have not been used.
func (d *SequenceDice) Remaining() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.rolls) - d.next
}
