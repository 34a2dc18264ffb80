package rules

import "github.com/google/uuid"

type testBoard struct {
	owners map[string]uuid.UUID
	houses map[string]int
}

func newTestBoard() *testBoard {
	return &testBoard{owners: map[string]uuid.UUID{}, houses: map[string]int{}}
}

func (b *testBoard) OwnerOf(id string) (uuid.UUID, bool) {
	o, ok := b.owners[id]
	return o, ok
}

func (b *testBoard) HousesOn(id string) int { return b.houses[id] }

func (b *testBoard) give(owner uuid.UUID, ids ...string) *testBoard {
	for _, id := range ids {
		b.owners[id] = owner
	}
	return b
}

func (b *testBoard) build(id string, houses int) *testBoard {
	b.houses[id] = houses
	return b
}
