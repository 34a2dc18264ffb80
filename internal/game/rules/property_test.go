package rules

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanBuy(t *testing.T) {
	me, other := uuid.New(), uuid.New()
	b := newTestBoard()

	ok, reason := CanBuy("boardwalk", PlayerView{ID: me, Cash: 400}, b)
	assert.True(t, ok)
	assert.Empty(t, reason)

	ok, reason = CanBuy("boardwalk", PlayerView{ID: me, Cash: 399}, b)
	assert.False(t, ok)
	assert.Contains(t, reason, "insufficient funds")

	b.give(other, "boardwalk")
	ok, reason = CanBuy("boardwalk", PlayerView{ID: me, Cash: 2000}, b)
	assert.False(t, ok)
	assert.Contains(t, reason, "already owned")

	ok, _ = CanBuy("atlantis", PlayerView{ID: me, Cash: 2000}, b)
	assert.False(t, ok)
}

func TestStreetRent(t *testing.T) {
	owner := uuid.New()
	b := newTestBoard().give(owner, "mediterranean")
	assert.Equal(t, 2, CalculateRent("mediterranean", b, 0))

	b.give(owner, "baltic")
	assert.Equal(t, 4, CalculateRent("mediterranean", b, 0))
	assert.Equal(t, 8, CalculateRent("baltic", b, 0))

	b.build("mediterranean", 1)
	assert.Equal(t, 10, CalculateRent("mediterranean", b, 0))
	b.build("mediterranean", 5)
	assert.Equal(t, 250, CalculateRent("mediterranean", b, 0))
}

func TestUnownedRentIsZero(t *testing.T) {
	b := newTestBoard()
	assert.Equal(t, 0, CalculateRent("boardwalk", b, 0))
	assert.Equal(t, 0, CalculateRent("reading_rr", b, 0))
	assert.Equal(t, 0, CalculateRent("water_works", b, 8))
}

func TestRailroadRent(t *testing.T) {
	owner := uuid.New()
	b := newTestBoard()
	expected := []int{25, 50, 100, 200}
	for i, id := range []string{"reading_rr", "pennsylvania_rr", "bo_rr", "short_line_rr"} {
		b.give(owner, id)
		assert.Equal(t, expected[i], CalculateRent("reading_rr", b, 0), "railroads owned: %d", i+1)
	}
}

func TestUtilityRent(t *testing.T) {
	owner := uuid.New()
	b := newTestBoard().give(owner, "electric_company")
	assert.Equal(t, 32, CalculateRent("electric_company", b, 8))
	assert.Equal(t, 28, CalculateRent("electric_company", b, 0))

	b.give(owner, "water_works")
	assert.Equal(t, 80, CalculateRent("electric_company", b, 8))
	assert.Equal(t, 70, CalculateRent("water_works", b, -1))
}

func TestSplitGroupDoesNotDouble(t *testing.T) {
	a, c := uuid.New(), uuid.New()
	b := newTestBoard().give(a, "park_place").give(c, "boardwalk")
	assert.Equal(t, 35, CalculateRent("park_place", b, 0))
	assert.False(t, OwnsColorGroup(a, "dark_blue", b))
}

func TestBuildingCounts(t *testing.T) {
	owner := uuid.New()
	b := newTestBoard().give(owner, "mediterranean", "baltic", "reading_rr").
		build("mediterranean", 3).build("baltic", 5)
	houses, hotels := BuildingCounts(owner, b)
	assert.Equal(t, 3, houses)
	assert.Equal(t, 1, hotels)
	assert.Equal(t, []string{"mediterranean", "baltic", "reading_rr"}, OwnedProperties(owner, b))
}
