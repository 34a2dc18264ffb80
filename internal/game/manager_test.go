package game

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/agentopoly/monopoly-engine/internal/game/board"
	"github.com/agentopoly/monopoly-engine/internal/game/cards"
	"github.com/agentopoly/monopoly-engine/internal/game/rules"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestState(t *testing.T, players int) *GameState {
	t.Helper()
	names := []string{"Alice", "Bob", "Carol", "Dave", "Erin", "Frank"}
	seats := make([]Seat, players)
	for i := range seats {
		seats[i] = Seat{Name: names[i], Agent: "test"}
	}
	state, err := NewGameState(seats, DefaultSettings(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.NoError(t, state.Start())
	return state
}

func newTestManager(t *testing.T, state *GameState, rolls ...[2]int) *Manager {
	t.Helper()
	return NewManager(state, rules.NewSequenceDice(rolls...), zaptest.NewLogger(t))
}

func setDeck(t *testing.T, state *GameState, deck board.DeckType, order ...int) {
	t.Helper()
	d, err := cards.NewDeck(deck, order, 0)
	require.NoError(t, err)
	state.Decks[deck] = d
}

func own(state *GameState, p *Player, ids ...string) {
	for _, id := range ids {
		owner := p.ID
		state.Properties[id].OwnerID = &owner
	}
}

func act(t *testing.T, m *Manager, a ActionType, propertyID ...string) ActionResult {
	t.Helper()
	action := Action{Type: a, PlayerID: mustCurrent(t, m.State()).ID}
	if len(propertyID) > 0 {
		action.PropertyID = propertyID[0]
	}
	res, err := m.ExecuteAction(action)
	require.NoError(t, err)
	return res
}

func mustCurrent(t *testing.T, s *GameState) *Player {
	t.Helper()
	p, err := s.CurrentPlayer()
	require.NoError(t, err)
	return p
}

func actionTypes(actions []ValidAction) []ActionType {
	out := make([]ActionType, len(actions))
	for i, a := range actions {
		out[i] = a.Type
	}
	return out
}

func TestNewGameStateValidatesPlayerCount(t *testing.T) {
	_, err := NewGameState([]Seat{{Name: "solo"}}, DefaultSettings(), nil)
	assert.True(t, errors.Is(err, ErrInvalidPlayerCount))

	seats := make([]Seat, 7)
	_, err = NewGameState(seats, DefaultSettings(), nil)
	assert.True(t, errors.Is(err, ErrInvalidPlayerCount))
}

func TestNewGameStateDefaults(t *testing.T) {
	state, err := NewGameState([]Seat{{Name: "a"}, {Name: "b"}}, Settings{}, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	assert.Equal(t, StatusWaiting, state.Game.Status)
	assert.Len(t, state.Properties, 28)
	for _, p := range state.Players {
		assert.Equal(t, DefaultStartingCash, p.Cash)
		assert.Zero(t, p.Position)
	}
	assert.Len(t, state.Decks, 2)

	require.NoError(t, state.Start())
	assert.Equal(t, StatusInProgress, state.Game.Status)
	assert.Equal(t, 1, state.Game.TurnNumber)
	assert.Error(t, state.Start())
}

func TestScenarioRollPastGoOntoRailroad(t *testing.T) {
	state := newTestState(t, 2)
	alice := state.Players[0]
	alice.Position = 35
	m := newTestManager(t, state, [2]int{4, 6})

	res := act(t, m, ActionRollDice)
	require.True(t, res.Success, res.Message)
	require.NotNil(t, res.Movement)
	assert.Equal(t, 5, res.Movement.NewPosition)
	assert.True(t, res.Movement.PassedGo)
	assert.Equal(t, 1700, alice.Cash)
	assert.Equal(t, rules.PhaseAwaitingBuyDecision, res.NextPhase)
	assert.Equal(t, &rules.DiceRoll{Die1: 4, Die2: 6}, state.Game.LastDiceRoll)

	valid := m.ValidActions()
	assert.Equal(t, []ActionType{ActionBuyProperty, ActionPassProperty}, actionTypes(valid))
	assert.Equal(t, "reading_rr", valid[0].PropertyID)
}

func TestScenarioMonopolyRentDoubles(t *testing.T) {
	state := newTestState(t, 2)
	alice, bob := state.Players[0], state.Players[1]
	own(state, bob, "mediterranean", "baltic")
	alice.Position = 35
	m := newTestManager(t, state, [2]int{2, 4})

	res := act(t, m, ActionRollDice)
	require.True(t, res.Success)
	assert.Equal(t, 4, res.RentPaid)
	require.NotNil(t, res.RentTo)
	assert.Equal(t, bob.ID, *res.RentTo)
	assert.Equal(t, 1500+GoSalary-4, alice.Cash)
	assert.Equal(t, 1504, bob.Cash)
	assert.Equal(t, rules.PhasePostRoll, res.NextPhase)
}

func TestScenarioForcedJailPaymentBankrupts(t *testing.T) {
	state := newTestState(t, 2)
	alice, bob := state.Players[0], state.Players[1]
	alice.Position = board.JailPosition
	alice.InJail = true
	alice.JailTurns = 2
	alice.Cash = 30
	own(state, alice, "oriental")
	state.Properties["oriental"].Houses = 0
	state.Game.TurnPhase = rules.PhaseAwaitingJailDecision
	m := newTestManager(t, state, [2]int{1, 2})

	valid := m.ValidActions()
	assert.Equal(t, []ActionType{ActionRollForDoubles}, actionTypes(valid))

	res := act(t, m, ActionRollForDoubles)
	require.True(t, res.Success)
	require.NotNil(t, res.JailResult)
	assert.Equal(t, rules.EscapeForcedPay, res.JailResult.Method)
	require.Len(t, res.Bankruptcies, 1)
	assert.Nil(t, res.Bankruptcies[0].Creditor)
	assert.True(t, alice.Bankrupt)
	assert.Zero(t, alice.Cash)
	assert.Nil(t, state.Properties["oriental"].OwnerID)

	assert.True(t, res.GameOver)
	require.NotNil(t, res.WinnerID)
	assert.Equal(t, bob.ID, *res.WinnerID)
	assert.Equal(t, StatusCompleted, state.Game.Status)
	assert.Equal(t, rules.PhaseCompleted, state.Game.TurnPhase)
	assert.Empty(t, m.ValidActions())

	_, err := m.ExecuteAction(Action{Type: ActionEndTurn})
	assert.True(t, errors.Is(err, ErrGameNotInProgress))
}

func TestScenarioBuyBoardwalk(t *testing.T) {
	state := newTestState(t, 2)
	alice := state.Players[0]
	alice.Position = 39
	state.Game.TurnPhase = rules.PhaseAwaitingBuyDecision
	m := newTestManager(t, state)

	res := act(t, m, ActionBuyProperty, "boardwalk")
	require.True(t, res.Success, res.Message)
	assert.Equal(t, 1100, alice.Cash)
	assert.Equal(t, rules.PhasePostRoll, res.NextPhase)
	owner, ok := state.OwnerOf("boardwalk")
	require.True(t, ok)
	assert.Equal(t, alice.ID, owner)
	require.NotEmpty(t, res.Events)
	assert.Equal(t, rules.EventPropertyPurchased, res.Events[0].Type)
}

func TestBuyOnlyLandedProperty(t *testing.T) {
	state := newTestState(t, 2)
	state.Players[0].Position = 39
	state.Game.TurnPhase = rules.PhaseAwaitingBuyDecision
	m := newTestManager(t, state)

	res := act(t, m, ActionBuyProperty, "park_place")
	assert.False(t, res.Success)
	assert.Equal(t, 1500, state.Players[0].Cash)
}

func TestCannotAffordOnlyPass(t *testing.T) {
	state := newTestState(t, 2)
	state.Players[0].Position = 39
	state.Players[0].Cash = 100
	state.Game.TurnPhase = rules.PhaseAwaitingBuyDecision
	m := newTestManager(t, state)

	assert.Equal(t, []ActionType{ActionPassProperty}, actionTypes(m.ValidActions()))
	res := act(t, m, ActionEndTurn)
	assert.False(t, res.Success)

	res = act(t, m, ActionPassProperty)
	assert.True(t, res.Success)
	assert.Equal(t, rules.PhasePostRoll, res.NextPhase)
}

func TestErrorsDoNotMutate(t *testing.T) {
	state := newTestState(t, 2)
	m := newTestManager(t, state, [2]int{1, 2})

	_, err := m.ExecuteAction(Action{Type: ActionRollDice, PlayerID: state.Players[1].ID})
	assert.True(t, errors.Is(err, ErrNotYourTurn))

	_, err = m.ExecuteAction(Action{Type: ActionBuildHouse, PropertyID: "atlantis"})
	assert.True(t, errors.Is(err, ErrUnknownProperty))

	assert.Zero(t, state.Players[0].Position)
	assert.Nil(t, state.Game.LastDiceRoll)
}

func TestPhaseGateRejects(t *testing.T) {
	state := newTestState(t, 2)
	m := newTestManager(t, state)

	res := act(t, m, ActionEndTurn)
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "not allowed")
	assert.Equal(t, rules.PhasePreRoll, res.NextPhase)
}

func TestThreeDoublesGoesToJail(t *testing.T) {
	state := newTestState(t, 2)
	alice := state.Players[0]
	alice.Position = board.JailPosition
	m := newTestManager(t, state, [2]int{1, 1}, [2]int{2, 2}, [2]int{3, 3})

	res := act(t, m, ActionRollDice)
	assert.Equal(t, 12, alice.Position)
	assert.Equal(t, rules.PhaseAwaitingBuyDecision, res.NextPhase)
	act(t, m, ActionPassProperty)
	res = act(t, m, ActionEndTurn)
	assert.False(t, res.TurnComplete)
	assert.Equal(t, rules.PhasePreRoll, res.NextPhase)
	assert.Equal(t, alice.ID, mustCurrent(t, state).ID)

	act(t, m, ActionRollDice)
	assert.Equal(t, 16, alice.Position)
	assert.Equal(t, 2, state.Game.DoublesCount)
	act(t, m, ActionPassProperty)
	act(t, m, ActionEndTurn)

	res = act(t, m, ActionRollDice)
	assert.True(t, alice.InJail)
	assert.Equal(t, board.JailPosition, alice.Position)
	assert.Zero(t, alice.JailTurns)
	assert.Zero(t, state.Game.DoublesCount)
	assert.True(t, res.TurnComplete)
	assert.Equal(t, rules.PhasePostRoll, res.NextPhase)

	res = act(t, m, ActionEndTurn)
	assert.True(t, res.TurnComplete)
	assert.Equal(t, state.Players[1].ID, mustCurrent(t, state).ID)
	assert.Equal(t, 2, state.Game.TurnNumber)
}

func TestEndTurnRotatesAndJailedPlayerDecides(t *testing.T) {
	state := newTestState(t, 2)
	state.Players[1].InJail = true
	state.Players[1].Position = board.JailPosition
	state.Game.TurnPhase = rules.PhasePostRoll
	m := newTestManager(t, state)

	res := act(t, m, ActionEndTurn)
	require.True(t, res.Success)
	assert.Equal(t, rules.PhaseAwaitingJailDecision, res.NextPhase)
	assert.Equal(t, 1, state.Game.CurrentPlayerIndex)
	assert.Equal(t,
		[]ActionType{ActionPayJailFine, ActionRollForDoubles},
		actionTypes(m.ValidActions()))
}

func TestEndTurnCyclesEverySeat(t *testing.T) {
	state := newTestState(t, 3)
	m := newTestManager(t, state, [2]int{2, 3}, [2]int{2, 3}, [2]int{2, 3}, [2]int{2, 3})

	var order []string
	for i := 0; i < 4; i++ {
		order = append(order, mustCurrent(t, state).Name)
		act(t, m, ActionRollDice)
		act(t, m, ActionPassProperty)
		res := act(t, m, ActionEndTurn)
		require.True(t, res.Success)
		require.True(t, res.TurnComplete)
	}
	assert.Equal(t, []string{"Alice", "Bob", "Carol", "Alice"}, order)
	assert.Equal(t, 5, state.Game.TurnNumber)
	assert.Equal(t, state.Players[1].ID, mustCurrent(t, state).ID)
}

func TestEndTurnSkipsBankruptSeat(t *testing.T) {
	state := newTestState(t, 3)
	state.Players[1].Bankrupt = true
	state.Game.TurnPhase = rules.PhasePostRoll
	m := newTestManager(t, state)

	res := act(t, m, ActionEndTurn)
	require.True(t, res.TurnComplete)
	assert.Equal(t, 1, state.Game.CurrentPlayerIndex)
	assert.Equal(t, state.Players[2].ID, mustCurrent(t, state).ID)
}

func TestPayJailFineThenRoll(t *testing.T) {
	state := newTestState(t, 2)
	alice := state.Players[0]
	alice.InJail = true
	alice.Position = board.JailPosition
	alice.JailFreeCards = 1
	state.Game.TurnPhase = rules.PhaseAwaitingJailDecision
	m := newTestManager(t, state, [2]int{2, 4})

	assert.Equal(t,
		[]ActionType{ActionPayJailFine, ActionUseJailCard, ActionRollForDoubles},
		actionTypes(m.ValidActions()))

	res := act(t, m, ActionPayJailFine)
	require.True(t, res.Success)
	assert.False(t, alice.InJail)
	assert.Equal(t, 1450, alice.Cash)
	assert.Equal(t, rules.PhaseAwaitingRoll, res.NextPhase)
	assert.Equal(t, []ActionType{ActionRollDice}, actionTypes(m.ValidActions()))

	res = act(t, m, ActionRollDice)
	assert.True(t, res.Success)
	assert.Equal(t, 16, alice.Position)
}

func TestUseJailCard(t *testing.T) {
	state := newTestState(t, 2)
	alice := state.Players[0]
	alice.InJail = true
	alice.JailFreeCards = 1
	state.Game.TurnPhase = rules.PhaseAwaitingJailDecision
	m := newTestManager(t, state)

	res := act(t, m, ActionUseJailCard)
	require.True(t, res.Success)
	assert.Zero(t, alice.JailFreeCards)
	assert.False(t, alice.InJail)
	assert.Equal(t, rules.EscapeUsedCard, res.JailResult.Method)
}

func TestJailDoublesMovesWithoutExtraTurn(t *testing.T) {
	state := newTestState(t, 2)
	alice := state.Players[0]
	alice.InJail = true
	alice.Position = board.JailPosition
	state.Game.TurnPhase = rules.PhaseAwaitingJailDecision
	m := newTestManager(t, state, [2]int{3, 3})

	res := act(t, m, ActionRollForDoubles)
	require.True(t, res.Success)
	assert.Equal(t, rules.EscapeDoubles, res.JailResult.Method)
	assert.Equal(t, 16, alice.Position)
	assert.Zero(t, state.Game.DoublesCount)

	act(t, m, ActionPassProperty)
	res = act(t, m, ActionEndTurn)
	assert.True(t, res.TurnComplete)
	assert.Equal(t, state.Players[1].ID, mustCurrent(t, state).ID)
}

func TestFailedJailRollIncrementsTurns(t *testing.T) {
	state := newTestState(t, 2)
	alice := state.Players[0]
	alice.InJail = true
	alice.Position = board.JailPosition
	state.Game.TurnPhase = rules.PhaseAwaitingJailDecision
	m := newTestManager(t, state, [2]int{1, 2})

	res := act(t, m, ActionRollForDoubles)
	require.True(t, res.Success)
	assert.False(t, res.JailResult.Escaped)
	assert.Equal(t, 1, alice.JailTurns)
	assert.True(t, alice.InJail)
	assert.Equal(t, board.JailPosition, alice.Position)
	assert.Equal(t, rules.PhasePostRoll, res.NextPhase)
}

func TestIncomeTax(t *testing.T) {
	state := newTestState(t, 2)
	state.Players[0].Position = 1
	m := newTestManager(t, state, [2]int{1, 2})

	res := act(t, m, ActionRollDice)
	assert.Equal(t, 200, res.TaxPaid)
	assert.Equal(t, 1300, state.Players[0].Cash)
}

func TestBankruptCurrentPlayerPassesTurn(t *testing.T) {
	state := newTestState(t, 3)
	alice := state.Players[0]
	alice.Position = 1
	alice.Cash = 10
	m := newTestManager(t, state, [2]int{1, 2})

	res := act(t, m, ActionRollDice)
	require.Len(t, res.Bankruptcies, 1)
	assert.False(t, res.GameOver)
	assert.True(t, res.TurnComplete)
	assert.Equal(t, 2, state.Game.TurnNumber)
	assert.Equal(t, rules.PhasePreRoll, res.NextPhase)
	assert.Equal(t, state.Players[1].ID, mustCurrent(t, state).ID)
	assert.Len(t, state.ActivePlayers(), 2)
}

func TestRentBankruptcyTransfersToCreditor(t *testing.T) {
	state := newTestState(t, 2)
	alice, bob := state.Players[0], state.Players[1]
	alice.Cash = 10
	alice.Position = 35
	own(state, alice, "mediterranean")
	state.Properties["mediterranean"].Houses = 0
	own(state, bob, "park_place", "boardwalk")
	state.Properties["boardwalk"].Houses = 2
	state.Properties["park_place"].Houses = 2
	m := newTestManager(t, state, [2]int{1, 3})

	res := act(t, m, ActionRollDice)
	require.Len(t, res.Bankruptcies, 1)
	require.NotNil(t, res.Bankruptcies[0].Creditor)
	assert.Equal(t, bob.ID, *res.Bankruptcies[0].Creditor)
	assert.Equal(t, 600, res.Bankruptcies[0].Debt)
	owner, _ := state.OwnerOf("mediterranean")
	assert.Equal(t, bob.ID, owner)
	assert.Equal(t, 1500, bob.Cash)
	assert.True(t, res.GameOver)
	assert.Equal(t, bob.ID, *state.Game.WinnerID)
}

func TestChanceAdvanceToBoardwalk(t *testing.T) {
	state := newTestState(t, 2)
	setDeck(t, state, board.DeckChance, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16)
	state.Players[0].Position = 4
	m := newTestManager(t, state, [2]int{1, 2})

	res := act(t, m, ActionRollDice)
	require.NotNil(t, res.CardEffect)
	assert.Equal(t, 1, res.CardEffect.CardID)
	assert.Equal(t, 39, state.Players[0].Position)
	assert.Equal(t, rules.PhaseAwaitingBuyDecision, res.NextPhase)
	assert.Equal(t, 1, state.Decks[board.DeckChance].Index)
}

func TestChanceNearestRailroadPaysDouble(t *testing.T) {
	state := newTestState(t, 2)
	alice, bob := state.Players[0], state.Players[1]
	setDeck(t, state, board.DeckChance, 5)
	own(state, bob, "reading_rr")
	alice.Position = 33
	m := newTestManager(t, state, [2]int{1, 2})

	res := act(t, m, ActionRollDice)
	assert.Equal(t, 5, alice.Position)
	assert.Equal(t, 50, res.RentPaid)
	assert.Equal(t, 1500+GoSalary-50, alice.Cash)
	assert.Equal(t, 1550, bob.Cash)
}

func TestChanceNearestUtilityPaysTenTimesDice(t *testing.T) {
	state := newTestState(t, 2)
	alice, bob := state.Players[0], state.Players[1]
	setDeck(t, state, board.DeckChance, 7)
	own(state, bob, "water_works")
	alice.Position = 19
	m := newTestManager(t, state, [2]int{1, 2})

	res := act(t, m, ActionRollDice)
	assert.Equal(t, 28, alice.Position)
	assert.Equal(t, 30, res.RentPaid)
}

func TestChanceGoBackChainsIntoCommunityChest(t *testing.T) {
	state := newTestState(t, 2)
	setDeck(t, state, board.DeckChance, 10)
	setDeck(t, state, board.DeckCommunityChest, 2)
	state.Players[0].Position = 33
	m := newTestManager(t, state, [2]int{1, 2})

	res := act(t, m, ActionRollDice)
	assert.Equal(t, 33, state.Players[0].Position)
	require.NotNil(t, res.CardEffect)
	assert.Equal(t, board.DeckCommunityChest, res.CardEffect.Deck)
	assert.Equal(t, 1700, state.Players[0].Cash)
}

func TestBirthdayCollectsAndBankruptsPoorPayer(t *testing.T) {
	state := newTestState(t, 3)
	alice, bob, carol := state.Players[0], state.Players[1], state.Players[2]
	setDeck(t, state, board.DeckCommunityChest, 9)
	carol.Cash = 5
	own(state, carol, "baltic")
	alice.Position = 14
	m := newTestManager(t, state, [2]int{1, 2})

	res := act(t, m, ActionRollDice)
	require.True(t, res.Success)
	assert.Equal(t, 1510, alice.Cash)
	assert.Equal(t, 1490, bob.Cash)
	assert.True(t, carol.Bankrupt)
	owner, _ := state.OwnerOf("baltic")
	assert.Equal(t, alice.ID, owner)
	assert.False(t, res.GameOver)
	assert.Equal(t, alice.ID, mustCurrent(t, state).ID)
	assert.Equal(t, rules.PhasePostRoll, res.NextPhase)
}

func TestChairmanPaysEachPlayer(t *testing.T) {
	state := newTestState(t, 3)
	setDeck(t, state, board.DeckChance, 15)
	state.Players[0].Position = 4
	m := newTestManager(t, state, [2]int{1, 2})

	act(t, m, ActionRollDice)
	assert.Equal(t, 1400, state.Players[0].Cash)
	assert.Equal(t, 1550, state.Players[1].Cash)
	assert.Equal(t, 1550, state.Players[2].Cash)
}

func TestJailCardFromDeck(t *testing.T) {
	state := newTestState(t, 2)
	setDeck(t, state, board.DeckChance, 9)
	state.Players[0].Position = 4
	m := newTestManager(t, state, [2]int{1, 2})

	act(t, m, ActionRollDice)
	assert.Equal(t, 1, state.Players[0].JailFreeCards)
}

func TestBuildHouseAndHotel(t *testing.T) {
	state := newTestState(t, 2)
	alice := state.Players[0]
	own(state, alice, "mediterranean", "baltic")
	state.Game.TurnPhase = rules.PhasePostRoll
	m := newTestManager(t, state)

	valid := m.ValidActions()
	assert.Equal(t, []ActionType{ActionBuildHouse, ActionBuildHouse, ActionEndTurn}, actionTypes(valid))

	res := act(t, m, ActionBuildHouse, "mediterranean")
	require.True(t, res.Success, res.Message)
	assert.Equal(t, 1, state.HousesOn("mediterranean"))
	assert.Equal(t, 1450, alice.Cash)

	res = act(t, m, ActionBuildHouse, "mediterranean")
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "evenly")

	res = act(t, m, ActionBuildHouse)
	assert.False(t, res.Success)

	state.Properties["mediterranean"].Houses = 4
	state.Properties["baltic"].Houses = 4
	res = act(t, m, ActionBuildHotel, "baltic")
	require.True(t, res.Success, res.Message)
	assert.Equal(t, board.HotelLevel, state.HousesOn("baltic"))
}

func TestListValidActionsAndApplyAction(t *testing.T) {
	state := newTestState(t, 2)
	valid, err := ListValidActions(state)
	require.NoError(t, err)
	assert.Equal(t, []ActionType{ActionRollDice}, actionTypes(valid))

	res, err := ApplyAction(state, rules.NewSequenceDice([2]int{2, 3}), Action{Type: ActionRollDice}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 5, state.Players[0].Position)

	waiting, err := NewGameState([]Seat{{Name: "a"}, {Name: "b"}}, DefaultSettings(), nil)
	require.NoError(t, err)
	_, err = ListValidActions(waiting)
	assert.True(t, errors.Is(err, ErrGameNotInProgress))
}

func TestEventsPublishedToBus(t *testing.T) {
	state := newTestState(t, 2)
	m := newTestManager(t, state, [2]int{2, 3})
	bus := rules.NewEventBus()
	var seen []rules.EventType
	bus.Subscribe(func(e rules.Event) { seen = append(seen, e.Type) })
	m.SetEventBus(bus)

	res := act(t, m, ActionRollDice)
	assert.Equal(t, []rules.EventType{rules.EventDiceRolled, rules.EventPlayerMoved}, seen)
	for _, e := range res.Events {
		assert.Equal(t, state.Game.ID.String(), e.GameID)
		assert.Equal(t, 1, e.TurnNumber)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	state := newTestState(t, 2)
	own(state, state.Players[0], "boardwalk")
	clone := state.Clone()

	clone.Players[0].Cash = 1
	newOwner := uuid.New()
	clone.Properties["boardwalk"].OwnerID = &newOwner
	_, _ = clone.Decks[board.DeckChance].Draw()

	assert.Equal(t, 1500, state.Players[0].Cash)
	owner, _ := state.OwnerOf("boardwalk")
	assert.Equal(t, state.Players[0].ID, owner)
	assert.Zero(t, state.Decks[board.DeckChance].Index)
}
