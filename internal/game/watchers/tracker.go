package watchers

import (
	"github.com/agentopoly/monopoly-engine/internal/game/rules"
)

// PlayerStats summarises one player's game from the event log.
type PlayerStats struct {
	PlayerID       string
	Rolls          int
	TurnsEnded     int
	RentPaid       int
	RentReceived   int
	Purchases      int
	PurchaseSpend  int
	HousesBuilt    int
	HotelsBuilt    int
	TimesJailed    int
	JailFinesPaid  int
	CardsDrawn     int
	LapsCompleted  int
	SalaryReceived int
}

// Tracker wires the standard watchers into a registry.
type Tracker struct {
	registry *rules.WatcherRegistry
	rent     *RentWatcher
	props    *PropertyWatcher
	jail     *JailWatcher
	cards    *CardsDrawnWatcher
	turns    *TurnWatcher
}

// NewTracker registers game-wide watchers plus a lap counter per player.
func NewTracker(playerIDs []string) *Tracker {
	t := &Tracker{
		registry: rules.NewWatcherRegistry(),
		rent:     NewRentWatcher(),
		props:    NewPropertyWatcher(),
		jail:     NewJailWatcher(),
		cards:    NewCardsDrawnWatcher(),
		turns:    NewTurnWatcher(),
	}
	t.registry.AddWatcher(t.rent)
	t.registry.AddWatcher(t.props)
	t.registry.AddWatcher(t.jail)
	t.registry.AddWatcher(t.cards)
	t.registry.AddWatcher(t.turns)
	for _, id := range playerIDs {
		t.registry.AddWatcher(NewPassedGoWatcher(id))
	}
	return t
}

// Attach subscribes the tracker to bus and returns the handle.
func (t *Tracker) Attach(bus *rules.EventBus) int {
	return bus.Subscribe(t.registry.NotifyWatchers)
}

// Observe feeds events directly, e.g. from a stored log.
func (t *Tracker) Observe(events ...rules.Event) {
	for _, e := range events {
		t.registry.NotifyWatchers(e)
	}
}

// Stats returns the summary for playerID.
func (t *Tracker) Stats(playerID string) PlayerStats {
	s := PlayerStats{
		PlayerID:      playerID,
		Rolls:         t.turns.GetRolls(playerID),
		TurnsEnded:    t.turns.GetTurnsEnded(playerID),
		RentPaid:      t.rent.GetPaid(playerID),
		RentReceived:  t.rent.GetReceived(playerID),
		Purchases:     len(t.props.GetPurchased(playerID)),
		PurchaseSpend: t.props.GetSpent(playerID),
		HousesBuilt:   t.props.GetHousesBuilt(playerID),
		HotelsBuilt:   t.props.GetHotelsBuilt(playerID),
		TimesJailed:   t.jail.GetTimesJailed(playerID),
		JailFinesPaid: t.jail.GetFinesPaid(playerID),
		CardsDrawn:    t.cards.GetCount(playerID),
	}
	if w, ok := t.registry.GetWatcher(playerID + "_PassedGoWatcher").(*PassedGoWatcher); ok {
		s.LapsCompleted = w.GetLaps()
		s.SalaryReceived = w.GetSalary()
	}
	return s
}

// Reset clears every watcher.
func (t *Tracker) Reset() {
	t.registry.ResetWatchers()
}
