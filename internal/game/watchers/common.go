package watchers

import (
	"github.com/agentopoly/monopoly-engine/internal/game/rules"
)

// RentWatcher tracks rent paid and received per player.
type RentWatcher struct {
	*rules.BaseWatcher
	paid     map[string]int
	received map[string]int
}

func NewRentWatcher() *RentWatcher {
	w := &RentWatcher{
		BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopeGame),
		paid:        make(map[string]int),
		received:    make(map[string]int),
	}
	w.SetKey("RentWatcher")
	return w
}

// Watch implements the Watcher interface. The owner id rides in Data.
func (w *RentWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventRentPaid {
		return
	}
	w.paid[event.PlayerID] += event.Amount
	if event.Data != "" {
		w.received[event.Data] += event.Amount
	}
}

func (w *RentWatcher) Reset() {
	w.paid = make(map[string]int)
	w.received = make(map[string]int)
}

func (w *RentWatcher) GetPaid(playerID string) int { return w.paid[playerID] }

func (w *RentWatcher) GetReceived(playerID string) int { return w.received[playerID] }

// PropertyWatcher tracks purchases and construction.
type PropertyWatcher struct {
	*rules.BaseWatcher
	purchased map[string][]string
	spent     map[string]int
	houses    map[string]int
	hotels    map[string]int
}

func NewPropertyWatcher() *PropertyWatcher {
	w := &PropertyWatcher{BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopeGame)}
	w.Reset()
	w.SetKey("PropertyWatcher")
	return w
}

func (w *PropertyWatcher) Watch(event rules.Event) {
	switch event.Type {
	case rules.EventPropertyPurchased:
		w.purchased[event.PlayerID] = append(w.purchased[event.PlayerID], event.TargetID)
		w.spent[event.PlayerID] += event.Amount
	case rules.EventHouseBuilt:
		w.houses[event.PlayerID]++
	case rules.EventHotelBuilt:
		w.hotels[event.PlayerID]++
	}
}

func (w *PropertyWatcher) Reset() {
	w.purchased = make(map[string][]string)
	w.spent = make(map[string]int)
	w.houses = make(map[string]int)
	w.hotels = make(map[string]int)
}

// GetPurchased returns property ids bought by playerID in purchase order.
func (w *PropertyWatcher) GetPurchased(playerID string) []string {
	return append([]string(nil), w.purchased[playerID]...)
}

func (w *PropertyWatcher) GetSpent(playerID string) int { return w.spent[playerID] }

func (w *PropertyWatcher) GetHousesBuilt(playerID string) int { return w.houses[playerID] }

func (w *PropertyWatcher) GetHotelsBuilt(playerID string) int { return w.hotels[playerID] }

// JailWatcher counts trips to jail and fines paid.
type JailWatcher struct {
	*rules.BaseWatcher
	jailed map[string]int
	fines  map[string]int
}

func NewJailWatcher() *JailWatcher {
	w := &JailWatcher{BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopeGame)}
	w.Reset()
	w.SetKey("JailWatcher")
	return w
}

func (w *JailWatcher) Watch(event rules.Event) {
	switch event.Type {
	case rules.EventSentToJail:
		w.jailed[event.PlayerID]++
	case rules.EventJailFinePaid:
		w.fines[event.PlayerID] += event.Amount
	}
}

func (w *JailWatcher) Reset() {
	w.jailed = make(map[string]int)
	w.fines = make(map[string]int)
}

func (w *JailWatcher) GetTimesJailed(playerID string) int { return w.jailed[playerID] }

func (w *JailWatcher) GetFinesPaid(playerID string) int { return w.fines[playerID] }

// CardsDrawnWatcher counts Chance and Community Chest draws per player.
type CardsDrawnWatcher struct {
	*rules.BaseWatcher
	drawn map[string]int
}

func NewCardsDrawnWatcher() *CardsDrawnWatcher {
	w := &CardsDrawnWatcher{
		BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopeGame),
		drawn:       make(map[string]int),
	}
	w.SetKey("CardsDrawnWatcher")
	return w
}

func (w *CardsDrawnWatcher) Watch(event rules.Event) {
	if event.Type == rules.EventCardDrawn {
		w.drawn[event.PlayerID]++
	}
}

func (w *CardsDrawnWatcher) Reset() { w.drawn = make(map[string]int) }

func (w *CardsDrawnWatcher) GetCount(playerID string) int { return w.drawn[playerID] }

// TurnWatcher counts rolls and completed turns per player.
type TurnWatcher struct {
	*rules.BaseWatcher
	rolls map[string]int
	ended map[string]int
}

func NewTurnWatcher() *TurnWatcher {
	w := &TurnWatcher{
		BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopeGame),
		rolls:       make(map[string]int),
		ended:       make(map[string]int),
	}
	w.SetKey("TurnWatcher")
	return w
}

func (w *TurnWatcher) Watch(event rules.Event) {
	switch event.Type {
	case rules.EventDiceRolled:
		w.rolls[event.PlayerID]++
	case rules.EventTurnEnded:
		w.ended[event.PlayerID]++
	}
}

func (w *TurnWatcher) Reset() {
	w.rolls = make(map[string]int)
	w.ended = make(map[string]int)
}

func (w *TurnWatcher) GetRolls(playerID string) int { return w.rolls[playerID] }

func (w *TurnWatcher) GetTurnsEnded(playerID string) int { return w.ended[playerID] }

// PassedGoWatcher tracks a single player's laps and salary.
type PassedGoWatcher struct {
	*rules.BaseWatcher
	laps   int
	salary int
}

// NewPassedGoWatcher creates a player-scoped watcher for playerID.
func NewPassedGoWatcher(playerID string) *PassedGoWatcher {
	w := &PassedGoWatcher{BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopePlayer)}
	w.SetPlayerID(playerID)
	w.SetKey("PassedGoWatcher")
	return w
}

func (w *PassedGoWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventPassedGo || event.PlayerID != w.GetPlayerID() {
		return
	}
	w.laps++
	w.salary += event.Amount
}

func (w *PassedGoWatcher) Reset() {
	w.laps = 0
	w.salary = 0
}

func (w *PassedGoWatcher) GetLaps() int { return w.laps }

func (w *PassedGoWatcher) GetSalary() int { return w.salary }
