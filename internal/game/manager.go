package game

import (
	"fmt"
	"strconv"
	"time"

	"github.com/agentopoly/monopoly-engine/internal/game/board"
	"github.com/agentopoly/monopoly-engine/internal/game/cards"
	"github.com/agentopoly/monopoly-engine/internal/game/rules"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxCardChain bounds card-to-card landings within one action.
const maxCardChain = 3

// Manager runs the turn state machine for one game. It is the only writer
// of GameState and is not safe for concurrent use.
type Manager struct {
	state  *GameState
	dice   rules.Dice
	logger *zap.Logger
	bus    *rules.EventBus

	events []rules.Event
	// holder is the player whose turn it is once the current action settles.
	holder uuid.UUID
}

// NewManager wraps state. dice supplies every roll.
func NewManager(state *GameState, dice rules.Dice, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		state:  state,
		dice:   dice,
		logger: logger.With(zap.String("game_id", state.Game.ID.String())),
	}
}

// SetEventBus publishes every event to bus as it is produced.
func (m *Manager) SetEventBus(bus *rules.EventBus) {
	m.bus = bus
}

// State returns the managed state.
func (m *Manager) State() *GameState {
	return m.state
}

// ValidActions lists the legal actions for the current player. It reads
// state only.
func (m *Manager) ValidActions() []ValidAction {
	if m.state.Game.Status != StatusInProgress {
		return nil
	}
	player, err := m.state.CurrentPlayer()
	if err != nil {
		return nil
	}
	view := player.View()

	switch m.state.Game.TurnPhase {
	case rules.PhasePreRoll, rules.PhaseAwaitingRoll:
		if player.InJail {
			return m.jailOptions(view)
		}
		return []ValidAction{{Type: ActionRollDice, Description: "Roll the dice"}}

	case rules.PhaseAwaitingJailDecision:
		return m.jailOptions(view)

	case rules.PhaseAwaitingBuyDecision:
		prop, ok := board.PropertyAt(player.Position)
		if !ok {
			return []ValidAction{{Type: ActionEndTurn, Description: "End turn"}}
		}
		if _, owned := m.state.OwnerOf(prop.ID); owned {
			return []ValidAction{{Type: ActionEndTurn, Description: "End turn"}}
		}
		var out []ValidAction
		if ok, _ := rules.CanBuy(prop.ID, view, m.state); ok {
			out = append(out, ValidAction{
				Type:        ActionBuyProperty,
				PropertyID:  prop.ID,
				Cost:        prop.Price,
				Description: fmt.Sprintf("Buy %s for $%d", prop.Name, prop.Price),
			})
		}
		out = append(out, ValidAction{
			Type:        ActionPassProperty,
			PropertyID:  prop.ID,
			Description: fmt.Sprintf("Pass on %s", prop.Name),
		})
		return out

	case rules.PhasePostRoll:
		var out []ValidAction
		for _, opt := range rules.BuildableProperties(view, m.state) {
			prop, _ := board.LookupProperty(opt.PropertyID)
			at := ValidAction{PropertyID: opt.PropertyID, Cost: opt.Cost}
			if opt.Kind == rules.BuildHotel {
				at.Type = ActionBuildHotel
				at.Description = fmt.Sprintf("Build a hotel on %s for $%d", prop.Name, opt.Cost)
			} else {
				at.Type = ActionBuildHouse
				at.Description = fmt.Sprintf("Build a house on %s for $%d", prop.Name, opt.Cost)
			}
			out = append(out, at)
		}
		return append(out, ValidAction{Type: ActionEndTurn, Description: "End turn"})
	}
	return nil
}

func (m *Manager) jailOptions(view rules.PlayerView) []ValidAction {
	var out []ValidAction
	if ok, _ := rules.CanPayJailFine(view); ok {
		out = append(out, ValidAction{Type: ActionPayJailFine, Cost: rules.JailFine, Description: fmt.Sprintf("Pay $%d to leave jail", rules.JailFine)})
	}
	if ok, _ := rules.CanUseJailCard(view); ok {
		out = append(out, ValidAction{Type: ActionUseJailCard, Description: "Use Get Out of Jail Free card"})
	}
	if ok, _ := rules.CanRollForDoubles(view); ok {
		out = append(out, ValidAction{Type: ActionRollForDoubles, Description: "Roll for doubles"})
	}
	return out
}

// ExecuteAction validates and applies action. Illegal moves come back as an
// unsuccessful result; errors mean the request itself was invalid and state
// was not touched.
func (m *Manager) ExecuteAction(action Action) (ActionResult, error) {
	if m.state.Game.Status != StatusInProgress {
		return ActionResult{}, fmt.Errorf("%w: status is %s", ErrGameNotInProgress, m.state.Game.Status)
	}
	player, err := m.state.CurrentPlayer()
	if err != nil {
		return ActionResult{}, err
	}
	if action.PlayerID != uuid.Nil && action.PlayerID != player.ID {
		return ActionResult{}, fmt.Errorf("%w: player %s acted during %s's turn", ErrNotYourTurn, action.PlayerID, player.Name)
	}
	if action.PropertyID != "" {
		if _, ok := board.LookupProperty(action.PropertyID); !ok {
			return ActionResult{}, fmt.Errorf("%w: %q", ErrUnknownProperty, action.PropertyID)
		}
	}

	m.events = nil
	phase := m.state.Game.TurnPhase
	if !rules.PhaseAllows(phase, action.Type) {
		return m.reject(fmt.Sprintf("%s is not allowed during %s", action.Type, phase)), nil
	}

	m.holder = player.ID
	result := ActionResult{Success: true}
	switch action.Type {
	case ActionRollDice:
		m.handleRollDice(player, &result)
	case ActionBuyProperty:
		m.handleBuy(player, action.PropertyID, &result)
	case ActionPassProperty:
		m.handlePass(player, &result)
	case ActionBuildHouse:
		m.handleBuildHouse(player, action.PropertyID, &result)
	case ActionBuildHotel:
		m.handleBuildHotel(player, action.PropertyID, &result)
	case ActionPayJailFine:
		m.handlePayJailFine(player, &result)
	case ActionUseJailCard:
		m.handleUseJailCard(player, &result)
	case ActionRollForDoubles:
		m.handleRollForDoubles(player, &result)
	case ActionEndTurn:
		m.handleEndTurn(player, &result)
	default:
		return m.reject(fmt.Sprintf("unknown action %q", action.Type)), nil
	}

	if result.Success {
		m.settleRotation(&result)
	}
	m.state.Game.UpdatedAt = time.Now()
	result.NextPhase = m.state.Game.TurnPhase
	result.Events = m.events
	m.events = nil

	m.logger.Debug("action executed",
		zap.String("action", string(action.Type)),
		zap.String("player", player.Name),
		zap.Bool("success", result.Success),
		zap.String("next_phase", result.NextPhase.String()),
		zap.String("message", result.Message),
	)
	return result, nil
}

func (m *Manager) reject(message string) ActionResult {
	return ActionResult{Success: false, Message: message, NextPhase: m.state.Game.TurnPhase}
}

func (m *Manager) fail(result *ActionResult, message string) {
	result.Success = false
	result.Message = message
}

func (m *Manager) emit(evt rules.Event) {
	evt.GameID = m.state.Game.ID.String()
	evt.TurnNumber = m.state.Game.TurnNumber
	m.events = append(m.events, evt)
	if m.bus != nil {
		m.bus.Publish(evt)
	}
}

func (m *Manager) setPhase(phase rules.TurnPhase) {
	if m.state.Game.Status == StatusCompleted {
		return
	}
	m.state.Game.TurnPhase = phase
}

func (m *Manager) handleRollDice(player *Player, result *ActionResult) {
	if player.InJail {
		m.fail(result, "you are in jail; pay the fine, use a card or roll for doubles")
		return
	}
	roll := m.dice.Roll()
	m.recordRoll(player, roll, result)

	if roll.IsDoubles() {
		m.state.Game.DoublesCount++
		if m.state.Game.DoublesCount >= rules.MaxConsecutiveDoubles {
			m.sendToJail(player)
			m.setPhase(rules.PhasePostRoll)
			result.TurnComplete = true
			result.Message = fmt.Sprintf("rolled %s: third doubles in a row, go to jail", roll)
			return
		}
	} else {
		m.state.Game.DoublesCount = 0
	}

	move := rules.MoveBy(player.Position, roll.Total())
	result.Movement = &move
	result.Message = fmt.Sprintf("rolled %s", roll)
	m.applyMovement(player, move, roll, landingModifier{}, result, 0)
}

func (m *Manager) recordRoll(player *Player, roll rules.DiceRoll, result *ActionResult) {
	r := roll
	m.state.Game.LastDiceRoll = &r
	result.DiceRoll = &r
	evt := rules.NewEventWithAmount(rules.EventDiceRolled, player.ID.String(), "", roll.Total())
	evt.Data = roll.String()
	m.emit(evt)
}

// landingModifier carries card overrides into rent resolution.
type landingModifier struct {
	rentMultiplier        int
	utilityDiceMultiplier int
}

func (m *Manager) applyMovement(player *Player, move rules.MovementResult, roll rules.DiceRoll, mod landingModifier, result *ActionResult, depth int) {
	player.Position = move.NewPosition
	m.emit(rules.NewEventWithAmount(rules.EventPlayerMoved, player.ID.String(), strconv.Itoa(move.NewPosition), move.SpacesMoved))

	if move.PassedGo {
		player.Cash += GoSalary
		m.emit(rules.NewEventWithAmount(rules.EventPassedGo, player.ID.String(), "", GoSalary))
	}
	if move.LandedOnGoToJail {
		m.sendToJail(player)
		m.setPhase(rules.PhasePostRoll)
		result.Message = appendMessage(result.Message, "landed on Go To Jail")
		return
	}
	m.resolveLanding(player, roll, mod, result, depth)
}

func (m *Manager) resolveLanding(player *Player, roll rules.DiceRoll, mod landingModifier, result *ActionResult, depth int) {
	space, err := board.SpaceAt(player.Position)
	if err != nil {
		m.logger.Error("player off board", zap.Int("position", player.Position), zap.Error(err))
		m.setPhase(rules.PhasePostRoll)
		return
	}

	switch space.Type {
	case board.SpaceProperty:
		m.landOnProperty(player, space, roll, mod, result)

	case board.SpaceTax:
		m.setPhase(rules.PhasePostRoll)
		if !m.charge(player, space.TaxAmount, nil, result) {
			return
		}
		result.TaxPaid += space.TaxAmount
		m.emit(rules.NewEventWithAmount(rules.EventTaxPaid, player.ID.String(), space.Name, space.TaxAmount))
		result.Message = appendMessage(result.Message, fmt.Sprintf("paid $%d %s", space.TaxAmount, space.Name))

	case board.SpaceChance, board.SpaceCommunityChest:
		deckType, _ := board.DeckForSpace(space.Type)
		m.drawCard(player, deckType, roll, result, depth)

	default:
		m.setPhase(rules.PhasePostRoll)
		result.Message = appendMessage(result.Message, "landed on "+space.Name)
	}
}

func (m *Manager) landOnProperty(player *Player, space board.Space, roll rules.DiceRoll, mod landingModifier, result *ActionResult) {
	prop, _ := board.LookupProperty(space.PropertyID)
	owner, owned := m.state.OwnerOf(prop.ID)
	if !owned {
		m.setPhase(rules.PhaseAwaitingBuyDecision)
		result.Message = appendMessage(result.Message, fmt.Sprintf("landed on unowned %s ($%d)", prop.Name, prop.Price))
		return
	}
	m.setPhase(rules.PhasePostRoll)
	if owner == player.ID {
		result.Message = appendMessage(result.Message, fmt.Sprintf("landed on own %s", prop.Name))
		return
	}

	rent := rules.CalculateRent(prop.ID, m.state, roll.Total())
	switch {
	case prop.Kind == board.KindUtility && mod.utilityDiceMultiplier > 0:
		rent = mod.utilityDiceMultiplier * roll.Total()
	case mod.rentMultiplier > 0:
		rent *= mod.rentMultiplier
	}
	if rent <= 0 {
		return
	}

	creditor := owner
	if !m.charge(player, rent, &creditor, result) {
		return
	}
	if ownerPlayer, ok := m.state.Player(owner); ok {
		ownerPlayer.Cash += rent
	}
	result.RentPaid += rent
	result.RentTo = &creditor
	evt := rules.NewEventWithAmount(rules.EventRentPaid, player.ID.String(), prop.ID, rent)
	evt.Data = owner.String()
	m.emit(evt)
	result.Message = appendMessage(result.Message, fmt.Sprintf("paid $%d rent on %s", rent, prop.Name))
}

func (m *Manager) drawCard(player *Player, deckType board.DeckType, roll rules.DiceRoll, result *ActionResult, depth int) {
	m.setPhase(rules.PhasePostRoll)
	deck, ok := m.state.Decks[deckType]
	if !ok {
		m.logger.Error("missing deck", zap.String("deck", string(deckType)))
		return
	}
	card, err := deck.Draw()
	if err != nil {
		m.logger.Error("draw failed", zap.Error(fmt.Errorf("%w: %v", ErrUnknownCard, err)))
		return
	}

	opponents := make([]rules.PlayerView, 0, len(m.state.Players))
	for _, p := range m.state.ActivePlayers() {
		if p.ID != player.ID {
			opponents = append(opponents, p.View())
		}
	}
	effect := cards.Execute(card, player.View(), opponents, m.state)
	result.CardEffect = &effect

	evt := rules.NewEvent(rules.EventCardDrawn, player.ID.String(), fmt.Sprintf("%s:%d", deckType, card.ID))
	evt.Data = card.Text
	m.emit(evt)
	result.Message = appendMessage(result.Message, card.Text)

	m.applyCard(player, effect, roll, result, depth)
}

func (m *Manager) applyCard(player *Player, effect cards.Effect, roll rules.DiceRoll, result *ActionResult, depth int) {
	if effect.GrantJailCard {
		player.JailFreeCards++
	}
	if effect.GoToJail {
		m.sendToJail(player)
		m.setPhase(rules.PhasePostRoll)
		return
	}

	switch {
	case effect.CashDelta > 0:
		player.Cash += effect.CashDelta
		m.emit(rules.NewEventWithAmount(rules.EventPaymentMade, "", player.ID.String(), effect.CashDelta))
	case effect.CashDelta < 0:
		if !m.charge(player, -effect.CashDelta, nil, result) {
			return
		}
		m.emit(rules.NewEventWithAmount(rules.EventPaymentMade, player.ID.String(), "", -effect.CashDelta))
	}

	if total := effect.TotalPayments(); total > 0 {
		if !m.charge(player, total, nil, result) {
			return
		}
		for _, p := range m.state.Players {
			amt, ok := effect.PaymentsToPlayers[p.ID]
			if !ok {
				continue
			}
			p.Cash += amt
			m.emit(rules.NewEventWithAmount(rules.EventPaymentMade, player.ID.String(), p.ID.String(), amt))
		}
	}

	if len(effect.CollectionsFromPlayers) > 0 {
		drawer := player.ID
		for _, p := range m.state.Players {
			if m.state.Game.Status != StatusInProgress {
				break
			}
			amt, ok := effect.CollectionsFromPlayers[p.ID]
			if !ok || p.Bankrupt {
				continue
			}
			if !m.charge(p, amt, &drawer, result) {
				continue
			}
			player.Cash += amt
			m.emit(rules.NewEventWithAmount(rules.EventPaymentMade, p.ID.String(), player.ID.String(), amt))
		}
	}

	if effect.Movement != nil && m.state.Game.Status == StatusInProgress {
		if depth >= maxCardChain {
			m.logger.Warn("card chain limit reached", zap.Int("depth", depth))
			return
		}
		mod := landingModifier{
			rentMultiplier:        effect.RentMultiplier,
			utilityDiceMultiplier: effect.UtilityDiceMultiplier,
		}
		m.applyMovement(player, *effect.Movement, roll, mod, result, depth+1)
	}
}

// charge takes amount from payer. If payer cannot cover it they go bankrupt
// to creditor (nil is the bank) and charge returns false.
func (m *Manager) charge(payer *Player, amount int, creditor *uuid.UUID, result *ActionResult) bool {
	check := rules.CheckBankruptcy(payer.View(), amount, creditor)
	if check.IsBankrupt {
		m.declareBankruptcy(payer, check, result)
		return false
	}
	payer.Cash -= amount
	return true
}

func (m *Manager) declareBankruptcy(debtor *Player, check rules.BankruptcyResult, result *ActionResult) {
	for _, d := range rules.Dispositions(debtor.ID, check.Creditor, m.state) {
		ps := m.state.Properties[d.PropertyID]
		ps.OwnerID = d.NewOwner
		ps.Houses = d.Houses
	}
	debtor.Cash = 0
	debtor.Bankrupt = true
	debtor.InJail = false
	debtor.JailTurns = 0
	debtor.JailFreeCards = 0

	creditor := ""
	if check.Creditor != nil {
		creditor = check.Creditor.String()
	}
	m.emit(rules.NewEventWithAmount(rules.EventPlayerBankrupt, debtor.ID.String(), creditor, check.Debt))
	result.Bankruptcies = append(result.Bankruptcies, check)
	result.Message = appendMessage(result.Message, fmt.Sprintf("%s is bankrupt", debtor.Name))

	m.logger.Info("player bankrupt",
		zap.String("player", debtor.Name),
		zap.Int("debt", check.Debt),
		zap.String("creditor", creditor),
	)

	if winner, ok := rules.Winner(m.state.playerViews()); ok {
		m.finish(winner, result)
	} else if rules.IsGameOver(m.state.playerViews()) {
		m.finish(uuid.Nil, result)
	}
}

func (m *Manager) finish(winner uuid.UUID, result *ActionResult) {
	m.state.Game.Status = StatusCompleted
	m.state.Game.TurnPhase = rules.PhaseCompleted
	result.GameOver = true
	result.TurnComplete = true
	if winner != uuid.Nil {
		w := winner
		m.state.Game.WinnerID = &w
		result.WinnerID = &w
	}
	m.emit(rules.NewEvent(rules.EventGameEnded, winner.String(), ""))
	m.logger.Info("game over", zap.String("winner", winner.String()), zap.Int("turn", m.state.Game.TurnNumber))
}

func (m *Manager) sendToJail(player *Player) {
	player.Position = board.JailPosition
	player.InJail = true
	player.JailTurns = 0
	m.state.Game.DoublesCount = 0
	m.emit(rules.NewEvent(rules.EventSentToJail, player.ID.String(), ""))
}

func (m *Manager) leaveJail(player *Player) {
	player.InJail = false
	player.JailTurns = 0
	m.emit(rules.NewEvent(rules.EventLeftJail, player.ID.String(), ""))
}

func (m *Manager) handleBuy(player *Player, propertyID string, result *ActionResult) {
	prop, ok := board.PropertyAt(player.Position)
	if !ok {
		m.fail(result, "there is no property here to buy")
		return
	}
	if propertyID != "" && propertyID != prop.ID {
		m.fail(result, fmt.Sprintf("you can only buy %s, the property you landed on", prop.Name))
		return
	}
	if ok, reason := rules.CanBuy(prop.ID, player.View(), m.state); !ok {
		m.fail(result, reason)
		return
	}
	player.Cash -= prop.Price
	owner := player.ID
	m.state.Properties[prop.ID].OwnerID = &owner
	m.emit(rules.NewEventWithAmount(rules.EventPropertyPurchased, player.ID.String(), prop.ID, prop.Price))
	m.setPhase(rules.PhasePostRoll)
	result.Message = fmt.Sprintf("bought %s for $%d", prop.Name, prop.Price)
}

func (m *Manager) handlePass(player *Player, result *ActionResult) {
	prop, ok := board.PropertyAt(player.Position)
	if !ok {
		m.fail(result, "there is no property here to pass on")
		return
	}
	m.emit(rules.NewEvent(rules.EventPropertyPassed, player.ID.String(), prop.ID))
	m.setPhase(rules.PhasePostRoll)
	result.Message = fmt.Sprintf("passed on %s", prop.Name)
}

func (m *Manager) handleBuildHouse(player *Player, propertyID string, result *ActionResult) {
	if propertyID == "" {
		m.fail(result, "property_id is required to build")
		return
	}
	if ok, reason := rules.CanBuildHouse(propertyID, player.View(), m.state); !ok {
		m.fail(result, reason)
		return
	}
	prop, _ := board.LookupProperty(propertyID)
	player.Cash -= prop.HouseCost
	ps := m.state.Properties[propertyID]
	ps.Houses++
	m.emit(rules.NewEventWithAmount(rules.EventHouseBuilt, player.ID.String(), propertyID, ps.Houses))
	result.Message = fmt.Sprintf("built house %d on %s", ps.Houses, prop.Name)
}

func (m *Manager) handleBuildHotel(player *Player, propertyID string, result *ActionResult) {
	if propertyID == "" {
		m.fail(result, "property_id is required to build")
		return
	}
	if ok, reason := rules.CanBuildHotel(propertyID, player.View(), m.state); !ok {
		m.fail(result, reason)
		return
	}
	prop, _ := board.LookupProperty(propertyID)
	player.Cash -= prop.HouseCost
	m.state.Properties[propertyID].Houses = board.HotelLevel
	m.emit(rules.NewEvent(rules.EventHotelBuilt, player.ID.String(), propertyID))
	result.Message = fmt.Sprintf("built a hotel on %s", prop.Name)
}

func (m *Manager) handlePayJailFine(player *Player, result *ActionResult) {
	res, err := rules.PayJailFine(player.View())
	if err != nil {
		m.fail(result, res.Message)
		return
	}
	player.Cash -= res.Cost
	m.emit(rules.NewEventWithAmount(rules.EventJailFinePaid, player.ID.String(), "", res.Cost))
	m.leaveJail(player)
	m.setPhase(rules.PhaseAwaitingRoll)
	result.JailResult = &res
	result.Message = res.Message
}

func (m *Manager) handleUseJailCard(player *Player, result *ActionResult) {
	res, err := rules.UseJailCard(player.View())
	if err != nil {
		m.fail(result, res.Message)
		return
	}
	player.JailFreeCards--
	m.emit(rules.NewEvent(rules.EventJailCardUsed, player.ID.String(), ""))
	m.leaveJail(player)
	m.setPhase(rules.PhaseAwaitingRoll)
	result.JailResult = &res
	result.Message = res.Message
}

func (m *Manager) handleRollForDoubles(player *Player, result *ActionResult) {
	if ok, reason := rules.CanRollForDoubles(player.View()); !ok {
		m.fail(result, reason)
		return
	}
	roll := m.dice.Roll()
	m.recordRoll(player, roll, result)
	res := rules.RollForDoubles(player.View(), roll)
	result.JailResult = &res
	result.Message = res.Message

	if !res.Escaped {
		player.JailTurns = res.JailTurns
		m.setPhase(rules.PhasePostRoll)
		return
	}
	if res.Method == rules.EscapeForcedPay {
		if !m.charge(player, res.Cost, nil, result) {
			return
		}
		m.emit(rules.NewEventWithAmount(rules.EventJailFinePaid, player.ID.String(), "", res.Cost))
	}
	m.leaveJail(player)
	// A jail roll never earns another turn.
	m.state.Game.DoublesCount = 0

	move := rules.MoveBy(player.Position, roll.Total())
	result.Movement = &move
	m.applyMovement(player, move, roll, landingModifier{}, result, 0)
}

func (m *Manager) handleEndTurn(player *Player, result *ActionResult) {
	if m.state.Game.TurnPhase == rules.PhaseAwaitingBuyDecision {
		if prop, ok := board.PropertyAt(player.Position); ok {
			if _, owned := m.state.OwnerOf(prop.ID); !owned {
				m.fail(result, fmt.Sprintf("decide whether to buy %s first", prop.Name))
				return
			}
		}
	}
	if m.state.Game.DoublesCount > 0 && !player.InJail {
		m.setPhase(rules.PhasePreRoll)
		result.Message = "rolled doubles; roll again"
		return
	}

	m.emit(rules.NewEvent(rules.EventTurnEnded, player.ID.String(), ""))
	next, ok := rules.NextSeat(m.state.playerViews(), player.ID)
	if !ok {
		m.fail(result, "no player to pass the turn to")
		return
	}
	m.beginTurn(next)
	result.TurnComplete = true
	if p, ok := m.state.Player(next); ok {
		result.Message = fmt.Sprintf("%s's turn", p.Name)
	}
}

func (m *Manager) beginTurn(next uuid.UUID) {
	g := &m.state.Game
	m.holder = next
	g.CurrentPlayerIndex = m.state.activeIndexOf(next)
	g.TurnNumber++
	g.DoublesCount = 0
	if p, ok := m.state.Player(next); ok && p.InJail {
		g.TurnPhase = rules.PhaseAwaitingJailDecision
	} else {
		g.TurnPhase = rules.PhasePreRoll
	}
}

// settleRotation re-pins CurrentPlayerIndex to the turn holder after
// bankruptcies shrink the active list, or hands the turn on if the holder
// went bankrupt.
func (m *Manager) settleRotation(result *ActionResult) {
	if m.state.Game.Status != StatusInProgress {
		return
	}
	p, ok := m.state.Player(m.holder)
	if !ok {
		return
	}
	if !p.Bankrupt {
		if idx := m.state.activeIndexOf(m.holder); idx >= 0 {
			m.state.Game.CurrentPlayerIndex = idx
		}
		return
	}
	next, ok := rules.NextSeat(m.state.playerViews(), m.holder)
	if !ok {
		return
	}
	m.beginTurn(next)
	result.TurnComplete = true
}

func appendMessage(base, extra string) string {
	if base == "" {
		return extra
	}
	return base + "; " + extra
}

// ListValidActions is a stateless convenience over Manager.ValidActions.
func ListValidActions(state *GameState) ([]ValidAction, error) {
	if state == nil {
		return nil, fmt.Errorf("%w: nil state", ErrGameNotFound)
	}
	if state.Game.Status != StatusInProgress {
		return nil, fmt.Errorf("%w: status is %s", ErrGameNotInProgress, state.Game.Status)
	}
	return NewManager(state, nil, nil).ValidActions(), nil
}

// ApplyAction runs one action against state using dice for any roll.
func ApplyAction(state *GameState, dice rules.Dice, action Action, logger *zap.Logger) (ActionResult, error) {
	if state == nil {
		return ActionResult{}, fmt.Errorf("%w: nil state", ErrGameNotFound)
	}
	return NewManager(state, dice, logger).ExecuteAction(action)
}
