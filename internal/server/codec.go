package server

import (
	"strings"

	"github.com/agentopoly/monopoly-engine/internal/game"
	"github.com/agentopoly/monopoly-engine/internal/game/board"
	"github.com/agentopoly/monopoly-engine/internal/game/cards"
	"github.com/agentopoly/monopoly-engine/internal/game/rules"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// Wire messages are google.protobuf.Struct values with snake_case keys.

func stateToMap(state *game.GameState) map[string]any {
	g := state.Game
	out := map[string]any{
		"game_id":              g.ID.String(),
		"status":               string(g.Status),
		"current_player_index": g.CurrentPlayerIndex,
		"turn_number":          g.TurnNumber,
		"turn_phase":           g.TurnPhase.String(),
		"doubles_count":        g.DoublesCount,
		"last_dice_roll":       nil,
		"winner_id":            nil,
		"created_at":           g.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		"updated_at":           g.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	if g.LastDiceRoll != nil {
		out["last_dice_roll"] = diceToMap(*g.LastDiceRoll)
	}
	if g.WinnerID != nil {
		out["winner_id"] = g.WinnerID.String()
	}
	if current, err := state.CurrentPlayer(); err == nil && g.Status == game.StatusInProgress {
		out["current_player_id"] = current.ID.String()
	}

	players := make([]any, 0, len(state.Players))
	for _, p := range state.Players {
		players = append(players, map[string]any{
			"player_id":       p.ID.String(),
			"name":            p.Name,
			"agent":           p.Agent,
			"order":           p.Order,
			"position":        p.Position,
			"cash":            p.Cash,
			"in_jail":         p.InJail,
			"jail_turns":      p.JailTurns,
			"jail_free_cards": p.JailFreeCards,
			"bankrupt":        p.Bankrupt,
			"net_worth":       state.NetWorth(p.ID),
		})
	}
	out["players"] = players

	props := make([]any, 0, len(state.Properties))
	for _, id := range board.PropertyIDs() {
		ps, ok := state.Properties[id]
		if !ok {
			continue
		}
		entry := map[string]any{
			"property_id": ps.PropertyID,
			"owner_id":    nil,
			"houses":      ps.Houses,
		}
		if ps.OwnerID != nil {
			entry["owner_id"] = ps.OwnerID.String()
		}
		props = append(props, entry)
	}
	out["properties"] = props
	return out
}

func diceToMap(roll rules.DiceRoll) map[string]any {
	return map[string]any{
		"die1":       roll.Die1,
		"die2":       roll.Die2,
		"total":      roll.Total(),
		"is_doubles": roll.IsDoubles(),
	}
}

func validActionsToList(actions []game.ValidAction) []any {
	out := make([]any, 0, len(actions))
	for _, a := range actions {
		entry := map[string]any{
			"action_type": string(a.Type),
			"description": a.Description,
		}
		if a.PropertyID != "" {
			entry["property_id"] = a.PropertyID
		}
		if a.Cost != 0 {
			entry["cost"] = a.Cost
		}
		out = append(out, entry)
	}
	return out
}

func resultToMap(result game.ActionResult) map[string]any {
	out := map[string]any{
		"success":       result.Success,
		"message":       result.Message,
		"next_phase":    result.NextPhase.String(),
		"turn_complete": result.TurnComplete,
		"game_over":     result.GameOver,
		"rent_paid":     result.RentPaid,
		"tax_paid":      result.TaxPaid,
	}
	if result.DiceRoll != nil {
		out["dice_roll"] = diceToMap(*result.DiceRoll)
	}
	if result.Movement != nil {
		out["movement"] = movementToMap(*result.Movement)
	}
	if result.RentTo != nil {
		out["rent_to"] = result.RentTo.String()
	}
	if result.WinnerID != nil {
		out["winner_id"] = result.WinnerID.String()
	}
	if result.CardEffect != nil {
		out["card"] = effectToMap(*result.CardEffect)
	}
	if j := result.JailResult; j != nil {
		out["jail"] = map[string]any{
			"escaped":    j.Escaped,
			"method":     string(j.Method),
			"cost":       j.Cost,
			"jail_turns": j.JailTurns,
			"message":    j.Message,
		}
	}
	if len(result.Bankruptcies) > 0 {
		list := make([]any, 0, len(result.Bankruptcies))
		for _, b := range result.Bankruptcies {
			entry := map[string]any{
				"player_id": b.PlayerID.String(),
				"debt":      b.Debt,
				"shortfall": b.Shortfall,
				"creditor":  nil,
				"message":   b.Message,
			}
			if b.Creditor != nil {
				entry["creditor"] = b.Creditor.String()
			}
			list = append(list, entry)
		}
		out["bankruptcies"] = list
	}
	events := make([]any, 0, len(result.Events))
	for _, e := range result.Events {
		events = append(events, map[string]any{
			"type":      string(e.Type),
			"player_id": e.PlayerID,
			"target_id": e.TargetID,
			"amount":    e.Amount,
			"data":      e.Data,
		})
	}
	out["events"] = events
	return out
}

func movementToMap(m rules.MovementResult) map[string]any {
	return map[string]any{
		"from":                 m.From,
		"new_position":         m.NewPosition,
		"passed_go":            m.PassedGo,
		"landed_on_go_to_jail": m.LandedOnGoToJail,
		"spaces_moved":         m.SpacesMoved,
	}
}

func effectToMap(e cards.Effect) map[string]any {
	out := map[string]any{
		"card_id":         e.CardID,
		"deck":            string(e.Deck),
		"text":            e.Text,
		"cash_delta":      e.CashDelta,
		"passed_go":       e.PassedGo,
		"go_to_jail":      e.GoToJail,
		"grant_jail_card": e.GrantJailCard,
	}
	if e.NewPosition != nil {
		out["new_position"] = *e.NewPosition
	}
	return out
}

func toStruct(m map[string]any) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return s, nil
}

func stringField(req *structpb.Struct, key string) string {
	if req == nil {
		return ""
	}
	return strings.TrimSpace(req.GetFields()[key].GetStringValue())
}

func uuidField(req *structpb.Struct, key string) (uuid.UUID, error) {
	raw := stringField(req, key)
	if raw == "" {
		return uuid.Nil, status.Errorf(codes.InvalidArgument, "%s is required", key)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, status.Errorf(codes.InvalidArgument, "%s is not a valid id: %v", key, err)
	}
	return id, nil
}

func seatsField(req *structpb.Struct) ([]game.Seat, error) {
	list := req.GetFields()["players"].GetListValue()
	if list == nil {
		return nil, status.Error(codes.InvalidArgument, "players is required")
	}
	seats := make([]game.Seat, 0, len(list.GetValues()))
	for i, v := range list.GetValues() {
		var seat game.Seat
		switch kind := v.GetKind().(type) {
		case *structpb.Value_StringValue:
			seat.Name = kind.StringValue
		case *structpb.Value_StructValue:
			seat.Name = stringField(kind.StructValue, "name")
			seat.Agent = stringField(kind.StructValue, "agent")
		default:
			return nil, status.Errorf(codes.InvalidArgument, "players[%d] must be a name or an object", i)
		}
		if strings.TrimSpace(seat.Name) == "" {
			return nil, status.Errorf(codes.InvalidArgument, "players[%d] has no name", i)
		}
		seats = append(seats, seat)
	}
	return seats, nil
}
