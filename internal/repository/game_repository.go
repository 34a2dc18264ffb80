package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agentopoly/monopoly-engine/internal/game"
	"github.com/agentopoly/monopoly-engine/internal/game/board"
	"github.com/agentopoly/monopoly-engine/internal/game/cards"
	"github.com/agentopoly/monopoly-engine/internal/game/rules"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// GameRepository persists full game states and their event logs.
type GameRepository struct {
	db *DB
}

// NewGameRepository creates a repository backed by db.
func NewGameRepository(db *DB) *GameRepository {
	return &GameRepository{db: db}
}

// Create inserts a new game with its players, property rows and decks.
func (r *GameRepository) Create(ctx context.Context, state *game.GameState) error {
	return r.write(ctx, state, true)
}

// Save upserts the mutable parts of a game in one transaction.
func (r *GameRepository) Save(ctx context.Context, state *game.GameState) error {
	return r.write(ctx, state, false)
}

func (r *GameRepository) write(ctx context.Context, state *game.GameState, create bool) error {
	tx, err := r.db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	g := state.Game
	var die1, die2 *int
	if g.LastDiceRoll != nil {
		d1, d2 := g.LastDiceRoll.Die1, g.LastDiceRoll.Die2
		die1, die2 = &d1, &d2
	}

	gameSQL := `
		INSERT INTO games (id, status, current_player_index, turn_number, turn_phase,
			doubles_count, last_die1, last_die2, winner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			current_player_index = EXCLUDED.current_player_index,
			turn_number = EXCLUDED.turn_number,
			turn_phase = EXCLUDED.turn_phase,
			doubles_count = EXCLUDED.doubles_count,
			last_die1 = EXCLUDED.last_die1,
			last_die2 = EXCLUDED.last_die2,
			winner_id = EXCLUDED.winner_id,
			updated_at = EXCLUDED.updated_at`
	if create {
		gameSQL = `
		INSERT INTO games (id, status, current_player_index, turn_number, turn_phase,
			doubles_count, last_die1, last_die2, winner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	}

	batch := &pgx.Batch{}
	batch.Queue(gameSQL,
		g.ID, string(g.Status), g.CurrentPlayerIndex, g.TurnNumber, g.TurnPhase.String(),
		g.DoublesCount, die1, die2, g.WinnerID, g.CreatedAt, time.Now())

	for _, p := range state.Players {
		batch.Queue(`
			INSERT INTO players (id, game_id, name, agent, seat_order, position, cash,
				in_jail, jail_turns, jail_free_cards, bankrupt)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (id) DO UPDATE SET
				position = EXCLUDED.position,
				cash = EXCLUDED.cash,
				in_jail = EXCLUDED.in_jail,
				jail_turns = EXCLUDED.jail_turns,
				jail_free_cards = EXCLUDED.jail_free_cards,
				bankrupt = EXCLUDED.bankrupt`,
			p.ID, g.ID, p.Name, p.Agent, p.Order, p.Position, p.Cash,
			p.InJail, p.JailTurns, p.JailFreeCards, p.Bankrupt)
	}

	for _, id := range board.PropertyIDs() {
		ps, ok := state.Properties[id]
		if !ok {
			continue
		}
		batch.Queue(`
			INSERT INTO property_states (game_id, property_id, owner_id, houses)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (game_id, property_id) DO UPDATE SET
				owner_id = EXCLUDED.owner_id,
				houses = EXCLUDED.houses`,
			g.ID, ps.PropertyID, ps.OwnerID, ps.Houses)
	}

	for _, deckType := range []board.DeckType{board.DeckChance, board.DeckCommunityChest} {
		d, ok := state.Decks[deckType]
		if !ok {
			continue
		}
		order := make([]int32, len(d.Order))
		for i, id := range d.Order {
			order[i] = int32(id)
		}
		batch.Queue(`
			INSERT INTO card_decks (game_id, deck_type, card_order, draw_index)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (game_id, deck_type) DO UPDATE SET
				card_order = EXCLUDED.card_order,
				draw_index = EXCLUDED.draw_index`,
			g.ID, string(d.Type), order, d.Index)
	}

	results := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("failed to save game %s: %w", g.ID, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to save game %s: %w", g.ID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit game %s: %w", g.ID, err)
	}
	return nil
}

// Load reads a full game state. Returns game.ErrGameNotFound if absent.
func (r *GameRepository) Load(ctx context.Context, id uuid.UUID) (*game.GameState, error) {
	state := &game.GameState{
		Properties: make(map[string]*game.PropertyState, 28),
		Decks:      make(map[board.DeckType]*cards.Deck, 2),
	}

	var (
		status, phase string
		die1, die2    *int
		winner        pgtype.UUID
	)
	err := r.db.pool.QueryRow(ctx, `
		SELECT id, status, current_player_index, turn_number, turn_phase, doubles_count,
			last_die1, last_die2, winner_id, created_at, updated_at
		FROM games WHERE id = $1`, id).Scan(
		&state.Game.ID, &status, &state.Game.CurrentPlayerIndex, &state.Game.TurnNumber,
		&phase, &state.Game.DoublesCount, &die1, &die2, &winner,
		&state.Game.CreatedAt, &state.Game.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", game.ErrGameNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load game %s: %w", id, err)
	}

	state.Game.Status = game.GameStatus(status)
	if state.Game.TurnPhase, err = rules.ParseTurnPhase(phase); err != nil {
		return nil, fmt.Errorf("game %s: %w", id, err)
	}
	if die1 != nil && die2 != nil {
		state.Game.LastDiceRoll = &rules.DiceRoll{Die1: *die1, Die2: *die2}
	}
	state.Game.WinnerID = nullableUUID(winner)

	if err := r.loadPlayers(ctx, state); err != nil {
		return nil, err
	}
	if err := r.loadProperties(ctx, state); err != nil {
		return nil, err
	}
	if err := r.loadDecks(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

func (r *GameRepository) loadPlayers(ctx context.Context, state *game.GameState) error {
	rows, err := r.db.pool.Query(ctx, `
		SELECT id, name, agent, seat_order, position, cash, in_jail, jail_turns,
			jail_free_cards, bankrupt
		FROM players WHERE game_id = $1 ORDER BY seat_order`, state.Game.ID)
	if err != nil {
		return fmt.Errorf("failed to load players: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p := &game.Player{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Agent, &p.Order, &p.Position, &p.Cash,
			&p.InJail, &p.JailTurns, &p.JailFreeCards, &p.Bankrupt); err != nil {
			return fmt.Errorf("failed to scan player: %w", err)
		}
		state.Players = append(state.Players, p)
	}
	return rows.Err()
}

func (r *GameRepository) loadProperties(ctx context.Context, state *game.GameState) error {
	rows, err := r.db.pool.Query(ctx, `
		SELECT property_id, owner_id, houses
		FROM property_states WHERE game_id = $1`, state.Game.ID)
	if err != nil {
		return fmt.Errorf("failed to load properties: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			ps    game.PropertyState
			owner pgtype.UUID
		)
		if err := rows.Scan(&ps.PropertyID, &owner, &ps.Houses); err != nil {
			return fmt.Errorf("failed to scan property: %w", err)
		}
		if _, ok := board.LookupProperty(ps.PropertyID); !ok {
			return fmt.Errorf("%w: %q", game.ErrUnknownProperty, ps.PropertyID)
		}
		ps.OwnerID = nullableUUID(owner)
		state.Properties[ps.PropertyID] = &ps
	}
	return rows.Err()
}

func (r *GameRepository) loadDecks(ctx context.Context, state *game.GameState) error {
	rows, err := r.db.pool.Query(ctx, `
		SELECT deck_type, card_order, draw_index
		FROM card_decks WHERE game_id = $1`, state.Game.ID)
	if err != nil {
		return fmt.Errorf("failed to load decks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			deckType string
			order    []int32
			index    int
		)
		if err := rows.Scan(&deckType, &order, &index); err != nil {
			return fmt.Errorf("failed to scan deck: %w", err)
		}
		ids := make([]int, len(order))
		for i, id := range order {
			ids[i] = int(id)
		}
		d, err := cards.NewDeck(board.DeckType(deckType), ids, index)
		if err != nil {
			return err
		}
		state.Decks[d.Type] = d
	}
	return rows.Err()
}

// AppendEvents stores events in order using COPY.
func (r *GameRepository) AppendEvents(ctx context.Context, gameID uuid.UUID, events []rules.Event) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([][]any, len(events))
	for i, e := range events {
		ts := e.Timestamp
		if ts.IsZero() {
			ts = time.Now()
		}
		rows[i] = []any{gameID, e.TurnNumber, string(e.Type), e.PlayerID, e.TargetID, e.Amount, e.Data, ts}
	}
	_, err := r.db.pool.CopyFrom(ctx,
		pgx.Identifier{"game_events"},
		[]string{"game_id", "turn_number", "event_type", "player_id", "target_id", "amount", "data", "created_at"},
		pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("failed to append events for game %s: %w", gameID, err)
	}
	return nil
}

// ListEvents returns a game's events in insertion order.
func (r *GameRepository) ListEvents(ctx context.Context, gameID uuid.UUID) ([]rules.Event, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT turn_number, event_type, player_id, target_id, amount, data, created_at
		FROM game_events WHERE game_id = $1 ORDER BY id`, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []rules.Event
	for rows.Next() {
		var (
			e       rules.Event
			evtType string
		)
		if err := rows.Scan(&e.TurnNumber, &evtType, &e.PlayerID, &e.TargetID, &e.Amount, &e.Data, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		e.Type = rules.EventType(evtType)
		e.GameID = gameID.String()
		events = append(events, e)
	}
	return events, rows.Err()
}

// Delete removes a game; child rows cascade.
func (r *GameRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.pool.Exec(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete game %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", game.ErrGameNotFound, id)
	}
	return nil
}

func nullableUUID(v pgtype.UUID) *uuid.UUID {
	if !v.Valid {
		return nil
	}
	id := uuid.UUID(v.Bytes)
	return &id
}
