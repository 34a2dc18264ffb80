package server

import (
	"context"
	"net"
	"testing"

	"github.com/agentopoly/monopoly-engine/internal/game"
	"github.com/agentopoly/monopoly-engine/internal/game/rules"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

func newTestClient(t *testing.T, registry *Registry) *GameEngineClient {
	t.Helper()
	logger := zaptest.NewLogger(t)
	lis := bufconn.Listen(1 << 20)

	srv := grpc.NewServer(grpc.UnaryInterceptor(ChainUnaryInterceptors(
		RecoveryInterceptor(logger),
		LoggingInterceptor(logger),
	)))
	RegisterGameEngineServer(srv, NewEngineServer(registry, logger))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewGameEngineClient(conn)
}

func field(s *structpb.Struct, key string) *structpb.Value {
	return s.GetFields()[key]
}

func TestServiceGameLifecycle(t *testing.T) {
	client := newTestClient(t, NewRegistry(zaptest.NewLogger(t), fixedDice([2]int{1, 2})))
	ctx := context.Background()

	created, err := client.CreateGame(ctx, []game.Seat{{Name: "Alice", Agent: "random"}, {Name: "Bob"}})
	require.NoError(t, err)
	assert.Equal(t, "waiting", field(created, "status").GetStringValue())
	id, err := uuid.Parse(field(created, "game_id").GetStringValue())
	require.NoError(t, err)

	started, err := client.StartGame(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "PRE_ROLL", field(started, "turn_phase").GetStringValue())
	players := field(started, "players").GetListValue().GetValues()
	require.Len(t, players, 2)
	assert.Equal(t, float64(1500), players[0].GetStructValue().GetFields()["cash"].GetNumberValue())

	actions, err := client.ListValidActions(ctx, id)
	require.NoError(t, err)
	assert.NotEmpty(t, field(actions, "actions").GetListValue().GetValues())

	alice, err := uuid.Parse(players[0].GetStructValue().GetFields()["player_id"].GetStringValue())
	require.NoError(t, err)
	applied, err := client.ApplyAction(ctx, id, game.Action{Type: game.ActionRollDice, PlayerID: alice})
	require.NoError(t, err)
	result := field(applied, "result").GetStructValue()
	assert.True(t, result.GetFields()["success"].GetBoolValue())
	assert.Equal(t, "AWAITING_BUY_DECISION", result.GetFields()["next_phase"].GetStringValue())
	assert.Equal(t, float64(3), result.GetFields()["dice_roll"].GetStructValue().GetFields()["total"].GetNumberValue())

	got, err := client.GetGame(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "AWAITING_BUY_DECISION", field(got, "turn_phase").GetStringValue())

	_, err = client.DeleteGame(ctx, id)
	require.NoError(t, err)
	_, err = client.GetGame(ctx, id)
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestServiceErrorCodes(t *testing.T) {
	registry := NewRegistry(zaptest.NewLogger(t))
	client := newTestClient(t, registry)
	ctx := context.Background()

	_, err := client.CreateGame(ctx, []game.Seat{{Name: "Solo"}})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	state := startedGame(t, registry)
	_, err = client.ApplyAction(ctx, state.Game.ID, game.Action{Type: game.ActionRollDice, PlayerID: state.Players[1].ID})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	alice := state.Players[0].ID
	_, err = client.ApplyAction(ctx, state.Game.ID, game.Action{Type: game.ActionBuyProperty, PlayerID: alice, PropertyID: "atlantis"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	applied, err := client.ApplyAction(ctx, state.Game.ID, game.Action{Type: game.ActionEndTurn, PlayerID: alice})
	require.NoError(t, err)
	assert.False(t, field(applied, "result").GetStructValue().GetFields()["success"].GetBoolValue())
}

func TestServiceApplyActionRequiresPlayer(t *testing.T) {
	registry := NewRegistry(zaptest.NewLogger(t), fixedDice([2]int{1, 2}))
	client := newTestClient(t, registry)
	ctx := context.Background()
	state := startedGame(t, registry)

	_, err := client.ApplyAction(ctx, state.Game.ID, game.Action{Type: game.ActionRollDice})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = client.invoke(ctx, "ApplyAction", map[string]any{
		"game_id":     state.Game.ID.String(),
		"action_type": string(game.ActionRollDice),
	})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	current, err := registry.GetGame(ctx, state.Game.ID)
	require.NoError(t, err)
	assert.Equal(t, rules.PhasePreRoll, current.Game.TurnPhase)
	assert.Nil(t, current.Game.LastDiceRoll)
}

func TestRecoveryInterceptor(t *testing.T) {
	interceptor := RecoveryInterceptor(zaptest.NewLogger(t))
	info := &grpc.UnaryServerInfo{FullMethod: "/test/Panic"}

	_, err := interceptor(context.Background(), nil, info, func(context.Context, any) (any, error) {
		panic("boom")
	})
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestChainUnaryInterceptorsOrder(t *testing.T) {
	var order []string
	mark := func(name string) grpc.UnaryServerInterceptor {
		return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
			order = append(order, name)
			return handler(ctx, req)
		}
	}
	chain := ChainUnaryInterceptors(mark("outer"), mark("inner"))
	_, err := chain(context.Background(), nil, &grpc.UnaryServerInfo{}, func(context.Context, any) (any, error) {
		order = append(order, "handler")
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}
