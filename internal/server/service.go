package server

import (
	"context"
	"errors"

	"github.com/agentopoly/monopoly-engine/internal/game"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "monopoly.engine.v1.GameEngine"

// GameEngineServer is the server API for the GameEngine service.
type GameEngineServer interface {
	CreateGame(context.Context, *structpb.Struct) (*structpb.Struct, error)
	StartGame(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetGame(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListValidActions(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ApplyAction(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteGame(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// engineServer implements GameEngineServer on top of a Registry.
type engineServer struct {
	registry *Registry
	logger   *zap.Logger
}

// NewEngineServer creates the gRPC service implementation.
func NewEngineServer(registry *Registry, logger *zap.Logger) GameEngineServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &engineServer{registry: registry, logger: logger}
}

// CreateGame expects {"players": [{"name", "agent"}, ...]}.
func (s *engineServer) CreateGame(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	seats, err := seatsField(req)
	if err != nil {
		return nil, err
	}
	state, err := s.registry.CreateGame(ctx, seats)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(stateToMap(state))
}

func (s *engineServer) StartGame(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := uuidField(req, "game_id")
	if err != nil {
		return nil, err
	}
	state, err := s.registry.StartGame(ctx, id)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(stateToMap(state))
}

func (s *engineServer) GetGame(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := uuidField(req, "game_id")
	if err != nil {
		return nil, err
	}
	state, err := s.registry.GetGame(ctx, id)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(stateToMap(state))
}

func (s *engineServer) ListValidActions(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := uuidField(req, "game_id")
	if err != nil {
		return nil, err
	}
	actions, err := s.registry.ListValidActions(ctx, id)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(map[string]any{
		"game_id": id.String(),
		"actions": validActionsToList(actions),
	})
}

// ApplyAction expects {"game_id", "player_id", "action_type", "property_id"}.
// An illegal action is reported with success=false, not an RPC error.
func (s *engineServer) ApplyAction(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := uuidField(req, "game_id")
	if err != nil {
		return nil, err
	}
	actionType := stringField(req, "action_type")
	if actionType == "" {
		return nil, status.Error(codes.InvalidArgument, "action_type is required")
	}
	playerID, err := uuidField(req, "player_id")
	if err != nil {
		return nil, err
	}
	if playerID == uuid.Nil {
		return nil, status.Error(codes.InvalidArgument, "player_id must name a seated player")
	}
	action := game.Action{
		Type:       game.ActionType(actionType),
		PlayerID:   playerID,
		PropertyID: stringField(req, "property_id"),
	}

	result, err := s.registry.ApplyAction(ctx, id, action)
	if err != nil {
		return nil, toStatus(err)
	}
	state, err := s.registry.GetGame(ctx, id)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(map[string]any{
		"result": resultToMap(result),
		"state":  stateToMap(state),
	})
}

func (s *engineServer) DeleteGame(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := uuidField(req, "game_id")
	if err != nil {
		return nil, err
	}
	if err := s.registry.DeleteGame(ctx, id); err != nil {
		return nil, toStatus(err)
	}
	return toStruct(map[string]any{"game_id": id.String(), "deleted": true})
}

// toStatus maps engine errors onto gRPC codes.
func toStatus(err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, game.ErrNotYourTurn):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, game.ErrUnknownProperty), errors.Is(err, game.ErrInvalidPlayerCount), errors.Is(err, game.ErrUnknownPlayer):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, game.ErrGameNotInProgress):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// RegisterGameEngineServer registers srv on s.
func RegisterGameEngineServer(s grpc.ServiceRegistrar, srv GameEngineServer) {
	s.RegisterService(&GameEngineServiceDesc, srv)
}

func unaryHandler(method string, call func(GameEngineServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(GameEngineServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + method,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(GameEngineServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// GameEngineServiceDesc describes the GameEngine service.
var GameEngineServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*GameEngineServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler("CreateGame", GameEngineServer.CreateGame),
		unaryHandler("StartGame", GameEngineServer.StartGame),
		unaryHandler("GetGame", GameEngineServer.GetGame),
		unaryHandler("ListValidActions", GameEngineServer.ListValidActions),
		unaryHandler("ApplyAction", GameEngineServer.ApplyAction),
		unaryHandler("DeleteGame", GameEngineServer.DeleteGame),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "monopoly/engine/v1/engine.proto",
}

// GameEngineClient is a thin client for the GameEngine service.
type GameEngineClient struct {
	cc grpc.ClientConnInterface
}

// NewGameEngineClient wraps an established connection.
func NewGameEngineClient(cc grpc.ClientConnInterface) *GameEngineClient {
	return &GameEngineClient{cc: cc}
}

func (c *GameEngineClient) invoke(ctx context.Context, method string, req map[string]any, opts ...grpc.CallOption) (*structpb.Struct, error) {
	in, err := structpb.NewStruct(req)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateGame seats the named players.
func (c *GameEngineClient) CreateGame(ctx context.Context, seats []game.Seat, opts ...grpc.CallOption) (*structpb.Struct, error) {
	players := make([]any, len(seats))
	for i, seat := range seats {
		players[i] = map[string]any{"name": seat.Name, "agent": seat.Agent}
	}
	return c.invoke(ctx, "CreateGame", map[string]any{"players": players}, opts...)
}

func (c *GameEngineClient) StartGame(ctx context.Context, gameID uuid.UUID, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "StartGame", map[string]any{"game_id": gameID.String()}, opts...)
}

func (c *GameEngineClient) GetGame(ctx context.Context, gameID uuid.UUID, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "GetGame", map[string]any{"game_id": gameID.String()}, opts...)
}

func (c *GameEngineClient) ListValidActions(ctx context.Context, gameID uuid.UUID, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "ListValidActions", map[string]any{"game_id": gameID.String()}, opts...)
}

// ApplyAction submits action for gameID.
func (c *GameEngineClient) ApplyAction(ctx context.Context, gameID uuid.UUID, action game.Action, opts ...grpc.CallOption) (*structpb.Struct, error) {
	req := map[string]any{
		"game_id":     gameID.String(),
		"player_id":   action.PlayerID.String(),
		"action_type": string(action.Type),
	}
	if action.PropertyID != "" {
		req["property_id"] = action.PropertyID
	}
	return c.invoke(ctx, "ApplyAction", req, opts...)
}

func (c *GameEngineClient) DeleteGame(ctx context.Context, gameID uuid.UUID, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "DeleteGame", map[string]any{"game_id": gameID.String()}, opts...)
}
