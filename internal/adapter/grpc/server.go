package grpc

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/transfermarket-backend/internal/domain"
	"github.com/simaogato/transfermarket-backend/internal/usecase/club"
	"github.com/simaogato/transfermarket-backend/internal/usecase/player"
	"github.com/simaogato/transfermarket-backend/internal/usecase/transfer"
)

// Server implements the TransferMarketService gRPC server
type Server struct {
	TransferService *transfer.TransferService
	PlayerService   *player.PlayerService
	ClubService     *club.ClubService
}

var _ TransferMarketServer = (*Server)(nil)

// NewServer creates a new gRPC server instance
func NewServer(
	transferService *transfer.TransferService,
	playerService *player.PlayerService,
	clubService *club.ClubService,
) *Server {
	return &Server{
		TransferService: transferService,
		PlayerService:   playerService,
		ClubService:     clubService,
	}
}

// InitiateTransfer handles the InitiateTransfer RPC
func (s *Server) InitiateTransfer(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	playerID, err := requiredUUID(req, "player_id")
	if err != nil {
		return nil, err
	}
	fromClubID, err := requiredUUID(req, "from_club_id")
	if err != nil {
		return nil, err
	}
	toClubID, err := requiredUUID(req, "to_club_id")
	if err != nil {
		return nil, err
	}
	clauses, err := clausesField(req)
	if err != nil {
		return nil, err
	}

	result, err := s.TransferService.Initiate(ctx, transfer.InitiateTransferInput{
		PlayerID:   playerID,
		FromClubID: fromClubID,
		ToClubID:   toClubID,
		Clauses:    clauses,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return newResponse(map[string]interface{}{
		"transfer":      transferToMap(result.Transfer),
		"estimated_fee": result.EstimatedFee.String(),
	})
}

// GetTransfer handles the GetTransfer RPC
func (s *Server) GetTransfer(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.transferByID(ctx, req, s.TransferService.Get)
}

// ListTransfers handles the ListTransfers RPC
func (s *Server) ListTransfers(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	transfers, err := s.TransferService.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	items := make([]interface{}, 0, len(transfers))
	for _, t := range transfers {
		items = append(items, transferToMap(t))
	}
	return newResponse(map[string]interface{}{"transfers": items})
}

// SubmitTransfer handles the SubmitTransfer RPC
func (s *Server) SubmitTransfer(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.transferByID(ctx, req, s.TransferService.Submit)
}

// NegotiateTransfer handles the NegotiateTransfer RPC
func (s *Server) NegotiateTransfer(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.transferByID(ctx, req, s.TransferService.Negotiate)
}

// ApproveTransfer handles the ApproveTransfer RPC
func (s *Server) ApproveTransfer(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.transferByID(ctx, req, s.TransferService.Approve)
}

// CancelTransfer handles the CancelTransfer RPC
func (s *Server) CancelTransfer(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.transferByID(ctx, req, s.TransferService.Cancel)
}

// CompleteTransfer handles the CompleteTransfer RPC
func (s *Server) CompleteTransfer(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requiredUUID(req, "id")
	if err != nil {
		return nil, err
	}

	result, err := s.TransferService.Complete(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}

	return newResponse(map[string]interface{}{
		"transfer":  transferToMap(result.Transfer),
		"player":    playerToMap(result.Player),
		"from_club": clubToMap(result.FromClub),
		"to_club":   clubToMap(result.ToClub),
		"fee":       result.Fee.String(),
	})
}

// EstimateFee handles the EstimateFee RPC
func (s *Server) EstimateFee(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	playerID, err := requiredUUID(req, "player_id")
	if err != nil {
		return nil, err
	}
	buyerClubID, err := requiredUUID(req, "buyer_club_id")
	if err != nil {
		return nil, err
	}
	clauses, err := clausesField(req)
	if err != nil {
		return nil, err
	}

	fee, err := s.TransferService.EstimateFee(ctx, playerID, buyerClubID, clauses)
	if err != nil {
		return nil, mapError(err)
	}

	return newResponse(map[string]interface{}{"fee": fee.String()})
}

// transferByID runs a single-transfer operation addressed by the "id" field
func (s *Server) transferByID(ctx context.Context, req *structpb.Struct, op func(context.Context, uuid.UUID) (*domain.Transfer, error)) (*structpb.Struct, error) {
	id, err := requiredUUID(req, "id")
	if err != nil {
		return nil, err
	}

	t, err := op(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}

	return newResponse(map[string]interface{}{"transfer": transferToMap(t)})
}

// CreateClub handles the CreateClub RPC
func (s *Server) CreateClub(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	input, err := clubInput(req)
	if err != nil {
		return nil, err
	}

	c, err := s.ClubService.Create(ctx, input)
	if err != nil {
		return nil, mapError(err)
	}

	return newResponse(map[string]interface{}{"club": clubToMap(c)})
}

// GetClub handles the GetClub RPC
func (s *Server) GetClub(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requiredUUID(req, "id")
	if err != nil {
		return nil, err
	}

	c, err := s.ClubService.Get(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}

	return newResponse(map[string]interface{}{"club": clubToMap(c)})
}

// ListClubs handles the ListClubs RPC
func (s *Server) ListClubs(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	clubs, err := s.ClubService.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	items := make([]interface{}, 0, len(clubs))
	for _, c := range clubs {
		items = append(items, clubToMap(c))
	}
	return newResponse(map[string]interface{}{"clubs": items})
}

// UpdateClub handles the UpdateClub RPC
func (s *Server) UpdateClub(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requiredUUID(req, "id")
	if err != nil {
		return nil, err
	}
	input, err := clubInput(req)
	if err != nil {
		return nil, err
	}

	c, err := s.ClubService.Update(ctx, id, input)
	if err != nil {
		return nil, mapError(err)
	}

	return newResponse(map[string]interface{}{"club": clubToMap(c)})
}

// DeleteClub handles the DeleteClub RPC
func (s *Server) DeleteClub(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requiredUUID(req, "id")
	if err != nil {
		return nil, err
	}

	if err := s.ClubService.Delete(ctx, id); err != nil {
		return nil, mapError(err)
	}

	return newResponse(map[string]interface{}{"id": id.String()})
}

func clubInput(req *structpb.Struct) (club.ClubInput, error) {
	budget, err := optionalDecimal(req, "budget")
	if err != nil {
		return club.ClubInput{}, err
	}
	return club.ClubInput{
		Name:   stringField(req, "name"),
		Budget: budget,
	}, nil
}

// CreatePlayer handles the CreatePlayer RPC
func (s *Server) CreatePlayer(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	input, err := playerInput(req)
	if err != nil {
		return nil, err
	}

	p, err := s.PlayerService.Create(ctx, input)
	if err != nil {
		return nil, mapError(err)
	}

	return newResponse(map[string]interface{}{"player": playerToMap(p)})
}

// GetPlayer handles the GetPlayer RPC
func (s *Server) GetPlayer(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requiredUUID(req, "id")
	if err != nil {
		return nil, err
	}

	p, err := s.PlayerService.Get(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}

	return newResponse(map[string]interface{}{"player": playerToMap(p)})
}

// ListPlayers handles the ListPlayers RPC
func (s *Server) ListPlayers(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	players, err := s.PlayerService.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	items := make([]interface{}, 0, len(players))
	for _, p := range players {
		items = append(items, playerToMap(p))
	}
	return newResponse(map[string]interface{}{"players": items})
}

// UpdatePlayer handles the UpdatePlayer RPC
func (s *Server) UpdatePlayer(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requiredUUID(req, "id")
	if err != nil {
		return nil, err
	}
	input, err := playerInput(req)
	if err != nil {
		return nil, err
	}

	p, err := s.PlayerService.Update(ctx, id, input)
	if err != nil {
		return nil, mapError(err)
	}

	return newResponse(map[string]interface{}{"player": playerToMap(p)})
}

// DeletePlayer handles the DeletePlayer RPC
func (s *Server) DeletePlayer(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requiredUUID(req, "id")
	if err != nil {
		return nil, err
	}

	if err := s.PlayerService.Delete(ctx, id); err != nil {
		return nil, mapError(err)
	}

	return newResponse(map[string]interface{}{"id": id.String()})
}

func playerInput(req *structpb.Struct) (player.PlayerInput, error) {
	marketValue, err := optionalDecimal(req, "current_market_value")
	if err != nil {
		return player.PlayerInput{}, err
	}
	clubID, err := optionalUUID(req, "current_club_id")
	if err != nil {
		return player.PlayerInput{}, err
	}
	return player.PlayerInput{
		Name:               stringField(req, "name"),
		CurrentMarketValue: marketValue,
		CurrentClubID:      clubID,
	}, nil
}
