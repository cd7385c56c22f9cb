package grpc

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/transfermarket-backend/internal/domain"
)

// field returns the value stored under key, or nil when it is absent or null
func field(req *structpb.Struct, key string) *structpb.Value {
	v, ok := req.GetFields()[key]
	if !ok {
		return nil
	}
	if _, isNull := v.GetKind().(*structpb.Value_NullValue); isNull {
		return nil
	}
	return v
}

// stringField returns the string stored under key, or "" when absent
func stringField(req *structpb.Struct, key string) string {
	return field(req, key).GetStringValue()
}

// requiredUUID parses the UUID string stored under key
func requiredUUID(req *structpb.Struct, key string) (uuid.UUID, error) {
	raw := stringField(req, key)
	if raw == "" {
		return uuid.Nil, status.Errorf(codes.InvalidArgument, "%s is required", key)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, status.Errorf(codes.InvalidArgument, "invalid %s format: %v", key, err)
	}
	return id, nil
}

// optionalUUID parses the UUID string stored under key; absent, null or empty means nil
func optionalUUID(req *structpb.Struct, key string) (*uuid.UUID, error) {
	raw := stringField(req, key)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid %s format: %v", key, err)
	}
	return &id, nil
}

// optionalDecimal parses a money amount. Amounts travel as decimal strings;
// JSON numbers are rejected since they are binary floats. Absent or null means no value.
func optionalDecimal(req *structpb.Struct, key string) (decimal.NullDecimal, error) {
	v := field(req, key)
	if v == nil {
		return decimal.NullDecimal{}, nil
	}

	switch kind := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		amount, err := decimal.NewFromString(kind.StringValue)
		if err != nil {
			return decimal.NullDecimal{}, status.Errorf(codes.InvalidArgument, "invalid %s format: %v", key, err)
		}
		return decimal.NewNullDecimal(amount), nil
	default:
		return decimal.NullDecimal{}, status.Errorf(codes.InvalidArgument, "invalid %s format: expected a decimal string", key)
	}
}

// clausesField reads the optional "clauses" list
func clausesField(req *structpb.Struct) ([]domain.ContractClause, error) {
	v := field(req, "clauses")
	if v == nil {
		return nil, nil
	}
	list := v.GetListValue()
	if list == nil {
		return nil, status.Error(codes.InvalidArgument, "clauses must be a list")
	}

	clauses := make([]domain.ContractClause, 0, len(list.GetValues()))
	for i, item := range list.GetValues() {
		entry := item.GetStructValue()
		if entry == nil {
			return nil, status.Errorf(codes.InvalidArgument, "clauses[%d] must be an object", i)
		}
		percentage, err := optionalDecimal(entry, "percentage")
		if err != nil {
			return nil, err
		}
		amount, err := optionalDecimal(entry, "amount")
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, domain.ContractClause{
			Type:       stringField(entry, "type"),
			Percentage: percentage,
			Amount:     amount,
		})
	}

	return clauses, nil
}

func nullDecimalValue(d decimal.NullDecimal) interface{} {
	if !d.Valid {
		return nil
	}
	return d.Decimal.String()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func transferToMap(t *domain.Transfer) map[string]interface{} {
	return map[string]interface{}{
		"id":           t.ID.String(),
		"player_id":    t.PlayerID.String(),
		"from_club_id": t.FromClubID.String(),
		"to_club_id":   t.ToClubID.String(),
		"status":       string(t.Status),
		"initiated_at": formatTime(t.InitiatedAt),
		"updated_at":   formatTime(t.UpdatedAt),
	}
}

func clubToMap(c *domain.Club) map[string]interface{} {
	return map[string]interface{}{
		"id":     c.ID.String(),
		"name":   c.Name,
		"budget": nullDecimalValue(c.Budget),
	}
}

func playerToMap(p *domain.Player) map[string]interface{} {
	var clubID interface{}
	if p.CurrentClubID.Valid {
		clubID = p.CurrentClubID.UUID.String()
	}
	return map[string]interface{}{
		"id":                   p.ID.String(),
		"name":                 p.Name,
		"current_market_value": nullDecimalValue(p.CurrentMarketValue),
		"current_club_id":      clubID,
	}
}

// newResponse converts a response map into a Struct message
func newResponse(fields map[string]interface{}) (*structpb.Struct, error) {
	resp, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return resp, nil
}
