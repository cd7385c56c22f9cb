//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	grpcadapter "github.com/simaogato/transfermarket-backend/internal/adapter/grpc"
	"github.com/simaogato/transfermarket-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/transfermarket-backend/internal/domain"
)

var (
	db         *postgres.DB
	grpcClient *grpcadapter.Client
	grpcConn   *grpc.ClientConn
)

// TestMain sets up the test environment
func TestMain(m *testing.M) {
	// 1. Connect to Database
	var err error
	db, err = postgres.NewDB(getDBConnectionString(), postgres.Options{})
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to database: %v", err))
	}

	if err := db.Migrate(context.Background()); err != nil {
		panic(fmt.Sprintf("Failed to apply schema: %v", err))
	}

	// 2. Connect to gRPC Server
	grpcConn, err = grpc.NewClient(getGRPCAddress(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to gRPC server: %v", err))
	}

	grpcClient = grpcadapter.NewClient(grpcConn)

	// Run tests
	code := m.Run()

	grpcConn.Close()
	db.Close()
	os.Exit(code)
}

// fixture holds the parties of one transfer scenario
type fixture struct {
	seller uuid.UUID
	buyer  uuid.UUID
	player uuid.UUID
}

// setupFixture inserts two clubs and a player directly through the repositories.
// Names carry a random suffix so reruns never collide.
func setupFixture(t *testing.T, sellerBudget, buyerBudget, marketValue string) fixture {
	t.Helper()
	ctx := context.Background()
	suffix := uuid.NewString()[:8]

	clubRepo := postgres.NewClubRepository(db)
	playerRepo := postgres.NewPlayerRepository(db)

	seller := &domain.Club{ID: uuid.New(), Name: "Seller " + suffix, Budget: domain.NewBudget(decimal.RequireFromString(sellerBudget))}
	buyer := &domain.Club{ID: uuid.New(), Name: "Buyer " + suffix, Budget: domain.NewBudget(decimal.RequireFromString(buyerBudget))}
	require.NoError(t, clubRepo.Save(ctx, seller))
	require.NoError(t, clubRepo.Save(ctx, buyer))

	p := &domain.Player{
		ID:                 uuid.New(),
		Name:               "Player " + suffix,
		CurrentMarketValue: decimal.NewNullDecimal(decimal.RequireFromString(marketValue)),
	}
	p.MoveTo(seller.ID)
	require.NoError(t, playerRepo.Save(ctx, p))

	return fixture{seller: seller.ID, buyer: buyer.ID, player: p.ID}
}

func call(ctx context.Context, method string, fields map[string]interface{}) (map[string]interface{}, error) {
	req, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}
	resp, err := grpcClient.Call(ctx, method, req)
	if err != nil {
		return nil, err
	}
	return resp.AsMap(), nil
}

// getAuthContext returns a context with authorization metadata
func getAuthContext() context.Context {
	token := os.Getenv("API_TOKEN")
	if token == "" {
		token = "dev-token"
	}
	md := metadata.New(map[string]string{
		"authorization": token,
	})
	return metadata.NewOutgoingContext(context.Background(), md)
}

// getDBConnectionString returns the database connection string from environment or defaults
func getDBConnectionString() string {
	connStr := os.Getenv("DB_CONN_STR")
	if connStr != "" {
		return connStr
	}

	host := os.Getenv("DB_HOST")
	if host == "" {
		host = "localhost"
	}

	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}

	user := os.Getenv("DB_USER")
	if user == "" {
		user = "postgres"
	}

	password := os.Getenv("DB_PASSWORD")
	if password == "" {
		password = "postgres"
	}

	dbname := os.Getenv("DB_NAME")
	if dbname == "" {
		dbname = "transfermarket"
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)
}

// getGRPCAddress returns the gRPC server address from environment or default
func getGRPCAddress() string {
	addr := os.Getenv("GRPC_ADDRESS")
	if addr == "" {
		addr = "localhost:8080"
	}
	return addr
}

// TestEndToEndTransfer drives a transfer from DRAFT to COMPLETED and checks the stored budgets
func TestEndToEndTransfer(t *testing.T) {
	ctx := getAuthContext()
	f := setupFixture(t, "1000000", "2000000", "500000")

	// Step 1: Initiate
	initiated, err := call(ctx, "InitiateTransfer", map[string]interface{}{
		"player_id":    f.player.String(),
		"from_club_id": f.seller.String(),
		"to_club_id":   f.buyer.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, "500000", initiated["estimated_fee"])
	transferID := initiated["transfer"].(map[string]interface{})["id"].(string)

	// Step 2: Walk the workflow
	for _, method := range []string{"SubmitTransfer", "NegotiateTransfer", "ApproveTransfer"} {
		_, err := call(ctx, method, map[string]interface{}{"id": transferID})
		require.NoError(t, err, method)
	}

	// Step 3: Complete
	completed, err := call(ctx, "CompleteTransfer", map[string]interface{}{"id": transferID})
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", completed["transfer"].(map[string]interface{})["status"])

	// Step 4: Verify persisted state
	clubRepo := postgres.NewClubRepository(db)
	playerRepo := postgres.NewPlayerRepository(db)

	buyer, err := clubRepo.GetByID(context.Background(), f.buyer)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1500000).Equal(buyer.Budget.Decimal), "buyer budget: %s", buyer.Budget.Decimal)

	seller, err := clubRepo.GetByID(context.Background(), f.seller)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1500000).Equal(seller.Budget.Decimal), "seller budget: %s", seller.Budget.Decimal)

	p, err := playerRepo.GetByID(context.Background(), f.player)
	require.NoError(t, err)
	assert.Equal(t, f.buyer, p.CurrentClubID.UUID)

	// Step 5: A completed transfer cannot be cancelled
	_, err = call(ctx, "CancelTransfer", map[string]interface{}{"id": transferID})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
}

// TestActiveTransferUniqueness checks that a player never has two active transfers, even under concurrent submits
func TestActiveTransferUniqueness(t *testing.T) {
	ctx := getAuthContext()
	f := setupFixture(t, "1000000", "9000000", "250000")

	// Several DRAFTs for the same player are allowed
	const drafts = 4
	req := map[string]interface{}{
		"player_id":    f.player.String(),
		"from_club_id": f.seller.String(),
		"to_club_id":   f.buyer.String(),
	}
	ids := make([]string, 0, drafts)
	for i := 0; i < drafts; i++ {
		resp, err := call(ctx, "InitiateTransfer", req)
		require.NoError(t, err)
		ids = append(ids, resp["transfer"].(map[string]interface{})["id"].(string))
	}

	// Only one of them may become active
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := call(ctx, "SubmitTransfer", map[string]interface{}{"id": id})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
			} else if status.Code(err) == codes.FailedPrecondition {
				conflicts++
			}
		}(id)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, drafts-1, conflicts)

	// With an active transfer in place, initiation is rejected up front
	_, err := call(ctx, "InitiateTransfer", req)
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
}

// TestConcurrentCompletion checks that an approved transfer moves money exactly once
func TestConcurrentCompletion(t *testing.T) {
	ctx := getAuthContext()
	f := setupFixture(t, "0", "1000000", "400000")

	initiated, err := call(ctx, "InitiateTransfer", map[string]interface{}{
		"player_id":    f.player.String(),
		"from_club_id": f.seller.String(),
		"to_club_id":   f.buyer.String(),
	})
	require.NoError(t, err)
	transferID := initiated["transfer"].(map[string]interface{})["id"].(string)

	for _, method := range []string{"SubmitTransfer", "NegotiateTransfer", "ApproveTransfer"} {
		_, err := call(ctx, method, map[string]interface{}{"id": transferID})
		require.NoError(t, err, method)
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = call(ctx, "CompleteTransfer", map[string]interface{}{"id": transferID})
		}()
	}
	wg.Wait()

	seller, err := postgres.NewClubRepository(db).GetByID(context.Background(), f.seller)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(400000).Equal(seller.Budget.Decimal), "seller budget: %s", seller.Budget.Decimal)
}

func TestUnauthenticatedCallRejected(t *testing.T) {
	_, err := call(context.Background(), "ListClubs", nil)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}
