package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpcadapter "github.com/simaogato/transfermarket-backend/internal/adapter/grpc"
	"github.com/simaogato/transfermarket-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/transfermarket-backend/internal/config"
	"github.com/simaogato/transfermarket-backend/internal/usecase/club"
	"github.com/simaogato/transfermarket-backend/internal/usecase/feecalc"
	"github.com/simaogato/transfermarket-backend/internal/usecase/player"
	"github.com/simaogato/transfermarket-backend/internal/usecase/seeder"
	"github.com/simaogato/transfermarket-backend/internal/usecase/transfer"
	"github.com/simaogato/transfermarket-backend/internal/usecase/workflow"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}

	log := cfg.Log.NewLogger()
	log.WithField("environment", cfg.Environment).Info("Starting transfer market server")

	// 2. Setup Database
	db, err := postgres.NewDB(cfg.Database.DSN(), postgres.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnectTimeout:  cfg.Database.ConnectTimeout,
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.Migrate(ctx); err != nil {
		log.WithError(err).Fatal("Failed to apply database schema")
	}

	// 3. Initialize Repositories (Postgres)
	clubRepo := postgres.NewClubRepository(db)
	playerRepo := postgres.NewPlayerRepository(db)
	transferRepo := postgres.NewTransferRepository(db)
	txManager := postgres.NewTxManager(db)

	// 4. Initialize Services (Use Cases)
	engine := workflow.NewEngine(transferRepo)
	calculator := feecalc.NewCalculator()
	transferService := transfer.NewTransferService(transferRepo, playerRepo, clubRepo, txManager, engine, calculator)
	playerService := player.NewPlayerService(playerRepo, clubRepo)
	clubService := club.NewClubService(clubRepo)

	if cfg.SeedData {
		dataSeeder := seeder.NewDataSeeder(clubRepo, playerRepo, log)
		if err := dataSeeder.Seed(ctx); err != nil {
			log.WithError(err).Fatal("Failed to seed sample data")
		}
	}

	// 5. Start gRPC Server
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			grpcadapter.LoggingInterceptor(log),
			grpcadapter.AuthInterceptor(cfg.Server.APIToken),
		),
	)

	grpcAdapter := grpcadapter.NewServer(transferService, playerService, clubService)
	grpcadapter.RegisterTransferMarketServer(grpcServer, grpcAdapter)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(grpcadapter.ServiceName, healthpb.HealthCheckResponse_SERVING)

	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		log.WithError(err).Fatalf("Failed to listen on %s", cfg.Server.Addr)
	}

	// Start server in a goroutine
	go func() {
		log.Infof("gRPC server listening on %s", cfg.Server.Addr)
		if err := grpcServer.Serve(lis); err != nil {
			log.WithError(err).Fatal("Failed to serve gRPC server")
		}
	}()

	// Graceful shutdown
	waitForShutdown(grpcServer, healthServer, log)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(grpcServer *grpclib.Server, healthServer *health.Server, log logrus.FieldLogger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Infof("Received signal: %v. Shutting down gracefully...", sig)

	healthServer.Shutdown()
	grpcServer.GracefulStop()
	log.Info("gRPC server stopped")
}
