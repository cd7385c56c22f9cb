package seeder

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/transfermarket-backend/internal/domain"
	"github.com/sirupsen/logrus"
)

// SeedClub defines a club to be seeded
type SeedClub struct {
	Name   string
	Budget decimal.Decimal
}

// SeedPlayer defines a player to be seeded and the club it belongs to
type SeedPlayer struct {
	Name        string
	MarketValue decimal.Decimal
	ClubName    string
}

// DefaultClubs are the demo clubs
var DefaultClubs = []SeedClub{
	{Name: "Real Madrid CF", Budget: decimal.NewFromInt(600000000)},
	{Name: "FC Barcelona", Budget: decimal.NewFromInt(550000000)},
	{Name: "Manchester United FC", Budget: decimal.NewFromInt(700000000)},
	{Name: "Liverpool FC", Budget: decimal.NewFromInt(450000000)},
	{Name: "FC Bayern Munich", Budget: decimal.NewFromInt(500000000)},
}

// DefaultPlayers are the demo players, three per demo club
var DefaultPlayers = []SeedPlayer{
	{Name: "Vinícius Júnior", MarketValue: decimal.NewFromInt(150000000), ClubName: "Real Madrid CF"},
	{Name: "Jude Bellingham", MarketValue: decimal.NewFromInt(180000000), ClubName: "Real Madrid CF"},
	{Name: "Rodrygo Goes", MarketValue: decimal.NewFromInt(100000000), ClubName: "Real Madrid CF"},
	{Name: "Gavi", MarketValue: decimal.NewFromInt(90000000), ClubName: "FC Barcelona"},
	{Name: "Pedri", MarketValue: decimal.NewFromInt(100000000), ClubName: "FC Barcelona"},
	{Name: "Lamine Yamal", MarketValue: decimal.NewFromInt(75000000), ClubName: "FC Barcelona"},
	{Name: "Marcus Rashford", MarketValue: decimal.NewFromInt(80000000), ClubName: "Manchester United FC"},
	{Name: "Bruno Fernandes", MarketValue: decimal.NewFromInt(70000000), ClubName: "Manchester United FC"},
	{Name: "Rasmus Højlund", MarketValue: decimal.NewFromInt(65000000), ClubName: "Manchester United FC"},
	{Name: "Mohamed Salah", MarketValue: decimal.NewFromInt(65000000), ClubName: "Liverpool FC"},
	{Name: "Luis Díaz", MarketValue: decimal.NewFromInt(75000000), ClubName: "Liverpool FC"},
	{Name: "Darwin Núñez", MarketValue: decimal.NewFromInt(70000000), ClubName: "Liverpool FC"},
	{Name: "Jamal Musiala", MarketValue: decimal.NewFromInt(110000000), ClubName: "FC Bayern Munich"},
	{Name: "Harry Kane", MarketValue: decimal.NewFromInt(110000000), ClubName: "FC Bayern Munich"},
	{Name: "Leroy Sané", MarketValue: decimal.NewFromInt(80000000), ClubName: "FC Bayern Munich"},
}

// DataSeeder fills an empty database with demo clubs and players.
// Records are matched by name, so running it twice creates nothing new.
type DataSeeder struct {
	clubRepo   domain.ClubRepository
	playerRepo domain.PlayerRepository
	log        logrus.FieldLogger
	clubs      []SeedClub
	players    []SeedPlayer
}

// NewDataSeeder creates a new DataSeeder with the default demo data
func NewDataSeeder(clubRepo domain.ClubRepository, playerRepo domain.PlayerRepository, log logrus.FieldLogger) *DataSeeder {
	return &DataSeeder{
		clubRepo:   clubRepo,
		playerRepo: playerRepo,
		log:        log,
		clubs:      DefaultClubs,
		players:    DefaultPlayers,
	}
}

// Seed ensures all demo clubs and players exist
func (s *DataSeeder) Seed(ctx context.Context) error {
	s.log.Info("Starting data seeding")

	clubsByName, err := s.seedClubs(ctx)
	if err != nil {
		return err
	}

	if err := s.seedPlayers(ctx, clubsByName); err != nil {
		return err
	}

	s.log.Info("Data seeding finished")
	return nil
}

func (s *DataSeeder) seedClubs(ctx context.Context) (map[string]*domain.Club, error) {
	clubsByName := make(map[string]*domain.Club, len(s.clubs))
	created := 0

	for _, def := range s.clubs {
		existing, err := s.clubRepo.GetByName(ctx, def.Name)
		if err == nil {
			s.log.WithField("club", def.Name).Debug("Club already exists, skipping")
			clubsByName[def.Name] = existing
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up club %q: %w", def.Name, err)
		}

		club := &domain.Club{
			ID:     uuid.New(),
			Name:   def.Name,
			Budget: domain.NewBudget(def.Budget),
		}
		if err := club.Validate(); err != nil {
			return nil, err
		}
		if err := s.clubRepo.Save(ctx, club); err != nil {
			return nil, fmt.Errorf("failed to seed club %q: %w", def.Name, err)
		}

		s.log.WithFields(logrus.Fields{"club": club.Name, "budget": def.Budget.String()}).Debug("Seeded club")
		clubsByName[def.Name] = club
		created++
	}

	s.log.WithFields(logrus.Fields{
		"created":  created,
		"existing": len(s.clubs) - created,
	}).Info("Clubs seeded")
	return clubsByName, nil
}

func (s *DataSeeder) seedPlayers(ctx context.Context, clubsByName map[string]*domain.Club) error {
	created := 0

	for _, def := range s.players {
		_, err := s.playerRepo.GetByName(ctx, def.Name)
		if err == nil {
			s.log.WithField("player", def.Name).Debug("Player already exists, skipping")
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("failed to look up player %q: %w", def.Name, err)
		}

		player := &domain.Player{
			ID:                 uuid.New(),
			Name:               def.Name,
			CurrentMarketValue: domain.NewBudget(def.MarketValue),
		}
		if club, ok := clubsByName[def.ClubName]; ok {
			player.MoveTo(club.ID)
		} else {
			s.log.WithFields(logrus.Fields{"player": def.Name, "club": def.ClubName}).Warn("Club not found, seeding player as free agent")
		}

		if err := player.Validate(); err != nil {
			return err
		}
		if err := s.playerRepo.Save(ctx, player); err != nil {
			return fmt.Errorf("failed to seed player %q: %w", def.Name, err)
		}
		created++
	}

	s.log.WithFields(logrus.Fields{
		"created":  created,
		"existing": len(s.players) - created,
	}).Info("Players seeded")
	return nil
}
