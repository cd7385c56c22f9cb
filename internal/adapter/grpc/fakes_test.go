package grpc

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/simaogato/transfermarket-backend/internal/domain"
)

// memStore is an in-memory backing store for the repository interfaces
type memStore struct {
	mu        sync.Mutex
	clubs     map[uuid.UUID]domain.Club
	players   map[uuid.UUID]domain.Player
	transfers map[uuid.UUID]domain.Transfer
}

func newMemStore() *memStore {
	return &memStore{
		clubs:     make(map[uuid.UUID]domain.Club),
		players:   make(map[uuid.UUID]domain.Player),
		transfers: make(map[uuid.UUID]domain.Transfer),
	}
}

// WithinTx snapshots the store and restores it when fn fails
func (m *memStore) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	clubs := copyMap(m.clubs)
	players := copyMap(m.players)
	transfers := copyMap(m.transfers)
	m.mu.Unlock()

	if err := fn(ctx); err != nil {
		m.mu.Lock()
		m.clubs, m.players, m.transfers = clubs, players, transfers
		m.mu.Unlock()
		return err
	}
	return nil
}

func copyMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

type memClubRepo struct{ *memStore }

func (r memClubRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Club, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clubs[id]
	if !ok {
		return nil, domain.NewNotFoundError("club", id)
	}
	return &c, nil
}

func (r memClubRepo) GetByName(_ context.Context, name string) (*domain.Club, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clubs {
		if c.Name == name {
			return &c, nil
		}
	}
	return nil, fmt.Errorf("club %q: %w", name, domain.ErrNotFound)
}

func (r memClubRepo) Save(_ context.Context, club *domain.Club) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clubs[club.ID] = *club
	return nil
}

func (r memClubRepo) List(_ context.Context) ([]*domain.Club, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Club
	for _, c := range r.clubs {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r memClubRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.players {
		if p.CurrentClubID.Valid && p.CurrentClubID.UUID == id {
			return fmt.Errorf("%w: club %s still has players", domain.ErrStateConflict, id)
		}
	}
	delete(r.clubs, id)
	return nil
}

type memPlayerRepo struct{ *memStore }

func (r memPlayerRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[id]
	if !ok {
		return nil, domain.NewNotFoundError("player", id)
	}
	return &p, nil
}

func (r memPlayerRepo) GetByName(_ context.Context, name string) (*domain.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.players {
		if p.Name == name {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("player %q: %w", name, domain.ErrNotFound)
}

func (r memPlayerRepo) Save(_ context.Context, player *domain.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players[player.ID] = *player
	return nil
}

func (r memPlayerRepo) List(_ context.Context) ([]*domain.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Player
	for _, p := range r.players {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r memPlayerRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.players, id)
	return nil
}

type memTransferRepo struct{ *memStore }

func (r memTransferRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Transfer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.transfers[id]
	if !ok {
		return nil, domain.NewNotFoundError("transfer", id)
	}
	return &t, nil
}

func (r memTransferRepo) Save(_ context.Context, transfer *domain.Transfer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transfers[transfer.ID] = *transfer
	return nil
}

func (r memTransferRepo) ExistsActiveForPlayer(_ context.Context, playerID uuid.UUID, statuses []domain.TransferStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.transfers {
		if t.PlayerID != playerID {
			continue
		}
		for _, s := range statuses {
			if t.Status == s {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r memTransferRepo) List(_ context.Context) ([]*domain.Transfer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Transfer
	for _, t := range r.transfers {
		t := t
		out = append(out, &t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InitiatedAt.After(out[j].InitiatedAt) })
	return out, nil
}
