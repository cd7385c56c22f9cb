package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/simaogato/transfermarket-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var transferColumns = []string{"id", "player_id", "from_club_id", "to_club_id", "status", "initiated_at", "updated_at"}

func newTestTransfer() *domain.Transfer {
	now := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Transfer{
		ID:          uuid.New(),
		PlayerID:    uuid.New(),
		FromClubID:  uuid.New(),
		ToClubID:    uuid.New(),
		Status:      domain.TransferStatusDraft,
		InitiatedAt: now,
		UpdatedAt:   now,
	}
}

func transferRow(rows *sqlmock.Rows, tr *domain.Transfer) *sqlmock.Rows {
	return rows.AddRow(
		tr.ID.String(),
		tr.PlayerID.String(),
		tr.FromClubID.String(),
		tr.ToClubID.String(),
		string(tr.Status),
		tr.InitiatedAt,
		tr.UpdatedAt,
	)
}

func TestTransferRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransferRepository(db)
	want := newTestTransfer()
	want.Status = domain.TransferStatusNegotiation

	mock.ExpectQuery(regexp.QuoteMeta("FROM transfers WHERE id = $1")).
		WithArgs(want.ID).
		WillReturnRows(transferRow(sqlmock.NewRows(transferColumns), want))

	got, err := repo.GetByID(context.Background(), want.ID)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransferRepository(db)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM transfers WHERE id = $1")).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	got, err := repo.GetByID(context.Background(), id)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "transfer not found with ID")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferRepository_Save(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransferRepository(db)
	tr := newTestTransfer()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO transfers")).
		WithArgs(tr.ID, tr.PlayerID, tr.FromClubID, tr.ToClubID, "DRAFT", tr.InitiatedAt, tr.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Save(context.Background(), tr))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferRepository_Save_SecondActiveTransfer(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransferRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO transfers")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "transfers_one_active_per_player"})

	err := repo.Save(context.Background(), newTestTransfer())
	assert.ErrorIs(t, err, domain.ErrStateConflict)
	assert.Contains(t, err.Error(), "transfers_one_active_per_player")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferRepository_ExistsActiveForPlayer(t *testing.T) {
	tests := []struct {
		name   string
		exists bool
	}{
		{name: "active transfer present", exists: true},
		{name: "no active transfer", exists: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewTransferRepository(db)
			playerID := uuid.New()

			mock.ExpectQuery(regexp.QuoteMeta("FROM transfers WHERE player_id = $1 AND status = ANY($2)")).
				WithArgs(playerID, pq.Array([]string{"SUBMITTED", "NEGOTIATION", "APPROVED"})).
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(tt.exists))

			got, err := repo.ExistsActiveForPlayer(context.Background(), playerID, domain.ActiveTransferStatuses)
			require.NoError(t, err)
			assert.Equal(t, tt.exists, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTransferRepository_ExistsActiveForPlayer_NoStatuses(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransferRepository(db)

	got, err := repo.ExistsActiveForPlayer(context.Background(), uuid.New(), nil)
	require.NoError(t, err)
	assert.False(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferRepository_ExistsActiveForPlayer_Error(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransferRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM transfers WHERE player_id")).
		WillReturnError(errors.New("timeout"))

	_, err := repo.ExistsActiveForPlayer(context.Background(), uuid.New(), domain.ActiveTransferStatuses)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to check active transfers")
}

func TestTransferRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransferRepository(db)
	newer := newTestTransfer()
	older := newTestTransfer()
	older.InitiatedAt = newer.InitiatedAt.Add(-time.Hour)
	older.Status = domain.TransferStatusCompleted

	rows := sqlmock.NewRows(transferColumns)
	transferRow(rows, newer)
	transferRow(rows, older)
	mock.ExpectQuery(regexp.QuoteMeta("FROM transfers ORDER BY initiated_at DESC")).
		WillReturnRows(rows)

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, newer.ID, got[0].ID)
	assert.Equal(t, domain.TransferStatusCompleted, got[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
