package postgres

import (
	"context"
	"fmt"
)

// schema creates the tables the repositories read and write.
// At most one transfer per player may sit in an active status.
const schema = `
CREATE TABLE IF NOT EXISTS clubs (
	id UUID PRIMARY KEY,
	name VARCHAR(255) NOT NULL UNIQUE,
	budget NUMERIC
);

CREATE TABLE IF NOT EXISTS players (
	id UUID PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	current_market_value NUMERIC,
	current_club_id UUID REFERENCES clubs (id)
);

CREATE TABLE IF NOT EXISTS transfers (
	id UUID PRIMARY KEY,
	player_id UUID NOT NULL REFERENCES players (id),
	from_club_id UUID NOT NULL REFERENCES clubs (id),
	to_club_id UUID NOT NULL REFERENCES clubs (id),
	status VARCHAR(32) NOT NULL,
	initiated_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	CHECK (from_club_id <> to_club_id)
);

CREATE UNIQUE INDEX IF NOT EXISTS transfers_one_active_per_player
	ON transfers (player_id)
	WHERE status IN ('SUBMITTED', 'NEGOTIATION', 'APPROVED');

CREATE INDEX IF NOT EXISTS transfers_initiated_at_idx ON transfers (initiated_at DESC);
`

// Migrate creates the schema when it does not exist yet
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
