package repository

import (
	"context"
	"fmt"
	"strings"
)

// DDL deliberately sticks to types both dialects share: TEXT ids,
// BIGINT epoch-millisecond timestamps, INTEGER 0/1 booleans. Custom fee
// rules persist as a JSON document in a TEXT column.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS parking_lot (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	is_public     INTEGER NOT NULL DEFAULT 0,
	free_minutes  INTEGER NOT NULL DEFAULT 0,
	created_at_ms BIGINT NOT NULL,
	updated_at_ms BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS fee_schedule (
	lot_id                  TEXT PRIMARY KEY REFERENCES parking_lot(id),
	basic_duration_min      INTEGER NOT NULL,
	basic_fee               BIGINT NOT NULL,
	additional_interval_min INTEGER NOT NULL,
	additional_fee          BIGINT NOT NULL,
	daily_max_fee           BIGINT,
	custom_rules            TEXT NOT NULL,
	updated_at_ms           BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS parking_session (
	id             TEXT PRIMARY KEY,
	lot_id         TEXT NOT NULL REFERENCES parking_lot(id),
	plate          TEXT NOT NULL,
	is_compact     INTEGER NOT NULL DEFAULT 0,
	entered_at_ms  BIGINT NOT NULL,
	exited_at_ms   BIGINT,
	original_fee   BIGINT,
	discounted_fee BIGINT,
	created_at_ms  BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_session_lot_entered ON parking_session (lot_id, entered_at_ms);
`

// EnsureSchema applies the DDL. Statements are idempotent.
func (d *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range strings.Split(schemaDDL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := d.SQL.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
