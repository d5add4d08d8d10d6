package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jaeyoung-oh/parkrate/internal/billing"
	"github.com/jaeyoung-oh/parkrate/internal/common"
	"github.com/jaeyoung-oh/parkrate/internal/entity"
)

// SessionRepository persists vehicle stays. Billing amounts are written
// once, when the session closes.
type SessionRepository interface {
	StartSession(ctx context.Context, lotID uuid.UUID, plate string, compact bool, enteredAt time.Time) (*entity.ParkingSession, error)
	GetSession(ctx context.Context, id uuid.UUID) (*entity.ParkingSession, error)
	CloseSession(ctx context.Context, id uuid.UUID, exitedAt time.Time, fee billing.Result) (*entity.ParkingSession, error)
	ListSessions(ctx context.Context, lotID uuid.UUID, from, to *time.Time) ([]*entity.ParkingSession, error)
}

type sessionRepository struct {
	db     *DB
	logger *slog.Logger
}

func NewSessionRepository(db *DB, logger *slog.Logger) SessionRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &sessionRepository{db: db, logger: logger}
}

func (r *sessionRepository) StartSession(ctx context.Context, lotID uuid.UUID, plate string, compact bool, enteredAt time.Time) (*entity.ParkingSession, error) {
	if plate == "" {
		return nil, fmt.Errorf("%w: plate is required", common.ErrInvalidInput)
	}
	now := time.Now().UTC()
	s := &entity.ParkingSession{
		ID:         uuid.New(),
		LotID:      lotID,
		Plate:      plate,
		CompactCar: compact,
		EnteredAt:  enteredAt.UTC(),
		CreatedAt:  now,
	}
	q := r.db.rebind(`INSERT INTO parking_session (id, lot_id, plate, is_compact, entered_at_ms, created_at_ms)
		VALUES (?, ?, ?, ?, ?, ?)`)
	_, err := r.db.SQL.ExecContext(ctx, q,
		s.ID.String(), s.LotID.String(), s.Plate, boolToInt(s.CompactCar),
		s.EnteredAt.UnixMilli(), now.UnixMilli())
	if err != nil {
		r.logger.Error("failed to start session", "lot_id", lotID, "plate", plate, "error", err)
		return nil, fmt.Errorf("%w: %v", common.ErrDatabase, err)
	}
	return s, nil
}

func (r *sessionRepository) GetSession(ctx context.Context, id uuid.UUID) (*entity.ParkingSession, error) {
	q := r.db.rebind(sessionSelect + ` WHERE id = ?`)
	return scanSession(r.db.SQL.QueryRowContext(ctx, q, id.String()))
}

func (r *sessionRepository) CloseSession(ctx context.Context, id uuid.UUID, exitedAt time.Time, fee billing.Result) (*entity.ParkingSession, error) {
	q := r.db.rebind(`UPDATE parking_session
		SET exited_at_ms = ?, original_fee = ?, discounted_fee = ?
		WHERE id = ? AND exited_at_ms IS NULL`)
	res, err := r.db.SQL.ExecContext(ctx, q,
		exitedAt.UTC().UnixMilli(), fee.Original, fee.Discounted, id.String())
	if err != nil {
		r.logger.Error("failed to close session", "session_id", id, "error", err)
		return nil, fmt.Errorf("%w: %v", common.ErrDatabase, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDatabase, err)
	}
	if n == 0 {
		// Distinguish a missing session from one already closed.
		if _, err := r.GetSession(ctx, id); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: session %s already closed", common.ErrConflict, id)
	}
	return r.GetSession(ctx, id)
}

func (r *sessionRepository) ListSessions(ctx context.Context, lotID uuid.UUID, from, to *time.Time) ([]*entity.ParkingSession, error) {
	q := sessionSelect + ` WHERE lot_id = ?`
	args := []any{lotID.String()}
	if from != nil {
		q += ` AND entered_at_ms >= ?`
		args = append(args, from.UTC().UnixMilli())
	}
	if to != nil {
		q += ` AND entered_at_ms <= ?`
		args = append(args, to.UTC().UnixMilli())
	}
	q += ` ORDER BY entered_at_ms`

	rows, err := r.db.SQL.QueryContext(ctx, r.db.rebind(q), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDatabase, err)
	}
	defer rows.Close()

	var sessions []*entity.ParkingSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

const sessionSelect = `SELECT id, lot_id, plate, is_compact, entered_at_ms, exited_at_ms, original_fee, discounted_fee, created_at_ms
	FROM parking_session`

func scanSession(row rowScanner) (*entity.ParkingSession, error) {
	var (
		s          entity.ParkingSession
		id, lotID  string
		isCompact  int
		enteredMs  int64
		exitedMs   sql.NullInt64
		original   sql.NullInt64
		discounted sql.NullInt64
		createdMs  int64
	)
	err := row.Scan(&id, &lotID, &s.Plate, &isCompact, &enteredMs, &exitedMs, &original, &discounted, &createdMs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: parking session", common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDatabase, err)
	}
	if s.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDatabase, err)
	}
	if s.LotID, err = uuid.Parse(lotID); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDatabase, err)
	}
	s.CompactCar = isCompact != 0
	s.EnteredAt = time.UnixMilli(enteredMs).UTC()
	s.CreatedAt = time.UnixMilli(createdMs).UTC()
	if exitedMs.Valid {
		t := time.UnixMilli(exitedMs.Int64).UTC()
		s.ExitedAt = &t
	}
	if original.Valid {
		v := original.Int64
		s.OriginalFee = &v
	}
	if discounted.Valid {
		v := discounted.Int64
		s.DiscountedFee = &v
	}
	return &s, nil
}
