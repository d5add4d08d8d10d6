package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jaeyoung-oh/parkrate/internal/common"
	"github.com/jaeyoung-oh/parkrate/internal/entity"
	"github.com/jaeyoung-oh/parkrate/internal/scheduleio"
)

// LotRepository persists lots and their fee schedule snapshots.
// Schedules replace wholesale; there is no partial update.
type LotRepository interface {
	CreateLot(ctx context.Context, name string, isPublic bool, freeMinutes int) (*entity.ParkingLot, error)
	GetLot(ctx context.Context, id uuid.UUID) (*entity.ParkingLot, error)
	ListLots(ctx context.Context) ([]*entity.ParkingLot, error)
	SaveSchedule(ctx context.Context, lotID uuid.UUID, s *entity.FeeStructure) error
	GetSchedule(ctx context.Context, lotID uuid.UUID) (*entity.FeeStructure, error)
}

type lotRepository struct {
	db     *DB
	logger *slog.Logger
}

func NewLotRepository(db *DB, logger *slog.Logger) LotRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &lotRepository{db: db, logger: logger}
}

func (r *lotRepository) CreateLot(ctx context.Context, name string, isPublic bool, freeMinutes int) (*entity.ParkingLot, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: lot name is required", common.ErrInvalidInput)
	}
	if freeMinutes < 0 {
		return nil, fmt.Errorf("%w: free minutes must be non-negative", common.ErrInvalidInput)
	}
	now := time.Now().UTC()
	lot := &entity.ParkingLot{
		ID:          uuid.New(),
		Name:        name,
		IsPublic:    isPublic,
		FreeMinutes: freeMinutes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	q := r.db.rebind(`INSERT INTO parking_lot (id, name, is_public, free_minutes, created_at_ms, updated_at_ms)
		VALUES (?, ?, ?, ?, ?, ?)`)
	_, err := r.db.SQL.ExecContext(ctx, q,
		lot.ID.String(), lot.Name, boolToInt(lot.IsPublic), lot.FreeMinutes,
		now.UnixMilli(), now.UnixMilli())
	if err != nil {
		r.logger.Error("failed to create lot", "name", name, "error", err)
		return nil, fmt.Errorf("%w: %v", common.ErrDatabase, err)
	}
	return lot, nil
}

func (r *lotRepository) GetLot(ctx context.Context, id uuid.UUID) (*entity.ParkingLot, error) {
	q := r.db.rebind(`SELECT id, name, is_public, free_minutes, created_at_ms, updated_at_ms
		FROM parking_lot WHERE id = ?`)
	return scanLot(r.db.SQL.QueryRowContext(ctx, q, id.String()))
}

func (r *lotRepository) ListLots(ctx context.Context) ([]*entity.ParkingLot, error) {
	q := `SELECT id, name, is_public, free_minutes, created_at_ms, updated_at_ms
		FROM parking_lot ORDER BY created_at_ms`
	rows, err := r.db.SQL.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDatabase, err)
	}
	defer rows.Close()

	var lots []*entity.ParkingLot
	for rows.Next() {
		lot, err := scanLot(rows)
		if err != nil {
			return nil, err
		}
		lots = append(lots, lot)
	}
	return lots, rows.Err()
}

func (r *lotRepository) SaveSchedule(ctx context.Context, lotID uuid.UUID, s *entity.FeeStructure) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if _, err := r.GetLot(ctx, lotID); err != nil {
		return err
	}
	rowsJSON, err := scheduleio.EncodeRows(s.CustomRows)
	if err != nil {
		return err
	}
	var dailyMax *int64
	if s.DailyMax != nil {
		dailyMax = &s.DailyMax.MaxFee
	}
	q := r.db.rebind(`INSERT INTO fee_schedule
		(lot_id, basic_duration_min, basic_fee, additional_interval_min, additional_fee, daily_max_fee, custom_rules, updated_at_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (lot_id) DO UPDATE SET
			basic_duration_min = excluded.basic_duration_min,
			basic_fee = excluded.basic_fee,
			additional_interval_min = excluded.additional_interval_min,
			additional_fee = excluded.additional_fee,
			daily_max_fee = excluded.daily_max_fee,
			custom_rules = excluded.custom_rules,
			updated_at_ms = excluded.updated_at_ms`)
	_, err = r.db.SQL.ExecContext(ctx, q,
		lotID.String(), s.Basic.DurationMinutes, s.Basic.Fee,
		s.Additional.IntervalMinutes, s.Additional.Fee,
		dailyMax, string(rowsJSON), time.Now().UTC().UnixMilli())
	if err != nil {
		r.logger.Error("failed to save schedule", "lot_id", lotID, "error", err)
		return fmt.Errorf("%w: %v", common.ErrDatabase, err)
	}
	r.logger.Info("schedule.saved", "lot_id", lotID.String(), "custom_rows", len(s.CustomRows))
	return nil
}

func (r *lotRepository) GetSchedule(ctx context.Context, lotID uuid.UUID) (*entity.FeeStructure, error) {
	q := r.db.rebind(`SELECT basic_duration_min, basic_fee, additional_interval_min, additional_fee, daily_max_fee, custom_rules
		FROM fee_schedule WHERE lot_id = ?`)
	var (
		s        entity.FeeStructure
		dailyMax sql.NullInt64
		rowsJSON string
	)
	err := r.db.SQL.QueryRowContext(ctx, q, lotID.String()).Scan(
		&s.Basic.DurationMinutes, &s.Basic.Fee,
		&s.Additional.IntervalMinutes, &s.Additional.Fee,
		&dailyMax, &rowsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: schedule for lot %s", common.ErrNotFound, lotID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDatabase, err)
	}
	if dailyMax.Valid {
		s.DailyMax = &entity.DailyMaxFeeRule{MaxFee: dailyMax.Int64}
	}
	if s.CustomRows, err = scheduleio.DecodeRows([]byte(rowsJSON)); err != nil {
		return nil, err
	}
	return &s, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLot(row rowScanner) (*entity.ParkingLot, error) {
	var (
		lot       entity.ParkingLot
		id        string
		isPublic  int
		createdMs int64
		updatedMs int64
	)
	err := row.Scan(&id, &lot.Name, &isPublic, &lot.FreeMinutes, &createdMs, &updatedMs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: parking lot", common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDatabase, err)
	}
	if lot.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDatabase, err)
	}
	lot.IsPublic = isPublic != 0
	lot.CreatedAt = time.UnixMilli(createdMs).UTC()
	lot.UpdatedAt = time.UnixMilli(updatedMs).UTC()
	return &lot, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
