package entity

import (
	"errors"
	"fmt"
)

// ErrInvalidSchedule is the sentinel wrapped by every schedule validation
// failure. Callers branch on it with errors.Is.
var ErrInvalidSchedule = errors.New("invalid fee schedule")

// BasicFeeRule is the flat charge covering the first DurationMinutes of a
// stay, charged once for any stay.
type BasicFeeRule struct {
	DurationMinutes int   `json:"duration_minutes"`
	Fee             int64 `json:"fee"`
}

// AdditionalFeeRule is charged per full-or-partial interval beyond the
// basic duration. Any partial interval bills as a full one.
type AdditionalFeeRule struct {
	IntervalMinutes int   `json:"interval_minutes"`
	Fee             int64 `json:"fee"`
}

// DailyMaxFeeRule clamps the computed total.
type DailyMaxFeeRule struct {
	MaxFee int64 `json:"max_fee"`
}

// FeeRow is one segment of the custom billing chain. EndMinutes == nil
// means unbounded, legal only on the last row. When FixedFee is set the
// fee is charged once for the whole segment; otherwise per UnitMinutes
// elapsed within it.
type FeeRow struct {
	StartMinutes int   `json:"min_minutes"`
	EndMinutes   *int  `json:"max_minutes"`
	UnitMinutes  int   `json:"unit_minutes"`
	Fee          int64 `json:"fee"`
	FixedFee     bool  `json:"is_fixed_fee"`
}

// FeeStructure is an immutable snapshot of one lot's billing rules.
// Replaced wholesale on edit, never mutated in place.
type FeeStructure struct {
	Basic      BasicFeeRule       `json:"basic_fee"`
	Additional AdditionalFeeRule  `json:"additional_fee"`
	DailyMax   *DailyMaxFeeRule   `json:"daily_max_fee,omitempty"`
	CustomRows []FeeRow           `json:"custom_fee_rules,omitempty"`
}

// NewFeeStructure validates and returns a schedule snapshot.
func NewFeeStructure(basic BasicFeeRule, additional AdditionalFeeRule, dailyMax *DailyMaxFeeRule, rows []FeeRow) (*FeeStructure, error) {
	s := &FeeStructure{Basic: basic, Additional: additional, DailyMax: dailyMax, CustomRows: rows}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate rejects structurally impossible schedules. It is the only
// place rule shape is checked; the billing engine assumes a valid input.
func (s *FeeStructure) Validate() error {
	if s.Basic.DurationMinutes <= 0 {
		return fmt.Errorf("%w: basic fee duration must be positive, got %d", ErrInvalidSchedule, s.Basic.DurationMinutes)
	}
	if s.Basic.Fee < 0 {
		return fmt.Errorf("%w: basic fee must be non-negative, got %d", ErrInvalidSchedule, s.Basic.Fee)
	}
	if s.Additional.IntervalMinutes <= 0 {
		return fmt.Errorf("%w: additional fee interval must be positive, got %d", ErrInvalidSchedule, s.Additional.IntervalMinutes)
	}
	if s.Additional.Fee < 0 {
		return fmt.Errorf("%w: additional fee must be non-negative, got %d", ErrInvalidSchedule, s.Additional.Fee)
	}
	if s.DailyMax != nil && s.DailyMax.MaxFee < 0 {
		return fmt.Errorf("%w: daily max fee must be non-negative, got %d", ErrInvalidSchedule, s.DailyMax.MaxFee)
	}
	if len(s.CustomRows) > 0 {
		if err := ValidateChain(s.CustomRows); err != nil {
			return err
		}
	}
	return nil
}

// ValidateChain checks the segment-chain invariant: rows partition elapsed
// time into contiguous non-overlapping zones starting at 0, with exactly
// the last row unbounded.
func ValidateChain(rows []FeeRow) error {
	if len(rows) == 0 {
		return fmt.Errorf("%w: empty segment chain", ErrInvalidSchedule)
	}
	if rows[0].StartMinutes != 0 {
		return fmt.Errorf("%w: first segment must start at 0, got %d", ErrInvalidSchedule, rows[0].StartMinutes)
	}
	for i, r := range rows {
		if r.UnitMinutes <= 0 {
			return fmt.Errorf("%w: segment %d unit must be positive, got %d", ErrInvalidSchedule, i, r.UnitMinutes)
		}
		if r.Fee < 0 {
			return fmt.Errorf("%w: segment %d fee must be non-negative, got %d", ErrInvalidSchedule, i, r.Fee)
		}
		last := i == len(rows)-1
		if r.EndMinutes == nil {
			if !last {
				return fmt.Errorf("%w: segment %d is unbounded but not last", ErrInvalidSchedule, i)
			}
			continue
		}
		if *r.EndMinutes <= r.StartMinutes {
			return fmt.Errorf("%w: segment %d end %d not after start %d", ErrInvalidSchedule, i, *r.EndMinutes, r.StartMinutes)
		}
		if last {
			return fmt.Errorf("%w: last segment must be unbounded", ErrInvalidSchedule)
		}
		if rows[i+1].StartMinutes != *r.EndMinutes {
			return fmt.Errorf("%w: segment %d ends at %d but segment %d starts at %d", ErrInvalidSchedule, i, *r.EndMinutes, i+1, rows[i+1].StartMinutes)
		}
	}
	return nil
}

// CloneRows deep-copies a segment chain, including the end pointers.
func CloneRows(rows []FeeRow) []FeeRow {
	out := make([]FeeRow, len(rows))
	for i, r := range rows {
		out[i] = r
		if r.EndMinutes != nil {
			e := *r.EndMinutes
			out[i].EndMinutes = &e
		}
	}
	return out
}
