package entity

import (
	"errors"
	"testing"
)

func validBasic() (BasicFeeRule, AdditionalFeeRule) {
	return BasicFeeRule{DurationMinutes: 30, Fee: 1000},
		AdditionalFeeRule{IntervalMinutes: 10, Fee: 500}
}

func TestNewFeeStructure_Valid(t *testing.T) {
	basic, add := validBasic()
	s, err := NewFeeStructure(basic, add, &DailyMaxFeeRule{MaxFee: 10000}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Basic.Fee != 1000 || s.DailyMax.MaxFee != 10000 {
		t.Fatalf("fields lost: %+v", s)
	}
}

func TestNewFeeStructure_Rejections(t *testing.T) {
	basic, add := validBasic()
	cases := []struct {
		name     string
		basic    BasicFeeRule
		add      AdditionalFeeRule
		dailyMax *DailyMaxFeeRule
	}{
		{"zero basic duration", BasicFeeRule{DurationMinutes: 0, Fee: 1000}, add, nil},
		{"negative basic duration", BasicFeeRule{DurationMinutes: -30, Fee: 1000}, add, nil},
		{"negative basic fee", BasicFeeRule{DurationMinutes: 30, Fee: -1}, add, nil},
		{"zero additional interval", basic, AdditionalFeeRule{IntervalMinutes: 0, Fee: 500}, nil},
		{"negative additional fee", basic, AdditionalFeeRule{IntervalMinutes: 10, Fee: -500}, nil},
		{"negative daily max", basic, add, &DailyMaxFeeRule{MaxFee: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewFeeStructure(tc.basic, tc.add, tc.dailyMax, nil)
			if !errors.Is(err, ErrInvalidSchedule) {
				t.Fatalf("expected ErrInvalidSchedule, got %v", err)
			}
		})
	}
}

func TestValidateChain(t *testing.T) {
	e30, e60 := 30, 60
	valid := []FeeRow{
		{StartMinutes: 0, EndMinutes: &e30, UnitMinutes: 30, Fee: 1000, FixedFee: true},
		{StartMinutes: 30, EndMinutes: &e60, UnitMinutes: 10, Fee: 500},
		{StartMinutes: 60, UnitMinutes: 10, Fee: 300},
	}
	if err := ValidateChain(valid); err != nil {
		t.Fatalf("valid chain rejected: %v", err)
	}

	cases := []struct {
		name string
		rows []FeeRow
	}{
		{"empty", nil},
		{"first not at zero", []FeeRow{
			{StartMinutes: 10, UnitMinutes: 10, Fee: 100},
		}},
		{"gap between segments", []FeeRow{
			{StartMinutes: 0, EndMinutes: &e30, UnitMinutes: 10, Fee: 100},
			{StartMinutes: 40, UnitMinutes: 10, Fee: 100},
		}},
		{"interior unbounded", []FeeRow{
			{StartMinutes: 0, UnitMinutes: 10, Fee: 100},
			{StartMinutes: 30, UnitMinutes: 10, Fee: 100},
		}},
		{"bounded last", []FeeRow{
			{StartMinutes: 0, EndMinutes: &e30, UnitMinutes: 10, Fee: 100},
		}},
		{"end not after start", []FeeRow{
			{StartMinutes: 30, EndMinutes: &e30, UnitMinutes: 10, Fee: 100},
		}},
		{"zero unit", []FeeRow{
			{StartMinutes: 0, UnitMinutes: 0, Fee: 100},
		}},
		{"negative fee", []FeeRow{
			{StartMinutes: 0, UnitMinutes: 10, Fee: -100},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := ValidateChain(tc.rows); !errors.Is(err, ErrInvalidSchedule) {
				t.Fatalf("expected ErrInvalidSchedule, got %v", err)
			}
		})
	}
}

func TestCloneRows_DeepCopiesEnds(t *testing.T) {
	e := 30
	in := []FeeRow{{StartMinutes: 0, EndMinutes: &e, UnitMinutes: 10, Fee: 100}}
	out := CloneRows(in)
	*out[0].EndMinutes = 99
	if *in[0].EndMinutes != 30 {
		t.Fatalf("clone shares end pointer: %d", *in[0].EndMinutes)
	}
}
