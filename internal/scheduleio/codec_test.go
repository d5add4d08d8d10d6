package scheduleio

import (
	"errors"
	"testing"

	"github.com/jaeyoung-oh/parkrate/internal/entity"
)

const validDoc = `{
  "basic_fee": {"duration_minutes": 30, "fee": 1000},
  "additional_fee": {"interval_minutes": 10, "fee": 500},
  "daily_max_fee": {"max_fee": 10000}
}`

func TestDecodeSchedule_Valid(t *testing.T) {
	s, err := DecodeSchedule([]byte(validDoc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Basic.DurationMinutes != 30 || s.Basic.Fee != 1000 {
		t.Fatalf("basic fee lost: %+v", s.Basic)
	}
	if s.Additional.IntervalMinutes != 10 || s.Additional.Fee != 500 {
		t.Fatalf("additional fee lost: %+v", s.Additional)
	}
	if s.DailyMax == nil || s.DailyMax.MaxFee != 10000 {
		t.Fatalf("daily max lost: %+v", s.DailyMax)
	}
}

func TestDecodeSchedule_WithCustomRows(t *testing.T) {
	doc := `{
	  "basic_fee": {"duration_minutes": 30, "fee": 1000},
	  "additional_fee": {"interval_minutes": 10, "fee": 500},
	  "custom_fee_rules": [
	    {"min_minutes": 0, "max_minutes": 30, "unit_minutes": 30, "fee": 1000, "is_fixed_fee": true},
	    {"min_minutes": 30, "max_minutes": null, "unit_minutes": 10, "fee": 500}
	  ]
	}`
	s, err := DecodeSchedule([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.CustomRows) != 2 {
		t.Fatalf("expected 2 rows, got %+v", s.CustomRows)
	}
	if !s.CustomRows[0].FixedFee || s.CustomRows[1].EndMinutes != nil {
		t.Fatalf("row shape lost: %+v", s.CustomRows)
	}
}

func TestDecodeSchedule_Rejections(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"not json", `{`},
		{"unknown field", `{
		  "basic_fee": {"duration_minutes": 30, "fee": 1000},
		  "additional_fee": {"interval_minutes": 10, "fee": 500},
		  "surcharge": 100
		}`},
		{"missing additional fee", `{
		  "basic_fee": {"duration_minutes": 30, "fee": 1000}
		}`},
		{"negative fee", `{
		  "basic_fee": {"duration_minutes": 30, "fee": -1},
		  "additional_fee": {"interval_minutes": 10, "fee": 500}
		}`},
		{"fractional minutes", `{
		  "basic_fee": {"duration_minutes": 30.5, "fee": 1000},
		  "additional_fee": {"interval_minutes": 10, "fee": 500}
		}`},
		// Shape passes the schema but the chain breaks the model
		// invariant: the interior row is unbounded.
		{"broken chain", `{
		  "basic_fee": {"duration_minutes": 30, "fee": 1000},
		  "additional_fee": {"interval_minutes": 10, "fee": 500},
		  "custom_fee_rules": [
		    {"min_minutes": 0, "max_minutes": null, "unit_minutes": 10, "fee": 500},
		    {"min_minutes": 30, "max_minutes": null, "unit_minutes": 10, "fee": 500}
		  ]
		}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeSchedule([]byte(tc.doc)); !errors.Is(err, entity.ErrInvalidSchedule) {
				t.Fatalf("expected ErrInvalidSchedule, got %v", err)
			}
		})
	}
}

func TestEncodeDecodeSchedule_RoundTrip(t *testing.T) {
	end := 30
	s, err := entity.NewFeeStructure(
		entity.BasicFeeRule{DurationMinutes: 30, Fee: 1000},
		entity.AdditionalFeeRule{IntervalMinutes: 10, Fee: 500},
		&entity.DailyMaxFeeRule{MaxFee: 10000},
		[]entity.FeeRow{
			{StartMinutes: 0, EndMinutes: &end, UnitMinutes: 30, Fee: 1000, FixedFee: true},
			{StartMinutes: 30, UnitMinutes: 10, Fee: 500},
		},
	)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	data, err := EncodeSchedule(s)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeSchedule(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.DailyMax == nil || got.DailyMax.MaxFee != 10000 {
		t.Fatalf("daily max lost in round trip: %+v", got.DailyMax)
	}
	if len(got.CustomRows) != 2 || *got.CustomRows[0].EndMinutes != 30 {
		t.Fatalf("rows lost in round trip: %+v", got.CustomRows)
	}
}

func TestEncodeDecodeRows(t *testing.T) {
	end := 60
	rows := []entity.FeeRow{
		{StartMinutes: 0, EndMinutes: &end, UnitMinutes: 10, Fee: 1000},
		{StartMinutes: 60, UnitMinutes: 10, Fee: 500},
	}
	data, err := EncodeRows(rows)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeRows(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 || *got[0].EndMinutes != 60 || got[1].EndMinutes != nil {
		t.Fatalf("rows lost: %+v", got)
	}
}

func TestEncodeRows_BrokenChainRejected(t *testing.T) {
	rows := []entity.FeeRow{{StartMinutes: 10, UnitMinutes: 10, Fee: 100}}
	if _, err := EncodeRows(rows); !errors.Is(err, entity.ErrInvalidSchedule) {
		t.Fatalf("expected ErrInvalidSchedule, got %v", err)
	}
}

func TestDecodeRows_EmptyColumn(t *testing.T) {
	for _, data := range [][]byte{nil, []byte(""), []byte("  ")} {
		got, err := DecodeRows(data)
		if err != nil {
			t.Fatalf("empty column: %v", err)
		}
		if got != nil {
			t.Fatalf("expected nil chain, got %+v", got)
		}
	}
}
