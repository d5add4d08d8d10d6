package ocrparse

import (
	"testing"

	"github.com/jaeyoung-oh/parkrate/internal/entity"
)

func newTestParser() *Parser {
	return NewParser(Config{}, nil)
}

func intPtr(n int) *int { return &n }

func assertRow(t *testing.T, got entity.FeeRow, start int, end *int, unit int, fee int64, fixed bool) {
	t.Helper()
	if got.StartMinutes != start {
		t.Errorf("start: expected %d, got %d", start, got.StartMinutes)
	}
	if (end == nil) != (got.EndMinutes == nil) {
		t.Errorf("end nil-ness mismatch: expected %v, got %v", end, got.EndMinutes)
	} else if end != nil && *got.EndMinutes != *end {
		t.Errorf("end: expected %d, got %d", *end, *got.EndMinutes)
	}
	if got.UnitMinutes != unit {
		t.Errorf("unit: expected %d, got %d", unit, got.UnitMinutes)
	}
	if got.Fee != fee {
		t.Errorf("fee: expected %d, got %d", fee, got.Fee)
	}
	if got.FixedFee != fixed {
		t.Errorf("fixed: expected %t, got %t", fixed, got.FixedFee)
	}
}

func TestParse_FullSign(t *testing.T) {
	res := newTestParser().Parse("최초 30분 1000원\n추가 10분 500원\n일 최대 10000원", nil)

	if !res.Success {
		t.Fatal("expected success")
	}
	if len(res.FeeRows) != 2 {
		t.Fatalf("expected 2 rows, got %d: %+v", len(res.FeeRows), res.FeeRows)
	}
	assertRow(t, res.FeeRows[0], 0, intPtr(30), 30, 1000, true)
	assertRow(t, res.FeeRows[1], 30, nil, 10, 500, false)
	if res.DailyMaxFee == nil || *res.DailyMaxFee != 10000 {
		t.Fatalf("expected daily max 10000, got %v", res.DailyMaxFee)
	}
}

func TestParse_BlankText(t *testing.T) {
	for _, text := range []string{"", "   ", "\n \n"} {
		res := newTestParser().Parse(text, nil)
		if res.Success {
			t.Errorf("blank %q: expected failure", text)
		}
		if len(res.FeeRows) != 0 {
			t.Errorf("blank %q: expected no rows", text)
		}
		if res.DailyMaxFee != nil {
			t.Errorf("blank %q: expected nil daily max", text)
		}
	}
}

func TestParse_NoRecognizableTokens(t *testing.T) {
	res := newTestParser().Parse("주차장 안내", nil)
	if res.Success {
		t.Fatal("expected failure")
	}
	if len(res.FeeRows) != 0 || res.DailyMaxFee != nil {
		t.Fatalf("expected empty result, got %+v", res)
	}
}

func TestParse_HoursConvertToMinutes(t *testing.T) {
	res := newTestParser().Parse("기본 1시간 2000원", nil)
	if !res.Success || len(res.FeeRows) != 1 {
		t.Fatalf("expected one row, got %+v", res)
	}
	assertRow(t, res.FeeRows[0], 0, intPtr(60), 60, 2000, true)
}

func TestParse_GroupedThousands(t *testing.T) {
	res := newTestParser().Parse("최초 30분 1,000원", nil)
	if !res.Success || len(res.FeeRows) != 1 {
		t.Fatalf("expected one row, got %+v", res)
	}
	if res.FeeRows[0].Fee != 1000 {
		t.Fatalf("expected fee 1000, got %d", res.FeeRows[0].Fee)
	}
}

func TestParse_BareAmountAssumesBaseDuration(t *testing.T) {
	res := newTestParser().Parse("주차 1000원", nil)
	if !res.Success || len(res.FeeRows) != 1 {
		t.Fatalf("expected one row, got %+v", res)
	}
	assertRow(t, res.FeeRows[0], 0, nil, 30, 1000, false)
}

func TestParse_SameLinePairingBeatsGeometry(t *testing.T) {
	// The 2000원 fragment sits within the 50px window of the 30분 token,
	// but the same-line 1000원 must win.
	lines := []RecognizedLine{
		{Text: "30분", YCenter: intPtr(100)},
		{Text: "2000원", YCenter: intPtr(105)},
	}
	res := newTestParser().Parse("30분 1000원\n2000원", lines)
	if !res.Success || len(res.FeeRows) == 0 {
		t.Fatalf("expected rows, got %+v", res)
	}
	if res.FeeRows[0].Fee != 1000 || res.FeeRows[0].UnitMinutes != 30 {
		t.Fatalf("same-line pair lost: %+v", res.FeeRows[0])
	}
}

func TestParse_GeometryPairsAcrossLines(t *testing.T) {
	lines := []RecognizedLine{
		{Text: "2시간", YCenter: intPtr(200)},
		{Text: "3000원", YCenter: intPtr(210)},
	}
	res := newTestParser().Parse("2시간\n3000원", lines)
	if !res.Success || len(res.FeeRows) != 1 {
		t.Fatalf("expected one row, got %+v", res)
	}
	assertRow(t, res.FeeRows[0], 0, nil, 120, 3000, false)
}

func TestParse_GeometryBeyondThresholdDoesNotPair(t *testing.T) {
	lines := []RecognizedLine{
		{Text: "2시간", YCenter: intPtr(100)},
		{Text: "3000원", YCenter: intPtr(200)},
	}
	res := newTestParser().Parse("2시간\n3000원", lines)
	// The time token drops; the amount survives via the flat-fee fallback.
	if !res.Success || len(res.FeeRows) != 1 {
		t.Fatalf("expected one row, got %+v", res)
	}
	assertRow(t, res.FeeRows[0], 0, nil, 30, 3000, false)
}

func TestParse_NoGeometryNoCrossLinePairing(t *testing.T) {
	res := newTestParser().Parse("2시간\n3000원", nil)
	if len(res.FeeRows) != 1 {
		t.Fatalf("expected one fallback row, got %+v", res)
	}
	assertRow(t, res.FeeRows[0], 0, nil, 30, 3000, false)
}

func TestParse_DailyMaxTemplates(t *testing.T) {
	cases := []struct {
		name string
		text string
		want int64
	}{
		{"day word before amount", "최초 30분 1000원\n하루 최대 10,000원", 10000},
		{"amount before day word", "최초 30분 1000원\n10000원 하루 최대", 10000},
		{"fee infix", "최초 30분 1000원\n1일 최대 요금 12000원", 12000},
		{"24 hours", "최초 30분 1000원\n24시간 15000원", 15000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := newTestParser().Parse(tc.text, nil)
			if res.DailyMaxFee == nil || *res.DailyMaxFee != tc.want {
				t.Fatalf("expected daily max %d, got %v", tc.want, res.DailyMaxFee)
			}
			for _, row := range res.FeeRows {
				if row.Fee == tc.want {
					t.Fatalf("daily max pair leaked into rows: %+v", res.FeeRows)
				}
			}
		})
	}
}

func TestParse_DailyMaxFromKeywordPair(t *testing.T) {
	// No literal template matches; the day-scope tag on the bare amount
	// carries the detection.
	res := newTestParser().Parse("종일 주차 10000원", nil)
	if res.DailyMaxFee == nil || *res.DailyMaxFee != 10000 {
		t.Fatalf("expected daily max 10000, got %v", res.DailyMaxFee)
	}
	if len(res.FeeRows) != 0 || res.Success {
		t.Fatalf("cap-only sign yields no rows: %+v", res)
	}
}

func TestParse_BareMaxNearHourlyRateIsNotDailyMax(t *testing.T) {
	res := newTestParser().Parse("최대 60분 2000원", nil)
	if res.DailyMaxFee != nil {
		t.Fatalf("hourly rate near 최대 mistaken for cap: %v", *res.DailyMaxFee)
	}
	if !res.Success || len(res.FeeRows) != 1 {
		t.Fatalf("expected one metered row, got %+v", res)
	}
	assertRow(t, res.FeeRows[0], 0, nil, 60, 2000, false)
}

func TestParse_FirstDailyMaxMentionWins(t *testing.T) {
	res := newTestParser().Parse("하루 최대 10000원\n하루 최대 20000원", nil)
	if res.DailyMaxFee == nil || *res.DailyMaxFee != 10000 {
		t.Fatalf("expected first mention 10000, got %v", res.DailyMaxFee)
	}
}

func TestParse_ExcessRowChainsOffBaseRow(t *testing.T) {
	res := newTestParser().Parse("기본 60분 3000원\n초과 30분 1000원", nil)
	if len(res.FeeRows) != 2 {
		t.Fatalf("expected 2 rows, got %+v", res.FeeRows)
	}
	assertRow(t, res.FeeRows[0], 0, intPtr(60), 60, 3000, true)
	// Excess interval is rarely legible; the configured default applies.
	assertRow(t, res.FeeRows[1], 60, nil, 10, 1000, false)
}

func TestSegmentLines(t *testing.T) {
	got := segmentLines("  a \n\n b\n\n\nc ")
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
