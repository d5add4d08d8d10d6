// Package schedule edits the ordered fee-row chain while preserving its
// invariant: contiguous segments starting at 0, with exactly the last
// one unbounded. Operations are pure; they copy the input chain and
// report whether the edit applied. Invalid writes return the chain
// unchanged rather than erroring — the caller simply re-renders state.
package schedule

import (
	"github.com/jaeyoung-oh/parkrate/internal/entity"
)

const (
	// defaultSpanMinutes closes a previously open segment, and repairs
	// any segment an edit would squeeze shut.
	defaultSpanMinutes = 60
	defaultUnitMinutes = 10
)

// Append closes the current terminal row and adds a new unbounded row
// after it. On an empty chain it creates the initial terminal row.
func Append(rows []entity.FeeRow) []entity.FeeRow {
	if len(rows) == 0 {
		return []entity.FeeRow{{StartMinutes: 0, UnitMinutes: defaultUnitMinutes}}
	}
	out := entity.CloneRows(rows)
	last := &out[len(out)-1]
	if last.EndMinutes == nil {
		end := last.StartMinutes + defaultSpanMinutes
		last.EndMinutes = &end
	}
	out = append(out, entity.FeeRow{
		StartMinutes: *last.EndMinutes,
		UnitMinutes:  last.UnitMinutes,
		Fee:          last.Fee,
	})
	return out
}

// Remove deletes an interior row and re-glues the chain behind it. The
// first row (anchors time 0) and the last row (anchors the open end)
// can never be removed.
func Remove(rows []entity.FeeRow, index int) ([]entity.FeeRow, bool) {
	if index <= 0 || index >= len(rows)-1 {
		return rows, false
	}
	out := entity.CloneRows(rows)
	out = append(out[:index], out[index+1:]...)
	cascade(out, index)
	return out, true
}

// SetStart moves a row's start and rewrites the predecessor's end to
// match. The first row's start is immutable at 0.
func SetStart(rows []entity.FeeRow, index, start int) ([]entity.FeeRow, bool) {
	if index <= 0 || index >= len(rows) {
		return rows, false
	}
	if start <= rows[index-1].StartMinutes {
		return rows, false
	}
	out := entity.CloneRows(rows)
	s := start
	out[index-1].EndMinutes = &s
	out[index].StartMinutes = start
	if out[index].EndMinutes != nil && *out[index].EndMinutes <= start {
		end := start + defaultSpanMinutes
		out[index].EndMinutes = &end
	}
	cascade(out, index+1)
	return out, true
}

// SetEnd bounds a row and re-cascades every following start. The last
// row stays unbounded; writes to it are ignored.
func SetEnd(rows []entity.FeeRow, index, end int) ([]entity.FeeRow, bool) {
	if index < 0 || index >= len(rows)-1 {
		return rows, false
	}
	if end <= rows[index].StartMinutes {
		return rows, false
	}
	out := entity.CloneRows(rows)
	e := end
	out[index].EndMinutes = &e
	cascade(out, index+1)
	return out, true
}

// SetUnit rewrites a row's billing unit; non-positive writes are ignored.
func SetUnit(rows []entity.FeeRow, index, unit int) ([]entity.FeeRow, bool) {
	if index < 0 || index >= len(rows) || unit <= 0 {
		return rows, false
	}
	out := entity.CloneRows(rows)
	out[index].UnitMinutes = unit
	return out, true
}

// SetFee rewrites a row's fee; negative writes are ignored.
func SetFee(rows []entity.FeeRow, index int, fee int64) ([]entity.FeeRow, bool) {
	if index < 0 || index >= len(rows) || fee < 0 {
		return rows, false
	}
	out := entity.CloneRows(rows)
	out[index].Fee = fee
	return out, true
}

// SetFixed toggles whether a row bills once for the whole segment.
func SetFixed(rows []entity.FeeRow, index int, fixed bool) ([]entity.FeeRow, bool) {
	if index < 0 || index >= len(rows) {
		return rows, false
	}
	out := entity.CloneRows(rows)
	out[index].FixedFee = fixed
	return out, true
}

// cascade re-derives each start from its predecessor's end, from index
// forward, widening any segment the shift would squeeze shut.
func cascade(rows []entity.FeeRow, from int) {
	for i := from; i < len(rows); i++ {
		if i == 0 {
			continue
		}
		prev := rows[i-1]
		if prev.EndMinutes == nil {
			continue
		}
		rows[i].StartMinutes = *prev.EndMinutes
		if rows[i].EndMinutes != nil && *rows[i].EndMinutes <= rows[i].StartMinutes {
			end := rows[i].StartMinutes + defaultSpanMinutes
			rows[i].EndMinutes = &end
		}
	}
}
