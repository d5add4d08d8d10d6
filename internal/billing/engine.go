// Package billing computes parking fees from a validated fee schedule and
// a stay interval. All arithmetic is integral KRW over whole minutes;
// partial billing intervals always round up to a full one.
package billing

import (
	"time"

	"github.com/jaeyoung-oh/parkrate/internal/entity"
)

// Context carries the per-stay inputs that modify the computed amount.
// The zero value means: private lot, regular vehicle, no free time.
type Context struct {
	PublicLot       bool
	CompactCar      bool
	FreeTimeMinutes int
}

// Result holds the billed amount before and after the vehicle discount.
type Result struct {
	Original   int64 `json:"original"`
	Discounted int64 `json:"discounted"`
}

// ComputeFee bills the stay [start, end) against the schedule. The
// schedule must already be validated; malformed rules are a construction
// error, never a compute-time one.
func ComputeFee(start, end time.Time, schedule *entity.FeeStructure, bctx Context) Result {
	span := end.Sub(start)
	if span <= 0 {
		return Result{}
	}

	// Free time is consumed first: it either absorbs the whole stay or
	// shifts the effective end earlier before any rule applies.
	if bctx.FreeTimeMinutes > 0 {
		free := time.Duration(bctx.FreeTimeMinutes) * time.Minute
		if free >= span {
			return Result{}
		}
		end = end.Add(-free)
	}

	minutes := int(end.Sub(start).Milliseconds() / 60000)

	var total int64
	if len(schedule.CustomRows) > 0 {
		total = chainFee(schedule.CustomRows, minutes)
	} else {
		total = simpleFee(schedule, minutes)
	}

	if schedule.DailyMax != nil && total > schedule.DailyMax.MaxFee {
		total = schedule.DailyMax.MaxFee
	}

	res := Result{Original: total, Discounted: total}
	if bctx.CompactCar && bctx.PublicLot {
		res.Discounted = total / 2
	}
	return res
}

// simpleFee is the common basic+additional case: the basic fee covers
// [0, duration); every started interval beyond it bills in full.
func simpleFee(schedule *entity.FeeStructure, minutes int) int64 {
	total := schedule.Basic.Fee
	if extra := minutes - schedule.Basic.DurationMinutes; extra > 0 {
		intervals := ceilDiv(extra, schedule.Additional.IntervalMinutes)
		total += int64(intervals) * schedule.Additional.Fee
	}
	return total
}

// chainFee sums each segment's contribution over the elapsed window
// [0, minutes). Segment boundaries are half-open, so a duration landing
// exactly on a boundary never reaches into the next segment.
func chainFee(rows []entity.FeeRow, minutes int) int64 {
	var total int64
	for _, r := range rows {
		if r.StartMinutes >= minutes {
			break
		}
		end := minutes
		if r.EndMinutes != nil && *r.EndMinutes < end {
			end = *r.EndMinutes
		}
		overlap := end - r.StartMinutes
		if overlap <= 0 {
			continue
		}
		if r.FixedFee {
			total += r.Fee
		} else {
			total += int64(ceilDiv(overlap, r.UnitMinutes)) * r.Fee
		}
	}
	return total
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
