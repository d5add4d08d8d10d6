package ocrparse

import (
	"github.com/jaeyoung-oh/parkrate/constants"
	"github.com/jaeyoung-oh/parkrate/internal/entity"
)

// synthesize turns paired tokens into candidate fee rows.
//
// Base-tagged pairs become a fixed-fee opening segment at the front of
// the list. Excess-tagged pairs become metered segments with the
// configured default unit (the actual interval is rarely legible from a
// sign). Untagged pairs reuse their own time span as the billing unit.
// Appended segments chain off the previous row's end and stay unbounded;
// the caller normalizes the raw chain in the editor before saving.
func (p *Parser) synthesize(pairs []*pairedToken, dailyMax *int64) []entity.FeeRow {
	rows := make([]entity.FeeRow, 0, len(pairs))
	for _, pr := range pairs {
		if consumedAsDailyMax(pr, dailyMax) {
			continue
		}
		if pr.minutes == nil && pr.fee <= 0 {
			continue
		}
		minutes := p.cfg.AssumedBaseMinutes
		if pr.minutes != nil {
			minutes = *pr.minutes
		}
		if minutes <= 0 {
			continue
		}

		switch {
		case pr.keywords.hasAny(constants.BaseKeywords):
			end := minutes
			row := entity.FeeRow{
				StartMinutes: 0,
				EndMinutes:   &end,
				UnitMinutes:  minutes,
				Fee:          pr.fee,
				FixedFee:     true,
			}
			rows = append([]entity.FeeRow{row}, rows...)
		case pr.keywords.hasAny(constants.ExcessKeywords):
			rows = append(rows, entity.FeeRow{
				StartMinutes: nextStart(rows),
				UnitMinutes:  p.cfg.ExcessUnitMinutes,
				Fee:          pr.fee,
			})
		default:
			rows = append(rows, entity.FeeRow{
				StartMinutes: nextStart(rows),
				UnitMinutes:  minutes,
				Fee:          pr.fee,
			})
		}
	}
	return rows
}

func nextStart(rows []entity.FeeRow) int {
	if len(rows) == 0 {
		return 0
	}
	last := rows[len(rows)-1]
	if last.EndMinutes != nil {
		return *last.EndMinutes
	}
	return last.StartMinutes
}
