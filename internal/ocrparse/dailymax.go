package ocrparse

import (
	"regexp"

	"github.com/jaeyoung-oh/parkrate/constants"
)

const amountPattern = `(\d{1,3}(?:,\d{3})+|\d+)`

// Literal daily-cap phrasings seen on signs, tried in this order. Each
// names the submatch group holding the amount.
var dailyMaxTemplates = []struct {
	re    *regexp.Regexp
	group int
}{
	// "하루 최대 10,000원", "일 10000원"
	{regexp.MustCompile(`(하루|1일|일일|일)\s*(최대|상한|한도)?\s*` + amountPattern + `\s*원`), 3},
	// "10,000원 하루 최대"
	{regexp.MustCompile(amountPattern + `\s*원\s*(하루|1일|일일|일)\s*(최대|상한|한도)?`), 1},
	// "1일 최대 요금 10,000원"
	{regexp.MustCompile(`(하루|1일|일일|일)\s*(최대|상한|한도)?\s*요금\s*` + amountPattern + `\s*원`), 3},
	// "24시간 10,000원"
	{regexp.MustCompile(`24시간\s*` + amountPattern + `\s*원`), 1},
}

const dayMinutes = 1440

// detectDailyMax finds the daily cap, trying strategies in priority
// order and short-circuiting on the first hit. Conflicting mentions
// resolve to the first match by design, never to an error.
func detectDailyMax(lines []string, pairs []*pairedToken) *int64 {
	// 1. Literal templates, line by line.
	for _, line := range lines {
		for _, t := range dailyMaxTemplates {
			m := t.re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			if amount, ok := parseAmount(m[t.group]); ok && amount > 0 {
				return &amount
			}
		}
	}

	// 2. Pairs carrying a day-scope tag. A max qualifier settles it;
	// without one, only a 24h-or-longer (or duration-less) bucket
	// qualifies, so an hourly rate near a "최대" mention is not
	// mistaken for the cap.
	for _, pr := range pairs {
		if !pr.keywords.hasAny(constants.DayKeywords) {
			continue
		}
		if pr.keywords.hasAny(constants.MaxQualifiers) {
			fee := pr.fee
			return &fee
		}
		if pr.minutes == nil || *pr.minutes >= dayMinutes {
			fee := pr.fee
			return &fee
		}
	}

	// 3. Loosest pass: unambiguous day-cap tag combinations.
	for _, pr := range pairs {
		kw := pr.keywords
		if kw.has(constants.KwDailyMax) || kw.has(constants.KwDailyMaxSplit) || kw.has(constants.KwAllDay) ||
			(kw.has(constants.KwOneDay) && kw.has(constants.KwMax)) ||
			(kw.has(constants.KwOneDayNum) && kw.has(constants.KwMax)) {
			fee := pr.fee
			return &fee
		}
	}

	return nil
}

// consumedAsDailyMax reports whether the pair supplied the detected cap
// and must therefore not also become a chain segment.
func consumedAsDailyMax(pr *pairedToken, dailyMax *int64) bool {
	if dailyMax == nil || pr.fee != *dailyMax {
		return false
	}
	return pr.keywords.hasAny(constants.DayKeywords) || pr.keywords.hasAny(constants.MaxQualifiers)
}
