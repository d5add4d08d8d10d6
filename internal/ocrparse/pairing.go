package ocrparse

// pairTokens matches time-only tokens with fee-only tokens, greedy and
// first-found in extraction order. Same line index wins over geometry;
// geometry pairs when both Y centers sit within yThreshold pixels. A
// time token with no fee in reach is dropped. Leftover fee tokens
// survive as fee-only pairs (minutes nil): a bare amount on a sign
// almost always denotes a flat base fee.
//
// Deliberately not an optimal bipartite matching; output on ambiguous
// signs follows this documented greedy order.
func pairTokens(tokens []*token, yThreshold int) []*pairedToken {
	var pairs []*pairedToken

	for _, t := range tokens {
		if t.minutes == nil || t.used {
			continue
		}
		match := findFee(tokens, func(f *token) bool {
			return f.lineIndex == t.lineIndex
		})
		if match == nil && t.yCenter != nil {
			match = findFee(tokens, func(f *token) bool {
				return f.yCenter != nil && absInt(*f.yCenter-*t.yCenter) <= yThreshold
			})
		}
		if match == nil {
			continue
		}
		t.used = true
		match.used = true
		y := t.yCenter
		if y == nil {
			y = match.yCenter
		}
		pairs = append(pairs, &pairedToken{
			minutes:  t.minutes,
			fee:      *match.fee,
			yCenter:  y,
			keywords: t.keywords.merge(match.keywords),
		})
	}

	for _, f := range tokens {
		if f.fee == nil || f.used {
			continue
		}
		f.used = true
		pairs = append(pairs, &pairedToken{
			fee:      *f.fee,
			yCenter:  f.yCenter,
			keywords: f.keywords,
		})
	}

	return pairs
}

func findFee(tokens []*token, ok func(*token) bool) *token {
	for _, f := range tokens {
		if f.fee == nil || f.used {
			continue
		}
		if ok(f) {
			return f
		}
	}
	return nil
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
