package ocrparse

import (
	"github.com/jaeyoung-oh/parkrate/constants"
)

// RecognizedLine is one line as reported by the external OCR provider,
// with the vertical pixel center of its bounding box when available.
// Geometry is only used to disambiguate pairing; it is never required.
type RecognizedLine struct {
	Text    string `json:"text"`
	YCenter *int   `json:"y_center,omitempty"`
}

type keywordSet map[constants.Keyword]struct{}

func (k keywordSet) has(kw constants.Keyword) bool {
	_, ok := k[kw]
	return ok
}

func (k keywordSet) hasAny(kws []constants.Keyword) bool {
	for _, kw := range kws {
		if k.has(kw) {
			return true
		}
	}
	return false
}

func (k keywordSet) merge(other keywordSet) keywordSet {
	out := make(keywordSet, len(k)+len(other))
	for kw := range k {
		out[kw] = struct{}{}
	}
	for kw := range other {
		out[kw] = struct{}{}
	}
	return out
}

// token is one raw regex match off a sign line. Exactly one of minutes
// and fee is set. Created and consumed within a single Parse call.
type token struct {
	lineIndex int
	lineText  string
	minutes   *int
	fee       *int64
	yCenter   *int
	keywords  keywordSet
	used      bool
}

// pairing result of one time token with one fee token. A nil minutes
// value marks the fee-only fallback; synthesis substitutes the assumed
// base duration there.
type pairedToken struct {
	minutes  *int
	fee      int64
	yCenter  *int
	keywords keywordSet
}
