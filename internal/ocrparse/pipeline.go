// Package ocrparse reconstructs a structured fee rule set from the raw,
// unordered text an OCR provider recognized off a parking-lot sign.
//
// The pipeline never fails: every ambiguous or unmatched candidate is
// dropped and the Success flag on the result is the only signal that
// nothing usable was found. Callers treat Success=false as "fall back to
// manual entry", not as an error.
package ocrparse

import (
	"log/slog"
	"strings"

	"github.com/jaeyoung-oh/parkrate/internal/entity"
)

// Config holds the pipeline's heuristic thresholds. The defaults are
// deliberate carries from observed sign behavior, not derived values.
type Config struct {
	// SameRowYThreshold is the max vertical pixel distance for two
	// recognized fragments to count as the same physical sign row.
	SameRowYThreshold int
	// ExcessUnitMinutes is the billing unit assumed for excess-tagged
	// rows whose interval the sign does not state legibly.
	ExcessUnitMinutes int
	// AssumedBaseMinutes is the duration assumed for a bare amount with
	// no time token in reach.
	AssumedBaseMinutes int
}

func (c Config) withDefaults() Config {
	if c.SameRowYThreshold <= 0 {
		c.SameRowYThreshold = 50
	}
	if c.ExcessUnitMinutes <= 0 {
		c.ExcessUnitMinutes = 10
	}
	if c.AssumedBaseMinutes <= 0 {
		c.AssumedBaseMinutes = 30
	}
	return c
}

// Result is the extraction output: a candidate rule set for the editor.
type Result struct {
	FeeRows     []entity.FeeRow `json:"fee_rows"`
	DailyMaxFee *int64          `json:"daily_max_fee"`
	Success     bool            `json:"success"`
}

type Parser struct {
	cfg Config
	log *slog.Logger
}

func NewParser(cfg Config, log *slog.Logger) *Parser {
	if log == nil {
		log = slog.Default()
	}
	return &Parser{cfg: cfg.withDefaults(), log: log}
}

// Parse runs the full pipeline over the recognized text. lines is
// optional per-line geometry used only to disambiguate pairing.
func (p *Parser) Parse(text string, lines []RecognizedLine) Result {
	if strings.TrimSpace(text) == "" {
		return Result{FeeRows: []entity.FeeRow{}}
	}

	segments := segmentLines(text)
	tokens := make([]*token, 0, len(segments)*2)
	for i, line := range segments {
		tokens = append(tokens, extractTokens(i, line, tagLine(line))...)
	}

	if len(lines) > 0 {
		enrichY(tokens, segments, lines)
	}

	pairs := pairTokens(tokens, p.cfg.SameRowYThreshold)
	dailyMax := detectDailyMax(segments, pairs)
	rows := p.synthesize(pairs, dailyMax)

	res := Result{
		FeeRows:     rows,
		DailyMaxFee: dailyMax,
		Success:     len(rows) > 0,
	}
	p.log.Debug("ocrparse.parse",
		"lines", len(segments),
		"tokens", len(tokens),
		"pairs", len(pairs),
		"rows", len(rows),
		"daily_max", dailyMax != nil,
		"success", res.Success,
	)
	return res
}

// segmentLines splits on newlines, trims, and drops blanks.
func segmentLines(text string) []string {
	raw := strings.Split(text, "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

// enrichY locates each recognized sub-line among the segmented lines by
// substring match and propagates its vertical center onto that line's
// tokens. First match wins per segment.
func enrichY(tokens []*token, segments []string, lines []RecognizedLine) {
	yByLine := make(map[int]int, len(lines))
	for _, rl := range lines {
		if rl.YCenter == nil {
			continue
		}
		needle := strings.TrimSpace(rl.Text)
		if needle == "" {
			continue
		}
		for i, seg := range segments {
			if _, seen := yByLine[i]; seen {
				continue
			}
			if strings.Contains(seg, needle) {
				yByLine[i] = *rl.YCenter
				break
			}
		}
	}
	for _, t := range tokens {
		if y, ok := yByLine[t.lineIndex]; ok {
			yc := y
			t.yCenter = &yc
		}
	}
}
