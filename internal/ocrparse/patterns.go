package ocrparse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jaeyoung-oh/parkrate/constants"
)

var (
	// "30분", "2시간" — hours convert to minutes at extraction time.
	reTime = regexp.MustCompile(`(\d+)\s*(분|시간)`)
	// "1,000원", "1000원" — grouped thousands or plain digits before 원.
	reFee = regexp.MustCompile(`(\d{1,3}(?:,\d{3})+|\d+)\s*원`)
)

// tagLine scans the raw line for the fixed keyword vocabulary. Tags
// attach to every token extracted from the line.
func tagLine(line string) keywordSet {
	set := make(keywordSet)
	lower := strings.ToLower(line)
	for _, kw := range constants.TaggingVocabulary {
		if strings.Contains(lower, string(kw)) {
			set[kw] = struct{}{}
		}
	}
	return set
}

// extractTokens produces one token per time match and one per fee match
// on the line.
func extractTokens(lineIndex int, line string, tags keywordSet) []*token {
	var tokens []*token
	for _, m := range reTime.FindAllStringSubmatch(line, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if m[2] == "시간" {
			n *= 60
		}
		minutes := n
		tokens = append(tokens, &token{
			lineIndex: lineIndex,
			lineText:  line,
			minutes:   &minutes,
			keywords:  tags,
		})
	}
	for _, m := range reFee.FindAllStringSubmatch(line, -1) {
		amount, ok := parseAmount(m[1])
		if !ok {
			continue
		}
		fee := amount
		tokens = append(tokens, &token{
			lineIndex: lineIndex,
			lineText:  line,
			fee:       &fee,
			keywords:  tags,
		})
	}
	return tokens
}

func parseAmount(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.ReplaceAll(s, ",", ""), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
