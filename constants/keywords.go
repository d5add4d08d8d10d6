package constants

// Keyword is a literal vocabulary term recognized on a parking sign line.
// Values are the exact substrings matched against the raw line text.
type Keyword string

const (
	KwFirst Keyword = "최초" // "first N minutes"
	KwBase  Keyword = "기본" // "base"

	KwOver  Keyword = "초과" // "in excess of"
	KwAfter Keyword = "이후" // "after"
	KwExtra Keyword = "추가" // "additional"

	KwDailyMax      Keyword = "일최대"
	KwDailyMaxSplit Keyword = "일 최대"
	KwAllDay        Keyword = "종일"
	KwOneDay        Keyword = "하루"
	KwOneDayNum     Keyword = "1일"
	Kw24Hours       Keyword = "24시간"
	KwPerDay        Keyword = "일일"

	KwMax     Keyword = "최대"
	KwCeiling Keyword = "상한"
	KwLimit   Keyword = "한도"
)

// BaseKeywords mark a line as describing the initial flat charge.
var BaseKeywords = []Keyword{KwFirst, KwBase}

// ExcessKeywords mark a line as describing the per-interval charge beyond
// the base duration.
var ExcessKeywords = []Keyword{KwOver, KwAfter, KwExtra}

// DayKeywords denote a full-day time scope. Kept separate from
// MaxQualifiers: a bare "최대" next to an hourly rate must not be read as
// a daily cap on its own.
var DayKeywords = []Keyword{
	KwDailyMax, KwDailyMaxSplit, KwAllDay, KwOneDay, KwOneDayNum, Kw24Hours, KwPerDay,
}

// MaxQualifiers denote an upper bound.
var MaxQualifiers = []Keyword{KwMax, KwCeiling, KwLimit}

// TaggingVocabulary is every keyword scanned for during line tagging.
var TaggingVocabulary = func() []Keyword {
	out := make([]Keyword, 0, len(BaseKeywords)+len(ExcessKeywords)+len(DayKeywords)+len(MaxQualifiers))
	out = append(out, BaseKeywords...)
	out = append(out, ExcessKeywords...)
	out = append(out, DayKeywords...)
	out = append(out, MaxQualifiers...)
	return out
}()
