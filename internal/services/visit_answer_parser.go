package services

import (
	"regexp"
	"strconv"
	"strings"
)

// VisitAnswer is what could be recovered from a free-text answer to the visit
// question. Nil/empty fields mean "no signal".
type VisitAnswer struct {
	DurationHours *float64
	OptimalTime   string
}

var (
	answerRangeRe  = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:-|–|to)\s*(\d+(?:\.\d+)?)\s*(?:hour|hr)s?\b`)
	answerSpendRe  = regexp.MustCompile(`(?i)\b(?:takes|duration|visit|spend)\s*(?:of\s*)?(?:about|around)?\s*(\d+(?:\.\d+)?)\s*(?:hour|hr)s?\b`)
	answerSingleRe = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:hour|hr)s?\b`)

	answerTimeRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)best time (?:to visit|for visiting) is (?:in the )?(morning|afternoon|evening|night)`),
		regexp.MustCompile(`(?i)(morning|afternoon|evening|night)s? (?:is|are) (?:the )?(?:best|optimal|ideal|recommended)`),
		regexp.MustCompile(`(?i)visit (?:during|in) (?:the )?(morning|afternoon|evening|early|late)`),
	}

	answerCrowdKeywords = []string{"crowd", "busy", "quiet", "wait", "line", "queue"}

	// "open 24 hours", "12 hours a day" describe the place, not the visit.
	answerOpenBeforeRe  = regexp.MustCompile(`(?i)\b(?:open|opens|opened|closed)\s+(?:for\s+)?(?:about\s+|around\s+|nearly\s+)?$`)
	answerPerDayAfterRe = regexp.MustCompile(`(?i)^\W*(?:a|per|each|every)\s+day\b|^\W*daily\b`)
)

// maxAnswerHours caps a dwell time taken from a text answer.
const maxAnswerHours = 12.0

// ParseVisitAnswer extracts a duration (a range is averaged) and a time of
// day recommendation from a text-generation answer. Unparsable input yields
// an empty VisitAnswer, never an error.
func ParseVisitAnswer(text string) VisitAnswer {
	var out VisitAnswer

	if v, ok := answerDuration(text); ok {
		out.DurationHours = &v
	}

	for _, re := range answerTimeRes {
		if m := re.FindStringSubmatch(text); m != nil {
			out.OptimalTime = capitalize(strings.ToLower(m[1])) + " is recommended"
			break
		}
	}

	if out.OptimalTime == "" {
		for _, s := range strings.Split(text, ". ") {
			if containsAny(strings.ToLower(s), answerCrowdKeywords...) {
				out.OptimalTime = strings.TrimSpace(s)
				break
			}
		}
	}

	return out
}

// answerDuration tries a range first, then a "spend N hours" phrase, then any
// hour count. Mentions of opening hours and values outside (0, 12] are skipped.
func answerDuration(text string) (float64, bool) {
	for _, m := range answerRangeRe.FindAllStringSubmatchIndex(text, -1) {
		if !dwellMention(text, m[0], m[1]) {
			continue
		}
		lo, err1 := strconv.ParseFloat(text[m[2]:m[3]], 64)
		hi, err2 := strconv.ParseFloat(text[m[4]:m[5]], 64)
		if err1 == nil && err2 == nil && plausibleHours(lo) && plausibleHours(hi) {
			return (lo + hi) / 2, true
		}
	}
	for _, re := range []*regexp.Regexp{answerSpendRe, answerSingleRe} {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			if !dwellMention(text, m[0], m[1]) {
				continue
			}
			if v, err := strconv.ParseFloat(text[m[2]:m[3]], 64); err == nil && plausibleHours(v) {
				return v, true
			}
		}
	}
	return 0, false
}

func dwellMention(text string, start, end int) bool {
	return !answerOpenBeforeRe.MatchString(text[:start]) && !answerPerDayAfterRe.MatchString(text[end:])
}

func plausibleHours(v float64) bool {
	return v > 0 && v <= maxAnswerHours
}
