package services

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ---- Duration extraction ----

var (
	reviewDurationRe = regexp.MustCompile(
		`\b(\d+(?:\.\d+)?|one|two|three|four|five|six|seven|eight)\s*-?\s*(hours?|hrs?|minutes?|mins?)\b`)
	reviewDurationPhraseRe = regexp.MustCompile(`\b(half an hour|half a day|half day|all day)\b`)

	numberWords = map[string]float64{
		"one": 1, "two": 2, "three": 3, "four": 4,
		"five": 5, "six": 6, "seven": 7, "eight": 8,
	}
	durationPhraseHours = map[string]float64{
		"half an hour": 0.5,
		"half a day":   4.0,
		"half day":     4.0,
		"all day":      6.0,
	}
)

// ExtractReviewDuration collects every "<number> <time unit>" mention across
// the snippets and converts it to hours. Three or more mentions yield the
// median, one or two the mean.
func ExtractReviewDuration(reviews []string) (float64, bool) {
	var hours []float64
	for _, review := range reviews {
		text := strings.ToLower(review)

		for _, m := range reviewDurationRe.FindAllStringSubmatch(text, -1) {
			v, ok := numberWords[m[1]]
			if !ok {
				f, err := strconv.ParseFloat(m[1], 64)
				if err != nil {
					continue
				}
				v = f
			}
			if strings.HasPrefix(m[2], "min") {
				v /= 60
			}
			if v > 0 {
				hours = append(hours, v)
			}
		}
		for _, m := range reviewDurationPhraseRe.FindAllString(text, -1) {
			hours = append(hours, durationPhraseHours[m])
		}
	}

	switch {
	case len(hours) >= 3:
		sort.Float64s(hours)
		return hours[len(hours)/2], true
	case len(hours) > 0:
		sum := 0.0
		for _, h := range hours {
			sum += h
		}
		return sum / float64(len(hours)), true
	default:
		return 0, false
	}
}

// ---- Optimal time mining ----

type dayBucket int

const (
	bucketMorning dayBucket = iota
	bucketMidday
	bucketEvening
	bucketCount
)

func (b dayBucket) String() string {
	switch b {
	case bucketMorning:
		return "morning"
	case bucketMidday:
		return "midday"
	default:
		return "evening"
	}
}

func wordsRe(words ...string) *regexp.Regexp {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

var (
	bucketVocab = [bucketCount]*regexp.Regexp{
		bucketMorning: wordsRe("morning", "mornings", "early", "sunrise", "dawn", "breakfast", "opening time", "first thing"),
		bucketMidday:  wordsRe("noon", "lunch", "lunchtime", "midday", "afternoon", "afternoons", "middle of the day"),
		bucketEvening: wordsRe("evening", "evenings", "sunset", "dusk", "late", "night", "dinner", "closing time"),
	}
	crowdVocab = wordsRe("crowd", "crowds", "crowded", "busy", "line", "lines", "queue", "queues", "wait",
		"packed", "full", "avoid", "quiet", "peaceful", "empty", "less people", "fewer people")

	positiveVocab = wordsRe("good", "great", "best", "recommend", "recommended", "perfect", "ideal", "quiet",
		"peaceful", "empty", "less", "fewer", "not busy", "not crowded")
	negatedCrowdRe = wordsRe("not busy", "not crowded")
	negativeVocab  = wordsRe("bad", "avoid", "busy", "crowded", "packed", "full", "long wait", "too many",
		"lots of people", "tourist", "tourists", "rush")

	sentenceSplitRe = regexp.MustCompile(`[.!?]+\s+`)
)

func splitSentences(text string) []string {
	parts := sentenceSplitRe.Split(text, -1)
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(strings.TrimRight(p, ".!?")); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// sentenceBucket returns the time-of-day bucket a sentence talks about. When
// several are named the later bucket wins.
func sentenceBucket(sentence string) (dayBucket, bool) {
	found := false
	var b dayBucket
	for i := bucketMorning; i < bucketCount; i++ {
		if bucketVocab[i].MatchString(sentence) {
			b, found = i, true
		}
	}
	return b, found
}

func sentenceSentiment(sentence string) int {
	pos := positiveVocab.MatchString(sentence)
	neg := negativeVocab.MatchString(negatedCrowdRe.ReplaceAllString(sentence, ""))
	switch {
	case pos && !neg:
		return 1
	case neg && !pos:
		return -1
	default:
		return 0
	}
}

type crowdSignal struct {
	bucket   dayBucket
	sentence string
}

// MineOptimalTime looks for sentences that pair a time of day with crowd
// language and scores each bucket by sentiment. Without such sentences it
// falls back to counting time-of-day mentions.
func MineOptimalTime(reviews []string) (string, bool) {
	if len(reviews) == 0 {
		return "", false
	}

	var signals []crowdSignal
	var scores [bucketCount]int

	for _, review := range reviews {
		for _, s := range splitSentences(strings.ToLower(review)) {
			b, ok := sentenceBucket(s)
			if !ok || !crowdVocab.MatchString(s) {
				continue
			}
			signals = append(signals, crowdSignal{bucket: b, sentence: s})
			scores[b] += sentenceSentiment(s)
		}
	}

	if len(signals) > 0 {
		return crowdRecommendation(signals, scores)
	}
	return frequencyRecommendation(reviews)
}

func crowdRecommendation(signals []crowdSignal, scores [bucketCount]int) (string, bool) {
	best, bestScore := dayBucket(-1), 0
	worst, worstScore := dayBucket(-1), 0
	for b := bucketMorning; b < bucketCount; b++ {
		if scores[b] > bestScore {
			best, bestScore = b, scores[b]
		}
		if scores[b] < worstScore {
			worst, worstScore = b, scores[b]
		}
	}

	var sb strings.Builder
	if best >= 0 {
		sb.WriteString(capitalize(best.String()))
		sb.WriteString(" is recommended based on visitor reviews")
		for _, sig := range signals {
			if sig.bucket == best {
				fmt.Fprintf(&sb, ". Example: '%s'", capitalize(sig.sentence))
				break
			}
		}
	}
	if worst >= 0 {
		if sb.Len() > 0 {
			fmt.Fprintf(&sb, "; avoid %s if possible", worst)
		} else {
			fmt.Fprintf(&sb, "Consider avoiding %s when it may be more crowded", worst)
		}
	}
	if sb.Len() == 0 {
		return "", false
	}
	return sb.String(), true
}

func frequencyRecommendation(reviews []string) (string, bool) {
	var counts [bucketCount]int
	total := 0
	for _, review := range reviews {
		text := strings.ToLower(review)
		for b := bucketMorning; b < bucketCount; b++ {
			n := len(bucketVocab[b].FindAllStringIndex(text, -1))
			counts[b] += n
			total += n
		}
	}

	top := bucketMorning
	for b := bucketMidday; b < bucketCount; b++ {
		if counts[b] > counts[top] {
			top = b
		}
	}
	if counts[top] > 3 && counts[top] > total-counts[top] {
		return capitalize(top.String()) + " is mentioned most frequently in reviews", true
	}
	return "", false
}

// ---- Place-type advice ----

var categoryAdvice = []struct {
	kind   string
	vocab  *regexp.Regexp
	advice string
}{
	{"cultural", wordsRe("museum", "museums", "gallery", "galleries"),
		"Weekday mornings are typically less crowded for museums and galleries"},
	{"outdoor", wordsRe("beach", "beaches", "park", "parks"),
		"Early morning or late afternoon for the best lighting and fewer crowds"},
	{"dining", wordsRe("restaurant", "restaurants", "cafe", "food"),
		"Arrive just before or after typical meal rush hours (avoid 12-2pm and 6-8pm)"},
	{"shopping", wordsRe("shopping", "shop", "shops", "store", "stores"),
		"Weekday mornings typically have the fewest shoppers"},
	{"popular", wordsRe("crowd", "crowds", "crowded", "busy", "queue", "line"),
		"Early morning shortly after opening time to avoid crowds"},
}

// CategoryAdvice guesses the kind of place from review vocabulary and returns
// generic timing advice for the most common kind. Ties go to the kind seen first.
func CategoryAdvice(reviews []string) (string, bool) {
	counts := make([]int, len(categoryAdvice))
	firstSeen := make([]int, len(categoryAdvice))
	seq := 0
	for _, review := range reviews {
		text := strings.ToLower(review)
		for i, c := range categoryAdvice {
			if c.vocab.MatchString(text) {
				if counts[i] == 0 {
					seq++
					firstSeen[i] = seq
				}
				counts[i]++
			}
		}
	}

	best := -1
	for i := range categoryAdvice {
		if counts[i] == 0 {
			continue
		}
		if best < 0 || counts[i] > counts[best] || (counts[i] == counts[best] && firstSeen[i] < firstSeen[best]) {
			best = i
		}
	}
	if best < 0 {
		return "", false
	}
	return categoryAdvice[best].advice, true
}

// ---- Sampling ----

const maxSampledReviews = 20

var timeRelevantKeywords = []string{
	"morning", "afternoon", "evening", "night", "early", "late",
	"busy", "crowd", "quiet", "hour", "time", "wait", "line",
}

// SampleReviews caps the snippets mined for optimal time at max. Snippets
// mentioning time or crowds fill up to half of the slots when there are
// enough of them; the rest is a random sample.
func SampleReviews(reviews []string, max int, r *rand.Rand) []string {
	if len(reviews) <= max {
		return reviews
	}

	var relevant, other []string
	for _, review := range reviews {
		if containsAny(strings.ToLower(review), timeRelevantKeywords...) {
			relevant = append(relevant, review)
		} else {
			other = append(other, review)
		}
	}

	half := max / 2
	if len(relevant) < half {
		return sampleStrings(reviews, max, r)
	}
	out := sampleStrings(relevant, half, r)
	if remaining := max - len(out); remaining > 0 && len(other) > 0 {
		out = append(out, sampleStrings(other, remaining, r)...)
	}
	return out
}

func sampleStrings(in []string, n int, r *rand.Rand) []string {
	if n >= len(in) {
		return append([]string(nil), in...)
	}
	out := make([]string, 0, n)
	for _, i := range r.Perm(len(in))[:n] {
		out = append(out, in[i])
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
