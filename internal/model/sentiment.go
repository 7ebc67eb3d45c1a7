package model

import "strings"

// Sentiment is the canonical polarity of a record
type Sentiment string

const (
	SentimentNegative Sentiment = "Negative"
	SentimentPositive Sentiment = "Positive"
	SentimentUnknown  Sentiment = "" // Not mapped; only kept when sentiment is not required
)

// Sentiments returns the recognized sentiments in column order
func Sentiments() []Sentiment {
	return []Sentiment{SentimentNegative, SentimentPositive}
}

// IsKnown reports whether s is one of the recognized sentiments
func (s Sentiment) IsKnown() bool {
	return s == SentimentNegative || s == SentimentPositive
}

func (s Sentiment) String() string {
	if s == SentimentUnknown {
		return "Unknown"
	}
	return string(s)
}

// MapSentiment maps a raw cell value through the mapping table. An exact key
// wins; otherwise keys are compared case-insensitively, since config loaders
// may fold the case of map keys. Targets are matched case-insensitively too.
// Unmapped values and targets other than Positive/Negative are rejected.
func MapSentiment(raw string, mapping map[string]string) (Sentiment, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return SentimentUnknown, false
	}

	target, ok := mapping[raw]
	if !ok {
		target, ok = lookupFold(raw, mapping)
	}
	if !ok {
		return SentimentUnknown, false
	}

	return ParseSentiment(target)
}

// ParseSentiment accepts the canonical sentiment names in any case
func ParseSentiment(s string) (Sentiment, bool) {
	s = strings.TrimSpace(s)
	for _, known := range Sentiments() {
		if strings.EqualFold(s, string(known)) {
			return known, true
		}
	}
	return SentimentUnknown, false
}

// lookupFold finds raw among the keys ignoring case. When several keys fold
// to raw, the smallest one is used.
func lookupFold(raw string, mapping map[string]string) (string, bool) {
	best, found := "", false
	for k := range mapping {
		if !strings.EqualFold(strings.TrimSpace(k), raw) {
			continue
		}
		if !found || k < best {
			best, found = k, true
		}
	}
	if !found {
		return "", false
	}
	return mapping[best], true
}
