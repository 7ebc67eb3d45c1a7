// Package aggregate explodes label sets into (label, sentiment[, source])
// tuples and counts them for the heatmap and bar chart views.
package aggregate

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/ppiankov/sentiviz/internal/model"
)

// Row is one (label, source, sentiment) group
type Row struct {
	Label      string          `json:"label"`
	Source     string          `json:"source,omitempty"` // Empty unless grouped by source
	Sentiment  model.Sentiment `json:"sentiment"`
	Count      int             `json:"count"`
	Percentage float64         `json:"percentage"` // Count over all sentiments sharing Label and Source
}

// Group is the bar series name of the row, "<source> - <sentiment>"
func (r Row) Group() string {
	if r.Source == "" {
		return r.Sentiment.String()
	}
	return r.Source + " - " + r.Sentiment.String()
}

// Options controls grouping, ranking and truncation
type Options struct {
	Category   model.Category
	Vocabulary []string        // Only count these labels (empty means all)
	BySource   bool            // Add the record source to the group key
	SortBy     model.Sentiment // Rank labels by this sentiment's count (default Positive)
	TopK       int             // Keep the K best ranked labels (<= 0 keeps all)
}

type groupKey struct {
	label     string
	source    string
	sentiment model.Sentiment
}

type labelKey struct {
	label  string
	source string
}

// Count groups the exploded labels of records and returns rows ordered by
// label rank, then source, then sentiment. Records without a known sentiment
// are ignored.
func Count(records []model.Record, opts Options) []Row {
	var vocab mapset.Set[string]
	if len(opts.Vocabulary) > 0 {
		vocab = mapset.NewThreadUnsafeSet(opts.Vocabulary...)
	}

	counts := make(map[groupKey]int)
	totals := make(map[labelKey]int)

	for _, rec := range records {
		if !rec.Sentiment.IsKnown() {
			continue
		}
		labels := rec.Labels(opts.Category)
		if labels == nil {
			continue
		}

		source := ""
		if opts.BySource {
			source = rec.Source
		}

		for _, label := range labels.ToSlice() {
			if vocab != nil && !vocab.Contains(label) {
				continue
			}
			counts[groupKey{label: label, source: source, sentiment: rec.Sentiment}]++
			totals[labelKey{label: label, source: source}]++
		}
	}

	rows := make([]Row, 0, len(counts))
	for k, c := range counts {
		rows = append(rows, Row{
			Label:      k.label,
			Source:     k.source,
			Sentiment:  k.sentiment,
			Count:      c,
			Percentage: float64(c) / float64(totals[labelKey{label: k.label, source: k.source}]),
		})
	}

	rank := rankLabels(rows, sortSentiment(opts.SortBy), opts.TopK)

	kept := rows[:0]
	for _, r := range rows {
		if _, ok := rank[r.Label]; ok {
			kept = append(kept, r)
		}
	}

	sort.Slice(kept, func(i, j int) bool {
		a, b := kept[i], kept[j]
		if rank[a.Label] != rank[b.Label] {
			return rank[a.Label] < rank[b.Label]
		}
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		return a.Sentiment < b.Sentiment
	})

	return kept
}

// Labels returns the distinct labels of rows in row order
func Labels(rows []Row) []string {
	seen := make(map[string]bool)
	var labels []string
	for _, r := range rows {
		if !seen[r.Label] {
			seen[r.Label] = true
			labels = append(labels, r.Label)
		}
	}
	return labels
}

// Groups returns the distinct row groups sorted by name
func Groups(rows []Row) []string {
	set := mapset.NewThreadUnsafeSet[string]()
	for _, r := range rows {
		set.Add(r.Group())
	}
	groups := set.ToSlice()
	sort.Strings(groups)
	return groups
}

// rankLabels orders labels by their sortBy count summed over sources,
// descending, label ascending on ties, and returns the top K positions
func rankLabels(rows []Row, sortBy model.Sentiment, topK int) map[string]int {
	score := make(map[string]int)
	for _, r := range rows {
		if _, ok := score[r.Label]; !ok {
			score[r.Label] = 0
		}
		if r.Sentiment == sortBy {
			score[r.Label] += r.Count
		}
	}

	labels := make([]string, 0, len(score))
	for l := range score {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool {
		if score[labels[i]] != score[labels[j]] {
			return score[labels[i]] > score[labels[j]]
		}
		return labels[i] < labels[j]
	})

	if topK > 0 && len(labels) > topK {
		labels = labels[:topK]
	}

	rank := make(map[string]int, len(labels))
	for i, l := range labels {
		rank[l] = i
	}
	return rank
}

func sortSentiment(s model.Sentiment) model.Sentiment {
	if s.IsKnown() {
		return s
	}
	return model.SentimentPositive
}
