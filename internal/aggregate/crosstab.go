package aggregate

import "github.com/ppiankov/sentiviz/internal/model"

// Crosstab is a label x sentiment count table
type Crosstab struct {
	Category   model.Category
	Labels     []string          // Rows, best ranked first
	Sentiments []model.Sentiment // Columns, always Negative then Positive
	Counts     [][]int           // Counts[row][column]
}

// CrosstabOf counts labels of one category per sentiment, ranks rows by the
// sortBy column and keeps the top K rows (topK <= 0 keeps all)
func CrosstabOf(records []model.Record, category model.Category, sortBy model.Sentiment, topK int) *Crosstab {
	rows := Count(records, Options{
		Category: category,
		SortBy:   sortBy,
		TopK:     topK,
	})

	ct := &Crosstab{
		Category:   category,
		Labels:     Labels(rows),
		Sentiments: model.Sentiments(),
	}

	index := make(map[string]int, len(ct.Labels))
	ct.Counts = make([][]int, len(ct.Labels))
	for i, l := range ct.Labels {
		index[l] = i
		ct.Counts[i] = make([]int, len(ct.Sentiments))
	}

	col := make(map[model.Sentiment]int, len(ct.Sentiments))
	for i, s := range ct.Sentiments {
		col[s] = i
	}

	for _, r := range rows {
		ct.Counts[index[r.Label]][col[r.Sentiment]] += r.Count
	}

	return ct
}

// Max returns the largest cell count
func (c *Crosstab) Max() int {
	top := 0
	for _, row := range c.Counts {
		for _, v := range row {
			if v > top {
				top = v
			}
		}
	}
	return top
}

// IsEmpty reports whether the table has no rows
func (c *Crosstab) IsEmpty() bool {
	return len(c.Labels) == 0
}
