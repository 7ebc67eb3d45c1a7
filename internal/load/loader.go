// Package load reads annotation tables into records.
package load

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"

	"github.com/ppiankov/sentiviz/internal/cache"
	"github.com/ppiankov/sentiviz/internal/logger"
	"github.com/ppiankov/sentiviz/internal/model"
)

// Options selects the columns a table must have and the rows that are kept
type Options struct {
	RequireSentiment bool             // Drop rows whose sentiment is missing or unmapped
	Categories       []model.Category // Label columns that must exist in the header
	RequireAllLabels bool             // Drop rows where any of Categories has no usable label
}

// Stats counts what happened to the rows of one or more tables
type Stats struct {
	Rows                 int `json:"rows"`
	Kept                 int `json:"kept"`
	SkippedSentiment     int `json:"skipped_sentiment"`
	SkippedMissingLabels int `json:"skipped_missing_labels"`
	SkippedMalformed     int `json:"skipped_malformed"`
	MalformedCells       int `json:"malformed_cells"` // Including cells of kept rows
	CacheHits            int `json:"cache_hits"`
}

// Add accumulates another table's stats
func (s *Stats) Add(o Stats) {
	s.Rows += o.Rows
	s.Kept += o.Kept
	s.SkippedSentiment += o.SkippedSentiment
	s.SkippedMissingLabels += o.SkippedMissingLabels
	s.SkippedMalformed += o.SkippedMalformed
	s.MalformedCells += o.MalformedCells
	s.CacheHits += o.CacheHits
}

// Result is the outcome of loading one or more tables
type Result struct {
	Records []model.Record
	Stats   Stats
}

// Loader reads CSV annotation tables
type Loader struct {
	columns   model.Columns
	delimiter string
	mapping   map[string]string
	cache     cache.Cache // Optional (nil disables caching)
}

// NewLoader creates a loader from the column, label and sentiment configuration
func NewLoader(cfg *model.Config, c cache.Cache) *Loader {
	return &Loader{
		columns:   cfg.Columns,
		delimiter: cfg.Labels.Delimiter,
		mapping:   cfg.Sentiment.Mapping,
		cache:     c,
	}
}

// LoadAll loads every input and concatenates the records in input order.
// It fails with ErrNoUsableRecords when nothing survives filtering.
func (l *Loader) LoadAll(inputs []model.Input, opts Options) (*Result, error) {
	total := &Result{}
	paths := make([]string, 0, len(inputs))

	for _, in := range inputs {
		res, err := l.Load(in, opts)
		if err != nil {
			return nil, err
		}
		total.Records = append(total.Records, res.Records...)
		total.Stats.Add(res.Stats)
		paths = append(paths, in.Path)
	}

	if len(total.Records) == 0 {
		return nil, fmt.Errorf("%w: %d rows read from %s, none kept", model.ErrNoUsableRecords, total.Stats.Rows, strings.Join(paths, ", "))
	}

	return total, nil
}

// Load reads one input file. The raw table is cached per file version and
// encoding, so loading it again with other options does not re-read it.
func (l *Loader) Load(in model.Input, opts Options) (*Result, error) {
	info, err := os.Stat(in.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", model.ErrInputNotFound, in.Path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", model.ErrInputNotFound, in.Path)
	}

	key := cache.CacheKey(in.Path, info.Size(), info.ModTime(), "encoding="+strings.ToLower(strings.TrimSpace(in.Encoding)))

	var table *cache.Table
	hit := false
	if l.cache != nil {
		table, hit = l.cache.Get(key)
	}

	if hit {
		logger.Debug("loaded table from cache", "path", in.Path, "rows", len(table.Rows))
	} else {
		table, err = readFile(in)
		if err != nil {
			return nil, err
		}
		if l.cache != nil {
			l.cache.Set(key, table)
		}
	}

	res, err := l.build(table, in, opts)
	if err != nil {
		return nil, err
	}
	if hit {
		res.Stats.CacheHits = 1
	}

	logger.Debug("loaded table",
		"path", in.Path,
		"rows", res.Stats.Rows,
		"kept", res.Stats.Kept,
		"skipped_sentiment", res.Stats.SkippedSentiment,
		"skipped_missing_labels", res.Stats.SkippedMissingLabels,
		"skipped_malformed", res.Stats.SkippedMalformed,
		"malformed_cells", res.Stats.MalformedCells,
	)
	if opts.RequireSentiment && res.Stats.SkippedSentiment > 0 {
		logger.Warn("dropped rows with unmapped sentiment", "path", in.Path, "rows", res.Stats.SkippedSentiment)
	}

	return res, nil
}

func readFile(in model.Input) (*cache.Table, error) {
	f, err := os.Open(in.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", model.ErrInputNotFound, in.Path, err)
	}
	defer func() { _ = f.Close() }()

	r, err := decode(f, in.Encoding)
	if err != nil {
		return nil, fmt.Errorf("input %s: %w", in.Name, err)
	}

	return readTable(r, in.Path)
}

// decode wraps r with a decoder for the table's text encoding
func decode(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "utf-8", "utf8":
		return r, nil
	case "gbk":
		return transform.NewReader(r, simplifiedchinese.GBK.NewDecoder()), nil
	case "gb18030":
		return transform.NewReader(r, simplifiedchinese.GB18030.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encoding)
	}
}

// columnIndex holds the resolved header positions (-1 when absent)
type columnIndex struct {
	filename  int
	sentiment int
	labels    map[model.Category]int
}

// Parse reads CSV content for one input. in.Path is only used in messages.
func (l *Loader) Parse(r io.Reader, in model.Input, opts Options) (*Result, error) {
	table, err := readTable(r, in.Path)
	if err != nil {
		return nil, err
	}
	return l.build(table, in, opts)
}

// readTable reads the header and every row without interpreting them
func readTable(r io.Reader, path string) (*cache.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: %s has no header row", model.ErrSchemaMismatch, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}

	table := &cache.Table{Header: header}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// build turns raw rows into records, applying the filters of opts
func (l *Loader) build(table *cache.Table, in model.Input, opts Options) (*Result, error) {
	idx, err := l.resolveColumns(table.Header, in.Path, opts)
	if err != nil {
		return nil, err
	}

	res := &Result{}

	for i, row := range table.Rows {
		rowNum := i + 1
		if isBlankRow(row) {
			continue
		}
		res.Stats.Rows++

		sentiment := model.SentimentUnknown
		if idx.sentiment >= 0 {
			if s, ok := model.MapSentiment(field(row, idx.sentiment), l.mapping); ok {
				sentiment = s
			}
		}
		if opts.RequireSentiment && !sentiment.IsKnown() {
			res.Stats.SkippedSentiment++
			continue
		}

		rec := model.Record{
			ID:        field(row, idx.filename),
			Source:    in.Name,
			Sentiment: sentiment,
			Scenes:    model.NewLabelSet(),
			Objects:   model.NewLabelSet(),
		}
		if strings.TrimSpace(rec.ID) == "" {
			rec.ID = fmt.Sprintf("%s:%d", in.Name, rowNum)
		}

		skip := false
		for _, cat := range opts.Categories {
			labels, err := ParseLabelCell(field(row, idx.labels[cat]), l.delimiter)
			if err != nil {
				if errors.Is(err, model.ErrMalformedLabelCell) {
					res.Stats.MalformedCells++
					logger.Debug("malformed label cell", "path", in.Path, "row", rowNum, "column", l.rawColumn(cat), "error", err)
					if opts.RequireAllLabels {
						res.Stats.SkippedMalformed++
						skip = true
						break
					}
				} else if opts.RequireAllLabels {
					res.Stats.SkippedMissingLabels++
					skip = true
					break
				}
				continue
			}

			switch cat {
			case model.CategoryScene:
				rec.Scenes = labels
			case model.CategoryObject:
				rec.Objects = labels
			}
		}
		if skip {
			continue
		}

		res.Records = append(res.Records, rec)
		res.Stats.Kept++
	}

	return res, nil
}

func (l *Loader) resolveColumns(header []string, path string, opts Options) (*columnIndex, error) {
	positions := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := positions[h]; !dup {
			positions[h] = i
		}
	}

	find := func(names ...string) int {
		for _, n := range names {
			if n == "" {
				continue
			}
			if i, ok := positions[n]; ok {
				return i
			}
		}
		return -1
	}

	idx := &columnIndex{
		filename:  find(l.columns.Filename, "filename"),
		sentiment: find(l.columns.Sentiment, "sentiment_label", "sentiment"),
		labels:    make(map[model.Category]int),
	}

	if opts.RequireSentiment && idx.sentiment < 0 {
		return nil, fmt.Errorf("%w: column %q not found in %s", model.ErrSchemaMismatch, l.columns.Sentiment, path)
	}

	for _, cat := range opts.Categories {
		i := find(l.rawColumn(cat), string(cat)+"_labels")
		if i < 0 {
			return nil, fmt.Errorf("%w: column %q not found in %s", model.ErrSchemaMismatch, l.rawColumn(cat), path)
		}
		idx.labels[cat] = i
	}

	return idx, nil
}

func (l *Loader) rawColumn(cat model.Category) string {
	if cat == model.CategoryScene {
		return l.columns.Scenes
	}
	return l.columns.Objects
}

// errMissingCell marks an empty or NA cell; callers treat it like pandas dropna
var errMissingCell = errors.New("missing label cell")

// naValues are the cell spellings treated as missing
var naValues = map[string]bool{
	"":     true,
	"NA":   true,
	"N/A":  true,
	"n/a":  true,
	"#N/A": true,
	"NaN":  true,
	"nan":  true,
	"NULL": true,
	"null": true,
	"<NA>": true,
	"None": true,
}

// ParseLabelCell splits a label cell into a deduplicated label set.
// Missing cells return errMissingCell; cells that are not valid UTF-8 or
// hold no usable label return ErrMalformedLabelCell.
func ParseLabelCell(cell, delimiter string) (mapset.Set[string], error) {
	trimmed := strings.TrimSpace(cell)
	if naValues[trimmed] {
		return nil, errMissingCell
	}
	if !utf8.ValidString(cell) {
		return nil, fmt.Errorf("%w: invalid UTF-8", model.ErrMalformedLabelCell)
	}

	labels := model.NewLabelSet(model.SplitLabels(cell, delimiter)...)
	if labels.Cardinality() == 0 {
		return nil, fmt.Errorf("%w: %q has no labels", model.ErrMalformedLabelCell, cell)
	}
	return labels, nil
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func isBlankRow(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
