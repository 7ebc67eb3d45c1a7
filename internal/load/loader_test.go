package load

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/ppiankov/sentiviz/internal/cache"
	"github.com/ppiankov/sentiviz/internal/model"
)

const sampleCSV = `文件名,中文转录,情感得分,情感倾向,对象标签,场景标签
a.mp4,text,0.9,正面,"person, car, car",street
b.mp4,text,0.1,负面,"car",street
c.mp4,text,0.5,中性,"hat",room
d.mp4,text,0.8,正面,,room
e.mp4,text,0.7,正面,", , ",room
,,,,,
f.mp4,text,0.2,负面,"person ,  hat","room, street"
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func allCategories() []model.Category {
	return []model.Category{model.CategoryObject, model.CategoryScene}
}

func TestLoader_Parse_RequireEverything(t *testing.T) {
	l := NewLoader(model.DefaultConfig(), nil)
	in := model.Input{Name: "laojiu", Path: "laojiu.csv"}

	res, err := l.Parse(strings.NewReader(sampleCSV), in, Options{
		RequireSentiment: true,
		Categories:       allCategories(),
		RequireAllLabels: true,
	})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if res.Stats.Rows != 6 {
		t.Errorf("expected 6 non-blank rows, got %d", res.Stats.Rows)
	}
	if res.Stats.Kept != 3 {
		t.Errorf("expected 3 kept rows, got %d", res.Stats.Kept)
	}
	if res.Stats.SkippedSentiment != 1 {
		t.Errorf("expected 1 row skipped for sentiment, got %d", res.Stats.SkippedSentiment)
	}
	if res.Stats.SkippedMissingLabels != 1 {
		t.Errorf("expected 1 row skipped for missing labels, got %d", res.Stats.SkippedMissingLabels)
	}
	if res.Stats.SkippedMalformed != 1 {
		t.Errorf("expected 1 row skipped as malformed, got %d", res.Stats.SkippedMalformed)
	}

	first := res.Records[0]
	if first.ID != "a.mp4" || first.Source != "laojiu" {
		t.Errorf("unexpected record identity: %+v", first)
	}
	if first.Sentiment != model.SentimentPositive {
		t.Errorf("expected Positive, got %s", first.Sentiment)
	}
	if first.Objects.Cardinality() != 2 || !first.Objects.Contains("person", "car") {
		t.Errorf("expected deduplicated objects {person, car}, got %v", first.Objects)
	}

	last := res.Records[2]
	if !last.Objects.Contains("person", "hat") {
		t.Errorf("expected trimmed labels person and hat, got %v", last.Objects)
	}
	if !last.Scenes.Contains("room", "street") {
		t.Errorf("expected scenes room and street, got %v", last.Scenes)
	}
}

func TestLoader_Parse_SentimentOptional(t *testing.T) {
	l := NewLoader(model.DefaultConfig(), nil)
	in := model.Input{Name: "laojiu", Path: "laojiu.csv"}

	res, err := l.Parse(strings.NewReader(sampleCSV), in, Options{
		Categories:       allCategories(),
		RequireAllLabels: true,
	})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if res.Stats.Kept != 4 {
		t.Fatalf("expected 4 kept rows, got %d", res.Stats.Kept)
	}
	if res.Records[2].Sentiment != model.SentimentUnknown {
		t.Errorf("expected unmapped sentiment to stay Unknown, got %s", res.Records[2].Sentiment)
	}
}

func TestLoader_Parse_LabelsOptional(t *testing.T) {
	l := NewLoader(model.DefaultConfig(), nil)
	in := model.Input{Name: "laojiu", Path: "laojiu.csv"}

	res, err := l.Parse(strings.NewReader(sampleCSV), in, Options{
		RequireSentiment: true,
		Categories:       allCategories(),
	})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if res.Stats.Kept != 5 {
		t.Fatalf("expected 5 kept rows, got %d", res.Stats.Kept)
	}

	d := res.Records[2]
	if d.ID != "d.mp4" {
		t.Fatalf("expected d.mp4, got %s", d.ID)
	}
	if d.Objects.Cardinality() != 0 {
		t.Errorf("expected empty objects for missing cell, got %v", d.Objects)
	}
	if !d.Scenes.Contains("room") {
		t.Errorf("expected scene room, got %v", d.Scenes)
	}
}

func TestLoader_Parse_CanonicalHeaders(t *testing.T) {
	content := "\ufefffilename,sentiment_label,object_labels,scene_labels\n" +
		"x.mp4,Positive,car,street\n" +
		",Negative,hat,room\n"

	l := NewLoader(model.DefaultConfig(), nil)
	res, err := l.Parse(strings.NewReader(content), model.Input{Name: "weilai", Path: "w.csv"}, Options{
		RequireSentiment: true,
		Categories:       allCategories(),
		RequireAllLabels: true,
	})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(res.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(res.Records))
	}
	if res.Records[0].ID != "x.mp4" {
		t.Errorf("expected x.mp4, got %s", res.Records[0].ID)
	}
	if res.Records[1].ID != "weilai:2" {
		t.Errorf("expected row fallback id weilai:2, got %s", res.Records[1].ID)
	}
}

func TestLoader_Parse_SchemaMismatch(t *testing.T) {
	tests := []struct {
		name    string
		content string
		opts    Options
	}{
		{
			name:    "missing scene column",
			content: "文件名,情感倾向,对象标签\na,正面,car\n",
			opts:    Options{Categories: allCategories()},
		},
		{
			name:    "missing sentiment column",
			content: "文件名,对象标签,场景标签\na,car,street\n",
			opts:    Options{RequireSentiment: true},
		},
		{
			name:    "empty file",
			content: "",
			opts:    Options{},
		},
	}

	l := NewLoader(model.DefaultConfig(), nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.Parse(strings.NewReader(tt.content), model.Input{Name: "x", Path: "x.csv"}, tt.opts)
			if !errors.Is(err, model.ErrSchemaMismatch) {
				t.Errorf("expected ErrSchemaMismatch, got %v", err)
			}
		})
	}
}

func TestLoader_Load_InputNotFound(t *testing.T) {
	l := NewLoader(model.DefaultConfig(), nil)
	_, err := l.Load(model.Input{Name: "x", Path: filepath.Join(t.TempDir(), "missing.csv")}, Options{})
	if !errors.Is(err, model.ErrInputNotFound) {
		t.Errorf("expected ErrInputNotFound, got %v", err)
	}
}

func TestLoader_Load_UsesCache(t *testing.T) {
	path := writeTemp(t, "laojiu.csv", sampleCSV)
	c := cache.NewMemoryCache()
	l := NewLoader(model.DefaultConfig(), c)
	in := model.Input{Name: "laojiu", Path: path}
	opts := Options{RequireSentiment: true, Categories: allCategories(), RequireAllLabels: true}

	first, err := l.Load(in, opts)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if first.Stats.CacheHits != 0 {
		t.Errorf("expected no cache hit on first load, got %d", first.Stats.CacheHits)
	}

	second, err := l.Load(in, opts)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if second.Stats.CacheHits != 1 {
		t.Errorf("expected cache hit on second load, got %d", second.Stats.CacheHits)
	}
	if len(second.Records) != len(first.Records) {
		t.Errorf("expected %d cached records, got %d", len(first.Records), len(second.Records))
	}

	// A cached table reports the same row accounting as a fresh read
	want := first.Stats
	want.CacheHits = 1
	if second.Stats != want {
		t.Errorf("expected stats %+v, got %+v", want, second.Stats)
	}

	third, err := l.Load(in, Options{Categories: allCategories()})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if third.Stats.CacheHits != 1 {
		t.Error("expected different options to reuse the cached table")
	}
	if third.Stats.Kept != 6 {
		t.Errorf("expected 6 kept rows without filters, got %d", third.Stats.Kept)
	}
}

func TestLoader_Load_CountsMalformedCells(t *testing.T) {
	path := writeTemp(t, "laojiu.csv", sampleCSV)
	l := NewLoader(model.DefaultConfig(), nil)

	res, err := l.Load(model.Input{Name: "laojiu", Path: path}, Options{
		RequireSentiment: true,
		Categories:       allCategories(),
	})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Row e keeps its scene labels, its object cell is still reported
	if res.Stats.MalformedCells != 1 {
		t.Errorf("expected 1 malformed cell, got %d", res.Stats.MalformedCells)
	}
	if res.Stats.SkippedMalformed != 0 {
		t.Errorf("expected no row skipped for malformed cells, got %d", res.Stats.SkippedMalformed)
	}
	if res.Stats.Kept != 5 {
		t.Errorf("expected 5 kept rows, got %d", res.Stats.Kept)
	}
}

func TestLoader_LoadAll(t *testing.T) {
	a := writeTemp(t, "a.csv", sampleCSV)
	b := writeTemp(t, "b.csv", "文件名,情感倾向,对象标签,场景标签\nz.mp4,负面,tire,road\n")

	l := NewLoader(model.DefaultConfig(), nil)
	res, err := l.LoadAll([]model.Input{{Name: "a", Path: a}, {Name: "b", Path: b}}, Options{
		RequireSentiment: true,
		Categories:       allCategories(),
		RequireAllLabels: true,
	})
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	if len(res.Records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(res.Records))
	}
	if res.Records[3].Source != "b" {
		t.Errorf("expected last record from source b, got %s", res.Records[3].Source)
	}
	if res.Stats.Rows != 7 {
		t.Errorf("expected 7 rows in total, got %d", res.Stats.Rows)
	}
}

func TestLoader_LoadAll_NoUsableRecords(t *testing.T) {
	path := writeTemp(t, "neutral.csv", "文件名,情感倾向,对象标签,场景标签\na,中性,car,street\n")

	l := NewLoader(model.DefaultConfig(), nil)
	_, err := l.LoadAll([]model.Input{{Name: "n", Path: path}}, Options{RequireSentiment: true})
	if !errors.Is(err, model.ErrNoUsableRecords) {
		t.Errorf("expected ErrNoUsableRecords, got %v", err)
	}
}

func TestLoader_Load_Encoding(t *testing.T) {
	encoded, err := simplifiedchinese.GBK.NewEncoder().String(sampleCSV)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	path := writeTemp(t, "gbk.csv", encoded)
	opts := Options{RequireSentiment: true, Categories: allCategories(), RequireAllLabels: true}
	l := NewLoader(model.DefaultConfig(), nil)

	res, err := l.Load(model.Input{Name: "gbk", Path: path, Encoding: "GBK"}, opts)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if res.Stats.Kept != 3 {
		t.Errorf("expected 3 kept rows, got %d", res.Stats.Kept)
	}

	// Read as UTF-8 the Chinese headers do not match
	_, err = l.Load(model.Input{Name: "gbk", Path: path}, opts)
	if !errors.Is(err, model.ErrSchemaMismatch) {
		t.Errorf("expected ErrSchemaMismatch, got %v", err)
	}

	_, err = l.Load(model.Input{Name: "gbk", Path: path, Encoding: "latin-9"}, opts)
	if err == nil {
		t.Error("expected error for unsupported encoding")
	}
}

func TestParseLabelCell(t *testing.T) {
	tests := []struct {
		name      string
		cell      string
		want      []string
		malformed bool
		missing   bool
	}{
		{name: "single", cell: "car", want: []string{"car"}},
		{name: "list", cell: "person, car, hat", want: []string{"person", "car", "hat"}},
		{name: "duplicates", cell: "car, car", want: []string{"car"}},
		{name: "case sensitive", cell: "Car, car", want: []string{"Car", "car"}},
		{name: "whitespace", cell: "  car ,  hat  ", want: []string{"car", "hat"}},
		{name: "empty", cell: "", missing: true},
		{name: "nan", cell: "NaN", missing: true},
		{name: "only delimiters", cell: ", , ", malformed: true},
		{name: "invalid utf8", cell: string([]byte{'c', 0xff, 'r'}), malformed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLabelCell(tt.cell, ", ")
			switch {
			case tt.missing:
				if !errors.Is(err, errMissingCell) {
					t.Fatalf("expected missing cell error, got %v", err)
				}
				return
			case tt.malformed:
				if !errors.Is(err, model.ErrMalformedLabelCell) {
					t.Fatalf("expected ErrMalformedLabelCell, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Cardinality() != len(tt.want) || !got.Contains(tt.want...) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
