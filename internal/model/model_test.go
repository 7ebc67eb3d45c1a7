package model

import (
	"path/filepath"
	"testing"
)

func TestMapSentiment(t *testing.T) {
	mapping := DefaultConfig().Sentiment.Mapping

	tests := []struct {
		raw      string
		expected Sentiment
		ok       bool
	}{
		{"正面", SentimentPositive, true},
		{" 负面 ", SentimentNegative, true},
		{"Positive", SentimentPositive, true},
		{"中性", SentimentUnknown, false},
		{"", SentimentUnknown, false},
		{"positive", SentimentPositive, true},
		{"NEGATIVE", SentimentNegative, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := MapSentiment(tt.raw, mapping)
			if got != tt.expected || ok != tt.ok {
				t.Errorf("expected (%q, %v), got (%q, %v)", tt.expected, tt.ok, got, ok)
			}
		})
	}
}

func TestMapSentiment_RejectsUnknownTarget(t *testing.T) {
	if _, ok := MapSentiment("meh", map[string]string{"meh": "Neutral"}); ok {
		t.Error("expected a mapping to a non-canonical sentiment to be rejected")
	}
}

func TestMapSentiment_FoldsCase(t *testing.T) {
	// Keys as a config loader that lowercases map keys would deliver them
	mapping := map[string]string{"pos": "positive", "neg": "Negative"}

	tests := []struct {
		raw      string
		expected Sentiment
	}{
		{"POS", SentimentPositive},
		{"Pos", SentimentPositive},
		{"neg", SentimentNegative},
	}
	for _, tt := range tests {
		got, ok := MapSentiment(tt.raw, mapping)
		if !ok || got != tt.expected {
			t.Errorf("%s: expected %s, got %s (ok=%v)", tt.raw, tt.expected, got, ok)
		}
	}

	if s, ok := MapSentiment("pos", map[string]string{"pos": "Negative", "POS": "Positive"}); !ok || s != SentimentNegative {
		t.Errorf("expected the exact key to win, got %s", s)
	}
}

func TestSentimentString(t *testing.T) {
	if SentimentUnknown.String() != "Unknown" {
		t.Errorf("expected Unknown, got %q", SentimentUnknown.String())
	}
	if SentimentNegative.String() != "Negative" {
		t.Errorf("expected Negative, got %q", SentimentNegative.String())
	}
}

func TestNewLabelSet(t *testing.T) {
	set := NewLabelSet(" car", "car", "", "  ", "Car", "person ")
	if set.Cardinality() != 3 {
		t.Errorf("expected 3 labels, got %d: %v", set.Cardinality(), set.ToSlice())
	}
	for _, l := range []string{"car", "Car", "person"} {
		if !set.Contains(l) {
			t.Errorf("expected %q in set", l)
		}
	}
}

func TestSplitLabels(t *testing.T) {
	got := SplitLabels("person, car, luggage & bags", "")
	if len(got) != 3 || got[2] != "luggage & bags" {
		t.Errorf("unexpected split %q", got)
	}

	got = SplitLabels("a;b", ";")
	if len(got) != 2 {
		t.Errorf("expected 2 parts, got %d", len(got))
	}
}

func TestRecordLabels(t *testing.T) {
	r := Record{Scenes: NewLabelSet("street"), Objects: NewLabelSet("car", "hat")}
	if r.Labels(CategoryScene).Cardinality() != 1 {
		t.Error("expected one scene label")
	}
	if r.Labels(CategoryObject).Cardinality() != 2 {
		t.Error("expected two object labels")
	}
	if r.Labels(Category("other")) != nil {
		t.Error("expected nil for an unknown category")
	}
}

func TestConfigPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.Dir = "out"

	if got := cfg.HeatmapPath(CategoryObject, "laojiu"); got != filepath.Join("out", "object_sentiment_laojiu.png") {
		t.Errorf("unexpected heatmap path %s", got)
	}
	if got := cfg.BarsPath(CategoryScene); got != filepath.Join("out", "final_scene_sentiment.png") {
		t.Errorf("unexpected bars path %s", got)
	}
	if cfg.HeatmapPalette(CategoryScene) != "YlOrBr" {
		t.Errorf("expected YlOrBr for scenes, got %s", cfg.HeatmapPalette(CategoryScene))
	}
	if len(cfg.Vocabulary(CategoryObject)) != 20 {
		t.Errorf("expected 20 object labels, got %d", len(cfg.Vocabulary(CategoryObject)))
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"no inputs", func(c *Config) { c.Inputs = nil }, true},
		{"duplicate names", func(c *Config) { c.Inputs[1].Name = c.Inputs[0].Name }, true},
		{"empty path", func(c *Config) { c.Inputs[0].Path = " " }, true},
		{"no output dir", func(c *Config) { c.Output.Dir = "" }, true},
		{"zero dpi", func(c *Config) { c.Render.DPI = 0 }, true},
		{"bad sort", func(c *Config) { c.Aggregate.SortBy = "Neutral" }, true},
		{"empty sort", func(c *Config) { c.Aggregate.SortBy = SentimentUnknown }, false},
		{"empty mapping", func(c *Config) { c.Sentiment.Mapping = nil }, true},
		{"bad mapping target", func(c *Config) { c.Sentiment.Mapping["中性"] = "Neutral" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestInputsFromMap(t *testing.T) {
	inputs := InputsFromMap(map[string]string{"weilai": "w.csv", "laojiu": "l.csv"})
	if len(inputs) != 2 || inputs[0].Name != "laojiu" || inputs[1].Path != "w.csv" {
		t.Errorf("unexpected inputs %+v", inputs)
	}
}
