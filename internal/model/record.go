package model

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// Record is one analyzed item loaded from an annotation table
type Record struct {
	ID        string             `json:"id"`        // Filename or <source>:<row> when the table has no id column
	Source    string             `json:"source"`    // Name of the input the row came from
	Sentiment Sentiment          `json:"sentiment"` // Positive, Negative or Unknown
	Scenes    mapset.Set[string] `json:"-"`         // Deduplicated scene labels
	Objects   mapset.Set[string] `json:"-"`         // Deduplicated object labels
}

// Labels returns the label set for a category
func (r Record) Labels(c Category) mapset.Set[string] {
	switch c {
	case CategoryScene:
		return r.Scenes
	case CategoryObject:
		return r.Objects
	default:
		return nil
	}
}

// Category selects which label column of a record is used
type Category string

const (
	CategoryObject Category = "object"
	CategoryScene  Category = "scene"
)

// Categories returns all label categories in output order
func Categories() []Category {
	return []Category{CategoryObject, CategoryScene}
}

// Title returns the capitalized category name for chart titles
func (c Category) Title() string {
	switch c {
	case CategoryObject:
		return "Object"
	case CategoryScene:
		return "Scene"
	default:
		return string(c)
	}
}

// NewLabelSet trims labels, drops empty ones and deduplicates the rest.
// Comparison is case-sensitive.
func NewLabelSet(labels ...string) mapset.Set[string] {
	set := mapset.NewThreadUnsafeSet[string]()
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		set.Add(l)
	}
	return set
}

// SplitLabels splits a label cell such as "person, car, hat" on delimiter
func SplitLabels(cell, delimiter string) []string {
	if delimiter == "" {
		delimiter = ", "
	}
	return strings.Split(cell, delimiter)
}
