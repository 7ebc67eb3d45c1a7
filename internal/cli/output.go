package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/ppiankov/sentiviz/internal/load"
	"github.com/ppiankov/sentiviz/internal/model"
)

const rule = "═══════════════════════════════════════════════════════════"

// printBanner writes the run header shared by all chart commands
func printBanner(w io.Writer, title string, cfg *model.Config) {
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "%s\n", rule)
	fmt.Fprintf(w, "  Sentiviz %s\n", title)
	fmt.Fprintf(w, "%s\n", rule)
	fmt.Fprintf(w, "\n")

	names := make([]string, len(cfg.Inputs))
	for i, in := range cfg.Inputs {
		names[i] = in.Name
	}
	fmt.Fprintf(w, "  Inputs:       %s\n", strings.Join(names, ", "))
	fmt.Fprintf(w, "  Output dir:   %s\n", cfg.Output.Dir)
	fmt.Fprintf(w, "  DPI:          %d\n", cfg.Render.DPI)
	fmt.Fprintf(w, "\n")
}

// printStats writes the loader row counts
func printStats(w io.Writer, stats load.Stats) {
	fmt.Fprintf(w, "✓ Read %d rows, kept %d records\n", stats.Rows, stats.Kept)
	if skipped := stats.SkippedSentiment + stats.SkippedMissingLabels + stats.SkippedMalformed; skipped > 0 {
		fmt.Fprintf(w, "  Skipped:      %d unmapped sentiment, %d missing labels, %d malformed\n",
			stats.SkippedSentiment, stats.SkippedMissingLabels, stats.SkippedMalformed)
	}
	if stats.MalformedCells > 0 {
		fmt.Fprintf(w, "  Malformed:    %d label cells\n", stats.MalformedCells)
	}
	if stats.CacheHits > 0 {
		fmt.Fprintf(w, "  Cache hits:   %d\n", stats.CacheHits)
	}
}

func printWritten(w io.Writer, paths ...string) {
	for _, p := range paths {
		fmt.Fprintf(w, "✓ Wrote %s\n", p)
	}
}

func printFooter(w io.Writer) {
	fmt.Fprintf(w, "\n%s\n\n", rule)
}
