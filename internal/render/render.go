// Package render draws the sentiment charts and the co-occurrence network
// and writes the tabular and graph exports.
package render

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/ppiankov/sentiviz/internal/model"
)

// Renderer writes charts and exports using the render section of a config
type Renderer struct {
	config model.RenderConfig
}

// NewRenderer creates a new renderer
func NewRenderer(cfg model.RenderConfig) *Renderer {
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	return &Renderer{config: cfg}
}

// savePNG draws p onto a raster canvas of the given size and writes it to path
func (r *Renderer) savePNG(p *plot.Plot, size model.FigSize, path string) (err error) {
	if err := ensureDir(path); err != nil {
		return err
	}

	w := vg.Length(size.Width) * vg.Inch
	h := vg.Length(size.Height) * vg.Inch
	c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(r.config.DPI))
	p.Draw(draw.New(c))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()

	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return nil
}

// colors returns n colors from a ColorBrewer palette. Palettes are sampled at
// their largest size and repeated when n exceeds it.
func colors(name string, n int) ([]color.Color, error) {
	if n <= 0 {
		return nil, nil
	}

	var pal palette.Palette
	var err error
	for size := 12; size >= 3; size-- {
		pal, err = brewer.GetPalette(brewer.TypeAny, name, size)
		if err == nil {
			break
		}
	}
	if pal == nil {
		return nil, fmt.Errorf("unknown palette %q: %w", name, err)
	}

	all := pal.Colors()
	out := make([]color.Color, n)
	for i := range out {
		out[i] = all[i%len(all)]
	}
	return out, nil
}

// parseHex parses "#rrggbb" or "rrggbb"
func parseHex(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// staticPalette is a palette.Palette over a fixed color list
type staticPalette []color.Color

func (p staticPalette) Colors() []color.Color { return p }
