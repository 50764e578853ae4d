// Package preview draws a top-down map of a generated region.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/OCharnyshevich/voxelfun/internal/region"
	"github.com/OCharnyshevich/voxelfun/pkg/world/gen"
)

var biomeColors = map[gen.Biome]color.RGBA{
	gen.BiomeMeadow:      {R: 0x5a, G: 0x9e, B: 0x3c, A: 0xff},
	gen.BiomeSnowyMeadow: {R: 0xe8, G: 0xee, B: 0xf2, A: 0xff},
	gen.BiomeDesert:      {R: 0xdb, G: 0xc6, B: 0x7b, A: 0xff},
}

var unknownColor = color.RGBA{R: 0xff, G: 0x00, B: 0xff, A: 0xff}

// Render returns one pixel per column: x to the right, z downwards.
// Higher surfaces are drawn brighter.
func Render(m region.ColumnMap) *image.RGBA {
	h := len(m.Columns)
	w := 0
	if h > 0 {
		w = len(m.Columns[0])
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	lo, hi := m.HeightRange()

	for z, row := range m.Columns {
		for x, c := range row {
			base, ok := biomeColors[c.Biome]
			if !ok {
				base = unknownColor
			}
			img.SetRGBA(x, z, shade(base, brightness(c.SurfaceY, lo, hi)))
		}
	}
	return img
}

// brightness maps y into [0.4, 1].
func brightness(y, lo, hi int) float64 {
	if hi <= lo {
		return 1
	}
	return 0.4 + 0.6*float64(y-lo)/float64(hi-lo)
}

func shade(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}

// WritePNG encodes img to path using a temp file + rename.
func WritePNG(path string, img image.Image) (err error) {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create preview: %w", err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmp)
		}
	}()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close preview: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename preview: %w", err)
	}
	return nil
}
