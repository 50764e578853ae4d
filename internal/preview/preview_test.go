package preview

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/OCharnyshevich/voxelfun/internal/region"
	"github.com/OCharnyshevich/voxelfun/pkg/world/gen"
)

func testMap() region.ColumnMap {
	return region.ColumnMap{
		Columns: [][]gen.Column{
			{
				{SurfaceY: 10, Biome: gen.BiomeMeadow},
				{SurfaceY: 20, Biome: gen.BiomeDesert},
				{SurfaceY: 30, Biome: gen.BiomeSnowyMeadow},
			},
			{
				{SurfaceY: 30, Biome: gen.BiomeMeadow},
				{SurfaceY: 10, Biome: gen.BiomeDesert},
				{SurfaceY: 20, Biome: gen.BiomeSnowyMeadow},
			},
		},
	}
}

func TestRenderSize(t *testing.T) {
	img := Render(testMap())
	b := img.Bounds()
	if b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("bounds = %v, want 3x2", b)
	}
}

func TestRenderShading(t *testing.T) {
	img := Render(testMap())

	low := img.RGBAAt(0, 0)  // meadow at the lowest surface
	high := img.RGBAAt(0, 1) // meadow at the highest surface
	if high != biomeColors[gen.BiomeMeadow] {
		t.Errorf("highest meadow = %v, want full base colour %v", high, biomeColors[gen.BiomeMeadow])
	}
	if low.G >= high.G {
		t.Errorf("low column G = %d, want darker than high column G = %d", low.G, high.G)
	}
}

func TestRenderFlatMap(t *testing.T) {
	m := region.ColumnMap{Columns: [][]gen.Column{{{SurfaceY: 4, Biome: gen.BiomeDesert}}}}
	got := Render(m).RGBAAt(0, 0)
	if got != biomeColors[gen.BiomeDesert] {
		t.Errorf("flat map pixel = %v, want %v", got, biomeColors[gen.BiomeDesert])
	}
}

func TestRenderEmpty(t *testing.T) {
	img := Render(region.ColumnMap{})
	if !img.Bounds().Empty() {
		t.Errorf("bounds = %v, want empty", img.Bounds())
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preview.png")
	if err := WritePNG(path, Render(testMap())); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("decoded bounds = %v, want 3x2", b)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}
}
