package palette

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/mmcdole/moodreel/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidImage(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func randomImage(w, h int, seed uint64) *image.NRGBA {
	r := rand.New(rand.NewSource(int64(seed)))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(r.Intn(256)),
				G: uint8(r.Intn(256)),
				B: uint8(r.Intn(256)),
				A: 255,
			})
		}
	}
	return img
}

func TestExtract_SolidRed(t *testing.T) {
	q := NewQuantizer(0)
	p := q.Extract(solidImage(10, 10, color.NRGBA{R: 255, A: 255}), 5)

	require.Len(t, p, 1)
	assert.Equal(t, [3]uint8{255, 0, 0}, p[0].RGB())
	assert.Equal(t, "#FF0000", p[0].Hex())
	assert.Equal(t, 100, p[0].Population)
}

func TestExtract_TwoColorsOrderedByDominance(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			c := color.NRGBA{B: 200, A: 255}
			if y < 3 {
				c = color.NRGBA{R: 10, G: 220, B: 30, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}

	p := NewQuantizer(0).Extract(img, 5)
	require.Len(t, p, 2, "never pads beyond the distinct colours")
	assert.Equal(t, "#0000C8", p[0].Hex())
	assert.Equal(t, 70, p[0].Population)
	assert.Equal(t, "#0ADC1E", p[1].Hex())
	assert.Equal(t, 30, p[1].Population)
}

func TestExtract_KOneIsMean(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 0, G: 0, B: 0, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 255, G: 100, B: 3, A: 255})

	p := NewQuantizer(0).Extract(img, 1)
	require.Len(t, p, 1)
	// 127.5 rounds up, 50 stays, 1.5 rounds up
	assert.Equal(t, [3]uint8{128, 50, 2}, p[0].RGB())
	assert.Equal(t, 2, p[0].Population)
}

func TestExtract_DiscardsTransparentPixels(t *testing.T) {
	img := solidImage(4, 4, color.NRGBA{})
	img.SetNRGBA(0, 0, color.NRGBA{G: 255, A: 255})

	p := NewQuantizer(0).Extract(img, 5)
	require.Len(t, p, 1)
	assert.Equal(t, "#00FF00", p[0].Hex())
	assert.Equal(t, 1, p[0].Population)
}

func TestExtract_EmptyCases(t *testing.T) {
	q := NewQuantizer(0)

	assert.Empty(t, q.Extract(nil, 5))
	assert.Empty(t, q.Extract(solidImage(3, 3, color.NRGBA{}), 5), "fully transparent")
	assert.Empty(t, q.Extract(image.NewNRGBA(image.Rect(0, 0, 0, 0)), 5), "zero pixels")
	assert.Empty(t, q.Extract(solidImage(3, 3, color.NRGBA{R: 1, A: 255}), 0), "k < 1")
}

func TestExtract_LengthBoundedByK(t *testing.T) {
	img := randomImage(64, 48, 7)
	q := NewQuantizer(0)

	for k := 1; k <= 12; k++ {
		p := q.Extract(img, k)
		assert.Len(t, p, k, "random image has plenty of distinct colours")
	}
}

func TestExtract_Deterministic(t *testing.T) {
	img := randomImage(200, 120, 42)
	q := NewQuantizer(64)

	first := q.Extract(img, 5)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, q.Extract(img, 5))
	}
}

func TestExtract_DominanceOrderAndDistinct(t *testing.T) {
	p := NewQuantizer(0).Extract(randomImage(50, 50, 3), 8)
	require.NotEmpty(t, p)

	total := 0
	seen := make(map[string]bool)
	for i, s := range p {
		total += s.Population
		assert.False(t, seen[s.Hex()], "duplicate swatch %s", s.Hex())
		seen[s.Hex()] = true
		if i > 0 {
			assert.GreaterOrEqual(t, p[i-1].Population, s.Population)
		}
	}
	assert.Equal(t, 2500, total, "every opaque pixel belongs to one swatch")
}

func TestExtract_FewDistinctColorsShorterPalette(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 10, A: 255})
	img.SetNRGBA(2, 0, color.NRGBA{R: 11, A: 255})

	p := NewQuantizer(0).Extract(img, 5)
	require.Len(t, p, 2)
	assert.Equal(t, [3]uint8{10, 0, 0}, p[0].RGB())
	assert.Equal(t, [3]uint8{11, 0, 0}, p[1].RGB())
}

func TestDownsample_BoundsWorkingResolution(t *testing.T) {
	q := NewQuantizer(32)
	out := q.downsample(randomImage(200, 100, 1))
	assert.Equal(t, image.Rect(0, 0, 32, 16), out.Bounds())

	small := randomImage(10, 20, 1)
	assert.Same(t, small, q.downsample(small).(*image.NRGBA))

	unbounded := NewQuantizer(-1)
	big := randomImage(300, 10, 1)
	assert.Same(t, big, unbounded.downsample(big).(*image.NRGBA))
}

func TestDownsample_PreservesUniformColor(t *testing.T) {
	p := NewQuantizer(16).Extract(solidImage(500, 281, color.NRGBA{R: 255, A: 255}), 5)
	require.Len(t, p, 1)
	assert.Equal(t, domain.ColorSwatch{R: 255, Population: 16 * 8}, p[0])
}
