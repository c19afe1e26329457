package service

import (
	"context"
	"image"
	"image/color"
	"sync"
	"testing"

	"github.com/mmcdole/moodreel/internal/domain"
	"github.com/mmcdole/moodreel/internal/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeArtwork struct {
	mu     sync.Mutex
	images map[string]image.Image
	paths  []string
}

func (f *fakeArtwork) FetchArtwork(ctx context.Context, path string) (image.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paths = append(f.paths, path)
	img, ok := f.images[path]
	if !ok {
		return nil, domain.ErrArtworkDecode
	}
	return img, nil
}

func solid(c color.NRGBA) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func newPaletteService(art *fakeArtwork) *PaletteService {
	return NewPaletteService(palette.NewCache(palette.CacheOptions{}), art, nil)
}

func TestPaletteFor_PrefersBackdrop(t *testing.T) {
	art := &fakeArtwork{images: map[string]image.Image{
		"/backdrop.jpg": solid(color.NRGBA{R: 200, G: 40, B: 60, A: 255}),
		"/poster.jpg":   solid(color.NRGBA{B: 255, A: 255}),
	}}
	svc := newPaletteService(art)

	item := domain.CatalogItem{ID: 1, PosterPath: "/poster.jpg", BackdropPath: "/backdrop.jpg"}
	p, err := svc.PaletteFor(context.Background(), item)
	require.NoError(t, err)
	require.Len(t, p, 1)
	assert.Equal(t, "#C8283C", p[0].Hex())
	assert.Equal(t, []string{"/backdrop.jpg"}, art.paths)

	cached, ok := svc.Cached(1)
	assert.True(t, ok)
	assert.Equal(t, p, cached)
}

func TestPaletteFor_PosterFallbackAndMemoization(t *testing.T) {
	art := &fakeArtwork{images: map[string]image.Image{
		"/poster.jpg": solid(color.NRGBA{G: 128, A: 255}),
	}}
	svc := newPaletteService(art)
	item := domain.CatalogItem{ID: 2, PosterPath: "/poster.jpg"}

	for i := 0; i < 3; i++ {
		p, err := svc.PaletteFor(context.Background(), item)
		require.NoError(t, err)
		assert.Equal(t, "#008000", p[0].Hex())
	}
	assert.Len(t, art.paths, 1)
}

func TestPaletteFor_NoArtwork(t *testing.T) {
	art := &fakeArtwork{}
	svc := newPaletteService(art)

	p, err := svc.PaletteFor(context.Background(), domain.CatalogItem{ID: 3})
	assert.Empty(t, p)
	require.ErrorIs(t, err, domain.ErrNoArtwork)
	assert.Empty(t, art.paths)
}

func TestPaletteFor_BrokenArtworkYieldsEmptyPalette(t *testing.T) {
	art := &fakeArtwork{images: map[string]image.Image{}}
	svc := newPaletteService(art)
	item := domain.CatalogItem{ID: 4, PosterPath: "/broken.jpg"}

	p, err := svc.PaletteFor(context.Background(), item)
	assert.Empty(t, p)

	var ae *domain.ArtworkError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, 4, ae.MovieID)
	assert.Equal(t, "/broken.jpg", ae.Path)
	assert.ErrorIs(t, err, domain.ErrArtworkDecode)

	// The failure is cached, the artwork is not requested again
	_, err = svc.PaletteFor(context.Background(), item)
	require.Error(t, err)
	assert.Len(t, art.paths, 1)
}
