package palette

import (
	"bytes"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/mmcdole/moodreel/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_PNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solidImage(6, 4, color.NRGBA{R: 255, A: 255})))

	img, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 6, img.Bounds().Dx())
	assert.Equal(t, 4, img.Bounds().Dy())
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode(strings.NewReader("not an image"))
	assert.ErrorIs(t, err, domain.ErrArtworkDecode)

	_, err = Decode(strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrArtworkDecode)
}
