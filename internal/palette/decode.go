package palette

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/mmcdole/moodreel/internal/domain"
	_ "golang.org/x/image/webp"
)

// maxArtworkBytes bounds how much of an artwork response is read
const maxArtworkBytes = 20 << 20

// Decode reads and decodes a JPEG, PNG, GIF or WebP image.
// Failures wrap domain.ErrArtworkDecode.
func Decode(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxArtworkBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read: %v", domain.ErrArtworkDecode, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty image data", domain.ErrArtworkDecode)
	}
	if len(data) > maxArtworkBytes {
		return nil, fmt.Errorf("%w: image exceeds %d bytes", domain.ErrArtworkDecode, maxArtworkBytes)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrArtworkDecode, err)
	}
	return img, nil
}
