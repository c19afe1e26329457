// Package palette derives a small dominance-ordered colour palette from
// artwork using median-cut quantization, and memoizes it per movie.
package palette

import (
	"cmp"
	"image"
	"image/color"
	"slices"

	"github.com/mmcdole/moodreel/internal/domain"
	"golang.org/x/image/draw"
)

// DefaultMaxDimension bounds the longest side of the working image
const DefaultMaxDimension = 128

// Quantizer extracts palettes with median-cut quantization.
// Output is bit-identical for identical input pixels and k.
type Quantizer struct {
	// MaxDimension bounds the longest side of the working image.
	// Zero uses DefaultMaxDimension, negative disables downsampling.
	MaxDimension int
}

// NewQuantizer creates a quantizer with the given working resolution bound
func NewQuantizer(maxDimension int) *Quantizer {
	return &Quantizer{MaxDimension: maxDimension}
}

// bin is one distinct colour and how many pixels carry it
type bin struct {
	c     [3]uint8
	count int
}

func (b bin) packed() uint32 {
	return uint32(b.c[0])<<16 | uint32(b.c[1])<<8 | uint32(b.c[2])
}

// bucket is a contiguous run of bins
type bucket struct {
	bins  []bin
	count int
}

// Extract returns at most k swatches ordered by descending population.
// A nil image, k < 1 or an image without opaque pixels yields an empty palette.
func (q *Quantizer) Extract(img image.Image, k int) domain.Palette {
	if img == nil || k < 1 {
		return domain.Palette{}
	}

	bins := histogram(q.downsample(img))
	if len(bins) == 0 {
		return domain.Palette{}
	}

	buckets := []bucket{{bins: bins, count: totalCount(bins)}}
	for len(buckets) < k {
		idx := pickBucket(buckets)
		if idx < 0 {
			break
		}
		left, right := split(buckets[idx])
		buckets[idx] = left
		buckets = slices.Insert(buckets, idx+1, right)
	}

	out := make(domain.Palette, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, average(b))
	}

	slices.SortStableFunc(out, func(a, b domain.ColorSwatch) int {
		if c := cmp.Compare(b.Population, a.Population); c != 0 {
			return c
		}
		return cmp.Compare(packSwatch(a), packSwatch(b))
	})
	return out
}

// downsample scales the image so its longest side is at most MaxDimension.
// Nearest-neighbour sampling keeps the original colours intact.
func (q *Quantizer) downsample(img image.Image) image.Image {
	limit := q.MaxDimension
	if limit == 0 {
		limit = DefaultMaxDimension
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if limit < 0 || (w <= limit && h <= limit) {
		return img
	}

	nw, nh := limit, limit
	if w >= h {
		nh = max(1, h*limit/w)
	} else {
		nw = max(1, w*limit/h)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, nw, nh))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}

// histogram counts opaque pixels per exact colour, sorted by packed RGB
func histogram(img image.Image) []bin {
	bounds := img.Bounds()
	counts := make(map[uint32]int)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			px := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if px.A == 0 {
				continue
			}
			key := uint32(px.R)<<16 | uint32(px.G)<<8 | uint32(px.B)
			counts[key]++
		}
	}

	bins := make([]bin, 0, len(counts))
	for key, n := range counts {
		bins = append(bins, bin{
			c:     [3]uint8{uint8(key >> 16), uint8(key >> 8), uint8(key)},
			count: n,
		})
	}
	slices.SortFunc(bins, func(a, b bin) int {
		return cmp.Compare(a.packed(), b.packed())
	})
	return bins
}

func totalCount(bins []bin) int {
	n := 0
	for _, b := range bins {
		n += b.count
	}
	return n
}

// widestAxis returns the channel with the greatest range and that range.
// Ties prefer R, then G, then B.
func widestAxis(bins []bin) (axis int, span int) {
	lo := [3]uint8{255, 255, 255}
	var hi [3]uint8
	for _, b := range bins {
		for ch := 0; ch < 3; ch++ {
			lo[ch] = min(lo[ch], b.c[ch])
			hi[ch] = max(hi[ch], b.c[ch])
		}
	}
	axis, span = 0, -1
	for ch := 0; ch < 3; ch++ {
		if r := int(hi[ch]) - int(lo[ch]); r > span {
			axis, span = ch, r
		}
	}
	return axis, span
}

// pickBucket chooses the splittable bucket with the most pixels.
// Ties go to the lowest index. Returns -1 when nothing can be split.
func pickBucket(buckets []bucket) int {
	best := -1
	for i, b := range buckets {
		if len(b.bins) < 2 {
			continue
		}
		if best < 0 || b.count > buckets[best].count {
			best = i
		}
	}
	return best
}

// split cuts a bucket at the pixel-weighted median of its widest axis.
// The cut is moved to a value boundary so both halves are disjoint along
// the axis, which keeps every representative colour distinct.
func split(b bucket) (bucket, bucket) {
	axis, _ := widestAxis(b.bins)

	bins := slices.Clone(b.bins)
	slices.SortFunc(bins, func(x, y bin) int {
		if c := cmp.Compare(x.c[axis], y.c[axis]); c != 0 {
			return c
		}
		return cmp.Compare(x.packed(), y.packed())
	})

	n := len(bins)
	half := b.count / 2

	// cut is the index of the first bin of the right half
	cut, cum := n-1, 0
	for i, bn := range bins {
		cum += bn.count
		if cum >= half {
			cut = i + 1
			break
		}
	}
	cut = min(max(cut, 1), n-1)

	if bins[cut-1].c[axis] == bins[cut].c[axis] {
		v := bins[cut].c[axis]
		lo := cut - 1
		for lo > 0 && bins[lo-1].c[axis] == v {
			lo--
		}
		hi := cut
		for hi < n-1 && bins[hi+1].c[axis] == v {
			hi++
		}

		// Candidates: cut before the run (lo) or after it (hi+1)
		candidates := make([]int, 0, 2)
		if lo > 0 {
			candidates = append(candidates, lo)
		}
		if hi+1 < n {
			candidates = append(candidates, hi+1)
		}

		bestCut, bestDiff := -1, 0
		for _, c := range candidates {
			diff := totalCount(bins[:c]) - half
			if diff < 0 {
				diff = -diff
			}
			if bestCut < 0 || diff < bestDiff {
				bestCut, bestDiff = c, diff
			}
		}
		cut = bestCut
	}

	left := bins[:cut:cut]
	right := bins[cut:]
	return bucket{bins: left, count: totalCount(left)}, bucket{bins: right, count: totalCount(right)}
}

// average returns the pixel-weighted mean colour of a bucket, rounded to the
// nearest integer per channel
func average(b bucket) domain.ColorSwatch {
	var sum [3]uint64
	for _, bn := range b.bins {
		for ch := 0; ch < 3; ch++ {
			sum[ch] += uint64(bn.c[ch]) * uint64(bn.count)
		}
	}
	n := uint64(b.count)
	var mean [3]uint8
	for ch := 0; ch < 3; ch++ {
		mean[ch] = uint8(min((sum[ch]+n/2)/n, 255))
	}
	return domain.ColorSwatch{R: mean[0], G: mean[1], B: mean[2], Population: b.count}
}

func packSwatch(s domain.ColorSwatch) uint32 {
	return uint32(s.R)<<16 | uint32(s.G)<<8 | uint32(s.B)
}
