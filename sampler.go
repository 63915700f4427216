package swarm

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
)

// PointSample is one colored point produced by sampling an image. Samples
// are immutable once created; particles copy from them at seeding time.
type PointSample struct {
	X, Y    float64 // viewport coordinates
	R, G, B uint8   // opaque pixel color
	Weight  float64 // pixel alpha mapped to [0, 1]
	Size    float64 // rendered square size in pixels
}

// SamplePoints converts a decoded image and a target rectangle into point
// samples. The image is rasterized to the integer-rounded rectangle size,
// then the pixel grid is walked at t.Stride in both axes; a sample is kept
// only when its alpha exceeds t.MinAlpha. Sample positions are offset by
// half the stride so the cloud is centered on the pixels it represents.
//
// Sampling is deterministic: the same image and rect always produce the
// same samples. A nil image or a rect without positive area yields nil:
// "not ready", never an error.
func SamplePoints(img image.Image, rect Rect, t SamplerTuning) []PointSample {
	if img == nil || rect.Empty() {
		return nil
	}
	w := int(math.Round(rect.Width))
	h := int(math.Round(rect.Height))
	if w <= 0 || h <= 0 {
		return nil
	}

	nrgba := rasterize(img, w, h)
	stride := t.Stride
	if stride < 1 {
		stride = 1
	}
	half := float64(stride) / 2
	minAlpha := uint8(t.MinAlpha)

	// Worst case keeps every grid point; the slice is trimmed by append.
	samples := make([]PointSample, 0, ((w+stride-1)/stride)*((h+stride-1)/stride))
	for py := 0; py < h; py += stride {
		row := nrgba.Pix[py*nrgba.Stride:]
		for px := 0; px < w; px += stride {
			o := px * 4
			a := row[o+3]
			if a <= minAlpha {
				continue
			}
			samples = append(samples, PointSample{
				X:      rect.X + float64(px) + half,
				Y:      rect.Y + float64(py) + half,
				R:      row[o+0],
				G:      row[o+1],
				B:      row[o+2],
				Weight: float64(a) / 255.0,
				Size:   t.Size,
			})
		}
	}
	return samples
}

// rasterize scales img into a w x h buffer, the pixel grid the sampler
// walks. NRGBA keeps color channels straight (not premultiplied), so the
// sampled color and the alpha weight stay independent. A source that
// already matches is still copied so Pix offsets are uniform regardless of
// the input's color model.
func rasterize(img image.Image, w, h int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}
