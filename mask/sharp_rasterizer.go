package mask

import "image"

import "golang.org/x/image/font/sfnt"
import "golang.org/x/image/math/fixed"

var _ Rasterizer = (*SharpRasterizer)(nil)

// The alpha value from which a pixel is considered solid when a
// [SharpRasterizer] has no explicit threshold.
const DefaultSharpThreshold = 128

// A rasterizer that quantizes all glyph mask values to fully opaque
// or fully transparent. This is what 1-bit dot-matrix output needs:
// blurry edges would otherwise be decided later by whoever packs the
// mask, and each consumer could pick a different cutoff.
//
// Since the implementation leverages type embedding, the available methods
// are the same as the ones for [DefaultRasterizer], even if they do not
// appear explicitly in the documentation.
type SharpRasterizer struct {
	DefaultRasterizer

	// Alpha values at or above the threshold become 255, the rest 0.
	// Zero means [DefaultSharpThreshold].
	Threshold uint8
}

// Satisfies the [Rasterizer] interface.
func (self *SharpRasterizer) Rasterize(outline sfnt.Segments, origin fixed.Point26_6) (*image.Alpha, error) {
	mask, err := self.DefaultRasterizer.Rasterize(outline, origin)
	if err != nil { return mask, err }
	threshold := self.Threshold
	if threshold == 0 { threshold = DefaultSharpThreshold }
	for i := 0; i < len(mask.Pix); i++ {
		if mask.Pix[i] < threshold {
			mask.Pix[i] = 0
		} else {
			mask.Pix[i] = 255
		}
	}
	return mask, nil
}
