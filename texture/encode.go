package texture

import (
	"math"

	"github.com/gogpu/gputypes"
)

// DefaultExposure maps the gain-scaled voxel range onto the 8-bit range.
const DefaultExposure = 0.25

// Encode tone-maps row-major RGB float texels into 8-bit texels of format,
// appending to dst[:0]. Each channel becomes 1-exp(-v*exposure); negative
// and NaN values encode as zero. Alpha is always opaque.
//
// Only RGBA8Unorm and BGRA8Unorm are supported; any other format encodes
// as RGBA8.
func Encode(texels []float32, dst []byte, format gputypes.TextureFormat, exposure float32) []byte {
	n := len(texels) / 3
	if cap(dst) < n*4 {
		dst = make([]byte, n*4)
	}
	dst = dst[:n*4]

	bgra := format == gputypes.TextureFormatBGRA8Unorm
	for i := range n {
		r := tonemap(texels[i*3], exposure)
		g := tonemap(texels[i*3+1], exposure)
		b := tonemap(texels[i*3+2], exposure)
		if bgra {
			r, b = b, r
		}
		o := dst[i*4 : i*4+4 : i*4+4]
		o[0], o[1], o[2], o[3] = r, g, b, 0xff
	}
	return dst
}

func tonemap(v, exposure float32) byte {
	if !(v > 0) {
		return 0
	}
	x := 1 - math.Exp(-float64(v*exposure))
	return byte(x*255 + 0.5)
}
