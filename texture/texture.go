package texture

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Descriptor describes the atlas texture a host allocates.
// This mirrors the fields of the WebGPU GPUTextureDescriptor the atlas needs.
type Descriptor struct {
	// Label is an optional debug label for the texture.
	Label string

	// Width and Height are the atlas extent in texels, one per voxel.
	Width  uint32
	Height uint32

	// Format is the texture pixel format.
	Format gputypes.TextureFormat

	// Usage specifies how the texture will be used.
	Usage Usage
}

// Usage specifies how a texture can be used.
// These flags can be combined with bitwise OR.
type Usage uint32

const (
	// UsageCopyDst allows the texture to be written by uploads.
	UsageCopyDst Usage = 1 << iota

	// UsageTextureBinding allows the texture to be sampled by shaders.
	UsageTextureBinding
)

// NewDescriptor returns the descriptor of a sampled, uploadable atlas
// texture.
func NewDescriptor(width, height int, format gputypes.TextureFormat) Descriptor {
	return Descriptor{
		Label:  "lightatlas",
		Width:  uint32(width),
		Height: uint32(height),
		Format: format,
		Usage:  UsageCopyDst | UsageTextureBinding,
	}
}

// BytesPerTexel returns the encoded size of one texel.
func (d Descriptor) BytesPerTexel() int {
	return 4
}

// Size returns the encoded size of the whole texture in bytes.
func (d Descriptor) Size() int {
	return int(d.Width) * int(d.Height) * d.BytesPerTexel()
}

// FormatFor returns the 8-bit format matching the host surface: BGRA8 when
// the surface is BGRA8, RGBA8 otherwise. A nil provider yields RGBA8.
func FormatFor(provider gpucontext.DeviceProvider) gputypes.TextureFormat {
	if provider != nil && provider.SurfaceFormat() == gputypes.TextureFormatBGRA8Unorm {
		return gputypes.TextureFormatBGRA8Unorm
	}
	return gputypes.TextureFormatRGBA8Unorm
}
