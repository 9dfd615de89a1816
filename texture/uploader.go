package texture

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/lightatlas"
)

// Common errors returned by Uploader operations.
var (
	// ErrClosed is returned when operations are attempted on a closed uploader.
	ErrClosed = errors.New("texture: uploader is closed")

	// ErrNilCreator is returned when a nil TextureCreator is passed.
	ErrNilCreator = errors.New("texture: nil TextureCreator")

	// ErrInvalidDimensions is returned when width or height is invalid.
	ErrInvalidDimensions = errors.New("texture: invalid dimensions")

	// ErrTexelCount is returned when the texel slice does not match the size.
	ErrTexelCount = errors.New("texture: texel count does not match size")
)

// TextureCreator creates host textures. data is already encoded in
// desc.Format. The host renderer usually implements it.
type TextureCreator interface {
	NewTexture(desc Descriptor, data []byte) (any, error)
}

// textureDestroyer matches the host texture's Destroy method.
type textureDestroyer interface {
	Destroy()
}

// Uploader keeps the host texture of an atlas up to date.
//
// The texture is created lazily on the first Upload and updated in place
// afterwards through gpucontext.TextureUpdater. When the atlas is resized
// the texture is recreated; the old one is destroyed only after its
// replacement exists, since in-flight frames may still sample it.
//
// Uploader is NOT safe for concurrent use.
type Uploader struct {
	provider gpucontext.DeviceProvider
	creator  TextureCreator
	format   gputypes.TextureFormat
	exposure float32

	texture any
	width   int
	height  int
	buf     []byte
	closed  bool
}

// Option configures an Uploader.
type Option func(*Uploader)

// WithExposure sets the tone-mapping exposure. The default is DefaultExposure.
func WithExposure(exposure float32) Option {
	return func(u *Uploader) {
		u.exposure = exposure
	}
}

// NewUploader creates an uploader that allocates textures through creator.
// The texture format follows the provider's surface format (see FormatFor);
// provider may be nil when the host has no GPU context to share.
func NewUploader(provider gpucontext.DeviceProvider, creator TextureCreator, opts ...Option) (*Uploader, error) {
	if creator == nil {
		return nil, ErrNilCreator
	}
	u := &Uploader{
		provider: provider,
		creator:  creator,
		format:   FormatFor(provider),
		exposure: DefaultExposure,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u, nil
}

// Descriptor returns the descriptor of the current texture.
func (u *Uploader) Descriptor() Descriptor {
	return NewDescriptor(u.width, u.height, u.format)
}

// Format returns the texel format uploads are encoded in.
func (u *Uploader) Format() gputypes.TextureFormat {
	return u.format
}

// Provider returns the DeviceProvider the uploader was created with.
func (u *Uploader) Provider() gpucontext.DeviceProvider {
	return u.provider
}

// Upload encodes width*height RGB float texels and writes them to the host
// texture, creating or recreating it as needed. It returns the texture.
func (u *Uploader) Upload(width, height int, texels []float32) (any, error) {
	if u.closed {
		return nil, ErrClosed
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	if len(texels) != width*height*3 {
		return nil, fmt.Errorf("%w: %d values for %dx%d", ErrTexelCount, len(texels), width, height)
	}

	u.buf = Encode(texels, u.buf, u.format, u.exposure)

	if u.texture == nil || width != u.width || height != u.height {
		tex, err := u.creator.NewTexture(NewDescriptor(width, height, u.format), u.buf)
		if err != nil {
			return nil, fmt.Errorf("texture: create %dx%d: %w", width, height, err)
		}
		destroy(u.texture)
		u.texture = tex
		u.width, u.height = width, height
		lightatlas.Logger().Debug("texture: atlas texture created",
			"width", width, "height", height, "format", u.format)
		return u.texture, nil
	}

	if updater, ok := u.texture.(gpucontext.TextureUpdater); ok {
		if err := updater.UpdateData(u.buf); err != nil {
			return nil, fmt.Errorf("texture: update failed: %w", err)
		}
	}
	return u.texture, nil
}

// UploadAtlas uploads the current voxel colors of a.
func (u *Uploader) UploadAtlas(a *lightatlas.Atlas) (any, error) {
	size := a.Grid().Size()
	return u.Upload(size.X, size.Y, a.Texels())
}

// Texture returns the current texture without uploading, or nil.
func (u *Uploader) Texture() any {
	return u.texture
}

// Close destroys the texture. Close is idempotent.
func (u *Uploader) Close() error {
	if u.closed {
		return nil
	}
	u.closed = true
	destroy(u.texture)
	u.texture = nil
	u.provider = nil
	return nil
}

func destroy(tex any) {
	if d, ok := tex.(textureDestroyer); ok {
		d.Destroy()
	}
}
