// Package snapshot renders radiance grids to images for debugging.
package snapshot

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"github.com/gogpu/gputypes"
	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/lightatlas"
	"github.com/gogpu/lightatlas/texture"
)

// Format is an output image format.
type Format int

const (
	PNG Format = iota
	WebP
	TGA
)

// ErrUnknownFormat is returned for file extensions without an encoder.
var ErrUnknownFormat = errors.New("snapshot: unknown image format")

// String implements fmt.Stringer.
func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case WebP:
		return "webp"
	case TGA:
		return "tga"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FormatOf returns the format matching the extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".webp":
		return WebP, nil
	case ".tga":
		return TGA, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

// Image renders the sample-averaged voxels of g, one pixel per voxel,
// tone-mapped with exposure. Row 0 of the grid is the top row of the image.
func Image(g *lightatlas.Grid, exposure float32) *image.RGBA {
	size := g.Size()
	img := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	texture.Encode(g.Texels(nil), img.Pix, gputypes.TextureFormatRGBA8Unorm, exposure)
	return img
}

// Scale enlarges img by an integer factor. Nearest-neighbor keeps voxel
// edges sharp; smooth uses Catmull-Rom like the shader's filtered lookup.
func Scale(img image.Image, factor int, smooth bool) *image.RGBA {
	if factor < 1 {
		factor = 1
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	var interp xdraw.Interpolator = xdraw.NearestNeighbor
	if smooth {
		interp = xdraw.CatmullRom
	}
	interp.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// Encode writes img to w in format.
func Encode(w io.Writer, img image.Image, format Format) error {
	var err error
	switch format {
	case PNG:
		err = png.Encode(w, img)
	case WebP:
		err = nativewebp.Encode(w, img, nil)
	case TGA:
		err = tga.Encode(w, img)
	default:
		return fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
	if err != nil {
		return fmt.Errorf("snapshot: encode %v: %w", format, err)
	}
	return nil
}

// Save writes img to path, choosing the format from the extension.
func Save(path string, img image.Image) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	bw := bufio.NewWriter(f)
	if err := Encode(bw, img, format); err != nil {
		_ = f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	lightatlas.Logger().Debug("snapshot: saved", "path", path, "format", format.String())
	return nil
}
