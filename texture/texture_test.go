package texture

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/lightatlas"
)

// mockDevice implements gpucontext.Device for testing.
type mockDevice struct{}

func (m *mockDevice) Poll(wait bool) {}
func (m *mockDevice) Destroy()       {}

// mockQueue implements gpucontext.Queue for testing.
type mockQueue struct{}

// mockAdapter implements gpucontext.Adapter for testing.
type mockAdapter struct{}

// mockProvider implements gpucontext.DeviceProvider for testing.
type mockProvider struct {
	format gputypes.TextureFormat
}

func (m *mockProvider) Device() gpucontext.Device             { return &mockDevice{} }
func (m *mockProvider) Queue() gpucontext.Queue               { return &mockQueue{} }
func (m *mockProvider) Adapter() gpucontext.Adapter           { return &mockAdapter{} }
func (m *mockProvider) SurfaceFormat() gputypes.TextureFormat { return m.format }
func (m *mockProvider) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Type: gpucontext.AdapterTypeUnknown}
}

// mockTexture implements gpucontext.TextureUpdater and Destroy.
type mockTexture struct {
	width     int
	height    int
	format    gputypes.TextureFormat
	data      []byte
	updated   int
	destroyed bool
	failWith  error
}

func (m *mockTexture) UpdateData(data []byte) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.data = append(m.data[:0], data...)
	m.updated++
	return nil
}

func (m *mockTexture) Destroy() {
	m.destroyed = true
}

// mockCreator implements TextureCreator for testing.
type mockCreator struct {
	textures []*mockTexture
	failNext bool
}

func (m *mockCreator) NewTexture(desc Descriptor, data []byte) (any, error) {
	if m.failNext {
		m.failNext = false
		return nil, errors.New("mock texture creation failed")
	}
	tex := &mockTexture{
		width:  int(desc.Width),
		height: int(desc.Height),
		format: desc.Format,
		data:   append([]byte(nil), data...),
	}
	m.textures = append(m.textures, tex)
	return tex, nil
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		name     string
		provider gpucontext.DeviceProvider
		want     gputypes.TextureFormat
	}{
		{"nil provider", nil, gputypes.TextureFormatRGBA8Unorm},
		{"bgra surface", &mockProvider{format: gputypes.TextureFormatBGRA8Unorm}, gputypes.TextureFormatBGRA8Unorm},
		{"rgba surface", &mockProvider{format: gputypes.TextureFormatRGBA8Unorm}, gputypes.TextureFormatRGBA8Unorm},
		{"undefined surface", &mockProvider{format: gputypes.TextureFormatUndefined}, gputypes.TextureFormatRGBA8Unorm},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatFor(tt.provider); got != tt.want {
				t.Errorf("FormatFor = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewDescriptor(t *testing.T) {
	d := NewDescriptor(16, 12, gputypes.TextureFormatRGBA8Unorm)
	if d.Width != 16 || d.Height != 12 {
		t.Errorf("size = %dx%d", d.Width, d.Height)
	}
	if d.Size() != 16*12*4 {
		t.Errorf("Size = %d", d.Size())
	}
	if d.Usage&UsageCopyDst == 0 || d.Usage&UsageTextureBinding == 0 {
		t.Errorf("Usage = %b", d.Usage)
	}
}

func TestEncode(t *testing.T) {
	inf := float32(math.Inf(1))
	nan := float32(math.NaN())
	texels := []float32{
		0, 0, 0,
		inf, -1, nan,
		4, 0, 0,
	}

	rgba := Encode(texels, nil, gputypes.TextureFormatRGBA8Unorm, 0.25)
	if len(rgba) != 12 {
		t.Fatalf("len = %d, want 12", len(rgba))
	}
	want := []byte{
		0, 0, 0, 255,
		255, 0, 0, 255,
		byte((1-math.Exp(-1))*255 + 0.5), 0, 0, 255,
	}
	for i := range want {
		if rgba[i] != want[i] {
			t.Errorf("byte %d = %d, want %d", i, rgba[i], want[i])
		}
	}

	bgra := Encode(texels, nil, gputypes.TextureFormatBGRA8Unorm, 0.25)
	if bgra[8] != 0 || bgra[10] != want[8] {
		t.Errorf("BGRA texel 2 = %v, want red in byte 2", bgra[8:12])
	}

	// dst is reused when large enough.
	reused := Encode(texels, rgba, gputypes.TextureFormatRGBA8Unorm, 0.25)
	if &reused[0] != &rgba[0] {
		t.Error("Encode did not reuse dst")
	}
}

func TestEncode_Monotonic(t *testing.T) {
	prev := -1
	for v := float32(0); v < 40; v += 0.5 {
		b := int(Encode([]float32{v, v, v}, nil, gputypes.TextureFormatRGBA8Unorm, DefaultExposure)[0])
		if b < prev {
			t.Fatalf("tone map decreased at %v: %d < %d", v, b, prev)
		}
		prev = b
	}
}

func TestNewUploader_NilCreator(t *testing.T) {
	if _, err := NewUploader(nil, nil); !errors.Is(err, ErrNilCreator) {
		t.Errorf("error = %v, want ErrNilCreator", err)
	}
}

func TestUploader_Lifecycle(t *testing.T) {
	creator := &mockCreator{}
	u, err := NewUploader(&mockProvider{}, creator, WithExposure(1))
	if err != nil {
		t.Fatal(err)
	}

	texels := make([]float32, 4*3*3)
	tex, err := u.Upload(4, 3, texels)
	if err != nil {
		t.Fatalf("first Upload: %v", err)
	}
	if len(creator.textures) != 1 || tex != creator.textures[0] {
		t.Fatal("first Upload did not create a texture")
	}
	first := creator.textures[0]
	if first.width != 4 || first.height != 3 || len(first.data) != 4*3*4 {
		t.Errorf("texture %dx%d with %d bytes", first.width, first.height, len(first.data))
	}

	texels[0] = 100
	if _, err := u.Upload(4, 3, texels); err != nil {
		t.Fatalf("second Upload: %v", err)
	}
	if len(creator.textures) != 1 || first.updated != 1 {
		t.Errorf("second Upload created %d textures, updated %d times", len(creator.textures), first.updated)
	}
	if first.data[0] != 255 {
		t.Errorf("updated texel = %d, want 255", first.data[0])
	}

	if _, err := u.Upload(2, 2, make([]float32, 2*2*3)); err != nil {
		t.Fatalf("resized Upload: %v", err)
	}
	if len(creator.textures) != 2 || !first.destroyed {
		t.Error("resize did not replace and destroy the texture")
	}
	if d := u.Descriptor(); d.Width != 2 || d.Height != 2 {
		t.Errorf("Descriptor = %+v", d)
	}

	if err := u.Close(); err != nil {
		t.Fatal(err)
	}
	if !creator.textures[1].destroyed {
		t.Error("Close did not destroy the texture")
	}
	if err := u.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if _, err := u.Upload(2, 2, make([]float32, 12)); !errors.Is(err, ErrClosed) {
		t.Errorf("Upload after Close error = %v", err)
	}
}

func TestUploader_SurfaceFormat(t *testing.T) {
	texels := []float32{4, 0, 0}
	tests := []struct {
		name     string
		provider gpucontext.DeviceProvider
		want     gputypes.TextureFormat
		redByte  int
	}{
		{"no provider", nil, gputypes.TextureFormatRGBA8Unorm, 0},
		{"rgba surface", &mockProvider{format: gputypes.TextureFormatRGBA8Unorm}, gputypes.TextureFormatRGBA8Unorm, 0},
		{"bgra surface", &mockProvider{format: gputypes.TextureFormatBGRA8Unorm}, gputypes.TextureFormatBGRA8Unorm, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creator := &mockCreator{}
			u, err := NewUploader(tt.provider, creator)
			if err != nil {
				t.Fatal(err)
			}
			if u.Format() != tt.want {
				t.Errorf("Format() = %v, want %v", u.Format(), tt.want)
			}
			if _, err := u.Upload(1, 1, texels); err != nil {
				t.Fatal(err)
			}
			tex := creator.textures[0]
			if tex.format != tt.want || u.Descriptor().Format != tt.want {
				t.Errorf("texture format = %v, descriptor = %v, want %v", tex.format, u.Descriptor().Format, tt.want)
			}
			if tex.data[tt.redByte] == 0 || tex.data[2-tt.redByte] != 0 {
				t.Errorf("red texel encoded as %v", tex.data)
			}
		})
	}
}

func TestUploader_Errors(t *testing.T) {
	creator := &mockCreator{}
	u, err := NewUploader(nil, creator)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := u.Upload(0, 3, nil); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("zero width error = %v", err)
	}
	if _, err := u.Upload(2, 2, make([]float32, 5)); !errors.Is(err, ErrTexelCount) {
		t.Errorf("short texels error = %v", err)
	}

	creator.failNext = true
	if _, err := u.Upload(2, 2, make([]float32, 12)); err == nil {
		t.Error("creation failure not reported")
	}
	if u.Texture() != nil {
		t.Error("failed creation left a texture")
	}

	if _, err := u.Upload(2, 2, make([]float32, 12)); err != nil {
		t.Fatal(err)
	}
	boom := errors.New("device lost")
	creator.textures[0].failWith = boom
	if _, err := u.Upload(2, 2, make([]float32, 12)); !errors.Is(err, boom) {
		t.Errorf("update error = %v, want wrapped %v", err, boom)
	}
}

func TestUploader_UploadAtlas(t *testing.T) {
	e, err := lightatlas.NewEngine()
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()
	a, err := lightatlas.NewAtlas(lightatlas.Quality{SampleCount: 8, AtlasHeight: 12}, e)
	if err != nil {
		t.Fatal(err)
	}
	a.SetFullyLit(true)

	creator := &mockCreator{}
	u, err := NewUploader(nil, creator)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := u.UploadAtlas(a); err != nil {
		t.Fatal(err)
	}
	tex := creator.textures[0]
	if tex.width != lightatlas.DefaultAtlasWidth || tex.height != 12 {
		t.Errorf("texture %dx%d", tex.width, tex.height)
	}
	if tex.data[0] == 0 {
		t.Error("fully lit atlas uploaded as black")
	}
}
