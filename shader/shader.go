package shader

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/lightatlas"
)

// Source is the WGSL source of the atlas sampling shader.
//
//go:embed shaders/atlas.wgsl
var Source string

// Entry points of Source.
const (
	VertexEntry   = "vs_main"
	FragmentEntry = "fs_main"
)

// Compile compiles Source to SPIR-V words.
func Compile() ([]uint32, error) {
	return CompileWGSL(Source)
}

// CompileWGSL compiles WGSL source to SPIR-V uint32 words.
func CompileWGSL(src string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("failed to compile shader: %w", err)
	}

	// SPIR-V is little-endian 32-bit words
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = binary.LittleEndian.Uint32(spirvBytes[i*4:])
	}
	return spirvCode, nil
}

// Program is the compiled atlas shader on one device.
type Program struct {
	device hal.Device
	module hal.ShaderModule
}

// CreateModule compiles the atlas shader and creates its module on device.
func CreateModule(device hal.Device) (*Program, error) {
	spirv, err := Compile()
	if err != nil {
		return nil, err
	}
	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: "lightatlas",
		Source: hal.ShaderSource{
			SPIRV: spirv,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create shader module: %w", err)
	}
	lightatlas.Logger().Debug("shader: atlas module created", "words", len(spirv))
	return &Program{device: device, module: module}, nil
}

// Module returns the shader module.
func (p *Program) Module() hal.ShaderModule {
	return p.module
}

// Destroy releases the shader module. It is safe to call more than once.
func (p *Program) Destroy() {
	if p.device == nil {
		return
	}
	if p.module != nil {
		p.device.DestroyShaderModule(p.module)
		p.module = nil
	}
	p.device = nil
}

// UniformSize is the size in bytes of the Uniforms block.
const UniformSize = 32

// Uniforms mirrors the WGSL Uniforms struct.
type Uniforms struct {
	Origin   lightatlas.Vec2
	Size     lightatlas.Vec2
	Exposure float32
	Ambient  float32
}

// NewUniforms returns the uniforms that map world positions onto g.
func NewUniforms(g *lightatlas.Grid, exposure, ambient float32) Uniforms {
	return Uniforms{
		Origin:   g.Origin(),
		Size:     g.Size().Vec2(),
		Exposure: exposure,
		Ambient:  ambient,
	}
}

// Bytes encodes u in the std140 layout of the WGSL block.
func (u Uniforms) Bytes() []byte {
	b := make([]byte, UniformSize)
	put := func(i int, v float32) {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(v))
	}
	put(0, u.Origin.X)
	put(1, u.Origin.Y)
	put(2, u.Size.X)
	put(3, u.Size.Y)
	put(4, u.Exposure)
	put(5, u.Ambient)
	return b
}
