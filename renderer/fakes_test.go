package renderer

import (
	"errors"
	"image"
	"strings"

	"github.com/richinsley/goshadershot/graphics"
)

// fakeContext is a window whose close button is pressed after closeAfter frames.
type fakeContext struct {
	width, height int
	closeAfter    int // 0 never closes
	frames        int
	mouse         [4]float32
	shutdown      bool
	current       int
}

func (c *fakeContext) MakeCurrent()                   { c.current++ }
func (c *fakeContext) Shutdown()                      { c.shutdown = true }
func (c *fakeContext) ShouldClose() bool              { return c.closeAfter > 0 && c.frames >= c.closeAfter }
func (c *fakeContext) EndFrame()                      { c.frames++ }
func (c *fakeContext) GetFramebufferSize() (int, int) { return c.width, c.height }
func (c *fakeContext) GetMouseInput() [4]float32      { return c.mouse }

type uniformCall struct {
	loc  int32
	vals []float32
}

// fakeDevice compiles anything that does not contain "syntax error" and records
// the GL traffic the pipeline generates.
type fakeDevice struct {
	failVertex bool
	failLink   bool
	compileLog string
	linkLog    string

	attribs  map[string]int32
	uniforms map[string]int32

	binary    []byte
	binaryErr error

	// pixel returns the RGBA value read back at (x, y), y counted from the bottom row.
	pixel func(x, y int) [4]byte

	programs      int
	sources       map[graphics.ShaderStage]string
	attached      []uint32
	retrievable   bool
	linked        bool
	used          uint32
	uploadAttrib  uint32
	uploadVerts   []float32
	uploadIndices []uint8
	uniformCalls  []uniformCall
	viewports     [][2]int
	clears        int
	draws         int
	drawCount     int
	reads         int
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		attribs:  map[string]int32{"vert2d": 0},
		uniforms: map[string]int32{},
		sources:  map[graphics.ShaderStage]string{},
		pixel:    func(int, int) [4]byte { return [4]byte{0, 0, 0, 255} },
	}
}

var _ graphics.Device = (*fakeDevice)(nil)

func (d *fakeDevice) CreateProgram() uint32 {
	d.programs++
	return 100 + uint32(d.programs)
}

func (d *fakeDevice) CompileShader(stage graphics.ShaderStage, source string) (uint32, string, bool) {
	d.sources[stage] = source
	if strings.Contains(source, "syntax error") || (stage == graphics.VertexStage && d.failVertex) {
		return 0, d.compileLog, false
	}
	return uint32(stage) + 1, "", true
}

func (d *fakeDevice) AttachShader(program, shader uint32) {
	d.attached = append(d.attached, shader)
}

func (d *fakeDevice) SetBinaryRetrievable(program uint32) {
	if d.linked {
		panic("binary hint set after link")
	}
	d.retrievable = true
}

func (d *fakeDevice) LinkProgram(program uint32) (string, bool) {
	if d.failLink {
		return d.linkLog, false
	}
	d.linked = true
	return "", true
}

func (d *fakeDevice) ProgramBinary(program uint32) (uint32, []byte, error) {
	if d.binaryErr != nil {
		return 0, nil, d.binaryErr
	}
	if !d.retrievable {
		return 0, nil, errors.New("binary not retrievable")
	}
	return 0x8740, d.binary, nil
}

func (d *fakeDevice) UseProgram(program uint32) { d.used = program }

func (d *fakeDevice) AttribLocation(program uint32, name string) int32 {
	if loc, ok := d.attribs[name]; ok {
		return loc
	}
	return -1
}

func (d *fakeDevice) UniformLocation(program uint32, name string) int32 {
	if loc, ok := d.uniforms[name]; ok {
		return loc
	}
	return -1
}

func (d *fakeDevice) Uniform1f(location int32, v float32) {
	d.uniformCalls = append(d.uniformCalls, uniformCall{location, []float32{v}})
}

func (d *fakeDevice) Uniform2f(location int32, x, y float32) {
	d.uniformCalls = append(d.uniformCalls, uniformCall{location, []float32{x, y}})
}

func (d *fakeDevice) UploadQuad(attrib uint32, vertices []float32, indices []uint8) {
	d.uploadAttrib = attrib
	d.uploadVerts = vertices
	d.uploadIndices = indices
}

func (d *fakeDevice) Viewport(width, height int) {
	d.viewports = append(d.viewports, [2]int{width, height})
}

func (d *fakeDevice) Clear(r, g, b, a float32) { d.clears++ }

func (d *fakeDevice) DrawIndexed(count int) {
	d.draws++
	d.drawCount = count
}

func (d *fakeDevice) ReadPixels(width, height int) []byte {
	d.reads++
	pixels := make([]byte, 0, width*height*4)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			px := d.pixel(x, y)
			pixels = append(pixels, px[:]...)
		}
	}
	return pixels
}

// callsFor returns the values written to loc in call order.
func (d *fakeDevice) callsFor(loc int32) [][]float32 {
	var out [][]float32
	for _, c := range d.uniformCalls {
		if c.loc == loc {
			out = append(out, c.vals)
		}
	}
	return out
}

type savedFrame struct {
	path string
	img  *image.RGBA
}

type fakeSink struct {
	saved []savedFrame
	err   error
}

func (s *fakeSink) Save(path string, img *image.RGBA) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, savedFrame{path, img})
	return nil
}
