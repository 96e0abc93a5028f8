package graphics

// ShaderStage selects the pipeline stage a shader object is compiled for.
type ShaderStage int

const (
	VertexStage ShaderStage = iota
	FragmentStage
)

func (s ShaderStage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	}
	return "unknown"
}

// Device wraps the GL state machine behind explicit calls so the pipeline never
// touches implicit global bindings. All methods must be called on the thread that
// owns the current context.
type Device interface {
	CreateProgram() uint32
	// CompileShader returns the shader handle and the driver's info log.
	// ok is false when compilation failed.
	CompileShader(stage ShaderStage, source string) (shader uint32, infoLog string, ok bool)
	AttachShader(program, shader uint32)
	// SetBinaryRetrievable must be called before LinkProgram for ProgramBinary to work reliably.
	SetBinaryRetrievable(program uint32)
	LinkProgram(program uint32) (infoLog string, ok bool)
	ProgramBinary(program uint32) (format uint32, data []byte, err error)
	UseProgram(program uint32)

	// AttribLocation and UniformLocation return -1 when the name is not active.
	AttribLocation(program uint32, name string) int32
	UniformLocation(program uint32, name string) int32
	Uniform1f(location int32, v float32)
	Uniform2f(location int32, x, y float32)

	// UploadQuad stores tightly packed vec2 vertices and byte indices and binds
	// them to the attribute at location attrib.
	UploadQuad(attrib uint32, vertices []float32, indices []uint8)
	Viewport(width, height int)
	Clear(r, g, b, a float32)
	DrawIndexed(count int)
	// ReadPixels returns width*height*4 RGBA bytes, bottom row first.
	ReadPixels(width, height int) []byte
}
