package gldevice

import (
	"fmt"
	"log"
	"strings"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/goshadershot/graphics"
)

var glInitOnce sync.Once

// Device implements graphics.Device on top of the go-gl bindings.
type Device struct {
	vao          uint32
	vertexBuffer uint32
	indexBuffer  uint32
}

// New loads the GL function pointers for the current context. A context must be
// current on the calling thread.
func New() (*Device, error) {
	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}
	log.Printf("OpenGL version: %s", gl.GoStr(gl.GetString(gl.VERSION)))
	log.Printf("GLSL version: %s", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)))
	return &Device{}, nil
}

var _ graphics.Device = (*Device)(nil)

func glStage(stage graphics.ShaderStage) uint32 {
	if stage == graphics.VertexStage {
		return gl.VERTEX_SHADER
	}
	return gl.FRAGMENT_SHADER
}

func (d *Device) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (d *Device) CompileShader(stage graphics.ShaderStage, source string) (uint32, string, bool) {
	shader := gl.CreateShader(glStage(stage))
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)

	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	infoLog := ""
	if logLength > 0 {
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		infoLog = strings.TrimRight(logText, "\x00")
	}
	return shader, infoLog, status != gl.FALSE
}

func (d *Device) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (d *Device) SetBinaryRetrievable(program uint32) {
	gl.ProgramParameteri(program, gl.PROGRAM_BINARY_RETRIEVABLE_HINT, gl.TRUE)
}

func (d *Device) LinkProgram(program uint32) (string, bool) {
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)

	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	infoLog := ""
	if logLength > 0 {
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
		infoLog = strings.TrimRight(logText, "\x00")
	}
	return infoLog, status != gl.FALSE
}

func (d *Device) ProgramBinary(program uint32) (uint32, []byte, error) {
	var size int32
	gl.GetProgramiv(program, gl.PROGRAM_BINARY_LENGTH, &size)
	if size <= 0 {
		return 0, nil, fmt.Errorf("driver reports no program binary (length %d)", size)
	}
	data := make([]byte, size)
	var length int32
	var format uint32
	gl.GetProgramBinary(program, size, &length, &format, gl.Ptr(&data[0]))
	if length <= 0 {
		return 0, nil, fmt.Errorf("glGetProgramBinary returned no data")
	}
	return format, data[:length], nil
}

func (d *Device) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (d *Device) AttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (d *Device) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *Device) Uniform1f(location int32, v float32) {
	gl.Uniform1f(location, v)
}

func (d *Device) Uniform2f(location int32, x, y float32) {
	gl.Uniform2f(location, x, y)
}

func (d *Device) UploadQuad(attrib uint32, vertices []float32, indices []uint8) {
	// Core profiles refuse to draw without a bound vertex array object.
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	gl.GenBuffers(1, &d.vertexBuffer)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vertexBuffer)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &d.indexBuffer)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, d.indexBuffer)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices), gl.Ptr(indices), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(attrib)
	gl.VertexAttribPointer(attrib, 2, gl.FLOAT, false, 0, gl.PtrOffset(0))
}

func (d *Device) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (d *Device) Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (d *Device) DrawIndexed(count int) {
	gl.DrawElements(gl.TRIANGLES, int32(count), gl.UNSIGNED_BYTE, gl.PtrOffset(0))
}

func (d *Device) ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	if len(pixels) == 0 {
		return pixels
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&pixels[0]))
	return pixels
}
