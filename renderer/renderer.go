package renderer

import (
	"context"
	"image"
	"io"
	"os"

	"github.com/richinsley/goshadershot/graphics"
	options "github.com/richinsley/goshadershot/options"
	"github.com/richinsley/goshadershot/translator"
)

// FrameSink stores the captured frame.
type FrameSink interface {
	Save(path string, img *image.RGBA) error
}

// Pipeline compiles a fragment shader, draws it on a full-screen quad and captures one frame.
type Pipeline struct {
	opts    *options.ShaderOptions
	context graphics.Context
	device  graphics.Device
	sink    FrameSink
	stdout  io.Writer // compiler and linker diagnostics

	fragment *translator.Result
	program  uint32
	attrib   uint32
	uniforms Uniforms
	state    LoopState
	frames   int
}

// NewPipeline wires the pipeline to ctx; Run makes ctx current on the calling thread.
func NewPipeline(opts *options.ShaderOptions, ctx graphics.Context, device graphics.Device, sink FrameSink) *Pipeline {
	return &Pipeline{
		opts:    opts,
		context: ctx,
		device:  device,
		sink:    sink,
		stdout:  os.Stdout,
	}
}

// SetDiagnosticsOutput redirects shader info logs, stdout by default.
func (p *Pipeline) SetDiagnosticsOutput(w io.Writer) {
	p.stdout = w
}

// State returns the render loop state.
func (p *Pipeline) State() LoopState {
	return p.state
}

// Frames returns the number of frames drawn so far.
func (p *Pipeline) Frames() int {
	return p.frames
}

// Run executes compile, bind, render and capture. Early exits requested by the
// options return nil; failures return an *ExitError.
func (p *Pipeline) Run(ctx context.Context) error {
	p.context.MakeCurrent()

	linked, err := p.Compile(ctx)
	if err != nil || !linked {
		return err
	}

	p.BindUniforms()

	if p.opts.BinaryDumpPath != "" {
		if err := p.DumpBinary(); err != nil {
			return err
		}
	}

	return p.RenderLoop(ctx)
}
