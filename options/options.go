package options

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"strings"
)

// ErrNoFragmentShader is returned by Parse when no positional argument names a fragment shader.
var ErrNoFragmentShader = errors.New("requires fragment shader argument")

// Shader source dialects accepted by --dialect.
const (
	DialectAuto   = "auto"
	DialectGLSL   = "glsl"
	DialectWebGL2 = "webgl2"
	DialectWGSL   = "wgsl"
)

// ShaderOptions is the resolved command line. It is not modified after Parse returns.
type ShaderOptions struct {
	FragmentPath     string
	VertexPath       string // empty: synthesize from the fragment shader's #version line
	OutputFile       string
	BinaryDumpPath   string
	Persist          bool
	Animate          bool
	ExitAfterCompile bool
	ExitAfterLink    bool

	// WarmupFrames is the frame count at which the single capture happens.
	// Some drivers need a couple of presented frames before read-back is representative.
	WarmupFrames int

	Width       int
	Height      int
	Hidden      bool // invisible GLFW window
	Headless    bool // EGL pbuffer, no window system
	CoreProfile bool
	Dialect     string
	FFMPEGPath  string
}

// Default returns the options used when no flags are given.
func Default() *ShaderOptions {
	return &ShaderOptions{
		OutputFile:   "output.png",
		WarmupFrames: 2,
		Width:        640,
		Height:       480,
		Dialect:      DialectAuto,
	}
}

func newFlagSet(o *ShaderOptions, help *bool) *flag.FlagSet {
	fs := flag.NewFlagSet("goshadershot", flag.ContinueOnError)

	fs.BoolVar(&o.Persist, "persist", o.Persist, "Keep rendering after the capture until the window is closed")
	fs.BoolVar(&o.Animate, "animate", o.Animate, "Advance the time uniform after the warm-up frames")
	fs.BoolVar(&o.ExitAfterCompile, "exit_compile", o.ExitAfterCompile, "Exit after the fragment shader compiles")
	fs.BoolVar(&o.ExitAfterLink, "exit_linking", o.ExitAfterLink, "Exit after the program links")
	fs.StringVar(&o.OutputFile, "output", o.OutputFile, "Output image file name")
	fs.StringVar(&o.VertexPath, "vertex", o.VertexPath, "Vertex shader file (synthesized when omitted)")
	fs.StringVar(&o.BinaryDumpPath, "dump_bin", o.BinaryDumpPath, "Write the linked program binary to this file")

	fs.IntVar(&o.WarmupFrames, "warmup", o.WarmupFrames, "Number of frames rendered before the capture")
	fs.IntVar(&o.Width, "width", o.Width, "Window width")
	fs.IntVar(&o.Height, "height", o.Height, "Window height")
	fs.BoolVar(&o.Hidden, "hidden", o.Hidden, "Create an invisible window")
	fs.BoolVar(&o.Headless, "headless", o.Headless, "Render into an EGL pbuffer without a window system (linux)")
	fs.BoolVar(&o.CoreProfile, "core", o.CoreProfile, "Request an OpenGL 4.1 core profile context")
	fs.StringVar(&o.Dialect, "dialect", o.Dialect, "Fragment shader dialect: auto, glsl, webgl2 or wgsl")
	fs.StringVar(&o.FFMPEGPath, "ffmpeg", o.FFMPEGPath, "Path to ffmpeg, used for output formats without a native encoder")
	fs.BoolVar(help, "help", false, "Show help message")
	return fs
}

// Usage writes the flag summary to w.
func Usage(w io.Writer) {
	var help bool
	fs := newFlagSet(Default(), &help)
	fmt.Fprintln(w, "usage: goshadershot [flags] FRAGMENT_SHADER")
	fs.VisitAll(func(f *flag.Flag) {
		name, usage := flag.UnquoteUsage(f)
		line := "  --" + f.Name
		if name != "" {
			line += " " + name
		}
		if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "0" {
			usage += fmt.Sprintf(" (default %q)", f.DefValue)
		}
		fmt.Fprintf(w, "%s\n    \t%s\n", line, usage)
	})
}

// boolFlag matches the flag package's boolean values, which take no argument.
type boolFlag interface {
	IsBoolFlag() bool
}

// Parse resolves args (without the program name). Only exact "--name" tokens
// are flags; a value flag consumes the following token. Any other "--" token is
// logged and skipped, and everything else is positional, the first one naming
// the fragment shader. flag.ErrHelp is returned when --help is given.
func Parse(args []string) (*ShaderOptions, error) {
	o := Default()
	var help bool
	fs := newFlagSet(o, &help)

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") {
			o.addPositional(arg)
			continue
		}

		f := fs.Lookup(strings.TrimPrefix(arg, "--"))
		if f == nil || "--"+f.Name != arg {
			log.Printf("Unknown argument: %s", arg)
			continue
		}

		value := "true"
		if bf, ok := f.Value.(boolFlag); !ok || !bf.IsBoolFlag() {
			if i+1 >= len(args) {
				return nil, fmt.Errorf("flag needs an argument: %s", arg)
			}
			i++
			value = args[i]
		}
		if err := fs.Set(f.Name, value); err != nil {
			return nil, fmt.Errorf("invalid value %q for flag %s: %w", value, arg, err)
		}
	}

	if help {
		return nil, flag.ErrHelp
	}
	if o.FragmentPath == "" {
		return nil, ErrNoFragmentShader
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *ShaderOptions) addPositional(arg string) {
	if o.FragmentPath == "" {
		o.FragmentPath = arg
		return
	}
	log.Printf("Ignoring extra argument %s", arg)
}

func (o *ShaderOptions) validate() error {
	if o.WarmupFrames < 1 {
		return fmt.Errorf("warmup must be at least 1 frame, got %d", o.WarmupFrames)
	}
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", o.Width, o.Height)
	}
	switch o.Dialect {
	case DialectAuto, DialectGLSL, DialectWebGL2, DialectWGSL:
	default:
		return fmt.Errorf("unknown shader dialect %q", o.Dialect)
	}
	if o.OutputFile == "" {
		return errors.New("output file name must not be empty")
	}
	if o.Persist && o.Headless {
		log.Println("Warning: --persist with --headless renders until interrupted.")
	}
	return nil
}
