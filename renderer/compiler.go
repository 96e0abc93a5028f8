package renderer

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/richinsley/goshadershot/graphics"
	"github.com/richinsley/goshadershot/shader"
	"github.com/richinsley/goshadershot/translator"
)

// Compile builds and links the program. linked is false, with a nil error, when
// the options ask to stop after compiling or linking.
func (p *Pipeline) Compile(ctx context.Context) (linked bool, err error) {
	fragContents, err := os.ReadFile(p.opts.FragmentPath)
	if err != nil {
		return false, failure(fmt.Errorf("failed to read fragment shader: %w", err))
	}

	dialect := translator.ResolveDialect(p.opts.Dialect, p.opts.FragmentPath)
	p.fragment, err = translator.Translate(ctx, dialect, string(fragContents))
	if err != nil {
		log.Printf("Error translating %s fragment shader.", dialect)
		p.printLog(err.Error())
		return false, &ExitError{Code: ExitCompileError, Err: fmt.Errorf("%w: %w", ErrFragmentCompile, err)}
	}

	fragmentShader, infoLog, ok := p.device.CompileShader(graphics.FragmentStage, p.fragment.Code)
	if !ok {
		log.Println("Error compiling fragment shader.")
		p.printLog(infoLog)
		return false, &ExitError{Code: ExitCompileError, Err: ErrFragmentCompile}
	}
	log.Println("Fragment shader compiled successfully.")
	if p.opts.ExitAfterCompile {
		log.Println("Exiting after fragment shader compilation.")
		return false, nil
	}

	program := p.device.CreateProgram()
	p.device.AttachShader(program, fragmentShader)

	vertexContents, err := p.vertexSource()
	if err != nil {
		return false, failure(err)
	}
	vertexShader, infoLog, ok := p.device.CompileShader(graphics.VertexStage, vertexContents)
	if !ok {
		log.Println("Error compiling vertex shader.")
		p.printLog(infoLog)
		return false, failure(ErrVertexCompile)
	}
	log.Println("Vertex shader compiled successfully.")
	p.device.AttachShader(program, vertexShader)

	if p.opts.BinaryDumpPath != "" {
		p.device.SetBinaryRetrievable(program)
	}

	log.Println("Linking program.")
	infoLog, ok = p.device.LinkProgram(program)
	if !ok {
		log.Println("Error in linking program.")
		p.printLog(infoLog)
		return false, &ExitError{Code: ExitLinkError, Err: ErrLink}
	}
	log.Println("Program linked successfully.")
	if p.opts.ExitAfterLink {
		log.Println("Exiting after program linking.")
		return false, nil
	}

	loc := p.device.AttribLocation(program, shader.PositionAttribute)
	if loc == -1 {
		return false, failure(ErrNoPositionAttribute)
	}
	p.program = program
	p.attrib = uint32(loc)
	return true, nil
}

func (p *Pipeline) vertexSource() (string, error) {
	if p.opts.VertexPath != "" {
		contents, err := os.ReadFile(p.opts.VertexPath)
		if err != nil {
			return "", fmt.Errorf("failed to read vertex shader: %w", err)
		}
		return string(contents), nil
	}

	source, found := shader.SynthesizeVertexShader(p.fragment.Code)
	if !found {
		log.Println("Warning: Could not find #version string of fragment shader.")
	}
	return source, nil
}

func (p *Pipeline) printLog(infoLog string) {
	if infoLog != "" {
		fmt.Fprintln(p.stdout, infoLog)
	}
}
