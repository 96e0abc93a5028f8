package translator

import (
	"errors"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/glsl"
	"github.com/gogpu/naga/ir"
)

// ErrNoFragmentEntryPoint is returned for WGSL modules without an @fragment function.
var ErrNoFragmentEntryPoint = errors.New("wgsl module has no @fragment entry point")

// TranslateWGSL compiles the @fragment entry point of a WGSL module to GLSL 3.30 core.
// naga emits WGSL uniforms as uniform blocks, so the loose injectionSwitch, time,
// mouse and resolution uniforms are never found and stay unbound for WGSL sources.
func TranslateWGSL(source string) (*Result, error) {
	ast, err := naga.Parse(source)
	if err != nil {
		return nil, err
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return nil, fmt.Errorf("lowering error: %w", err)
	}

	validationErrors, err := naga.Validate(module)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	if len(validationErrors) > 0 {
		return nil, fmt.Errorf("validation failed: %w", validationErrors[0])
	}

	entry, err := fragmentEntryPoint(module)
	if err != nil {
		return nil, err
	}

	code, _, err := glsl.Compile(module, glsl.Options{
		LangVersion: glsl.Version330,
		EntryPoint:  entry,
	})
	if err != nil {
		return nil, err
	}
	return &Result{Code: code}, nil
}

func fragmentEntryPoint(module *ir.Module) (string, error) {
	for _, ep := range module.EntryPoints {
		if ep.Stage == ir.StageFragment {
			return ep.Name, nil
		}
	}
	return "", ErrNoFragmentEntryPoint
}
