package translator

import (
	"context"
	"fmt"
	"log"
	"sync"

	gst "github.com/richinsley/goshadertranslator"
)

var (
	translatorOnce sync.Once
	translator     *gst.ShaderTranslator
	translatorErr  error
)

// GetTranslator lazily starts the ANGLE translator. Startup compiles a wasm
// module, so it only happens for webgl2 sources.
func GetTranslator(ctx context.Context) (*gst.ShaderTranslator, error) {
	translatorOnce.Do(func() {
		log.Println("Starting WebGL shader translator...")
		translator, translatorErr = gst.NewShaderTranslator(ctx)
	})
	return translator, translatorErr
}

// TranslateWebGL converts a WebGL2 (GLSL ES 3.00) fragment shader to GLSL 4.10.
func TranslateWebGL(ctx context.Context, source string) (*Result, error) {
	t, err := GetTranslator(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start shader translator: %w", err)
	}
	fsShader, err := t.TranslateShader(source, "fragment", gst.ShaderSpecWebGL2, gst.OutputFormatGLSL410)
	if err != nil {
		return nil, fmt.Errorf("fragment shader translation failed: %w", err)
	}

	res := &Result{
		Code:     fsShader.Code,
		Uniforms: make(map[string]string, len(fsShader.Variables)),
	}
	for name, v := range fsShader.Variables {
		res.Uniforms[name] = v.MappedName
	}
	return res, nil
}
