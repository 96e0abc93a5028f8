package translator

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/richinsley/goshadershot/options"
)

// Result is a fragment shader ready for the GL compiler.
type Result struct {
	Code string
	// Uniforms maps source uniform names to the names in Code. Translators that
	// keep names unchanged leave it nil.
	Uniforms map[string]string
}

// MappedName returns the name under which uniform name is declared in Code.
func (r *Result) MappedName(name string) string {
	if mapped, ok := r.Uniforms[name]; ok {
		return mapped
	}
	return name
}

// ResolveDialect turns DialectAuto into a concrete dialect using the file extension.
func ResolveDialect(dialect, path string) string {
	if dialect != options.DialectAuto {
		return dialect
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wgsl":
		return options.DialectWGSL
	default:
		return options.DialectGLSL
	}
}

// Translate converts source from dialect into desktop GLSL. Plain GLSL is passed through.
func Translate(ctx context.Context, dialect, source string) (*Result, error) {
	switch dialect {
	case options.DialectGLSL, options.DialectAuto:
		return &Result{Code: source}, nil
	case options.DialectWebGL2:
		return TranslateWebGL(ctx, source)
	case options.DialectWGSL:
		return TranslateWGSL(source)
	}
	return nil, fmt.Errorf("unsupported shader dialect %q", dialect)
}
