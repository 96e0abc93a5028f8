package shader

import (
	"strconv"
	"strings"
)

// PositionAttribute is the vertex input every vertex shader must expose.
const PositionAttribute = "vert2d"

// ─────────────────────────────── Vertex templates ───────────────────────────────

// Forwards the quad corner unmodified to clip space.
const vertexShaderAttribute = `attribute vec2 vert2d;
void main(void) {
  gl_Position = vec4(vert2d, 0.0, 1.0);
}`

// GLSL 1.30+ and ES 3.00+ dropped the attribute qualifier from core.
const vertexShaderIn = `in vec2 vert2d;
void main(void) {
  gl_Position = vec4(vert2d, 0.0, 1.0);
}`

// ─────────────────────────────── Version directive ──────────────────────────────

// Version is a parsed #version directive.
type Version struct {
	Number  int    // e.g. 100, 330, 410
	Profile string // "", "core", "compatibility" or "es"
}

// ES reports whether the directive names an OpenGL ES shading language.
func (v Version) ES() bool {
	return v.Profile == "es" || v.Number == 100
}

// UsesInQualifier reports whether vertex inputs must be declared with "in".
func (v Version) UsesInQualifier() bool {
	if v.ES() {
		return v.Number >= 300
	}
	return v.Number >= 130
}

// FirstLine returns the source's first line without the line terminator.
func FirstLine(source string) string {
	line, _, _ := strings.Cut(source, "\n")
	return strings.TrimSuffix(line, "\r")
}

// ParseVersion parses a "#version NNN [profile]" line. ok is false for anything else.
func ParseVersion(line string) (Version, bool) {
	fields := strings.Fields(strings.TrimPrefix(strings.TrimSpace(line), "#"))
	if len(fields) < 2 || fields[0] != "version" {
		return Version{}, false
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil {
		return Version{}, false
	}
	v := Version{Number: n}
	if len(fields) > 2 {
		v.Profile = fields[2]
	}
	return v, true
}

// SynthesizeVertexShader builds a pass-through vertex shader for fragmentSource.
// When the fragment source's first line is a preprocessor directive it is copied
// to the top of the result so both stages agree on the language version; found
// is false when no such line exists and the template is returned unprefixed.
func SynthesizeVertexShader(fragmentSource string) (source string, found bool) {
	// A directive line needs a terminator to be a line on its own.
	if !strings.HasPrefix(fragmentSource, "#") || !strings.Contains(fragmentSource, "\n") {
		return vertexShaderAttribute, false
	}
	first := FirstLine(fragmentSource)
	template := vertexShaderAttribute
	if v, ok := ParseVersion(first); ok && v.UsesInQualifier() {
		template = vertexShaderIn
	}
	return first + "\n" + template, true
}
