package renderer

// NotPresent marks a uniform the linked program does not declare.
const NotPresent int32 = -1

var quadVertices = []float32{
	-1.0, 1.0,
	-1.0, -1.0,
	1.0, -1.0,
	1.0, 1.0,
}

var quadIndices = []uint8{
	0, 1, 2,
	2, 3, 0,
}

// Uniforms holds the locations of the optional inputs the pipeline drives.
type Uniforms struct {
	InjectionSwitch int32
	Time            int32
	Mouse           int32
	Resolution      int32
}

// BindUniforms resolves the optional uniforms, sets their initial values and
// uploads the quad geometry.
func (p *Pipeline) BindUniforms() {
	p.device.UseProgram(p.program)

	resolve := func(name string) int32 {
		loc := p.device.UniformLocation(p.program, p.fragment.MappedName(name))
		if loc < 0 {
			return NotPresent
		}
		return loc
	}
	p.uniforms = Uniforms{
		InjectionSwitch: resolve("injectionSwitch"),
		Time:            resolve("time"),
		Mouse:           resolve("mouse"),
		Resolution:      resolve("resolution"),
	}

	if p.uniforms.InjectionSwitch != NotPresent {
		p.device.Uniform2f(p.uniforms.InjectionSwitch, 0.0, 1.0)
	}
	if p.uniforms.Mouse != NotPresent {
		p.device.Uniform2f(p.uniforms.Mouse, 0.0, 0.0)
	}
	if p.uniforms.Time != NotPresent {
		p.device.Uniform1f(p.uniforms.Time, 0.0)
	}

	p.device.UploadQuad(p.attrib, quadVertices, quadIndices)
}

// Uniforms returns the resolved uniform locations.
func (p *Pipeline) Uniforms() Uniforms {
	return p.uniforms
}
