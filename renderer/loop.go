package renderer

import (
	"context"
	"log"
)

// LoopState is the render loop's position in its capture lifecycle.
type LoopState int

const (
	StateRunning LoopState = iota
	StateCapturedAndPersisting
	StateTerminated
)

func (s LoopState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateCapturedAndPersisting:
		return "captured-and-persisting"
	case StateTerminated:
		return "terminated"
	}
	return "unknown"
}

// RenderLoop draws until the frame is captured, or with Persist until the window
// closes or ctx is cancelled. The capture happens exactly once, on the frame that
// brings the frame count to WarmupFrames.
func (p *Pipeline) RenderLoop(ctx context.Context) error {
	p.state = StateRunning
	defer func() { p.state = StateTerminated }()

	for !p.context.ShouldClose() {
		if ctx.Err() != nil {
			log.Println("Interrupted, leaving render loop.")
			return nil
		}

		width, height := p.context.GetFramebufferSize()
		p.device.Viewport(width, height)

		if p.uniforms.Resolution != NotPresent {
			p.device.Uniform2f(p.uniforms.Resolution, float32(width), float32(height))
		}
		if p.opts.Animate && p.uniforms.Time != NotPresent && p.frames > p.opts.WarmupFrames {
			p.device.Uniform1f(p.uniforms.Time, float32(p.frames)/10.0)
		}
		// The mouse follows the cursor only after the capture.
		if p.state == StateCapturedAndPersisting && p.uniforms.Mouse != NotPresent {
			mouse := p.context.GetMouseInput()
			p.device.Uniform2f(p.uniforms.Mouse, mouse[0], mouse[1])
		}

		p.device.Clear(0.0, 0.0, 0.0, 1.0)
		p.device.DrawIndexed(len(quadIndices))
		p.frames++

		// Read back before presenting; the back buffer is undefined after a swap.
		captured := false
		if p.state == StateRunning && p.frames == p.opts.WarmupFrames {
			if err := p.CaptureFrame(width, height); err != nil {
				return failure(err)
			}
			captured = true
		}

		p.context.EndFrame()

		if captured {
			if !p.opts.Persist {
				return nil
			}
			log.Println("Frame captured, rendering until the window is closed.")
			p.state = StateCapturedAndPersisting
		}
	}
	return nil
}
