package graphics

// Context defines the interface for an OpenGL context provider.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	// EndFrame presents the back buffer and processes pending window events.
	EndFrame()
	GetFramebufferSize() (int, int)
	// GetMouseInput returns the current mouse state: x, y, clickX, clickY
	GetMouseInput() [4]float32
}
