package glfwcontext

import (
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	options "github.com/richinsley/goshadershot/options"
)

const windowTitle = "goshadershot"

// Context is a GLFW window with its GL context. It tracks the left button so
// GetMouseInput can report the last click position.
type Context struct {
	window          *glfw.Window
	lastMouseClickX float64
	lastMouseClickY float64
	mouseWasDown    bool
}

// New opens a window sized opts.Width x opts.Height and makes its context
// current on the calling thread. InitGraphics must have been called.
func New(opts *options.ShaderOptions) (*Context, error) {
	setContextHints(opts.CoreProfile)

	if opts.Hidden {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}
	glfw.WindowHint(glfw.Resizable, glfw.False)

	win, err := glfw.CreateWindow(opts.Width, opts.Height, windowTitle, nil, nil)
	if err != nil {
		return nil, err
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	c := &Context{window: win}
	win.SetKeyCallback(c.glfwKeyCallback)

	return c, nil
}

// setContextHints asks for a 4.1 core context with --core. macOS only hands out
// forward compatible core contexts, so it gets 3.2 core by default.
func setContextHints(core bool) {
	switch {
	case core:
		glfw.WindowHint(glfw.ContextVersionMajor, 4)
		glfw.WindowHint(glfw.ContextVersionMinor, 1)
	case runtime.GOOS == "darwin":
		glfw.WindowHint(glfw.ContextVersionMajor, 3)
		glfw.WindowHint(glfw.ContextVersionMinor, 2)
	default:
		return
	}
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
}

func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
	}
}

// GetMouseInput returns the cursor position and last click in framebuffer
// pixels with a bottom-left origin. The click coordinates are negated while the
// button is up.
func (c *Context) GetMouseInput() [4]float32 {
	var mouseData [4]float32
	if c.window == nil {
		return mouseData
	}

	fbWidth, fbHeight := c.GetFramebufferSize()
	winWidth, winHeight := c.window.GetSize()
	var scaleX, scaleY float64 = 1.0, 1.0
	if winWidth > 0 && winHeight > 0 {
		scaleX = float64(fbWidth) / float64(winWidth)
		scaleY = float64(fbHeight) / float64(winHeight)
	}

	cursorX, cursorY := c.window.GetCursorPos()
	pixelX := cursorX * scaleX
	pixelY := cursorY * scaleY

	isMouseDown := c.window.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press
	if isMouseDown && !c.mouseWasDown {
		c.lastMouseClickX = pixelX
		c.lastMouseClickY = pixelY
	}
	c.mouseWasDown = isMouseDown

	clickX := float32(c.lastMouseClickX)
	clickY := float32(fbHeight) - float32(c.lastMouseClickY)
	if !isMouseDown {
		clickX, clickY = -clickX, -clickY
	}

	mouseData = [4]float32{float32(pixelX), float32(fbHeight) - float32(pixelY), clickX, clickY}
	return mouseData
}

// MakeCurrent makes the window's context current on the calling thread.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

func (c *Context) Shutdown() {
	c.window.Destroy()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

// EndFrame presents the back buffer and processes pending window events.
func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

// InitGraphics initializes GLFW. Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Printf("GLFW Initialized")
	return nil
}

// TerminateGraphics shuts GLFW down. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}
