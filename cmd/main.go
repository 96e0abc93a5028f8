package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/richinsley/goshadershot/encoder"
	"github.com/richinsley/goshadershot/gldevice"
	"github.com/richinsley/goshadershot/glfwcontext"
	"github.com/richinsley/goshadershot/graphics"
	"github.com/richinsley/goshadershot/headless"
	options "github.com/richinsley/goshadershot/options"
	renderer "github.com/richinsley/goshadershot/renderer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := options.Parse(args)
	if errors.Is(err, flag.ErrHelp) {
		fmt.Println("Render a fragment shader on a full-screen quad and save one frame.")
		options.Usage(os.Stdout)
		return renderer.ExitSuccess
	}
	if err != nil {
		log.Printf("Error: %v", err)
		options.Usage(os.Stderr)
		return renderer.ExitFailure
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gctx, cleanup, err := openContext(opts)
	if err != nil {
		log.Printf("Failed to create graphics context: %v", err)
		return renderer.ExitFailure
	}
	defer cleanup()

	dev, err := gldevice.New()
	if err != nil {
		log.Printf("%v", err)
		return renderer.ExitFailure
	}

	pipeline := renderer.NewPipeline(opts, gctx, dev, encoder.New(opts.FFMPEGPath))
	if err := pipeline.Run(ctx); err != nil {
		log.Printf("%v", err)
		return renderer.ExitCode(err)
	}
	return renderer.ExitSuccess
}

// openContext creates the GL context the pipeline renders with and returns the
// function that tears it down.
func openContext(opts *options.ShaderOptions) (graphics.Context, func(), error) {
	if opts.Headless {
		log.Println("Using headless EGL context.")
		h, err := headless.NewHeadless(opts.Width, opts.Height)
		if err != nil {
			return nil, nil, err
		}
		return h, h.Shutdown, nil
	}

	if err := glfwcontext.InitGraphics(); err != nil {
		return nil, nil, err
	}
	win, err := glfwcontext.New(opts)
	if err != nil {
		glfwcontext.TerminateGraphics()
		return nil, nil, err
	}
	return win, func() {
		win.Shutdown()
		glfwcontext.TerminateGraphics()
	}, nil
}
