//go:build !linux

package headless

import (
	"fmt"

	"github.com/richinsley/goshadershot/graphics"
)

// NewHeadless is only implemented on Linux, where EGL pbuffers are available.
func NewHeadless(width, height int) (graphics.Context, error) {
	return nil, fmt.Errorf("egl headless rendering is not supported on this platform")
}
