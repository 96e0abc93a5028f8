package renderer

import (
	"fmt"
	"image"
	"log"
	"os"
)

const channels = 4

// FlipRows converts a bottom-up RGBA read-back into a top-down image.
func FlipRows(pixels []byte, width, height int) *image.RGBA {
	flipped := image.NewRGBA(image.Rect(0, 0, width, height))

	rowSize := width * channels
	for y := 0; y < height; y++ {
		srcRow := pixels[((height-1)-y)*rowSize:]
		dstRow := flipped.Pix[y*flipped.Stride:]
		copy(dstRow, srcRow[:rowSize])
	}
	return flipped
}

// CaptureFrame reads the color buffer at width x height and saves it to the output file.
func (p *Pipeline) CaptureFrame(width, height int) error {
	pixels := p.device.ReadPixels(width, height)
	if len(pixels) != width*height*channels {
		return fmt.Errorf("read back %d bytes, want %d for %dx%d", len(pixels), width*height*channels, width, height)
	}

	img := FlipRows(pixels, width, height)
	if err := p.sink.Save(p.opts.OutputFile, img); err != nil {
		return fmt.Errorf("error producing image file: %w", err)
	}
	log.Printf("Saved %dx%d frame to %s", width, height, p.opts.OutputFile)
	return nil
}

// DumpBinary writes the linked program's driver-specific binary to BinaryDumpPath.
func (p *Pipeline) DumpBinary() error {
	format, data, err := p.device.ProgramBinary(p.program)
	if err != nil {
		return failure(fmt.Errorf("failed to retrieve program binary: %w", err))
	}
	if err := os.WriteFile(p.opts.BinaryDumpPath, data, 0o644); err != nil {
		return failure(fmt.Errorf("failed to write program binary: %w", err))
	}
	log.Printf("Wrote %d byte program binary (format 0x%x) to %s", len(data), format, p.opts.BinaryDumpPath)
	return nil
}
