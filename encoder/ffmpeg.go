package encoder

import (
	"bytes"
	"fmt"
	"image"
	"log"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

func getArgs(width, height int) (inputArgs ffmpeg.KwArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"f":       "rawvideo",
		"pix_fmt": "rgba",
		"s":       fmt.Sprintf("%dx%d", width, height),
	}
	outputArgs = ffmpeg.KwArgs{
		"frames:v": 1,
	}
	return
}

func transcodeStream(ffmpegPath, path string, img *image.RGBA) *ffmpeg.Stream {
	size := img.Bounds().Size()
	inputArgs, outputArgs := getArgs(size.X, size.Y)

	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs).
		Output(path, outputArgs).
		OverWriteOutput().WithInput(bytes.NewReader(rgbaBytes(img))).ErrorToStdOut()

	if ffmpegPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(ffmpegPath)
	}
	return ffmpegCmd
}

// transcode pipes img as a single raw RGBA frame into ffmpeg, which picks the
// output codec from the extension of path.
func transcode(ffmpegPath, path string, img *image.RGBA) error {
	log.Printf("No native encoder for %s, transcoding with ffmpeg", path)
	if err := transcodeStream(ffmpegPath, path, img).Run(); err != nil {
		return fmt.Errorf("ffmpeg failed to write %s: %w", path, err)
	}
	return nil
}

// rgbaBytes returns the pixel rows without stride padding.
func rgbaBytes(img *image.RGBA) []byte {
	size := img.Bounds().Size()
	rowSize := size.X * 4
	if img.Stride == rowSize {
		return img.Pix[:rowSize*size.Y]
	}
	out := make([]byte, 0, rowSize*size.Y)
	for y := 0; y < size.Y; y++ {
		off := y * img.Stride
		out = append(out, img.Pix[off:off+rowSize]...)
	}
	return out
}
