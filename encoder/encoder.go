package encoder

import (
	"bufio"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format names an output image encoding.
type Format string

const (
	FormatPNG    Format = "png"
	FormatJPEG   Format = "jpeg"
	FormatBMP    Format = "bmp"
	FormatTIFF   Format = "tiff"
	FormatFFmpeg Format = "ffmpeg" // anything else, transcoded by an external ffmpeg
)

// FormatForPath picks the encoder from the file extension.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", "":
		return FormatPNG
	case ".jpg", ".jpeg":
		return FormatJPEG
	case ".bmp":
		return FormatBMP
	case ".tif", ".tiff":
		return FormatTIFF
	default:
		return FormatFFmpeg
	}
}

// ImageWriter saves captured frames to disk.
type ImageWriter struct {
	FFMPEGPath string
}

func New(ffmpegPath string) *ImageWriter {
	return &ImageWriter{FFMPEGPath: ffmpegPath}
}

// Encode writes img to w in the given native format.
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("no native encoder for %s", format)
}

// Save encodes img to path, choosing the format from the extension.
func (iw *ImageWriter) Save(path string, img *image.RGBA) error {
	format := FormatForPath(path)
	if format == FormatFFmpeg {
		return transcode(iw.FFMPEGPath, path, img)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	bw := bufio.NewWriter(f)
	if err := Encode(bw, img, format); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
