package output

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
)

// EncodePNG writes img as a PNG
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// WritePNG saves img to path, creating parent directories as needed
func WritePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := EncodePNG(file, img); err != nil {
		return err
	}
	return file.Close()
}

// FramePath returns the numbered output path of a frame, e.g. output/cube/frame_0007.png
func FramePath(dir, sceneName string, frame int, ext string) string {
	return filepath.Join(dir, sceneName, fmt.Sprintf("frame_%04d.%s", frame, ext))
}
