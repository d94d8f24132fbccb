package thumbcache

import (
	"fmt"

	"github.com/disintegration/imaging"
)

// ImageProcessingError reports a thumbnail that could not be decoded,
// transformed, or written back.
type ImageProcessingError struct {
	Source string // file path or URL
	Err    error
}

func (e *ImageProcessingError) Error() string {
	return fmt.Sprintf("thumbcache: processing %s: %v", e.Source, e.Err)
}

func (e *ImageProcessingError) Unwrap() error { return e.Err }

// blurSigma maps the configured 0-100 blur level onto a Gaussian sigma.
// Monotone: more level, more blur.
func blurSigma(level int) float64 {
	if level > 100 {
		level = 100
	}
	return float64(level) * 0.5
}

// Blur applies a Gaussian blur to an image file in place. Level 0 (or below)
// is a strict no-op: the file is not opened, let alone rewritten.
func (c *Cache) Blur(path string, level int) error {
	if level <= 0 {
		return nil
	}

	img, err := imaging.Open(path)
	if err != nil {
		return &ImageProcessingError{Source: path, Err: err}
	}

	blurred := imaging.Blur(img, blurSigma(level))
	if err := imaging.Save(blurred, path, imaging.JPEGQuality(jpegQuality)); err != nil {
		return &ImageProcessingError{Source: path, Err: err}
	}
	return nil
}
