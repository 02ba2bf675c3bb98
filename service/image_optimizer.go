package service

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"

	"menu-price-map/colormap"

	"github.com/disintegration/imaging"
)

const (
	// Quality settings
	qualityThumb  = 60
	qualityMedium = 75
	// Size settings (max dimension)
	maxSizeThumb  = 300
	maxSizeMedium = 800
)

// ImageCache keeps rendered images on disk under dir
type ImageCache struct {
	dir string
}

// NewImageCache creates the cache directory if needed
func NewImageCache(dir string) (*ImageCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &ImageCache{dir: dir}, nil
}

// Path returns the cache file path of a file within a group
func (c *ImageCache) Path(group, file string) string {
	return filepath.Join(c.dir, group, file)
}

// Exists checks if a cached image exists
func (c *ImageCache) Exists(cachePath string) bool {
	_, err := os.Stat(cachePath)
	return err == nil
}

// Read reads an image from the cache
func (c *ImageCache) Read(cachePath string) ([]byte, error) {
	data, err := os.ReadFile(cachePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read from cache: %w", err)
	}
	return data, nil
}

// Save saves an image to the cache
func (c *ImageCache) Save(cachePath string, imageData []byte) error {
	if err := os.MkdirAll(filepath.Dir(cachePath), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(cachePath, imageData, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	log.Printf("✓ Image cached: %s", cachePath)
	return nil
}

// OptimizeImage converts an image to JPEG, fitting it within the size's
// max dimension. size is "thumb" or "medium"; anything else is medium.
func OptimizeImage(imageData []byte, size string) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	log.Printf("📸 Image decoded: format=%s, bounds=%v", format, img.Bounds())

	maxDim, quality := maxSizeMedium, qualityMedium
	switch size {
	case "thumb":
		maxDim, quality = maxSizeThumb, qualityThumb
	case "medium", "":
	default:
		log.Printf("⚠️  Unknown size '%s', defaulting to medium", size)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxDim || bounds.Dy() > maxDim {
		log.Printf("🔄 Resizing image: %dx%d -> fit %d", bounds.Dx(), bounds.Dy(), maxDim)
		img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}

	log.Printf("✓ Image optimized: size=%s, quality=%d, output_size=%d bytes", size, quality, buf.Len())
	return buf.Bytes(), nil
}

// RenderGradientPNG draws a horizontal swatch of the gradient, left = 0, right = 1
func RenderGradientPNG(g colormap.Gradient, width, height int) ([]byte, error) {
	if width < 2 || height < 1 {
		return nil, fmt.Errorf("legend size %dx%d too small", width, height)
	}
	img := imaging.New(width, height, color.NRGBA{})
	for x := 0; x < width; x++ {
		c := g.At(float64(x) / float64(width-1))
		px := color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
		for y := 0; y < height; y++ {
			img.SetNRGBA(x, y, px)
		}
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode legend: %w", err)
	}
	return buf.Bytes(), nil
}
