package game

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/unboxing/pkg/embedded"
	"github.com/decker502/unboxing/pkg/utils"
)

// ResourceManager is responsible for centralized management of image resources.
// It provides loading and caching mechanisms for sprite sheets and GPU textures,
// ensuring that resources are loaded only once and reused by the scene.
//
// Two caches are kept:
//   - decoded source images (image.Image), used by the frame extractor to read pixels
//   - Ebitengine images, used for drawing
//
// Thread Safety Note:
// This implementation is NOT thread-safe. The internal caches use standard Go maps.
// For the single-threaded game loop, no synchronization is needed.
//
// Usage:
//
//	rm := NewResourceManager()
//	sheet, err := rm.LoadSourceImage("assets/images/unboxing_sheet.png")
//	if err != nil {
//	    log.Printf("Failed to load sheet: %v", err)
//	}
type ResourceManager struct {
	sourceCache map[string]image.Image   // Decoded images: path -> image.Image
	imageCache  map[string]*ebiten.Image // GPU images: path -> Image
}

// NewResourceManager creates and initializes a new ResourceManager instance with empty caches.
func NewResourceManager() *ResourceManager {
	return &ResourceManager{
		sourceCache: make(map[string]image.Image),
		imageCache:  make(map[string]*ebiten.Image),
	}
}

// LoadSourceImage loads and decodes an image file, reading the embedded
// assets first and falling back to disk. The decoded image is cached.
//
// Returns an error if the file does not exist or cannot be decoded.
// Does not panic - all errors are returned to the caller for handling.
func (rm *ResourceManager) LoadSourceImage(path string) (image.Image, error) {
	if cached, exists := rm.sourceCache[path]; exists {
		return cached, nil
	}

	data, err := embedded.ReadFileOrDisk(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}

	img, err := DecodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	rm.sourceCache[path] = img
	return img, nil
}

// LoadImage loads an image file and converts it to an Ebitengine image.
// If the image has already been loaded, it returns the cached version.
func (rm *ResourceManager) LoadImage(path string) (*ebiten.Image, error) {
	if cachedImage, exists := rm.imageCache[path]; exists {
		return cachedImage, nil
	}

	img, err := rm.LoadSourceImage(path)
	if err != nil {
		return nil, err
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[path] = ebitenImg
	return ebitenImg, nil
}

// GetImage retrieves a previously loaded image from the cache.
// Returns nil if the image has not been loaded.
func (rm *ResourceManager) GetImage(path string) *ebiten.Image {
	return rm.imageCache[path]
}

// FrameTextures converts every frame of a FrameSet into an Ebitengine image.
// The returned slice is indexed the same way as the FrameSet.
func (rm *ResourceManager) FrameTextures(frames *utils.FrameSet) []*ebiten.Image {
	textures := make([]*ebiten.Image, frames.Len())
	for i := range textures {
		if frame := frames.Frame(i); frame != nil {
			textures[i] = ebiten.NewImageFromImage(frame)
		}
	}
	return textures
}

// DecodeImage decodes PNG or JPEG data.
func DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return img, nil
}
