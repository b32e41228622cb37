package photo

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	"github.com/google/uuid"

	// Decoders for the upload formats the browser commonly hands us
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// Import settings
const (
	// MaxDisplayDim is the longest edge of the stored display asset.
	// Uploads are downscaled to keep GPU texture memory bounded.
	MaxDisplayDim = 1024
	// JPEGQuality is the encode quality for stored assets.
	JPEGQuality = 85
)

// Importer turns uploaded image bytes into session photos: decode, resize,
// store the display asset, assign layout positions.
type Importer struct {
	assetDir string
	layout   *Layout
}

// NewImporter creates an Importer that stores display assets under
// assetDir, which must already exist.
func NewImporter(assetDir string, layout *Layout) *Importer {
	return &Importer{
		assetDir: assetDir,
		layout:   layout,
	}
}

// Import decodes the given image bytes, writes a downscaled display asset
// and returns the new Photo with its positions assigned.
func (im *Importer) Import(data []byte) (*Photo, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	img = downscale(img)

	id := uuid.New().String()
	assetPath := filepath.Join(im.assetDir, id+".jpg")
	if err := imgio.Save(assetPath, img, imgio.JPEGEncoder(JPEGQuality)); err != nil {
		return nil, fmt.Errorf("save asset (%s upload): %w", format, err)
	}

	p := &Photo{
		ID:        id,
		SourceURL: "/api/photos/" + id + "/image",
		CreatedAt: time.Now(),
	}
	im.layout.Assign(p)

	return p, nil
}

// ImportFile imports an image from disk, used by the watched drop folder.
func (im *Importer) ImportFile(path string) (*Photo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return im.Import(data)
}

// AssetPath returns the on-disk path of a photo's display asset.
func (im *Importer) AssetPath(id string) string {
	return filepath.Join(im.assetDir, id+".jpg")
}

// RemoveAsset deletes the stored display asset for a photo.
func (im *Importer) RemoveAsset(id string) error {
	err := os.Remove(im.AssetPath(id))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// downscale resizes img so its longest edge is at most MaxDisplayDim,
// preserving aspect ratio. Smaller images pass through untouched.
func downscale(img image.Image) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w <= MaxDisplayDim && h <= MaxDisplayDim {
		return img
	}

	if w >= h {
		h = h * MaxDisplayDim / w
		w = MaxDisplayDim
	} else {
		w = w * MaxDisplayDim / h
		h = MaxDisplayDim
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	return transform.Resize(img, w, h, transform.Linear)
}
