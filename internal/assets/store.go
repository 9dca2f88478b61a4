package assets

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"shop-admin/internal/apperror"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Class selects the target geometry for an uploaded image.
type Class string

const (
	// ClassThumbnail covers product and category images: 200x200, cropped.
	ClassThumbnail Class = "thumbnail"
	// ClassHero is the large landing banner: 1200x600, cropped.
	ClassHero Class = "hero"
	// ClassLogo fits inside 200x200 without cropping.
	ClassLogo Class = "logo"
	// ClassFavicon fits inside 32x32.
	ClassFavicon Class = "favicon"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// Store handles uploaded images: resizing, placement under the public asset
// root, and best-effort cleanup.
type Store interface {
	// Save resizes the image per class, writes it under
	// public/<entity>/<generated>.<ext> and returns the relative URL path.
	Save(data []byte, originalName, entity string, class Class) (string, error)
	// Remove deletes the file behind a stored URL path. Failures are logged
	// and swallowed; a missing file is not an error.
	Remove(urlPath string)
}

// DiskStore writes assets to the local filesystem under root/public/.
type DiskStore struct {
	root   string
	logger *zap.Logger
}

// NewDiskStore creates a Store rooted at the directory containing public/.
func NewDiskStore(root string, logger *zap.Logger) *DiskStore {
	return &DiskStore{root: root, logger: logger}
}

func (s *DiskStore) Save(data []byte, originalName, entity string, class Class) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return "", apperror.Validation(fmt.Sprintf("unsupported image type %q", ext))
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", apperror.Validation("file is not a valid image")
	}

	switch class {
	case ClassHero:
		img = imaging.Fill(img, 1200, 600, imaging.Center, imaging.Lanczos)
	case ClassLogo:
		img = imaging.Fit(img, 200, 200, imaging.Lanczos)
	case ClassFavicon:
		img = imaging.Fit(img, 32, 32, imaging.Lanczos)
	default:
		img = imaging.Fill(img, 200, 200, imaging.Center, imaging.Lanczos)
	}

	// Collision-resistant, not guaranteed unique; uuid keeps concurrent
	// uploads from clashing in practice.
	name := uuid.New().String() + ext
	dir := filepath.Join(s.root, "public", entity)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create asset directory: %w", err)
	}

	fullPath := filepath.Join(dir, name)
	if err := imaging.Save(img, fullPath, imaging.JPEGQuality(80)); err != nil {
		s.logger.Error("Failed to save image", zap.String("path", fullPath), zap.Error(err))
		return "", apperror.Validation("error saving image file")
	}

	return "/public/" + entity + "/" + name, nil
}

func (s *DiskStore) Remove(urlPath string) {
	if urlPath == "" {
		return
	}

	fullPath := filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(urlPath, "/")))
	if err := os.Remove(fullPath); err != nil {
		if !os.IsNotExist(err) {
			s.logger.Error("Failed to remove image", zap.String("path", fullPath), zap.Error(err))
		}
		return
	}

	s.logger.Debug("Image removed", zap.String("path", urlPath))
}
