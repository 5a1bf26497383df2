// Package media provides image processing utilities
package media

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AssetGridHQ/assetgrid-go/pkg/config"
	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// ThumbnailProcessor renders the WebP thumbnails referenced by selection
// chips and page rows. One processor per tenant media directory.
type ThumbnailProcessor struct {
	basePath string
}

// NewThumbnailProcessor creates a new ThumbnailProcessor instance
func NewThumbnailProcessor(basePath string) *ThumbnailProcessor {
	return &ThumbnailProcessor{
		basePath: basePath,
	}
}

// GenerateThumbnail resizes the source image to the configured width and
// saves it as WebP under the thumbnail directory. Returns the relative
// thumbnail ref stored on the entity row.
func (p *ThumbnailProcessor) GenerateThumbnail(sourcePath, entityID string) (string, error) {
	sourceFile, err := os.Open(sourcePath)
	if err != nil {
		return "", fmt.Errorf("failed to open source image: %w", err)
	}
	defer sourceFile.Close()

	img, err := imaging.Decode(sourceFile)
	if err != nil {
		return "", fmt.Errorf("failed to decode source image: %w", err)
	}

	thumbsDir := filepath.Join(p.basePath, config.ThumbnailDir)
	if err := os.MkdirAll(thumbsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create thumbnail directory: %w", err)
	}

	resized := imaging.Resize(img, config.ThumbnailWidth, 0, imaging.Lanczos)

	thumbFilename := fmt.Sprintf("%s_%dpx.webp", entityID, config.ThumbnailWidth)
	thumbPath := filepath.Join(thumbsDir, thumbFilename)

	// imaging has no webp encoder
	if err := webp.Save(thumbPath, resized, &webp.Options{Quality: config.ThumbnailQuality}); err != nil {
		return "", fmt.Errorf("failed to save WebP thumbnail %s: %w", thumbFilename, err)
	}

	return filepath.Join(config.ThumbnailDir, thumbFilename), nil
}

// RemoveThumbnail deletes the thumbnail for an entity, used after force
// delete. Missing files are not an error.
func (p *ThumbnailProcessor) RemoveThumbnail(thumbnailRef string) error {
	if thumbnailRef == "" {
		return nil
	}
	path := filepath.Join(p.basePath, thumbnailRef)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove thumbnail: %w", err)
	}
	return nil
}
