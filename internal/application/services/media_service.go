package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/media"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/observability/logging"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/observability/performance"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/tenant"
	"github.com/AssetGridHQ/assetgrid-go/pkg/config"
)

// MediaService handles thumbnail uploads for entity rows. The rendered ref
// is denormalized onto the entity and picked up by the next snapshot read.
type MediaService struct {
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewMediaService creates a new media service
func NewMediaService(logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *MediaService {
	return &MediaService{
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// AttachThumbnail stores the uploaded image, renders a WebP thumbnail, and
// records the ref on the entity row.
func (s *MediaService) AttachThumbnail(ctx context.Context, tenantCtx *tenant.Context, entityID string, file *multipart.FileHeader) (string, error) {
	marker := s.perfTracker.StartOperation("thumbnail_attach", tenantCtx.TenantID)
	defer marker.Complete()

	basePath := filepath.Join(config.ConfigDir, tenantCtx.TenantID, "media")
	originalsDir := filepath.Join(basePath, "originals")
	if err := os.MkdirAll(originalsDir, 0755); err != nil {
		marker.SetError(err)
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}

	sourcePath := filepath.Join(originalsDir, entityID+filepath.Ext(file.Filename))
	if err := saveUpload(file, sourcePath); err != nil {
		marker.SetError(err)
		return "", err
	}

	processor := media.NewThumbnailProcessor(basePath)
	ref, err := processor.GenerateThumbnail(sourcePath, entityID)
	if err != nil {
		marker.SetError(err)
		return "", err
	}

	if err := tenantCtx.MediaRepo().SetThumbnailRef(ctx, entityID, ref); err != nil {
		marker.SetError(err)
		return "", err
	}

	// Cached snapshots still carry the old ref.
	tenantCtx.GetCacheManager().Invalidate(tenantCtx.TenantID)

	marker.SetSuccess(true)
	s.logger.Media().Info("Thumbnail attached", "tenantId", tenantCtx.TenantID, "entityId", entityID, "ref", ref)

	return ref, nil
}

func saveUpload(file *multipart.FileHeader, destPath string) error {
	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	dest, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create media file: %w", err)
	}
	defer dest.Close()

	if _, err := io.Copy(dest, src); err != nil {
		return fmt.Errorf("failed to write media file: %w", err)
	}
	return nil
}
