package storage

import (
	"context"
	"fmt"
	"path"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"research-blog-backend/internal/shared/apperror"
)

// ObjectStore is the part of MinIOStorage the image service needs.
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	RemoveFolder(ctx context.Context, prefix string) error
}

// ImageService validates, resizes and stores profile and cover images.
type ImageService struct {
	store     ObjectStore
	processor *ImageProcessor
}

func NewImageService(store ObjectStore, processor *ImageProcessor) *ImageService {
	if processor == nil {
		processor = NewImageProcessor()
	}
	return &ImageService{store: store, processor: processor}
}

// UploadImage stores every variant under prefix/<upload id>/ and returns the
// URL of the large variant.
func (s *ImageService) UploadImage(ctx context.Context, prefix string, data []byte) (string, error) {
	if err := s.processor.ValidateImage(data); err != nil {
		return "", apperror.Validation("Please upload a valid image: " + err.Error())
	}

	variants, err := s.processor.ProcessImage(data)
	if err != nil {
		return "", apperror.Validation("Please upload a valid image")
	}

	folder := path.Join(prefix, uuid.NewString())
	var largeURL string
	for name, content := range variants {
		url, err := s.store.Upload(ctx, path.Join(folder, name+".jpg"), content, "image/jpeg")
		if err != nil {
			return "", fmt.Errorf("upload %s variant: %w", name, err)
		}
		if name == "large" {
			largeURL = url
		}
	}

	log.Debug().Str("folder", folder).Int("variants", len(variants)).Msg("Image uploaded")
	return largeURL, nil
}

// DeleteImages removes everything stored under prefix.
func (s *ImageService) DeleteImages(ctx context.Context, prefix string) error {
	return s.store.RemoveFolder(ctx, prefix)
}
