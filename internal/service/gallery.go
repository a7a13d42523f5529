package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"storefront-service/internal/model"
	"storefront-service/internal/store"
)

// GalleryService stores uploaded images as files under uploadDir and
// keeps one database record per file. publicPath is the URL prefix the
// files are served under.
type GalleryService struct {
	store      store.Store
	uploadDir  string
	publicPath string
}

func NewGalleryService(s store.Store, uploadDir, publicPath string) *GalleryService {
	return &GalleryService{store: s, uploadDir: uploadDir, publicPath: publicPath}
}

// Upload writes the file first and the record second. There is no
// rollback between the two writes: a failure after the file write
// leaves an orphan file on disk, which is an accepted gap.
func (s *GalleryService) Upload(ctx context.Context, data []byte, contentType, originalFilename string) (*model.GalleryImage, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: file must be an image, got %s", ErrInvalidInput, contentType)
	}

	filename := uuid.New().String() + filepath.Ext(originalFilename)
	path := filepath.Join(s.uploadDir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("write upload: %w", err)
	}

	img := &model.GalleryImage{
		ID:         uuid.New().String(),
		Filename:   filename,
		URL:        s.publicPath + "/" + filename,
		UploadedAt: time.Now().UTC(),
	}
	if err := s.store.Insert(ctx, store.Gallery, img); err != nil {
		return nil, fmt.Errorf("save gallery record: %w", err)
	}
	return img, nil
}

func (s *GalleryService) List(ctx context.Context) ([]model.GalleryImage, error) {
	docs, err := s.store.FindAll(ctx, store.Gallery, nil, &store.Sort{Field: "uploaded_at", Desc: true}, listLimit)
	if err != nil {
		return nil, fmt.Errorf("list gallery: %w", err)
	}
	images := make([]model.GalleryImage, 0, len(docs))
	for _, doc := range docs {
		var img model.GalleryImage
		if err := bson.Unmarshal(doc, &img); err != nil {
			return nil, fmt.Errorf("decode gallery image: %w", err)
		}
		images = append(images, img)
	}
	return images, nil
}

// Delete removes the backing file, then the record. A file that is
// already gone is tolerated so the record can still be cleaned up.
func (s *GalleryService) Delete(ctx context.Context, id string) error {
	doc, err := s.store.FindOne(ctx, store.Gallery, store.Filter{"id": id})
	if err != nil {
		if errors.Is(err, store.ErrNoDocument) {
			return ErrNotFound
		}
		return fmt.Errorf("get gallery image: %w", err)
	}
	var img model.GalleryImage
	if err := bson.Unmarshal(doc, &img); err != nil {
		return fmt.Errorf("decode gallery image: %w", err)
	}

	path := filepath.Join(s.uploadDir, img.Filename)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove upload file: %w", err)
	}

	if _, err := s.store.DeleteOne(ctx, store.Gallery, store.Filter{"id": id}); err != nil {
		return fmt.Errorf("delete gallery record: %w", err)
	}
	return nil
}
