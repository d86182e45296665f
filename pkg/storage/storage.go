package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const thumbnailSize = 200

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// ImageStore saves article photos on local disk and derives a square
// thumbnail for list views. Files are keyed by the owning article id so a
// re-upload replaces the previous image.
type ImageStore struct {
	basePath string
	baseURL  string
	maxSize  int64
}

// NewImageStore creates an image store rooted at basePath. Served files are
// addressed under baseURL (e.g. "/uploads").
func NewImageStore(basePath, baseURL string, maxSize int64) (*ImageStore, error) {
	if err := os.MkdirAll(filepath.Join(basePath, "articles"), 0o755); err != nil {
		return nil, fmt.Errorf("storage: create upload dir: %w", err)
	}
	return &ImageStore{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
		maxSize:  maxSize,
	}, nil
}

// SaveArticleImage stores the uploaded file and its thumbnail, returning the
// public URLs (image, thumbnail).
func (s *ImageStore) SaveArticleImage(articleID uuid.UUID, file *multipart.FileHeader) (string, string, error) {
	if file.Size > s.maxSize {
		return "", "", fmt.Errorf("storage: file exceeds maximum size of %d bytes", s.maxSize)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !imageExtensions[ext] {
		return "", "", fmt.Errorf("storage: unsupported image type %q", ext)
	}

	src, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("storage: open upload: %w", err)
	}
	defer src.Close()

	name := articleID.String() + ext
	fullPath := filepath.Join(s.basePath, "articles", name)

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", "", fmt.Errorf("storage: create file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", "", fmt.Errorf("storage: write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", "", fmt.Errorf("storage: close file: %w", err)
	}

	thumbURL, err := s.writeThumbnail(fullPath, articleID, ext)
	if err != nil {
		// The original is usable without a thumbnail; leave it in place.
		return s.publicURL("articles", name), "", nil
	}

	return s.publicURL("articles", name), thumbURL, nil
}

func (s *ImageStore) writeThumbnail(srcPath string, articleID uuid.UUID, ext string) (string, error) {
	img, err := imaging.Open(srcPath)
	if err != nil {
		return "", err
	}

	thumb := imaging.Fill(img, thumbnailSize, thumbnailSize, imaging.Center, imaging.Lanczos)
	name := articleID.String() + "_thumb" + ext
	if err := imaging.Save(thumb, filepath.Join(s.basePath, "articles", name)); err != nil {
		return "", err
	}
	return s.publicURL("articles", name), nil
}

// DeleteArticleImage removes the stored image and thumbnail, if present.
func (s *ImageStore) DeleteArticleImage(articleID uuid.UUID) {
	for ext := range imageExtensions {
		_ = os.Remove(filepath.Join(s.basePath, "articles", articleID.String()+ext))
		_ = os.Remove(filepath.Join(s.basePath, "articles", articleID.String()+"_thumb"+ext))
	}
}

// BasePath returns the root directory served as static uploads.
func (s *ImageStore) BasePath() string {
	return s.basePath
}

func (s *ImageStore) publicURL(parts ...string) string {
	return s.baseURL + "/" + strings.Join(parts, "/")
}
