// Package upload is the multipart file intake: it writes incoming images
// to the local uploads directory and hands back generated filenames.
package upload

import (
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/wallfeed/wallfeed/internal/errors"
	"github.com/wallfeed/wallfeed/pkg/logger"
	"go.uber.org/zap"
)

// mimeToExt maps accepted image mimetypes to file extensions. Unlisted
// image subtypes fall back to .jpg.
var mimeToExt = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
	"image/bmp":     ".bmp",
}

// Saver stores uploaded files on local disk. Only the generated filename
// is returned to callers; serving the file back is the router's job.
type Saver struct {
	dir     string
	maxSize int64
}

func NewSaver(dir string, maxSize int64) (*Saver, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &Saver{dir: dir, maxSize: maxSize}, nil
}

// Save validates the upload (image mimetype, size ceiling) and writes it
// under a unique generated filename, which it returns.
func (s *Saver) Save(file *multipart.FileHeader) (string, error) {
	mimeType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(mimeType, "image/") {
		return "", apperrors.ErrNotAnImage
	}

	if file.Size > s.maxSize {
		return "", apperrors.WrapError(apperrors.ErrInvalidInput,
			fmt.Errorf("file size %d exceeds limit %d", file.Size, s.maxSize))
	}

	ext, ok := mimeToExt[mimeType]
	if !ok {
		ext = filepath.Ext(file.Filename)
		if ext == "" {
			ext = ".jpg"
		}
	}

	filename := fmt.Sprintf("%d-%d%s", time.Now().UnixMilli(), rand.Intn(1_000_000_000), ext)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return "", fmt.Errorf("failed to create upload target: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write uploaded file: %w", err)
	}

	logger.GetLogger().Debug("File uploaded",
		zap.String("filename", filename),
		zap.String("mime_type", mimeType),
		zap.Int64("size", file.Size),
	)

	return filename, nil
}

// SaveAll stores every file in order and returns the generated filenames.
// It fails on the first invalid file.
func (s *Saver) SaveAll(files []*multipart.FileHeader) ([]string, error) {
	filenames := make([]string, 0, len(files))
	for _, file := range files {
		filename, err := s.Save(file)
		if err != nil {
			return nil, err
		}
		filenames = append(filenames, filename)
	}
	return filenames, nil
}

// Dir returns the uploads directory for static serving
func (s *Saver) Dir() string {
	return s.dir
}
