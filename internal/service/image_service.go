package service

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"agora/internal/models"
)

const imageMaxUploadBytes = 5 * 1024 * 1024

// ImageService stores uploaded post images on disk and hands back the URL
// the client embeds in the post. Nothing else is persisted about the file.
type ImageService struct {
	uploadDir string
	baseURL   string
}

func NewImageService(uploadDir, baseURL string) *ImageService {
	return &ImageService{uploadDir: uploadDir, baseURL: strings.TrimRight(baseURL, "/")}
}

type UploadImageInput struct {
	Filename    string
	ContentType string
	Content     []byte
}

var allowedImageExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// SaveImage accepts jpeg, png or gif up to 5 MiB, sniffing the content
// rather than trusting the declared type, and writes it under a
// uuid-prefixed name so uploads never collide or overwrite.
func (s *ImageService) SaveImage(in UploadImageInput) (string, error) {
	if len(in.Content) == 0 {
		return "", models.NewInvalidFileError("no file uploaded")
	}
	if len(in.Content) > imageMaxUploadBytes {
		return "", models.NewInvalidFileError("file exceeds 5MB limit")
	}
	detected := http.DetectContentType(in.Content)
	ext, ok := allowedImageExt[detected]
	if !ok {
		return "", models.NewInvalidFileError("only jpeg, png and gif are accepted")
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", models.NewInternalError(err)
	}
	name := fmt.Sprintf("%s-%s", uuid.New().String()[:8], sanitizeFilename(in.Filename, ext))
	if err := os.WriteFile(filepath.Join(s.uploadDir, name), in.Content, 0o644); err != nil {
		return "", models.NewInternalError(err)
	}
	return s.baseURL + "/uploads/" + name, nil
}

// sanitizeFilename strips any path components from the client-supplied name
// and guarantees an extension matching the detected type.
func sanitizeFilename(filename, ext string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = strings.ReplaceAll(base, " ", "_")
	if base == "." || base == "/" || base == "" {
		base = "image" + ext
	}
	if !strings.HasSuffix(strings.ToLower(base), ext) &&
		!(ext == ".jpg" && strings.HasSuffix(strings.ToLower(base), ".jpeg")) {
		base += ext
	}
	return base
}
