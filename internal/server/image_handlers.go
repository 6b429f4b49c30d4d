package server

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"agora/internal/models"
	"agora/internal/service"
)

// UploadPostImage handles POST /api/posts/:postId/image (multipart field
// "postImage"). The stored URL is returned for the client to attach to the
// post body; nothing on the post row changes here.
func (s *Server) UploadPostImage(c *fiber.Ctx) error {
	if _, err := s.parseID(c, "postId"); err != nil {
		return nil
	}

	fileHeader, err := c.FormFile("postImage")
	if err != nil {
		return models.RespondWithError(c,
			models.NewInvalidFileError("multipart field 'postImage' is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(file)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	filePath, err := s.imageService.SaveImage(service.UploadImageInput{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	// The capitalized token is historical; clients match on it as-is.
	return models.Respond(c, fiber.StatusCreated, "Image_upload_success", fiber.Map{
		"filePath": filePath,
	})
}
