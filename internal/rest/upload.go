package rest

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/auri-community/blog/api"
)

const maxUploadBytes = 5 << 20 // 5MB

// allowedImageTypes mirrors the upload allow-list: jpeg, png, webp.
var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/webp": {},
}

// UploadHandler accepts a single image file and returns a served URL. It is
// a URL producer for the editor's insertImage command, nothing more.
type UploadHandler struct {
	dir string
}

func NewUploadHandler(dir string) *UploadHandler {
	return &UploadHandler{dir: dir}
}

// Dir returns the directory uploads are written to and served from.
func (h *UploadHandler) Dir() string {
	return h.dir
}

// Upload handles POST /api/upload with a multipart "file" field.
func (h *UploadHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	if file.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size too large (max 5MB)"})
		return
	}

	contentType := file.Header.Get("Content-Type")
	if _, ok := allowedImageTypes[contentType]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type"})
		return
	}

	if err := os.MkdirAll(h.dir, 0755); err != nil {
		log.Error().Err(err).Str("dir", h.dir).Msg("Failed to create upload directory")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
		return
	}

	// Timestamp plus a short random token keeps concurrent uploads of the
	// same filename from clobbering each other.
	filename := fmt.Sprintf("%d-%s-%s",
		time.Now().UnixMilli(),
		uuid.NewString()[:8],
		filepath.Base(file.Filename),
	)

	if err := c.SaveUploadedFile(file, filepath.Join(h.dir, filename)); err != nil {
		log.Error().Err(err).Str("filename", filename).Msg("Failed to save upload")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
		return
	}

	c.JSON(http.StatusOK, api.UploadResponse{
		Success:  true,
		ImageURL: "/uploads/" + filename,
		Filename: filename,
	})
}
