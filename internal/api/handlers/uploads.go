package handlers

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"careerbridge/internal/api/middleware"
	"careerbridge/internal/objstore"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Resumes and cover letters only; 10 MB each is plenty.
const maxUploadSize = 10 << 20

var allowedUploadExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
}

// UploadHandler stores resume and cover letter files in object storage
// and returns the link students put on their applications.
type UploadHandler struct {
	store     *objstore.Client // Nil when object storage is not configured
	urlExpiry time.Duration
}

// NewUploadHandler creates a new UploadHandler. A nil store disables
// uploads; the endpoint then answers 503.
func NewUploadHandler(store *objstore.Client) *UploadHandler {
	return &UploadHandler{
		store:     store,
		urlExpiry: 7 * 24 * time.Hour,
	}
}

// UploadResume godoc
// @Summary      Upload a resume or cover letter
// @Description  Stores the file in object storage and returns a link to use in the application form.
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Resume or cover letter (pdf, doc, docx, txt; max 10MB)"
// @Success      201 {object}  map[string]string "File stored, link returned"
// @Failure      400 {object}  map[string]string "Bad Request - Missing or oversized file"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      503 {object}  map[string]string "Service Unavailable - Object storage not configured"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /uploads/resume [post]
// @Security     BearerAuth
func (h *UploadHandler) UploadResume(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "File uploads are not available"})
		return
	}

	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file in form field 'file'"})
		return
	}
	if fileHeader.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 10MB limit"})
		return
	}

	ext := filepath.Ext(fileHeader.Filename)
	if !allowedUploadExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported file type, use pdf, doc, docx or txt"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Error opening uploaded file: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	key := fmt.Sprintf("resumes/%s/%s%s", userID, uuid.New(), ext)
	contentType := fileHeader.Header.Get("Content-Type")

	if err := h.store.Upload(c.Request.Context(), key, file, fileHeader.Size, contentType); err != nil {
		log.Printf("Error uploading %s: %v", key, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	url, err := h.store.PresignedURL(c.Request.Context(), key, h.urlExpiry)
	if err != nil {
		log.Printf("Error presigning %s: %v", key, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create download link"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"key": key, "url": url})
}
