package http

import (
	"errors"
	"fmt"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"orphanage-api/internal/storage"
)

func (h *Handler) uploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	file, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			errorResponse(c, http.StatusRequestEntityTooLarge, "Image should not be larger than 500 KB")
			return
		}
		badRequest(c, "Must include a file field")
		return
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(file.Filename), "."))
	if !h.allowedExts[ext] {
		errorResponse(c, http.StatusUnsupportedMediaType, "File is not an image of type 'png','jpg','jpeg' or 'gif'.")
		return
	}

	src, err := file.Open()
	if err != nil {
		h.serverError(c, err)
		return
	}
	defer src.Close()

	name := uuid.NewString() + "." + ext
	fp, err := h.store.Save(c.Request.Context(), name, src)
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"filepath": fp})
}

type deleteImageRequest struct {
	Filepath *string `json:"filepath"`
}

func (h *Handler) deleteImage(c *gin.Context) {
	if !currentUser(c).IsAdmin {
		forbidden(c, "Only an admin is allowed to delete images")
		return
	}

	var req deleteImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}
	if req.Filepath == nil || *req.Filepath == "" {
		badRequest(c, "Must include filepath field")
		return
	}

	name := path.Base(*req.Filepath)
	if err := h.store.Delete(c.Request.Context(), *req.Filepath); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			errorResponse(c, http.StatusNotFound, fmt.Sprintf("File %s does not exist", name))
			return
		}
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted_file": name})
}
