package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"orphanage-api/internal/domain"
	"orphanage-api/internal/pagination"
)

type createMessageRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	PhoneNo   *string `json:"phone_no"`
	Content   *string `json:"content"`
}

func (h *Handler) createMessage(c *gin.Context) {
	var req createMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}
	if req.FirstName == nil || req.LastName == nil || req.Email == nil || req.PhoneNo == nil || req.Content == nil {
		badRequest(c, "Must include all required fields")
		return
	}

	msg := &domain.Message{
		FirstName: *req.FirstName,
		LastName:  *req.LastName,
		Email:     *req.Email,
		PhoneNo:   *req.PhoneNo,
		Content:   *req.Content,
	}
	if err := h.messages.Create(c.Request.Context(), msg); err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "Message successfully sent"})
}

func (h *Handler) listMessages(c *gin.Context) {
	src := pagination.NewSource(h.messages.Count, h.messages.List)
	page, err := pagination.Paginate(c.Request.Context(), src, pageParams(c, pagination.DefaultPerPage), pagination.MaxPerPage, "/api/messages", messageToResponse)
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
