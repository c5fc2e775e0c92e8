package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"orphanage-api/internal/service"
)

type issueTokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) issueToken(c *gin.Context) {
	var req issueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			errorResponse(c, http.StatusUnauthorized, "Incorrect username or password")
			return
		}
		h.serverError(c, err)
		return
	}

	token, err := h.tokens.Issue(c.Request.Context(), user)
	if err != nil {
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, userWithTokenResponse{
		UserResponse: userToResponse(*user),
		Token:        token,
	})
}

func (h *Handler) revokeToken(c *gin.Context) {
	if err := h.tokens.Revoke(c.Request.Context(), currentUser(c)); err != nil {
		h.serverError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type resetRequestBody struct {
	Email *string `json:"email"`
}

type resetPasswordBody struct {
	Token    *string `json:"token"`
	Password *string `json:"password"`
}

func (h *Handler) requestPasswordReset(c *gin.Context) {
	var req resetRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}
	if req.Email == nil || *req.Email == "" {
		badRequest(c, "Must include email field")
		return
	}

	if err := h.users.RequestPasswordReset(c.Request.Context(), *req.Email); err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "If the email is registered, a reset token has been sent"})
}

func (h *Handler) resetPassword(c *gin.Context) {
	var req resetPasswordBody
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}
	if req.Token == nil || req.Password == nil {
		badRequest(c, "Must include token and password fields")
		return
	}

	if err := h.users.ResetPassword(c.Request.Context(), *req.Token, *req.Password); err != nil {
		if errors.Is(err, service.ErrInvalidResetToken) {
			badRequest(c, "Invalid or expired reset token")
			return
		}
		h.handleEntityError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Password updated"})
}
