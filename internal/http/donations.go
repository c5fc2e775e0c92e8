package http

import (
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"orphanage-api/internal/service"
)

type createDonationRequest struct {
	Username      *string  `json:"username"`
	OrphanageName *string  `json:"orphanage_name"`
	Amount        *float64 `json:"amount"`
}

func (h *Handler) createDonation(c *gin.Context) {
	var req createDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}
	if req.Username == nil || req.OrphanageName == nil || req.Amount == nil {
		badRequest(c, "Must include all required fields")
		return
	}

	cents := int64(math.Round(*req.Amount * 100))
	_, err := h.donations.Donate(c.Request.Context(), *req.Username, *req.OrphanageName, cents)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAmount):
			badRequest(c, "Amount must be a positive number")
		case errors.Is(err, service.ErrDonorNotFound):
			badRequest(c, "User not found")
		case errors.Is(err, service.ErrRecipientNotFound):
			badRequest(c, "Orphanage not found")
		default:
			h.serverError(c, err)
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "Donation successfully added"})
}

func (h *Handler) listOrphanageDonations(c *gin.Context) {
	id, ok := idParam(c, "invalid orphanage id")
	if !ok {
		return
	}
	if !currentUser(c).IsAdmin {
		forbidden(c, "Admin status is required to view an orphanage's donations")
		return
	}

	orph, donations, err := h.donations.ListByOrphanage(c.Request.Context(), id)
	if err != nil {
		h.handleEntityError(c, err)
		return
	}

	resp := make([]DonationResponse, len(donations))
	for i := range donations {
		resp[i] = donationToResponse(donations[i])
	}
	c.JSON(http.StatusOK, gin.H{
		"orphanage_name": orph.Name,
		"donations":      resp,
	})
}
