package http

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"orphanage-api/internal/domain"
	"orphanage-api/internal/pagination"
	"orphanage-api/internal/service"
)

// orphanageRequest covers the orphanage profile's full field set. The typed
// pointer fields are the mutation whitelist; unknown JSON keys are dropped by
// the decoder.
type orphanageRequest struct {
	Name                    *string          `json:"name"`
	Email                   *string          `json:"email"`
	Students                *int             `json:"students"`
	PhoneNo                 *string          `json:"phone_no"`
	Location                *json.RawMessage `json:"location"`
	Activities              *string          `json:"activities"`
	PaypalInfo              *json.RawMessage `json:"paypal_info"`
	SocialMediaLinks        *json.RawMessage `json:"social_media_links"`
	Story                   *string          `json:"story"`
	MoneyUses               *string          `json:"money_uses"`
	PhotosLinks             *json.RawMessage `json:"photos_links"`
	BankInfo                *string          `json:"bank_info"`
	ActID                   *string          `json:"actId"`
	ActType                 *string          `json:"acttype"`
	Country                 *string          `json:"country"`
	GoodWork                *string          `json:"good_work"`
	MonthlyDonation         *string          `json:"monthly_donation"`
	RegistrationCertificate *string          `json:"registration_certificate"`
	BlogLink                *string          `json:"blog_link"`
}

func (r orphanageRequest) complete() bool {
	return r.Name != nil && r.Email != nil && r.Students != nil && r.PhoneNo != nil &&
		r.Location != nil && r.Activities != nil && r.PaypalInfo != nil &&
		r.SocialMediaLinks != nil && r.Story != nil && r.MoneyUses != nil &&
		r.PhotosLinks != nil && r.BankInfo != nil && r.ActID != nil &&
		r.ActType != nil && r.Country != nil && r.GoodWork != nil &&
		r.MonthlyDonation != nil && r.RegistrationCertificate != nil && r.BlogLink != nil
}

func (r orphanageRequest) toUpdate() service.OrphanageUpdate {
	return service.OrphanageUpdate{
		Name:                    r.Name,
		Email:                   r.Email,
		Students:                r.Students,
		PhoneNo:                 r.PhoneNo,
		Location:                r.Location,
		Activities:              r.Activities,
		PaypalInfo:              r.PaypalInfo,
		SocialMediaLinks:        r.SocialMediaLinks,
		Story:                   r.Story,
		MoneyUses:               r.MoneyUses,
		PhotosLinks:             r.PhotosLinks,
		BankInfo:                r.BankInfo,
		ActID:                   r.ActID,
		ActType:                 r.ActType,
		Country:                 r.Country,
		GoodWork:                r.GoodWork,
		MonthlyDonation:         r.MonthlyDonation,
		RegistrationCertificate: r.RegistrationCertificate,
		BlogLink:                r.BlogLink,
	}
}

// toDomain builds a full entity; only valid when complete() holds.
func (r orphanageRequest) toDomain() *domain.Orphanage {
	return &domain.Orphanage{
		Name:                    *r.Name,
		Email:                   *r.Email,
		Students:                *r.Students,
		PhoneNo:                 *r.PhoneNo,
		Location:                *r.Location,
		Activities:              *r.Activities,
		PaypalInfo:              *r.PaypalInfo,
		SocialMediaLinks:        *r.SocialMediaLinks,
		Story:                   *r.Story,
		MoneyUses:               *r.MoneyUses,
		PhotosLinks:             *r.PhotosLinks,
		BankInfo:                *r.BankInfo,
		ActID:                   *r.ActID,
		ActType:                 *r.ActType,
		Country:                 *r.Country,
		GoodWork:                *r.GoodWork,
		MonthlyDonation:         *r.MonthlyDonation,
		RegistrationCertificate: *r.RegistrationCertificate,
		BlogLink:                *r.BlogLink,
	}
}

func (h *Handler) createOrphanage(c *gin.Context) {
	var req orphanageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}
	if !req.complete() {
		badRequest(c, "Must include all required fields")
		return
	}
	if !currentUser(c).IsAdmin {
		forbidden(c, "Admin status is required to create an orphanage")
		return
	}

	orph := req.toDomain()
	if err := h.orphs.Create(c.Request.Context(), orph); err != nil {
		h.handleEntityError(c, err)
		return
	}

	resp := orphanageToResponse(*orph)
	c.Header("Location", resp.Links.Self)
	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) getOrphanage(c *gin.Context) {
	id, ok := idParam(c, "invalid orphanage id")
	if !ok {
		return
	}

	orph, err := h.orphs.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleEntityError(c, err)
		return
	}
	c.JSON(http.StatusOK, orphanageToResponse(*orph))
}

func (h *Handler) listOrphanages(c *gin.Context) {
	src := pagination.NewSource(h.orphs.Count, h.orphs.List)
	page, err := pagination.Paginate(c.Request.Context(), src, pageParams(c, pagination.MaxPerPage), pagination.MaxPerPage, "/api/orphanages", orphanageToResponse)
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) updateOrphanage(c *gin.Context) {
	id, ok := idParam(c, "invalid orphanage id")
	if !ok {
		return
	}
	if !currentUser(c).IsAdmin {
		forbidden(c, "Admin status is required to update an orphanage")
		return
	}

	var req orphanageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}

	orph, err := h.orphs.Update(c.Request.Context(), id, req.toUpdate())
	if err != nil {
		h.handleEntityError(c, err)
		return
	}
	c.JSON(http.StatusOK, orphanageToResponse(*orph))
}

func (h *Handler) deleteOrphanage(c *gin.Context) {
	id, ok := idParam(c, "invalid orphanage id")
	if !ok {
		return
	}
	if !currentUser(c).IsAdmin {
		forbidden(c, "Admin status is required to delete an orphanage")
		return
	}

	if err := h.orphs.Delete(c.Request.Context(), id); err != nil {
		h.handleEntityError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
