package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"orphanage-api/internal/pagination"
	"orphanage-api/internal/service"
)

type createUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	PhoneNo  *string `json:"phone_no"`
}

type updateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	PhoneNo  *string `json:"phone_no"`
	Password *string `json:"password"`
}

func (h *Handler) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}
	if req.Username == nil || req.Email == nil || req.Password == nil {
		badRequest(c, "Must include username, email and password fields")
		return
	}

	var phone string
	if req.PhoneNo != nil {
		phone = *req.PhoneNo
	}

	user, err := h.users.Register(c.Request.Context(), *req.Username, *req.Email, *req.Password, phone)
	if err != nil {
		h.handleEntityError(c, err)
		return
	}

	token, err := h.tokens.Issue(c.Request.Context(), user)
	if err != nil {
		h.serverError(c, err)
		return
	}

	resp := userWithTokenResponse{
		UserResponse: userToResponse(*user),
		Token:        token,
	}
	c.Header("Location", resp.Links.Self)
	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) getUser(c *gin.Context) {
	id, ok := idParam(c, "invalid user id")
	if !ok {
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleEntityError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(*user))
}

func (h *Handler) listUsers(c *gin.Context) {
	src := pagination.NewSource(h.users.Count, h.users.List)
	page, err := pagination.Paginate(c.Request.Context(), src, pageParams(c, pagination.DefaultPerPage), pagination.MaxPerPage, "/api/users", userToResponse)
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) updateUser(c *gin.Context) {
	id, ok := idParam(c, "invalid user id")
	if !ok {
		return
	}
	if currentUser(c).ID != id {
		forbidden(c, "You are not allowed to edit another user's data")
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}

	user, err := h.users.Update(c.Request.Context(), id, service.UserUpdate{
		Username: req.Username,
		Email:    req.Email,
		PhoneNo:  req.PhoneNo,
		Password: req.Password,
	})
	if err != nil {
		h.handleEntityError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(*user))
}

func (h *Handler) deleteUser(c *gin.Context) {
	id, ok := idParam(c, "invalid user id")
	if !ok {
		return
	}
	if currentUser(c).ID != id {
		forbidden(c, "You are not allowed to delete another user")
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		h.handleEntityError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// idParam parses the :id route segment, writing a 400 on failure.
func idParam(c *gin.Context, message string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, message)
		return 0, false
	}
	return id, true
}

// pageParams reads the pagination query parameters; clamping happens inside
// the pagination engine.
func pageParams(c *gin.Context, defaultPerPage int) pagination.Params {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(defaultPerPage)))
	return pagination.Params{Page: page, PerPage: perPage}
}
