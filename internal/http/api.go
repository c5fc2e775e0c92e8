package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"orphanage-api/internal/service"
	"orphanage-api/internal/storage"
)

// UploadPolicy bounds what the image upload endpoint accepts.
type UploadPolicy struct {
	MaxBytes    int64
	AllowedExts []string
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	users     service.UserService
	tokens    service.TokenService
	orphs     service.OrphanageService
	messages  service.MessageService
	donations service.DonationService
	store     storage.Service
	logger    *logrus.Logger

	maxUploadBytes int64
	allowedExts    map[string]bool
}

func NewHandler(
	logger *logrus.Logger,
	users service.UserService,
	tokens service.TokenService,
	orphs service.OrphanageService,
	messages service.MessageService,
	donations service.DonationService,
	store storage.Service,
	uploads UploadPolicy,
) *Handler {
	exts := make(map[string]bool, len(uploads.AllowedExts))
	for _, ext := range uploads.AllowedExts {
		exts[ext] = true
	}
	return &Handler{
		users:          users,
		tokens:         tokens,
		orphs:          orphs,
		messages:       messages,
		donations:      donations,
		store:          store,
		logger:         logger,
		maxUploadBytes: uploads.MaxBytes,
		allowedExts:    exts,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())
	router.Use(requestLogger(h.logger))

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})

		api.POST("/tokens", h.issueToken)
		api.POST("/users", h.createUser)
		api.GET("/orphanages", h.listOrphanages)
		api.GET("/orphanage/:id", h.getOrphanage)
		api.POST("/messages", h.createMessage)
		api.GET("/messages", h.listMessages)
		api.POST("/donations", h.createDonation)
		api.POST("/image_upload", h.uploadImage)
		api.POST("/reset_password_request", h.requestPasswordReset)
		api.POST("/reset_password", h.resetPassword)

		authed := api.Group("", h.requireToken())
		{
			authed.DELETE("/tokens", h.revokeToken)
			authed.GET("/users", h.listUsers)
			authed.GET("/user/:id", h.getUser)
			authed.PUT("/user/:id", h.updateUser)
			authed.DELETE("/user/:id", h.deleteUser)
			authed.POST("/orphanages", h.createOrphanage)
			authed.PUT("/orphanage/:id", h.updateOrphanage)
			authed.DELETE("/orphanage/:id", h.deleteOrphanage)
			authed.GET("/orphanage_donations/:id", h.listOrphanageDonations)
			authed.POST("/image_delete", h.deleteImage)
		}
	}
}
