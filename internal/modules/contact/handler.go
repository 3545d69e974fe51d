package contact

import (
	"errors"
	"net/http"

	"hotelbooking/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.POST("/contact", h.Submit)
}

func (h *Handler) Submit(c *gin.Context) {
	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	m, err := h.service.Submit(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		var invalid *InvalidError
		if errors.As(err, &invalid) {
			response.FieldErrors(c, http.StatusBadRequest, invalid.Fields)
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to send message")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"id":      m.ID,
		"message": "Your message has been sent.",
	})
}
