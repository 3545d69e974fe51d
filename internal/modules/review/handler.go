package review

import (
	"errors"
	"net/http"
	"strconv"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts review endpoints on an authenticated group.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.POST("/rooms/:slug/reviews", h.Create)

	reviews := protected.Group("/reviews")
	{
		reviews.GET("/:id", h.Get)
		reviews.PUT("/:id", h.Update)
		reviews.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	res, err := h.svc.Create(c.Request.Context(), c.GetInt64("user_id"), c.Param("slug"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

func (h *Handler) Get(c *gin.Context) {
	res, err := h.svc.Get(c.Request.Context(), reviewID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) Update(c *gin.Context) {
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	res, err := h.svc.Update(c.Request.Context(), actorOf(c), reviewID(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) Delete(c *gin.Context) {
	res, err := h.svc.Delete(c.Request.Context(), actorOf(c), reviewID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) fail(c *gin.Context, err error) {
	var invalid *InvalidError
	switch {
	case errors.As(err, &invalid):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Rating must be 1 to 5 and a comment is required", invalid.Fields)
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Review not found")
	case errors.Is(err, ErrRoomNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You can only change your own reviews")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process review")
	}
}

func reviewID(c *gin.Context) int64 {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	return id
}

func actorOf(c *gin.Context) Actor {
	return Actor{
		UserID:  c.GetInt64("user_id"),
		IsAdmin: c.GetString("role") == string(domain.RoleAdmin),
	}
}
