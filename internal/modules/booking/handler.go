package booking

import (
	"errors"
	"net/http"
	"strconv"

	"hotelbooking/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	bookings := rg.Group("/bookings")
	{
		bookings.GET("", h.ListMine)
		bookings.GET("/:id", h.Get)
		bookings.POST("/:id/cancel", h.Cancel)
	}
	rg.GET("/payments", h.ListPayments)
}

func (h *Handler) ListMine(c *gin.Context) {
	list, err := h.service.ListMine(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": list})
}

func (h *Handler) ListPayments(c *gin.Context) {
	list, err := h.service.ListPayments(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load payments")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payments": list})
}

// Get also backs the payment success page.
func (h *Handler) Get(c *gin.Context) {
	d, err := h.service.Get(c.Request.Context(), c.GetInt64("user_id"), bookingID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": d})
}

func (h *Handler) Cancel(c *gin.Context) {
	s, err := h.service.Cancel(c.Request.Context(), c.GetInt64("user_id"), bookingID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": s})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrAlreadyCanceled):
		response.Error(c, http.StatusConflict, "ALREADY_CANCELED", "Booking is already canceled")
	case errors.Is(err, ErrStayStarted):
		response.Error(c, http.StatusConflict, "STAY_STARTED", "Bookings can only be canceled before the check-in date")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process booking")
	}
}

func bookingID(c *gin.Context) int64 {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	return id
}
