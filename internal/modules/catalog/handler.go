package catalog

import (
	"errors"
	"net/http"

	"hotelbooking/internal/pkg/response"
	"hotelbooking/internal/pkg/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(v1 *gin.RouterGroup) {
	v1.GET("/home", h.Home)
	v1.GET("/services", h.ListServices)

	rooms := v1.Group("/rooms")
	{
		rooms.GET("", h.ListRooms)
		rooms.GET("/:slug", h.GetRoom)
	}
}

// ListRooms handles GET /api/v1/rooms
func (h *Handler) ListRooms(c *gin.Context) {
	q := ListQuery{
		People:   utils.PositiveInt(c.Query("people"), 0),
		MinPrice: utils.NonNegativeInt64(c.Query("min_price")),
		MaxPrice: utils.NonNegativeInt64(c.Query("max_price")),
		CheckIn:  c.Query("check_in"),
		CheckOut: c.Query("check_out"),
		Search:   c.Query("search"),
		Page:     utils.PositiveInt(c.Query("page"), 1),
	}

	page, err := h.service.ListRooms(c.Request.Context(), q)
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load rooms")
		return
	}
	response.Success(c, http.StatusOK, page)
}

// GetRoom handles GET /api/v1/rooms/:slug
func (h *Handler) GetRoom(c *gin.Context) {
	detail, err := h.service.GetRoom(c.Request.Context(), c.Param("slug"), c.Query("check_in"), c.Query("check_out"))
	if err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room not found")
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load room")
		return
	}
	response.Success(c, http.StatusOK, detail)
}

func (h *Handler) ListServices(c *gin.Context) {
	services, err := h.service.ListServices(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load services")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"services": services})
}

func (h *Handler) Home(c *gin.Context) {
	home, err := h.service.Home(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load home page")
		return
	}
	response.Success(c, http.StatusOK, home)
}
