package reservation

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"hotelbooking/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const maxFormGuests = 20

type Redirects struct {
	// SuccessURL is a format string taking the booking id.
	SuccessURL string
	FailURL    string
}

type Handler struct {
	service   *Service
	redirects Redirects
	log       *logrus.Logger
}

func NewHandler(service *Service, redirects Redirects, log *logrus.Logger) *Handler {
	return &Handler{service: service, redirects: redirects, log: log}
}

// RegisterRoutes mounts the reservation endpoints. rg must run the auth
// middleware: both the quote and the gateway callback need the user.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reservations/:slug", h.Quote)
	rg.GET("/reservations/verify", h.Verify)
}

func (h *Handler) Quote(c *gin.Context) {
	req, err := bindQuoteRequest(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.Quote(c.Request.Context(), c.GetInt64("user_id"), c.Param("slug"), req)
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			response.FieldErrors(c, http.StatusBadRequest, verr.Fields)
		case errors.Is(err, ErrRoomNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room not found")
		case errors.Is(err, ErrRoomUnavailable):
			response.Error(c, http.StatusConflict, "ROOM_UNAVAILABLE", "This room is already booked for the selected dates")
		case errors.Is(err, ErrPaymentRejected):
			response.Error(c, http.StatusBadRequest, "PAYMENT_REQUEST_REJECTED", err.Error())
		case errors.Is(err, ErrGatewayUnavailable):
			response.Error(c, http.StatusBadGateway, "GATEWAY_UNAVAILABLE", "Payment gateway is not reachable, try again later")
		default:
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create reservation")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"redirect_url": res.RedirectURL,
		"nights":       res.Nights,
		"total_price":  res.TotalPrice,
	})
}

// Verify is the gateway callback. It always answers with a redirect except
// for a missing room (404) and a room claimed during payment (plain 409).
func (h *Handler) Verify(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetInt64("user_id")

	rc, err := LoadReservationContext(ctx, h.service.Store(), userID)
	if err != nil {
		h.log.WithError(err).WithField("user_id", userID).Error("load pending reservation")
	}

	outcome := h.service.Verify(ctx, VerifyInput{
		UserID:    userID,
		Status:    c.Query("Status"),
		Authority: c.Query("Authority"),
	}, rc)

	switch {
	case outcome.Succeeded():
		c.Redirect(http.StatusFound, fmt.Sprintf(h.redirects.SuccessURL, outcome.BookingID))
	case outcome.Kind == OutcomeRoomTaken:
		c.String(http.StatusConflict, "This room was booked by another guest while you were paying. Your payment will be returned by the gateway.")
	case outcome.Kind == OutcomeRoomNotFound:
		c.String(http.StatusNotFound, "Room not found")
	default:
		c.Redirect(http.StatusFound, h.redirects.FailURL)
	}
}

// bindQuoteRequest accepts JSON, or form fields where guest n is sent as
// guest_n-full_name, guest_n-national_id, guest_n-phone_number and
// guest_n-gender.
func bindQuoteRequest(c *gin.Context) (QuoteRequest, error) {
	var req QuoteRequest
	if c.ContentType() == gin.MIMEJSON {
		err := c.ShouldBindJSON(&req)
		return req, err
	}

	if err := c.Request.ParseForm(); err != nil {
		return req, err
	}
	form := c.Request.PostForm
	capacity := strings.TrimSpace(form.Get("capacity"))
	if capacity != "" {
		n, err := strconv.Atoi(capacity)
		if err != nil {
			n = 0
		}
		req.Capacity = n
	}
	req.CheckIn = form.Get("check_in")
	req.CheckOut = form.Get("check_out")

	for n := 1; n <= maxFormGuests; n++ {
		prefix := fmt.Sprintf("guest_%d-", n)
		g := GuestInput{
			FullName:    form.Get(prefix + "full_name"),
			NationalID:  form.Get(prefix + "national_id"),
			PhoneNumber: form.Get(prefix + "phone_number"),
			Gender:      form.Get(prefix + "gender"),
		}
		if g == (GuestInput{}) {
			break
		}
		req.Guests = append(req.Guests, g)
	}
	return req, nil
}
