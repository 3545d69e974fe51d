// Package server wires repositories, services and handlers into the HTTP
// router.
package server

import (
	"net/http"
	"time"

	"hotelbooking/internal/config"
	"hotelbooking/internal/middleware"
	"hotelbooking/internal/modules/auth"
	"hotelbooking/internal/modules/availability"
	"hotelbooking/internal/modules/booking"
	"hotelbooking/internal/modules/catalog"
	"hotelbooking/internal/modules/contact"
	"hotelbooking/internal/modules/realtime"
	"hotelbooking/internal/modules/reservation"
	"hotelbooking/internal/modules/review"
	"hotelbooking/internal/pkg/jwt"
	"hotelbooking/internal/pkg/sms"
	"hotelbooking/internal/repository"
	"hotelbooking/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Deps are the process-wide resources the router is built from. Redis may
// be nil, in which case OTP codes and pending reservations live in memory
// and rate limiting is off.
type Deps struct {
	Config  *config.Config
	DB      *gorm.DB
	Redis   *redis.Client
	Gateway reservation.PaymentGateway
	Events  reservation.EventPublisher
	SMS     sms.Sender
	Log     *logrus.Logger
	Now     func() time.Time
}

type Server struct {
	Engine *gin.Engine
	Hub    *realtime.Hub
	JWT    *jwt.Service
}

func New(d Deps) *Server {
	cfg, log := d.Config, d.Log
	now := d.Now
	if now == nil {
		now = time.Now
	}

	userRepo := repository.NewUserRepository(d.DB)
	roomRepo := repository.NewRoomRepository(d.DB)
	bookingRepo := repository.NewBookingRepository(d.DB)
	transactionRepo := repository.NewTransactionRepository(d.DB)
	reviewRepo := repository.NewReviewRepository(d.DB)
	contactRepo := repository.NewContactRepository(d.DB)

	var (
		otpStore     auth.OTPStore
		pendingStore session.Store
	)
	if d.Redis != nil {
		otpStore = auth.NewRedisOTPStore(d.Redis)
		pendingStore = session.NewRedisStore(d.Redis, cfg.ReservationTTL)
	} else {
		otpStore = auth.NewMemoryOTPStore()
		pendingStore = session.NewMemoryStore(cfg.ReservationTTL)
	}

	jwtService := jwt.New(cfg.JWTSecret, cfg.JWTAccessTTL)
	hub := realtime.NewHub(log)
	checker := availability.NewChecker(bookingRepo)

	authHandler := auth.NewHandler(
		auth.NewService(userRepo, otpStore, d.SMS, jwtService, cfg.OTPTTL, log),
		auth.CookieSettings{
			Secure:   cfg.CookieSecure,
			SameSite: cfg.CookieSameSite,
			Path:     cfg.CookiePath,
			MaxAge:   jwtService.TTL(),
		},
	)
	catalogHandler := catalog.NewHandler(catalog.NewService(roomRepo, reviewRepo, checker, now, log))
	reservationHandler := reservation.NewHandler(
		reservation.NewService(reservation.Deps{
			Rooms:        roomRepo,
			Users:        userRepo,
			Availability: checker,
			Gateway:      d.Gateway,
			Bookings:     bookingRepo,
			Transactions: transactionRepo,
			Store:        pendingStore,
			Events:       d.Events,
			Notifier:     hub,
			Log:          log,
			Now:          now,
		}, reservation.PaymentSettings{
			CallbackURL: cfg.Payment.CallbackURL,
			Description: cfg.Payment.Description,
		}),
		reservation.Redirects{SuccessURL: cfg.Payment.SuccessURL, FailURL: cfg.Payment.FailURL},
		log,
	)
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo, transactionRepo, hub, now, log))
	reviewHandler := review.NewHandler(review.NewService(reviewRepo, roomRepo, log))
	contactHandler := contact.NewHandler(contact.NewService(contactRepo, log))
	realtimeHandler := realtime.NewHandler(hub, cfg.CORSAllowedOrigin)

	otpLimiter := middleware.RateLimit(d.Redis, middleware.RateLimitConfig{
		Prefix:         "rl:otp",
		Capacity:       cfg.OTPRateCapacity,
		RefillTokens:   1,
		RefillInterval: cfg.OTPRateRefill,
	}, log, now)

	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorLogger(log))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigin))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1, otpLimiter)
		catalogHandler.RegisterRoutes(v1)
		realtimeHandler.RegisterRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(jwtService))
		{
			authHandler.RegisterProtectedRoutes(protected)
			reservationHandler.RegisterRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			reviewHandler.RegisterRoutes(protected)
			contactHandler.RegisterRoutes(protected)
		}
	}

	return &Server{Engine: r, Hub: hub, JWT: jwtService}
}
