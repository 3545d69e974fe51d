package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort            = "8080"
	defaultDatabaseURL     = "hotel.db"
	defaultJWTSecret       = "change-me-jwt-secret"
	defaultJWTAccessTTL    = "24h"
	defaultCookieSecure    = "false"
	defaultCookieSameSite  = "Lax"
	defaultCookiePath      = "/"
	defaultZarinpalTimeout = "10s"
	defaultCallbackURL     = "http://localhost:8080/api/v1/reservations/verify"
	defaultDescription     = "Hotel room reservation"
	defaultSuccessURL      = "/payment/success/%d"
	defaultFailURL         = "/payment/fail"
	defaultOTPTTL          = "120s"
	defaultReservationTTL  = "336h"
	defaultOTPRateCapacity = "5"
	defaultOTPRateRefill   = "1m"
	defaultLogLevel        = "info"
)

type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string
	LogLevel    string

	JWTSecret      string
	JWTAccessTTL   time.Duration
	CookieSecure   bool
	CookieSameSite string
	CookiePath     string

	// RedisURL and RabbitMQURL are optional; empty disables the backend.
	RedisURL    string
	RabbitMQURL string

	Zarinpal ZarinpalConfig
	Payment  PaymentConfig

	OTPTTL            time.Duration
	OTPRateCapacity   int
	OTPRateRefill     time.Duration
	ReservationTTL    time.Duration
	CORSAllowedOrigin []string
}

type ZarinpalConfig struct {
	MerchantID string
	Sandbox    bool
	BaseURL    string
	Timeout    time.Duration
}

type PaymentConfig struct {
	CallbackURL string
	Description string
	// SuccessURL is a format string taking the booking id.
	SuccessURL string
	FailURL    string
}

// Load reads the configuration from the environment. Call godotenv.Load
// beforehand to pick up a .env file.
func Load() (*Config, error) {
	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)
	cfg.Port = strings.TrimSpace(getEnv("PORT", defaultPort))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.LogLevel = strings.TrimSpace(getEnv("LOG_LEVEL", defaultLogLevel))

	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.CookieSecure = parseBoolEnv("COOKIE_SECURE", defaultCookieSecure)
	cfg.CookieSameSite = strings.TrimSpace(getEnv("COOKIE_SAMESITE", defaultCookieSameSite))
	cfg.CookiePath = strings.TrimSpace(getEnv("COOKIE_PATH", defaultCookiePath))

	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))
	cfg.RabbitMQURL = strings.TrimSpace(os.Getenv("RABBITMQ_URL"))

	cfg.Zarinpal = ZarinpalConfig{
		MerchantID: strings.TrimSpace(os.Getenv("ZARINPAL_MERCHANT_ID")),
		Sandbox:    parseBoolEnv("ZARINPAL_SANDBOX", "true"),
		BaseURL:    strings.TrimSpace(os.Getenv("ZARINPAL_BASE_URL")),
	}
	cfg.Payment = PaymentConfig{
		CallbackURL: strings.TrimSpace(getEnv("PAYMENT_CALLBACK_URL", defaultCallbackURL)),
		Description: strings.TrimSpace(getEnv("PAYMENT_DESCRIPTION", defaultDescription)),
		SuccessURL:  strings.TrimSpace(getEnv("PAYMENT_SUCCESS_URL", defaultSuccessURL)),
		FailURL:     strings.TrimSpace(getEnv("PAYMENT_FAIL_URL", defaultFailURL)),
	}

	var err error
	if cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL); err != nil {
		return nil, err
	}
	if cfg.Zarinpal.Timeout, err = parseDurationEnv("ZARINPAL_TIMEOUT", defaultZarinpalTimeout); err != nil {
		return nil, err
	}
	if cfg.OTPTTL, err = parseDurationEnv("OTP_TTL", defaultOTPTTL); err != nil {
		return nil, err
	}
	if cfg.OTPRateRefill, err = parseDurationEnv("OTP_RATE_REFILL", defaultOTPRateRefill); err != nil {
		return nil, err
	}
	if cfg.ReservationTTL, err = parseDurationEnv("RESERVATION_TTL", defaultReservationTTL); err != nil {
		return nil, err
	}
	if cfg.OTPRateCapacity, err = parseIntEnv("OTP_RATE_LIMIT", defaultOTPRateCapacity); err != nil {
		return nil, err
	}

	for _, o := range strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSAllowedOrigin = append(cfg.CORSAllowedOrigin, o)
		}
	}
	if len(cfg.CORSAllowedOrigin) == 0 {
		cfg.CORSAllowedOrigin = []string{"http://localhost:3000", "http://localhost:5173"}
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProd reports whether the service runs in a production-like environment.
func (c *Config) IsProd() bool { return isProdLike(c.AppEnv) }

func validateConfig(cfg *Config) error {
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.Zarinpal.Timeout <= 0 {
		return fmt.Errorf("ZARINPAL_TIMEOUT must be > 0")
	}
	if cfg.OTPTTL <= 0 {
		return fmt.Errorf("OTP_TTL must be > 0")
	}
	if cfg.ReservationTTL <= 0 {
		return fmt.Errorf("RESERVATION_TTL must be > 0")
	}
	if cfg.OTPRateCapacity <= 0 || cfg.OTPRateRefill <= 0 {
		return fmt.Errorf("OTP_RATE_LIMIT and OTP_RATE_REFILL must be > 0")
	}
	if !strings.Contains(cfg.Payment.SuccessURL, "%d") {
		return fmt.Errorf("PAYMENT_SUCCESS_URL must contain %%d for the booking id")
	}
	if cfg.CookiePath == "" {
		return fmt.Errorf("COOKIE_PATH must not be empty")
	}
	sameSite := strings.ToLower(cfg.CookieSameSite)
	if sameSite != "lax" && sameSite != "none" && sameSite != "strict" {
		return fmt.Errorf("COOKIE_SAMESITE must be one of: Lax, None, Strict")
	}
	if sameSite == "none" && !cfg.CookieSecure {
		return fmt.Errorf("COOKIE_SECURE must be true when COOKIE_SAMESITE=None")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if cfg.Zarinpal.MerchantID == "" {
			return fmt.Errorf("in prod/release ZARINPAL_MERCHANT_ID must be set")
		}
		if cfg.Zarinpal.Sandbox {
			return fmt.Errorf("in prod/release ZARINPAL_SANDBOX must be false")
		}
		if !cfg.CookieSecure {
			return fmt.Errorf("in prod/release COOKIE_SECURE must be true")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
