package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/pkg/sms"
	"hotelbooking/internal/pkg/validator"
	"hotelbooking/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const defaultOTPTTL = 120 * time.Second

// Service contains all business logic for authentication
type Service struct {
	users  UserRepository
	otps   OTPStore
	sender sms.Sender
	jwt    tokenIssuer
	otpTTL time.Duration
	log    *logrus.Logger

	newCode  func() (string, error)
	newToken func() string
}

type LoginResult struct {
	User        *domain.User
	AccessToken string
	Created     bool
}

func NewService(users UserRepository, otps OTPStore, sender sms.Sender, jwt tokenIssuer, otpTTL time.Duration, log *logrus.Logger) *Service {
	if otpTTL <= 0 {
		otpTTL = defaultOTPTTL
	}
	return &Service{
		users:    users,
		otps:     otps,
		sender:   sender,
		jwt:      jwt,
		otpTTL:   otpTTL,
		log:      log,
		newCode:  randomCode,
		newToken: uuid.NewString,
	}
}

// randomCode returns a uniformly drawn code in 1000..9999.
func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+1000), nil
}

// RequestOTP stores a fresh 4-digit code for the phone and texts it.
func (s *Service) RequestOTP(ctx context.Context, req OTPRequest) (*OTPChallenge, error) {
	phone := strings.TrimSpace(req.Phone)
	if !validator.IsMobile(phone) {
		return nil, ErrInvalidPhone
	}

	code, err := s.newCode()
	if err != nil {
		return nil, err
	}
	token := s.newToken()

	entry := OTPEntry{Code: code, Email: strings.TrimSpace(req.Email)}
	if err := s.otps.Save(ctx, phone, token, entry, s.otpTTL); err != nil {
		return nil, fmt.Errorf("save otp: %w", err)
	}
	if err := s.sender.Send(ctx, phone, "Your verification code: "+code); err != nil {
		_ = s.otps.Delete(ctx, phone, token)
		return nil, fmt.Errorf("send otp: %w", err)
	}

	s.log.WithField("phone", phone).Info("otp issued")
	return &OTPChallenge{Token: token, ExpiresIn: int(s.otpTTL.Seconds())}, nil
}

// VerifyOTP consumes a code and signs the phone's owner in, creating the
// account on first use.
func (s *Service) VerifyOTP(ctx context.Context, req OTPVerifyRequest) (*LoginResult, error) {
	phone := strings.TrimSpace(req.Phone)
	entry, err := s.otps.Get(ctx, phone, req.OTPToken)
	if errors.Is(err, ErrOTPNotFound) {
		return nil, ErrInvalidOTP
	}
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare([]byte(entry.Code), []byte(strings.TrimSpace(req.Code))) != 1 {
		return nil, ErrInvalidOTP
	}

	var email *string
	if entry.Email != "" {
		email = &entry.Email
	}
	user, created, err := s.users.GetOrCreateByPhone(ctx, phone, email)
	if errors.Is(err, repository.ErrEmailTaken) {
		return nil, ErrEmailAlreadyExists
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	if err := s.otps.Delete(ctx, phone, req.OTPToken); err != nil {
		s.log.WithError(err).WithField("phone", phone).Warn("delete otp")
	}

	token, err := s.jwt.GenerateToken(user.ID, string(user.Role()))
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"user_id": user.ID, "created": created}).Info("otp sign-in")
	return &LoginResult{User: user, AccessToken: token, Created: created}, nil
}

// AdminLogin authenticates staff with phone and password.
func (s *Service) AdminLogin(ctx context.Context, req AdminLoginRequest) (*LoginResult, error) {
	user, err := s.users.GetByPhone(ctx, strings.TrimSpace(req.Phone))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin || user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	token, err := s.jwt.GenerateToken(user.ID, string(user.Role()))
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, AccessToken: token}, nil
}

func (s *Service) GetCurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *Service) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.FullName = strings.TrimSpace(req.FullName)
	if req.Email != nil {
		user.Email = req.Email
	}
	if err := s.users.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}
	return user, nil
}

// HashPassword is used by the seeder to provision admin accounts.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
