package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/pkg/validator"

	"github.com/sirupsen/logrus"
)

var ErrInvalidRequest = errors.New("invalid_request")

type MessageRequest struct {
	FullName string `json:"full_name" validate:"required,max=100"`
	Phone    string `json:"phone" validate:"required,mobile"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Subject  string `json:"subject" validate:"required,max=200"`
	Message  string `json:"message" validate:"required,max=5000"`
}

// InvalidError lists the request fields that failed validation.
type InvalidError struct {
	Fields map[string]string
}

func (e *InvalidError) Error() string { return ErrInvalidRequest.Error() }

func (e *InvalidError) Unwrap() error { return ErrInvalidRequest }

type MessageRepository interface {
	Create(ctx context.Context, m *domain.ContactMessage) error
}

type Service struct {
	messages MessageRepository
	log      *logrus.Logger
}

func NewService(messages MessageRepository, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{messages: messages, log: log}
}

// Submit stores a contact-us message sent by userID.
func (s *Service) Submit(ctx context.Context, userID int64, req MessageRequest) (*domain.ContactMessage, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)
	if fields := validator.Validate(req); len(fields) > 0 {
		return nil, &InvalidError{Fields: fields}
	}

	m := &domain.ContactMessage{
		FullName: req.FullName,
		Phone:    req.Phone,
		Email:    req.Email,
		Subject:  req.Subject,
		Message:  req.Message,
	}
	if userID > 0 {
		m.UserID = &userID
	}
	if err := s.messages.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("save contact message: %w", err)
	}

	s.log.WithFields(logrus.Fields{"message_id": m.ID, "user_id": userID}).Info("contact message received")
	return m, nil
}
