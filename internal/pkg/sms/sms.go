// Package sms delivers short text messages to guest phones.
package sms

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

type Sender interface {
	Send(ctx context.Context, phone, text string) error
}

// ConsoleSender writes messages to the log instead of a provider. It is the
// development sender and keeps the last message per phone for inspection.
type ConsoleSender struct {
	log *logrus.Logger

	mu   sync.Mutex
	last map[string]string
}

func NewConsoleSender(log *logrus.Logger) *ConsoleSender {
	return &ConsoleSender{log: log, last: make(map[string]string)}
}

func (s *ConsoleSender) Send(_ context.Context, phone, text string) error {
	s.mu.Lock()
	s.last[phone] = text
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{"phone": phone}).Info("sms: " + text)
	return nil
}

// Last returns the most recent message sent to phone.
func (s *ConsoleSender) Last(phone string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, ok := s.last[phone]
	return text, ok
}
