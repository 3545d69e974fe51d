package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hotelbooking/internal/pkg/sms"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

type Handler func(ctx context.Context, ev BookingConfirmedEvent) error

// Consumer reads BookingConfirmedQueue and hands every event to a Handler,
// reconnecting with backoff whenever the broker goes away.
type Consumer struct {
	url     string
	handler Handler
	log     *logrus.Logger
}

func NewConsumer(url string, handler Handler, log *logrus.Logger) *Consumer {
	return &Consumer{url: url, handler: handler, log: log}
}

// Run blocks until ctx is canceled.
func (c *Consumer) Run(ctx context.Context) {
	backoff := time.Second
	for ctx.Err() == nil {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.log.WithError(err).Warnf("booking consumer: dial failed, retrying in %s", backoff)
			if !sleep(ctx, backoff) {
				return
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consume(ctx, conn)
		_ = conn.Close()
		if err != nil && ctx.Err() == nil {
			c.log.WithError(err).Warn("booking consumer: consume loop ended, reconnecting")
			if !sleep(ctx, 2*time.Second) {
				return
			}
		}
	}
}

func (c *Consumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(20, 0, false); err != nil {
		c.log.WithError(err).Warn("booking consumer: set QoS failed")
	}
	if _, err := ch.QueueDeclare(BookingConfirmedQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.ConsumeWithContext(ctx, BookingConfirmedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := c.handle(ctx, d.Body); err != nil {
			c.log.WithError(err).Error("booking consumer: handle message failed")
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	if ctx.Err() != nil {
		return nil
	}
	return errors.New("deliveries channel closed")
}

func (c *Consumer) handle(ctx context.Context, body []byte) error {
	var ev BookingConfirmedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	return c.handler(ctx, ev)
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// SMSNotifier texts every guest of a confirmed booking.
func SMSNotifier(sender sms.Sender, log *logrus.Logger) Handler {
	return func(ctx context.Context, ev BookingConfirmedEvent) error {
		text := fmt.Sprintf("Reservation #%d confirmed: %s, %s to %s (%d nights).",
			ev.BookingID, ev.RoomTitle, ev.CheckIn, ev.CheckOut, ev.Nights)
		var errs []error
		for _, phone := range ev.GuestPhones {
			if err := sender.Send(ctx, phone, text); err != nil {
				errs = append(errs, fmt.Errorf("sms to %s: %w", phone, err))
			}
		}
		log.WithFields(logrus.Fields{"booking_id": ev.BookingID, "guests": len(ev.GuestPhones)}).Info("booking confirmation sent")
		return errors.Join(errs...)
	}
}
