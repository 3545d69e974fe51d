package queue

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"hotelbooking/internal/pkg/logger"
	"hotelbooking/internal/pkg/sms"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsumerHandle_DecodesAndDispatches(t *testing.T) {
	var got BookingConfirmedEvent
	c := NewConsumer("", func(_ context.Context, ev BookingConfirmedEvent) error {
		got = ev
		return nil
	}, logger.Discard())

	body, err := json.Marshal(BookingConfirmedEvent{BookingID: 12, RoomTitle: "Suite", GuestPhones: []string{"09120000000"}})
	require.NoError(t, err)

	require.NoError(t, c.handle(context.Background(), body))
	assert.Equal(t, int64(12), got.BookingID)
	assert.Equal(t, "Suite", got.RoomTitle)

	assert.Error(t, c.handle(context.Background(), []byte("{not json")))
}

func TestSMSNotifier_TextsEveryGuest(t *testing.T) {
	sender := sms.NewConsoleSender(logger.Discard())
	notify := SMSNotifier(sender, logger.Discard())

	err := notify(context.Background(), BookingConfirmedEvent{
		BookingID:   7,
		RoomTitle:   "Deluxe Room",
		CheckIn:     "2030-01-10",
		CheckOut:    "2030-01-12",
		Nights:      2,
		GuestPhones: []string{"09120000001", "09120000002"},
	})
	require.NoError(t, err)

	for _, phone := range []string{"09120000001", "09120000002"} {
		text, ok := sender.Last(phone)
		require.True(t, ok)
		assert.Contains(t, text, "#7")
		assert.Contains(t, text, "Deluxe Room")
	}
}

func TestSleep_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, sleep(ctx, time.Hour))
}
