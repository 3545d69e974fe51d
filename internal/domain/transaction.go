package domain

import (
	"time"

	"gorm.io/datatypes"
)

type TransactionStatus string

const (
	TransactionSuccess TransactionStatus = "success"
	TransactionFailed  TransactionStatus = "failed"
)

// Transaction is the audit record of one gateway verification attempt.
// TransactionID holds the gateway authority and is unique.
type Transaction struct {
	ID             int64             `json:"id" gorm:"primaryKey"`
	UserID         int64             `json:"user_id" gorm:"not null;index"`
	BookingID      *int64            `json:"booking_id,omitempty" gorm:"uniqueIndex"`
	Amount         int64             `json:"amount" gorm:"not null"`
	TransactionID  string            `json:"transaction_id" gorm:"size:100;uniqueIndex;not null"`
	Status         TransactionStatus `json:"status" gorm:"size:10;not null"`
	GatewayPayload datatypes.JSON    `json:"-"`
	CreatedAt      time.Time         `json:"created_at"`
}
