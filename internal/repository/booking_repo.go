package repository

import (
	"context"
	"fmt"
	"time"

	"hotelbooking/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// FindConflicts returns bookings of roomID in one of statuses whose stay
// overlaps [checkIn, checkOut). excludeID skips a booking (0 skips none).
func (r *BookingRepository) FindConflicts(ctx context.Context, roomID int64, checkIn, checkOut time.Time, statuses []domain.BookingStatus, excludeID int64) ([]domain.Booking, error) {
	return findConflicts(r.db.WithContext(ctx), roomID, checkIn, checkOut, statuses, excludeID)
}

func findConflicts(db *gorm.DB, roomID int64, checkIn, checkOut time.Time, statuses []domain.BookingStatus, excludeID int64) ([]domain.Booking, error) {
	q := db.Where("room_id = ? AND status IN ? AND check_in < ? AND check_out > ?", roomID, statuses, checkOut, checkIn)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var out []domain.Booking
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ConfirmReservation creates the confirmed booking, its guests and the
// successful transaction as one unit under a lock on the room row. It fails
// with ErrTransactionRecorded when the authority was already recorded and
// with ErrRoomUnavailable when another reservation claimed the dates. The
// returned flag reports whether the room availability flag changed.
func (r *BookingRepository) ConfirmReservation(ctx context.Context, b *domain.Booking, guests []domain.Guest, txn *domain.Transaction) (bool, error) {
	var flipped bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room domain.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, b.RoomID).Error; err != nil {
			return mapNotFound(err)
		}

		var recorded int64
		if err := tx.Model(&domain.Transaction{}).Where("transaction_id = ?", txn.TransactionID).Count(&recorded).Error; err != nil {
			return err
		}
		if recorded > 0 {
			return ErrTransactionRecorded
		}

		conflicts, err := findConflicts(tx, b.RoomID, b.CheckIn, b.CheckOut, domain.PreBookingStatuses, 0)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return ErrRoomUnavailable
		}

		if err := tx.Omit(clause.Associations).Create(b).Error; err != nil {
			return err
		}
		for i := range guests {
			guests[i].BookingID = b.ID
		}
		if len(guests) > 0 {
			if err := tx.Create(&guests).Error; err != nil {
				return err
			}
		}

		txn.BookingID = &b.ID
		if err := tx.Create(txn).Error; err != nil {
			return err
		}

		flipped, err = applyRoomAvailability(tx, b, true)
		return err
	})
	if err != nil {
		if IsUniqueViolation(err) {
			return false, ErrTransactionRecorded
		}
		return false, err
	}
	b.Guests = guests
	return flipped, nil
}

// UpdateStatus moves a booking to status and applies the room availability
// rules in the same transaction. It returns the updated booking and whether
// the room availability flag changed.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, bool, error) {
	if !status.Valid() {
		return nil, false, fmt.Errorf("unknown booking status %q", status)
	}
	var (
		b       domain.Booking
		flipped bool
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&b, id).Error; err != nil {
			return mapNotFound(err)
		}
		if b.Status == status {
			return nil
		}
		if err := tx.Model(&domain.Booking{}).Where("id = ?", id).Update("status", status).Error; err != nil {
			return err
		}
		b.Status = status

		var err error
		flipped, err = applyRoomAvailability(tx, &b, false)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return &b, flipped, nil
}

// applyRoomAvailability keeps Room.Existing in step with a booking write.
// Confirming takes the room off the market; canceling a stored booking puts
// it back unless another confirmed stay ends after this one's check-in.
func applyRoomAvailability(tx *gorm.DB, b *domain.Booking, isNew bool) (bool, error) {
	switch {
	case b.Status == domain.BookingConfirmed:
		var room domain.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, b.RoomID).Error; err != nil {
			return false, mapNotFound(err)
		}
		if !room.Existing {
			return false, nil
		}
		if err := tx.Model(&domain.Room{}).Where("id = ?", room.ID).Update("existing", false).Error; err != nil {
			return false, err
		}
		return true, nil

	case b.Status == domain.BookingCanceled && !isNew:
		var room domain.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, b.RoomID).Error; err != nil {
			return false, mapNotFound(err)
		}
		var later int64
		err := tx.Model(&domain.Booking{}).
			Where("room_id = ? AND id <> ? AND status = ? AND check_out > ?", b.RoomID, b.ID, domain.BookingConfirmed, b.CheckIn).
			Count(&later).Error
		if err != nil {
			return false, err
		}
		if later > 0 || room.Existing {
			return false, nil
		}
		if err := tx.Model(&domain.Room{}).Where("id = ?", room.ID).Update("existing", true).Error; err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// GetForUser loads a booking only when userID owns it.
func (r *BookingRepository) GetForUser(ctx context.Context, id, userID int64) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Guests").
		Preload("Room").
		Where("id = ? AND user_id = ?", id, userID).
		First(&b).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &b, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Room").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Create stores a booking without touching guests or transactions.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(b).Error; err != nil {
			return err
		}
		_, err := applyRoomAvailability(tx, b, true)
		return err
	})
}
