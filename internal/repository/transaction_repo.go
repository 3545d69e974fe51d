package repository

import (
	"context"

	"hotelbooking/internal/domain"

	"gorm.io/gorm"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create stores t. A second record for the same authority fails with
// ErrTransactionRecorded.
func (r *TransactionRepository) Create(ctx context.Context, t *domain.Transaction) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		if IsUniqueViolation(err) {
			return ErrTransactionRecorded
		}
		return err
	}
	return nil
}

func (r *TransactionRepository) GetByTransactionID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	var t domain.Transaction
	if err := r.db.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&t).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &t, nil
}

func (r *TransactionRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	var out []domain.Transaction
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
