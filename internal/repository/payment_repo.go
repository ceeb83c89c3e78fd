package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"solarops/internal/domain"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	var p domain.Payment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) ListByProject(ctx context.Context, projectID int64) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("percent DESC").
		Find(&payments).Error
	return payments, err
}

// EarliestAcknowledged returns the first settled installment, the
// anchor for the project's date window.
func (r *PaymentRepository) EarliestAcknowledged(ctx context.Context, projectID int64) (*domain.Payment, error) {
	var p domain.Payment
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND acknowledged = ?", projectID, true).
		Order("acknowledged_at").
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) Acknowledge(ctx context.Context, id, by string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"acknowledged":    true,
			"acknowledged_at": now,
			"acknowledged_by": by,
		}).Error
}

func (r *PaymentRepository) MarkCashPaid(ctx context.Context, id string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"cash_payment": true,
			"cash_paid_at": now,
		}).Error
}
