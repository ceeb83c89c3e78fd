package repository

import (
	"context"

	"gorm.io/gorm"

	"solarops/internal/domain"
)

type UserLogRepository struct {
	db *gorm.DB
}

func NewUserLogRepository(db *gorm.DB) *UserLogRepository {
	return &UserLogRepository{db: db}
}

func (r *UserLogRepository) Create(ctx context.Context, l *domain.UserLog) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *UserLogRepository) ListByUser(ctx context.Context, email string, limit int) ([]domain.UserLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var logs []domain.UserLog
	err := r.db.WithContext(ctx).
		Where("user_email = ?", email).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
