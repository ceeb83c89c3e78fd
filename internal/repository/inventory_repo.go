package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"solarops/internal/domain"
)

// ErrInsufficientStock is returned by AdjustStock when the decrement
// would drive quantity negative. Callers must not mistake storage
// faults for it.
var ErrInsufficientStock = errors.New("insufficient stock")

type MaterialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

func (r *MaterialRepository) Create(ctx context.Context, m *domain.Material) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MaterialRepository) GetByID(ctx context.Context, id int64) (*domain.Material, error) {
	var m domain.Material
	err := r.db.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MaterialRepository) List(ctx context.Context) ([]domain.Material, error) {
	var list []domain.Material
	err := r.db.WithContext(ctx).Order("name").Find(&list).Error
	return list, err
}

func (r *MaterialRepository) Update(ctx context.Context, m *domain.Material) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *MaterialRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Material{}, id).Error
}

// AdjustStock decrements (or restores) quantity atomically and fails
// when the adjustment would drive stock negative.
func (r *MaterialRepository) AdjustStock(ctx context.Context, id int64, delta int) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.Material{}).
		Where("id = ? AND quantity + ? >= 0", id, delta).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

type EquipmentRepository struct {
	db *gorm.DB
}

func NewEquipmentRepository(db *gorm.DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

func (r *EquipmentRepository) Create(ctx context.Context, e *domain.Equipment) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EquipmentRepository) GetByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	var e domain.Equipment
	err := r.db.WithContext(ctx).First(&e, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EquipmentRepository) List(ctx context.Context) ([]domain.Equipment, error) {
	var list []domain.Equipment
	err := r.db.WithContext(ctx).Order("name").Find(&list).Error
	return list, err
}

func (r *EquipmentRepository) Update(ctx context.Context, e *domain.Equipment) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *EquipmentRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Equipment{}, id).Error
}

func (r *EquipmentRepository) AdjustStock(ctx context.Context, id int64, delta int) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.Equipment{}).
		Where("id = ? AND quantity + ? >= 0", id, delta).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

type RequisitionRepository struct {
	db *gorm.DB
}

func NewRequisitionRepository(db *gorm.DB) *RequisitionRepository {
	return &RequisitionRepository{db: db}
}

func (r *RequisitionRepository) Create(ctx context.Context, req *domain.Requisition) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *RequisitionRepository) GetByID(ctx context.Context, id int64) (*domain.Requisition, error) {
	var req domain.Requisition
	err := r.db.WithContext(ctx).First(&req, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *RequisitionRepository) List(ctx context.Context, status domain.RequisitionStatus) ([]domain.Requisition, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var list []domain.Requisition
	err := q.Find(&list).Error
	return list, err
}

func (r *RequisitionRepository) Decide(ctx context.Context, id int64, status domain.RequisitionStatus, by string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&domain.Requisition{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"decided_by": by,
			"decided_at": now,
		}).Error
}
