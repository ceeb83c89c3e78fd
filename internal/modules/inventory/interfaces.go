package inventory

import (
	"context"

	"solarops/internal/domain"
)

type MaterialRepository interface {
	Create(ctx context.Context, m *domain.Material) error
	GetByID(ctx context.Context, id int64) (*domain.Material, error)
	List(ctx context.Context) ([]domain.Material, error)
	Update(ctx context.Context, m *domain.Material) error
	Delete(ctx context.Context, id int64) error
	AdjustStock(ctx context.Context, id int64, delta int) error
}

type EquipmentRepository interface {
	Create(ctx context.Context, e *domain.Equipment) error
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
	List(ctx context.Context) ([]domain.Equipment, error)
	Update(ctx context.Context, e *domain.Equipment) error
	Delete(ctx context.Context, id int64) error
	AdjustStock(ctx context.Context, id int64, delta int) error
}

type RequisitionRepository interface {
	Create(ctx context.Context, req *domain.Requisition) error
	GetByID(ctx context.Context, id int64) (*domain.Requisition, error)
	List(ctx context.Context, status domain.RequisitionStatus) ([]domain.Requisition, error)
	Decide(ctx context.Context, id int64, status domain.RequisitionStatus, by string) error
}

type Notifier interface {
	Notify(ctx context.Context, projectID int64, t domain.NotificationType, title, message string, emails []string) error
}

type Auditor interface {
	LogUserAction(ctx context.Context, userEmail, action, entityName string, entityID int64, details, ipAddress string)
}
