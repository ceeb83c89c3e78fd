package payment

import (
	"context"

	"solarops/internal/domain"
)

type Gateway interface {
	CreateIntent(ctx context.Context, amount int64, description string) (*Intent, error)
	GetIntent(ctx context.Context, id string) (*Intent, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	ListByProject(ctx context.Context, projectID int64) ([]domain.Payment, error)
	Acknowledge(ctx context.Context, id, by string) error
	MarkCashPaid(ctx context.Context, id string) error
}

type ProjectReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
}

type Auditor interface {
	LogUserAction(ctx context.Context, userEmail, action, entityName string, entityID int64, details, ipAddress string)
}
