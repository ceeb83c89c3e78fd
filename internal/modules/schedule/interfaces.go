package schedule

import (
	"context"
	"time"

	"solarops/internal/domain"
)

type TaskRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.GanttTask, error)
	ListByProject(ctx context.Context, projectID int64) ([]domain.GanttTask, error)
	Update(ctx context.Context, t *domain.GanttTask) error
	UpdateActualDates(ctx context.Context, id int64, start, end *time.Time) error
}

type TaskProofRepository interface {
	Create(ctx context.Context, p *domain.TaskProof) error
	GetByID(ctx context.Context, id int64) (*domain.TaskProof, error)
	Update(ctx context.Context, p *domain.TaskProof) error
	ListByProject(ctx context.Context, projectID int64) ([]domain.TaskProof, error)
}

type ProjectRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	MarkFinished(ctx context.Context, id int64) error
}

type WorkLogRepository interface {
	GetFacilitator(ctx context.Context, projectID int64) (*domain.ProjectWorkLog, error)
}

type PaymentRepository interface {
	EarliestAcknowledged(ctx context.Context, projectID int64) (*domain.Payment, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Notifier records the in-app notification and queues the email.
type Notifier interface {
	Notify(ctx context.Context, projectID int64, t domain.NotificationType, title, message string, emails []string) error
}

// PaymentOracle reads settlement attributes from the gateway; the
// scheduler only ever needs the intent creation time.
type PaymentOracle interface {
	IntentCreatedAt(ctx context.Context, intentID string) (time.Time, error)
}

type Auditor interface {
	LogUserAction(ctx context.Context, userEmail, action, entityName string, entityID int64, details, ipAddress string)
}
