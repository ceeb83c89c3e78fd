package project

import (
	"context"
	"time"

	"solarops/internal/domain"
)

type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
}

type TaskRepository interface {
	Create(ctx context.Context, t *domain.GanttTask) error
	GetByID(ctx context.Context, id int64) (*domain.GanttTask, error)
	ListByProject(ctx context.Context, projectID int64) ([]domain.GanttTask, error)
	Update(ctx context.Context, t *domain.GanttTask) error
	Delete(ctx context.Context, id int64) error
	UpdateActualDates(ctx context.Context, id int64, start, end *time.Time) error
}

type WorkLogRepository interface {
	Create(ctx context.Context, wl *domain.ProjectWorkLog) error
	ListByProject(ctx context.Context, projectID int64) ([]domain.ProjectWorkLog, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type Auditor interface {
	LogUserAction(ctx context.Context, userEmail, action, entityName string, entityID int64, details, ipAddress string)
}
