package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"solarops/internal/domain"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	var p domain.Project
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	var projects []domain.Project
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&projects).Error
	return projects, err
}

func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// MarkFinished flips the lifecycle flag and sets demobilization in one
// update, used when the last leaf task completes.
func (r *ProjectRepository) MarkFinished(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.Project{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":         domain.ProjectFinished,
			"demobilization": true,
			"updated_at":     time.Now(),
		}).Error
}

type WorkLogRepository struct {
	db *gorm.DB
}

func NewWorkLogRepository(db *gorm.DB) *WorkLogRepository {
	return &WorkLogRepository{db: db}
}

func (r *WorkLogRepository) Create(ctx context.Context, wl *domain.ProjectWorkLog) error {
	return r.db.WithContext(ctx).Create(wl).Error
}

func (r *WorkLogRepository) ListByProject(ctx context.Context, projectID int64) ([]domain.ProjectWorkLog, error) {
	var logs []domain.ProjectWorkLog
	err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Find(&logs).Error
	return logs, err
}

// GetFacilitator returns the facilitator assignment for a project, or
// ErrNotFound when nobody is assigned yet.
func (r *WorkLogRepository) GetFacilitator(ctx context.Context, projectID int64) (*domain.ProjectWorkLog, error) {
	var wl domain.ProjectWorkLog
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND role = ?", projectID, domain.WorkRoleFacilitator).
		Order("assigned_at").
		First(&wl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &wl, nil
}
