package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"solarops/internal/domain"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.GanttTask) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*domain.GanttTask, error) {
	var t domain.GanttTask
	err := r.db.WithContext(ctx).First(&t, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListByProject returns every task of a project; rollups load the whole
// set once and walk the tree in memory instead of issuing recursive SQL.
func (r *TaskRepository) ListByProject(ctx context.Context, projectID int64) ([]domain.GanttTask, error) {
	var tasks []domain.GanttTask
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("planned_start").
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) Update(ctx context.Context, t *domain.GanttTask) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.GanttTask{}, id).Error
}

// UpdateActualDates writes only the derived date columns. Used by the
// rollup so it can never touch progress or planned dates.
func (r *TaskRepository) UpdateActualDates(ctx context.Context, id int64, start, end *time.Time) error {
	return r.db.WithContext(ctx).
		Model(&domain.GanttTask{}).
		Where("id = ?", id).
		Updates(map[string]any{"actual_start": start, "actual_end": end}).Error
}

type TaskProofRepository struct {
	db *gorm.DB
}

func NewTaskProofRepository(db *gorm.DB) *TaskProofRepository {
	return &TaskProofRepository{db: db}
}

func (r *TaskProofRepository) Create(ctx context.Context, p *domain.TaskProof) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *TaskProofRepository) GetByID(ctx context.Context, id int64) (*domain.TaskProof, error) {
	var p domain.TaskProof
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *TaskProofRepository) Update(ctx context.Context, p *domain.TaskProof) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *TaskProofRepository) ListByProject(ctx context.Context, projectID int64) ([]domain.TaskProof, error) {
	var proofs []domain.TaskProof
	err := r.db.WithContext(ctx).
		Joins("JOIN gantt_tasks ON gantt_tasks.id = task_proofs.task_id").
		Where("gantt_tasks.project_id = ?", projectID).
		Order("task_proofs.created_at").
		Find(&proofs).Error
	return proofs, err
}
