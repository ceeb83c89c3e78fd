package project

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"solarops/internal/domain"
	"solarops/internal/repository"
)

var timeNow = time.Now

type Service struct {
	projects ProjectRepository
	tasks    TaskRepository
	workLogs WorkLogRepository
	users    UserReader
	audit    Auditor
	log      *zap.Logger
}

func NewService(
	projects ProjectRepository,
	tasks TaskRepository,
	workLogs WorkLogRepository,
	users UserReader,
	audit Auditor,
	log *zap.Logger,
) *Service {
	return &Service{
		projects: projects,
		tasks:    tasks,
		workLogs: workLogs,
		users:    users,
		audit:    audit,
		log:      log,
	}
}

func (s *Service) Create(ctx context.Context, req CreateProjectRequest, actorEmail, ip string) (*domain.Project, error) {
	if _, err := s.users.GetByID(ctx, req.ClientID); err != nil {
		return nil, ErrUserNotFound
	}

	p := &domain.Project{
		Name:         req.Name,
		Description:  req.Description,
		Status:       domain.ProjectOnGoing,
		KWCapacity:   req.KWCapacity,
		SystemType:   req.SystemType,
		DiscountRate: req.DiscountRate,
		VATRate:      req.VATRate,
		ProfitRate:   req.ProfitRate,
		ClientID:     req.ClientID,
	}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, err
	}

	s.audit.LogUserAction(ctx, actorEmail, "create_project", "project", p.ID,
		fmt.Sprintf("kw=%.1f system=%s", p.KWCapacity, p.SystemType), ip)
	return p, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return p, err
}

func (s *Service) List(ctx context.Context) ([]domain.Project, error) {
	return s.projects.List(ctx)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateProjectRequest, actorEmail, ip string) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Description != "" {
		p.Description = req.Description
	}
	if req.Status != "" {
		p.Status = domain.ProjectStatus(req.Status)
	}
	if err := s.projects.Update(ctx, p); err != nil {
		return nil, err
	}

	s.audit.LogUserAction(ctx, actorEmail, "update_project", "project", p.ID, "", ip)
	return p, nil
}

// Assign links a worker to the project. The facilitator assignment is
// what later authorizes progress reports.
func (s *Service) Assign(ctx context.Context, projectID int64, req AssignRequest, actorEmail, ip string) (*domain.ProjectWorkLog, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	u, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if string(u.Role) != req.Role {
		return nil, ErrWrongUserRole
	}

	wl := &domain.ProjectWorkLog{
		ProjectID:  projectID,
		UserID:     req.UserID,
		Role:       domain.WorkLogRole(req.Role),
		AssignedAt: timeNow(),
	}
	if err := s.workLogs.Create(ctx, wl); err != nil {
		return nil, err
	}

	s.audit.LogUserAction(ctx, actorEmail, "assign_worker", "project", projectID,
		fmt.Sprintf("user=%d role=%s", req.UserID, req.Role), ip)
	return wl, nil
}

func (s *Service) Assignments(ctx context.Context, projectID int64) ([]domain.ProjectWorkLog, error) {
	return s.workLogs.ListByProject(ctx, projectID)
}

// CreateTask seeds a planned task. Actual dates and progress are never
// accepted here; they belong to the scheduling engine.
func (s *Service) CreateTask(ctx context.Context, projectID int64, req CreateTaskRequest) (*domain.GanttTask, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if p.Status == domain.ProjectFinished {
		return nil, ErrProjectClosed
	}

	if req.ParentID != nil {
		parent, err := s.tasks.GetByID(ctx, *req.ParentID)
		if err != nil || parent.ProjectID != projectID {
			return nil, ErrTaskNotFound
		}
	}

	t := &domain.GanttTask{
		ProjectID:    projectID,
		TaskName:     req.TaskName,
		PlannedStart: req.PlannedStart,
		PlannedEnd:   req.PlannedEnd,
		Duration:     req.Duration,
		Predecessor:  req.Predecessor,
		ParentID:     req.ParentID,
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) UpdateTask(ctx context.Context, taskID int64, req UpdateTaskRequest) (*domain.GanttTask, error) {
	t, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	if req.TaskName != "" {
		t.TaskName = req.TaskName
	}
	if req.PlannedStart != nil {
		t.PlannedStart = req.PlannedStart
	}
	if req.PlannedEnd != nil {
		t.PlannedEnd = req.PlannedEnd
	}
	if req.Duration != 0 {
		t.Duration = req.Duration
	}
	if req.Predecessor != "" {
		t.Predecessor = req.Predecessor
	}
	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) DeleteTask(ctx context.Context, taskID int64) error {
	if _, err := s.tasks.GetByID(ctx, taskID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return err
	}
	return s.tasks.Delete(ctx, taskID)
}

func (s *Service) ListTasks(ctx context.Context, projectID int64) ([]domain.GanttTask, error) {
	return s.tasks.ListByProject(ctx, projectID)
}
