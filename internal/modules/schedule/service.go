package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"solarops/internal/domain"
	"solarops/internal/repository"
)

type Service struct {
	tasks    TaskRepository
	proofs   TaskProofRepository
	projects ProjectRepository
	workLogs WorkLogRepository
	payments PaymentRepository
	users    UserReader
	notifier Notifier
	oracle   PaymentOracle
	audit    Auditor
	log      *zap.Logger

	now func() time.Time
}

func NewService(
	tasks TaskRepository,
	proofs TaskProofRepository,
	projects ProjectRepository,
	workLogs WorkLogRepository,
	payments PaymentRepository,
	users UserReader,
	notifier Notifier,
	oracle PaymentOracle,
	audit Auditor,
	log *zap.Logger,
) *Service {
	return &Service{
		tasks:    tasks,
		proofs:   proofs,
		projects: projects,
		workLogs: workLogs,
		payments: payments,
		users:    users,
		notifier: notifier,
		oracle:   oracle,
		audit:    audit,
		log:      log,
		now:      time.Now,
	}
}

// HandleTask records a start or finish proof for a leaf task,
// propagates derived dates to its ancestors and finishes the project
// when the last leaf completes. Business-rule violations come back as
// (false, message, typed error); only storage faults are unexpected.
func (s *Service) HandleTask(ctx context.Context, taskID int64, proofImage string, isStarting bool) (bool, string, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, MsgTaskNotFound, ErrNotFound
		}
		return false, "", err
	}

	project, err := s.projects.GetByID(ctx, task.ProjectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, MsgProjectNotFound, ErrNotFound
		}
		return false, "", err
	}

	now := s.now()
	var title, message, okMsg string
	if isStarting {
		task.ActualStart = &now
		title = "Task Started"
		message = fmt.Sprintf("Task %q of project %q has started.", task.TaskName, project.Name)
		okMsg = MsgTaskStarted
	} else {
		task.Progress = 100
		task.ActualEnd = &now
		title = "Task Finished"
		message = fmt.Sprintf("Task %q of project %q has finished.", task.TaskName, project.Name)
		okMsg = MsgTaskFinished
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return false, "", err
	}

	proof := &domain.TaskProof{
		TaskID:         task.ID,
		ProofImage:     proofImage,
		IsFinish:       !isStarting,
		ActualStart:    task.ActualStart,
		EstimatedStart: task.PlannedStart,
		TaskProgress:   task.Progress,
	}
	if err := s.proofs.Create(ctx, proof); err != nil {
		return false, "", err
	}

	s.notifyProject(ctx, project, domain.NotifTaskUpdate, title, message)

	if task.ParentID != nil {
		if err := s.propagateParentDates(ctx, task.ProjectID, *task.ParentID); err != nil {
			return false, "", err
		}
	}

	if err := s.finishIfComplete(ctx, project); err != nil {
		return false, "", err
	}

	return true, okMsg, nil
}

// SubmitTaskReport completes an existing proof checkpoint and mirrors
// its state onto the owning task.
func (s *Service) SubmitTaskReport(ctx context.Context, taskProofID int64, proofImage string) (bool, string, error) {
	proof, err := s.proofs.GetByID(ctx, taskProofID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, MsgReportNotFound, ErrNotFound
		}
		return false, "", err
	}

	task, err := s.tasks.GetByID(ctx, proof.TaskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, MsgTaskNotFound, ErrNotFound
		}
		return false, "", err
	}

	project, err := s.projects.GetByID(ctx, task.ProjectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, MsgProjectNotFound, ErrNotFound
		}
		return false, "", err
	}

	now := s.now()
	proof.ProofImage = proofImage
	proof.IsFinish = true
	if proof.ActualStart == nil {
		proof.ActualStart = &now
	}
	if err := s.proofs.Update(ctx, proof); err != nil {
		return false, "", err
	}

	// Mirror onto the task: the start date is only ever set once, the
	// end date only once the task is fully done.
	if proof.TaskProgress > task.Progress {
		task.Progress = proof.TaskProgress
	}
	if task.ActualStart == nil {
		task.ActualStart = proof.ActualStart
	}
	if task.Progress >= 100 && task.ActualEnd == nil {
		task.ActualEnd = &now
	}
	if err := s.tasks.Update(ctx, task); err != nil {
		return false, "", err
	}

	if task.ParentID != nil {
		if err := s.propagateParentDates(ctx, task.ProjectID, *task.ParentID); err != nil {
			return false, "", err
		}
	}

	s.notifyProject(ctx, project, domain.NotifTaskUpdate,
		"Task Progress",
		fmt.Sprintf("Task %q of project %q is at %d%%.", task.TaskName, project.Name, task.Progress),
	)

	if err := s.finishIfComplete(ctx, project); err != nil {
		return false, "", err
	}

	return true, MsgReportSubmitted, nil
}

// UpdateTaskProgress records a monotonic progress report from the
// assigned facilitator.
func (s *Service) UpdateTaskProgress(ctx context.Context, taskID int64, progress int, proofImage, actorEmail, ipAddress string) (bool, string, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, MsgTaskNotFound, ErrNotFound
		}
		return false, "", err
	}

	if progress < 0 || progress > 100 || progress < task.Progress {
		return false, MsgInvalidProgress, ErrInvalidInput
	}

	if _, err := s.workLogs.GetFacilitator(ctx, task.ProjectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, MsgNoFacilitator, ErrNotAssigned
		}
		return false, "", err
	}

	project, err := s.projects.GetByID(ctx, task.ProjectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, MsgProjectNotFound, ErrNotFound
		}
		return false, "", err
	}

	now := s.now()
	if task.ActualStart == nil {
		task.ActualStart = &now
	}
	task.ActualEnd = &now
	task.Progress = progress
	if err := s.tasks.Update(ctx, task); err != nil {
		return false, "", err
	}

	proof := &domain.TaskProof{
		TaskID:         task.ID,
		ProofImage:     proofImage,
		IsFinish:       true,
		ActualStart:    task.ActualStart,
		EstimatedStart: task.PlannedStart,
		TaskProgress:   progress,
	}
	if err := s.proofs.Create(ctx, proof); err != nil {
		return false, "", err
	}

	if task.ParentID != nil {
		if err := s.propagateParentDates(ctx, task.ProjectID, *task.ParentID); err != nil {
			return false, "", err
		}
	}

	s.notifyProject(ctx, project, domain.NotifTaskUpdate,
		"Task Progress",
		fmt.Sprintf("Task %q of project %q is at %d%%.", task.TaskName, project.Name, progress),
	)

	if err := s.finishIfComplete(ctx, project); err != nil {
		return false, "", err
	}

	s.audit.LogUserAction(ctx, actorEmail, "update_task_progress", "gantt_task", task.ID,
		fmt.Sprintf("progress=%d", progress), ipAddress)

	return true, MsgProgressRecorded, nil
}

// propagateParentDates recomputes the derived date window of every
// ancestor of parentID. A parent's window is the union of its
// descendants': min actual start, max actual end. The window only ever
// widens, so a later correction to a child cannot shrink what a parent
// already reported. Re-running with unchanged children is a no-op.
func (s *Service) propagateParentDates(ctx context.Context, projectID, parentID int64) error {
	all, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return err
	}
	tree := newTaskTree(all)

	current := tree.get(parentID)
	for current != nil {
		minStart, maxEnd := descendantWindow(tree, current.ID)

		newStart := widenStart(current.ActualStart, minStart)
		newEnd := widenEnd(current.ActualEnd, maxEnd)

		if !equalTimePtr(newStart, current.ActualStart) || !equalTimePtr(newEnd, current.ActualEnd) {
			if err := s.tasks.UpdateActualDates(ctx, current.ID, newStart, newEnd); err != nil {
				return err
			}
			current.ActualStart = newStart
			current.ActualEnd = newEnd
		}

		if current.ParentID == nil {
			break
		}
		current = tree.get(*current.ParentID)
	}
	return nil
}

func descendantWindow(tree *taskTree, id int64) (minStart, maxEnd *time.Time) {
	for _, d := range tree.descendants(id) {
		if d.ActualStart != nil && (minStart == nil || d.ActualStart.Before(*minStart)) {
			v := *d.ActualStart
			minStart = &v
		}
		if d.ActualEnd != nil && (maxEnd == nil || d.ActualEnd.After(*maxEnd)) {
			v := *d.ActualEnd
			maxEnd = &v
		}
	}
	return minStart, maxEnd
}

func widenStart(current, candidate *time.Time) *time.Time {
	if candidate == nil {
		return current
	}
	if current == nil || candidate.Before(*current) {
		v := *candidate
		return &v
	}
	return current
}

func widenEnd(current, candidate *time.Time) *time.Time {
	if candidate == nil {
		return current
	}
	if current == nil || candidate.After(*current) {
		v := *candidate
		return &v
	}
	return current
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// finishIfComplete applies the canonical completion rule and performs
// the project-finished side effects exactly once.
func (s *Service) finishIfComplete(ctx context.Context, project *domain.Project) error {
	if project.Status == domain.ProjectFinished {
		return nil
	}

	all, err := s.tasks.ListByProject(ctx, project.ID)
	if err != nil {
		return err
	}
	if !newTaskTree(all).complete() {
		return nil
	}

	if err := s.projects.MarkFinished(ctx, project.ID); err != nil {
		return err
	}
	project.Status = domain.ProjectFinished

	s.notifyProject(ctx, project, domain.NotifProjectUpdate,
		"Project Finished",
		fmt.Sprintf("All tasks of project %q are complete. Demobilization can begin.", project.Name),
	)
	return nil
}

// notifyProject resolves the client's address and fires the in-app
// notification plus the email event. Best effort by policy: the state
// change has already committed when we get here.
func (s *Service) notifyProject(ctx context.Context, project *domain.Project, t domain.NotificationType, title, message string) {
	var emails []string
	if client, err := s.users.GetByID(ctx, project.ClientID); err == nil {
		emails = []string{client.Email}
	}

	if err := s.notifier.Notify(ctx, project.ID, t, title, message, emails); err != nil {
		s.log.Error("notify project",
			zap.Int64("project_id", project.ID),
			zap.String("title", title),
			zap.Error(err),
		)
	}
}
