package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"solarops/internal/domain"
	"solarops/internal/repository"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func int64Ptr(v int64) *int64 { return &v }

func TestUpdateTaskProgress_RejectsLowerProgress(t *testing.T) {
	svc, m := newServiceWithMocks()

	task := &domain.GanttTask{ID: 7, ProjectID: 1, TaskName: "Wiring", Progress: 50}
	m.tasks.On("GetByID", mock.Anything, int64(7)).Return(task, nil)

	ok, msg, err := svc.UpdateTaskProgress(context.Background(), 7, 40, "p.jpg", "fac@x.com", "1.2.3.4")

	assert.False(t, ok)
	assert.Equal(t, "Invalid inputted progress!", msg)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 50, task.Progress)
	m.tasks.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	m.proofs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateTaskProgress_RejectsOutOfRange(t *testing.T) {
	svc, m := newServiceWithMocks()

	task := &domain.GanttTask{ID: 7, ProjectID: 1, Progress: 0}
	m.tasks.On("GetByID", mock.Anything, int64(7)).Return(task, nil)

	ok, msg, err := svc.UpdateTaskProgress(context.Background(), 7, 101, "p.jpg", "fac@x.com", "")
	assert.False(t, ok)
	assert.Equal(t, MsgInvalidProgress, msg)
	assert.ErrorIs(t, err, ErrInvalidInput)
	m.tasks.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateTaskProgress_NoFacilitator(t *testing.T) {
	svc, m := newServiceWithMocks()

	task := &domain.GanttTask{ID: 7, ProjectID: 1, Progress: 10}
	m.tasks.On("GetByID", mock.Anything, int64(7)).Return(task, nil)
	m.workLogs.On("GetFacilitator", mock.Anything, int64(1)).Return(nil, repository.ErrNotFound)

	ok, msg, err := svc.UpdateTaskProgress(context.Background(), 7, 60, "p.jpg", "fac@x.com", "")
	assert.False(t, ok)
	assert.Equal(t, "No facilitator assigned to this project!", msg)
	assert.ErrorIs(t, err, ErrNotAssigned)
}

func TestUpdateTaskProgress_Partial(t *testing.T) {
	svc, m := newServiceWithMocks()
	now := time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	task := &domain.GanttTask{ID: 7, ProjectID: 1, TaskName: "Wiring", Progress: 20}
	project := &domain.Project{ID: 1, Name: "Rooftop A", Status: domain.ProjectOnWork, ClientID: 5}

	m.tasks.On("GetByID", mock.Anything, int64(7)).Return(task, nil)
	m.workLogs.On("GetFacilitator", mock.Anything, int64(1)).
		Return(&domain.ProjectWorkLog{UserID: 3, Role: domain.WorkRoleFacilitator}, nil)
	m.projects.On("GetByID", mock.Anything, int64(1)).Return(project, nil)
	m.tasks.On("Update", mock.Anything, task).Return(nil)
	m.proofs.On("Create", mock.Anything, mock.AnythingOfType("*domain.TaskProof")).Return(nil)
	m.users.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.User{ID: 5, Email: "client@x.com"}, nil)
	m.notifier.On("Notify", mock.Anything, int64(1), domain.NotifTaskUpdate,
		mock.Anything, mock.Anything, []string{"client@x.com"}).Return(nil)
	m.tasks.On("ListByProject", mock.Anything, int64(1)).
		Return([]domain.GanttTask{{ID: 7, ProjectID: 1, Progress: 60}}, nil)
	m.audit.On("LogUserAction", mock.Anything, "fac@x.com", "update_task_progress",
		"gantt_task", int64(7), mock.Anything, "1.2.3.4").Return()

	ok, msg, err := svc.UpdateTaskProgress(context.Background(), 7, 60, "p.jpg", "fac@x.com", "1.2.3.4")

	assert.True(t, ok)
	assert.Equal(t, MsgProgressRecorded, msg)
	assert.NoError(t, err)
	assert.Equal(t, 60, task.Progress)
	assert.NotNil(t, task.ActualStart)
	assert.Equal(t, now, *task.ActualStart)
	m.projects.AssertNotCalled(t, "MarkFinished", mock.Anything, mock.Anything)
	m.audit.AssertExpectations(t)
}

func TestUpdateTaskProgress_LastLeafFinishesProject(t *testing.T) {
	svc, m := newServiceWithMocks()
	now := time.Date(2026, 2, 2, 14, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	task := &domain.GanttTask{ID: 9, ProjectID: 4, TaskName: "Commissioning", Progress: 80}
	project := &domain.Project{ID: 4, Name: "Warehouse", Status: domain.ProjectOnWork, ClientID: 2}

	m.tasks.On("GetByID", mock.Anything, int64(9)).Return(task, nil)
	m.workLogs.On("GetFacilitator", mock.Anything, int64(4)).
		Return(&domain.ProjectWorkLog{UserID: 3}, nil)
	m.projects.On("GetByID", mock.Anything, int64(4)).Return(project, nil)
	m.tasks.On("Update", mock.Anything, task).Return(nil)
	m.proofs.On("Create", mock.Anything, mock.AnythingOfType("*domain.TaskProof")).Return(nil)
	m.users.On("GetByID", mock.Anything, int64(2)).
		Return(&domain.User{ID: 2, Email: "client@x.com"}, nil)
	m.tasks.On("ListByProject", mock.Anything, int64(4)).
		Return([]domain.GanttTask{{ID: 9, ProjectID: 4, Progress: 100}}, nil)
	m.projects.On("MarkFinished", mock.Anything, int64(4)).Return(nil)
	m.notifier.On("Notify", mock.Anything, int64(4), domain.NotifTaskUpdate,
		mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.notifier.On("Notify", mock.Anything, int64(4), domain.NotifProjectUpdate,
		"Project Finished", mock.Anything, mock.Anything).Return(nil)
	m.audit.On("LogUserAction", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()

	ok, msg, err := svc.UpdateTaskProgress(context.Background(), 9, 100, "done.jpg", "fac@x.com", "")

	assert.True(t, ok)
	assert.Equal(t, MsgProgressRecorded, msg)
	assert.NoError(t, err)
	assert.Equal(t, domain.ProjectFinished, project.Status)
	m.projects.AssertCalled(t, "MarkFinished", mock.Anything, int64(4))
	m.notifier.AssertCalled(t, "Notify", mock.Anything, int64(4), domain.NotifProjectUpdate,
		"Project Finished", mock.Anything, mock.Anything)
}

func TestHandleTask_StartPropagatesToParent(t *testing.T) {
	svc, m := newServiceWithMocks()
	now := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	child := &domain.GanttTask{ID: 2, ProjectID: 1, TaskName: "Mounting", ParentID: int64Ptr(1)}
	project := &domain.Project{ID: 1, Name: "Rooftop A", Status: domain.ProjectOnWork, ClientID: 5}

	m.tasks.On("GetByID", mock.Anything, int64(2)).Return(child, nil)
	m.projects.On("GetByID", mock.Anything, int64(1)).Return(project, nil)
	m.tasks.On("Update", mock.Anything, child).Return(nil)
	m.proofs.On("Create", mock.Anything, mock.AnythingOfType("*domain.TaskProof")).Return(nil)
	m.users.On("GetByID", mock.Anything, int64(5)).Return(nil, repository.ErrNotFound)
	m.notifier.On("Notify", mock.Anything, int64(1), domain.NotifTaskUpdate,
		"Task Started", mock.Anything, mock.Anything).Return(nil)

	// Post-update snapshot as the rollup will reload it.
	m.tasks.On("ListByProject", mock.Anything, int64(1)).Return([]domain.GanttTask{
		{ID: 1, ProjectID: 1, TaskName: "Installation"},
		{ID: 2, ProjectID: 1, ParentID: int64Ptr(1), ActualStart: &now},
	}, nil)
	m.tasks.On("UpdateActualDates", mock.Anything, int64(1), &now, (*time.Time)(nil)).Return(nil)

	ok, msg, err := svc.HandleTask(context.Background(), 2, "start.jpg", true)

	assert.True(t, ok)
	assert.Equal(t, MsgTaskStarted, msg)
	assert.NoError(t, err)
	assert.NotNil(t, child.ActualStart)
	m.tasks.AssertCalled(t, "UpdateActualDates", mock.Anything, int64(1), &now, (*time.Time)(nil))
}

func TestHandleTask_ProofSnapshotsPlannedStart(t *testing.T) {
	svc, m := newServiceWithMocks()
	now := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	planned := datePtr(2026, 1, 8)
	task := &domain.GanttTask{ID: 7, ProjectID: 1, TaskName: "Mounting", PlannedStart: planned}
	project := &domain.Project{ID: 1, Name: "Rooftop A", Status: domain.ProjectOnWork, ClientID: 5}

	m.tasks.On("GetByID", mock.Anything, int64(7)).Return(task, nil)
	m.projects.On("GetByID", mock.Anything, int64(1)).Return(project, nil)
	m.tasks.On("Update", mock.Anything, task).Return(nil)
	m.proofs.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.TaskProof) bool {
		return p.EstimatedStart != nil && p.EstimatedStart.Equal(*planned)
	})).Return(nil)
	m.users.On("GetByID", mock.Anything, int64(5)).Return(nil, repository.ErrNotFound)
	m.notifier.On("Notify", mock.Anything, int64(1), domain.NotifTaskUpdate,
		"Task Started", mock.Anything, mock.Anything).Return(nil)
	m.tasks.On("ListByProject", mock.Anything, int64(1)).
		Return([]domain.GanttTask{{ID: 7, ProjectID: 1, ActualStart: &now}}, nil)

	ok, _, err := svc.HandleTask(context.Background(), 7, "start.jpg", true)

	assert.True(t, ok)
	assert.NoError(t, err)
	m.proofs.AssertExpectations(t)
}

func TestHandleTask_TaskNotFound(t *testing.T) {
	svc, m := newServiceWithMocks()
	m.tasks.On("GetByID", mock.Anything, int64(42)).Return(nil, repository.ErrNotFound)

	ok, msg, err := svc.HandleTask(context.Background(), 42, "x.jpg", true)
	assert.False(t, ok)
	assert.Equal(t, "Task not found!", msg)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPropagateParentDates_WindowWidensOverDescendants(t *testing.T) {
	svc, m := newServiceWithMocks()

	start := datePtr(2026, 1, 10)
	end := datePtr(2026, 1, 20)
	laterStart := datePtr(2026, 1, 12)

	m.tasks.On("ListByProject", mock.Anything, int64(1)).Return([]domain.GanttTask{
		{ID: 1, ProjectID: 1},
		{ID: 2, ProjectID: 1, ParentID: int64Ptr(1), ActualStart: start},
		{ID: 3, ProjectID: 1, ParentID: int64Ptr(1), ActualStart: laterStart, ActualEnd: end},
	}, nil)
	m.tasks.On("UpdateActualDates", mock.Anything, int64(1), start, end).Return(nil)

	err := svc.propagateParentDates(context.Background(), 1, 1)

	assert.NoError(t, err)
	m.tasks.AssertCalled(t, "UpdateActualDates", mock.Anything, int64(1), start, end)
}

func TestPropagateParentDates_NeverNarrows(t *testing.T) {
	svc, m := newServiceWithMocks()

	parentStart := datePtr(2026, 1, 5)
	parentEnd := datePtr(2026, 1, 25)
	childStart := datePtr(2026, 1, 10)
	childEnd := datePtr(2026, 1, 20)

	m.tasks.On("ListByProject", mock.Anything, int64(1)).Return([]domain.GanttTask{
		{ID: 1, ProjectID: 1, ActualStart: parentStart, ActualEnd: parentEnd},
		{ID: 2, ProjectID: 1, ParentID: int64Ptr(1), ActualStart: childStart, ActualEnd: childEnd},
	}, nil)

	err := svc.propagateParentDates(context.Background(), 1, 1)

	assert.NoError(t, err)
	m.tasks.AssertNotCalled(t, "UpdateActualDates", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPropagateParentDates_Idempotent(t *testing.T) {
	svc, m := newServiceWithMocks()

	start := datePtr(2026, 1, 10)
	end := datePtr(2026, 1, 20)

	m.tasks.On("ListByProject", mock.Anything, int64(1)).Return([]domain.GanttTask{
		{ID: 1, ProjectID: 1, ActualStart: start, ActualEnd: end},
		{ID: 2, ProjectID: 1, ParentID: int64Ptr(1), ActualStart: start, ActualEnd: end},
	}, nil)

	err := svc.propagateParentDates(context.Background(), 1, 1)

	assert.NoError(t, err)
	m.tasks.AssertNotCalled(t, "UpdateActualDates", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPropagateParentDates_ReachesGrandparent(t *testing.T) {
	svc, m := newServiceWithMocks()

	start := datePtr(2026, 1, 10)

	m.tasks.On("ListByProject", mock.Anything, int64(1)).Return([]domain.GanttTask{
		{ID: 1, ProjectID: 1},
		{ID: 2, ProjectID: 1, ParentID: int64Ptr(1)},
		{ID: 3, ProjectID: 1, ParentID: int64Ptr(2), ActualStart: start},
	}, nil)
	m.tasks.On("UpdateActualDates", mock.Anything, int64(2), start, (*time.Time)(nil)).Return(nil)
	m.tasks.On("UpdateActualDates", mock.Anything, int64(1), start, (*time.Time)(nil)).Return(nil)

	err := svc.propagateParentDates(context.Background(), 1, 2)

	assert.NoError(t, err)
	m.tasks.AssertCalled(t, "UpdateActualDates", mock.Anything, int64(2), start, (*time.Time)(nil))
	m.tasks.AssertCalled(t, "UpdateActualDates", mock.Anything, int64(1), start, (*time.Time)(nil))
}

func TestSubmitTaskReport_MirrorsOntoTask(t *testing.T) {
	svc, m := newServiceWithMocks()
	now := time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	started := datePtr(2026, 3, 1)
	proof := &domain.TaskProof{ID: 11, TaskID: 7, ActualStart: started, TaskProgress: 100}
	task := &domain.GanttTask{ID: 7, ProjectID: 1, TaskName: "Testing", Progress: 70, ActualStart: started}
	project := &domain.Project{ID: 1, Name: "Rooftop A", Status: domain.ProjectOnWork, ClientID: 5}

	m.proofs.On("GetByID", mock.Anything, int64(11)).Return(proof, nil)
	m.tasks.On("GetByID", mock.Anything, int64(7)).Return(task, nil)
	m.projects.On("GetByID", mock.Anything, int64(1)).Return(project, nil)
	m.proofs.On("Update", mock.Anything, proof).Return(nil)
	m.tasks.On("Update", mock.Anything, task).Return(nil)
	m.users.On("GetByID", mock.Anything, int64(5)).Return(nil, repository.ErrNotFound)
	m.notifier.On("Notify", mock.Anything, int64(1), domain.NotifTaskUpdate,
		mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.tasks.On("ListByProject", mock.Anything, int64(1)).Return([]domain.GanttTask{
		{ID: 7, ProjectID: 1, Progress: 100},
		{ID: 8, ProjectID: 1, Progress: 40},
	}, nil)

	ok, msg, err := svc.SubmitTaskReport(context.Background(), 11, "final.jpg")

	assert.True(t, ok)
	assert.Equal(t, MsgReportSubmitted, msg)
	assert.NoError(t, err)
	assert.Equal(t, 100, task.Progress)
	assert.True(t, proof.IsFinish)
	assert.Equal(t, "final.jpg", proof.ProofImage)
	assert.NotNil(t, task.ActualEnd)
	m.projects.AssertNotCalled(t, "MarkFinished", mock.Anything, mock.Anything)
}

func TestSubmitTaskReport_ReportNotFound(t *testing.T) {
	svc, m := newServiceWithMocks()
	m.proofs.On("GetByID", mock.Anything, int64(5)).Return(nil, repository.ErrNotFound)

	ok, msg, err := svc.SubmitTaskReport(context.Background(), 5, "x.jpg")
	assert.False(t, ok)
	assert.Equal(t, "Task report not found!", msg)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFinishIfComplete_AlreadyFinishedIsNoOp(t *testing.T) {
	svc, m := newServiceWithMocks()

	project := &domain.Project{ID: 1, Status: domain.ProjectFinished}
	err := svc.finishIfComplete(context.Background(), project)

	assert.NoError(t, err)
	m.tasks.AssertNotCalled(t, "ListByProject", mock.Anything, mock.Anything)
	m.projects.AssertNotCalled(t, "MarkFinished", mock.Anything, mock.Anything)
}
