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

func TestProjectProgress_MeanOverTopLevel(t *testing.T) {
	svc, m := newServiceWithMocks()

	m.tasks.On("ListByProject", mock.Anything, int64(1)).Return([]domain.GanttTask{
		{ID: 1, Progress: 100},
		{ID: 2, Progress: 50},
		{ID: 3, ParentID: int64Ptr(2), Progress: 10},
	}, nil)

	got, err := svc.ProjectProgress(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 75.0, got)
}

func TestProjectProgress_EmptyProject(t *testing.T) {
	svc, m := newServiceWithMocks()
	m.tasks.On("ListByProject", mock.Anything, int64(1)).Return([]domain.GanttTask{}, nil)

	got, err := svc.ProjectProgress(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestTasksToDo_OrderAndEnablement(t *testing.T) {
	svc, m := newServiceWithMocks()
	today := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return today }

	m.tasks.On("ListByProject", mock.Anything, int64(1)).Return([]domain.GanttTask{
		{ID: 1, TaskName: "Foundations", PlannedStart: datePtr(2026, 1, 5), Progress: 40},
		{ID: 2, TaskName: "Mounting", PlannedStart: datePtr(2026, 3, 2)},
		{ID: 3, TaskName: "Commissioning", PlannedStart: datePtr(2026, 4, 6)},
	}, nil)

	todo, err := svc.TasksToDo(context.Background(), 1)

	assert.NoError(t, err)
	assert.Len(t, todo, 3)
	assert.Equal(t, "Foundations", todo[0].TaskName)
	assert.True(t, todo[0].IsEnable, "first task is always workable")
	assert.False(t, todo[1].IsEnable, "predecessor incomplete and start far out")
	assert.False(t, todo[2].IsEnable)
}

func TestTasksToDo_UnlocksAfterPredecessorCompletes(t *testing.T) {
	svc, m := newServiceWithMocks()
	today := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return today }

	m.tasks.On("ListByProject", mock.Anything, int64(1)).Return([]domain.GanttTask{
		{ID: 1, PlannedStart: datePtr(2026, 1, 5), Progress: 100},
		{ID: 2, PlannedStart: datePtr(2026, 3, 2)},
	}, nil)

	todo, err := svc.TasksToDo(context.Background(), 1)
	assert.NoError(t, err)
	assert.True(t, todo[1].IsEnable)
}

func TestTasksToDo_EarlyUnlockWithinTwoDays(t *testing.T) {
	svc, m := newServiceWithMocks()
	today := time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return today }

	m.tasks.On("ListByProject", mock.Anything, int64(1)).Return([]domain.GanttTask{
		{ID: 1, PlannedStart: datePtr(2026, 1, 5), Progress: 10},
		{ID: 2, PlannedStart: datePtr(2026, 3, 2)},
	}, nil)

	todo, err := svc.TasksToDo(context.Background(), 1)
	assert.NoError(t, err)
	assert.True(t, todo[1].IsEnable, "planned start within 48h opens the task early")
}

func TestTasksToDo_SubtaskRules(t *testing.T) {
	svc, m := newServiceWithMocks()
	today := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return today }

	m.tasks.On("ListByProject", mock.Anything, int64(1)).Return([]domain.GanttTask{
		{ID: 1, TaskName: "Installation", PlannedStart: datePtr(2026, 1, 5)},
		{ID: 2, TaskName: "Rails", ParentID: int64Ptr(1), PlannedStart: datePtr(2026, 1, 6), Progress: 30},
		{ID: 3, TaskName: "Panels", ParentID: int64Ptr(1), PlannedStart: datePtr(2026, 2, 9)},
	}, nil)

	todo, err := svc.TasksToDo(context.Background(), 1)

	assert.NoError(t, err)
	assert.Len(t, todo, 1)
	assert.Len(t, todo[0].Subtasks, 2)
	assert.True(t, todo[0].Subtasks[0].IsEnable, "first subtask of an enabled parent is workable")
	assert.False(t, todo[0].Subtasks[1].IsEnable, "second subtask waits for the first")
}

func TestTasksToDo_SubtasksDisabledWhenParentLocked(t *testing.T) {
	svc, m := newServiceWithMocks()
	today := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return today }

	m.tasks.On("ListByProject", mock.Anything, int64(1)).Return([]domain.GanttTask{
		{ID: 1, PlannedStart: datePtr(2026, 1, 5), Progress: 20},
		{ID: 2, PlannedStart: datePtr(2026, 3, 2)},
		{ID: 3, ParentID: int64Ptr(2), PlannedStart: datePtr(2026, 3, 3)},
	}, nil)

	todo, err := svc.TasksToDo(context.Background(), 1)
	assert.NoError(t, err)
	assert.False(t, todo[1].IsEnable)
	assert.False(t, todo[1].Subtasks[0].IsEnable, "a locked parent locks every subtask")
}

func TestTasksToDo_Lateness(t *testing.T) {
	svc, m := newServiceWithMocks()
	today := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return today }

	m.tasks.On("ListByProject", mock.Anything, int64(1)).Return([]domain.GanttTask{
		{ID: 1, PlannedStart: datePtr(2026, 1, 1)},
		{ID: 2, ParentID: int64Ptr(1), PlannedStart: datePtr(2026, 1, 1), ActualStart: datePtr(2026, 1, 4)},
		{ID: 3, ParentID: int64Ptr(1), PlannedStart: datePtr(2026, 1, 5), ActualStart: datePtr(2026, 1, 5)},
	}, nil)

	todo, err := svc.TasksToDo(context.Background(), 1)

	assert.NoError(t, err)
	late := todo[0].Subtasks[0]
	assert.Equal(t, 3, late.DaysLate)
	assert.True(t, late.IsLate)

	onTime := todo[0].Subtasks[1]
	assert.Equal(t, 0, onTime.DaysLate)
	assert.False(t, onTime.IsLate)
}

func TestProjectStatus_LeavesWithFirstProofs(t *testing.T) {
	svc, m := newServiceWithMocks()

	m.tasks.On("ListByProject", mock.Anything, int64(1)).Return([]domain.GanttTask{
		{ID: 1, TaskName: "Installation", PlannedStart: datePtr(2026, 1, 5)},
		{ID: 2, TaskName: "Rails", ParentID: int64Ptr(1), PlannedStart: datePtr(2026, 1, 6), Progress: 100},
		{ID: 3, TaskName: "Panels", ParentID: int64Ptr(1), PlannedStart: datePtr(2026, 1, 12), Progress: 20},
	}, nil)
	m.proofs.On("ListByProject", mock.Anything, int64(1)).Return([]domain.TaskProof{
		{ID: 1, TaskID: 2, ProofImage: "rails_start.jpg", IsFinish: false},
		{ID: 2, TaskID: 2, ProofImage: "rails_done.jpg", IsFinish: true},
		{ID: 3, TaskID: 2, ProofImage: "rails_done_again.jpg", IsFinish: true},
	}, nil)
	m.projects.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Project{ID: 1, KWCapacity: 5}, nil)
	m.payments.On("EarliestAcknowledged", mock.Anything, int64(1)).
		Return(nil, repository.ErrNotFound)

	view, err := svc.ProjectStatus(context.Background(), 1)

	assert.NoError(t, err)
	assert.Nil(t, view.DateInfo, "no settled payment means no date window")
	assert.Len(t, view.Tasks, 2, "only leaves are reported")
	assert.Equal(t, "Rails", view.Tasks[0].TaskName)
	assert.Equal(t, "rails_start.jpg", view.Tasks[0].StartProof)
	assert.Equal(t, "rails_done.jpg", view.Tasks[0].FinishProof, "first finish proof wins")
	assert.Empty(t, view.Tasks[1].StartProof)
}
