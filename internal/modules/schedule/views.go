package schedule

import (
	"context"
	"sort"
	"time"

	"solarops/internal/domain"
)

// TaskView is one leaf task in the project status report, annotated
// with the first start and finish proof photos when present.
type TaskView struct {
	ID           int64      `json:"id"`
	TaskName     string     `json:"task_name"`
	PlannedStart *time.Time `json:"planned_start,omitempty"`
	PlannedEnd   *time.Time `json:"planned_end,omitempty"`
	ActualStart  *time.Time `json:"actual_start,omitempty"`
	ActualEnd    *time.Time `json:"actual_end,omitempty"`
	Progress     int        `json:"progress"`
	StartProof   string     `json:"start_proof,omitempty"`
	FinishProof  string     `json:"finish_proof,omitempty"`
}

// ProjectStatusView combines the date window with the flattened leaf
// task list for the dashboard.
type ProjectStatusView struct {
	DateInfo *ProjectDateInfo `json:"date_info,omitempty"`
	Tasks    []TaskView       `json:"tasks"`
}

// SubtaskToDo is one workable leaf in the to-do list.
type SubtaskToDo struct {
	ID           int64      `json:"id"`
	TaskName     string     `json:"task_name"`
	PlannedStart *time.Time `json:"planned_start,omitempty"`
	ActualStart  *time.Time `json:"actual_start,omitempty"`
	Progress     int        `json:"progress"`
	IsEnable     bool       `json:"is_enable"`
	DaysLate     int        `json:"days_late"`
	IsLate       bool       `json:"is_late"`
}

// TaskToDo is a top-level task with its workable subtasks.
type TaskToDo struct {
	ID           int64         `json:"id"`
	TaskName     string        `json:"task_name"`
	PlannedStart *time.Time    `json:"planned_start,omitempty"`
	Progress     int           `json:"progress"`
	IsEnable     bool          `json:"is_enable"`
	Subtasks     []SubtaskToDo `json:"subtasks"`
}

// ProjectProgress is the arithmetic mean of progress across top-level
// tasks; zero when the project has none.
func (s *Service) ProjectProgress(ctx context.Context, projectID int64) (float64, error) {
	all, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return 0, err
	}
	tops := newTaskTree(all).topLevel()
	if len(tops) == 0 {
		return 0, nil
	}
	var sum int
	for _, t := range tops {
		sum += t.Progress
	}
	return float64(sum) / float64(len(tops)), nil
}

// ProjectStatus returns the date window (when derivable) plus every
// leaf task with its first start and finish proof images.
func (s *Service) ProjectStatus(ctx context.Context, projectID int64) (*ProjectStatusView, error) {
	all, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	tree := newTaskTree(all)

	proofs, err := s.proofs.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	startProof := make(map[int64]string)
	finishProof := make(map[int64]string)
	for _, p := range proofs {
		if p.IsFinish {
			if _, ok := finishProof[p.TaskID]; !ok {
				finishProof[p.TaskID] = p.ProofImage
			}
		} else {
			if _, ok := startProof[p.TaskID]; !ok {
				startProof[p.TaskID] = p.ProofImage
			}
		}
	}

	view := &ProjectStatusView{Tasks: []TaskView{}}
	if info, err := s.DateInfo(ctx, projectID); err == nil {
		view.DateInfo = info
	}

	leaves := tree.leaves()
	sortByPlannedStart(leaves)
	for _, l := range leaves {
		view.Tasks = append(view.Tasks, TaskView{
			ID:           l.ID,
			TaskName:     l.TaskName,
			PlannedStart: l.PlannedStart,
			PlannedEnd:   l.PlannedEnd,
			ActualStart:  l.ActualStart,
			ActualEnd:    l.ActualEnd,
			Progress:     l.Progress,
			StartProof:   startProof[l.ID],
			FinishProof:  finishProof[l.ID],
		})
	}
	return view, nil
}

// TasksToDo orders top-level tasks by planned start and marks what can
// be worked now. A task unlocks when its predecessor in that order is
// fully complete, or early when its own planned start is within two
// days of today. The first subtask of an unlocked parent is always
// workable.
func (s *Service) TasksToDo(ctx context.Context, projectID int64) ([]TaskToDo, error) {
	all, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	tree := newTaskTree(all)
	today := s.now()

	tops := tree.topLevel()
	sortByPlannedStart(tops)

	result := make([]TaskToDo, 0, len(tops))
	for i, top := range tops {
		enabled := i == 0 ||
			tree.subtreeComplete(tops[i-1].ID) ||
			withinEarlyUnlock(top.PlannedStart, today)

		item := TaskToDo{
			ID:           top.ID,
			TaskName:     top.TaskName,
			PlannedStart: top.PlannedStart,
			Progress:     top.Progress,
			IsEnable:     enabled,
			Subtasks:     []SubtaskToDo{},
		}

		subs := childTasks(tree, top.ID)
		sortByPlannedStart(subs)
		for j, sub := range subs {
			subEnabled := false
			if enabled {
				subEnabled = j == 0 ||
					tree.subtreeComplete(subs[j-1].ID) ||
					withinEarlyUnlock(sub.PlannedStart, today)
			}
			daysLate, isLate := lateness(sub.PlannedStart, sub.ActualStart)
			item.Subtasks = append(item.Subtasks, SubtaskToDo{
				ID:           sub.ID,
				TaskName:     sub.TaskName,
				PlannedStart: sub.PlannedStart,
				ActualStart:  sub.ActualStart,
				Progress:     sub.Progress,
				IsEnable:     subEnabled,
				DaysLate:     daysLate,
				IsLate:       isLate,
			})
		}
		result = append(result, item)
	}
	return result, nil
}

func childTasks(tree *taskTree, parentID int64) []*domain.GanttTask {
	ids := tree.children[parentID]
	tasks := make([]*domain.GanttTask, 0, len(ids))
	for _, id := range ids {
		if n := tree.get(id); n != nil {
			tasks = append(tasks, n)
		}
	}
	return tasks
}

func sortByPlannedStart(tasks []*domain.GanttTask) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i].PlannedStart, tasks[j].PlannedStart
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.Before(*b)
	})
}

// withinEarlyUnlock reports whether a planned start is close enough to
// today (two days) to open the task ahead of its predecessor.
func withinEarlyUnlock(planned *time.Time, today time.Time) bool {
	if planned == nil {
		return false
	}
	return planned.Sub(today) <= 48*time.Hour
}

// lateness measures whole days between the planned and actual start.
func lateness(planned, actual *time.Time) (int, bool) {
	if planned == nil || actual == nil {
		return 0, false
	}
	days := int(actual.Sub(*planned).Hours() / 24)
	return days, planned.Before(*actual)
}
