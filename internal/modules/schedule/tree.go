package schedule

import "solarops/internal/domain"

// taskTree is an in-memory adjacency view over one project's tasks.
// Rollups load the task set once and walk it here instead of issuing
// recursive SQL.
type taskTree struct {
	nodes    map[int64]*domain.GanttTask
	children map[int64][]int64
}

func newTaskTree(tasks []domain.GanttTask) *taskTree {
	t := &taskTree{
		nodes:    make(map[int64]*domain.GanttTask, len(tasks)),
		children: make(map[int64][]int64),
	}
	for i := range tasks {
		task := &tasks[i]
		t.nodes[task.ID] = task
		if task.ParentID != nil {
			t.children[*task.ParentID] = append(t.children[*task.ParentID], task.ID)
		}
	}
	return t
}

func (t *taskTree) get(id int64) *domain.GanttTask {
	return t.nodes[id]
}

// isLeaf reports whether no other task names this one as parent.
// Only leaves are directly worked; everything else is derived.
func (t *taskTree) isLeaf(id int64) bool {
	return len(t.children[id]) == 0
}

// descendants returns every task below id, not just direct children.
// Iterative DFS; the tree is user-entered so a defensive visited set
// guards against accidental cycles in ParentID.
func (t *taskTree) descendants(id int64) []*domain.GanttTask {
	var result []*domain.GanttTask
	visited := map[int64]bool{id: true}
	stack := append([]int64(nil), t.children[id]...)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[cur] {
			continue
		}
		visited[cur] = true
		if n := t.nodes[cur]; n != nil {
			result = append(result, n)
		}
		stack = append(stack, t.children[cur]...)
	}
	return result
}

// leaves returns all leaf tasks in the project.
func (t *taskTree) leaves() []*domain.GanttTask {
	var result []*domain.GanttTask
	for id, n := range t.nodes {
		if t.isLeaf(id) {
			result = append(result, n)
		}
	}
	return result
}

// topLevel returns all parentless tasks.
func (t *taskTree) topLevel() []*domain.GanttTask {
	var result []*domain.GanttTask
	for _, n := range t.nodes {
		if n.ParentID == nil {
			result = append(result, n)
		}
	}
	return result
}

// complete reports the canonical project completion rule: the project
// is done when every leaf task has reached full progress. An empty
// project is never complete.
func (t *taskTree) complete() bool {
	leaves := t.leaves()
	if len(leaves) == 0 {
		return false
	}
	for _, l := range leaves {
		if l.Progress < 100 {
			return false
		}
	}
	return true
}

// subtreeComplete reports whether every leaf under id (or id itself,
// when it is a leaf) has reached full progress.
func (t *taskTree) subtreeComplete(id int64) bool {
	if t.isLeaf(id) {
		n := t.nodes[id]
		return n != nil && n.Progress >= 100
	}
	for _, d := range t.descendants(id) {
		if t.isLeaf(d.ID) && d.Progress < 100 {
			return false
		}
	}
	return true
}
