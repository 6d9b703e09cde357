package store

import "github.com/existflow/taskboard/internal/model"

// State is the whole application state. Every slice is a pointer to an
// immutable snapshot: a reducer that changes a slice returns a new pointer and
// one that does not returns the pointer it was given, so two States can be
// compared with ==.
type State struct {
	Auth      *model.Auth
	Quote     *model.Quote
	Projects  *ProjectState
	TaskLists *TaskListState
	Tasks     *TaskState
	Users     *UserState
	Router    *RouterState
}

// ProjectState holds the projects the user is a member of
type ProjectState struct {
	Collection[model.Project]
	SelectedID string
}

// TaskListState holds the task lists loaded so far. SelectedIDs are the lists
// of ProjectID, the selected project.
type TaskListState struct {
	Collection[model.TaskList]
	ProjectID   string
	SelectedIDs []string
}

// TaskState holds the tasks loaded so far
type TaskState struct {
	Collection[model.Task]
}

// UserState holds the users loaded so far
type UserState struct {
	Collection[model.User]
}

// RouterState is the current navigation target
type RouterState struct {
	Path   string
	Params map[string]string
}

// InitialState returns the logged-out state
func InitialState() State {
	quote := model.DefaultQuote()
	return State{
		Auth:      &model.Auth{},
		Quote:     &quote,
		Projects:  &ProjectState{Collection: emptyCollection[model.Project]()},
		TaskLists: &TaskListState{Collection: emptyCollection[model.TaskList](), SelectedIDs: []string{}},
		Tasks:     &TaskState{Collection: emptyCollection[model.Task]()},
		Users:     &UserState{Collection: emptyCollection[model.User]()},
		Router:    &RouterState{Path: "/", Params: map[string]string{}},
	}
}

func projectKey(p model.Project) string { return p.ID }
func taskListKey(l model.TaskList) string { return l.ID }
func taskKey(t model.Task) string { return t.ID }
func userKey(u model.User) string { return u.ID }

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func appendID(ids []string, id string) []string {
	if containsID(ids, id) {
		return ids
	}
	out := make([]string, len(ids), len(ids)+1)
	copy(out, ids)
	return append(out, id)
}

func dropID(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func containsKey[T any](items []T, key func(T) string, id string) bool {
	for _, item := range items {
		if key(item) == id {
			return true
		}
	}
	return false
}
