package store

import "github.com/existflow/taskboard/internal/model"

// Action is a state transition request. The set of actions is closed: only
// types declared in this package implement it.
type Action interface {
	action()
}

type marker struct{}

func (marker) action() {}

// Auth

// LoginSucceeded stores the session of a successful login
type LoginSucceeded struct {
	marker
	Auth model.Auth
}

// LoginFailed records why a login was rejected
type LoginFailed struct {
	marker
	Err error
}

// RegisterSucceeded stores the session of a new account
type RegisterSucceeded struct {
	marker
	Auth model.Auth
}

// RegisterFailed records why a registration was rejected
type RegisterFailed struct {
	marker
	Err error
}

// Logout resets every slice to its initial value
type Logout struct {
	marker
}

// Quote

// QuoteLoaded replaces the quote of the day
type QuoteLoaded struct {
	marker
	Quote model.Quote
}

// QuoteFailed reports a quote that could not be fetched
type QuoteFailed struct {
	marker
	Err error
}

// Projects

// ProjectsLoaded adds the projects not in the store yet
type ProjectsLoaded struct {
	marker
	Projects []model.Project
}

// ProjectAdded stores a newly created project
type ProjectAdded struct {
	marker
	Project model.Project
}

// ProjectUpdated replaces a project with its saved version
type ProjectUpdated struct {
	marker
	Project model.Project
}

// ProjectDeleted drops a project with its task lists and tasks
type ProjectDeleted struct {
	marker
	Project model.Project
}

// MembersInvited stores a project whose member list grew
type MembersInvited struct {
	marker
	Project model.Project
}

// ProjectSelected makes a project current and selects its task lists
type ProjectSelected struct {
	marker
	Project model.Project
}

// ProjectFailed reports a failed project request
type ProjectFailed struct {
	marker
	Err error
}

// BoardRefreshed replaces the selected project, its task lists, their tasks
// and the project's users with freshly fetched copies. Lists and tasks of the
// project that are missing from the refresh are dropped.
type BoardRefreshed struct {
	marker
	Project   model.Project
	TaskLists []model.TaskList
	Tasks     []model.Task
	Users     []model.User
}

// Task lists

// TaskListsLoaded adds the task lists not in the store yet
type TaskListsLoaded struct {
	marker
	TaskLists []model.TaskList
}

// TaskListAdded stores a new task list
type TaskListAdded struct {
	marker
	TaskList model.TaskList
}

// TaskListUpdated replaces a task list with its saved version
type TaskListUpdated struct {
	marker
	TaskList model.TaskList
}

// TaskListDeleted drops a task list and its tasks
type TaskListDeleted struct {
	marker
	TaskList model.TaskList
}

// TaskListsSwapped stores two task lists after exchanging their order
type TaskListsSwapped struct {
	marker
	TaskLists []model.TaskList
}

// TaskListFailed reports a failed task list request
type TaskListFailed struct {
	marker
	Err error
}

// Tasks

// TasksLoaded adds the tasks not in the store yet
type TasksLoaded struct {
	marker
	Tasks []model.Task
}

// TaskAdded stores a new task
type TaskAdded struct {
	marker
	Task model.Task
}

// TaskUpdated replaces a task with its saved version
type TaskUpdated struct {
	marker
	Task model.Task
}

// TaskDeleted drops a task
type TaskDeleted struct {
	marker
	Task model.Task
}

// TaskCompleted stores a task after its completion flag flipped
type TaskCompleted struct {
	marker
	Task model.Task
}

// TaskMoved stores a task that now belongs to another list
type TaskMoved struct {
	marker
	Task model.Task
}

// TasksMoved stores every task moved between two lists
type TasksMoved struct {
	marker
	Tasks []model.Task
}

// TaskFailed reports a failed task request
type TaskFailed struct {
	marker
	Err error
}

// Users

// UsersLoaded adds the users not in the store yet
type UsersLoaded struct {
	marker
	Users []model.User
}

// UserUpdated replaces a user, and the session user when it matches
type UserUpdated struct {
	marker
	User model.User
}

// UsersUpdated replaces several users at once
type UsersUpdated struct {
	marker
	Users []model.User
}

// UserFailed reports a failed user request
type UserFailed struct {
	marker
	Err error
}

// Router

// Navigated records the current route
type Navigated struct {
	marker
	Path   string
	Params map[string]string
}

// FailureOf returns the error carried by a failure action
func FailureOf(a Action) (error, bool) {
	switch a := a.(type) {
	case LoginFailed:
		return a.Err, true
	case RegisterFailed:
		return a.Err, true
	case QuoteFailed:
		return a.Err, true
	case ProjectFailed:
		return a.Err, true
	case TaskListFailed:
		return a.Err, true
	case TaskFailed:
		return a.Err, true
	case UserFailed:
		return a.Err, true
	}
	return nil, false
}
