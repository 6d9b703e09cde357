// Package effects runs service calls and dispatches their outcome into the
// store. Every operation dispatches a success action, or the matching failure
// action, and returns the service error unchanged.
package effects

import (
	"context"
	"errors"

	"github.com/existflow/taskboard/internal/api"
	"github.com/existflow/taskboard/internal/logger"
	"github.com/existflow/taskboard/internal/model"
	"github.com/existflow/taskboard/internal/service"
	"github.com/existflow/taskboard/internal/store"
)

var (
	// ErrNotLoggedIn is returned by operations that need a session
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrNoProjectSelected is returned by operations scoped to the selected project
	ErrNoProjectSelected = errors.New("no project selected")
)

// ProjectAPI is the project resource
type ProjectAPI interface {
	Add(ctx context.Context, project model.Project) (model.Project, error)
	Update(ctx context.Context, project model.Project) (model.Project, error)
	UpdateTaskLists(ctx context.Context, project model.Project) (model.Project, error)
	Del(ctx context.Context, project model.Project) (model.Project, error)
	Get(ctx context.Context, userID string) ([]model.Project, error)
	GetByID(ctx context.Context, id string) (model.Project, error)
	InviteMembers(ctx context.Context, projectID string, users []model.User) (model.Project, error)
}

// TaskListAPI is the task list resource
type TaskListAPI interface {
	Add(ctx context.Context, list model.TaskList) (model.TaskList, error)
	Update(ctx context.Context, list model.TaskList) (model.TaskList, error)
	Del(ctx context.Context, list model.TaskList) (model.TaskList, error)
	Get(ctx context.Context, projectID string) ([]model.TaskList, error)
	SwapOrder(ctx context.Context, src, target model.TaskList) ([]model.TaskList, error)
	InitializeTaskLists(ctx context.Context, project model.Project) (model.Project, []model.TaskList, error)
}

// TaskAPI is the task resource
type TaskAPI interface {
	Add(ctx context.Context, task model.Task) (model.Task, error)
	Update(ctx context.Context, task model.Task) (model.Task, error)
	Del(ctx context.Context, task model.Task) (model.Task, error)
	Get(ctx context.Context, taskListID string) ([]model.Task, error)
	GetByLists(ctx context.Context, lists []model.TaskList) ([]model.Task, error)
	Complete(ctx context.Context, task model.Task) (model.Task, error)
	Move(ctx context.Context, taskID, taskListID string) (model.Task, error)
	MoveAll(ctx context.Context, srcListID, targetListID string) ([]model.Task, error)
	GetUserTasks(ctx context.Context, userID string) ([]model.Task, error)
}

// UserAPI is the user resource
type UserAPI interface {
	Search(ctx context.Context, filter string) ([]model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id string) (model.User, error)
	GetUsersByProject(ctx context.Context, projectID string) ([]model.User, error)
	BatchUpdateProjectRef(ctx context.Context, project model.Project) ([]model.User, error)
}

// AuthAPI registers and logs in users
type AuthAPI interface {
	Register(ctx context.Context, user model.User) (model.Auth, error)
	Login(ctx context.Context, email, password string) (model.Auth, error)
}

// QuoteAPI serves the quote of the day
type QuoteAPI interface {
	Get(ctx context.Context) (model.Quote, error)
}

// Services groups the resources Effects talks to
type Services struct {
	Projects  ProjectAPI
	TaskLists TaskListAPI
	Tasks     TaskAPI
	Users     UserAPI
	Auth      AuthAPI
	Quotes    QuoteAPI
}

// NewServices builds every service on top of client
func NewServices(client *api.Client) Services {
	return Services{
		Projects:  service.NewProjectService(client),
		TaskLists: service.NewTaskListService(client),
		Tasks:     service.NewTaskService(client),
		Users:     service.NewUserService(client),
		Auth:      service.NewAuthService(client),
		Quotes:    service.NewQuoteService(client),
	}
}

// Effects connects the services to a store
type Effects struct {
	store *store.Store
	svc   Services
}

// New creates Effects dispatching into st
func New(st *store.Store, svc Services) *Effects {
	return &Effects{store: st, svc: svc}
}

// Store returns the store effects dispatch into
func (e *Effects) Store() *store.Store {
	return e.store
}

func (e *Effects) fail(a store.Action, err error) error {
	e.store.Dispatch(a)
	return err
}

func (e *Effects) currentUserID() (string, error) {
	auth := store.Select(e.store, store.Auth)
	if !auth.IsLoggedIn() {
		return "", ErrNotLoggedIn
	}
	return auth.UserID, nil
}

func (e *Effects) selectedProject() (model.Project, error) {
	p := store.Select(e.store, store.SelectedProject)
	if p == nil {
		return model.Project{}, ErrNoProjectSelected
	}
	return *p, nil
}

func logEffect(name string, fields ...logger.Field) {
	logger.Debug("Effect "+name, fields...)
}
