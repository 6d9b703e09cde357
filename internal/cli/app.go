package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/existflow/taskboard/internal/api"
	"github.com/existflow/taskboard/internal/config"
	"github.com/existflow/taskboard/internal/effects"
	"github.com/existflow/taskboard/internal/logger"
	"github.com/existflow/taskboard/internal/model"
	"github.com/existflow/taskboard/internal/store"
)

// errLoginRequired is returned by commands run without a saved session
var errLoginRequired = errors.New("not logged in, run 'taskboard login' first")

// App is the state shared by every command of one invocation
type App struct {
	cfg         *config.Config
	sessionPath string
	session     *config.Session
	fx          *effects.Effects
}

func newApp(cfg *config.Config) (*App, error) {
	path, err := config.SessionPath()
	if err != nil {
		return nil, err
	}
	session, err := config.LoadSession(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	client := api.NewClient(cfg.APIURL)
	st := store.NewDefault(cfg.Production)
	return &App{
		cfg:         cfg,
		sessionPath: path,
		session:     session,
		fx:          effects.New(st, effects.NewServices(client)),
	}, nil
}

func (a *App) store() *store.Store {
	return a.fx.Store()
}

// resume restores the saved session into the store
func (a *App) resume(ctx context.Context) error {
	if a.session.UserID == "" {
		return errLoginRequired
	}
	if _, err := a.fx.Resume(ctx, a.session.UserID, a.session.Token); err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}
	return nil
}

func (a *App) saveSession(auth model.Auth) error {
	a.session.UserID = auth.UserID
	a.session.Token = auth.Token
	a.session.ProjectID = ""
	return config.SaveSession(a.sessionPath, a.session)
}

func (a *App) selectProjectID(id string) error {
	a.session.ProjectID = id
	return config.SaveSession(a.sessionPath, a.session)
}

// openProject restores the session and selects ref, or the saved project
// when ref is empty, loading its lists, tasks and members
func (a *App) openProject(ctx context.Context, ref string) (model.Project, error) {
	if err := a.resume(ctx); err != nil {
		return model.Project{}, err
	}
	if ref == "" {
		ref = a.session.ProjectID
	}
	if ref == "" {
		return model.Project{}, errors.New("no project selected, run 'taskboard project select <project>'")
	}

	projects, err := a.fx.LoadProjects(ctx)
	if err != nil {
		return model.Project{}, err
	}
	project, err := resolve(projects, func(p model.Project) (string, string) { return p.ID, p.Name }, ref)
	if err != nil {
		return model.Project{}, err
	}
	if err := a.fx.SelectProject(ctx, project); err != nil {
		return model.Project{}, err
	}
	logger.Debug("Project opened", logger.F("project", project.ID))
	return project, nil
}

// resolve finds the item whose id equals ref, whose id starts with ref, or
// whose name equals ref ignoring case. Ambiguous references are errors.
func resolve[T any](items []T, key func(T) (id, name string), ref string) (T, error) {
	var zero T
	var byPrefix, byName []T
	for _, item := range items {
		id, name := key(item)
		if id == ref {
			return item, nil
		}
		if strings.HasPrefix(id, ref) {
			byPrefix = append(byPrefix, item)
		}
		if strings.EqualFold(name, ref) {
			byName = append(byName, item)
		}
	}

	for _, matches := range [][]T{byPrefix, byName} {
		switch len(matches) {
		case 0:
			continue
		case 1:
			return matches[0], nil
		default:
			return zero, fmt.Errorf("%q is ambiguous (%d matches)", ref, len(matches))
		}
	}
	return zero, fmt.Errorf("%q not found", ref)
}

func taskListKey(l model.TaskList) (string, string) { return l.ID, l.Name }

func taskKey(t model.Task) (string, string) { return t.ID, t.Desc }

// boardTasks returns every task of the selected project
func boardTasks(st *store.Store) []model.Task {
	var tasks []model.Task
	for _, l := range store.Select(st, store.TaskListsWithTasks) {
		for _, t := range l.Tasks {
			tasks = append(tasks, t.Task)
		}
	}
	return tasks
}
