package effects

import (
	"context"

	"github.com/existflow/taskboard/internal/logger"
	"github.com/existflow/taskboard/internal/model"
	"github.com/existflow/taskboard/internal/store"
)

// LoadProjects loads the projects of the logged-in user
func (e *Effects) LoadProjects(ctx context.Context) ([]model.Project, error) {
	userID, err := e.currentUserID()
	if err != nil {
		return nil, err
	}
	projects, err := e.svc.Projects.Get(ctx, userID)
	if err != nil {
		return nil, e.fail(store.ProjectFailed{Err: err}, err)
	}
	e.store.Dispatch(store.ProjectsLoaded{Projects: projects})
	return projects, nil
}

// AddProject creates a project owned by the logged-in user, gives it the
// default task lists and references it from every member.
func (e *Effects) AddProject(ctx context.Context, project model.Project) (model.Project, error) {
	userID, err := e.currentUserID()
	if err != nil {
		return model.Project{}, err
	}
	members := []string{userID}
	for _, id := range project.Members {
		if id != userID {
			members = append(members, id)
		}
	}
	project.Members = members
	project.TaskLists = nil

	created, err := e.svc.Projects.Add(ctx, project)
	if err != nil {
		return model.Project{}, e.fail(store.ProjectFailed{Err: err}, err)
	}
	logEffect("project created", logger.F("project", created.ID))

	linked, lists, err := e.svc.TaskLists.InitializeTaskLists(ctx, created)
	if err != nil {
		e.store.Dispatch(store.ProjectAdded{Project: created})
		return created, e.fail(store.TaskListFailed{Err: err}, err)
	}
	if linked, err = e.svc.Projects.UpdateTaskLists(ctx, linked); err != nil {
		e.store.Dispatch(store.ProjectAdded{Project: created})
		return created, e.fail(store.ProjectFailed{Err: err}, err)
	}
	e.store.Dispatch(store.ProjectAdded{Project: linked})
	e.store.Dispatch(store.TaskListsLoaded{TaskLists: lists})

	users, err := e.svc.Users.BatchUpdateProjectRef(ctx, linked)
	if err != nil {
		return linked, e.fail(store.UserFailed{Err: err}, err)
	}
	e.store.Dispatch(store.UsersUpdated{Users: users})
	return linked, nil
}

// UpdateProject saves name, cover image and description
func (e *Effects) UpdateProject(ctx context.Context, project model.Project) (model.Project, error) {
	updated, err := e.svc.Projects.Update(ctx, project)
	if err != nil {
		return model.Project{}, e.fail(store.ProjectFailed{Err: err}, err)
	}
	e.store.Dispatch(store.ProjectUpdated{Project: updated})
	return updated, nil
}

// DeleteProject deletes the project with its task lists
func (e *Effects) DeleteProject(ctx context.Context, project model.Project) error {
	deleted, err := e.svc.Projects.Del(ctx, project)
	if err != nil {
		return e.fail(store.ProjectFailed{Err: err}, err)
	}
	e.store.Dispatch(store.ProjectDeleted{Project: deleted})
	return nil
}

// InviteMembers adds users to the project and references it from them
func (e *Effects) InviteMembers(ctx context.Context, projectID string, users []model.User) (model.Project, error) {
	project, err := e.svc.Projects.InviteMembers(ctx, projectID, users)
	if err != nil {
		return model.Project{}, e.fail(store.ProjectFailed{Err: err}, err)
	}
	e.store.Dispatch(store.MembersInvited{Project: project})

	updated, err := e.svc.Users.BatchUpdateProjectRef(ctx, project)
	if err != nil {
		return project, e.fail(store.UserFailed{Err: err}, err)
	}
	e.store.Dispatch(store.UsersUpdated{Users: updated})
	return project, nil
}

// SelectProject makes project the current one and loads its task lists, their
// tasks and the project's users.
func (e *Effects) SelectProject(ctx context.Context, project model.Project) error {
	e.store.Dispatch(store.ProjectSelected{Project: project})
	e.store.Dispatch(store.Navigated{Path: "/tasklists/" + project.ID, Params: map[string]string{"id": project.ID}})

	lists, err := e.LoadTaskLists(ctx, project.ID)
	if err != nil {
		return err
	}
	if _, err := e.LoadTasks(ctx, lists); err != nil {
		return err
	}
	_, err = e.LoadProjectUsers(ctx, project.ID)
	return err
}

// SelectProjectByID fetches the project and selects it
func (e *Effects) SelectProjectByID(ctx context.Context, id string) (model.Project, error) {
	project, err := e.svc.Projects.GetByID(ctx, id)
	if err != nil {
		return model.Project{}, e.fail(store.ProjectFailed{Err: err}, err)
	}
	return project, e.SelectProject(ctx, project)
}

// RefreshProject refetches the project, its task lists, their tasks and the
// project's users, and replaces the stored copies in one dispatch.
func (e *Effects) RefreshProject(ctx context.Context, id string) (model.Project, error) {
	project, err := e.svc.Projects.GetByID(ctx, id)
	if err != nil {
		return model.Project{}, e.fail(store.ProjectFailed{Err: err}, err)
	}
	lists, err := e.svc.TaskLists.Get(ctx, project.ID)
	if err != nil {
		return project, e.fail(store.TaskListFailed{Err: err}, err)
	}
	tasks, err := e.svc.Tasks.GetByLists(ctx, lists)
	if err != nil {
		return project, e.fail(store.TaskFailed{Err: err}, err)
	}
	users, err := e.svc.Users.GetUsersByProject(ctx, project.ID)
	if err != nil {
		return project, e.fail(store.UserFailed{Err: err}, err)
	}
	e.store.Dispatch(store.BoardRefreshed{Project: project, TaskLists: lists, Tasks: tasks, Users: users})
	logEffect("project refreshed", logger.F("project", project.ID), logger.F("tasks", len(tasks)))
	return project, nil
}
