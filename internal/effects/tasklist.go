package effects

import (
	"context"

	"github.com/existflow/taskboard/internal/model"
	"github.com/existflow/taskboard/internal/store"
)

// LoadTaskLists loads the task lists of a project
func (e *Effects) LoadTaskLists(ctx context.Context, projectID string) ([]model.TaskList, error) {
	lists, err := e.svc.TaskLists.Get(ctx, projectID)
	if err != nil {
		return nil, e.fail(store.TaskListFailed{Err: err}, err)
	}
	e.store.Dispatch(store.TaskListsLoaded{TaskLists: lists})
	return lists, nil
}

// AddTaskList appends a list after the last one of the selected project
func (e *Effects) AddTaskList(ctx context.Context, name string) (model.TaskList, error) {
	project, err := e.selectedProject()
	if err != nil {
		return model.TaskList{}, err
	}
	order := store.Select(e.store, store.MaxListOrder) + 1

	list, err := e.svc.TaskLists.Add(ctx, model.TaskList{Name: name, ProjectID: project.ID, Order: order})
	if err != nil {
		return model.TaskList{}, e.fail(store.TaskListFailed{Err: err}, err)
	}
	e.store.Dispatch(store.TaskListAdded{TaskList: list})
	return list, e.syncProjectLists(ctx, project.ID)
}

// RenameTaskList saves the list name
func (e *Effects) RenameTaskList(ctx context.Context, list model.TaskList) (model.TaskList, error) {
	updated, err := e.svc.TaskLists.Update(ctx, list)
	if err != nil {
		return model.TaskList{}, e.fail(store.TaskListFailed{Err: err}, err)
	}
	e.store.Dispatch(store.TaskListUpdated{TaskList: updated})
	return updated, nil
}

// DeleteTaskList deletes the list and unlinks it from its project
func (e *Effects) DeleteTaskList(ctx context.Context, list model.TaskList) error {
	deleted, err := e.svc.TaskLists.Del(ctx, list)
	if err != nil {
		return e.fail(store.TaskListFailed{Err: err}, err)
	}
	e.store.Dispatch(store.TaskListDeleted{TaskList: deleted})
	return e.syncProjectLists(ctx, deleted.ProjectID)
}

// SwapTaskLists exchanges the orders of two lists
func (e *Effects) SwapTaskLists(ctx context.Context, src, target model.TaskList) ([]model.TaskList, error) {
	swapped, err := e.svc.TaskLists.SwapOrder(ctx, src, target)
	if err != nil {
		return nil, e.fail(store.TaskListFailed{Err: err}, err)
	}
	e.store.Dispatch(store.TaskListsSwapped{TaskLists: swapped})
	return swapped, nil
}

// syncProjectLists saves the task list ids the store holds for the project
func (e *Effects) syncProjectLists(ctx context.Context, projectID string) error {
	project, ok := e.store.State().Projects.Get(projectID)
	if !ok {
		return nil
	}
	updated, err := e.svc.Projects.UpdateTaskLists(ctx, project)
	if err != nil {
		return e.fail(store.ProjectFailed{Err: err}, err)
	}
	e.store.Dispatch(store.ProjectUpdated{Project: updated})
	return nil
}
