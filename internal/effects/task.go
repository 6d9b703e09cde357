package effects

import (
	"context"

	"github.com/existflow/taskboard/internal/model"
	"github.com/existflow/taskboard/internal/store"
)

// LoadTasks loads the tasks of lists
func (e *Effects) LoadTasks(ctx context.Context, lists []model.TaskList) ([]model.Task, error) {
	tasks, err := e.svc.Tasks.GetByLists(ctx, lists)
	if err != nil {
		return nil, e.fail(store.TaskFailed{Err: err}, err)
	}
	e.store.Dispatch(store.TasksLoaded{Tasks: tasks})
	return tasks, nil
}

// LoadUserTasks loads the tasks owned by the logged-in user
func (e *Effects) LoadUserTasks(ctx context.Context) ([]model.Task, error) {
	userID, err := e.currentUserID()
	if err != nil {
		return nil, err
	}
	tasks, err := e.svc.Tasks.GetUserTasks(ctx, userID)
	if err != nil {
		return nil, e.fail(store.TaskFailed{Err: err}, err)
	}
	e.store.Dispatch(store.TasksLoaded{Tasks: tasks})
	return tasks, nil
}

// AddTask creates a task. Without an owner the logged-in user owns it.
func (e *Effects) AddTask(ctx context.Context, task model.Task) (model.Task, error) {
	if task.OwnerID == "" {
		userID, err := e.currentUserID()
		if err != nil {
			return model.Task{}, err
		}
		task.OwnerID = userID
	}
	created, err := e.svc.Tasks.Add(ctx, task)
	if err != nil {
		return model.Task{}, e.fail(store.TaskFailed{Err: err}, err)
	}
	e.store.Dispatch(store.TaskAdded{Task: created})
	return created, nil
}

// UpdateTask replaces the task
func (e *Effects) UpdateTask(ctx context.Context, task model.Task) (model.Task, error) {
	updated, err := e.svc.Tasks.Update(ctx, task)
	if err != nil {
		return model.Task{}, e.fail(store.TaskFailed{Err: err}, err)
	}
	e.store.Dispatch(store.TaskUpdated{Task: updated})
	return updated, nil
}

// DeleteTask deletes the task
func (e *Effects) DeleteTask(ctx context.Context, task model.Task) error {
	deleted, err := e.svc.Tasks.Del(ctx, task)
	if err != nil {
		return e.fail(store.TaskFailed{Err: err}, err)
	}
	e.store.Dispatch(store.TaskDeleted{Task: deleted})
	return nil
}

// CompleteTask toggles the completed flag
func (e *Effects) CompleteTask(ctx context.Context, task model.Task) (model.Task, error) {
	updated, err := e.svc.Tasks.Complete(ctx, task)
	if err != nil {
		return model.Task{}, e.fail(store.TaskFailed{Err: err}, err)
	}
	e.store.Dispatch(store.TaskCompleted{Task: updated})
	return updated, nil
}

// MoveTask moves a task into another list
func (e *Effects) MoveTask(ctx context.Context, taskID, taskListID string) (model.Task, error) {
	moved, err := e.svc.Tasks.Move(ctx, taskID, taskListID)
	if err != nil {
		return model.Task{}, e.fail(store.TaskFailed{Err: err}, err)
	}
	e.store.Dispatch(store.TaskMoved{Task: moved})
	return moved, nil
}

// MoveAllTasks moves every task of one list into another
func (e *Effects) MoveAllTasks(ctx context.Context, srcListID, targetListID string) ([]model.Task, error) {
	moved, err := e.svc.Tasks.MoveAll(ctx, srcListID, targetListID)
	if err != nil {
		return nil, e.fail(store.TaskFailed{Err: err}, err)
	}
	e.store.Dispatch(store.TasksMoved{Tasks: moved})
	return moved, nil
}
