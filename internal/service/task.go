package service

import (
	"context"
	"net/url"

	"github.com/existflow/taskboard/internal/api"
	"github.com/existflow/taskboard/internal/model"
)

// TaskService issues task requests
type TaskService struct {
	client *api.Client
}

// NewTaskService creates a task service on top of client
func NewTaskService(client *api.Client) *TaskService {
	return &TaskService{client: client}
}

type completedPatch struct {
	Completed bool `json:"completed"`
}

type taskListIDPatch struct {
	TaskListID string `json:"taskListId"`
}

// Add creates a task; the backend assigns the id
func (s *TaskService) Add(ctx context.Context, task model.Task) (model.Task, error) {
	task.ID = ""
	var created model.Task
	if err := s.client.Post(ctx, s.client.URL(nil, tasksPath), task, &created); err != nil {
		return model.Task{}, err
	}
	return created, nil
}

// Update replaces the whole task
func (s *TaskService) Update(ctx context.Context, task model.Task) (model.Task, error) {
	var updated model.Task
	if err := s.client.Put(ctx, s.client.URL(nil, tasksPath, task.ID), task, &updated); err != nil {
		return model.Task{}, err
	}
	return updated, nil
}

// Del deletes the task and returns the one it was given
func (s *TaskService) Del(ctx context.Context, task model.Task) (model.Task, error) {
	if err := s.client.Delete(ctx, s.client.URL(nil, tasksPath, task.ID)); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

// Get lists the tasks of a task list
func (s *TaskService) Get(ctx context.Context, taskListID string) ([]model.Task, error) {
	return s.list(ctx, url.Values{"taskListId": {taskListID}})
}

// GetUserTasks lists the tasks owned by userID
func (s *TaskService) GetUserTasks(ctx context.Context, userID string) ([]model.Task, error) {
	return s.list(ctx, url.Values{"ownerId": {userID}})
}

func (s *TaskService) list(ctx context.Context, query url.Values) ([]model.Task, error) {
	var tasks []model.Task
	if err := s.client.Get(ctx, s.client.URL(query, tasksPath), &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetByLists fetches the tasks of every list concurrently. Results are
// concatenated in the order of lists.
func (s *TaskService) GetByLists(ctx context.Context, lists []model.TaskList) ([]model.Task, error) {
	results := make([][]model.Task, len(lists))
	errs := fanOut(ctx, len(lists), func(ctx context.Context, i int) error {
		tasks, err := s.Get(ctx, lists[i].ID)
		results[i] = tasks
		return err
	})

	keys := make([]string, len(lists))
	for i, l := range lists {
		keys[i] = l.ID
	}
	if err := batchError("get tasks by lists", keys, errs); err != nil {
		return nil, err
	}

	var tasks []model.Task
	for _, r := range results {
		tasks = append(tasks, r...)
	}
	return tasks, nil
}

// Complete toggles the completed flag
func (s *TaskService) Complete(ctx context.Context, task model.Task) (model.Task, error) {
	var updated model.Task
	if err := s.client.Patch(ctx, s.client.URL(nil, tasksPath, task.ID), completedPatch{Completed: !task.Completed}, &updated); err != nil {
		return model.Task{}, err
	}
	return updated, nil
}

// Move puts the task into another task list
func (s *TaskService) Move(ctx context.Context, taskID, taskListID string) (model.Task, error) {
	var updated model.Task
	if err := s.client.Patch(ctx, s.client.URL(nil, tasksPath, taskID), taskListIDPatch{TaskListID: taskListID}, &updated); err != nil {
		return model.Task{}, err
	}
	return updated, nil
}

// MoveAll moves every task of srcListID into targetListID
func (s *TaskService) MoveAll(ctx context.Context, srcListID, targetListID string) ([]model.Task, error) {
	tasks, err := s.Get(ctx, srcListID)
	if err != nil {
		return nil, err
	}

	moved := make([]model.Task, len(tasks))
	errs := fanOut(ctx, len(tasks), func(ctx context.Context, i int) error {
		t, err := s.Move(ctx, tasks[i].ID, targetListID)
		moved[i] = t
		return err
	})

	keys := make([]string, len(tasks))
	for i, t := range tasks {
		keys[i] = t.ID
	}
	if err := batchError("move all tasks", keys, errs); err != nil {
		return nil, err
	}
	return moved, nil
}
