package service

import (
	"context"
	"net/url"

	"github.com/existflow/taskboard/internal/api"
	"github.com/existflow/taskboard/internal/model"
)

// TaskListService issues task list requests
type TaskListService struct {
	client *api.Client
}

// NewTaskListService creates a task list service on top of client
func NewTaskListService(client *api.Client) *TaskListService {
	return &TaskListService{client: client}
}

type taskListNamePatch struct {
	Name string `json:"name"`
}

type taskListOrderPatch struct {
	Order int `json:"order"`
}

// Add creates a task list; the backend assigns the id
func (s *TaskListService) Add(ctx context.Context, list model.TaskList) (model.TaskList, error) {
	list.ID = ""
	var created model.TaskList
	if err := s.client.Post(ctx, s.client.URL(nil, taskListsPath), list, &created); err != nil {
		return model.TaskList{}, err
	}
	return created, nil
}

// Update patches the name only
func (s *TaskListService) Update(ctx context.Context, list model.TaskList) (model.TaskList, error) {
	var updated model.TaskList
	if err := s.client.Patch(ctx, s.client.URL(nil, taskListsPath, list.ID), taskListNamePatch{Name: list.Name}, &updated); err != nil {
		return model.TaskList{}, err
	}
	return updated, nil
}

// Del deletes the task list and returns the one it was given
func (s *TaskListService) Del(ctx context.Context, list model.TaskList) (model.TaskList, error) {
	if err := s.client.Delete(ctx, s.client.URL(nil, taskListsPath, list.ID)); err != nil {
		return model.TaskList{}, err
	}
	return list, nil
}

// Get lists the task lists of a project
func (s *TaskListService) Get(ctx context.Context, projectID string) ([]model.TaskList, error) {
	query := url.Values{"projectId": {projectID}}
	var lists []model.TaskList
	if err := s.client.Get(ctx, s.client.URL(query, taskListsPath), &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

// SwapOrder gives src the order of target and target the order of src. Both
// patches are issued concurrently and both must succeed; the backend may
// apply them in either order. The updated lists are returned as [src, target].
func (s *TaskListService) SwapOrder(ctx context.Context, src, target model.TaskList) ([]model.TaskList, error) {
	patches := []struct {
		id    string
		order int
	}{
		{id: src.ID, order: target.Order},
		{id: target.ID, order: src.Order},
	}

	updated := make([]model.TaskList, len(patches))
	errs := fanOut(ctx, len(patches), func(ctx context.Context, i int) error {
		p := patches[i]
		return s.client.Patch(ctx, s.client.URL(nil, taskListsPath, p.id), taskListOrderPatch{Order: p.order}, &updated[i])
	})
	if err := batchError("swap order", []string{src.ID, target.ID}, errs); err != nil {
		return nil, err
	}
	return updated, nil
}

// InitializeTaskLists creates the three default lists of a new project
// concurrently and returns the project linked to them, plus the lists in
// creation order. When some creations fail nothing is linked and the lists
// that were created are left in place; their ids are in the *BatchError.
func (s *TaskListService) InitializeTaskLists(ctx context.Context, project model.Project) (model.Project, []model.TaskList, error) {
	names := model.DefaultTaskListNames
	created := make([]model.TaskList, len(names))
	errs := fanOut(ctx, len(names), func(ctx context.Context, i int) error {
		list, err := s.Add(ctx, model.TaskList{Name: names[i], ProjectID: project.ID, Order: i + 1})
		created[i] = list
		return err
	})

	keys := make([]string, len(names))
	for i := range names {
		keys[i] = names[i]
		if errs[i] == nil {
			keys[i] = created[i].ID
		}
	}
	if err := batchError("initialize task lists", keys, errs); err != nil {
		return model.Project{}, nil, err
	}

	ids := make([]string, len(created))
	for i, l := range created {
		ids[i] = l.ID
	}
	project.TaskLists = ids
	return project, created, nil
}
