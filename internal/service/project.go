package service

import (
	"context"
	"net/url"

	"github.com/existflow/taskboard/internal/api"
	"github.com/existflow/taskboard/internal/logger"
	"github.com/existflow/taskboard/internal/model"
)

// ProjectService issues project requests
type ProjectService struct {
	client *api.Client
}

// NewProjectService creates a project service on top of client
func NewProjectService(client *api.Client) *ProjectService {
	return &ProjectService{client: client}
}

type projectPatch struct {
	Name     string `json:"name"`
	CoverImg string `json:"coverImg"`
	Desc     string `json:"desc"`
}

type membersPatch struct {
	Members []string `json:"members"`
}

type taskListsPatch struct {
	TaskLists []string `json:"taskLists"`
}

// Add creates a project; the backend assigns the id
func (s *ProjectService) Add(ctx context.Context, project model.Project) (model.Project, error) {
	project.ID = ""
	var created model.Project
	if err := s.client.Post(ctx, s.client.URL(nil, projectsPath), project, &created); err != nil {
		return model.Project{}, err
	}
	return created, nil
}

// Update patches name, cover image and description only
func (s *ProjectService) Update(ctx context.Context, project model.Project) (model.Project, error) {
	body := projectPatch{Name: project.Name, CoverImg: project.CoverImg, Desc: project.Desc}
	var updated model.Project
	if err := s.client.Patch(ctx, s.client.URL(nil, projectsPath, project.ID), body, &updated); err != nil {
		return model.Project{}, err
	}
	return updated, nil
}

// UpdateTaskLists patches the task list ids of the project
func (s *ProjectService) UpdateTaskLists(ctx context.Context, project model.Project) (model.Project, error) {
	body := taskListsPatch{TaskLists: project.TaskLists}
	if body.TaskLists == nil {
		body.TaskLists = []string{}
	}
	var updated model.Project
	if err := s.client.Patch(ctx, s.client.URL(nil, projectsPath, project.ID), body, &updated); err != nil {
		return model.Project{}, err
	}
	return updated, nil
}

// Del deletes every task list of the project, then the project itself, and
// returns the project it was given. List deletions run concurrently and all
// of them must succeed before the project is deleted.
func (s *ProjectService) Del(ctx context.Context, project model.Project) (model.Project, error) {
	if n := len(project.TaskLists); n > 0 {
		logger.Debug("Deleting project task lists", logger.F("project", project.ID), logger.F("count", n))
		errs := fanOut(ctx, n, func(ctx context.Context, i int) error {
			return s.client.Delete(ctx, s.client.URL(nil, taskListsPath, project.TaskLists[i]))
		})
		if err := batchError("delete task lists", project.TaskLists, errs); err != nil {
			return model.Project{}, err
		}
	}

	if err := s.client.Delete(ctx, s.client.URL(nil, projectsPath, project.ID)); err != nil {
		return model.Project{}, err
	}
	return project, nil
}

// Get lists the projects userID is a member of
func (s *ProjectService) Get(ctx context.Context, userID string) ([]model.Project, error) {
	query := url.Values{"members_like": {userID}}
	var projects []model.Project
	if err := s.client.Get(ctx, s.client.URL(query, projectsPath), &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetByID fetches a single project
func (s *ProjectService) GetByID(ctx context.Context, id string) (model.Project, error) {
	var project model.Project
	if err := s.client.Get(ctx, s.client.URL(nil, projectsPath, id), &project); err != nil {
		return model.Project{}, err
	}
	return project, nil
}

// InviteMembers adds users to the members of the project. Existing members
// keep their order, new ids are appended and duplicates dropped.
func (s *ProjectService) InviteMembers(ctx context.Context, projectID string, users []model.User) (model.Project, error) {
	project, err := s.GetByID(ctx, projectID)
	if err != nil {
		return model.Project{}, err
	}

	invited := make([]string, len(users))
	for i, u := range users {
		invited[i] = u.ID
	}
	body := membersPatch{Members: unionIDs(project.Members, invited)}

	var updated model.Project
	if err := s.client.Patch(ctx, s.client.URL(nil, projectsPath, projectID), body, &updated); err != nil {
		return model.Project{}, err
	}
	return updated, nil
}
