package service

import (
	"context"
	"net/url"

	"github.com/existflow/taskboard/internal/api"
	"github.com/existflow/taskboard/internal/model"
)

// UserService issues user requests
type UserService struct {
	client *api.Client
}

// NewUserService creates a user service on top of client
func NewUserService(client *api.Client) *UserService {
	return &UserService{client: client}
}

type projectIDsPatch struct {
	ProjectIDs []string `json:"projectIds"`
}

// Search lists users whose email contains filter
func (s *UserService) Search(ctx context.Context, filter string) ([]model.User, error) {
	return s.list(ctx, url.Values{"email_like": {filter}})
}

// FindByEmail returns the user registered with exactly email
func (s *UserService) FindByEmail(ctx context.Context, email string) (model.User, error) {
	users, err := s.list(ctx, url.Values{"email": {email}})
	if err != nil {
		return model.User{}, err
	}
	if len(users) == 0 {
		return model.User{}, ErrNotFound
	}
	return users[0], nil
}

// GetByID fetches a single user
func (s *UserService) GetByID(ctx context.Context, id string) (model.User, error) {
	var user model.User
	if err := s.client.Get(ctx, s.client.URL(nil, usersPath, id), &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// GetUsersByProject lists the users referencing projectID
func (s *UserService) GetUsersByProject(ctx context.Context, projectID string) ([]model.User, error) {
	return s.list(ctx, url.Values{"projectIds_like": {projectID}})
}

func (s *UserService) list(ctx context.Context, query url.Values) ([]model.User, error) {
	var users []model.User
	if err := s.client.Get(ctx, s.client.URL(query, usersPath), &users); err != nil {
		return nil, err
	}
	return users, nil
}

// AddProjectRef appends projectID to the user's project ids. A user that
// already references the project is returned as is without a request.
func (s *UserService) AddProjectRef(ctx context.Context, user model.User, projectID string) (model.User, error) {
	if user.HasProject(projectID) {
		return user, nil
	}
	return s.patchProjectIDs(ctx, user.ID, unionIDs(user.ProjectIDs, []string{projectID}))
}

// RemoveProjectRef drops projectID from the user's project ids
func (s *UserService) RemoveProjectRef(ctx context.Context, user model.User, projectID string) (model.User, error) {
	return s.patchProjectIDs(ctx, user.ID, withoutID(user.ProjectIDs, projectID))
}

func (s *UserService) patchProjectIDs(ctx context.Context, userID string, ids []string) (model.User, error) {
	var updated model.User
	if err := s.client.Patch(ctx, s.client.URL(nil, usersPath, userID), projectIDsPatch{ProjectIDs: ids}, &updated); err != nil {
		return model.User{}, err
	}
	return updated, nil
}

// BatchUpdateProjectRef makes every member of project reference it. Members
// are fetched and patched concurrently; the updated users come back in member
// order.
func (s *UserService) BatchUpdateProjectRef(ctx context.Context, project model.Project) ([]model.User, error) {
	members := project.Members
	updated := make([]model.User, len(members))
	errs := fanOut(ctx, len(members), func(ctx context.Context, i int) error {
		user, err := s.GetByID(ctx, members[i])
		if err != nil {
			return err
		}
		updated[i], err = s.AddProjectRef(ctx, user, project.ID)
		return err
	})
	if err := batchError("update project refs", members, errs); err != nil {
		return nil, err
	}
	return updated, nil
}
