package effects

import (
	"context"

	"github.com/existflow/taskboard/internal/model"
	"github.com/existflow/taskboard/internal/store"
)

// SearchUsers loads the users whose email contains filter
func (e *Effects) SearchUsers(ctx context.Context, filter string) ([]model.User, error) {
	users, err := e.svc.Users.Search(ctx, filter)
	if err != nil {
		return nil, e.fail(store.UserFailed{Err: err}, err)
	}
	e.store.Dispatch(store.UsersLoaded{Users: users})
	return users, nil
}

// FindUserByEmail loads the user registered with email
func (e *Effects) FindUserByEmail(ctx context.Context, email string) (model.User, error) {
	user, err := e.svc.Users.FindByEmail(ctx, email)
	if err != nil {
		return model.User{}, e.fail(store.UserFailed{Err: err}, err)
	}
	e.store.Dispatch(store.UsersLoaded{Users: []model.User{user}})
	return user, nil
}

// LoadProjectUsers loads the users referencing a project
func (e *Effects) LoadProjectUsers(ctx context.Context, projectID string) ([]model.User, error) {
	users, err := e.svc.Users.GetUsersByProject(ctx, projectID)
	if err != nil {
		return nil, e.fail(store.UserFailed{Err: err}, err)
	}
	e.store.Dispatch(store.UsersLoaded{Users: users})
	return users, nil
}
