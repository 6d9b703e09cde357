package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/existflow/taskboard/internal/api"
	"github.com/existflow/taskboard/internal/model"
	"github.com/existflow/taskboard/internal/service"
	"github.com/existflow/taskboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) (*service.UserService, *testutil.Backend) {
	b := testutil.NewBackend(t)
	return service.NewUserService(api.NewClient(b.URL)), b
}

func TestUserSearchByEmail(t *testing.T) {
	svc, b := newUserService(t)

	_, err := svc.Search(context.Background(), "ali")
	require.NoError(t, err)
	assert.Equal(t, "ali", b.Filter(http.MethodGet, "/users")[0].Query.Get("email_like"))
}

func TestUserFindByEmailNotFound(t *testing.T) {
	svc, _ := newUserService(t)

	_, err := svc.FindByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestAddProjectRefSkipsExisting(t *testing.T) {
	svc, b := newUserService(t)
	user := model.User{ID: "u1", ProjectIDs: []string{"p1"}}

	got, err := svc.AddProjectRef(context.Background(), user, "p1")
	require.NoError(t, err)
	assert.Equal(t, user, got)
	assert.Empty(t, b.Requests())
}

func TestAddAndRemoveProjectRef(t *testing.T) {
	svc, b := newUserService(t)

	_, err := svc.AddProjectRef(context.Background(), model.User{ID: "u1", ProjectIDs: []string{"p1"}}, "p2")
	require.NoError(t, err)
	_, err = svc.RemoveProjectRef(context.Background(), model.User{ID: "u1", ProjectIDs: []string{"p1", "p2"}}, "p1")
	require.NoError(t, err)

	patches := b.Filter(http.MethodPatch, "/users/u1")
	require.Len(t, patches, 2)
	assert.JSONEq(t, `{"projectIds":["p1","p2"]}`, patches[0].Body)
	assert.JSONEq(t, `{"projectIds":["p2"]}`, patches[1].Body)
}

func TestBatchUpdateProjectRef(t *testing.T) {
	svc, b := newUserService(t)
	b.Reply(http.MethodGet, "/users/u1", http.StatusOK, model.User{ID: "u1", ProjectIDs: []string{"p9"}})
	b.Reply(http.MethodGet, "/users/u2", http.StatusOK, model.User{ID: "u2", ProjectIDs: []string{"p1"}})

	users, err := svc.BatchUpdateProjectRef(context.Background(), model.Project{ID: "p1", Members: []string{"u1", "u2"}})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "u1", users[0].ID)
	assert.Equal(t, []string{"p9", "p1"}, users[0].ProjectIDs)
	assert.Equal(t, "u2", users[1].ID)

	patches := b.Filter(http.MethodPatch, "/users/")
	require.Len(t, patches, 1)
	assert.Equal(t, "/users/u1", patches[0].Path)
}
