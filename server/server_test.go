package server_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/existflow/taskboard/internal/api"
	"github.com/existflow/taskboard/internal/config"
	"github.com/existflow/taskboard/internal/model"
	"github.com/existflow/taskboard/internal/service"
	"github.com/existflow/taskboard/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackend(t *testing.T) (*httptest.Server, *api.Client) {
	t.Helper()
	srv, err := server.New(config.ServerConfig{
		DBDriver: "sqlite",
		DBDSN:    filepath.Join(t.TempDir(), "backend.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close() })

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts, api.NewClient(ts.URL)
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestHealth(t *testing.T) {
	ts, _ := newBackend(t)

	status, body := get(t, ts.URL+"/health")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}

func TestUnsupportedDriver(t *testing.T) {
	_, err := server.New(config.ServerConfig{DBDriver: "oracle", DBDSN: "x"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestQuotesAreSeeded(t *testing.T) {
	ts, client := newBackend(t)

	q, err := service.NewQuoteService(client).Get(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, q.Content)
	assert.NotEmpty(t, q.Author)

	status, body := get(t, ts.URL+"/quotes")
	require.Equal(t, http.StatusOK, status)
	var all []model.Quote
	require.NoError(t, json.Unmarshal([]byte(body), &all))
	assert.Len(t, all, service.QuoteCount)
	assert.Equal(t, "0", all[0].ID)
}

func TestMissingDocumentAndCollection(t *testing.T) {
	ts, client := newBackend(t)

	_, err := service.NewProjectService(client).GetByID(context.Background(), "nope")
	var httpErr *api.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)

	status, _ := get(t, ts.URL+"/widgets")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRegisterAndLoginWithHashedPassword(t *testing.T) {
	ts, client := newBackend(t)
	auth := service.NewAuthService(client)
	ctx := context.Background()

	registered, err := auth.Register(ctx, model.User{Email: "a@example.com", Name: "A", Password: "secret"})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.UserID)

	_, err = auth.Register(ctx, model.User{Email: "a@example.com", Name: "Again", Password: "x"})
	assert.ErrorIs(t, err, service.ErrEmailExists)

	loggedIn, err := auth.Login(ctx, "a@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, registered.UserID, loggedIn.UserID)

	_, err = auth.Login(ctx, "a@example.com", "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, body := get(t, ts.URL+"/users/"+registered.UserID)
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "secret")
}

func TestDuplicateEmailIsRejected(t *testing.T) {
	_, client := newBackend(t)
	ctx := context.Background()

	var created model.User
	require.NoError(t, client.Post(ctx, client.URL(nil, "users"), model.User{Email: "a@example.com"}, &created))

	err := client.Post(ctx, client.URL(nil, "users"), model.User{Email: "a@example.com"}, nil)
	var httpErr *api.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.StatusCode)
}

func TestProjectLifecycle(t *testing.T) {
	_, client := newBackend(t)
	ctx := context.Background()
	projects := service.NewProjectService(client)
	lists := service.NewTaskListService(client)
	tasks := service.NewTaskService(client)
	users := service.NewUserService(client)

	var owner, guest model.User
	require.NoError(t, client.Post(ctx, client.URL(nil, "users"), model.User{Email: "owner@example.com", Name: "Owner"}, &owner))
	require.NoError(t, client.Post(ctx, client.URL(nil, "users"), model.User{Email: "guest@example.com", Name: "Guest"}, &guest))

	project, err := projects.Add(ctx, model.Project{Name: "Work", Members: []string{owner.ID}})
	require.NoError(t, err)
	require.NotEmpty(t, project.ID)

	linked, created, err := lists.InitializeTaskLists(ctx, project)
	require.NoError(t, err)
	linked, err = projects.UpdateTaskLists(ctx, linked)
	require.NoError(t, err)
	assert.Equal(t, "Work", linked.Name, "patch keeps other fields")
	require.Len(t, linked.TaskLists, 3)

	fetched, err := lists.Get(ctx, project.ID)
	require.NoError(t, err)
	assert.Len(t, fetched, 3)

	swapped, err := lists.SwapOrder(ctx, created[0], created[2])
	require.NoError(t, err)
	assert.Equal(t, 3, swapped[0].Order)
	assert.Equal(t, 1, swapped[1].Order)

	_, err = tasks.Add(ctx, model.NewTask(created[0].ID, "write report", owner.ID))
	require.NoError(t, err)
	_, err = tasks.Add(ctx, model.NewTask(created[1].ID, "review", guest.ID))
	require.NoError(t, err)

	byLists, err := tasks.GetByLists(ctx, created)
	require.NoError(t, err)
	require.Len(t, byLists, 2)
	assert.Equal(t, "write report", byLists[0].Desc)

	mine, err := tasks.GetUserTasks(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	moved, err := tasks.MoveAll(ctx, created[0].ID, created[2].ID)
	require.NoError(t, err)
	require.Len(t, moved, 1)
	assert.Equal(t, created[2].ID, moved[0].TaskListID)
	assert.Equal(t, "write report", moved[0].Desc)

	invited, err := projects.InviteMembers(ctx, project.ID, []model.User{guest, owner})
	require.NoError(t, err)
	assert.Equal(t, []string{owner.ID, guest.ID}, invited.Members)

	_, err = users.BatchUpdateProjectRef(ctx, invited)
	require.NoError(t, err)
	members, err := users.GetUsersByProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	found, err := projects.Get(ctx, guest.ID)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, project.ID, found[0].ID)

	search, err := users.Search(ctx, "GUEST@")
	require.NoError(t, err)
	require.Len(t, search, 1)
	assert.Equal(t, guest.ID, search[0].ID)

	_, err = projects.Del(ctx, linked)
	require.NoError(t, err)
	remaining, err := lists.Get(ctx, project.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
	_, err = projects.GetByID(ctx, project.ID)
	var httpErr *api.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
}

func TestPutReplacesDocument(t *testing.T) {
	_, client := newBackend(t)
	ctx := context.Background()
	tasks := service.NewTaskService(client)

	task, err := tasks.Add(ctx, model.Task{TaskListID: "l1", Desc: "draft", Remark: "note"})
	require.NoError(t, err)

	task.Remark = ""
	task.Desc = "final"
	updated, err := tasks.Update(ctx, task)
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Desc)
	assert.Empty(t, updated.Remark)

	done, err := tasks.Complete(ctx, updated)
	require.NoError(t, err)
	assert.True(t, done.Completed)
	assert.Equal(t, "final", done.Desc)
}

func TestMetricsEndpoint(t *testing.T) {
	ts, _ := newBackend(t)
	get(t, ts.URL+"/projects")

	status, body := get(t, ts.URL+"/metrics")
	require.Equal(t, http.StatusOK, status)
	assert.True(t, strings.Contains(body, `taskboard_http_requests_total{method="GET",path="/projects",status="200"} 1`), body)
}
