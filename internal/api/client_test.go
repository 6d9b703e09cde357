package api_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/existflow/taskboard/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLEscapesSegmentsAndQuery(t *testing.T) {
	c := api.NewClient("http://backend/")

	assert.Equal(t, "http://backend/projects", c.URL(nil, "projects"))
	assert.Equal(t, "http://backend/projects/a%2Fb", c.URL(nil, "projects", "a/b"))
	assert.Equal(t, "http://backend/projects?members_like=u1", c.URL(url.Values{"members_like": {"u1"}}, "projects"))
}

func TestDoSendsJSONAndDecodes(t *testing.T) {
	var gotMethod, gotContentType, gotBody, gotCustom string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		gotCustom = r.Header.Get("X-Trace")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"p1","name":"Work"}`))
	}))
	defer srv.Close()

	c := api.NewClient(srv.URL, api.WithHeader("X-Trace", "abc"))
	var out struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	err := c.Post(context.Background(), c.URL(nil, "projects"), map[string]string{"name": "Work"}, &out)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "abc", gotCustom)
	assert.JSONEq(t, `{"name":"Work"}`, gotBody)
	assert.Equal(t, "p1", out.ID)
}

func TestNoAuthorizationHeaderByDefault(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	c := api.NewClient(srv.URL)
	require.NoError(t, c.Delete(context.Background(), c.URL(nil, "tasks", "t1")))
	assert.Empty(t, auth)
}

func TestNon2xxSurfacesHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"duplicate"}`))
	}))
	defer srv.Close()

	c := api.NewClient(srv.URL)
	err := c.Patch(context.Background(), c.URL(nil, "taskLists", "l1"), map[string]int{"order": 2}, nil)
	require.Error(t, err)

	var httpErr *api.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusConflict, httpErr.StatusCode)
	assert.Equal(t, `{"error":"duplicate"}`, httpErr.Body)
	assert.Equal(t, http.MethodPatch, httpErr.Method)
}

func TestDecodeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := api.NewClient(srv.URL)
	var out map[string]any
	err := c.Get(context.Background(), c.URL(nil, "quotes", "1"), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}
