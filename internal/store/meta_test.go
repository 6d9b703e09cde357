package store

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/existflow/taskboard/internal/logger"
	"github.com/existflow/taskboard/internal/model"
	"github.com/stretchr/testify/assert"
)

func captureLogs(t *testing.T, level logger.Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logger.SetGlobal(logger.NewWriter(&buf, level))
	t.Cleanup(func() { logger.SetGlobal(nil) })
	return &buf
}

func TestWithLoggingWritesStateBeforeAndAfter(t *testing.T) {
	buf := captureLogs(t, logger.DEBUG)
	s := New(WithLogging(false))
	s.Dispatch(TaskAdded{Task: model.Task{ID: "t1", Desc: "first"}})
	buf.Reset()

	s.Dispatch(TaskUpdated{Task: model.Task{ID: "t1", Desc: "second"}})

	out := buf.String()
	assert.Contains(t, out, "Action reduced")
	assert.Contains(t, out, "store.TaskUpdated")
	assert.Contains(t, out, "before=")
	assert.Contains(t, out, "after=")
	assert.Contains(t, out, "first")
	assert.Contains(t, out, "second")
}

func TestWithLoggingMasksToken(t *testing.T) {
	buf := captureLogs(t, logger.DEBUG)
	s := New(WithLogging(false))

	s.Dispatch(LoginSucceeded{Auth: model.Auth{Token: "secret-token", UserID: "u1"}})

	assert.Contains(t, buf.String(), "u1")
	assert.NotContains(t, buf.String(), "secret-token")
}

func TestWithLoggingWarnsOnFailure(t *testing.T) {
	buf := captureLogs(t, logger.WARN)
	s := New(WithLogging(false))

	s.Dispatch(TaskFailed{Err: errors.New("boom")})
	s.Dispatch(TaskAdded{Task: model.Task{ID: "t1"}})

	out := buf.String()
	assert.Contains(t, out, "Action failed")
	assert.Contains(t, out, "boom")
	assert.NotContains(t, out, "Action reduced")
}

func TestWithLoggingIsIdentityInProduction(t *testing.T) {
	buf := captureLogs(t, logger.DEBUG)
	wrapped := WithLogging(true)(RootReducer)

	assert.Equal(t, reflect.ValueOf(RootReducer).Pointer(), reflect.ValueOf(wrapped).Pointer())
	wrapped(InitialState(), TaskAdded{Task: model.Task{ID: "t1"}})
	assert.Empty(t, buf.String())
}
