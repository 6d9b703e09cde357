// Package service holds the stateless resource services. Each one builds REST
// URIs for a collection, serializes payloads and forwards them to api.Client.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Collections of the REST backend
const (
	projectsPath  = "projects"
	taskListsPath = "taskLists"
	tasksPath     = "tasks"
	usersPath     = "users"
	quotesPath    = "quotes"
)

var (
	// ErrEmailExists is returned by Register when the email is taken
	ErrEmailExists = errors.New("email already registered")

	// ErrInvalidCredentials is returned by Login when no user matches
	ErrInvalidCredentials = errors.New("email or password does not match")

	// ErrNotFound is returned when a lookup by exact key matches nothing
	ErrNotFound = errors.New("not found")
)

// BranchError is the failure of one branch of a fan-out
type BranchError struct {
	Key string
	Err error
}

// BatchError reports a fan-out where at least one branch failed. Branches that
// succeeded are listed in Succeeded and were not rolled back.
type BatchError struct {
	Op        string
	Succeeded []string
	Failed    []BranchError
}

func (e *BatchError) Error() string {
	parts := make([]string, len(e.Failed))
	for i, f := range e.Failed {
		parts[i] = fmt.Sprintf("%s: %v", f.Key, f.Err)
	}
	return fmt.Sprintf("%s: %d of %d failed: %s",
		e.Op, len(e.Failed), len(e.Failed)+len(e.Succeeded), strings.Join(parts, "; "))
}

// Unwrap exposes every branch failure to errors.Is and errors.As
func (e *BatchError) Unwrap() []error {
	errs := make([]error, len(e.Failed))
	for i, f := range e.Failed {
		errs[i] = f.Err
	}
	return errs
}

// fanOut runs fn for indexes 0..n-1 concurrently and waits for every branch.
// A failing branch does not cancel the others.
func fanOut(ctx context.Context, n int, fn func(ctx context.Context, i int) error) []error {
	errs := make([]error, n)
	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			errs[i] = fn(ctx, i)
			return nil
		})
	}
	_ = g.Wait()
	return errs
}

// batchError builds a *BatchError from per-branch results, nil when all succeeded
func batchError(op string, keys []string, errs []error) error {
	be := &BatchError{Op: op}
	for i, err := range errs {
		if err != nil {
			be.Failed = append(be.Failed, BranchError{Key: keys[i], Err: err})
		} else {
			be.Succeeded = append(be.Succeeded, keys[i])
		}
	}
	if len(be.Failed) == 0 {
		return nil
	}
	return be
}

// unionIDs keeps existing ids in order, then appends the added ids not seen yet
func unionIDs(existing, added []string) []string {
	seen := make(map[string]bool, len(existing)+len(added))
	out := make([]string, 0, len(existing)+len(added))
	for _, group := range [][]string{existing, added} {
		for _, id := range group {
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// withoutID returns ids without id, preserving order
func withoutID(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
