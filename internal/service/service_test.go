package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnionIDsKeepsOrderAndDropsDuplicates(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, unionIDs([]string{"a", "b"}, []string{"b", "c", "a"}))
	assert.Equal(t, []string{"a"}, unionIDs(nil, []string{"a", "a", ""}))
	assert.Equal(t, []string{}, unionIDs(nil, nil))
}

func TestWithoutID(t *testing.T) {
	assert.Equal(t, []string{"a", "c"}, withoutID([]string{"a", "b", "c"}, "b"))
	assert.Equal(t, []string{"a"}, withoutID([]string{"a"}, "x"))
}

func TestFanOutRunsEveryBranch(t *testing.T) {
	boom := errors.New("boom")
	errs := fanOut(context.Background(), 3, func(_ context.Context, i int) error {
		if i == 1 {
			return boom
		}
		return nil
	})
	require.Len(t, errs, 3)
	assert.NoError(t, errs[0])
	assert.ErrorIs(t, errs[1], boom)
	assert.NoError(t, errs[2])
}

func TestBatchError(t *testing.T) {
	assert.NoError(t, batchError("op", []string{"a", "b"}, []error{nil, nil}))

	boom := errors.New("boom")
	err := batchError("op", []string{"a", "b"}, []error{nil, boom})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	var be *BatchError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, []string{"a"}, be.Succeeded)
	require.Len(t, be.Failed, 1)
	assert.Equal(t, "b", be.Failed[0].Key)
	assert.Contains(t, err.Error(), "op: 1 of 2 failed")
}
