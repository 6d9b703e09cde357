package store

import (
	"testing"

	"github.com/existflow/taskboard/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boardStore() *Store {
	s := New()
	s.Dispatch(loggedIn())
	project := model.Project{ID: "p1", Name: "Work", Members: []string{"u1", "u2", "ghost"}, TaskLists: []string{"l1", "l2", "l3"}}
	s.Dispatch(ProjectsLoaded{Projects: []model.Project{project, {ID: "p2", Name: "Home"}}})
	s.Dispatch(ProjectSelected{Project: project})
	s.Dispatch(TaskListsLoaded{TaskLists: []model.TaskList{
		{ID: "l1", Name: "Done", ProjectID: "p1", Order: 3},
		{ID: "l2", Name: "To Do", ProjectID: "p1", Order: 1},
		{ID: "l3", Name: "In Progress", ProjectID: "p1", Order: 2},
		{ID: "l9", Name: "Other", ProjectID: "p2", Order: 1},
	}})
	s.Dispatch(UsersLoaded{Users: []model.User{{ID: "u2", Name: "B"}}})
	s.Dispatch(TasksLoaded{Tasks: []model.Task{
		{ID: "t1", TaskListID: "l2", OwnerID: "u1", ParticipantIDs: []string{"u2", "ghost"}},
		{ID: "t2", TaskListID: "l1", OwnerID: "u2"},
		{ID: "t3", TaskListID: "l2", OwnerID: "ghost", ParticipantIDs: []string{"u1"}},
		{ID: "t4", TaskListID: "l9", OwnerID: "u2"},
	}})
	return s
}

func TestSelectedProjectAndLists(t *testing.T) {
	s := boardStore()

	project := Select(s, SelectedProject)
	require.NotNil(t, project)
	assert.Equal(t, "Work", project.Name)

	lists := Select(s, ProjectTaskLists)
	require.Len(t, lists, 3)
	assert.Equal(t, []string{"l2", "l3", "l1"}, []string{lists[0].ID, lists[1].ID, lists[2].ID})

	assert.Len(t, Select(s, SelectedTaskLists), 3)
}

func TestSelectedProjectNilWhenNoneSelected(t *testing.T) {
	assert.Nil(t, Select(New(), SelectedProject))
	assert.Empty(t, Select(New(), ProjectTaskLists))
}

func TestTasksWithUsersResolvesMissingToNil(t *testing.T) {
	s := boardStore()

	views := Select(s, TasksWithUsers)
	require.Len(t, views, 4)

	t1 := views[0]
	require.NotNil(t, t1.Owner)
	assert.Equal(t, "u1", t1.Owner.ID)
	require.Len(t, t1.Participants, 2)
	require.NotNil(t, t1.Participants[0])
	assert.Equal(t, "B", t1.Participants[0].Name)
	assert.Nil(t, t1.Participants[1])

	assert.Nil(t, views[2].Owner)
}

func TestTaskListsWithTasksGroupsByOrder(t *testing.T) {
	s := boardStore()

	grouped := Select(s, TaskListsWithTasks)
	require.Len(t, grouped, 3)
	assert.Equal(t, "To Do", grouped[0].Name)
	assert.Equal(t, "In Progress", grouped[1].Name)
	assert.Equal(t, "Done", grouped[2].Name)

	require.Len(t, grouped[0].Tasks, 2)
	assert.Equal(t, "t1", grouped[0].Tasks[0].ID)
	assert.Equal(t, "t3", grouped[0].Tasks[1].ID)
	assert.Empty(t, grouped[1].Tasks)
	require.Len(t, grouped[2].Tasks, 1)
	assert.Equal(t, "t2", grouped[2].Tasks[0].ID)
}

func TestMaxListOrderIsNumeric(t *testing.T) {
	assert.Equal(t, 3, maxListOrder([]model.TaskList{{Order: 3}, {Order: 1}, {Order: 2}}))
	assert.Equal(t, 10, maxListOrder([]model.TaskList{{Order: 10}, {Order: 2}}))
	assert.Equal(t, 0, maxListOrder(nil))

	assert.Equal(t, 3, Select(boardStore(), MaxListOrder))
}

func TestProjectMembersSkipsUnknownUsers(t *testing.T) {
	members := Select(boardStore(), ProjectMembers)
	require.Len(t, members, 2)
	assert.Equal(t, "u1", members[0].ID)
	assert.Equal(t, "u2", members[1].ID)
}

func TestCurrentUserAndUserTasks(t *testing.T) {
	s := boardStore()

	user := Select(s, CurrentUser)
	require.NotNil(t, user)
	assert.Equal(t, "a@example.com", user.Email)

	mine := Select(s, UserTasks)
	ids := make([]string, len(mine))
	for i, v := range mine {
		ids[i] = v.ID
	}
	assert.Equal(t, []string{"t1", "t3"}, ids)

	s.Dispatch(Logout{})
	assert.Nil(t, Select(s, CurrentUser))
	assert.Empty(t, Select(s, UserTasks))
}

func TestBoardBundlesSelectedProject(t *testing.T) {
	board := Select(boardStore(), Board)
	require.NotNil(t, board.Project)
	assert.Equal(t, "p1", board.Project.ID)
	assert.Len(t, board.Lists, 3)
	assert.Len(t, board.Members, 2)
}

func TestSelectorsAreMemoized(t *testing.T) {
	s := boardStore()

	first := Select(s, TaskListsWithTasks)
	s.Dispatch(Navigated{Path: "/elsewhere"})
	second := Select(s, TaskListsWithTasks)
	require.NotEmpty(t, first)
	assert.Same(t, &first[0], &second[0], "unrelated change reuses the cached view")

	s.Dispatch(TaskAdded{Task: model.Task{ID: "t5", TaskListID: "l3"}})
	third := Select(s, TaskListsWithTasks)
	assert.NotSame(t, &first[0], &third[0])
	assert.Len(t, third[1].Tasks, 1)
}

func TestMemoRecomputesOnlyWhenInputChanges(t *testing.T) {
	var calls int
	sel := memo1(ref(routerSlice), func(r *RouterState) string {
		calls++
		return r.Path
	})

	st := InitialState()
	assert.Equal(t, "/", sel(&st))
	assert.Equal(t, "/", sel(&st))
	assert.Equal(t, 1, calls)

	next := RootReducer(st, Navigated{Path: "/x"})
	assert.Equal(t, "/x", sel(&next))
	assert.Equal(t, 2, calls)
}

func TestQuoteDefaultsUntilLoaded(t *testing.T) {
	s := New()
	assert.Equal(t, model.DefaultQuote(), Select(s, Quote))

	s.Dispatch(QuoteLoaded{Quote: model.Quote{ID: "4", Content: "c", Author: "a"}})
	assert.Equal(t, "4", Select(s, Quote).ID)
}
