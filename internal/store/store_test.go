package store

import (
	"errors"
	"sync"
	"testing"

	"github.com/existflow/taskboard/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type unknownAction struct {
	marker
}

func loggedIn() Action {
	user := model.User{ID: "u1", Email: "a@example.com", Name: "A"}
	return LoginSucceeded{Auth: model.Auth{Token: "t", UserID: "u1", User: &user}}
}

func TestUnknownActionKeepsState(t *testing.T) {
	s := New(WithLogoutReset)
	s.Dispatch(loggedIn())
	before := s.State()

	s.Dispatch(unknownAction{})
	assert.Equal(t, before, s.State())
	assert.True(t, before == s.State())
}

func TestFailureActionsKeepEntityState(t *testing.T) {
	s := New()
	s.Dispatch(ProjectsLoaded{Projects: []model.Project{{ID: "p1"}}})
	before := s.State()

	s.Dispatch(ProjectFailed{Err: errors.New("boom")})
	s.Dispatch(TaskFailed{Err: errors.New("boom")})
	assert.True(t, before == s.State())
}

func TestLogoutResetsEverySlice(t *testing.T) {
	s := NewDefault(true)
	s.Dispatch(loggedIn())
	s.Dispatch(QuoteLoaded{Quote: model.Quote{ID: "3", Content: "c"}})
	s.Dispatch(ProjectsLoaded{Projects: []model.Project{{ID: "p1", TaskLists: []string{"l1"}}}})
	s.Dispatch(ProjectSelected{Project: model.Project{ID: "p1", TaskLists: []string{"l1"}}})
	s.Dispatch(TaskListsLoaded{TaskLists: []model.TaskList{{ID: "l1", ProjectID: "p1", Order: 1}}})
	s.Dispatch(TasksLoaded{Tasks: []model.Task{{ID: "t1", TaskListID: "l1"}}})
	s.Dispatch(Navigated{Path: "/projects/p1"})

	s.Dispatch(Logout{})

	st := s.State()
	initial := InitialState()
	assert.Equal(t, *initial.Auth, *st.Auth)
	assert.Equal(t, *initial.Quote, *st.Quote)
	assert.Equal(t, *initial.Projects, *st.Projects)
	assert.Equal(t, *initial.TaskLists, *st.TaskLists)
	assert.Equal(t, *initial.Tasks, *st.Tasks)
	assert.Equal(t, *initial.Users, *st.Users)
	assert.Equal(t, *initial.Router, *st.Router)
}

func TestLogoutWithoutResetOnlyClearsAuth(t *testing.T) {
	s := New()
	s.Dispatch(loggedIn())
	s.Dispatch(ProjectsLoaded{Projects: []model.Project{{ID: "p1"}}})

	s.Dispatch(Logout{})

	st := s.State()
	assert.False(t, st.Auth.IsLoggedIn())
	assert.Equal(t, 1, st.Projects.Len())
}

func TestLoginFailedRecordsError(t *testing.T) {
	s := New()
	s.Dispatch(LoginFailed{Err: errors.New("bad credentials")})

	auth := Select(s, Auth)
	assert.False(t, auth.IsLoggedIn())
	assert.Equal(t, "bad credentials", auth.Err)
}

func TestLoadMergesOnlyNewEntities(t *testing.T) {
	s := New()
	s.Dispatch(ProjectsLoaded{Projects: []model.Project{{ID: "p1", Name: "first"}}})
	s.Dispatch(ProjectsLoaded{Projects: []model.Project{{ID: "p1", Name: "stale"}, {ID: "p2", Name: "second"}}})

	projects := Select(s, Projects)
	require.Len(t, projects, 2)
	assert.Equal(t, "first", projects[0].Name)
	assert.Equal(t, "second", projects[1].Name)

	s.Dispatch(ProjectUpdated{Project: model.Project{ID: "p1", Name: "renamed"}})
	assert.Equal(t, "renamed", Select(s, Projects)[0].Name)
}

func TestLoadOfKnownEntitiesKeepsState(t *testing.T) {
	s := New()
	s.Dispatch(TasksLoaded{Tasks: []model.Task{{ID: "t1", TaskListID: "l1", Desc: "old"}}})
	s.Dispatch(TaskListsLoaded{TaskLists: []model.TaskList{{ID: "l1", ProjectID: "p1"}}})
	s.Dispatch(ProjectsLoaded{Projects: []model.Project{{ID: "p1"}}})
	s.Dispatch(UsersLoaded{Users: []model.User{{ID: "u1"}}})
	before := s.State()

	var calls int
	s.Subscribe(func(State) { calls++ })
	s.Dispatch(TasksLoaded{Tasks: []model.Task{{ID: "t1", TaskListID: "l1", Desc: "new"}}})
	s.Dispatch(TaskListsLoaded{TaskLists: []model.TaskList{{ID: "l1", ProjectID: "p1", Name: "x"}}})
	s.Dispatch(ProjectsLoaded{Projects: []model.Project{{ID: "p1", Name: "x"}}})
	s.Dispatch(UsersLoaded{Users: []model.User{{ID: "u1", Name: "x"}}})

	assert.True(t, before == s.State(), "known entities leave every slice untouched")
	assert.Zero(t, calls)
}

func TestMergeReturnsReceiverWhenNothingIsNew(t *testing.T) {
	c := emptyCollection[model.Task]().upsert([]model.Task{{ID: "t1"}}, taskKey)

	same, added := c.merge([]model.Task{{ID: "t1", Desc: "ignored"}}, taskKey)
	assert.False(t, added)
	assert.Equal(t, c, same)
	assert.Equal(t, "", same.Entities["t1"].Desc)

	grown, added := c.merge([]model.Task{{ID: "t2"}, {ID: "t2"}}, taskKey)
	assert.True(t, added)
	assert.Equal(t, []string{"t1", "t2"}, grown.IDs)
	assert.Equal(t, 1, c.Len())
}

func TestBoardRefreshedReplacesLoadedEntities(t *testing.T) {
	s := New()
	project := model.Project{ID: "p1", Name: "Work", TaskLists: []string{"l1", "l2"}}
	s.Dispatch(ProjectSelected{Project: project})
	s.Dispatch(TaskListsLoaded{TaskLists: []model.TaskList{
		{ID: "l1", ProjectID: "p1", Name: "Todo"},
		{ID: "l2", ProjectID: "p1", Name: "Done"},
		{ID: "l9", ProjectID: "p9"},
	}})
	s.Dispatch(TasksLoaded{Tasks: []model.Task{
		{ID: "t1", TaskListID: "l1", Desc: "old"},
		{ID: "t2", TaskListID: "l1", Desc: "gone"},
		{ID: "t9", TaskListID: "l9"},
	}})
	s.Dispatch(UsersLoaded{Users: []model.User{{ID: "u1", Name: "old"}}})

	refreshed := model.Project{ID: "p1", Name: "Renamed", TaskLists: []string{"l1"}}
	s.Dispatch(BoardRefreshed{
		Project:   refreshed,
		TaskLists: []model.TaskList{{ID: "l1", ProjectID: "p1", Name: "Doing"}},
		Tasks:     []model.Task{{ID: "t1", TaskListID: "l1", Desc: "new"}},
		Users:     []model.User{{ID: "u1", Name: "new"}},
	})

	st := s.State()
	stored, _ := st.Projects.Get("p1")
	assert.Equal(t, "Renamed", stored.Name)
	assert.Equal(t, "p1", st.Projects.SelectedID)
	assert.Equal(t, []string{"l1"}, st.TaskLists.SelectedIDs)
	assert.Equal(t, []string{"l1", "l9"}, st.TaskLists.IDs)
	list, _ := st.TaskLists.Get("l1")
	assert.Equal(t, "Doing", list.Name)
	assert.Equal(t, []string{"t1", "t9"}, st.Tasks.IDs)
	task, _ := st.Tasks.Get("t1")
	assert.Equal(t, "new", task.Desc)
	user, _ := st.Users.Get("u1")
	assert.Equal(t, "new", user.Name)
}

func TestReducersDoNotMutatePreviousState(t *testing.T) {
	s := New()
	s.Dispatch(TasksLoaded{Tasks: []model.Task{{ID: "t1", TaskListID: "l1", Desc: "old"}}})
	before := s.State()

	s.Dispatch(TaskUpdated{Task: model.Task{ID: "t1", TaskListID: "l1", Desc: "new"}})
	s.Dispatch(TaskAdded{Task: model.Task{ID: "t2", TaskListID: "l1"}})

	old, ok := before.Tasks.Get("t1")
	require.True(t, ok)
	assert.Equal(t, "old", old.Desc)
	assert.Equal(t, 1, before.Tasks.Len())
	assert.Equal(t, 2, s.State().Tasks.Len())
}

func TestProjectSelectedSelectsItsLists(t *testing.T) {
	s := New()
	project := model.Project{ID: "p1", TaskLists: []string{"l1", "l2"}}
	s.Dispatch(ProjectsLoaded{Projects: []model.Project{project}})
	s.Dispatch(ProjectSelected{Project: project})

	st := s.State()
	assert.Equal(t, "p1", st.Projects.SelectedID)
	assert.Equal(t, "p1", st.TaskLists.ProjectID)
	assert.Equal(t, []string{"l1", "l2"}, st.TaskLists.SelectedIDs)
}

func TestTaskListAddedAndDeletedFollowProject(t *testing.T) {
	s := New()
	project := model.Project{ID: "p1", TaskLists: []string{"l1"}}
	s.Dispatch(ProjectSelected{Project: project})
	s.Dispatch(TaskListsLoaded{TaskLists: []model.TaskList{{ID: "l1", ProjectID: "p1", Order: 1}}})
	s.Dispatch(TasksLoaded{Tasks: []model.Task{{ID: "t1", TaskListID: "l1"}, {ID: "t2", TaskListID: "l2"}}})

	s.Dispatch(TaskListAdded{TaskList: model.TaskList{ID: "l2", ProjectID: "p1", Order: 2}})
	st := s.State()
	assert.Equal(t, []string{"l1", "l2"}, st.TaskLists.SelectedIDs)
	p, _ := st.Projects.Get("p1")
	assert.Equal(t, []string{"l1", "l2"}, p.TaskLists)

	s.Dispatch(TaskListDeleted{TaskList: model.TaskList{ID: "l1", ProjectID: "p1"}})
	st = s.State()
	assert.Equal(t, []string{"l2"}, st.TaskLists.SelectedIDs)
	p, _ = st.Projects.Get("p1")
	assert.Equal(t, []string{"l2"}, p.TaskLists)
	_, ok := st.Tasks.Get("t1")
	assert.False(t, ok, "tasks of a deleted list are dropped")
	_, ok = st.Tasks.Get("t2")
	assert.True(t, ok)
}

func TestProjectDeletedDropsListsAndTasks(t *testing.T) {
	s := New()
	project := model.Project{ID: "p1", TaskLists: []string{"l1"}}
	s.Dispatch(ProjectSelected{Project: project})
	s.Dispatch(TaskListsLoaded{TaskLists: []model.TaskList{{ID: "l1", ProjectID: "p1"}, {ID: "l9", ProjectID: "p9"}}})
	s.Dispatch(TasksLoaded{Tasks: []model.Task{{ID: "t1", TaskListID: "l1"}, {ID: "t9", TaskListID: "l9"}}})

	s.Dispatch(ProjectDeleted{Project: project})

	st := s.State()
	assert.Equal(t, 0, st.Projects.Len())
	assert.Empty(t, st.Projects.SelectedID)
	assert.Equal(t, []string{"l9"}, st.TaskLists.IDs)
	assert.Empty(t, st.TaskLists.SelectedIDs)
	assert.Equal(t, []string{"t9"}, st.Tasks.IDs)
}

func TestSubscribeAndUnsubscribe(t *testing.T) {
	s := New()
	var calls int
	unsubscribe := s.Subscribe(func(State) { calls++ })

	s.Dispatch(Navigated{Path: "/projects"})
	s.Dispatch(unknownAction{})
	assert.Equal(t, 1, calls, "unchanged state is not broadcast")

	unsubscribe()
	s.Dispatch(Navigated{Path: "/tasks"})
	assert.Equal(t, 1, calls)
}

func TestDispatchFromSubscriber(t *testing.T) {
	s := New()
	s.Subscribe(func(st State) {
		if st.Router.Path == "/login" {
			s.Dispatch(Navigated{Path: "/projects"})
		}
	})

	s.Dispatch(Navigated{Path: "/login"})
	assert.Equal(t, "/projects", Select(s, RouterPath))
}

func TestConcurrentDispatch(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Dispatch(TaskAdded{Task: model.Task{ID: string(rune('a' + i))}})
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, s.State().Tasks.Len())
}

func TestComposeOrder(t *testing.T) {
	var order []string
	tag := func(name string) MetaReducer {
		return func(next Reducer) Reducer {
			return func(s State, a Action) State {
				order = append(order, name)
				return next(s, a)
			}
		}
	}

	reducer := Compose(RootReducer, tag("outer"), tag("inner"))
	reducer(InitialState(), Logout{})
	assert.Equal(t, []string{"outer", "inner"}, order)
}
