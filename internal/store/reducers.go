package store

import (
	"github.com/existflow/taskboard/internal/model"
)

func reduceAuth(s *model.Auth, a Action) *model.Auth {
	switch a := a.(type) {
	case LoginSucceeded:
		auth := a.Auth
		return &auth
	case RegisterSucceeded:
		auth := a.Auth
		return &auth
	case LoginFailed:
		return &model.Auth{Err: a.Err.Error()}
	case RegisterFailed:
		return &model.Auth{Err: a.Err.Error()}
	case UserUpdated:
		if s.UserID != a.User.ID {
			return s
		}
		next := *s
		user := a.User
		next.User = &user
		return &next
	case Logout:
		return &model.Auth{}
	}
	return s
}

func reduceQuote(s *model.Quote, a Action) *model.Quote {
	switch a := a.(type) {
	case QuoteLoaded:
		q := a.Quote
		return &q
	}
	return s
}

func reduceProjects(s *ProjectState, a Action) *ProjectState {
	switch a := a.(type) {
	case ProjectsLoaded:
		merged, added := s.merge(a.Projects, projectKey)
		if !added {
			return s
		}
		return &ProjectState{Collection: merged, SelectedID: s.SelectedID}
	case ProjectAdded:
		return &ProjectState{Collection: s.upsert([]model.Project{a.Project}, projectKey), SelectedID: s.SelectedID}
	case ProjectUpdated:
		return &ProjectState{Collection: s.upsert([]model.Project{a.Project}, projectKey), SelectedID: s.SelectedID}
	case MembersInvited:
		return &ProjectState{Collection: s.upsert([]model.Project{a.Project}, projectKey), SelectedID: s.SelectedID}
	case ProjectSelected:
		return &ProjectState{Collection: s.upsert([]model.Project{a.Project}, projectKey), SelectedID: a.Project.ID}
	case BoardRefreshed:
		return &ProjectState{Collection: s.upsert([]model.Project{a.Project}, projectKey), SelectedID: a.Project.ID}
	case ProjectDeleted:
		next := &ProjectState{
			Collection: s.remove(func(p model.Project) bool { return p.ID == a.Project.ID }),
			SelectedID: s.SelectedID,
		}
		if next.SelectedID == a.Project.ID {
			next.SelectedID = ""
		}
		return next
	case TaskListAdded:
		return &ProjectState{
			Collection: s.update(a.TaskList.ProjectID, func(p model.Project) model.Project {
				p.TaskLists = appendID(p.TaskLists, a.TaskList.ID)
				return p
			}),
			SelectedID: s.SelectedID,
		}
	case TaskListDeleted:
		return &ProjectState{
			Collection: s.update(a.TaskList.ProjectID, func(p model.Project) model.Project {
				p.TaskLists = dropID(p.TaskLists, a.TaskList.ID)
				return p
			}),
			SelectedID: s.SelectedID,
		}
	}
	return s
}

func reduceTaskLists(s *TaskListState, a Action) *TaskListState {
	switch a := a.(type) {
	case TaskListsLoaded:
		merged, added := s.merge(a.TaskLists, taskListKey)
		if !added {
			return s
		}
		return s.with(merged)
	case TaskListAdded:
		next := s.with(s.upsert([]model.TaskList{a.TaskList}, taskListKey))
		if a.TaskList.ProjectID == s.ProjectID {
			next.SelectedIDs = appendID(s.SelectedIDs, a.TaskList.ID)
		}
		return next
	case TaskListUpdated:
		return s.with(s.upsert([]model.TaskList{a.TaskList}, taskListKey))
	case TaskListsSwapped:
		return s.with(s.upsert(a.TaskLists, taskListKey))
	case TaskListDeleted:
		next := s.with(s.remove(func(l model.TaskList) bool { return l.ID == a.TaskList.ID }))
		next.SelectedIDs = dropID(s.SelectedIDs, a.TaskList.ID)
		return next
	case ProjectSelected:
		ids := make([]string, len(a.Project.TaskLists))
		copy(ids, a.Project.TaskLists)
		return &TaskListState{Collection: s.Collection, ProjectID: a.Project.ID, SelectedIDs: ids}
	case BoardRefreshed:
		// lists of the project missing from the refresh were deleted remotely
		kept := s.remove(func(l model.TaskList) bool {
			return l.ProjectID == a.Project.ID && !containsKey(a.TaskLists, taskListKey, l.ID)
		})
		ids := make([]string, len(a.Project.TaskLists))
		copy(ids, a.Project.TaskLists)
		return &TaskListState{
			Collection:  kept.upsert(a.TaskLists, taskListKey),
			ProjectID:   a.Project.ID,
			SelectedIDs: ids,
		}
	case ProjectDeleted:
		next := s.with(s.remove(func(l model.TaskList) bool {
			return l.ProjectID == a.Project.ID || containsID(a.Project.TaskLists, l.ID)
		}))
		if s.ProjectID == a.Project.ID {
			next.ProjectID = ""
			next.SelectedIDs = []string{}
		}
		return next
	}
	return s
}

// with returns a copy of s holding c
func (s *TaskListState) with(c Collection[model.TaskList]) *TaskListState {
	return &TaskListState{Collection: c, ProjectID: s.ProjectID, SelectedIDs: s.SelectedIDs}
}

func reduceTasks(s *TaskState, a Action) *TaskState {
	switch a := a.(type) {
	case TasksLoaded:
		merged, added := s.merge(a.Tasks, taskKey)
		if !added {
			return s
		}
		return &TaskState{merged}
	case TaskAdded:
		return &TaskState{s.upsert([]model.Task{a.Task}, taskKey)}
	case TaskUpdated:
		return &TaskState{s.upsert([]model.Task{a.Task}, taskKey)}
	case TaskCompleted:
		return &TaskState{s.upsert([]model.Task{a.Task}, taskKey)}
	case TaskMoved:
		return &TaskState{s.upsert([]model.Task{a.Task}, taskKey)}
	case TasksMoved:
		return &TaskState{s.upsert(a.Tasks, taskKey)}
	case TaskDeleted:
		return &TaskState{s.remove(func(t model.Task) bool { return t.ID == a.Task.ID })}
	case TaskListDeleted:
		return &TaskState{s.remove(func(t model.Task) bool { return t.TaskListID == a.TaskList.ID })}
	case ProjectDeleted:
		return &TaskState{s.remove(func(t model.Task) bool { return containsID(a.Project.TaskLists, t.TaskListID) })}
	case BoardRefreshed:
		kept := s.remove(func(t model.Task) bool {
			return containsID(a.Project.TaskLists, t.TaskListID) && !containsKey(a.Tasks, taskKey, t.ID)
		})
		return &TaskState{kept.upsert(a.Tasks, taskKey)}
	}
	return s
}

func reduceUsers(s *UserState, a Action) *UserState {
	switch a := a.(type) {
	case UsersLoaded:
		merged, added := s.merge(a.Users, userKey)
		if !added {
			return s
		}
		return &UserState{merged}
	case BoardRefreshed:
		return &UserState{s.upsert(a.Users, userKey)}
	case UserUpdated:
		return &UserState{s.upsert([]model.User{a.User}, userKey)}
	case UsersUpdated:
		return &UserState{s.upsert(a.Users, userKey)}
	case LoginSucceeded:
		return withAuthUser(s, a.Auth)
	case RegisterSucceeded:
		return withAuthUser(s, a.Auth)
	}
	return s
}

func withAuthUser(s *UserState, auth model.Auth) *UserState {
	if auth.User == nil {
		return s
	}
	return &UserState{s.upsert([]model.User{*auth.User}, userKey)}
}

func reduceRouter(s *RouterState, a Action) *RouterState {
	switch a := a.(type) {
	case Navigated:
		params := make(map[string]string, len(a.Params))
		for k, v := range a.Params {
			params[k] = v
		}
		return &RouterState{Path: a.Path, Params: params}
	}
	return s
}
