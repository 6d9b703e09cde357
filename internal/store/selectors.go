package store

import (
	"sort"

	"github.com/existflow/taskboard/internal/model"
)

var (
	authSlice      Selector[*model.Auth]    = func(s *State) *model.Auth { return s.Auth }
	quoteSlice     Selector[*model.Quote]   = func(s *State) *model.Quote { return s.Quote }
	projectsSlice  Selector[*ProjectState]  = func(s *State) *ProjectState { return s.Projects }
	taskListsSlice Selector[*TaskListState] = func(s *State) *TaskListState { return s.TaskLists }
	tasksSlice     Selector[*TaskState]     = func(s *State) *TaskState { return s.Tasks }
	usersSlice     Selector[*UserState]     = func(s *State) *UserState { return s.Users }
	routerSlice    Selector[*RouterState]   = func(s *State) *RouterState { return s.Router }
)

// BoardView is everything needed to render the selected project
type BoardView struct {
	Project *model.Project
	Lists   []model.TaskListView
	Members []model.User
}

var (
	// Projects lists the loaded projects in load order
	Projects = memo1(ref(projectsSlice), func(p *ProjectState) []model.Project {
		return p.List()
	})

	// SelectedProject is the selected project, nil when none is selected
	SelectedProject = memo1(ref(projectsSlice), func(p *ProjectState) *model.Project {
		project, ok := p.Get(p.SelectedID)
		if !ok {
			return nil
		}
		return &project
	})

	// ProjectTaskLists lists the loaded task lists of the selected project by order
	ProjectTaskLists = memo2(ref(projectsSlice), ref(taskListsSlice), func(p *ProjectState, l *TaskListState) []model.TaskList {
		var lists []model.TaskList
		for _, list := range l.List() {
			if p.SelectedID != "" && list.ProjectID == p.SelectedID {
				lists = append(lists, list)
			}
		}
		sortByOrder(lists)
		return lists
	})

	// SelectedTaskLists lists the selected task lists that are loaded
	SelectedTaskLists = memo1(ref(taskListsSlice), func(l *TaskListState) []model.TaskList {
		var lists []model.TaskList
		for _, id := range l.SelectedIDs {
			if list, ok := l.Get(id); ok {
				lists = append(lists, list)
			}
		}
		return lists
	})

	// TasksWithUsers joins every task with its owner and participants. Unknown
	// user ids resolve to nil.
	TasksWithUsers = memo2(ref(tasksSlice), ref(usersSlice), func(t *TaskState, u *UserState) []model.TaskView {
		users := u.Entities
		lookup := func(id string) *model.User {
			user, ok := users[id]
			if !ok {
				return nil
			}
			return &user
		}

		views := make([]model.TaskView, 0, t.Len())
		for _, task := range t.List() {
			view := model.TaskView{Task: task, Owner: lookup(task.OwnerID)}
			if len(task.ParticipantIDs) > 0 {
				view.Participants = make([]*model.User, len(task.ParticipantIDs))
				for i, id := range task.ParticipantIDs {
					view.Participants[i] = lookup(id)
				}
			}
			views = append(views, view)
		}
		return views
	})

	// TaskListsWithTasks groups the tasks under the selected lists, sorted by order
	TaskListsWithTasks = memo2(refSlice(SelectedTaskLists), refSlice(TasksWithUsers), func(lists []model.TaskList, tasks []model.TaskView) []model.TaskListView {
		sorted := make([]model.TaskList, len(lists))
		copy(sorted, lists)
		sortByOrder(sorted)

		byList := make(map[string][]model.TaskView, len(sorted))
		for _, t := range tasks {
			byList[t.TaskListID] = append(byList[t.TaskListID], t)
		}

		views := make([]model.TaskListView, len(sorted))
		for i, list := range sorted {
			views[i] = model.TaskListView{TaskList: list, Tasks: byList[list.ID]}
		}
		return views
	})

	// MaxListOrder is the largest order among the selected lists, 0 when none
	MaxListOrder = memo1(refSlice(SelectedTaskLists), maxListOrder)

	// ProjectMembers lists the loaded users that are members of the selected
	// project, in member order
	ProjectMembers = memo2(ref(projectsSlice), ref(usersSlice), func(p *ProjectState, u *UserState) []model.User {
		project, ok := p.Get(p.SelectedID)
		if !ok {
			return nil
		}
		var members []model.User
		for _, id := range project.Members {
			if user, ok := u.Get(id); ok {
				members = append(members, user)
			}
		}
		return members
	})

	// CurrentUser is the logged-in user, nil when logged out
	CurrentUser = memo2(ref(authSlice), ref(usersSlice), func(a *model.Auth, u *UserState) *model.User {
		if !a.IsLoggedIn() {
			return nil
		}
		if user, ok := u.Get(a.UserID); ok {
			return &user
		}
		if a.User != nil {
			user := *a.User
			return &user
		}
		return nil
	})

	// UserTasks lists the tasks the logged-in user owns or participates in
	UserTasks = memo2(ref(authSlice), refSlice(TasksWithUsers), func(a *model.Auth, tasks []model.TaskView) []model.TaskView {
		if !a.IsLoggedIn() {
			return nil
		}
		var mine []model.TaskView
		for _, t := range tasks {
			if t.Involves(a.UserID) {
				mine = append(mine, t)
			}
		}
		return mine
	})

	// Board bundles the selected project with its lists and members
	Board = memo3(ref(SelectedProject), refSlice(TaskListsWithTasks), refSlice(ProjectMembers),
		func(p *model.Project, lists []model.TaskListView, members []model.User) BoardView {
			return BoardView{Project: p, Lists: lists, Members: members}
		})
)

var (
	// Quote is the quote of the day
	Quote Selector[model.Quote] = func(s *State) model.Quote { return *quoteSlice(s) }

	// Auth is the current session
	Auth Selector[model.Auth] = func(s *State) model.Auth { return *authSlice(s) }

	// RouterPath is the current navigation path
	RouterPath Selector[string] = func(s *State) string { return routerSlice(s).Path }
)

// RouterParam returns a navigation parameter
func RouterParam(name string) Selector[string] {
	return func(s *State) string {
		return routerSlice(s).Params[name]
	}
}

func maxListOrder(lists []model.TaskList) int {
	highest := 0
	for _, l := range lists {
		if l.Order > highest {
			highest = l.Order
		}
	}
	return highest
}

func sortByOrder(lists []model.TaskList) {
	sort.SliceStable(lists, func(i, j int) bool {
		return lists[i].Order < lists[j].Order
	})
}
