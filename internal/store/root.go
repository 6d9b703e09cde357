package store

// Reducer maps the previous state and an action to the next state. Reducers
// never fail: actions they do not handle leave the state untouched.
type Reducer func(State, Action) State

// MetaReducer wraps a Reducer with cross-cutting behavior
type MetaReducer func(Reducer) Reducer

// RootReducer hands each slice to its own reducer
func RootReducer(s State, a Action) State {
	return State{
		Auth:      reduceAuth(s.Auth, a),
		Quote:     reduceQuote(s.Quote, a),
		Projects:  reduceProjects(s.Projects, a),
		TaskLists: reduceTaskLists(s.TaskLists, a),
		Tasks:     reduceTasks(s.Tasks, a),
		Users:     reduceUsers(s.Users, a),
		Router:    reduceRouter(s.Router, a),
	}
}

// Compose applies metas to reducer, the first one outermost
func Compose(reducer Reducer, metas ...MetaReducer) Reducer {
	for i := len(metas) - 1; i >= 0; i-- {
		reducer = metas[i](reducer)
	}
	return reducer
}
