package store

import (
	"encoding/json"
	"fmt"

	"github.com/existflow/taskboard/internal/logger"
)

// WithLogoutReset replaces the state with InitialState before reducing a
// Logout, so no slice survives it.
func WithLogoutReset(next Reducer) Reducer {
	return func(s State, a Action) State {
		if _, ok := a.(Logout); ok {
			return next(InitialState(), a)
		}
		return next(s, a)
	}
}

// WithLogging logs every action with the state before and after reducing it
// at debug level. Failure actions are logged as warnings. Production builds
// get next unchanged.
func WithLogging(production bool) MetaReducer {
	return func(next Reducer) Reducer {
		if production {
			return next
		}
		return func(s State, a Action) State {
			out := next(s, a)
			if err, ok := FailureOf(a); ok {
				logger.Warn("Action failed", logger.F("action", actionName(a)), logger.F("error", err))
				return out
			}
			if logger.Enabled(logger.DEBUG) {
				logger.Debug("Action reduced",
					logger.F("action", actionName(a)),
					logger.F("before", dumpState(s)),
					logger.F("after", dumpState(out)),
				)
			}
			return out
		}
	}
}

func actionName(a Action) string {
	return fmt.Sprintf("%T", a)
}

// dumpState renders s as JSON with the session token masked
func dumpState(s State) string {
	if s.Auth != nil && s.Auth.Token != "" {
		auth := *s.Auth
		auth.Token = "***"
		s.Auth = &auth
	}
	out, err := json.Marshal(s)
	if err != nil {
		return fmt.Sprintf("%+v", s)
	}
	return string(out)
}
