package effects

import (
	"context"

	"github.com/existflow/taskboard/internal/model"
	"github.com/existflow/taskboard/internal/store"
)

// Login logs the user in and navigates to the project list
func (e *Effects) Login(ctx context.Context, email, password string) (model.Auth, error) {
	auth, err := e.svc.Auth.Login(ctx, email, password)
	if err != nil {
		return model.Auth{}, e.fail(store.LoginFailed{Err: err}, err)
	}
	e.store.Dispatch(store.LoginSucceeded{Auth: auth})
	e.store.Dispatch(store.Navigated{Path: "/projects"})
	return auth, nil
}

// Register creates the account and logs it in
func (e *Effects) Register(ctx context.Context, user model.User) (model.Auth, error) {
	auth, err := e.svc.Auth.Register(ctx, user)
	if err != nil {
		return model.Auth{}, e.fail(store.RegisterFailed{Err: err}, err)
	}
	e.store.Dispatch(store.RegisterSucceeded{Auth: auth})
	e.store.Dispatch(store.Navigated{Path: "/projects"})
	return auth, nil
}

// Resume restores a saved session by fetching its user
func (e *Effects) Resume(ctx context.Context, userID, token string) (model.Auth, error) {
	user, err := e.svc.Users.GetByID(ctx, userID)
	if err != nil {
		return model.Auth{}, e.fail(store.LoginFailed{Err: err}, err)
	}
	auth := model.Auth{Token: token, UserID: user.ID, User: &user}
	e.store.Dispatch(store.LoginSucceeded{Auth: auth})
	return auth, nil
}

// Logout drops the session and every loaded record
func (e *Effects) Logout() {
	e.store.Dispatch(store.Logout{})
	e.store.Dispatch(store.Navigated{Path: "/login"})
}

// LoadQuote fetches the quote of the day. On failure the fallback quote stays.
func (e *Effects) LoadQuote(ctx context.Context) (model.Quote, error) {
	quote, err := e.svc.Quotes.Get(ctx)
	if err != nil {
		return store.Select(e.store, store.Quote), e.fail(store.QuoteFailed{Err: err}, err)
	}
	e.store.Dispatch(store.QuoteLoaded{Quote: quote})
	return quote, nil
}
