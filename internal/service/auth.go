package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/url"

	"github.com/existflow/taskboard/internal/api"
	"github.com/existflow/taskboard/internal/logger"
	"github.com/existflow/taskboard/internal/model"
)

// AuthService registers and logs in users against the users collection
type AuthService struct {
	client *api.Client
}

// NewAuthService creates an auth service on top of client
func NewAuthService(client *api.Client) *AuthService {
	return &AuthService{client: client}
}

// Register creates user unless the email is already taken
func (s *AuthService) Register(ctx context.Context, user model.User) (model.Auth, error) {
	var existing []model.User
	if err := s.client.Get(ctx, s.client.URL(url.Values{"email": {user.Email}}, usersPath), &existing); err != nil {
		return model.Auth{}, err
	}
	if len(existing) > 0 {
		return model.Auth{}, ErrEmailExists
	}

	user.ID = ""
	var created model.User
	if err := s.client.Post(ctx, s.client.URL(nil, usersPath), user, &created); err != nil {
		return model.Auth{}, err
	}
	logger.Info("Registered user", logger.F("user", created.ID))
	return newAuth(created)
}

// Login looks up the user matching email and password
func (s *AuthService) Login(ctx context.Context, email, password string) (model.Auth, error) {
	query := url.Values{"email": {email}, "password": {password}}
	var users []model.User
	if err := s.client.Get(ctx, s.client.URL(query, usersPath), &users); err != nil {
		return model.Auth{}, err
	}
	if len(users) == 0 {
		return model.Auth{}, ErrInvalidCredentials
	}
	return newAuth(users[0])
}

func newAuth(user model.User) (model.Auth, error) {
	token, err := generateToken()
	if err != nil {
		return model.Auth{}, err
	}
	user.Password = ""
	return model.Auth{Token: token, UserID: user.ID, User: &user}, nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
