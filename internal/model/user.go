package model

// User represents an account of the application
type User struct {
	ID         string   `json:"id,omitempty"`
	Email      string   `json:"email"`
	Name       string   `json:"name"`
	Password   string   `json:"password,omitempty"`
	Avatar     string   `json:"avatar,omitempty"`
	ProjectIDs []string `json:"projectIds,omitempty"`
}

// HasProject returns true if the user references projectID
func (u *User) HasProject(projectID string) bool {
	for _, id := range u.ProjectIDs {
		if id == projectID {
			return true
		}
	}
	return false
}

// Auth is the session of the logged-in user
type Auth struct {
	Token  string `json:"token,omitempty"`
	UserID string `json:"userId,omitempty"`
	User   *User  `json:"user,omitempty"`
	Err    string `json:"err,omitempty"`
}

// IsLoggedIn returns true if the session carries a user
func (a *Auth) IsLoggedIn() bool {
	return a.UserID != ""
}
