package model

// Project groups task lists and the users working on them
type Project struct {
	ID        string   `json:"id,omitempty"`
	Name      string   `json:"name"`
	Desc      string   `json:"desc,omitempty"`
	CoverImg  string   `json:"coverImg,omitempty"`
	Members   []string `json:"members,omitempty"`
	TaskLists []string `json:"taskLists,omitempty"`
}

// HasMember returns true if userID is one of the project members
func (p *Project) HasMember(userID string) bool {
	for _, id := range p.Members {
		if id == userID {
			return true
		}
	}
	return false
}

// TaskList is a column of tasks inside a project
type TaskList struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	ProjectID string `json:"projectId"`
	Order     int    `json:"order"`
}

// Default task list names created for every new project
var DefaultTaskListNames = []string{"To Do", "In Progress", "Done"}
