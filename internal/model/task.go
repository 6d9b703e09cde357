package model

import "time"

// Priority levels for tasks
const (
	PriorityUrgent = 1
	PriorityHigh   = 2
	PriorityNormal = 3
)

// Task represents a single work item inside a task list
type Task struct {
	ID             string     `json:"id,omitempty"`
	TaskListID     string     `json:"taskListId"`
	Desc           string     `json:"desc"`
	Completed      bool       `json:"completed"`
	Priority       int        `json:"priority"`
	DueDate        *time.Time `json:"dueDate,omitempty"`
	Reminder       *time.Time `json:"reminder,omitempty"`
	Remark         string     `json:"remark,omitempty"`
	CreateDate     time.Time  `json:"createDate"`
	OwnerID        string     `json:"ownerId,omitempty"`
	ParticipantIDs []string   `json:"participantIds,omitempty"`
}

// NewTask creates a new task with defaults
func NewTask(taskListID, desc, ownerID string) Task {
	return Task{
		TaskListID:     taskListID,
		Desc:           desc,
		Priority:       PriorityNormal,
		CreateDate:     time.Now().UTC(),
		OwnerID:        ownerID,
		ParticipantIDs: []string{},
	}
}

// IsOverdue returns true if the task is open and past its due date
func (t *Task) IsOverdue() bool {
	if t.DueDate == nil || t.Completed {
		return false
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return t.DueDate.Before(today)
}

// Involves returns true if userID owns or participates in the task
func (t *Task) Involves(userID string) bool {
	if t.OwnerID == userID {
		return true
	}
	for _, id := range t.ParticipantIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// TaskView is a task joined with its owner and participant records.
// Owner and entries of Participants are nil when the user is not loaded.
type TaskView struct {
	Task
	Owner        *User   `json:"owner"`
	Participants []*User `json:"participants"`
}

// TaskListView is a task list with the tasks it owns
type TaskListView struct {
	TaskList
	Tasks []TaskView `json:"tasks"`
}
