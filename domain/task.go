package domain

import "time"

// Task statuses. Transitions are unrestricted: any status may be written over
// any other by an authorized caller.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// Task is the central work item. ProjectID, AssignedTo and CreatedBy are
// loose string references resolved into the *Ref fields at read time.
type Task struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Status      string      `json:"status"`
	ProjectID   string      `json:"-"`
	AssignedTo  string      `json:"-"`
	CreatedBy   string      `json:"-"`
	Project     *ProjectRef `json:"project,omitempty"`
	Assignee    *UserRef    `json:"assignedTo,omitempty"`
	Creator     *UserRef    `json:"createdBy,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.Status == StatusCompleted
}

// ValidStatus reports whether the given status is one of the three known values.
func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}
