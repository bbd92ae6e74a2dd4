package domain

import "time"

// Project groups tasks under a single manager. ManagerID is a loose string
// reference resolved into Manager at read time.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ManagerID   string    `json:"-"`
	Manager     *UserRef  `json:"manager,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProjectRef is the populated summary embedded in task payloads.
type ProjectRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
