package transport

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Manager     string `json:"manager"`
}

type AssignProjectRequest struct {
	ManagerID string `json:"managerId"`
}

type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Project     string `json:"project"`
	AssignedTo  string `json:"assignedTo"`
}

// EditTaskRequest is a partial update; absent fields stay untouched.
type EditTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Project     *string `json:"project"`
	AssignedTo  *string `json:"assignedTo"`
}

type AssignTaskRequest struct {
	AssignedTo string `json:"assignedTo"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}
