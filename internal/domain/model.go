package domain

import "time"

// Status is the completion state shared by tasks and todos.
type Status string

const (
	StatusComplete   Status = "complete"
	StatusInProgress Status = "in progress"
)

func (s Status) Valid() bool {
	return s == StatusComplete || s == StatusInProgress
}

// Role is a team member's function on a project.
type Role string

const (
	RoleProjectManager    Role = "Project Manager"
	RoleBackendDeveloper  Role = "Backend Developer"
	RoleFrontendDeveloper Role = "Frontend Developer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleProjectManager, RoleBackendDeveloper, RoleFrontendDeveloper:
		return true
	}
	return false
}

// Client owns projects. Deleting a client is blocked while any project
// still references it.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Project groups tasks for a client. Progress is derived from the task set
// and only ever written by the progress calculator.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Progress  int       `json:"progress"`
	TaskIDs   []string  `json:"task_ids"`
	ClientID  string    `json:"client_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Hydrated relations, filled only when requested.
	Client *Client `json:"client,omitempty"`
	Tasks  []Task  `json:"tasks,omitempty"`
}

// Task belongs to exactly one project and one team member.
type Task struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Status           Status    `json:"status"`
	ProjectID        string    `json:"project_id"`
	AssignedMemberID string    `json:"assigned_member_id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	Project        *Project    `json:"project,omitempty"`
	AssignedMember *TeamMember `json:"assigned_member,omitempty"`
}

// Todo is the smallest unit of work, owned by a task.
type Todo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    Status    `json:"status"`
	TaskID    string    `json:"task_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Task *Task `json:"task,omitempty"`
}

// TeamMember can be assigned to tasks. Deleting a member is blocked while
// any task still references it.
type TeamMember struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
