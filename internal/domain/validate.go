package domain

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const (
	maxNameLen       = 200
	maxAddressLen    = 500
	maxMemberNameLen = 100
)

var emailRe = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// ParseID rejects malformed identifiers before they reach the store.
func ParseID(id string) (string, error) {
	u, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", NewValidationError("invalid id format")
	}
	return u.String(), nil
}

func (c *Client) Validate() error {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "Client name is required")
	}
	if len(c.Name) > maxNameLen {
		errs = append(errs, "Client name cannot exceed 200 characters")
	}
	if strings.TrimSpace(c.Address) == "" {
		errs = append(errs, "Address is required")
	}
	if len(c.Address) > maxAddressLen {
		errs = append(errs, "Address cannot exceed 500 characters")
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

func (p *Project) Validate() error {
	var errs []string
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, "Project name is required")
	}
	if len(p.Name) > maxNameLen {
		errs = append(errs, "Project name cannot exceed 200 characters")
	}
	if p.StartDate.IsZero() {
		errs = append(errs, "Start date is required")
	}
	if p.EndDate.IsZero() {
		errs = append(errs, "End date is required")
	}
	if !p.StartDate.IsZero() && !p.EndDate.IsZero() && !p.EndDate.After(p.StartDate) {
		errs = append(errs, "End date must be after start date")
	}
	if strings.TrimSpace(p.ClientID) == "" {
		errs = append(errs, "Client is required")
	}
	if p.Progress < 0 || p.Progress > 100 {
		errs = append(errs, "Progress must be between 0 and 100")
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

func (t *Task) Validate() error {
	var errs []string
	if strings.TrimSpace(t.Name) == "" {
		errs = append(errs, "Task name is required")
	}
	if len(t.Name) > maxNameLen {
		errs = append(errs, "Task name cannot exceed 200 characters")
	}
	if !t.Status.Valid() {
		errs = append(errs, "Status must be either 'complete' or 'in progress'")
	}
	if strings.TrimSpace(t.ProjectID) == "" {
		errs = append(errs, "Project is required")
	}
	if strings.TrimSpace(t.AssignedMemberID) == "" {
		errs = append(errs, "Assigned team member is required")
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

func (t *Todo) Validate() error {
	var errs []string
	if strings.TrimSpace(t.Name) == "" {
		errs = append(errs, "Todo name is required")
	}
	if len(t.Name) > maxNameLen {
		errs = append(errs, "Todo name cannot exceed 200 characters")
	}
	if !t.Status.Valid() {
		errs = append(errs, "Status must be either 'complete' or 'in progress'")
	}
	if strings.TrimSpace(t.TaskID) == "" {
		errs = append(errs, "Task is required")
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

func (m *TeamMember) Validate() error {
	var errs []string
	if strings.TrimSpace(m.Name) == "" {
		errs = append(errs, "Team member name is required")
	}
	if len(m.Name) > maxMemberNameLen {
		errs = append(errs, "Name cannot exceed 100 characters")
	}
	if !m.Role.Valid() {
		errs = append(errs, "Role must be one of the predefined roles")
	}
	if strings.TrimSpace(m.Email) == "" {
		errs = append(errs, "Email is required")
	} else if !emailRe.MatchString(strings.ToLower(strings.TrimSpace(m.Email))) {
		errs = append(errs, "Please enter a valid email")
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
