package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	t.Run("accepts a uuid", func(t *testing.T) {
		id := uuid.NewString()
		got, err := ParseID(id)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := ParseID("not-an-id")
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	})
}

func TestClientValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		c := &Client{Name: "Acme", Address: "1 Main St"}
		require.NoError(t, c.Validate())
	})

	t.Run("missing fields", func(t *testing.T) {
		c := &Client{}
		err := c.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Client name is required")
		assert.Contains(t, err.Error(), "Address is required")
	})

	t.Run("length bounds", func(t *testing.T) {
		c := &Client{
			Name:    strings.Repeat("x", 201),
			Address: strings.Repeat("y", 501),
		}
		err := c.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed 200")
		assert.Contains(t, err.Error(), "cannot exceed 500")
	})
}

func TestProjectValidate(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("valid", func(t *testing.T) {
		p := &Project{
			Name:      "Launch",
			StartDate: start,
			EndDate:   start.AddDate(0, 3, 0),
			ClientID:  uuid.NewString(),
		}
		require.NoError(t, p.Validate())
	})

	t.Run("end date must be after start date", func(t *testing.T) {
		p := &Project{
			Name:      "Launch",
			StartDate: start,
			EndDate:   start,
			ClientID:  uuid.NewString(),
		}
		err := p.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "End date must be after start date")
	})

	t.Run("client required", func(t *testing.T) {
		p := &Project{Name: "Launch", StartDate: start, EndDate: start.AddDate(0, 1, 0)}
		err := p.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Client is required")
	})
}

func TestTaskValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		task := &Task{
			Name:             "Build API",
			Status:           StatusInProgress,
			ProjectID:        uuid.NewString(),
			AssignedMemberID: uuid.NewString(),
		}
		require.NoError(t, task.Validate())
	})

	t.Run("bad status", func(t *testing.T) {
		task := &Task{
			Name:             "Build API",
			Status:           "done",
			ProjectID:        uuid.NewString(),
			AssignedMemberID: uuid.NewString(),
		}
		err := task.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Status must be either")
	})

	t.Run("missing references", func(t *testing.T) {
		task := &Task{Name: "Build API", Status: StatusInProgress}
		err := task.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Project is required")
		assert.Contains(t, err.Error(), "Assigned team member is required")
	})
}

func TestTeamMemberValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		m := &TeamMember{Name: "Dana", Role: RoleBackendDeveloper, Email: "dana@example.com"}
		require.NoError(t, m.Validate())
	})

	t.Run("bad role", func(t *testing.T) {
		m := &TeamMember{Name: "Dana", Role: "Intern", Email: "dana@example.com"}
		err := m.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "predefined roles")
	})

	t.Run("bad email", func(t *testing.T) {
		for _, email := range []string{"dana", "dana@", "@example.com", "dana example@x.com"} {
			m := &TeamMember{Name: "Dana", Role: RoleProjectManager, Email: email}
			err := m.Validate()
			require.Error(t, err, email)
			assert.Contains(t, err.Error(), "valid email")
		}
	})

	t.Run("name bound", func(t *testing.T) {
		m := &TeamMember{
			Name:  strings.Repeat("x", 101),
			Role:  RoleFrontendDeveloper,
			Email: "x@example.com",
		}
		err := m.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed 100")
	})
}

func TestStatusAndRole(t *testing.T) {
	assert.True(t, StatusComplete.Valid())
	assert.True(t, StatusInProgress.Valid())
	assert.False(t, Status("finished").Valid())

	assert.True(t, RoleProjectManager.Valid())
	assert.False(t, Role("Designer").Valid())
}
