package http

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/projectpulse/pm-backend/internal/domain"
	"github.com/projectpulse/pm-backend/internal/tasks/service"
)

// Handler bundles the dependencies for task HTTP endpoints.
type Handler struct {
	svc *service.TaskService
}

func New(svc *service.TaskService) *Handler {
	return &Handler{svc: svc}
}

type createReq struct {
	Name             string        `json:"name" binding:"required"`
	Status           domain.Status `json:"status"`
	ProjectID        string        `json:"project_id" binding:"required"`
	AssignedMemberID string        `json:"assigned_member_id" binding:"required"`
}

type updateReq struct {
	Name             *string        `json:"name"`
	Status           *domain.Status `json:"status"`
	AssignedMemberID *string        `json:"assigned_member_id"`
}

// parseInclude reads ?include=project,assigned_member.
func parseInclude(c *gin.Context) service.Include {
	var inc service.Include
	for _, part := range strings.Split(c.Query("include"), ",") {
		switch strings.TrimSpace(part) {
		case "project":
			inc.Project = true
		case "assigned_member":
			inc.Member = true
		}
	}
	return inc
}
