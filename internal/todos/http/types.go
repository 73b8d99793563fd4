package http

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/projectpulse/pm-backend/internal/domain"
	"github.com/projectpulse/pm-backend/internal/todos/service"
)

// Handler bundles the dependencies for todo HTTP endpoints.
type Handler struct {
	svc *service.TodoService
}

func New(svc *service.TodoService) *Handler {
	return &Handler{svc: svc}
}

type createReq struct {
	Name   string        `json:"name" binding:"required"`
	Status domain.Status `json:"status"`
	TaskID string        `json:"task_id" binding:"required"`
}

type updateReq struct {
	Name   *string        `json:"name"`
	Status *domain.Status `json:"status"`
}

// parseInclude reads ?include=task.
func parseInclude(c *gin.Context) service.Include {
	var inc service.Include
	for _, part := range strings.Split(c.Query("include"), ",") {
		if strings.TrimSpace(part) == "task" {
			inc.Task = true
		}
	}
	return inc
}
