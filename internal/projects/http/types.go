package http

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/projectpulse/pm-backend/internal/projects/service"
)

// Handler bundles the dependencies for project HTTP endpoints.
type Handler struct {
	svc *service.ProjectService
}

func New(svc *service.ProjectService) *Handler {
	return &Handler{svc: svc}
}

type createReq struct {
	Name      string    `json:"name" binding:"required"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
	ClientID  string    `json:"client_id" binding:"required"`
}

type updateReq struct {
	Name      *string    `json:"name"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	ClientID  *string    `json:"client_id"`
}

// parseInclude reads ?include=client,tasks.
func parseInclude(c *gin.Context) service.Include {
	var inc service.Include
	for _, part := range strings.Split(c.Query("include"), ",") {
		switch strings.TrimSpace(part) {
		case "client":
			inc.Client = true
		case "tasks":
			inc.Tasks = true
		}
	}
	return inc
}
