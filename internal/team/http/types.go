package http

import (
	"github.com/projectpulse/pm-backend/internal/domain"
	"github.com/projectpulse/pm-backend/internal/team/service"
)

// Handler bundles the dependencies for team member HTTP endpoints.
type Handler struct {
	svc *service.MemberService
}

func New(svc *service.MemberService) *Handler {
	return &Handler{svc: svc}
}

type createReq struct {
	Name  string      `json:"name" binding:"required"`
	Role  domain.Role `json:"role" binding:"required"`
	Email string      `json:"email" binding:"required"`
}

type updateReq struct {
	Name  *string      `json:"name"`
	Role  *domain.Role `json:"role"`
	Email *string      `json:"email"`
}
