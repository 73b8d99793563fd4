package http

import "github.com/projectpulse/pm-backend/internal/clients/service"

// Handler bundles the dependencies for client HTTP endpoints.
type Handler struct {
	svc *service.ClientService
}

func New(svc *service.ClientService) *Handler {
	return &Handler{svc: svc}
}

type createReq struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
}

type updateReq struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
}
