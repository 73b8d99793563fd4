package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httpapi "github.com/projectpulse/pm-backend/internal/api/http"
	"github.com/projectpulse/pm-backend/internal/domain"
	"github.com/projectpulse/pm-backend/internal/tasks/service"
)

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.BadRequest(c, "invalid body")
		return
	}

	t, err := h.svc.Create(c.Request.Context(), &domain.Task{
		Name:             req.Name,
		Status:           req.Status,
		ProjectID:        req.ProjectID,
		AssignedMemberID: req.AssignedMemberID,
	})
	if err != nil {
		httpapi.Fail(c, err)
		return
	}
	httpapi.Success(c, http.StatusCreated, t)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), parseInclude(c))
	if err != nil {
		httpapi.Fail(c, err)
		return
	}
	httpapi.Success(c, http.StatusOK, items)
}

func (h *Handler) get(c *gin.Context) {
	t, err := h.svc.Get(c.Request.Context(), c.Param("id"), parseInclude(c))
	if err != nil {
		httpapi.Fail(c, err)
		return
	}
	httpapi.Success(c, http.StatusOK, t)
}

func (h *Handler) update(c *gin.Context) {
	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.BadRequest(c, "invalid body")
		return
	}

	t, err := h.svc.Update(c.Request.Context(), c.Param("id"), service.TaskUpdate{
		Name:             req.Name,
		Status:           req.Status,
		AssignedMemberID: req.AssignedMemberID,
	})
	if err != nil {
		httpapi.Fail(c, err)
		return
	}
	httpapi.Success(c, http.StatusOK, t)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httpapi.Fail(c, err)
		return
	}
	httpapi.Success(c, http.StatusOK, gin.H{})
}
