package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httpapi "github.com/projectpulse/pm-backend/internal/api/http"
	"github.com/projectpulse/pm-backend/internal/domain"
	"github.com/projectpulse/pm-backend/internal/projects/service"
)

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.BadRequest(c, "invalid body")
		return
	}

	p, err := h.svc.Create(c.Request.Context(), &domain.Project{
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		ClientID:  req.ClientID,
	})
	if err != nil {
		httpapi.Fail(c, err)
		return
	}
	httpapi.Success(c, http.StatusCreated, p)
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
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"), parseInclude(c))
	if err != nil {
		httpapi.Fail(c, err)
		return
	}
	httpapi.Success(c, http.StatusOK, p)
}

func (h *Handler) update(c *gin.Context) {
	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.BadRequest(c, "invalid body")
		return
	}

	p, err := h.svc.Update(c.Request.Context(), c.Param("id"), service.ProjectUpdate{
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		ClientID:  req.ClientID,
	})
	if err != nil {
		httpapi.Fail(c, err)
		return
	}
	httpapi.Success(c, http.StatusOK, p)
}

func (h *Handler) recalculateProgress(c *gin.Context) {
	p, err := h.svc.RecalculateProgress(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpapi.Fail(c, err)
		return
	}
	httpapi.Success(c, http.StatusOK, p)
}

func (h *Handler) delete(c *gin.Context) {
	res, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpapi.Fail(c, err)
		return
	}
	httpapi.Success(c, http.StatusOK, res)
}
