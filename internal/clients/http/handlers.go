package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httpapi "github.com/projectpulse/pm-backend/internal/api/http"
	"github.com/projectpulse/pm-backend/internal/clients/service"
	"github.com/projectpulse/pm-backend/internal/domain"
)

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.BadRequest(c, "invalid body")
		return
	}

	client, err := h.svc.Create(c.Request.Context(), &domain.Client{
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		httpapi.Fail(c, err)
		return
	}
	httpapi.Success(c, http.StatusCreated, client)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		httpapi.Fail(c, err)
		return
	}
	httpapi.Success(c, http.StatusOK, items)
}

func (h *Handler) get(c *gin.Context) {
	client, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpapi.Fail(c, err)
		return
	}
	httpapi.Success(c, http.StatusOK, client)
}

func (h *Handler) update(c *gin.Context) {
	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.BadRequest(c, "invalid body")
		return
	}

	client, err := h.svc.Update(c.Request.Context(), c.Param("id"), service.ClientUpdate{
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		httpapi.Fail(c, err)
		return
	}
	httpapi.Success(c, http.StatusOK, client)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httpapi.Fail(c, err)
		return
	}
	httpapi.Success(c, http.StatusOK, gin.H{})
}
