package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httpapi "github.com/projectpulse/pm-backend/internal/api/http"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) stats(c *gin.Context) {
	st, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		httpapi.Fail(c, err)
		return
	}
	httpapi.Success(c, http.StatusOK, st)
}

// Register attaches the dashboard route to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.stats)
}
