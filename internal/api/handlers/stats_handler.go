package handlers

import (
	"net/http"

	"github.com/adflow-io/adflow-go/internal/application"
	"github.com/adflow-io/adflow-go/pkg/response"
	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	svc *application.StatsService
}

func NewStatsHandler(svc *application.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// Overview godoc
// @Summary Aggregated request statistics
// @Tags stats
// @Produce json
// @Success 200 {object} response.SuccessResponse
// @Router /stats/overview [get]
func (h *StatsHandler) Overview(c *gin.Context) {
	overview, err := h.svc.Overview()
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: overview})
}
