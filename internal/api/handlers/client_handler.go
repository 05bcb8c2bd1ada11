package handlers

import (
	"net/http"
	"strconv"

	"github.com/adflow-io/adflow-go/internal/application"
	"github.com/adflow-io/adflow-go/internal/domain/client"
	"github.com/adflow-io/adflow-go/internal/repository"
	"github.com/adflow-io/adflow-go/pkg/response"
	"github.com/adflow-io/adflow-go/pkg/utils"
	"github.com/gin-gonic/gin"
)

type ClientHandler struct {
	svc   *application.ClientService
	repos *repository.Repos
}

func NewClientHandler(svc *application.ClientService, repos *repository.Repos) *ClientHandler {
	return &ClientHandler{svc: svc, repos: repos}
}

func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.svc.ListClients()
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: clients})
}

func (h *ClientHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	cl, err := h.svc.FindClientByID(id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: cl})
}

// GetOwn resolves the caller's client record from the JWT, the entry
// point client UIs use to scope everything else.
func (h *ClientHandler) GetOwn(c *gin.Context) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	cl, err := h.svc.FindClientByUserID(claims.ProfileID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: cl})
}

func (h *ClientHandler) Create(c *gin.Context) {
	var input client.CreateClientDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	cl, err := h.svc.CreateClient(input)
	if err != nil {
		abortWithError(c, err)
		return
	}

	utils.LogAuditWithConsole(c, "create", "client", strconv.FormatUint(uint64(cl.ID), 10), nil, cl, "client created", h.repos.Audit)
	c.JSON(http.StatusCreated, response.SuccessResponse{Data: cl})
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input client.UpdateClientDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	before, err := h.svc.FindClientByID(id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	cl, err := h.svc.UpdateClient(id, input)
	if err != nil {
		abortWithError(c, err)
		return
	}

	utils.LogAuditWithConsole(c, "update", "client", c.Param("id"), before, cl, "client updated", h.repos.Audit)
	c.JSON(http.StatusOK, response.SuccessResponse{Data: cl})
}

func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteClient(id); err != nil {
		abortWithError(c, err)
		return
	}

	utils.LogAuditWithConsole(c, "delete", "client", c.Param("id"), nil, nil, "client deleted", h.repos.Audit)
	c.JSON(http.StatusOK, response.MessageResponse{Message: "client deleted"})
}
