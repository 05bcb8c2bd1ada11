package handlers

import (
	"net/http"
	"strconv"

	"github.com/adflow-io/adflow-go/internal/application"
	"github.com/adflow-io/adflow-go/internal/domain/request"
	"github.com/adflow-io/adflow-go/internal/repository"
	"github.com/adflow-io/adflow-go/internal/ws"
	"github.com/adflow-io/adflow-go/pkg/response"
	"github.com/adflow-io/adflow-go/pkg/utils"
	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	svc   *application.RequestService
	repos *repository.Repos
	hub   *ws.Hub
}

func NewRequestHandler(svc *application.RequestService, repos *repository.Repos, hub *ws.Hub) *RequestHandler {
	return &RequestHandler{svc: svc, repos: repos, hub: hub}
}

// Create godoc
// @Summary Submit a new change request
// @Tags requests
// @Accept json
// @Produce json
// @Param input body request.CreateRequestDTO true "Request fields"
// @Success 201 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /requests [post]
func (h *RequestHandler) Create(c *gin.Context) {
	var input request.CreateRequestDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	actor, err := utils.ViewerFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	req, err := h.svc.CreateRequest(actor, input)
	if err != nil {
		abortWithError(c, err)
		return
	}

	utils.LogAuditWithConsole(c, "create", "request", req.RequestNumber, nil, req, "request submitted", h.repos.Audit)
	h.hub.Publish(ws.Event{Type: ws.EventRequestCreated, RequestID: req.ID})
	c.JSON(http.StatusCreated, response.SuccessResponse{Data: req})
}

// List returns all requests for staff and the caller's own for
// clients.
func (h *RequestHandler) List(c *gin.Context) {
	actor, err := utils.ViewerFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	requests, err := h.svc.ListRequests(actor)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: requests})
}

func (h *RequestHandler) ListByClient(c *gin.Context) {
	clientID, ok := parseIDParam(c, "clientId")
	if !ok {
		return
	}

	actor, err := utils.ViewerFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	requests, err := h.svc.ListRequestsByClientID(actor, clientID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: requests})
}

func (h *RequestHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	actor, err := utils.ViewerFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	req, err := h.svc.FindRequestByID(actor, id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: req})
}

// Update rewrites client-editable content while the request is still
// pending.
func (h *RequestHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input request.UpdateRequestDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	actor, err := utils.ViewerFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	req, err := h.svc.UpdateRequest(actor, id, input)
	if err != nil {
		abortWithError(c, err)
		return
	}

	utils.LogAuditWithConsole(c, "update", "request", req.RequestNumber, nil, req, "request edited", h.repos.Audit)
	c.JSON(http.StatusOK, response.SuccessResponse{Data: req})
}

// UpdateStatus godoc
// @Summary Move a request through its lifecycle
// @Tags requests
// @Accept json
// @Produce json
// @Param id path int true "Request ID"
// @Param input body request.UpdateStatusDTO true "New status"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse "Transition not permitted"
// @Router /requests/{id}/status [put]
func (h *RequestHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input request.UpdateStatusDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	actor, err := utils.ViewerFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	req, err := h.svc.UpdateStatus(actor, id, request.Status(input.Status))
	if err != nil {
		abortWithError(c, err)
		return
	}

	utils.LogAuditWithConsole(c, "status_change", "request", req.RequestNumber, nil, req, "status set to "+input.Status, h.repos.Audit)
	h.hub.Publish(ws.Event{Type: ws.EventStatusChanged, RequestID: req.ID})
	c.JSON(http.StatusOK, response.SuccessResponse{Data: req})
}

func (h *RequestHandler) AssignOperator(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input request.AssignOperatorDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	actor, err := utils.ViewerFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	req, err := h.svc.AssignOperator(actor, id, input.OperatorID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	utils.LogAuditWithConsole(c, "assign", "request", req.RequestNumber, nil, req, "operator "+strconv.FormatUint(uint64(input.OperatorID), 10)+" assigned", h.repos.Audit)
	c.JSON(http.StatusOK, response.SuccessResponse{Data: req})
}

func (h *RequestHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	actor, err := utils.ViewerFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.svc.DeleteRequest(actor, id); err != nil {
		abortWithError(c, err)
		return
	}

	utils.LogAuditWithConsole(c, "delete", "request", c.Param("id"), nil, nil, "request deleted", h.repos.Audit)
	c.JSON(http.StatusOK, response.MessageResponse{Message: "request deleted"})
}
