package handlers

import (
	"net/http"
	"strconv"

	"github.com/adflow-io/adflow-go/internal/application"
	"github.com/adflow-io/adflow-go/internal/domain/comment"
	"github.com/adflow-io/adflow-go/internal/repository"
	"github.com/adflow-io/adflow-go/internal/ws"
	"github.com/adflow-io/adflow-go/pkg/response"
	"github.com/adflow-io/adflow-go/pkg/utils"
	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	svc   *application.CommentService
	repos *repository.Repos
	hub   *ws.Hub
}

func NewCommentHandler(svc *application.CommentService, repos *repository.Repos, hub *ws.Hub) *CommentHandler {
	return &CommentHandler{svc: svc, repos: repos, hub: hub}
}

// ListByRequest returns the comment thread scoped to the viewer's
// role; internal comments never reach client callers.
func (h *CommentHandler) ListByRequest(c *gin.Context) {
	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	actor, err := utils.ViewerFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	comments, err := h.svc.ListComments(actor, requestID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: comments})
}

func (h *CommentHandler) Create(c *gin.Context) {
	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input comment.CreateCommentDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	actor, err := utils.ViewerFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	created, err := h.svc.CreateComment(actor, requestID, input)
	if err != nil {
		abortWithError(c, err)
		return
	}

	h.hub.Publish(ws.Event{Type: ws.EventCommentAdded, RequestID: requestID, Internal: created.IsInternal})
	c.JSON(http.StatusCreated, response.SuccessResponse{Data: created})
}

func (h *CommentHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input comment.UpdateCommentDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	actor, err := utils.ViewerFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	updated, err := h.svc.UpdateComment(actor, id, input)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: updated})
}

// Delete removes the caller's own comment together with its
// attachments.
func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	actor, err := utils.ViewerFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.svc.DeleteComment(c.Request.Context(), actor, id); err != nil {
		abortWithError(c, err)
		return
	}

	utils.LogAuditWithConsole(c, "delete", "comment", strconv.FormatUint(uint64(id), 10), nil, nil, "comment deleted", h.repos.Audit)
	c.JSON(http.StatusOK, response.MessageResponse{Message: "comment deleted"})
}
