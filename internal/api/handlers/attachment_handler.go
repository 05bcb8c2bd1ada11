package handlers

import (
	"net/http"
	"strconv"

	"github.com/adflow-io/adflow-go/internal/application"
	"github.com/adflow-io/adflow-go/internal/domain/attachment"
	"github.com/adflow-io/adflow-go/internal/repository"
	"github.com/adflow-io/adflow-go/pkg/response"
	"github.com/adflow-io/adflow-go/pkg/utils"
	"github.com/gin-gonic/gin"
)

type AttachmentHandler struct {
	svc   *application.AttachmentService
	repos *repository.Repos
}

func NewAttachmentHandler(svc *application.AttachmentService, repos *repository.Repos) *AttachmentHandler {
	return &AttachmentHandler{svc: svc, repos: repos}
}

// Upload godoc
// @Summary Attach a file to a request or one of its comments
// @Tags attachments
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Request ID"
// @Param file formData file true "File"
// @Param comment_id formData int false "Comment ID"
// @Success 201 {object} response.SuccessResponse
// @Router /requests/{id}/attachments [post]
func (h *AttachmentHandler) Upload(c *gin.Context) {
	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	actor, err := utils.ViewerFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "file is required"})
		return
	}

	var commentID *uint
	if raw := c.PostForm("comment_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid comment_id"})
			return
		}
		id := uint(parsed)
		commentID = &id
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	defer file.Close()

	created, err := h.svc.Upload(c.Request.Context(), actor, application.UploadInput{
		RequestID: requestID,
		CommentID: commentID,
		FileName:  fileHeader.Filename,
		FileSize:  fileHeader.Size,
		MimeType:  fileHeader.Header.Get("Content-Type"),
		Reader:    file,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	utils.LogAuditWithConsole(c, "upload", "attachment", created.FilePath, nil, created, "file uploaded", h.repos.Audit)
	c.JSON(http.StatusCreated, response.SuccessResponse{Data: created})
}

func (h *AttachmentHandler) ListByRequest(c *gin.Context) {
	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	actor, err := utils.ViewerFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	attachments, err := h.svc.ListByRequestID(actor, requestID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: attachments})
}

func (h *AttachmentHandler) ListByComment(c *gin.Context) {
	commentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	actor, err := utils.ViewerFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	attachments, err := h.svc.ListByCommentID(actor, commentID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: attachments})
}

// Sign issues a one-hour download link for a stored blob.
func (h *AttachmentHandler) Sign(c *gin.Context) {
	var input attachment.SignURLDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	url, err := h.svc.SignURL(c.Request.Context(), input.FilePath, input.FileName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.SignedURLResponse{
		URL:       url,
		ExpiresIn: int64(application.SignedURLTTL.Seconds()),
	})
}

func (h *AttachmentHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	actor, err := utils.ViewerFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), actor, id); err != nil {
		abortWithError(c, err)
		return
	}

	utils.LogAuditWithConsole(c, "delete", "attachment", c.Param("id"), nil, nil, "attachment deleted", h.repos.Audit)
	c.JSON(http.StatusOK, response.MessageResponse{Message: "attachment deleted"})
}
