package handlers

import (
	"net/http"
	"strconv"

	"github.com/adflow-io/adflow-go/internal/application"
	"github.com/adflow-io/adflow-go/internal/domain/profile"
	"github.com/adflow-io/adflow-go/internal/repository"
	"github.com/adflow-io/adflow-go/pkg/response"
	"github.com/adflow-io/adflow-go/pkg/utils"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	svc   *application.ProfileService
	repos *repository.Repos
}

func NewProfileHandler(svc *application.ProfileService, repos *repository.Repos) *ProfileHandler {
	return &ProfileHandler{svc: svc, repos: repos}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid ID"})
		return 0, false
	}
	return uint(id), true
}

// List godoc
// @Summary List profiles, optionally staff only
// @Tags profiles
// @Produce json
// @Param role query string false "Filter: operators returns operator+admin"
// @Success 200 {object} response.SuccessResponse
// @Router /profiles [get]
func (h *ProfileHandler) List(c *gin.Context) {
	var (
		profiles []profile.Profile
		err      error
	)
	if c.Query("role") == "operators" {
		profiles, err = h.svc.ListOperators()
	} else {
		profiles, err = h.svc.ListProfiles()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: profiles})
}

func (h *ProfileHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}
	if claims.ProfileID != id && claims.Role != "admin" {
		c.JSON(http.StatusForbidden, response.ErrorResponse{Error: "Forbidden"})
		return
	}

	p, err := h.svc.FindProfileByID(id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: p})
}

// Create provisions an account; admin only (enforced on the route).
func (h *ProfileHandler) Create(c *gin.Context) {
	var input profile.CreateProfileDTO
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	p, err := h.svc.CreateProfile(input)
	if err != nil {
		abortWithError(c, err)
		return
	}

	utils.LogAuditWithConsole(c, "create", "profile", strconv.FormatUint(uint64(p.ID), 10), nil, p, "account provisioned", h.repos.Audit)
	c.JSON(http.StatusCreated, response.SuccessResponse{Data: p})
}

func (h *ProfileHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input profile.UpdateProfileDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	before, err := h.svc.FindProfileByID(id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	p, err := h.svc.UpdateProfile(id, input)
	if err != nil {
		abortWithError(c, err)
		return
	}

	utils.LogAuditWithConsole(c, "update", "profile", c.Param("id"), before, p, "account updated", h.repos.Audit)
	c.JSON(http.StatusOK, response.SuccessResponse{Data: p})
}

func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	actor, err := utils.ViewerFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var input profile.ChangePasswordDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.svc.ChangePassword(actor, id, input); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "password updated"})
}

// Delete deactivates the account rather than removing the row.
func (h *ProfileHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeactivateProfile(id); err != nil {
		abortWithError(c, err)
		return
	}

	utils.LogAuditWithConsole(c, "deactivate", "profile", c.Param("id"), nil, nil, "account deactivated", h.repos.Audit)
	c.JSON(http.StatusOK, response.MessageResponse{Message: "profile deactivated"})
}
