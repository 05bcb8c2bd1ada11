package handlers

import (
	"net/http"

	"github.com/adflow-io/adflow-go/internal/application"
	"github.com/adflow-io/adflow-go/internal/domain/profile"
	"github.com/adflow-io/adflow-go/pkg/response"
	"github.com/adflow-io/adflow-go/pkg/utils"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc *application.ProfileService
}

func NewAuthHandler(svc *application.ProfileService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login godoc
// @Summary Sign in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param input body profile.LoginDTO true "Credentials"
// @Success 200 {object} response.TokenResponse
// @Failure 401 {object} response.ErrorResponse "Invalid credentials"
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var input profile.LoginDTO
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	p, token, err := h.svc.Login(input.Email, input.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.SetCookie("token", token, 24*3600, "/", "", false, true)
	c.JSON(http.StatusOK, response.TokenResponse{
		Token:     token,
		ProfileID: p.ID,
		Name:      p.Name,
		Role:      string(p.Role),
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, response.MessageResponse{Message: "logged out"})
}

// Status echoes the authenticated identity so the UI can restore its
// session with one bounded call instead of racing timers.
func (h *AuthHandler) Status(c *gin.Context) {
	claims, err := utils.GetClaimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Data: gin.H{
		"profile_id": claims.ProfileID,
		"name":       claims.Name,
		"role":       claims.Role,
	}})
}
