package utils

import (
	"errors"

	"github.com/adflow-io/adflow-go/pkg/types"
	"github.com/gin-gonic/gin"
)

// GetClaimsFromContext returns the JWT claims the auth middleware
// stored on the request. Overridable in tests.
var GetClaimsFromContext = func(c *gin.Context) (*types.Claims, error) {
	claimsVal, exists := c.Get("claims")
	if !exists {
		return nil, errors.New("user claims not found in context")
	}

	claims, ok := claimsVal.(*types.Claims)
	if !ok {
		return nil, errors.New("invalid user claims type")
	}

	return claims, nil
}

// ViewerFromContext builds the read-scope viewer from the JWT claims.
func ViewerFromContext(c *gin.Context) (types.Viewer, error) {
	claims, err := GetClaimsFromContext(c)
	if err != nil {
		return types.Viewer{}, err
	}
	return types.Viewer{ProfileID: claims.ProfileID, Role: claims.Role}, nil
}
