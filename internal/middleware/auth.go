package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/company-task-api/internal/auth"
	"github.com/yukikurage/company-task-api/internal/constants"
	apierrors "github.com/yukikurage/company-task-api/internal/errors"
	"github.com/yukikurage/company-task-api/internal/logging"
)

var errMissingAuthorization = errors.New("missing authorization")

// RequireAuth decodes the bearer token and stores its claims in the context
func RequireAuth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			apierrors.Unauthorized(c, "")
			return
		}

		claims, err := tokens.Decode(raw)
		if err != nil {
			logging.FromContext(c.Request.Context()).Debug("rejected bearer token", "error", err)
			apierrors.Unauthorized(c, "")
			return
		}

		c.Set(constants.ContextKeyClaims, claims)
		c.Next()
	}
}

// GetClaims retrieves the decoded token claims from context
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(constants.ContextKeyClaims)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}

func bearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errMissingAuthorization
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization")
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errors.New("invalid authorization")
	}
	return token, nil
}
