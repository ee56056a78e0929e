package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/company-task-api/internal/auth"
	apierrors "github.com/yukikurage/company-task-api/internal/errors"
)

// RequireAdmin rejects callers whose token is not an admin token
func RequireAdmin() gin.HandlerFunc {
	return requireClaims(func(_ *gin.Context, claims *auth.Claims) bool {
		return claims.IsAdmin
	})
}

// RequireSelfOrAdmin lets through admins and the user named by the path parameter
func RequireSelfOrAdmin(param string) gin.HandlerFunc {
	return requirePathID(param, func(claims *auth.Claims, id uuid.UUID) bool {
		return claims.IsAdmin || claims.IsSelf(id)
	})
}

// RequireCompanyAccess lets through admins and members of the company named by
// the path parameter
func RequireCompanyAccess(param string) gin.HandlerFunc {
	return requirePathID(param, func(claims *auth.Claims, id uuid.UUID) bool {
		return claims.IsAdmin || claims.BelongsToCompany(id)
	})
}

// PathID returns the UUID path parameter validated by the access middleware,
// parsing it again when no middleware ran.
func PathID(c *gin.Context, param string) (uuid.UUID, bool) {
	if value, ok := c.Get(pathIDKey(param)); ok {
		if id, ok := value.(uuid.UUID); ok {
			return id, true
		}
	}
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		apierrors.InvalidInput(c, "Invalid "+param)
		return uuid.Nil, false
	}
	return id, true
}

func requirePathID(param string, allow func(*auth.Claims, uuid.UUID) bool) gin.HandlerFunc {
	return requireClaims(func(c *gin.Context, claims *auth.Claims) bool {
		id, ok := PathID(c, param)
		if !ok {
			return false
		}
		c.Set(pathIDKey(param), id)
		return allow(claims, id)
	})
}

// requireClaims aborts with 401 when no claims are present and with 403 when
// allow returns false without having written a response itself.
func requireClaims(allow func(*gin.Context, *auth.Claims) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}
		if !allow(c, claims) {
			if !c.IsAborted() {
				apierrors.AccessDenied(c, "")
			}
			return
		}
		c.Next()
	}
}

func pathIDKey(param string) string {
	return "path_id:" + param
}
