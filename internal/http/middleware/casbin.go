package middleware

import (
	"net/http"
	"strconv"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

// CasbinMW wraps the casbin enforcer for route authorization.
type CasbinMW struct {
	enforcer *casbin.Enforcer
}

// NewCasbinMW creates new casbin middleware wrapper
func NewCasbinMW(enforcer *casbin.Enforcer) *CasbinMW {
	return &CasbinMW{enforcer: enforcer}
}

// Enforce returns the casbin authorization middleware. Policies are
// checked against the route pattern, so /users/42 is authorized as
// /users/:id. A request whose :id matches the token user is retried
// under role_owner when the primary role is denied.
func (mw *CasbinMW) Enforce() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, userExists := c.Get(CtxUserID)
		role, roleExists := c.Get(CtxUserRole)
		if !userExists || !roleExists {
			Fail(c, http.StatusUnauthorized, "user identity not found in token")
			c.Abort()
			return
		}

		obj := c.FullPath()
		if obj == "" {
			obj = c.Request.URL.Path
		}
		act := c.Request.Method

		casbinRole := "role_" + role.(string)
		allowed, err := mw.enforcer.Enforce(casbinRole, obj, act)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "authorization check failed"})
			c.Abort()
			return
		}

		if !allowed && mw.isOwner(c, userID) {
			allowed, err = mw.enforcer.Enforce("role_owner", obj, act)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "authorization check failed"})
				c.Abort()
				return
			}
		}

		if !allowed {
			Fail(c, http.StatusForbidden, "access denied")
			c.Abort()
			return
		}

		c.Next()
	}
}

// isOwner reports whether the :id route parameter names the requester.
func (mw *CasbinMW) isOwner(c *gin.Context, userID any) bool {
	param := c.Param("id")
	if param == "" {
		return false
	}
	id, ok := userID.(uint)
	if !ok {
		return false
	}
	return param == strconv.FormatUint(uint64(id), 10)
}
