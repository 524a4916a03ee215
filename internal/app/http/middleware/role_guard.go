package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"socios-app/database"
	"socios-app/internal/app/snapshot"
	"socios-app/internal/domain/access"
)

// RequireAnyRole lets the request through when the token carries at least one
// of the given roles. Must run after AuthMiddleware.
func RequireAnyRole(roles ...access.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		set := access.NormalizeRoles(ContextRoles(c))
		if !set.HasAny(roles...) {
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireMembership blocks users without a socio profile. The route guard as
// seen by browsers redirects; the API answers 403 with the target route so
// the client can do the same.
func RequireMembership() gin.HandlerFunc {
	return requireOutcome(access.RoutePolicy{RequireMembership: true})
}

// RequireNonMembership is the inverse gate, used by the sign-up flow.
func RequireNonMembership() gin.HandlerFunc {
	return requireOutcome(access.RoutePolicy{RequireNonMembership: true})
}

func requireOutcome(policy access.RoutePolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := c.Get("user_id")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			c.Abort()
			return
		}
		snap, err := snapshot.ForUsuario(database.DB, userID.(uint))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load user"})
			c.Abort()
			return
		}
		decision := access.Resolve(snap, false, c.FullPath(), policy)
		if decision.Outcome != access.OutcomeAllow {
			c.JSON(http.StatusForbidden, gin.H{
				"error":       decision.Reason,
				"redirect_to": decision.RedirectTo,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
