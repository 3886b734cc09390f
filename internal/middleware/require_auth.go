// Package middleware contain utilities middleware code
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"actualize-backend/internal/apperror"
	"actualize-backend/internal/auth"
	"actualize-backend/internal/utilities"
)

// RequireAuth validates the Bearer token in the Authorization header and puts the
// claims and the principal into the context before allowing access to the endpoint.
func RequireAuth(verifier auth.Verifier) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, err := utilities.ExtractBearerToken(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Error: err.Error(),
			})
			return
		}

		claims, err := verifier.Verify(tokenString)
		if err != nil {
			if appErr, ok := apperror.As(err); ok {
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
					Error: appErr.Message,
				})
				return
			}
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Error: "Invalid access token",
			})
			return
		}

		principal, err := claims.Principal()
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Error: "Invalid access token",
			})
			return
		}

		ctx.Set("claims", claims)
		ctx.Set("principal", principal)
		ctx.Next()
	}
}
