package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"actualize-backend/internal/auth"
	"actualize-backend/internal/database"
	"actualize-backend/internal/model"
	"actualize-backend/internal/utilities"
)

// CheckBlocked stops a blocked candidate with the same payload the login gate returns.
// Admins pass through.
func CheckBlocked(db *database.DBinstanceStruct, gate *auth.Gate) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		principal, err := utilities.ExtractPrincipal(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Error: err.Error(),
			})
			return
		}

		// Of course, Admin can't be blocked
		if principal.Role != model.RoleCandidate {
			ctx.Next()
			return
		}

		var candidate model.Candidate
		err = db.WithContext(ctx.Request.Context()).First(&candidate, "id = ?", principal.ID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
					Error: "User not exist",
				})
				return
			}
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to retrieve user data: %s", err.Error()),
			})
			return
		}

		if blocked := gate.Check(ctx.Request.Context(), &candidate); blocked != nil {
			ctx.AbortWithStatusJSON(http.StatusForbidden, blocked)
			return
		}

		ctx.Next()
	}
}
