package utilities

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// BearerSchema is the prefix of an access token in the Authorization header.
const BearerSchema = "Bearer "

// ExtractBearerToken returns the token of a "Bearer <token>" Authorization header.
func ExtractBearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")

	if !strings.HasPrefix(authHeader, BearerSchema) {
		return "", fmt.Errorf("Invalid authorization header")
	}

	token := strings.TrimSpace(authHeader[len(BearerSchema):])
	if token == "" {
		return "", fmt.Errorf("Invalid authorization header")
	}
	return token, nil
}
