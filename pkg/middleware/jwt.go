package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/emanuelbartolo/BoardGameApp/pkg/logger"
	"github.com/emanuelbartolo/BoardGameApp/pkg/response"
)

const (
	// ContextKeyUsername is the gin context key for the authenticated username
	ContextKeyUsername = "username"
)

// Claims are the JWT claims this service cares about. Token issuance lives
// in the identity service; here we only verify and extract the username.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Auth verifies the Bearer token and places the username into the request
// context
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Unauthorized("Missing authorization header"))
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Unauthorized("Invalid authorization header format"))
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Unauthorized("Invalid or expired token"))
			return
		}
		if claims.Username == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Unauthorized("Token carries no username"))
			return
		}

		c.Set(ContextKeyUsername, claims.Username)
		ctx := context.WithValue(c.Request.Context(), logger.UsernameKey, claims.Username)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// Username returns the authenticated username from the gin context
func Username(c *gin.Context) string {
	return c.GetString(ContextKeyUsername)
}
