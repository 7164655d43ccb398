package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"hairbook/database/repository"
	"hairbook/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by JWTAuthMiddleware.
const (
	CtxAccountID = "accountID"
	CtxRole      = "role"
)

// JWTAuthMiddleware validates the bearer token, checks it against the
// account's recorded session hash (so revoked tokens stop working), and
// optionally requires a role. Pass an empty requiredRole to accept any
// authenticated account.
func JWTAuthMiddleware(accounts repository.AccountRepository, requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
			}
		}()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		accountID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || accountID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		acct, err := accounts.GetByID(ctx, accountID)
		if err != nil || acct == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}
		if acct.TokenHash == "" || acct.TokenHash != utils.HashToken(tokenString) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Session revoked, please sign in again",
			})
			return
		}
		if requiredRole != "" && acct.Role != requiredRole {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "This action requires a " + requiredRole + " account",
			})
			return
		}

		c.Set(CtxAccountID, acct.ID)
		c.Set(CtxRole, acct.Role)
		c.Next()
	}
}
