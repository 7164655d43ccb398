package handlers

import (
	"errors"
	"net/http"

	"hairbook/middleware"
	"hairbook/services/account"
	"hairbook/utils"

	"github.com/gin-gonic/gin"
)

var accountService account.AccountService

// SetAccountService injects the account service used by the auth handlers.
func SetAccountService(svc account.AccountService) {
	accountService = svc
}

// RegisterAccountHandler creates a new account.
func RegisterAccountHandler(c *gin.Context) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	acct, err := accountService.Register(c.Request.Context(), input.Username, input.Password, input.Role)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrUsernameTaken):
			utils.JSONError(c, http.StatusConflict, "username already exists", "")
		case errors.Is(err, account.ErrValidation):
			utils.JSONError(c, http.StatusBadRequest, "invalid registration", err.Error())
		default:
			utils.JSONError(c, http.StatusInternalServerError, "registration failed", err.Error())
		}
		return
	}
	c.JSON(http.StatusCreated, acct)
}

// AuthenticateHandler verifies credentials and returns a bearer token.
func AuthenticateHandler(c *gin.Context) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	result, err := accountService.Authenticate(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if errors.Is(err, account.ErrInvalidCredentials) {
			utils.JSONError(c, http.StatusUnauthorized, "invalid username or password", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "authentication failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

// RevokeTokenHandler invalidates the caller's session token.
func RevokeTokenHandler(c *gin.Context) {
	accountID := c.GetString(middleware.CtxAccountID)
	if err := accountService.Revoke(c.Request.Context(), accountID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to revoke session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "session revoked"})
}
