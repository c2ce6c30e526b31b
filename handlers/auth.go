package handlers

import (
	"net/http"

	"stayhub/models"
	authService "stayhub/services/auth"
	"stayhub/utils"

	"github.com/gin-gonic/gin"
)

// AuthSvc is wired at startup.
var AuthSvc authService.AuthService

// RegisterHandler creates a new user account.
func RegisterHandler(c *gin.Context) {
	var req models.UserRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	user, err := AuthSvc.Register(req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// LoginHandler authenticates a user and returns a bearer token.
func LoginHandler(c *gin.Context) {
	var req models.UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	resp, err := AuthSvc.Authenticate(req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LogoutHandler revokes the caller's bearer token.
func LogoutHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := AuthSvc.Logout(userID); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
