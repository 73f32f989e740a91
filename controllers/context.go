package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusgrub/cafeteria-app/utils"
)

// callerFromContext pulls the authenticated user id and role set by the auth
// middleware. Responds 401 and returns false if either is missing.
func callerFromContext(c *gin.Context) (uint, string, bool) {
	idVal, exists := c.Get("user_id")
	if !exists {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return 0, "", false
	}
	userID, ok := idVal.(uint)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid user id in context"))
		return 0, "", false
	}

	roleVal, exists := c.Get("role")
	if !exists {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("role not found in context"))
		return 0, "", false
	}
	role, ok := roleVal.(string)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid role in context"))
		return 0, "", false
	}

	return userID, role, true
}
