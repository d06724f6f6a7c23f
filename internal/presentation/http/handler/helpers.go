package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cekapguard/agency-api/internal/application/service"
	"github.com/cekapguard/agency-api/internal/domain/enum"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserName extracts the user's display name from the Gin context
func GetUserName(c *gin.Context) string {
	name, exists := c.Get("user_name")
	if !exists {
		return ""
	}
	return name.(string)
}

// GetUserRole extracts the user role from the Gin context
func GetUserRole(c *gin.Context) enum.UserRole {
	role, exists := c.Get("user_role")
	if !exists {
		return ""
	}
	userRole, ok := role.(enum.UserRole)
	if !ok {
		return ""
	}
	return userRole
}

// IsOwner checks if the authenticated user holds the Owner role
func IsOwner(c *gin.Context) bool {
	return GetUserRole(c) == enum.UserRoleOwner
}

// GetStaffContext builds the staff identity stamped onto documents and
// audit entries.
func GetStaffContext(c *gin.Context) service.StaffContext {
	ctx := service.StaffContext{
		Name: GetUserName(c),
		Role: GetUserRole(c),
	}
	if userID := GetUserID(c); userID != nil {
		ctx.ID = userID.String()
	}
	return ctx
}
