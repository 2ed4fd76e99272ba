package usercontext

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/LeadFox/internal/pkg/subscription"
)

// UserContext represents the complete user context for a request. The
// subscription snapshot is resolved once by the auth middleware; handlers
// and the feature gate read it, never write it.
type UserContext struct {
	UserID       uint                      `json:"user_id"`
	Username     string                    `json:"username"`
	IsLoggedIn   bool                      `json:"is_logged_in"`
	IsAdmin      bool                      `json:"is_admin"`
	Subscription subscription.Subscription `json:"subscription"`
}

// GetUserContext retrieves the user context from fiber context
// Returns a default anonymous context if none is set
func GetUserContext(c *fiber.Ctx) UserContext {
	if ctx := c.Locals("USER_CONTEXT"); ctx != nil {
		return ctx.(UserContext)
	}
	return UserContext{IsLoggedIn: false, IsAdmin: false, Subscription: subscription.Default()}
}

// IsLoggedIn checks if the current user is logged in
func IsLoggedIn(c *fiber.Ctx) bool {
	return GetUserContext(c).IsLoggedIn
}

// IsAdmin checks if the current user is an admin
func IsAdmin(c *fiber.Ctx) bool {
	return GetUserContext(c).IsAdmin
}

// GetUserID returns the current user's ID, or 0 if not logged in
func GetUserID(c *fiber.Ctx) uint {
	return GetUserContext(c).UserID
}

// GetSubscription returns the current user's subscription snapshot, or the
// free default when no context is set.
func GetSubscription(c *fiber.Ctx) subscription.Subscription {
	return GetUserContext(c).Subscription
}
