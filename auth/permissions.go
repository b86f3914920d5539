package auth

import "github.com/storely/storefront-api/models"

// CanAccessOrder is the single ownership/role check used by order detail,
// receipt email and similar owner-or-admin resources.
func CanAccessOrder(role models.Role, ownerID, requesterID uint) bool {
	if role == models.RoleAdmin {
		return true
	}
	return ownerID == requesterID
}
