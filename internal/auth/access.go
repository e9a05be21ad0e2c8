package auth

import "github.com/spec-kit/labtracker-service/internal/domain"

// CanAccessIdentity decides whether actor may act on the target account.
// Self-access is always allowed. Otherwise the actor must be an admin, and
// admins may not act on other admins.
func CanAccessIdentity(actor, target *domain.User) bool {
	if actor.ID == target.ID {
		return true
	}
	if !actor.IsAdmin() {
		return false
	}
	if target.IsAdmin() {
		return false
	}
	return true
}

// CanAccessItem decides whether actor may act on a tracker item. Tracker
// items are strictly owner-scoped: unlike account access, admins get no
// override here.
func CanAccessItem(actor *domain.User, item domain.Ownable) bool {
	return actor.ID == item.OwnerID()
}
