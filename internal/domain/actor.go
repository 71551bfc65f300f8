package domain

// Actor is the authenticated caller of an operation
type Actor struct {
	UserID int64
	Role   Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func (a Actor) IsProvider() bool {
	return a.Role == RoleProvider
}

// CanManageProvider reports whether the actor may act on behalf of providerID
func (a Actor) CanManageProvider(providerID int64) bool {
	return a.IsAdmin() || (a.IsProvider() && a.UserID == providerID)
}
