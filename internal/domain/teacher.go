package domain

// Teacher is an instructor entry in a user's tracker.
type Teacher struct {
	ID          string
	Name        string
	Surname     string
	FatherName  *string
	PhoneNumber *string
	UserID      string
}

// OwnerID returns the owning account id.
func (t *Teacher) OwnerID() string {
	return t.UserID
}
