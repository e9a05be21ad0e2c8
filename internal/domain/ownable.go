package domain

// Ownable is implemented by every tracker entity that belongs to a single
// account. Ownership is assigned at creation and never reassigned.
type Ownable interface {
	OwnerID() string
}
