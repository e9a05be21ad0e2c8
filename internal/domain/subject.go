package domain

// Subject is a course entry in a user's tracker. TasksCount is a
// denormalized counter maintained alongside task writes.
type Subject struct {
	ID         string
	Name       string
	Course     *int16
	TeacherID  string
	UserID     string
	TasksCount int
}

// OwnerID returns the owning account id.
func (s *Subject) OwnerID() string {
	return s.UserID
}
