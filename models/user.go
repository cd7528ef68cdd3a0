package models

// User is the identity handed out by the login step. Email is not a real
// address: it is the synthesized "firstname lastname" handle the user typed
// in, lowercased. There is no password and no verification.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// DriverName is the display name shown on slots this user creates.
func (u User) DriverName() string {
	return u.Email
}
