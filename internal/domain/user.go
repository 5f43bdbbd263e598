package domain

import "time"

// User represents an operator account of the attendance system.
type User struct {
	ID            int64
	Username      string
	Password      string
	DisplayName   string
	BiometricData string
	Image         string
	CreatedAt     time.Time
}

// WithoutPassword returns a copy of the user safe to cross the HTTP boundary.
func (u *User) WithoutPassword() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Password = ""
	return &clone
}
