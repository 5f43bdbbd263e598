package domain

// Structured outcomes for expected, recoverable conditions. Uniqueness
// collisions and zero-effect updates/deletes are reported through these values
// with a nil error; storage faults are returned as ordinary Go errors and never
// folded into an outcome.

// CreateOutcome reports the result of a create operation.
type CreateOutcome struct {
	Success bool
	ID      int64
	Message string
}

// MutationOutcome reports the result of an update or delete operation.
// Success is false when the statement matched no rows.
type MutationOutcome struct {
	Success bool
	Message string
}

// AuthOutcome reports the result of a login attempt. User is set only on
// success and never carries the password.
type AuthOutcome struct {
	Success bool
	Message string
	User    *User
}
