package domain

import "time"

// Employee is a workforce record. DepartmentID is an informal reference to a
// department: it is never validated against the departments table and survives
// department deletion.
type Employee struct {
	ID            int64
	DepartmentID  *int64
	UniqueID      string
	Lastname      string
	Firstname     string
	Middlename    string
	DisplayName   string
	Age           *int
	Gender        string
	BiometricData string
	Image         []byte
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
