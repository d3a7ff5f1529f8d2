package models

// Employee represents a staff member who can RSVP to sessions
type Employee struct {
	ID         int64   `json:"employee_id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Department *string `json:"department"`
}
