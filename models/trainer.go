package models

// Trainer represents a person delivering training sessions
type Trainer struct {
	ID             int64   `json:"trainer_id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Specialization *string `json:"specialization,omitempty"`
}
