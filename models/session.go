package models

// RSVPStatusAttending is the only RSVP status counted towards attendance.
const RSVPStatusAttending = "attending"

// TrainingSession represents a scheduled training session row
type TrainingSession struct {
	ID              int64   `json:"session_id"`
	Date            Date    `json:"date"`
	Duration        *int64  `json:"duration"` // minutes
	Location        *string `json:"location"`
	TrainerID       int64   `json:"trainer_id"`
	CertificationID *int64  `json:"certification_id"`
}

// Input returns the writable fields of the session.
func (s TrainingSession) Input() SessionInput {
	return SessionInput{
		Date:            s.Date,
		Duration:        s.Duration,
		Location:        s.Location,
		TrainerID:       s.TrainerID,
		CertificationID: s.CertificationID,
	}
}

// SessionInput carries the fields written on create and update. Every field
// is rewritten on update.
type SessionInput struct {
	Date            Date
	Duration        *int64
	Location        *string
	TrainerID       int64
	CertificationID *int64
}

// SessionDetail is a session joined with its trainer and certification names
type SessionDetail struct {
	TrainingSession
	TrainerName       string  `json:"trainer"`
	CertificationName *string `json:"certification"`
}

// SessionRSVP is an employee's response to a training session
type SessionRSVP struct {
	ID         int64   `json:"rsvp_id"`
	SessionID  int64   `json:"session_id"`
	EmployeeID int64   `json:"employee_id"`
	Status     *string `json:"status"`
}
