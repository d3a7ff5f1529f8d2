package models

// Certification represents a catalog entry a session can lead to
type Certification struct {
	ID             int64   `json:"certification_id"`
	Name           string  `json:"name"`
	Description    *string `json:"description,omitempty"`
	ValidityPeriod *int64  `json:"validity_period,omitempty"` // months
}
