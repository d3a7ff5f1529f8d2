package api

import (
	"encoding/json"

	"github.com/vainnor/training-records/models"
	"github.com/vainnor/training-records/types"
)

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    string `json:"code"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type EmployeeResponse struct {
	EmployeeID int64   `json:"employee_id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Department *string `json:"department"`
}

type TrainerResponse struct {
	TrainerID int64  `json:"trainer_id"`
	Name      string `json:"name"`
}

type CertificationResponse struct {
	CertificationID int64  `json:"certification_id"`
	Name            string `json:"name"`
}

type SessionResponse struct {
	SessionID       int64       `json:"session_id"`
	Date            models.Date `json:"date"`
	Duration        *int64      `json:"duration"`
	Location        *string     `json:"location"`
	TrainerID       int64       `json:"trainer_id"`
	Trainer         string      `json:"trainer"`
	CertificationID *int64      `json:"certification_id"`
	Certification   *string     `json:"certification"`
}

type SessionListResponse struct {
	Message  string            `json:"message,omitempty"`
	Sessions []SessionResponse `json:"sessions"`
}

type SessionCreatedResponse struct {
	Message   string          `json:"message"`
	Session   json.RawMessage `json:"session"`
	SessionID int64           `json:"session_id"`
}

// ReportSessionResponse leaves out the raw trainer and certification ids.
type ReportSessionResponse struct {
	SessionID     int64       `json:"session_id"`
	Date          models.Date `json:"date"`
	Duration      *int64      `json:"duration"`
	Location      *string     `json:"location"`
	Trainer       string      `json:"trainer"`
	Certification *string     `json:"certification"`
}

type ReportResponse struct {
	Message    string                  `json:"message,omitempty"`
	Sessions   []ReportSessionResponse `json:"sessions"`
	Statistics types.ReportStatistics  `json:"statistics"`
}

func newSessionResponse(s models.SessionDetail) SessionResponse {
	return SessionResponse{
		SessionID:       s.ID,
		Date:            s.Date,
		Duration:        s.Duration,
		Location:        s.Location,
		TrainerID:       s.TrainerID,
		Trainer:         s.TrainerName,
		CertificationID: s.CertificationID,
		Certification:   s.CertificationName,
	}
}

func newReportResponse(report types.Report) ReportResponse {
	resp := ReportResponse{
		Sessions:   make([]ReportSessionResponse, 0, len(report.Sessions)),
		Statistics: report.Statistics,
	}
	for _, s := range report.Sessions {
		resp.Sessions = append(resp.Sessions, ReportSessionResponse{
			SessionID:     s.ID,
			Date:          s.Date,
			Duration:      s.Duration,
			Location:      s.Location,
			Trainer:       s.TrainerName,
			Certification: s.CertificationName,
		})
	}
	if len(resp.Sessions) == 0 {
		resp.Message = "No sessions match the given criteria"
	}
	return resp
}
