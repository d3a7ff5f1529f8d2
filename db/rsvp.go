package db

import (
	"context"
	"fmt"

	"github.com/vainnor/training-records/models"
)

// RecordRSVP stores an employee's response to a session. RSVPs have no API
// surface; they are written by the process that collects responses.
func (s *Store) RecordRSVP(ctx context.Context, r models.SessionRSVP) (models.SessionRSVP, error) {
	id, err := s.insert(ctx, s.db,
		`INSERT INTO session_rsvp (session_id, employee_id, status) VALUES (?, ?, ?)`,
		"rsvp_id",
		r.SessionID, r.EmployeeID, r.Status,
	)
	if err != nil {
		return models.SessionRSVP{}, fmt.Errorf("record rsvp: %w", mapError(err))
	}
	r.ID = id
	return r, nil
}

// ListRSVPs returns the RSVPs of one session ordered by id.
func (s *Store) ListRSVPs(ctx context.Context, sessionID int64) ([]models.SessionRSVP, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT rsvp_id, session_id, employee_id, status
		FROM session_rsvp
		WHERE session_id = ?
		ORDER BY rsvp_id
	`), sessionID)
	if err != nil {
		return nil, fmt.Errorf("list rsvps: %w", err)
	}
	defer rows.Close()

	rsvps := make([]models.SessionRSVP, 0)
	for rows.Next() {
		var r models.SessionRSVP
		if err := rows.Scan(&r.ID, &r.SessionID, &r.EmployeeID, &r.Status); err != nil {
			return nil, fmt.Errorf("scan rsvp: %w", err)
		}
		rsvps = append(rsvps, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list rsvps: %w", err)
	}

	return rsvps, nil
}
