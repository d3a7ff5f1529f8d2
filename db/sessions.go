package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vainnor/training-records/models"
)

const sessionDetailSelect = `
	SELECT ts.session_id, ts.date, ts.duration, ts.location,
		ts.trainer_id, t.name, ts.certification_id, c.name
	FROM training_sessions ts
	LEFT JOIN trainers t ON t.trainer_id = ts.trainer_id
	LEFT JOIN certifications c ON c.certification_id = ts.certification_id
`

// ListSessions returns every session with its trainer and certification
// names, ordered by id.
func (s *Store) ListSessions(ctx context.Context) ([]models.SessionDetail, error) {
	sessions, err := s.querySessionDetails(ctx, s.db, sessionDetailSelect+" ORDER BY ts.session_id")
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

// GetSession returns one session with its trainer and certification names.
func (s *Store) GetSession(ctx context.Context, id int64) (models.SessionDetail, error) {
	sessions, err := s.querySessionDetails(ctx, s.db, sessionDetailSelect+" WHERE ts.session_id = ?", id)
	if err != nil {
		return models.SessionDetail{}, fmt.Errorf("get session %d: %w", id, err)
	}
	if len(sessions) == 0 {
		return models.SessionDetail{}, ErrNotFound
	}
	return sessions[0], nil
}

// CreateSession inserts a session inside its own transaction. A missing
// trainer or certification yields ErrInvalidReference and nothing is written.
func (s *Store) CreateSession(ctx context.Context, in models.SessionInput) (models.TrainingSession, error) {
	var id int64
	err := s.WithTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = s.insert(ctx, tx, `
			INSERT INTO training_sessions (date, duration, location, trainer_id, certification_id)
			VALUES (?, ?, ?, ?, ?)`,
			"session_id",
			in.Date, in.Duration, in.Location, in.TrainerID, in.CertificationID,
		)
		return err
	})
	if err != nil {
		return models.TrainingSession{}, fmt.Errorf("create session: %w", mapError(err))
	}

	return models.TrainingSession{
		ID:              id,
		Date:            in.Date,
		Duration:        in.Duration,
		Location:        in.Location,
		TrainerID:       in.TrainerID,
		CertificationID: in.CertificationID,
	}, nil
}

// UpdateSession rewrites every field of an existing session.
func (s *Store) UpdateSession(ctx context.Context, id int64, in models.SessionInput) error {
	err := s.WithTx(ctx, func(tx *sql.Tx) error {
		if err := s.sessionExists(ctx, tx, id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, s.rebind(`
			UPDATE training_sessions
			SET date = ?, duration = ?, location = ?, trainer_id = ?, certification_id = ?
			WHERE session_id = ?`),
			in.Date, in.Duration, in.Location, in.TrainerID, in.CertificationID, id,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("update session %d: %w", id, mapError(err))
	}
	return nil
}

// DeleteSession removes a session together with its RSVPs.
func (s *Store) DeleteSession(ctx context.Context, id int64) error {
	err := s.WithTx(ctx, func(tx *sql.Tx) error {
		if err := s.sessionExists(ctx, tx, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM session_rsvp WHERE session_id = ?`), id); err != nil {
			return fmt.Errorf("delete rsvps: %w", err)
		}
		if _, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM training_sessions WHERE session_id = ?`), id); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete session %d: %w", id, mapError(err))
	}
	return nil
}

// CountSessions returns the number of stored sessions.
func (s *Store) CountSessions(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM training_sessions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return count, nil
}

func (s *Store) sessionExists(ctx context.Context, q querier, id int64) error {
	ok, err := s.exists(ctx, q, `SELECT 1 FROM training_sessions WHERE session_id = ?`, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *Store) querySessionDetails(ctx context.Context, q querier, query string, args ...any) ([]models.SessionDetail, error) {
	rows, err := q.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]models.SessionDetail, 0)
	for rows.Next() {
		var (
			d                 models.SessionDetail
			duration          sql.NullInt64
			location          sql.NullString
			trainerName       sql.NullString
			certificationID   sql.NullInt64
			certificationName sql.NullString
		)
		if err := rows.Scan(
			&d.ID, &d.Date, &duration, &location,
			&d.TrainerID, &trainerName, &certificationID, &certificationName,
		); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		d.Duration = nullInt64(duration)
		d.Location = nullString(location)
		d.TrainerName = trainerName.String
		d.CertificationID = nullInt64(certificationID)
		d.CertificationName = nullString(certificationName)
		sessions = append(sessions, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}
