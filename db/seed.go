package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vainnor/training-records/models"
)

func strPtr(s string) *string { return &s }
func intPtr(n int64) *int64 { return &n }

var defaultEmployees = []models.Employee{
	{Name: "John Doe", Email: "john.doe@example.com", Department: strPtr("Engineering")},
}

var defaultTrainers = []models.Trainer{
	{Name: "Alice Smith", Email: "alice.smith@example.com", Specialization: strPtr("Safety Training")},
	{Name: "Matthew Sindac", Email: "matthew.sindac@example.com", Specialization: strPtr("Technical Training")},
	{Name: "David Blaine", Email: "david.blaine@example.com", Specialization: strPtr("Soft Skills")},
	{Name: "LeBron James", Email: "lebron.james@example.com", Specialization: strPtr("Teamwork Training")},
	{Name: "Ja Morant", Email: "ja.morant@example.com", Specialization: strPtr("Leadership")},
	{Name: "Damian Lillard", Email: "damian.lillard@example.com", Specialization: strPtr("Communication Skills")},
}

var defaultCertifications = []models.Certification{
	{Name: "First Aid Certification", Description: strPtr("Basic first aid training"), ValidityPeriod: intPtr(24)},
	{Name: "CPR Certification", Description: strPtr("Certification in cardiopulmonary resuscitation"), ValidityPeriod: intPtr(12)},
	{Name: "Fire Safety Certification", Description: strPtr("Training on fire prevention and safety"), ValidityPeriod: intPtr(36)},
	{Name: "Leadership Training Certification", Description: strPtr("Skills development in leadership"), ValidityPeriod: intPtr(18)},
	{Name: "Conflict Resolution Certification", Description: strPtr("Training on resolving workplace conflicts"), ValidityPeriod: intPtr(24)},
	{Name: "Health & Safety Certification", Description: strPtr("Certification for workplace health and safety"), ValidityPeriod: intPtr(36)},
	{Name: "Time Management Certification", Description: strPtr("Skills for effective time management"), ValidityPeriod: intPtr(12)},
	{Name: "Project Management Certification", Description: strPtr("Fundamentals of project management"), ValidityPeriod: intPtr(24)},
	{Name: "Diversity & Inclusion Training", Description: strPtr("Training on diversity and inclusion in the workplace"), ValidityPeriod: intPtr(12)},
	{Name: "Customer Service Certification", Description: strPtr("Certification for delivering excellent customer service"), ValidityPeriod: intPtr(24)},
}

// SeedResult counts the rows a Seed call inserted.
type SeedResult struct {
	Employees      int
	Trainers       int
	Certifications int
}

// Seed inserts the default employees, trainers and certifications into empty
// tables. Everything is committed in one transaction; running it again on a
// populated store inserts nothing.
func (s *Store) Seed(ctx context.Context) (SeedResult, error) {
	var result SeedResult

	err := s.WithTx(ctx, func(tx *sql.Tx) error {
		empty, err := s.tableEmpty(ctx, tx, "employees")
		if err != nil {
			return err
		}
		if empty {
			for _, e := range defaultEmployees {
				if _, err := s.insertEmployee(ctx, tx, e); err != nil {
					return fmt.Errorf("seed employee %s: %w", e.Email, err)
				}
				result.Employees++
			}
		}

		empty, err = s.tableEmpty(ctx, tx, "trainers")
		if err != nil {
			return err
		}
		if empty {
			for _, t := range defaultTrainers {
				exists, err := s.exists(ctx, tx, `SELECT 1 FROM trainers WHERE email = ?`, t.Email)
				if err != nil {
					return err
				}
				if exists {
					continue
				}
				if _, err := s.insertTrainer(ctx, tx, t); err != nil {
					return fmt.Errorf("seed trainer %s: %w", t.Email, err)
				}
				result.Trainers++
			}
		}

		empty, err = s.tableEmpty(ctx, tx, "certifications")
		if err != nil {
			return err
		}
		if empty {
			for _, c := range defaultCertifications {
				exists, err := s.exists(ctx, tx, `SELECT 1 FROM certifications WHERE name = ?`, c.Name)
				if err != nil {
					return err
				}
				if exists {
					continue
				}
				if _, err := s.insertCertification(ctx, tx, c); err != nil {
					return fmt.Errorf("seed certification %s: %w", c.Name, err)
				}
				result.Certifications++
			}
		}

		return nil
	})
	if err != nil {
		return SeedResult{}, fmt.Errorf("seed: %w", err)
	}

	return result, nil
}

// tableEmpty only ever receives one of the fixed table names above.
func (s *Store) tableEmpty(ctx context.Context, q querier, table string) (bool, error) {
	var count int64
	if err := q.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
		return false, fmt.Errorf("count %s: %w", table, err)
	}
	return count == 0, nil
}

func (s *Store) exists(ctx context.Context, q querier, query string, args ...any) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx, s.rebind(query), args...).Scan(&one)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}
