package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vainnor/training-records/models"
)

// ListEmployees returns every employee ordered by id.
func (s *Store) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT employee_id, name, email, department
		FROM employees
		ORDER BY employee_id
	`)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]models.Employee, 0)
	for rows.Next() {
		var (
			e          models.Employee
			department sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &department); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		e.Department = nullString(department)
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}

	return employees, nil
}

// CreateEmployee inserts an employee. Employees have no API surface; this is
// the entry point for the external process that maintains them.
func (s *Store) CreateEmployee(ctx context.Context, e models.Employee) (models.Employee, error) {
	id, err := s.insertEmployee(ctx, s.db, e)
	if err != nil {
		return models.Employee{}, fmt.Errorf("create employee: %w", mapError(err))
	}
	e.ID = id
	return e, nil
}

func (s *Store) insertEmployee(ctx context.Context, q querier, e models.Employee) (int64, error) {
	return s.insert(ctx, q,
		`INSERT INTO employees (name, email, department) VALUES (?, ?, ?)`,
		"employee_id",
		e.Name, e.Email, e.Department,
	)
}

// ListTrainers returns every trainer ordered by id.
func (s *Store) ListTrainers(ctx context.Context) ([]models.Trainer, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT trainer_id, name, email, specialization
		FROM trainers
		ORDER BY trainer_id
	`)
	if err != nil {
		return nil, fmt.Errorf("list trainers: %w", err)
	}
	defer rows.Close()

	trainers := make([]models.Trainer, 0)
	for rows.Next() {
		var (
			t              models.Trainer
			specialization sql.NullString
		)
		if err := rows.Scan(&t.ID, &t.Name, &t.Email, &specialization); err != nil {
			return nil, fmt.Errorf("scan trainer: %w", err)
		}
		t.Specialization = nullString(specialization)
		trainers = append(trainers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trainers: %w", err)
	}

	return trainers, nil
}

// CreateTrainer inserts a trainer; ErrConflict when the email is taken.
func (s *Store) CreateTrainer(ctx context.Context, t models.Trainer) (models.Trainer, error) {
	id, err := s.insertTrainer(ctx, s.db, t)
	if err != nil {
		return models.Trainer{}, fmt.Errorf("create trainer: %w", mapError(err))
	}
	t.ID = id
	return t, nil
}

func (s *Store) insertTrainer(ctx context.Context, q querier, t models.Trainer) (int64, error) {
	return s.insert(ctx, q,
		`INSERT INTO trainers (name, email, specialization) VALUES (?, ?, ?)`,
		"trainer_id",
		t.Name, t.Email, t.Specialization,
	)
}

// ListCertifications returns the certification catalog ordered by id.
func (s *Store) ListCertifications(ctx context.Context) ([]models.Certification, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT certification_id, name, description, validity_period
		FROM certifications
		ORDER BY certification_id
	`)
	if err != nil {
		return nil, fmt.Errorf("list certifications: %w", err)
	}
	defer rows.Close()

	certifications := make([]models.Certification, 0)
	for rows.Next() {
		var (
			c           models.Certification
			description sql.NullString
			validity    sql.NullInt64
		)
		if err := rows.Scan(&c.ID, &c.Name, &description, &validity); err != nil {
			return nil, fmt.Errorf("scan certification: %w", err)
		}
		c.Description = nullString(description)
		c.ValidityPeriod = nullInt64(validity)
		certifications = append(certifications, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list certifications: %w", err)
	}

	return certifications, nil
}

// CreateCertification inserts a certification catalog entry.
func (s *Store) CreateCertification(ctx context.Context, c models.Certification) (models.Certification, error) {
	id, err := s.insertCertification(ctx, s.db, c)
	if err != nil {
		return models.Certification{}, fmt.Errorf("create certification: %w", mapError(err))
	}
	c.ID = id
	return c, nil
}

func (s *Store) insertCertification(ctx context.Context, q querier, c models.Certification) (int64, error) {
	return s.insert(ctx, q,
		`INSERT INTO certifications (name, description, validity_period) VALUES (?, ?, ?)`,
		"certification_id",
		c.Name, c.Description, c.ValidityPeriod,
	)
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}
