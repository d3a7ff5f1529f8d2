// Package dbtest builds throwaway SQLite stores and fixture graphs for tests.
package dbtest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/qawatake/fixify"

	"github.com/vainnor/training-records/db"
	"github.com/vainnor/training-records/models"
)

// NewStore opens an empty store backed by a SQLite file in a temp dir.
func NewStore(t testing.TB) *db.Store {
	t.Helper()

	store, err := db.Open(context.Background(), filepath.Join(t.TempDir(), "training.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// Load inserts the fixture graph parents first and writes the generated ids
// back into the models.
func Load(t testing.TB, store *db.Store, roots ...fixify.IModel) *fixify.Fixture {
	t.Helper()
	ctx := context.Background()

	f := fixify.New(t, roots...)
	f.Iterate(func(v any) error {
		switch v := v.(type) {
		case *models.Employee:
			created, err := store.CreateEmployee(ctx, *v)
			if err != nil {
				return err
			}
			*v = created
		case *models.Trainer:
			created, err := store.CreateTrainer(ctx, *v)
			if err != nil {
				return err
			}
			*v = created
		case *models.Certification:
			created, err := store.CreateCertification(ctx, *v)
			if err != nil {
				return err
			}
			*v = created
		case *models.TrainingSession:
			created, err := store.CreateSession(ctx, v.Input())
			if err != nil {
				return err
			}
			*v = created
		case *models.SessionRSVP:
			created, err := store.RecordRSVP(ctx, *v)
			if err != nil {
				return err
			}
			*v = created
		default:
			return fmt.Errorf("unsupported fixture %T", v)
		}
		return nil
	})
	return f
}

// Employee is a fixture for an employee; RSVPs hang off it.
func Employee(name string) *fixify.Model[models.Employee] {
	return fixify.NewModel(&models.Employee{Name: name, Email: email(name)})
}

// Trainer is a fixture for a trainer; sessions hang off it.
func Trainer(name string) *fixify.Model[models.Trainer] {
	return fixify.NewModel(&models.Trainer{Name: name, Email: email(name)})
}

// Certification is a fixture for a catalog entry; sessions may hang off it.
func Certification(name string) *fixify.Model[models.Certification] {
	return fixify.NewModel(&models.Certification{Name: name})
}

// Session is a fixture for a training session on date (YYYY-MM-DD). A nil
// duration leaves the column NULL.
func Session(date string, duration *int64) *fixify.Model[models.TrainingSession] {
	d, err := models.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return fixify.NewModel(&models.TrainingSession{Date: d, Duration: duration},
		fixify.ConnectorFunc(func(_ testing.TB, s *models.TrainingSession, t *models.Trainer) {
			s.TrainerID = t.ID
		}),
		fixify.ConnectorFunc(func(_ testing.TB, s *models.TrainingSession, c *models.Certification) {
			id := c.ID
			s.CertificationID = &id
		}),
	)
}

// RSVP is a fixture for a response with the given status; it needs both a
// session and an employee parent.
func RSVP(status string) *fixify.Model[models.SessionRSVP] {
	return fixify.NewModel(&models.SessionRSVP{Status: &status},
		fixify.ConnectorFunc(func(_ testing.TB, r *models.SessionRSVP, s *models.TrainingSession) {
			r.SessionID = s.ID
		}),
		fixify.ConnectorFunc(func(_ testing.TB, r *models.SessionRSVP, e *models.Employee) {
			r.EmployeeID = e.ID
		}),
	)
}

// Minutes returns a duration pointer.
func Minutes(n int64) *int64 {
	return &n
}

func email(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com"
}
