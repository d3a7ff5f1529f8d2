package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidReference is returned when a write points at a trainer,
	// certification, session or employee that does not exist.
	ErrInvalidReference = errors.New("invalid reference")
	// ErrConflict is returned when a write violates a uniqueness constraint.
	ErrConflict = errors.New("conflict")
)

type constraintKind int

const (
	constraintNone constraintKind = iota
	constraintForeignKey
	constraintUnique
)

// mapError classifies driver errors into the package sentinels while keeping
// the driver message in the chain.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	switch classify(err) {
	case constraintForeignKey:
		return fmt.Errorf("%w: %w", ErrInvalidReference, err)
	case constraintUnique:
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	return err
}

func classify(err error) constraintKind {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23503": // foreign_key_violation
			return constraintForeignKey
		case "23505": // unique_violation
			return constraintUnique
		}
		return constraintNone
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1451, 1452:
			return constraintForeignKey
		case 1062:
			return constraintUnique
		}
		return constraintNone
	}

	var liteErr *msqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY:
			return constraintForeignKey
		case sqlite3lib.SQLITE_CONSTRAINT_UNIQUE, sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY:
			return constraintUnique
		}
	}

	// Primary result codes carry no constraint detail; fall back to the message.
	message := strings.ToLower(err.Error())
	switch {
	case strings.Contains(message, "foreign key constraint failed"):
		return constraintForeignKey
	case strings.Contains(message, "unique constraint failed"):
		return constraintUnique
	}
	return constraintNone
}
