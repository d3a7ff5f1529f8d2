package db

import (
	"strconv"
	"strings"
)

// dialect captures what differs between the supported databases: driver
// name, placeholder style, primary-key retrieval and DDL.
type dialect struct {
	driver     string
	numbered   bool // $1, $2 ... instead of ?
	returning  bool // INSERT ... RETURNING instead of LastInsertId
	singleConn bool
	schema     []string
}

// rebind rewrites ? placeholders to the dialect's style. Queries in this
// package never contain a literal question mark.
func (d dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

var postgresDialect = dialect{
	driver:    "postgres",
	numbered:  true,
	returning: true,
	schema: []string{
		`CREATE TABLE IF NOT EXISTS employees (
			employee_id SERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			email VARCHAR(100) NOT NULL UNIQUE,
			department VARCHAR(50)
		)`,
		`CREATE TABLE IF NOT EXISTS trainers (
			trainer_id SERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			email VARCHAR(100) NOT NULL UNIQUE,
			specialization VARCHAR(100)
		)`,
		`CREATE TABLE IF NOT EXISTS certifications (
			certification_id SERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			description VARCHAR(255),
			validity_period INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS training_sessions (
			session_id SERIAL PRIMARY KEY,
			date DATE NOT NULL,
			duration INTEGER,
			location VARCHAR(100),
			trainer_id INTEGER NOT NULL REFERENCES trainers(trainer_id),
			certification_id INTEGER REFERENCES certifications(certification_id)
		)`,
		`CREATE TABLE IF NOT EXISTS session_rsvp (
			rsvp_id SERIAL PRIMARY KEY,
			session_id INTEGER NOT NULL REFERENCES training_sessions(session_id),
			employee_id INTEGER NOT NULL REFERENCES employees(employee_id),
			status VARCHAR(20)
		)`,

		// Indexes
		`CREATE INDEX IF NOT EXISTS idx_training_sessions_date ON training_sessions(date)`,
		`CREATE INDEX IF NOT EXISTS idx_training_sessions_trainer ON training_sessions(trainer_id)`,
		`CREATE INDEX IF NOT EXISTS idx_session_rsvp_session ON session_rsvp(session_id)`,
	},
}

var sqliteDialect = dialect{
	driver:     "sqlite",
	singleConn: true,
	schema: []string{
		`CREATE TABLE IF NOT EXISTS employees (
			employee_id INTEGER PRIMARY KEY AUTOINCREMENT,
			name VARCHAR(100) NOT NULL,
			email VARCHAR(100) NOT NULL UNIQUE,
			department VARCHAR(50)
		)`,
		`CREATE TABLE IF NOT EXISTS trainers (
			trainer_id INTEGER PRIMARY KEY AUTOINCREMENT,
			name VARCHAR(100) NOT NULL,
			email VARCHAR(100) NOT NULL UNIQUE,
			specialization VARCHAR(100)
		)`,
		`CREATE TABLE IF NOT EXISTS certifications (
			certification_id INTEGER PRIMARY KEY AUTOINCREMENT,
			name VARCHAR(100) NOT NULL,
			description VARCHAR(255),
			validity_period INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS training_sessions (
			session_id INTEGER PRIMARY KEY AUTOINCREMENT,
			date DATE NOT NULL,
			duration INTEGER,
			location VARCHAR(100),
			trainer_id INTEGER NOT NULL REFERENCES trainers(trainer_id),
			certification_id INTEGER REFERENCES certifications(certification_id)
		)`,
		`CREATE TABLE IF NOT EXISTS session_rsvp (
			rsvp_id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id INTEGER NOT NULL REFERENCES training_sessions(session_id),
			employee_id INTEGER NOT NULL REFERENCES employees(employee_id),
			status VARCHAR(20)
		)`,

		// Indexes
		`CREATE INDEX IF NOT EXISTS idx_training_sessions_date ON training_sessions(date)`,
		`CREATE INDEX IF NOT EXISTS idx_training_sessions_trainer ON training_sessions(trainer_id)`,
		`CREATE INDEX IF NOT EXISTS idx_session_rsvp_session ON session_rsvp(session_id)`,
	},
}

// MySQL ignores inline REFERENCES and has no CREATE INDEX IF NOT EXISTS, so
// keys and indexes are declared inside the table definitions.
var mysqlDialect = dialect{
	driver: "mysql",
	schema: []string{
		`CREATE TABLE IF NOT EXISTS employees (
			employee_id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			email VARCHAR(100) NOT NULL UNIQUE,
			department VARCHAR(50)
		)`,
		`CREATE TABLE IF NOT EXISTS trainers (
			trainer_id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			email VARCHAR(100) NOT NULL UNIQUE,
			specialization VARCHAR(100)
		)`,
		`CREATE TABLE IF NOT EXISTS certifications (
			certification_id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			description VARCHAR(255),
			validity_period INT
		)`,
		`CREATE TABLE IF NOT EXISTS training_sessions (
			session_id INT AUTO_INCREMENT PRIMARY KEY,
			date DATE NOT NULL,
			duration INT,
			location VARCHAR(100),
			trainer_id INT NOT NULL,
			certification_id INT,
			INDEX idx_training_sessions_date (date),
			FOREIGN KEY (trainer_id) REFERENCES trainers(trainer_id),
			FOREIGN KEY (certification_id) REFERENCES certifications(certification_id)
		)`,
		`CREATE TABLE IF NOT EXISTS session_rsvp (
			rsvp_id INT AUTO_INCREMENT PRIMARY KEY,
			session_id INT NOT NULL,
			employee_id INT NOT NULL,
			status VARCHAR(20),
			FOREIGN KEY (session_id) REFERENCES training_sessions(session_id),
			FOREIGN KEY (employee_id) REFERENCES employees(employee_id)
		)`,
	},
}
