package types

import (
	"fmt"

	"github.com/vainnor/training-records/models"
)

// AttendanceScope selects which RSVPs feed the average attendance.
type AttendanceScope string

const (
	// AttendanceScopeAll averages attendance over every session's RSVPs,
	// regardless of the other report filters.
	AttendanceScopeAll AttendanceScope = "all"
	// AttendanceScopeFiltered restricts attendance to the filtered sessions.
	AttendanceScopeFiltered AttendanceScope = "filtered"
)

// ParseAttendanceScope maps a query value to a scope; empty means all.
func ParseAttendanceScope(value string) (AttendanceScope, error) {
	switch AttendanceScope(value) {
	case "", AttendanceScopeAll:
		return AttendanceScopeAll, nil
	case AttendanceScopeFiltered:
		return AttendanceScopeFiltered, nil
	default:
		return "", fmt.Errorf("invalid attendance_scope %q: must be 'all' or 'filtered'", value)
	}
}

// ReportFilter narrows the sessions a report aggregates. Nil fields do not filter.
type ReportFilter struct {
	StartDate       *models.Date
	EndDate         *models.Date
	TrainerID       *int64
	CertificationID *int64
	AttendanceScope AttendanceScope
}

// ReportStatistics are the aggregates over a filtered session set. The
// averages are nil when there is no data to average.
type ReportStatistics struct {
	AverageDuration   *float64 `json:"average_duration"`
	AverageAttendance *float64 `json:"average_attendance"`
	TotalSessions     int      `json:"total_sessions"`
}

// Report is the result of a training session report query
type Report struct {
	Sessions   []models.SessionDetail
	Statistics ReportStatistics
}
