package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/vainnor/training-records/models"
	"github.com/vainnor/training-records/types"
)

var tracer = otel.Tracer("github.com/vainnor/training-records/db")

// Report returns the sessions matching filter together with their average
// duration and average attendance.
func (s *Store) Report(ctx context.Context, filter types.ReportFilter) (types.Report, error) {
	ctx, span := tracer.Start(ctx, "db.Report")
	defer span.End()

	report, err := s.report(ctx, filter)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return types.Report{}, fmt.Errorf("report: %w", err)
	}

	span.SetAttributes(
		attribute.Int("report.total_sessions", report.Statistics.TotalSessions),
		attribute.String("report.attendance_scope", string(filter.AttendanceScope)),
	)
	return report, nil
}

func (s *Store) report(ctx context.Context, filter types.ReportFilter) (types.Report, error) {
	where, args := sessionFilter(filter)

	sessions, err := s.querySessionDetails(ctx, s.db,
		sessionDetailSelect+where+" ORDER BY ts.date, ts.session_id", args...)
	if err != nil {
		return types.Report{}, fmt.Errorf("query sessions: %w", err)
	}

	report := types.Report{
		Sessions:   sessions,
		Statistics: types.ReportStatistics{TotalSessions: len(sessions)},
	}
	if len(sessions) == 0 {
		return report, nil
	}

	var avgDuration sql.NullFloat64
	err = s.db.QueryRowContext(ctx,
		s.rebind("SELECT AVG(ts.duration) FROM training_sessions ts"+where), args...,
	).Scan(&avgDuration)
	if err != nil {
		return types.Report{}, fmt.Errorf("average duration: %w", err)
	}
	report.Statistics.AverageDuration = nullFloat64(avgDuration)

	// Attendance counts only sessions with at least one attending RSVP.
	attendanceQuery := `SELECT r.session_id, COUNT(*) AS attending
		FROM session_rsvp r
		WHERE r.status = ?`
	attendanceArgs := []any{models.RSVPStatusAttending}
	if filter.AttendanceScope == types.AttendanceScopeFiltered && where != "" {
		attendanceQuery += " AND r.session_id IN (SELECT ts.session_id FROM training_sessions ts" + where + ")"
		attendanceArgs = append(attendanceArgs, args...)
	}
	attendanceQuery += " GROUP BY r.session_id"

	var avgAttendance sql.NullFloat64
	err = s.db.QueryRowContext(ctx,
		s.rebind("SELECT AVG(counts.attending) FROM ("+attendanceQuery+") counts"), attendanceArgs...,
	).Scan(&avgAttendance)
	if err != nil {
		return types.Report{}, fmt.Errorf("average attendance: %w", err)
	}
	report.Statistics.AverageAttendance = nullFloat64(avgAttendance)

	return report, nil
}

// sessionFilter builds the WHERE clause over the ts alias. Filters are
// AND-composed and the date bounds are inclusive.
func sessionFilter(filter types.ReportFilter) (string, []any) {
	var (
		conditions []string
		args       []any
	)
	if filter.StartDate != nil {
		conditions = append(conditions, "ts.date >= ?")
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		conditions = append(conditions, "ts.date <= ?")
		args = append(args, *filter.EndDate)
	}
	if filter.TrainerID != nil {
		conditions = append(conditions, "ts.trainer_id = ?")
		args = append(args, *filter.TrainerID)
	}
	if filter.CertificationID != nil {
		conditions = append(conditions, "ts.certification_id = ?")
		args = append(args, *filter.CertificationID)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func nullFloat64(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
