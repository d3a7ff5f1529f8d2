package api

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/vainnor/training-records/models"
	"github.com/vainnor/training-records/types"
)

func GetTrainingSessionReport(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const failure = "Failed to build training session report"

		filter, err := parseReportFilter(r.URL.Query())
		if err != nil {
			writeError(r.Context(), w, http.StatusBadRequest, codeValidationFailed, failure, err)
			return
		}

		report, err := store.Report(r.Context(), filter)
		if err != nil {
			writeStoreError(r.Context(), w, failure, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, newReportResponse(report))
	}
}

func parseReportFilter(query url.Values) (types.ReportFilter, error) {
	var (
		filter types.ReportFilter
		err    error
	)

	if filter.StartDate, err = optionalDate(query.Get("start_date")); err != nil {
		return types.ReportFilter{}, err
	}
	if filter.EndDate, err = optionalDate(query.Get("end_date")); err != nil {
		return types.ReportFilter{}, err
	}
	filter.TrainerID = optionalID(query.Get("trainer_id"))
	filter.CertificationID = optionalID(query.Get("certification_id"))

	if filter.AttendanceScope, err = types.ParseAttendanceScope(query.Get("attendance_scope")); err != nil {
		return types.ReportFilter{}, err
	}
	return filter, nil
}

func absent(value string) bool {
	return value == "" || value == "null" || value == "undefined"
}

func optionalDate(value string) (*models.Date, error) {
	value = strings.TrimSpace(value)
	if absent(value) {
		return nil, nil
	}
	d, err := models.ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// optionalID drops values that are missing, non-numeric or zero, so an
// unselected dropdown does not filter.
func optionalID(value string) *int64 {
	value = strings.TrimSpace(value)
	if absent(value) {
		return nil
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id == 0 {
		return nil
	}
	return &id
}
