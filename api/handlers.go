package api

import (
	"context"
	"net/http"
	"time"
)

const healthCheckTimeout = 2 * time.Second

// Root answers the bare hello route.
func Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, MessageResponse{Message: "Training records API"})
}

// Health reports whether the store is reachable.
func Health(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			LoggerFromContext(r.Context()).WarnContext(r.Context(), "health check failed", "error", err)
			writeJSON(r.Context(), w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}

func GetEmployees(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		employees, err := store.ListEmployees(r.Context())
		if err != nil {
			writeStoreError(r.Context(), w, "Failed to list employees", err)
			return
		}

		resp := make([]EmployeeResponse, 0, len(employees))
		for _, e := range employees {
			resp = append(resp, EmployeeResponse{
				EmployeeID: e.ID,
				Name:       e.Name,
				Email:      e.Email,
				Department: e.Department,
			})
		}
		writeJSON(r.Context(), w, http.StatusOK, resp)
	}
}

func GetTrainers(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		trainers, err := store.ListTrainers(r.Context())
		if err != nil {
			writeStoreError(r.Context(), w, "Failed to list trainers", err)
			return
		}

		resp := make([]TrainerResponse, 0, len(trainers))
		for _, t := range trainers {
			resp = append(resp, TrainerResponse{TrainerID: t.ID, Name: t.Name})
		}
		writeJSON(r.Context(), w, http.StatusOK, resp)
	}
}

func GetCertifications(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		certifications, err := store.ListCertifications(r.Context())
		if err != nil {
			writeStoreError(r.Context(), w, "Failed to list certifications", err)
			return
		}

		resp := make([]CertificationResponse, 0, len(certifications))
		for _, c := range certifications {
			resp = append(resp, CertificationResponse{CertificationID: c.ID, Name: c.Name})
		}
		writeJSON(r.Context(), w, http.StatusOK, resp)
	}
}
