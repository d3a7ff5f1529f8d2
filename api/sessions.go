package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

const maxBodyBytes = 1 << 20

func GetTrainingSessions(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessions, err := store.ListSessions(r.Context())
		if err != nil {
			writeStoreError(r.Context(), w, "Failed to list training sessions", err)
			return
		}

		resp := SessionListResponse{Sessions: make([]SessionResponse, 0, len(sessions))}
		for _, s := range sessions {
			resp.Sessions = append(resp.Sessions, newSessionResponse(s))
		}
		if len(resp.Sessions) == 0 {
			resp.Message = "No training sessions available"
		}
		writeJSON(r.Context(), w, http.StatusOK, resp)
	}
}

func GetTrainingSession(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := sessionID(w, r)
		if !ok {
			return
		}

		session, err := store.GetSession(r.Context(), id)
		if err != nil {
			writeStoreError(r.Context(), w, "Failed to get training session", err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, newSessionResponse(session))
	}
}

func CreateTrainingSession(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const failure = "Failed to create training session"

		body, ok := readBody(w, r, failure)
		if !ok {
			return
		}
		in, err := decodeSessionRequest(body)
		if err != nil {
			writeError(r.Context(), w, http.StatusBadRequest, codeValidationFailed, failure, err)
			return
		}

		session, err := store.CreateSession(r.Context(), in)
		if err != nil {
			writeStoreError(r.Context(), w, failure, err)
			return
		}

		LoggerFromContext(r.Context()).InfoContext(r.Context(), "training session created", "session_id", session.ID)
		writeJSON(r.Context(), w, http.StatusCreated, SessionCreatedResponse{
			Message:   "Training session created successfully",
			Session:   body,
			SessionID: session.ID,
		})
	}
}

func UpdateTrainingSession(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const failure = "Failed to update training session"

		id, ok := sessionID(w, r)
		if !ok {
			return
		}
		body, ok := readBody(w, r, failure)
		if !ok {
			return
		}
		in, err := decodeSessionRequest(body)
		if err != nil {
			writeError(r.Context(), w, http.StatusBadRequest, codeValidationFailed, failure, err)
			return
		}

		if err := store.UpdateSession(r.Context(), id, in); err != nil {
			writeStoreError(r.Context(), w, failure, err)
			return
		}

		LoggerFromContext(r.Context()).InfoContext(r.Context(), "training session updated", "session_id", id)
		writeJSON(r.Context(), w, http.StatusOK, MessageResponse{Message: "Training session updated successfully"})
	}
}

func DeleteTrainingSession(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := sessionID(w, r)
		if !ok {
			return
		}

		if err := store.DeleteSession(r.Context(), id); err != nil {
			writeStoreError(r.Context(), w, "Failed to delete training session", err)
			return
		}

		LoggerFromContext(r.Context()).InfoContext(r.Context(), "training session deleted", "session_id", id)
		writeJSON(r.Context(), w, http.StatusOK, MessageResponse{Message: "Training session deleted successfully"})
	}
}

// sessionID reads the {id} route variable. The route pattern only admits
// digits, so a parse failure means the value overflowed.
func sessionID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(r.Context(), w, http.StatusNotFound, codeNotFound, "Training session not found", nil)
		return 0, false
	}
	return id, true
}

func readBody(w http.ResponseWriter, r *http.Request, failure string) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		writeError(r.Context(), w, status, codeValidationFailed, failure, err)
		return nil, false
	}
	return body, true
}
