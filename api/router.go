package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vainnor/training-records/models"
	"github.com/vainnor/training-records/types"
)

// Store is the persistence the handlers depend on. *db.Store satisfies it.
type Store interface {
	Ping(ctx context.Context) error
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	ListTrainers(ctx context.Context) ([]models.Trainer, error)
	ListCertifications(ctx context.Context) ([]models.Certification, error)
	ListSessions(ctx context.Context) ([]models.SessionDetail, error)
	GetSession(ctx context.Context, id int64) (models.SessionDetail, error)
	CreateSession(ctx context.Context, in models.SessionInput) (models.TrainingSession, error)
	UpdateSession(ctx context.Context, id int64, in models.SessionInput) error
	DeleteSession(ctx context.Context, id int64) error
	Report(ctx context.Context, filter types.ReportFilter) (types.Report, error)
}

// Options tunes the router. The zero value serves every origin without rate
// limiting and logs through slog.Default.
type Options struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	RateLimit      int
	RateWindow     time.Duration
}

// NewRouter creates and configures a new router with all API endpoints
func NewRouter(store Store, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := mux.NewRouter()
	r.Use(RequestLogger(logger), Tracing)
	r.NotFoundHandler = RequestLogger(logger)(http.HandlerFunc(notFound))

	r.HandleFunc("/", Root).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(NewRateLimiter(opts.RateLimit, opts.RateWindow).Middleware)

	api.HandleFunc("/health", Health(store)).Methods(http.MethodGet)

	// Catalog endpoints
	api.HandleFunc("/employees", GetEmployees(store)).Methods(http.MethodGet)
	api.HandleFunc("/trainers", GetTrainers(store)).Methods(http.MethodGet)
	api.HandleFunc("/certifications", GetCertifications(store)).Methods(http.MethodGet)

	// Training session endpoints
	api.HandleFunc("/training_sessions", GetTrainingSessions(store)).Methods(http.MethodGet)
	api.HandleFunc("/training_sessions", CreateTrainingSession(store)).Methods(http.MethodPost)
	api.HandleFunc("/training_sessions/report", GetTrainingSessionReport(store)).Methods(http.MethodGet)
	api.HandleFunc("/training_sessions/{id:[0-9]+}", GetTrainingSession(store)).Methods(http.MethodGet)
	api.HandleFunc("/training_sessions/{id:[0-9]+}", UpdateTrainingSession(store)).Methods(http.MethodPut)
	api.HandleFunc("/training_sessions/{id:[0-9]+}", DeleteTrainingSession(store)).Methods(http.MethodDelete)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	cors := handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", requestIDHeader}),
		handlers.ExposedHeaders([]string{requestIDHeader}),
	)
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError)),
	)

	return recovery(cors(r))
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeError(r.Context(), w, http.StatusNotFound, codeNotFound, "Resource not found", nil)
}
