package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	apierrors "github.com/antonKorobenko/test-task/internal/errors"
)

// ReportFilename is the attachment name of the statistics download
const ReportFilename = "result.csv"

// StatsHandler serves the per-symbol trade statistics
type StatsHandler struct {
	service      StatsServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewStatsHandler creates a new statistics handler
func NewStatsHandler(service StatsServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *StatsHandler {
	return &StatsHandler{
		service:      service,
		logger:       logger.With(slog.String("handler", "stats")),
		errorHandler: errorHandler,
	}
}

// Routes sets up the statistics routes
func (h *StatsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetStats)
	return r
}

// GetStats handles GET /api. The statistics table is returned as a CSV
// attachment; a query that matches no trades yields an empty body.
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())
	query := r.URL.Query()

	h.logger.DebugContext(r.Context(), "computing statistics",
		slog.String("request_id", reqID),
		slog.String("interval", query.Get("interval")),
		slog.String("symbol", query.Get("symbol")),
		slog.String("trader_id", query.Get("traderId")),
	)

	body, err := h.service.Report(r.Context(), query)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+ReportFilename)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		h.logger.WarnContext(r.Context(), "failed to write statistics response",
			slog.String("request_id", reqID),
			slog.String("error", err.Error()))
	}
}
