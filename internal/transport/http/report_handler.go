package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "wmsapi/internal/errors"
	"wmsapi/internal/report"
	"wmsapi/internal/services"
)

// ReportHandler handles pick-list report HTTP requests
type ReportHandler struct {
	service      ReportServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewReportHandler creates a new report handler
func NewReportHandler(service ReportServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ReportHandler {
	return &ReportHandler{
		service:      service,
		logger:       logger.With(slog.String("handler", "report")),
		errorHandler: errorHandler,
	}
}

// Routes returns the report routes
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/picklist", h.GetPickList)
	r.Get("/picklist/download", h.DownloadPickList)

	return r
}

// GetPickList handles GET /picklist and returns carrier-grouped quantities
func (h *ReportHandler) GetPickList(w http.ResponseWriter, r *http.Request) {
	filter := filterFromQuery(r)

	groups, err := h.service.PickList(r.Context(), filter)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   groups,
		"count":  len(groups),
	})
}

// DownloadPickList handles GET /picklist/download and streams the xlsx
// workbook as an attachment
func (h *ReportHandler) DownloadPickList(w http.ResponseWriter, r *http.Request) {
	filter := filterFromQuery(r)

	file, err := h.service.PickListWorkbook(r.Context(), filter)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(file.Bytes)))

	if _, err := w.Write(file.Bytes); err != nil {
		h.logger.WarnContext(r.Context(), "workbook download interrupted",
			slog.String("filename", file.Filename),
			slog.String("error", err.Error()))
	}
}

// filterFromQuery reads the report filter from query parameters. Validation
// happens in the service.
func filterFromQuery(r *http.Request) report.Filter {
	q := r.URL.Query()
	return report.Filter{
		StoreName:   q.Get("store_name"),
		CourierName: q.Get("courier_name"),
		DateFrom:    q.Get("date_from"),
		DateTo:      q.Get("date_to"),
	}
}

// handleServiceError maps service errors onto the problem taxonomy. Filter
// errors name the offending field; everything else stays generic.
func (h *ReportHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var ferr *report.FilterError
	switch {
	case errors.As(err, &ferr):
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation(ferr.Field, ferr.Reason))
	case errors.Is(err, services.ErrReportGeneration):
		h.errorHandler.HandleError(w, r, apierrors.ErrReportGeneration())
	default:
		h.errorHandler.HandleError(w, r, err)
	}
}
