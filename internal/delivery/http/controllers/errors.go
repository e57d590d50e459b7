package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"talkcatalog/internal/delivery/http/helpers"
	"talkcatalog/internal/domain"
)

// DeleteResponse is the data of a successful delete.
type DeleteResponse struct {
	Status  string `json:"status"`
	Deleted int64  `json:"deleted,omitempty"`
}

// DeleteSuccessResponse is the success response envelope for DELETE endpoints.
type DeleteSuccessResponse struct {
	Data  DeleteResponse    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// pathID parses the {id} path value. It writes a 400 and returns false when the id is not a
// positive integer.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.PathValue("id")
	if raw == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing id")
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

// writeServiceError maps a service error to a response. Errors that are not part of the
// domain contract are logged and answered with a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrMissingReference):
		helpers.WriteNoContent(w)
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, notFound)
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrHasDependents), errors.Is(err, domain.ErrNoFallbackSpeaker):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal server error")
	}
}

// writeDeleteAll answers a collection delete: 204 when nothing was there, 200 with the count otherwise.
func writeDeleteAll(w http.ResponseWriter, n int64) {
	if n == 0 {
		helpers.WriteNoContent(w)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteResponse{Status: "deleted", Deleted: n})
}
