package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/voltdrive/internal/common"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/samber/oops"
)

const maxBodyBytes = 10 << 20

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
	Stack   string `json:"stack,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON body", common.ErrValidation)
	}
	return nil
}

// statusFor maps a service error onto an HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrMissingToken),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// detail strips the sentinel prefix added by fmt.Errorf("%w: ...").
func detail(err error) string {
	msg := err.Error()
	for _, s := range []error{
		common.ErrValidation, common.ErrConflict, common.ErrorUnauthorized,
		common.ErrForbidden, common.ErrorNotFound,
	} {
		if errors.Is(err, s) {
			if rest, ok := strings.CutPrefix(msg, s.Error()+": "); ok {
				return rest
			}
		}
	}
	return msg
}

// writeError renders err. Client errors carry their own message; anything
// else becomes a 500 with fallback, logged with a stack trace that is only
// echoed back in development mode.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := statusFor(err)
	if status != http.StatusInternalServerError {
		writeJSON(w, status, errorResponse{Message: detail(err)})
		return
	}

	oerr := oops.
		In("http").
		With("method", r.Method, "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context())).
		Wrap(err)

	resp := errorResponse{Message: fallback}
	if o, ok := oops.AsOops(oerr); ok {
		h.logger.Error(r.Context(), "request failed", "error", err.Error(), "stack", o.Stacktrace())
		if h.development {
			resp.Error = err.Error()
			resp.Stack = o.Stacktrace()
		}
	}

	writeJSON(w, status, resp)
}
