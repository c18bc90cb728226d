package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"food-order/internal/common/apperr"
	"food-order/internal/common/logger"
	"food-order/internal/common/validate"
)

const maxBodyBytes = 1 << 20

// WriteJSON sends v with the given status code.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteProblem is a simplified RFC 7807 Problem+JSON body.
func WriteProblem(w http.ResponseWriter, code int, typ, detail string, fields map[string]string) {
	resp := map[string]any{
		"type":   typ,
		"title":  http.StatusText(code),
		"status": code,
		"detail": detail,
	}
	if len(fields) > 0 {
		resp["fields"] = fields
	}
	WriteJSON(w, code, resp)
}

// WriteError maps an error to its problem response. Internal failures are logged
// and reported without detail.
func WriteError(w http.ResponseWriter, r *http.Request, lg *logger.Logger, err error) {
	e, ok := apperr.As(err)
	if !ok {
		logger.FromContext(r.Context(), lg).Error("request_failed", err, map[string]any{
			"method": r.Method, "path": r.URL.Path,
		})
		WriteProblem(w, http.StatusInternalServerError, "internal_error", "internal error", nil)
		return
	}
	WriteProblem(w, statusFor(e.Kind), e.Code, e.Message, e.Fields)
}

func statusFor(k apperr.Kind) int {
	switch k {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindRule:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Decode reads a JSON body into dst and runs its validation tags.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Field("body", "is required")
		}
		return apperr.Field("body", "invalid JSON: "+err.Error())
	}
	return validate.Struct(dst)
}
