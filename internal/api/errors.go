package api

import (
	"encoding/json"
	"net/http"

	"disco/internal/errors"
)

// ErrorResponse represents an HTTP error response
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

// WriteError writes an error response to the HTTP response writer
func WriteError(w http.ResponseWriter, err error, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := ErrorResponse{
		Error: err.Error(),
	}

	// If it's a DiscoError, include additional information
	if discoErr, ok := err.(*errors.DiscoError); ok {
		resp.Code = string(discoErr.Code)
		resp.Details = discoErr.Details
	} else {
		resp.Code = string(errors.InternalError)
	}

	json.NewEncoder(w).Encode(resp)
}

// WriteDiscoError writes a DiscoError with automatic status code mapping
func WriteDiscoError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if discoErr, ok := err.(*errors.DiscoError); ok {
		status = MapDiscoErrorToStatus(discoErr.Code)
	}
	WriteError(w, err, status)
}

// MapDiscoErrorToStatus maps engine error codes to HTTP status codes
func MapDiscoErrorToStatus(code errors.ErrorCode) int {
	switch code {
	case errors.UnsupportedInput:
		return http.StatusBadRequest // 400
	case errors.InvalidMode:
		return http.StatusBadRequest // 400
	case errors.ModeMismatch:
		return http.StatusConflict // 409
	case errors.UnsupportedMode:
		return http.StatusUnprocessableEntity // 422
	case errors.NodeNotFound:
		return http.StatusNotFound // 404
	case errors.TableNotFound:
		return http.StatusNotFound // 404
	case errors.AnnotationNotFound:
		return http.StatusNotFound // 404
	case errors.CatalogInvalid:
		return http.StatusUnprocessableEntity // 422
	case errors.StoreUnavailable:
		return http.StatusServiceUnavailable // 503
	case errors.InternalError:
		return http.StatusInternalServerError // 500
	default:
		return http.StatusInternalServerError // 500
	}
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// BadRequest writes a 400 Bad Request error
func BadRequest(w http.ResponseWriter, message string) {
	WriteError(w, errors.New(errors.UnsupportedInput, message), http.StatusBadRequest)
}

// NotFound writes a 404 Not Found error
func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, errors.New(errors.NodeNotFound, message), http.StatusNotFound)
}

// InternalError writes a 500 Internal Server Error
func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, errors.New(errors.InternalError, message), http.StatusInternalServerError)
}
