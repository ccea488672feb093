package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/kiranshivaraju/hirescreen/internal/recruit"
)

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

type errorEnvelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode"`
	Details   any    `json:"details,omitempty"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type listData struct {
	Items      any        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

func JSON(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: message, Data: data})
}

func Created(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusCreated, envelope{Success: true, Message: message, Data: data})
}

func List(w http.ResponseWriter, message string, items any, p Pagination) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: message, Data: listData{Items: items, Pagination: p}})
}

// Page builds the pagination block from a service listing.
func Page[T any](res recruit.ListResult[T]) Pagination {
	return Pagination{Page: res.Page, Limit: res.Limit, Total: res.Total, TotalPages: res.TotalPages()}
}

func Error(w http.ResponseWriter, status int, code, message string, details any) {
	writeJSON(w, status, errorEnvelope{
		Message:   message,
		ErrorCode: code,
		Details:   details,
	})
}

// FromError renders a domain error with its own status and code. Anything else
// is logged and reported as a 500 without leaking the cause.
func FromError(w http.ResponseWriter, r *http.Request, err error) {
	if de, ok := recruit.AsError(err); ok {
		Error(w, de.HTTPStatus(), de.Code, de.Message, nil)
		return
	}
	slog.Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", nil)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
