package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const msgInternalError = "внутренняя ошибка сервера"

// ErrorResponse тело ответа с ошибкой
// Для ошибок валидации дополнительно заполняются field, kind, conflictId и allowed
type ErrorResponse struct {
	Error      string   `json:"error"`
	Field      string   `json:"field,omitempty"`
	Kind       string   `json:"kind,omitempty"`
	ConflictID int64    `json:"conflictId,omitempty"`
	Allowed    []string `json:"allowed,omitempty"`
}

// DecodeJSON декодирует тело запроса, запрещая неизвестные поля
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

// PathInt64 извлекает положительный int64 параметр пути
func PathInt64(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", name, raw)
	}
	return id, nil
}

// RespondJSON пишет JSON ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError пишет ошибку с указанным статусом
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// ValidationStatus HTTP статус для вида ошибки валидации
// overlap и uniqueness - конфликт с существующими данными, остальное - некорректный запрос
func ValidationStatus(vErr *domain.ValidationError) int {
	switch {
	case errors.Is(vErr.Kind, domain.ErrOverlap), errors.Is(vErr.Kind, domain.ErrUniqueness):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// RespondValidationError пишет ошибку валидации, если err ее содержит
// Возвращает false, если err не является ошибкой валидации
func RespondValidationError(w http.ResponseWriter, err error) bool {
	vErr, ok := domain.AsValidationError(err)
	if !ok {
		return false
	}

	RespondJSON(w, ValidationStatus(vErr), ErrorResponse{
		Error:      vErr.Message,
		Field:      vErr.Field,
		Kind:       vErr.KindName(),
		ConflictID: vErr.ConflictID,
		Allowed:    vErr.Allowed,
	})
	return true
}
