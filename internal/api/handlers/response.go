package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

const (
	msgInternalError      = "внутренняя ошибка сервера"
	msgNotFound           = "ресурс не найден"
	msgConflict           = "конфликт состояния ресурса"
	msgInvalidTransition  = "недопустимый переход статуса"
	msgValidation         = "некорректные данные запроса"
	msgForbidden          = "доступ запрещен"
	msgPaymentGateway     = "ошибка платежного шлюза"
	msgServiceUnavailable = "сервис временно недоступен"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// RespondJSON отправляет JSON ответ
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// RespondError отправляет ошибку с сообщением
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

// StatusForError HTTP статус по виду доменной ошибки
func StatusForError(err error) int {
	switch domain.ErrorKind(err) {
	case domain.ErrNotFound:
		return http.StatusNotFound
	case domain.ErrConflict, domain.ErrInvalidTransition:
		return http.StatusConflict
	case domain.ErrValidation:
		return http.StatusBadRequest
	case domain.ErrAccessDenied:
		return http.StatusForbidden
	case domain.ErrPaymentGateway:
		return http.StatusBadGateway
	case domain.ErrPersistence:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// RespondDomainError отвечает статусом по виду ошибки
// Пустое сообщение заменяется общим текстом для этого вида
func RespondDomainError(w http.ResponseWriter, err error, message string) {
	status := StatusForError(err)
	if message == "" {
		message = defaultMessage(status)
	}
	RespondError(w, status, message)
}

func defaultMessage(status int) string {
	switch status {
	case http.StatusNotFound:
		return msgNotFound
	case http.StatusConflict:
		return msgConflict
	case http.StatusBadRequest:
		return msgValidation
	case http.StatusForbidden:
		return msgForbidden
	case http.StatusBadGateway:
		return msgPaymentGateway
	case http.StatusServiceUnavailable:
		return msgServiceUnavailable
	default:
		return msgInternalError
	}
}

// IsServerError true для ошибок, которые стоит логировать как Error
func IsServerError(err error) bool {
	return StatusForError(err) >= http.StatusInternalServerError
}

// DecodeJSON декодирует тело запроса и проверяет validate теги
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}

	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	return nil
}

// PathInt64 извлекает положительный int64 параметр из URL
func PathInt64(r *http.Request, name string) (int64, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return 0, fmt.Errorf("missing path parameter %s", name)
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("invalid path parameter %s=%q", name, raw)
	}
	return value, nil
}

// QueryDate парсит опциональную дату YYYY-MM-DD из query
func QueryDate(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	date, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return &date, nil
}

// QueryInt64 парсит опциональный int64 из query
func QueryInt64(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return &value, nil
}
