package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUnauthorized - удаленный API ответил 401. Восстановить локально нельзя,
	// сессию сбрасывает наблюдатель верхнего уровня.
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	// ErrTransport - запрос не дошел до сервера или ответ не удалось прочитать.
	ErrTransport = errors.New("transport failure")

	ErrLoginRequired  = errors.New("login required")
	ErrPageOutOfRange = errors.New("page out of range")
)

// DefaultErrorMessage используется, когда сервер не прислал собственного сообщения.
const DefaultErrorMessage = "Something went wrong. Please try again."

type FieldError struct {
	Field   string
	Message string
}

// APIError - структурированная ошибка удаленного API.
type APIError struct {
	StatusCode int
	Message    string
	Fields     []FieldError
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("api error %d: %s (%s)", e.StatusCode, e.Message, strings.Join(parts, "; "))
}

func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case e.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case len(e.Fields) > 0 && (e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity):
		return ErrValidation
	}
	return nil
}

// ValidationError - ошибки полей, найденные до отправки запроса.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// FieldErrors собирает ошибки полей из любой ошибки валидации (локальной или серверной).
func FieldErrors(err error) []FieldError {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Fields
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Fields
	}
	return nil
}

// FieldErrorMap - ошибки по имени поля для вывода под соответствующим инпутом.
func FieldErrorMap(err error) map[string]string {
	fields := FieldErrors(err)
	if len(fields) == 0 {
		return nil
	}
	m := make(map[string]string, len(fields))
	for _, f := range fields {
		if _, exists := m[f.Field]; !exists {
			m[f.Field] = f.Message
		}
	}
	return m
}

// UserMessage возвращает сообщение для пользователя: серверное, если оно есть, иначе fallback.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
