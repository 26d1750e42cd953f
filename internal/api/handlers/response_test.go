package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("x: %w", domain.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("x: %w", domain.ErrConflict), http.StatusConflict},
		{fmt.Errorf("x: %w", domain.ErrInvalidTransition), http.StatusConflict},
		{fmt.Errorf("x: %w", domain.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("x: %w", domain.ErrAccessDenied), http.StatusForbidden},
		{fmt.Errorf("x: %w", domain.ErrPaymentGateway), http.StatusBadGateway},
		{fmt.Errorf("x: %w", domain.ErrPersistence), http.StatusServiceUnavailable},
		{errors.New("unknown"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusForError(tt.err), tt.err.Error())
	}
}

func TestRespondDomainError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondDomainError(rec, fmt.Errorf("x: %w", domain.ErrConflict), "")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"`+msgConflict+`"}`, rec.Body.String())
}

type decodeTarget struct {
	Name  string `json:"name" validate:"required"`
	Count int    `json:"count" validate:"gte=1"`
}

func TestDecodeJSON(t *testing.T) {
	var dst decodeTarget
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a","count":2}`))
	require.NoError(t, DecodeJSON(req, &dst))
	assert.Equal(t, "a", dst.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"","count":2}`))
	assert.Error(t, DecodeJSON(req, &dst))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a","count":1,"extra":true}`))
	assert.Error(t, DecodeJSON(req, &dst))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	assert.Error(t, DecodeJSON(req, &dst))
}

func TestPathInt64(t *testing.T) {
	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"bookingId": "42"})
	id, err := PathInt64(req, "bookingId")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	req = mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"bookingId": "-1"})
	_, err = PathInt64(req, "bookingId")
	assert.Error(t, err)

	_, err = PathInt64(httptest.NewRequest(http.MethodGet, "/", nil), "bookingId")
	assert.Error(t, err)
}

func TestQueryHelpers(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?date=2025-10-13&serviceId=7", nil)

	date, err := QueryDate(req, "date")
	require.NoError(t, err)
	require.NotNil(t, date)
	assert.Equal(t, "2025-10-13", date.Format(domain.DateFormat))

	id, err := QueryInt64(req, "serviceId")
	require.NoError(t, err)
	assert.Equal(t, int64(7), *id)

	missing, err := QueryDate(req, "fromDate")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = QueryDate(httptest.NewRequest(http.MethodGet, "/?date=13.10.2025", nil), "date")
	assert.Error(t, err)
}
