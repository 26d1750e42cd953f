package catalogservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

func newTestClient(t *testing.T, routes map[string]func(w http.ResponseWriter)) *Client {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		handler(w)
	}))
	t.Cleanup(srv.Close)

	return NewClient(srv.URL, time.Second, logger.NewNop())
}

func jsonBody(body string) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func TestGetProvider(t *testing.T) {
	client := newTestClient(t, map[string]func(w http.ResponseWriter){
		"/internal/providers/1": jsonBody(`{"id":1,"name":"Studio","is_active":true}`),
		"/internal/providers/2": jsonBody(`{"id":2,"name":"Closed","is_active":false}`),
	})

	provider, err := client.GetProvider(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Studio", provider.Name)

	_, err = client.GetProvider(context.Background(), 2)
	assert.ErrorIs(t, err, ErrProviderNotFound)

	_, err = client.GetProvider(context.Background(), 3)
	assert.ErrorIs(t, err, ErrProviderNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetService(t *testing.T) {
	client := newTestClient(t, map[string]func(w http.ResponseWriter){
		"/internal/providers/1/services/5": jsonBody(`{"id":5,"provider_id":1,"name":"Massage","duration_minutes":90,"price":2500}`),
		"/internal/providers/1/services/6": jsonBody(`{"id":6,"provider_id":9,"name":"Other","duration_minutes":30}`),
	})

	service, err := client.GetService(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 90, service.DurationMinutes)
	assert.Equal(t, 2500.0, service.PriceOrZero())

	_, err = client.GetService(context.Background(), 1, 6)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestGetService_ServerError(t *testing.T) {
	client := newTestClient(t, map[string]func(w http.ResponseWriter){
		"/internal/providers/1/services/5": func(w http.ResponseWriter) {
			w.WriteHeader(http.StatusBadGateway)
		},
	})

	_, err := client.GetService(context.Background(), 1, 5)
	assert.ErrorIs(t, err, ErrUnavailable)
}
