package get_provider_bookings

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToServiceRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?date=2025-10-13&status=pending&includeCancelled=true", nil)

	req, err := ToServiceRequest(r, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, req.StartDate, req.EndDate)
	assert.Equal(t, "pending", *req.Status)
	assert.True(t, req.IncludeCancelled)

	r = httptest.NewRequest(http.MethodGet, "/?startDate=2025-10-01&endDate=2025-10-31", nil)
	req, err = ToServiceRequest(r, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, req.StartDate.Day())
	assert.Equal(t, 31, req.EndDate.Day())
	assert.Nil(t, req.Status)

	for _, q := range []string{"?date=tomorrow", "?endDate=31-10-2025", "?includeCancelled=maybe"} {
		_, err := ToServiceRequest(httptest.NewRequest(http.MethodGet, "/"+q, nil), 2, 2)
		assert.Error(t, err, q)
	}
}
