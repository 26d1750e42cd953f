package get_provider_bookings

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// date задает один день, startDate/endDate задают период
func ToServiceRequest(r *http.Request, providerID, actorID int64) (*models.GetProviderBookingsRequest, error) {
	req := &models.GetProviderBookingsRequest{
		ActorID:    actorID,
		ProviderID: providerID,
	}

	query := r.URL.Query()

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		return nil, err
	}
	if date != nil {
		req.StartDate = date
		req.EndDate = date
	} else {
		if req.StartDate, err = handlers.QueryDate(r, "startDate"); err != nil {
			return nil, err
		}
		if req.EndDate, err = handlers.QueryDate(r, "endDate"); err != nil {
			return nil, err
		}
	}

	if raw := query.Get("includeCancelled"); raw != "" {
		includeCancelled, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid includeCancelled value: %w", err)
		}
		req.IncludeCancelled = includeCancelled
	}

	return req, nil
}
