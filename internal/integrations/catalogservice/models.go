package catalogservice

// Provider модель провайдера из каталога
type Provider struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// Service модель услуги провайдера из каталога
type Service struct {
	ID              int64    `json:"id"`
	ProviderID      int64    `json:"provider_id"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"duration_minutes"`
	Price           *float64 `json:"price"`
}

// PriceOrZero цена услуги, 0 для бесплатных
func (s *Service) PriceOrZero() float64 {
	if s.Price == nil {
		return 0
	}
	return *s.Price
}

// ErrorResponse модель ошибки от каталога
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
