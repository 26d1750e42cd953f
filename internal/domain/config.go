package domain

import "time"

// ScheduleConfig holds slot settings of a provider.
// Supports hierarchical configuration:
// 1. Service-specific (provider_id, service_id)
// 2. Provider-wide (provider_id, NULL)
// 3. Service defaults from the config file
type ScheduleConfig struct {
	ID                      int64
	ProviderID              int64
	ServiceID               *int64 // NULL = config for all services
	SlotIntervalMinutes     int
	MinBookingNoticeMinutes int
	AdvanceBookingDays      int // 0 = unlimited
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// IsProviderWide returns true if the config applies to every service of the provider
func (c *ScheduleConfig) IsProviderWide() bool {
	return c.ServiceID == nil
}

// IsDefault returns true if the config was not loaded from storage
func (c *ScheduleConfig) IsDefault() bool {
	return c.ID == 0
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (c *ScheduleConfig) HasAdvanceBookingLimit() bool {
	return c.AdvanceBookingDays > 0
}

// DefaultScheduleConfig returns the built-in defaults
func DefaultScheduleConfig() ScheduleConfig {
	return ScheduleConfig{
		SlotIntervalMinutes:     DefaultSlotIntervalMinutes,
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
	}
}
