package types

import "time"

// HealthState represents the health state of a system component.
type HealthState string

const (
	HealthStateHealthy   HealthState = "healthy"
	HealthStateDegraded  HealthState = "degraded"
	HealthStateUnhealthy HealthState = "unhealthy"
)

// String returns the string representation of HealthState.
func (s HealthState) String() string {
	return string(s)
}

// HealthStatus represents the health status of a system component with
// state, message, and timestamp information.
type HealthStatus struct {
	State     HealthState `json:"state"`
	Message   string      `json:"message,omitempty"`
	CheckedAt time.Time   `json:"checked_at"`
}

// NewHealthStatus creates a HealthStatus with the given state and message,
// stamped with the current time.
func NewHealthStatus(state HealthState, message string) HealthStatus {
	return HealthStatus{
		State:     state,
		Message:   message,
		CheckedAt: time.Now(),
	}
}

// Healthy creates a healthy status with the given message.
func Healthy(message string) HealthStatus {
	return NewHealthStatus(HealthStateHealthy, message)
}

// Unhealthy creates an unhealthy status with the given message.
func Unhealthy(message string) HealthStatus {
	return NewHealthStatus(HealthStateUnhealthy, message)
}

// IsHealthy reports whether the status is in the healthy state.
func (h HealthStatus) IsHealthy() bool {
	return h.State == HealthStateHealthy
}
