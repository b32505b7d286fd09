package enums

import "fmt"

// ScheduleStatus tracks the lifecycle of a meal booking.
type ScheduleStatus string

const (
	ScheduleStatusScheduled ScheduleStatus = "scheduled"
	ScheduleStatusCancelled ScheduleStatus = "cancelled"
	ScheduleStatusFulfilled ScheduleStatus = "fulfilled"
)

var validScheduleStatuses = []ScheduleStatus{
	ScheduleStatusScheduled,
	ScheduleStatusCancelled,
	ScheduleStatusFulfilled,
}

// String implements fmt.Stringer.
func (s ScheduleStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ScheduleStatus.
func (s ScheduleStatus) IsValid() bool {
	for _, candidate := range validScheduleStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseScheduleStatus converts raw input into a ScheduleStatus.
func ParseScheduleStatus(value string) (ScheduleStatus, error) {
	for _, candidate := range validScheduleStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid schedule status %q", value)
}
