package enums

import "fmt"

// ReportKind names the tabular reports the service can produce.
type ReportKind string

const (
	ReportKindInventoryFull    ReportKind = "inventory_full"
	ReportKindLowStock         ReportKind = "low_stock"
	ReportKindScheduleActivity ReportKind = "schedule_activity"
)

var validReportKinds = []ReportKind{
	ReportKindInventoryFull,
	ReportKindLowStock,
	ReportKindScheduleActivity,
}

// String implements fmt.Stringer.
func (r ReportKind) String() string {
	return string(r)
}

// IsValid reports whether the value is a known ReportKind.
func (r ReportKind) IsValid() bool {
	for _, candidate := range validReportKinds {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseReportKind converts raw input into a ReportKind.
func ParseReportKind(value string) (ReportKind, error) {
	for _, candidate := range validReportKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid report kind %q", value)
}
