package constant

import "time"

// TimeConstants defines refresh and warning thresholds
const (
	// DefaultRefreshInterval is the default interval between license re-validations
	DefaultRefreshInterval = time.Hour
	// ExpiryDaysToUrgentWarn is the threshold (in days) for urgent expiry warnings
	ExpiryDaysToUrgentWarn = 7
	// ExpiryDaysToNormalWarn is the threshold (in days) for normal expiry warnings
	ExpiryDaysToNormalWarn = 30
)
