package model

import "strings"

// ValidationResult contains the verdict of a license check.
// Reasons keeps every failure in the order it was detected.
type ValidationResult struct {
	Valid          bool     `json:"valid"`
	Reasons        []string `json:"reasons,omitempty"`
	ExpiryDaysLeft int      `json:"expiryDaysLeft,omitempty"`
	IsTrial        bool     `json:"isTrial,omitempty"`
}

// Success returns a passing result.
func Success() ValidationResult {
	return ValidationResult{Valid: true}
}

// Failure returns a failing result carrying the given reasons.
func Failure(reasons ...string) ValidationResult {
	return ValidationResult{Valid: false, Reasons: reasons}
}

// Message renders the result the way it is shown to operators.
func (r ValidationResult) Message() string {
	if r.Valid {
		return ""
	}

	if len(r.Reasons) == 0 {
		return "Invalid license."
	}

	return "Invalid license. " + strings.Join(r.Reasons, " ")
}

