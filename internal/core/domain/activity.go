package domain

import "time"

// ActivityAction labels the kind of account activity being recorded.
type ActivityAction string

const (
	ActivityRegistered        ActivityAction = "registered"
	ActivityLoggedIn          ActivityAction = "logged_in"
	ActivityCalculationCreate ActivityAction = "calculation_created"
	ActivityCalculationUpdate ActivityAction = "calculation_updated"
	ActivityCalculationDelete ActivityAction = "calculation_deleted"
)

// ActivityEvent is an append-only audit record of one user action.
type ActivityEvent struct {
	UserID        string         `json:"user_id"`
	Action        ActivityAction `json:"action"`
	CalculationID string         `json:"calculation_id,omitempty"`
	Timestamp     time.Time      `json:"timestamp"`
}
