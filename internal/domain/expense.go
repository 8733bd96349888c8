package domain

import "time"

// Split types accepted on an expense. The field is descriptive only; no split
// computation happens server-side.
const (
	SplitEqual      = "equal"
	SplitExact      = "exact"
	SplitPercentage = "percentage"
)

// ValidSplitType reports whether t is one of the accepted split types.
func ValidSplitType(t string) bool {
	switch t {
	case SplitEqual, SplitExact, SplitPercentage:
		return true
	}
	return false
}

// Expense records a payment made by one user and shared with others.
type Expense struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Amount     float64   `json:"amount"`
	PaidByID   string    `json:"paid_by_id"`
	SharedWith []string  `json:"shared_with"`
	GroupID    *string   `json:"group_id,omitempty"`
	SplitType  string    `json:"split_type"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
