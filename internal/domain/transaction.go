package domain

import "time"

const (
	TransactionPending = "pending"
	TransactionSettled = "settled"
)

const (
	MethodCash   = "cash"
	MethodUPI    = "upi"
	MethodPayPal = "paypal"
	MethodOther  = "other"
)

// ValidPaymentMethod reports whether m is one of the accepted methods.
func ValidPaymentMethod(m string) bool {
	switch m {
	case MethodCash, MethodUPI, MethodPayPal, MethodOther:
		return true
	}
	return false
}

// Transaction is a repayment from one user to another, optionally tied to a
// group. Status moves pending -> settled, one way.
type Transaction struct {
	ID        string    `json:"id"`
	FromID    string    `json:"from_id"`
	ToID      string    `json:"to_id"`
	Amount    float64   `json:"amount"`
	GroupID   *string   `json:"group_id,omitempty"`
	Status    string    `json:"status"`
	Method    string    `json:"method"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
