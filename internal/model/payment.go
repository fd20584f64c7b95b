package model

import "time"

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentApproved PaymentStatus = "approved"
	PaymentRejected PaymentStatus = "rejected"
)

// PaymentRequest is a manual QR-payment upgrade request. It is created by a
// user, mutated only by admin action, and terminal once approved or rejected.
type PaymentRequest struct {
	ID            string        `json:"id"`
	UserID        string        `json:"userId"`
	UserName      string        `json:"userName"`
	UserEmail     string        `json:"userEmail"`
	Amount        int           `json:"amount"`
	Status        PaymentStatus `json:"status"`
	Date          time.Time     `json:"date"`
	TransactionID string        `json:"transactionId,omitempty"`
}

func (p PaymentRequest) Terminal() bool {
	return p.Status == PaymentApproved || p.Status == PaymentRejected
}
