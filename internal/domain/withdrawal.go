package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type WithdrawalStatus string

const (
	WithdrawalStatusPending    WithdrawalStatus = "pending"
	WithdrawalStatusProcessing WithdrawalStatus = "processing"
	WithdrawalStatusApproved   WithdrawalStatus = "approved"
	WithdrawalStatusRejected   WithdrawalStatus = "rejected"
	WithdrawalStatusPaid       WithdrawalStatus = "paid"
)

// CountsAgainstBalance reports whether a withdrawal in this status still claims
// funds from the expert's earned pool. Everything except rejected does.
func (s WithdrawalStatus) CountsAgainstBalance() bool {
	return s != WithdrawalStatusRejected
}

// BankSnapshot is an immutable copy of the payout destination, frozen at
// request time. It is never re-read from the live bank account record, so the
// audit trail survives later edits to the destination.
type BankSnapshot struct {
	Bank          string `json:"bank"`
	AccountType   string `json:"account_type"`
	AccountNumber string `json:"account_number"`
	HolderName    string `json:"holder_name"`
	DocumentID    string `json:"document_id"`
}

// Withdrawal is an expert's request to cash out a portion of earned revenue.
type Withdrawal struct {
	ID                    int64            `json:"id"`
	ExpertID              int64            `json:"expert_id"`
	Amount                decimal.Decimal  `json:"amount"`
	Currency              string           `json:"currency"`
	Status                WithdrawalStatus `json:"status"`
	RequestedAt           time.Time        `json:"requested_at"`
	ProcessedAt           *time.Time       `json:"processed_at,omitempty"`
	TransactionRef        string           `json:"transaction_ref,omitempty"`
	AdminNotes            string           `json:"admin_notes,omitempty"`
	BankSnapshot          BankSnapshot     `json:"bank_snapshot"`
	CommissionRateApplied decimal.Decimal  `json:"commission_rate_applied"`
}
