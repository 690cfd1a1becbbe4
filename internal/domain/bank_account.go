package domain

import "time"

// BankAccount is a payout destination registered by an expert. Withdrawals
// copy it into a BankSnapshot at request time and never read it again.
type BankAccount struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	Bank          string    `json:"bank"`
	AccountType   string    `json:"account_type"`
	AccountNumber string    `json:"account_number"`
	HolderName    string    `json:"holder_name"`
	DocumentID    string    `json:"document_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// Snapshot freezes the destination for audit purposes.
func (b *BankAccount) Snapshot() BankSnapshot {
	return BankSnapshot{
		Bank:          b.Bank,
		AccountType:   b.AccountType,
		AccountNumber: b.AccountNumber,
		HolderName:    b.HolderName,
		DocumentID:    b.DocumentID,
	}
}
