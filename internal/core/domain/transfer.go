package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer is the immutable audit record of a completed balance movement.
// Amount is the value debited from the sender, in the sender's currency.
type Transfer struct {
	TransferID        string          `json:"transferID"` // Primary Key (UUID)
	SenderAccountID   string          `json:"senderAccountID"`
	ReceiverAccountID string          `json:"receiverAccountID"`
	Amount            decimal.Decimal `json:"amount"`
	ConvertedAmount   decimal.Decimal `json:"convertedAmount"` // Credited to the receiver, in its currency
	CreatedAt         time.Time       `json:"createdAt"`
}

// Posting is a validated, priced balance movement waiting to be applied by
// the ledger. Debit leaves the sender; Credit reaches the receiver.
type Posting struct {
	TransferID        string
	SenderAccountID   string
	ReceiverAccountID string
	Debit             decimal.Decimal
	Credit            decimal.Decimal
	At                time.Time
}
