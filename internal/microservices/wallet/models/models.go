package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindDeposit  Kind = "deposit"
	KindPayment  Kind = "payment"
	KindRefund   Kind = "refund"
	KindTransfer Kind = "transfer"
)

// Channel records where a transfer was started from.
type Channel string

const (
	ChannelWallet Channel = "wallet"
	ChannelChat   Channel = "chat"
)

// Transaction is one ledger entry. From is empty for money entering the
// system (deposit, refund) and To is empty for money leaving it (payment).
type Transaction struct {
	ID        string          `json:"id"`
	From      string          `json:"from,omitempty"`
	To        string          `json:"to,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Kind      Kind            `json:"type"`
	Channel   Channel         `json:"channel,omitempty"`
	Reference string          `json:"reference,omitempty"`
	CreatedAt time.Time       `json:"date"`
}

// Summary is the wallet page: balance plus the caller's history.
type Summary struct {
	Balance      decimal.Decimal `json:"balance"`
	Transactions []Transaction   `json:"transactions"`
}
