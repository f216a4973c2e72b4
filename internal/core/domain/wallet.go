package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WalletType distinguishes custodial server-side wallets from offline
// bearer-key wallets whose funds move via signed vouchers.
type WalletType string

const (
	WalletTypeCustodial WalletType = "custodial"
	WalletTypeOffline   WalletType = "offline"
)

// Wallet represents a user's currency wallet. Balance is an exact decimal;
// it must be >= 0 at every observable state. Offline wallets carry the
// public half of the signing key pair and an optional maximum resting
// balance (nil means the configured default applies).
type Wallet struct {
	ID         uuid.UUID        `json:"id"`
	OwnerID    uuid.UUID        `json:"owner_id"`
	Type       WalletType       `json:"wallet_type"`
	Currency   string           `json:"currency"`
	Balance    decimal.Decimal  `json:"balance"`
	PublicKey  *string          `json:"public_key,omitempty"`
	MaxBalance *decimal.Decimal `json:"max_balance,omitempty"`
	Active     bool             `json:"active"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// IsOffline returns true for offline bearer-key wallets.
func (w *Wallet) IsOffline() bool {
	return w.Type == WalletTypeOffline
}

// RestingLimit returns the wallet's maximum resting balance, falling back
// to the given default when no per-wallet override is set.
func (w *Wallet) RestingLimit(fallback decimal.Decimal) decimal.Decimal {
	if w.MaxBalance != nil {
		return *w.MaxBalance
	}
	return fallback
}
