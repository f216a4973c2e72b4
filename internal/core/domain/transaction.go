package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionStatus is the lifecycle state of a synced voucher.
type TransactionStatus string

const (
	// TransactionStatusSynced means the voucher was accepted and the
	// sender's balance deducted; funds are not yet settled.
	TransactionStatusSynced TransactionStatus = "synced"
	// TransactionStatusConfirmed means settlement credited the
	// receiver's custodial account.
	TransactionStatusConfirmed TransactionStatus = "confirmed"
)

// TransactionRecord is the persisted form of an accepted voucher. Records
// are never deleted; the nonce is globally unique forever and is the
// durable replay-defense arbiter.
type TransactionRecord struct {
	ID                uuid.UUID         `json:"id"`
	SenderWalletID    uuid.UUID         `json:"sender_wallet_id"`
	ReceiverPublicKey string            `json:"receiver_public_key"`
	Amount            decimal.Decimal   `json:"amount"`
	Currency          string            `json:"currency"`
	Signature         string            `json:"-"`
	Nonce             string            `json:"nonce"`
	ReceiptHash       string            `json:"receipt_hash"`
	ReceiptPayload    []byte            `json:"-"`
	Status            TransactionStatus `json:"status"`
	DeviceTimestamp   time.Time         `json:"device_timestamp"`
	DeviceFingerprint *string           `json:"device_fingerprint,omitempty"`
	SyncedAt          time.Time         `json:"synced_at"`
	ConfirmedAt       *time.Time        `json:"confirmed_at,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
}

// CanConfirm reports whether settlement may proceed from the current
// status. Only synced records confirm; a second confirm is a state error.
func (t *TransactionRecord) CanConfirm() bool {
	return t.Status == TransactionStatusSynced
}
