package domain

import (
	"time"

	"github.com/google/uuid"
)

// VoucherDraft is the exact payload a sender signs while offline. The
// field set and their canonical ordering are part of the signing
// contract: signer and verifier must produce byte-identical canonical
// forms. Amount stays a string (two decimal places) so the signed bytes
// are unambiguous.
type VoucherDraft struct {
	SenderWalletID    uuid.UUID `json:"sender_wallet_id"`
	ReceiverPublicKey string    `json:"receiver_public_key"`
	Amount            string    `json:"amount"`
	Currency          string    `json:"currency"`
	Nonce             string    `json:"nonce"`
	Timestamp         string    `json:"timestamp"` // RFC 3339 device time
}

// CanonicalMap returns the draft's fields keyed by their wire names,
// ready for key-sorted canonicalization.
func (d VoucherDraft) CanonicalMap() map[string]any {
	return map[string]any{
		"sender_wallet_id":    d.SenderWalletID.String(),
		"receiver_public_key": d.ReceiverPublicKey,
		"amount":              d.Amount,
		"currency":            d.Currency,
		"nonce":               d.Nonce,
		"timestamp":           d.Timestamp,
	}
}

// MissingFields lists required fields that are absent, in wire-name form.
func (d VoucherDraft) MissingFields() []string {
	var missing []string
	if d.SenderWalletID == uuid.Nil {
		missing = append(missing, "sender_wallet_id")
	}
	if d.ReceiverPublicKey == "" {
		missing = append(missing, "receiver_public_key")
	}
	if d.Amount == "" {
		missing = append(missing, "amount")
	}
	if d.Currency == "" {
		missing = append(missing, "currency")
	}
	if d.Nonce == "" {
		missing = append(missing, "nonce")
	}
	if d.Timestamp == "" {
		missing = append(missing, "timestamp")
	}
	return missing
}

// DeviceTime parses the draft's device timestamp.
func (d VoucherDraft) DeviceTime() (time.Time, error) {
	return time.Parse(time.RFC3339, d.Timestamp)
}

// SignedVoucher is a draft plus the sender's signature and the receipt
// handed to the receiver at payment time.
type SignedVoucher struct {
	Draft             VoucherDraft `json:"draft"`
	Signature         string       `json:"signature"`
	Receipt           *Receipt     `json:"receipt,omitempty"`
	DeviceFingerprint *string      `json:"device_fingerprint,omitempty"`
}

// Receipt is the tamper-evident record a receiver can verify fully
// offline. ReceiptHash covers every field except itself.
type Receipt struct {
	Version           string    `json:"version"`
	Kind              string    `json:"type"`
	SenderWalletID    uuid.UUID `json:"sender_wallet_id"`
	ReceiverPublicKey string    `json:"receiver_public_key"`
	Amount            string    `json:"amount"`
	Currency          string    `json:"currency"`
	Nonce             string    `json:"nonce"`
	Signature         string    `json:"signature"`
	Timestamp         string    `json:"timestamp"`
	ReceiptHash       string    `json:"receipt_hash"`
}

// ReceiptVersion and ReceiptKind identify the receipt format on the wire.
const (
	ReceiptVersion = "1.0"
	ReceiptKind    = "offline_payment_receipt"
)

// CanonicalMap returns the receipt's fields keyed by wire names. The
// receipt_hash field is included only when withHash is true; hashing
// always uses the withHash=false form.
func (r Receipt) CanonicalMap(withHash bool) map[string]any {
	m := map[string]any{
		"version":             r.Version,
		"type":                r.Kind,
		"sender_wallet_id":    r.SenderWalletID.String(),
		"receiver_public_key": r.ReceiverPublicKey,
		"amount":              r.Amount,
		"currency":            r.Currency,
		"nonce":               r.Nonce,
		"signature":           r.Signature,
		"timestamp":           r.Timestamp,
	}
	if withHash {
		m["receipt_hash"] = r.ReceiptHash
	}
	return m
}

// Draft reconstructs the signed payload embedded in the receipt, for
// offline signature verification by the receiver.
func (r Receipt) Draft() VoucherDraft {
	return VoucherDraft{
		SenderWalletID:    r.SenderWalletID,
		ReceiverPublicKey: r.ReceiverPublicKey,
		Amount:            r.Amount,
		Currency:          r.Currency,
		Nonce:             r.Nonce,
		Timestamp:         r.Timestamp,
	}
}
