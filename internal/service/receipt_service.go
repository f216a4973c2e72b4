package service

import (
	"offline-voucher-sync/internal/core/domain"
	"offline-voucher-sync/internal/core/ports"

	"github.com/rs/zerolog"
)

// ReceiptServiceImpl builds and verifies tamper-evident payment receipts.
// A receipt is self-contained: given the sender's public key, a receiver
// can verify it with no server connectivity at all.
type ReceiptServiceImpl struct {
	crypto ports.CryptoService
	logger zerolog.Logger
}

// NewReceiptService creates the receipt service.
func NewReceiptService(crypto ports.CryptoService, logger zerolog.Logger) *ReceiptServiceImpl {
	return &ReceiptServiceImpl{
		crypto: crypto,
		logger: logger.With().Str("component", "receipt_service").Logger(),
	}
}

// Build produces the canonical receipt for a signed draft. The receipt
// hash covers every field except itself.
func (s *ReceiptServiceImpl) Build(draft domain.VoucherDraft, signature string) (*domain.Receipt, error) {
	receipt := &domain.Receipt{
		Version:           domain.ReceiptVersion,
		Kind:              domain.ReceiptKind,
		SenderWalletID:    draft.SenderWalletID,
		ReceiverPublicKey: draft.ReceiverPublicKey,
		Amount:            draft.Amount,
		Currency:          draft.Currency,
		Nonce:             draft.Nonce,
		Signature:         signature,
		Timestamp:         draft.Timestamp,
	}

	hash, err := s.crypto.HashObject(receipt.CanonicalMap(false))
	if err != nil {
		return nil, err
	}
	receipt.ReceiptHash = hash
	return receipt, nil
}

// Verify runs the two independent receipt checks: the hash is recomputed
// over the receipt with receipt_hash stripped, and the embedded signature
// is verified against the claimed sender public key. Valid means both
// passed.
func (s *ReceiptServiceImpl) Verify(receipt domain.Receipt, signature string, senderPublicKey string) ports.ReceiptVerification {
	var v ports.ReceiptVerification

	recomputed, err := s.crypto.HashObject(receipt.CanonicalMap(false))
	if err == nil && recomputed == receipt.ReceiptHash && receipt.ReceiptHash != "" {
		v.HashValid = true
	}

	v.SignatureValid = s.crypto.VerifyDraft(receipt.Draft(), signature, senderPublicKey)

	v.Valid = v.HashValid && v.SignatureValid
	return v
}
