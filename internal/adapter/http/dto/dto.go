package dto

// VoucherDraft is the wire form of the payload a device signs offline.
// Amount is a string with exactly two decimal places so the signed bytes
// are unambiguous across platforms. Fields carry no binding rules on
// purpose: one malformed voucher in a batch must fail only that item,
// never the whole request, so validation happens per item downstream.
type VoucherDraft struct {
	SenderWalletID    string `json:"sender_wallet_id"`
	ReceiverPublicKey string `json:"receiver_public_key"`
	Amount            string `json:"amount"`
	Currency          string `json:"currency"`
	Nonce             string `json:"nonce"`
	Timestamp         string `json:"timestamp"`
}

// Receipt is the wire form of an offline payment receipt.
type Receipt struct {
	Version           string `json:"version"`
	Type              string `json:"type"`
	SenderWalletID    string `json:"sender_wallet_id"`
	ReceiverPublicKey string `json:"receiver_public_key"`
	Amount            string `json:"amount"`
	Currency          string `json:"currency"`
	Nonce             string `json:"nonce"`
	Signature         string `json:"signature"`
	Timestamp         string `json:"timestamp"`
	ReceiptHash       string `json:"receipt_hash"`
}

// SyncItem is one signed voucher inside a sync batch. A missing
// signature is a per-item outcome, not a bind failure.
type SyncItem struct {
	Draft             VoucherDraft `json:"draft"`
	Signature         string       `json:"signature"`
	Receipt           *Receipt     `json:"receipt,omitempty"`
	DeviceFingerprint *string      `json:"device_fingerprint,omitempty"`
}

// SyncRequest is the request body for batch voucher synchronization.
type SyncRequest struct {
	Vouchers []SyncItem `json:"vouchers" binding:"required,min=1"`
}

// ItemResult is the per-voucher outcome inside a sync response.
type ItemResult struct {
	Reference     string  `json:"reference"`
	Result        string  `json:"result"`
	ErrorReason   *string `json:"error_reason,omitempty"`
	TransactionID *string `json:"transaction_id,omitempty"`
}

// SyncResponse is the itemized outcome of a sync batch.
type SyncResponse struct {
	Results         []ItemResult `json:"results"`
	TotalSynced     int          `json:"total_synced"`
	TotalFailed     int          `json:"total_failed"`
	TotalRolledBack int          `json:"total_rolled_back"`
}

// PrepareDraftRequest asks the server to assemble an unsigned draft with
// a fresh nonce for the device to sign.
type PrepareDraftRequest struct {
	SenderWalletID    string `json:"sender_wallet_id" binding:"required,uuid"`
	ReceiverPublicKey string `json:"receiver_public_key" binding:"required"`
	Amount            string `json:"amount" binding:"required,money"`
	Currency          string `json:"currency" binding:"required,len=3"`
}

// VerifyReceiptRequest is the request body for offline receipt
// verification.
type VerifyReceiptRequest struct {
	Receipt         Receipt `json:"receipt" binding:"required"`
	Signature       string  `json:"signature" binding:"required"`
	SenderPublicKey string  `json:"sender_public_key" binding:"required"`
}

// VerifyReceiptResponse reports the two independent receipt checks.
type VerifyReceiptResponse struct {
	Valid          bool `json:"valid"`
	SignatureValid bool `json:"signature_valid"`
	HashValid      bool `json:"hash_valid"`
}

// ConfirmResponse is the response body for voucher settlement.
type ConfirmResponse struct {
	TransactionID   string `json:"transaction_id"`
	Amount          string `json:"amount"`
	ReceiverBalance string `json:"receiver_balance"`
	Status          string `json:"status"`
}

// TransactionResponse is the wire form of a synced voucher record.
type TransactionResponse struct {
	ID                string  `json:"id"`
	SenderWalletID    string  `json:"sender_wallet_id"`
	ReceiverPublicKey string  `json:"receiver_public_key"`
	Amount            string  `json:"amount"`
	Currency          string  `json:"currency"`
	Nonce             string  `json:"nonce"`
	ReceiptHash       string  `json:"receipt_hash"`
	Status            string  `json:"status"`
	DeviceTimestamp   string  `json:"device_timestamp"`
	SyncedAt          string  `json:"synced_at"`
	ConfirmedAt       *string `json:"confirmed_at,omitempty"`
}

// TransactionListResponse wraps a voucher history page.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Count int                   `json:"count"`
}

// WalletBalance is one wallet's balance in the balance response.
type WalletBalance struct {
	WalletID   string  `json:"wallet_id"`
	WalletType string  `json:"wallet_type"`
	Currency   string  `json:"currency"`
	Balance    string  `json:"balance"`
	MaxBalance *string `json:"max_balance,omitempty"`
}

// BalanceResponse lists the caller's wallets and balances.
type BalanceResponse struct {
	Wallets []WalletBalance `json:"wallets"`
}

// TokenRequest exchanges a verified user ID for a bearer token.
// Identity verification itself is an external collaborator's job.
type TokenRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

// TokenResponse carries an issued bearer token.
type TokenResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"`
}

// TopUpRequest is the request body for an offline wallet top-up.
type TopUpRequest struct {
	Amount   string `json:"amount" binding:"required,money"`
	Currency string `json:"currency" binding:"required,len=3"`
}

// TopUpRequestResponse carries the confirmable top-up reference.
type TopUpRequestResponse struct {
	Reference string `json:"reference"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	ExpiresAt string `json:"expires_at"`
}

// TopUpConfirmRequest confirms a previously requested top-up.
type TopUpConfirmRequest struct {
	Reference string `json:"reference" binding:"required,uuid"`
}

// TopUpConfirmResponse reports the applied top-up.
type TopUpConfirmResponse struct {
	OfflineWalletID string `json:"offline_wallet_id"`
	NewBalance      string `json:"new_balance"`
}
