package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AppError is a structured error that maps to HTTP responses. Code is a
// stable machine-readable reason; the same codes appear verbatim in
// itemized batch sync results.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// CodeOf extracts the machine code from any error. Unknown errors map to
// INTERNAL_ERROR so batch results never leak internal detail.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "INTERNAL_ERROR"
}

// ---- Validation (malformed / missing input) ----

func ErrMissingFields(fields []string) *AppError {
	return New("MISSING_FIELDS",
		fmt.Sprintf("Required voucher fields missing: %s", strings.Join(fields, ", ")),
		http.StatusBadRequest)
}

func ErrInvalidTimestamp() *AppError {
	return New("INVALID_TIMESTAMP", "Device timestamp is not a valid RFC 3339 value", http.StatusBadRequest)
}

func ErrInvalidAmount() *AppError {
	return New("INVALID_AMOUNT", "Amount is not a valid decimal value", http.StatusBadRequest)
}

func ErrAmountNotPositive() *AppError {
	return New("AMOUNT_NOT_POSITIVE", "Amount must be greater than zero", http.StatusBadRequest)
}

// Validation returns a generic field-validation error.
func Validation(message string) *AppError {
	return New("VALIDATION_ERROR", message, http.StatusBadRequest)
}

func ErrBatchTooLarge(max int) *AppError {
	return New("BATCH_TOO_LARGE",
		fmt.Sprintf("Sync batch exceeds the maximum of %d vouchers", max),
		http.StatusRequestEntityTooLarge)
}

// ---- Authenticity ----

func ErrMissingSignature() *AppError {
	return New("MISSING_SIGNATURE", "Voucher signature is missing", http.StatusBadRequest)
}

func ErrInvalidSignature() *AppError {
	return New("INVALID_SIGNATURE", "Voucher signature does not verify against the sender's public key", http.StatusUnauthorized)
}

// ---- Replay defense ----

func ErrDuplicateNonce() *AppError {
	return New("DUPLICATE_NONCE", "A voucher with this nonce has already been accepted", http.StatusConflict)
}

func ErrTooOld(maxAge time.Duration) *AppError {
	return New("TOO_OLD",
		fmt.Sprintf("Voucher is older than the %s acceptance window", maxAge),
		http.StatusBadRequest)
}

func ErrFutureTimestamp() *AppError {
	return New("FUTURE_TIMESTAMP", "Voucher timestamp is in the future", http.StatusBadRequest)
}

// ---- Ledger ----

func ErrInsufficientBalance(shortfall decimal.Decimal) *AppError {
	return New("INSUFFICIENT_BALANCE",
		fmt.Sprintf("Insufficient wallet balance, short by %s", shortfall.StringFixed(2)),
		http.StatusPaymentRequired)
}

func ErrWalletNotFound() *AppError {
	return New("WALLET_NOT_FOUND", "Wallet not found", http.StatusNotFound)
}

func ErrWalletInactive() *AppError {
	return New("WALLET_INACTIVE", "Wallet is not active", http.StatusBadRequest)
}

func ErrMaxBalanceExceeded(max decimal.Decimal) *AppError {
	return New("MAX_BALANCE_EXCEEDED",
		fmt.Sprintf("Operation would exceed the maximum offline wallet balance of %s", max.StringFixed(2)),
		http.StatusUnprocessableEntity)
}

// ---- State transitions ----

func ErrCannotConfirm(status string) *AppError {
	return New("CANNOT_CONFIRM",
		fmt.Sprintf("Transaction cannot be confirmed from status %q", status),
		http.StatusConflict)
}

func ErrNotFound(entity string) *AppError {
	return New("NOT_FOUND", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- Authentication / authorization ----

func ErrUnauthorized() *AppError {
	return New("UNAUTHORIZED", "Caller is not allowed to act on this resource", http.StatusForbidden)
}

func ErrInvalidToken() *AppError {
	return New("INVALID_TOKEN", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- System & persistence ----

func ErrPersistence(err error) *AppError {
	return Wrap("PERSISTENCE_ERROR", "Ledger commit failed", http.StatusInternalServerError, err)
}

// InternalError wraps an unexpected internal error.
func InternalError(err error) *AppError {
	return Wrap("INTERNAL_ERROR", "Internal server error", http.StatusInternalServerError, err)
}
