package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New("DUPLICATE_NONCE", "Nonce already used", http.StatusConflict),
			expected: "[DUPLICATE_NONCE] Nonce already used",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("PERSISTENCE_ERROR", "Ledger commit failed", http.StatusInternalServerError, fmt.Errorf("connection refused")),
			expected: "[PERSISTENCE_ERROR] Ledger commit failed: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := Wrap("INTERNAL_ERROR", "wrapped", http.StatusInternalServerError, inner)

	assert.True(t, errors.Is(appErr, inner))
}

func TestAppError_IsNilUnwrap(t *testing.T) {
	appErr := New("INVALID_AMOUNT", "test", http.StatusBadRequest)
	assert.Nil(t, appErr.Unwrap())
}

func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"MissingFields", ErrMissingFields([]string{"nonce", "amount"}), "MISSING_FIELDS", 400},
		{"InvalidTimestamp", ErrInvalidTimestamp(), "INVALID_TIMESTAMP", 400},
		{"InvalidAmount", ErrInvalidAmount(), "INVALID_AMOUNT", 400},
		{"AmountNotPositive", ErrAmountNotPositive(), "AMOUNT_NOT_POSITIVE", 400},
		{"BatchTooLarge", ErrBatchTooLarge(100), "BATCH_TOO_LARGE", 413},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestMissingFields_ListsFields(t *testing.T) {
	err := ErrMissingFields([]string{"nonce", "currency"})
	assert.Contains(t, err.Message, "nonce")
	assert.Contains(t, err.Message, "currency")
}

func TestAuthenticityAndReplayErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"MissingSignature", ErrMissingSignature(), "MISSING_SIGNATURE", 400},
		{"InvalidSignature", ErrInvalidSignature(), "INVALID_SIGNATURE", 401},
		{"DuplicateNonce", ErrDuplicateNonce(), "DUPLICATE_NONCE", 409},
		{"TooOld", ErrTooOld(5 * time.Minute), "TOO_OLD", 400},
		{"FutureTimestamp", ErrFutureTimestamp(), "FUTURE_TIMESTAMP", 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestLedgerErrors(t *testing.T) {
	shortfall := decimal.RequireFromString("12.50")
	insufficient := ErrInsufficientBalance(shortfall)
	assert.Equal(t, "INSUFFICIENT_BALANCE", insufficient.Code)
	assert.Equal(t, 402, insufficient.HTTPStatus)
	assert.Contains(t, insufficient.Message, "12.50")

	max := decimal.RequireFromString("5000.00")
	exceeded := ErrMaxBalanceExceeded(max)
	assert.Equal(t, "MAX_BALANCE_EXCEEDED", exceeded.Code)
	assert.Contains(t, exceeded.Message, "5000.00")

	assert.Equal(t, "WALLET_NOT_FOUND", ErrWalletNotFound().Code)
	assert.Equal(t, "WALLET_INACTIVE", ErrWalletInactive().Code)
}

func TestStateErrors(t *testing.T) {
	err := ErrCannotConfirm("confirmed")
	assert.Equal(t, "CANNOT_CONFIRM", err.Code)
	assert.Equal(t, 409, err.HTTPStatus)
	assert.Contains(t, err.Message, "confirmed")
}

func TestSystemErrors(t *testing.T) {
	inner := fmt.Errorf("pg: connection closed")
	persistErr := ErrPersistence(inner)
	assert.Equal(t, "PERSISTENCE_ERROR", persistErr.Code)
	assert.Equal(t, 500, persistErr.HTTPStatus)
	assert.True(t, errors.Is(persistErr, inner))

	intErr := InternalError(inner)
	assert.Equal(t, "INTERNAL_ERROR", intErr.Code)
	assert.Equal(t, 500, intErr.HTTPStatus)
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, "DUPLICATE_NONCE", CodeOf(ErrDuplicateNonce()))
	assert.Equal(t, "DUPLICATE_NONCE", CodeOf(fmt.Errorf("wrapped: %w", ErrDuplicateNonce())))
	assert.Equal(t, "INTERNAL_ERROR", CodeOf(fmt.Errorf("plain error")))
}
