package handler

import (
	"time"

	"offline-voucher-sync/internal/adapter/http/dto"
	"offline-voucher-sync/internal/core/ports"
	"offline-voucher-sync/pkg/apperror"
	"offline-voucher-sync/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WalletHandler handles wallet balance and top-up endpoints.
type WalletHandler struct {
	ledgerSvc  ports.LedgerService
	walletRepo ports.WalletRepository
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(ledgerSvc ports.LedgerService, walletRepo ports.WalletRepository) *WalletHandler {
	return &WalletHandler{ledgerSvc: ledgerSvc, walletRepo: walletRepo}
}

// Balance handles GET /api/v1/wallets/balance, listing all of the
// caller's wallets.
func (h *WalletHandler) Balance(c *gin.Context) {
	callerID, ok := callerID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	wallets, err := h.walletRepo.GetByOwner(c.Request.Context(), callerID)
	if err != nil {
		response.Error(c, apperror.ErrPersistence(err))
		return
	}

	out := make([]dto.WalletBalance, 0, len(wallets))
	for i := range wallets {
		w := &wallets[i]
		entry := dto.WalletBalance{
			WalletID:   w.ID.String(),
			WalletType: string(w.Type),
			Currency:   w.Currency,
			Balance:    w.Balance.StringFixed(2),
		}
		if w.MaxBalance != nil {
			s := w.MaxBalance.StringFixed(2)
			entry.MaxBalance = &s
		}
		out = append(out, entry)
	}

	response.OK(c, dto.BalanceResponse{Wallets: out})
}

// TopUpRequest handles POST /api/v1/wallets/topup/request. Funds move
// from the custodial wallet to the offline wallet only at confirm time;
// the request step just reserves a reference.
func (h *WalletHandler) TopUpRequest(c *gin.Context) {
	callerID, ok := callerID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		response.Error(c, apperror.ErrInvalidAmount())
		return
	}

	intent, err := h.ledgerSvc.RequestTopUp(c.Request.Context(), ports.TopUpRequest{
		CallerID: callerID,
		Amount:   amount,
		Currency: req.Currency,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.TopUpRequestResponse{
		Reference: intent.Reference.String(),
		Amount:    intent.Amount.StringFixed(2),
		Currency:  intent.Currency,
		ExpiresAt: intent.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// TopUpConfirm handles POST /api/v1/wallets/topup/confirm.
func (h *WalletHandler) TopUpConfirm(c *gin.Context) {
	callerID, ok := callerID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.TopUpConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	reference, err := uuid.Parse(req.Reference)
	if err != nil {
		response.Error(c, apperror.Validation("reference must be a valid UUID"))
		return
	}

	result, err := h.ledgerSvc.ConfirmTopUp(c.Request.Context(), callerID, reference)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.TopUpConfirmResponse{
		OfflineWalletID: result.OfflineWalletID.String(),
		NewBalance:      result.NewBalance.StringFixed(2),
	})
}
