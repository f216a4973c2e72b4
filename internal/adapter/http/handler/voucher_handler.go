package handler

import (
	"strconv"
	"time"

	"offline-voucher-sync/internal/adapter/http/dto"
	"offline-voucher-sync/internal/adapter/http/middleware"
	"offline-voucher-sync/internal/core/domain"
	"offline-voucher-sync/internal/core/ports"
	"offline-voucher-sync/pkg/apperror"
	"offline-voucher-sync/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// VoucherHandler handles voucher preparation, synchronization, settlement
// and receipt verification endpoints.
type VoucherHandler struct {
	syncSvc    ports.SyncService
	receiptSvc ports.ReceiptService
}

// NewVoucherHandler creates a new VoucherHandler.
func NewVoucherHandler(syncSvc ports.SyncService, receiptSvc ports.ReceiptService) *VoucherHandler {
	return &VoucherHandler{syncSvc: syncSvc, receiptSvc: receiptSvc}
}

// Prepare handles POST /api/v1/vouchers/prepare. The server assembles an
// unsigned draft with a fresh nonce; the device signs it offline.
func (h *VoucherHandler) Prepare(c *gin.Context) {
	callerID, ok := callerID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.PrepareDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	senderWalletID, err := uuid.Parse(req.SenderWalletID)
	if err != nil {
		response.Error(c, apperror.Validation("sender_wallet_id must be a valid UUID"))
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		response.Error(c, apperror.ErrInvalidAmount())
		return
	}

	draft, err := h.syncSvc.PrepareDraft(c.Request.Context(), ports.PrepareDraftRequest{
		CallerID:          callerID,
		SenderWalletID:    senderWalletID,
		ReceiverPublicKey: req.ReceiverPublicKey,
		Amount:            amount,
		Currency:          req.Currency,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, draft)
}

// Sync handles POST /api/v1/vouchers/sync. The batch is processed item by
// item and always answers 200 with per-item outcomes; a bad voucher never
// sinks its siblings.
func (h *VoucherHandler) Sync(c *gin.Context) {
	callerID, ok := callerID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	items := make([]ports.SyncItem, 0, len(req.Vouchers))
	for _, v := range req.Vouchers {
		items = append(items, ports.SyncItem{
			Draft:             toDomainDraft(v.Draft),
			Signature:         v.Signature,
			Receipt:           toDomainReceipt(v.Receipt),
			DeviceFingerprint: v.DeviceFingerprint,
		})
	}

	batch, err := h.syncSvc.ProcessSyncBatch(c.Request.Context(), callerID, items)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toSyncResponse(batch))
}

// Submit handles POST /api/v1/vouchers: a single voucher submitted
// directly, under the strict freshness window. The outcome has the same
// itemized shape as a batch entry.
func (h *VoucherHandler) Submit(c *gin.Context) {
	callerID, ok := callerID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.SyncItem
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.syncSvc.SubmitVoucher(c.Request.Context(), callerID, ports.SyncItem{
		Draft:             toDomainDraft(req.Draft),
		Signature:         req.Signature,
		Receipt:           toDomainReceipt(req.Receipt),
		DeviceFingerprint: req.DeviceFingerprint,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toItemResult(*result))
}

// Confirm handles POST /api/v1/vouchers/:id/confirm, settling a synced
// voucher into the receiver's custodial wallet.
func (h *VoucherHandler) Confirm(c *gin.Context) {
	callerID, ok := callerID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("transaction id must be a valid UUID"))
		return
	}

	result, err := h.syncSvc.Confirm(c.Request.Context(), callerID, transactionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ConfirmResponse{
		TransactionID:   result.TransactionID.String(),
		Amount:          result.Amount.StringFixed(2),
		ReceiverBalance: result.ReceiverBalance.StringFixed(2),
		Status:          result.Status,
	})
}

// List handles GET /api/v1/vouchers, returning the caller's synced
// voucher history, newest first.
func (h *VoucherHandler) List(c *gin.Context) {
	callerID, ok := callerID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var status *domain.TransactionStatus
	switch c.Query("status") {
	case "":
	case string(domain.TransactionStatusSynced):
		s := domain.TransactionStatusSynced
		status = &s
	case string(domain.TransactionStatusConfirmed):
		s := domain.TransactionStatusConfirmed
		status = &s
	default:
		response.Error(c, apperror.Validation("status must be synced or confirmed"))
		return
	}

	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.Error(c, apperror.Validation("limit must be a positive integer"))
			return
		}
		if parsed > maxListLimit {
			parsed = maxListLimit
		}
		limit = parsed
	}

	records, err := h.syncSvc.ListTransactions(c.Request.Context(), callerID, status, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.TransactionResponse, 0, len(records))
	for i := range records {
		items = append(items, toTransactionResponse(&records[i]))
	}
	response.OK(c, dto.TransactionListResponse{Items: items, Count: len(items)})
}

// VerifyReceipt handles POST /api/v1/vouchers/verify-receipt. The check
// needs no authentication and no stored state; anyone holding a receipt
// and the sender's public key can run it.
func (h *VoucherHandler) VerifyReceipt(c *gin.Context) {
	var req dto.VerifyReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	receipt := toDomainReceipt(&req.Receipt)
	verdict := h.receiptSvc.Verify(*receipt, req.Signature, req.SenderPublicKey)

	response.OK(c, dto.VerifyReceiptResponse{
		Valid:          verdict.Valid,
		SignatureValid: verdict.SignatureValid,
		HashValid:      verdict.HashValid,
	})
}

func callerID(c *gin.Context) (uuid.UUID, bool) {
	raw, ok := c.Get(middleware.CtxUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := raw.(uuid.UUID)
	return id, ok
}

// toDomainDraft tolerates an unparseable sender wallet ID by leaving it
// nil; the sync pipeline reports MISSING_FIELDS for that item instead of
// failing the whole batch.
func toDomainDraft(d dto.VoucherDraft) domain.VoucherDraft {
	senderWalletID, _ := uuid.Parse(d.SenderWalletID)
	return domain.VoucherDraft{
		SenderWalletID:    senderWalletID,
		ReceiverPublicKey: d.ReceiverPublicKey,
		Amount:            d.Amount,
		Currency:          d.Currency,
		Nonce:             d.Nonce,
		Timestamp:         d.Timestamp,
	}
}

func toDomainReceipt(r *dto.Receipt) *domain.Receipt {
	if r == nil {
		return nil
	}
	senderWalletID, _ := uuid.Parse(r.SenderWalletID)
	return &domain.Receipt{
		Version:           r.Version,
		Kind:              r.Type,
		SenderWalletID:    senderWalletID,
		ReceiverPublicKey: r.ReceiverPublicKey,
		Amount:            r.Amount,
		Currency:          r.Currency,
		Nonce:             r.Nonce,
		Signature:         r.Signature,
		Timestamp:         r.Timestamp,
		ReceiptHash:       r.ReceiptHash,
	}
}

func toItemResult(r ports.ItemResult) dto.ItemResult {
	item := dto.ItemResult{
		Reference:   r.Reference,
		Result:      string(r.Result),
		ErrorReason: r.ErrorReason,
	}
	if r.TransactionID != nil {
		id := r.TransactionID.String()
		item.TransactionID = &id
	}
	return item
}

func toSyncResponse(batch *ports.BatchResult) dto.SyncResponse {
	results := make([]dto.ItemResult, 0, len(batch.Results))
	for _, r := range batch.Results {
		results = append(results, toItemResult(r))
	}
	return dto.SyncResponse{
		Results:         results,
		TotalSynced:     batch.TotalSynced,
		TotalFailed:     batch.TotalFailed,
		TotalRolledBack: batch.TotalRolledBack,
	}
}

func toTransactionResponse(t *domain.TransactionRecord) dto.TransactionResponse {
	resp := dto.TransactionResponse{
		ID:                t.ID.String(),
		SenderWalletID:    t.SenderWalletID.String(),
		ReceiverPublicKey: t.ReceiverPublicKey,
		Amount:            t.Amount.StringFixed(2),
		Currency:          t.Currency,
		Nonce:             t.Nonce,
		ReceiptHash:       t.ReceiptHash,
		Status:            string(t.Status),
		DeviceTimestamp:   t.DeviceTimestamp.UTC().Format(time.RFC3339),
		SyncedAt:          t.SyncedAt.UTC().Format(time.RFC3339),
	}
	if t.ConfirmedAt != nil {
		s := t.ConfirmedAt.UTC().Format(time.RFC3339)
		resp.ConfirmedAt = &s
	}
	return resp
}
