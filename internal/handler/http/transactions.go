package http

import (
	"net/http"

	"github.com/MKhiriev/go-waste-sync/internal/app"
	"github.com/MKhiriev/go-waste-sync/internal/logger"
	"github.com/MKhiriev/go-waste-sync/internal/utils"
	"github.com/MKhiriev/go-waste-sync/models"
)

func (h *Handler) pay(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.PayRequest
	if !decodeJSON(w, r, "*Handler.pay", &req) {
		return
	}
	req.UserID, _ = identity(r)

	tx, duplicate, err := h.services.TransactionService.Pay(r.Context(), req)
	if err != nil {
		writeError(w, r, "*Handler.pay", err)
		return
	}

	if duplicate {
		log.Info().Str("func", "*Handler.pay").Str("client_reference", req.ClientReference).Msg("payment replayed")
		_, _ = utils.WriteJSON(w, models.TransactionResponse{Message: app.MsgPaymentAlreadySynced, Transaction: tx, Duplicate: true}, http.StatusOK)
		return
	}
	_, _ = utils.WriteJSON(w, models.TransactionResponse{Message: app.MsgPaymentProcessed, Transaction: tx}, http.StatusCreated)
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	userID, role := identity(r)

	txs, err := h.services.TransactionService.ListTransactions(r.Context(), models.SyncRequest{UserID: userID, Role: role})
	if err != nil {
		writeError(w, r, "*Handler.listTransactions", err)
		return
	}
	_, _ = utils.WriteJSON(w, nonNil(txs), http.StatusOK)
}

func (h *Handler) bulkUpdateTransactions(w http.ResponseWriter, r *http.Request) {
	var update models.BulkTransactionUpdate
	if !decodeJSON(w, r, "*Handler.bulkUpdateTransactions", &update) {
		return
	}

	result, err := h.services.TransactionService.BulkUpdate(r.Context(), update)
	if err != nil {
		writeError(w, r, "*Handler.bulkUpdateTransactions", err)
		return
	}
	result.Updated = nonNil(result.Updated)
	_, _ = utils.WriteJSON(w, result, http.StatusOK)
}
