package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ledgerd/ledgerd/internal/auth"
	"github.com/ledgerd/ledgerd/internal/handler/dto"
	"github.com/ledgerd/ledgerd/internal/model"
	"github.com/ledgerd/ledgerd/internal/service"
)

// TransactionHandler handles HTTP requests for transaction operations.
// All routes require an authenticated user in the request context.
type TransactionHandler struct {
	svc    *service.TransactionService
	logger *slog.Logger
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(svc *service.TransactionService, logger *slog.Logger) *TransactionHandler {
	return &TransactionHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /transactions.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req dto.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	tx, err := h.svc.Create(r.Context(), user.ID, service.CreateTransactionInput{
		Amount:      req.Amount,
		Description: req.Description,
		Type:        model.TransactionType(req.TransactionType),
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("transaction_created",
		"transaction_id", tx.ID,
		"user_id", user.ID,
		"transaction_type", string(tx.Type),
	)

	writeJSON(w, http.StatusCreated, model.NewCachedTransaction(tx))
}

// List handles GET /transactions. Returns the authenticated user's
// transactions newest-first, possibly served from cache.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	txs, err := h.svc.ListByUser(r.Context(), user.ID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, txs)
}

// Get handles GET /transactions/{id}. Existence is resolved first,
// then ownership: a foreign transaction answers 403, an unknown ID 404.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Transaction ID must be an integer")
		return
	}

	tx, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	if tx.UserID != user.ID {
		writeError(w, http.StatusForbidden, "FORBIDDEN", "You don't have permission to access this transaction")
		return
	}

	writeJSON(w, http.StatusOK, model.NewCachedTransaction(tx))
}

// handleServiceError maps transaction service errors to HTTP responses.
func (h *TransactionHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidAmount):
		writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Amount must be positive")
	case errors.Is(err, service.ErrInvalidTransactionType):
		writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid transaction type")
	case errors.Is(err, service.ErrTransactionNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Transaction not found")
	default:
		h.logger.Error("transaction handler error", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
