package dto

// CreateTransactionRequest represents the request body for recording a
// transaction. Description is optional and may be null.
type CreateTransactionRequest struct {
	Amount          float64 `json:"amount"`
	Description     *string `json:"description,omitempty"`
	TransactionType string  `json:"transaction_type"`
}
