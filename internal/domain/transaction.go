package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrTransactionNotFound indicates that the transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrInvalidAmount indicates a zero or negative transaction amount.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInsufficientBalance indicates that the source account cannot cover the amount.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrSameTransferAccounts indicates a transfer between an account and itself.
	ErrSameTransferAccounts = errors.New("transfer requires two distinct accounts")
)

// Transaction types supported by the service.
const (
	TransactionTypeDeposit    = "DEPOSIT"
	TransactionTypeWithdrawal = "WITHDRAWAL"
	TransactionTypeTransfer   = "TRANSFER"
)

// Transaction holds transaction data as returned by the service.
type Transaction struct {
	ID                   int64           `json:"id"`
	TransactionReference string          `json:"transactionReference"`
	TransactionType      string          `json:"transactionType"`
	Amount               decimal.Decimal `json:"amount"`
	Currency             string          `json:"currency"`
	Description          string          `json:"description,omitempty"`
	FromAccountID        int64           `json:"fromAccountId"`
	ToAccountID          int64           `json:"toAccountId"`
	Status               string          `json:"status,omitempty"`
	CreatedAt            time.Time       `json:"createdAt,omitempty"`
}

// CreateTransactionParams is the input data to create a transaction.
//
// TRANSFER requires FromAccountID and ToAccountID to reference distinct
// accounts. DEPOSIT and WITHDRAWAL bind both sides to the same account by
// convention.
type CreateTransactionParams struct {
	TransactionType string          `json:"transactionType" binding:"required,oneof=DEPOSIT WITHDRAWAL TRANSFER" validate:"required,oneof=DEPOSIT WITHDRAWAL TRANSFER"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency" binding:"required,len=3" validate:"required,len=3"`
	Description     string          `json:"description,omitempty"`
	FromAccountID   int64           `json:"fromAccountId" binding:"required" validate:"required"`
	ToAccountID     int64           `json:"toAccountId" validate:"required"`
}
