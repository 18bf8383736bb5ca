package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountOwnerNotFound indicates that the user the account should belong to does not exist.
	ErrAccountOwnerNotFound = errors.New("account owner not found")
	// ErrInvalidAccountType indicates an unsupported account type.
	ErrInvalidAccountType = errors.New("invalid account type")
)

// Account types supported by the service.
const (
	AccountTypeSavings  = "SAVINGS"
	AccountTypeChecking = "CHECKING"
	AccountTypeBusiness = "BUSINESS"
	AccountTypeCredit   = "CREDIT"
)

// Account statuses.
const (
	AccountStatusActive   = "ACTIVE"
	AccountStatusInactive = "INACTIVE"
)

// Account holds account data as returned by the service.
//
// Every account belongs to exactly one user.
type Account struct {
	ID             int64           `json:"id"`
	AccountNumber  string          `json:"accountNumber"`
	AccountType    string          `json:"accountType"`
	Status         string          `json:"status,omitempty"`
	UserID         int64           `json:"userId"`
	Balance        decimal.Decimal `json:"balance"`
	CreditLimit    decimal.Decimal `json:"creditLimit"`
	OverdraftLimit decimal.Decimal `json:"overdraftLimit"`
	Currency       string          `json:"currency,omitempty"`
	CreatedAt      time.Time       `json:"createdAt,omitempty"`
	UpdatedAt      time.Time       `json:"updatedAt,omitempty"`
}

// CreateAccountParams is the input data to create an account.
type CreateAccountParams struct {
	AccountType    string          `json:"accountType" binding:"required,oneof=SAVINGS CHECKING BUSINESS CREDIT" validate:"required,oneof=SAVINGS CHECKING BUSINESS CREDIT"`
	Status         string          `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE INACTIVE"`
	UserID         int64           `json:"userId" binding:"required" validate:"required"`
	Balance        decimal.Decimal `json:"balance"`
	CreditLimit    decimal.Decimal `json:"creditLimit"`
	OverdraftLimit decimal.Decimal `json:"overdraftLimit"`
}
