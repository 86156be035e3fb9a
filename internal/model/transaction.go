package model

import (
	"errors"
	"strings"
)

type TransactionType string

const (
	TransactionTypeIn  TransactionType = "in"
	TransactionTypeOut TransactionType = "out"
)

func (t TransactionType) Validate() error {
	switch t {
	case TransactionTypeIn, TransactionTypeOut:
		return nil
	}
	return errors.New("unknown transaction type")
}

// Label is the upper-case form shown in the history table.
func (t TransactionType) Label() string {
	return strings.ToUpper(string(t))
}

type Transaction struct {
	ID              int             `json:"id"`
	Timestamp       Timestamp       `json:"timestamp"`
	ProductID       int             `json:"product_id,omitempty"`
	ProductSku      string          `json:"product_sku"`
	ProductName     string          `json:"product_name"`
	TransactionType TransactionType `json:"transaction_type"`
	Quantity        int             `json:"quantity"`
	User            string          `json:"user"`
}

// TransactionResult is the backend's answer to a recorded transaction.
type TransactionResult struct {
	Message  string `json:"message"`
	NewStock *int   `json:"new_stock,omitempty"`
}
