package fund

import (
	"fmt"

	"github.com/etnz/fund/date"
)

// Transaction is a dated trade event. It is immutable once ingested.
type Transaction struct {
	Date     date.Date
	Ticker   string
	Quantity Quantity // always positive, the Kind carries the sign.
	Price    Money    // unit price
	Fee      Money
	Kind     Kind
	Sector   string // GICS class, used only for composition breakdowns.
}

// NewTransaction creates a Transaction.
func NewTransaction(on date.Date, kind Kind, ticker string, quantity Quantity, price, fee Money) Transaction {
	return Transaction{Date: on, Kind: kind, Ticker: ticker, Quantity: quantity, Price: price, Fee: fee}
}

// Amount is the gross traded amount, quantity × unit price.
func (tx Transaction) Amount() Money { return tx.Price.Mul(tx.Quantity) }

// Validate checks the transaction for correctness.
func (tx Transaction) Validate() error {
	switch {
	case !tx.Kind.Valid():
		return fmt.Errorf("%w: %v", ErrUnknownKind, tx.Kind)
	case tx.Date.IsZero():
		return fmt.Errorf("%w: missing date", ErrInvalidInput)
	case tx.Ticker == "":
		return fmt.Errorf("%w: missing ticker", ErrInvalidInput)
	case !tx.Quantity.IsPositive():
		return fmt.Errorf("%w: quantity must be positive, got %v", ErrInvalidInput, tx.Quantity)
	case tx.Price.IsNegative():
		return fmt.Errorf("%w: negative price %v", ErrInvalidInput, tx.Price)
	case tx.Fee.IsNegative():
		return fmt.Errorf("%w: negative fee %v", ErrInvalidInput, tx.Fee)
	}
	return nil
}

func (tx Transaction) String() string {
	return fmt.Sprintf("%s %s %v %s @ %v (fee %v)", tx.Date, tx.Kind, tx.Quantity, tx.Ticker, tx.Price, tx.Fee)
}
