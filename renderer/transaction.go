package renderer

import (
	"fmt"

	"github.com/etnz/fund"
)

// Transaction renders a transaction to a string.
func Transaction(tx fund.Transaction) string {
	var verb string
	switch tx.Kind {
	case fund.Buy:
		verb = "Bought"
	case fund.Sell:
		verb = "Sold"
	case fund.ShortSell:
		verb = "Shorted"
	case fund.Cover:
		verb = "Covered"
	default:
		return tx.String()
	}
	s := fmt.Sprintf("%s %s %s at %s", verb, tx.Quantity, tx.Ticker, tx.Price)
	if !tx.Fee.IsZero() {
		s += fmt.Sprintf(" (fee %s)", tx.Fee)
	}
	return s
}
