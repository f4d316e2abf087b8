package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction classifies a transaction as money spent or money returned.
type Direction string

const (
	Spend  Direction = "spend"
	Credit Direction = "credit"
)

// Transaction is a single normalized spending record.
type Transaction struct {
	ID        string          // content-derived, unique within a ledger
	Timestamp time.Time       // UTC
	Amount    decimal.Decimal // always positive; sign lives in Direction
	Title     string          // cleaned merchant name
	Category  string          // never empty, "Other" when unmatched
	Source    string          // issuing institution label
	Direction Direction
	Region    string // optional locale tag, e.g. "NZ"
	Currency  string // optional, e.g. "NZD"
}

// DisplayTitle renders the title with the legacy credit marker for
// presentation layers that still expect it.
func (t Transaction) DisplayTitle() string {
	if t.Direction == Credit {
		return "[CREDIT] " + t.Title
	}
	return t.Title
}

// ParseResult is the outcome of parsing one statement file.
type ParseResult struct {
	Transactions []Transaction
	Source       string
	Region       string
	Currency     string
	// Substitutions counts amount/date values that failed to parse and were
	// replaced with a safe default instead of aborting the parse.
	Substitutions int
}
