// Package categorize assigns spending categories by keyword match and
// screens out money-movement rows that are not real spending.
package categorize

import (
	"strings"

	"github.com/timmit98/parse-and-track-spending/internal/config"
)

// Other is the fallback category for unmatched titles.
const Other = "Other"

// Categorizer matches titles against an ordered list of category rules.
type Categorizer struct {
	rules []config.CategoryRule
}

// New creates a Categorizer over the given ordered rules.
func New(rules []config.CategoryRule) *Categorizer {
	return &Categorizer{rules: rules}
}

// Categorize returns the first category whose keyword list has a substring
// match anywhere in the lower-cased title. Ties between categories resolve
// by rule order, so the rule list is a contract, not a hint.
func (c *Categorizer) Categorize(title string) string {
	lower := strings.ToLower(title)
	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Name
			}
		}
	}
	return Other
}

// Filter screens descriptions for transfer and card-payment phrases.
type Filter struct {
	cardPayments     []string
	accountTransfers []string
}

// NewFilter creates a Filter from the configured transfer vocabularies.
func NewFilter(rules config.TransferRules) *Filter {
	return &Filter{
		cardPayments:     rules.CardPayments,
		accountTransfers: rules.AccountTransfers,
	}
}

// IsTransferOrPayment reports whether a description is money movement
// (paying off a card, P2P transfer) rather than spending. Prefer screening
// the raw description before cleaning; a merchant mapping can rewrite away
// the phrase that marks a transfer.
func (f *Filter) IsTransferOrPayment(description string) bool {
	lower := strings.ToLower(description)
	for _, kw := range f.cardPayments {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	for _, kw := range f.accountTransfers {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
