// Package id builds content-derived transaction identities. The same
// (direction, date, amount, title) tuple can legitimately repeat within one
// statement, so identities carry a 1-based occurrence index assigned in
// first-seen order: true duplicates collapse onto the same key while real
// repeats stay distinct.
package id

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/timmit98/parse-and-track-spending/internal/model"
)

// Key returns the normalized dedup key for a transaction. Only
// alphanumerics survive so incidental punctuation differences do not split
// keys.
func Key(dir model.Direction, ts time.Time, amount decimal.Decimal, title string) string {
	raw := fmt.Sprintf("%s-%s-%s-%s", dir, ts.UTC().Format(time.RFC3339), amount.String(), title)
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
}

// Format appends an occurrence index to a key, producing a final ID.
func Format(key string, occurrence int) string {
	return fmt.Sprintf("%s-%d", key, occurrence)
}

// Counter assigns occurrence indexes per key.
type Counter struct {
	counts map[string]int
}

// NewCounter creates an empty occurrence counter.
func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int)}
}

// Next returns the next 1-based occurrence index for key.
func (c *Counter) Next(key string) int {
	c.counts[key]++
	return c.counts[key]
}
