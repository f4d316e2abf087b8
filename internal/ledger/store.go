// Package ledger is the in-memory transaction store. It lives for the
// process lifetime only; nothing is ever written to disk.
package ledger

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/timmit98/parse-and-track-spending/internal/id"
	"github.com/timmit98/parse-and-track-spending/internal/model"
)

// AllCategories is the pseudo-category matching every transaction.
const AllCategories = "All"

// Store accumulates transactions across imports and answers filtered
// queries. All methods are safe for concurrent use; mutation is serialized
// behind a single mutex per the single-writer discipline.
type Store struct {
	mu  sync.Mutex
	txs []model.Transaction
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// mergeKey is the dedup identity used across imports. Direction is part of
// the key so a refund does not collapse into its matching charge.
func mergeKey(t model.Transaction) string {
	return string(t.Direction) + "|" + t.Timestamp.UTC().Format(time.RFC3339) + "|" +
		t.Amount.String() + "|" + t.Title
}

// Add merges a batch into the store. For each dedup key only the occurrences
// beyond what is already stored are admitted, so importing the same
// statement twice inserts nothing the second time while legitimate repeats
// within one batch all land. Returns inserted and skipped counts.
func (s *Store) Add(batch []model.Transaction) (inserted, skipped int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := make(map[string]int)
	for _, t := range s.txs {
		existing[mergeKey(t)]++
	}

	processed := make(map[string]int)
	for _, t := range batch {
		key := mergeKey(t)
		processed[key]++
		if processed[key] <= existing[key] {
			skipped++
			continue
		}
		// The store owns identity: the occurrence index counts all copies of
		// this key ever admitted, not just this batch's.
		t.ID = id.Format(id.Key(t.Direction, t.Timestamp, t.Amount, t.Title), processed[key])
		s.txs = append(s.txs, t)
		inserted++
	}
	return inserted, skipped
}

// Filtered returns transactions within [start, end] (zero means unbounded)
// whose category equals category ("" or "All" matches everything), sorted by
// timestamp descending.
func (s *Store) Filtered(start, end time.Time, category string) []model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Transaction
	for _, t := range s.txs {
		if !inRange(t.Timestamp, start, end) {
			continue
		}
		if category != "" && category != AllCategories && t.Category != category {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// CategorySummary is one row of a Summary.
type CategorySummary struct {
	Category string
	Total    decimal.Decimal
	Count    int
}

// Summary aggregates spending within a date range.
type Summary struct {
	Categories   []CategorySummary // sorted by total descending
	GrandTotal   decimal.Decimal   // charges + credits
	TotalCharges decimal.Decimal
	TotalCredits decimal.Decimal
	NetSpending  decimal.Decimal // charges - credits
}

// Summarize groups transactions in [start, end] by category.
func (s *Store) Summarize(start, end time.Time) Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	byCategory := make(map[string]*CategorySummary)
	var order []string
	charges, credits := decimal.Zero, decimal.Zero

	for _, t := range s.txs {
		if !inRange(t.Timestamp, start, end) {
			continue
		}
		cs, ok := byCategory[t.Category]
		if !ok {
			cs = &CategorySummary{Category: t.Category, Total: decimal.Zero}
			byCategory[t.Category] = cs
			order = append(order, t.Category)
		}
		cs.Total = cs.Total.Add(t.Amount)
		cs.Count++

		if t.Direction == model.Credit {
			credits = credits.Add(t.Amount)
		} else {
			charges = charges.Add(t.Amount)
		}
	}

	sum := Summary{
		TotalCharges: charges,
		TotalCredits: credits,
		GrandTotal:   charges.Add(credits),
		NetSpending:  charges.Sub(credits),
	}
	for _, c := range order {
		sum.Categories = append(sum.Categories, *byCategory[c])
	}
	sort.SliceStable(sum.Categories, func(i, j int) bool {
		return sum.Categories[i].Total.GreaterThan(sum.Categories[j].Total)
	})
	return sum
}

// Categories returns the distinct categories present, sorted, with "All"
// prepended.
func (s *Store) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	for _, t := range s.txs {
		seen[t.Category] = true
	}
	cats := make([]string, 0, len(seen))
	for c := range seen {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return append([]string{AllCategories}, cats...)
}

// UpdateCategory changes one transaction's category by ID. Reports whether
// the ID existed.
func (s *Store) UpdateCategory(txID, category string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.txs {
		if s.txs[i].ID == txID {
			s.txs[i].Category = category
			return true
		}
	}
	return false
}

// Delete removes one transaction by ID. Reports whether the ID existed.
func (s *Store) Delete(txID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.txs {
		if s.txs[i].ID == txID {
			s.txs = append(s.txs[:i], s.txs[i+1:]...)
			return true
		}
	}
	return false
}

// Clear removes everything.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs = nil
}

// Len returns the number of stored transactions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.txs)
}

func inRange(ts, start, end time.Time) bool {
	if !start.IsZero() && ts.Before(start) {
		return false
	}
	if !end.IsZero() && ts.After(end) {
		return false
	}
	return true
}

// DayStart parses a "YYYY-MM-DD" date into the first instant of that UTC
// day. Empty input means unbounded.
func DayStart(date string) (time.Time, error) {
	if strings.TrimSpace(date) == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", date)
}

// DayEnd parses a "YYYY-MM-DD" date into the last represented instant of
// that UTC day (23:59:59.999). Empty input means unbounded.
func DayEnd(date string) (time.Time, error) {
	t, err := DayStart(date)
	if err != nil || t.IsZero() {
		return t, err
	}
	return t.Add(24*time.Hour - time.Millisecond), nil
}
