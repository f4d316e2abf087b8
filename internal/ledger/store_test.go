package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timmit98/parse-and-track-spending/internal/model"
)

func tx(day int, amount float64, title, category string, dir model.Direction) model.Transaction {
	return model.Transaction{
		Timestamp: time.Date(2025, 1, day, 12, 0, 0, 0, time.UTC),
		Amount:    decimal.NewFromFloat(amount),
		Title:     title,
		Category:  category,
		Source:    "Test Bank",
		Direction: dir,
	}
}

func TestAdd_InsertsBatch(t *testing.T) {
	s := NewStore()
	inserted, skipped := s.Add([]model.Transaction{
		tx(1, 10, "Cafe", "Food & Dining", model.Spend),
		tx(2, 20, "Gas", "Transportation", model.Spend),
	})
	assert.Equal(t, 2, inserted)
	assert.Equal(t, 0, skipped)
	assert.Equal(t, 2, s.Len())
}

func TestAdd_ReimportSkipsEverything(t *testing.T) {
	s := NewStore()
	batch := []model.Transaction{
		tx(1, 10, "Cafe", "Food & Dining", model.Spend),
		tx(2, 20, "Gas", "Transportation", model.Spend),
		tx(3, 30, "Store", "Shopping", model.Spend),
	}
	s.Add(batch)

	inserted, skipped := s.Add(batch)
	assert.Equal(t, 0, inserted)
	assert.Equal(t, 3, skipped)
	assert.Equal(t, 3, s.Len())
}

func TestAdd_LegitimateRepeatsBothInserted(t *testing.T) {
	s := NewStore()
	inserted, _ := s.Add([]model.Transaction{
		tx(1, 4.50, "Cafe", "Food & Dining", model.Spend),
		tx(1, 4.50, "Cafe", "Food & Dining", model.Spend),
	})
	assert.Equal(t, 2, inserted)
	assert.Equal(t, 2, s.Len())

	all := s.Filtered(time.Time{}, time.Time{}, "")
	require.Len(t, all, 2)
	assert.NotEqual(t, all[0].ID, all[1].ID)
}

func TestAdd_OverflowBeyondStoredCountAdmitted(t *testing.T) {
	s := NewStore()
	s.Add([]model.Transaction{tx(1, 4.50, "Cafe", "Food & Dining", model.Spend)})

	// Second batch has the same coffee twice: one is the duplicate of the
	// stored row, the other is a genuine second purchase.
	inserted, skipped := s.Add([]model.Transaction{
		tx(1, 4.50, "Cafe", "Food & Dining", model.Spend),
		tx(1, 4.50, "Cafe", "Food & Dining", model.Spend),
	})
	assert.Equal(t, 1, inserted)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, 2, s.Len())
}

func TestAdd_DirectionSplitsDedupKey(t *testing.T) {
	s := NewStore()
	inserted, _ := s.Add([]model.Transaction{
		tx(1, 25, "Store", "Shopping", model.Spend),
		tx(1, 25, "Store", "Shopping", model.Credit),
	})
	assert.Equal(t, 2, inserted)
}

func TestFiltered_SortedByTimestampDescending(t *testing.T) {
	s := NewStore()
	s.Add([]model.Transaction{
		tx(1, 10, "A", "Other", model.Spend),
		tx(3, 10, "B", "Other", model.Spend),
		tx(2, 10, "C", "Other", model.Spend),
	})
	got := s.Filtered(time.Time{}, time.Time{}, "")
	require.Len(t, got, 3)
	assert.Equal(t, "B", got[0].Title)
	assert.Equal(t, "C", got[1].Title)
	assert.Equal(t, "A", got[2].Title)
}

func TestFiltered_CategoryEquality(t *testing.T) {
	s := NewStore()
	s.Add([]model.Transaction{
		tx(1, 10, "A", "Food & Dining", model.Spend),
		tx(2, 10, "B", "Travel", model.Spend),
	})
	assert.Len(t, s.Filtered(time.Time{}, time.Time{}, "Travel"), 1)
	assert.Len(t, s.Filtered(time.Time{}, time.Time{}, AllCategories), 2)
	assert.Len(t, s.Filtered(time.Time{}, time.Time{}, ""), 2)
}

func TestFiltered_EndOfDayBoundaryInclusive(t *testing.T) {
	s := NewStore()
	edge := model.Transaction{
		Timestamp: time.Date(2025, 1, 15, 23, 59, 59, 999e6, time.UTC),
		Amount:    decimal.NewFromInt(1),
		Title:     "Edge",
		Category:  "Other",
		Direction: model.Spend,
	}
	past := model.Transaction{
		Timestamp: time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC),
		Amount:    decimal.NewFromInt(1),
		Title:     "Past",
		Category:  "Other",
		Direction: model.Spend,
	}
	s.Add([]model.Transaction{edge, past})

	end, err := DayEnd("2025-01-15")
	require.NoError(t, err)
	got := s.Filtered(time.Time{}, end, "")
	require.Len(t, got, 1)
	assert.Equal(t, "Edge", got[0].Title)
}

func TestSummarize_TotalsIdentity(t *testing.T) {
	s := NewStore()
	s.Add([]model.Transaction{
		tx(1, 30, "A", "Food & Dining", model.Spend),
		tx(2, 20, "B", "Travel", model.Spend),
		tx(3, 5, "C", "Food & Dining", model.Credit),
	})
	sum := s.Summarize(time.Time{}, time.Time{})

	catTotal := decimal.Zero
	for _, c := range sum.Categories {
		catTotal = catTotal.Add(c.Total)
	}
	assert.True(t, catTotal.Equal(sum.TotalCharges.Add(sum.TotalCredits)))
	assert.Equal(t, "50.00", sum.TotalCharges.StringFixed(2))
	assert.Equal(t, "5.00", sum.TotalCredits.StringFixed(2))
	assert.Equal(t, "45.00", sum.NetSpending.StringFixed(2))
	assert.Equal(t, "55.00", sum.GrandTotal.StringFixed(2))
}

func TestSummarize_SortedByTotalDescending(t *testing.T) {
	s := NewStore()
	s.Add([]model.Transaction{
		tx(1, 5, "A", "Health", model.Spend),
		tx(2, 50, "B", "Travel", model.Spend),
		tx(3, 20, "C", "Shopping", model.Spend),
	})
	sum := s.Summarize(time.Time{}, time.Time{})
	require.Len(t, sum.Categories, 3)
	assert.Equal(t, "Travel", sum.Categories[0].Category)
	assert.Equal(t, "Shopping", sum.Categories[1].Category)
	assert.Equal(t, "Health", sum.Categories[2].Category)
}

func TestCategories_SortedWithAllPrefix(t *testing.T) {
	s := NewStore()
	s.Add([]model.Transaction{
		tx(1, 10, "A", "Travel", model.Spend),
		tx(2, 10, "B", "Food & Dining", model.Spend),
		tx(3, 10, "C", "Travel", model.Spend),
	})
	assert.Equal(t, []string{"All", "Food & Dining", "Travel"}, s.Categories())
}

func TestUpdateCategory(t *testing.T) {
	s := NewStore()
	s.Add([]model.Transaction{tx(1, 10, "A", "Other", model.Spend)})
	txID := s.Filtered(time.Time{}, time.Time{}, "")[0].ID

	assert.True(t, s.UpdateCategory(txID, "Travel"))
	assert.Equal(t, "Travel", s.Filtered(time.Time{}, time.Time{}, "")[0].Category)
	assert.False(t, s.UpdateCategory("missing", "Travel"))
}

func TestDelete(t *testing.T) {
	s := NewStore()
	s.Add([]model.Transaction{tx(1, 10, "A", "Other", model.Spend)})
	txID := s.Filtered(time.Time{}, time.Time{}, "")[0].ID

	assert.True(t, s.Delete(txID))
	assert.Equal(t, 0, s.Len())
}

func TestDelete_MissingIDLeavesStoreUnchanged(t *testing.T) {
	s := NewStore()
	s.Add([]model.Transaction{tx(1, 10, "A", "Other", model.Spend)})

	assert.False(t, s.Delete("no-such-id"))
	assert.Equal(t, 1, s.Len())
}

func TestClear(t *testing.T) {
	s := NewStore()
	s.Add([]model.Transaction{tx(1, 10, "A", "Other", model.Spend)})
	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, []string{"All"}, s.Categories())
}
