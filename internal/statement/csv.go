package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/timmit98/parse-and-track-spending/internal/id"
	"github.com/timmit98/parse-and-track-spending/internal/model"
	"github.com/timmit98/parse-and-track-spending/internal/normalize"
)

// Column synonym lists, checked in order against lower-cased headers.
var (
	csvDateColumns   = []string{"date", "timestamp", "time", "transaction date", "trans date"}
	csvAmountColumns = []string{"amount", "value", "total", "price", "cost", "debit", "transaction amount"}
	csvTitleColumns  = []string{"title", "description", "name", "merchant", "vendor", "payee", "transaction description"}
)

// CSVParser parses generic transaction-export CSVs from any issuer.
type CSVParser struct {
	rules *Rules
}

// NewCSVParser creates a CSVParser.
func NewCSVParser(rules *Rules) *CSVParser {
	return &CSVParser{rules: rules}
}

// Parse reads a CSV export. The header row identifies the date, amount, and
// title columns by synonym; a file whose columns cannot be identified fails
// as a whole. The source label is best-effort: "Unknown" is acceptable for
// CSVs, unlike PDFs.
func (p *CSVParser) Parse(r io.Reader, filename string) (*model.ParseResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty CSV file")
	}

	header := records[0]
	dateCol := findColumn(header, csvDateColumns)
	amountCol := findColumn(header, csvAmountColumns)
	titleCol := findColumn(header, csvTitleColumns)
	if dateCol < 0 || amountCol < 0 || titleCol < 0 {
		return nil, fmt.Errorf("%w: found %s; need date, amount, and title/description columns",
			ErrMissingColumns, strings.Join(header, ", "))
	}

	var content strings.Builder
	for _, rec := range records[1:] {
		content.WriteString(strings.Join(rec, " "))
		content.WriteString(" ")
	}
	source := DetectSourceLabel(filename, content.String())

	result := &model.ParseResult{Source: source}
	counter := id.NewCounter()

	for _, rec := range records[1:] {
		if dateCol >= len(rec) || amountCol >= len(rec) || titleCol >= len(rec) {
			continue
		}

		rawTitle := strings.TrimSpace(rec[titleCol])
		if rawTitle == "" {
			continue
		}
		if p.rules.Transfers.IsTransferOrPayment(rawTitle) {
			continue
		}

		ts, tsOK := normalize.ParseDateOK(rec[dateCol])
		if !tsOK {
			result.Substitutions++
		}
		amount, amountOK := normalize.ParseAmountOK(rec[amountCol])
		if !amountOK {
			result.Substitutions++
		}
		if !amount.IsPositive() {
			continue
		}

		dir := model.Spend
		if strings.HasPrefix(strings.TrimSpace(rec[amountCol]), "-") {
			dir = model.Credit
		}

		title := p.rules.Cleaner.Merchant(rawTitle)
		key := id.Key(dir, ts, amount, title)
		result.Transactions = append(result.Transactions, model.Transaction{
			ID:        id.Format(key, counter.Next(key)),
			Timestamp: ts,
			Amount:    amount,
			Title:     title,
			Category:  p.rules.Categorizer.Categorize(title),
			Source:    source,
			Direction: dir,
		})
	}

	if len(result.Transactions) == 0 {
		return nil, fmt.Errorf("%w: no usable rows in CSV", ErrNoTransactions)
	}
	return result, nil
}

// findColumn returns the index of the first header matching any synonym,
// or -1.
func findColumn(header, synonyms []string) int {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}
	for _, syn := range synonyms {
		for i, h := range normalized {
			if h == syn {
				return i
			}
		}
	}
	return -1
}

// DetectSourceLabel guesses the issuer label from filename, then content.
// Returns "Unknown" when nothing matches.
func DetectSourceLabel(filename, content string) string {
	lower := strings.ToLower(filename)
	switch {
	case strings.Contains(lower, "amex"), strings.Contains(lower, "american"):
		return amexSource
	case strings.Contains(lower, "chase"):
		return "Chase"
	case strings.Contains(lower, "citi"):
		return "Citi"
	case strings.Contains(lower, "discover"):
		return "Discover"
	case strings.Contains(lower, "capital"):
		return "Capital One"
	case strings.Contains(lower, "apple"):
		return appleCardSource
	case strings.Contains(lower, "usb"), strings.Contains(lower, "us bank"), strings.Contains(lower, "usbank"):
		return usBankSource
	case strings.Contains(lower, "asb"):
		return asbSource
	}

	if strings.Contains(content, "AplPay") || strings.Contains(content, "AMEX") {
		return amexSource
	}
	return "Unknown"
}
