package statement

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/timmit98/parse-and-track-spending/internal/categorize"
	"github.com/timmit98/parse-and-track-spending/internal/clean"
	"github.com/timmit98/parse-and-track-spending/internal/id"
	"github.com/timmit98/parse-and-track-spending/internal/model"
	"github.com/timmit98/parse-and-track-spending/internal/region"
)

const asbSource = "ASB Bank"

var (
	// "Opening date   18 Nov 25" in the statement header carries the year
	// the per-row "DD Mon" dates omit.
	asbOpeningDate = regexp.MustCompile(`Opening date\s+\d{1,2}\s+(\w+)\s+(\d{2})`)

	// One row: "DD Mon", description, then one to three trailing amounts
	// (debit/deposit/balance columns flattened by text extraction).
	asbRow = regexp.MustCompile(`(\d{1,2}\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec))\s+(.*?)\s+(\d{1,3}(?:,\d{3})*\.\d{2})(?:\s+(\d{1,3}(?:,\d{3})*\.\d{2}))?(?:\s+(\d{1,3}(?:,\d{3})*\.\d{2}))?`)

	// Rows that are bookkeeping noise, not spending.
	asbFilterPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^SaveTheChange`),
		regexp.MustCompile(`(?i)^TFR To`),
		regexp.MustCompile(`(?i)^TFR From`),
		regexp.MustCompile(`(?i)^Opening Balance`),
		regexp.MustCompile(`(?i)^Closing Balance`),
		regexp.MustCompile(`(?i)^Carried Forward`),
		regexp.MustCompile(`(?i)^OffshoreServiceMargins`),
		regexp.MustCompile(`(?i)^Service Margins`),
		regexp.MustCompile(`(?i)^Account Fee`),
	}

	asbMonths = map[string]time.Month{
		"Jan": time.January, "Feb": time.February, "Mar": time.March,
		"Apr": time.April, "May": time.May, "Jun": time.June,
		"Jul": time.July, "Aug": time.August, "Sep": time.September,
		"Oct": time.October, "Nov": time.November, "Dec": time.December,
	}
)

// ASBParser parses ASB Bank (NZ) Streamline account PDF statements.
type ASBParser struct {
	rules *Rules
}

// NewASBParser creates an ASBParser.
func NewASBParser(rules *Rules) *ASBParser {
	return &ASBParser{rules: rules}
}

func (p *ASBParser) Source() string { return asbSource }

func (p *ASBParser) MatchFilename(name string) bool {
	return strings.Contains(name, "asb")
}

func (p *ASBParser) MatchContent(content string) bool {
	return strings.Contains(content, "ASB Bank") || strings.Contains(content, "asb.co.nz") ||
		strings.Contains(content, "ASB Credit Card")
}

// Parse extracts transactions page by page. Categorization is deferred for
// this layout: rows come out as "Other" pending a later pass.
func (p *ASBParser) Parse(pages []string) (*model.ParseResult, error) {
	fullText := strings.Join(pages, "\n")
	baseYear, startMonth := extractASBPeriod(fullText)

	result := &model.ParseResult{Source: asbSource, Region: region.NZ.Code, Currency: region.NZ.CurrencyCode}
	counter := id.NewCounter()

	for _, pageText := range pages {
		p.parsePage(pageText, baseYear, startMonth, counter, result)
	}
	return result, nil
}

func (p *ASBParser) parsePage(pageText string, baseYear int, startMonth time.Month, counter *id.Counter, result *model.ParseResult) {
	for _, m := range asbRow.FindAllStringSubmatch(pageText, -1) {
		dateStr, desc := m[1], m[2]

		if desc == "" || strings.Contains(desc, "Transaction") || strings.Contains(desc, "Debit/Withdrawal") {
			continue
		}
		if asbRowFiltered(desc) {
			continue
		}

		var amounts []decimal.Decimal
		for _, a := range m[3:6] {
			if a == "" {
				continue
			}
			d, err := decimal.NewFromString(strings.ReplaceAll(a, ",", ""))
			if err != nil {
				result.Substitutions++
				continue
			}
			amounts = append(amounts, d)
		}

		amount, dir := classifyASBAmounts(amounts)
		if amount.IsZero() {
			continue
		}

		ts := resolveASBDate(dateStr, baseYear, startMonth)
		title := clean.NZ(desc, region.NZ)

		key := id.Key(dir, ts, amount, title)
		result.Transactions = append(result.Transactions, model.Transaction{
			ID:        id.Format(key, counter.Next(key)),
			Timestamp: ts,
			Amount:    amount,
			Title:     title,
			Category:  categorize.Other,
			Source:    asbSource,
			Direction: dir,
			Region:    region.NZ.Code,
			Currency:  region.NZ.CurrencyCode,
		})
	}
}

func asbRowFiltered(desc string) bool {
	for _, re := range asbFilterPatterns {
		if re.MatchString(desc) {
			return true
		}
	}
	return false
}

// classifyASBAmounts splits the flattened amount columns into a transaction
// amount and direction. Two amounts mean (amount, balance); that case is
// treated as a debit unconditionally, which matches the source system even
// though it can misread deposits. Three amounts mean (debit, deposit,
// balance) with at most one of the first two populated.
func classifyASBAmounts(amounts []decimal.Decimal) (decimal.Decimal, model.Direction) {
	switch len(amounts) {
	case 2:
		return amounts[0].Abs(), model.Spend
	case 3:
		debit, deposit := amounts[0], amounts[1]
		if deposit.IsPositive() && debit.IsZero() {
			return deposit, model.Credit
		}
		return debit, model.Spend
	default:
		return decimal.Zero, model.Spend
	}
}

// resolveASBDate turns "19 Nov" into a full UTC date. A statement opened in
// the back half of the year rolls early-year rows into the next year.
func resolveASBDate(dateStr string, baseYear int, startMonth time.Month) time.Time {
	parts := strings.Fields(dateStr)
	if len(parts) != 2 {
		return time.Now().UTC()
	}
	day, _ := strconv.Atoi(parts[0])
	month := asbMonths[parts[1]]

	year := baseYear
	if month < startMonth && startMonth > time.July {
		year++
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// extractASBPeriod reads the opening year and month from the header,
// defaulting to the current year when the header is unreadable.
func extractASBPeriod(fullText string) (int, time.Month) {
	if m := asbOpeningDate.FindStringSubmatch(fullText); m != nil {
		yy, _ := strconv.Atoi(m[2])
		month, ok := asbMonths[m[1]]
		if !ok {
			month = time.January
		}
		return 2000 + yy, month
	}
	return time.Now().Year(), time.January
}
