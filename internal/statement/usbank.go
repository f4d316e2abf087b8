package statement

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/timmit98/parse-and-track-spending/internal/id"
	"github.com/timmit98/parse-and-track-spending/internal/model"
	"github.com/timmit98/parse-and-track-spending/internal/normalize"
)

const usBankSource = "US Bank"

var (
	// Statement period with intra-date spaces as extracted from the PDF:
	// "09 / 26 / 20 25 - 10 / 25 / 20 25".
	usBankPeriod = regexp.MustCompile(`(\d{2})\s*/\s*(\d{2})\s*/\s*(\d{2})\s+(\d{2})\s*-\s*(\d{2})\s*/\s*(\d{2})\s*/\s*(\d{2})\s+(\d{2})`)

	// Post date, transaction date, reference, description, amount.
	usBankRow = regexp.MustCompile(`(\d{1,2}\s*/\s*\d{1,2})\s+(\d{1,2}\s*/\s*\d{1,2})\s+([A-Z0-9]+)\s+([\s\S]+?)\s+\$(\d{1,3}(?:,\d{3})*\.\d{2})`)

	// Exact section/header labels; anchored so merchants like "TOTAL WINE"
	// survive.
	usBankHeaderLabel = regexp.MustCompile(`(?i)^(TOTAL|Continued|Post Date|Trans Date|Date|Ref|Transaction Date|Description|Amount|Page \d+|Statement Period|CR)$`)
)

// statementPeriod carries the header date range used to resolve the year of
// dateless MM/DD rows.
type statementPeriod struct {
	startMonth int
	endMonth   int
	startYear  string
	endYear    string
}

// yearFor resolves the year for a row month. When the statement crosses a
// calendar-year boundary, months at or after the start month belong to the
// start year and the rest to the end year.
func (sp statementPeriod) yearFor(month int) string {
	if sp.startMonth > sp.endMonth {
		if month >= sp.startMonth {
			return sp.startYear
		}
		return sp.endYear
	}
	return sp.endYear
}

// USBankParser parses US Bank credit card PDF statements.
type USBankParser struct {
	rules *Rules
}

// NewUSBankParser creates a USBankParser.
func NewUSBankParser(rules *Rules) *USBankParser {
	return &USBankParser{rules: rules}
}

func (p *USBankParser) Source() string { return usBankSource }

func (p *USBankParser) MatchFilename(name string) bool {
	return strings.Contains(name, "usb") || strings.Contains(name, "us bank") || strings.Contains(name, "usbank")
}

func (p *USBankParser) MatchContent(content string) bool {
	return strings.Contains(content, "U.S. Bank") || strings.Contains(content, "US Bank") ||
		strings.Contains(content, "usbank.com") || strings.Contains(content, "Altitude Go")
}

// Parse extracts purchase rows, resolving each row's year from the
// statement period in the header.
func (p *USBankParser) Parse(pages []string) (*model.ParseResult, error) {
	fullText := strings.Join(pages, " ")
	period := extractPeriod(fullText)

	result := &model.ParseResult{Source: usBankSource}
	counter := id.NewCounter()
	seen := make(map[string]bool)

	for _, m := range usBankRow.FindAllStringSubmatch(fullText, -1) {
		transDate, desc, amountStr := m[2], strings.TrimSpace(m[4]), m[5]

		if usBankHeaderLabel.MatchString(desc) || len(desc) < 3 {
			continue
		}
		// Card payments are not spending; they show up again on whatever
		// account paid them.
		if strings.Contains(strings.ToUpper(desc), "PAYMENT") {
			continue
		}

		// The transaction date, not the post date, reflects when the money
		// moved.
		p.add(transDate, desc, amountStr, period, counter, seen, result)
	}

	return result, nil
}

func (p *USBankParser) add(dateStr, rawDesc, amountStr string, period statementPeriod, counter *id.Counter, seen map[string]bool, result *model.ParseResult) {
	// Undo the spaces PDF extraction injects into "10 / 22".
	cleanDate := strings.ReplaceAll(strings.ReplaceAll(dateStr, " ", ""), "\t", "")
	parts := strings.Split(cleanDate, "/")
	if len(parts) != 2 {
		return
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil {
		return
	}

	ts, tsOK := normalize.ParseDateOK(fmt.Sprintf("%s/%s/%s", parts[0], parts[1], period.yearFor(month)))
	if !tsOK {
		result.Substitutions++
	}

	desc := p.rules.Cleaner.Merchant(collapseSpaces(rawDesc))
	if p.rules.Transfers.IsTransferOrPayment(desc) {
		return
	}

	amount, amountOK := normalize.ParseAmountOK(amountStr)
	if !amountOK {
		result.Substitutions++
	}
	if amount.IsZero() || len(desc) < 2 {
		return
	}

	key := id.Key(model.Spend, ts, amount, desc)
	txID := id.Format(key, counter.Next(key))
	if seen[txID] {
		return
	}
	seen[txID] = true

	result.Transactions = append(result.Transactions, model.Transaction{
		ID:        txID,
		Timestamp: ts,
		Amount:    amount,
		Title:     desc,
		Category:  p.rules.Categorizer.Categorize(desc),
		Source:    usBankSource,
		Direction: model.Spend,
	})
}

// extractPeriod reads the statement period from the header, falling back to
// the current year when the header is missing.
func extractPeriod(fullText string) statementPeriod {
	if m := usBankPeriod.FindStringSubmatch(fullText); m != nil {
		start, _ := strconv.Atoi(m[1])
		end, _ := strconv.Atoi(m[5])
		return statementPeriod{
			startMonth: start,
			endMonth:   end,
			startYear:  m[3] + m[4],
			endYear:    m[7] + m[8],
		}
	}
	year := strconv.Itoa(time.Now().Year())
	return statementPeriod{startMonth: 1, endMonth: 12, startYear: year, endYear: year}
}
