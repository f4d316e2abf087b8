package statement

import (
	"regexp"
	"strings"

	"github.com/timmit98/parse-and-track-spending/internal/id"
	"github.com/timmit98/parse-and-track-spending/internal/model"
	"github.com/timmit98/parse-and-track-spending/internal/normalize"
)

const appleCardSource = "Apple Card"

var (
	appleTxSection  = regexp.MustCompile(`(?is)Transactions.*?Date.*?Description.*?Daily Cash.*?Amount(.*?)(?:Payments|Daily Cash Summary|Total Daily Cash|$)`)
	applePaySection = regexp.MustCompile(`(?is)Payments.*?Date.*?Description.*?Amount(.*?)(?:Daily Cash Summary|Interest Charged|Total|Transactions|$)`)

	// Full date, description, Daily Cash percentage and dollar figure, then
	// the transaction amount.
	appleRowPrimary = regexp.MustCompile(`(\d{2}/\d{2}/\d{4})\s+([\s\S]+?)\s+(\d+%)\s*\$\d+\.\d{2}\s+\$(\d{1,3}(?:,\d{3})*\.\d{2})`)
	// Looser second pass for rows the primary pattern misses (extra line
	// breaks from extraction, thousands-grouped cash figures).
	appleRowFallback = regexp.MustCompile(`(\d{2}/\d{2}/\d{4})[\s\n]+([\s\S]+?)[\s\n]+(\d+%)[\s\n]*\$[\d,]+\.\d{2}[\s\n]+\$(\d{1,3}(?:,\d{3})*\.\d{2})`)

	applePaymentRow = regexp.MustCompile(`(\d{2}/\d{2}/\d{4})\s+ACH Deposit\s+([^-$]+?)\s+-\$(\d{1,3}(?:,\d{3})*\.\d{2})`)

	appleHeaderWord = regexp.MustCompile(`(?i)^(Date|Description|Amount|Daily Cash|Total)$`)

	tabRun          = regexp.MustCompile(`[ \t]+`)
	newlinePadding  = regexp.MustCompile(` *\n *`)
)

// AppleCardParser parses Apple Card (Goldman Sachs) PDF statements.
type AppleCardParser struct {
	rules *Rules
}

// NewAppleCardParser creates an AppleCardParser.
func NewAppleCardParser(rules *Rules) *AppleCardParser {
	return &AppleCardParser{rules: rules}
}

func (p *AppleCardParser) Source() string { return appleCardSource }

func (p *AppleCardParser) MatchFilename(name string) bool {
	return strings.Contains(name, "apple")
}

func (p *AppleCardParser) MatchContent(content string) bool {
	return strings.Contains(content, "Apple Card") || strings.Contains(content, "Goldman Sachs")
}

// Parse extracts purchases from the Transactions section and card payments
// (as credits) from the Payments section.
func (p *AppleCardParser) Parse(pages []string) (*model.ParseResult, error) {
	fullText := strings.Join(pages, " ")

	result := &model.ParseResult{Source: appleCardSource}
	counter := id.NewCounter()
	seen := make(map[string]bool)

	if m := appleTxSection.FindStringSubmatch(fullText); m != nil {
		section := strings.TrimSpace(newlinePadding.ReplaceAllString(tabRun.ReplaceAllString(m[1], " "), "\n"))

		// First pass; remember date+amount pairs so the fallback pass only
		// adds rows the primary pattern missed.
		matched := make(map[string]bool)
		for _, row := range appleRowPrimary.FindAllStringSubmatch(section, -1) {
			if p.addPurchase(row[1], row[2], row[4], counter, seen, result) {
				matched[row[1]+"-"+row[4]] = true
			}
		}
		for _, row := range appleRowFallback.FindAllStringSubmatch(section, -1) {
			if matched[row[1]+"-"+row[4]] {
				continue
			}
			p.addPurchase(row[1], row[2], row[4], counter, seen, result)
		}
	}

	if m := applePaySection.FindStringSubmatch(fullText); m != nil {
		for _, row := range applePaymentRow.FindAllStringSubmatch(m[1], -1) {
			dateStr, rawDesc, amountStr := row[1], row[2], row[3]
			if p.rules.Transfers.IsTransferOrPayment(rawDesc) {
				continue
			}
			desc := p.rules.Cleaner.AppleCard(rawDesc)
			if len(desc) < 3 {
				continue
			}
			p.add(dateStr, desc, amountStr, model.Credit, counter, seen, result)
		}
	}

	return result, nil
}

// addPurchase validates and adds one spend row. Reports whether the row was
// accepted (used to key the fallback pass).
func (p *AppleCardParser) addPurchase(dateStr, rawDesc, amountStr string, counter *id.Counter, seen map[string]bool, result *model.ParseResult) bool {
	if len(rawDesc) < 3 || appleHeaderWord.MatchString(rawDesc) {
		return false
	}
	// Transfer screening runs on the RAW description: a merchant mapping
	// could rewrite away the phrase that marks a payment.
	if p.rules.Transfers.IsTransferOrPayment(rawDesc) {
		return false
	}
	desc := p.rules.Cleaner.AppleCard(rawDesc)
	return p.add(dateStr, desc, amountStr, model.Spend, counter, seen, result)
}

func (p *AppleCardParser) add(dateStr, desc, amountStr string, dir model.Direction, counter *id.Counter, seen map[string]bool, result *model.ParseResult) bool {
	ts, tsOK := normalize.ParseDateOK(dateStr)
	if !tsOK {
		result.Substitutions++
	}
	amount, amountOK := normalize.ParseAmountOK(amountStr)
	if !amountOK {
		result.Substitutions++
	}
	if amount.IsZero() || len(desc) < 2 {
		return false
	}

	key := id.Key(dir, ts, amount, desc)
	txID := id.Format(key, counter.Next(key))
	if seen[txID] {
		return false
	}
	seen[txID] = true

	result.Transactions = append(result.Transactions, model.Transaction{
		ID:        txID,
		Timestamp: ts,
		Amount:    amount,
		Title:     desc,
		Category:  p.rules.Categorizer.Categorize(desc),
		Source:    appleCardSource,
		Direction: dir,
	})
	return true
}
