package statement

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/timmit98/parse-and-track-spending/internal/id"
	"github.com/timmit98/parse-and-track-spending/internal/model"
	"github.com/timmit98/parse-and-track-spending/internal/normalize"
)

// amexSource is the issuer label for American Express statements.
const amexSource = "American Express"

var (
	// Section anchors. PDF extraction flattens the visual tables, so the
	// Credits and New Charges tables are isolated by anchor phrases before
	// any row matching runs.
	amexCreditsSection = regexp.MustCompile(`(?is)Credits\s+Amount(.*?)(?:New Charges|$)`)
	amexChargesSection = regexp.MustCompile(`(?is)New Charges.*?Detail.*?Amount(.*?)(?:Fees\s+Amount|Interest Charged|\d{4} Fees and Interest|$)`)

	// One row: MM/DD/YY (optional posting-date star), description, the last
	// dollar amount before the ⧫ row terminator.
	amexRow = regexp.MustCompile(`(\d{2}/\d{2}/\d{2})\*?\s+([\s\S]*?)(-?\$[\d,]+\.\d{2})\s*⧫`)

	// A row whose description swallowed a page break carries the continued
	//-statement boilerplate plus the real transaction date after it.
	amexPageBreak         = regexp.MustCompile(`(?s)Account Ending.*?Detail Continued\s+⧫\s+-\s+Pay Over Time.*?Amount\s+(\d{2}/\d{2}/\d{2})`)
	amexPageBreakArtifact = regexp.MustCompile(`(?s)Account Ending.*?Detail Continued\s+⧫\s+-\s+Pay Over Time.*?Amount\s+`)
)

// amexHeaderText marks rows that are really statement boilerplate.
var amexHeaderText = []string{"Customer Care", "Payment Due Date", "Website: americanexpress"}

// AmexParser parses American Express credit card PDF statements.
type AmexParser struct {
	rules *Rules
}

// NewAmexParser creates an AmexParser.
func NewAmexParser(rules *Rules) *AmexParser {
	return &AmexParser{rules: rules}
}

// Source returns the issuer label.
func (p *AmexParser) Source() string { return amexSource }

// MatchFilename reports whether the filename names this issuer.
func (p *AmexParser) MatchFilename(name string) bool {
	return strings.Contains(name, "amex") || strings.Contains(name, "american")
}

// MatchContent reports whether the document text names this issuer.
func (p *AmexParser) MatchContent(content string) bool {
	return strings.Contains(content, "American Express") || strings.Contains(content, "AMERICAN EXPRESS")
}

// Parse extracts transactions from the Credits and New Charges sections.
func (p *AmexParser) Parse(pages []string) (*model.ParseResult, error) {
	fullText := strings.Join(pages, " ")

	result := &model.ParseResult{Source: amexSource}
	counter := id.NewCounter()
	seen := make(map[string]bool)

	if m := amexCreditsSection.FindStringSubmatch(fullText); m != nil {
		p.parseSection(m[1], model.Credit, counter, seen, result)
	}
	if m := amexChargesSection.FindStringSubmatch(fullText); m != nil {
		p.parseSection(m[1], model.Spend, counter, seen, result)
	}

	return result, nil
}

func (p *AmexParser) parseSection(section string, dir model.Direction, counter *id.Counter, seen map[string]bool, result *model.ParseResult) {
	for _, m := range amexRow.FindAllStringSubmatch(section, -1) {
		dateStr, rawDesc, amountStr := m[1], m[2], m[3]

		// Negative amounts inside the charges section are credits that the
		// Credits section already accounts for.
		if dir == model.Spend && strings.HasPrefix(amountStr, "-") {
			continue
		}

		descTrim := strings.TrimSpace(rawDesc)
		if len(descTrim) < 3 || containsAny(descTrim, amexHeaderText) {
			continue
		}

		// A page break mid-row leaves the continued-statement boilerplate in
		// the description with the row's true date after it. Recover that
		// date instead of emitting two partial rows.
		if pb := amexPageBreak.FindStringSubmatch(rawDesc); pb != nil {
			dateStr = pb[1]
		}

		ts, tsOK := normalize.ParseDateOK(expandAmexDate(dateStr))
		if !tsOK {
			result.Substitutions++
		}

		rawClean := strings.TrimSpace(collapseSpaces(amexPageBreakArtifact.ReplaceAllString(rawDesc, "")))
		desc := p.rules.Cleaner.Merchant(rawClean)
		if p.rules.Transfers.IsTransferOrPayment(desc) {
			continue
		}

		amount, amountOK := normalize.ParseAmountOK(amountStr)
		if !amountOK {
			result.Substitutions++
		}
		if !amount.IsPositive() || len(desc) <= 2 {
			continue
		}

		key := id.Key(dir, ts, amount, desc)
		txID := id.Format(key, counter.Next(key))
		if seen[txID] {
			continue
		}
		seen[txID] = true

		result.Transactions = append(result.Transactions, model.Transaction{
			ID:        txID,
			Timestamp: ts,
			Amount:    amount,
			Title:     desc,
			Category:  p.rules.Categorizer.Categorize(desc),
			Source:    amexSource,
			Direction: dir,
		})
	}
}

// expandAmexDate turns "MM/DD/YY" into "MM/DD/20YY".
func expandAmexDate(d string) string {
	parts := strings.Split(d, "/")
	if len(parts) != 3 {
		return d
	}
	return fmt.Sprintf("%s/%s/20%s", parts[0], parts[1], parts[2])
}

var spaceRun = regexp.MustCompile(`\s+`)

func collapseSpaces(s string) string {
	return spaceRun.ReplaceAllString(s, " ")
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
