// Package clean normalizes raw statement descriptions into readable
// merchant names. Everything here is an ordered, deterministic sequence of
// text transformations; changing the order changes output.
package clean

import (
	"html"
	"regexp"
	"strings"

	"github.com/timmit98/parse-and-track-spending/internal/config"
)

// UnknownMerchant is substituted when cleaning strips a description down to
// nothing.
const UnknownMerchant = "Unknown Merchant"

var (
	leadingDate = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2,4}\s+`)

	// Payment-processor and POS prefixes, applied in order.
	processorPrefixes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^AplPay\s+`),
		regexp.MustCompile(`(?i)^TST\*\s*`),   // Toast POS
		regexp.MustCompile(`(?i)^BT\*\s*`),    // Bill.com
		regexp.MustCompile(`(?i)^PY\s*\*\s*`), // payment processor
		regexp.MustCompile(`(?i)^WIX\*[^*]*\*`),
		regexp.MustCompile(`(?i)^DD\s*\*`), // DoorDash
		regexp.MustCompile(`(?i)^TM\s*\*`), // Ticketmaster
		regexp.MustCompile(`(?i)^PT\s*\*`),
		regexp.MustCompile(`(?i)^SP\s+`), // Square
	}

	squareReceipt = regexp.MustCompile(`(?i)\s+squareup\.com/receipts$`)

	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\s+\d{3}-\d{3}-\d{4}`),
		regexp.MustCompile(`\s+\(\d{3}\)\s*\d{3}-\d{4}`),
		regexp.MustCompile(`\s+\+\d{11,}`),
	}

	emailPattern  = regexp.MustCompile(`(?i)\s+[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}`)
	urlPatterns   = []*regexp.Regexp{regexp.MustCompile(`(?i)\s+https?://\S+`), regexp.MustCompile(`(?i)\s+[a-z]+\.com/\S*`)}
	opaqueID      = regexp.MustCompile(`(?i)\s+[A-Z0-9_-]{20,}`)
	storeNumber   = regexp.MustCompile(`\s+#\d+\s*$`)
	metaSuffix    = regexp.MustCompile(`(?i)\s+(GOODS/SERVICES|LOCAL TRANSPORTATION|CABLE & PAY TV)$`)
	multiSpace    = regexp.MustCompile(`\s+`)
	trailingZIP   = regexp.MustCompile(`\s+\d{5}(?:-\d{4})?\s*$`)
	trailingState = regexp.MustCompile(`\s+[A-Z]{2}\s*$`)
	trailingUSA   = regexp.MustCompile(`(?i)\s+(?:USA|US)\s*$`)
	fullAddress   = regexp.MustCompile(`(?i)\s+\d+[\s\S]*?\d{5}\s+[A-Z]{2}\s+(?:USA|US)`)
)

// mapping is a compiled merchant rename rule.
type mapping struct {
	pattern *regexp.Regexp
	name    string
}

// Cleaner rewrites raw descriptions into merchant names, honoring
// user-configured merchant mappings first.
type Cleaner struct {
	mappings []mapping
}

// New compiles the configured merchant mappings into a Cleaner. Patterns
// that fail to compile are skipped rather than breaking every import.
func New(rules []config.MerchantMapping) *Cleaner {
	c := &Cleaner{}
	for _, r := range rules {
		re, err := regexp.Compile("(?i)" + r.Pattern)
		if err != nil {
			continue
		}
		c.mappings = append(c.mappings, mapping{pattern: re, name: r.Name})
	}
	return c
}

// Merchant cleans a raw transaction description. A merchant-mapping hit
// short-circuits: the mapped name is returned verbatim with no further
// cleaning.
func (c *Cleaner) Merchant(raw string) string {
	name := html.UnescapeString(strings.TrimSpace(raw))

	for _, m := range c.mappings {
		if m.pattern.MatchString(name) {
			return m.name
		}
	}

	name = leadingDate.ReplaceAllString(name, "")
	for _, re := range processorPrefixes {
		name = re.ReplaceAllString(name, "")
	}
	name = squareReceipt.ReplaceAllString(name, "")
	for _, re := range phonePatterns {
		name = re.ReplaceAllString(name, "")
	}
	name = emailPattern.ReplaceAllString(name, "")
	for _, re := range urlPatterns {
		name = re.ReplaceAllString(name, "")
	}
	name = opaqueID.ReplaceAllString(name, "")
	name = storeNumber.ReplaceAllString(name, "")
	name = metaSuffix.ReplaceAllString(name, "")

	name = titleCase(strings.TrimSpace(multiSpace.ReplaceAllString(name, " ")))
	if name == "" {
		return UnknownMerchant
	}
	return name
}

// AppleCard cleans an Apple Card description: base cleaning plus the
// trailing street-address block Apple appends to every merchant.
func (c *Cleaner) AppleCard(raw string) string {
	desc := c.Merchant(raw)

	desc = fullAddress.ReplaceAllString(desc, "")
	desc = trailingZIP.ReplaceAllString(desc, "")
	desc = trailingState.ReplaceAllString(desc, "")
	desc = trailingUSA.ReplaceAllString(desc, "")

	desc = strings.TrimSpace(multiSpace.ReplaceAllString(desc, " "))
	if desc == "" {
		return UnknownMerchant
	}
	return desc
}

// titleCase capitalizes the first letter of each word and lower-cases the
// rest, so "WHOLE FOODS" and "whole foods" render identically.
func titleCase(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(strings.ToLower(w))
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
