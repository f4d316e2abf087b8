package clean

import (
	"regexp"
	"strings"

	"github.com/timmit98/parse-and-track-spending/internal/region"
)

var (
	cardPrefix      = regexp.MustCompile(`^Card \d{4}\s+`)
	billPayRef      = regexp.MustCompile(`^WO\d+\s+`)
	foreignCurrency = regexp.MustCompile(`^[A-Z]{3}\s+[\d,.]+\s+At\s+[\d.]+\*?\s+(.+)$`)
	salaryDeposit   = regexp.MustCompile(`^(.+?)\s+\d{1,2}-\w+-\d{4}\s+Salary/Wages.+$`)
	brandContinuers = regexp.MustCompile(`^(One|City|Central|Airport|South|North|East|West)`)
)

const maxNZTitleLen = 100

// NZ cleans an ASB-style description using the New Zealand region rules:
// card and bill-pay reference prefixes, city prefixes, foreign-currency and
// salary rewrites, then locale phone/postcode/country stripping.
func NZ(raw string, cfg region.Config) string {
	cleaned := strings.TrimSpace(raw)

	cleaned = cardPrefix.ReplaceAllString(cleaned, "")

	// Payment-network marks ("Eftpos", "Direct Debit") are the local
	// equivalent of POS processor prefixes. Only the mark is dropped; a
	// description that is nothing but the mark stays as is.
	for _, network := range cfg.PaymentNetworks {
		if len(cleaned) <= len(network) || !strings.EqualFold(cleaned[:len(network)], network) {
			continue
		}
		if rest := strings.TrimLeft(cleaned[len(network):], " "); rest != "" && rest != cleaned[len(network):] {
			cleaned = rest
		}
		break
	}

	for _, prefix := range region.NZCityPrefixes {
		if strings.HasPrefix(cleaned, prefix) && len(cleaned) > len(prefix)+3 {
			after := cleaned[len(prefix):]
			if !brandContinuers.MatchString(after) {
				cleaned = after
			}
		}
	}

	cleaned = billPayRef.ReplaceAllString(cleaned, "")

	if m := foreignCurrency.FindStringSubmatch(cleaned); m != nil {
		cleaned = m[1]
	}
	if m := salaryDeposit.FindStringSubmatch(cleaned); m != nil {
		cleaned = m[1] + " (Salary)"
	}

	for _, re := range cfg.PhonePatterns {
		cleaned = re.ReplaceAllString(cleaned, "")
	}
	if cfg.PostcodePattern != nil {
		cleaned = cfg.PostcodePattern.ReplaceAllString(cleaned, "")
	}
	if cfg.CountryPattern != nil {
		cleaned = cfg.CountryPattern.ReplaceAllString(cleaned, "")
	}

	cleaned = strings.TrimSpace(cleaned)
	if runes := []rune(cleaned); len(runes) > maxNZTitleLen {
		cleaned = string(runes[:maxNZTitleLen])
	}
	if cleaned == "" {
		return UnknownMerchant
	}
	return cleaned
}
