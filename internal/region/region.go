// Package region holds static locale descriptors consumed by the cleaners
// and parsers. These are read-only lookup tables, never mutated at runtime.
package region

import "regexp"

// Config describes locale-specific cleaning rules for one region.
type Config struct {
	Code            string
	CurrencyCode    string
	PhonePatterns   []*regexp.Regexp
	PostcodePattern *regexp.Regexp
	CountryPattern  *regexp.Regexp
	// PaymentNetworks are local processor marks banks prepend to
	// descriptions; the cleaner strips them like any other POS prefix.
	PaymentNetworks []string
}

// NZ is the New Zealand region descriptor.
var NZ = Config{
	Code:         "NZ",
	CurrencyCode: "NZD",
	PhonePatterns: []*regexp.Regexp{
		regexp.MustCompile(`\s+\+64\d{8,10}`),
		regexp.MustCompile(`\s+\d{2,3}[-\s]\d{3}[-\s]\d{4}`),
	},
	PostcodePattern: regexp.MustCompile(`\s+\d{4}\s*$`),
	CountryPattern:  regexp.MustCompile(`(?i)\s+(?:NZ|NEW ZEALAND)\s*$`),
	PaymentNetworks: []string{"eftpos", "poli", "internet banking", "direct debit"},
}

// NZCityPrefixes are city names ASB prepends to card transaction
// descriptions. A prefix is only stripped when the remainder does not look
// like part of the brand name itself ("Auckland One NZ" keeps its city).
var NZCityPrefixes = []string{
	"Christchurch ", "Auckland ", "Wellington ", "Hamilton ", "Tauranga ",
	"Dunedin ", "Palmerston North ", "Napier ", "Porirua ", "Hibiscus Coast ",
	"Upper Hutt ", "Lower Hutt ", "Rotorua ", "New Plymouth ", "Whangarei ",
	"Invercargill ", "Nelson ", "Queenstown ", "Merivale ", "Riccarton ",
	"Hornby ", "Papanui ",
}
