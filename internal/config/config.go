// Package config holds the rules file driving cleaning, categorization, and
// import limits. Everything has an embedded default so no file is required;
// a spendtrack.yaml overrides it wholesale.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level spendtrack.yaml configuration.
type Config struct {
	Categories       []CategoryRule    `yaml:"categories"`
	MerchantMappings []MerchantMapping `yaml:"merchant_mappings,omitempty"`
	Transfers        TransferRules     `yaml:"transfers"`
	Limits           Limits            `yaml:"limits"`
}

// CategoryRule maps a spending category to its keyword list. Rules are an
// ordered list, not a map: categorization is first-match-wins in this order
// and tests depend on it.
type CategoryRule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// MerchantMapping rewrites any description matching Pattern to Name,
// skipping all further cleaning. First match wins.
type MerchantMapping struct {
	Pattern string `yaml:"pattern"` // case-insensitive regexp
	Name    string `yaml:"name"`
}

// TransferRules lists money-movement phrases that disqualify a row from
// being counted as spending.
type TransferRules struct {
	CardPayments     []string `yaml:"card_payments"`
	AccountTransfers []string `yaml:"account_transfers"`
}

// Limits bounds a single import.
type Limits struct {
	MaxFileBytes int64 `yaml:"max_file_bytes"`
	MaxPDFPages  int   `yaml:"max_pdf_pages"`
	ParseTimeout int   `yaml:"parse_timeout_seconds"`
}

// Load reads a spendtrack.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the built-in rules.
func Default() *Config {
	return &Config{
		Categories: []CategoryRule{
			{Name: "Food & Dining", Keywords: []string{
				"restaurant", "cafe", "coffee", "starbucks", "dunkin", "pizza",
				"burger", "taco", "sushi", "grill", "diner", "bakery", "deli",
				"whole foods", "trader joe", "market", "grocery", "safeway",
				"kroger", "wegmans", "doordash", "grubhub", "uber eats", "chipotle",
			}},
			{Name: "Transportation", Keywords: []string{
				"uber", "lyft", "taxi", "shell", "chevron", "exxon", "mobil",
				"gas", "fuel", "parking", "toll", "metro", "transit", "mta",
				"amtrak", "bp ", "z energy",
			}},
			{Name: "Shopping", Keywords: []string{
				"amazon", "target", "walmart", "costco", "best buy", "home depot",
				"lowes", "ikea", "nordstrom", "macys", "rei", "etsy", "ebay",
				"kmart", "the warehouse",
			}},
			{Name: "Entertainment", Keywords: []string{
				"cinema", "theater", "theatre", "ticketmaster", "stubhub",
				"steam", "playstation", "nintendo", "xbox", "concert", "museum",
				"bowling", "arcade",
			}},
			{Name: "Subscriptions", Keywords: []string{
				"netflix", "spotify", "hulu", "disney", "hbo", "youtube premium",
				"apple.com/bill", "icloud", "github", "openai", "patreon",
				"substack", "audible", "dropbox",
			}},
			{Name: "Bills & Utilities", Keywords: []string{
				"electric", "water", "utility", "internet", "comcast", "xfinity",
				"verizon", "t-mobile", "at&t", "insurance", "rent", "mortgage",
				"con edison", "national grid", "vodafone", "powershop",
			}},
			{Name: "Health", Keywords: []string{
				"pharmacy", "cvs", "walgreens", "doctor", "dental", "clinic",
				"hospital", "gym", "fitness", "chemist",
			}},
			{Name: "Travel", Keywords: []string{
				"airline", "airbnb", "hotel", "marriott", "hilton", "expedia",
				"delta", "united", "southwest", "air nz", "jetstar", "booking.com",
			}},
		},
		Transfers: TransferRules{
			CardPayments: []string{
				"amex epayment", "amex payment", "american express ach",
				"american express pmt", "applecard gsbank", "apple card payment",
				"chase payment", "citi payment", "discover payment",
				"capital one payment", "credit card payment",
			},
			AccountTransfers: []string{
				"zelle", "venmo", "paypal transfer", "account transfer",
				"transfer to", "transfer from", "robinhood", "debits xxxxx",
				"internal transfer", "external transfer",
			},
		},
		Limits: Limits{
			MaxFileBytes: 2 * 1024 * 1024,
			MaxPDFPages:  60,
			ParseTimeout: 60,
		},
	}
}
