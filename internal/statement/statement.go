// Package statement turns raw statement files into transaction candidates.
// Each supported institution layout has its own Parser; a Registry picks the
// right one by filename first, then document content.
package statement

import (
	"errors"
	"fmt"
	"strings"

	"github.com/timmit98/parse-and-track-spending/internal/categorize"
	"github.com/timmit98/parse-and-track-spending/internal/clean"
	"github.com/timmit98/parse-and-track-spending/internal/config"
	"github.com/timmit98/parse-and-track-spending/internal/model"
)

var (
	// ErrUnknownFormat means no registered parser recognized the document.
	ErrUnknownFormat = errors.New("unknown statement format")
	// ErrNoTransactions means a parser matched but extracted nothing, which
	// signals a layout mismatch rather than an empty-but-valid statement.
	ErrNoTransactions = errors.New("no transactions found in statement")
	// ErrTooManyPages guards against resource exhaustion.
	ErrTooManyPages = errors.New("PDF page count exceeds maximum")
	// ErrMissingColumns means a CSV lacked identifiable date/amount/title
	// columns.
	ErrMissingColumns = errors.New("could not identify required CSV columns")
)

// Rules bundles the shared cleaning, categorization, and transfer-screening
// machinery parsers use per row.
type Rules struct {
	Cleaner     *clean.Cleaner
	Categorizer *categorize.Categorizer
	Transfers   *categorize.Filter
}

// NewRules builds Rules from a config.
func NewRules(cfg *config.Config) *Rules {
	return &Rules{
		Cleaner:     clean.New(cfg.MerchantMappings),
		Categorizer: categorize.New(cfg.Categories),
		Transfers:   categorize.NewFilter(cfg.Transfers),
	}
}

// Parser extracts transactions from one institution's statement layout.
type Parser interface {
	// Source is the issuer label attached to parsed transactions.
	Source() string
	// MatchFilename reports whether the (lower-cased) filename points at
	// this institution.
	MatchFilename(name string) bool
	// MatchContent reports whether the extracted document text points at
	// this institution.
	MatchContent(content string) bool
	// Parse extracts transactions from per-page text.
	Parse(pages []string) (*model.ParseResult, error)
}

// Registry holds parsers in priority order.
type Registry struct {
	parsers []Parser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a parser. Panics on a duplicate source label.
func (r *Registry) Register(p Parser) {
	for _, existing := range r.parsers {
		if strings.EqualFold(existing.Source(), p.Source()) {
			panic("duplicate statement parser: " + p.Source())
		}
	}
	r.parsers = append(r.parsers, p)
}

// DefaultRegistry returns a registry with all built-in parsers in priority
// order.
func DefaultRegistry(rules *Rules) *Registry {
	r := NewRegistry()
	r.Register(NewAppleCardParser(rules))
	r.Register(NewAmexParser(rules))
	r.Register(NewUSBankParser(rules))
	r.Register(NewASBParser(rules))
	return r
}

// Detect picks the parser for a document. Filename matches take priority
// over content matches; within each pass, registration order wins. An
// unrecognized document is a hard failure.
func (r *Registry) Detect(filename, content string) (Parser, error) {
	lower := strings.ToLower(filename)
	for _, p := range r.parsers {
		if p.MatchFilename(lower) {
			return p, nil
		}
	}
	for _, p := range r.parsers {
		if p.MatchContent(content) {
			return p, nil
		}
	}
	sources := make([]string, len(r.parsers))
	for i, p := range r.parsers {
		sources[i] = p.Source()
	}
	return nil, fmt.Errorf("%w (supported: %s)", ErrUnknownFormat, strings.Join(sources, ", "))
}

// ParsePDF extracts page text from a PDF, detects its institution, and runs
// the matching parser.
func (r *Registry) ParsePDF(data []byte, filename string, maxPages int) (*model.ParseResult, error) {
	pages, err := ExtractPages(data, maxPages)
	if err != nil {
		return nil, err
	}

	p, err := r.Detect(filename, strings.Join(pages, " "))
	if err != nil {
		return nil, err
	}

	result, err := p.Parse(pages)
	if err != nil {
		return nil, fmt.Errorf("parsing %s statement: %w", p.Source(), err)
	}
	if len(result.Transactions) == 0 {
		return nil, fmt.Errorf("%w: is this a valid %s statement?", ErrNoTransactions, p.Source())
	}
	return result, nil
}
