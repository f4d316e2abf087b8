package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/timmit98/parse-and-track-spending/internal/config"
	"github.com/timmit98/parse-and-track-spending/internal/ledger"
	"github.com/timmit98/parse-and-track-spending/internal/model"
	"github.com/timmit98/parse-and-track-spending/internal/statement"
)

var (
	// ErrFileTooLarge rejects files over the configured import size cap.
	ErrFileTooLarge = errors.New("file exceeds maximum import size")
	// ErrBadExtension rejects anything that is not a .csv or .pdf.
	ErrBadExtension = errors.New("unsupported file type")
)

// Service validates incoming files, hands them to the parse worker, and
// correlates responses back to waiting callers.
type Service struct {
	worker  *Worker
	limits  config.Limits
	timeout time.Duration
	logger  *logrus.Logger

	mu      sync.Mutex
	pending map[string]chan Response
}

// NewService builds a service with the default parser registry. Call Start
// before parsing and Stop when done.
func NewService(cfg *config.Config, logger *logrus.Logger) *Service {
	rules := statement.NewRules(cfg)
	return &Service{
		worker:  NewWorker(statement.DefaultRegistry(rules), statement.NewCSVParser(rules), logger),
		limits:  cfg.Limits,
		timeout: time.Duration(cfg.Limits.ParseTimeout) * time.Second,
		logger:  logger,
		pending: make(map[string]chan Response),
	}
}

// Start launches the parse worker and the response dispatcher.
func (s *Service) Start() {
	s.worker.Start()
	go s.dispatch()
}

// Stop shuts the worker down after draining queued requests.
func (s *Service) Stop() {
	s.worker.Stop()
}

func (s *Service) dispatch() {
	for resp := range s.worker.Responses() {
		s.mu.Lock()
		ch, ok := s.pending[resp.ID]
		delete(s.pending, resp.ID)
		s.mu.Unlock()

		if !ok {
			// The waiter timed out and gave up; drop the late result.
			s.logger.WithField("request_id", resp.ID).Debug("late_parse_response_dropped")
			continue
		}
		ch <- resp
	}
}

// ParseFile validates and parses one statement file. Oversized files and
// unsupported extensions are rejected before any parsing work is queued.
func (s *Service) ParseFile(ctx context.Context, filename string, data []byte) (*model.ParseResult, error) {
	kind, err := kindFor(filename)
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > s.limits.MaxFileBytes {
		return nil, fmt.Errorf("%w: %s is %d bytes (limit %d)",
			ErrFileTooLarge, filename, len(data), s.limits.MaxFileBytes)
	}

	req := Request{
		ID:       uuid.NewString(),
		Filename: filepath.Base(filename),
		Kind:     kind,
		MaxPages: s.limits.MaxPDFPages,
	}
	switch kind {
	case KindCSV:
		req.Text = string(data)
	case KindPDF:
		req.Data = data
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ch := make(chan Response, 1)
	s.mu.Lock()
	s.pending[req.ID] = ch
	s.mu.Unlock()

	select {
	case s.worker.Requests() <- req:
	case <-ctx.Done():
		s.abandon(req.ID)
		return nil, fmt.Errorf("importing %s: %w", filename, ctx.Err())
	}

	select {
	case resp := <-ch:
		if !resp.OK {
			return nil, resp.Err
		}
		return resp.Result, nil
	case <-ctx.Done():
		s.abandon(req.ID)
		return nil, fmt.Errorf("importing %s: %w", filename, ctx.Err())
	}
}

// abandon clears the pending entry for a request whose waiter gave up, so
// the map cannot grow across timed-out imports.
func (s *Service) abandon(id string) {
	s.mu.Lock()
	delete(s.pending, id)
	s.mu.Unlock()
}

func kindFor(filename string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return KindCSV, nil
	case ".pdf":
		return KindPDF, nil
	default:
		return "", fmt.Errorf("%w: %q (want .csv or .pdf)", ErrBadExtension, filename)
	}
}

// FileImport is the outcome of one file in a batch.
type FileImport struct {
	File     string
	Source   string
	Inserted int
	Skipped  int
	Err      error
}

// ImportReport accumulates the outcome of a multi-file import.
type ImportReport struct {
	Files         []FileImport
	Inserted      int
	Skipped       int
	Substitutions int
}

// Messages renders one human-readable status line per file.
func (r *ImportReport) Messages() []string {
	out := make([]string, 0, len(r.Files))
	for _, f := range r.Files {
		if f.Err != nil {
			out = append(out, fmt.Sprintf("%s: %v", f.File, f.Err))
			continue
		}
		out = append(out, fmt.Sprintf("%s: imported %d transactions from %s (%d duplicates skipped)",
			f.File, f.Inserted, f.Source, f.Skipped))
	}
	return out
}

// Sources returns the distinct issuer labels seen across the batch, in
// first-seen order.
func (r *ImportReport) Sources() []string {
	seen := make(map[string]bool)
	var out []string
	for _, f := range r.Files {
		if f.Err != nil || seen[f.Source] {
			continue
		}
		seen[f.Source] = true
		out = append(out, f.Source)
	}
	return out
}

// ImportFiles parses each path and merges the results into the store. A
// failing file aborts only itself; the rest of the batch continues.
func (s *Service) ImportFiles(ctx context.Context, store *ledger.Store, paths []string) *ImportReport {
	report := &ImportReport{}
	for _, path := range paths {
		name := filepath.Base(path)

		data, err := os.ReadFile(path)
		if err != nil {
			report.Files = append(report.Files, FileImport{File: name, Err: fmt.Errorf("reading %s: %w", path, err)})
			continue
		}

		result, err := s.ParseFile(ctx, name, data)
		if err != nil {
			report.Files = append(report.Files, FileImport{File: name, Err: err})
			continue
		}

		inserted, skipped := store.Add(result.Transactions)
		report.Inserted += inserted
		report.Skipped += skipped
		report.Substitutions += result.Substitutions
		report.Files = append(report.Files, FileImport{
			File:     name,
			Source:   result.Source,
			Inserted: inserted,
			Skipped:  skipped,
		})
	}
	return report
}
