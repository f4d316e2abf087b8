// Package ingest runs statement parsing off the caller's goroutine and
// enforces the import limits: file size, PDF page count, and a per-file
// parse deadline.
package ingest

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/timmit98/parse-and-track-spending/internal/model"
	"github.com/timmit98/parse-and-track-spending/internal/statement"
)

// Kind says how a request payload should be parsed.
type Kind string

const (
	KindCSV Kind = "csv"
	KindPDF Kind = "pdf"
)

// Request asks the worker to parse one statement file. CSV payloads travel
// as Text, PDF payloads as Data.
type Request struct {
	ID       string
	Filename string
	Kind     Kind
	Text     string
	Data     []byte
	MaxPages int
}

// Response carries the outcome of one request. The worker emits exactly one
// response per request, success or failure.
type Response struct {
	ID     string
	OK     bool
	Result *model.ParseResult
	Err    error
}

// Worker parses statements from a request channel on its own goroutine.
type Worker struct {
	registry  *statement.Registry
	csv       *statement.CSVParser
	requests  chan Request
	responses chan Response
	stop      chan struct{}
	done      chan struct{}
	logger    *logrus.Logger
}

// NewWorker creates a worker over the given parser set.
func NewWorker(registry *statement.Registry, csv *statement.CSVParser, logger *logrus.Logger) *Worker {
	return &Worker{
		registry:  registry,
		csv:       csv,
		requests:  make(chan Request, 16),
		responses: make(chan Response, 16),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logger,
	}
}

// Requests is the channel parse requests are submitted on.
func (w *Worker) Requests() chan<- Request { return w.requests }

// Responses is the channel parse outcomes arrive on. It is closed once the
// worker stops.
func (w *Worker) Responses() <-chan Response { return w.responses }

// Start begins processing requests in a background goroutine.
func (w *Worker) Start() {
	go func() {
		defer close(w.done)
		defer close(w.responses)
		w.logger.Info("parse_worker_started")

		for {
			select {
			case <-w.stop:
				// Drain whatever was queued before the stop signal.
				for {
					select {
					case req := <-w.requests:
						w.process(req)
					default:
						w.logger.Info("parse_worker_stopped")
						return
					}
				}
			case req := <-w.requests:
				w.process(req)
			}
		}
	}()
}

// Stop signals the worker to finish queued requests and waits for it.
func (w *Worker) Stop() {
	close(w.stop)
	<-w.done
}

func (w *Worker) process(req Request) {
	l := w.logger.WithFields(logrus.Fields{
		"request_id": req.ID,
		"filename":   req.Filename,
		"kind":       req.Kind,
	})
	l.Info("parse_started")
	start := time.Now()

	var result *model.ParseResult
	var err error
	switch req.Kind {
	case KindCSV:
		result, err = w.csv.Parse(strings.NewReader(req.Text), req.Filename)
	case KindPDF:
		result, err = w.registry.ParsePDF(req.Data, req.Filename, req.MaxPages)
	default:
		err = fmt.Errorf("unknown request kind %q", req.Kind)
	}

	if err != nil {
		l.WithError(err).Warn("parse_failed")
		w.responses <- Response{ID: req.ID, Err: err}
		return
	}

	l.WithFields(logrus.Fields{
		"transactions":  len(result.Transactions),
		"source":        result.Source,
		"substitutions": result.Substitutions,
		"elapsed_ms":    time.Since(start).Milliseconds(),
	}).Info("parse_completed")
	w.responses <- Response{ID: req.ID, OK: true, Result: result}
}
