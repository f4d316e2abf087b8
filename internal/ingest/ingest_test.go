package ingest

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timmit98/parse-and-track-spending/internal/config"
	"github.com/timmit98/parse-and-track-spending/internal/ledger"
	"github.com/timmit98/parse-and-track-spending/internal/statement"
)

const sampleCSV = "Date,Amount,Description\n01/15/2025,$45.00,Whole Foods Market\n"

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestParseFile_RejectsOversizedFile(t *testing.T) {
	cfg := config.Default()
	cfg.Limits.MaxFileBytes = 10
	s := NewService(cfg, testLogger())

	_, err := s.ParseFile(context.Background(), "big.csv", []byte("0123456789abc"))
	require.ErrorIs(t, err, ErrFileTooLarge)
	assert.Contains(t, err.Error(), "big.csv")
}

func TestParseFile_RejectsUnsupportedExtension(t *testing.T) {
	s := NewService(config.Default(), testLogger())

	_, err := s.ParseFile(context.Background(), "statement.txt", []byte("anything"))
	require.ErrorIs(t, err, ErrBadExtension)

	_, err = s.ParseFile(context.Background(), "statement", []byte("anything"))
	require.ErrorIs(t, err, ErrBadExtension)
}

func TestParseFile_CSVEndToEnd(t *testing.T) {
	s := NewService(config.Default(), testLogger())
	s.Start()
	defer s.Stop()

	result, err := s.ParseFile(context.Background(), "transactions.csv", []byte(sampleCSV))
	require.NoError(t, err)
	require.Len(t, result.Transactions, 1)
	assert.Equal(t, "Whole Foods Market", result.Transactions[0].Title)
}

func TestParseFile_ParserErrorsPropagate(t *testing.T) {
	s := NewService(config.Default(), testLogger())
	s.Start()
	defer s.Stop()

	_, err := s.ParseFile(context.Background(), "weird.csv", []byte("Foo,Bar\n1,2\n"))
	require.ErrorIs(t, err, statement.ErrMissingColumns)
}

func TestParseFile_TimeoutClearsPending(t *testing.T) {
	s := NewService(config.Default(), testLogger())
	s.timeout = 20 * time.Millisecond
	// The worker is deliberately not started: the request sits queued until
	// the deadline fires.

	_, err := s.ParseFile(context.Background(), "slow.csv", []byte(sampleCSV))
	require.ErrorIs(t, err, context.DeadlineExceeded)

	s.mu.Lock()
	defer s.mu.Unlock()
	assert.Empty(t, s.pending, "a timed-out request must not leak bookkeeping")
}

func TestWorker_OneResponsePerRequest(t *testing.T) {
	rules := statement.NewRules(config.Default())
	w := NewWorker(statement.DefaultRegistry(rules), statement.NewCSVParser(rules), testLogger())
	w.Start()

	w.Requests() <- Request{ID: "good", Filename: "a.csv", Kind: KindCSV, Text: sampleCSV}
	w.Requests() <- Request{ID: "bad", Filename: "b.csv", Kind: KindCSV, Text: "Foo,Bar\n1,2\n"}
	w.Stop()

	got := make(map[string]Response)
	for resp := range w.Responses() {
		_, dup := got[resp.ID]
		require.False(t, dup, "second response for request %s", resp.ID)
		got[resp.ID] = resp
	}

	require.Len(t, got, 2)
	assert.True(t, got["good"].OK)
	require.NotNil(t, got["good"].Result)
	assert.False(t, got["bad"].OK)
	assert.Error(t, got["bad"].Err)
}

func TestImportFiles_FailingFileAbortsOnlyItself(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.csv")
	bad := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(good, []byte(sampleCSV), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("not a statement"), 0o644))
	missing := filepath.Join(dir, "gone.csv")

	s := NewService(config.Default(), testLogger())
	s.Start()
	defer s.Stop()

	store := ledger.NewStore()
	report := s.ImportFiles(context.Background(), store, []string{good, bad, missing})

	require.Len(t, report.Files, 3)
	assert.Equal(t, 1, report.Inserted)
	assert.Equal(t, 1, store.Len())

	assert.NoError(t, report.Files[0].Err)
	assert.ErrorIs(t, report.Files[1].Err, ErrBadExtension)
	assert.Error(t, report.Files[2].Err)

	msgs := report.Messages()
	require.Len(t, msgs, 3)
	assert.Contains(t, msgs[0], "imported 1 transactions")
	assert.Equal(t, []string{"Unknown"}, report.Sources())
}
