// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/desertthunder/scrob/internal/models"
)

// MockSubmitter is a test double for [scrobble.Submitter] that records every
// batch it receives and fails after AllowBatches successful calls when set.
type MockSubmitter struct {
	Batches      [][]models.Track
	AllowBatches int // 0 means never fail
	Err          error
}

func (m *MockSubmitter) Submit(ctx context.Context, username string, tracks []models.Track) error {
	if m.AllowBatches > 0 && len(m.Batches) >= m.AllowBatches {
		if m.Err != nil {
			return m.Err
		}
		return errors.New("submit failed")
	}

	batch := make([]models.Track, len(tracks))
	copy(batch, tracks)
	m.Batches = append(m.Batches, batch)
	return nil
}

func (m *MockSubmitter) Name() string { return "mock" }

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
	Requests []*http.Request
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	m.Requests = append(m.Requests, req)
	return m.response, m.err
}

// TextResponse builds an [http.Response] with a plain text body
func TextResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertFileAbsent(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("File should not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
