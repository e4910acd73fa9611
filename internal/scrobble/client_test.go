package scrobble

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/desertthunder/scrob/internal/models"
	"github.com/desertthunder/scrob/internal/shared"
	scrobtest "github.com/desertthunder/scrob/internal/testing"
)

func testConfig() shared.ServiceConfig {
	return shared.ServiceConfig{
		URL:        "https://submissions.example.test/2.0/",
		APIKey:     "key123",
		SessionKey: "sess456",
		RateLimit:  0, // unlimited in tests
		BatchSize:  50,
	}
}

func batch() []models.Track {
	stamp := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return []models.Track{
		{Artist: "Massive Attack", Album: "Mezzanine", Title: "Teardrop", TrackNumber: 3, Duration: 330, Timestamp: stamp, RatingFlags: "L"},
		{Artist: "Burial", Title: "Archangel", Duration: 238, Timestamp: stamp.Add(6 * time.Minute)},
	}
}

func clientWith(rt http.RoundTripper) *Client {
	return NewClient(testConfig(), &http.Client{Transport: rt})
}

func TestClientSubmit(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		rt := scrobtest.NewMockRoundTripper(scrobtest.TextResponse(200, "OK\n"), nil)
		client := clientWith(rt)

		if err := client.Submit(context.Background(), "alice", batch()); err != nil {
			t.Fatalf("expected success, got %v", err)
		}

		if len(rt.Requests) != 1 {
			t.Fatalf("expected 1 request, got %d", len(rt.Requests))
		}
	})

	t.Run("FormFields", func(t *testing.T) {
		rt := scrobtest.NewMockRoundTripper(scrobtest.TextResponse(200, "OK"), nil)
		client := clientWith(rt)

		if err := client.Submit(context.Background(), "alice", batch()); err != nil {
			t.Fatalf("expected success, got %v", err)
		}

		req := rt.Requests[0]
		body, err := io.ReadAll(req.Body)
		if err != nil {
			t.Fatalf("failed to read request body: %v", err)
		}
		form, err := url.ParseQuery(string(body))
		if err != nil {
			t.Fatalf("failed to parse form: %v", err)
		}

		if form.Get("s") != "sess456" {
			t.Errorf("expected session key, got %q", form.Get("s"))
		}
		if form.Get("u") != "alice" {
			t.Errorf("expected username, got %q", form.Get("u"))
		}
		if form.Get("a[0]") != "Massive Attack" || form.Get("t[0]") != "Teardrop" {
			t.Error("first track fields should be indexed at 0")
		}
		if form.Get("a[1]") != "Burial" {
			t.Error("second track fields should be indexed at 1")
		}
		if form.Get("i[0]") != "1709294400" {
			t.Errorf("expected unix timestamp, got %q", form.Get("i[0]"))
		}
		if form.Get("l[1]") != "238" {
			t.Errorf("expected duration seconds, got %q", form.Get("l[1]"))
		}
		if form.Get("o[0]") != "P" {
			t.Errorf("expected default source P, got %q", form.Get("o[0]"))
		}
		if form.Get("r[0]") != "L" {
			t.Errorf("expected rating L, got %q", form.Get("r[0]"))
		}
		if form.Get("r[1]") != "" {
			t.Errorf("unrated track should send an empty rating, got %q", form.Get("r[1]"))
		}
	})

	t.Run("EmptyBatchIsNoOp", func(t *testing.T) {
		rt := scrobtest.NewMockRoundTripper(scrobtest.TextResponse(200, "OK"), nil)
		client := clientWith(rt)

		if err := client.Submit(context.Background(), "alice", nil); err != nil {
			t.Fatalf("empty batch should succeed, got %v", err)
		}
		if len(rt.Requests) != 0 {
			t.Error("empty batch should not hit the network")
		}
	})

	t.Run("MissingSessionKey", func(t *testing.T) {
		config := testConfig()
		config.SessionKey = ""
		client := NewClient(config, &http.Client{})

		err := client.Submit(context.Background(), "alice", batch())
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("BadSession", func(t *testing.T) {
		rt := scrobtest.NewMockRoundTripper(scrobtest.TextResponse(200, "BADSESSION\n"), nil)
		client := clientWith(rt)

		err := client.Submit(context.Background(), "alice", batch())
		if !errors.Is(err, shared.ErrBadSession) {
			t.Errorf("expected ErrBadSession, got %v", err)
		}
	})

	t.Run("FailedWithReason", func(t *testing.T) {
		rt := scrobtest.NewMockRoundTripper(scrobtest.TextResponse(200, "FAILED Plugin disabled\n"), nil)
		client := clientWith(rt)

		err := client.Submit(context.Background(), "alice", batch())
		if !errors.Is(err, shared.ErrSubmissionFailed) {
			t.Errorf("expected ErrSubmissionFailed, got %v", err)
		}
	})

	t.Run("ServerError", func(t *testing.T) {
		rt := scrobtest.NewMockRoundTripper(scrobtest.TextResponse(503, ""), nil)
		client := clientWith(rt)

		err := client.Submit(context.Background(), "alice", batch())
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})

	t.Run("TransportError", func(t *testing.T) {
		rt := scrobtest.NewMockRoundTripper(nil, errors.New("connection refused"))
		client := clientWith(rt)

		err := client.Submit(context.Background(), "alice", batch())
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}

func TestParseStatus(t *testing.T) {
	cases := []struct {
		name string
		body string
		ok   bool
	}{
		{"OK", "OK", true},
		{"OKWithTrailer", "OK\nINTERVAL 1\n", true},
		{"BadSession", "BADSESSION", false},
		{"Failed", "FAILED", false},
		{"Unexpected", "what", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := parseStatus(tc.body)
			if tc.ok && err != nil {
				t.Errorf("expected success, got %v", err)
			}
			if !tc.ok && err == nil {
				t.Error("expected error")
			}
		})
	}
}
