package scrobble

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/desertthunder/scrob/internal/models"
	"github.com/desertthunder/scrob/internal/shared"
)

// defaultSource marks a play the user chose themselves, the protocol's "P".
const defaultSource = "P"

// Client submits plays over HTTP in the AudioScrobbler form-encoded style.
type Client struct {
	url        string
	apiKey     string
	sessionKey string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a Client from the service configuration. The HTTP client
// is injectable for testing; nil means a default with a 30 second timeout.
func NewClient(config shared.ServiceConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	limit := rate.Limit(config.RateLimit)
	if config.RateLimit <= 0 {
		limit = rate.Inf
	}

	return &Client{
		url:        config.URL,
		apiKey:     config.APIKey,
		sessionKey: config.SessionKey,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, 1),
	}
}

// Name returns the submitter name.
func (c *Client) Name() string { return "audioscrobbler" }

// Submit delivers one batch of tracks. An empty batch is a no-op.
func (c *Client) Submit(ctx context.Context, username string, tracks []models.Track) error {
	if len(tracks) == 0 {
		return nil
	}
	if c.sessionKey == "" {
		return fmt.Errorf("%w: no session key configured", shared.ErrMissingCredentials)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter interrupted: %w", err)
	}

	form := c.encodeBatch(username, tracks)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 500 {
		return fmt.Errorf("%w: status %d", shared.ErrServiceUnavailable, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", shared.ErrSubmissionFailed, resp.StatusCode)
	}

	return parseStatus(string(body))
}

// encodeBatch builds the indexed form fields the submission endpoint expects.
func (c *Client) encodeBatch(username string, tracks []models.Track) url.Values {
	form := url.Values{}
	form.Set("s", c.sessionKey)
	form.Set("api_key", c.apiKey)
	form.Set("u", username)

	for i, track := range tracks {
		idx := strconv.Itoa(i)
		form.Set("a["+idx+"]", track.Artist)
		form.Set("t["+idx+"]", track.Title)
		form.Set("b["+idx+"]", track.Album)
		form.Set("l["+idx+"]", strconv.Itoa(track.Duration))
		form.Set("i["+idx+"]", strconv.FormatInt(track.Timestamp.Unix(), 10))
		form.Set("m["+idx+"]", track.MBID)

		source := track.Source
		if source == "" {
			source = defaultSource
		}
		form.Set("o["+idx+"]", source)

		n := ""
		if track.TrackNumber > 0 {
			n = strconv.Itoa(track.TrackNumber)
		}
		form.Set("n["+idx+"]", n)
		form.Set("r["+idx+"]", track.RatingFlags)
	}

	return form
}

// parseStatus maps the one-line response body to an error class.
func parseStatus(body string) error {
	status := strings.TrimSpace(body)
	if idx := strings.IndexByte(status, '\n'); idx >= 0 {
		status = status[:idx]
	}

	switch {
	case status == "OK":
		return nil
	case status == "BADSESSION":
		return shared.ErrBadSession
	case strings.HasPrefix(status, "FAILED"):
		reason := strings.TrimSpace(strings.TrimPrefix(status, "FAILED"))
		if reason == "" {
			return shared.ErrSubmissionFailed
		}
		return fmt.Errorf("%w: %s", shared.ErrSubmissionFailed, reason)
	default:
		return fmt.Errorf("%w: unexpected response %q", shared.ErrSubmissionFailed, status)
	}
}
