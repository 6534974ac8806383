package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"litcrawl/internal/notify"
)

const (
	maxAttempts       = 6
	initialBackoff    = 5 * time.Second
	maxBackoff        = 60 * time.Second
	backoffMultiplier = 2
)

// Fetcher retries a GET request against transient failures with
// exponential backoff, honoring Retry-After headers, and notifying a
// notify.Port before each wait.
type Fetcher struct {
	transport      TransportPort
	notifier       notify.Port
	headers        map[string]string
	initialBackoff time.Duration
	maxBackoff     time.Duration
}

// NewFetcher builds a Fetcher on top of a TransportPort. headers are sent
// with every request (e.g. an API key header). Backoff starts at 5s,
// doubling on each retry up to a 60s cap.
func NewFetcher(transport TransportPort, notifier notify.Port, headers map[string]string) *Fetcher {
	return &Fetcher{
		transport:      transport,
		notifier:       notifier,
		headers:        headers,
		initialBackoff: initialBackoff,
		maxBackoff:     maxBackoff,
	}
}

// WithBackoff overrides the default backoff schedule, used by tests that
// would otherwise wait tens of seconds for real retries.
func (f *Fetcher) WithBackoff(initial, max time.Duration) *Fetcher {
	f.initialBackoff = initial
	f.maxBackoff = max
	return f
}

// FetchJSON performs url with retries and decodes the JSON response body
// into out. It returns a *Error on failure, classified by ErrorKind.
func (f *Fetcher) FetchJSON(ctx context.Context, url string, out interface{}) error {
	body, err := f.fetch(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Kind: ErrorKindMalformed, Err: err}
	}
	return nil
}

func (f *Fetcher) fetch(ctx context.Context, url string) ([]byte, error) {
	backoff := f.initialBackoff
	var lastErr *Error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		body, fetchErr := f.attempt(ctx, url)
		if fetchErr == nil {
			return body, nil
		}

		lastErr = fetchErr
		if attempt == maxAttempts || !retryable(fetchErr.Kind) {
			return nil, fetchErr
		}

		wait := backoff
		var rateWait rateLimitedWait
		if errors.As(fetchErr.Err, &rateWait) {
			wait = time.Duration(rateWait)
		}

		if f.notifier != nil {
			f.notifier.OnRetry(url, attempt, maxAttempts, wait, fetchErr.Kind.String())
		}

		select {
		case <-ctx.Done():
			return nil, &Error{Kind: ErrorKindTimeout, Err: ctx.Err()}
		case <-time.After(wait):
		}

		backoff *= backoffMultiplier
		if backoff > f.maxBackoff {
			backoff = f.maxBackoff
		}
	}

	return nil, lastErr
}

func (f *Fetcher) attempt(ctx context.Context, url string) ([]byte, *Error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{Kind: ErrorKindOther, Err: err}
	}
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}

	resp, err := f.transport.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &Error{Kind: ErrorKindTimeout, Err: err}
		}
		return nil, &Error{Kind: ErrorKindNetwork, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: ErrorKindMalformed, Status: resp.StatusCode, Err: err}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &Error{Kind: ErrorKindRateLimited, Status: resp.StatusCode, Err: errFromRetryAfter(resp)}
	case resp.StatusCode >= 500:
		return nil, &Error{Kind: ErrorKindUnavailable, Status: resp.StatusCode, Err: errFromRetryAfter(resp)}
	default:
		return nil, &Error{Kind: ErrorKindOtherHTTP, Status: resp.StatusCode, Err: errStatus(resp.StatusCode)}
	}
}

func retryable(kind ErrorKind) bool {
	switch kind {
	case ErrorKindRateLimited, ErrorKindUnavailable, ErrorKindTimeout, ErrorKindNetwork:
		return true
	default:
		return false
	}
}

// RetryAfter parses the Retry-After header of resp, in seconds, returning
// 0 when absent or unparseable.
func RetryAfter(resp *http.Response) time.Duration {
	raw := resp.Header.Get("Retry-After")
	if raw == "" {
		return 0
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func errFromRetryAfter(resp *http.Response) error {
	if wait := RetryAfter(resp); wait > 0 {
		return errRateLimitedWithWait(wait)
	}
	return errStatus(resp.StatusCode)
}

type statusError int

func (s statusError) Error() string { return "unexpected status " + strconv.Itoa(int(s)) }

func errStatus(code int) error { return statusError(code) }

type rateLimitedWait time.Duration

func (r rateLimitedWait) Error() string { return "rate limited, retry after " + time.Duration(r).String() }

func errRateLimitedWithWait(d time.Duration) error { return rateLimitedWait(d) }
