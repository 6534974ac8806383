// Package notify defines the observer port the crawl controller and
// fetcher use to report progress, so a caller (CLI, future GUI) can surface
// retries, per-strategy results, and terminal outcomes without the crawl
// logic depending on any particular UI.
package notify

import "time"

// Port is implemented by anything that wants to observe a crawl run.
type Port interface {
	OnStrategyStart(description string)
	OnStrategyResult(description string, accepted, fallback int)
	OnRetry(url string, attempt, maxAttempts int, wait time.Duration, reason string)
	OnSuccess(label string, total int)
	OnFailure(label string, err error)
	OnEmptyExport(label string)
}
