package notify

import (
	"time"

	"github.com/rs/zerolog"
)

// ZerologNotifier is the default Port, logging every event as a
// structured log line the way the rest of this codebase logs.
type ZerologNotifier struct {
	log zerolog.Logger
}

// NewZerologNotifier builds a ZerologNotifier on top of an existing logger.
func NewZerologNotifier(log zerolog.Logger) *ZerologNotifier {
	return &ZerologNotifier{log: log.With().Str("component", "crawl").Logger()}
}

func (n *ZerologNotifier) OnStrategyStart(description string) {
	n.log.Info().Str("strategy", description).Msg("starting search strategy")
}

func (n *ZerologNotifier) OnStrategyResult(description string, accepted, fallback int) {
	n.log.Info().
		Str("strategy", description).
		Int("accepted", accepted).
		Int("fallback", fallback).
		Msg("search strategy finished")
}

func (n *ZerologNotifier) OnRetry(url string, attempt, maxAttempts int, wait time.Duration, reason string) {
	n.log.Warn().
		Str("url", url).
		Int("attempt", attempt).
		Int("max_attempts", maxAttempts).
		Dur("wait", wait).
		Str("reason", reason).
		Msg("retrying request")
}

func (n *ZerologNotifier) OnSuccess(label string, total int) {
	n.log.Info().Str("label", label).Int("total", total).Msg("crawl finished")
}

func (n *ZerologNotifier) OnFailure(label string, err error) {
	n.log.Error().Str("label", label).Err(err).Msg("crawl failed")
}

func (n *ZerologNotifier) OnEmptyExport(label string) {
	n.log.Warn().Str("label", label).Msg("crawl produced no results to export")
}
