// internal/logs/feed.go
package logs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/localdash/localdash-api-server/internal/models"
)

// SourceTroubleshooting is the sentinel feed source used when no container
// yields logs.
const SourceTroubleshooting = "troubleshooting"

// Listing text in the diagnostic feed is capped to this many characters.
const maxListingLength = 500

// Collect runs the full aggregation pipeline: resolve a log source among
// the candidate containers, parse and classify its lines, and window the
// result. When no source resolves it returns the troubleshooting feed,
// still marked successful; the absence of logs is degradation, not
// failure. An unexpected panic anywhere in the pipeline is recovered into
// a success=false feed so the transport layer always has valid JSON to
// serialize.
//
// The pipeline deliberately ignores client-side cancellation: callers pass
// a background context and each external call carries its own timeout.
func (s *Service) Collect(ctx context.Context) (feed models.LogFeed) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("Logs pipeline panicked: %v", r)
			feed = FaultFeed(fmt.Sprintf("%v", r))
		}
	}()

	raw, container, ok := s.resolve(ctx)
	if !ok {
		log.Info("No LocalStack container found, providing troubleshooting info")
		return s.buildDiagnostic(ctx)
	}

	records := ParseLines(raw)
	feed = Assemble(records, container)
	log.Infof("Served %d log entries from %s", len(feed.Logs), container)
	return feed
}

// Assemble packages parsed records into a feed: Total counts everything
// parsed, Logs keeps only the most recent MaxFeedRecords entries in their
// original order.
func Assemble(records []models.LogRecord, container string) models.LogFeed {
	total := len(records)
	window := records
	if total > models.MaxFeedRecords {
		window = records[total-models.MaxFeedRecords:]
	}
	return models.LogFeed{
		Success:   true,
		Logs:      window,
		Total:     total,
		Source:    fmt.Sprintf("docker:%s", container),
		Container: container,
	}
}

// buildDiagnostic produces the synthetic feed served when every candidate
// container failed or returned nothing. The container listing is best
// effort; if it fails too, a placeholder notes that.
func (s *Service) buildDiagnostic(ctx context.Context) models.LogFeed {
	listing := "Docker not available"
	listCtx, cancel := context.WithTimeout(ctx, s.opts.ListTimeout)
	if out, err := s.retriever.ListContainers(listCtx); err == nil {
		listing = out
	} else {
		log.Debug("Container listing unavailable", "error", err)
	}
	cancel()

	listing = truncateRunes(listing, maxListingLength)

	now := time.Now().Format(fallbackTimeLayout)
	records := []models.LogRecord{
		{Timestamp: now, Level: models.LevelWarning, Message: "No LocalStack container found running"},
		{Timestamp: now, Level: models.LevelInfo, Message: "Searched for containers: " + strings.Join(s.opts.Candidates, ", ")},
		{Timestamp: now, Level: models.LevelInfo, Message: "Available containers:"},
		{Timestamp: now, Level: models.LevelDebug, Message: listing},
	}

	return models.LogFeed{
		Success: true,
		Logs:    records,
		Total:   len(records),
		Source:  SourceTroubleshooting,
	}
}

// FaultFeed builds the failure envelope for an unexpected pipeline error.
func FaultFeed(reason string) models.LogFeed {
	record := models.LogRecord{
		Timestamp: time.Now().Format(fallbackTimeLayout),
		Level:     models.LevelError,
		Message:   "Error fetching logs: " + reason,
	}
	return models.LogFeed{
		Success: false,
		Logs:    []models.LogRecord{record},
		Total:   1,
		Error:   "Failed to fetch logs: " + reason,
	}
}
