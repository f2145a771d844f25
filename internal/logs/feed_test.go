package logs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localdash/localdash-api-server/internal/models"
)

// fakeRetriever is a scriptable test double for the container runtime.
type fakeRetriever struct {
	logs    map[string]string
	errs    map[string]error
	listing string
	listErr error
	calls   []string
}

func (f *fakeRetriever) ContainerLogs(_ context.Context, name string, _ int, _ bool) (string, error) {
	f.calls = append(f.calls, name)
	if err, ok := f.errs[name]; ok {
		return "", err
	}
	return f.logs[name], nil
}

func (f *fakeRetriever) ListContainers(_ context.Context) (string, error) {
	return f.listing, f.listErr
}

func testOptions(candidates ...string) Options {
	return Options{
		Candidates:   candidates,
		TailLines:    100,
		FetchTimeout: time.Second,
		ListTimeout:  time.Second,
	}
}

func TestAssembleWindowsToLastFifty(t *testing.T) {
	records := make([]models.LogRecord, 120)
	for i := range records {
		records[i] = models.LogRecord{
			Timestamp: "2024-08-08 10:30:45",
			Level:     models.LevelInfo,
			Message:   fmt.Sprintf("line %d", i),
		}
	}

	feed := Assemble(records, "localstack-main")

	assert.True(t, feed.Success)
	assert.Equal(t, 120, feed.Total)
	require.Len(t, feed.Logs, models.MaxFeedRecords)
	// Last 50 in original order
	assert.Equal(t, "line 70", feed.Logs[0].Message)
	assert.Equal(t, "line 119", feed.Logs[49].Message)
	assert.Equal(t, "docker:localstack-main", feed.Source)
	assert.Equal(t, "localstack-main", feed.Container)
}

func TestAssembleSmallInput(t *testing.T) {
	records := []models.LogRecord{
		{Timestamp: "t", Level: models.LevelInfo, Message: "only one"},
	}

	feed := Assemble(records, "localstack")

	assert.Equal(t, 1, feed.Total)
	assert.Len(t, feed.Logs, 1)
	assert.GreaterOrEqual(t, feed.Total, len(feed.Logs))
}

func TestCollectUsesFirstCandidateWithOutput(t *testing.T) {
	retriever := &fakeRetriever{
		logs: map[string]string{
			"second": "2024-08-08T10:30:45.123Z Started service\n",
			"third":  "2024-08-08T10:30:45.123Z should never be read\n",
		},
		errs: map[string]error{
			"first": errors.New("no such container"),
		},
	}
	svc := NewService(retriever, testOptions("first", "second", "third"))

	feed := svc.Collect(context.Background())

	assert.True(t, feed.Success)
	assert.Equal(t, "docker:second", feed.Source)
	assert.Equal(t, "second", feed.Container)
	require.Len(t, feed.Logs, 1)
	assert.Equal(t, "Started service", feed.Logs[0].Message)
	// Resolution stops at the first hit
	assert.Equal(t, []string{"first", "second"}, retriever.calls)
}

func TestCollectSkipsWhitespaceOnlyOutput(t *testing.T) {
	retriever := &fakeRetriever{
		logs: map[string]string{
			"first":  "   \n\t\n",
			"second": "2024-08-08T10:30:45.123Z hello\n",
		},
	}
	svc := NewService(retriever, testOptions("first", "second"))

	feed := svc.Collect(context.Background())

	assert.Equal(t, "second", feed.Container)
}

func TestCollectExhaustionReturnsTroubleshootingFeed(t *testing.T) {
	retriever := &fakeRetriever{
		errs: map[string]error{
			"a": errors.New("timeout"),
			"b": errors.New("no such container"),
		},
		listing: "NAMES     IMAGE     STATUS\nredis     redis:7   Up 2 hours",
	}
	svc := NewService(retriever, testOptions("a", "b"))

	feed := svc.Collect(context.Background())

	// Absence of logs is not a request failure
	assert.True(t, feed.Success)
	assert.Equal(t, SourceTroubleshooting, feed.Source)
	require.Len(t, feed.Logs, 4)
	assert.Equal(t, 4, feed.Total)

	assert.Equal(t, models.LevelWarning, feed.Logs[0].Level)
	assert.Contains(t, feed.Logs[0].Message, "No LocalStack container found")

	assert.Equal(t, models.LevelInfo, feed.Logs[1].Level)
	assert.Contains(t, feed.Logs[1].Message, "a, b")

	assert.Equal(t, "Available containers:", feed.Logs[2].Message)

	assert.Equal(t, models.LevelDebug, feed.Logs[3].Level)
	assert.Contains(t, feed.Logs[3].Message, "redis")
}

func TestDiagnosticListingFailureUsesPlaceholder(t *testing.T) {
	retriever := &fakeRetriever{
		errs:    map[string]error{"a": errors.New("boom")},
		listErr: errors.New("docker daemon not running"),
	}
	svc := NewService(retriever, testOptions("a"))

	feed := svc.Collect(context.Background())

	require.Len(t, feed.Logs, 4)
	assert.Equal(t, "Docker not available", feed.Logs[3].Message)
}

func TestDiagnosticListingTruncated(t *testing.T) {
	retriever := &fakeRetriever{
		errs:    map[string]error{"a": errors.New("boom")},
		listing: strings.Repeat("c", 2000),
	}
	svc := NewService(retriever, testOptions("a"))

	feed := svc.Collect(context.Background())

	require.Len(t, feed.Logs, 4)
	assert.Len(t, feed.Logs[3].Message, maxListingLength)
}

func TestDiagnosticListingCapIsCharacters(t *testing.T) {
	// 600 characters, 1200 bytes: the 500 cap counts characters
	retriever := &fakeRetriever{
		errs:    map[string]error{"a": errors.New("boom")},
		listing: strings.Repeat("é", 600),
	}
	svc := NewService(retriever, testOptions("a"))

	feed := svc.Collect(context.Background())

	require.Len(t, feed.Logs, 4)
	assert.Equal(t, maxListingLength, utf8.RuneCountInString(feed.Logs[3].Message))
	assert.True(t, utf8.ValidString(feed.Logs[3].Message))
}

func TestFaultFeed(t *testing.T) {
	feed := FaultFeed("something broke")

	assert.False(t, feed.Success)
	assert.Contains(t, feed.Error, "something broke")
	require.Len(t, feed.Logs, 1)
	assert.Equal(t, models.LevelError, feed.Logs[0].Level)
	assert.Contains(t, feed.Logs[0].Message, "something broke")
	assert.Equal(t, 1, feed.Total)
}

func TestCollectRecoversFromPanic(t *testing.T) {
	svc := NewService(panickingRetriever{}, testOptions("a"))

	feed := svc.Collect(context.Background())

	assert.False(t, feed.Success)
	require.Len(t, feed.Logs, 1)
	assert.Equal(t, models.LevelError, feed.Logs[0].Level)
}

type panickingRetriever struct{}

func (panickingRetriever) ContainerLogs(context.Context, string, int, bool) (string, error) {
	panic("retriever exploded")
}

func (panickingRetriever) ListContainers(context.Context) (string, error) {
	return "", nil
}
