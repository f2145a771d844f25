// internal/logs/resolver.go
package logs

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Retriever is the container-log capability backing source resolution.
// *docker.Client satisfies it; tests substitute doubles.
type Retriever interface {
	ContainerLogs(ctx context.Context, name string, tail int, timestamps bool) (string, error)
	ListContainers(ctx context.Context) (string, error)
}

// Options configures a log aggregation Service.
type Options struct {
	// Candidates are container names tried in order until one yields logs.
	Candidates []string
	// TailLines bounds the retrieval window per candidate.
	TailLines int
	// FetchTimeout bounds each candidate attempt.
	FetchTimeout time.Duration
	// ListTimeout bounds the diagnostic container listing.
	ListTimeout time.Duration
}

// Service aggregates container logs into a structured feed. It holds no
// mutable state; every Collect call resolves and parses from scratch.
type Service struct {
	retriever Retriever
	opts      Options
}

// NewService returns a Service reading through the given retriever.
func NewService(retriever Retriever, opts Options) *Service {
	return &Service{retriever: retriever, opts: opts}
}

// resolve tries each candidate container in order and returns the raw log
// text of the first one that yields non-blank output. Individual candidate
// failures are logged and swallowed; only exhaustion of the whole list is
// reported, via ok=false. Candidates are tried strictly sequentially so a
// slow attempt never races a later one.
func (s *Service) resolve(ctx context.Context) (raw string, container string, ok bool) {
	for _, name := range s.opts.Candidates {
		fetchCtx, cancel := context.WithTimeout(ctx, s.opts.FetchTimeout)
		out, err := s.retriever.ContainerLogs(fetchCtx, name, s.opts.TailLines, true)
		cancel()

		if err != nil {
			log.Debug("Log source candidate unavailable", "container", name, "error", err)
			continue
		}
		if strings.TrimSpace(out) == "" {
			log.Debug("Log source candidate returned no output", "container", name)
			continue
		}

		log.Infof("Successfully got logs from container: %s", name)
		return out, name, true
	}
	return "", "", false
}
