package search

import (
	"context"
	"sync"

	"github.com/sourcegraph/utext/cmd/searcher/protocol"
)

// matchSender is the collector interface regexSearch and its worker pool
// send FileMatches to as they are found.
type matchSender interface {
	Send(protocol.FileMatch)
	SentCount() int
	Remaining() int
	LimitHit() bool
}

// limitedStreamCollector buffers FileMatches in memory up to limit,
// tracking whether the limit was hit (search.go's ServeHTTP reports this
// as Response.LimitHit). A future streaming transport could replace the
// in-memory buffer with an encoder that writes matches as they arrive;
// this module always buffers, matching the Service.search caller's
// buffer-then-encode shape.
type limitedStreamCollector struct {
	mu       sync.Mutex
	limit    int
	matches  []protocol.FileMatch
	limitHit bool
}

// newLimitedStreamCollector returns a context, its cancel func, and a
// collector that stops accepting matches once limit is reached. The
// cancel func should be invoked by the caller when the search
// completes, the same defer-cancel shape ServeHTTP uses around it.
func newLimitedStreamCollector(ctx context.Context, limit int) (context.Context, context.CancelFunc, *limitedStreamCollector) {
	ctx, cancel := context.WithCancel(ctx)
	return ctx, cancel, &limitedStreamCollector{limit: limit}
}

func (s *limitedStreamCollector) Send(fm protocol.FileMatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.matches) >= s.limit {
		s.limitHit = true
		return
	}
	s.matches = append(s.matches, fm)
	if len(s.matches) >= s.limit {
		s.limitHit = true
	}
}

func (s *limitedStreamCollector) SentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.matches)
}

func (s *limitedStreamCollector) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.limit - len(s.matches)
	if n < 0 {
		return 0
	}
	return n
}

func (s *limitedStreamCollector) LimitHit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.limitHit
}

func (s *limitedStreamCollector) Collected() []protocol.FileMatch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.matches
}
