// Package search is a service which exposes an API to search a set of
// named text sources for a pattern.
//
// Architecture Notes:
// * Each request names its own sources (path + driver) rather than
//   fetching an archive from a central store
// * Simple HTTP API exposed
// * Currently no concept of authorization
// * Run search against internal/source.Driver + internal/reader.Reader.
//   Rely on OS file buffers / mmap
// * Simple to scale up since stateless
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	otlog "github.com/opentracing/opentracing-go/log"
	nettrace "golang.org/x/net/trace"

	"github.com/cockroachdb/errors"
	"github.com/gorilla/schema"
	"github.com/inconshreveable/log15"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/sourcegraph/utext/cmd/searcher/protocol"
	"github.com/sourcegraph/utext/internal/config"
)

const (
	// maxLimit is a hard-coded maximum for total number of matches we return.
	maxLimit = 100_000

	// numWorkers is how many concurrent readerGreps run in regexSearch.
	numWorkers = 8
)

// Service is the search service. It is an http.Handler.
type Service struct {
	Log log15.Logger
}

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

// ServeHTTP handles HTTP based search requests
func (s *Service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	running.Inc()
	defer running.Dec()

	err := r.ParseForm()
	if err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	var p protocol.Request
	err = decoder.Decode(&p, r.Form)
	if err != nil {
		http.Error(w, "failed to decode form: "+err.Error(), http.StatusBadRequest)
		return
	}
	if p.Deadline != "" {
		var deadline time.Time
		if err := deadline.UnmarshalText([]byte(p.Deadline)); err != nil {
			http.Error(w, "invalid deadline: "+err.Error(), http.StatusBadRequest)
			return
		}
		dctx, cancel := context.WithDeadline(ctx, deadline)
		defer cancel()
		ctx = dctx
	}
	if err = validateParams(&p); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if p.FileMatchLimit == 0 || p.FileMatchLimit > maxLimit {
		p.FileMatchLimit = maxLimit
	}

	ctx, cancel, stream := newLimitedStreamCollector(ctx, p.FileMatchLimit)
	defer cancel()

	deadlineHit, err := s.search(ctx, &p, stream)
	if err != nil {
		code := http.StatusInternalServerError
		if isBadRequest(err) || ctx.Err() == context.Canceled {
			code = http.StatusBadRequest
		} else if isTemporary(err) {
			code = http.StatusServiceUnavailable
		} else {
			log.Printf("internal error serving %#+v: %s", p, err)
		}
		http.Error(w, err.Error(), code)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	resp := protocol.Response{
		Matches:     stream.Collected(),
		LimitHit:    stream.LimitHit(),
		DeadlineHit: deadlineHit,
	}
	// The only reasonable error is the client going away now since we know we
	// can encode resp. We can't send an error response, so we just ignore.
	_ = json.NewEncoder(w).Encode(&resp)
}

func (s *Service) search(ctx context.Context, p *protocol.Request, sender *limitedStreamCollector) (deadlineHit bool, err error) {
	tr := nettrace.New("search", fmt.Sprintf("%d sources", len(p.Sources)))
	tr.LazyPrintf("%s", p.Pattern)

	span, ctx := opentracing.StartSpanFromContext(ctx, "Search")
	ext.Component.Set(span, "service")
	span.SetTag("sources", len(p.Sources))
	span.SetTag("pattern", p.Pattern)
	span.SetTag("isRegExp", strconv.FormatBool(p.IsRegExp))
	span.SetTag("isWordMatch", strconv.FormatBool(p.IsWordMatch))
	span.SetTag("isCaseSensitive", strconv.FormatBool(p.IsCaseSensitive))
	span.SetTag("isNegated", strconv.FormatBool(p.IsNegated))
	span.SetTag("limit", p.FileMatchLimit)
	span.SetTag("deadline", p.Deadline)
	defer func(start time.Time) {
		code := "200"
		// We often have canceled and timed out requests. We do not want to
		// record them as errors to avoid noise
		if ctx.Err() == context.Canceled {
			code = "canceled"
			span.SetTag("err", err)
		} else if ctx.Err() == context.DeadlineExceeded {
			code = "timedout"
			span.SetTag("err", err)
			deadlineHit = true
			err = nil // error is fully described by deadlineHit=true return value
		} else if err != nil {
			tr.LazyPrintf("error: %v", err)
			tr.SetError()
			ext.Error.Set(span, true)
			span.SetTag("err", err.Error())
			if isBadRequest(err) {
				code = "400"
			} else if isTemporary(err) {
				code = "503"
			} else {
				code = "500"
			}
		}
		tr.LazyPrintf("code=%s matches=%d limitHit=%v deadlineHit=%v", code, sender.SentCount(), sender.LimitHit(), deadlineHit)
		tr.Finish()
		requestTotal.WithLabelValues(code).Inc()
		span.LogFields(otlog.Int("matches.len", sender.SentCount()))
		span.SetTag("limitHit", sender.LimitHit())
		span.SetTag("deadlineHit", deadlineHit)
		span.Finish()
		if s.Log != nil {
			s.Log.Debug("search request", "sources", len(p.Sources), "pattern", p.Pattern, "isRegExp", p.IsRegExp, "isWordMatch", p.IsWordMatch, "isCaseSensitive", p.IsCaseSensitive, "matches", sender.SentCount(), "code", code, "duration", time.Since(start), "err", err)
		}
	}(time.Now())

	rg, err := compile(&p.PatternInfo)
	if err != nil {
		return false, badRequestError{err.Error()}
	}

	encodings, warnings := config.Encodings{Inputs: p.EncodingOverride}.Validate()
	for _, w := range warnings {
		tr.LazyPrintf("encoding warning: %v", w)
	}
	binary := config.BinaryBehavior(p.Binary)

	sourcesTotal.Observe(float64(len(p.Sources)))

	return false, regexSearch(ctx, rg, p.Sources, encodings, binary, p.FileMatchLimit, p.IsNegated, sender)
}

func validateParams(p *protocol.Request) error {
	if len(p.Sources) == 0 {
		return errors.New("Sources must be non-empty")
	}
	for _, src := range p.Sources {
		if src.Driver == "" || src.Path == "" {
			return errors.New("each source requires a Driver and a Path")
		}
	}
	if p.Pattern == "" && p.ExcludePattern == "" && len(p.IncludePatterns) == 0 {
		return errors.New("At least one of pattern and include/exclude patterns must be non-empty")
	}
	return nil
}

var (
	running = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "searcher_service_running",
		Help: "Number of running search requests.",
	})
	sourcesTotal = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "searcher_service_sources_total",
		Help:    "Observes the number of sources when a search request runs.",
		Buckets: []float64{1, 10, 100, 1000, 10000},
	})
	requestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "searcher_service_request_total",
		Help: "Number of returned search requests.",
	}, []string{"code"})
)

type badRequestError struct{ msg string }

func (e badRequestError) Error() string    { return e.msg }
func (e badRequestError) BadRequest() bool { return true }

func isBadRequest(err error) bool {
	e, ok := errors.Cause(err).(interface {
		BadRequest() bool
	})
	return ok && e.BadRequest()
}

func isTemporary(err error) bool {
	e, ok := errors.Cause(err).(interface {
		Temporary() bool
	})
	return ok && e.Temporary()
}
