package search

import (
	"context"
	"sync"
	"time"
	"unicode/utf16"

	"github.com/grafana/regexp"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	otlog "github.com/opentracing/opentracing-go/log"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/sourcegraph/utext/cmd/searcher/protocol"
	"github.com/sourcegraph/utext/internal/config"
	"github.com/sourcegraph/utext/internal/errs"
	"github.com/sourcegraph/utext/internal/interval"
	"github.com/sourcegraph/utext/internal/match"
	"github.com/sourcegraph/utext/internal/pathmatch"
	"github.com/sourcegraph/utext/internal/reader"
	"github.com/sourcegraph/utext/internal/source"
	"github.com/sourcegraph/utext/internal/ustring"
)

// readerGrep is responsible for finding LineMatches. It is not concurrency
// safe (it reuses buffers for performance).
//
// This code is based on reading the techniques detailed in
// http://blog.burntsushi.net/ripgrep/
//
// Unlike the teacher this module was grown from, matching here runs line
// by line through an internal/reader.Reader rather than over a whole
// in-memory file: the buffer is already decoded to UTF-16 and segmented
// by reader.ReadLine, so readerGrep only has to run the compiled
// match.Engine over each line's units.
type readerGrep struct {
	// engine is nil when the pattern is empty ("match every source").
	engine match.Engine

	// matchPath reports whether a source's Name matches the configured
	// include/exclude globs.
	matchPath *pathmatch.Matcher
}

// compile returns a readerGrep for matching p.
func compile(p *protocol.PatternInfo) (*readerGrep, error) {
	var engine match.Engine
	if p.Pattern != "" {
		expr := p.Pattern
		if !p.IsRegExp {
			expr = regexp.QuoteMeta(expr)
		}
		var flags match.Flags
		if p.IsWordMatch {
			flags |= match.WordBounded
		}
		if !p.IsCaseSensitive {
			flags |= match.CaseInsensitive
		}
		e, err := match.CompileRegex(utf16.Encode([]rune(expr)), flags)
		if err != nil {
			return nil, err
		}
		engine = e
	}

	matchPath, err := pathmatch.Compile(p.IncludePatterns, p.ExcludePattern, pathmatch.CompileOptions{
		CaseSensitive: p.PathPatternsAreCaseSensitive,
	})
	if err != nil {
		return nil, err
	}

	return &readerGrep{engine: engine, matchPath: matchPath}, nil
}

// Find returns a LineMatch for each line of r that matches rg, up to
// limit. LimitHit is true if some matches may not have been included in
// the result.
func (rg *readerGrep) Find(r *reader.Reader, limit int, isNegated bool) (matches []protocol.LineMatch, limitHit bool, err error) {
	line := ustring.New()
	sel := interval.NewList()
	for {
		ok, err := r.ReadLine(line)
		if err != nil {
			return matches, limitHit, err
		}
		if !ok {
			break
		}
		if len(matches) >= limit {
			limitHit = true
			break
		}

		matched := rg.engine == nil
		var offsets [][2]int
		if rg.engine != nil {
			sel.Clean()
			res, err := rg.engine.MatchAll(line.Units(), sel)
			if err != nil {
				return matches, limitHit, err
			}
			matched = res == match.MatchFound || res == match.WholeLineMatch
			if matched {
				for _, span := range sel.Spans() {
					offsets = append(offsets, [2]int{span.Lower, span.Upper - span.Lower})
				}
			}
		}

		if matched == isNegated {
			continue
		}
		matches = append(matches, protocol.LineMatch{
			Preview:          line.String(),
			LineNumber:       r.Lineno() - 1,
			OffsetAndLengths: offsets,
		})
	}
	return matches, limitHit, nil
}

// regexSearch concurrently opens and searches every configured source,
// sending each FileMatch found to sender.
func regexSearch(ctx context.Context, rg *readerGrep, specs []protocol.SourceSpec, encodings config.Encodings, binary config.BinaryBehavior, limit int, isNegated bool, sender matchSender) error {
	var err error
	span, ctx := opentracing.StartSpanFromContext(ctx, "RegexSearch")
	ext.Component.Set(span, "regex_search")
	span.SetTag("path", rg.matchPath.String())
	defer func() {
		if err != nil {
			ext.Error.Set(span, true)
			span.SetTag("err", err.Error())
		}
		span.Finish()
	}()

	var cancel context.CancelFunc
	if deadline, ok := ctx.Deadline(); ok {
		timeout := time.Duration(0.9 * float64(time.Until(deadline)))
		span.LogFields(otlog.Int64("RegexSearchTimeout", int64(timeout)))
		ctx, cancel = context.WithTimeout(ctx, timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	var (
		specsmu   sync.Mutex // protects remaining, the same shape search_regex.go's filesmu uses
		remaining = specs
	)

	var (
		sourcesSkipped  atomic.Uint32
		sourcesSearched atomic.Uint32
	)

	g, ctx := errgroup.WithContext(ctx)

	for i := 0; i < numWorkers; i++ {
		g.Go(func() error {
			for ctx.Err() == nil {
				specsmu.Lock()
				if len(remaining) == 0 {
					specsmu.Unlock()
					return nil
				}
				spec := remaining[0]
				remaining = remaining[1:]
				specsmu.Unlock()

				name := spec.Name
				if name == "" {
					name = spec.Path
				}
				if !rg.matchPath.MatchPath(name) {
					sourcesSkipped.Inc()
					continue
				}
				sourcesSearched.Inc()

				fm, err := searchOne(rg, spec, name, encodings, binary, sender.Remaining(), isNegated)
				if err != nil {
					return err
				}
				if fm != nil {
					sender.Send(*fm)
				}
			}
			return nil
		})
	}

	err = g.Wait()
	if err == nil && ctx.Err() == context.DeadlineExceeded {
		err = ctx.Err()
	}

	span.LogFields(
		otlog.Int("sourcesSkipped", int(sourcesSkipped.Load())),
		otlog.Int("sourcesSearched", int(sourcesSearched.Load())),
	)

	return err
}

// searchOne opens one source and runs rg.Find over it. It returns nil,
// nil if the source produced no matches.
func searchOne(rg *readerGrep, spec protocol.SourceSpec, name string, encodings config.Encodings, binary config.BinaryBehavior, limit int, isNegated bool) (*protocol.FileMatch, error) {
	driver, _, err := source.Open(spec.Driver, spec.Path)
	if err != nil {
		return nil, err
	}
	defer driver.Close()

	rdr, err := reader.Open(driver, reader.Options{
		EncodingOverride: encodings.Inputs,
		FallbackEncoding: "UTF-8",
		Binary:           binary.Policy(),
	})
	if err != nil {
		// A warning-kind failure (e.g. "looks binary, skipping") drops
		// this one source; only a fatal failure aborts the whole search.
		if errs.IsWarning(err) {
			return nil, nil
		}
		return nil, err
	}
	defer rdr.Close()

	lm, limitHit, err := rg.Find(rdr, limit, isNegated)
	if err != nil {
		return nil, err
	}
	if len(lm) == 0 {
		return nil, nil
	}
	return &protocol.FileMatch{
		Path:        name,
		LineMatches: lm,
		MatchCount:  len(lm),
		LimitHit:    limitHit,
	}, nil
}

