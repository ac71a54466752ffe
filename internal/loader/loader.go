package loader

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/KaramelBytes/actionboard-cli/internal/parser"
	"github.com/KaramelBytes/actionboard-cli/internal/records"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// SampleNotice is shown whenever the built-in dataset is served.
const SampleNotice = "Showing sample data. Provide a published Google Sheet CSV link as the source to load live data."

// Status describes how a load ended.
type Status int

const (
	StatusSample Status = iota // no source given; built-in dataset served
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSample:
		return "sample"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Result is the outcome of a load. A failed load carries Err and no records;
// it is a user-facing condition, not a program error.
type Result struct {
	Locator  string
	Records  []records.Record
	Sample   bool
	Notice   string
	Err      error
	LoadID   string
	LoadedAt time.Time
	// Cached is true when the records were served from the memoized load.
	Cached bool
}

// Status classifies the result.
func (r Result) Status() Status {
	switch {
	case r.Err != nil:
		return StatusFailed
	case r.Sample:
		return StatusSample
	}
	return StatusLoaded
}

// Message returns the text to show the user for this result, or "".
func (r Result) Message() string {
	if r.Err != nil {
		return fmt.Sprintf("Error loading data from source. Please check the link format. Details: %v", r.Err)
	}
	return r.Notice
}

// Options configures a Loader. Zero values select defaults.
type Options struct {
	TTL     time.Duration
	Fetcher Fetcher
	Now     Clock
	Parse   parser.Options
	// Logf receives diagnostic lines; nil disables them.
	Logf func(format string, args ...any)
}

// Loader resolves a locator to normalized records and memoizes the result.
// It is safe for concurrent use.
type Loader struct {
	fetcher Fetcher
	parse   parser.Options
	cache   *cache
	group   singleflight.Group
	now     Clock
	logf    func(format string, args ...any)
}

// New returns a Loader. Without a Fetcher it uses an HTTPFetcher with
// default timeout and retry settings.
func New(opt Options) *Loader {
	f := opt.Fetcher
	if f == nil {
		f = NewHTTPFetcher(0, 0, 0, 0)
	}
	now := opt.Now
	if now == nil {
		now = time.Now
	}
	logf := opt.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Loader{
		fetcher: f,
		parse:   opt.Parse,
		cache:   newCache(opt.TTL, now),
		now:     now,
		logf:    logf,
	}
}

// Load returns the records behind locator. An empty locator serves the
// built-in dataset. Repeated loads of the same locator within the TTL are
// answered from cache; failures are never cached.
func (l *Loader) Load(ctx context.Context, locator string) Result {
	key := strings.TrimSpace(locator)
	if res, ok := l.cache.get(key); ok {
		l.logf("cache hit for %q (load %s)", key, res.LoadID)
		res.Records = slices.Clone(res.Records)
		res.Cached = true
		return res
	}
	// The load is shared: one caller cancelling must not fail the others.
	// The fetcher's timeout still bounds it.
	shared := context.WithoutCancel(ctx)
	v, _, _ := l.group.Do(key, func() (any, error) {
		res := l.load(shared, key)
		if res.Err == nil {
			l.cache.put(key, res)
		}
		return res, nil
	})
	res := v.(Result)
	res.Records = slices.Clone(res.Records)
	return res
}

func (l *Loader) load(ctx context.Context, key string) Result {
	res := Result{Locator: key}
	var tbl *records.Table
	if key == "" {
		t, err := parser.ParseTable("fallback.csv", "text/csv", records.FallbackCSV, parser.Options{})
		if err != nil {
			res.Err = &ParseError{Locator: "built-in dataset", Err: err}
			res.Records = []records.Record{}
			return res
		}
		tbl = t
		res.Sample = true
		res.Notice = SampleNotice
	} else {
		l.logf("fetching %q", key)
		p, err := l.fetcher.Fetch(ctx, key)
		if err != nil {
			res.Err = &SourceFetchError{Locator: key, Err: err}
			res.Records = []records.Record{}
			return res
		}
		t, err := parser.ParseTable(key, p.ContentType, p.Body, l.parse)
		if err != nil {
			res.Err = &ParseError{Locator: key, Err: err}
			res.Records = []records.Record{}
			return res
		}
		tbl = t
	}
	res.Records = records.Normalize(tbl)
	res.LoadID = uuid.NewString()
	res.LoadedAt = l.now()
	l.logf("loaded %d records from %q (load %s)", len(res.Records), key, res.LoadID)
	return res
}

// Invalidate drops the memoized load for locator.
func (l *Loader) Invalidate(locator string) {
	l.cache.delete(strings.TrimSpace(locator))
}

// Purge drops every memoized load.
func (l *Loader) Purge() {
	l.cache.purge()
}
