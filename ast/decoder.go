// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/creachadair/lowjson"
	"github.com/creachadair/lowjson/pool"
)

// Default pool sizes used when the corresponding Options field is zero.
const (
	DefaultTextBuffers = 10
	DefaultTokenLists  = 10
	DefaultSegments    = 5
)

// Names under which a Decoder reports the activity of its pools to
// Options.Metrics.
const (
	TextBufferPool = "text_buffers"
	TokenListPool  = "token_lists"
	SegmentPool    = "segments"
)

// Options are settings for a Decoder. A nil *Options is ready for use and
// provides default values as described.
type Options struct {
	// The number of values created in advance for each of the decoder's
	// pools. A zero value means to use the default for that pool, and a
	// negative value means to create no values in advance.
	TextBuffers int // default: DefaultTextBuffers
	TokenLists  int // default: DefaultTokenLists
	Segments    int // default: DefaultSegments

	// The capacity in bytes of each segment of token text.
	// If zero, it uses pool.DefaultSegmentSize.
	SegmentSize int

	// If true, decode escape sequences in strings; see Lexer.DecodeEscapes.
	DecodeEscapes bool

	// If true, skip comments in the input; see Lexer.AllowComments.
	AllowComments bool

	// If set, debug logs are written here. If nil, logs are discarded.
	Logger *slog.Logger

	// If set, pool activity is recorded here, under the pool names defined
	// by this package. If nil, no metrics are recorded.
	Metrics *pool.Metrics
}

func (o *Options) textBuffers() int {
	if o == nil {
		return DefaultTextBuffers
	}
	return sizeOrDefault(o.TextBuffers, DefaultTextBuffers)
}

func (o *Options) tokenLists() int {
	if o == nil {
		return DefaultTokenLists
	}
	return sizeOrDefault(o.TokenLists, DefaultTokenLists)
}

func (o *Options) segments() int {
	if o == nil {
		return DefaultSegments
	}
	return sizeOrDefault(o.Segments, DefaultSegments)
}

func sizeOrDefault(n, dflt int) int {
	if n == 0 {
		return dflt
	}
	return n
}

func (o *Options) segmentSize() int {
	if o == nil || o.SegmentSize <= 0 {
		return pool.DefaultSegmentSize
	}
	return o.SegmentSize
}

func (o *Options) logger() *slog.Logger {
	if o == nil || o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

func (o *Options) metrics() *pool.Metrics {
	if o == nil {
		return nil
	}
	return o.Metrics
}

// A Decoder parses JSON documents into values. It owns a pool of text
// buffers, a pool of token lists, and a pool of segments for token text, and
// reuses them across calls.
//
// A Decoder is safe for concurrent use by multiple goroutines, but calls are
// serialized: each call has exclusive use of the pools for its duration.
// Callers that want parallelism should use one Decoder per goroutine.
type Decoder struct {
	mu    sync.Mutex
	pools lowjson.Pools
	lex   *lowjson.Lexer
	log   *slog.Logger
}

// NewDecoder constructs a Decoder with the given options. A nil opts uses
// default settings.
func NewDecoder(opts *Options) *Decoder {
	m := opts.metrics()
	segSize := opts.segmentSize()
	p := lowjson.Pools{
		Buffers: pool.New(lowjson.NewTextBuffer, opts.textBuffers()).Instrument(TextBufferPool, m),
		Tokens:  pool.New(lowjson.NewTokenList, opts.tokenLists()).Instrument(TokenListPool, m),
		Segments: pool.New(func() *pool.Segment {
			return pool.NewSegment(segSize)
		}, opts.segments()).Instrument(SegmentPool, m),
	}
	lx := lowjson.NewLexer(p)
	if opts != nil {
		lx.DecodeEscapes(opts.DecodeEscapes)
		lx.AllowComments(opts.AllowComments)
	}
	return &Decoder{pools: p, lex: lx, log: opts.logger()}
}

// ParseDocument parses text as a single JSON value. Any input following the
// first complete value must be lexically valid, but is otherwise ignored.
//
// In case of error, ParseDocument returns a null value and an error. The
// error for malformed input has concrete type *lowjson.SyntaxError, with its
// Location populated. Whether it succeeds or fails, ParseDocument returns
// everything it borrowed to the pools of d before returning.
func (d *Decoder) ParseDocument(text string) (Value, error) {
	return decode(d, text, d.lex.Lex)
}

// ParseBytes parses text as a single JSON value, as ParseDocument.
// The resulting value does not retain text.
func (d *Decoder) ParseBytes(text []byte) (Value, error) {
	return decode(d, text, d.lex.LexBytes)
}

func decode[T string | []byte](d *Decoder, text T, lex func(T) (*lowjson.TokenList, error)) (Value, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	start := d.statsLocked()
	defer d.logGrowth(start)

	tl, err := lex(text)
	if err != nil {
		return Value{}, d.failed(err)
	}
	defer d.lex.Recycle(tl)

	v, err := Parse(tl)
	if err != nil {
		var serr *lowjson.SyntaxError
		if errors.As(err, &serr) {
			serr.Location = lowjson.Position(text, serr.Offset)
		}
		return Value{}, d.failed(err)
	}
	return v, nil
}

func (d *Decoder) failed(err error) error {
	var serr *lowjson.SyntaxError
	if errors.As(err, &serr) {
		d.log.Debug("parse failed", "kind", serr.Kind, "offset", serr.Offset, "token", serr.Token)
	} else {
		d.log.Debug("parse failed", "error", err)
	}
	return err
}

func (d *Decoder) logGrowth(start Stats) {
	end := d.statsLocked()
	for _, p := range []struct {
		name       string
		start, end pool.Stats
	}{
		{TextBufferPool, start.TextBuffers, end.TextBuffers},
		{TokenListPool, start.TokenLists, end.TokenLists},
		{SegmentPool, start.Segments, end.Segments},
	} {
		if n := p.end.Created - p.start.Created; n > 0 {
			d.log.Debug("pool grew", "pool", p.name, "new", n, "created", p.end.Created)
		}
	}
}

// Stats records the state of the pools of a Decoder.
type Stats struct {
	TextBuffers pool.Stats
	TokenLists  pool.Stats
	Segments    pool.Stats
}

// Stats returns a snapshot of the state of the pools of d. Between calls,
// every value the pools have created is free.
func (d *Decoder) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.statsLocked()
}

func (d *Decoder) statsLocked() Stats {
	return Stats{
		TextBuffers: d.pools.Buffers.Stats(),
		TokenLists:  d.pools.Tokens.Stats(),
		Segments:    d.pools.Segments.Stats(),
	}
}

// A Future is the pending result of an asynchronous parse.
type Future struct {
	done chan struct{}
	v    Value
	err  error
}

// ParseDocumentAsync starts a parse of text on a new goroutine and returns a
// Future for its result, which is the same as ParseDocument would return.
//
// If ctx ends before the parse begins, the result is the error from ctx and
// nothing is borrowed from the pools of d. Once begun, a parse runs to
// completion.
func (d *Decoder) ParseDocumentAsync(ctx context.Context, text string) *Future {
	f := &Future{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}
		f.v, f.err = d.ParseDocument(text)
	}()
	return f
}

// Done returns a channel that is closed when the result of f is ready.
func (f *Future) Done() <-chan struct{} { return f.done }

// Wait blocks until the result of f is ready or ctx ends, and returns the
// result. If ctx ends first, Wait returns a null value and the error from
// ctx; the parse is not interrupted, and a later Wait may obtain its result.
func (f *Future) Wait(ctx context.Context) (Value, error) {
	select {
	case <-f.done:
		return f.v, f.err
	case <-ctx.Done():
		return Value{}, ctx.Err()
	}
}

// ParseString parses text with a new Decoder using default options. It is a
// convenience for one-off parses; callers that parse repeatedly should reuse
// a Decoder to benefit from its pools.
func ParseString(text string) (Value, error) { return NewDecoder(nil).ParseDocument(text) }
