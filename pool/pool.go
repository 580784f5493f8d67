// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package pool implements free-list object pools and the fixed-size byte
// segments used as scratch memory by the lexer.
//
// A Pool is not safe for concurrent use. It is meant to be owned by a single
// caller context at a time, such as one decoder; callers that share a pool
// between goroutines must provide their own mutual exclusion.
package pool

// A Pool is a free list of reusable values of type T together with a factory
// that creates new values when the free list is empty.
//
// The pool does not reset the state of values on reuse, and does not verify
// that released values were obtained from it. Releasing a value that did not
// come from the pool, or releasing the same value twice, causes later calls
// to Get to return duplicates. Avoiding that is the caller's responsibility.
type Pool[T any] struct {
	newItem func() T
	free    []T
	created int

	name    string
	metrics *Metrics
}

// New constructs a pool that creates values with newItem, and eagerly creates
// initialSize values to populate the free list. If initialSize < 0 it is
// treated as zero.
func New[T any](newItem func() T, initialSize int) *Pool[T] {
	initialSize = max(initialSize, 0)
	p := &Pool[T]{
		newItem: newItem,
		free:    make([]T, 0, initialSize),
	}
	for range initialSize {
		p.free = append(p.free, newItem())
	}
	p.created = initialSize
	return p
}

// Instrument causes p to record its activity in m under the given name.
// Passing a nil m disables recording. It returns p to permit chaining.
func (p *Pool[T]) Instrument(name string, m *Metrics) *Pool[T] {
	p.name, p.metrics = name, m
	return p
}

// Get returns the most recently released value in p, or a new value from the
// factory if the free list is empty. Get never blocks.
func (p *Pool[T]) Get() T {
	p.metrics.recordGet(p.name)
	if n := len(p.free); n > 0 {
		v := p.free[n-1]
		var zero T
		p.free[n-1] = zero // don't pin the value from the backing array
		p.free = p.free[:n-1]
		return v
	}
	p.created++
	p.metrics.recordMiss(p.name)
	return p.newItem()
}

// Release pushes v onto the free list of p, making it the next value returned
// by Get. See the comments on Pool for the caller's obligations.
func (p *Pool[T]) Release(v T) {
	p.free = append(p.free, v)
	p.metrics.recordRelease(p.name)
}

// Free reports the number of values currently on the free list.
func (p *Pool[T]) Free() int { return len(p.free) }

// Created reports the total number of values ever created by p, including
// those created at construction. It never decreases.
func (p *Pool[T]) Created() int { return p.created }

// Stats returns a snapshot of the free list size and creation count of p.
func (p *Pool[T]) Stats() Stats { return Stats{Free: len(p.free), Created: p.created} }

// Stats is a snapshot of the state of a Pool.
type Stats struct {
	Free    int // values currently available for reuse
	Created int // values ever created
}
