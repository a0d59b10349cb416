/*
 * GraphCore
 *
 * Copyright 2026 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package graph

import (
	"sync/atomic"
	"time"
)

/*
Iterator is the explicit lazy-sequence protocol the engine exposes in
place of host-language generators/coroutines (§9 design note). A caller
drives it with Advance/Current; Cancel stops it early and is safe to call
from outside the goroutine driving Advance, since lazy sequences check
the cancellation token between elements, never mid-mutation (§5).

Typical use:

	for it.Advance() {
		v := it.Current()
		...
	}
	if err := it.Err(); err != nil { ... }
*/
type Iterator interface {
	/*
		Advance moves the iterator to the next element, returning false
		when the sequence is exhausted or cancelled.
	*/
	Advance() bool

	/*
		Current returns the element the iterator currently sits on. Its
		result is undefined before the first Advance or after Advance
		returns false.
	*/
	Current() interface{}

	/*
		Cancel requests the iterator stop producing further elements. It
		is cooperative: the next Advance call observes it and returns
		false.
	*/
	Cancel()

	/*
		Err returns the error that stopped iteration early, if any
		(cancellation itself is not an error).
	*/
	Err() error
}

/*
sliceIterator adapts a pre-materialized slice to the Iterator protocol,
the common case for index-probe results and small scans.
*/
type sliceIterator struct {
	items     []interface{}
	pos       int
	cancelled int32 // set atomically, so Cancel may come from another goroutine
}

/*
NewSliceIterator wraps items as an Iterator.
*/
func NewSliceIterator(items []interface{}) Iterator {
	return &sliceIterator{items: items, pos: -1}
}

func (it *sliceIterator) Advance() bool {
	if atomic.LoadInt32(&it.cancelled) != 0 {
		return false
	}
	it.pos++
	return it.pos < len(it.items)
}

func (it *sliceIterator) Current() interface{} {
	if it.pos < 0 || it.pos >= len(it.items) {
		return nil
	}
	return it.items[it.pos]
}

func (it *sliceIterator) Cancel() { atomic.StoreInt32(&it.cancelled, 1) }

func (it *sliceIterator) Err() error { return nil }

/*
TimedIterator wraps another Iterator with a deadline, cancelling it once
the deadline passes (§5, "caller-enforced timeouts via a timed iterator
wrapper"). It never interrupts a mutation in progress: the deadline is
only checked at Advance boundaries, between elements.
*/
type TimedIterator struct {
	inner    Iterator
	deadline time.Time
	timedOut bool
}

/*
NewTimedIterator wraps inner with a deadline d from now.
*/
func NewTimedIterator(inner Iterator, d time.Duration) *TimedIterator {
	return &TimedIterator{inner: inner, deadline: time.Now().Add(d)}
}

func (t *TimedIterator) Advance() bool {
	if time.Now().After(t.deadline) {
		t.timedOut = true
		t.inner.Cancel()
		return false
	}
	return t.inner.Advance()
}

func (t *TimedIterator) Current() interface{} { return t.inner.Current() }

func (t *TimedIterator) Cancel() { t.inner.Cancel() }

func (t *TimedIterator) Err() error {
	if t.timedOut {
		return errDeadlineExceeded
	}
	return t.inner.Err()
}

/*
TimedOut reports whether this iterator stopped because its deadline
passed, as opposed to exhausting the sequence or being cancelled
directly.
*/
func (t *TimedIterator) TimedOut() bool { return t.timedOut }

type deadlineExceededError struct{}

func (deadlineExceededError) Error() string { return "iterator deadline exceeded" }

var errDeadlineExceeded = deadlineExceededError{}
