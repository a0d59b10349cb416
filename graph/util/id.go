/*
 * GraphCore
 *
 * Copyright 2026 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package util

import (
	"fmt"
	"strconv"
	"sync"
)

/*
ID identifies a vertex, edge or vertex-property within its own domain.
Domains are disjoint: a vertex ID and an edge ID may hold the same numeric
value without referring to the same element (invariant 6).
*/
type ID uint64

/*
String returns the canonical textual representation of an ID.
*/
func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

/*
Allocator issues monotonically increasing identifiers for a single element
domain and coerces caller-supplied identifiers. Allocated identifiers are
never reused, even after the element they named has been removed (C1,
invariant 6).
*/
type Allocator struct {
	mutex   sync.Mutex
	next    uint64
	claimed map[ID]bool // true = currently live, false = retired (tombstoned)
}

/*
NewAllocator creates a new, empty Allocator.
*/
func NewAllocator() *Allocator {
	return &Allocator{claimed: make(map[ID]bool)}
}

/*
Next allocates and returns the next unused identifier.
*/
func (a *Allocator) Next() ID {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	for {
		id := ID(a.next)
		a.next++
		if _, exists := a.claimed[id]; !exists {
			a.claimed[id] = true
			return id
		}
	}
}

/*
Coerce validates and claims a caller-supplied identifier. It fails with
ErrDuplicateIdentifier if the identifier is already claimed by a live
element or reserved by a retired one (invariant 6: a retired identifier
is never handed out again, including back to the caller that retired it).
*/
func (a *Allocator) Coerce(value interface{}) (ID, error) {
	id, err := toID(value)
	if err != nil {
		return 0, &GraphError{Type: ErrInvalidArgument, Detail: err.Error()}
	}

	a.mutex.Lock()
	defer a.mutex.Unlock()

	if _, exists := a.claimed[id]; exists {
		return 0, &GraphError{Type: ErrDuplicateIdentifier,
			Detail: fmt.Sprintf("identifier %v already in use", id)}
	}

	a.claimed[id] = true
	if uint64(id)+1 > a.next {
		a.next = uint64(id) + 1
	}

	return id, nil
}

/*
Retire marks an identifier as no longer live. It remains reserved forever
(invariant 6): a future Next()/Coerce() call will never return it again.
*/
func (a *Allocator) Retire(id ID) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	a.claimed[id] = false
}

/*
Reinstate releases a specific retired identifier back to the unclaimed
state, for a caller that removes an element and immediately recreates one
under the same identity within the same higher-level critical section
(the snapshot reader's MergeProperties/ReplaceElement conflict policies,
§4.9, which keep the existing id rather than generating a new one). It
fails if id was never allocated, or is still live. The caller is expected
to immediately re-claim id via Coerce (e.g. through AddVertex/AddEdge);
Reinstate only lifts the "reserved forever" tombstone for this one,
narrowly-scoped re-creation - it does not itself mark id live again, so a
caller that reinstates and then never re-adds leaves id genuinely free,
same as if it had never been allocated.
*/
func (a *Allocator) Reinstate(id ID) error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	live, exists := a.claimed[id]
	if !exists {
		return &GraphError{Type: ErrInvalidArgument,
			Detail: fmt.Sprintf("identifier %v was never allocated", id)}
	}
	if live {
		return &GraphError{Type: ErrDuplicateIdentifier,
			Detail: fmt.Sprintf("identifier %v is still live", id)}
	}

	delete(a.claimed, id)
	return nil
}

/*
ParseID converts a user-supplied scalar into an ID without claiming it
in any allocator, for callers that only need to interpret an identifier
they read from elsewhere (e.g. the snapshot reader resolving a foreign
id it already knows is local).
*/
func ParseID(value interface{}) (ID, error) {
	id, err := toID(value)
	if err != nil {
		return 0, &GraphError{Type: ErrInvalidArgument, Detail: err.Error()}
	}
	return id, nil
}

/*
toID converts a user-supplied scalar into an ID.
*/
func toID(value interface{}) (ID, error) {
	switch v := value.(type) {
	case ID:
		return v, nil
	case uint64:
		return ID(v), nil
	case int:
		if v < 0 {
			return 0, fmt.Errorf("negative identifier %v", v)
		}
		return ID(v), nil
	case int64:
		if v < 0 {
			return 0, fmt.Errorf("negative identifier %v", v)
		}
		return ID(v), nil
	case string:
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("identifier %q is not a non-negative integer", v)
		}
		return ID(n), nil
	}
	return 0, fmt.Errorf("unsupported identifier type %T", value)
}
