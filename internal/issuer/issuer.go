// Copyright 2015-2017 Piprate Limited
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package issuer implements the monotone identifier allocator the
// canonicalizer uses both for the long-lived canonical labeling
// ("_:c14nN") and for short-lived temporary labeling during N-degree
// tie-breaking ("_:bN").
package issuer

import "strconv"

// Issuer issues unique identifiers, keeping track of any previously issued
// identifiers and the order in which they were first seen.
type Issuer struct {
	prefix   string
	counter  int
	existing map[string]string
	order    []string
}

// New creates an Issuer that mints labels "prefixN" for N = 0, 1, 2, ...
func New(prefix string) *Issuer {
	return &Issuer{
		prefix:   prefix,
		existing: make(map[string]string),
	}
}

// Clone returns an independent copy of the issuer: same prefix, counter,
// mapping and insertion order, sharing no state with the original.
func (ii *Issuer) Clone() *Issuer {
	c := &Issuer{
		prefix:   ii.prefix,
		counter:  ii.counter,
		existing: make(map[string]string, len(ii.existing)),
		order:    make([]string, len(ii.order)),
	}
	for k, v := range ii.existing {
		c.existing[k] = v
	}
	copy(c.order, ii.order)
	return c
}

// GetID returns the label for old, issuing a new one — "prefix" followed by
// the current counter value — if none has been issued yet.
func (ii *Issuer) GetID(old string) string {
	if id, ok := ii.existing[old]; ok {
		return id
	}

	id := ii.prefix + strconv.Itoa(ii.counter)
	ii.counter++
	ii.existing[old] = id
	ii.order = append(ii.order, old)
	return id
}

// HasID reports whether old has already been issued a label.
func (ii *Issuer) HasID(old string) bool {
	_, ok := ii.existing[old]
	return ok
}

// GetExistingID returns the label already issued for old, without issuing
// one if it hasn't been. This is the read-only lookup the N-degree
// algorithm's second preference (§4.5.1 step 1b) requires: calling GetID in
// that position would incorrectly mint a label as a side effect of a
// probe.
func (ii *Issuer) GetExistingID(old string) (string, bool) {
	id, ok := ii.existing[old]
	return id, ok
}

// OldIDs returns the inputs in the order in which they were first issued a
// label. The canonicalizer replays this order when promoting every entry of
// a winning temporary issuer into the canonical issuer (§4.5 step 6.3).
func (ii *Issuer) OldIDs() []string {
	return ii.order
}
