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

// Package permute enumerates every permutation of a small, distinct string
// list exactly once, using the Steinhaus-Johnson-Trotter algorithm. The
// enumeration order is not itself meaningful to callers: the canonicalizer
// retains only the lexicographically minimal path it discovers, so any
// restart-free enumeration of all n! orderings is correct.
package permute

import "sort"

// Permuter yields every permutation of a fixed list of distinct strings.
type Permuter struct {
	list []string
	left map[string]bool
	done bool
}

// New creates a Permuter over list, sorted ascending before the first
// permutation is produced. list is copied; the caller's slice is untouched.
func New(list []string) *Permuter {
	p := &Permuter{
		list: make([]string, len(list)),
		left: make(map[string]bool, len(list)),
	}
	copy(p.list, list)
	sort.Strings(p.list)
	for _, s := range p.list {
		p.left[s] = true
	}
	return p
}

// HasNext reports whether another permutation remains.
func (p *Permuter) HasNext() bool {
	return !p.done
}

// Next returns the current permutation and advances to the next one via a
// single adjacent transposition (the SJT step). Call HasNext first.
func (p *Permuter) Next() []string {
	out := make([]string, len(p.list))
	copy(out, p.list)

	// Find the largest mobile element: one whose directional arrow points
	// at a smaller neighbor.
	var largest string
	pos := -1
	n := len(p.list)
	for i, el := range p.list {
		movingLeft := p.left[el]
		mobile := (movingLeft && i > 0 && el > p.list[i-1]) ||
			(!movingLeft && i < n-1 && el > p.list[i+1])
		if mobile && (largest == "" || el > largest) {
			largest = el
			pos = i
		}
	}

	if pos == -1 {
		p.done = true
		return out
	}

	swapWith := pos - 1
	if !p.left[largest] {
		swapWith = pos + 1
	}
	p.list[pos], p.list[swapWith] = p.list[swapWith], p.list[pos]

	// Reverse direction for every element larger than the one that moved.
	for _, el := range p.list {
		if el > largest {
			p.left[el] = !p.left[el]
		}
	}

	return out
}
