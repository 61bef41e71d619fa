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

// Package canon implements URDNA2015, the RDF Dataset Normalization
// algorithm: blank-node labeling by iterated hashing, lexicographic
// tie-breaking, and recursive permutation search over the remaining
// ambiguity. The result is a byte-exact canonical N-Quads serialization
// such that any two datasets isomorphic under blank-node renaming
// serialize identically.
package canon

import (
	"sort"
	"strings"

	"github.com/gannan08/rdf-canonize/internal/digest"
	"github.com/gannan08/rdf-canonize/internal/issuer"
	"github.com/gannan08/rdf-canonize/internal/permute"
	"github.com/gannan08/rdf-canonize/nquads"
	"github.com/gannan08/rdf-canonize/rdf"
)

// AlgorithmURDNA2015 is the only canonicalization algorithm this package
// implements. Canonize rejects every other algorithm name.
const AlgorithmURDNA2015 = "URDNA2015"

// positions names the three quad components that may carry a blank node,
// in the order Quad.Terms returns them.
var positions = [3]string{"s", "o", "g"}

// Canonize returns the URDNA2015 canonical N-Quads serialization of ds, or
// an *rdf.CanonError with code rdf.UnsupportedAlgorithm if algorithm is not
// "URDNA2015".
func Canonize(ds *rdf.Dataset, algorithm string) (string, error) {
	if algorithm != AlgorithmURDNA2015 {
		return "", rdf.NewCanonError(rdf.UnsupportedAlgorithm, algorithm)
	}
	c := newCanonicalizer()
	return c.run(ds), nil
}

// blankNodeInfo tracks, for one blank-node identifier, every quad it
// appears in and its (cached) first-degree hash.
type blankNodeInfo struct {
	quads   []*rdf.Quad
	hash    string
	hasHash bool
}

type canonicalizer struct {
	info     map[string]*blankNodeInfo
	canonIss *issuer.Issuer
}

func newCanonicalizer() *canonicalizer {
	return &canonicalizer{
		info:     make(map[string]*blankNodeInfo),
		canonIss: issuer.New("_:c14n"),
	}
}

// run executes §4.5 steps 1-5 and returns the sorted canonical output.
func (c *canonicalizer) run(ds *rdf.Dataset) string {
	// Step 1: gather quads per blank node, in input order.
	for _, q := range ds.Quads {
		for _, t := range q.Terms() {
			if t == nil || !rdf.IsBlankNode(t) {
				continue
			}
			id := t.Value()
			bi, ok := c.info[id]
			if !ok {
				bi = &blankNodeInfo{}
				c.info[id] = bi
			}
			bi.quads = append(bi.quads, q)
		}
	}

	nonNormalized := make(map[string]bool, len(c.info))
	for id := range c.info {
		nonNormalized[id] = true
	}

	// Step 2-3: repeatedly peel off blank nodes whose first-degree hash is
	// unique among the remaining ones, issuing canonical labels for them in
	// ascending-hash order, until a full pass finds no more.
	for {
		hashToIDs := make(map[string][]string)
		for id := range nonNormalized {
			h := c.hashFirstDegreeQuads(id)
			hashToIDs[h] = append(hashToIDs[h], id)
		}

		progressed := false
		for _, h := range sortedKeys(hashToIDs) {
			ids := hashToIDs[h]
			if len(ids) != 1 {
				continue
			}
			id := ids[0]
			c.canonIss.GetID(id)
			delete(nonNormalized, id)
			progressed = true
		}
		if !progressed {
			// No singleton hash remains: hashToIDs now holds exactly the
			// ambiguity groups step 4 must resolve by recursive tie-break.
			c.resolveRemaining(hashToIDs)
			break
		}
	}

	// Step 5: emit every quad in original order with blank nodes relabeled,
	// then sort the lines.
	lines := make([]string, len(ds.Quads))
	for i, q := range ds.Quads {
		lines[i] = nquads.Serialize(c.relabel(q))
	}
	sort.Strings(lines)
	return strings.Join(lines, "")
}

// resolveRemaining implements §4.5 step 4: N-degree tie-breaking for every
// group left after the unique-hash pass converges.
func (c *canonicalizer) resolveRemaining(groups map[string][]string) {
	for _, h := range sortedKeys(groups) {
		type pathResult struct {
			hash string
			iss  *issuer.Issuer
		}
		var results []pathResult

		for _, id := range groups[h] {
			if c.canonIss.HasID(id) {
				continue
			}
			tmp := issuer.New("_:b")
			tmp.GetID(id)
			resultHash, resultIssuer := c.hashNDegreeQuads(id, tmp)
			results = append(results, pathResult{hash: resultHash, iss: resultIssuer})
		}

		sort.Slice(results, func(i, j int) bool { return results[i].hash < results[j].hash })
		for _, r := range results {
			for _, old := range r.iss.OldIDs() {
				c.canonIss.GetID(old)
			}
		}
	}
}

// relabel returns a copy of q with every blank-node component that isn't
// already canonical rewritten to its canonical label.
func (c *canonicalizer) relabel(q *rdf.Quad) *rdf.Quad {
	return rdf.NewQuad(
		c.relabelTerm(q.Subject),
		q.Predicate,
		c.relabelTerm(q.Object),
		c.relabelTerm(q.Graph),
	)
}

func (c *canonicalizer) relabelTerm(t rdf.Term) rdf.Term {
	if !rdf.IsBlankNode(t) {
		return t
	}
	old := t.Value()
	if strings.HasPrefix(old, "_:c14n") {
		return t
	}
	return rdf.NewBlankNode(c.canonIss.GetID(old))
}

// hashFirstDegreeQuads implements §4.5 step 2 / §4.5.1's sibling
// "Hash First Degree Quads": a hash of id's own quads with every *other*
// blank node's identity erased.
func (c *canonicalizer) hashFirstDegreeQuads(id string) string {
	bi := c.info[id]
	if bi.hasHash {
		return bi.hash
	}

	lines := make([]string, 0, len(bi.quads))
	for _, q := range bi.quads {
		lines = append(lines, nquads.Serialize(firstDegreeQuadCopy(id, q)))
	}
	sort.Strings(lines)

	bi.hash = digest.SumOf(lines...)
	bi.hasHash = true
	return bi.hash
}

// firstDegreeQuadCopy returns a copy of q where every blank-node component
// is replaced by "_:a" if it is id, or "_:z" otherwise.
func firstDegreeQuadCopy(id string, q *rdf.Quad) *rdf.Quad {
	mark := func(t rdf.Term) rdf.Term {
		if !rdf.IsBlankNode(t) {
			return t
		}
		if t.Value() == id {
			return rdf.NewBlankNode("_:a")
		}
		return rdf.NewBlankNode("_:z")
	}
	return rdf.NewQuad(mark(q.Subject), q.Predicate, mark(q.Object), mark(q.Graph))
}

// hashRelatedBlankNode implements §4.5.1 step 1: the hash identifying a
// blank node related to id through quad, from the given position.
func (c *canonicalizer) hashRelatedBlankNode(related string, q *rdf.Quad, iss *issuer.Issuer, position string) string {
	var label string
	switch {
	case c.canonIss.HasID(related):
		label = c.canonIss.GetID(related)
	default:
		if existing, ok := iss.GetExistingID(related); ok {
			label = existing
		} else {
			label = c.hashFirstDegreeQuads(related)
		}
	}

	d := digest.New()
	d.WriteString(position)
	if position != "g" {
		d.WriteString("<" + q.Predicate.Value() + ">")
	}
	d.WriteString(label)
	return d.Sum()
}

// hashNDegreeQuads implements §4.5.1, the algorithm's recursive engine. It
// returns the hash for id's neighborhood under iss, and the issuer state
// produced by the winning path: a clone of iss, possibly extended, or iss
// itself when id has no related blank nodes.
func (c *canonicalizer) hashNDegreeQuads(id string, iss *issuer.Issuer) (string, *issuer.Issuer) {
	hashToRelated := c.createHashToRelated(id, iss)

	d := digest.New()
	for _, relatedHash := range sortedKeys(hashToRelated) {
		blankNodes := hashToRelated[relatedHash]
		d.WriteString(relatedHash)

		chosenPath := ""
		var chosenIssuer *issuer.Issuer

		perm := permute.New(blankNodes)
	permutations:
		for perm.HasNext() {
			permutation := perm.Next()

			issuerCopy := iss.Clone()
			path := ""
			var recursionList []string

			for _, r := range permutation {
				if c.canonIss.HasID(r) {
					path += c.canonIss.GetID(r)
				} else {
					if !issuerCopy.HasID(r) {
						recursionList = append(recursionList, r)
					}
					path += issuerCopy.GetID(r)
				}

				if chosenPath != "" && len(path) >= len(chosenPath) && path > chosenPath {
					continue permutations
				}
			}

			for _, r := range recursionList {
				resultHash, resultIssuer := c.hashNDegreeQuads(r, issuerCopy)
				issuerCopy = resultIssuer
				path += issuerCopy.GetID(r) + "<" + resultHash + ">"

				if chosenPath != "" && len(path) >= len(chosenPath) && path > chosenPath {
					continue permutations
				}
			}

			if chosenPath == "" || path < chosenPath {
				chosenPath = path
				chosenIssuer = issuerCopy
			}
		}

		d.WriteString(chosenPath)
		iss = chosenIssuer
	}

	return d.Sum(), iss
}

// createHashToRelated implements §4.5.1 step 1: groups every blank node
// related to id by the hash identifying its relationship.
func (c *canonicalizer) createHashToRelated(id string, iss *issuer.Issuer) map[string][]string {
	hashToRelated := make(map[string][]string)
	for _, q := range c.info[id].quads {
		for i, t := range q.Terms() {
			if t == nil || !rdf.IsBlankNode(t) || t.Value() == id {
				continue
			}
			related := t.Value()
			h := c.hashRelatedBlankNode(related, q, iss, positions[i])
			hashToRelated[h] = append(hashToRelated[h], related)
		}
	}
	return hashToRelated
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
