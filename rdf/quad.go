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

package rdf

// Quad is an ordered (subject, predicate, object, graph) tuple. Subject is a
// NamedNode or BlankNode; Predicate is always a NamedNode; Object is a
// NamedNode, BlankNode or Literal; Graph is a NamedNode, BlankNode or
// DefaultGraph.
type Quad struct {
	Subject   Term
	Predicate Term
	Object    Term
	Graph     Term
}

// NewQuad creates a new Quad. A nil graph is normalized to DefaultGraph.
func NewQuad(subject, predicate, object, graph Term) *Quad {
	if graph == nil {
		graph = defaultGraph
	}
	return &Quad{Subject: subject, Predicate: predicate, Object: object, Graph: graph}
}

// Equal reports whether q and o denote the same quad.
func (q *Quad) Equal(o *Quad) bool {
	if o == nil {
		return false
	}
	return q.Subject.Equal(o.Subject) &&
		q.Predicate.Equal(o.Predicate) &&
		q.Object.Equal(o.Object) &&
		q.Graph.Equal(o.Graph)
}

// Terms returns the quad's subject, object and graph components, in that
// order — the three positions that may carry a blank node. Predicate is
// always a NamedNode and is never part of the blank-node discovery step.
func (q *Quad) Terms() [3]Term {
	return [3]Term{q.Subject, q.Object, q.Graph}
}

// Dataset is an ordered sequence of quads, exactly as parsed. Duplicate
// quads are preserved; the canonicalizer does not require deduplication.
type Dataset struct {
	Quads []*Quad
}

// NewDataset creates an empty Dataset.
func NewDataset() *Dataset {
	return &Dataset{Quads: make([]*Quad, 0)}
}

// Add appends q to the dataset, preserving input order.
func (d *Dataset) Add(q *Quad) {
	d.Quads = append(d.Quads, q)
}

// Len returns the number of quads in the dataset.
func (d *Dataset) Len() int { return len(d.Quads) }
