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

// Package nquads parses and serializes the W3C N-Quads line-oriented RDF
// syntax. It is the canonicalizer's text layer: the algorithm itself never
// parses text, only works on rdf.Term/rdf.Quad values.
package nquads

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/gannan08/rdf-canonize/rdf"
)

// Serialize renders a single quad as one N-Quads line, ending " .\n".
func Serialize(q *rdf.Quad) string {
	var b strings.Builder

	switch s := q.Subject.(type) {
	case *rdf.NamedNode:
		b.WriteByte('<')
		b.WriteString(escape(s.IRI))
		b.WriteByte('>')
	default:
		b.WriteString(s.Value())
	}

	b.WriteString(" <")
	b.WriteString(escape(q.Predicate.Value()))
	b.WriteString("> ")

	switch o := q.Object.(type) {
	case *rdf.NamedNode:
		b.WriteByte('<')
		b.WriteString(escape(o.IRI))
		b.WriteByte('>')
	case *rdf.BlankNode:
		b.WriteString(o.Label)
	case *rdf.Literal:
		b.WriteByte('"')
		b.WriteString(escape(o.Lexical))
		b.WriteByte('"')
		switch {
		case o.Datatype == rdf.RDFLangString:
			b.WriteByte('@')
			b.WriteString(o.Language)
		case o.Datatype != rdf.XSDString:
			b.WriteString("^^<")
			b.WriteString(escape(o.Datatype))
			b.WriteByte('>')
		}
	}

	switch g := q.Graph.(type) {
	case *rdf.NamedNode:
		b.WriteString(" <")
		b.WriteString(escape(g.IRI))
		b.WriteByte('>')
	case *rdf.BlankNode:
		b.WriteByte(' ')
		b.WriteString(g.Label)
	}

	b.WriteString(" .\n")
	return b.String()
}

// SerializeDataset serializes every quad in order and concatenates the
// lines, without sorting. Canonical output sorting is the canonicalizer's
// responsibility (§4.5 step 5), not the codec's.
func SerializeDataset(ds *rdf.Dataset) string {
	var b strings.Builder
	for _, q := range ds.Quads {
		b.WriteString(Serialize(q))
	}
	return b.String()
}

// escape maps '\' '\r' '\n' '"' to their N-Quads escape sequences. No other
// character is escaped on output.
func escape(s string) string {
	if !strings.ContainsAny(s, "\\\r\n\"") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\r':
			b.WriteString(`\r`)
		case '\n':
			b.WriteString(`\n`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// unescape reverses the N-Quads/Turtle string escapes accepted on the parse
// side: \t \b \n \r \f \" \' \\.
func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i == len(s)-1 {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 't':
			b.WriteByte('\t')
		case 'b':
			b.WriteByte('\b')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 'f':
			b.WriteByte('\f')
		case '"':
			b.WriteByte('"')
		case '\'':
			b.WriteByte('\'')
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// N-Quads/Turtle grammar, following the W3C Recommendation. Kept as one
// composed regex, matching the teacher's approach.
const (
	wso = `[ \t]*`
	ws  = `[ \t]+`
	iri = `(?:<([^:]+:[^>]*)>)`

	// https://www.w3.org/TR/turtle/#grammar-production-BLANK_NODE_LABEL
	pnCharsBase = "A-Z" + "a-z" +
		"\u00C0-\u00D6" +
		"\u00D8-\u00F6" +
		"\u00F8-\u02FF" +
		"\u0370-\u037D" +
		"\u037F-\u1FFF" +
		"\u200C-\u200D" +
		"\u2070-\u218F" +
		"\u2C00-\u2FEF" +
		"\u3001-\uD7FF" +
		"\uF900-\uFDCF" +
		"\uFDF0-\uFFFD"

	pnCharsU = pnCharsBase + "_"

	pnChars = pnCharsU +
		"0-9" +
		"-" +
		"\u00B7" +
		"\u0300-\u036F" +
		"\u203F-\u2040"

	blankNodeLabel = "(_:" +
		"(?:[" + pnCharsU + "0-9])" +
		"(?:(?:[" + pnChars + ".])*(?:[" + pnChars + "]))?" +
		")"

	plain    = `"([^"\\]*(?:\\.[^"\\]*)*)"`
	datatype = `(?:\^\^` + iri + `)`
	language = `(?:@([a-zA-Z]+(?:-[a-zA-Z0-9]+)*))`
	literal  = `(?:` + plain + `(?:` + datatype + `|` + language + `)?)`

	subject  = `(?:` + iri + `|` + blankNodeLabel + `)` + ws
	property = iri + ws
	object   = `(?:` + iri + `|` + blankNodeLabel + `|` + literal + `)` + wso
	graph    = `(?:\.|(?:(?:` + iri + `|` + blankNodeLabel + `)` + wso + `\.))`
)

var (
	regexEmpty = regexp.MustCompile("^" + wso + "$")
	regexQuad  = regexp.MustCompile("^" + wso + subject + property + object + graph + wso + "$")
)

// ParseQuad parses a single non-empty N-Quads line (without its trailing
// newline) into a Quad.
func ParseQuad(line string) (*rdf.Quad, error) {
	if !regexQuad.MatchString(line) {
		return nil, rdf.NewCanonError(rdf.SyntaxError, fmt.Errorf("invalid N-Quads line: %q", line))
	}
	m := regexQuad.FindStringSubmatch(line)

	var subject rdf.Term
	if m[1] != "" {
		subject = rdf.NewNamedNode(unescape(m[1]))
	} else {
		subject = rdf.NewBlankNode(unescape(m[2]))
	}

	predicate := rdf.NewNamedNode(unescape(m[3]))

	var object rdf.Term
	switch {
	case m[4] != "":
		object = rdf.NewNamedNode(unescape(m[4]))
	case m[5] != "":
		object = rdf.NewBlankNode(unescape(m[5]))
	default:
		datatype := rdf.XSDString
		language := ""
		switch {
		case m[7] != "":
			datatype = unescape(m[7])
		case m[8] != "":
			datatype = rdf.RDFLangString
			language = unescape(m[8])
		}
		object = rdf.NewLiteral(unescape(m[6]), datatype, language)
	}

	var graph rdf.Term = rdf.NewDefaultGraph()
	switch {
	case m[9] != "":
		graph = rdf.NewNamedNode(unescape(m[9]))
	case m[10] != "":
		graph = rdf.NewBlankNode(unescape(m[10]))
	}

	return rdf.NewQuad(subject, predicate, object, graph), nil
}

// Parse parses a complete N-Quads document into a Dataset. Lines are
// separated by LF; empty (whitespace-only) lines are skipped.
func Parse(text string) (*rdf.Dataset, error) {
	return ParseFrom(strings.NewReader(text))
}

// ParseFrom parses N-Quads from an io.Reader.
func ParseFrom(r io.Reader) (*rdf.Dataset, error) {
	ds := rdf.NewDataset()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if regexEmpty.MatchString(line) {
			continue
		}
		q, err := ParseQuad(line)
		if err != nil {
			return nil, rdf.NewCanonError(rdf.SyntaxError, fmt.Errorf("line %d: %w", lineNumber, err))
		}
		ds.Add(q)
	}
	if err := scanner.Err(); err != nil {
		return nil, rdf.NewCanonError(rdf.IOError, err)
	}

	return ds, nil
}
