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

package canon

import (
	"fmt"
	"math/rand"
	"regexp"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gannan08/rdf-canonize/nquads"
	"github.com/gannan08/rdf-canonize/rdf"
)

func canonize(t *testing.T, doc string) string {
	t.Helper()
	ds, err := nquads.Parse(doc)
	require.NoError(t, err)
	out, err := Canonize(ds, AlgorithmURDNA2015)
	require.NoError(t, err)
	return out
}

func TestCanonize_UnsupportedAlgorithm(t *testing.T) {
	ds, err := nquads.Parse("")
	require.NoError(t, err)
	_, err = Canonize(ds, "URGNA2012")
	require.Error(t, err)
	var ce *rdf.CanonError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, rdf.UnsupportedAlgorithm, ce.Code)
}

func TestScenario1_EmptyDataset(t *testing.T) {
	assert.Equal(t, "", canonize(t, ""))
}

func TestScenario2_NoBlankNodes(t *testing.T) {
	doc := "<http://a/s> <http://a/p> <http://a/o> .\n"
	assert.Equal(t, doc, canonize(t, doc))
}

func TestScenario3_SingleBlankNode(t *testing.T) {
	doc := "_:x <http://a/p> <http://a/o> .\n"
	want := "_:c14n0 <http://a/p> <http://a/o> .\n"
	assert.Equal(t, want, canonize(t, doc))
}

func TestScenario4_TwoBlankNodesDistinctHashes(t *testing.T) {
	doc := "_:a <http://a/p> \"A\" .\n_:b <http://a/p> \"B\" .\n"
	out := canonize(t, doc)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, sort.StringsAreSorted(lines))
	assert.Contains(t, out, "_:c14n0")
	assert.Contains(t, out, "_:c14n1")
}

func TestScenario5_SymmetricPair(t *testing.T) {
	doc := "_:a <http://a/p> _:b .\n_:b <http://a/p> _:a .\n"
	swapped := "_:b <http://a/p> _:a .\n_:a <http://a/p> _:b .\n"

	out := canonize(t, doc)
	outSwapped := canonize(t, swapped)
	assert.Equal(t, out, outSwapped)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, sort.StringsAreSorted(lines))
}

func TestScenario6_TwelveNodeSymmetricGraph(t *testing.T) {
	var b strings.Builder
	group := func(prefix string) {
		for i := 0; i < 6; i++ {
			next := (i + 1) % 6
			fmt.Fprintf(&b, "_:%s%d <http://a/link> _:%s%d .\n", prefix, i, prefix, next)
		}
	}
	group("g1")
	group("g2")
	doc := b.String()

	out := canonize(t, doc)
	inLines := strings.Count(doc, "\n")
	outLines := strings.Count(out, "\n")
	assert.Equal(t, inLines, outLines)
}

func TestCanonicalLabelShape(t *testing.T) {
	doc := "_:a <http://a/p> _:b .\n_:b <http://a/p> _:c .\n_:c <http://a/p> _:a .\n"
	out := canonize(t, doc)

	re := regexp.MustCompile(`_:c14n[0-9]+`)
	labels := map[string]bool{}
	for _, m := range re.FindAllString(out, -1) {
		labels[m] = true
	}
	assert.Len(t, labels, 3)
	for i := 0; i < 3; i++ {
		assert.Contains(t, labels, fmt.Sprintf("_:c14n%d", i))
	}
}

func TestLexicographicSortedness(t *testing.T) {
	doc := "_:c <http://a/p> <http://a/1> .\n_:a <http://a/p> <http://a/2> .\n_:b <http://a/p> <http://a/3> .\n"
	out := canonize(t, doc)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.True(t, sort.StringsAreSorted(lines))
}

func TestIdempotence(t *testing.T) {
	doc := "_:a <http://a/p> _:b .\n_:b <http://a/p> _:a .\n_:a <http://a/q> <http://a/o> .\n"
	once := canonize(t, doc)
	twice := canonize(t, once)
	assert.Equal(t, once, twice)
}

func TestIsomorphismInvariance(t *testing.T) {
	doc := "_:a <http://a/p> _:b .\n_:b <http://a/q> _:c .\n_:c <http://a/p> _:a .\n"
	renamed := "_:x99 <http://a/p> _:y7 .\n_:y7 <http://a/q> _:zzz .\n_:zzz <http://a/p> _:x99 .\n"

	assert.Equal(t, canonize(t, doc), canonize(t, renamed))
}

func TestOrderInsensitivityOfInput(t *testing.T) {
	lines := []string{
		"_:a <http://a/p> _:b .",
		"_:b <http://a/q> <http://a/o1> .",
		"<http://a/s> <http://a/p> _:a .",
	}

	base := canonize(t, strings.Join(lines, "\n")+"\n")

	r := rand.New(rand.NewSource(1))
	shuffled := append([]string(nil), lines...)
	r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	got := canonize(t, strings.Join(shuffled, "\n")+"\n")

	assert.Equal(t, base, got)
}

func TestParseSerializeRoundTripASCIIQuad(t *testing.T) {
	line := `<http://a/s> <http://a/p> <http://a/o> .`
	q, err := nquads.ParseQuad(line)
	require.NoError(t, err)
	assert.Equal(t, line+"\n", nquads.Serialize(q))
}
