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

package issuer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetID(t *testing.T) {
	ii := New("_:c14n")

	first := ii.GetID("_:b0")
	assert.Equal(t, "_:c14n0", first)

	second := ii.GetID("_:b1")
	assert.Equal(t, "_:c14n1", second)

	assert.Equal(t, first, ii.GetID("_:b0"), "re-requesting an issued old ID returns the same label")
}

func TestHasID(t *testing.T) {
	ii := New("_:b")
	assert.False(t, ii.HasID("_:x"))
	ii.GetID("_:x")
	assert.True(t, ii.HasID("_:x"))
}

func TestGetExistingID(t *testing.T) {
	ii := New("_:b")

	_, ok := ii.GetExistingID("_:x")
	assert.False(t, ok, "GetExistingID must not mint a label as a side effect")
	assert.False(t, ii.HasID("_:x"))

	ii.GetID("_:x")
	id, ok := ii.GetExistingID("_:x")
	assert.True(t, ok)
	assert.Equal(t, "_:b0", id)
}

func TestOldIDsPreservesInsertionOrder(t *testing.T) {
	ii := New("_:b")
	ii.GetID("_:z")
	ii.GetID("_:a")
	ii.GetID("_:z") // repeat, must not duplicate the order slice
	ii.GetID("_:m")

	assert.Equal(t, []string{"_:z", "_:a", "_:m"}, ii.OldIDs())
}

func TestClone(t *testing.T) {
	ii := New("_:b")
	ii.GetID("_:x")

	clone := ii.Clone()
	clone.GetID("_:y")

	assert.True(t, clone.HasID("_:x"))
	assert.True(t, clone.HasID("_:y"))
	assert.False(t, ii.HasID("_:y"), "mutating the clone must not affect the original")
	assert.Equal(t, []string{"_:x"}, ii.OldIDs())
	assert.Equal(t, []string{"_:x", "_:y"}, clone.OldIDs())
}
