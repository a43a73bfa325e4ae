// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package syn_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/dictcc-stardict/internal/testutil"
	"github.com/ianlewis/dictcc-stardict/syn"
)

// TestWriter tests Writer.
func TestWriter(t *testing.T) {
	t.Parallel()

	words := []*syn.Word{
		{
			Word:              "go",
			OriginalWordIndex: 1,
		},
		{
			Word:              "to go",
			OriginalWordIndex: 0,
		},
	}

	var b bytes.Buffer
	w := syn.NewWriter(&b)
	for _, word := range words {
		if err := w.Write(word); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	if diff := cmp.Diff(testutil.MakeSyn(t, words), b.Bytes()); diff != "" {
		t.Fatalf("synonym data (-want, +got):\n%s", diff)
	}
	if got, want := w.Count(), len(words); got != want {
		t.Fatalf("Count: want: %d, got: %d", want, got)
	}
}

// TestWriter_invalid tests writing an invalid synonym.
func TestWriter_invalid(t *testing.T) {
	t.Parallel()

	w := syn.NewWriter(&bytes.Buffer{})
	err := w.Write(&syn.Word{Word: "a\x00b"})
	if !errors.Is(err, syn.ErrInvalidWord) {
		t.Fatalf("Write: want: %v, got: %v", syn.ErrInvalidWord, err)
	}
}
