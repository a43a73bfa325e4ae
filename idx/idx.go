// Copyright 2021 Google LLC
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

package idx

import (
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/transform"

	"github.com/ianlewis/dictcc-stardict/internal/companion"
	"github.com/ianlewis/dictcc-stardict/internal/index"
)

// Word is an .idx file entry.
type Word struct {
	Word   string
	Offset uint64
	Size   uint32
}

// Options are options for the idx data.
type Options struct {
	// OffsetBits are the number of bits in the offset fields. Valid values for
	// OffsetBits are either 32 or 64.
	OffsetBits int

	// Folder returns a [transform.Transformer] that performs folding (e.g.
	// case folding, whitespace folding, etc.) on index entries.
	Folder func() transform.Transformer
}

// DefaultOptions is the default options for an Idx.
var DefaultOptions = &Options{
	OffsetBits: 32,
	Folder: func() transform.Transformer {
		return transform.Nop
	},
}

// Idx is an in-memory search index of an .idx file. Words are found by their
// folded value.
type Idx struct {
	// words is in file order. Synonyms refer to words by this order.
	words []*Word

	// index is keyed by the folded word.
	index *index.Index[*Word]

	folder func() transform.Transformer
}

// New returns a new in-memory index read from r.
func New(r io.Reader, options *Options) (*Idx, error) {
	if options == nil {
		options = DefaultOptions
	}
	folder := options.Folder
	if folder == nil {
		folder = DefaultOptions.Folder
	}
	offsetBits := options.OffsetBits
	if offsetBits == 0 {
		offsetBits = DefaultOptions.OffsetBits
	}

	s, err := NewScanner(r, &ScannerOptions{
		OffsetBits: offsetBits,
	})
	if err != nil {
		return nil, err
	}

	idx := &Idx{
		folder: folder,
	}
	var entries []index.Entry[*Word]
	for s.Scan() {
		w := s.Word()
		key, _, err := transform.String(folder(), w.Word)
		if err != nil {
			return nil, fmt.Errorf("folding word %q: %w", w.Word, err)
		}
		idx.words = append(idx.words, w)
		entries = append(entries, index.Entry[*Word]{Key: key, Value: w})
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("scanning index: %w", err)
	}

	idx.index = index.New(entries, strings.Compare)
	return idx, nil
}

// NewFromIfoPath returns a new in-memory index read from the .idx or .idx.gz
// file next to the given .ifo file.
func NewFromIfoPath(ifoPath string, options *Options) (*Idx, error) {
	f, err := companion.Open(ifoPath, ".idx", "", ".gz")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if companion.IsCompressed(f.Name()) {
		z, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("creating .idx gzip reader: %w", err)
		}
		defer z.Close()
		r = z
	}

	return New(r, options)
}

// Len returns the number of words in the index.
func (idx *Idx) Len() int {
	return len(idx.words)
}

// Words returns the words in file order.
func (idx *Idx) Words() []*Word {
	return idx.words
}

// WordAt returns the word at position i in file order or nil if i is out of
// range.
func (idx *Idx) WordAt(i int) *Word {
	if i < 0 || i >= len(idx.words) {
		return nil
	}
	return idx.words[i]
}

// Search returns the words whose folded value matches the folded query.
func (idx *Idx) Search(query string) ([]*Word, error) {
	key, _, err := transform.String(idx.folder(), query)
	if err != nil {
		return nil, fmt.Errorf("folding query %q: %w", query, err)
	}
	return idx.index.Search(key), nil
}
