// Copyright 2025 Ian Lewis
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

package syn

import (
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/transform"

	"github.com/ianlewis/dictcc-stardict/internal/companion"
	"github.com/ianlewis/dictcc-stardict/internal/index"
)

// Word is a .syn file entry.
type Word struct {
	// Word is the synonym word.
	Word string

	// OriginalWordIndex is the position of the synonym's word in the .idx
	// file.
	OriginalWordIndex uint32
}

// Options are options for the synonym index.
type Options struct {
	// Folder returns a [transform.Transformer] that performs folding (e.g.
	// case folding, whitespace folding, etc.) on synonyms.
	Folder func() transform.Transformer
}

// DefaultOptions is the default options for a Syn.
var DefaultOptions = &Options{
	Folder: func() transform.Transformer {
		return transform.Nop
	},
}

// Syn is the in-memory synonym index. It maps synonyms to positions in the
// .idx file.
type Syn struct {
	// index is keyed by the folded synonym.
	index *index.Index[*Word]

	folder func() transform.Transformer
}

// New returns a new Syn by reading the data from r.
func New(r io.Reader, options *Options) (*Syn, error) {
	if options == nil {
		options = DefaultOptions
	}
	folder := options.Folder
	if folder == nil {
		folder = DefaultOptions.Folder
	}

	s := NewScanner(r)
	var entries []index.Entry[*Word]
	for s.Scan() {
		w := s.Word()
		key, _, err := transform.String(folder(), w.Word)
		if err != nil {
			return nil, fmt.Errorf("folding word %q: %w", w.Word, err)
		}
		entries = append(entries, index.Entry[*Word]{Key: key, Value: w})
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("scanning synonym index: %w", err)
	}

	return &Syn{
		index:  index.New(entries, strings.Compare),
		folder: folder,
	}, nil
}

// NewFromIfoPath returns a new in-memory synonym index read from the .syn
// file next to the given .ifo file.
func NewFromIfoPath(ifoPath string, options *Options) (*Syn, error) {
	f, err := companion.Open(ifoPath, ".syn", "", ".gz", ".dz")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if companion.IsCompressed(f.Name()) {
		z, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("creating .syn gzip reader: %w", err)
		}
		defer z.Close()
		r = z
	}

	return New(r, options)
}

// Search returns the synonyms whose folded value matches the folded query.
func (syn *Syn) Search(query string) ([]*Word, error) {
	key, _, err := transform.String(syn.folder(), query)
	if err != nil {
		return nil, fmt.Errorf("folding query %q: %w", query, err)
	}
	return syn.index.Search(key), nil
}

// Len returns the number of synonyms.
func (syn *Syn) Len() int {
	return syn.index.Len()
}
