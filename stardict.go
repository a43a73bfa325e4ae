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

package stardict

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/transform"

	"github.com/ianlewis/dictcc-stardict/dict"
	"github.com/ianlewis/dictcc-stardict/idx"
	"github.com/ianlewis/dictcc-stardict/ifo"
	"github.com/ianlewis/dictcc-stardict/internal/folding"
	"github.com/ianlewis/dictcc-stardict/syn"
)

var (
	// ErrInvalidMagic indicates the .ifo file does not start with the
	// StarDict magic string.
	ErrInvalidMagic = errors.New("bad magic data")

	// ErrInvalidVersion indicates an unsupported dictionary version.
	ErrInvalidVersion = errors.New("invalid version")

	// ErrInvalidIfo indicates a missing or malformed .ifo value.
	ErrInvalidIfo = errors.New("invalid .ifo")
)

// Options are options for opening a dictionary.
type Options struct {
	// Folder returns a [transform.Transformer] that performs folding on index
	// words and search queries.
	Folder func() transform.Transformer
}

// DefaultOptions is the default options for Open.
var DefaultOptions = &Options{
	Folder: folding.Search,
}

// Stardict is a stardict dictionary.
type Stardict struct {
	ifo  *ifo.Ifo
	idx  *idx.Idx
	syn  *syn.Syn
	dict *dict.Dict

	ifoPath string
	folder  func() transform.Transformer

	version          string
	bookname         string
	wordcount        int64
	synwordcount     int64
	idxfilesize      int64
	idxoffsetbits    int64
	author           string
	email            string
	website          string
	description      string
	date             string
	sametypesequence []dict.DataType
}

// OpenAll opens all dictionaries under a directory. This function will return
// all successfully opened dictionaries along with any errors that occurred.
func OpenAll(path string, options *Options) ([]*Stardict, []error) {
	var dicts []*Stardict
	var errs []error
	if err := filepath.WalkDir(path, func(path string, info fs.DirEntry, err error) error {
		// Walking the file path will ignore errors.
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		if !info.IsDir() && strings.EqualFold(filepath.Ext(info.Name()), ".ifo") {
			dict, err := Open(path, options)
			if err != nil {
				errs = append(errs, err)
				return nil
			}
			dicts = append(dicts, dict)
		}
		return nil
	}); err != nil {
		errs = append(errs, err)
		return nil, errs
	}
	return dicts, errs
}

// Open opens a Stardict dictionary from the given .ifo file path. The .idx,
// .syn and .dict files are opened lazily.
func Open(path string, options *Options) (*Stardict, error) {
	if options == nil {
		options = DefaultOptions
	}

	s := &Stardict{
		ifoPath:       path,
		folder:        DefaultOptions.Folder,
		idxoffsetbits: 32,
	}
	if options.Folder != nil {
		s.folder = options.Folder
	}

	ifoExt := filepath.Ext(s.ifoPath)
	if !strings.EqualFold(ifoExt, ".ifo") {
		return nil, fmt.Errorf("%w: bad extension: %v", ErrInvalidIfo, ifoExt)
	}

	ifoFile, err := os.Open(s.ifoPath)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", s.ifoPath, err)
	}
	defer ifoFile.Close()

	s.ifo, err = ifo.New(ifoFile)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", s.ifoPath, err)
	}

	if s.ifo.Magic() != ifo.Magic {
		return nil, fmt.Errorf("%q: %w", s.ifoPath, ErrInvalidMagic)
	}

	// Validate the version
	s.version = s.ifo.Value("version")
	switch s.version {
	case "2.4.2":
	case "3.0.0":
	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidVersion, s.version)
	}

	s.bookname = s.ifo.Value("bookname")
	if s.bookname == "" {
		return nil, fmt.Errorf("%w: missing bookname", ErrInvalidIfo)
	}

	s.wordcount, err = strconv.ParseInt(s.ifo.Value("wordcount"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad wordcount: %w", ErrInvalidIfo, err)
	}

	s.idxfilesize, err = strconv.ParseInt(s.ifo.Value("idxfilesize"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad idxfilesize: %w", ErrInvalidIfo, err)
	}

	idxoffsetbits := s.ifo.Value("idxoffsetbits")
	if idxoffsetbits != "" && s.version == "3.0.0" {
		s.idxoffsetbits, err = strconv.ParseInt(idxoffsetbits, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid idxoffsetbits: %w", ErrInvalidIfo, err)
		}
	}

	synwordcount := s.ifo.Value("synwordcount")
	if synwordcount != "" {
		s.synwordcount, err = strconv.ParseInt(synwordcount, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad synwordcount: %w", ErrInvalidIfo, err)
		}
	}

	for _, r := range s.ifo.Value("sametypesequence") {
		s.sametypesequence = append(s.sametypesequence, dict.DataType(r))
	}

	s.author = s.ifo.Value("author")
	s.email = s.ifo.Value("email")
	s.description = s.ifo.Value("description")
	s.website = s.ifo.Value("website")
	s.date = s.ifo.Value("date")

	return s, nil
}

// Path returns the path of the dictionary's .ifo file.
func (s *Stardict) Path() string {
	return s.ifoPath
}

// Bookname returns the dictionary name.
func (s *Stardict) Bookname() string {
	return s.bookname
}

// Description returns the dictionary description.
func (s *Stardict) Description() string {
	return s.description
}

// Author returns the dictionary author.
func (s *Stardict) Author() string {
	return s.author
}

// Email returns the dictionary contact email.
func (s *Stardict) Email() string {
	return s.email
}

// Website returns the dictionary website url.
func (s *Stardict) Website() string {
	return s.website
}

// Date returns the dictionary creation date.
func (s *Stardict) Date() string {
	return s.date
}

// WordCount returns the dictionary word count.
func (s *Stardict) WordCount() int64 {
	return s.wordcount
}

// SynWordCount returns the dictionary synonym count.
func (s *Stardict) SynWordCount() int64 {
	return s.synwordcount
}

// IdxFileSize returns the size of the uncompressed .idx file.
func (s *Stardict) IdxFileSize() int64 {
	return s.idxfilesize
}

// Version returns the dictionary format version.
func (s *Stardict) Version() string {
	return s.version
}

// SameTypeSequence returns the sametypesequence option.
func (s *Stardict) SameTypeSequence() []dict.DataType {
	return s.sametypesequence
}

// Search performs a search of the index and synonyms for the given query and
// returns matching dictionary entries.
func (s *Stardict) Search(query string) ([]*Entry, error) {
	index, err := s.Index()
	if err != nil {
		return nil, err
	}
	d, err := s.Dict()
	if err != nil {
		return nil, err
	}

	words, err := index.Search(query)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}

	if s.synwordcount > 0 {
		synIdx, err := s.Syn()
		if err != nil {
			return nil, err
		}
		synWords, err := synIdx.Search(query)
		if err != nil {
			return nil, fmt.Errorf("searching synonyms: %w", err)
		}
		for _, sw := range synWords {
			if w := index.WordAt(int(sw.OriginalWordIndex)); w != nil {
				words = append(words, w)
			}
		}
	}

	var entries []*Entry
	seen := map[*idx.Word]bool{}
	for _, w := range words {
		if seen[w] {
			continue
		}
		seen[w] = true

		dw, err := d.Word(w)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", w.Word, err)
		}
		entries = append(entries, &Entry{
			word: w.Word,
			data: dw.Data,
		})
	}
	return entries, nil
}

// Index returns an in-memory version of the dictionary's index.
func (s *Stardict) Index() (*idx.Idx, error) {
	if s.idx != nil {
		return s.idx, nil
	}
	index, err := idx.NewFromIfoPath(s.ifoPath, &idx.Options{
		OffsetBits: int(s.idxoffsetbits),
		Folder:     s.folder,
	})
	if err != nil {
		return nil, fmt.Errorf("reading index: %w", err)
	}
	s.idx = index
	return s.idx, nil
}

// Syn returns an in-memory version of the dictionary's synonym index.
func (s *Stardict) Syn() (*syn.Syn, error) {
	if s.syn != nil {
		return s.syn, nil
	}
	synIdx, err := syn.NewFromIfoPath(s.ifoPath, &syn.Options{
		Folder: s.folder,
	})
	if err != nil {
		return nil, fmt.Errorf("reading synonyms: %w", err)
	}
	s.syn = synIdx
	return s.syn, nil
}

// Dict returns the dictionary's dict.
func (s *Stardict) Dict() (*dict.Dict, error) {
	if s.dict != nil {
		return s.dict, nil
	}
	d, err := dict.NewFromIfoPath(s.ifoPath, &dict.Options{
		SameTypeSequence: s.sametypesequence,
	})
	if err != nil {
		return nil, fmt.Errorf("reading dict: %w", err)
	}
	s.dict = d
	return s.dict, nil
}

// Close closes the dictionary's open files.
func (s *Stardict) Close() error {
	if s.dict == nil {
		return nil
	}
	err := s.dict.Close()
	s.dict = nil
	return err //nolint:wrapcheck // already wrapped by dict.
}
