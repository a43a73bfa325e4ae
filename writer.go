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

package stardict

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/ianlewis/dictcc-stardict/dict"
	"github.com/ianlewis/dictcc-stardict/idx"
	"github.com/ianlewis/dictcc-stardict/ifo"
	"github.com/ianlewis/dictcc-stardict/syn"
)

// Version is the StarDict format version written by Write.
const Version = "3.0.0"

// ErrOffsetOverflow indicates that the dictionary data is too large for the
// configured index offset size.
var ErrOffsetOverflow = errors.New("dictionary offset overflow")

// Info is the dictionary metadata written to the .ifo file.
type Info struct {
	Bookname    string
	Author      string
	Email       string
	Website     string
	Description string
	Date        string
}

// GlossaryWord is a single headword along with its synonyms and article data.
type GlossaryWord struct {
	Word     string
	Synonyms []string
	Data     []*dict.Data
}

// Glossary is a full dictionary ready to be written.
type Glossary struct {
	Info  Info
	Words []*GlossaryWord
}

// WriteOptions are options for Write.
type WriteOptions struct {
	// DictZip compresses the .dict file using the dictzip format.
	DictZip bool

	// SameTypeSequence is written to the .ifo file and omits type bytes
	// from the .dict file. All words must match the sequence.
	SameTypeSequence []dict.DataType

	// OffsetBits is the size of .idx offsets. Either 32 or 64.
	OffsetBits int
}

// DefaultWriteOptions is the default options for Write.
var DefaultWriteOptions = &WriteOptions{
	DictZip:    true,
	OffsetBits: 32,
}

// WriteResult describes the files written by Write.
type WriteResult struct {
	// Files are the paths of the written files in the order .ifo, .idx,
	// .dict and .syn.
	Files []string

	WordCount    int
	SynWordCount int
	IdxFileSize  int64
	DictSize     uint64
}

type synonym struct {
	word  string
	index uint32
}

// Write writes the glossary as a StarDict dictionary. The .idx, .dict and
// .syn files are written next to the given .ifo path. The parent directory is
// created if needed.
func Write(ifoPath string, g *Glossary, options *WriteOptions) (*WriteResult, error) {
	if options == nil {
		options = DefaultWriteOptions
	}
	offsetBits := options.OffsetBits
	if offsetBits == 0 {
		offsetBits = DefaultWriteOptions.OffsetBits
	}
	if !strings.EqualFold(filepath.Ext(ifoPath), ".ifo") {
		return nil, fmt.Errorf("%w: bad extension: %v", ErrInvalidIfo, filepath.Ext(ifoPath))
	}
	if g.Info.Bookname == "" {
		return nil, fmt.Errorf("%w: missing bookname", ErrInvalidIfo)
	}
	if uint64(len(g.Words)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: too many words: %d", ErrInvalidIfo, len(g.Words))
	}

	if err := os.MkdirAll(filepath.Dir(ifoPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	words := slices.Clone(g.Words)
	slices.SortStableFunc(words, func(a, b *GlossaryWord) int {
		return Compare(a.Word, b.Word)
	})

	base := strings.TrimSuffix(ifoPath, filepath.Ext(ifoPath))
	res := &WriteResult{
		Files: []string{ifoPath},
	}

	idxPath := base + ".idx"
	dictPath := base + ".dict"
	if options.DictZip {
		dictPath += ".dz"
	}

	if err := writeIdxDict(idxPath, dictPath, words, offsetBits, options, res); err != nil {
		return nil, err
	}
	res.Files = append(res.Files, idxPath, dictPath)

	var synonyms []synonym
	for i, w := range words {
		for _, s := range w.Synonyms {
			synonyms = append(synonyms, synonym{
				word: s,
				//nolint:gosec // word count is bounds checked above.
				index: uint32(i),
			})
		}
	}
	if len(synonyms) > 0 {
		slices.SortStableFunc(synonyms, func(a, b synonym) int {
			return Compare(a.word, b.word)
		})
		synPath := base + ".syn"
		if err := writeSyn(synPath, synonyms, res); err != nil {
			return nil, err
		}
		res.Files = append(res.Files, synPath)
	}

	if err := writeIfo(ifoPath, g.Info, res, offsetBits, options.SameTypeSequence); err != nil {
		return nil, err
	}

	return res, nil
}

func writeIdxDict(
	idxPath, dictPath string,
	words []*GlossaryWord,
	offsetBits int,
	options *WriteOptions,
	res *WriteResult,
) (err error) {
	idxFile, err := os.Create(idxPath)
	if err != nil {
		return fmt.Errorf("creating .idx file: %w", err)
	}
	defer closeFile(idxFile, &err)

	dictFile, err := os.Create(dictPath)
	if err != nil {
		return fmt.Errorf("creating .dict file: %w", err)
	}
	defer closeFile(dictFile, &err)

	iw, err := idx.NewWriter(idxFile, &idx.Options{
		OffsetBits: offsetBits,
	})
	if err != nil {
		return fmt.Errorf("creating .idx writer: %w", err)
	}

	dictOpts := &dict.Options{
		SameTypeSequence: options.SameTypeSequence,
	}
	var dw *dict.Writer
	if options.DictZip {
		dw, err = dict.NewDictzipWriter(dictFile, dictOpts)
	} else {
		dw, err = dict.NewWriter(dictFile, dictOpts)
	}
	if err != nil {
		return fmt.Errorf("creating .dict writer: %w", err)
	}

	for _, w := range words {
		offset, size, err := dw.Write(&dict.Word{Data: w.Data})
		if err != nil {
			return fmt.Errorf("writing %q: %w", w.Word, err)
		}
		err = iw.Write(&idx.Word{
			Word:   w.Word,
			Offset: offset,
			Size:   size,
		})
		if errors.Is(err, idx.ErrOffsetTooLarge) {
			return fmt.Errorf("%w: %w", ErrOffsetOverflow, err)
		}
		if err != nil {
			return fmt.Errorf("indexing %q: %w", w.Word, err)
		}
	}

	if err := dw.Close(); err != nil {
		return fmt.Errorf("writing .dict file: %w", err)
	}
	if err := iw.Flush(); err != nil {
		return fmt.Errorf("writing .idx file: %w", err)
	}

	res.WordCount = iw.Count()
	res.IdxFileSize = iw.Size()
	res.DictSize = dw.Offset()
	return nil
}

func writeSyn(synPath string, synonyms []synonym, res *WriteResult) (err error) {
	f, err := os.Create(synPath)
	if err != nil {
		return fmt.Errorf("creating .syn file: %w", err)
	}
	defer closeFile(f, &err)

	sw := syn.NewWriter(f)
	for _, s := range synonyms {
		if err := sw.Write(&syn.Word{
			Word:              s.word,
			OriginalWordIndex: s.index,
		}); err != nil {
			return fmt.Errorf("writing synonym %q: %w", s.word, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("writing .syn file: %w", err)
	}
	res.SynWordCount = sw.Count()
	return nil
}

func writeIfo(ifoPath string, info Info, res *WriteResult, offsetBits int, seq []dict.DataType) (err error) {
	var synwordcount, idxoffsetbits string
	if res.SynWordCount > 0 {
		synwordcount = strconv.Itoa(res.SynWordCount)
	}
	if offsetBits == 64 {
		idxoffsetbits = "64"
	}
	var sametypesequence strings.Builder
	for _, t := range seq {
		sametypesequence.WriteByte(byte(t))
	}

	i := ifo.NewWithVersion(Version)
	for _, kv := range [][2]string{
		{"bookname", info.Bookname},
		{"wordcount", strconv.Itoa(res.WordCount)},
		{"synwordcount", synwordcount},
		{"idxfilesize", strconv.FormatInt(res.IdxFileSize, 10)},
		{"idxoffsetbits", idxoffsetbits},
		{"author", info.Author},
		{"email", info.Email},
		{"website", info.Website},
		{"description", info.Description},
		{"date", info.Date},
		{"sametypesequence", sametypesequence.String()},
	} {
		if err := i.Set(kv[0], kv[1]); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidIfo, err)
		}
	}

	f, err := os.Create(ifoPath)
	if err != nil {
		return fmt.Errorf("creating .ifo file: %w", err)
	}
	defer closeFile(f, &err)

	if _, err := i.WriteTo(f); err != nil {
		return fmt.Errorf("writing .ifo file: %w", err)
	}
	return nil
}

// closeFile closes f and records the error in err if no earlier error
// occurred.
func closeFile(f *os.File, err *error) {
	if cerr := f.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("closing %q: %w", f.Name(), cerr)
	}
}
