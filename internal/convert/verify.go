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

package convert

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"

	stardict "github.com/ianlewis/dictcc-stardict"
	"github.com/ianlewis/dictcc-stardict/dict"
)

// ErrVerify indicates that a written dictionary does not read back correctly.
var ErrVerify = errors.New("verification failed")

// Verify reopens the dictionary at ifoPath and checks it against the glossary
// and the result it was written from. The metadata and counts must match and
// every headword and synonym must find its article through a search.
func Verify(ifoPath string, g *stardict.Glossary, res *stardict.WriteResult) (err error) {
	s, err := stardict.Open(ifoPath, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrVerify, err)
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %w", ErrVerify, cerr)
		}
	}()

	if err := verifyInfo(s, g.Info); err != nil {
		return err
	}

	counts := []struct {
		name      string
		got, want int64
	}{
		{"wordcount", s.WordCount(), int64(res.WordCount)},
		{"synwordcount", s.SynWordCount(), int64(res.SynWordCount)},
		{"idxfilesize", s.IdxFileSize(), res.IdxFileSize},
		{"words", s.WordCount(), int64(len(g.Words))},
	}
	for _, c := range counts {
		if c.got != c.want {
			return fmt.Errorf("%w: %s is %d, want %d", ErrVerify, c.name, c.got, c.want)
		}
	}

	seq := s.SameTypeSequence()
	for _, w := range g.Words {
		if len(seq) > 0 && !slices.Equal(seq, dataTypes(w.Data)) {
			return fmt.Errorf("%w: %q does not match sametypesequence %q", ErrVerify, w.Word, string(seq))
		}
		if err := verifyLookup(s, w.Word, w); err != nil {
			return err
		}
		for _, syn := range w.Synonyms {
			if err := verifyLookup(s, syn, w); err != nil {
				return err
			}
		}
	}

	return nil
}

func verifyInfo(s *stardict.Stardict, info stardict.Info) error {
	fields := []struct {
		key, got, want string
	}{
		{"version", s.Version(), stardict.Version},
		{"bookname", s.Bookname(), info.Bookname},
		{"author", s.Author(), info.Author},
		{"email", s.Email(), info.Email},
		{"website", s.Website(), info.Website},
		{"description", s.Description(), info.Description},
		{"date", s.Date(), info.Date},
	}
	for _, f := range fields {
		if f.got != f.want {
			return fmt.Errorf("%w: %s is %q, want %q", ErrVerify, f.key, f.got, f.want)
		}
	}
	return nil
}

// verifyLookup checks that searching for query returns the article of w.
func verifyLookup(s *stardict.Stardict, query string, w *stardict.GlossaryWord) error {
	entries, err := s.Search(query)
	if err != nil {
		return fmt.Errorf("%w: searching %q: %w", ErrVerify, query, err)
	}
	for _, e := range entries {
		if e.Title() != w.Word || !equalData(e.Data(), w.Data) {
			continue
		}
		if strings.TrimSpace(strings.TrimPrefix(e.String(), e.Title())) == "" {
			return fmt.Errorf("%w: %q has no text", ErrVerify, w.Word)
		}
		return nil
	}
	return fmt.Errorf("%w: searching %q does not return the article of %q", ErrVerify, query, w.Word)
}

func dataTypes(data []*dict.Data) []dict.DataType {
	types := make([]dict.DataType, 0, len(data))
	for _, d := range data {
		types = append(types, d.Type)
	}
	return types
}

func equalData(a, b []*dict.Data) bool {
	return slices.EqualFunc(a, b, func(x, y *dict.Data) bool {
		return x.Type == y.Type && bytes.Equal(x.Data, y.Data)
	})
}
