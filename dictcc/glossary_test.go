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

package dictcc_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	stardict "github.com/ianlewis/dictcc-stardict"
	"github.com/ianlewis/dictcc-stardict/dict"
	"github.com/ianlewis/dictcc-stardict/dictcc"
)

func htmlData(s string) []*dict.Data {
	return []*dict.Data{
		{
			Type: dict.HTMLType,
			Data: []byte(s),
		},
	}
}

func TestNewGlossary(t *testing.T) {
	t.Parallel()

	info := stardict.Info{
		Bookname: "dict.cc DE-EN",
		Date:     "2026-01-02",
	}

	tests := []struct {
		name     string
		entries  []*dictcc.Entry
		expected []*stardict.GlossaryWord
	}{
		{
			name: "empty",
		},
		{
			name: "translations collected",
			entries: []*dictcc.Entry{
				{Headword: "Haus {n}", Translation: "house", PartOfSpeech: "noun", Line: 1},
				{Headword: "Haus {n}", Translation: "home", Line: 2},
			},
			expected: []*stardict.GlossaryWord{
				{
					Word: "Haus",
					Data: htmlData("<ol><li>house <i>noun</i></li><li>home</li></ol>"),
				},
			},
		},
		{
			name: "optional parts become synonyms",
			entries: []*dictcc.Entry{
				{Headword: "(to) go", Translation: "gehen", PartOfSpeech: "verb", Line: 1},
			},
			expected: []*stardict.GlossaryWord{
				{
					Word:     "to go",
					Synonyms: []string{"go"},
					Data:     htmlData("<ol><li>gehen <i>verb</i></li></ol>"),
				},
			},
		},
		{
			name: "different definitions are not merged",
			entries: []*dictcc.Entry{
				{Headword: "(to) go", Translation: "gehen", Line: 1},
				{Headword: "go", Translation: "Go", Line: 2},
			},
			expected: []*stardict.GlossaryWord{
				{
					Word: "to go",
					Data: htmlData("<ol><li>gehen</li></ol>"),
				},
				{
					Word: "go",
					Data: htmlData("<ol><li>gehen</li><li>Go</li></ol>"),
				},
			},
		},
		{
			name: "first seen wins ties",
			entries: []*dictcc.Entry{
				{Headword: "foo", Translation: "x", Line: 1},
				{Headword: "bar", Translation: "x", Line: 2},
			},
			expected: []*stardict.GlossaryWord{
				{
					Word:     "foo",
					Synonyms: []string{"bar"},
					Data:     htmlData("<ol><li>x</li></ol>"),
				},
			},
		},
		{
			name: "html",
			entries: []*dictcc.Entry{
				{Headword: "Tom &amp; Jerry", Translation: "a <b>", Line: 1},
			},
			expected: []*stardict.GlossaryWord{
				{
					Word: "Tom & Jerry",
					Data: htmlData("<ol><li>a &lt;b&gt;</li></ol>"),
				},
			},
		},
		{
			name: "normalized",
			entries: []*dictcc.Entry{
				{Headword: "Cafe\u0301", Translation: " big    house ", Line: 1},
			},
			expected: []*stardict.GlossaryWord{
				{
					Word: "Caf\u00e9",
					Data: htmlData("<ol><li>big house</li></ol>"),
				},
			},
		},
		{
			name: "dropped",
			entries: []*dictcc.Entry{
				{Headword: "space", Translation: "&#32;", Line: 1},
				{Headword: "[coll.]", Translation: "comment", Line: 2},
				{Headword: strings.Repeat("a", 256), Translation: "long", Line: 3},
				{Headword: "ba\x00d", Translation: "malo", Line: 4},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			g, err := dictcc.NewGlossary(test.entries, info, nil)
			if err != nil {
				t.Fatalf("NewGlossary: %v", err)
			}
			if diff := cmp.Diff(info, g.Info); diff != "" {
				t.Errorf("Info (-want, +got):\n%s", diff)
			}
			if diff := cmp.Diff(test.expected, g.Words); diff != "" {
				t.Errorf("Words (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestNewGlossary_roundTrip(t *testing.T) {
	t.Parallel()

	entries, err := dictcc.Parse(strings.NewReader("# DE-EN vocabulary database\nHaus {n}\thouse\tnoun\n(etw.) merken\tto remember sth.\tverb\n"), &dictcc.ScannerOptions{
		SourceLang: "de",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	g, err := dictcc.NewGlossary(entries, stardict.Info{Bookname: "test"}, nil)
	if err != nil {
		t.Fatalf("NewGlossary: %v", err)
	}

	ifoPath := filepath.Join(t.TempDir(), "test.ifo")
	if _, err := stardict.Write(ifoPath, g, &stardict.WriteOptions{
		DictZip:          true,
		SameTypeSequence: []dict.DataType{dict.HTMLType},
	}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	s, err := stardict.Open(ifoPath, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	for query, expected := range map[string]string{
		"haus":        "<ol><li>house <i>noun</i></li></ol>",
		"merken":      "<ol><li>to remember sth. <i>verb</i></li></ol>",
		"etw. merken": "<ol><li>to remember sth. <i>verb</i></li></ol>",
	} {
		results, err := s.Search(query)
		if err != nil {
			t.Fatalf("Search(%q): %v", query, err)
		}
		if len(results) != 1 {
			t.Fatalf("Search(%q): want 1 result, got %d", query, len(results))
		}
		if diff := cmp.Diff(htmlData(expected), results[0].Data()); diff != "" {
			t.Errorf("Search(%q) (-want, +got):\n%s", query, diff)
		}
	}
}

func TestNewGlossary_logsDroppedWords(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	entries := []*dictcc.Entry{
		{Headword: "ba\x00d", Translation: "malo", Line: 1},
		{Headword: strings.Repeat("(x) ", 8) + "y", Translation: "many", Line: 2},
		{Headword: "good", Translation: "bueno", Line: 3},
	}
	g, err := dictcc.NewGlossary(entries, stardict.Info{Bookname: "test"}, &dictcc.GlossaryOptions{
		Logger: &logger,
	})
	if err != nil {
		t.Fatalf("NewGlossary: %v", err)
	}

	var words []string
	for _, w := range g.Words {
		words = append(words, w.Word)
		for _, syn := range w.Synonyms {
			if strings.ContainsRune(syn, 0) {
				t.Errorf("synonym %q contains a NUL byte", syn)
			}
		}
	}
	if len(words) != 2 || words[1] != "good" {
		t.Errorf("Words: want 2 words ending with %q, got %q", "good", words)
	}

	out := buf.String()
	for _, want := range []string{"dropping word containing a NUL byte", "too many optional parts"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q does not contain %q", out, want)
		}
	}
}
