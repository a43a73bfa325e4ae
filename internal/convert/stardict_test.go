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
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	stardict "github.com/ianlewis/dictcc-stardict"
	"github.com/ianlewis/dictcc-stardict/dict"
	"github.com/ianlewis/dictcc-stardict/dictcc"
)

func TestNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		meta *Metadata

		expectedBaseName    string
		expectedTitle       string
		expectedDescription string
	}{
		{
			meta:                &Metadata{SourceLang: "de", TargetLang: "en"},
			expectedBaseName:    "dictcc_de-en",
			expectedTitle:       "dict.cc DE-EN",
			expectedDescription: "German-English dictionary converted from dict.cc",
		},
		{
			meta:                &Metadata{SourceLang: "es"},
			expectedBaseName:    "dictcc_es",
			expectedTitle:       "dict.cc ES",
			expectedDescription: "Spanish dictionary converted from dict.cc",
		},
		{
			meta:                &Metadata{SourceLang: "en", TargetLang: "zz!"},
			expectedBaseName:    "dictcc_en-zz!",
			expectedTitle:       "dict.cc EN-ZZ!",
			expectedDescription: "English-ZZ! dictionary converted from dict.cc",
		},
	}

	for _, test := range tests {
		if got := BaseName(test.meta); got != test.expectedBaseName {
			t.Errorf("BaseName(%v): want: %q, got: %q", test.meta, test.expectedBaseName, got)
		}
		if got := Title(test.meta); got != test.expectedTitle {
			t.Errorf("Title(%v): want: %q, got: %q", test.meta, test.expectedTitle, got)
		}
		if got := Description(test.meta); got != test.expectedDescription {
			t.Errorf("Description(%v): want: %q, got: %q", test.meta, test.expectedDescription, got)
		}
	}
}

func TestStarDictEmitter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		dictZip bool

		expectedFiles []string
	}{
		{
			name:          "dictzip",
			dictZip:       true,
			expectedFiles: []string{"dictcc_en-es.ifo", "dictcc_en-es.idx", "dictcc_en-es.dict.dz", "dictcc_en-es.syn"},
		},
		{
			name:          "no dictzip",
			expectedFiles: []string{"dictcc_en-es.ifo", "dictcc_en-es.idx", "dictcc_en-es.dict", "dictcc_en-es.syn"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			input := writeInput(t, "# EN-ES vocabulary database\n(to) go\tir\tverb\nhello\thola\n# comment\nbye\tadios\n")
			outDir := t.TempDir()

			e := &StarDictEmitter{
				OutputDir: outDir,
				DictZip:   test.dictZip,
				Info: stardict.Info{
					Author: "dict.cc",
				},
				Now: func() time.Time {
					return time.Date(2026, time.January, 2, 3, 4, 5, 0, time.UTC)
				},
			}
			res, err := Convert(input, e, &Options{SourceLang: "en"})
			if err != nil {
				t.Fatalf("Convert: %v", err)
			}
			if got, want := res.Entries, 3; got != want {
				t.Errorf("Entries: want: %d, got: %d", want, got)
			}

			wantIfo := filepath.Join(outDir, "dictcc_en-es", "dictcc_en-es.ifo")
			if got := e.IfoPath(); got != wantIfo {
				t.Errorf("IfoPath: want: %q, got: %q", wantIfo, got)
			}

			wr := e.Result()
			var files []string
			for _, f := range wr.Files {
				if _, err := os.Stat(f); err != nil {
					t.Errorf("Stat: %v", err)
				}
				files = append(files, filepath.Base(f))
			}
			if diff := cmp.Diff(test.expectedFiles, files); diff != "" {
				t.Errorf("Files (-want, +got):\n%s", diff)
			}
			if got, want := wr.WordCount, 3; got != want {
				t.Errorf("WordCount: want: %d, got: %d", want, got)
			}
			if got, want := wr.SynWordCount, 1; got != want {
				t.Errorf("SynWordCount: want: %d, got: %d", want, got)
			}

			if err := e.Verify(); err != nil {
				t.Errorf("Verify: %v", err)
			}

			s, err := stardict.Open(e.IfoPath(), nil)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer s.Close()

			info := stardict.Info{
				Bookname:    s.Bookname(),
				Author:      s.Author(),
				Description: s.Description(),
				Date:        s.Date(),
			}
			wantInfo := stardict.Info{
				Bookname:    "dict.cc EN-ES",
				Author:      "dict.cc",
				Description: "English-Spanish dictionary converted from dict.cc",
				Date:        "2026-01-02",
			}
			if diff := cmp.Diff(wantInfo, info); diff != "" {
				t.Errorf("Info (-want, +got):\n%s", diff)
			}

			entries, err := s.Search("go")
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if len(entries) != 1 || entries[0].Title() != "to go" {
				t.Errorf("Search(%q): unexpected entries %v", "go", entries)
			}
		})
	}
}

func TestStarDictEmitter_missingSourceLang(t *testing.T) {
	t.Parallel()

	e := &StarDictEmitter{OutputDir: t.TempDir()}
	err := e.Emit([]*dictcc.Entry{{Headword: "a", Translation: "b"}}, &Metadata{})
	if !errors.Is(err, ErrMissingSourceLang) {
		t.Errorf("Emit: want: %v, got: %v", ErrMissingSourceLang, err)
	}
}

func TestVerify_mismatch(t *testing.T) {
	t.Parallel()

	entries := []*dictcc.Entry{
		{Headword: "(to) go", Translation: "ir", Line: 1},
		{Headword: "hello", Translation: "hola", Line: 2},
	}

	tests := []struct {
		name   string
		modify func(g *stardict.Glossary, res *stardict.WriteResult)
	}{
		{
			name: "article changed",
			modify: func(g *stardict.Glossary, _ *stardict.WriteResult) {
				g.Words[1].Data = []*dict.Data{{Type: dict.HTMLType, Data: []byte("<ol><li>adiós</li></ol>")}}
			},
		},
		{
			name: "synonym of another word",
			modify: func(g *stardict.Glossary, _ *stardict.WriteResult) {
				g.Words[0].Synonyms, g.Words[1].Synonyms = nil, g.Words[0].Synonyms
			},
		},
		{
			name: "missing word",
			modify: func(g *stardict.Glossary, _ *stardict.WriteResult) {
				g.Words = append(g.Words, &stardict.GlossaryWord{Word: "bye"})
			},
		},
		{
			name: "word count",
			modify: func(_ *stardict.Glossary, res *stardict.WriteResult) {
				res.WordCount++
			},
		},
		{
			name: "metadata",
			modify: func(g *stardict.Glossary, _ *stardict.WriteResult) {
				g.Info.Author = "someone else"
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			e := &StarDictEmitter{OutputDir: t.TempDir()}
			if err := e.Emit(entries, &Metadata{SourceLang: "en", TargetLang: "es"}); err != nil {
				t.Fatalf("Emit: %v", err)
			}
			if err := e.Verify(); err != nil {
				t.Fatalf("Verify: %v", err)
			}

			g := *e.glossary
			g.Words = nil
			for _, w := range e.glossary.Words {
				c := *w
				g.Words = append(g.Words, &c)
			}
			res := *e.Result()
			test.modify(&g, &res)

			if err := Verify(e.IfoPath(), &g, &res); !errors.Is(err, ErrVerify) {
				t.Errorf("Verify: want: %v, got: %v", ErrVerify, err)
			}
		})
	}
}

func TestVerify_errors(t *testing.T) {
	t.Parallel()

	if err := (&StarDictEmitter{}).Verify(); !errors.Is(err, ErrVerify) {
		t.Errorf("Verify: want: %v, got: %v", ErrVerify, err)
	}

	g := &stardict.Glossary{Info: stardict.Info{Bookname: "missing"}}
	if err := Verify(filepath.Join(t.TempDir(), "missing.ifo"), g, &stardict.WriteResult{}); !errors.Is(err, ErrVerify) {
		t.Errorf("Verify: want: %v, got: %v", ErrVerify, err)
	}
}
