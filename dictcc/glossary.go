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

package dictcc

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	stardict "github.com/ianlewis/dictcc-stardict"
	"github.com/ianlewis/dictcc-stardict/dict"
	"github.com/ianlewis/dictcc-stardict/idx"
	"github.com/ianlewis/dictcc-stardict/internal/folding"
)

// GlossaryOptions are options for NewGlossary.
type GlossaryOptions struct {
	// Logger receives warnings about dropped words. Defaults to a no-op
	// logger.
	Logger *zerolog.Logger
}

// NewGlossary builds a glossary from the given entries.
//
// Every lookup word of an entry's headword (see [SourceWords]) collects the
// entry's translation. Words that collect exactly the same translations are
// merged into one glossary word. The longest of them is the headword and the
// rest are synonyms. Each definition is an HTML ordered list of the
// translations.
func NewGlossary(entries []*Entry, info stardict.Info, options *GlossaryOptions) (*stardict.Glossary, error) {
	if options == nil {
		options = &GlossaryOptions{}
	}
	logger := options.Logger
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	// Words and their definition items in first-seen order.
	var words []string
	items := map[string][]string{}
	for _, e := range entries {
		headword, err := normalize(e.Headword)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", e.Line, err)
		}
		item, err := definitionItem(e)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", e.Line, err)
		}
		if item == "" {
			continue
		}

		lookup, truncated := sourceWords(headword)
		if truncated {
			logger.Warn().
				Int("line", e.Line).
				Int("max", MaxVariants).
				Msg("too many optional parts, dropping variants")
		}
		for _, w := range lookup {
			if len(w) > idx.MaxWordLength {
				logger.Warn().Int("line", e.Line).Str("word", w).Msg("dropping word longer than the index allows")
				continue
			}
			if strings.ContainsRune(w, 0) {
				logger.Warn().Int("line", e.Line).Str("word", w).Msg("dropping word containing a NUL byte")
				continue
			}
			if _, ok := items[w]; !ok {
				words = append(words, w)
			}
			items[w] = append(items[w], item)
		}
	}

	// Group words with identical definitions in first-seen order.
	var groups [][]string
	groupIndex := map[string]int{}
	for _, w := range words {
		key := strings.Join(items[w], "\x00")
		i, ok := groupIndex[key]
		if !ok {
			i = len(groups)
			groupIndex[key] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], w)
	}

	g := &stardict.Glossary{
		Info: info,
	}
	for _, group := range groups {
		longest := 0
		for i, w := range group {
			if utf8.RuneCountInString(w) > utf8.RuneCountInString(group[longest]) {
				longest = i
			}
		}

		var synonyms []string
		for i, w := range group {
			if i != longest {
				synonyms = append(synonyms, w)
			}
		}

		g.Words = append(g.Words, &stardict.GlossaryWord{
			Word:     group[longest],
			Synonyms: synonyms,
			Data: []*dict.Data{
				{
					Type: dict.HTMLType,
					Data: []byte(definition(items[group[longest]])),
				},
			},
		})
	}

	logger.Debug().
		Int("entries", len(entries)).
		Int("words", len(g.Words)).
		Int("synonyms", len(words)-len(g.Words)).
		Msg("built glossary")

	return g, nil
}

// normalize unescapes HTML entities and normalizes the text to NFC.
func normalize(s string) (string, error) {
	n, _, err := transform.String(norm.NFC, html.UnescapeString(s))
	if err != nil {
		return "", fmt.Errorf("normalizing %q: %w", s, err)
	}
	return n, nil
}

// definitionItem returns the HTML list item content for an entry. It returns
// an empty string if the translation is empty after normalization.
func definitionItem(e *Entry) (string, error) {
	translation, _, err := transform.String(folding.Text(), html.UnescapeString(e.Translation))
	if err != nil {
		return "", fmt.Errorf("normalizing %q: %w", e.Translation, err)
	}
	if translation == "" {
		return "", nil
	}

	item := html.EscapeString(translation)
	if pos := strings.TrimSpace(e.PartOfSpeech); pos != "" {
		item += " <i>" + html.EscapeString(pos) + "</i>"
	}
	return item, nil
}

func definition(items []string) string {
	var b strings.Builder
	b.WriteString("<ol>")
	for _, item := range items {
		b.WriteString("<li>")
		b.WriteString(item)
		b.WriteString("</li>")
	}
	b.WriteString("</ol>")
	return b.String()
}
