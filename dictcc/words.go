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
	"strings"
)

// TokenKind is the kind of a field token.
type TokenKind int

const (
	// WordToken is a run of text outside of brackets.
	WordToken TokenKind = iota

	// OptionalToken is text in round brackets, e.g. "(to)". It marks an
	// optional part of the headword.
	OptionalToken

	// CommentToken is text in square brackets, e.g. "[coll.]".
	CommentToken

	// GrammarToken is text in curly brackets, e.g. "{n}".
	GrammarToken

	// AbbreviationToken is text in angle brackets, e.g. "<Hbf.>".
	AbbreviationToken
)

// Token is a part of a dict.cc field.
type Token struct {
	Kind TokenKind

	// Value is the token text without the enclosing brackets.
	Value string
}

var brackets = map[byte]struct {
	close byte
	kind  TokenKind
}{
	'(': {')', OptionalToken},
	'[': {']', CommentToken},
	'{': {'}', GrammarToken},
	'<': {'>', AbbreviationToken},
}

// Tokenize splits a dict.cc field into words and bracket groups. Brackets of
// the same kind may be nested. Tokenizing stops at an opening bracket that is
// never closed.
func Tokenize(field string) []Token {
	var tokens []Token
	i := 0
	for i < len(field) {
		c := field[i]
		if c == ' ' {
			i++
			continue
		}

		if b, ok := brackets[c]; ok {
			end := matchBracket(field, i, c, b.close)
			if end < 0 {
				break
			}
			tokens = append(tokens, Token{
				Kind:  b.kind,
				Value: field[i+1 : end],
			})
			i = end + 1
			continue
		}

		j := i
		for j < len(field) && field[j] != ' ' && !isOpenBracket(field[j]) {
			j++
		}
		tokens = append(tokens, Token{
			Kind:  WordToken,
			Value: field[i:j],
		})
		i = j
	}
	return tokens
}

func isOpenBracket(c byte) bool {
	_, ok := brackets[c]
	return ok
}

// matchBracket returns the index of the bracket closing the one at start or
// -1 if there is none.
func matchBracket(s string, start int, open, closing byte) int {
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// MaxVariants is the maximum number of variants SourceWords builds for one
// headword field.
const MaxVariants = 64

// SourceWords returns the lookup words for a dict.cc headword field. Text in
// round brackets is optional so each optional part adds variants with and
// without it. Comments, grammar tags and abbreviations are dropped. Words are
// whitespace folded and returned in first-seen order without duplicates.
// Once MaxVariants variants exist further optional parts only extend the
// variants built so far in their absence.
//
// For example "(to) go [coll.]" returns "to go" and "go".
func SourceWords(field string) []string {
	words, _ := sourceWords(field)
	return words
}

// sourceWords is SourceWords that also reports whether variants were dropped
// because of MaxVariants.
func sourceWords(field string) ([]string, bool) {
	var variants []string
	truncated := false
	for _, t := range Tokenize(field) {
		switch t.Kind {
		case WordToken:
			if variants == nil {
				variants = []string{t.Value}
				continue
			}
			for i := range variants {
				variants[i] += " " + t.Value
			}
		case OptionalToken:
			if variants == nil {
				variants = []string{t.Value, ""}
				continue
			}
			for _, v := range variants {
				if len(variants) >= MaxVariants {
					truncated = true
					break
				}
				variants = append(variants, v+" "+t.Value)
			}
		case CommentToken, GrammarToken, AbbreviationToken:
		}
	}

	var words []string
	seen := map[string]bool{}
	for _, v := range variants {
		w := strings.Join(strings.Fields(v), " ")
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		words = append(words, w)
	}
	return words, truncated
}
