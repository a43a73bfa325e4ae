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

// Package folding implements text folding transformers used for index
// searches and for normalizing dictionary source text.
package folding

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Search returns a transformer used to fold index words and queries. It removes
// diacritics and punctuation, performs Unicode case folding and folds
// whitespace.
func Search() transform.Transformer {
	return transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.In(unicode.P)),
		norm.NFC,
		cases.Fold(),
		Whitespace(),
	)
}

// Text returns a transformer that normalizes text to NFC and folds whitespace
// but otherwise keeps it intact.
func Text() transform.Transformer {
	return transform.Chain(
		norm.NFC,
		Whitespace(),
	)
}
