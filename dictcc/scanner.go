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
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"
)

var (
	// ErrMalformedLine indicates a line without a tab separator or with a NUL
	// byte. Malformed lines are skipped.
	ErrMalformedLine = errors.New("malformed line")

	// ErrUnsupportedLanguage indicates that the requested source language is
	// not one of the languages of the export.
	ErrUnsupportedLanguage = errors.New("unsupported source language")
)

// maxLineSize is the longest line the scanner accepts.
const maxLineSize = 1024 * 1024

const byteOrderMark = "\ufeff"

// Entry is a single translation pair.
type Entry struct {
	// Headword is the text in the source language.
	Headword string

	// Translation is the text in the target language.
	Translation string

	// PartOfSpeech is the optional word class, e.g. "noun" or "verb".
	PartOfSpeech string

	// Line is the 1-based line number the entry was read from.
	Line int
}

// LanguagePair is the pair of languages of a dict.cc export.
type LanguagePair struct {
	// From is the lower case code of the source language.
	From string

	// To is the lower case code of the target language.
	To string
}

// String returns the pair in dict.cc notation, e.g. "DE-EN".
func (p *LanguagePair) String() string {
	return strings.ToUpper(p.From) + "-" + strings.ToUpper(p.To)
}

// headerMarker follows the language pair in dict.cc export headers.
const headerMarker = "vocabulary database"

// ParseLanguagePair parses the language pair from a dict.cc header comment
// such as "# DE-EN vocabulary database". It returns nil if the line is not a
// header. Both codes must be valid ISO 639 base languages.
func ParseLanguagePair(line string) *LanguagePair {
	line = strings.TrimPrefix(strings.TrimSpace(line), byteOrderMark)
	rest, ok := strings.CutPrefix(line, "#")
	if !ok || !strings.Contains(strings.ToLower(rest), headerMarker) {
		return nil
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return nil
	}
	from, to, ok := strings.Cut(fields[0], "-")
	if !ok || !isLangCode(from) || !isLangCode(to) {
		return nil
	}
	return &LanguagePair{
		From: strings.ToLower(from),
		To:   strings.ToLower(to),
	}
}

func isLangCode(s string) bool {
	if len(s) < 2 || len(s) > 3 {
		return false
	}
	for _, c := range s {
		if ('a' > c || c > 'z') && ('A' > c || c > 'Z') {
			return false
		}
	}
	_, err := language.ParseBase(strings.ToLower(s))
	return err == nil
}

// ScannerOptions are options for a Scanner.
type ScannerOptions struct {
	// SourceLang is the language of the headwords. If it is the second
	// language of the export's language pair then headwords and translations
	// are swapped. If empty, entries are read in the file's direction.
	SourceLang string

	// Logger receives warnings about skipped lines. Defaults to a no-op
	// logger.
	Logger *zerolog.Logger
}

// Scanner reads entries from a dict.cc export.
type Scanner struct {
	s          *bufio.Scanner
	logger     *zerolog.Logger
	sourceLang string

	line    int
	entry   *Entry
	pair    *LanguagePair
	swap    bool
	started bool
	skipped int
	err     error
}

// NewScanner returns a new Scanner that reads from r.
func NewScanner(r io.Reader, options *ScannerOptions) *Scanner {
	if options == nil {
		options = &ScannerOptions{}
	}
	logger := options.Logger
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	return &Scanner{
		s:          s,
		logger:     logger,
		sourceLang: strings.ToLower(strings.TrimSpace(options.SourceLang)),
	}
}

// Scan advances the scanner to the next entry. It returns false when the
// input is exhausted or a fatal error occurs.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}

	for s.s.Scan() {
		s.line++
		line := s.s.Text()
		if s.line == 1 {
			line = strings.TrimPrefix(line, byteOrderMark)
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if !s.started {
			s.started = true
			if err := s.header(trimmed); err != nil {
				s.err = err
				return false
			}
		}

		if strings.HasPrefix(trimmed, "#") {
			continue
		}

		if e := s.parseLine(line); e != nil {
			s.entry = e
			return true
		}
		s.skipped++
	}

	if err := s.s.Err(); err != nil {
		s.err = fmt.Errorf("reading line %d: %w", s.line+1, err)
	}
	s.entry = nil
	return false
}

// header reads the language pair from the first non-blank line and decides
// the direction of the entries.
func (s *Scanner) header(line string) error {
	s.pair = ParseLanguagePair(line)
	if s.pair == nil || s.sourceLang == "" {
		return nil
	}

	switch s.sourceLang {
	case s.pair.From:
	case s.pair.To:
		s.swap = true
		s.pair = &LanguagePair{
			From: s.pair.To,
			To:   s.pair.From,
		}
	default:
		return fmt.Errorf("%w: %q: available are %q and %q",
			ErrUnsupportedLanguage, s.sourceLang, s.pair.From, s.pair.To)
	}

	s.logger.Debug().Str("pair", s.pair.String()).Bool("swapped", s.swap).Msg("read language pair")
	return nil
}

func (s *Scanner) parseLine(line string) *Entry {
	fields := strings.Split(line, "\t")
	if len(fields) < 2 {
		s.logger.Warn().Err(ErrMalformedLine).Int("line", s.line).Msg("skipping line without tab separator")
		return nil
	}
	if strings.ContainsRune(line, 0) {
		s.logger.Warn().Err(ErrMalformedLine).Int("line", s.line).Msg("skipping line containing a NUL byte")
		return nil
	}

	e := &Entry{
		Headword:    strings.TrimSpace(fields[0]),
		Translation: strings.TrimSpace(fields[1]),
		Line:        s.line,
	}
	if len(fields) > 2 {
		e.PartOfSpeech = strings.TrimSpace(fields[2])
	}
	if s.swap {
		e.Headword, e.Translation = e.Translation, e.Headword
	}

	if e.Headword == "" || e.Translation == "" {
		s.logger.Debug().Int("line", s.line).Msg("skipping line with empty field")
		return nil
	}
	return e
}

// Entry returns the current entry.
func (s *Scanner) Entry() *Entry {
	return s.entry
}

// Err returns the first fatal error encountered by the scanner.
func (s *Scanner) Err() error {
	return s.err
}

// Pair returns the language pair of the export in conversion direction.
// From is the language of the headwords. Pair returns nil if the export has
// no header.
func (s *Scanner) Pair() *LanguagePair {
	return s.pair
}

// Skipped returns the number of non-comment lines that produced no entry.
func (s *Scanner) Skipped() int {
	return s.skipped
}

// Lines returns the number of lines read so far.
func (s *Scanner) Lines() int {
	return s.line
}

// Parse reads all entries from r.
func Parse(r io.Reader, options *ScannerOptions) ([]*Entry, error) {
	s := NewScanner(r, options)
	var entries []*Entry
	for s.Scan() {
		entries = append(entries, s.Entry())
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
