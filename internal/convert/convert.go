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

// Package convert converts dict.cc exports using an Emitter.
package convert

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ianlewis/dictcc-stardict/dictcc"
)

var (
	// ErrInputNotFound indicates that the input file does not exist.
	ErrInputNotFound = errors.New("input not found")

	// ErrInputUnreadable indicates that the input file could not be opened or
	// read.
	ErrInputUnreadable = errors.New("input unreadable")

	// ErrEmitter indicates that the emitter failed to write the dictionary.
	ErrEmitter = errors.New("emitter failure")
)

// Metadata describes the entries passed to an Emitter.
type Metadata struct {
	// SourceLang is the lower case language code of the headwords.
	SourceLang string

	// TargetLang is the lower case language code of the translations. It may
	// be empty if it is unknown.
	TargetLang string
}

// Emitter writes parsed entries to a dictionary.
type Emitter interface {
	Emit(entries []*dictcc.Entry, meta *Metadata) error
}

// Options are options for Convert.
type Options struct {
	// SourceLang is the source language code. Required.
	SourceLang string

	// TargetLang is the target language code. It is used when the input has
	// no language pair header.
	TargetLang string

	// Logger defaults to a no-op logger.
	Logger *zerolog.Logger
}

// Result is the result of a conversion.
type Result struct {
	Metadata *Metadata

	// Entries is the number of entries passed to the emitter.
	Entries int

	// Lines is the number of input lines read.
	Lines int

	// Skipped is the number of non-comment lines that produced no entry.
	Skipped int
}

// Convert parses the dict.cc export at path and passes the entries to e.
func Convert(path string, e Emitter, options *Options) (*Result, error) {
	if options == nil {
		options = &Options{}
	}
	logger := options.Logger
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %w", ErrInputNotFound, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInputUnreadable, err)
	}
	defer f.Close()

	logger.Info().Str("file", path).Msg("parsing input")

	s := dictcc.NewScanner(f, &dictcc.ScannerOptions{
		SourceLang: options.SourceLang,
		Logger:     logger,
	})
	var entries []*dictcc.Entry
	for s.Scan() {
		entries = append(entries, s.Entry())
	}
	if err := s.Err(); err != nil {
		if errors.Is(err, dictcc.ErrUnsupportedLanguage) {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrInputUnreadable, err)
	}

	meta := &Metadata{
		SourceLang: strings.ToLower(strings.TrimSpace(options.SourceLang)),
		TargetLang: strings.ToLower(strings.TrimSpace(options.TargetLang)),
	}
	if p := s.Pair(); p != nil {
		if meta.SourceLang == "" {
			meta.SourceLang = p.From
		}
		meta.TargetLang = p.To
	}

	logger.Info().
		Int("entries", len(entries)).
		Int("skipped", s.Skipped()).
		Int("lines", s.Lines()).
		Msg("parsed input")

	if err := e.Emit(entries, meta); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmitter, err)
	}

	return &Result{
		Metadata: meta,
		Entries:  len(entries),
		Lines:    s.Lines(),
		Skipped:  s.Skipped(),
	}, nil
}
