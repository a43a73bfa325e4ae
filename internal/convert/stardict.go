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
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	stardict "github.com/ianlewis/dictcc-stardict"
	"github.com/ianlewis/dictcc-stardict/dict"
	"github.com/ianlewis/dictcc-stardict/dictcc"
)

// ErrMissingSourceLang indicates that the metadata has no source language.
var ErrMissingSourceLang = errors.New("missing source language")

// StarDictEmitter writes entries as a StarDict dictionary.
type StarDictEmitter struct {
	// OutputDir is the directory the dictionary directory is created in.
	OutputDir string

	// DictZip compresses the .dict file.
	DictZip bool

	// Info overrides the generated dictionary metadata. Empty fields are
	// generated.
	Info stardict.Info

	// Now returns the dictionary creation time. Defaults to time.Now.
	Now func() time.Time

	// Logger defaults to a no-op logger.
	Logger *zerolog.Logger

	ifoPath  string
	glossary *stardict.Glossary
	result   *stardict.WriteResult
}

// BaseName returns the base file name for a dictionary, e.g. "dictcc_de-en".
func BaseName(meta *Metadata) string {
	name := "dictcc_" + meta.SourceLang
	if meta.TargetLang != "" {
		name += "-" + meta.TargetLang
	}
	return name
}

// Title returns the dictionary title, e.g. "dict.cc DE-EN".
func Title(meta *Metadata) string {
	title := "dict.cc " + strings.ToUpper(meta.SourceLang)
	if meta.TargetLang != "" {
		title += "-" + strings.ToUpper(meta.TargetLang)
	}
	return title
}

// Description returns a description of the dictionary using English language
// names, e.g. "German-English dictionary converted from dict.cc".
func Description(meta *Metadata) string {
	name := languageName(meta.SourceLang)
	if meta.TargetLang != "" {
		name += "-" + languageName(meta.TargetLang)
	}
	return name + " dictionary converted from dict.cc"
}

func languageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return strings.ToUpper(code)
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return strings.ToUpper(code)
}

// Emit implements [Emitter.Emit].
func (e *StarDictEmitter) Emit(entries []*dictcc.Entry, meta *Metadata) error {
	if meta.SourceLang == "" {
		return ErrMissingSourceLang
	}
	logger := e.Logger
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}

	info := e.Info
	if info.Bookname == "" {
		info.Bookname = Title(meta)
	}
	if info.Description == "" {
		info.Description = Description(meta)
	}
	if info.Date == "" {
		info.Date = now().Format(time.DateOnly)
	}

	g, err := dictcc.NewGlossary(entries, info, &dictcc.GlossaryOptions{
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("building glossary: %w", err)
	}

	base := BaseName(meta)
	ifoPath := filepath.Join(e.OutputDir, base, base+".ifo")

	logger.Info().Str("path", ifoPath).Int("words", len(g.Words)).Msg("writing dictionary")

	res, err := stardict.Write(ifoPath, g, &stardict.WriteOptions{
		DictZip:          e.DictZip,
		SameTypeSequence: []dict.DataType{dict.HTMLType},
	})
	if err != nil {
		return fmt.Errorf("writing dictionary: %w", err)
	}

	e.ifoPath = ifoPath
	e.glossary = g
	e.result = res
	return nil
}

// IfoPath returns the path of the last written .ifo file.
func (e *StarDictEmitter) IfoPath() string {
	return e.ifoPath
}

// Result returns the result of the last write or nil.
func (e *StarDictEmitter) Result() *stardict.WriteResult {
	return e.result
}

// Verify checks the last written dictionary with [Verify].
func (e *StarDictEmitter) Verify() error {
	if e.result == nil {
		return fmt.Errorf("%w: nothing written", ErrVerify)
	}
	return Verify(e.ifoPath, e.glossary, e.result)
}
