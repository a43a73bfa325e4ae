// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package dict implements reading and writing .dict files.
package dict

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/ianlewis/go-dictzip"
	"github.com/k3a/html2text"

	"github.com/ianlewis/dictcc-stardict/idx"
	"github.com/ianlewis/dictcc-stardict/internal/companion"
)

var (
	errInvalidType        = errors.New("invalid type")
	errWordOffsetTooLarge = errors.New("word offset too large")

	// ErrInvalidData indicates that word data in the .dict file is malformed.
	ErrInvalidData = errors.New("invalid word data")
)

// Dict represents a Stardict dictionary's dictionary data.
type Dict struct {
	r                io.ReaderAt
	closers          []io.Closer
	sametypesequence []DataType
}

// Word is a full dictionary entry.
type Word struct {
	Data []*Data
}

// DataType is a type of data in a word. Data types are specified by a single
// byte at the beginning of a word. Lower case characters represent string-like
// data that is terminated by a null terminator ('\0'). Upper case characters
// represent file-like data that starts with a 32-bit size followed by file
// data.
type DataType byte

const (
	// UTFTextType is utf-8 text.
	UTFTextType = DataType('m')

	// LocaleTextType is text in a locale encoding.
	LocaleTextType = DataType('l')

	// PangoTextType is utf-8 text in the Pango text format.
	PangoTextType = DataType('g')

	// PhoneticType is utf-8 text representing an English phonetic string.
	PhoneticType = DataType('t')

	// XDXFType is utf-8 encoded xml in XDXF format.
	XDXFType = DataType('x')

	// YinBiaoOrKataType is utf-8 encoded Yin Biao or Kana phonetic string.
	YinBiaoOrKataType = DataType('y')

	// PowerWordType is a utf-8 encoded KingSoft PowerWord XML format.
	PowerWordType = DataType('p')

	// MediaWikiType is utf-8 encoded text in MediaWiki format.
	MediaWikiType = DataType('w')

	// HTMLType is utf-8 encoded HTML text.
	HTMLType = DataType('h')

	// WordNetType is WordNet data.
	WordNetType = DataType('n')

	// ResourceFileListType is a list of files in resource storage.
	ResourceFileListType = DataType('r')

	// WavType is .wav sound file data.
	WavType = DataType('W')

	// PictureType is image file data. This was used by the
	// stardict-advertisement-plugin. Images are better stored in a resource
	// file list.
	PictureType = DataType('P')

	// ExperimentalType is reserved for experimental features.
	ExperimentalType = DataType('X')
)

// IsString returns true if the data type is string-like.
func (t DataType) IsString() bool {
	return 'a' <= t && t <= 'z'
}

// Valid returns true if t is a known data type.
func (t DataType) Valid() bool {
	switch t {
	case UTFTextType,
		LocaleTextType,
		PangoTextType,
		PhoneticType,
		XDXFType,
		YinBiaoOrKataType,
		PowerWordType,
		MediaWikiType,
		HTMLType,
		WordNetType,
		ResourceFileListType,
		WavType,
		PictureType,
		ExperimentalType:
		return true
	default:
		return false
	}
}

// Data is a data entry in a Word.
type Data struct {
	Type DataType
	Data []byte
}

// String returns a plain text representation of text data. Data types that
// are not text return an empty string.
func (d *Data) String() string {
	switch d.Type {
	case UTFTextType, PhoneticType, YinBiaoOrKataType:
		return string(d.Data)
	case HTMLType:
		return html2text.HTML2Text(string(d.Data))
	default:
		// TODO: Render XDXF and the other markup formats as text.
		return ""
	}
}

// Options are options for reading and writing dict data.
type Options struct {
	// SameTypeSequence is the sametypesequence option from the .ifo file.
	SameTypeSequence []DataType
}

// DefaultOptions is the default options for a Dict.
var DefaultOptions = &Options{}

func validateSequence(sametypesequence []DataType) error {
	for _, s := range sametypesequence {
		if !s.Valid() {
			return fmt.Errorf("%w: %v", errInvalidType, s)
		}
	}
	return nil
}

// New returns a new Dict from the given reader. If r implements io.Closer the
// Dict takes ownership of the reader and it can be closed via the Dict's Close
// method.
func New(r io.ReaderAt, options *Options) (*Dict, error) {
	if options == nil {
		options = DefaultOptions
	}

	if err := validateSequence(options.SameTypeSequence); err != nil {
		return nil, err
	}

	d := &Dict{
		r:                r,
		sametypesequence: options.SameTypeSequence,
	}
	if c, ok := r.(io.Closer); ok {
		d.closers = append(d.closers, c)
	}
	return d, nil
}

// NewFromIfoPath returns a new Dict for the .dict or .dict.dz file next to the
// given .ifo file.
func NewFromIfoPath(ifoPath string, options *Options) (*Dict, error) {
	f, err := companion.Open(ifoPath, ".dict", ".dz", "")
	if err != nil {
		return nil, err
	}

	if !companion.IsCompressed(f.Name()) {
		return New(f, options)
	}

	z, err := dictzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("creating dictzip reader: %w", err)
	}
	d, err := New(z, options)
	if err != nil {
		_ = z.Close()
		_ = f.Close()
		return nil, err
	}
	d.closers = append(d.closers, f)
	return d, nil
}

// Word retrieves the word for the given index entry from the
// dictionary.
func (d *Dict) Word(e *idx.Word) (*Word, error) {
	b := make([]byte, e.Size)
	// TODO: Support word offsets between math.MaxInt64 and math.MaxUint64.
	if e.Offset > math.MaxInt64 {
		return nil, fmt.Errorf("%w: %d", errWordOffsetTooLarge, e.Offset)
	}
	//nolint:gosec // offset size is bounds checked above.
	n, err := d.r.ReadAt(b, int64(e.Offset))
	// ReadAt may return io.EOF along with a full read at the end of the file.
	if err != nil && (!errors.Is(err, io.EOF) || n < len(b)) {
		return nil, fmt.Errorf("reading dictionary: %w", err)
	}

	if len(d.sametypesequence) > 0 {
		return d.sameTypeWord(b)
	}
	return d.typedWord(b)
}

// sameTypeWord parses word data when the sametypesequence is set. Type bytes
// are omitted and the last item has no terminator or size.
func (d *Dict) sameTypeWord(b []byte) (*Word, error) {
	var wordData []*Data
	for i, t := range d.sametypesequence {
		var data []byte
		switch {
		case i == len(d.sametypesequence)-1:
			data = b
			b = nil
		case t.IsString():
			j := bytes.IndexByte(b, 0)
			if j < 0 {
				return nil, fmt.Errorf("%w: missing terminator", ErrInvalidData)
			}
			data = b[:j]
			b = b[j+1:]
		default:
			var err error
			data, b, err = fileData(b)
			if err != nil {
				return nil, err
			}
		}
		wordData = append(wordData, &Data{
			Type: t,
			Data: data,
		})
	}

	return &Word{
		Data: wordData,
	}, nil
}

// typedWord parses word data where each item is prefixed by its type.
func (*Dict) typedWord(b []byte) (*Word, error) {
	var wordData []*Data
	for len(b) > 0 {
		t := DataType(b[0])
		b = b[1:]

		var data []byte
		if t.IsString() {
			// Data is a string like sequence.
			i := bytes.IndexByte(b, 0)
			if i < 0 {
				data = b
				b = nil
			} else {
				data = b[:i]
				b = b[i+1:] // Skip the null terminator
			}
		} else {
			var err error
			data, b, err = fileData(b)
			if err != nil {
				return nil, err
			}
		}
		wordData = append(wordData, &Data{
			Type: t,
			Data: data,
		})
	}

	return &Word{
		Data: wordData,
	}, nil
}

// fileData reads a file like sequence and returns the data and the remaining
// bytes.
func fileData(b []byte) ([]byte, []byte, error) {
	if len(b) < 4 {
		return nil, nil, fmt.Errorf("%w: missing size", ErrInvalidData)
	}
	size := binary.BigEndian.Uint32(b)
	b = b[4:]
	if uint64(size) > uint64(len(b)) {
		return nil, nil, fmt.Errorf("%w: size %d exceeds word data", ErrInvalidData, size)
	}
	return b[:size], b[size:], nil
}

// Close closes the dict file.
func (d *Dict) Close() error {
	var errs []error
	for _, c := range d.closers {
		// The dictzip reader may already have closed the underlying file.
		if err := c.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("closing dict: %w", err)
	}
	return nil
}
