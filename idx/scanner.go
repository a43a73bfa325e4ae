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

package idx

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/ianlewis/dictcc-stardict/internal/record"
)

var (
	// ErrInvalidIdxOffset indicates that the OffsetBits is an invalid value.
	ErrInvalidIdxOffset = errors.New("invalid idxoffsetbits")

	// ErrTruncated indicates that the .idx data ended in the middle of an
	// entry.
	ErrTruncated = errors.New("truncated index entry")
)

// Scanner scans an index from start to end.
type Scanner struct {
	r          io.Reader
	s          *record.Scanner
	offsetSize int
}

// ScannerOptions are options for scanning an .idx file.
type ScannerOptions struct {
	// OffsetBits are the number of bits in the offset fields. Valid values for
	// OffsetBits are either 32 or 64.
	OffsetBits int
}

// DefaultScannerOptions is the default options for a Scanner.
var DefaultScannerOptions = &ScannerOptions{
	OffsetBits: 32,
}

// NewScanner returns a new index scanner that scans the index from start to
// end. If r is an [io.Closer] it is closed by the Close method.
func NewScanner(r io.Reader, options *ScannerOptions) (*Scanner, error) {
	if options == nil {
		options = DefaultScannerOptions
	}
	if options.OffsetBits != 32 && options.OffsetBits != 64 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIdxOffset, options.OffsetBits)
	}

	offsetSize := options.OffsetBits / 8
	return &Scanner{
		r:          r,
		s:          record.NewScanner(r, offsetSize+4, ErrTruncated),
		offsetSize: offsetSize,
	}, nil
}

// Scan advances the index to the next index entry. It returns false if the
// scan stops either by reaching the end of the index or an error.
func (s *Scanner) Scan() bool {
	return s.s.Scan()
}

// Err returns the first error encountered.
func (s *Scanner) Err() error {
	return s.s.Err()
}

// Close closes the underlying reader if it is an [io.Closer].
func (s *Scanner) Close() error {
	c, ok := s.r.(io.Closer)
	if !ok {
		return nil
	}
	if err := c.Close(); err != nil {
		return fmt.Errorf("closing idx file: %w", err)
	}
	return nil
}

// Word returns the current entry in the index.
func (s *Scanner) Word() *Word {
	word, trailer := s.s.Record()
	w := &Word{
		Word: word,
		Size: binary.BigEndian.Uint32(trailer[s.offsetSize:]),
	}
	if s.offsetSize == 8 {
		w.Offset = binary.BigEndian.Uint64(trailer)
	} else {
		w.Offset = uint64(binary.BigEndian.Uint32(trailer))
	}
	return w
}
