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

package syn

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/ianlewis/dictcc-stardict/internal/record"
)

// ErrTruncated indicates that the .syn data ended in the middle of an entry.
var ErrTruncated = errors.New("truncated synonym entry")

// Scanner scans a synonym file from start to end.
type Scanner struct {
	r io.Reader
	s *record.Scanner
}

// NewScanner returns a new synonym scanner. If r is an [io.Closer] it is
// closed by the Close method.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{
		r: r,
		s: record.NewScanner(r, 4, ErrTruncated),
	}
}

// Scan advances to the next synonym. It returns false if the scan stops
// either by reaching the end of the file or an error.
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
		return fmt.Errorf("closing syn file: %w", err)
	}
	return nil
}

// Word returns the current synonym.
func (s *Scanner) Word() *Word {
	word, trailer := s.s.Record()
	return &Word{
		Word:              word,
		OriginalWordIndex: binary.BigEndian.Uint32(trailer),
	}
}
