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

// Package record reads the records of .idx and .syn files. Each record is a
// NUL terminated word followed by a fixed size big endian trailer.
package record

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// Scanner scans records from start to end.
type Scanner struct {
	s       *bufio.Scanner
	trailer int
}

// NewScanner returns a Scanner for records with trailers of trailerSize bytes.
// A record cut short by the end of the input fails with errTruncated.
func NewScanner(r io.Reader, trailerSize int, errTruncated error) *Scanner {
	s := &Scanner{
		s:       bufio.NewScanner(r),
		trailer: trailerSize,
	}
	s.s.Split(func(data []byte, atEOF bool) (int, []byte, error) {
		if atEOF && len(data) == 0 {
			return 0, nil, nil
		}
		if i := bytes.IndexByte(data, 0); i >= 0 {
			size := i + 1 + s.trailer
			if len(data) >= size {
				return size, data[:size], nil
			}
		}
		if atEOF {
			return 0, nil, fmt.Errorf("%w: %q", errTruncated, data)
		}
		return 0, nil, nil
	})
	return s
}

// Scan advances to the next record.
func (s *Scanner) Scan() bool {
	return s.s.Scan()
}

// Err returns the first error encountered.
func (s *Scanner) Err() error {
	//nolint:wrapcheck // error should not be wrapped
	return s.s.Err()
}

// Record returns the word and trailer of the current record. The trailer is
// only valid until the next call to Scan.
func (s *Scanner) Record() (string, []byte) {
	b := s.s.Bytes()
	i := len(b) - s.trailer - 1
	return string(b[:i]), b[i+1:]
}
